// Package service exposes stored plans to the web and RPC surfaces: listing,
// deletion, and rendering with optional archiving.
package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/mmynk/wispgen/internal/archive"
	"github.com/mmynk/wispgen/internal/document"
	"github.com/mmynk/wispgen/internal/models"
	"github.com/mmynk/wispgen/internal/storage"
	"github.com/mmynk/wispgen/pkg/logging"
)

// Observer receives record events. Metrics implement it.
type Observer interface {
	Rendered(variant string, elapsed time.Duration, err error)
	WispDeleted()
}

type nopObserver struct{}

func (nopObserver) Rendered(string, time.Duration, error) {}
func (nopObserver) WispDeleted()                          {}

// Options configures Wisps.
type Options struct {
	// Variant is used when a render request names none.
	Variant document.Variant

	// Archiver, when set, receives a copy of every rendered PDF.
	Archiver archive.Archiver

	Observer Observer

	// Now stamps rendered documents. Defaults to time.Now.
	Now func() time.Time
}

// Wisps wraps a storage.WispStore with rendering.
type Wisps struct {
	store    storage.WispStore
	variant  document.Variant
	archiver archive.Archiver
	obs      Observer
	now      func() time.Time
}

// NewWisps creates a Wisps over store.
func NewWisps(store storage.WispStore, opts Options) *Wisps {
	w := &Wisps{
		store:    store,
		variant:  opts.Variant,
		archiver: opts.Archiver,
		obs:      opts.Observer,
		now:      opts.Now,
	}
	if w.variant == "" {
		w.variant = document.VariantComprehensive
	}
	if w.obs == nil {
		w.obs = nopObserver{}
	}
	if w.now == nil {
		w.now = time.Now
	}
	return w
}

// List returns every plan, most recently updated first.
func (w *Wisps) List(ctx context.Context) ([]*models.Wisp, error) {
	return w.store.ListWisps(ctx)
}

// Get returns one plan.
func (w *Wisps) Get(ctx context.Context, id string) (*models.Wisp, error) {
	return w.store.GetWisp(ctx, id)
}

// Delete removes a plan and any archived copies of it.
func (w *Wisps) Delete(ctx context.Context, id string) error {
	if err := w.store.DeleteWisp(ctx, id); err != nil {
		return err
	}
	w.obs.WispDeleted()

	if w.archiver != nil {
		if err := w.archiver.Remove(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("Failed to remove archived documents", "wisp_id", id, "error", err)
		}
	}
	return nil
}

// Rendered is a finished PDF.
type Rendered struct {
	Wisp     *models.Wisp
	Filename string
	PDF      []byte
}

// Render fetches plan id and renders it as PDF. An empty variant selects the
// configured default.
func (w *Wisps) Render(ctx context.Context, id string, variant document.Variant) (*Rendered, error) {
	wisp, err := w.store.GetWisp(ctx, id)
	if err != nil {
		return nil, err
	}
	if variant == "" {
		variant = w.variant
	}

	start := time.Now()
	pdf, err := renderPDF(wisp, document.Options{Variant: variant, GeneratedAt: w.now()})
	w.obs.Rendered(string(variant), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	out := &Rendered{Wisp: wisp, Filename: document.Filename(wisp.CompanyName), PDF: pdf}
	if w.archiver != nil {
		key, err := w.archiver.Store(ctx, wisp.ID, out.Filename, pdf)
		if err != nil {
			logging.FromContext(ctx).Warn("Failed to archive document", "wisp_id", wisp.ID, "error", err)
		} else {
			logging.FromContext(ctx).Debug("Document archived", "wisp_id", wisp.ID, "key", key)
		}
	}
	return out, nil
}

func renderPDF(wisp *models.Wisp, opts document.Options) ([]byte, error) {
	doc, err := document.Assemble(wisp, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := document.RenderPDF(doc, &buf); err != nil {
		return nil, fmt.Errorf("failed to render wisp %s: %w", wisp.ID, err)
	}
	return buf.Bytes(), nil
}
