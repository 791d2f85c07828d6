// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mmynk/wispgen/internal/models"
)

var (
	// ErrNotFound is returned when a plan or draft does not exist.
	ErrNotFound = errors.New("not found")
	// ErrPersistence wraps any failure of the underlying database.
	ErrPersistence = errors.New("persistence failure")
)

// WispStore defines the storage operations for completed plans.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type WispStore interface {
	// CreateWisp persists a new plan.
	// The ID, CreatedAt and UpdatedAt fields are populated by the store.
	CreateWisp(ctx context.Context, wisp *models.Wisp) error

	// GetWisp retrieves a plan by its ID.
	// Returns ErrNotFound if the plan does not exist.
	GetWisp(ctx context.Context, id string) (*models.Wisp, error)

	// ListWisps returns all plans, most recently updated first.
	// Ties keep insertion order.
	ListWisps(ctx context.Context) ([]*models.Wisp, error)

	// UpdateWispAnswers replaces a plan's answers and bumps UpdatedAt.
	// Returns ErrNotFound if the plan does not exist.
	UpdateWispAnswers(ctx context.Context, id string, answers models.Answers) (*models.Wisp, error)

	// DeleteWisp removes a plan.
	// Returns ErrNotFound if the plan does not exist.
	DeleteWisp(ctx context.Context, id string) error
}

// Draft is a stored, in-progress wizard run.
type Draft struct {
	ID        string
	Steps     map[int]models.Answers
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DraftStore holds in-progress wizard runs keyed by wizard instance ID.
type DraftStore interface {
	// CreateDraft starts an empty draft with a fresh ID.
	CreateDraft(ctx context.Context) (*Draft, error)

	// GetDraft loads a draft and all of its step answers.
	// Returns ErrNotFound if the draft does not exist.
	GetDraft(ctx context.Context, id string) (*Draft, error)

	// SaveDraftStep replaces the answers stored for one step.
	// Returns ErrNotFound if the draft does not exist.
	SaveDraftStep(ctx context.Context, id string, step int, answers models.Answers) error

	// DeleteDraft discards a draft. Deleting a missing draft is not an error.
	DeleteDraft(ctx context.Context, id string) error

	// FinalizeDraft creates wisp and deletes the draft in one transaction.
	FinalizeDraft(ctx context.Context, draftID string, wisp *models.Wisp) error

	// PruneDrafts removes drafts not touched since before and reports how
	// many were removed.
	PruneDrafts(ctx context.Context, before time.Time) (int64, error)
}

// Store combines every storage capability.
type Store interface {
	WispStore
	DraftStore

	// Close releases any resources held by the store.
	Close() error
}
