// Package wizard walks a user through the questionnaire steps. Answers are
// accumulated in a draft that is passed in explicitly by the caller and
// persisted by a storage.DraftStore; a plan is created only when the last
// step is accepted.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/mmynk/wispgen/internal/models"
	"github.com/mmynk/wispgen/internal/storage"
	"github.com/mmynk/wispgen/internal/steps"
)

var (
	// ErrOutOfRange is returned for step numbers outside 1..steps.Count.
	ErrOutOfRange = errors.New("step out of range")
	// ErrIncompleteSubmission is returned when finalizing without a company name.
	ErrIncompleteSubmission = errors.New("please complete all wizard steps")
	// ErrStepLocked is returned in strict mode when earlier steps are missing.
	ErrStepLocked = errors.New("complete the previous steps first")
)

// Observer receives wizard events. Metrics implement it.
type Observer interface {
	StepSubmitted(step int, accepted bool)
	WispCreated()
}

type nopObserver struct{}

func (nopObserver) StepSubmitted(int, bool) {}
func (nopObserver) WispCreated()            {}

// Options configures a Controller.
type Options struct {
	// StrictOrder rejects steps whose predecessors have not been submitted.
	StrictOrder bool

	Observer Observer
}

// Controller drives the wizard over a draft store.
type Controller struct {
	drafts storage.DraftStore
	strict bool
	obs    Observer
}

// NewController creates a Controller backed by drafts.
func NewController(drafts storage.DraftStore, opts Options) *Controller {
	obs := opts.Observer
	if obs == nil {
		obs = nopObserver{}
	}
	return &Controller{drafts: drafts, strict: opts.StrictOrder, obs: obs}
}

// View is a step ready to render: its definition plus pre-filled values.
type View struct {
	Step   steps.Step
	Values url.Values
	Errors map[string]string
}

// Outcome is the result of an accepted submission.
type Outcome struct {
	// Next is the step to show, or 0 once the wizard is complete.
	Next int

	// WispID is set when the submission completed the wizard.
	WispID string
}

// Start discards any previous draft and begins a new one.
func (c *Controller) Start(ctx context.Context, previousID string) (Draft, error) {
	if previousID != "" {
		if err := c.drafts.DeleteDraft(ctx, previousID); err != nil {
			return Draft{}, fmt.Errorf("failed to reset wizard: %w", err)
		}
	}
	d, err := c.drafts.CreateDraft(ctx)
	if err != nil {
		return Draft{}, fmt.Errorf("failed to start wizard: %w", err)
	}
	slog.Debug("Wizard started", "draft_id", d.ID)
	return Draft{ID: d.ID, Steps: d.Steps}, nil
}

// Load fetches a draft. Returns storage.ErrNotFound for unknown IDs.
func (c *Controller) Load(ctx context.Context, id string) (Draft, error) {
	d, err := c.drafts.GetDraft(ctx, id)
	if err != nil {
		return Draft{}, err
	}
	return Draft{ID: d.ID, Steps: d.Steps}, nil
}

// Step returns step n pre-filled from draft.
func (c *Controller) Step(draft Draft, n int) (View, error) {
	s, ok := steps.Get(n)
	if !ok {
		return View{}, fmt.Errorf("step %d: %w", n, ErrOutOfRange)
	}
	if c.strict && !draft.Completed(n) {
		return View{}, fmt.Errorf("step %d: %w", n, ErrStepLocked)
	}
	return View{Step: s, Values: Prefill(s, draft.Steps[n])}, nil
}

// Submit validates raw against step n. A *steps.ValidationError leaves the
// draft untouched. On success the draft is updated and, after the last step,
// finalized.
func (c *Controller) Submit(ctx context.Context, draft Draft, n int, raw url.Values) (Outcome, error) {
	s, ok := steps.Get(n)
	if !ok {
		return Outcome{}, fmt.Errorf("step %d: %w", n, ErrOutOfRange)
	}
	if c.strict && !draft.Completed(n) {
		return Outcome{}, fmt.Errorf("step %d: %w", n, ErrStepLocked)
	}

	answers, err := steps.Validate(s, raw)
	if err != nil {
		c.obs.StepSubmitted(n, false)
		return Outcome{}, err
	}

	if err := c.drafts.SaveDraftStep(ctx, draft.ID, n, answers); err != nil {
		return Outcome{}, fmt.Errorf("failed to save step %d: %w", n, err)
	}
	c.obs.StepSubmitted(n, true)

	if n < steps.Count {
		return Outcome{Next: n + 1}, nil
	}

	wisp, err := c.Finalize(ctx, draft.With(n, answers))
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{WispID: wisp.ID}, nil
}

// Finalize folds the draft into a new plan and discards the draft.
func (c *Controller) Finalize(ctx context.Context, draft Draft) (*models.Wisp, error) {
	answers := draft.Merge()
	name := answers.String("company_name")
	if name == "" {
		return nil, ErrIncompleteSubmission
	}

	wisp := &models.Wisp{CompanyName: name, Answers: answers}
	if err := c.drafts.FinalizeDraft(ctx, draft.ID, wisp); err != nil {
		return nil, fmt.Errorf("failed to create wisp: %w", err)
	}
	c.obs.WispCreated()

	slog.Info("Wisp created", "wisp_id", wisp.ID, "draft_id", draft.ID, "answers", len(answers))
	return wisp, nil
}

// Prefill converts stored answers back into form values. Without stored
// answers the field defaults are used.
func Prefill(s steps.Step, answers models.Answers) url.Values {
	values := url.Values{}
	for _, f := range s.Fields {
		v, ok := answers[f.Name]
		switch {
		case !ok:
			if answers == nil && f.Default != "" {
				values.Set(f.Name, f.Default)
			}
		case v.Kind == models.KindBool:
			if v.Bool {
				values.Set(f.Name, "on")
			}
		case v.Kind == models.KindString:
			values.Set(f.Name, v.Str)
		}
	}
	return values
}
