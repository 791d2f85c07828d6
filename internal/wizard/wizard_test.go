package wizard

import (
	"context"
	"errors"
	"maps"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mmynk/wispgen/internal/models"
	"github.com/mmynk/wispgen/internal/steps"
	"github.com/mmynk/wispgen/internal/storage"
	"github.com/mmynk/wispgen/internal/storage/sqlite"
)

type countingObserver struct {
	accepted, rejected, created int
}

func (o *countingObserver) StepSubmitted(_ int, ok bool) {
	if ok {
		o.accepted++
	} else {
		o.rejected++
	}
}

func (o *countingObserver) WispCreated() { o.created++ }

func setupController(t *testing.T, opts Options) (*Controller, *sqlite.SQLiteStore) {
	t.Helper()

	dir, err := os.MkdirTemp("", "wizard-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	store, err := sqlite.New(filepath.Join(dir, "wizard.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return NewController(store, opts), store
}

// validSubmissions returns acceptable raw input for every step.
func validSubmissions() map[int]url.Values {
	return map[int]url.Values{
		1: {
			"company_name":       {"Acme CPA"},
			"street_address":     {"1 Main St"},
			"city":               {"Nashua"},
			"state":              {"NH"},
			"zip_code":           {"03060"},
			"contact_email":      {"owner@acme.test"},
			"company_size":       {"1-10"},
			"industry":           {"accounting"},
			"prepared_by":        {"Pat Doe"},
			"annual_review_date": {"2027-01-15"},
		},
		2: {
			"personal_info_types": {"financial"},
			"data_retention":      {"7years"},
			"cloud_providers_1":   {"Dropbox"},
		},
		3: {"quickbooks": {"on"}},
		4: {"mfa_enabled": {"on"}, "mfa_vendor": {"Duo"}, "password_min_length": {"12"}},
		5: {"vendor_list": {"Payroll Co."}},
		6: {"qualified_individual_name": {"Sam Lee"}},
	}
}

func TestWizardCompletesAllSteps(t *testing.T) {
	obs := &countingObserver{}
	c, store := setupController(t, Options{Observer: obs})
	ctx := context.Background()

	draft, err := c.Start(ctx, "")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	want := models.Answers{}
	subs := validSubmissions()
	var out Outcome
	for n := 1; n <= steps.Count; n++ {
		s, _ := steps.Get(n)
		accepted, err := steps.Validate(s, subs[n])
		if err != nil {
			t.Fatalf("fixture for step %d invalid: %v", n, err)
		}
		maps.Copy(want, accepted)

		draft, err = c.Load(ctx, draft.ID)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		out, err = c.Submit(ctx, draft, n, subs[n])
		if err != nil {
			t.Fatalf("Submit step %d failed: %v", n, err)
		}
		if n < steps.Count && out.Next != n+1 {
			t.Errorf("step %d: Next = %d, want %d", n, out.Next, n+1)
		}
	}

	if out.WispID == "" {
		t.Fatal("expected last step to create a wisp")
	}

	list, err := store.ListWisps(ctx)
	if err != nil {
		t.Fatalf("ListWisps failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected exactly one wisp, got %d", len(list))
	}
	if list[0].CompanyName != "Acme CPA" {
		t.Errorf("CompanyName = %q", list[0].CompanyName)
	}
	if diff := cmp.Diff(want, list[0].Answers); diff != "" {
		t.Errorf("answers mismatch (-want +got):\n%s", diff)
	}

	if _, err := c.Load(ctx, draft.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected draft to be discarded, got %v", err)
	}
	if obs.accepted != steps.Count || obs.created != 1 {
		t.Errorf("observer = %+v", obs)
	}
}

func TestSubmitInvalidDoesNotMutate(t *testing.T) {
	obs := &countingObserver{}
	c, _ := setupController(t, Options{Observer: obs})
	ctx := context.Background()

	draft, err := c.Start(ctx, "")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	for n := 1; n <= steps.Count; n++ {
		s, _ := steps.Get(n)
		var requiredField string
		for _, f := range s.Fields {
			if f.Required {
				requiredField = f.Name
				break
			}
		}
		if requiredField == "" {
			continue
		}

		raw := validSubmissions()[n]
		raw.Del(requiredField)

		out, err := c.Submit(ctx, draft, n, raw)
		var verr *steps.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("step %d: expected ValidationError, got %v", n, err)
		}
		if out.Next != 0 || out.WispID != "" {
			t.Errorf("step %d: advanced despite invalid input: %+v", n, out)
		}

		loaded, err := c.Load(ctx, draft.ID)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(loaded.Steps) != 0 {
			t.Errorf("step %d: draft mutated: %v", n, loaded.Steps)
		}
	}
	if obs.accepted != 0 || obs.rejected == 0 {
		t.Errorf("observer = %+v", obs)
	}
}

func TestFinalizeWithoutCompanyName(t *testing.T) {
	c, store := setupController(t, Options{})
	ctx := context.Background()

	draft, err := c.Start(ctx, "")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Jumping straight to the last step is allowed, but finalize refuses.
	_, err = c.Submit(ctx, draft, steps.Count, validSubmissions()[steps.Count])
	if !errors.Is(err, ErrIncompleteSubmission) {
		t.Fatalf("expected ErrIncompleteSubmission, got %v", err)
	}

	if _, err := c.Finalize(ctx, Draft{ID: draft.ID}); !errors.Is(err, ErrIncompleteSubmission) {
		t.Errorf("expected ErrIncompleteSubmission, got %v", err)
	}

	list, err := store.ListWisps(ctx)
	if err != nil {
		t.Fatalf("ListWisps failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected no wisps, got %d", len(list))
	}
}

func TestStepRangeAndPrefill(t *testing.T) {
	c, _ := setupController(t, Options{})
	ctx := context.Background()

	draft, err := c.Start(ctx, "")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	for _, n := range []int{0, -1, steps.Count + 1} {
		if _, err := c.Step(draft, n); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Step(%d): expected ErrOutOfRange, got %v", n, err)
		}
		if _, err := c.Submit(ctx, draft, n, url.Values{}); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Submit(%d): expected ErrOutOfRange, got %v", n, err)
		}
	}

	view, err := c.Step(draft, 4)
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if got := view.Values.Get("password_min_length"); got != "8" {
		t.Errorf("default password_min_length = %q, want 8", got)
	}

	if _, err := c.Submit(ctx, draft, 4, validSubmissions()[4]); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	draft, _ = c.Load(ctx, draft.ID)

	view, err = c.Step(draft, 4)
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if view.Values.Get("mfa_enabled") != "on" || view.Values.Get("mfa_vendor") != "Duo" {
		t.Errorf("prefill = %v", view.Values)
	}
	if view.Values.Has("firewall_protection") {
		t.Error("unchecked boolean should not be prefilled")
	}
	if got := view.Values.Get("password_min_length"); got != "12" {
		t.Errorf("password_min_length = %q, want 12", got)
	}
}

func TestStartResetsDraft(t *testing.T) {
	c, _ := setupController(t, Options{})
	ctx := context.Background()

	first, err := c.Start(ctx, "")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	second, err := c.Start(ctx, first.ID)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if second.ID == first.ID {
		t.Error("expected a fresh draft ID")
	}
	if _, err := c.Load(ctx, first.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected previous draft to be cleared, got %v", err)
	}
}

func TestStrictOrder(t *testing.T) {
	c, _ := setupController(t, Options{StrictOrder: true})
	ctx := context.Background()

	draft, err := c.Start(ctx, "")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if _, err := c.Step(draft, 2); !errors.Is(err, ErrStepLocked) {
		t.Errorf("expected ErrStepLocked, got %v", err)
	}
	if _, err := c.Submit(ctx, draft, 2, validSubmissions()[2]); !errors.Is(err, ErrStepLocked) {
		t.Errorf("expected ErrStepLocked, got %v", err)
	}

	if _, err := c.Submit(ctx, draft, 1, validSubmissions()[1]); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	draft, _ = c.Load(ctx, draft.ID)
	if _, err := c.Step(draft, 2); err != nil {
		t.Errorf("Step 2 after step 1: %v", err)
	}
}

func TestDraftHelpers(t *testing.T) {
	d := Draft{ID: "x"}
	d1 := d.With(1, models.Answers{"company_name": models.String("A")})
	d2 := d1.With(3, models.Answers{"quickbooks": models.Bool(true)})

	if len(d1.Steps) != 1 {
		t.Errorf("With mutated its receiver: %v", d1.Steps)
	}
	if !d2.Completed(2) || d2.Completed(3) {
		t.Error("Completed mismatch")
	}

	want := models.Answers{"company_name": models.String("A"), "quickbooks": models.Bool(true)}
	if diff := cmp.Diff(want, d2.Merge()); diff != "" {
		t.Errorf("Merge mismatch (-want +got):\n%s", diff)
	}
}
