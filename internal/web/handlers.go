package web

import (
	"errors"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mmynk/wispgen/internal/document"
	"github.com/mmynk/wispgen/internal/models"
	"github.com/mmynk/wispgen/internal/steps"
	"github.com/mmynk/wispgen/internal/storage"
	"github.com/mmynk/wispgen/internal/wizard"
	"github.com/mmynk/wispgen/pkg/logging"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "index", "WISP Generator", steps.All())
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	list, err := s.wisps.List(r.Context())
	if err != nil {
		s.fail(w, r, "Failed to list wisps", err)
		return
	}
	s.render(w, r, http.StatusOK, "dashboard", "Dashboard", list)
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	previous, _ := s.sessions.DraftID(r)
	d, err := s.wizard.Start(r.Context(), previous)
	if err != nil {
		s.fail(w, r, "Failed to start wizard", err)
		return
	}
	if err := s.sessions.Set(w, d.ID); err != nil {
		s.fail(w, r, "Failed to set session", err)
		return
	}
	redirect(w, r, "/wizard/step/1")
}

type stepPage struct {
	Step   steps.Step
	Steps  []steps.Step
	Values url.Values
	Errors map[string]string
}

// stepNumber parses the {n} path value. Anything invalid is out of range.
func stepNumber(r *http.Request) int {
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil {
		return 0
	}
	return n
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	n := stepNumber(r)
	if _, ok := steps.Get(n); !ok {
		redirect(w, r, "/")
		return
	}
	d, err := s.currentDraft(w, r)
	if err != nil {
		s.fail(w, r, "Failed to load wizard", err)
		return
	}

	view, err := s.wizard.Step(d, n)
	if err != nil {
		s.stepError(w, r, d, err)
		return
	}
	s.render(w, r, http.StatusOK, "step", view.Step.Title, stepPage{
		Step:   view.Step,
		Steps:  steps.All(),
		Values: view.Values,
	})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	n := stepNumber(r)
	if _, ok := steps.Get(n); !ok {
		redirect(w, r, "/")
		return
	}
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "The form could not be read.")
		return
	}
	d, err := s.currentDraft(w, r)
	if err != nil {
		s.fail(w, r, "Failed to load wizard", err)
		return
	}

	out, err := s.wizard.Submit(r.Context(), d, n, r.PostForm)
	var verr *steps.ValidationError
	switch {
	case errors.As(err, &verr):
		step, _ := steps.Get(n)
		s.render(w, r, http.StatusUnprocessableEntity, "step", step.Title, stepPage{
			Step:   step,
			Steps:  steps.All(),
			Values: verr.Values,
			Errors: verr.Fields,
		})
		return
	case err != nil:
		s.stepError(w, r, d, err)
		return
	}

	if out.WispID != "" {
		s.sessions.Clear(w)
		redirect(w, r, "/wizard/complete?id="+url.QueryEscape(out.WispID))
		return
	}
	redirect(w, r, "/wizard/step/"+strconv.Itoa(out.Next))
}

// stepError handles the wizard sentinel errors shared by step GET and POST.
func (s *Server) stepError(w http.ResponseWriter, r *http.Request, d wizard.Draft, err error) {
	switch {
	case errors.Is(err, wizard.ErrOutOfRange):
		redirect(w, r, "/")
	case errors.Is(err, wizard.ErrIncompleteSubmission):
		setFlash(w, "error", "Please complete all wizard steps")
		redirect(w, r, "/wizard/step/1")
	case errors.Is(err, wizard.ErrStepLocked):
		setFlash(w, "error", "Please complete the previous steps first")
		redirect(w, r, "/wizard/step/"+strconv.Itoa(firstMissing(d)))
	default:
		s.fail(w, r, "Wizard step failed", err)
	}
}

func firstMissing(d wizard.Draft) int {
	for i := 1; i <= steps.Count; i++ {
		if _, ok := d.Steps[i]; !ok {
			return i
		}
	}
	return steps.Count
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if id := r.URL.Query().Get("id"); id != "" {
		wisp, err := s.wisps.Get(ctx, id)
		if err != nil {
			s.lookupError(w, r, err)
			return
		}
		s.render(w, r, http.StatusOK, "complete", "WISP Complete", wisp)
		return
	}

	d, err := s.currentDraft(w, r)
	if err != nil {
		s.fail(w, r, "Failed to load wizard", err)
		return
	}
	wisp, err := s.wizard.Finalize(ctx, d)
	if err != nil {
		s.stepError(w, r, d, err)
		return
	}
	s.sessions.Clear(w)
	redirect(w, r, "/wizard/complete?id="+url.QueryEscape(wisp.ID))
}

type viewRow struct {
	Label string
	Value string
}

type viewSection struct {
	Title string
	Rows  []viewRow
}

type viewPage struct {
	Wisp     *models.Wisp
	Sections []viewSection
}

// sections groups the answers of wisp by step, in field order.
func sections(wisp *models.Wisp) []viewSection {
	var out []viewSection
	for _, st := range steps.All() {
		sec := viewSection{Title: st.Title}
		for _, f := range st.Fields {
			v, ok := wisp.Answers[f.Name]
			if !ok {
				continue
			}
			sec.Rows = append(sec.Rows, viewRow{Label: f.Label, Value: display(f, v)})
		}
		if len(sec.Rows) > 0 {
			out = append(out, sec)
		}
	}
	return out
}

func display(f steps.Field, v models.Value) string {
	switch v.Kind {
	case models.KindBool:
		if v.Bool {
			return "Yes"
		}
		return "No"
	case models.KindString:
		if f.Kind == steps.KindChoice {
			return f.ChoiceLabel(v.Str)
		}
		return v.Str
	}
	return string(v.Raw)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	wisp, err := s.wisps.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.lookupError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "view", wisp.CompanyName, viewPage{Wisp: wisp, Sections: sections(wisp)})
}

func (s *Server) handlePDF(w http.ResponseWriter, r *http.Request) {
	// No variant query falls back to the configured default.
	var variant document.Variant
	if name := r.URL.Query().Get("variant"); name != "" {
		v, err := document.ParseVariant(name)
		if err != nil {
			s.renderError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		variant = v
	}

	out, err := s.wisps.Render(r.Context(), r.PathValue("id"), variant)
	var renderErr *document.RenderError
	switch {
	case errors.As(err, &renderErr):
		logging.FromContext(r.Context()).Warn("Wisp cannot be rendered", "wisp_id", renderErr.WispID, "error", renderErr.Err)
		s.renderError(w, r, http.StatusUnprocessableEntity, "This WISP contains answers that cannot be rendered.")
		return
	case err != nil:
		s.lookupError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": out.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(out.PDF)))
	w.Write(out.PDF)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	err := s.wisps.Delete(r.Context(), id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		setFlash(w, "error", "WISP not found")
	case err != nil:
		s.fail(w, r, "Failed to delete wisp", err)
		return
	default:
		logging.FromContext(r.Context()).Info("Wisp deleted", "wisp_id", id)
		setFlash(w, "success", "WISP deleted successfully")
	}
	redirect(w, r, "/dashboard")
}

// lookupError maps a record lookup failure to a page.
func (s *Server) lookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		s.renderError(w, r, http.StatusNotFound, "WISP not found")
		return
	}
	s.fail(w, r, "Failed to load wisp", err)
}
