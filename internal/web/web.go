// Package web serves the HTML wizard, the dashboard and PDF downloads.
package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"path"
	"strconv"

	"github.com/mmynk/wispgen/internal/service"
	"github.com/mmynk/wispgen/internal/session"
	"github.com/mmynk/wispgen/internal/storage"
	"github.com/mmynk/wispgen/internal/steps"
	"github.com/mmynk/wispgen/internal/wizard"
	"github.com/mmynk/wispgen/pkg/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{"index", "dashboard", "step", "complete", "view", "error"}

// Server holds the HTML handlers.
type Server struct {
	wizard   *wizard.Controller
	wisps    *service.Wisps
	sessions *session.Manager
	pages    map[string]*template.Template
}

// NewServer parses the embedded templates.
func NewServer(c *wizard.Controller, wisps *service.Wisps, sessions *session.Manager) (*Server, error) {
	s := &Server{wizard: c, wisps: wisps, sessions: sessions, pages: make(map[string]*template.Template)}

	funcs := template.FuncMap{
		"stepURL": func(n int) string { return "/wizard/step/" + strconv.Itoa(n) },
		"add":     func(a, b int) int { return a + b },
		"percent": func(n int) int { return n * 100 / steps.Count },
		"inputType": func(f steps.Field) string {
			switch f.Format {
			case steps.FormatEmail:
				return "email"
			case steps.FormatDate:
				return "date"
			case steps.FormatPhone:
				return "tel"
			}
			return "text"
		},
	}
	for _, name := range pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", path.Join("templates", name+".html"))
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		s.pages[name] = t
	}
	return s, nil
}

// Register adds every route to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /dashboard", s.handleDashboard)
	mux.HandleFunc("GET /wizard/start", s.handleStart)
	mux.HandleFunc("GET /wizard/step/{n}", s.handleStep)
	mux.HandleFunc("POST /wizard/step/{n}", s.handleSubmit)
	mux.HandleFunc("GET /wizard/complete", s.handleComplete)
	mux.HandleFunc("GET /wisp/{id}", s.handleView)
	mux.HandleFunc("GET /wisp/{id}/pdf", s.handlePDF)
	mux.HandleFunc("POST /wisp/{id}/delete", s.handleDelete)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
}

type page struct {
	Title string
	Flash *Flash
	Data  any
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	t, ok := s.pages[name]
	if !ok {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	p := page{Title: title, Flash: popFlash(w, r), Data: data}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "layout", p); err != nil {
		logging.FromContext(r.Context()).Error("Template failed", "template", name, "error", err)
	}
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.render(w, r, status, "error", http.StatusText(status), message)
}

// fail logs err once and writes a generic error page.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	logging.FromContext(r.Context()).Error(msg, "error", err, "path", r.URL.Path)
	s.renderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again.")
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// currentDraft loads the draft named by the session cookie, starting a new
// one when the cookie is missing, invalid or points at a pruned draft.
func (s *Server) currentDraft(w http.ResponseWriter, r *http.Request) (wizard.Draft, error) {
	ctx := r.Context()
	if id, err := s.sessions.DraftID(r); err == nil {
		d, err := s.wizard.Load(ctx, id)
		if err == nil {
			return d, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return wizard.Draft{}, err
		}
	}

	d, err := s.wizard.Start(ctx, "")
	if err != nil {
		return wizard.Draft{}, err
	}
	if err := s.sessions.Set(w, d.ID); err != nil {
		return wizard.Draft{}, err
	}
	return d, nil
}
