package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"cashflow/internal/dashboard"
	"cashflow/internal/log"
)

// monthParam is the query parameter carrying the dropdown value.
const monthParam = "month"

type pageData struct {
	Title    string
	Options  []string
	Selected string
	View     dashboard.View
	Rows     int
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady reports ready once templates are parsed and the dataset is loaded.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil || s.presenter.Dataset() == nil {
		http.Error(w, "not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.renderTemplate(w, r, "dashboard.html", s.page(r))
}

// handleCharts renders the chart partial swapped in by htmx on dropdown change.
func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	s.renderTemplate(w, r, "charts.html", s.page(r))
}

// handleRender returns the view for a selection as JSON.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	view := s.presenter.Render(selection(r))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(view); err != nil {
		log.FromContext(r.Context()).Error("Encode view failed",
			log.NewFields().WithError(err).WithOperation(log.OpRender).ToSlice()...)
	}
}

func (s *Server) page(r *http.Request) pageData {
	view := s.presenter.Render(selection(r))
	data := s.presenter.Dataset()
	return pageData{
		Title:    "Cash Flow",
		Options:  data.Options(),
		Selected: view.Selection,
		View:     view,
		Rows:     data.Len(),
	}
}

func (s *Server) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.FromContext(r.Context()).Error("Template execution failed",
			log.FieldError, err,
			"template", name)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func selection(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get(monthParam))
}
