package handlers

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/grapl-ai/grapl-site/internal/entity"
	"github.com/grapl-ai/grapl-site/internal/usecase"
)

//go:embed templates/*.html
var templatesFS embed.FS

// PagesHandler renders the public site: the experiment grid, per-experiment
// detail pages and the privacy page. All catalog reads go through the
// reader, so a dead store still renders a valid page.
type PagesHandler struct {
	catalog *usecase.CatalogReader
	log     *zap.SugaredLogger
	tmpl    *template.Template
}

func NewPagesHandler(catalog *usecase.CatalogReader, log *zap.SugaredLogger) *PagesHandler {
	tmpl := template.Must(template.ParseFS(templatesFS, "templates/*.html"))
	return &PagesHandler{catalog: catalog, log: log, tmpl: tmpl}
}

type homeData struct {
	Experiments []entity.Experiment
	Year        int
}

func (h *PagesHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	data := homeData{
		Experiments: h.catalog.List(r.Context()),
		Year:        time.Now().Year(),
	}
	h.render(w, http.StatusOK, "home.html", data)
}

type experimentData struct {
	Experiment *entity.Experiment
	Year       int
}

func (h *PagesHandler) HandleExperiment(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	experiment := h.catalog.Get(r.Context(), slug)
	if experiment == nil {
		h.render(w, http.StatusNotFound, "notfound.html", nil)
		return
	}

	h.render(w, http.StatusOK, "experiment.html", experimentData{
		Experiment: experiment,
		Year:       time.Now().Year(),
	})
}

func (h *PagesHandler) HandlePrivacy(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "privacy.html", homeData{Year: time.Now().Year()})
}

func (h *PagesHandler) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		h.log.Errorw("template render failed", "template", name, "error", err)
	}
}
