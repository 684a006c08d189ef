package httpapi

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type PageHandler struct {
	Dashboard Dashboard
	Logger    *zap.Logger
}

func (h PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	h.render(w, r, "page")
}

func (h PageHandler) JobsPartial(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "jobs")
}

func (h PageHandler) SkillsPartial(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "skills")
}

// render executes into a buffer first so a template error never leaves a
// half-written page behind a 200.
func (h PageHandler) render(w http.ResponseWriter, r *http.Request, name string) {
	var buf bytes.Buffer
	if err := pageTmpl.ExecuteTemplate(&buf, name, h.Dashboard.View()); err != nil {
		h.Logger.Error("render failed", zap.String("template", name), zap.Error(err))
		WriteError(w, r, http.StatusInternalServerError, codeInternal, "render failed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}
