// internal/api/handler/web/handler.go
package web

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
)

//go:embed static/*
var staticFS embed.FS

// Handler serves the browser UI: an index page plus its embedded assets.
type Handler struct {
	index  []byte
	assets http.Handler
}

// NewHandler creates a web handler backed by the embedded static files.
func NewHandler() (*Handler, error) {
	index, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		return nil, fmt.Errorf("reading index page: %w", err)
	}

	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("accessing embedded assets: %w", err)
	}

	return &Handler{
		index:  index,
		assets: http.StripPrefix("/static/", http.FileServer(http.FS(sub))),
	}, nil
}

// Index serves the table UI.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(h.index)
}

// Static serves the embedded assets under /static/.
func (h *Handler) Static(w http.ResponseWriter, r *http.Request) {
	h.assets.ServeHTTP(w, r)
}
