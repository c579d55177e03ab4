// Package site serves the embedded dashboard page and its assets.
package site

import (
	"context"
	"embed"
	"io/fs"
	"net/http"

	"github.com/okian/wildfire/pkg/logger"
)

//go:embed static
var staticFS embed.FS

// assets is the static directory itself, so files are served from "/".
var assets = func() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}()

// Register attaches the dashboard page and its assets to mux at /.
func Register(ctx context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.Handle("/", NewRootHandler())
	logger.Get().Debug(ctx, "dashboard site registered")
}

// RootHandler serves the dashboard page and static assets.
type RootHandler struct {
	files http.Handler
}

// NewRootHandler creates a new root handler.
func NewRootHandler() *RootHandler {
	return &RootHandler{files: http.FileServerFS(assets)}
}

// ServeHTTP handles GET requests under /.
func (h *RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	// The page reads fresh controls on every load.
	if r.URL.Path == "/" || r.URL.Path == "/index.html" {
		w.Header().Set("Cache-Control", "no-cache")
	}
	h.files.ServeHTTP(w, r)
}
