// Package swagger serves the dashboard's OpenAPI document and a ReDoc page for it.
package swagger

import (
	"context"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/knadh/koanf/parsers/yaml"

	"github.com/okian/wildfire/pkg/logger"
)

// OpenAPI is the embedded OpenAPI 3 document in YAML.
//
//go:embed openapi.yaml
var OpenAPI []byte

// Register attaches the API docs routes to mux.
// Routes:
//
//	GET /api-docs     -> ReDoc HTML
//	GET /openapi.yaml -> embedded document
//	GET /openapi.json -> same document as JSON
func Register(ctx context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	log := logger.Named("swagger")

	mux.HandleFunc("/api-docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(indexHTML))
	})

	mux.Handle("/openapi.yaml", documentHandler(OpenAPI, "application/yaml; charset=utf-8"))

	asJSON, err := ToJSON(OpenAPI)
	if err != nil {
		log.Error(ctx, "openapi document is not valid YAML; /openapi.json disabled", logger.Error(err))
		return
	}
	mux.Handle("/openapi.json", documentHandler(asJSON, "application/json; charset=utf-8"))
}

// ToJSON converts a YAML OpenAPI document to indented JSON.
func ToJSON(doc []byte) ([]byte, error) {
	m, err := yaml.Parser().Unmarshal(doc)
	if err != nil {
		return nil, fmt.Errorf("parse openapi yaml: %w", err)
	}
	out, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode openapi json: %w", err)
	}
	return out, nil
}

// documentHandler serves a fixed body with a content-hash ETag so clients
// revalidate instead of refetching.
func documentHandler(body []byte, contentType string) http.Handler {
	sum := sha256.Sum256(body)
	etag := `"` + hex.EncodeToString(sum[:8]) + `"`

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "no-cache")
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("Content-Type", contentType)
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(body)
	})
}

// ReDoc is pulled from its CDN and pointed at /openapi.yaml.
const indexHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
    <title>Wildfire Dashboard API</title>
    <style>body{margin:0;padding:0}</style>
  </head>
  <body>
    <redoc id="redoc-container"></redoc>
    <script src="https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"></script>
    <script>Redoc.init('/openapi.yaml', { suppressWarnings: true }, document.getElementById('redoc-container'));</script>
  </body>
</html>`
