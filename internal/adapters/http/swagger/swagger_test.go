package swagger

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/wildfire/pkg/logger"
)

func init() {
	if err := logger.Init(logger.WithOutput(io.Discard)); err != nil {
		panic(err)
	}
}

func serve(mux *http.ServeMux, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, http.NoBody)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestSwaggerHandler(t *testing.T) {
	convey.Convey("Given a swagger handler", t, func() {
		mux := http.NewServeMux()
		Register(context.Background(), mux)

		convey.Convey("When fetching /openapi.yaml", func() {
			w := serve(mux, http.MethodGet, "/openapi.yaml", nil)

			convey.Convey("Then the embedded document is served with an ETag", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "application/yaml; charset=utf-8")
				convey.So(w.Header().Get("ETag"), convey.ShouldNotBeEmpty)
				convey.So(w.Body.Bytes(), convey.ShouldResemble, OpenAPI)
			})

			convey.Convey("Then revalidating with the ETag answers 304", func() {
				again := serve(mux, http.MethodGet, "/openapi.yaml", http.Header{"If-None-Match": {w.Header().Get("ETag")}})
				convey.So(again.Code, convey.ShouldEqual, http.StatusNotModified)
				convey.So(again.Body.Len(), convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When fetching /openapi.json", func() {
			w := serve(mux, http.MethodGet, "/openapi.json", nil)

			convey.Convey("Then the same document is served as JSON", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "application/json; charset=utf-8")
				var doc map[string]any
				convey.So(json.Unmarshal(w.Body.Bytes(), &doc), convey.ShouldBeNil)
				convey.So(doc["openapi"], convey.ShouldEqual, "3.0.3")
			})
		})

		convey.Convey("When sending HEAD or POST to the document", func() {
			head := serve(mux, http.MethodHead, "/openapi.yaml", nil)
			post := serve(mux, http.MethodPost, "/openapi.yaml", nil)

			convey.Convey("Then HEAD has no body and POST is refused", func() {
				convey.So(head.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(head.Body.Len(), convey.ShouldEqual, 0)
				convey.So(post.Code, convey.ShouldEqual, http.StatusMethodNotAllowed)
				convey.So(post.Header().Get("Allow"), convey.ShouldEqual, "GET, HEAD")
			})
		})

		convey.Convey("When fetching /api-docs", func() {
			w := serve(mux, http.MethodGet, "/api-docs", nil)

			convey.Convey("Then the ReDoc page points at the document", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "text/html; charset=utf-8")
				convey.So(w.Body.String(), convey.ShouldContainSubstring, "redoc-container")
				convey.So(w.Body.String(), convey.ShouldContainSubstring, "/openapi.yaml")
			})
		})
	})
}

func TestOpenAPIDocument(t *testing.T) {
	convey.Convey("Given the embedded OpenAPI document", t, func() {
		doc, err := yaml.Parser().Unmarshal(OpenAPI)

		convey.Convey("Then it parses and lists every public route", func() {
			convey.So(err, convey.ShouldBeNil)
			paths, ok := doc["paths"].(map[string]interface{})
			convey.So(ok, convey.ShouldBeTrue)
			for _, p := range []string{"/api/controls", "/api/figures", "/charts/{chart}", "/healthz", "/readyz", "/stats", "/metrics"} {
				convey.So(paths, convey.ShouldContainKey, p)
			}
		})
	})

	convey.Convey("Given a malformed document", t, func() {
		_, err := ToJSON([]byte("openapi: [unclosed"))

		convey.So(err, convey.ShouldNotBeNil)
	})
}

func TestSwaggerHandlerWithNilMux(t *testing.T) {
	convey.Convey("Given a nil mux", t, func() {
		convey.So(func() { Register(context.Background(), nil) }, convey.ShouldPanic)
	})
}
