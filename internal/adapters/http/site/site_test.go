package site

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/wildfire/pkg/logger"
)

func TestSiteHandler(t *testing.T) {
	Convey("Given a site handler", t, func() {
		So(logger.Init(logger.WithOutput(io.Discard)), ShouldBeNil)
		ctx := context.Background()
		mux := http.NewServeMux()

		Convey("When registering the site handler", func() {
			Register(ctx, mux)

			Convey("Then it serves the dashboard page at /", func() {
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
				So(w.Header().Get("Cache-Control"), ShouldEqual, "no-cache")
				body := w.Body.String()
				So(body, ShouldContainSubstring, "Australia Historical Wildfires")
				So(body, ShouldContainSubstring, `id="region"`)
				So(body, ShouldContainSubstring, `id="year"`)
				So(body, ShouldContainSubstring, `id="plot1"`)
				So(body, ShouldContainSubstring, `id="plot2"`)
			})

			Convey("And it serves the script and stylesheet", func() {
				for path, want := range map[string]string{
					"/app.js":    "/api/figures",
					"/style.css": "#503D36",
				} {
					req := httptest.NewRequest(http.MethodGet, path, nil)
					w := httptest.NewRecorder()
					mux.ServeHTTP(w, req)

					So(w.Code, ShouldEqual, http.StatusOK)
					So(w.Body.String(), ShouldContainSubstring, want)
				}
			})

			Convey("And unknown assets are not found", func() {
				req := httptest.NewRequest(http.MethodGet, "/some-asset", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusNotFound)
			})

			Convey("And other methods are refused", func() {
				req := httptest.NewRequest(http.MethodPost, "/", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			})
		})
	})
}

func TestSiteHandlerWithNilMux(t *testing.T) {
	Convey("Given a nil mux", t, func() {
		Convey("Then registering panics", func() {
			So(func() { Register(context.Background(), nil) }, ShouldPanic)
		})
	})
}
