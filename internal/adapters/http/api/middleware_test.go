package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

func TestErrorClassification(t *testing.T) {
	Convey("Given HTTP status codes", t, func() {
		So(getErrorType(http.StatusBadRequest), ShouldEqual, "client_error")
		So(getErrorType(http.StatusNotFound), ShouldEqual, "not_found")
		So(getErrorType(http.StatusServiceUnavailable), ShouldEqual, "unavailable")
		So(getErrorType(http.StatusInternalServerError), ShouldEqual, "server_error")
		So(getErrorType(http.StatusOK), ShouldEqual, "unknown")

		So(getErrorSeverity(http.StatusInternalServerError), ShouldEqual, "high")
		So(getErrorSeverity(http.StatusBadRequest), ShouldEqual, "medium")
		So(getErrorSeverity(http.StatusOK), ShouldEqual, "low")
	})
}

func TestResponseWriter(t *testing.T) {
	Convey("Given a wrapped response writer", t, func() {
		rec := httptest.NewRecorder()
		rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

		Convey("When the handler only writes a body", func() {
			_, err := rw.Write([]byte("hi"))

			Convey("Then the status stays 200", func() {
				So(err, ShouldBeNil)
				So(rw.statusCode, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldEqual, "hi")
			})
		})

		Convey("When the header is written", func() {
			rw.WriteHeader(http.StatusBadRequest)

			Convey("Then the first status is kept", func() {
				So(rw.statusCode, ShouldEqual, http.StatusBadRequest)
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestRequestLoggerTracePropagation(t *testing.T) {
	Convey("Given W3C trace context propagation", t, func() {
		otel.SetTextMapPropagator(propagation.TraceContext{})
		defer otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator())

		var seen trace.SpanContext
		h := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = trace.SpanContextFromContext(r.Context())
		}))

		Convey("When a request carries a traceparent header", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/controls", nil)
			req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
			h.ServeHTTP(httptest.NewRecorder(), req)

			Convey("Then the handler runs inside that trace", func() {
				So(seen.TraceID().String(), ShouldEqual, "4bf92f3577b34da6a3ce929d0e0e4736")
			})
		})
	})
}
