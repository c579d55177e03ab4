package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"go.opentelemetry.io/otel/trace"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the global logger", t, func() {
		Convey("When initialized with defaults", func() {
			So(Init(), ShouldBeNil)

			Convey("Then Get returns a usable logger", func() {
				So(Get(), ShouldNotBeNil)
				So(Sync(), ShouldBeNil)
			})
		})

		Convey("When initialized twice", func() {
			So(Init(), ShouldBeNil)
			So(Init(WithFormat(FormatJSON)), ShouldBeNil)

			Convey("Then the second configuration wins", func() {
				So(Get(), ShouldNotBeNil)
			})
		})
	})
}

func TestLoggerJSONOutput(t *testing.T) {
	Convey("Given a JSON logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(Init(WithFormat("json"), WithOutput(&buf)), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging with fields", func() {
			Get().Info(ctx, "dataset loaded", Int("records", 42), String("path", "fires.csv"), Bool("ready", true), Error(errors.New("boom")))

			Convey("Then the line is valid JSON carrying the fields and the caller", func() {
				var line map[string]any
				So(json.Unmarshal(buf.Bytes(), &line), ShouldBeNil)
				So(line["msg"], ShouldEqual, "dataset loaded")
				So(line["records"], ShouldEqual, 42.0)
				So(line["path"], ShouldEqual, "fires.csv")
				So(line["ready"], ShouldEqual, true)
				So(line["error"], ShouldEqual, "boom")
				So(line["source"], ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When the context carries a span", func() {
			sc := trace.NewSpanContext(trace.SpanContextConfig{
				TraceID:    trace.TraceID{0x01},
				SpanID:     trace.SpanID{0x02},
				TraceFlags: trace.FlagsSampled,
			})
			Get().Info(trace.ContextWithSpanContext(ctx, sc), "traced")

			Convey("Then the trace and span ids are attached", func() {
				var line map[string]any
				So(json.Unmarshal(buf.Bytes(), &line), ShouldBeNil)
				So(line["traceID"], ShouldEqual, "01000000000000000000000000000000")
				So(line["spanID"], ShouldEqual, "0200000000000000")
			})
		})

		Convey("When logging below the configured level", func() {
			So(SetLevelString("warn"), ShouldBeNil)
			Get().Info(ctx, "hidden")
			Get().Debug(ctx, "hidden too")

			Convey("Then nothing is written", func() {
				So(buf.Len(), ShouldEqual, 0)
			})
		})

		Convey("When using a named logger with bound fields", func() {
			Named("figure").With(String("region", "WA")).Warn(ctx, "empty selection")

			Convey("Then component and bound fields are present", func() {
				var line map[string]any
				So(json.Unmarshal(buf.Bytes(), &line), ShouldBeNil)
				So(line["component"], ShouldEqual, "figure")
				So(line["region"], ShouldEqual, "WA")
				So(line["level"], ShouldEqual, "WARN")
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level strings", t, func() {
		So(Init(WithOutput(&bytes.Buffer{})), ShouldBeNil)

		Convey("Then known levels are accepted case-insensitively", func() {
			for _, lvl := range []string{"debug", "INFO", "", "warn", "Warning", "error"} {
				So(SetLevelString(lvl), ShouldBeNil)
			}
		})

		Convey("Then unknown levels are rejected", func() {
			err := SetLevelString("verbose")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "verbose")
		})
	})
}
