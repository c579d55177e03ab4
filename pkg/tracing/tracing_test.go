package tracing_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/wildfire/pkg/tracing"
)

func TestSetup(t *testing.T) {
	Convey("Given tracing setup", t, func() {
		Convey("When no endpoint is configured", func() {
			shutdown, err := tracing.Setup(context.Background(), "wildfire-test", "")

			Convey("Then a no-op shutdown is returned", func() {
				So(err, ShouldBeNil)

				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				So(shutdown(ctx), ShouldBeNil)
			})

			Convey("Then spans can still be started", func() {
				ctx, span := tracing.Start(context.Background(), "noop")
				So(ctx, ShouldNotBeNil)
				span.End()
			})
		})

		Convey("When an endpoint is configured", func() {
			// Non-routable; nothing is exported before shutdown.
			shutdown, err := tracing.Setup(context.Background(), "wildfire-test", "http://192.0.2.1:4318")
			Reset(func() {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				_ = shutdown(ctx)
			})

			Convey("Then a provider is installed and spans are recorded", func() {
				So(err, ShouldBeNil)

				_, span := tracing.Start(context.Background(), "startup-check")
				So(span.SpanContext().IsValid(), ShouldBeTrue)
				span.End()
			})
		})
	})
}
