package repository_test

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/okian/wildfire/internal/adapters/repository"
	"github.com/okian/wildfire/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadFile(t *testing.T) {
	Convey("Given the sample wildfire CSV", t, func() {
		ctx := context.Background()

		Convey("When loading it", func() {
			records, report, err := repository.LoadFile(ctx, "testdata/wildfires.csv")

			Convey("Then well-formed rows are loaded", func() {
				So(err, ShouldBeNil)
				So(report.Rows, ShouldEqual, 10)
				So(report.Loaded, ShouldEqual, 8)
				So(len(records), ShouldEqual, 8)
			})

			Convey("Then slashed dates are read month-first", func() {
				first := records[0]
				So(first.Region, ShouldEqual, "NSW")
				So(first.Date, ShouldEqual, time.Date(2005, time.January, 4, 0, 0, 0, 0, time.UTC))
				So(first.Month, ShouldEqual, time.January)
				So(first.EstimatedFireArea, ShouldEqual, 8.68)
				So(first.Count, ShouldEqual, 4.0)
			})

			Convey("Then ISO dates are accepted too", func() {
				So(records[7].Region, ShouldEqual, "VI")
				So(records[7].Month, ShouldEqual, time.July)
				So(records[7].Year, ShouldEqual, 2006)
			})

			Convey("Then malformed rows are reported with their line", func() {
				So(len(report.Skipped), ShouldEqual, 2)
				So(report.Skipped[0].Line, ShouldEqual, 9)
				So(report.Skipped[0].Reason, ShouldContainSubstring, "not-a-date")
				So(report.Skipped[1].Line, ShouldEqual, 11)
				So(report.Skipped[1].Reason, ShouldContainSubstring, "Count")
			})
		})

		Convey("When the file does not exist", func() {
			_, _, err := repository.LoadFile(ctx, "testdata/nope.csv")

			Convey("Then the load fails", func() {
				So(errors.Is(err, repository.ErrOpenDataset), ShouldBeTrue)
				So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
			})
		})

		Convey("When a required column is absent", func() {
			_, _, err := repository.LoadFile(ctx, "testdata/missing_count.csv")

			Convey("Then the load fails naming the column", func() {
				So(errors.Is(err, repository.ErrMissingColumn), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "Count")
			})
		})
	})
}

func TestLoadCSV(t *testing.T) {
	Convey("Given CSV input from a reader", t, func() {
		ctx := context.Background()

		Convey("When the header differs in case and column order", func() {
			in := "\ufeffcount,REGION,estimated_fire_area,date\n3,QL,1.5,2/1/2010\n"
			records, report, err := repository.LoadCSV(ctx, strings.NewReader(in))

			Convey("Then columns are located by name", func() {
				So(err, ShouldBeNil)
				So(report.Loaded, ShouldEqual, 1)
				So(records[0].Region, ShouldEqual, "QL")
				So(records[0].Month, ShouldEqual, time.February)
				So(records[0].Count, ShouldEqual, 3.0)
				So(records[0].EstimatedFireArea, ShouldEqual, 1.5)
			})
		})

		Convey("When a row is too short", func() {
			in := "Region,Date,Estimated_fire_area,Count\nWA,1/1/2005\nWA,1/2/2005,2,2\n"
			records, report, err := repository.LoadCSV(ctx, strings.NewReader(in))

			Convey("Then it is skipped and the rest loads", func() {
				So(err, ShouldBeNil)
				So(len(records), ShouldEqual, 1)
				So(len(report.Skipped), ShouldEqual, 1)
				So(report.Skipped[0].Line, ShouldEqual, 2)
			})
		})

		Convey("When area cells are blank or NaN", func() {
			in := "Region,Date,Estimated_fire_area,Count\n" +
				"WA,1/4/2005,NaN,3\n" +
				"WA,1/5/2005,10,2\n" +
				"WA,2/5/2005,,7\n"
			records, report, err := repository.LoadCSV(ctx, strings.NewReader(in))

			Convey("Then the rows load with their counts and no area", func() {
				So(err, ShouldBeNil)
				So(report.Skipped, ShouldBeEmpty)
				So(len(records), ShouldEqual, 3)
				So(records[0].HasArea, ShouldBeFalse)
				So(records[0].Count, ShouldEqual, 3.0)
				So(records[1].HasArea, ShouldBeTrue)
				So(records[1].EstimatedFireArea, ShouldEqual, 10.0)
				So(records[2].HasArea, ShouldBeFalse)
				So(records[2].Count, ShouldEqual, 7.0)
			})
		})

		Convey("When a number is infinite or the count is missing", func() {
			in := "Region,Date,Estimated_fire_area,Count\n" +
				"WA,1/4/2005,Inf,3\n" +
				"WA,1/5/2005,1,-Inf\n" +
				"WA,1/6/2005,1,\n" +
				"WA,1/7/2005,1,NaN\n" +
				"WA,1/8/2005,1,1\n"
			records, report, err := repository.LoadCSV(ctx, strings.NewReader(in))

			Convey("Then those rows are skipped with a reason", func() {
				So(err, ShouldBeNil)
				So(len(records), ShouldEqual, 1)
				So(len(report.Skipped), ShouldEqual, 4)
				So(report.Skipped[0].Reason, ShouldContainSubstring, "non-finite Estimated_fire_area")
				So(report.Skipped[1].Reason, ShouldContainSubstring, "non-finite Count")
				So(report.Skipped[2].Reason, ShouldEqual, "missing Count")
				So(report.Skipped[3].Reason, ShouldEqual, "missing Count")
			})
		})

		Convey("When the reader fails after some rows", func() {
			in := io.MultiReader(
				strings.NewReader("Region,Date,Estimated_fire_area,Count\nWA,1/4/2005,1,1\n"),
				iotest.ErrReader(errors.New("disk gone")),
			)
			records, _, err := repository.LoadCSV(ctx, in)

			Convey("Then the load stops with the read error", func() {
				So(records, ShouldBeNil)
				So(errors.Is(err, repository.ErrReadDataset), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "disk gone")
			})
		})

		Convey("When a row has a bare quote", func() {
			in := "Region,Date,Estimated_fire_area,Count\nWA,1/4/2005,\"1,1\nWA,1/5/2005,2,2\n"
			_, report, err := repository.LoadCSV(ctx, strings.NewReader(in))

			Convey("Then the parse error is reported and loading goes on", func() {
				So(err, ShouldBeNil)
				So(len(report.Skipped), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When the input is empty", func() {
			_, _, err := repository.LoadCSV(ctx, strings.NewReader(""))

			So(errors.Is(err, repository.ErrEmptyDataset), ShouldBeTrue)
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, _, err := repository.LoadCSV(cctx, strings.NewReader("Region,Date,Estimated_fire_area,Count\nWA,1/1/2005,1,1\n"))

			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestMemoryStore(t *testing.T) {
	Convey("Given a memory store over a few records", t, func() {
		ctx := context.Background()
		day := func(y int, m time.Month) time.Time { return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC) }
		records := []model.Record{
			model.NewRecord("WA", day(2007, time.May), 1, 1),
			model.NewRecord("WA", day(2005, time.June), 2, 2),
			model.NewRecord("NT", day(2005, time.June), 3, 3),
			model.NewRecord("WA", day(2005, time.July), 4, 4),
		}
		store := repository.NewMemoryStore(records)

		Convey("Then selection uses both region and year", func() {
			rows := store.Select(ctx, "WA", 2005)
			So(len(rows), ShouldEqual, 2)
			So(rows[0].Month, ShouldEqual, time.June)
			So(rows[1].Month, ShouldEqual, time.July)
			So(store.Select(ctx, "NT", 2007), ShouldBeEmpty)
			So(store.Select(ctx, "XX", 2005), ShouldBeEmpty)
		})

		Convey("Then years are distinct and ascending", func() {
			So(store.Years(ctx), ShouldResemble, []int{2005, 2007})
		})

		Convey("Then region codes are distinct and sorted", func() {
			So(store.RegionCodes(ctx), ShouldResemble, []string{"NT", "WA"})
		})

		Convey("Then count and records reflect the input", func() {
			So(store.Count(ctx), ShouldEqual, 4)
			So(store.Records(ctx), ShouldResemble, records)
		})

		Convey("When the caller mutates returned slices or the input", func() {
			years := store.Years(ctx)
			years[0] = 1900
			records[0].Region = "ZZ"

			Convey("Then the store is unaffected", func() {
				So(store.Years(ctx)[0], ShouldEqual, 2005)
				So(store.RegionCodes(ctx), ShouldResemble, []string{"NT", "WA"})
				So(store.Select(ctx, "WA", 2007), ShouldHaveLength, 1)
			})
		})
	})
}
