package types_test

import (
	"testing"

	types "github.com/okian/laglens/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPairs(t *testing.T) {
	Convey("Given three metrics", t, func() {
		metrics := []types.Metric{types.NetRating, types.BPM, types.VORP}

		Convey("When enumerating ordered pairs", func() {
			pairs := types.Pairs(metrics)

			Convey("Then every ordered combination of distinct metrics appears once", func() {
				So(len(pairs), ShouldEqual, 6)
				So(pairs[0], ShouldResemble, types.Pair{First: types.NetRating, Second: types.BPM})
				So(pairs[1], ShouldResemble, types.Pair{First: types.NetRating, Second: types.VORP})
				So(pairs[2], ShouldResemble, types.Pair{First: types.BPM, Second: types.NetRating})
			})

			Convey("And direction matters", func() {
				So(pairs, ShouldContain, types.Pair{First: types.BPM, Second: types.VORP})
				So(pairs, ShouldContain, types.Pair{First: types.VORP, Second: types.BPM})
			})
		})

		Convey("When the list has a single metric", func() {
			So(types.Pairs([]types.Metric{types.VORP}), ShouldBeEmpty)
		})
	})
}

func TestPairFormatting(t *testing.T) {
	Convey("Given a pair", t, func() {
		p := types.Pair{First: types.NetRating, Second: types.BPM}

		Convey("Then String joins with _vs_", func() {
			So(p.String(), ShouldEqual, "NET_RTG_vs_BPM")
		})

		Convey("And Title is human readable", func() {
			So(p.Title(), ShouldEqual, "NET_RTG vs. BPM")
		})
	})
}

func TestParseMetrics(t *testing.T) {
	Convey("Given raw metric names", t, func() {
		got := types.ParseMetrics([]string{" vorp", "BPM", "", "vorp", "net_rtg "})

		Convey("Then they are normalized and deduplicated in order", func() {
			So(got, ShouldResemble, []types.Metric{"VORP", "BPM", "NET_RTG"})
		})
	})

	Convey("Given the defaults", t, func() {
		So(len(types.DefaultMetrics()), ShouldEqual, 8)
		So(types.DefaultMetrics()[0], ShouldEqual, types.NetRating)
	})
}
