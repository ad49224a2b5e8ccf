package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/laglens/internal/adapters/bbref"
	"github.com/okian/laglens/internal/adapters/repository"
	service "github.com/okian/laglens/internal/app"
	"github.com/okian/laglens/internal/domain/aggregate"
	"github.com/okian/laglens/internal/domain/model"
	"github.com/okian/laglens/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeScraper struct {
	calls []string
	fail  bbref.Kind
}

func (f *fakeScraper) Scrape(_ context.Context, kind bbref.Kind, from, to int) (model.Table, error) {
	f.calls = append(f.calls, string(kind))
	if kind == f.fail {
		return model.Table{}, bbref.ErrFetch
	}
	t := model.Table{Name: string(kind), Columns: []types.Metric{"PTS"}}
	for y := from; y <= to; y++ {
		t.Rows = append(t.Rows, model.PlayerSeason{
			PlayerID: "p01", Player: "P", Season: labelFor(y), Team: "AAA",
			Stats: map[types.Metric]float64{"PTS": float64(y)},
		})
	}
	return t, nil
}

func labelFor(end int) string {
	return map[int]string{2005: "2004-2005", 2006: "2005-2006", 2007: "2006-2007"}[end]
}

func stat(id, seasonLabel, team string, bpm, vorp *float64) model.PlayerSeason {
	r := model.PlayerSeason{PlayerID: id, Player: id, Season: seasonLabel, Team: team, Position: "G"}
	if bpm != nil {
		r.Set(types.BPM, *bpm)
	}
	if vorp != nil {
		r.Set(types.VORP, *vorp)
	}
	return r
}

func f(v float64) *float64 { return &v }

func advancedTable() model.Table {
	return model.Table{
		Name:    string(bbref.Advanced),
		Columns: []types.Metric{types.BPM, types.VORP},
		Rows: []model.PlayerSeason{
			stat("x01", "2004-2005", "AAA", f(1), f(0)),
			stat("x01", "2005-2006", "AAA", f(0), f(0)),
			stat("x01", "2006-2007", "AAA", f(0), f(1)),
			stat("y01", "2004-2005", "TOT", f(2), f(2)),
			stat("y01", "2004-2005", "AAA", f(5), f(5)),
			stat("y01", "2004-2005", "BBB", f(7), f(7)),
			stat("z01", "2004-2005", "CCC", f(1), nil),
		},
	}
}

func TestService_Scrape(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service with a scraper and a CSV store", t, func() {
		store := repository.NewCSVStore(t.TempDir())
		scraper := &fakeScraper{}
		svc := service.New(service.WithStore(store), service.WithScraper(scraper))

		Convey("When two kinds are scraped", func() {
			err := svc.Scrape(ctx, []bbref.Kind{bbref.Totals, bbref.Advanced}, 2005, 2007)

			Convey("Then each table is fetched and saved", func() {
				So(err, ShouldBeNil)
				So(scraper.calls, ShouldResemble, []string{"totals", "advanced"})
				So(store.Exists(ctx, "totals"), ShouldBeTrue)
				got, lerr := store.LoadTable(ctx, "advanced")
				So(lerr, ShouldBeNil)
				So(len(got.Rows), ShouldEqual, 3)
			})
		})

		Convey("When a kind fails to scrape", func() {
			scraper.fail = bbref.PerPoss
			err := svc.Scrape(ctx, bbref.Kinds(), 2005, 2005)

			Convey("Then the error is wrapped and later kinds are not attempted", func() {
				So(errors.Is(err, bbref.ErrFetch), ShouldBeTrue)
				So(scraper.calls, ShouldResemble, []string{"totals", "per_poss"})
				So(store.Exists(ctx, "advanced"), ShouldBeFalse)
			})
		})
	})

	Convey("Given a service without a scraper", t, func() {
		svc := service.New(service.WithStore(repository.NewCSVStore(t.TempDir())))

		Convey("Then Scrape reports ErrNoScraper", func() {
			So(errors.Is(svc.Scrape(ctx, bbref.Kinds(), 2005, 2005), service.ErrNoScraper), ShouldBeTrue)
		})
	})
}

func TestService_Analyze(t *testing.T) {
	ctx := context.Background()

	Convey("Given a store holding an advanced table", t, func() {
		store := repository.NewCSVStore(t.TempDir())
		So(store.SaveTable(ctx, advancedTable()), ShouldBeNil)
		metrics := []types.Metric{types.BPM, types.VORP}
		bpmVorp := types.Pair{First: types.BPM, Second: types.VORP}
		vorpBpm := types.Pair{First: types.VORP, Second: types.BPM}

		Convey("When the analysis runs", func() {
			svc := service.New(service.WithStore(store), service.WithMetrics(metrics))
			res, err := svc.Analyze(ctx)
			So(err, ShouldBeNil)

			Convey("Then the run is identified and summarized", func() {
				So(res.RunID.String(), ShouldNotBeEmpty)
				So(res.Players, ShouldEqual, 3)
				So(res.TradeDrops, ShouldEqual, 2)
				So(res.Rows, ShouldEqual, 5)
				So(res.Pairs(""), ShouldResemble, []types.Pair{bpmVorp, vorpBpm})
				So(res.Pairs(types.VORP), ShouldResemble, []types.Pair{vorpBpm})
			})

			Convey("Then complete careers are accumulated per ordered pair", func() {
				So(res.Population.Histogram(bpmVorp), ShouldResemble, aggregate.Histogram{0, 0, 1, 0, 1, 0, 0, 0, 0})
				So(res.Population.Histogram(vorpBpm), ShouldResemble, aggregate.Histogram{0, 0, 0, 0, 1, 0, 1, 0, 0})
				So(res.Population.Players(bpmVorp), ShouldEqual, 2)
			})

			Convey("Then peak lags are counted", func() {
				So(res.Population.LagCounts(bpmVorp), ShouldResemble, []aggregate.LagCount{{Lag: -2, Count: 1}, {Lag: 0, Count: 1}})
				So(res.Population.LagCounts(vorpBpm), ShouldResemble, []aggregate.LagCount{{Lag: 0, Count: 1}, {Lag: 2, Count: 1}})
			})

			Convey("Then careers with a missing value are skipped", func() {
				So(res.Population.Skipped(bpmVorp), ShouldEqual, 1)
				So(res.Population.Skipped(vorpBpm), ShouldEqual, 1)
			})
		})

		Convey("When short careers are excluded", func() {
			svc := service.New(service.WithStore(store), service.WithMetrics(metrics), service.WithMinSeasons(2))
			res, err := svc.Analyze(ctx)

			Convey("Then only the long career contributes", func() {
				So(err, ShouldBeNil)
				So(res.Players, ShouldEqual, 1)
				So(res.Population.Histogram(bpmVorp), ShouldResemble, aggregate.Histogram{0, 0, 1, 0, 0, 0, 0, 0, 0})
				So(res.Population.Skipped(bpmVorp), ShouldEqual, 0)
			})
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := service.New(service.WithStore(store)).Analyze(cctx)

			Convey("Then the analysis stops with the context error", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})

	Convey("Given a store where a traded season leaves no total row", t, func() {
		store := repository.NewCSVStore(t.TempDir())
		So(store.SaveTable(ctx, model.Table{
			Name:    string(bbref.Advanced),
			Columns: []types.Metric{types.BPM, types.VORP},
			Rows: []model.PlayerSeason{
				stat("x01", "2004-2005", "AAA", f(1), f(0)),
				stat("x01", "2005-2006", "AAA", f(0), f(0)),
				stat("x01", "2006-2007", "AAA", f(0), f(1)),
				stat("g01", "2004-2005", "AAA", f(1), f(1)),
				stat("g01", "2005-2006", "AAA", f(2), f(2)),
				stat("g01", "2005-2006", "BBB", f(3), f(3)),
				stat("g01", "2006-2007", "BBB", f(4), f(4)),
				stat("t01", "2004-2005", "AAA", f(1), f(0)),
				stat("t01", "2005-2006", "2TM", f(0), f(1)),
				stat("t01", "2005-2006", "AAA", f(5), f(5)),
				stat("t01", "2005-2006", "BBB", f(5), f(5)),
			},
		}), ShouldBeNil)
		bpmVorp := types.Pair{First: types.BPM, Second: types.VORP}

		Convey("When the analysis runs", func() {
			svc := service.New(service.WithStore(store), service.WithMetrics([]types.Metric{types.BPM, types.VORP}))
			res, err := svc.Analyze(ctx)
			So(err, ShouldBeNil)

			Convey("Then the career with a missing season is not correlated", func() {
				So(res.TradeDrops, ShouldEqual, 4)
				So(res.Gaps, ShouldEqual, 1)
				So(res.Players, ShouldEqual, 2)
				So(res.Population.Players(bpmVorp), ShouldEqual, 2)
				So(res.Population.Skipped(bpmVorp), ShouldEqual, 1)
			})

			Convey("Then the 2TM row stands in for the traded season", func() {
				So(res.Population.LagCounts(bpmVorp), ShouldResemble, []aggregate.LagCount{{Lag: -2, Count: 1}, {Lag: -1, Count: 1}})
			})
		})
	})

	Convey("Given an empty store", t, func() {
		svc := service.New(service.WithStore(repository.NewCSVStore(t.TempDir())))

		Convey("Then Analyze reports ErrNoData", func() {
			_, err := svc.Analyze(ctx)
			So(errors.Is(err, service.ErrNoData), ShouldBeTrue)
		})
	})

	Convey("Given a service without a store", t, func() {
		Convey("Then Analyze reports ErrNoStore", func() {
			_, err := service.New().Analyze(ctx)
			So(errors.Is(err, service.ErrNoStore), ShouldBeTrue)
		})
	})
}
