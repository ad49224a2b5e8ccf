package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/laglens/internal/config"
	"github.com/okian/laglens/internal/domain/types"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.DataDir, convey.ShouldEqual, "data")
			convey.So(cfg.BaseURL, convey.ShouldEqual, "https://www.basketball-reference.com")
			convey.So(cfg.SeasonFrom, convey.ShouldEqual, 2005)
			convey.So(cfg.SeasonTo, convey.ShouldEqual, 2019)
			convey.So(cfg.MinSeasons, convey.ShouldEqual, 1)
			convey.So(cfg.MetricList(), convey.ShouldResemble, types.DefaultMetrics())
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then durations are derived from the second fields", func() {
			convey.So(cfg.RequestTimeout(), convey.ShouldEqual, 30*time.Second)
			lo, hi := cfg.Delay()
			convey.So(lo, convey.ShouldEqual, 10*time.Second)
			convey.So(hi, convey.ShouldEqual, 15*time.Second)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"empty data dir", func(c *config.Config) { c.DataDir = " " }},
		{"empty base url", func(c *config.Config) { c.BaseURL = "" }},
		{"zero timeout", func(c *config.Config) { c.RequestTimeoutS = 0 }},
		{"negative retries", func(c *config.Config) { c.Retries = -1 }},
		{"inverted delay", func(c *config.Config) { c.DelayMinS, c.DelayMaxS = 5, 4 }},
		{"inverted seasons", func(c *config.Config) { c.SeasonFrom, c.SeasonTo = 2019, 2005 }},
		{"one metric", func(c *config.Config) { c.Metrics = []string{"BPM", "bpm"} }},
		{"zero min seasons", func(c *config.Config) { c.MinSeasons = 0 }},
	}

	convey.Convey("Given invalid configurations", t, func() {
		for _, tc := range cases {
			cfg := config.New()
			tc.mutate(cfg)

			convey.Convey("Then "+tc.name+" is rejected", func() {
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})
}
