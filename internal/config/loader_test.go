package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/laglens/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.DataDir, convey.ShouldEqual, "data")
				convey.So(cfg.DelayMinS, convey.ShouldEqual, 10)
				convey.So(cfg.DelayMaxS, convey.ShouldEqual, 15)
				convey.So(len(cfg.Metrics), convey.ShouldEqual, 8)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("LAGLENS_DATA_DIR", "/tmp/laglens")
			_ = os.Setenv("LAGLENS_SEASON_FROM", "2010")
			_ = os.Setenv("LAGLENS_DELAY_MIN_S", "0")
			_ = os.Setenv("LAGLENS_DELAY_MAX_S", "1")
			_ = os.Setenv("LAGLENS_METRICS", "BPM,VORP,NET_RTG")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DataDir, convey.ShouldEqual, "/tmp/laglens")
				convey.So(cfg.SeasonFrom, convey.ShouldEqual, 2010)
				convey.So(cfg.SeasonTo, convey.ShouldEqual, 2019)
				convey.So(cfg.DelayMinS, convey.ShouldEqual, 0)
				convey.So(cfg.DelayMaxS, convey.ShouldEqual, 1)
				convey.So(cfg.Metrics, convey.ShouldResemble, []string{"BPM", "VORP", "NET_RTG"})
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
log_level: debug
log_format: json
output_dir: reports
season_from: 2008
season_to: 2012
min_seasons: 4
metrics:
  - BPM
  - VORP
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("LAGLENS_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.OutputDir, convey.ShouldEqual, "reports")
				convey.So(cfg.SeasonFrom, convey.ShouldEqual, 2008)
				convey.So(cfg.SeasonTo, convey.ShouldEqual, 2012)
				convey.So(cfg.MinSeasons, convey.ShouldEqual, 4)
				convey.So(cfg.Metrics, convey.ShouldResemble, []string{"BPM", "VORP"})
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
data_dir: from-file
season_to: 2012
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("LAGLENS_CONFIG", tmpFile)
			_ = os.Setenv("LAGLENS_DATA_DIR", "from-env")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DataDir, convey.ShouldEqual, "from-env")
				convey.So(cfg.SeasonTo, convey.ShouldEqual, 2012)
				convey.So(cfg.SeasonFrom, convey.ShouldEqual, 2005)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("LAGLENS_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("LAGLENS_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an inverted season range", func() {
			_ = os.Setenv("LAGLENS_SEASON_FROM", "2019")
			_ = os.Setenv("LAGLENS_SEASON_TO", "2005")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "season_to")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "laglens-config-*.yaml")
	if err != nil {
		panic(err)
	}
	defer func() { _ = tmpFile.Close() }()

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}

func clearConfigEnvVars() {
	for _, k := range []string{
		"LAGLENS_CONFIG",
		"LAGLENS_DATA_DIR",
		"LAGLENS_SEASON_FROM",
		"LAGLENS_SEASON_TO",
		"LAGLENS_DELAY_MIN_S",
		"LAGLENS_DELAY_MAX_S",
		"LAGLENS_METRICS",
	} {
		_ = os.Unsetenv(k)
	}
}
