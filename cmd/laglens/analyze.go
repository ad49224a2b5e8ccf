package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/laglens/internal/adapters/report"
	"github.com/okian/laglens/internal/domain/types"
	"github.com/okian/laglens/pkg/logger"
)

func newAnalyzeCmd(e *env) *cobra.Command {
	var format, focus, out string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Build lead/lag histograms from the stored tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			var focusMetric types.Metric
			if parsed := types.ParseMetrics([]string{focus}); len(parsed) > 0 {
				focusMetric = parsed[0]
			}

			res, err := e.service().Analyze(ctx)
			if err != nil {
				e.log.Error(ctx, "analysis failed", logger.Error(err))
				return err
			}

			pairs := res.Pairs(focusMetric)
			if len(pairs) == 0 {
				return fmt.Errorf("%w: focus %q is not an analyzed metric", report.ErrNoPairs, focus)
			}

			paths, err := report.Write(f, report.Report{
				RunID:      res.RunID.String(),
				Population: res.Population,
				Pairs:      pairs,
			}, e.cfg.OutputDir, out, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			for _, p := range paths {
				e.log.Info(ctx, "report written", logger.String("path", p), logger.String("format", string(f)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", string(report.FormatTable), "report format: table, html, png or xlsx")
	cmd.Flags().StringVar(&focus, "focus", "", "only report pairs led by this metric")
	cmd.Flags().StringVar(&out, "out", "", "output file (png: directory); defaults under output_dir")
	return cmd
}
