package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/okian/laglens/internal/domain/aggregate"
	"github.com/okian/laglens/internal/domain/types"
)

const (
	chartWidth  = "600px"
	chartHeight = "400px"
	barColor    = "#5470c6"
)

// WriteHTML writes a page with one bar chart per pair.
func WriteHTML(w io.Writer, r Report) error {
	if err := r.check(); err != nil {
		return err
	}

	page := components.NewPage()
	page.PageTitle = "laglens lead/lag histograms"
	page.SetLayout(components.PageFlexLayout)

	for _, p := range r.Pairs {
		page.AddCharts(histogramBar(p, r.Population.Histogram(p), r.Population.Players(p)))
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func histogramBar(p types.Pair, h aggregate.Histogram, players int) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{
			Title:    p.Title(),
			Subtitle: fmt.Sprintf("%d players", players),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: xAxisName, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: yAxisName}),
	)
	bar.SetXAxis(lagLabels())

	data := make([]opts.BarData, len(h))
	for i, v := range h {
		data[i] = opts.BarData{Value: v, ItemStyle: &opts.ItemStyle{Color: barColor}}
	}
	bar.AddSeries(p.String(), data)
	return bar
}
