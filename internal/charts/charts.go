// Package charts renders lifetime stats as interactive HTML charts.
package charts

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"scoreboard-tracker/internal/analytics"
)

// Config holds shared chart options.
type Config struct {
	Title    string
	Subtitle string
	Width    string
	Height   string
}

// DefaultConfig returns the default chart configuration.
func DefaultConfig() Config {
	return Config{
		Width:  "900px",
		Height: "500px",
	}
}

// RenderLifetime writes a bar chart of per-player win rate and mean kills.
func RenderLifetime(stats []analytics.PlayerLifetime, cfg Config, outputPath string) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  cfg.Width,
			Height: cfg.Height,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    cfg.Title,
			Subtitle: cfg.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
		}),
	)

	labels := make([]string, len(stats))
	winRates := make([]opts.BarData, len(stats))
	kills := make([]opts.BarData, len(stats))
	for i, s := range stats {
		labels[i] = fmt.Sprintf("%s (%d)", s.Player, s.Games)
		winRates[i] = opts.BarData{Value: s.WinRate * 100}
		kills[i] = opts.BarData{Value: s.MeanKills}
	}

	bar.SetXAxis(labels).
		AddSeries("Win Rate %", winRates).
		AddSeries("Mean Kills", kills)

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// RenderHistory writes a line chart of one player's kills per recorded match.
func RenderHistory(points []analytics.MatchPoint, cfg Config, outputPath string) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  cfg.Width,
			Height: cfg.Height,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    cfg.Title,
			Subtitle: cfg.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
	)

	labels := make([]string, len(points))
	kills := make([]opts.LineData, len(points))
	for i, pt := range points {
		labels[i] = pt.Datetime
		kills[i] = opts.LineData{Value: pt.Kills}
	}

	line.SetXAxis(labels).
		AddSeries("Kills", kills).
		SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{
			Smooth: opts.Bool(true),
		}))

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := line.Render(f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
