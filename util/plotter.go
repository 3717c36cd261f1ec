package util

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"spots-server/models"
)

const uncategorizedSeries = "Other"

// RenderSpotsMap writes an HTML page plotting each spot at its coordinates,
// one scatter series per category. A spot is drawn under its first category.
func RenderSpotsMap(w io.Writer, spots []models.StudySpot, categories []models.Category) error {
	byCategory := make(map[models.CategoryType]models.Category, len(categories))
	for _, c := range categories {
		byCategory[c.ID] = c
	}

	// keep series in category table order so the legend is stable
	order := make([]string, 0, len(categories)+1)
	points := make(map[string][]opts.GeoData)
	colors := make(map[string]string)
	for _, c := range categories {
		if _, seen := colors[c.Name]; !seen {
			order = append(order, c.Name)
			colors[c.Name] = c.Color
		}
	}

	for _, s := range spots {
		series := uncategorizedSeries
		glyph := models.IconUnknown.Glyph()
		if len(s.Categories) > 0 {
			if c, ok := byCategory[s.Categories[0]]; ok {
				series = c.Name
				glyph = c.Glyph
			}
		}
		if _, seen := colors[series]; !seen {
			order = append(order, series)
			colors[series] = ""
		}
		points[series] = append(points[series], opts.GeoData{
			Name:  glyph + " " + s.Name,
			Value: []float64{s.Location.Lng, s.Location.Lat},
		})
	}

	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Study Spots",
			Width:     "1000px",
			Height:    "700px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Study Spots",
		}),
		charts.WithGeoComponentOpts(opts.GeoComponent{
			Map:    "world",
			Silent: opts.Bool(true),
		}),
	)

	for _, name := range order {
		data, ok := points[name]
		if !ok {
			continue
		}
		seriesOpts := []charts.SeriesOpts{
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}",
			}),
		}
		if color := colors[name]; color != "" {
			seriesOpts = append(seriesOpts, charts.WithItemStyleOpts(opts.ItemStyle{Color: color}))
		}
		geo.AddSeries(name, types.ChartScatter, data, seriesOpts...)
	}

	return geo.Render(w)
}
