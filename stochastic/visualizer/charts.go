package visualizer

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// HTML references for the rendered pages.
const (
	PathsRef     = "paths"
	DeviationRef = "deviation"
	VarianceRef  = "variance"
	FinalRef     = "final"
)

// Refs lists the rendered pages in the order of the index page.
var Refs = []string{PathsRef, DeviationRef, VarianceRef, FinalRef}

// MainHtml is the index page.
const MainHtml = `
<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <title>LLN Explorer</title>
  </head>
  <body>
    <h1>LLN Explorer: %s</h1>
    <ul>
    <li> <h3> <a href="/` + PathsRef + `"> Sample Paths </a> </h3> </li>
    <li> <h3> <a href="/` + DeviationRef + `"> Deviation Probability </a> </h3> </li>
    <li> <h3> <a href="/` + VarianceRef + `"> Empirical Variance </a> </h3> </li>
    <li> <h3> <a href="/` + FinalRef + `"> Final Running Averages </a> </h3> </li>
    </ul>
</body>
</html>
`

// globalOptions returns the options shared by all charts.
func globalOptions(title, subtitle string, xAxis opts.XAxis, yAxis opts.YAxis) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Theme:     types.ThemeChalk,
			PageTitle: title,
		}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithXAxisOpts(xAxis),
		charts.WithYAxisOpts(yAxis),
	}
}

// sampleSizeAxis is the logarithmic x-axis of the sample size.
var sampleSizeAxis = opts.XAxis{Name: "n", Type: "log"}

// convertSeries converts values at the sample sizes to chart points.
func convertSeries(sizes []int, values []float64) []opts.LineData {
	items := make([]opts.LineData, 0, len(sizes))
	for i, k := range sizes {
		items = append(items, opts.LineData{Value: [2]float64{float64(k), values[i]}})
	}
	return items
}

// convertPoints converts CDF points to chart points.
func convertPoints(data [][2]float64) []opts.LineData {
	items := make([]opts.LineData, 0, len(data))
	for _, pair := range data {
		items = append(items, opts.LineData{Value: pair})
	}
	return items
}

// constant returns a series of a constant value at the sample sizes.
func constant(sizes []int, value float64) []float64 {
	res := make([]float64, len(sizes))
	for i := range res {
		res[i] = value
	}
	return res
}

// newPathsChart plots the running averages of the sample paths and the theoretical mean.
func newPathsChart(d *ChartData) *charts.Line {
	chart := charts.NewLine()
	chart.SetGlobalOptions(globalOptions(
		"Running Averages",
		fmt.Sprintf("%d of %d paths of %v", len(d.RunningAverages), d.Paths, d.Title),
		sampleSizeAxis,
		opts.YAxis{Name: "X̄ₙ", Scale: true},
	)...)
	for i, path := range d.RunningAverages {
		chart.AddSeries(fmt.Sprintf("path %d", i), convertSeries(d.Sizes, path))
	}
	chart.AddSeries(fmt.Sprintf("μ=%g", d.Mean), convertSeries(d.Sizes, constant(d.Sizes, d.Mean)))
	return chart
}

// newDeviationChart plots the deviation probability against the Chebyshev bound.
func newDeviationChart(d *ChartData) *charts.Line {
	chart := charts.NewLine()
	chart.SetGlobalOptions(globalOptions(
		"Deviation Probability",
		fmt.Sprintf("P(|X̄ₙ-μ|>%g) over %d paths of %v", d.Epsilon, d.Paths, d.Title),
		sampleSizeAxis,
		opts.YAxis{Name: "probability", Min: 0, Max: 1},
	)...)
	chart.AddSeries("empirical", convertSeries(d.Sizes, d.DeviationProbability)).
		AddSeries("Chebyshev bound", convertSeries(d.Sizes, d.ChebyshevBound))
	return chart
}

// newVarianceChart plots the empirical variance against σ²/n.
func newVarianceChart(d *ChartData) *charts.Line {
	chart := charts.NewLine()
	chart.SetGlobalOptions(globalOptions(
		"Empirical Variance",
		fmt.Sprintf("Var(X̄ₙ) over %d paths of %v", d.Paths, d.Title),
		sampleSizeAxis,
		opts.YAxis{Name: "variance", Type: "log"},
	)...)
	chart.AddSeries("empirical", convertSeries(d.Sizes, d.EmpiricalVariance)).
		AddSeries("σ²/n", convertSeries(d.Sizes, d.TheoreticalVariance))
	return chart
}

// newFinalChart plots the eCDF of the final running averages against the normal approximation.
func newFinalChart(d *ChartData) *charts.Line {
	chart := charts.NewLine()
	chart.SetGlobalOptions(globalOptions(
		"Final Running Averages",
		fmt.Sprintf("distribution of X̄ₙ at n=%d", d.Samples),
		opts.XAxis{Name: "X̄ₙ", Type: "value", Scale: true},
		opts.YAxis{Name: "F", Min: 0, Max: 1},
	)...)
	chart.AddSeries("eCDF", convertPoints(d.FinalECdf)).
		AddSeries(fmt.Sprintf("N(μ, σ²/%d)", d.Samples), convertPoints(d.FinalCdf))
	return chart
}

// renderers maps page references to their chart constructors.
var renderers = map[string]func(*ChartData) *charts.Line{
	PathsRef:     newPathsChart,
	DeviationRef: newDeviationChart,
	VarianceRef:  newVarianceChart,
	FinalRef:     newFinalChart,
}

// Render writes the page of the given reference.
func Render(w io.Writer, d *ChartData, ref string) error {
	newChart, ok := renderers[ref]
	if !ok {
		return fmt.Errorf("unknown chart %q", ref)
	}
	page := components.NewPage()
	page.PageTitle = "LLN Explorer"
	page.AddCharts(newChart(d))
	return page.Render(w)
}

// WriteCharts renders all pages as HTML files into dir and returns their paths.
func WriteCharts(dir string, d *ChartData) ([]string, error) {
	if d == nil {
		return nil, ErrNoData
	}
	var files []string
	for _, ref := range Refs {
		path := filepath.Join(dir, ref+".html")
		if err := writeChart(path, d, ref); err != nil {
			return files, err
		}
		files = append(files, path)
	}
	return files, nil
}

func writeChart(path string, d *ChartData, ref string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create chart %v; %w", path, err)
	}
	if err := Render(f, d, ref); err != nil {
		f.Close()
		return fmt.Errorf("cannot render chart %v; %w", path, err)
	}
	return f.Close()
}

// NewHandler returns the handler serving the index page and all charts.
func NewHandler(d *ChartData) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, MainHtml, d.Title)
	})
	for _, ref := range Refs {
		mux.HandleFunc("/"+ref, func(w http.ResponseWriter, r *http.Request) {
			if err := Render(w, d, ref); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		})
	}
	return mux
}

// FireUpWeb fires up a new web-server for data visualisation.
func FireUpWeb(d *ChartData, addr string) error {
	return http.ListenAndServe(":"+addr, NewHandler(d))
}
