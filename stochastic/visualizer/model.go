package visualizer

import (
	"errors"
	"math"
	"slices"

	"github.com/Fantom-foundation/lln-explorer/stochastic"
	"github.com/Fantom-foundation/lln-explorer/stochastic/statistics"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultPoints is the number of sample sizes plotted per series.
const DefaultPoints = 200

// NumDistributionPoints is the number of points of the plotted CDFs.
const NumDistributionPoints = 100

var ErrNoData = errors.New("no data to visualize")

// ChartData contains the statistical data of a run that is used for visualization.
type ChartData struct {
	Title    string  // description of the distribution
	Mean     float64 // theoretical mean μ
	Variance float64 // theoretical variance σ²
	Epsilon  float64 // deviation threshold ε
	Paths    int     // number of simulated paths
	Samples  int     // number of samples per path

	Sizes                []int       // plotted sample sizes, log-spaced in [1, N]
	RunningAverages      [][]float64 // running averages of the plotted paths at Sizes
	DeviationProbability []float64   // empirical deviation probability at Sizes
	ChebyshevBound       []float64   // Chebyshev bound at Sizes
	EmpiricalVariance    []float64   // empirical variance at Sizes
	TheoreticalVariance  []float64   // σ²/n at Sizes

	FinalECdf [][2]float64 // empirical CDF of the final running averages
	FinalCdf  [][2]float64 // normal approximation N(μ, σ²/N) of the final running averages
}

// NewChartData populates the view model from the result of a run. At most
// plotPaths sample paths and points sample sizes per series are retained.
func NewChartData(res *stochastic.Result, plotPaths, points int) (*ChartData, error) {
	if res == nil || res.Paths == nil {
		return nil, ErrNoData
	}
	m, n := res.NumPaths(), res.Samples()
	d := &ChartData{
		Title:    res.Distribution.String(),
		Mean:     res.Mean,
		Variance: res.Variance,
		Epsilon:  res.Epsilon,
		Paths:    m,
		Samples:  n,
		Sizes:    LogSpacedSizes(n, points),
	}

	for i := 0; i < min(plotPaths, m); i++ {
		d.RunningAverages = append(d.RunningAverages, pick(res.Paths.RawRowView(i), d.Sizes))
	}
	d.DeviationProbability = pick(res.DeviationProbability, d.Sizes)
	d.ChebyshevBound = pick(statistics.ChebyshevBound(res.Variance, n, res.Epsilon), d.Sizes)
	d.EmpiricalVariance = pick(res.EmpiricalVariance, d.Sizes)
	d.TheoreticalVariance = pick(statistics.TheoreticalVariance(res.Variance, n), d.Sizes)

	final, err := statistics.Column(res.Paths, n-1)
	if err != nil {
		return nil, err
	}
	d.FinalECdf = empiricalCdf(final, NumDistributionPoints)
	d.FinalCdf = normalCdf(res.Mean, math.Sqrt(res.Variance/float64(n)), d.FinalECdf)
	return d, nil
}

// LogSpacedSizes returns up to points distinct sample sizes in [1, n], spaced
// evenly on a logarithmic scale. The first size is 1 and the last is n.
func LogSpacedSizes(n, points int) []int {
	if n < 1 || points < 1 {
		return nil
	}
	if points == 1 || n == 1 {
		return []int{n}
	}
	sizes := make([]int, 0, points)
	step := math.Log(float64(n)) / float64(points-1)
	for i := 0; i < points; i++ {
		k := int(math.Round(math.Exp(step * float64(i))))
		k = min(max(k, 1), n)
		if len(sizes) == 0 || sizes[len(sizes)-1] < k {
			sizes = append(sizes, k)
		}
	}
	if sizes[len(sizes)-1] != n {
		sizes = append(sizes, n)
	}
	return sizes
}

// pick returns the values at the 1-based sample sizes.
func pick(values []float64, sizes []int) []float64 {
	res := make([]float64, len(sizes))
	for i, k := range sizes {
		res[i] = values[k-1]
	}
	return res
}

// empiricalCdf returns up to numPoints points (x, F(x)) of the empirical CDF of x.
func empiricalCdf(x []float64, numPoints int) [][2]float64 {
	sorted := slices.Clone(x)
	slices.Sort(sorted)
	step := max(len(sorted)/numPoints, 1)
	var points [][2]float64
	for i := 0; i < len(sorted); i += step {
		points = append(points, [2]float64{sorted[i], stat.CDF(sorted[i], stat.Empirical, sorted, nil)})
	}
	if last := sorted[len(sorted)-1]; points[len(points)-1][0] != last {
		points = append(points, [2]float64{last, 1})
	}
	return points
}

// normalCdf evaluates the CDF of N(mu, sigma²) at the abscissae of points.
func normalCdf(mu, sigma float64, points [][2]float64) [][2]float64 {
	res := make([][2]float64, len(points))
	if sigma <= 0 {
		for i, p := range points {
			if p[0] >= mu {
				res[i] = [2]float64{p[0], 1}
			} else {
				res[i] = [2]float64{p[0], 0}
			}
		}
		return res
	}
	normal := distuv.Normal{Mu: mu, Sigma: sigma}
	for i, p := range points {
		res[i] = [2]float64{p[0], normal.CDF(p[0])}
	}
	return res
}
