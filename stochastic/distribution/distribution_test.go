// Copyright 2024 Fantom Foundation
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package distribution

import (
	"errors"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// newTestRand creates a random generator with a fixed seed.
func newTestRand(stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(4711, stream))
}

func TestNew_CreatesAllFamilies(t *testing.T) {
	p := DefaultParams()
	for _, family := range Families() {
		t.Run(string(family), func(t *testing.T) {
			d, err := New(string(family), p)
			if err != nil {
				t.Fatalf("cannot create distribution; %v", err)
			}
			if d.Family() != family {
				t.Errorf("unexpected family; got %v, want %v", d.Family(), family)
			}
			if d.String() == "" {
				t.Errorf("missing description")
			}
		})
	}
}

func TestNew_IsCaseInsensitive(t *testing.T) {
	d, err := New("  Normal ", DefaultParams())
	if err != nil {
		t.Fatalf("cannot create distribution; %v", err)
	}
	if d.Family() != NormalFamily {
		t.Errorf("unexpected family %v", d.Family())
	}
}

func TestNew_RejectsUnknownFamily(t *testing.T) {
	for _, name := range []string{"", "poisson", "gauss"} {
		if _, err := New(name, DefaultParams()); !errors.Is(err, ErrUnknownFamily) {
			t.Errorf("expected ErrUnknownFamily for %q, got %v", name, err)
		}
	}
}

func TestMoments_AreClosedForm(t *testing.T) {
	tests := []struct {
		name     string
		dist     Distribution
		mean     float64
		variance float64
	}{
		{"normal", NewNormal(5, 2), 5, 4},
		{"bernoulli", NewBernoulli(0.7), 0.7, 0.21},
		{"uniform-unit", NewUniform(0, 1), 0.5, 1.0 / 12},
		{"uniform", NewUniform(-2, 4), 1, 3},
		{"exponential", NewExponential(4), 0.25, 1.0 / 16},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.dist.Mean(); math.Abs(got-test.mean) > 1e-12 {
				t.Errorf("unexpected mean; got %v, want %v", got, test.mean)
			}
			if got := test.dist.Variance(); math.Abs(got-test.variance) > 1e-12 {
				t.Errorf("unexpected variance; got %v, want %v", got, test.variance)
			}
		})
	}
}

func TestSample_NonPositiveLengthReturnsNil(t *testing.T) {
	for _, family := range Families() {
		d, _ := New(string(family), DefaultParams())
		if got := d.Sample(newTestRand(0), 0); got != nil {
			t.Errorf("%v: expected nil sample for n=0, got %v", family, got)
		}
		if got := d.Sample(newTestRand(0), -3); got != nil {
			t.Errorf("%v: expected nil sample for n<0, got %v", family, got)
		}
	}
}

func TestSample_IsReproducibleForSameStream(t *testing.T) {
	for _, family := range Families() {
		d, _ := New(string(family), DefaultParams())
		a := d.Sample(newTestRand(7), 100)
		b := d.Sample(newTestRand(7), 100)
		if !slices.Equal(a, b) {
			t.Errorf("%v: samples of the same stream differ", family)
		}
		c := d.Sample(newTestRand(8), 100)
		if slices.Equal(a, c) {
			t.Errorf("%v: samples of different streams are identical", family)
		}
	}
}

func TestSampleInto_MatchesSample(t *testing.T) {
	d := NewNormal(1, 3)
	want := d.Sample(newTestRand(3), 64)
	got := make([]float64, 64)
	d.SampleInto(newTestRand(3), got)
	if !slices.Equal(got, want) {
		t.Errorf("SampleInto and Sample disagree")
	}
}

func TestSample_BernoulliDrawsAreBinary(t *testing.T) {
	draws := NewBernoulli(0.3).Sample(newTestRand(1), 100_000)
	for _, x := range draws {
		if x != 0.0 && x != 1.0 {
			t.Fatalf("bernoulli draw %v is not binary", x)
		}
	}
	if mean := stat.Mean(draws, nil); math.Abs(mean-0.3) > 0.01 {
		t.Errorf("bernoulli sample mean %v too far from 0.3", mean)
	}
}

func TestSample_UniformDrawsAreInRange(t *testing.T) {
	draws := NewUniform(-1, 3).Sample(newTestRand(2), 100_000)
	for _, x := range draws {
		if x < -1 || x >= 3 {
			t.Fatalf("uniform draw %v outside of [-1, 3)", x)
		}
	}
}

func TestSample_ExponentialDrawsAreNonNegative(t *testing.T) {
	draws := NewExponential(2).Sample(newTestRand(3), 100_000)
	for _, x := range draws {
		if x < 0 {
			t.Fatalf("exponential draw %v is negative", x)
		}
	}
}

func TestSample_MomentsMatchTheory(t *testing.T) {
	tests := []Distribution{
		NewNormal(5, 1),
		NewNormal(0, 2),
		NewBernoulli(0.7),
		NewUniform(0, 1),
		NewExponential(2),
	}
	for i, d := range tests {
		t.Run(d.String(), func(t *testing.T) {
			draws := d.Sample(newTestRand(uint64(100+i)), 100_000)
			mean, variance := stat.MeanVariance(draws, nil)
			if math.Abs(mean-d.Mean()) > 0.03*math.Max(1, math.Abs(d.Mean())) {
				t.Errorf("sample mean %v too far from %v", mean, d.Mean())
			}
			if math.Abs(variance-d.Variance()) > 0.05*d.Variance() {
				t.Errorf("sample variance %v too far from %v", variance, d.Variance())
			}
		})
	}
}

// TestSample_UniformChiSquared checks via a chi-squared test whether the
// uniform sampler fills equally sized bins evenly.
func TestSample_UniformChiSquared(t *testing.T) {
	const (
		numBins  = 10
		numDraws = 10_000
	)
	counts := make([]int, numBins)
	for _, x := range NewUniform(0, 1).Sample(newTestRand(11), numDraws) {
		counts[int(x*numBins)]++
	}

	chi2 := 0.0
	expected := float64(numDraws) / numBins
	for _, v := range counts {
		err := expected - float64(v)
		chi2 += (err * err) / expected
	}

	alpha := 0.001
	chi2Critical := distuv.ChiSquared{K: numBins - 1, Src: nil}.Quantile(1.0 - alpha)
	if chi2 > chi2Critical {
		t.Fatalf("uniform sampler is biased; chi^2 %v exceeds critical value %v", chi2, chi2Critical)
	}
}

func TestParseFamily(t *testing.T) {
	for _, name := range FamilyNames() {
		f, err := ParseFamily(name)
		if err != nil {
			t.Fatalf("cannot parse %q; %v", name, err)
		}
		if string(f) != name {
			t.Errorf("unexpected family %v for %q", f, name)
		}
	}
}
