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

// Package distribution provides the probability distributions sampled by the
// simulation together with their closed-form moments.
package distribution

//go:generate mockgen -source distribution.go -destination distribution_mocks.go -package distribution

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

// Family identifies a distribution family.
type Family string

const (
	NormalFamily      Family = "normal"
	BernoulliFamily   Family = "bernoulli"
	UniformFamily     Family = "uniform"
	ExponentialFamily Family = "exponential"
)

// ErrUnknownFamily is returned for family names outside of Families().
var ErrUnknownFamily = errors.New("unknown distribution family")

// Distribution is a distribution of independent, identically distributed draws.
// Implementations are immutable; the random source is passed with every call.
type Distribution interface {
	// Family returns the family tag of the distribution.
	Family() Family
	// Sample returns n independent draws; it returns nil if n < 1.
	Sample(rng *rand.Rand, n int) []float64
	// SampleInto fills dst with len(dst) independent draws.
	SampleInto(rng *rand.Rand, dst []float64)
	// Mean returns the exact theoretical mean.
	Mean() float64
	// Variance returns the exact theoretical variance.
	Variance() float64
	// String describes the parameters for display.
	String() string
}

// Params holds the parameters of all families; each family reads its own fields.
type Params struct {
	Mu     float64 // mean of the normal distribution
	Sigma  float64 // standard deviation of the normal distribution
	P      float64 // success probability of the bernoulli distribution
	Low    float64 // inclusive lower bound of the uniform distribution
	High   float64 // exclusive upper bound of the uniform distribution
	Lambda float64 // rate of the exponential distribution
}

// DefaultParams returns the parameters used when none are configured.
func DefaultParams() Params {
	return Params{
		Mu:     0.0,
		Sigma:  1.0,
		P:      0.5,
		Low:    0.0,
		High:   1.0,
		Lambda: 1.0,
	}
}

// Families returns the supported distribution families.
func Families() []Family {
	return []Family{NormalFamily, BernoulliFamily, UniformFamily, ExponentialFamily}
}

// FamilyNames returns the supported family names, e.g. for usage strings.
func FamilyNames() []string {
	names := make([]string, 0, len(Families()))
	for _, f := range Families() {
		names = append(names, string(f))
	}
	return names
}

// ParseFamily converts a (case-insensitive) name into a family.
func ParseFamily(name string) (Family, error) {
	f := Family(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Families() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q; supported families: %v", ErrUnknownFamily, name, strings.Join(FamilyNames(), ", "))
}

// New creates the distribution of the named family. Parameters are expected to be
// validated by the caller.
func New(name string, p Params) (Distribution, error) {
	family, err := ParseFamily(name)
	if err != nil {
		return nil, err
	}
	switch family {
	case NormalFamily:
		return NewNormal(p.Mu, p.Sigma), nil
	case BernoulliFamily:
		return NewBernoulli(p.P), nil
	case UniformFamily:
		return NewUniform(p.Low, p.High), nil
	case ExponentialFamily:
		return NewExponential(p.Lambda), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownFamily, name)
}

// sample draws n values with next; it returns nil if n < 1.
func sample(n int, next func() float64) []float64 {
	if n < 1 {
		return nil
	}
	draws := make([]float64, n)
	fill(draws, next)
	return draws
}

func fill(dst []float64, next func() float64) {
	for i := range dst {
		dst[i] = next()
	}
}
