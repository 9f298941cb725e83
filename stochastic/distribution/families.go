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
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Normal is the normal distribution N(μ, σ²).
type Normal struct {
	impl distuv.Normal
}

// NewNormal creates a normal distribution with mean mu and standard deviation sigma.
func NewNormal(mu, sigma float64) Normal {
	return Normal{impl: distuv.Normal{Mu: mu, Sigma: sigma}}
}

func (d Normal) Family() Family { return NormalFamily }

func (d Normal) with(rng *rand.Rand) distuv.Normal {
	impl := d.impl
	impl.Src = rng
	return impl
}

func (d Normal) Sample(rng *rand.Rand, n int) []float64 {
	return sample(n, d.with(rng).Rand)
}

func (d Normal) SampleInto(rng *rand.Rand, dst []float64) {
	fill(dst, d.with(rng).Rand)
}

func (d Normal) Mean() float64 { return d.impl.Mu }

func (d Normal) Variance() float64 { return d.impl.Sigma * d.impl.Sigma }

func (d Normal) String() string {
	return fmt.Sprintf("Normal(μ=%g, σ=%g)", d.impl.Mu, d.impl.Sigma)
}

// Bernoulli is the Bernoulli distribution with draws in {0, 1} and P(1) = p.
type Bernoulli struct {
	impl distuv.Bernoulli
}

// NewBernoulli creates a Bernoulli distribution with success probability p.
func NewBernoulli(p float64) Bernoulli {
	return Bernoulli{impl: distuv.Bernoulli{P: p}}
}

func (d Bernoulli) Family() Family { return BernoulliFamily }

func (d Bernoulli) with(rng *rand.Rand) distuv.Bernoulli {
	impl := d.impl
	impl.Src = rng
	return impl
}

func (d Bernoulli) Sample(rng *rand.Rand, n int) []float64 {
	return sample(n, d.with(rng).Rand)
}

func (d Bernoulli) SampleInto(rng *rand.Rand, dst []float64) {
	fill(dst, d.with(rng).Rand)
}

func (d Bernoulli) Mean() float64 { return d.impl.P }

func (d Bernoulli) Variance() float64 { return d.impl.P * (1 - d.impl.P) }

func (d Bernoulli) String() string {
	return fmt.Sprintf("Bernoulli(p=%g)", d.impl.P)
}

// Uniform is the continuous uniform distribution on [a, b).
type Uniform struct {
	impl distuv.Uniform
}

// NewUniform creates a uniform distribution on [low, high).
func NewUniform(low, high float64) Uniform {
	return Uniform{impl: distuv.Uniform{Min: low, Max: high}}
}

func (d Uniform) Family() Family { return UniformFamily }

func (d Uniform) with(rng *rand.Rand) distuv.Uniform {
	impl := d.impl
	impl.Src = rng
	return impl
}

func (d Uniform) Sample(rng *rand.Rand, n int) []float64 {
	return sample(n, d.with(rng).Rand)
}

func (d Uniform) SampleInto(rng *rand.Rand, dst []float64) {
	fill(dst, d.with(rng).Rand)
}

func (d Uniform) Mean() float64 { return (d.impl.Min + d.impl.Max) / 2 }

func (d Uniform) Variance() float64 {
	w := d.impl.Max - d.impl.Min
	return w * w / 12
}

func (d Uniform) String() string {
	return fmt.Sprintf("Uniform(a=%g, b=%g)", d.impl.Min, d.impl.Max)
}

// Exponential is the exponential distribution with rate λ.
type Exponential struct {
	impl distuv.Exponential
}

// NewExponential creates an exponential distribution with rate lambda.
func NewExponential(lambda float64) Exponential {
	return Exponential{impl: distuv.Exponential{Rate: lambda}}
}

func (d Exponential) Family() Family { return ExponentialFamily }

func (d Exponential) with(rng *rand.Rand) distuv.Exponential {
	impl := d.impl
	impl.Src = rng
	return impl
}

func (d Exponential) Sample(rng *rand.Rand, n int) []float64 {
	return sample(n, d.with(rng).Rand)
}

func (d Exponential) SampleInto(rng *rand.Rand, dst []float64) {
	fill(dst, d.with(rng).Rand)
}

func (d Exponential) Mean() float64 { return 1 / d.impl.Rate }

func (d Exponential) Variance() float64 { return 1 / (d.impl.Rate * d.impl.Rate) }

func (d Exponential) String() string {
	return fmt.Sprintf("Exponential(λ=%g)", d.impl.Rate)
}
