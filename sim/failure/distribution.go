package failure

import (
	"math"
	"math/rand"
)

// Distribution produces an infinite stream of positive inter-arrival
// samples and exposes their running prefix sum (§4.7).
type Distribution interface {
	// Next draws and returns the next inter-arrival sample.
	Next() float64
	// CumulativeSamples returns the first n prefix sums of the stream,
	// extending and caching the underlying stream as needed so repeated
	// calls with a growing n are consistent with one another.
	CumulativeSamples(n int) []float64
}

// base implements the shared cumulative-sample caching every family needs;
// sample is the family-specific positive inter-arrival draw.
type base struct {
	rng        *rand.Rand
	cumulative []float64
	sample     func() float64
}

const minSample = 1e-9

func (b *base) Next() float64 {
	v := b.sample()
	if v <= 0 {
		v = minSample
	}
	return v
}

func (b *base) CumulativeSamples(n int) []float64 {
	for len(b.cumulative) < n {
		prev := 0.0
		if len(b.cumulative) > 0 {
			prev = b.cumulative[len(b.cumulative)-1]
		}
		b.cumulative = append(b.cumulative, prev+b.Next())
	}
	return b.cumulative[:n]
}

// Lognormal draws exp(mu + sigma*Z) for Z ~ N(0,1).
// RNG calls per sample: 1 × NormFloat64().
type Lognormal struct{ base }

func NewLognormal(rng *rand.Rand, mu, sigma float64) *Lognormal {
	d := &Lognormal{}
	d.rng = rng
	d.sample = func() float64 {
		return math.Exp(mu + sigma*rng.NormFloat64())
	}
	return d
}

// Weibull draws scale*(-ln(1-U))^(1/shape) for U ~ Uniform(0,1).
// RNG calls per sample: 1 × Float64().
type Weibull struct{ base }

func NewWeibull(rng *rand.Rand, scale, shape float64) *Weibull {
	d := &Weibull{}
	d.rng = rng
	d.sample = func() float64 {
		u := 1 - rng.Float64() // in (0,1]
		return scale * math.Pow(-math.Log(u), 1/shape)
	}
	return d
}

// Gamma draws a shape-theta Gamma variate via the sum-of-exponentials
// construction for integer shape (rounded up for non-integer shape — an
// approximation adequate for a discrete-event failure model, not a
// statistics library).
// RNG calls per sample: ceil(shape) × ExpFloat64().
type Gamma struct{ base }

func NewGamma(rng *rand.Rand, shape, scale float64) *Gamma {
	k := int(math.Ceil(shape))
	if k < 1 {
		k = 1
	}
	d := &Gamma{}
	d.rng = rng
	d.sample = func() float64 {
		total := 0.0
		for i := 0; i < k; i++ {
			total += rng.ExpFloat64()
		}
		return total * scale
	}
	return d
}

// Normal draws mean + stddev*Z, floored at minSample to keep inter-arrivals
// positive.
// RNG calls per sample: 1 × NormFloat64().
type Normal struct{ base }

func NewNormal(rng *rand.Rand, mean, stddev float64) *Normal {
	d := &Normal{}
	d.rng = rng
	d.sample = func() float64 {
		return mean + stddev*rng.NormFloat64()
	}
	return d
}
