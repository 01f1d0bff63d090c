// SPDX-License-Identifier: MIT
// Package: mixdag/builder
//
// options.go: functional options for Sample.
//
// Contract:
//   • Options are functional (type Option func(*sampleConfig)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs;
//     Sample itself never panics.
//   • Determinism is explicit: seeding is done via WithSeed only.

package builder

// Option customises Sample.
type Option func(*sampleConfig)

// sampleConfig aggregates all sampling knobs; passed by value.
type sampleConfig struct {
	seed   uint64
	noise  float64 // stdev of Gaussian noise on continuous nodes
	effect float64 // edge effect used when an edge weight is zero
	sharp  float64 // logit scale for categorical nodes
	w      []float64
}

// Deterministic defaults.
const (
	defaultSeed   = uint64(1)
	defaultNoise  = 1.0
	defaultEffect = 1.0
	defaultSharp  = 2.0
)

func newSampleConfig(opts ...Option) sampleConfig {
	cfg := sampleConfig{seed: defaultSeed, noise: defaultNoise, effect: defaultEffect, sharp: defaultSharp}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithSeed fixes the random stream.
func WithSeed(seed uint64) Option {
	return func(c *sampleConfig) { c.seed = seed }
}

// WithNoise sets the noise standard deviation of continuous nodes.
// Panics on a negative value.
func WithNoise(sigma float64) Option {
	if sigma < 0 {
		panic("builder: WithNoise(negative)")
	}
	return func(c *sampleConfig) { c.noise = sigma }
}

// WithEffect sets the effect size used for edges whose weight is zero
// (unweighted graphs). Panics on zero.
func WithEffect(beta float64) Option {
	if beta == 0 {
		panic("builder: WithEffect(0)")
	}
	return func(c *sampleConfig) { c.effect = beta }
}

// WithSharpness scales the class logits of categorical nodes; larger values
// make categorical children more predictable from their parents.
// Panics on a non-positive value.
func WithSharpness(s float64) Option {
	if s <= 0 {
		panic("builder: WithSharpness(non-positive)")
	}
	return func(c *sampleConfig) { c.sharp = s }
}

// WithSampleWeights attaches per-sample weights to the generated dataset.
func WithSampleWeights(w []float64) Option {
	return func(c *sampleConfig) { c.w = w }
}
