// SPDX-License-Identifier: MIT

package mixdag

import (
	"runtime"
	"time"

	"github.com/katalvlaran/mixdag/blanket"
	"github.com/katalvlaran/mixdag/diag"
	"github.com/katalvlaran/mixdag/orient"
	"github.com/katalvlaran/mixdag/refine"
	"github.com/katalvlaran/mixdag/regression"
)

// Defaults of the flat interface.
const (
	DefaultLambdaGamma = 0.25
	DefaultFolds       = 10
	DefaultAlpha       = 0.05
	DefaultNPerm       = 10000
	DefaultSeed        = 1
)

// Options holds every pipeline parameter. Build it with NewOptions.
type Options struct {
	// Stage 1.
	LambdaGamma float64
	Rule        blanket.Rule
	Threshold   blanket.Threshold
	LambdaSel   regression.Criterion
	AlphaSel    regression.Criterion
	AlphaSeq    []float64
	Folds       int

	// Stage 2.
	Alpha       float64
	NPerm       int
	MaxCondSize int
	Pool        refine.Pool
	Timeout     time.Duration

	// Stage 3.
	Orient orient.Config

	// Seed roots every random stream of the run.
	Seed uint64
	// Workers bounds parallelism in Stages 1 and 2.
	Workers int
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		LambdaGamma: DefaultLambdaGamma,
		Rule:        blanket.RuleOR,
		Threshold:   blanket.ThresholdLW,
		LambdaSel:   regression.EBIC,
		AlphaSel:    regression.EBIC,
		AlphaSeq:    []float64{1},
		Folds:       DefaultFolds,
		Alpha:       DefaultAlpha,
		NPerm:       DefaultNPerm,
		MaxCondSize: refine.DefaultMaxCondSize,
		Pool:        refine.PoolUnion,
		Seed:        DefaultSeed,
		Workers:     runtime.GOMAXPROCS(0),
	}
}

// NewOptions applies opts over the defaults and validates the result.
func NewOptions(opts ...Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o, o.Validate()
}

// WithLambdaGamma sets the EBIC γ.
func WithLambdaGamma(g float64) Option { return func(o *Options) { o.LambdaGamma = g } }

// WithRule sets the AND / OR combination rule.
func WithRule(r blanket.Rule) Option { return func(o *Options) { o.Rule = r } }

// WithThreshold sets the LW / HW / none coefficient threshold.
func WithThreshold(t blanket.Threshold) Option { return func(o *Options) { o.Threshold = t } }

// WithLambdaSel sets the λ selection criterion.
func WithLambdaSel(c regression.Criterion) Option { return func(o *Options) { o.LambdaSel = c } }

// WithAlphaSel sets the elastic-net mixing selection criterion.
func WithAlphaSel(c regression.Criterion) Option { return func(o *Options) { o.AlphaSel = c } }

// WithAlphaSeq sets the candidate mixing parameters.
func WithAlphaSeq(seq ...float64) Option {
	return func(o *Options) { o.AlphaSeq = append([]float64(nil), seq...) }
}

// WithFolds sets the number of CV folds.
func WithFolds(k int) Option { return func(o *Options) { o.Folds = k } }

// WithAlpha sets the Stage 2 significance level.
func WithAlpha(a float64) Option { return func(o *Options) { o.Alpha = a } }

// WithNPerm sets the permutations per test.
func WithNPerm(n int) Option { return func(o *Options) { o.NPerm = n } }

// WithMaxCondSize bounds Stage 2 conditioning sets.
func WithMaxCondSize(k int) Option { return func(o *Options) { o.MaxCondSize = k } }

// WithPool selects the Stage 2 conditioning pool.
func WithPool(p refine.Pool) Option { return func(o *Options) { o.Pool = p } }

// WithTimeout bounds Stage 2; 0 disables the bound.
func WithTimeout(d time.Duration) Option { return func(o *Options) { o.Timeout = d } }

// WithOrientation sets the Stage 3 search parameters.
func WithOrientation(c orient.Config) Option { return func(o *Options) { o.Orient = c } }

// WithSeed sets the root seed.
func WithSeed(seed uint64) Option { return func(o *Options) { o.Seed = seed } }

// WithWorkers bounds parallelism.
func WithWorkers(n int) Option { return func(o *Options) { o.Workers = n } }

// Validate reports the first invalid field as a diag.ConfigError.
func (o Options) Validate() error {
	switch {
	case !(o.LambdaGamma >= 0):
		return diag.Configf("lambda_gamma", "must be non-negative, got %v", o.LambdaGamma)
	case o.Rule != blanket.RuleOR && o.Rule != blanket.RuleAND:
		return diag.Configf("rule_reg", "unknown rule %s", o.Rule)
	case o.Threshold > blanket.ThresholdNone:
		return diag.Configf("threshold", "unknown threshold %s", o.Threshold)
	case o.LambdaSel != regression.EBIC && o.LambdaSel != regression.CV:
		return diag.Configf("lambda_sel", "unknown criterion %s", o.LambdaSel)
	case o.AlphaSel != regression.EBIC && o.AlphaSel != regression.CV:
		return diag.Configf("alpha_sel", "unknown criterion %s", o.AlphaSel)
	case len(o.AlphaSeq) == 0:
		return diag.Configf("alpha_seq", "at least one mixing parameter is required")
	case o.Folds < 2 && (o.LambdaSel == regression.CV || o.AlphaSel == regression.CV):
		return diag.Configf("folds", "cross-validation needs at least 2 folds, got %d", o.Folds)
	case !(o.Alpha > 0 && o.Alpha < 1):
		return diag.Configf("alpha", "must lie in (0,1), got %v", o.Alpha)
	case o.NPerm <= 0:
		return diag.Configf("nperm", "must be positive, got %d", o.NPerm)
	case o.MaxCondSize < 0:
		return diag.Configf("max_cond_size", "must be non-negative, got %d", o.MaxCondSize)
	case o.Pool != refine.PoolUnion && o.Pool != refine.PoolCommon:
		return diag.Configf("pool", "unknown pool %s", o.Pool)
	case o.Timeout < 0:
		return diag.Configf("timeout", "must be non-negative, got %s", o.Timeout)
	case o.Workers < 1:
		return diag.Configf("workers", "must be positive, got %d", o.Workers)
	}
	if err := o.Orient.Validate(); err != nil {
		return err
	}
	for k, a := range o.AlphaSeq {
		if !(a >= 0 && a <= 1) {
			return diag.Configf("alpha_seq", "element %d = %v outside [0,1]", k, a)
		}
	}

	return nil
}

func (o Options) blanketConfig() blanket.Config {
	return blanket.Config{
		LambdaGamma: o.LambdaGamma,
		Rule:        o.Rule,
		LambdaSel:   o.LambdaSel,
		AlphaSel:    o.AlphaSel,
		AlphaSeq:    o.AlphaSeq,
		Folds:       o.Folds,
		Threshold:   o.Threshold,
		Seed:        o.Seed,
		Workers:     o.Workers,
	}
}

func (o Options) refineConfig() refine.Config {
	return refine.Config{
		Alpha:       o.Alpha,
		NPerm:       o.NPerm,
		MaxCondSize: o.MaxCondSize,
		Pool:        o.Pool,
		Seed:        o.Seed,
		Workers:     o.Workers,
		Timeout:     o.Timeout,
	}
}
