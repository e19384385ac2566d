package banditgo

import (
	"github.com/hupe1980/banditgo/codec"
)

type options struct {
	sparse           bool
	bits             uint
	strideShift      uint
	strideShiftSet   bool
	minScope         uint64
	alpha            float64
	tau              float64
	privacyThreshold int
	privacyEnabled   bool
	codec            codec.Codec
	logger           *Logger
}

// Option configures Learner construction.
//
// Options primarily exist to avoid exploding the API surface with
// constructor variants; the zero configuration is a usable dense learner.
type Option func(*options)

// WithSparse selects the sparse weight backing. Blocks are materialized on
// first touch instead of eagerly, trading per-access map lookups for memory
// proportional to the touched feature count.
func WithSparse() Option {
	return func(o *options) {
		o.sparse = true
	}
}

// WithBits sets the width of the feature index space: the store addresses
// 1<<bits weight blocks. Defaults to 18.
func WithBits(bits uint) Option {
	return func(o *options) {
		o.bits = bits
	}
}

// WithStrideShift overrides the store's stride exponent. The stride
// (1<<strideShift) must be able to hold one lane per candidate configuration;
// by default the smallest sufficient shift is chosen automatically.
func WithStrideShift(shift uint) Option {
	return func(o *options) {
		o.strideShift = shift
		o.strideShiftSet = true
	}
}

// WithMinScope sets the number of updates a configuration must absorb before
// it becomes eligible for champion/challenger comparison. Defaults to 100.
func WithMinScope(n uint64) Option {
	return func(o *options) {
		o.minScope = n
	}
}

// WithAlpha sets the confidence level of the bound estimator. Defaults to 0.05.
func WithAlpha(alpha float64) Option {
	return func(o *options) {
		o.alpha = alpha
	}
}

// WithTau sets the count-decay time constant: every update multiplies the
// accumulated bound statistics by tau, so older evidence fades geometrically.
// Defaults to 0.999.
func WithTau(tau float64) Option {
	return func(o *options) {
		o.tau = tau
	}
}

// WithPrivacyActivation enables differential-privacy gating with the given
// activation threshold: a feature only counts as activated once that many
// distinct tags have touched it.
func WithPrivacyActivation(threshold int) Option {
	return func(o *options) {
		o.privacyThreshold = threshold
		o.privacyEnabled = true
	}
}

// WithCodec configures the codec used to compress snapshot payloads.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithLogger configures structured logging. Defaults to a noop logger.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func defaultOptions() options {
	return options{
		bits:     18,
		minScope: 100,
		alpha:    0.05,
		tau:      0.999,
		codec:    codec.Default,
		logger:   NoopLogger(),
	}
}
