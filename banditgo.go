package banditgo

import (
	"math/bits"

	"github.com/hupe1980/banditgo/epsilondecay"
	"github.com/hupe1980/banditgo/internal/hash"
	"github.com/hupe1980/banditgo/weights"
)

// Learner wires the epsilon-decay selector to its shared parameter store.
//
// A Learner processes one example at a time on a single goroutine; the
// surrounding pipeline guarantees sequential delivery, so no internal locking
// exists anywhere below it.
type Learner struct {
	store        weights.Store
	selector     *epsilondecay.Data
	opts         options
	indexMask    uint64
	exampleCount uint64
}

// New creates a Learner with a triangular ensemble of numConfigs rows over a
// freshly allocated weight store.
func New(numConfigs uint64, optFns ...Option) (*Learner, error) {
	if numConfigs == 0 {
		return nil, epsilondecay.ErrInvalidNumConfigs
	}

	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	store, err := newStore(numConfigs, &o)
	if err != nil {
		return nil, err
	}

	selector, err := epsilondecay.New(numConfigs, o.minScope, o.alpha, o.tau, store)
	if err != nil {
		return nil, err
	}

	return &Learner{
		store:     store,
		selector:  selector,
		opts:      o,
		indexMask: (1 << o.bits) - 1,
	}, nil
}

// newStore allocates the weight store sized for the ensemble. Unless
// overridden, the stride is the smallest power of two that gives every
// candidate configuration its own lane.
func newStore(numConfigs uint64, o *options) (weights.Store, error) {
	total := epsilondecay.TriangleSize(numConfigs)

	shift := o.strideShift
	if !o.strideShiftSet {
		shift = uint(bits.Len64(total - 1))
	}
	if uint64(1)<<shift < total {
		return nil, weights.ErrStrideTooSmall
	}

	length := uint64(1) << o.bits
	var store weights.Store
	if o.sparse {
		store = weights.NewSparse(length, shift)
	} else {
		store = weights.NewDense(length, shift)
	}

	if o.privacyEnabled {
		store.PrivacyActivationThreshold(o.privacyThreshold)
	}
	return store, nil
}

// Update feeds one (importance weight, reward) pair through the ensemble.
func (l *Learner) Update(importanceWeight, reward float32) error {
	l.exampleCount++
	for _, idx := range l.selector.Update(importanceWeight, reward) {
		l.opts.logger.LogEviction(idx, l.exampleCount)
	}
	return nil
}

// Champion returns the model index of the established champion slot. The
// base learner uses it to pick the weight lane served to callers.
func (l *Learner) Champion() uint64 {
	return l.selector.Champion()
}

// Epsilon returns the current decayed exploration probability.
func (l *Learner) Epsilon() float64 {
	return l.selector.Epsilon()
}

// ExampleCount returns the number of examples processed.
func (l *Learner) ExampleCount() uint64 {
	return l.exampleCount
}

// Weights returns the shared parameter store for the base learner to address.
func (l *Learner) Weights() weights.Store {
	return l.store
}

// Selector returns the underlying epsilon-decay state.
func (l *Learner) Selector() *epsilondecay.Data {
	return l.selector
}

// HashFeature maps a feature name into the store's index space.
func (l *Learner) HashFeature(name string) uint64 {
	return hash.Feature(name) & l.indexMask
}
