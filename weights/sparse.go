package weights

// Sparse is the map backing: blocks are materialized on first touch using the
// initializer registered at that moment. Absent indices cost nothing.
type Sparse struct {
	blocks      map[uint64][]Weight
	length      uint64
	strideShift uint
	defaultFn   Initializer
	privacy     *activationTracker
}

var _ Store = (*Sparse)(nil)

// NewSparse creates a sparse store addressing length logical blocks of
// 1<<strideShift weights each. No blocks are reserved up front; length is a
// sizing hint for callers, not a materialization trigger.
func NewSparse(length uint64, strideShift uint) *Sparse {
	return &Sparse{
		blocks:      make(map[uint64][]Weight),
		length:      length,
		strideShift: strideShift,
		privacy:     newActivationTracker(),
	}
}

// SetDefault registers fn for blocks materialized from this point on.
// Already-materialized blocks are not retroactively reinitialized.
func (s *Sparse) SetDefault(fn Initializer) {
	s.defaultFn = fn
}

func (s *Sparse) materialize(i uint64) []Weight {
	if b, ok := s.blocks[i]; ok {
		return b
	}
	b := make([]Weight, s.Stride())
	if s.defaultFn != nil {
		s.defaultFn(b, i<<s.strideShift)
	}
	s.blocks[i] = b
	return b
}

// StridedIndex returns the first weight of the block at logical index i,
// materializing it on a miss.
func (s *Sparse) StridedIndex(i uint64) Weight {
	return s.materialize(i)[0]
}

// At returns the mutable block at logical index i, materializing it on a miss.
func (s *Sparse) At(i uint64) []Weight {
	return s.materialize(i)
}

// Stride returns the number of weights per block.
func (s *Sparse) Stride() uint64 { return 1 << s.strideShift }

// StrideShift returns the stride exponent.
func (s *Sparse) StrideShift() uint { return s.strideShift }

// Len returns the number of logical blocks the store addresses.
func (s *Sparse) Len() uint64 { return s.length }

// ClearOffset zeroes lane off of every materialized block. Blocks that were
// never touched stay absent; they re-materialize through the initializer.
func (s *Sparse) ClearOffset(off uint64) {
	for _, b := range s.blocks {
		b[off] = 0
	}
}

// PrivacyActivationThreshold configures the activation threshold.
func (s *Sparse) PrivacyActivationThreshold(n int) { s.privacy.setThreshold(n) }

// SetTag records a tag for a feature.
func (s *Sparse) SetTag(feature, tag uint64) { s.privacy.setTag(feature, tag) }

// IsActivated reports whether the feature reached the activation threshold.
func (s *Sparse) IsActivated(feature uint64) bool { return s.privacy.isActivated(feature) }
