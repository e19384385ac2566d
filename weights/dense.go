package weights

// Dense is the contiguous backing: all blocks are allocated eagerly at
// construction, covering the full addressable index range.
//
// Addressing outside [0, Len()) is a contract violation by the caller and
// panics via the runtime bounds check; it is not recovered here.
type Dense struct {
	vals        []Weight
	length      uint64
	strideShift uint
	privacy     *activationTracker
}

var _ Store = (*Dense)(nil)

// NewDense allocates a dense store with length logical blocks of
// 1<<strideShift weights each.
func NewDense(length uint64, strideShift uint) *Dense {
	return &Dense{
		vals:        make([]Weight, length<<strideShift),
		length:      length,
		strideShift: strideShift,
		privacy:     newActivationTracker(),
	}
}

// SetDefault registers fn and applies it to every block immediately: a dense
// store has already materialized all of its blocks, so registration time is
// the only materialization point left.
func (d *Dense) SetDefault(fn Initializer) {
	if fn == nil {
		return
	}
	stride := d.Stride()
	for i := uint64(0); i < d.length; i++ {
		base := i << d.strideShift
		fn(d.vals[base:base+stride], base)
	}
}

// StridedIndex returns the first weight of the block at logical index i.
func (d *Dense) StridedIndex(i uint64) Weight {
	return d.vals[i<<d.strideShift]
}

// At returns the mutable block at logical index i.
func (d *Dense) At(i uint64) []Weight {
	base := i << d.strideShift
	return d.vals[base : base+d.Stride()]
}

// Stride returns the number of weights per block.
func (d *Dense) Stride() uint64 { return 1 << d.strideShift }

// StrideShift returns the stride exponent.
func (d *Dense) StrideShift() uint { return d.strideShift }

// Len returns the number of logical blocks.
func (d *Dense) Len() uint64 { return d.length }

// ClearOffset zeroes lane off of every block.
func (d *Dense) ClearOffset(off uint64) {
	stride := d.Stride()
	for base := off; base < uint64(len(d.vals)); base += stride {
		d.vals[base] = 0
	}
}

// PrivacyActivationThreshold configures the activation threshold.
func (d *Dense) PrivacyActivationThreshold(n int) { d.privacy.setThreshold(n) }

// SetTag records a tag for a feature.
func (d *Dense) SetTag(feature, tag uint64) { d.privacy.setTag(feature, tag) }

// IsActivated reports whether the feature reached the activation threshold.
func (d *Dense) IsActivated(feature uint64) bool { return d.privacy.isActivated(feature) }
