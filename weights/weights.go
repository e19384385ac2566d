package weights

import "errors"

var (
	// ErrStrideTooSmall is returned when a store's stride cannot hold the
	// requested number of co-resident models.
	ErrStrideTooSmall = errors.New("weights: stride too small for model count")
)

// Weight is the scalar type stored for every parameter.
type Weight = float32

// Initializer computes the default contents of a weight block the first time
// its logical index is touched.
//
// block is the stride-sized group of weights; index is the physical base index
// of the block (logical index shifted left by the stride shift), matching the
// convention of upstream featurizers. Initializers must be pure: invoking one
// twice with the same arguments must produce the same block, so dense and
// sparse backings observe identical results regardless of touch order.
type Initializer func(block []Weight, index uint64)

// Store is the canonical owner of strided weight memory.
//
// A store holds Len() logical blocks of Stride() weights each. All addressing
// multiplies the logical index by the stride; the stride is fixed at
// construction and never changes. Multiple models may co-reside in one store,
// each owning a disjoint lane of every block; the store never enforces lane
// disjointness (that is the index-assignment invariant of the caller).
//
// Stores are not safe for concurrent use. The online-update loop is the sole
// mutator by contract.
type Store interface {
	// StridedIndex returns the first weight of the block at logical index i,
	// materializing the block if the backing is lazy.
	StridedIndex(i uint64) Weight

	// At returns the mutable stride-sized block at logical index i,
	// materializing it if absent. The returned slice aliases store memory.
	At(i uint64) []Weight

	// SetDefault registers the block initializer. For eager backings it is
	// applied to every block immediately; for lazy backings it applies to
	// blocks materialized from this point on.
	SetDefault(fn Initializer)

	// Stride returns the number of weights per block (1 << StrideShift).
	Stride() uint64

	// StrideShift returns the power-of-two exponent of the stride.
	StrideShift() uint

	// Len returns the number of logical blocks the store addresses.
	Len() uint64

	// ClearOffset zeroes lane off of every materialized block. It is the
	// model-slice reset used when an ensemble slot is recycled. off must be
	// less than Stride().
	ClearOffset(off uint64)

	// PrivacyActivationThreshold configures the number of distinct tags a
	// feature must accumulate before it counts as activated. Tags recorded
	// before the threshold is configured are dropped.
	PrivacyActivationThreshold(n int)

	// SetTag records a tag for a feature. Duplicate tags never double-count;
	// the per-feature tag set only grows.
	SetTag(feature, tag uint64)

	// IsActivated reports whether the feature's distinct tag count has
	// reached the configured threshold. It is false whenever no threshold is
	// configured or the feature was never tagged.
	IsActivated(feature uint64) bool
}
