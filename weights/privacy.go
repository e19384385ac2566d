package weights

import "github.com/RoaringBitmap/roaring/v2/roaring64"

// activationTracker implements differential-privacy gating: a feature only
// counts as activated once enough distinct tags (e.g. user identifiers) have
// touched it.
//
// Tag sets are roaring bitmaps, so duplicate tags collapse for free and the
// per-feature memory cost stays proportional to the distinct-tag count. The
// sets only ever grow for the lifetime of the store.
type activationTracker struct {
	threshold uint64
	enabled   bool
	tags      map[uint64]*roaring64.Bitmap
}

func newActivationTracker() *activationTracker {
	return &activationTracker{tags: make(map[uint64]*roaring64.Bitmap)}
}

func (t *activationTracker) setThreshold(n int) {
	if n < 0 {
		n = 0
	}
	t.threshold = uint64(n)
	t.enabled = true
}

// setTag records tag for feature. Tags seen before the threshold is
// configured are dropped, so they can never retroactively count toward
// activation.
func (t *activationTracker) setTag(feature, tag uint64) {
	if !t.enabled {
		return
	}
	set, ok := t.tags[feature]
	if !ok {
		set = roaring64.New()
		t.tags[feature] = set
	}
	set.Add(tag)
}

func (t *activationTracker) isActivated(feature uint64) bool {
	if !t.enabled {
		return false
	}
	set, ok := t.tags[feature]
	if !ok {
		return false
	}
	return set.GetCardinality() >= t.threshold
}
