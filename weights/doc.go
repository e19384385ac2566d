// Package weights implements the strided parameter store shared by all
// co-resident models.
//
// A store owns blocks of 1<<strideShift weights, one block per hashed feature
// index. Two backings exist behind the Store interface: Dense (one contiguous
// array covering the full index range) and Sparse (blocks materialized on
// first touch). Both expose identical strided-access semantics, so callers
// are agnostic to the backing choice:
//
//	w := weights.NewSparse(1<<18, 2) // 4 weights per feature
//	w.SetDefault(func(block []weights.Weight, index uint64) {
//	    block[0] = 1.0
//	})
//	v := w.StridedIndex(i) // first weight of block i
//	b := w.At(i)           // the whole mutable block
//
// The initializer receives the physical base index of the block (logical
// index shifted by the stride shift) and must be pure, so dense and sparse
// backings produce identical values regardless of touch order.
//
// In privacy mode a store additionally tracks, per feature, the set of
// distinct tags that have touched it; a feature is activated once that set
// reaches the configured threshold. See PrivacyActivationThreshold, SetTag
// and IsActivated on the Store interface.
package weights
