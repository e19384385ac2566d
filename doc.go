// Package banditgo provides online model selection for Go: an epsilon-decay
// ensemble of candidate models scored by confidence bounds, all sharing one
// strided parameter store.
//
// # Quick Start
//
//	learner, _ := banditgo.New(3) // triangular ensemble: rows of 1, 2, 3 candidates
//	for _, ex := range examples {
//	    _ = learner.Update(ex.ImportanceWeight, ex.Reward)
//	}
//	champion := learner.Champion() // lane of the established model
//	eps := learner.Epsilon()       // decaying exploration probability
//
// The surrounding learner pipeline supplies a hashed feature index per weight
// access and one (importance weight, reward) pair per training example;
// banditgo owns the weight memory and the statistics that decide which
// candidate is champion.
//
// # Parameter Store
//
// Weights live in a strided store (package weights) with dense and sparse
// backings behind one interface. Every candidate model owns one lane of each
// stride-sized weight block, keyed by its model index, so an eviction clears
// exactly one lane and nothing else:
//
//	w := learner.Weights()
//	block := w.At(learner.HashFeature("user^age"))
//	block[learner.Champion()] += delta
//
// # Snapshots
//
// Save/Load persist the selector state (not the weight store, which has its
// own persistence contract) in a self-describing binary format: magic,
// version, codec name, codec-compressed payload and a CRC32C checksum.
// Snapshots round-trip statistics bit-for-bit for warm-restart correctness:
//
//	_ = learner.SaveToFile("model.bgo")
//	restored, _ := banditgo.LoadFromFile("model.bgo")
//
// # Key Properties
//
//   - Single-threaded, one-example-at-a-time core; no internal locking
//   - Dense and sparse weight backings with identical strided semantics
//   - Confidence-bound champion/challenger promotion with in-place recycling
//   - Optional differential-privacy activation gating per feature
//   - Pluggable snapshot compression (raw, zstd, lz4)
package banditgo
