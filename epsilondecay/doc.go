// Package epsilondecay implements the online model-selection reduction: a
// triangular ensemble of scored candidate configurations sharing one strided
// weight store, compared by confidence bounds and recycled in place.
//
// Row i of the triangle holds i+1 candidates; model indices are assigned
// densely row-major and never move. On every online example all candidates'
// bounds advance, then a champion/challenger sweep evicts any candidate whose
// confidence interval is strictly dominated: its weight lane in the shared
// store is cleared and a fresh configuration takes over the slot. The
// exploration probability decays as a power law of the champion's update
// count.
package epsilondecay
