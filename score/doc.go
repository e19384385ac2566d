// Package score implements the per-candidate statistical estimator used by
// the epsilon-decay model selection reduction.
//
// Each Config tracks an inverse-propensity-weighted average reward (the upper
// bound) and a tau-decayed empirical-Bernstein lower confidence bound. The
// interval between the two narrows as evidence accumulates; the decay time
// constant tau down-weights old observations geometrically so the estimator
// stays responsive to non-stationary reward.
package score
