package epsilondecay

import (
	"errors"

	"github.com/hupe1980/banditgo/score"
	"github.com/hupe1980/banditgo/weights"
)

var (
	// ErrInvalidNumConfigs is returned when the ensemble would be empty.
	ErrInvalidNumConfigs = errors.New("epsilondecay: num configs must be positive")
)

type slotRef struct {
	row, col int
}

// Data owns the triangular ensemble of scored configurations: row i holds
// i+1 candidates, and model indices are assigned densely row-major across
// the whole triangle (0..N-1). The model index is the only key a candidate
// holds into the shared weight store: candidate k owns lane k of every
// weight block.
//
// The weight store is borrowed, never owned, and is not part of the
// selector's serialized state.
type Data struct {
	configs  [][]*score.Config
	slots    []slotRef // modelIdx -> (row, col)
	minScope uint64
	alpha    float64
	tau      float64
	weights  weights.Store
}

// TriangleSize returns the total number of configurations in a triangular
// ensemble of numConfigs rows.
func TriangleSize(numConfigs uint64) uint64 {
	return numConfigs * (numConfigs + 1) / 2
}

// New constructs the triangular ensemble over the shared store w.
//
// The store's stride must be at least TriangleSize(numConfigs), since every
// candidate claims one lane of each weight block.
func New(numConfigs, minScope uint64, alpha, tau float64, w weights.Store) (*Data, error) {
	if numConfigs == 0 {
		return nil, ErrInvalidNumConfigs
	}
	total := TriangleSize(numConfigs)
	if w != nil && w.Stride() < total {
		return nil, weights.ErrStrideTooSmall
	}

	d := &Data{
		configs:  make([][]*score.Config, numConfigs),
		slots:    make([]slotRef, 0, total),
		minScope: minScope,
		alpha:    alpha,
		tau:      tau,
		weights:  w,
	}

	modelIdx := uint64(0)
	for i := uint64(0); i < numConfigs; i++ {
		row := make([]*score.Config, i+1)
		for j := uint64(0); j <= i; j++ {
			row[j] = score.New(alpha, tau, modelIdx)
			d.slots = append(d.slots, slotRef{row: int(i), col: int(j)})
			modelIdx++
		}
		d.configs[i] = row
	}

	return d, nil
}

// Update routes one online example into the ensemble: every candidate's
// bounds advance, then one champion/challenger sweep runs over candidates
// that have reached the comparison scope. It returns the model indices of
// any slots recycled by the sweep.
func (d *Data) Update(w, r float32) []uint64 {
	for _, row := range d.configs {
		for _, c := range row {
			c.UpdateBounds(w, r)
		}
	}
	return d.sweep()
}

// sweep compares adjacent diagonal candidates from the newest row down to
// the champion row. A strict non-overlap of confidence intervals evicts the
// dominated side; overlapping intervals are statistically indistinguishable
// and take no action.
func (d *Data) sweep() []uint64 {
	var evicted []uint64
	for i := len(d.configs) - 1; i >= 1; i-- {
		challenger := d.configs[i][i]
		incumbent := d.configs[i-1][i-1]
		if !d.inScope(challenger) || !d.inScope(incumbent) {
			continue
		}
		switch {
		case challenger.LowerBound() > incumbent.UpperBound():
			d.evict(incumbent)
			evicted = append(evicted, incumbent.ModelIdx())
		case incumbent.LowerBound() > challenger.UpperBound():
			d.evict(challenger)
			evicted = append(evicted, challenger.ModelIdx())
		}
	}
	return evicted
}

func (d *Data) inScope(c *score.Config) bool {
	return c.UpdateCount() >= d.minScope
}

// evict recycles a slot: the candidate's weight lane is cleared and a fresh
// configuration with the same model index and inherited hyperparameters is
// installed. This is the only destructive event in the ensemble's lifecycle;
// no slot is ever terminal.
func (d *Data) evict(c *score.Config) {
	idx := c.ModelIdx()
	if d.weights != nil {
		d.weights.ClearOffset(idx)
	}
	ref := d.slots[idx]
	d.configs[ref.row][ref.col] = score.New(d.alpha, d.tau, idx)
}

// Champion returns the model index of the established champion slot.
func (d *Data) Champion() uint64 {
	return d.configs[0][0].ModelIdx()
}

// Epsilon returns the champion's decayed exploration probability.
func (d *Data) Epsilon() float64 {
	c := d.configs[0][0]
	return c.DecayedEpsilon(c.UpdateCount())
}

// Config returns the configuration currently occupying model index idx.
func (d *Data) Config(idx uint64) *score.Config {
	ref := d.slots[idx]
	return d.configs[ref.row][ref.col]
}

// NumConfigs returns the number of rows in the triangle.
func (d *Data) NumConfigs() uint64 { return uint64(len(d.configs)) }

// TotalConfigs returns the total number of candidate slots.
func (d *Data) TotalConfigs() uint64 { return uint64(len(d.slots)) }

// MinScope returns the comparison eligibility scope.
func (d *Data) MinScope() uint64 { return d.minScope }

// Alpha returns the confidence level hyperparameter.
func (d *Data) Alpha() float64 { return d.alpha }

// Tau returns the count-decay time constant.
func (d *Data) Tau() float64 { return d.tau }

// Weights returns the borrowed shared store.
func (d *Data) Weights() weights.Store { return d.weights }

// AttachWeights points the selector at a shared store, validating that the
// stride can hold one lane per candidate. Used when selector state is
// restored before its store exists.
func (d *Data) AttachWeights(w weights.Store) error {
	if w != nil && w.Stride() < d.TotalConfigs() {
		return weights.ErrStrideTooSmall
	}
	d.weights = w
	return nil
}
