package epsilondecay

import (
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/banditgo/internal/binutil"
	"github.com/hupe1980/banditgo/score"
)

var (
	// ErrTruncatedModel is returned when a serialized selector ends early or
	// carries an implausible shape.
	ErrTruncatedModel = errors.New("epsilondecay: truncated or malformed model")
)

// maxNumConfigs bounds the row count accepted from a serialized stream so a
// corrupted header cannot drive allocation. Slot count grows quadratically
// with the row count (TriangleSize), so this must stay small: 1024 rows is
// already a 524800-slot ensemble, far past any practical configuration.
const maxNumConfigs = 1 << 10

// WriteTo serializes the selector state: hyperparameters, row count, then
// every configuration row-major. The weight store is excluded; it has its own
// persistence contract. The byte count is returned for caller framing.
func (d *Data) WriteTo(w io.Writer) (int64, error) {
	bw := binutil.NewWriter(w)
	bw.Uint64(d.minScope)
	bw.Float64(d.alpha)
	bw.Float64(d.tau)
	bw.Uint64(uint64(len(d.configs)))
	if err := bw.Err(); err != nil {
		return bw.BytesWritten(), err
	}

	n := bw.BytesWritten()
	for _, row := range d.configs {
		for _, c := range row {
			m, err := c.WriteTo(w)
			n += m
			if err != nil {
				return n, err
			}
		}
	}
	return n, nil
}

// ReadFrom restores selector state from r, returning the bytes consumed.
//
// The load is atomic: state is decoded into a fresh triangle and swapped in
// only once the whole stream has been read successfully, so a truncated or
// malformed stream leaves the receiver untouched. The borrowed weight store
// is kept as-is.
func (d *Data) ReadFrom(r io.Reader) (int64, error) {
	br := binutil.NewReader(r)
	minScope := br.Uint64()
	alpha := br.Float64()
	tau := br.Float64()
	numConfigs := br.Uint64()
	if err := br.Err(); err != nil {
		return br.BytesRead(), fmt.Errorf("%w: %w", ErrTruncatedModel, err)
	}
	if numConfigs == 0 || numConfigs > maxNumConfigs {
		return br.BytesRead(), fmt.Errorf("%w: num configs %d", ErrTruncatedModel, numConfigs)
	}

	n := br.BytesRead()
	configs := make([][]*score.Config, numConfigs)
	slots := make([]slotRef, 0, TriangleSize(numConfigs))
	for i := uint64(0); i < numConfigs; i++ {
		row := make([]*score.Config, i+1)
		for j := uint64(0); j <= i; j++ {
			c := &score.Config{}
			m, err := c.ReadFrom(r)
			n += m
			if err != nil {
				return n, fmt.Errorf("%w: %w", ErrTruncatedModel, err)
			}
			row[j] = c
			slots = append(slots, slotRef{row: int(i), col: int(j)})
		}
		configs[i] = row
	}

	d.configs = configs
	d.slots = slots
	d.minScope = minScope
	d.alpha = alpha
	d.tau = tau
	return n, nil
}
