package epsilondecay

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/banditgo/internal/binutil"
	"github.com/hupe1980/banditgo/weights"
)

func TestTriangleSize(t *testing.T) {
	assert.Equal(t, uint64(1), TriangleSize(1))
	assert.Equal(t, uint64(3), TriangleSize(2))
	assert.Equal(t, uint64(6), TriangleSize(3))
	assert.Equal(t, uint64(10), TriangleSize(4))
}

func TestNewAssignsDenseRowMajorIndices(t *testing.T) {
	w := weights.NewDense(16, 3) // stride 8 >= 6 lanes
	d, err := New(3, 10, 0.05, 0.999, w)
	require.NoError(t, err)

	assert.Equal(t, uint64(3), d.NumConfigs())
	assert.Equal(t, uint64(6), d.TotalConfigs())

	want := uint64(0)
	for i, row := range d.configs {
		require.Len(t, row, i+1)
		for _, c := range row {
			assert.Equal(t, want, c.ModelIdx())
			assert.Equal(t, 0.05, c.Alpha())
			assert.Equal(t, 0.999, c.Tau())
			want++
		}
	}

	// The flat lookup table must be the inverse of row-major assignment.
	for idx := uint64(0); idx < d.TotalConfigs(); idx++ {
		assert.Equal(t, idx, d.Config(idx).ModelIdx())
	}
}

func TestNewValidation(t *testing.T) {
	_, err := New(0, 10, 0.05, 0.999, nil)
	assert.ErrorIs(t, err, ErrInvalidNumConfigs)

	w := weights.NewDense(16, 2) // stride 4 < 6 lanes
	_, err = New(3, 10, 0.05, 0.999, w)
	assert.ErrorIs(t, err, weights.ErrStrideTooSmall)
}

func TestUpdateAdvancesAllConfigs(t *testing.T) {
	w := weights.NewDense(16, 2) // stride 4 >= 3 lanes
	d, err := New(2, 100, 0.05, 0.999, w)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		d.Update(1.0, 0.5)
	}

	for idx := uint64(0); idx < d.TotalConfigs(); idx++ {
		assert.Equal(t, uint64(5), d.Config(idx).UpdateCount())
	}
}

// drive feeds synthetic evidence into one slot without touching the others.
func drive(d *Data, idx uint64, n int, w, r float32) {
	c := d.Config(idx)
	for i := 0; i < n; i++ {
		c.UpdateBounds(w, r)
	}
}

func TestSweepPromotesOnStrictDominance(t *testing.T) {
	w := weights.NewDense(16, 2)
	d, err := New(2, 10, 0.05, 0.999, w)
	require.NoError(t, err)

	incumbent := d.configs[0][0]  // model 0
	challenger := d.configs[1][1] // model 2

	// Dirty the incumbent's weight lane so eviction is observable.
	w.At(3)[incumbent.ModelIdx()] = 42

	drive(d, incumbent.ModelIdx(), 100, 1.0, 0.0)  // flat zero reward
	drive(d, challenger.ModelIdx(), 100, 1.0, 1.0) // perfect reward

	require.Greater(t, challenger.LowerBound(), incumbent.UpperBound())

	evicted := d.sweep()
	require.Equal(t, []uint64{0}, evicted)

	// The slot is recycled in place: same lane, fresh statistics.
	fresh := d.configs[0][0]
	assert.NotSame(t, incumbent, fresh)
	assert.Equal(t, uint64(0), fresh.ModelIdx())
	assert.Equal(t, uint64(0), fresh.UpdateCount())

	// The evicted lane must be cleared across the store.
	assert.Equal(t, float32(0), w.At(3)[0])
}

func TestSweepDemotesDominatedChallenger(t *testing.T) {
	w := weights.NewDense(16, 2)
	d, err := New(2, 10, 0.05, 0.999, w)
	require.NoError(t, err)

	incumbent := d.configs[0][0]
	challenger := d.configs[1][1]

	drive(d, incumbent.ModelIdx(), 100, 1.0, 1.0)
	drive(d, challenger.ModelIdx(), 100, 1.0, 0.0)

	evicted := d.sweep()
	require.Equal(t, []uint64{challenger.ModelIdx()}, evicted)

	fresh := d.configs[1][1]
	assert.Equal(t, challenger.ModelIdx(), fresh.ModelIdx())
	assert.Equal(t, uint64(0), fresh.UpdateCount())
}

func TestSweepIgnoresOverlappingIntervals(t *testing.T) {
	w := weights.NewDense(16, 2)
	d, err := New(2, 10, 0.05, 0.999, w)
	require.NoError(t, err)

	// Identical evidence: intervals overlap, statistically indistinguishable.
	drive(d, 0, 100, 1.0, 1.0)
	drive(d, 2, 100, 1.0, 1.0)

	assert.Empty(t, d.sweep())
	assert.Equal(t, uint64(100), d.configs[0][0].UpdateCount())
	assert.Equal(t, uint64(100), d.configs[1][1].UpdateCount())
}

func TestSweepRespectsMinScope(t *testing.T) {
	w := weights.NewDense(16, 2)
	d, err := New(2, 1000, 0.05, 0.999, w)
	require.NoError(t, err)

	drive(d, 0, 100, 1.0, 0.0)
	drive(d, 2, 100, 1.0, 1.0)

	// Clearly dominated, but below scope: ineligible for comparison.
	assert.Empty(t, d.sweep())
}

func TestChampionAndEpsilon(t *testing.T) {
	w := weights.NewDense(16, 2)
	d, err := New(2, 100, 0.05, 0.999, w)
	require.NoError(t, err)

	assert.Equal(t, uint64(0), d.Champion())

	eps0 := d.Epsilon()
	d.Update(1.0, 1.0)
	eps1 := d.Epsilon()
	assert.Less(t, eps1, eps0)
	assert.Greater(t, eps1, float64(0))
}

func TestRoundTrip(t *testing.T) {
	w := weights.NewDense(16, 3)
	d, err := New(3, 25, 0.05, 0.999, w)
	require.NoError(t, err)

	for i := 0; i < 40; i++ {
		d.Update(1.5, float32(i%4)/3)
	}

	var buf bytes.Buffer
	wrote, err := d.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), wrote)

	restored := &Data{}
	read, err := restored.ReadFrom(&buf)
	require.NoError(t, err)
	assert.Equal(t, wrote, read)

	assert.Equal(t, d.MinScope(), restored.MinScope())
	assert.Equal(t, d.Alpha(), restored.Alpha())
	assert.Equal(t, d.Tau(), restored.Tau())
	require.Equal(t, d.NumConfigs(), restored.NumConfigs())
	require.Equal(t, d.TotalConfigs(), restored.TotalConfigs())

	for idx := uint64(0); idx < d.TotalConfigs(); idx++ {
		orig, got := d.Config(idx), restored.Config(idx)
		assert.Equal(t, orig.ModelIdx(), got.ModelIdx())
		assert.Equal(t, orig.UpdateCount(), got.UpdateCount())
		assert.Equal(t, orig.UpperBound(), got.UpperBound())
		assert.Equal(t, orig.LowerBound(), got.LowerBound())
	}
}

func TestReadFromTruncatedLeavesStateUntouched(t *testing.T) {
	w := weights.NewDense(16, 3)
	d, err := New(3, 25, 0.05, 0.999, w)
	require.NoError(t, err)
	d.Update(1.0, 1.0)

	var buf bytes.Buffer
	_, err = d.WriteTo(&buf)
	require.NoError(t, err)

	restored, err := New(2, 5, 0.1, 0.9, nil)
	require.NoError(t, err)

	_, err = restored.ReadFrom(bytes.NewReader(buf.Bytes()[:buf.Len()/2]))
	require.ErrorIs(t, err, ErrTruncatedModel)

	// Atomic load: failed restore must not leave partial state.
	assert.Equal(t, uint64(2), restored.NumConfigs())
	assert.Equal(t, uint64(5), restored.MinScope())
	assert.Equal(t, 0.1, restored.Alpha())
}

func TestReadFromRejectsAbsurdShape(t *testing.T) {
	var buf bytes.Buffer
	d, err := New(1, 0, 0.05, 0.999, nil)
	require.NoError(t, err)
	_, err = d.WriteTo(&buf)
	require.NoError(t, err)

	// Corrupt the row count field (bytes 24..31).
	raw := buf.Bytes()
	for i := 24; i < 32; i++ {
		raw[i] = 0xFF
	}

	restored := &Data{}
	_, err = restored.ReadFrom(bytes.NewReader(raw))
	assert.ErrorIs(t, err, ErrTruncatedModel)
}

func TestReadFromRejectsOversizedRowCount(t *testing.T) {
	// A corrupted row count must be rejected before it can drive the
	// quadratic slot allocation.
	var buf bytes.Buffer
	bw := binutil.NewWriter(&buf)
	bw.Uint64(10)    // min scope
	bw.Float64(0.05) // alpha
	bw.Float64(0.999)
	bw.Uint64(4096) // rows, far past the accepted bound
	require.NoError(t, bw.Err())

	restored := &Data{}
	_, err := restored.ReadFrom(&buf)
	assert.ErrorIs(t, err, ErrTruncatedModel)
}

func TestAttachWeights(t *testing.T) {
	d, err := New(3, 10, 0.05, 0.999, nil)
	require.NoError(t, err)

	small := weights.NewDense(16, 2) // stride 4 < 6
	assert.ErrorIs(t, d.AttachWeights(small), weights.ErrStrideTooSmall)

	ok := weights.NewDense(16, 3)
	require.NoError(t, d.AttachWeights(ok))
	assert.Equal(t, weights.Store(ok), d.Weights())
}
