package score

import (
	"io"
	"math"

	"github.com/hupe1980/banditgo/internal/binutil"
)

// Config is one candidate model's online statistical estimate: an
// inverse-propensity-weighted running mean (the upper bound) and a decayed
// empirical-Bernstein lower confidence bound, keyed to a model index that
// identifies the candidate's lane in the shared weight store.
type Config struct {
	alpha    float64
	tau      float64
	modelIdx uint64

	updateCount uint64
	ips         float64 // undecayed sum of w*r

	// tau-decayed accumulators for the lower bound. Every update multiplies
	// them by tau before the new observation is added, so old evidence fades
	// geometrically instead of being discarded abruptly.
	n       float64 // effective sample count
	sumX    float64 // decayed sum of w*r
	sumXSq  float64 // decayed sum of (w*r)^2
	rangeWR float64 // largest w*r observed (not decayed)

	lowerBound float64
}

// New creates a Config with fixed identity and zero accumulated statistic.
func New(alpha, tau float64, modelIdx uint64) *Config {
	return &Config{alpha: alpha, tau: tau, modelIdx: modelIdx}
}

// UpdateBounds incorporates one observed (importance weight, reward) pair.
//
// Importance weights and rewards are expected to be nonnegative, as in
// inverse-propensity scoring over [0, 1] rewards; the zero floor of the lower
// bound encodes that assumption. Negative rewards still produce a well-ordered
// interval (see LowerBound), just a looser one.
func (c *Config) UpdateBounds(w, r float32) {
	x := float64(w) * float64(r)

	c.ips += x
	c.updateCount++

	c.n = c.tau*c.n + 1
	c.sumX = c.tau*c.sumX + x
	c.sumXSq = c.tau*c.sumXSq + x*x
	if x > c.rangeWR {
		c.rangeWR = x
	}

	c.lowerBound = c.computeLowerBound()
}

// computeLowerBound evaluates the empirical-Bernstein bound on the decayed
// mean. With zero effective samples it degenerates to 0, the neutral
// maximal-uncertainty bound; it never faults.
func (c *Config) computeLowerBound() float64 {
	if c.n <= 0 {
		return 0
	}
	mean := c.sumX / c.n
	variance := c.sumXSq/c.n - mean*mean
	if variance < 0 {
		variance = 0
	}
	logTerm := c.logOneOverAlpha()
	lb := mean - math.Sqrt(2*variance*logTerm/c.n) - 3*c.rangeWR*logTerm/c.n
	if lb < 0 {
		return 0
	}
	if lb > mean {
		return mean
	}
	return lb
}

func (c *Config) logOneOverAlpha() float64 {
	if c.alpha <= 0 || c.alpha >= 1 {
		return 1
	}
	return math.Log(1 / c.alpha)
}

// DecayedEpsilon returns the exploration probability after updateCount
// updates: (updateCount+1)^(-1/3). It is monotonically non-increasing,
// strictly positive and converges to zero.
func (c *Config) DecayedEpsilon(updateCount uint64) float64 {
	return math.Pow(float64(updateCount+1), -1.0/3.0)
}

// UpperBound returns the current inverse-propensity-weighted average reward,
// or 0 before the first update.
func (c *Config) UpperBound() float64 {
	if c.updateCount == 0 {
		return 0
	}
	return c.ips / float64(c.updateCount)
}

// LowerBound returns the current lower confidence bound. It never exceeds
// UpperBound, so the interval stays well ordered even when rewards stray
// negative and the undecayed mean drops below the clamped estimator.
func (c *Config) LowerBound() float64 {
	if ub := c.UpperBound(); c.lowerBound > ub {
		return ub
	}
	return c.lowerBound
}

// ModelIdx returns the candidate's lane in the shared weight store.
func (c *Config) ModelIdx() uint64 { return c.modelIdx }

// UpdateCount returns the number of observed examples.
func (c *Config) UpdateCount() uint64 { return c.updateCount }

// Alpha returns the confidence level hyperparameter.
func (c *Config) Alpha() float64 { return c.alpha }

// Tau returns the count-decay time constant.
func (c *Config) Tau() float64 { return c.tau }

// Reset clears all accumulated statistics, keeping identity. Used when an
// ensemble slot is recycled.
func (c *Config) Reset() {
	c.updateCount = 0
	c.ips = 0
	c.n = 0
	c.sumX = 0
	c.sumXSq = 0
	c.rangeWR = 0
	c.lowerBound = 0
}

// WriteTo serializes the config in stable field order and returns the number
// of bytes produced. Floats round-trip bit-for-bit.
func (c *Config) WriteTo(w io.Writer) (int64, error) {
	bw := binutil.NewWriter(w)
	bw.Float64(c.alpha)
	bw.Float64(c.tau)
	bw.Uint64(c.modelIdx)
	bw.Uint64(c.updateCount)
	bw.Float64(c.ips)
	bw.Float64(c.n)
	bw.Float64(c.sumX)
	bw.Float64(c.sumXSq)
	bw.Float64(c.rangeWR)
	bw.Float64(c.lowerBound)
	return bw.BytesWritten(), bw.Err()
}

// ReadFrom restores the config from r and returns the number of bytes
// consumed. On failure the receiver is left untouched.
func (c *Config) ReadFrom(r io.Reader) (int64, error) {
	br := binutil.NewReader(r)
	tmp := Config{
		alpha:       br.Float64(),
		tau:         br.Float64(),
		modelIdx:    br.Uint64(),
		updateCount: br.Uint64(),
		ips:         br.Float64(),
		n:           br.Float64(),
		sumX:        br.Float64(),
		sumXSq:      br.Float64(),
		rangeWR:     br.Float64(),
		lowerBound:  br.Float64(),
	}
	if err := br.Err(); err != nil {
		return br.BytesRead(), err
	}
	*c = tmp
	return br.BytesRead(), nil
}
