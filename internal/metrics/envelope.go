package metrics

import (
	"math"

	"github.com/san-kum/physim/internal/dynamo"
)

// Envelope records the local maxima of |x[index]|. Its value is the ratio of
// the last peak to the first, so anything below 1 means the oscillation is
// dying out.
type Envelope struct {
	index int
	prev2 float64
	prev1 float64
	seen  int
	peaks []float64
}

func NewEnvelope(index int) *Envelope {
	return &Envelope{index: index}
}

func (e *Envelope) Name() string { return "envelope" }

func (e *Envelope) Observe(x dynamo.State, t float64) {
	if e.index >= len(x) {
		return
	}
	cur := math.Abs(x[e.index])
	if e.seen >= 2 && e.prev1 > e.prev2 && e.prev1 >= cur {
		e.peaks = append(e.peaks, e.prev1)
	}
	e.prev2, e.prev1 = e.prev1, cur
	e.seen++
}

func (e *Envelope) Peaks() []float64 {
	out := make([]float64, len(e.peaks))
	copy(out, e.peaks)
	return out
}

func (e *Envelope) Value() float64 {
	if len(e.peaks) < 2 || e.peaks[0] == 0 {
		return 1
	}
	return e.peaks[len(e.peaks)-1] / e.peaks[0]
}

func (e *Envelope) Reset() {
	e.prev1, e.prev2 = 0, 0
	e.seen = 0
	e.peaks = e.peaks[:0]
}
