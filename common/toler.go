package common

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Toler follows a non-negative quantity over the iterations of a run, such
// as the length of the last step or the magnitude of the derivative.
type Toler struct {
	// Abs is reached once the latest value is strictly below it. NaN disables it.
	Abs float64
	// Change is reached once two consecutive values agree within it,
	// absolutely or relatively. Zero or negative disables it.
	Change float64

	prev   float64
	recent float64
	added  int
}

// NewToler returns a Toler with both checks disabled.
func NewToler() *Toler {
	t := &Toler{Abs: math.NaN()}
	t.Reset()
	return t
}

// Reset forgets all values added so far.
func (t *Toler) Reset() {
	t.prev = math.Inf(1)
	t.recent = math.Inf(1)
	t.added = 0
}

// Add records the value reached by an iteration.
func (t *Toler) Add(v float64) {
	t.prev = t.recent
	t.recent = v
	t.added++
}

// Recent returns the latest value, +Inf before the first Add.
func (t *Toler) Recent() float64 {
	return t.recent
}

func (t *Toler) AbsConverged() bool {
	return t.added > 0 && t.recent < t.Abs
}

func (t *Toler) ChangeConverged() bool {
	if t.Change <= 0 || t.added < 2 {
		return false
	}
	return scalar.EqualWithinAbsOrRel(t.prev, t.recent, t.Change, t.Change)
}
