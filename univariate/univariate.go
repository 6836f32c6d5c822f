package univariate

import (
	"math"

	"github.com/btracey/newton/common"
	"github.com/btracey/newton/write"
)

type Objective interface {
	Obj(x float64) float64
}

// Func is an adapter to allow the use of an ordinary function as an Objective.
type Func func(float64) float64

func (f Func) Obj(x float64) float64 {
	return f(x)
}

// Settings is a structure containing settings for univariate
// optimizers. Some settings may not apply to certain algorithms
type Settings struct {
	*common.CommonSettings
	*common.StopSettings
	History bool // Record every location visited in Result.History
}

// DefaultSettings returns the default settings for univariate optimizers.
// The default behavior is to run at most 100 iterations, keep no history and
// write no diagnostics. Set Verbose to trace every iteration on standard output.
func DefaultSettings() *Settings {
	return &Settings{
		CommonSettings: common.DefaultCommonSettings(),
		StopSettings:   common.DefaultStopSettings(),
	}
}

// Step is the record of a single iteration.
type Step struct {
	Loc      float64 // Location the derivatives were estimated at
	Obj      float64 // Objective value at Loc
	Grad     float64 // Estimated first derivative at Loc
	Curv     float64 // Estimated second derivative at Loc
	Next     float64 // Location after the iteration. Equal to Loc if the optimizer did not move
	Moved    bool    // The update was applied
	FunEvals int     // Number of function evaluations used by the iteration
}

// Helper is a helper struct for optimizers. Not intended for use by
// callers of optimization functions, but exported to aid others who are building
// optimization algorithms
//
// Optimization implementers should call Init() at the beginning of an optimization run
// and should call Status() to check tolerances. At the end of every iteration should call
// Iterate()
type Helper struct {
	*common.Common
	*common.Stopper

	loc     float64
	last    Step
	stepped bool

	recordHistory bool
	history       []float64
}

// NewHelper creates a new univariate helper and adds itself to the data adders
func NewHelper() *Helper {
	u := &Helper{
		Common:  common.NewCommon(),
		Stopper: common.NewStopper(),
	}
	u.AddDataAdder(u)
	return u
}

func (u *Helper) AppendWriteData(v []*write.Value) []*write.Value {
	v = append(v, &write.Value{Heading: "x", Value: u.last.Loc, Trace: "%.8f"})
	v = append(v, &write.Value{Heading: "f(x)", Value: u.last.Obj, Trace: "%.8f"})
	v = append(v, &write.Value{Heading: "f'(x)", Value: u.last.Grad, Trace: "%.8e"})
	v = append(v, &write.Value{Heading: "f''(x)", Value: u.last.Curv, Trace: "%.8e"})
	return v
}

func (u *Helper) Init(s *Settings, fun Objective, initLoc float64) error {
	if s == nil {
		s = DefaultSettings()
	}
	u.loc = initLoc
	u.last = Step{Loc: initLoc, Next: initLoc}
	u.stepped = false

	u.recordHistory = s.History
	u.history = u.history[:0]
	if u.recordHistory {
		u.history = append(u.history, initLoc)
	}

	u.Stopper.Init(s.StopSettings)
	return u.Common.Init(s.CommonSettings, fun)
}

func (u *Helper) Iterate(step Step) {
	u.last = step
	u.stepped = true
	if step.Moved {
		u.loc = step.Next
		if u.recordHistory {
			u.history = append(u.history, step.Next)
		}
	}
	u.Stopper.Iterate(math.Abs(step.Grad), step.Obj)
	u.Common.Iterate(step.FunEvals, step.Moved)
}

func (u *Helper) Status() common.Status {
	status := u.Stopper.Status()
	if status != common.Continue {
		return status
	}
	return u.Common.Status()
}

// Result ends the run. The objective is not evaluated again, so Obj is the
// value at the last location the derivatives were estimated at.
func (u *Helper) Result(status common.Status) *Result {
	obj := math.NaN()
	if u.stepped {
		obj = u.last.Obj
	}

	r := &Result{
		CommonResult: u.Common.Result(status),
		Obj:          obj,
		ObjLoc:       u.last.Loc,
		Loc:          u.loc,
		Grad:         u.last.Grad,
		Curv:         u.last.Curv,
	}
	if u.recordHistory {
		r.History = make([]float64, len(u.history))
		copy(r.History, u.history)
	}
	return r
}

type Result struct {
	*common.CommonResult
	Obj     float64   // Objective value at ObjLoc, NaN if no iteration ran
	ObjLoc  float64   // Last location the objective was evaluated at. Equal to Loc unless the last iteration moved
	Loc     float64   // Final location
	Grad    float64   // First derivative estimated during the last iteration
	Curv    float64   // Second derivative estimated during the last iteration
	History []float64 // Locations visited, starting with the initial location. Nil unless Settings.History is set
}
