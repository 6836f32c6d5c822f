package univariate

import (
	"fmt"

	"github.com/btracey/newton/common"
)

// Optimizer is a univariate optimizer that only evaluates the objective.
type Optimizer interface {
	Init(f Objective, initLoc float64) error
	// Status is the optimizer's own view of convergence
	Status() common.Status
	// Iterate performs one iteration. An iteration in which the optimizer
	// could not update the location returns a Step with Moved false, and
	// Status then reports why
	Iterate() (Step, error)
}

// Describer is implemented by optimizers that can explain how a run ended.
// The description is written to the display when the run finishes.
type Describer interface {
	Describe(status common.Status) string
}

// Wrapper is a convenience wrapper around an optimization algorithm that
// allows more fine-grained control over optimization progress. See Optimize
// for example usage
type Wrapper struct {
	optimizer Optimizer
	helper    *Helper
}

func NewWrapper(optimizer Optimizer) *Wrapper {
	return &Wrapper{
		optimizer: optimizer,
		helper:    NewHelper(),
	}
}

// Init starts a run. The optimizer is initialized first so that a
// configuration error leaves the objective and the writers untouched.
func (w *Wrapper) Init(settings *Settings, fun Objective, initLoc float64) error {
	if err := w.optimizer.Init(fun, initLoc); err != nil {
		return err
	}
	return w.helper.Init(settings, fun, initLoc)
}

// Status checks the optimizer first so that an iteration which converged is
// reported as converged even if it was also the last allowed one.
func (w *Wrapper) Status() common.Status {
	return common.CheckStatus(w.optimizer, w.helper)
}

func (w *Wrapper) Iterate() (Step, error) {
	step, err := w.optimizer.Iterate()
	if err != nil {
		return step, fmt.Errorf("error iterating optimizer: %w", err)
	}
	w.helper.Iterate(step)
	return step, nil
}

func (w *Wrapper) Result(status common.Status) *Result {
	msg := "Stopped: " + status.String()
	if d, ok := w.optimizer.(Describer); ok {
		msg = d.Describe(status)
	}
	w.helper.Note(msg)
	return w.helper.Result(status)
}

// Optimize minimizes f starting from initLoc. If settings is nil
// DefaultSettings is used, and if optimizer is nil a Newton optimizer with
// default parameters is used.
//
// Running out of iterations or stopping on a degenerate curvature is not an
// error; Result.Status records how the run ended. f is only evaluated by the
// optimizer's iterations, and a panic in f is not recovered.
func Optimize(f Objective, initLoc float64, settings *Settings, optimizer Optimizer) (*Result, error) {
	if settings == nil {
		settings = DefaultSettings()
	}
	if optimizer == nil {
		optimizer = NewNewton()
	}

	wrapper := NewWrapper(optimizer)

	err := wrapper.Init(settings, f, initLoc)
	if err != nil {
		return nil, fmt.Errorf("error initializing: %w", err)
	}

	var status common.Status
	for {
		// Check if it has converged
		status = wrapper.Status()
		if status != common.Continue {
			break
		}

		_, err := wrapper.Iterate()
		if err != nil {
			return nil, err
		}
	}
	return wrapper.Result(status), nil
}

// Minimize returns the location found by Newton's method with default
// settings.
func Minimize(f func(float64) float64, initLoc float64) float64 {
	return mustOptimize(f, initLoc, DefaultSettings()).Loc
}

// MinimizeHistory is like Minimize but also returns every location visited,
// starting with initLoc and ending with the returned location.
func MinimizeHistory(f func(float64) float64, initLoc float64) (float64, []float64) {
	settings := DefaultSettings()
	settings.History = true
	r := mustOptimize(f, initLoc, settings)
	return r.Loc, r.History
}

func mustOptimize(f func(float64) float64, initLoc float64, settings *Settings) *Result {
	r, err := Optimize(Func(f), initLoc, settings, nil)
	if err != nil {
		// The default optimizer cannot fail to initialize
		panic(err)
	}
	return r
}
