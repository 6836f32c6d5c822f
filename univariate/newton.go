package univariate

import (
	"errors"
	"fmt"
	"math"

	"github.com/btracey/newton/common"
	"github.com/btracey/newton/findiff"
)

const (
	// DefaultNewtonStep is the default finite difference half width.
	DefaultNewtonStep = 1e-3
	// DefaultNewtonTol is the default bound on the length of the final step.
	DefaultNewtonTol = 1e-4
	// DefaultNewtonCurvatureTol is the smallest second derivative magnitude
	// Newton will divide by.
	DefaultNewtonCurvatureTol = 1e-10
)

// ErrStepNotPositive is returned by Init when Step is not a positive finite number.
var ErrStepNotPositive = errors.New("newton: finite difference step must be positive and finite")

// Newton finds a stationary point of the objective with Newton's method
// applied to the derivative,
//
//	x_{k+1} = x_k - f'(x_k) / f''(x_k)
//
// where both derivatives are estimated with central differences of width
// Step. The objective is evaluated three times per iteration.
//
// The run converges when two consecutive locations differ by less than Tol.
// If the magnitude of the estimated second derivative is below CurvatureTol
// no step is taken and the optimizer stops at the current location.
// Newton assumes the objective is twice differentiable near the optimum and
// that the initial location is close enough for the method to converge.
type Newton struct {
	Step         float64
	Tol          float64
	CurvatureTol float64

	f      Objective
	loc    float64
	delta  common.Toler
	status common.Status
}

// NewNewton returns a Newton optimizer with the default parameters.
func NewNewton() *Newton {
	return &Newton{
		Step:         DefaultNewtonStep,
		Tol:          DefaultNewtonTol,
		CurvatureTol: DefaultNewtonCurvatureTol,
	}
}

// Init checks Step and starts a run at initLoc. f is not evaluated.
func (n *Newton) Init(f Objective, initLoc float64) error {
	if !(n.Step > 0) || math.IsInf(n.Step, 1) {
		return ErrStepNotPositive
	}
	n.f = f
	n.loc = initLoc
	n.status = common.Continue
	n.delta = common.Toler{Abs: n.Tol, Change: -1}
	n.delta.Reset()
	return nil
}

// Status reports LocChangeTol or CurvatureTooSmall once either happened.
func (n *Newton) Status() common.Status {
	return n.status
}

// Iterate estimates the derivatives at the current location and takes one
// Newton step. A degenerate curvature leaves the location unchanged.
func (n *Newton) Iterate() (Step, error) {
	fx, grad, curv := findiff.Central(n.f.Obj, n.loc, n.Step)
	step := Step{
		Loc:      n.loc,
		Obj:      fx,
		Grad:     grad,
		Curv:     curv,
		Next:     n.loc,
		FunEvals: findiff.CentralEvaluations,
	}
	if math.Abs(curv) < n.CurvatureTol {
		n.status = common.CurvatureTooSmall
		return step, nil
	}

	step.Next = n.loc - grad/curv
	step.Moved = true
	n.delta.Add(math.Abs(step.Next - n.loc))
	n.loc = step.Next
	if n.delta.AbsConverged() {
		n.status = common.LocChangeTol
	}
	return step, nil
}

func (n *Newton) Describe(status common.Status) string {
	switch status {
	case common.CurvatureTooSmall:
		return "Second derivative too small; stopping early."
	case common.LocChangeTol:
		return fmt.Sprintf("Converged: |Δx| < tol (%v)", n.Tol)
	case common.MaximumIterations:
		return fmt.Sprintf("Maximum iterations reached; last |Δx| = %e", n.delta.Recent())
	}
	return "Stopped: " + status.String()
}
