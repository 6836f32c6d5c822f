package univariate

import (
	"math"

	"github.com/btracey/newton/common"
)

type quadratic struct {
	a float64
	b float64
	c float64
}

func (q quadratic) Obj(x float64) float64 {
	return q.a*(x-q.b)*(x-q.b) + q.c
}

func (q quadratic) OptVal() float64 {
	return q.c
}

func (q quadratic) OptLoc() float64 {
	return q.b
}

// quartic is x^4, whose curvature vanishes at the optimum
type quartic struct{}

func (quartic) Obj(x float64) float64 {
	return x * x * x * x
}

// cycler has the derivative x^3 - 2x + 2, for which Newton's method started
// at zero alternates between zero and one
type cycler struct{}

func (cycler) Obj(x float64) float64 {
	return x*x*x*x/4 - x*x + 2*x
}

type constant float64

func (c constant) Obj(float64) float64 {
	return float64(c)
}

// counter counts the evaluations of the wrapped objective
type counter struct {
	Objective
	evals int
}

func (c *counter) Obj(x float64) float64 {
	c.evals++
	return c.Objective.Obj(x)
}

// stopper asks the optimizer to stop after a fixed number of evaluations
// and records the calls made to it by the optimizer
type stopper struct {
	counter
	limit    int
	inited   int
	resulted int
}

func (s *stopper) Init() { s.inited++ }

func (s *stopper) Result() { s.resulted++ }

func (s *stopper) Status() common.Status {
	if s.evals >= s.limit {
		return common.UserFunctionError
	}
	return common.Continue
}

var sqrtDomain = Func(func(x float64) float64 {
	if x < 0 {
		panic("sqrt of negative number")
	}
	return -math.Sqrt(x) + x
})
