// Package findiff provides centered finite-difference estimates of the first
// and second derivative of a univariate function.
//
// None of the functions validate the step. h must be strictly positive and
// small relative to the scale over which f varies. A panic raised by f is
// not recovered.
package findiff

// Number of function evaluations performed by each estimator.
const (
	DerivativeEvaluations = 2
	CurvatureEvaluations  = 3
	CentralEvaluations    = 3
)

// Derivative returns the central difference approximation of f'(x):
//
//	(f(x+h) - f(x-h)) / 2h
func Derivative(f func(float64) float64, x, h float64) float64 {
	return (f(x+h) - f(x-h)) / (2 * h)
}

// Curvature returns the central difference approximation of f''(x):
//
//	(f(x+h) - 2f(x) + f(x-h)) / h^2
//
// f is evaluated at x-h, x and x+h in that order.
func Curvature(f func(float64) float64, x, h float64) float64 {
	lo := f(x - h)
	mid := f(x)
	hi := f(x + h)
	return (hi - 2*mid + lo) / (h * h)
}

// Central evaluates the three point stencil around x once and returns the
// function value together with the estimates of Derivative and Curvature.
func Central(f func(float64) float64, x, h float64) (fx, d1, d2 float64) {
	lo := f(x - h)
	fx = f(x)
	hi := f(x + h)
	d1 = (hi - lo) / (2 * h)
	d2 = (hi - 2*fx + lo) / (h * h)
	return fx, d1, d2
}
