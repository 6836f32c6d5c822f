package common

// Status records why a run stopped. Continue (zero) means the run goes on,
// positive values are convergence and negative values mean the run stopped
// before converging. None of them is an error.
type Status int

const (
	Continue Status = iota
	LocChangeTol
	GradAbsTol
	ObjAbsTol
	ObjChangeTol
)

const (
	UserFunctionError Status = -(iota + 1)
	// CurvatureTooSmall means the estimated second derivative was too close
	// to zero to take a Newton step
	CurvatureTooSmall
	MaximumIterations
	MaximumFunctionEvaluations
	MaximumRuntime
)

var statusNames = map[Status]string{
	Continue:                   "Continue",
	LocChangeTol:               "LocChangeTol",
	GradAbsTol:                 "GradAbsTol",
	ObjAbsTol:                  "ObjAbsTol",
	ObjChangeTol:               "ObjChangeTol",
	UserFunctionError:          "ErrorInUserFunction",
	CurvatureTooSmall:          "CurvatureTooSmall",
	MaximumIterations:          "MaximumIterations",
	MaximumFunctionEvaluations: "MaximumFunctionEvaluations",
	MaximumRuntime:             "MaximumRuntimeElapsed",
}

// customStatus is the last value handed out by NewStatus
var customStatus Status = 256

// NewStatus registers a named convergence status for objectives that stop
// the run themselves. It is not safe for concurrent use and is meant to be
// called from package initialization.
func NewStatus(name string) Status {
	customStatus++
	statusNames[customStatus] = name
	return customStatus
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UnregisteredStatus"
}

// Converged reports whether the status is a successful termination.
func (s Status) Converged() bool {
	return s > Continue
}

type Statuser interface {
	Status() Status
}

// CheckStatus returns the first status of cs that is not Continue.
func CheckStatus(cs ...Statuser) Status {
	for _, c := range cs {
		if s := c.Status(); s != Continue {
			return s
		}
	}
	return Continue
}
