package common

import (
	"math"
	"time"

	"github.com/btracey/newton/write"
)

// StopSettings are optional stopping criteria evaluated on the values seen
// at each iteration. All of them are disabled by default.
type StopSettings struct {
	GradAbsTol   float64 // Stop once |f'| is below this value, NaN to disable
	ObjAbsTol    float64 // Stop once f is below this value, NaN to disable
	ObjChangeTol float64 // Stop once consecutive objective values agree within this value (absolute or relative), <= 0 to disable
}

func DefaultStopSettings() *StopSettings {
	return &StopSettings{
		GradAbsTol:   math.NaN(),
		ObjAbsTol:    math.NaN(),
		ObjChangeTol: -1,
	}
}

// Stopper applies StopSettings during a run.
type Stopper struct {
	grad *Toler
	obj  *Toler
}

func NewStopper() *Stopper {
	return &Stopper{grad: NewToler(), obj: NewToler()}
}

func (s *Stopper) Init(settings *StopSettings) {
	if settings == nil {
		settings = DefaultStopSettings()
	}
	s.grad.Abs = settings.GradAbsTol
	s.grad.Change = -1
	s.obj.Abs = settings.ObjAbsTol
	s.obj.Change = settings.ObjChangeTol
	s.grad.Reset()
	s.obj.Reset()
}

// Iterate records the derivative magnitude and objective value of an iteration.
func (s *Stopper) Iterate(gradNorm, obj float64) {
	s.grad.Add(gradNorm)
	s.obj.Add(obj)
}

func (s *Stopper) Status() Status {
	switch {
	case s.grad.AbsConverged():
		return GradAbsTol
	case s.obj.AbsConverged():
		return ObjAbsTol
	case s.obj.ChangeConverged():
		return ObjChangeTol
	}
	return Continue
}

// CommonSettings are the run limits shared by all optimizers. A negative
// limit is no limit.
type CommonSettings struct {
	MaximumIterations          int           // Completed iterations
	MaximumFunctionEvaluations int           // Objective evaluations
	MaximumRuntime             time.Duration // Wall time since Init
	*write.WriteSettings
}

// DefaultCommonSettings allows 100 iterations and writes no diagnostics.
func DefaultCommonSettings() *CommonSettings {
	return &CommonSettings{
		MaximumIterations:          100,
		MaximumFunctionEvaluations: -1,
		MaximumRuntime:             -1,
		WriteSettings:              write.DefaultWriteSettings(),
	}
}

// CommonResult summarizes a finished run.
type CommonResult struct {
	Iterations          int           // Completed iterations
	FunctionEvaluations int           // Objective evaluations
	Runtime             time.Duration // Wall time of the run
	Status              Status        // Why the run stopped
}

// Common counts iterations and evaluations, enforces the run limits and
// owns the display of a run.
type Common struct {
	*write.Display

	hooks    *Hooks
	limits   CommonSettings
	iter     int
	funEvals int
	start    time.Time
}

// NewCommon creates a new Common and registers its counters and the
// objective hooks with the display.
func NewCommon() *Common {
	c := &Common{
		Display: write.NewDisplay(),
		hooks:   &Hooks{},
	}
	c.AddDataAdder(c, c.hooks)
	return c
}

// Init starts a run. A nil settings or a nil WriteSettings takes the
// defaults. Invalid writers are reported before the objective is touched.
func (c *Common) Init(settings *CommonSettings, objective interface{}) error {
	if settings == nil {
		settings = DefaultCommonSettings()
	}
	ws := settings.WriteSettings
	if ws == nil {
		ws = write.DefaultWriteSettings()
	}
	if err := ws.Validate(); err != nil {
		return err
	}

	c.limits = *settings
	c.iter = 0
	c.funEvals = 0
	c.start = time.Now()

	c.hooks.Bind(objective)
	return c.Display.Init(ws)
}

func (c *Common) AppendWriteData(v []*write.Value) []*write.Value {
	return append(v,
		&write.Value{Heading: "Iter", Value: c.iter},
		&write.Value{Heading: "FnEval", Value: c.funEvals},
	)
}

// Status reports a stop requested by the objective, then the first run
// limit that has been reached.
func (c *Common) Status() Status {
	if s := c.hooks.Status(); s != Continue {
		return s
	}
	l := c.limits
	switch {
	case l.MaximumIterations >= 0 && c.iter >= l.MaximumIterations:
		return MaximumIterations
	case l.MaximumFunctionEvaluations >= 0 && c.funEvals >= l.MaximumFunctionEvaluations:
		return MaximumFunctionEvaluations
	case l.MaximumRuntime >= 0 && time.Since(c.start) > l.MaximumRuntime:
		return MaximumRuntime
	}
	return Continue
}

// Result ends the run and notifies the objective.
func (c *Common) Result(status Status) *CommonResult {
	c.hooks.Result()
	return &CommonResult{
		Iterations:          c.iter,
		FunctionEvaluations: c.funEvals,
		Runtime:             time.Since(c.start),
		Status:              status,
	}
}

// Iterate records an iteration and writes it to the display. Only an
// iteration that moved to a new location counts as completed.
func (c *Common) Iterate(nFunEvals int, completed bool) {
	if completed {
		c.iter++
	}
	c.funEvals += nFunEvals
	c.Display.Iterate()
}

// Iterations returns the number of completed iterations.
func (c *Common) Iterations() int {
	return c.iter
}
