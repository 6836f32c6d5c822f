package common

import "github.com/btracey/newton/write"

type Initer interface {
	Init()
}

type Resulter interface {
	Result()
}

// Hooks binds the optional interfaces an objective may implement. An
// Initer is called when a run starts, a Statuser is polled before every
// iteration, a Resulter is called when the run ends and a write.DataAdder
// contributes columns to the display.
type Hooks struct {
	initer   Initer
	statuser Statuser
	resulter Resulter
	adder    write.DataAdder
}

// Bind replaces the objective of the previous run, if any, and calls its
// Init method.
func (h *Hooks) Bind(objective interface{}) {
	h.initer, _ = objective.(Initer)
	h.statuser, _ = objective.(Statuser)
	h.resulter, _ = objective.(Resulter)
	h.adder, _ = objective.(write.DataAdder)
	if h.initer != nil {
		h.initer.Init()
	}
}

func (h *Hooks) Status() Status {
	if h.statuser == nil {
		return Continue
	}
	return h.statuser.Status()
}

func (h *Hooks) Result() {
	if h.resulter != nil {
		h.resulter.Result()
	}
}

func (h *Hooks) AppendWriteData(v []*write.Value) []*write.Value {
	if h.adder == nil {
		return v
	}
	return h.adder.AppendWriteData(v)
}
