// Package write sends the per-iteration state of a run to io.Writers.
package write

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

type Type int

const (
	// Logger writes a CSV row for every iteration, preceded by a heading row.
	Logger Type = iota

	// Displayer is meant for a person watching a long run. Rows are written
	// at most every 500ms with aligned columns, and the headings are repeated
	// every 30 rows.
	Displayer

	// Tracer writes one line per iteration with the values that have a Trace
	// verb, and the note explaining why the run stopped.
	Tracer
)

type Writer struct {
	io.Writer
	T Type
}

type WriteSettings struct {
	DisplayWriters []Writer // Destinations of the display, nil for none
	Verbose        bool     // Adds a Tracer on standard output
}

func DefaultWriteSettings() *WriteSettings {
	return &WriteSettings{}
}

// Validate checks that every writer has a known Type.
func (w *WriteSettings) Validate() error {
	for i, dw := range w.DisplayWriters {
		if dw.T < Logger || dw.T > Tracer {
			return fmt.Errorf("write: display writer %d has unknown type %d", i, dw.T)
		}
	}
	return nil
}

// Value is one column of the display. Trace is the fmt verb used by
// Tracer writers; a value without one is left out of trace lines.
type Value struct {
	Value   interface{}
	Heading string
	Trace   string
}

type DataAdder interface {
	AppendWriteData([]*Value) []*Value
}

// Display collects the values of its DataAdders at every iteration and
// hands them to the writers. Headings are taken once, at Init.
type Display struct {
	adders []DataAdder
	sinks  []sink

	headings []string
	row      []*Value
	iter     int

	err error
}

func NewDisplay() *Display {
	return &Display{}
}

// AddDataAdder appends columns to the display. Call it before Init.
func (d *Display) AddDataAdder(adders ...DataAdder) {
	d.adders = append(d.adders, adders...)
}

func (d *Display) collect() {
	d.row = d.row[:0]
	for _, a := range d.adders {
		d.row = a.AppendWriteData(d.row)
	}
}

// Init prepares the writers of settings for a new run and writes their
// preamble.
func (d *Display) Init(settings *WriteSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	d.sinks = d.sinks[:0]
	d.iter = 0
	d.err = nil

	writers := settings.DisplayWriters
	if settings.Verbose {
		writers = append(writers[:len(writers):len(writers)], Writer{os.Stdout, Tracer})
	}
	if len(writers) == 0 {
		return nil
	}

	d.collect()
	d.headings = d.headings[:0]
	for _, v := range d.row {
		d.headings = append(d.headings, v.Heading)
	}

	for _, w := range writers {
		s := newSink(w)
		if err := s.begin(d.headings); err != nil {
			return err
		}
		d.sinks = append(d.sinks, s)
	}
	return nil
}

// Iterate writes the current values. The first write error stops all
// further output and is kept for Err.
func (d *Display) Iterate() {
	d.iter++
	if d.err != nil || len(d.sinks) == 0 {
		return
	}
	d.collect()
	for _, s := range d.sinks {
		if d.err = s.row(d.iter, d.headings, d.row); d.err != nil {
			return
		}
	}
}

// Note writes a message line to the Tracer and Displayer writers.
func (d *Display) Note(msg string) {
	if d.err != nil {
		return
	}
	for _, s := range d.sinks {
		if d.err = s.note(msg); d.err != nil {
			return
		}
	}
}

// Err returns the first error encountered while writing.
func (d *Display) Err() error {
	return d.err
}

type sink interface {
	begin(headings []string) error
	row(iter int, headings []string, vals []*Value) error
	note(msg string) error
}

func newSink(w Writer) sink {
	switch w.T {
	case Logger:
		return csvSink{w}
	case Displayer:
		return &tableSink{w: w, headingsShown: headingEvery, last: time.Now().Add(-rowInterval)}
	}
	return traceSink{w}
}

type csvSink struct{ w io.Writer }

func (s csvSink) begin(headings []string) error {
	return writeLine(s.w, strings.Join(headings, ","))
}

func (s csvSink) row(_ int, _ []string, vals []*Value) error {
	fields := make([]string, len(vals))
	for i, v := range vals {
		fields[i] = format(v.Value)
	}
	return writeLine(s.w, strings.Join(fields, ","))
}

func (csvSink) note(string) error { return nil }

type traceSink struct{ w io.Writer }

func (traceSink) begin([]string) error { return nil }

func (s traceSink) row(iter int, _ []string, vals []*Value) error {
	var b strings.Builder
	fmt.Fprintf(&b, "[iter %02d]", iter)
	sep := " "
	for _, v := range vals {
		if v.Trace == "" {
			continue
		}
		b.WriteString(sep)
		b.WriteString(v.Heading)
		b.WriteByte('=')
		fmt.Fprintf(&b, v.Trace, v.Value)
		sep = "  "
	}
	return writeLine(s.w, b.String())
}

func (s traceSink) note(msg string) error {
	return writeLine(s.w, msg)
}

const (
	headingEvery = 30
	rowInterval  = 500 * time.Millisecond
)

// tableSink throttles rows so a fast objective does not flood the terminal.
type tableSink struct {
	w             io.Writer
	last          time.Time
	headingsShown int // rows written since the headings were last written
}

func (s *tableSink) begin([]string) error {
	return writeLine(s.w, "Beginning Optimization\n")
}

func (s *tableSink) row(_ int, headings []string, vals []*Value) error {
	if time.Since(s.last) <= rowInterval {
		return nil
	}
	s.last = time.Now()

	cells := make([]string, len(vals))
	widths := make([]int, len(vals))
	for i, v := range vals {
		cells[i] = format(v.Value)
		widths[i] = max(len(cells[i]), len(headings[i]))
	}
	if s.headingsShown >= headingEvery {
		s.headingsShown = 0
		if err := writeLine(s.w, "\n"+aligned(headings, widths)); err != nil {
			return err
		}
	}
	s.headingsShown++
	return writeLine(s.w, aligned(cells, widths))
}

func (s *tableSink) note(msg string) error {
	return writeLine(s.w, msg)
}

func aligned(cells []string, widths []int) string {
	var b strings.Builder
	for i, c := range cells {
		b.WriteString(c)
		b.WriteString(strings.Repeat(" ", widths[i]-len(c)))
		b.WriteByte('\t')
	}
	return b.String()
}

func writeLine(w io.Writer, s string) error {
	_, err := io.WriteString(w, s+"\n")
	return err
}

func format(v interface{}) string {
	switch v := v.(type) {
	case float64:
		return fmt.Sprintf("%e", v)
	case string:
		return v
	}
	return fmt.Sprint(v)
}
