package write

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	iter int
	x    float64
	name string
}

func (p *point) AppendWriteData(v []*Value) []*Value {
	v = append(v, &Value{Heading: "Iter", Value: p.iter})
	v = append(v, &Value{Heading: "x", Value: p.x, Trace: "%.3f"})
	v = append(v, &Value{Heading: "Name", Value: p.name, Trace: "%s"})
	return v
}

func newPointDisplay(t *testing.T, writers ...Writer) (*Display, *point) {
	p := &point{name: "start"}
	d := NewDisplay()
	d.AddDataAdder(p)
	require.NoError(t, d.Init(&WriteSettings{DisplayWriters: writers}))
	return d, p
}

func TestTracer(t *testing.T) {
	var buf bytes.Buffer
	d, p := newPointDisplay(t, Writer{&buf, Tracer})
	assert.Empty(t, buf.String(), "tracers write no header")

	p.iter, p.x, p.name = 1, 0.5, "a"
	d.Iterate()
	p.iter, p.x, p.name = 2, -1.25, "b"
	d.Iterate()
	d.Note("done")

	want := "[iter 01] x=0.500  Name=a\n" +
		"[iter 02] x=-1.250  Name=b\n" +
		"done\n"
	assert.Equal(t, want, buf.String())
	assert.NoError(t, d.Err())
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	d, p := newPointDisplay(t, Writer{&buf, Logger})

	p.iter, p.x, p.name = 1, 2, "a"
	d.Iterate()
	d.Note("not logged")

	want := "Iter,x,Name\n" +
		"1,2.000000e+00,a\n"
	assert.Equal(t, want, buf.String())
}

func TestDisplayer(t *testing.T) {
	var buf bytes.Buffer
	d, p := newPointDisplay(t, Writer{&buf, Displayer})

	p.iter, p.x, p.name = 7, 1, "long name"
	d.Iterate()

	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Equal(t, "Beginning Optimization", lines[0])
	assert.Equal(t, "Iter\tx           \tName     \t", lines[3])
	assert.Equal(t, "7   \t1.000000e+00\tlong name\t", lines[4])
}

func TestUnknownWriterType(t *testing.T) {
	d := NewDisplay()
	err := d.Init(&WriteSettings{DisplayWriters: []Writer{{&bytes.Buffer{}, Type(42)}}})
	assert.Error(t, err)
}

type failingWriter struct{ n int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.n++
	return 0, errors.New("disk full")
}

func TestWriteErrorIsKept(t *testing.T) {
	fw := &failingWriter{}
	d, _ := newPointDisplay(t, Writer{fw, Tracer})

	d.Iterate()
	d.Iterate()
	d.Note("ignored")
	assert.EqualError(t, d.Err(), "disk full")
	assert.Equal(t, 1, fw.n, "writing stops after the first error")
}

func TestNoWriters(t *testing.T) {
	d, _ := newPointDisplay(t)
	d.Iterate()
	d.Note("nothing")
	assert.NoError(t, d.Err())
}
