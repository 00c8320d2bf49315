package results

import (
	"fmt"
	"io"
	"strings"

	"github.com/JurajKralik/Benchmarks/internal/benchmark"
)

// Recorder appends measurements to a results log and echoes each row to a
// console stream.
type Recorder struct {
	// Path is the results log.
	Path string

	// Console receives the same comma-joined row. Nil disables the echo.
	Console io.Writer
}

// NewRecorder creates a Recorder for path that echoes rows to console.
func NewRecorder(path string, console io.Writer) *Recorder {
	return &Recorder{Path: path, Console: console}
}

// Record writes m to the console and then appends it to the log. The console
// line is written even when the append fails.
func (r *Recorder) Record(m benchmark.Measurement) error {
	fields := FormatRow(m)

	if r.Console != nil {
		// Console echo is best effort; the log is the record of truth.
		_, _ = fmt.Fprintln(r.Console, strings.Join(fields, ","))
	}

	return AppendRow(r.Path, fields)
}
