// Package results records benchmark measurements in the append-only results
// log and mirrors them to the console.
//
// The log is plain comma-joined text with a fixed header written once per
// file lifetime. Fields are never quoted, so dataset paths and distribution
// labels must not contain commas.
//
// No cross-process locking is done. Each row is written with a single
// append-mode write, so rows from concurrent writers stay whole on
// filesystems with atomic appends, but two processes creating the same file
// at the same moment may both write a header.
package results

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/JurajKralik/Benchmarks/internal/benchmark"
)

// SchemaVersion identifies the column layout below. Any change to Columns
// must bump it.
const SchemaVersion = 1

// TimestampLayout renders measurement timestamps in local time.
const TimestampLayout = "2006-01-02T15:04:05"

// Columns is the fixed header of the results log.
var Columns = []string{
	"timestamp_iso",
	"task",
	"language",
	"language_version",
	"algo",
	"dataset_file",
	"distribution",
	"n",
	"warmup_runs",
	"rep_idx",
	"time_ms",
	"ok",
}

// Header returns the header line without a trailing newline.
func Header() string {
	return strings.Join(Columns, ",")
}

// FormatRow renders m in column order.
func FormatRow(m benchmark.Measurement) []string {
	return []string{
		m.Timestamp.Local().Format(TimestampLayout),
		m.Task,
		m.Language,
		m.LanguageVersion,
		m.Algorithm,
		m.DatasetFile,
		m.Distribution,
		strconv.Itoa(m.N),
		strconv.Itoa(m.WarmupRuns),
		strconv.Itoa(m.RepIdx),
		strconv.FormatFloat(m.TimeMs(), 'f', 3, 64),
		strconv.FormatBool(m.OK),
	}
}

// Log is an open results log. Obtain one with Open and always Close it.
type Log struct {
	path        string
	f           *os.File
	needsHeader bool
	regular     bool
}

// Open creates the parent directory if needed and opens path for appending.
// The header is pending if the file did not exist or was empty. Devices and
// pipes such as /dev/null or /dev/stdout are accepted as logs.
func Open(path string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, &WriteError{Path: path, Err: fmt.Errorf("create directory: %w", err)}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, &WriteError{Path: path, Err: err}
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &WriteError{Path: path, Err: err}
	}

	return &Log{
		path:        path,
		f:           f,
		needsHeader: info.Size() == 0,
		regular:     info.Mode().IsRegular(),
	}, nil
}

// Path returns the log file path.
func (l *Log) Path() string { return l.path }

// Append writes one row, preceded by the header if the file was new.
// The row and any header go out in a single write.
func (l *Log) Append(fields []string) error {
	var b strings.Builder
	if l.needsHeader {
		b.WriteString(Header())
		b.WriteByte('\n')
	}
	b.WriteString(strings.Join(fields, ","))
	b.WriteByte('\n')

	if _, err := l.f.WriteString(b.String()); err != nil {
		return &WriteError{Path: l.path, Err: err}
	}
	l.needsHeader = false
	return nil
}

// Close flushes a regular file to stable storage and closes it. fsync is
// not supported on devices and pipes, so those are only closed.
func (l *Log) Close() error {
	var syncErr error
	if l.regular {
		syncErr = l.f.Sync()
	}
	if err := l.f.Close(); err != nil {
		return &WriteError{Path: l.path, Err: err}
	}
	if syncErr != nil {
		return &WriteError{Path: l.path, Err: syncErr}
	}
	return nil
}

// AppendRow opens path, appends fields and closes it again. Whether a
// header is needed is decided afresh on every call.
func AppendRow(path string, fields []string) (err error) {
	l, err := Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := l.Close(); err == nil {
			err = cerr
		}
	}()

	return l.Append(fields)
}

// WriteError reports a results log that could not be created or written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write results %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
