// Package dataset reads the binary int32 datasets consumed by the sort harness.
//
// A dataset file is a 4-byte little-endian unsigned element count followed by
// exactly that many 4-byte little-endian signed integers:
//
//	+--------+--------+--------+-----+--------+
//	| n:u32  | v0:i32 | v1:i32 | ... | vn-1   |
//	+--------+--------+--------+-----+--------+
//
// Nothing may follow the last element. The format is little-endian and hosts
// are assumed to be little-endian as well; no byte-order detection is done.
package dataset

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	headerSize = 4
	elemSize   = 4

	// chunkElems bounds how many elements are decoded per read so that a
	// corrupt header cannot force a huge allocation before truncation is seen.
	chunkElems = 1 << 16
)

var (
	// ErrTruncated is returned when the header or payload ends early.
	ErrTruncated = errors.New("dataset truncated")

	// ErrTrailingBytes is returned when bytes remain after the declared payload.
	ErrTrailingBytes = errors.New("trailing bytes after payload")
)

// IOError reports a dataset that could not be opened or read in full.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("read dataset %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// FormatError reports a dataset whose length disagrees with its header.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid dataset %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Load reads the dataset at path into memory.
func Load(path string) ([]int32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	defer f.Close()

	values, err := Decode(bufio.NewReader(f))
	if err != nil {
		var ferr *FormatError
		if errors.As(err, &ferr) {
			ferr.Path = path
			return nil, ferr
		}
		var ioErr *IOError
		if errors.As(err, &ioErr) {
			ioErr.Path = path
			return nil, ioErr
		}
		return nil, &IOError{Path: path, Err: err}
	}
	return values, nil
}

// Decode reads one dataset from r. r must end exactly where the payload ends.
func Decode(r io.Reader) ([]int32, error) {
	var header [headerSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, &IOError{Err: fmt.Errorf("read header: %w", truncated(err))}
	}
	n := binary.LittleEndian.Uint32(header[:])

	// Counts stay in uint64 so a header above math.MaxInt32 cannot go
	// negative on 32-bit platforms.
	first := int(min(uint64(n), chunkElems))
	values := make([]int32, 0, first)
	buf := make([]byte, first*elemSize)
	for remaining := uint64(n); remaining > 0; {
		k := int(min(remaining, chunkElems))
		chunk := buf[:k*elemSize]
		if _, err := io.ReadFull(r, chunk); err != nil {
			return nil, &IOError{Err: fmt.Errorf("read payload: expected %d bytes: %w", uint64(n)*elemSize, truncated(err))}
		}
		for i := 0; i < k; i++ {
			values = append(values, int32(binary.LittleEndian.Uint32(chunk[i*elemSize:])))
		}
		remaining -= uint64(k)
	}

	var extra [1]byte
	switch _, err := io.ReadFull(r, extra[:]); {
	case err == nil:
		return nil, &FormatError{Err: fmt.Errorf("declared %d elements: %w", n, ErrTrailingBytes)}
	case errors.Is(err, io.EOF):
		return values, nil
	default:
		return nil, &IOError{Err: fmt.Errorf("check trailing bytes: %w", err)}
	}
}

// truncated maps short reads onto ErrTruncated and keeps other read errors.
func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}
	return err
}
