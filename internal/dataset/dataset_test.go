package dataset

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// encode builds a dataset file body, declaring n elements but writing values.
func encode(n uint32, values []int32, trailing ...byte) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, n)
	_ = binary.Write(&buf, binary.LittleEndian, values)
	buf.Write(trailing)
	return buf.Bytes()
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestLoad_WellFormed(t *testing.T) {
	want := []int32{5, -1, 2147483647, -2147483648, 0, 5}
	path := writeFile(t, "random_n6_seed1.bin", encode(uint32(len(want)), want))

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestLoad_Empty(t *testing.T) {
	path := writeFile(t, "sorted_n0_seed1.bin", encode(0, nil))

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty dataset, got %d values", len(got))
	}
}

func TestLoad_LargerThanOneChunk(t *testing.T) {
	want := make([]int32, chunkElems*2+7)
	for i := range want {
		want[i] = int32(len(want) - i)
	}
	path := writeFile(t, "reversed_n131079_seed1.bin", encode(uint32(len(want)), want))

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	if got[0] != want[0] || got[len(got)-1] != want[len(want)-1] {
		t.Errorf("order not preserved: first=%d last=%d", got[0], got[len(got)-1])
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name      string
		data      []byte
		wantIO    bool
		wantCause error
	}{
		{
			name:      "empty file",
			data:      nil,
			wantIO:    true,
			wantCause: ErrTruncated,
		},
		{
			name:      "short header",
			data:      []byte{1, 0},
			wantIO:    true,
			wantCause: ErrTruncated,
		},
		{
			name:      "short payload",
			data:      encode(4, []int32{1, 2, 3}),
			wantIO:    true,
			wantCause: ErrTruncated,
		},
		{
			name:      "partial element",
			data:      encode(2, []int32{1}, 0xff, 0xff),
			wantIO:    true,
			wantCause: ErrTruncated,
		},
		{
			name:      "huge header",
			data:      encode(1<<31, []int32{1, 2}),
			wantIO:    true,
			wantCause: ErrTruncated,
		},
		{
			name:      "one trailing byte",
			data:      encode(2, []int32{1, 2}, 0),
			wantCause: ErrTrailingBytes,
		},
		{
			name:      "trailing element",
			data:      encode(1, []int32{1, 2}),
			wantCause: ErrTrailingBytes,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "data.bin", tt.data)

			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var ioErr *IOError
			var fmtErr *FormatError
			if tt.wantIO && !errors.As(err, &ioErr) {
				t.Errorf("expected *IOError, got %T: %v", err, err)
			}
			if !tt.wantIO && !errors.As(err, &fmtErr) {
				t.Errorf("expected *FormatError, got %T: %v", err, err)
			}
			if !errors.Is(err, tt.wantCause) {
				t.Errorf("expected cause %v, got %v", tt.wantCause, err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.bin"))

	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *IOError, got %T: %v", err, err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist in chain, got %v", err)
	}
}

func TestDecode_ReaderStopsAtPayload(t *testing.T) {
	got, err := Decode(bytes.NewReader(encode(3, []int32{3, 1, 2})))
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if len(got) != 3 || got[0] != 3 || got[1] != 1 || got[2] != 2 {
		t.Errorf("unexpected values: %v", got)
	}
}

func TestDecode_CountAboveMaxInt32(t *testing.T) {
	tests := []struct {
		name      string
		n         uint32
		wantBytes string
	}{
		{name: "sign bit set", n: 1 << 31, wantBytes: "8589934592"},
		{name: "max uint32", n: math.MaxUint32, wantBytes: "17179869180"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(encode(tt.n, []int32{0x04030201})))

			var ioErr *IOError
			if !errors.As(err, &ioErr) {
				t.Fatalf("expected *IOError, got %T: %v", err, err)
			}
			if !errors.Is(err, ErrTruncated) {
				t.Errorf("expected ErrTruncated, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantBytes) {
				t.Errorf("expected %s expected bytes in %q", tt.wantBytes, err.Error())
			}
		})
	}
}

func TestDistribution(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"random_n100000_seed1.bin", "random"},
		{"nodist.bin", "unknown"},
		{"data/nearly_sorted_n1000_seed7.bin", "nearly_sorted"},
		{"/abs/few_unique_n10_seed1.bin", "few_unique"},
		{"dir_n5/plain.bin", "unknown"},
		{"_n5.bin", ""},
		{"a_nb_nc.bin", "a"},
	}

	for _, tt := range tests {
		if got := Distribution(tt.path); got != tt.want {
			t.Errorf("Distribution(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
