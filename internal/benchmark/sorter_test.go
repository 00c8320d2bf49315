package benchmark

import (
	"errors"
	"fmt"
	"slices"
	"sync/atomic"
	"testing"
)

// testNameCounter generates unique algorithm names so registrations from
// different tests never collide in the package-level registry.
var testNameCounter int64

func uniqueName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, atomic.AddInt64(&testNameCounter, 1))
}

func TestBuiltinRegistered(t *testing.T) {
	if !IsRegistered(BuiltinAlgorithm) {
		t.Fatal("builtin sorter should be registered")
	}

	sorter, err := Lookup(BuiltinAlgorithm)
	if err != nil {
		t.Fatalf("Lookup(builtin) failed: %v", err)
	}
	if sorter.Name() != "builtin" {
		t.Errorf("expected name builtin, got %q", sorter.Name())
	}

	values := []int32{3, -7, 3, 0, 2147483647, -2147483648}
	sorter.Sort(values)
	if !slices.Equal(values, []int32{-2147483648, -7, 0, 3, 3, 2147483647}) {
		t.Errorf("unexpected sort result: %v", values)
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("other")
	if !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("expected ErrUnknownAlgorithm, got %v", err)
	}
}

func TestRegister(t *testing.T) {
	name := uniqueName("reverse")
	Register(name, NamedSorter{Algo: name, Fn: func(v []int32) {
		slices.Sort(v)
		slices.Reverse(v)
	}})

	if !IsRegistered(name) {
		t.Fatalf("%s should be registered", name)
	}
	if !slices.Contains(Algorithms(), name) {
		t.Errorf("Algorithms() should list %s, got %v", name, Algorithms())
	}

	sorter, err := Lookup(name)
	if err != nil {
		t.Fatalf("Lookup() failed: %v", err)
	}
	values := []int32{1, 3, 2}
	sorter.Sort(values)
	if !slices.Equal(values, []int32{3, 2, 1}) {
		t.Errorf("unexpected result: %v", values)
	}
}

func TestRegister_PanicsOnDuplicate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register(BuiltinAlgorithm, NamedSorter{Algo: BuiltinAlgorithm, Fn: func([]int32) {}})
}

func TestRegister_PanicsOnNil(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on nil sorter")
		}
	}()
	Register(uniqueName("nil"), nil)
}

func TestAlgorithms_Sorted(t *testing.T) {
	names := Algorithms()
	if !slices.IsSorted(names) {
		t.Errorf("Algorithms() should be sorted, got %v", names)
	}
}

func TestGetSystemInfo(t *testing.T) {
	info := GetSystemInfo()

	if info.Language != "go" {
		t.Errorf("expected language go, got %q", info.Language)
	}
	if info.LanguageVersion == "" {
		t.Error("expected a language version")
	}
	if info.OS == "" || info.Arch == "" {
		t.Errorf("expected OS and arch, got %q/%q", info.OS, info.Arch)
	}
	if info.CPUs < 1 {
		t.Errorf("expected at least one CPU, got %d", info.CPUs)
	}
}
