package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"
)

// decimalInt is an int flag that only accepts base-10 input, so "010" is
// ten rather than an octal eight.
type decimalInt int

var _ pflag.Value = (*decimalInt)(nil)

func newDecimalInt(val int) *decimalInt {
	d := decimalInt(val)
	return &d
}

func (d *decimalInt) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%q is not a base-10 integer", s)
	}
	*d = decimalInt(n)
	return nil
}

func (d *decimalInt) String() string { return strconv.Itoa(int(*d)) }

// Type reports "int" so help output and viper treat the flag as a plain int.
func (d *decimalInt) Type() string { return "int" }
