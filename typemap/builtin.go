package typemap

import (
	"errors"
	"strconv"

	"github.com/npillmayer/wordex/fragment"
)

// Built-in numeric types. Every one of them accepts its value bare, in double
// quotes, or in single quotes.
//
//   Integer    any integer                 → int64
//   +Integer   any non-negative integer    → int64
//   -Integer   any negative integer        → int64
//   Float      any decimal number          → float64
//   +Float     any non-negative number     → float64
//   -Float     any negative number         → float64
//
// Values out of range for int64/float64 fail validation.
var builtins = []struct {
	name     string
	fragment string
	validate Validator
}{
	{"Integer", `[+-]?\d+`, toInteger},
	{"+Integer", `\+?\d+`, toInteger},
	{"-Integer", `-\d+`, toInteger},
	{"Float", `[+-]?\d+(?:\.\d+)?`, toFloat},
	{"+Float", `\+?\d+(?:\.\d+)?`, toFloat},
	{"-Float", `-\d+(?:\.\d+)?`, toFloat},
}

func installBuiltins(reg *Registry) {
	for _, b := range builtins {
		reg.MustRegister(b.name, fragment.QuotedVariants(b.fragment), b.validate)
	}
}

func toInteger(ctx Context, value string) (interface{}, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return nil, Reject(value, "integer out of range")
		}
		return nil, err
	}
	return n, nil
}

func toFloat(ctx Context, value string) (interface{}, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return nil, Reject(value, "number out of range")
		}
		return nil, err
	}
	return f, nil
}
