package metadata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/denismitr/voodoo/internal/errs"
	"github.com/pkg/errors"
)

// Kind is how a tag's value is meant to be read.
type Kind int

const (
	KindString Kind = iota + 1
	KindInt
	KindInts
	KindRational
	KindRationals
	KindBytes
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindInts:
		return "ints"
	case KindRational:
		return "rational"
	case KindRationals:
		return "rationals"
	case KindBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

type Rational struct {
	Num int64
	Den int64
}

// Float returns Num/Den, or 0 for a zero denominator.
func (r Rational) Float() float64 {
	if r.Den == 0 {
		return 0
	}

	return float64(r.Num) / float64(r.Den)
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// Raw is a tag value as it was decoded from the stream. Only the slice
// matching the stored type is populated; Bytes always holds the raw value.
type Raw struct {
	Type   uint16
	Count  int
	Ints   []int64
	Rats   []Rational
	Floats []float64
	Str    string
	Bytes  []byte
}

// Value is the result of a tag lookup. A missing tag gives a Value whose
// Exists is false; its accessors return zero values or ErrNotFound.
type Value struct {
	name string
	kind Kind
	raw  *Raw
}

func (v Value) Exists() bool {
	return v.raw != nil
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) Raw() *Raw {
	return v.raw
}

func (v Value) missing() error {
	return errors.Wrapf(errs.ErrNotFound, "tag %s", v.name)
}

// Int returns the first value as an integer. Rationals are truncated and
// numeric strings are parsed.
func (v Value) Int() (int, error) {
	if v.raw == nil {
		return 0, v.missing()
	}

	switch {
	case len(v.raw.Ints) > 0:
		return int(v.raw.Ints[0]), nil
	case len(v.raw.Rats) > 0:
		return int(v.raw.Rats[0].Float()), nil
	case len(v.raw.Floats) > 0:
		return int(v.raw.Floats[0]), nil
	case v.raw.Str != "":
		n, err := strconv.Atoi(strings.TrimSpace(v.raw.Str))
		if err != nil {
			return 0, errors.Wrapf(errs.ErrArgument, "tag %s is not numeric: %q", v.name, v.raw.Str)
		}
		return n, nil
	}

	return 0, errors.Wrapf(errs.ErrArgument, "tag %s has no numeric value", v.name)
}

// Float returns the first value as a float.
func (v Value) Float() (float64, error) {
	if v.raw == nil {
		return 0, v.missing()
	}

	switch {
	case len(v.raw.Floats) > 0:
		return v.raw.Floats[0], nil
	case len(v.raw.Rats) > 0:
		return v.raw.Rats[0].Float(), nil
	case len(v.raw.Ints) > 0:
		return float64(v.raw.Ints[0]), nil
	case v.raw.Str != "":
		f, err := strconv.ParseFloat(strings.TrimSpace(v.raw.Str), 64)
		if err != nil {
			return 0, errors.Wrapf(errs.ErrArgument, "tag %s is not numeric: %q", v.name, v.raw.Str)
		}
		return f, nil
	}

	return 0, errors.Wrapf(errs.ErrArgument, "tag %s has no numeric value", v.name)
}

// String renders the value for display. It is empty for a missing tag.
func (v Value) String() string {
	if v.raw == nil {
		return ""
	}

	switch {
	case v.raw.Str != "":
		return v.raw.Str
	case len(v.raw.Ints) > 0:
		parts := make([]string, len(v.raw.Ints))
		for i, n := range v.raw.Ints {
			parts[i] = strconv.FormatInt(n, 10)
		}
		return strings.Join(parts, " ")
	case len(v.raw.Rats) > 0:
		parts := make([]string, len(v.raw.Rats))
		for i, r := range v.raw.Rats {
			parts[i] = r.String()
		}
		return strings.Join(parts, " ")
	case len(v.raw.Floats) > 0:
		parts := make([]string, len(v.raw.Floats))
		for i, f := range v.raw.Floats {
			parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
		}
		return strings.Join(parts, " ")
	}

	return strings.TrimRight(string(v.raw.Bytes), "\x00")
}

func (v Value) Ints() []int64 {
	if v.raw == nil {
		return nil
	}

	return v.raw.Ints
}

func (v Value) Rationals() []Rational {
	if v.raw == nil {
		return nil
	}

	return v.raw.Rats
}

func (v Value) Bytes() []byte {
	if v.raw == nil {
		return nil
	}

	return v.raw.Bytes
}

// Interface returns the value typed after the tag's kind: string, int,
// []int64, Rational, []Rational or []byte. A missing tag gives nil.
func (v Value) Interface() interface{} {
	if v.raw == nil {
		return nil
	}

	switch v.kind {
	case KindString:
		return v.String()
	case KindInt:
		if n, err := v.Int(); err == nil {
			return n
		}
	case KindInts:
		if len(v.raw.Ints) > 0 {
			return v.raw.Ints
		}
	case KindRational:
		if len(v.raw.Rats) > 0 {
			return v.raw.Rats[0]
		}
	case KindRationals:
		if len(v.raw.Rats) > 0 {
			return v.raw.Rats
		}
	}

	return v.raw.Bytes
}
