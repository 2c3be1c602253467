// Package fieldcodec decodes the textual values that follow command-line
// flags: integers, floats, delimited lists, fixed-size triples and quadrature
// specifications. Every function is pure and fails deterministically on
// malformed input; nothing is silently coerced to zero.
package fieldcodec

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrNotNumeric indicates a token that is not a valid number.
	ErrNotNumeric = errors.New("not numeric")
	// ErrWrongArity indicates a delimited token with the wrong number of fields.
	ErrWrongArity = errors.New("wrong arity")
	// ErrUnknownChoice indicates a token outside a fixed set of names.
	ErrUnknownChoice = errors.New("unknown choice")
)

// ValueError describes a token that failed to decode.
type ValueError struct {
	Token  string
	Reason string
	Err    error
}

func (e *ValueError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%q: %v", e.Token, e.Err)
	}
	return fmt.Sprintf("%q: %v (%s)", e.Token, e.Err, e.Reason)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

// Quadrature is a decoded --quad value. Polar and Azimuthal are zero for the
// simple form.
type Quadrature struct {
	Directions int
	Polar      int
	Azimuthal  int
}

// Simple reports whether q was given as a bare direction count.
func (q Quadrature) Simple() bool {
	return q.Polar == 0 && q.Azimuthal == 0
}

// DecodeInt parses a base-10 integer.
func DecodeInt(token string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil {
		return 0, &ValueError{Token: token, Reason: "expected an integer", Err: ErrNotNumeric}
	}
	return v, nil
}

// DecodeFloat parses a finite floating-point number.
func DecodeFloat(token string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
	if err != nil {
		return 0, &ValueError{Token: token, Reason: "expected a number", Err: ErrNotNumeric}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ValueError{Token: token, Reason: "expected a finite number", Err: ErrNotNumeric}
	}
	return v, nil
}

// SplitList splits token on delim, keeping empty segments. It never fails;
// an empty token yields a single empty segment.
func SplitList(token string, delim rune) []string {
	return strings.Split(token, string(delim))
}

// DecodeIntTriple decodes exactly three delimited integers.
func DecodeIntTriple(token string, delim rune) ([3]int, error) {
	return decodeTriple(token, delim, DecodeInt)
}

// DecodeFloatTriple decodes exactly three delimited floats.
func DecodeFloatTriple(token string, delim rune) ([3]float64, error) {
	return decodeTriple(token, delim, DecodeFloat)
}

func decodeTriple[T int | float64](token string, delim rune, decode func(string) (T, error)) ([3]T, error) {
	var out [3]T
	parts := SplitList(token, delim)
	if len(parts) != 3 {
		return out, &ValueError{
			Token:  token,
			Reason: fmt.Sprintf("expected 3 %q-separated fields, got %d", delim, len(parts)),
			Err:    ErrWrongArity,
		}
	}
	for i, p := range parts {
		v, err := decode(p)
		if err != nil {
			return out, fmt.Errorf("field %d of %q: %w", i+1, token, err)
		}
		out[i] = v
	}
	return out, nil
}

// DecodeChoice matches token case-insensitively against choices and returns
// the index of the match.
func DecodeChoice(token string, choices []string) (int, error) {
	t := strings.TrimSpace(token)
	for i, c := range choices {
		if strings.EqualFold(t, c) {
			return i, nil
		}
	}
	return -1, &ValueError{
		Token:  token,
		Reason: "expected one of " + strings.Join(choices, ", "),
		Err:    ErrUnknownChoice,
	}
}

// DecodeQuadrature decodes "N" (simple quadrature with N directions) or "P:A"
// (P polar by A azimuthal points, P*A directions).
func DecodeQuadrature(token string) (Quadrature, error) {
	parts := SplitList(token, ':')
	switch len(parts) {
	case 1:
		n, err := DecodeInt(parts[0])
		if err != nil {
			return Quadrature{}, err
		}
		return Quadrature{Directions: n}, nil
	case 2:
		p, err := DecodeInt(parts[0])
		if err != nil {
			return Quadrature{}, fmt.Errorf("polar count: %w", err)
		}
		a, err := DecodeInt(parts[1])
		if err != nil {
			return Quadrature{}, fmt.Errorf("azimuthal count: %w", err)
		}
		dirs, ok := Product(p, a)
		if !ok {
			return Quadrature{}, &ValueError{
				Token:  token,
				Reason: "polar by azimuthal product overflows",
				Err:    ErrNotNumeric,
			}
		}
		return Quadrature{Directions: dirs, Polar: p, Azimuthal: a}, nil
	default:
		return Quadrature{}, &ValueError{
			Token:  token,
			Reason: fmt.Sprintf("expected <ndirs> or <polar>:<azim>, got %d fields", len(parts)),
			Err:    ErrWrongArity,
		}
	}
}

// Product multiplies factors and reports false if the result does not fit in
// an int.
func Product(factors ...int) (int, bool) {
	p := 1
	for _, f := range factors {
		if f == 0 {
			return 0, true
		}
		r := p * f
		if r/f != p || (p == -1 && f == math.MinInt) || (f == -1 && p == math.MinInt) {
			return 0, false
		}
		p = r
	}
	return p, true
}
