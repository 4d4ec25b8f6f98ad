// Package ops exposes the library functions as named operations that take
// loosely typed arguments.
//
// Arguments arrive from YAML scenarios, JSON on the command line or the
// history store, so numbers may be int, int64 or float64. Each operation
// declares its parameters; Invoke checks presence and kind before calling
// the underlying function. String arguments are passed on in NFC, the form
// in which the history store and golden traces record them, so a recorded
// call replays to the same result.
//
// Registered operations:
//
//	math.add            a, b: number
//	math.subtract       a, b: number
//	math.multiply       a, b: number
//	math.divide         a, b: number
//	math.percentage     value, total: number
//	text.capitalize     s: string
//	text.truncate       s: string, max_length: integer
//	text.slugify        s: string
//	text.reverse        s: string
//	calculator.evaluate operation, num1, num2: string
package ops

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"golang.org/x/text/unicode/norm"
)

// Kind is the expected type of a parameter.
type Kind string

const (
	KindNumber  Kind = "number"
	KindInteger Kind = "integer"
	KindString  Kind = "string"
)

// Param describes one named argument.
type Param struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Operation is a named, invokable library function.
type Operation struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Params      []Param `json:"params"`

	fn func(Args) (any, error)
}

var registry = map[string]*Operation{}

func register(op *Operation) {
	if _, exists := registry[op.Name]; exists {
		panic(fmt.Sprintf("ops: duplicate operation %q", op.Name))
	}
	registry[op.Name] = op
}

// Lookup returns the operation with the given name.
func Lookup(name string) (*Operation, bool) {
	op, ok := registry[name]
	return op, ok
}

// Names returns all operation names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every operation, sorted by name.
func All() []*Operation {
	names := Names()
	out := make([]*Operation, len(names))
	for i, name := range names {
		out[i] = registry[name]
	}
	return out
}

// Invoke runs the named operation.
// Returns an *Error with ErrCodeUnknownOperation if name is not registered.
func Invoke(name string, args map[string]any) (any, error) {
	op, ok := Lookup(name)
	if !ok {
		return nil, &Error{
			Code:      ErrCodeUnknownOperation,
			Operation: name,
			Message:   fmt.Sprintf("unknown operation %q", name),
		}
	}
	return op.Invoke(args)
}

// Invoke validates args against the declared parameters and runs the
// operation. Errors from the underlying function are returned unchanged.
func (o *Operation) Invoke(args map[string]any) (any, error) {
	if err := o.validate(args); err != nil {
		return nil, err
	}
	return o.fn(normalizeArgs(args))
}

// normalizeArgs copies args with every string value in NFC.
func normalizeArgs(args map[string]any) Args {
	out := make(Args, len(args))
	for name, v := range args {
		if s, ok := v.(string); ok {
			v = norm.NFC.String(s)
		}
		out[name] = v
	}
	return out
}

func (o *Operation) validate(args map[string]any) error {
	for _, p := range o.Params {
		v, ok := args[p.Name]
		if !ok {
			return o.argError(p.Name, "missing required argument")
		}
		if !p.Kind.accepts(v) {
			return o.argError(p.Name, fmt.Sprintf("expected %s, got %T", p.Kind, v))
		}
	}

	for name := range args {
		if !slices.ContainsFunc(o.Params, func(p Param) bool { return p.Name == name }) {
			return o.argError(name, "unknown argument")
		}
	}
	return nil
}

func (o *Operation) argError(param, msg string) *Error {
	return &Error{
		Code:      ErrCodeInvalidArgs,
		Operation: o.Name,
		Param:     param,
		Message:   msg,
	}
}

func (k Kind) accepts(v any) bool {
	switch k {
	case KindNumber:
		_, ok := toFloat(v)
		return ok
	case KindInteger:
		_, ok := toInt(v)
		return ok
	case KindString:
		_, ok := v.(string)
		return ok
	}
	return false
}

// Args wraps validated arguments. Getters assume validation has passed.
type Args map[string]any

// Number returns a number argument.
func (a Args) Number(name string) float64 {
	f, _ := toFloat(a[name])
	return f
}

// Int returns an integer argument.
func (a Args) Int(name string) int {
	n, _ := toInt(a[name])
	return n
}

// String returns a string argument.
func (a Args) String(name string) string {
	s, _ := a[name].(string)
	return s
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// toInt accepts whole numbers that fit in an int.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		if n >= math.MinInt && n <= math.MaxInt {
			return int(n), true
		}
	case uint64:
		if n <= math.MaxInt {
			return int(n), true
		}
	case float64:
		// JSON decodes every number as float64. 2^63 itself is out of range.
		if n >= math.MinInt && n < -math.MinInt && n == math.Trunc(n) {
			return int(n), true
		}
	}
	return 0, false
}
