package typematch

import (
	"errors"
	"fmt"
	"math"
	"reflect"
)

// ErrArgument is returned when a Func handler cannot accept the arguments it
// was called with.
var ErrArgument = errors.New("invalid argument")

// Handler runs when its clause matches. It receives the call's arguments
// unchanged and in their original order.
type Handler interface {
	Call(args []any) (any, error)
}

// HandlerFunc is a function adapter for Handler:
//
//	typematch.On("String, Number", typematch.HandlerFunc(func(args ...any) (any, error) {
//	    return fmt.Sprint(args...), nil
//	}))
type HandlerFunc func(args ...any) (any, error)

// Call implements the Handler interface.
func (f HandlerFunc) Call(args []any) (any, error) {
	return f(args...)
}

// Value returns a Handler that ignores its arguments and returns v.
func Value(v any) Handler {
	return HandlerFunc(func(...any) (any, error) {
		return v, nil
	})
}

// Func adapts an arbitrary Go function into a Handler using reflection.
//
// Arguments are passed positionally. A nil argument becomes the zero value of
// a pointer, interface, map, slice, func, or chan parameter. Numeric arguments
// convert to any numeric parameter type that can hold them: float64 to int
// truncates toward zero, while a value out of the parameter's range (300 for
// a uint8, -1 for a uint, NaN for an int) is an *ArgumentError. Variadic
// functions are supported.
//
// The function may return nothing, one value, an error, or a value and an
// error. Func panics if fn is not a function or returns anything else.
//
// Example:
//
//	typematch.On("String, Number", typematch.Func(func(s string, n int) (int, error) {
//	    i, err := strconv.Atoi(s)
//	    return i + n, err
//	}))
func Func(fn any) Handler {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		panic(fmt.Sprintf("typematch: Func requires a non-nil function, got %T", fn))
	}

	t := v.Type()
	h := &funcHandler{fn: v, typ: t}
	switch {
	case t.NumOut() == 0:
	case t.NumOut() == 1:
		h.returnsErr = t.Out(0) == errorType
	case t.NumOut() == 2 && t.Out(1) == errorType:
		h.returnsErr = true
	default:
		panic(fmt.Sprintf("typematch: Func result must be (), (R), (error) or (R, error), got %v", t))
	}
	return h
}

var errorType = reflect.TypeFor[error]()

type funcHandler struct {
	fn         reflect.Value
	typ        reflect.Type
	returnsErr bool
}

func (h *funcHandler) Call(args []any) (any, error) {
	in, err := h.arguments(args)
	if err != nil {
		return nil, err
	}
	return h.results(h.fn.Call(in))
}

// arguments converts args to the function's parameter types.
func (h *funcHandler) arguments(args []any) ([]reflect.Value, error) {
	n := h.typ.NumIn()
	variadic := h.typ.IsVariadic()

	switch {
	case variadic && len(args) < n-1:
		return nil, fmt.Errorf("%w: want at least %d arguments, got %d", ErrArgument, n-1, len(args))
	case !variadic && len(args) != n:
		return nil, fmt.Errorf("%w: want %d arguments, got %d", ErrArgument, n, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var param reflect.Type
		if variadic && i >= n-1 {
			param = h.typ.In(n - 1).Elem()
		} else {
			param = h.typ.In(i)
		}

		v, err := convertArg(arg, param)
		if err != nil {
			return nil, &ArgumentError{Index: i, Type: TypeName(arg), Param: param}
		}
		in[i] = v
	}
	return in, nil
}

func (h *funcHandler) results(out []reflect.Value) (any, error) {
	var err error
	if h.returnsErr {
		last := out[len(out)-1]
		if !last.IsNil() {
			err = last.Interface().(error)
		}
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return nil, err
	}
	return out[0].Interface(), err
}

var errNotConvertible = errors.New("not convertible")

// convertArg converts arg to a value assignable to param.
func convertArg(arg any, param reflect.Type) (reflect.Value, error) {
	if arg == nil {
		switch param.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice,
			reflect.Func, reflect.Chan, reflect.UnsafePointer:
			return reflect.Zero(param), nil
		default:
			return reflect.Value{}, errNotConvertible
		}
	}

	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(param) {
		return v, nil
	}
	if isNumeric(v.Kind()) && isNumeric(param.Kind()) && fits(v, param) {
		return v.Convert(param), nil
	}
	return reflect.Value{}, errNotConvertible
}

// fits reports whether the numeric value v survives conversion to param
// without wrapping or overflowing. Dropping a float's fraction is allowed.
func fits(v reflect.Value, param reflect.Type) bool {
	zero := reflect.Zero(param)
	switch {
	case isInt(v.Kind()):
		x := v.Int()
		switch {
		case isInt(param.Kind()):
			return !zero.OverflowInt(x)
		case isUint(param.Kind()):
			return x >= 0 && !zero.OverflowUint(uint64(x))
		}
	case isUint(v.Kind()):
		x := v.Uint()
		switch {
		case isInt(param.Kind()):
			return x <= math.MaxInt64 && !zero.OverflowInt(int64(x))
		case isUint(param.Kind()):
			return !zero.OverflowUint(x)
		}
	default:
		f := v.Float()
		if isInt(param.Kind()) || isUint(param.Kind()) {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return false
			}
			f = math.Trunc(f)
		}
		switch {
		case isInt(param.Kind()):
			return f >= math.MinInt64 && f < math.MaxInt64 && !zero.OverflowInt(int64(f))
		case isUint(param.Kind()):
			return f >= 0 && f < math.MaxUint64 && !zero.OverflowUint(uint64(f))
		default:
			return !zero.OverflowFloat(f)
		}
	}
	return true
}

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

func isUint(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}

func isNumeric(k reflect.Kind) bool {
	return isInt(k) || isUint(k) || k == reflect.Float32 || k == reflect.Float64
}

// ArgumentError reports an argument that a Func handler could not accept.
type ArgumentError struct {
	// Index is the zero-based argument position.
	Index int

	// Type is the argument's type name.
	Type string

	// Param is the parameter type the argument could not convert to.
	Param reflect.Type
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%v: argument %d: cannot use %s as %v", ErrArgument, e.Index, e.Type, e.Param)
}

// Is reports whether target is ErrArgument.
func (e *ArgumentError) Is(target error) bool { return target == ErrArgument }

// Clause binds a Pattern to the Handler that runs when it matches.
// Build clauses with On, Otherwise, or When.
type Clause struct {
	pattern Pattern
	handler Handler
}

// On returns a clause that fires when the arguments' type names match the
// comma-separated pattern, position by position:
//
//	typematch.On("Number, Number", add)
//	typematch.On("String, *", describe)
//
// On panics if h is nil.
func On(pattern string, h Handler) Clause {
	return When(ParsePattern(pattern), h)
}

// Otherwise returns a catch-all clause that fires for any arguments.
// Register it last: clauses are tried in order.
func Otherwise(h Handler) Clause {
	return When(Anything(), h)
}

// When returns a clause for an already built Pattern.
func When(p Pattern, h Handler) Clause {
	if p == nil {
		panic("typematch: nil pattern")
	}
	if h == nil {
		panic("typematch: nil handler")
	}
	return Clause{pattern: p, handler: h}
}

// Pattern returns the clause's pattern.
func (c Clause) Pattern() Pattern { return c.pattern }

// Match reports whether the clause fires for sig.
func (c Clause) Match(sig Signature) bool { return c.pattern.Match(sig) }
