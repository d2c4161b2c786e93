package typematch

import (
	"errors"
	"fmt"
	"reflect"
	"time"
)

// ErrNoMatch is matched by the error returned when no clause fits a call.
var ErrNoMatch = errors.New("no pattern matched")

// Dispatcher calls the first clause whose pattern matches the type names of
// its arguments.
//
// A Dispatcher is immutable: its clauses are fixed by Match, and With returns
// a configured copy. It is safe for concurrent use. Handlers are responsible
// for their own thread safety.
type Dispatcher struct {
	clauses   []Clause
	names     map[reflect.Type]string
	inspector Inspector
	hooks     hooks
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// Match returns a Dispatcher over clauses. Clauses are tried in the order
// given; when several match, the first one wins.
//
// Example:
//
//	add := typematch.Match(
//	    typematch.On("Number, Number", typematch.Func(func(x, y int) int { return x + y })),
//	    typematch.On("String, Number", typematch.Func(parseAdd)),
//	    typematch.On("Number", typematch.Func(func(x int) int { return x + 1 })),
//	)
//
//	n, err := add.Call("12", 4) // 16
func Match(clauses ...Clause) *Dispatcher {
	return &Dispatcher{
		clauses:   append([]Clause(nil), clauses...),
		inspector: JSONInspector(),
	}
}

// With returns a copy of d with opts applied. d itself is unchanged.
//
// Example:
//
//	d := typematch.Match(clauses...).With(
//	    typematch.WithTypeName[*User]("User"),
//	    typematch.WithLogger(slog.Default()),
//	)
func (d *Dispatcher) With(opts ...Option) *Dispatcher {
	c := &Dispatcher{
		clauses:   d.clauses,
		inspector: d.inspector,
		hooks:     d.hooks.clone(),
	}
	if len(d.names) > 0 {
		c.names = make(map[reflect.Type]string, len(d.names))
		for t, n := range d.names {
			c.names[t] = n
		}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTypeName registers name as the type name of T for this dispatcher.
// Registering a non-pointer type also names pointers to it. A Namer
// implementation on the value still takes precedence.
func WithTypeName[T any](name string) Option {
	return func(d *Dispatcher) {
		if d.names == nil {
			d.names = make(map[reflect.Type]string)
		}
		d.names[reflect.TypeFor[T]()] = name
	}
}

// WithInspector sets the Inspector used by CallRaw. The default, also used
// when i is nil, is JSONInspector.
func WithInspector(i Inspector) Option {
	return func(d *Dispatcher) {
		d.inspector = i
	}
}

// Call computes the signature of args, runs the first matching clause's
// handler with args, and returns its result and error unchanged.
//
// If no clause matches, Call returns a *MatchError and no handler runs.
func (d *Dispatcher) Call(args ...any) (any, error) {
	sig := d.Signature(args...)

	i, c, found := d.match(sig)
	if !found {
		d.callOnNoMatch(sig)
		return nil, &MatchError{Signature: sig}
	}

	d.callOnDispatch(sig, i)

	start := time.Now()
	result, err := c.handler.Call(args)
	duration := time.Since(start)

	if err != nil {
		d.callOnFailure(sig, i, err, duration)
	} else {
		d.callOnSuccess(sig, i, duration)
	}

	return result, err
}

// Func returns Call as a plain function value.
func (d *Dispatcher) Func() func(args ...any) (any, error) {
	return d.Call
}

// CallRaw decodes raw with the dispatcher's Inspector and calls the result.
// A top-level array supplies one argument per element; any other document
// is a single argument.
//
// Example:
//
//	d.CallRaw([]byte(`["12", 4]`)) // same as d.Call("12", int64(4))
func (d *Dispatcher) CallRaw(raw []byte) (any, error) {
	insp := d.inspector
	if insp == nil {
		insp = JSONInspector()
	}

	args, err := insp.Inspect(raw)
	if err != nil {
		return nil, err
	}
	return d.Call(args...)
}

// Signature returns the type names of args as this dispatcher sees them,
// including names registered with WithTypeName.
func (d *Dispatcher) Signature(args ...any) Signature {
	return namer{names: d.names}.signature(args)
}

// Len returns the number of clauses.
func (d *Dispatcher) Len() int {
	return len(d.clauses)
}

// match finds the first clause whose pattern matches sig.
func (d *Dispatcher) match(sig Signature) (int, Clause, bool) {
	for i, c := range d.clauses {
		if c.pattern.Match(sig) {
			return i, c, true
		}
	}
	return -1, Clause{}, false
}

// callOnNoMatch calls OnNoMatch hooks.
func (d *Dispatcher) callOnNoMatch(sig Signature) {
	for _, fn := range d.hooks.onNoMatch {
		fn(sig)
	}
}

// callOnDispatch calls OnDispatch hooks.
func (d *Dispatcher) callOnDispatch(sig Signature, clause int) {
	for _, fn := range d.hooks.onDispatch {
		fn(sig, clause)
	}
}

// callOnSuccess calls OnSuccess hooks.
func (d *Dispatcher) callOnSuccess(sig Signature, clause int, duration time.Duration) {
	for _, fn := range d.hooks.onSuccess {
		fn(sig, clause, duration)
	}
}

// callOnFailure calls OnFailure hooks.
func (d *Dispatcher) callOnFailure(sig Signature, clause int, err error, duration time.Duration) {
	for _, fn := range d.hooks.onFailure {
		fn(sig, clause, err, duration)
	}
}

// MatchError is returned when no clause matches a call's signature.
//
// Its message lists the signature's type names between angle brackets,
// separated by ", ": "no pattern matched <String, Number>". The list inside
// the brackets is itself a pattern that matches the failed call.
type MatchError struct {
	Signature Signature
}

func (e *MatchError) Error() string {
	return fmt.Sprintf("%v <%s>", ErrNoMatch, e.Signature)
}

// Is reports whether target is ErrNoMatch.
func (e *MatchError) Is(target error) bool { return target == ErrNoMatch }
