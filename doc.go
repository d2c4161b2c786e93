// Package typematch selects a handler by the runtime types of its arguments.
//
// A Dispatcher holds an ordered list of clauses. Each clause pairs a pattern,
// a comma-separated list of type names, with a Handler. Calling the
// dispatcher names the type of every argument, tries the clauses in order,
// and runs the first one whose pattern matches. Its result is returned
// directly to the caller.
//
// # Quick Start
//
//	f := typematch.Match(
//	    typematch.On("Number, Number", typematch.Func(func(x, y int) int { return x + y })),
//	    typematch.On("String, Number", typematch.Func(func(s string, y int) (int, error) {
//	        x, err := strconv.Atoi(s)
//	        return x + y, err
//	    })),
//	    typematch.On("Number", typematch.Func(func(x int) int { return x + 1 })),
//	)
//
//	f.Call("12", 4) // 16
//	f.Call(12, 6)   // 18
//	f.Call(4)       // 5
//
// # Type Names
//
// TypeName derives a name for any value:
//
//   - nil, and nil pointers, are "Null"
//   - values implementing Namer name themselves
//   - named Go types use their bare name: "Time", "MyCtor", "Celsius"
//   - strings are "String", booleans "Boolean", every integer and float
//     kind "Number"
//   - unnamed slices and arrays are "Array", unnamed maps and structs
//     "Object", functions "Function"
//
// Pointers are named after what they point to, so *MyCtor and MyCtor are
// both "MyCtor". Names are nominal: two types with the same shape and
// different names never match each other.
//
// Generic instantiations keep their type arguments with import paths
// dropped: Box[geo.Point] is "Box[Point]". Patterns split on commas, so an
// instantiation with several type arguments is best given a single name
// with WithTypeName.
//
// WithTypeName gives a type a name for one dispatcher without touching the
// type itself:
//
//	d := typematch.Match(
//	    typematch.On("User", showUser),
//	).With(typematch.WithTypeName[*pb.User]("User"))
//
// # Patterns
//
// Patterns are positional. "String, Number" only matches calls with exactly
// two arguments, a string then a number. The wildcard "*" matches any one
// type at its position; it does not make the position optional:
//
//	typematch.On("String, *", h) // matches ("a", 1) and ("a", nil), not ("a")
//
// Otherwise registers a catch-all clause that matches any arguments of any
// arity. Because clauses are tried in order, put it last.
//
// # Handlers
//
// A Handler receives the original arguments. Use HandlerFunc for a
// variadic function over []any, or Func to adapt a typed Go function by
// reflection:
//
//	typematch.On("Time", typematch.Func(func(t time.Time) string {
//	    return t.Format(time.DateOnly)
//	}))
//
// # Errors
//
// When no clause matches, Call returns a *MatchError naming the computed
// signature, e.g. "no pattern matched <Number>". It satisfies
// errors.Is(err, ErrNoMatch). Errors returned by a handler are passed
// through unchanged.
//
// # Raw Documents
//
// CallRaw decodes a document with the dispatcher's Inspector and dispatches
// on the decoded values. A top-level array spreads into positional
// arguments:
//
//	d.CallRaw([]byte(`["12", 4]`))
//
// JSONInspector is the default; YAMLInspector is available via
// WithInspector.
//
// # Hooks
//
// Hooks provide observability without coupling to a logging or metrics
// system:
//
//	d := typematch.Match(clauses...).With(
//	    typematch.WithOnFailure(func(sig typematch.Signature, clause int, err error, d time.Duration) {
//	        metrics.Incr("typematch.failure")
//	    }),
//	    typematch.WithLogger(slog.Default()),
//	)
//
// # Thread Safety
//
// A Dispatcher never changes after construction, and each call keeps its
// signature on its own stack. Dispatchers are safe for concurrent use.
package typematch
