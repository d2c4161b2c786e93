package typematch

import (
	"reflect"
	"strings"
)

// Type names produced for values without a named Go type.
const (
	Null     = "Null"
	String   = "String"
	Number   = "Number"
	Boolean  = "Boolean"
	Complex  = "Complex"
	Array    = "Array"
	Object   = "Object"
	Function = "Function"
	Chan     = "Chan"
	Pointer  = "Pointer"
)

// Namer is implemented by values that choose their own type name.
//
// A Namer takes precedence over registered names and the reflected Go type
// name. Returning an empty string falls through to the next strategy.
//
// Example:
//
//	type Celsius float64
//
//	func (Celsius) TypeName() string { return "Temperature" }
type Namer interface {
	TypeName() string
}

// Signature is the ordered list of type names derived from a call's
// arguments.
type Signature []string

// String renders the signature with ", " between names, which is also a
// valid pattern that matches the signature.
func (s Signature) String() string {
	return strings.Join(s, ", ")
}

// TypeName returns the type name of v.
//
// Resolution order:
//  1. nil, or a nil pointer or interface, is "Null"
//  2. a Namer's own TypeName
//  3. the bare name of a named Go type, pointers dereferenced
//     ("MyCtor", "Time", "Celsius")
//  4. predeclared and unnamed types by kind ("String", "Number",
//     "Boolean", "Array", "Object", "Function", ...)
//
// The result is never empty and never the wildcard.
func TypeName(v any) string {
	return namer{}.name(v)
}

// SignatureOf returns the signature of args using TypeName.
func SignatureOf(args ...any) Signature {
	return namer{}.signature(args)
}

// namer resolves type names, consulting registered names before falling back
// to reflection.
type namer struct {
	names map[reflect.Type]string
}

func (n namer) signature(args []any) Signature {
	sig := make(Signature, len(args))
	for i, arg := range args {
		sig[i] = n.name(arg)
	}
	return sig
}

func (n namer) name(v any) string {
	if v == nil {
		return Null
	}

	rv := reflect.ValueOf(v)
	if isNilRef(rv) {
		return Null
	}

	if nm, ok := v.(Namer); ok {
		if s := nm.TypeName(); s != "" {
			return s
		}
	}

	t := rv.Type()
	if s, ok := n.registered(t); ok {
		return s
	}

	for t.Kind() == reflect.Pointer && t.Name() == "" {
		t = t.Elem()
	}
	return typeName(t)
}

func (n namer) registered(t reflect.Type) (string, bool) {
	if len(n.names) == 0 {
		return "", false
	}
	if s, ok := n.names[t]; ok {
		return s, true
	}
	if t.Kind() == reflect.Pointer {
		s, ok := n.names[t.Elem()]
		return s, ok
	}
	return "", false
}

func isNilRef(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}

// typeName names a reflected type. Predeclared types (whose PkgPath is
// empty) are named by kind so that int and float64 both read as "Number".
func typeName(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return bareName(t.Name())
	}

	switch t.Kind() {
	case reflect.String:
		return String
	case reflect.Bool:
		return Boolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return Number
	case reflect.Complex64, reflect.Complex128:
		return Complex
	case reflect.Slice, reflect.Array:
		return Array
	case reflect.Map, reflect.Struct:
		return Object
	case reflect.Func:
		return Function
	case reflect.Chan:
		return Chan
	case reflect.Pointer, reflect.UnsafePointer:
		return Pointer
	default:
		return t.String()
	}
}

// bareName drops import paths from the type arguments of a generic type
// name, which reflect spells out in full:
// "box[github.com/acme/geo.Point]" becomes "box[Point]".
func bareName(name string) string {
	if !strings.Contains(name, "[") {
		return name
	}

	var b strings.Builder
	start := 0
	flush := func(end int) {
		b.WriteString(unqualify(name[start:end]))
	}
	for i := 0; i < len(name); i++ {
		if strings.IndexByte("[](),*; {}", name[i]) >= 0 {
			flush(i)
			b.WriteByte(name[i])
			start = i + 1
		}
	}
	flush(len(name))
	return b.String()
}

// unqualify strips "path/to/pkg." from a single type identifier.
func unqualify(ident string) string {
	rest, variadic := strings.CutPrefix(ident, "...")
	if i := strings.LastIndexByte(rest, '/'); i >= 0 {
		rest = rest[i+1:]
	}
	if i := strings.LastIndexByte(rest, '.'); i >= 0 {
		rest = rest[i+1:]
	}
	if variadic {
		return "..." + rest
	}
	return rest
}
