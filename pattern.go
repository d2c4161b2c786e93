package typematch

import "strings"

// Wildcard matches any single type name at its position. It is reserved: a
// type that names itself "*" cannot be told apart from the wildcard.
const Wildcard = "*"

// Pattern decides whether a clause applies to a call's signature.
type Pattern interface {
	Match(sig Signature) bool
	String() string
}

// ParsePattern splits s on commas and trims whitespace around each name.
//
// Empty names are kept: "String," parses to ["String", ""], and the empty
// name only matches another empty name or a wildcard. No Go value has an
// empty type name, so such a pattern never fires for ordinary arguments.
//
// An empty s parses to a single empty name, not a zero-arity pattern. Use
// Types() for a pattern that matches calls with no arguments.
func ParsePattern(s string) Pattern {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return types{names: parts}
}

// Types returns a Pattern that matches the given names positionally.
func Types(names ...string) Pattern {
	return types{names: append([]string(nil), names...)}
}

// Anything returns a Pattern that matches any signature of any arity.
func Anything() Pattern {
	return anything{}
}

type types struct {
	names []string
}

func (p types) Match(sig Signature) bool {
	return MatchTypes(p.names, sig)
}

func (p types) String() string {
	return strings.Join(p.names, ", ")
}

type anything struct{}

func (anything) Match(Signature) bool { return true }
func (anything) String() string       { return "..." }

// MatchTypes reports whether actual satisfies expected. The lists must have
// the same length, and each position must be equal or hold a Wildcard on
// either side.
func MatchTypes(expected, actual []string) bool {
	if len(expected) != len(actual) {
		return false
	}
	for i, want := range expected {
		if !sameType(want, actual[i]) {
			return false
		}
	}
	return true
}

func sameType(x, y string) bool {
	return x == Wildcard || y == Wildcard || x == y
}
