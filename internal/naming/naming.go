// Package naming implements the three disjoint identifier naming classes
// (spec §3.5): camelCase inputs, snake_case computed variables, and
// UPPER_CASE constants.
package naming

import "regexp"

// Class is one of the three naming classes, or None if a name matches
// none of them.
type Class int

const (
	None Class = iota
	Input
	Computed
	Constant
)

func (c Class) String() string {
	switch c {
	case Input:
		return "input"
	case Computed:
		return "computed"
	case Constant:
		return "constant"
	default:
		return "none"
	}
}

var (
	inputPattern    = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)
	computedPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	constantPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)
)

// Classify determines the naming class of name. Computed additionally
// requires an underscore to disambiguate it from Input (spec §3.5): a
// name like "creditScore" is Input, "credit_score" is Computed.
func Classify(name string) Class {
	if name == "" {
		return None
	}
	if constantPattern.MatchString(name) {
		return Constant
	}
	if computedPattern.MatchString(name) && containsUnderscore(name) {
		return Computed
	}
	if inputPattern.MatchString(name) {
		return Input
	}
	return None
}

func containsUnderscore(s string) bool {
	for _, r := range s {
		if r == '_' {
			return true
		}
	}
	return false
}

// IsWritable reports whether actions may assign to name: Computed names
// and single-word all-lowercase names ("approval", "x") are writable;
// names with an uppercase letter (camelCase inputs, UPPER_CASE constants)
// are read-only.
func IsWritable(name string) bool {
	return Classify(name) == Computed || computedPattern.MatchString(name)
}
