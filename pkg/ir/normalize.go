package ir

import "strings"

// repairPrefix is prepended to a normalized name that would otherwise start
// with an underscore or a digit, which circuit languages in this family do
// not accept as a signal's first character.
const repairPrefix = "X"

// NormalizeName converts an upstream IR name into a circuit-legal
// identifier: sigils such as a leading "%" are stripped, "." is replaced
// with "_", and a result that would start with "_" or a digit is prefixed
// with repairPrefix. An empty input normalizes to just the repair prefix,
// since spec.md requires every signal name to be non-empty.
//
// Examples (spec.md §8): "%3.tmp" -> "X3_tmp".
func NormalizeName(name string) string {
	name = strings.TrimLeft(name, "%")
	name = strings.ReplaceAll(name, ".", "_")

	if name == "" {
		return repairPrefix
	}

	c := name[0]
	if c == '_' || (c >= '0' && c <= '9') {
		return repairPrefix + name
	}

	return name
}
