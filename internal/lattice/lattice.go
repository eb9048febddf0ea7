// Package lattice parses, orders and derives plan version identifiers.
//
// A version is a major.minor.patch triple of non-negative integers. Plan
// files are named after their version, and the highest version under the
// lattice order is the "current" plan.
package lattice

import (
	"fmt"
	"regexp"
	"strings"
)

var versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)

// Version is an immutable major.minor.patch identifier. Components are
// kept as decimal digit strings, so any pattern-valid version parses
// regardless of size, and the parsed text is kept for String.
type Version struct {
	// parts hold the components without leading zeros.
	parts [3]string
	text  string
}

// FormatError reports text that is not a major.minor.patch version.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid version %q: expected x.y.z", e.Input)
}

// Parse parses text of the form "x.y.z". Leading zeros are accepted and
// ignored by comparisons; String returns text unchanged.
func Parse(text string) (Version, error) {
	m := versionPattern.FindStringSubmatch(text)
	if m == nil {
		return Version{}, &FormatError{Input: text}
	}
	v := Version{text: text}
	for i := range v.parts {
		v.parts[i] = trimZeros(m[i+1])
	}
	return v, nil
}

func newVersion(major, minor, patch string) Version {
	return Version{
		parts: [3]string{major, minor, patch},
		text:  major + "." + minor + "." + patch,
	}
}

func (v Version) String() string {
	if v.text == "" {
		return "0.0.0"
	}
	return v.text
}

// Compare returns -1, 0 or 1 when v is lower than, equal to or higher than o.
func (v Version) Compare(o Version) int {
	for i := range v.parts {
		if c := cmpDigits(v.part(i), o.part(i)); c != 0 {
			return c
		}
	}
	return 0
}

func (v Version) part(i int) string {
	if v.parts[i] == "" {
		return "0"
	}
	return v.parts[i]
}

// CompareDescending orders a before b when a is the higher version.
// It returns -1 when a sorts first, 1 when b sorts first and 0 when equal.
func CompareDescending(a, b Version) int {
	return b.Compare(a)
}

// Latest returns the highest version among candidates. ok is false when
// candidates is empty.
func Latest(candidates []Version) (latest Version, ok bool) {
	for i, c := range candidates {
		if i == 0 || c.Compare(latest) > 0 {
			latest = c
		}
	}
	return latest, len(candidates) > 0
}

// Kind selects which component of a version to bump.
type Kind string

const (
	KindMajor Kind = "major"
	KindMinor Kind = "minor"
	KindPatch Kind = "patch"
)

// ParseKind validates and normalizes a bump kind.
func ParseKind(value string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(value))); k {
	case KindMajor, KindMinor, KindPatch:
		return k, nil
	default:
		return "", fmt.Errorf("invalid version kind %q (valid: major, minor, patch)", value)
	}
}

// Bump derives the next version of the given kind. Unknown kinds bump patch.
func Bump(current Version, kind Kind) Version {
	major, minor, patch := current.part(0), current.part(1), current.part(2)
	switch kind {
	case KindMajor:
		return newVersion(increment(major), "0", "0")
	case KindMinor:
		return newVersion(major, increment(minor), "0")
	default:
		return newVersion(major, minor, increment(patch))
	}
}

func trimZeros(digits string) string {
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return "0"
	}
	return digits
}

// cmpDigits compares two decimal strings without leading zeros.
func cmpDigits(a, b string) int {
	if len(a) != len(b) {
		return cmpInt(len(a), len(b))
	}
	return strings.Compare(a, b)
}

// increment adds one to a decimal string without leading zeros.
func increment(digits string) string {
	b := []byte(digits)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < '9' {
			b[i]++
			return string(b)
		}
		b[i] = '0'
	}
	return "1" + string(b)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
