package config

import (
	"regexp"
	"strings"
)

// Method selects how the background worker is detached from submit.
type Method string

const (
	// MethodSpawn starts the worker directly without waiting for it.
	MethodSpawn Method = "spawn"
	// MethodScreen starts the worker inside a detached screen session.
	MethodScreen Method = "screen"
)

// DefaultMethod is used when no method is configured or the configured one
// is not recognized.
const DefaultMethod = MethodSpawn

// Option keys recognized in the parampl_options string.
const (
	KeySolver        = "solver"
	KeyUnixBkgMethod = "unix_bkg_method"
)

// Options holds the values parsed from the parampl_options string.
type Options struct {
	Solver string
	Method Method
}

// ParseOptions extracts the recognized keys from an AMPL-style options string
// such as `solver=ipopt unix_bkg_method=screen`. Keys are matched
// case-insensitively anywhere in the string; the first match wins.
func ParseOptions(raw string) Options {
	return Options{
		Solver: StringOption(raw, KeySolver, ""),
		Method: ParseMethod(StringOption(raw, KeyUnixBkgMethod, string(DefaultMethod))),
	}
}

// StringOption returns the value following key in raw, or def when the key
// is absent. The separator is any run of whitespace and '=' characters.
func StringOption(raw, key, def string) string {
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(key) + `\s*=*\s*(\S+)`)
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return strings.TrimSpace(def)
	}
	return strings.TrimSpace(m[1])
}

// ParseMethod maps s to a Method. Unknown values fall back to DefaultMethod
// rather than failing.
func ParseMethod(s string) Method {
	switch Method(strings.ToLower(strings.TrimSpace(s))) {
	case MethodSpawn:
		return MethodSpawn
	case MethodScreen:
		return MethodScreen
	default:
		return DefaultMethod
	}
}
