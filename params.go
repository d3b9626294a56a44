package streampress

import (
	"fmt"
	"net/url"
	"strings"
)

// escapePrefix marks a parameter value as percent-encoded. Encoded values
// may contain the ';' and '=' delimiters, or the prefix itself.
const escapePrefix = "%%:"

// ParamSet holds codec configuration parsed from a parameter string.
// It is immutable once constructed; accessors resolve missing or
// unparseable values to a caller-supplied default rather than failing.
// The zero value is an empty set.
type ParamSet struct {
	m map[string]string
}

// ParseParams parses a "key1=value1;key2=value2" parameter string.
//
// Empty and whitespace-only tokens are skipped, as are tokens without '='.
// Each token is split at the first '='; key and value are trimmed of
// surrounding whitespace. A value starting with "%%:" has the remainder
// percent-decoded; a malformed escape sequence is the only parse error.
// The last token wins on duplicate keys.
func ParseParams(s string) (ParamSet, error) {
	m := make(map[string]string)
	for _, tok := range strings.Split(s, ";") {
		if strings.TrimSpace(tok) == "" {
			continue
		}
		eq := strings.Index(tok, "=")
		if eq < 0 {
			continue
		}
		key := strings.TrimSpace(tok[:eq])
		value := strings.TrimSpace(tok[eq+1:])
		if rest, ok := strings.CutPrefix(value, escapePrefix); ok {
			decoded, err := url.PathUnescape(rest)
			if err != nil {
				return ParamSet{}, fmt.Errorf("parameter %q: %w", key, err)
			}
			value = decoded
		}
		m[key] = value
	}
	return ParamSet{m: m}, nil
}

// GetString returns the value stored under key, or def if absent.
func (ps ParamSet) GetString(key, def string) string {
	if v, ok := ps.m[key]; ok {
		return v
	}
	return def
}

// GetBool returns the parameter as a bool. Only "true" and "false"
// (case-insensitive) are recognized; absent, empty or any other value
// resolves to def.
func (ps ParamSet) GetBool(key string, def bool) bool {
	switch strings.ToLower(ps.GetString(key, "")) {
	case "true":
		return true
	case "false":
		return false
	default:
		return def
	}
}

// GetParsed returns the parameter converted to T via fmt.Sscan. Absent,
// empty, or unconvertible values resolve to def. Works for the integer
// and floating point kinds uniformly.
//
// A top-level function because Go methods cannot be generic.
func GetParsed[T any](ps ParamSet, key string, def T) T {
	v := ps.GetString(key, "")
	if v == "" {
		return def
	}
	var out T
	if _, err := fmt.Sscan(v, &out); err != nil {
		return def
	}
	return out
}
