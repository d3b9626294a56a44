package streampress

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseParams_Basic(t *testing.T) {
	ps, err := ParseParams("level=3")
	require.NoError(t, err)
	require.Equal(t, "3", ps.GetString("level", ""))
}

func TestParseParams_Compound(t *testing.T) {
	ps, err := ParseParams("level=1;block_mode=linked")
	require.NoError(t, err)
	require.Equal(t, "1", ps.GetString("level", ""))
	require.Equal(t, "linked", ps.GetString("block_mode", ""))
}

func TestParseParams_EmptyString(t *testing.T) {
	ps, err := ParseParams("")
	require.NoError(t, err)
	require.Equal(t, "fallback", ps.GetString("anything", "fallback"))
}

func TestParseParams_SkipsMalformedTokens(t *testing.T) {
	// Stray separators and key-only tokens are dropped, not errors.
	ps, err := ParseParams("level=3;;;junk;  ;x=1")
	require.NoError(t, err)
	require.Equal(t, "3", ps.GetString("level", ""))
	require.Equal(t, "1", ps.GetString("x", ""))
	require.Equal(t, "absent", ps.GetString("junk", "absent"))
}

func TestParseParams_TrimsWhitespace(t *testing.T) {
	ps, err := ParseParams("  level = 3 ; mode = fast ")
	require.NoError(t, err)
	require.Equal(t, "3", ps.GetString("level", ""))
	require.Equal(t, "fast", ps.GetString("mode", ""))
}

func TestParseParams_SplitsAtFirstEquals(t *testing.T) {
	ps, err := ParseParams("expr=a=b")
	require.NoError(t, err)
	require.Equal(t, "a=b", ps.GetString("expr", ""))
}

func TestParseParams_LastTokenWins(t *testing.T) {
	ps, err := ParseParams("k=1;k=2")
	require.NoError(t, err)
	require.Equal(t, "2", ps.GetString("k", ""))
}

func TestParseParams_EscapedValue(t *testing.T) {
	ps, err := ParseParams("key=%%:%3B%3B%3B")
	require.NoError(t, err)
	require.Equal(t, ";;;", ps.GetString("key", ""))
}

func TestParseParams_EscapedPrefixItself(t *testing.T) {
	// A literal "%%:123" value is expressed by encoding the prefix.
	ps, err := ParseParams("key=%%:%25%25%3A123")
	require.NoError(t, err)
	require.Equal(t, "%%:123", ps.GetString("key", ""))
}

// percentEncode encodes every byte as %XX so any value, including ones
// containing the grammar's delimiters, survives a parameter string.
func percentEncode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		fmt.Fprintf(&b, "%%%02X", s[i])
	}
	return b.String()
}

func TestParseParams_EscapingLaw(t *testing.T) {
	values := []string{
		";;;",
		"a=b;c=d",
		"%%:",
		"plain",
		"spaces and\ttabs",
		"unicode: héllo, 世界",
	}
	for _, want := range values {
		ps, err := ParseParams("key=%%:" + percentEncode(want))
		require.NoError(t, err, "value %q", want)
		require.Equal(t, want, ps.GetString("key", ""), "value %q", want)
	}
}

func TestParseParams_MalformedEscapeFails(t *testing.T) {
	_, err := ParseParams("key=%%:%zz")
	require.Error(t, err)
	require.Contains(t, err.Error(), "key")
}

func TestParams_GetBool(t *testing.T) {
	// Only "true" and "false" (case-insensitive) are recognized. The
	// upstream parser this grammar comes from treated "false" as truthy;
	// that was a bug and is deliberately not preserved.
	tests := []struct {
		params string
		def    bool
		want   bool
	}{
		{"flag=true", false, true},
		{"flag=TRUE", false, true},
		{"flag=false", true, false},
		{"flag=FALSE", true, false},
		{"flag=yes", false, false},
		{"flag=yes", true, true},
		{"flag=", true, true},
		{"", false, false},
		{"", true, true},
	}
	for _, tc := range tests {
		ps, err := ParseParams(tc.params)
		require.NoError(t, err)
		require.Equal(t, tc.want, ps.GetBool("flag", tc.def),
			"params %q default %v", tc.params, tc.def)
	}
}

func TestGetParsed(t *testing.T) {
	ps, err := ParseParams("level=7;ratio=2.5;count=12;bad=seven")
	require.NoError(t, err)

	require.Equal(t, 7, GetParsed(ps, "level", 3))
	require.Equal(t, 2.5, GetParsed(ps, "ratio", 1.0))
	require.Equal(t, uint(12), GetParsed(ps, "count", uint(0)))

	// Unparseable and absent values resolve to the default, never an error.
	require.Equal(t, 3, GetParsed(ps, "bad", 3))
	require.Equal(t, 6, GetParsed(ps, "missing", 6))
}

func TestGetParsed_EmptyValue(t *testing.T) {
	ps, err := ParseParams("level=")
	require.NoError(t, err)
	require.Equal(t, 5, GetParsed(ps, "level", 5))
}

func TestParamSet_ZeroValue(t *testing.T) {
	var ps ParamSet
	require.Equal(t, "d", ps.GetString("k", "d"))
	require.True(t, ps.GetBool("k", true))
	require.Equal(t, 9, GetParsed(ps, "k", 9))
}
