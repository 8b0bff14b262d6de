package sanitize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentifier(t *testing.T) {
	require.Equal(t, "secretvalue99", Identifier("Secret-Value!99"))
	require.Equal(t, "under_score", Identifier("under_score"))
	require.Equal(t, "", Identifier(""))
	require.Equal(t, "", Identifier("!@#$%"))
}

func TestSlug(t *testing.T) {
	require.Equal(t, "-date", Slug("-date"))
	require.Equal(t, "date", Slug("date"))
	require.Equal(t, "-date", Slug(" -Date "))
	require.Equal(t, "", Slug(""))
}

func TestUnderscored(t *testing.T) {
	require.Equal(t, "the_jump_agency", Underscored("The Jump Agency"))
	require.Equal(t, "a_b", Underscored("a \t b"))
	// The strip pass runs after the whitespace pass, so stripped characters
	// adjacent to whitespace are removed, not re-collapsed.
	require.Equal(t, "__", Underscored(" - "))
	require.Equal(t, "", Underscored(""))
}

func TestURIText(t *testing.T) {
	require.Equal(t, "the jump agency", URIText("The%20Jump%20Agency"))
	require.Equal(t, "plain text", URIText("plain text!"))
	require.Equal(t, "", URIText(""))
}

func TestIntAbsent(t *testing.T) {
	_, ok := Int("")
	require.False(t, ok)

	_, ok = Int("0")
	require.False(t, ok, "zero means no value supplied")

	_, ok = Int("abc")
	require.False(t, ok)
}

func TestIntLeadingJunk(t *testing.T) {
	n, ok := Int("200abc")
	require.True(t, ok)
	require.Equal(t, 200, n)

	n, ok = Int("___42")
	require.True(t, ok)
	require.Equal(t, 42, n)
}

func TestIntTruncatesFraction(t *testing.T) {
	n, ok := Int("12.9")
	require.True(t, ok)
	require.Equal(t, 12, n)
}

func TestDateStringCanonicalIdentity(t *testing.T) {
	out, ok := DateString("2013-02-04T22:44:30.652Z")
	require.True(t, ok)
	require.Equal(t, "2013-02-04T22:44:30.652Z", out)
}

func TestDateStringFormats(t *testing.T) {
	out, ok := DateString("2013-02-04")
	require.True(t, ok)
	require.Equal(t, "2013-02-04T00:00:00.000Z", out)

	out, ok = DateString("2013-02-04T22:44")
	require.True(t, ok)
	require.Equal(t, "2013-02-04T22:44:00.000Z", out)

	out, ok = DateString("2013-02-04T22:44:30+02:00")
	require.True(t, ok)
	require.Equal(t, "2013-02-04T20:44:30.000Z", out)
}

func TestDateStringGarbage(t *testing.T) {
	for _, input := range []string{"garbage", "2013-13-04", "2013-02-30", "04/02/2013", "2013-02-04 22:44:30", ""} {
		_, ok := DateString(input)
		require.False(t, ok, "input %q", input)
	}
}

func TestDateStringIdempotent(t *testing.T) {
	first, ok := DateString("2017-11-16T18:40:52z")
	require.True(t, ok)

	second, ok := DateString(first)
	require.True(t, ok)
	require.Equal(t, first, second)
}
