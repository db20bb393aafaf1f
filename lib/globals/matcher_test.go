package globals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcherExactMatchOnly(t *testing.T) {
	m := NewMatcher([]string{"p5", "jquery"})

	assert.True(t, m.Match("p5"))
	assert.True(t, m.Match("jquery"))

	for _, specifier := range []string{"p5x", "xp5", "really/p5", "p5/sub", "jquery-ui", "", "p5|jquery"} {
		assert.False(t, m.Match(specifier), "specifier %q", specifier)
	}
}

func TestMatcherTreatsSpecifiersLiterally(t *testing.T) {
	m := NewMatcher([]string{"@scope/pkg.js", "a+b", "(x)", "lib[0]", `c:\d`})

	assert.True(t, m.Match("@scope/pkg.js"))
	assert.True(t, m.Match("a+b"))
	assert.True(t, m.Match("(x)"))
	assert.True(t, m.Match("lib[0]"))
	assert.True(t, m.Match(`c:\d`))

	assert.False(t, m.Match("@scope/pkgxjs"))
	assert.False(t, m.Match("aab"))
	assert.False(t, m.Match("x"))
	assert.False(t, m.Match("lib0"))
	assert.False(t, m.Match("c:1"))
}

func TestMatcherWithoutSpecifiersMatchesNothing(t *testing.T) {
	m := NewMatcher(nil)

	assert.False(t, m.Match(""))
	assert.False(t, m.Match("react"))
	assert.False(t, m.Match(".*"))
}

func TestMatcherFilterIsDeterministic(t *testing.T) {
	a := NewMatcher([]string{"react", "react-dom", "@emotion/react"})
	b := NewMatcher([]string{"@emotion/react", "react-dom", "react"})

	assert.Equal(t, a.Filter(), b.Filter())
	assert.Equal(t, `^(?:@emotion/react|react|react-dom)$`, a.Filter())
}

func TestCompileMatcher(t *testing.T) {
	m, err := CompileMatcher(`^lodash(/.*)?$`)
	require.NoError(t, err)
	assert.True(t, m.Match("lodash"))
	assert.True(t, m.Match("lodash/fp"))
	assert.False(t, m.Match("lodash-es"))

	_, err = CompileMatcher(`^(unclosed$`)
	assert.ErrorIs(t, err, ErrInvalidFilter)
}
