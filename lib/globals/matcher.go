package globals

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// matchNothing is a valid Go regexp that never matches, not even "".
const matchNothing = `[^\s\S]`

// Matcher decides whether an import path is one of the configured externals.
type Matcher struct {
	filter string
	re     *regexp.Regexp
}

// NewMatcher builds a matcher for exact, whole-string matches of specifiers.
// Every specifier is taken literally.
func NewMatcher(specifiers []string) *Matcher {
	if len(specifiers) == 0 {
		return &Matcher{filter: matchNothing, re: regexp.MustCompile(matchNothing)}
	}

	sorted := make([]string, len(specifiers))
	copy(sorted, specifiers)
	sort.Strings(sorted)

	var filter strings.Builder
	filter.WriteString("^(?:")
	for i, specifier := range sorted {
		if i > 0 {
			filter.WriteString("|")
		}
		filter.WriteString(regexp.QuoteMeta(specifier))
	}
	filter.WriteString(")$")

	return &Matcher{filter: filter.String(), re: regexp.MustCompile(filter.String())}
}

// CompileMatcher wraps a user supplied esbuild filter.
func CompileMatcher(filter string) (*Matcher, error) {
	re, err := regexp.Compile(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidFilter, filter, err)
	}
	return &Matcher{filter: filter, re: re}, nil
}

func (m *Matcher) Match(specifier string) bool {
	return m.re.MatchString(specifier)
}

// Filter returns the pattern in the syntax esbuild expects for OnResolveOptions.Filter.
func (m *Matcher) Filter() string {
	return m.filter
}
