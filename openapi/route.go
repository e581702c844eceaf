package openapi

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// pathMatcher matches request paths against one templated path such as
// "/users/{userId}".
type pathMatcher struct {
	template string
	regex    *regexp.Regexp

	// specificity is used for sorting matchers (higher = more specific)
	specificity int
}

// newPathMatcher compiles a path template. Returns an error if the template
// is malformed (e.g., unclosed braces).
func newPathMatcher(template string) (*pathMatcher, error) {
	var regexBuf strings.Builder
	regexBuf.WriteString("^")

	specificity := 0
	i := 0
	for i < len(template) {
		if template[i] == '{' {
			end := strings.Index(template[i:], "}")
			if end == -1 {
				return nil, fmt.Errorf("unclosed path parameter at position %d in template %q", i, template)
			}
			if end == 1 {
				return nil, fmt.Errorf("empty path parameter at position %d in template %q", i, template)
			}

			// A parameter spans exactly one path segment.
			regexBuf.WriteString("[^/]+")
			i += end + 1
			specificity--
			continue
		}

		c := template[i]
		regexBuf.WriteString(regexp.QuoteMeta(string(c)))
		i++
		if c != '/' {
			specificity++
		}
	}
	regexBuf.WriteString("$")

	regex, err := regexp.Compile(regexBuf.String())
	if err != nil {
		return nil, fmt.Errorf("failed to compile path pattern for template %q: %w", template, err)
	}

	return &pathMatcher{
		template:    template,
		regex:       regex,
		specificity: specificity,
	}, nil
}

// pathMatcherSet finds the most specific template matching a path.
type pathMatcherSet struct {
	matchers []*pathMatcher
}

// newPathMatcherSet compiles every templated path. Literal paths are served
// by exact map lookup and skipped here, as are malformed templates, which
// can then only match literally.
func newPathMatcherSet(templates []string) *pathMatcherSet {
	matchers := make([]*pathMatcher, 0, len(templates))
	for _, template := range templates {
		if !strings.Contains(template, "{") {
			continue
		}
		m, err := newPathMatcher(template)
		if err != nil {
			continue
		}
		matchers = append(matchers, m)
	}

	// Sort by specificity (highest first), then by template length (longest first),
	// then alphabetically for stability
	sort.Slice(matchers, func(i, j int) bool {
		if matchers[i].specificity != matchers[j].specificity {
			return matchers[i].specificity > matchers[j].specificity
		}
		if len(matchers[i].template) != len(matchers[j].template) {
			return len(matchers[i].template) > len(matchers[j].template)
		}
		return matchers[i].template < matchers[j].template
	})

	return &pathMatcherSet{matchers: matchers}
}

// match returns the best matching template for path.
func (s *pathMatcherSet) match(path string) (string, bool) {
	for _, m := range s.matchers {
		if m.regex.MatchString(path) {
			return m.template, true
		}
	}
	return "", false
}
