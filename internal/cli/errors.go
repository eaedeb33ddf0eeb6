package cli

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

type notFoundError struct {
	kind       string
	id         string
	suggestion string
}

func (e notFoundError) Error() string {
	if e.suggestion != "" {
		return fmt.Sprintf("%s not found: %s (did you mean %q?)", e.kind, e.id, e.suggestion)
	}
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string, candidates []string) error {
	return notFoundError{kind: kind, id: id, suggestion: suggest(id, candidates)}
}

// suggest returns the closest candidate, or "" when nothing is close enough to
// be a plausible typo.
func suggest(input string, candidates []string) string {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" {
		return ""
	}
	best, bestDist := "", -1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(in, strings.ToLower(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	limit := len(in) / 3
	if limit < 2 {
		limit = 2
	}
	if bestDist < 0 || bestDist > limit {
		return ""
	}
	return best
}

type confirmError struct{ op string }

func (e confirmError) Error() string {
	return fmt.Sprintf("%s discards the stored board; pass --yes to confirm", e.op)
}

func errNeedsConfirm(op string) error { return confirmError{op: op} }
