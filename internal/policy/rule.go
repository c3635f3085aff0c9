// internal/policy/rule.go

// Package policy compiles a user-declared permission rule set into the flat
// category-to-disposition mapping the external agent process enforces. This
// system never evaluates permissions at execution time; it only produces the
// declarative artifact.
package policy

import "strings"

// Disposition is the outcome a rule assigns to an action category.
type Disposition string

const (
	Allow Disposition = "allow"
	Ask   Disposition = "ask"
	Deny  Disposition = "deny"
)

// ParseDisposition resolves a disposition string, falling back to Ask for
// unrecognized values so a typo in settings never silently allows an action.
func ParseDisposition(raw string) Disposition {
	switch Disposition(strings.ToLower(raw)) {
	case Allow, Ask, Deny:
		return Disposition(strings.ToLower(raw))
	default:
		return Ask
	}
}

// Rule maps an action category (file edit, shell execution, network fetch,
// ...) to a disposition, optionally scoped to a path or command pattern.
// Rules are declarative and order-independent: precedence comes from scope
// specificity, never from list position.
type Rule struct {
	Category    string      `json:"category"`
	Pattern     string      `json:"pattern,omitempty"`
	Disposition Disposition `json:"disposition"`
}

// Specificity scores how narrowly the rule is scoped. An unscoped rule scores
// zero; scoped rules score by pattern length with wildcards discounted, so
// "src/*.go" beats "*" and any scoped rule beats an unscoped one.
func (r Rule) Specificity() int {
	if r.Pattern == "" {
		return 0
	}
	score := 1 + len(r.Pattern) - 2*strings.Count(r.Pattern, "*")
	if score < 1 {
		score = 1
	}
	return score
}
