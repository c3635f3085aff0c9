// internal/policy/compile.go
package policy

import (
	"encoding/json"
	"log/slog"
)

// Compile resolves the rule set to one disposition per action category. The
// most specific rule wins; two rules of equal specificity with different
// dispositions resolve to Ask — a configuration smell worth flagging in
// diagnostics, not a failure.
func Compile(rules []Rule) map[string]Disposition {
	type winner struct {
		disposition Disposition
		specificity int
		conflicted  bool
	}
	best := make(map[string]winner)

	for _, rule := range rules {
		spec := rule.Specificity()
		current, seen := best[rule.Category]
		switch {
		case !seen || spec > current.specificity:
			best[rule.Category] = winner{disposition: rule.Disposition, specificity: spec}
		case spec == current.specificity && rule.Disposition != current.disposition:
			best[rule.Category] = winner{disposition: Ask, specificity: spec, conflicted: true}
		}
	}

	compiled := make(map[string]Disposition, len(best))
	for category, w := range best {
		if w.conflicted {
			slog.Warn("conflicting permission rules of equal specificity",
				"category", category, "resolved", Ask)
		}
		compiled[category] = w.disposition
	}
	return compiled
}

// Encode marshals a compiled policy with deterministic key ordering, so an
// unchanged rule set always produces byte-identical output.
func Encode(compiled map[string]Disposition) ([]byte, error) {
	return json.MarshalIndent(compiled, "", "  ")
}
