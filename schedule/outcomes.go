/*
outcomes.go - Canonical outcome registry and normalization

PURPOSE:
  The outcome vocabulary is a fixed, closed set of canonical IDs. Display
  metadata (name, color) is customizable per deployment, but IDs are not:
  every outcome reference in a schedule, whatever its age or origin, must
  normalize to one of the nine canonical IDs before the engine sees it.

NORMALIZATION RULES:
  - Canonical IDs ("1".."9") pass through unchanged (idempotent)
  - Known legacy textual names ("allow", "deny", ...) map to their ID
  - Anything else falls back to Allow; the caller receives a warning and
    SHOULD log it, since unrecognized values indicate stale data

SEE ALSO:
  - types.go: OutcomeID / OutcomeDefinition
  - convert.go: converters copy outcome references through unchanged;
    normalization is a separate, explicit step
*/
package schedule

import (
	"fmt"
	"strings"
)

// =============================================================================
// CANONICAL OUTCOME IDS
// =============================================================================

const (
	OutcomeAllow            OutcomeID = "1"
	OutcomeAllowWithMessage OutcomeID = "2"
	OutcomeDefer            OutcomeID = "3"
	OutcomeEscalate         OutcomeID = "4"
	OutcomeReview           OutcomeID = "5"
	OutcomeDenyWithMessage  OutcomeID = "6"
	OutcomeDeny             OutcomeID = "7"

	// Two reserved generic slots for deployment-specific outcomes.
	OutcomeReserved8 OutcomeID = "8"
	OutcomeReserved9 OutcomeID = "9"
)

// canonicalOutcomes holds the fixed default set in canonical order.
var canonicalOutcomes = []OutcomeDefinition{
	{ID: OutcomeAllow, Name: "Allow", Color: "#2e7d32"},
	{ID: OutcomeAllowWithMessage, Name: "Allow with message", Color: "#558b2f"},
	{ID: OutcomeDefer, Name: "Defer", Color: "#f9a825"},
	{ID: OutcomeEscalate, Name: "Escalate", Color: "#ef6c00"},
	{ID: OutcomeReview, Name: "Review", Color: "#6a1b9a"},
	{ID: OutcomeDenyWithMessage, Name: "Deny with message", Color: "#c62828"},
	{ID: OutcomeDeny, Name: "Deny", Color: "#b71c1c"},
	{ID: OutcomeReserved8, Name: "Outcome 8", Color: "#546e7a"},
	{ID: OutcomeReserved9, Name: "Outcome 9", Color: "#78909c"},
}

// legacyOutcomeNames maps the textual outcome names of older schedule
// generations to canonical IDs.
var legacyOutcomeNames = map[string]OutcomeID{
	"allow":              OutcomeAllow,
	"allow-with-message": OutcomeAllowWithMessage,
	"defer":              OutcomeDefer,
	"escalate":           OutcomeEscalate,
	"review":             OutcomeReview,
	"deny-with-message":  OutcomeDenyWithMessage,
	"deny":               OutcomeDeny,
}

const fallbackColor = "#546e7a"

// DefaultOutcomes returns a fresh copy of the fixed default registry.
func DefaultOutcomes() []OutcomeDefinition {
	out := make([]OutcomeDefinition, len(canonicalOutcomes))
	copy(out, canonicalOutcomes)
	return out
}

// OutcomeLabel returns the display name from the registry, falling back to
// the canonical default name for the normalized ID.
func OutcomeLabel(registry []OutcomeDefinition, id OutcomeID) string {
	normalized := NormalizeOutcomeID(string(id))
	for _, def := range registry {
		if def.ID == normalized {
			return def.Name
		}
	}
	for _, def := range canonicalOutcomes {
		if def.ID == normalized {
			return def.Name
		}
	}
	return string(normalized)
}

// =============================================================================
// NORMALIZATION
// =============================================================================

// NormalizeOutcomeID maps any raw outcome reference to a canonical ID.
// Idempotent: canonical IDs map to themselves.
func NormalizeOutcomeID(raw string) OutcomeID {
	id, _ := normalizeOutcomeID(raw)
	return id
}

// normalizeOutcomeID also reports whether raw was recognized (canonical or
// known legacy name); unrecognized values fall back to Allow.
func normalizeOutcomeID(raw string) (OutcomeID, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	for _, def := range canonicalOutcomes {
		if string(def.ID) == trimmed {
			return def.ID, true
		}
	}
	if id, ok := legacyOutcomeNames[trimmed]; ok {
		return id, true
	}
	return OutcomeAllow, false
}

// NormalizeRegistry rebuilds an outcome registry against the canonical
// set: entries are deduplicated by normalized ID (first occurrence wins),
// user-edited name/color survive, blank names get the "Outcome {id}"
// fallback, and any canonical ID missing from the input is synthesized
// with its default metadata. The result always holds exactly the nine
// canonical IDs, in canonical order.
func NormalizeRegistry(registry []OutcomeDefinition) []OutcomeDefinition {
	seen := make(map[OutcomeID]OutcomeDefinition, len(canonicalOutcomes))
	for _, entry := range registry {
		id := NormalizeOutcomeID(string(entry.ID))
		if _, dup := seen[id]; dup {
			continue
		}
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			name = fmt.Sprintf("Outcome %s", id)
		}
		color := strings.TrimSpace(entry.Color)
		if color == "" {
			color = fallbackColor
		}
		seen[id] = OutcomeDefinition{ID: id, Name: name, Color: color}
	}

	out := make([]OutcomeDefinition, 0, len(canonicalOutcomes))
	for _, def := range canonicalOutcomes {
		if entry, ok := seen[def.ID]; ok {
			out = append(out, entry)
		} else {
			out = append(out, def)
		}
	}
	return out
}

// NormalizeSchedule re-maps every outcome reference in a V2 schedule
// through the canonical normalizer and rebuilds the registry. It returns
// a new schedule; the input is not modified. The second return value
// lists human-readable warnings for every unrecognized outcome reference
// encountered; the embedding layer should log them, as they indicate
// stale data.
func NormalizeSchedule(s Schedule) (Schedule, []string) {
	var warnings []string

	normalize := func(raw OutcomeID, where string) OutcomeID {
		id, known := normalizeOutcomeID(string(raw))
		if !known {
			warnings = append(warnings, fmt.Sprintf("%s: unknown outcome %q normalized to Allow", where, raw))
		}
		return id
	}

	out := Schedule{
		Timezone:     s.Timezone,
		ExitOutcomes: NormalizeRegistry(s.ExitOutcomes),
		Rules:        make([]Rule, len(s.Rules)),
	}

	for i, rule := range s.Rules {
		next := rule
		next.Slots = make([]Slot, len(rule.Slots))
		for j, slot := range rule.Slots {
			slot.Action = normalize(slot.Action, fmt.Sprintf("rule %q slot %d", rule.Name, j))
			next.Slots[j] = slot
		}
		next.DefaultClosed.Action = normalize(rule.DefaultClosed.Action, fmt.Sprintf("rule %q closed outcome", rule.Name))
		out.Rules[i] = next
	}

	return out, warnings
}
