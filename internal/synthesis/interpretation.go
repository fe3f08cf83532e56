package synthesis

import (
	"strings"

	"github.com/talenthq/onboarding-engine/internal/types"
)

// slotSentences maps each narrative slot to its interpretation fragment.
// The fragments are fixed; the synthesis contract is structural (one
// fragment per populated slot, stable order), not content-derived.
var slotSentences = map[types.NarrativeSlot]string{
	types.SlotContext:        "They ground decisions in the concrete situation in front of them.",
	types.SlotConstraints:    "They work within constraints rather than wishing them away.",
	types.SlotPrioritization: "They make prioritization tradeoffs explicit instead of implicit.",
	types.SlotJudgment:       "They exercise independent judgment when the path is unclear.",
	types.SlotReflection:     "They look back at outcomes and adjust how they work.",
	types.SlotSelfInsight:    "They show a clear-eyed view of their own working style.",
}

// tweakPrefix introduces candidate-supplied additions to the interpretation.
const tweakPrefix = "Additional context: "

// Interpret builds the interpretation paragraph from the answered narrative
// slots. Empty slots are omitted, never replaced with placeholders. Returns
// the empty string when no slot is answered.
func Interpret(trace types.DecisionTrace) string {
	var fragments []string
	for _, slot := range types.NarrativeSlotOrder {
		if trace.Slot(slot) == "" {
			continue
		}
		fragments = append(fragments, slotSentences[slot])
	}
	return strings.Join(fragments, " ")
}

// AppendTweak adds a candidate tweak as a trailing clause on an existing
// interpretation. Interpretation text is monotonically additive within a
// session; tweaks never trigger a recompute.
func AppendTweak(interpretation, tweak string) string {
	clause := tweakPrefix + strings.TrimSpace(tweak)
	if !strings.HasSuffix(clause, ".") {
		clause += "."
	}
	if interpretation == "" {
		return clause
	}
	return interpretation + " " + clause
}

// SentenceFor returns the fixed interpretation fragment for a slot.
// Exposed for tests and the review panel.
func SentenceFor(slot types.NarrativeSlot) string {
	return slotSentences[slot]
}
