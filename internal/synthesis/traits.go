// Package synthesis derives work-style traits and the narrative
// interpretation from accepted decision-evidence answers.
package synthesis

import "github.com/talenthq/onboarding-engine/internal/types"

// TraitRule binds a narrative slot to the section and trait it produces.
type TraitRule struct {
	Section types.WorkStyleSection
	Trait   string
}

// traitRules is the static, total mapping from trait-producing narrative
// slots to derived traits. Every accepted answer for one of these slots
// appends exactly one trait; the constraints slot produces none.
var traitRules = map[types.NarrativeSlot]TraitRule{
	types.SlotContext: {
		Section: types.SectionProblemFraming,
		Trait:   "Frames problems in their real context",
	},
	types.SlotPrioritization: {
		Section: types.SectionTradeoffThinking,
		Trait:   "Makes tradeoffs explicit",
	},
	types.SlotJudgment: {
		Section: types.SectionAdaptability,
		Trait:   "Decides under uncertainty",
	},
	types.SlotReflection: {
		Section: types.SectionReflection,
		Trait:   "Reviews outcomes honestly",
	},
	types.SlotSelfInsight: {
		Section: types.SectionReflection,
		Trait:   "Understands their own working style",
	},
}

// TraitFor returns the trait rule for a narrative slot, or false for slots
// that do not produce a trait.
func TraitFor(slot types.NarrativeSlot) (TraitRule, bool) {
	rule, ok := traitRules[slot]
	return rule, ok
}

// ApplyNarrativeAnswer stores the answer in its slot and appends the derived
// trait when the slot is trait-producing. The input draft is not modified.
func ApplyNarrativeAnswer(draft types.ProfileDraft, slot types.NarrativeSlot, answer string) types.ProfileDraft {
	next := draft.WithNarrativeSlot(slot, answer)
	if rule, ok := TraitFor(slot); ok {
		next = next.WithTraitAdded(rule.Section, rule.Trait)
	}
	return next
}
