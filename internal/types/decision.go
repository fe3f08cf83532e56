package types

// NarrativeSlot identifies one of the decision-trace answer slots.
type NarrativeSlot string

// Narrative slots in their stable synthesis order
const (
	SlotContext        NarrativeSlot = "context"
	SlotConstraints    NarrativeSlot = "constraints"
	SlotPrioritization NarrativeSlot = "prioritization"
	SlotJudgment       NarrativeSlot = "judgment"
	SlotReflection     NarrativeSlot = "reflection"
	SlotSelfInsight    NarrativeSlot = "self_insight"
)

// NarrativeSlotOrder fixes the order slots appear in the synthesized
// interpretation. Synthesis iterates this slice, never the map form.
var NarrativeSlotOrder = []NarrativeSlot{
	SlotContext,
	SlotConstraints,
	SlotPrioritization,
	SlotJudgment,
	SlotReflection,
	SlotSelfInsight,
}

// DecisionTrace holds the candidate's decision-evidence narrative. Each slot
// is empty until answered; an empty slot is treated as null by synthesis.
type DecisionTrace struct {
	Context        string `json:"context,omitempty"`
	Constraints    string `json:"constraints,omitempty"`
	Prioritization string `json:"prioritization,omitempty"`
	Judgment       string `json:"judgment,omitempty"`
	Reflection     string `json:"reflection,omitempty"`
	SelfInsight    string `json:"self_insight,omitempty"`
	Interpretation string `json:"interpretation,omitempty"`
	Confirmed      bool   `json:"confirmed"`
}

// Slot returns the narrative text stored in the named slot.
func (d DecisionTrace) Slot(slot NarrativeSlot) string {
	switch slot {
	case SlotContext:
		return d.Context
	case SlotConstraints:
		return d.Constraints
	case SlotPrioritization:
		return d.Prioritization
	case SlotJudgment:
		return d.Judgment
	case SlotReflection:
		return d.Reflection
	case SlotSelfInsight:
		return d.SelfInsight
	}
	return ""
}

// WithSlot returns a copy of the trace with the named slot replaced.
func (d DecisionTrace) WithSlot(slot NarrativeSlot, text string) DecisionTrace {
	next := d
	switch slot {
	case SlotContext:
		next.Context = text
	case SlotConstraints:
		next.Constraints = text
	case SlotPrioritization:
		next.Prioritization = text
	case SlotJudgment:
		next.Judgment = text
	case SlotReflection:
		next.Reflection = text
	case SlotSelfInsight:
		next.SelfInsight = text
	}
	return next
}

// AnsweredSlots returns the slots that currently hold text, in stable order.
func (d DecisionTrace) AnsweredSlots() []NarrativeSlot {
	var out []NarrativeSlot
	for _, slot := range NarrativeSlotOrder {
		if d.Slot(slot) != "" {
			out = append(out, slot)
		}
	}
	return out
}
