package dialogue

import (
	"fmt"
	"strings"

	"github.com/talenthq/onboarding-engine/internal/types"
	"github.com/talenthq/onboarding-engine/internal/validation"
)

// openingPrompts are the assistant messages that introduce each stage.
var openingPrompts = map[Stage]string{
	StageWelcome:                "Hi! I'm going to help you build your profile. It's a short conversation — no forms. Ready when you are.",
	StageCVUpload:               "If you have a CV handy, upload it and I'll pull out the basics. Or we can just fill them in together — your call.",
	StageBasicsName:             "Let's start simple. What's your full name?",
	StageBasicsLocation:         "Where are you based?",
	StageBasicsEmail:            "What's the best email to reach you on?",
	StageBasicsPhone:            "And a phone number, in case a team wants to talk?",
	StageBasicsReview:           "Here's what I have so far — take a look at the panel on the right. Edit anything that's off, then confirm and we'll keep going.",
	StageIntentAvailability:     "How soon could you start something new?",
	StageIntentWorkTypes:        "What kinds of engagement are you open to? Pick as many as apply.",
	StageIntentWorkStyle:        "How do you prefer to work day to day?",
	StageDecisionAnchor:         "Now the interesting part. Think of a real decision you made at work that you still remember. What was the situation?",
	StageDecisionConstraints:    "What constraints were you working under — time, people, budget, anything? Feel free to skip this one.",
	StageDecisionPrioritization: "With everything competing for attention, how did you decide what mattered most?",
	StageDecisionJudgment:       "Was there a moment where you had to make a call without a clear answer? What did you do?",
	StageDecisionReflection:     "Looking back, how did it turn out? What would you do differently?",
	StageDecisionInsight:        "Last one: what does that whole episode tell you about how you work?",
	StageEvidence:               "If you have anything that shows this work — a doc, a repo, a link — you can attach it. Totally optional.",
	StageComplete:               "That's everything. Your profile is saved — teams will see the story, not just the bullet points. Thanks for taking the time.",
}

// OpeningPrompt returns the assistant message that introduces a stage.
func OpeningPrompt(stage Stage) string {
	return openingPrompts[stage]
}

// interpretationPrompt presents the synthesized paragraph for approval.
func interpretationPrompt(interpretation string) string {
	return fmt.Sprintf("Here's how I'd describe your working style, based on what you told me:\n\n%s\n\nDoes that feel right? You can confirm it, or add anything I missed.", interpretation)
}

// tweakAckPrompt acknowledges an accepted tweak and re-presents the result.
func tweakAckPrompt(interpretation string) string {
	return fmt.Sprintf("Got it — I've added that. Here's the updated version:\n\n%s\n\nConfirm when it feels right.", interpretation)
}

// cvParsedPrompt summarizes what the parse collaborator extracted.
func cvParsedPrompt(cv *types.ParsedCV) string {
	var parts []string
	if cv.BasicDetails.FullName != "" {
		parts = append(parts, fmt.Sprintf("your name (%s)", cv.BasicDetails.FullName))
	}
	if n := len(cv.Experience); n > 0 {
		parts = append(parts, fmt.Sprintf("%d experience entries", n))
	}
	if n := len(cv.Education); n > 0 {
		parts = append(parts, fmt.Sprintf("%d education entries", n))
	}
	summary := "the basics"
	if len(parts) > 0 {
		summary = strings.Join(parts, ", ")
	}
	return fmt.Sprintf("Nice — I pulled %s from your CV. Check the panel and fix anything I got wrong, then confirm.", summary)
}

// cvFailedPrompt reports a parse failure and offers the manual path. The
// reason is never surfaced; the candidate only needs the way forward.
const cvFailedPrompt = "Hmm, I couldn't read that file. No problem — we can fill in the basics together instead. Skip the upload and I'll ask you directly."

// saveFailedPrompt reports a persistence failure with a retry path.
const saveFailedPrompt = "I hit a snag saving your profile. Nothing is lost — give it another try in a moment."

// evidenceAckPrompt acknowledges an attached artifact.
func evidenceAckPrompt(name string) string {
	return fmt.Sprintf("Attached %q. Add more, or finish up whenever you're ready.", name)
}

// answerContexts maps free-text stages to their validation context.
var answerContexts = map[Stage]validation.Context{
	StageBasicsName:             validation.ContextName,
	StageBasicsLocation:         validation.ContextGeneral,
	StageBasicsEmail:            validation.ContextEmail,
	StageBasicsPhone:            validation.ContextPhone,
	StageDecisionAnchor:         validation.ContextGeneral,
	StageDecisionConstraints:    validation.ContextGeneral,
	StageDecisionPrioritization: validation.ContextGeneral,
	StageDecisionJudgment:       validation.ContextGeneral,
	StageDecisionReflection:     validation.ContextGeneral,
	StageDecisionInsight:        validation.ContextGeneral,
}

// narrativeSlots maps decision stages to the trace slot they fill.
var narrativeSlots = map[Stage]types.NarrativeSlot{
	StageDecisionAnchor:         types.SlotContext,
	StageDecisionConstraints:    types.SlotConstraints,
	StageDecisionPrioritization: types.SlotPrioritization,
	StageDecisionJudgment:       types.SlotJudgment,
	StageDecisionReflection:     types.SlotReflection,
	StageDecisionInsight:        types.SlotSelfInsight,
}
