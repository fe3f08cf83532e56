// Package dialogue implements the progressive profile-construction state
// machine: a forward-only conversational flow that validates answers,
// assembles the profile draft, and synthesizes the working-style
// interpretation.
package dialogue

// Stage is a named point in the fixed conversational sequence.
type Stage string

// Stages in flow order. Transitions move strictly forward through this
// order; the only exception is the interpretation tweak self-loop.
const (
	StageWelcome                Stage = "welcome"
	StageCVUpload               Stage = "cv-upload"
	StageBasicsName             Stage = "basics-name"
	StageBasicsLocation         Stage = "basics-location"
	StageBasicsEmail            Stage = "basics-email"
	StageBasicsPhone            Stage = "basics-phone"
	StageBasicsReview           Stage = "basics-review"
	StageIntentAvailability     Stage = "intent-availability"
	StageIntentWorkTypes        Stage = "intent-work-types"
	StageIntentWorkStyle        Stage = "intent-work-style"
	StageDecisionAnchor         Stage = "decision-anchor"
	StageDecisionConstraints    Stage = "decision-constraints"
	StageDecisionPrioritization Stage = "decision-prioritization"
	StageDecisionJudgment       Stage = "decision-judgment"
	StageDecisionReflection     Stage = "decision-reflection"
	StageDecisionInsight        Stage = "decision-insight"
	StageDecisionInterpretation Stage = "decision-interpretation"
	StageEvidence               Stage = "evidence"
	StageComplete               Stage = "complete"
)

// stageOrder fixes the flow order used for monotonicity checks.
var stageOrder = []Stage{
	StageWelcome,
	StageCVUpload,
	StageBasicsName,
	StageBasicsLocation,
	StageBasicsEmail,
	StageBasicsPhone,
	StageBasicsReview,
	StageIntentAvailability,
	StageIntentWorkTypes,
	StageIntentWorkStyle,
	StageDecisionAnchor,
	StageDecisionConstraints,
	StageDecisionPrioritization,
	StageDecisionJudgment,
	StageDecisionReflection,
	StageDecisionInsight,
	StageDecisionInterpretation,
	StageEvidence,
	StageComplete,
}

var stageIndex = func() map[Stage]int {
	m := make(map[Stage]int, len(stageOrder))
	for i, s := range stageOrder {
		m[s] = i
	}
	return m
}()

// Index returns the position of the stage in flow order, or -1 for an
// unknown stage.
func (s Stage) Index() int {
	if i, ok := stageIndex[s]; ok {
		return i
	}
	return -1
}

// Valid reports whether the stage is part of the declared flow.
func (s Stage) Valid() bool {
	_, ok := stageIndex[s]
	return ok
}

// Terminal reports whether the dialogue is finished at this stage.
func (s Stage) Terminal() bool {
	return s == StageComplete
}

// Action names the user gesture that triggers a transition. Every stage
// change is attributable to exactly one action; nothing advances silently.
type Action string

// Actions accepted by the transition table
const (
	ActionBegin    Action = "begin"     // leave the welcome screen
	ActionAnswer   Action = "answer"    // accepted free-text answer
	ActionChoice   Action = "choice"    // accepted enumerated selection
	ActionCVParsed Action = "cv-parsed" // CV parse collaborator succeeded
	ActionSkip     Action = "skip"      // bypass an optional stage
	ActionConfirm  Action = "confirm"   // explicit human approval
	ActionTweak    Action = "tweak"     // revise the interpretation in place
	ActionAttach   Action = "attach"    // add an evidence artifact
	ActionFinish   Action = "finish"    // close out the evidence stage
)

// transitions is the total transition table. Absent entries mean the action
// is not defined for the stage. The two self-loops (interpretation tweak,
// evidence attach) are the only entries that do not move forward.
var transitions = map[Stage]map[Action]Stage{
	StageWelcome: {
		ActionBegin: StageCVUpload,
	},
	StageCVUpload: {
		ActionCVParsed: StageBasicsReview,
		ActionSkip:     StageBasicsName,
	},
	StageBasicsName: {
		ActionAnswer: StageBasicsLocation,
	},
	StageBasicsLocation: {
		ActionAnswer: StageBasicsEmail,
	},
	StageBasicsEmail: {
		ActionAnswer: StageBasicsPhone,
	},
	StageBasicsPhone: {
		ActionAnswer: StageBasicsReview,
	},
	StageBasicsReview: {
		ActionConfirm: StageIntentAvailability,
	},
	StageIntentAvailability: {
		ActionChoice: StageIntentWorkTypes,
	},
	StageIntentWorkTypes: {
		ActionChoice: StageIntentWorkStyle,
	},
	StageIntentWorkStyle: {
		ActionChoice: StageDecisionAnchor,
	},
	StageDecisionAnchor: {
		ActionAnswer: StageDecisionConstraints,
	},
	StageDecisionConstraints: {
		ActionAnswer: StageDecisionPrioritization,
		ActionSkip:   StageDecisionPrioritization,
	},
	StageDecisionPrioritization: {
		ActionAnswer: StageDecisionJudgment,
	},
	StageDecisionJudgment: {
		ActionAnswer: StageDecisionReflection,
	},
	StageDecisionReflection: {
		ActionAnswer: StageDecisionInsight,
	},
	StageDecisionInsight: {
		ActionAnswer: StageDecisionInterpretation,
	},
	StageDecisionInterpretation: {
		ActionConfirm: StageEvidence,
		ActionTweak:   StageDecisionInterpretation,
	},
	StageEvidence: {
		ActionAttach: StageEvidence,
		ActionSkip:   StageComplete,
		ActionFinish: StageComplete,
	},
}

// Transition returns the successor for (stage, action), or false when the
// action is not defined at that stage.
func Transition(stage Stage, action Action) (Stage, bool) {
	next, ok := transitions[stage][action]
	return next, ok
}
