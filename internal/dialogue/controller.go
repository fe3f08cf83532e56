package dialogue

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/talenthq/onboarding-engine/internal/synthesis"
	"github.com/talenthq/onboarding-engine/internal/types"
	"github.com/talenthq/onboarding-engine/internal/validation"
)

// CVParser is the CV-parse collaborator. The controller never inspects why
// a parse failed, only that it did.
type CVParser interface {
	Parse(ctx context.Context, path string) (*types.ParsedCV, error)
}

// ProfileStore is the persistence collaborator, consumed only at the
// terminal transition.
type ProfileStore interface {
	SaveProfile(ctx context.Context, sessionID uuid.UUID, draft types.ProfileDraft) error
}

// Controller owns the current stage, the transcript, and the draft, and is
// the only writer of all three. It is not safe for concurrent use; callers
// serialize access per session.
type Controller struct {
	sessionID  uuid.UUID
	stage      Stage
	draft      types.ProfileDraft
	transcript types.Transcript
	parser     CVParser
	store      ProfileStore
	busy       bool
	now        func() time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the timestamp source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithSessionID pins the session identifier instead of generating one.
func WithSessionID(id uuid.UUID) Option {
	return func(c *Controller) { c.sessionID = id }
}

// New creates a controller at the welcome stage with the opening prompt
// already on the transcript. parser and store may be nil when the caller
// never reaches the stages that use them.
func New(parser CVParser, store ProfileStore, opts ...Option) *Controller {
	c := &Controller{
		sessionID: uuid.New(),
		stage:     StageWelcome,
		parser:    parser,
		store:     store,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.say(OpeningPrompt(StageWelcome))
	return c
}

// SessionID returns the session identifier.
func (c *Controller) SessionID() uuid.UUID {
	return c.sessionID
}

// Stage returns the current stage.
func (c *Controller) Stage() Stage {
	return c.stage
}

// Draft returns a read-only snapshot of the profile draft.
func (c *Controller) Draft() types.ProfileDraft {
	return c.draft
}

// Transcript returns a read-only snapshot of the message log.
func (c *Controller) Transcript() []types.Message {
	return c.transcript.Entries()
}

// Busy reports whether a collaborator call is outstanding. The presentation
// layer uses this to hold input.
func (c *Controller) Busy() bool {
	return c.busy
}

// Begin leaves the welcome screen and opens the CV-or-basics capture.
func (c *Controller) Begin() error {
	return c.transitionTo(ActionBegin)
}

// SubmitAnswer validates free text for the given stage. A rejection appends
// one corrective assistant message and changes nothing else, so retrying
// the same invalid answer is idempotent. An accepted answer produces
// exactly one draft mutation, one user entry, one stage advance, and the
// successor's opening prompt.
func (c *Controller) SubmitAnswer(stage Stage, text string) error {
	if err := c.checkWritable(stage); err != nil {
		return err
	}
	ctxKind, ok := answerContexts[stage]
	if !ok {
		return &ErrInvalidAction{Stage: stage, Action: ActionAnswer}
	}

	result := validation.Validate(text, ctxKind)
	if !result.Accepted {
		c.say(result.CorrectivePrompt)
		return nil
	}

	answer := strings.TrimSpace(text)
	c.hear(answer)
	c.draft = c.applyAnswer(stage, answer)
	return c.transitionTo(ActionAnswer)
}

// applyAnswer performs the stage-specific draft mutation for an accepted
// answer.
func (c *Controller) applyAnswer(stage Stage, answer string) types.ProfileDraft {
	switch stage {
	case StageBasicsName:
		return c.draft.WithFullName(answer)
	case StageBasicsLocation:
		return c.draft.WithLocation(answer)
	case StageBasicsEmail:
		return c.draft.WithEmail(answer)
	case StageBasicsPhone:
		return c.draft.WithContactNumber(answer)
	}
	if slot, ok := narrativeSlots[stage]; ok {
		return synthesis.ApplyNarrativeAnswer(c.draft, slot, answer)
	}
	return c.draft
}

// ChooseAvailability records an availability selection. The transcript gets
// the human-readable label, never the raw enum value.
func (c *Controller) ChooseAvailability(a types.Availability) error {
	if err := c.checkWritable(StageIntentAvailability); err != nil {
		return err
	}
	if !a.Valid() {
		return &ErrInvalidChoice{Value: string(a)}
	}
	c.hear(a.Label())
	c.draft = c.draft.WithAvailability(a)
	return c.transitionTo(ActionChoice)
}

// ChooseWorkTypes records the work-type selections. An empty set is a valid
// choice; the candidate may be undecided.
func (c *Controller) ChooseWorkTypes(selected []types.WorkType) error {
	if err := c.checkWritable(StageIntentWorkTypes); err != nil {
		return err
	}
	labels := make([]string, 0, len(selected))
	for _, wt := range selected {
		if !wt.Valid() {
			return &ErrInvalidChoice{Value: string(wt)}
		}
		labels = append(labels, wt.Label())
	}
	if len(labels) == 0 {
		c.hear("Not sure yet")
	} else {
		c.hear(strings.Join(labels, ", "))
	}
	c.draft = c.draft.WithWorkTypes(selected)
	return c.transitionTo(ActionChoice)
}

// ChooseWorkStyle records the work-style selection.
func (c *Controller) ChooseWorkStyle(w types.WorkStyleChoice) error {
	if err := c.checkWritable(StageIntentWorkStyle); err != nil {
		return err
	}
	if !w.Valid() {
		return &ErrInvalidChoice{Value: string(w)}
	}
	c.hear(w.Label())
	c.draft = c.draft.WithWorkStyleChoice(w)
	return c.transitionTo(ActionChoice)
}

// SubmitCV runs the CV-parse collaborator on an uploaded file. Success
// applies the extraction to the draft and jumps to review; failure is
// reported as an assistant message offering the manual path, and the stage
// holds so the candidate can retry or skip.
func (c *Controller) SubmitCV(ctx context.Context, path string) error {
	if err := c.checkWritable(StageCVUpload); err != nil {
		return err
	}
	if c.parser == nil {
		c.say(cvFailedPrompt)
		return nil
	}

	c.busy = true
	cv, err := c.parser.Parse(ctx, path)
	c.busy = false

	if err != nil {
		c.say(cvFailedPrompt)
		return nil
	}

	c.hear("Uploaded a CV")
	c.draft = applyParsedCV(c.draft, cv)
	c.say(cvParsedPrompt(cv))
	return c.transitionTo(ActionCVParsed)
}

// applyParsedCV merges the extraction into the draft, assigning IDs to the
// timeline entries as they land.
func applyParsedCV(draft types.ProfileDraft, cv *types.ParsedCV) types.ProfileDraft {
	next := draft
	if cv.BasicDetails.FullName != "" {
		next = next.WithFullName(cv.BasicDetails.FullName)
	}
	if cv.BasicDetails.Location != "" {
		next = next.WithLocation(cv.BasicDetails.Location)
	}
	if cv.BasicDetails.Email != "" {
		next = next.WithEmail(cv.BasicDetails.Email)
	}
	if cv.BasicDetails.ContactNumber != "" {
		next = next.WithContactNumber(cv.BasicDetails.ContactNumber)
	}
	for _, stint := range cv.Experience {
		next = next.WithExperienceAdded(types.NewExperienceEntry(
			stint.Company, stint.Role, stint.StartDate, stint.EndDate, stint.Summary))
	}
	for _, degree := range cv.Education {
		next = next.WithEducationAdded(types.NewEducationEntry(
			degree.Institution, degree.Degree, degree.StartDate, degree.EndDate))
	}
	return next
}

// SkipCV bypasses the upload and moves to manual basics capture. The draft
// is untouched.
func (c *Controller) SkipCV() error {
	if err := c.checkWritable(StageCVUpload); err != nil {
		return err
	}
	c.hear("I'll fill it in manually")
	return c.transitionTo(ActionSkip)
}

// ConfirmBasics approves the reviewed details and opens the intent phase.
func (c *Controller) ConfirmBasics() error {
	if err := c.checkWritable(StageBasicsReview); err != nil {
		return err
	}
	c.hear("Looks good")
	return c.transitionTo(ActionConfirm)
}

// SkipConstraints bypasses the optional constraints question. The slot
// stays empty and no trait is derived.
func (c *Controller) SkipConstraints() error {
	if err := c.checkWritable(StageDecisionConstraints); err != nil {
		return err
	}
	c.hear("Skip this one")
	return c.transitionTo(ActionSkip)
}

// RequestTweak invites an addition to the interpretation without leaving
// the stage or resetting the narrative.
func (c *Controller) RequestTweak() error {
	if err := c.checkWritable(StageDecisionInterpretation); err != nil {
		return err
	}
	c.hear("I'd like to add something")
	c.say("Sure — what should I add?")
	return nil
}

// SubmitTweak appends supplementary context to the interpretation. The
// existing text is never recomputed; the confirmation flag stays false.
func (c *Controller) SubmitTweak(text string) error {
	if err := c.checkWritable(StageDecisionInterpretation); err != nil {
		return err
	}
	result := validation.Validate(text, validation.ContextGeneral)
	if !result.Accepted {
		c.say(result.CorrectivePrompt)
		return nil
	}
	tweak := strings.TrimSpace(text)
	c.hear(tweak)
	c.draft = c.draft.WithInterpretation(
		synthesis.AppendTweak(c.draft.Decision.Interpretation, tweak))
	c.say(tweakAckPrompt(c.draft.Decision.Interpretation))
	// Tweak is the self-loop; the stage index is unchanged.
	return c.transitionTo(ActionTweak)
}

// ConfirmInterpretation records the explicit approval and opens the
// evidence stage. This is the only transition gated on human approval
// rather than a submission.
func (c *Controller) ConfirmInterpretation() error {
	if err := c.checkWritable(StageDecisionInterpretation); err != nil {
		return err
	}
	c.hear("That sounds right")
	c.draft = c.draft.WithInterpretationConfirmed()
	return c.transitionTo(ActionConfirm)
}

// AttachEvidence adds an artifact and stays at the evidence stage so more
// can follow.
func (c *Controller) AttachEvidence(item types.EvidenceItem) error {
	if err := c.checkWritable(StageEvidence); err != nil {
		return err
	}
	c.hear("Attached: " + item.Name)
	c.draft = c.draft.WithEvidenceAdded(item)
	c.say(evidenceAckPrompt(item.Name))
	return c.transitionTo(ActionAttach)
}

// SkipEvidence bypasses the evidence stage and completes the dialogue,
// handing the draft to the persistence collaborator.
func (c *Controller) SkipEvidence(ctx context.Context) error {
	if err := c.checkWritable(StageEvidence); err != nil {
		return err
	}
	c.hear("Nothing to attach")
	return c.finish(ctx, ActionSkip)
}

// Finish closes the evidence stage and completes the dialogue.
func (c *Controller) Finish(ctx context.Context) error {
	if err := c.checkWritable(StageEvidence); err != nil {
		return err
	}
	c.hear("All done")
	return c.finish(ctx, ActionFinish)
}

// finish persists the draft and advances to complete. A persistence
// failure becomes an assistant message and the stage holds for a retry;
// it is never surfaced as an error.
func (c *Controller) finish(ctx context.Context, action Action) error {
	if c.store != nil {
		c.busy = true
		err := c.store.SaveProfile(ctx, c.sessionID, c.draft)
		c.busy = false
		if err != nil {
			c.say(saveFailedPrompt)
			return nil
		}
	}
	return c.transitionTo(action)
}

// --- draft edits outside the flow ---------------------------------------
//
// The review panel edits the draft without touching stage or transcript.
// Each edit is a straight pass-through to one mutator.

// UpdateBasicDetails replaces the contact block.
func (c *Controller) UpdateBasicDetails(details types.BasicDetails) {
	c.draft.BasicDetails = details
}

// AddExperience appends a timeline entry and returns it with its ID set.
func (c *Controller) AddExperience(entry types.ExperienceEntry) types.ExperienceEntry {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	c.draft = c.draft.WithExperienceAdded(entry)
	return entry
}

// UpdateExperience replaces the matching timeline entry.
func (c *Controller) UpdateExperience(entry types.ExperienceEntry) {
	c.draft = c.draft.WithExperienceUpdated(entry)
}

// RemoveExperience removes the identified timeline entry.
func (c *Controller) RemoveExperience(id uuid.UUID) {
	c.draft = c.draft.WithExperienceRemoved(id)
}

// AddEducation appends an education entry and returns it with its ID set.
func (c *Controller) AddEducation(entry types.EducationEntry) types.EducationEntry {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	c.draft = c.draft.WithEducationAdded(entry)
	return entry
}

// UpdateEducation replaces the matching education entry.
func (c *Controller) UpdateEducation(entry types.EducationEntry) {
	c.draft = c.draft.WithEducationUpdated(entry)
}

// RemoveEducation removes the identified education entry.
func (c *Controller) RemoveEducation(id uuid.UUID) {
	c.draft = c.draft.WithEducationRemoved(id)
}

// RemoveTrait drops a derived trait. Traits are only ever removed by
// explicit candidate action, never automatically.
func (c *Controller) RemoveTrait(section types.WorkStyleSection, trait string) {
	c.draft = c.draft.WithTraitRemoved(section, trait)
}

// SetLocationConstraint replaces the free-text location constraint.
func (c *Controller) SetLocationConstraint(constraint string) {
	c.draft = c.draft.WithLocationConstraint(constraint)
}

// SetAnonymity toggles the visibility flag independently of all other
// state.
func (c *Controller) SetAnonymity(anonymous bool) {
	c.draft = c.draft.WithAnonymity(anonymous)
}

// --- internals -----------------------------------------------------------

// checkWritable rejects writes while a collaborator call is pending or when
// the caller's stage is stale.
func (c *Controller) checkWritable(want Stage) error {
	if c.busy {
		return ErrBusy
	}
	if c.stage != want {
		return &ErrStageMismatch{Want: want, Have: c.stage}
	}
	return nil
}

// transitionTo looks up the transition and, on a stage change, synthesizes
// any derived state and posts the opening prompt of the new stage.
func (c *Controller) transitionTo(action Action) error {
	next, ok := Transition(c.stage, action)
	if !ok {
		return &ErrInvalidAction{Stage: c.stage, Action: action}
	}
	if next == c.stage {
		return nil
	}
	c.stage = next

	switch next {
	case StageDecisionInterpretation:
		c.draft = c.draft.WithInterpretation(synthesis.Interpret(c.draft.Decision))
		c.say(interpretationPrompt(c.draft.Decision.Interpretation))
	default:
		c.say(OpeningPrompt(next))
	}
	return nil
}

// say appends an assistant entry.
func (c *Controller) say(text string) {
	c.transcript.Append(types.NewMessage(types.AuthorAssistant, text, c.now()))
}

// hear appends a user entry.
func (c *Controller) hear(text string) {
	c.transcript.Append(types.NewMessage(types.AuthorUser, text, c.now()))
}
