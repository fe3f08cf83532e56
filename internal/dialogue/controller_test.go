package dialogue

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talenthq/onboarding-engine/internal/types"
)

type stubParser struct {
	cv    *types.ParsedCV
	err   error
	calls int
}

func (p *stubParser) Parse(_ context.Context, _ string) (*types.ParsedCV, error) {
	p.calls++
	return p.cv, p.err
}

type stubStore struct {
	saved     map[uuid.UUID]types.ProfileDraft
	err       error
	saveCalls int
}

func newStubStore() *stubStore {
	return &stubStore{saved: make(map[uuid.UUID]types.ProfileDraft)}
}

func (s *stubStore) SaveProfile(_ context.Context, id uuid.UUID, draft types.ProfileDraft) error {
	s.saveCalls++
	if s.err != nil {
		return s.err
	}
	s.saved[id] = draft
	return nil
}

// driveToBasicsName walks a fresh controller to the first manual basics
// question via the CV skip path.
func driveToBasicsName(t *testing.T, c *Controller) {
	t.Helper()
	require.NoError(t, c.Begin())
	require.NoError(t, c.SkipCV())
	require.Equal(t, StageBasicsName, c.Stage())
}

// driveToDecisionAnchor completes welcome, basics, and intent.
func driveToDecisionAnchor(t *testing.T, c *Controller) {
	t.Helper()
	driveToBasicsName(t, c)
	require.NoError(t, c.SubmitAnswer(StageBasicsName, "Jane Doe"))
	require.NoError(t, c.SubmitAnswer(StageBasicsLocation, "Berlin, Germany"))
	require.NoError(t, c.SubmitAnswer(StageBasicsEmail, "jane@example.com"))
	require.NoError(t, c.SubmitAnswer(StageBasicsPhone, "+49 30 1234567"))
	require.NoError(t, c.ConfirmBasics())
	require.NoError(t, c.ChooseAvailability(types.AvailabilityTwoWeeks))
	require.NoError(t, c.ChooseWorkTypes([]types.WorkType{types.WorkTypeFullTime, types.WorkTypeContract}))
	require.NoError(t, c.ChooseWorkStyle(types.WorkStyleCollaborative))
	require.Equal(t, StageDecisionAnchor, c.Stage())
}

// driveToInterpretation answers every decision question including the
// optional constraints one.
func driveToInterpretation(t *testing.T, c *Controller) {
	t.Helper()
	driveToDecisionAnchor(t, c)
	require.NoError(t, c.SubmitAnswer(StageDecisionAnchor, "We had to migrate the billing system before the old vendor contract expired."))
	require.NoError(t, c.SubmitAnswer(StageDecisionConstraints, "Two engineers, six weeks, and a hard cutover date."))
	require.NoError(t, c.SubmitAnswer(StageDecisionPrioritization, "I put data correctness first and deferred every cosmetic request."))
	require.NoError(t, c.SubmitAnswer(StageDecisionJudgment, "When the test environment diverged I shipped behind a feature flag rather than wait."))
	require.NoError(t, c.SubmitAnswer(StageDecisionReflection, "It worked, but I would involve the support team a week earlier next time."))
	require.NoError(t, c.SubmitAnswer(StageDecisionInsight, "I do my best work when the stakes are explicit and the deadline is real."))
	require.Equal(t, StageDecisionInterpretation, c.Stage())
}

func TestNew_OpensWithWelcomePrompt(t *testing.T) {
	c := New(nil, nil)
	assert.Equal(t, StageWelcome, c.Stage())
	assert.False(t, c.Busy())

	entries := c.Transcript()
	require.Len(t, entries, 1)
	assert.Equal(t, types.AuthorAssistant, entries[0].Author)
	assert.Equal(t, OpeningPrompt(StageWelcome), entries[0].Text)
}

func TestWithSessionID(t *testing.T) {
	id := uuid.New()
	c := New(nil, nil, WithSessionID(id))
	assert.Equal(t, id, c.SessionID())
}

func TestFullFlow_ManualPath(t *testing.T) {
	store := newStubStore()
	c := New(nil, store)

	driveToInterpretation(t, c)

	// The interpretation was synthesized on entry and carries one fragment
	// per answered slot.
	interp := c.Draft().Decision.Interpretation
	require.NotEmpty(t, interp)

	require.NoError(t, c.ConfirmInterpretation())
	require.Equal(t, StageEvidence, c.Stage())
	assert.True(t, c.Draft().Decision.Confirmed)

	require.NoError(t, c.Finish(context.Background()))
	assert.Equal(t, StageComplete, c.Stage())
	assert.True(t, c.Stage().Terminal())

	saved, ok := store.saved[c.SessionID()]
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", saved.BasicDetails.FullName)
	assert.Equal(t, types.AvailabilityTwoWeeks, saved.Intent.Availability)
	assert.Equal(t, interp, saved.Decision.Interpretation)

	// Five trait-producing answers, five traits. Constraints produces none.
	assert.Equal(t, 5, saved.WorkStyle.TraitCount())
}

func TestSubmitAnswer_RejectionIsIdempotent(t *testing.T) {
	c := New(nil, nil)
	driveToBasicsName(t, c)

	before := c.Draft()
	lenBefore := len(c.Transcript())

	for i := 0; i < 3; i++ {
		require.NoError(t, c.SubmitAnswer(StageBasicsName, "x"))
	}

	assert.Equal(t, StageBasicsName, c.Stage(), "rejection must not advance")
	assert.Equal(t, before, c.Draft(), "rejection must not touch the draft")

	entries := c.Transcript()
	require.Len(t, entries, lenBefore+3)
	for _, m := range entries[lenBefore:] {
		assert.Equal(t, types.AuthorAssistant, m.Author)
	}
}

func TestSubmitAnswer_AcceptRecordsExactlyOneExchange(t *testing.T) {
	c := New(nil, nil)
	driveToBasicsName(t, c)
	lenBefore := len(c.Transcript())

	require.NoError(t, c.SubmitAnswer(StageBasicsName, "  Jane Doe  "))

	assert.Equal(t, StageBasicsLocation, c.Stage())
	assert.Equal(t, "Jane Doe", c.Draft().BasicDetails.FullName, "answers are trimmed")

	entries := c.Transcript()
	require.Len(t, entries, lenBefore+2)
	assert.Equal(t, types.AuthorUser, entries[lenBefore].Author)
	assert.Equal(t, "Jane Doe", entries[lenBefore].Text)
	assert.Equal(t, types.AuthorAssistant, entries[lenBefore+1].Author)
	assert.Equal(t, OpeningPrompt(StageBasicsLocation), entries[lenBefore+1].Text)
}

func TestSubmitAnswer_StaleStageRejected(t *testing.T) {
	c := New(nil, nil)
	driveToBasicsName(t, c)
	require.NoError(t, c.SubmitAnswer(StageBasicsName, "Jane Doe"))

	err := c.SubmitAnswer(StageBasicsName, "Janet Doe")
	var mismatch *ErrStageMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, StageBasicsName, mismatch.Want)
	assert.Equal(t, StageBasicsLocation, mismatch.Have)
	assert.Equal(t, "Jane Doe", c.Draft().BasicDetails.FullName)
}

func TestSubmitAnswer_NonAnswerStage(t *testing.T) {
	c := New(nil, nil)
	err := c.SubmitAnswer(StageWelcome, "hello there")
	var invalid *ErrInvalidAction
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, StageWelcome, invalid.Stage)
}

func TestChoose_InvalidValueRejected(t *testing.T) {
	c := New(nil, nil)
	driveToBasicsName(t, c)
	require.NoError(t, c.SubmitAnswer(StageBasicsName, "Jane Doe"))
	require.NoError(t, c.SubmitAnswer(StageBasicsLocation, "Berlin"))
	require.NoError(t, c.SubmitAnswer(StageBasicsEmail, "jane@example.com"))
	require.NoError(t, c.SubmitAnswer(StageBasicsPhone, "5551234567"))
	require.NoError(t, c.ConfirmBasics())

	err := c.ChooseAvailability(types.Availability("someday"))
	var invalid *ErrInvalidChoice
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, StageIntentAvailability, c.Stage())
}

func TestChooseWorkTypes_EmptySetIsValid(t *testing.T) {
	c := New(nil, nil)
	driveToBasicsName(t, c)
	require.NoError(t, c.SubmitAnswer(StageBasicsName, "Jane Doe"))
	require.NoError(t, c.SubmitAnswer(StageBasicsLocation, "Berlin"))
	require.NoError(t, c.SubmitAnswer(StageBasicsEmail, "jane@example.com"))
	require.NoError(t, c.SubmitAnswer(StageBasicsPhone, "5551234567"))
	require.NoError(t, c.ConfirmBasics())
	require.NoError(t, c.ChooseAvailability(types.AvailabilityExploring))

	require.NoError(t, c.ChooseWorkTypes(nil))
	assert.Equal(t, StageIntentWorkStyle, c.Stage())
	assert.Empty(t, c.Draft().Intent.WorkTypes)
}

func TestSubmitCV_SuccessMergesAndJumpsToReview(t *testing.T) {
	parser := &stubParser{cv: &types.ParsedCV{
		BasicDetails: types.BasicDetails{
			FullName: "Jane Doe",
			Email:    "jane@example.com",
		},
		Experience: []types.ParsedStint{
			{Company: "Acme", Role: "Engineer", StartDate: "2020-01", EndDate: "2023-06"},
			{Company: "Beta Corp", Role: "Senior Engineer", StartDate: "2023-07"},
		},
		Education: []types.ParsedDegree{
			{Institution: "State University", Degree: "BSc Computer Science"},
		},
	}}
	c := New(parser, nil)
	require.NoError(t, c.Begin())

	require.NoError(t, c.SubmitCV(context.Background(), "/tmp/cv.pdf"))

	assert.Equal(t, StageBasicsReview, c.Stage())
	assert.Equal(t, 1, parser.calls)

	draft := c.Draft()
	assert.Equal(t, "Jane Doe", draft.BasicDetails.FullName)
	require.Len(t, draft.Experience, 2)
	assert.NotEqual(t, uuid.Nil, draft.Experience[0].ID)
	require.Len(t, draft.Education, 1)
	assert.NotEqual(t, uuid.Nil, draft.Education[0].ID)
}

func TestSubmitCV_FailureHoldsStageWithFallback(t *testing.T) {
	parser := &stubParser{err: errors.New("unreadable")}
	c := New(parser, nil)
	require.NoError(t, c.Begin())
	before := c.Draft()

	require.NoError(t, c.SubmitCV(context.Background(), "/tmp/cv.pdf"))

	assert.Equal(t, StageCVUpload, c.Stage(), "failure holds the stage for retry or skip")
	assert.Equal(t, before, c.Draft())
	assert.False(t, c.Busy())

	entries := c.Transcript()
	last := entries[len(entries)-1]
	assert.Equal(t, types.AuthorAssistant, last.Author)
	assert.Contains(t, last.Text, "couldn't read")

	// The skip path stays open after a failure.
	require.NoError(t, c.SkipCV())
	assert.Equal(t, StageBasicsName, c.Stage())
}

func TestSubmitCV_NoParserConfigured(t *testing.T) {
	c := New(nil, nil)
	require.NoError(t, c.Begin())
	require.NoError(t, c.SubmitCV(context.Background(), "/tmp/cv.pdf"))
	assert.Equal(t, StageCVUpload, c.Stage())
}

func TestSkipConstraints_NoSlotNoTrait(t *testing.T) {
	c := New(nil, nil)
	driveToDecisionAnchor(t, c)
	require.NoError(t, c.SubmitAnswer(StageDecisionAnchor, "We had to migrate the billing system before the vendor contract expired."))

	require.NoError(t, c.SkipConstraints())
	assert.Equal(t, StageDecisionPrioritization, c.Stage())
	assert.Empty(t, c.Draft().Decision.Constraints)
	assert.Equal(t, 1, c.Draft().WorkStyle.TraitCount())
}

func TestInterpretation_TweakAppendsWithoutRecompute(t *testing.T) {
	c := New(nil, nil)
	driveToInterpretation(t, c)
	base := c.Draft().Decision.Interpretation

	require.NoError(t, c.RequestTweak())
	assert.Equal(t, StageDecisionInterpretation, c.Stage())

	require.NoError(t, c.SubmitTweak("I also care a lot about mentoring junior engineers."))
	assert.Equal(t, StageDecisionInterpretation, c.Stage(), "tweak is a self-loop")

	after := c.Draft().Decision.Interpretation
	assert.True(t, strings.HasPrefix(after, base), "tweak is additive, never a rewrite")
	assert.Contains(t, after, "mentoring junior engineers")
	assert.False(t, c.Draft().Decision.Confirmed)

	// A second tweak stacks on the first.
	require.NoError(t, c.SubmitTweak("And I like pairing."))
	assert.True(t, strings.HasPrefix(c.Draft().Decision.Interpretation, after))
}

func TestSubmitTweak_RejectionLeavesInterpretation(t *testing.T) {
	c := New(nil, nil)
	driveToInterpretation(t, c)
	base := c.Draft().Decision.Interpretation

	require.NoError(t, c.SubmitTweak("x"))
	assert.Equal(t, base, c.Draft().Decision.Interpretation)
	assert.Equal(t, StageDecisionInterpretation, c.Stage())
}

func TestEvidence_AttachLoopsThenFinish(t *testing.T) {
	store := newStubStore()
	c := New(nil, store)
	driveToInterpretation(t, c)
	require.NoError(t, c.ConfirmInterpretation())

	require.NoError(t, c.AttachEvidence(types.NewEvidenceItem(
		types.EvidenceLink, "Migration design doc", "https://example.com/doc", "", "")))
	require.NoError(t, c.AttachEvidence(types.NewEvidenceItem(
		types.EvidenceFile, "cutover-runbook.pdf", "", "The runbook we ran on the night", "")))
	assert.Equal(t, StageEvidence, c.Stage(), "attach is a self-loop")

	require.NoError(t, c.Finish(context.Background()))
	assert.Equal(t, StageComplete, c.Stage())

	saved := store.saved[c.SessionID()]
	assert.Len(t, saved.Evidence, 2)
}

func TestSkipEvidence_CompletesAndPersists(t *testing.T) {
	store := newStubStore()
	c := New(nil, store)
	driveToInterpretation(t, c)
	require.NoError(t, c.ConfirmInterpretation())

	require.NoError(t, c.SkipEvidence(context.Background()))
	assert.Equal(t, StageComplete, c.Stage())
	assert.Equal(t, 1, store.saveCalls)
}

func TestFinish_StoreFailureHoldsForRetry(t *testing.T) {
	store := newStubStore()
	store.err = errors.New("connection refused")
	c := New(nil, store)
	driveToInterpretation(t, c)
	require.NoError(t, c.ConfirmInterpretation())

	require.NoError(t, c.Finish(context.Background()))
	assert.Equal(t, StageEvidence, c.Stage(), "save failure holds the stage")

	entries := c.Transcript()
	assert.Contains(t, entries[len(entries)-1].Text, "snag saving")

	// Retry succeeds once the store recovers.
	store.err = nil
	require.NoError(t, c.Finish(context.Background()))
	assert.Equal(t, StageComplete, c.Stage())
	assert.Equal(t, 2, store.saveCalls)
}

func TestTerminalStage_RejectsFurtherWrites(t *testing.T) {
	c := New(nil, nil)
	driveToInterpretation(t, c)
	require.NoError(t, c.ConfirmInterpretation())
	require.NoError(t, c.Finish(context.Background()))

	var mismatch *ErrStageMismatch
	assert.ErrorAs(t, c.SubmitAnswer(StageBasicsName, "someone else"), &mismatch)
	assert.ErrorAs(t, c.Finish(context.Background()), &mismatch)
}

func TestDraftEdits_DoNotTouchStageOrTranscript(t *testing.T) {
	c := New(nil, nil)
	driveToBasicsName(t, c)
	stage := c.Stage()
	lenBefore := len(c.Transcript())

	c.UpdateBasicDetails(types.BasicDetails{FullName: "Edited Name", Email: "edited@example.com"})
	entry := c.AddExperience(types.NewExperienceEntry("Acme", "Engineer", "2020-01", "", ""))
	entry.Role = "Staff Engineer"
	c.UpdateExperience(entry)
	c.SetLocationConstraint("remote only")
	c.SetAnonymity(true)

	draft := c.Draft()
	assert.Equal(t, "Edited Name", draft.BasicDetails.FullName)
	assert.Equal(t, "Staff Engineer", draft.Experience[0].Role)
	assert.Equal(t, "remote only", draft.Intent.LocationConstraint)
	assert.True(t, draft.IsAnonymous)

	assert.Equal(t, stage, c.Stage())
	assert.Len(t, c.Transcript(), lenBefore)

	c.RemoveExperience(entry.ID)
	assert.Empty(t, c.Draft().Experience)
}

func TestRemoveTrait_OnlyByExplicitAction(t *testing.T) {
	c := New(nil, nil)
	driveToDecisionAnchor(t, c)
	require.NoError(t, c.SubmitAnswer(StageDecisionAnchor, "We had to migrate the billing system on a hard deadline."))
	require.Equal(t, 1, c.Draft().WorkStyle.TraitCount())

	traits := c.Draft().WorkStyle.Traits(types.SectionProblemFraming)
	require.Len(t, traits, 1)
	c.RemoveTrait(types.SectionProblemFraming, traits[0])
	assert.Zero(t, c.Draft().WorkStyle.TraitCount())
}
