package server

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/talenthq/onboarding-engine/internal/dialogue"
	"github.com/talenthq/onboarding-engine/internal/types"
)

// maxCVUploadBytes bounds an uploaded CV file.
const maxCVUploadBytes = 10 << 20

// StateResponse reports where the dialogue stands after an operation.
type StateResponse struct {
	SessionID  string          `json:"session_id"`
	Stage      string          `json:"stage"`
	Busy       bool            `json:"busy"`
	Transcript []types.Message `json:"transcript"`
}

// AnswerRequest is the body for free-text submissions.
type AnswerRequest struct {
	Stage string `json:"stage"`
	Text  string `json:"text"`
}

// ChoiceRequest is the body for enumerated selections. Value carries
// single-choice stages; Values carries the work-types multi-choice.
type ChoiceRequest struct {
	Stage  string   `json:"stage"`
	Value  string   `json:"value,omitempty"`
	Values []string `json:"values,omitempty"`
}

// StageRequest names the stage a skip or confirm applies to.
type StageRequest struct {
	Stage string `json:"stage"`
}

// TweakRequest is the body for interpretation tweaks. An empty text only
// requests the tweak; text submits one.
type TweakRequest struct {
	Text string `json:"text"`
}

func (s *Server) stateResponse(w http.ResponseWriter, sess *session) {
	c := sess.controller
	s.jsonResponse(w, http.StatusOK, StateResponse{
		SessionID:  c.SessionID().String(),
		Stage:      string(c.Stage()),
		Busy:       c.Busy(),
		Transcript: c.Transcript(),
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	sess := s.newSession()
	c := sess.controller
	s.jsonResponse(w, http.StatusCreated, StateResponse{
		SessionID:  c.SessionID().String(),
		Stage:      string(c.Stage()),
		Transcript: c.Transcript(),
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	s.stateResponse(w, sess)
}

func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	sess.mu.Lock()
	draft := sess.controller.Draft()
	sess.mu.Unlock()
	s.jsonResponse(w, http.StatusOK, draft)
}

func (s *Server) handleGetTranscript(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	sess.mu.Lock()
	transcript := sess.controller.Transcript()
	sess.mu.Unlock()
	s.jsonResponse(w, http.StatusOK, transcript)
}

func (s *Server) handleBegin(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.controller.Begin(); err != nil {
		s.controllerError(w, err)
		return
	}
	s.stateResponse(w, sess)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.controller.SubmitAnswer(dialogue.Stage(req.Stage), req.Text); err != nil {
		s.controllerError(w, err)
		return
	}
	s.stateResponse(w, sess)
}

func (s *Server) handleChoice(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	var req ChoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	var err error
	switch dialogue.Stage(req.Stage) {
	case dialogue.StageIntentAvailability:
		err = sess.controller.ChooseAvailability(types.Availability(req.Value))
	case dialogue.StageIntentWorkTypes:
		selected := make([]types.WorkType, 0, len(req.Values))
		for _, v := range req.Values {
			selected = append(selected, types.WorkType(v))
		}
		err = sess.controller.ChooseWorkTypes(selected)
	case dialogue.StageIntentWorkStyle:
		err = sess.controller.ChooseWorkStyle(types.WorkStyleChoice(req.Value))
	default:
		s.errorResponse(w, http.StatusBadRequest, "Stage does not take a choice")
		return
	}
	if err != nil {
		s.controllerError(w, err)
		return
	}
	s.stateResponse(w, sess)
}

// handleCVUpload spools the uploaded file to disk and runs the parse
// collaborator. Parse failures are not HTTP errors; the controller answers
// them with a fallback assistant message.
func (s *Server) handleCVUpload(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxCVUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing 'file' field")
		return
	}
	defer func() { _ = file.Close() }()

	tmpDir, err := os.MkdirTemp("", "cv-upload-*")
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to store upload")
		return
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	path := filepath.Join(tmpDir, filepath.Base(header.Filename))
	out, err := os.Create(path)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to store upload")
		return
	}
	if _, err := io.Copy(out, file); err != nil {
		_ = out.Close()
		s.errorResponse(w, http.StatusInternalServerError, "Failed to store upload")
		return
	}
	_ = out.Close()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.controller.SubmitCV(r.Context(), path); err != nil {
		s.controllerError(w, err)
		return
	}
	s.stateResponse(w, sess)
}

func (s *Server) handleSkip(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	var req StageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	var err error
	switch dialogue.Stage(req.Stage) {
	case dialogue.StageCVUpload:
		err = sess.controller.SkipCV()
	case dialogue.StageDecisionConstraints:
		err = sess.controller.SkipConstraints()
	case dialogue.StageEvidence:
		err = sess.controller.SkipEvidence(r.Context())
	default:
		s.errorResponse(w, http.StatusBadRequest, "Stage is not skippable")
		return
	}
	if err != nil {
		s.controllerError(w, err)
		return
	}
	s.stateResponse(w, sess)
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	var req StageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	var err error
	switch dialogue.Stage(req.Stage) {
	case dialogue.StageBasicsReview:
		err = sess.controller.ConfirmBasics()
	case dialogue.StageDecisionInterpretation:
		err = sess.controller.ConfirmInterpretation()
	default:
		s.errorResponse(w, http.StatusBadRequest, "Stage is not confirmable")
		return
	}
	if err != nil {
		s.controllerError(w, err)
		return
	}
	s.stateResponse(w, sess)
}

func (s *Server) handleTweak(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	var req TweakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	var err error
	if req.Text == "" {
		err = sess.controller.RequestTweak()
	} else {
		err = sess.controller.SubmitTweak(req.Text)
	}
	if err != nil {
		s.controllerError(w, err)
		return
	}
	s.stateResponse(w, sess)
}

func (s *Server) handleFinish(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.controller.Finish(r.Context()); err != nil {
		s.controllerError(w, err)
		return
	}
	s.stateResponse(w, sess)
}
