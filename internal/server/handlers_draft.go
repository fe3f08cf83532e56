package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/talenthq/onboarding-engine/internal/types"
)

var requestValidator = validator.New()

// EvidenceRequest is the body for attaching an evidence artifact. Links
// without a name get one from the fetched page title.
type EvidenceRequest struct {
	Kind        string `json:"kind" validate:"required,oneof=file link"`
	Name        string `json:"name,omitempty"`
	URL         string `json:"url,omitempty" validate:"omitempty,url"`
	Description string `json:"description,omitempty"`
	DecisionRef string `json:"decision_ref,omitempty"`
}

// DraftPatchRequest edits the draft sections outside the dialogue flow.
// Nil fields are untouched.
type DraftPatchRequest struct {
	BasicDetails       *types.BasicDetails `json:"basic_details,omitempty"`
	LocationConstraint *string             `json:"location_constraint,omitempty"`
	IsAnonymous        *bool               `json:"is_anonymous,omitempty"`
}

// TraitRemovalRequest names the trait to drop.
type TraitRemovalRequest struct {
	Section string `json:"section" validate:"required"`
	Trait   string `json:"trait" validate:"required"`
}

func (s *Server) handleAttachEvidence(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	var req EvidenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := requestValidator.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid evidence: "+err.Error())
		return
	}

	kind := types.EvidenceKind(req.Kind)
	if kind == types.EvidenceLink && req.URL == "" {
		s.errorResponse(w, http.StatusBadRequest, "Link evidence requires a url")
		return
	}
	if kind == types.EvidenceFile && req.Name == "" {
		s.errorResponse(w, http.StatusBadRequest, "File evidence requires a name")
		return
	}

	name := req.Name
	if name == "" {
		// Link title lookup is best-effort; the URL host stands in.
		meta, err := s.links.Title(r.Context(), req.URL)
		if err == nil {
			name = meta.Title
		} else {
			name = req.URL
		}
	}

	item := types.NewEvidenceItem(kind, name, req.URL, req.Description, req.DecisionRef)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.controller.AttachEvidence(item); err != nil {
		s.controllerError(w, err)
		return
	}
	s.stateResponse(w, sess)
}

func (s *Server) handlePatchDraft(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	var req DraftPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if req.BasicDetails != nil {
		sess.controller.UpdateBasicDetails(*req.BasicDetails)
	}
	if req.LocationConstraint != nil {
		sess.controller.SetLocationConstraint(*req.LocationConstraint)
	}
	if req.IsAnonymous != nil {
		sess.controller.SetAnonymity(*req.IsAnonymous)
	}
	s.jsonResponse(w, http.StatusOK, sess.controller.Draft())
}

func (s *Server) handleAddExperience(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	var entry types.ExperienceEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if entry.Company == "" || entry.Role == "" {
		s.errorResponse(w, http.StatusBadRequest, "Company and Role are required")
		return
	}

	sess.mu.Lock()
	added := sess.controller.AddExperience(entry)
	sess.mu.Unlock()
	s.jsonResponse(w, http.StatusCreated, added)
}

func (s *Server) handleUpdateExperience(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	entryID, err := uuid.Parse(r.PathValue("entryID"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid entry ID")
		return
	}
	var entry types.ExperienceEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	entry.ID = entryID

	sess.mu.Lock()
	sess.controller.UpdateExperience(entry)
	sess.mu.Unlock()
	s.jsonResponse(w, http.StatusOK, entry)
}

func (s *Server) handleRemoveExperience(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	entryID, err := uuid.Parse(r.PathValue("entryID"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	sess.mu.Lock()
	sess.controller.RemoveExperience(entryID)
	sess.mu.Unlock()
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (s *Server) handleAddEducation(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	var entry types.EducationEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if entry.Institution == "" {
		s.errorResponse(w, http.StatusBadRequest, "Institution is required")
		return
	}

	sess.mu.Lock()
	added := sess.controller.AddEducation(entry)
	sess.mu.Unlock()
	s.jsonResponse(w, http.StatusCreated, added)
}

func (s *Server) handleUpdateEducation(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	entryID, err := uuid.Parse(r.PathValue("entryID"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid entry ID")
		return
	}
	var entry types.EducationEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	entry.ID = entryID

	sess.mu.Lock()
	sess.controller.UpdateEducation(entry)
	sess.mu.Unlock()
	s.jsonResponse(w, http.StatusOK, entry)
}

func (s *Server) handleRemoveEducation(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	entryID, err := uuid.Parse(r.PathValue("entryID"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	sess.mu.Lock()
	sess.controller.RemoveEducation(entryID)
	sess.mu.Unlock()
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (s *Server) handleRemoveTrait(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	var req TraitRemovalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := requestValidator.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid trait removal: "+err.Error())
		return
	}

	sess.mu.Lock()
	sess.controller.RemoveTrait(types.WorkStyleSection(req.Section), req.Trait)
	draft := sess.controller.Draft()
	sess.mu.Unlock()
	s.jsonResponse(w, http.StatusOK, draft)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Profile storage is not configured")
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid profile ID")
		return
	}

	record, err := s.db.GetProfile(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if record == nil {
		s.errorResponse(w, http.StatusNotFound, "Profile not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, record)
}
