package server

import (
	"errors"
	"net/http"

	"github.com/talenthq/onboarding-engine/internal/dialogue"
)

// controllerError maps a controller error onto an HTTP response. Validation
// rejections never reach here: the controller answers those with a
// corrective message and a nil error. What arrives is sequencing trouble:
// stale stages, pending collaborator calls, out-of-range choices.
func (s *Server) controllerError(w http.ResponseWriter, err error) {
	var (
		stageMismatch *dialogue.ErrStageMismatch
		invalidAction *dialogue.ErrInvalidAction
		invalidChoice *dialogue.ErrInvalidChoice
	)
	switch {
	case errors.Is(err, dialogue.ErrBusy):
		s.errorResponse(w, http.StatusConflict, "A collaborator call is in progress, try again shortly")
	case errors.As(err, &stageMismatch):
		s.errorResponse(w, http.StatusConflict, stageMismatch.Error())
	case errors.As(err, &invalidAction):
		s.errorResponse(w, http.StatusConflict, invalidAction.Error())
	case errors.As(err, &invalidChoice):
		s.errorResponse(w, http.StatusBadRequest, invalidChoice.Error())
	default:
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
	}
}
