package dialogue

import (
	"errors"
	"fmt"
)

// ErrBusy is returned while a collaborator call for the current stage is
// outstanding. The caller should retry once the pending call settles.
var ErrBusy = errors.New("a collaborator call is in progress for this stage")

// ErrStageMismatch indicates the caller acted on a stage the dialogue is no
// longer at, usually a stale UI submitting twice.
type ErrStageMismatch struct {
	Want Stage
	Have Stage
}

func (e *ErrStageMismatch) Error() string {
	return fmt.Sprintf("dialogue is at stage %q, not %q", e.Have, e.Want)
}

// ErrInvalidAction indicates the action is not defined for the current
// stage in the transition table.
type ErrInvalidAction struct {
	Stage  Stage
	Action Action
}

func (e *ErrInvalidAction) Error() string {
	return fmt.Sprintf("action %q is not available at stage %q", e.Action, e.Stage)
}

// ErrInvalidChoice indicates a selection outside the presented enumeration.
type ErrInvalidChoice struct {
	Value string
}

func (e *ErrInvalidChoice) Error() string {
	return fmt.Sprintf("choice %q is not one of the presented options", e.Value)
}
