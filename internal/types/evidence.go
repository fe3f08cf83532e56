package types

import "github.com/google/uuid"

// EvidenceKind distinguishes uploaded files from external links.
type EvidenceKind string

// EvidenceKind values
const (
	EvidenceFile EvidenceKind = "file"
	EvidenceLink EvidenceKind = "link"
)

// EvidenceItem is an artifact the candidate attaches to back up their
// decision narrative.
type EvidenceItem struct {
	ID          uuid.UUID    `json:"id"`
	Kind        EvidenceKind `json:"kind"`
	Name        string       `json:"name"`
	URL         string       `json:"url,omitempty"`
	Description string       `json:"description,omitempty"`
	DecisionRef string       `json:"decision_ref,omitempty"`
}

// NewEvidenceItem creates an evidence item with a generated ID.
func NewEvidenceItem(kind EvidenceKind, name, url, description, decisionRef string) EvidenceItem {
	return EvidenceItem{
		ID:          uuid.New(),
		Kind:        kind,
		Name:        name,
		URL:         url,
		Description: description,
		DecisionRef: decisionRef,
	}
}
