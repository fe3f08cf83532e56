package types

import "github.com/google/uuid"

// ExperienceEntry is a single work-history item on the profile timeline.
type ExperienceEntry struct {
	ID        uuid.UUID `json:"id"`
	Company   string    `json:"company"`
	Role      string    `json:"role"`
	StartDate string    `json:"start_date,omitempty"`
	EndDate   string    `json:"end_date,omitempty"`
	Summary   string    `json:"summary,omitempty"`
}

// EducationEntry is a single education item on the profile timeline.
type EducationEntry struct {
	ID          uuid.UUID `json:"id"`
	Institution string    `json:"institution"`
	Degree      string    `json:"degree,omitempty"`
	StartDate   string    `json:"start_date,omitempty"`
	EndDate     string    `json:"end_date,omitempty"`
}

// NewExperienceEntry creates an experience entry with a generated ID.
func NewExperienceEntry(company, role, start, end, summary string) ExperienceEntry {
	return ExperienceEntry{
		ID:        uuid.New(),
		Company:   company,
		Role:      role,
		StartDate: start,
		EndDate:   end,
		Summary:   summary,
	}
}

// NewEducationEntry creates an education entry with a generated ID.
func NewEducationEntry(institution, degree, start, end string) EducationEntry {
	return EducationEntry{
		ID:          uuid.New(),
		Institution: institution,
		Degree:      degree,
		StartDate:   start,
		EndDate:     end,
	}
}
