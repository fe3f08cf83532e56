package types

// ParsedCV is the structured result returned by the CV-parse collaborator.
// The engine applies it to the draft wholesale; it never inspects why a
// parse failed, only whether it did.
type ParsedCV struct {
	BasicDetails BasicDetails   `json:"basic_details"`
	Experience   []ParsedStint  `json:"experience"`
	Education    []ParsedDegree `json:"education"`
}

// ParsedStint is one extracted work-history item. IDs are assigned when the
// stint is applied to the draft, not by the extractor.
type ParsedStint struct {
	Company   string `json:"company"`
	Role      string `json:"role"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Summary   string `json:"summary,omitempty"`
}

// ParsedDegree is one extracted education item.
type ParsedDegree struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
}
