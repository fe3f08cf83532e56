package types

// Availability represents how soon a candidate can start.
type Availability string

// Availability values presented during the intent phase
const (
	AvailabilityImmediately Availability = "immediately"
	AvailabilityTwoWeeks    Availability = "two_weeks"
	AvailabilityOneMonth    Availability = "one_month"
	AvailabilityExploring   Availability = "exploring"
)

// availabilityLabels maps availability values to the copy shown in the chat.
var availabilityLabels = map[Availability]string{
	AvailabilityImmediately: "Immediately",
	AvailabilityTwoWeeks:    "Within two weeks",
	AvailabilityOneMonth:    "Within a month",
	AvailabilityExploring:   "Just exploring for now",
}

// Label returns the human-readable label for the availability value.
func (a Availability) Label() string {
	return availabilityLabels[a]
}

// Valid reports whether the value is one of the presented options.
func (a Availability) Valid() bool {
	_, ok := availabilityLabels[a]
	return ok
}

// WorkType represents an engagement type a candidate is open to.
type WorkType string

// WorkType values presented during the intent phase
const (
	WorkTypeFullTime  WorkType = "full_time"
	WorkTypePartTime  WorkType = "part_time"
	WorkTypeContract  WorkType = "contract"
	WorkTypeFreelance WorkType = "freelance"
)

var workTypeLabels = map[WorkType]string{
	WorkTypeFullTime:  "Full-time",
	WorkTypePartTime:  "Part-time",
	WorkTypeContract:  "Contract",
	WorkTypeFreelance: "Freelance",
}

// Label returns the human-readable label for the work type.
func (w WorkType) Label() string {
	return workTypeLabels[w]
}

// Valid reports whether the value is one of the presented options.
func (w WorkType) Valid() bool {
	_, ok := workTypeLabels[w]
	return ok
}

// WorkStyleChoice represents the collaboration style a candidate prefers.
type WorkStyleChoice string

// WorkStyleChoice values presented during the intent phase
const (
	WorkStyleIndependent   WorkStyleChoice = "independent"
	WorkStyleCollaborative WorkStyleChoice = "collaborative"
	WorkStyleFlexible      WorkStyleChoice = "flexible"
)

var workStyleLabels = map[WorkStyleChoice]string{
	WorkStyleIndependent:   "Mostly independent",
	WorkStyleCollaborative: "Mostly collaborative",
	WorkStyleFlexible:      "A mix of both",
}

// Label returns the human-readable label for the work style.
func (w WorkStyleChoice) Label() string {
	return workStyleLabels[w]
}

// Valid reports whether the value is one of the presented options.
func (w WorkStyleChoice) Valid() bool {
	_, ok := workStyleLabels[w]
	return ok
}

// Intent captures what the candidate is looking for. Availability and
// WorkStyle are empty until chosen; WorkTypes behaves as a set.
type Intent struct {
	Availability       Availability    `json:"availability,omitempty"`
	WorkTypes          []WorkType      `json:"work_types,omitempty"`
	WorkStyle          WorkStyleChoice `json:"work_style,omitempty"`
	LocationConstraint string          `json:"location_constraint,omitempty"`
}
