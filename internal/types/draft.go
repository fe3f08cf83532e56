package types

import "github.com/google/uuid"

// BasicDetails holds the candidate's contact block. Every field is optional;
// an empty string means the field has not been captured yet.
type BasicDetails struct {
	FullName      string `json:"full_name,omitempty"`
	Location      string `json:"location,omitempty"`
	Email         string `json:"email,omitempty"`
	ContactNumber string `json:"contact_number,omitempty"`
}

// WorkStyleSection names one of the four fixed work-style categories.
type WorkStyleSection string

// The four work-style sections. The set is closed; traits only ever land in
// one of these.
const (
	SectionProblemFraming   WorkStyleSection = "problem_framing"
	SectionTradeoffThinking WorkStyleSection = "tradeoff_thinking"
	SectionAdaptability     WorkStyleSection = "adaptability"
	SectionReflection       WorkStyleSection = "reflection"
)

// WorkStyleSections lists the sections in display order.
var WorkStyleSections = []WorkStyleSection{
	SectionProblemFraming,
	SectionTradeoffThinking,
	SectionAdaptability,
	SectionReflection,
}

// WorkStyleProfile holds the ordered trait lists per section.
type WorkStyleProfile struct {
	ProblemFraming   []string `json:"problem_framing,omitempty"`
	TradeoffThinking []string `json:"tradeoff_thinking,omitempty"`
	Adaptability     []string `json:"adaptability,omitempty"`
	Reflection       []string `json:"reflection,omitempty"`
}

// Traits returns the trait list for the named section.
func (w WorkStyleProfile) Traits(section WorkStyleSection) []string {
	switch section {
	case SectionProblemFraming:
		return w.ProblemFraming
	case SectionTradeoffThinking:
		return w.TradeoffThinking
	case SectionAdaptability:
		return w.Adaptability
	case SectionReflection:
		return w.Reflection
	}
	return nil
}

// TraitCount returns the total number of traits across all sections.
func (w WorkStyleProfile) TraitCount() int {
	n := 0
	for _, section := range WorkStyleSections {
		n += len(w.Traits(section))
	}
	return n
}

func (w WorkStyleProfile) withTraits(section WorkStyleSection, traits []string) WorkStyleProfile {
	next := w
	switch section {
	case SectionProblemFraming:
		next.ProblemFraming = traits
	case SectionTradeoffThinking:
		next.TradeoffThinking = traits
	case SectionAdaptability:
		next.Adaptability = traits
	case SectionReflection:
		next.Reflection = traits
	}
	return next
}

// ProfileDraft is the cumulative structured profile assembled over the
// dialogue. It has value semantics: every mutator returns a copy with only
// the relevant section replaced, leaving unrelated sections shared.
type ProfileDraft struct {
	BasicDetails BasicDetails      `json:"basic_details"`
	Experience   []ExperienceEntry `json:"experience,omitempty"`
	Education    []EducationEntry  `json:"education,omitempty"`
	WorkStyle    WorkStyleProfile  `json:"work_style"`
	Intent       Intent            `json:"intent"`
	Decision     DecisionTrace     `json:"decision"`
	Evidence     []EvidenceItem    `json:"evidence,omitempty"`
	IsAnonymous  bool              `json:"is_anonymous"`
}

// WithFullName returns a copy with the full name replaced.
func (d ProfileDraft) WithFullName(name string) ProfileDraft {
	d.BasicDetails.FullName = name
	return d
}

// WithLocation returns a copy with the location replaced.
func (d ProfileDraft) WithLocation(location string) ProfileDraft {
	d.BasicDetails.Location = location
	return d
}

// WithEmail returns a copy with the email replaced.
func (d ProfileDraft) WithEmail(email string) ProfileDraft {
	d.BasicDetails.Email = email
	return d
}

// WithContactNumber returns a copy with the contact number replaced.
func (d ProfileDraft) WithContactNumber(number string) ProfileDraft {
	d.BasicDetails.ContactNumber = number
	return d
}

// WithExperienceAdded returns a copy with the entry appended.
func (d ProfileDraft) WithExperienceAdded(entry ExperienceEntry) ProfileDraft {
	d.Experience = append(copyExperience(d.Experience), entry)
	return d
}

// WithExperienceUpdated returns a copy with the matching entry replaced.
// Entries with a different ID are untouched.
func (d ProfileDraft) WithExperienceUpdated(entry ExperienceEntry) ProfileDraft {
	next := copyExperience(d.Experience)
	for i := range next {
		if next[i].ID == entry.ID {
			next[i] = entry
		}
	}
	d.Experience = next
	return d
}

// WithExperienceRemoved returns a copy with the identified entry removed.
func (d ProfileDraft) WithExperienceRemoved(id uuid.UUID) ProfileDraft {
	next := make([]ExperienceEntry, 0, len(d.Experience))
	for _, e := range d.Experience {
		if e.ID != id {
			next = append(next, e)
		}
	}
	d.Experience = next
	return d
}

// WithEducationAdded returns a copy with the entry appended.
func (d ProfileDraft) WithEducationAdded(entry EducationEntry) ProfileDraft {
	d.Education = append(copyEducation(d.Education), entry)
	return d
}

// WithEducationUpdated returns a copy with the matching entry replaced.
func (d ProfileDraft) WithEducationUpdated(entry EducationEntry) ProfileDraft {
	next := copyEducation(d.Education)
	for i := range next {
		if next[i].ID == entry.ID {
			next[i] = entry
		}
	}
	d.Education = next
	return d
}

// WithEducationRemoved returns a copy with the identified entry removed.
func (d ProfileDraft) WithEducationRemoved(id uuid.UUID) ProfileDraft {
	next := make([]EducationEntry, 0, len(d.Education))
	for _, e := range d.Education {
		if e.ID != id {
			next = append(next, e)
		}
	}
	d.Education = next
	return d
}

// WithTraitAdded returns a copy with the trait appended to the named section.
func (d ProfileDraft) WithTraitAdded(section WorkStyleSection, trait string) ProfileDraft {
	traits := append(copyStrings(d.WorkStyle.Traits(section)), trait)
	d.WorkStyle = d.WorkStyle.withTraits(section, traits)
	return d
}

// WithTraitRemoved returns a copy with the trait removed from the named
// section. Removing a trait that is not present is a no-op.
func (d ProfileDraft) WithTraitRemoved(section WorkStyleSection, trait string) ProfileDraft {
	existing := d.WorkStyle.Traits(section)
	next := make([]string, 0, len(existing))
	for _, t := range existing {
		if t != trait {
			next = append(next, t)
		}
	}
	d.WorkStyle = d.WorkStyle.withTraits(section, next)
	return d
}

// WithAvailability returns a copy with the availability replaced.
func (d ProfileDraft) WithAvailability(a Availability) ProfileDraft {
	d.Intent.Availability = a
	return d
}

// WithWorkTypes returns a copy with the work-type set replaced.
func (d ProfileDraft) WithWorkTypes(wt []WorkType) ProfileDraft {
	d.Intent.WorkTypes = append([]WorkType(nil), wt...)
	return d
}

// WithWorkStyleChoice returns a copy with the work-style preference replaced.
func (d ProfileDraft) WithWorkStyleChoice(w WorkStyleChoice) ProfileDraft {
	d.Intent.WorkStyle = w
	return d
}

// WithLocationConstraint returns a copy with the free-text location
// constraint replaced.
func (d ProfileDraft) WithLocationConstraint(constraint string) ProfileDraft {
	d.Intent.LocationConstraint = constraint
	return d
}

// WithNarrativeSlot returns a copy with one decision-trace slot replaced.
func (d ProfileDraft) WithNarrativeSlot(slot NarrativeSlot, text string) ProfileDraft {
	d.Decision = d.Decision.WithSlot(slot, text)
	return d
}

// WithInterpretation returns a copy with the interpretation string replaced.
func (d ProfileDraft) WithInterpretation(text string) ProfileDraft {
	d.Decision.Interpretation = text
	return d
}

// WithInterpretationConfirmed returns a copy with the confirmation flag set.
func (d ProfileDraft) WithInterpretationConfirmed() ProfileDraft {
	d.Decision.Confirmed = true
	return d
}

// WithEvidenceAdded returns a copy with the evidence item appended.
func (d ProfileDraft) WithEvidenceAdded(item EvidenceItem) ProfileDraft {
	d.Evidence = append(append([]EvidenceItem(nil), d.Evidence...), item)
	return d
}

// WithEvidenceRemoved returns a copy with the identified item removed.
func (d ProfileDraft) WithEvidenceRemoved(id uuid.UUID) ProfileDraft {
	next := make([]EvidenceItem, 0, len(d.Evidence))
	for _, e := range d.Evidence {
		if e.ID != id {
			next = append(next, e)
		}
	}
	d.Evidence = next
	return d
}

// WithAnonymity returns a copy with the anonymity flag replaced.
func (d ProfileDraft) WithAnonymity(anonymous bool) ProfileDraft {
	d.IsAnonymous = anonymous
	return d
}

func copyExperience(in []ExperienceEntry) []ExperienceEntry {
	out := make([]ExperienceEntry, len(in))
	copy(out, in)
	return out
}

func copyEducation(in []EducationEntry) []EducationEntry {
	out := make([]EducationEntry, len(in))
	copy(out, in)
	return out
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
