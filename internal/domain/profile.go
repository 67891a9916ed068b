package domain

import "encoding/json"

// Region is a student's residence area code
type Region string

const (
	RegionNorth     Region = "north"
	RegionHaifa     Region = "haifa"
	RegionCenter    Region = "center"
	RegionTelAviv   Region = "tel-aviv"
	RegionJerusalem Region = "jerusalem"
	RegionSouth     Region = "south"
	RegionSharon    Region = "sharon"
	RegionShfela    Region = "shfela"
)

// StudyTime is the preferred time of day for classes. Empty means unset.
type StudyTime string

const (
	StudyTimeMorning  StudyTime = "morning"
	StudyTimeEvening  StudyTime = "evening"
	StudyTimeFlexible StudyTime = "flexible"
)

// StudyFormat is the preferred teaching format. Empty means unset.
type StudyFormat string

const (
	StudyFormatFrontal StudyFormat = "frontal"
	StudyFormatOnline  StudyFormat = "online"
	StudyFormatHybrid  StudyFormat = "hybrid"
)

// BudgetTier is an ordered tuition bracket shared by students and institutions
type BudgetTier string

const (
	BudgetLow     BudgetTier = "low"     // up to 10,000 ILS
	BudgetMedium  BudgetTier = "medium"  // 10,000-20,000 ILS
	BudgetHigh    BudgetTier = "high"    // 20,000-35,000 ILS
	BudgetPremium BudgetTier = "premium" // 35,000+ ILS
)

// budgetOrder is the ascending affordability scale
var budgetOrder = []BudgetTier{BudgetLow, BudgetMedium, BudgetHigh, BudgetPremium}

// Index returns the tier's position on the budget scale, or -1 for unknown tiers
func (b BudgetTier) Index() int {
	for i, tier := range budgetOrder {
		if tier == b {
			return i
		}
	}
	return -1
}

// EducationLevel is the student's current education stage
type EducationLevel string

const (
	EducationHighSchool   EducationLevel = "highschool"
	EducationMechina      EducationLevel = "mechina"
	EducationFirstDegree  EducationLevel = "first-degree"
	EducationSecondDegree EducationLevel = "second-degree"
	EducationOther        EducationLevel = "other"
)

// StudentProfile is everything a client tells us about a student.
// Identity fields and hobbies are stored but never scored.
type StudentProfile struct {
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName" yaml:"lastName"`
	Email     string `json:"email" yaml:"email"`
	Phone     string `json:"phone" yaml:"phone"`

	ResidenceArea Region `json:"residenceArea" yaml:"residenceArea"`

	BagrutAverage     *float64 `json:"bagrutAverage" yaml:"bagrutAverage"`         // nil means no constraint
	PsychometricScore *float64 `json:"psychometricScore" yaml:"psychometricScore"` // nil means no constraint
	HasMechina        bool     `json:"hasMechina" yaml:"hasMechina"`
	MechinaDetails    string   `json:"mechinaDetails" yaml:"mechinaDetails"`

	CurrentEducation EducationLevel `json:"currentEducation" yaml:"currentEducation"`

	DesiredField []string    `json:"desiredField" yaml:"desiredField"`
	Hobbies      []string    `json:"hobbies" yaml:"hobbies"`
	StudyTime    StudyTime   `json:"studyTime" yaml:"studyTime"`
	Budget       BudgetTier  `json:"budget" yaml:"budget"`
	StudyFormat  StudyFormat `json:"studyFormat" yaml:"studyFormat"`
}

// DefaultProfile returns the empty profile a new client starts with
func DefaultProfile() StudentProfile {
	return StudentProfile{
		DesiredField: []string{},
		Hobbies:      []string{},
	}
}

// IsComplete reports whether the profile carries enough to be worth matching.
// This is a policy of the calling layer; the matching engine accepts any profile.
func (p StudentProfile) IsComplete() bool {
	return p.FirstName != "" &&
		p.ResidenceArea != "" &&
		len(p.DesiredField) > 0 &&
		p.StudyTime != "" &&
		p.Budget != "" &&
		p.StudyFormat != ""
}

// Clone returns a deep copy so callers can mutate the result freely
func (p StudentProfile) Clone() StudentProfile {
	out := p
	out.BagrutAverage = copyScore(p.BagrutAverage)
	out.PsychometricScore = copyScore(p.PsychometricScore)
	out.DesiredField = append([]string{}, p.DesiredField...)
	out.Hobbies = append([]string{}, p.Hobbies...)
	return out
}

// OptionalScore is a patch value for a nullable score. It distinguishes an
// absent key (Set false) from an explicit null (Set true, Value nil).
type OptionalScore struct {
	Set   bool
	Value *float64
}

// UnmarshalJSON records that the key was present, including for null
func (o *OptionalScore) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// ProfilePatch is a partial profile update. Nil fields are left unchanged.
type ProfilePatch struct {
	FirstName         *string         `json:"firstName"`
	LastName          *string         `json:"lastName"`
	Email             *string         `json:"email"`
	Phone             *string         `json:"phone"`
	ResidenceArea     *Region         `json:"residenceArea"`
	BagrutAverage     OptionalScore   `json:"bagrutAverage"`
	PsychometricScore OptionalScore   `json:"psychometricScore"`
	HasMechina        *bool           `json:"hasMechina"`
	MechinaDetails    *string         `json:"mechinaDetails"`
	CurrentEducation  *EducationLevel `json:"currentEducation"`
	DesiredField      *[]string       `json:"desiredField"`
	Hobbies           *[]string       `json:"hobbies"`
	StudyTime         *StudyTime      `json:"studyTime"`
	Budget            *BudgetTier     `json:"budget"`
	StudyFormat       *StudyFormat    `json:"studyFormat"`
}

// Apply returns a copy of p with the patch's non-nil fields written over it
func (patch ProfilePatch) Apply(p StudentProfile) StudentProfile {
	out := p.Clone()
	if patch.FirstName != nil {
		out.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		out.LastName = *patch.LastName
	}
	if patch.Email != nil {
		out.Email = *patch.Email
	}
	if patch.Phone != nil {
		out.Phone = *patch.Phone
	}
	if patch.ResidenceArea != nil {
		out.ResidenceArea = *patch.ResidenceArea
	}
	if patch.BagrutAverage.Set {
		out.BagrutAverage = copyScore(patch.BagrutAverage.Value)
	}
	if patch.PsychometricScore.Set {
		out.PsychometricScore = copyScore(patch.PsychometricScore.Value)
	}
	if patch.HasMechina != nil {
		out.HasMechina = *patch.HasMechina
	}
	if patch.MechinaDetails != nil {
		out.MechinaDetails = *patch.MechinaDetails
	}
	if patch.CurrentEducation != nil {
		out.CurrentEducation = *patch.CurrentEducation
	}
	if patch.DesiredField != nil {
		out.DesiredField = append([]string{}, (*patch.DesiredField)...)
	}
	if patch.Hobbies != nil {
		out.Hobbies = append([]string{}, (*patch.Hobbies)...)
	}
	if patch.StudyTime != nil {
		out.StudyTime = *patch.StudyTime
	}
	if patch.Budget != nil {
		out.Budget = *patch.Budget
	}
	if patch.StudyFormat != nil {
		out.StudyFormat = *patch.StudyFormat
	}
	return out
}

func copyScore(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
