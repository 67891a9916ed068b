package domain

// InstitutionType is the kind of academic institution
type InstitutionType string

const (
	InstitutionUniversity InstitutionType = "university"
	InstitutionCollege    InstitutionType = "college"
	InstitutionMechina    InstitutionType = "mechina"
)

// Institution is a read-only catalog entry
type Institution struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Logo            string          `json:"logo,omitempty"`
	Type            InstitutionType `json:"type"`
	Location        string          `json:"location,omitempty"`
	Area            Region          `json:"area"`
	Description     string          `json:"description,omitempty"`
	Fields          []string        `json:"fields"`
	StudyFormats    []StudyFormat   `json:"studyFormats"`
	StudyTimes      []StudyTime     `json:"studyTimes"`
	TuitionRange    BudgetTier      `json:"tuitionRange"`
	MinBagrut       float64         `json:"minBagrut"`       // 0 means no requirement
	MinPsychometric float64         `json:"minPsychometric"` // 0 means no requirement
	AcceptsMechina  bool            `json:"acceptsMechina"`
	Rating          float64         `json:"rating,omitempty"`
	StudentsCount   int             `json:"studentsCount,omitempty"`
}

// ScoredInstitution is an institution annotated with its match result
type ScoredInstitution struct {
	Institution
	MatchScore   int      `json:"matchScore"`   // 1-100 for anything returned by the engine
	MatchReasons []string `json:"matchReasons"` // in the order the scoring rules fired
}

// SwipeDirection is the client's verdict on a presented match
type SwipeDirection string

const (
	SwipeLike SwipeDirection = "like"
	SwipeSkip SwipeDirection = "skip"
)

// Valid reports whether d is a known direction
func (d SwipeDirection) Valid() bool {
	return d == SwipeLike || d == SwipeSkip
}
