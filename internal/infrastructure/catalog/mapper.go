package catalog

import (
	"fmt"
	"strings"

	"github.com/unimatch/backend/internal/domain"
)

// document is the on-disk catalog layout
type document struct {
	Institutions []record `yaml:"institutions" json:"institutions"`
}

// record is one institution as written in a catalog document
type record struct {
	ID              string   `yaml:"id" json:"id"`
	Name            string   `yaml:"name" json:"name"`
	Logo            string   `yaml:"logo" json:"logo"`
	Type            string   `yaml:"type" json:"type"`
	Location        string   `yaml:"location" json:"location"`
	Area            string   `yaml:"area" json:"area"`
	Description     string   `yaml:"description" json:"description"`
	Fields          []string `yaml:"fields" json:"fields"`
	StudyFormats    []string `yaml:"studyFormats" json:"studyFormats"`
	StudyTimes      []string `yaml:"studyTimes" json:"studyTimes"`
	TuitionRange    string   `yaml:"tuitionRange" json:"tuitionRange"`
	MinBagrut       float64  `yaml:"minBagrut" json:"minBagrut"`
	MinPsychometric float64  `yaml:"minPsychometric" json:"minPsychometric"`
	AcceptsMechina  bool     `yaml:"acceptsMechina" json:"acceptsMechina"`
	Rating          float64  `yaml:"rating" json:"rating"`
	StudentsCount   int      `yaml:"studentsCount" json:"studentsCount"`
}

// mapInstitutions converts document records to domain institutions, keeping
// document order and rejecting duplicate IDs.
func mapInstitutions(records []record) ([]domain.Institution, error) {
	seen := make(map[string]bool, len(records))
	out := make([]domain.Institution, 0, len(records))

	for _, r := range records {
		if seen[r.ID] {
			return nil, fmt.Errorf("%w: duplicate institution id %q", domain.ErrCatalogInvalid, r.ID)
		}
		seen[r.ID] = true
		out = append(out, mapRecord(r))
	}

	return out, nil
}

func mapRecord(r record) domain.Institution {
	inst := domain.Institution{
		ID:              r.ID,
		Name:            cleanLabel(r.Name),
		Logo:            r.Logo,
		Type:            domain.InstitutionType(r.Type),
		Location:        r.Location,
		Area:            domain.Region(r.Area),
		Description:     strings.TrimSpace(r.Description),
		Fields:          cleanLabels(r.Fields),
		StudyFormats:    make([]domain.StudyFormat, 0, len(r.StudyFormats)),
		StudyTimes:      make([]domain.StudyTime, 0, len(r.StudyTimes)),
		TuitionRange:    domain.BudgetTier(r.TuitionRange),
		MinBagrut:       r.MinBagrut,
		MinPsychometric: r.MinPsychometric,
		AcceptsMechina:  r.AcceptsMechina,
		Rating:          r.Rating,
		StudentsCount:   r.StudentsCount,
	}
	for _, f := range r.StudyFormats {
		inst.StudyFormats = append(inst.StudyFormats, domain.StudyFormat(f))
	}
	for _, t := range r.StudyTimes {
		inst.StudyTimes = append(inst.StudyTimes, domain.StudyTime(t))
	}
	return inst
}

// cleanLabel trims s and collapses inner whitespace runs to a single space,
// the same cleanup profiles get before matching.
func cleanLabel(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func cleanLabels(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, cleanLabel(s))
	}
	return out
}
