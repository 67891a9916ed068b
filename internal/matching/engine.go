// Package matching ranks catalog institutions against a student profile.
//
// The engine is a pure function: it performs no I/O, holds no state and
// never fails. Every institution is scored independently with a fixed
// additive rubric, normalized to 0-100 and sorted best first.
package matching

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/unimatch/backend/internal/domain"
)

// Rubric weights
const (
	fieldPointsPerMatch = 15
	fieldPointsCap      = 40
	academicFullPoints  = 20
	academicPartPoints  = 10
	academicMissPenalty = -10
	mechinaPoints       = 10
	locationPoints      = 15
	studyTimePoints     = 10
	studyFormatPoints   = 10
	budgetPoints        = 10
)

// MaxRawScore is the highest raw score the rubric can produce and the
// denominator of normalization.
const MaxRawScore = fieldPointsCap + academicFullPoints + mechinaPoints +
	locationPoints + studyTimePoints + studyFormatPoints + budgetPoints

// Reason texts
const (
	ReasonMeetsRequirements     = "meets admission requirements"
	ReasonMeetsSomeRequirements = "meets some admission requirements"
	ReasonMayNotMeet            = "may not meet admission requirements"
	ReasonAcceptsMechina        = "accepts preparatory-program graduates"
	ReasonNearResidence         = "near your residence area"
	ReasonWithinBudget          = "within your budget"
	reasonFieldsPrefix          = "matching fields: "
)

// areaMap maps a student's residence region to the institution areas
// considered near it. Shfela sits between center and south.
var areaMap = map[domain.Region][]domain.Region{
	domain.RegionNorth:     {domain.RegionNorth},
	domain.RegionHaifa:     {domain.RegionNorth},
	domain.RegionCenter:    {domain.RegionCenter},
	domain.RegionTelAviv:   {domain.RegionCenter},
	domain.RegionJerusalem: {domain.RegionJerusalem},
	domain.RegionSouth:     {domain.RegionSouth},
	domain.RegionSharon:    {domain.RegionCenter},
	domain.RegionShfela:    {domain.RegionCenter, domain.RegionSouth},
}

// Result is the scoring outcome for a single institution
type Result struct {
	Raw     int      // accumulated rubric points, may be negative
	Score   int      // normalized 0-100
	Reasons []string // in rule order
	Matched []string // desired fields the institution offers
}

// ComputeMatches scores every institution in catalog against profile and
// returns the ones with a positive score, best first. Equal scores keep
// catalog order.
func ComputeMatches(profile domain.StudentProfile, catalog []domain.Institution) []domain.ScoredInstitution {
	matches := make([]domain.ScoredInstitution, 0, len(catalog))
	for _, inst := range catalog {
		res, ok := Score(profile, inst)
		if !ok {
			continue
		}
		matches = append(matches, domain.ScoredInstitution{
			Institution:  inst,
			MatchScore:   res.Score,
			MatchReasons: res.Reasons,
		})
	}

	slices.SortStableFunc(matches, func(a, b domain.ScoredInstitution) int {
		return cmp.Compare(b.MatchScore, a.MatchScore)
	})
	return matches
}

// Score applies the rubric to a single institution. ok is false when the
// institution is excluded, either because no desired field overlaps or
// because the normalized score is zero.
func Score(profile domain.StudentProfile, inst domain.Institution) (res Result, ok bool) {
	res.Matched = overlap(profile.DesiredField, inst.Fields)
	if len(res.Matched) == 0 {
		return Result{}, false
	}

	raw := min(fieldPointsCap, len(res.Matched)*fieldPointsPerMatch)
	res.Reasons = append(res.Reasons, reasonFieldsPrefix+strings.Join(res.Matched, ", "))

	bagrutOk := profile.BagrutAverage == nil || *profile.BagrutAverage >= inst.MinBagrut
	psychOk := profile.PsychometricScore == nil || *profile.PsychometricScore >= inst.MinPsychometric
	switch {
	case bagrutOk && psychOk:
		raw += academicFullPoints
		res.Reasons = append(res.Reasons, ReasonMeetsRequirements)
	case bagrutOk || psychOk:
		raw += academicPartPoints
		res.Reasons = append(res.Reasons, ReasonMeetsSomeRequirements)
	default:
		raw += academicMissPenalty
		res.Reasons = append(res.Reasons, ReasonMayNotMeet)
	}

	if profile.HasMechina && inst.AcceptsMechina {
		raw += mechinaPoints
		res.Reasons = append(res.Reasons, ReasonAcceptsMechina)
	}

	if slices.Contains(areaMap[profile.ResidenceArea], inst.Area) {
		raw += locationPoints
		res.Reasons = append(res.Reasons, ReasonNearResidence)
	}

	if profile.StudyTime != "" && slices.Contains(inst.StudyTimes, profile.StudyTime) {
		raw += studyTimePoints
		res.Reasons = append(res.Reasons, studyTimeReason(profile.StudyTime))
	}

	if profile.StudyFormat != "" && slices.Contains(inst.StudyFormats, profile.StudyFormat) {
		raw += studyFormatPoints
		res.Reasons = append(res.Reasons, studyFormatReason(profile.StudyFormat))
	}

	// Unknown tiers index as -1, so an institution with an unknown tier is
	// always treated as affordable.
	if profile.Budget != "" && inst.TuitionRange.Index() <= profile.Budget.Index() {
		raw += budgetPoints
		res.Reasons = append(res.Reasons, ReasonWithinBudget)
	}

	res.Raw = raw
	res.Score = Normalize(raw)
	if res.Score == 0 {
		return Result{}, false
	}
	return res, true
}

// Normalize rescales a raw rubric score to 0-100, rounding halves up
func Normalize(raw int) int {
	clamped := max(0, min(raw, MaxRawScore))
	scaled := math.Floor(float64(clamped)/float64(MaxRawScore)*100 + 0.5)
	return max(0, min(int(scaled), 100))
}

// overlap returns the desired fields offered by the institution, deduplicated,
// in the order the student listed them.
func overlap(desired, offered []string) []string {
	var matched []string
	for _, f := range desired {
		if slices.Contains(offered, f) && !slices.Contains(matched, f) {
			matched = append(matched, f)
		}
	}
	return matched
}

// studyTimeReason words the time-of-day reason. Anything other than morning
// or evening reads as flexible.
func studyTimeReason(t domain.StudyTime) string {
	switch t {
	case domain.StudyTimeMorning:
		return "morning classes available"
	case domain.StudyTimeEvening:
		return "evening classes available"
	default:
		return "flexible hours"
	}
}

func studyFormatReason(f domain.StudyFormat) string {
	switch f {
	case domain.StudyFormatFrontal:
		return "frontal studies"
	case domain.StudyFormatOnline:
		return "online studies"
	default:
		return "hybrid studies"
	}
}
