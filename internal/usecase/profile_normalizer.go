package usecase

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/unimatch/backend/internal/domain"
)

var multiSpacePattern = regexp.MustCompile(`\s+`)

var (
	knownRegions = map[domain.Region]bool{
		domain.RegionNorth: true, domain.RegionHaifa: true, domain.RegionCenter: true, domain.RegionTelAviv: true,
		domain.RegionJerusalem: true, domain.RegionSouth: true, domain.RegionSharon: true, domain.RegionShfela: true,
	}
	knownStudyTimes = map[domain.StudyTime]bool{
		domain.StudyTimeMorning: true, domain.StudyTimeEvening: true, domain.StudyTimeFlexible: true,
	}
	knownStudyFormats = map[domain.StudyFormat]bool{
		domain.StudyFormatFrontal: true, domain.StudyFormatOnline: true, domain.StudyFormatHybrid: true,
	}
	knownEducation = map[domain.EducationLevel]bool{
		domain.EducationHighSchool: true, domain.EducationMechina: true, domain.EducationFirstDegree: true,
		domain.EducationSecondDegree: true, domain.EducationOther: true,
	}
)

const (
	maxBagrut       = 120
	maxPsychometric = 800
)

// ProfileNormalizer cleans client-supplied profiles before they are stored or scored
type ProfileNormalizer struct {
	logger *zap.Logger
	debug  bool
}

// NewProfileNormalizer creates a normalizer. Debug logging prints every change.
func NewProfileNormalizer(logger *zap.Logger, enableDebugLogging bool) *ProfileNormalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileNormalizer{logger: logger, debug: enableDebugLogging}
}

// Normalize returns a cleaned copy of p:
//   - free text is trimmed and inner whitespace collapsed
//   - enum codes are trimmed and lowercased, then checked against the known set
//   - desiredField and hobbies drop blanks and duplicates, keeping first occurrence
//
// Unknown codes and out-of-range scores yield ErrInvalidRequest.
func (n *ProfileNormalizer) Normalize(p domain.StudentProfile) (domain.StudentProfile, error) {
	out := p.Clone()

	out.FirstName = cleanText(out.FirstName)
	out.LastName = cleanText(out.LastName)
	out.Email = strings.ToLower(strings.TrimSpace(out.Email))
	out.Phone = strings.TrimSpace(out.Phone)
	out.MechinaDetails = cleanText(out.MechinaDetails)

	out.ResidenceArea = domain.Region(cleanCode(string(out.ResidenceArea)))
	out.StudyTime = domain.StudyTime(cleanCode(string(out.StudyTime)))
	out.StudyFormat = domain.StudyFormat(cleanCode(string(out.StudyFormat)))
	out.Budget = domain.BudgetTier(cleanCode(string(out.Budget)))
	out.CurrentEducation = domain.EducationLevel(cleanCode(string(out.CurrentEducation)))

	out.DesiredField = dedupLabels(out.DesiredField)
	out.Hobbies = dedupLabels(out.Hobbies)

	if err := validateProfile(out); err != nil {
		return domain.StudentProfile{}, err
	}

	if n.debug {
		n.logger.Debug("profile normalized",
			zap.Strings("desiredField", out.DesiredField),
			zap.String("residenceArea", string(out.ResidenceArea)),
			zap.String("budget", string(out.Budget)))
	}

	return out, nil
}

func validateProfile(p domain.StudentProfile) error {
	if p.ResidenceArea != "" && !knownRegions[p.ResidenceArea] {
		return fmt.Errorf("%w: unknown residenceArea %q", domain.ErrInvalidRequest, p.ResidenceArea)
	}
	if p.StudyTime != "" && !knownStudyTimes[p.StudyTime] {
		return fmt.Errorf("%w: unknown studyTime %q", domain.ErrInvalidRequest, p.StudyTime)
	}
	if p.StudyFormat != "" && !knownStudyFormats[p.StudyFormat] {
		return fmt.Errorf("%w: unknown studyFormat %q", domain.ErrInvalidRequest, p.StudyFormat)
	}
	if p.Budget != "" && p.Budget.Index() < 0 {
		return fmt.Errorf("%w: unknown budget %q", domain.ErrInvalidRequest, p.Budget)
	}
	if p.CurrentEducation != "" && !knownEducation[p.CurrentEducation] {
		return fmt.Errorf("%w: unknown currentEducation %q", domain.ErrInvalidRequest, p.CurrentEducation)
	}
	if p.BagrutAverage != nil && !finite(*p.BagrutAverage) {
		return fmt.Errorf("%w: bagrutAverage must be a finite number", domain.ErrInvalidRequest)
	}
	if p.PsychometricScore != nil && !finite(*p.PsychometricScore) {
		return fmt.Errorf("%w: psychometricScore must be a finite number", domain.ErrInvalidRequest)
	}
	if p.BagrutAverage != nil && (*p.BagrutAverage < 0 || *p.BagrutAverage > maxBagrut) {
		return fmt.Errorf("%w: bagrutAverage must be between 0 and %d", domain.ErrInvalidRequest, maxBagrut)
	}
	if p.PsychometricScore != nil && (*p.PsychometricScore < 0 || *p.PsychometricScore > maxPsychometric) {
		return fmt.Errorf("%w: psychometricScore must be between 0 and %d", domain.ErrInvalidRequest, maxPsychometric)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func cleanText(s string) string {
	return strings.TrimSpace(multiSpacePattern.ReplaceAllString(s, " "))
}

func cleanCode(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// dedupLabels trims labels and drops blanks and repeats.
// Comparison is exact after trimming; labels are matched verbatim against the catalog.
func dedupLabels(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = cleanText(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
