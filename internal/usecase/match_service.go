package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/unimatch/backend/internal/domain"
	"github.com/unimatch/backend/internal/infrastructure/metrics"
	"github.com/unimatch/backend/internal/matching"
)

// MatchView is a ranked institution as shown to one client
type MatchView struct {
	domain.ScoredInstitution
	Liked bool `json:"liked"`
}

// MatchServiceConfig holds configuration for the match service
type MatchServiceConfig struct {
	EnableDebugLogging bool
}

// MatchService ranks the catalog for a client and records swipes
type MatchService struct {
	profiles *ProfileService
	catalog  domain.CatalogRepository
	logger   *zap.Logger
	metrics  *metrics.Metrics
	debug    bool
}

// NewMatchService creates a match service with dependencies
func NewMatchService(
	profiles *ProfileService,
	catalog domain.CatalogRepository,
	logger *zap.Logger,
	m *metrics.Metrics,
	config MatchServiceConfig,
) *MatchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatchService{
		profiles: profiles,
		catalog:  catalog,
		logger:   logger.Named("match"),
		metrics:  m,
		debug:    config.EnableDebugLogging,
	}
}

// Matches ranks the catalog against the client's stored profile.
// Incomplete profiles are refused with ErrProfileIncomplete.
func (s *MatchService) Matches(ctx context.Context, clientID string) ([]MatchView, error) {
	profile, err := s.profiles.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !profile.IsComplete() {
		s.metrics.IncMatchRejected("incomplete")
		return nil, domain.ErrProfileIncomplete
	}

	scored, err := s.rank(ctx, profile)
	if err != nil {
		return nil, err
	}

	liked, err := s.profiles.LikedIDs(ctx, clientID)
	if err != nil {
		return nil, err
	}
	likedSet := make(map[string]bool, len(liked))
	for _, id := range liked {
		likedSet[id] = true
	}

	views := make([]MatchView, len(scored))
	for i, si := range scored {
		views[i] = MatchView{ScoredInstitution: si, Liked: likedSet[si.ID]}
	}
	return views, nil
}

// Score ranks the catalog for an ad hoc profile without touching any store
func (s *MatchService) Score(ctx context.Context, profile domain.StudentProfile) ([]domain.ScoredInstitution, error) {
	normalized, err := s.profiles.normalizer.Normalize(profile)
	if err != nil {
		return nil, err
	}
	return s.rank(ctx, normalized)
}

// Swipe records the client's verdict on an institution and returns the liked IDs.
// A like is idempotent; a skip leaves the liked list untouched.
func (s *MatchService) Swipe(ctx context.Context, clientID, institutionID string, direction domain.SwipeDirection) ([]string, error) {
	if err := ValidateClientID(clientID); err != nil {
		return nil, err
	}
	if !direction.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSwipe, direction)
	}
	if institutionID == "" {
		return nil, fmt.Errorf("%w: institution id is required", domain.ErrInvalidRequest)
	}
	if _, err := s.catalog.ByID(ctx, institutionID); err != nil {
		return nil, err
	}

	var (
		liked []string
		err   error
	)
	if direction == domain.SwipeLike {
		liked, err = s.profiles.Like(ctx, clientID, institutionID)
	} else {
		liked, err = s.profiles.LikedIDs(ctx, clientID)
	}
	if err != nil {
		return nil, err
	}

	s.metrics.IncSwipe(string(direction))
	if s.debug {
		s.logger.Debug("swipe recorded",
			zap.String("client_id", clientID),
			zap.String("institution_id", institutionID),
			zap.String("direction", string(direction)))
	}
	return liked, nil
}

func (s *MatchService) rank(ctx context.Context, profile domain.StudentProfile) ([]domain.ScoredInstitution, error) {
	institutions, err := s.catalog.All(ctx)
	if err != nil {
		return nil, err
	}

	scored := matching.ComputeMatches(profile, institutions)
	s.metrics.ObserveMatches(len(scored))

	if s.debug {
		for i, si := range scored {
			s.logger.Debug("match",
				zap.Int("rank", i+1),
				zap.String("institution_id", si.ID),
				zap.Int("score", si.MatchScore),
				zap.Strings("reasons", si.MatchReasons))
		}
	}
	return scored, nil
}
