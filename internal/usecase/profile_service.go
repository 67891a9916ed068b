package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/unimatch/backend/internal/domain"
	"github.com/unimatch/backend/internal/infrastructure/metrics"
)

var clientIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// ValidateClientID rejects empty, oversized or non-URL-safe identifiers
func ValidateClientID(clientID string) error {
	if !clientIDPattern.MatchString(clientID) {
		return domain.ErrInvalidClientID
	}
	return nil
}

// ProfileView is a profile together with its completeness
type ProfileView struct {
	Profile  domain.StudentProfile `json:"profile"`
	Complete bool                  `json:"complete"`
}

// ProfileService owns a client's profile and liked institutions
type ProfileService struct {
	store      domain.ProfileStore
	catalog    domain.CatalogRepository
	normalizer *ProfileNormalizer
	logger     *zap.Logger
	metrics    *metrics.Metrics

	// serializes read-modify-write of likes within this process
	likesMu sync.Mutex
}

// NewProfileService creates a profile service with dependencies
func NewProfileService(
	store domain.ProfileStore,
	catalog domain.CatalogRepository,
	normalizer *ProfileNormalizer,
	logger *zap.Logger,
	m *metrics.Metrics,
) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if normalizer == nil {
		normalizer = NewProfileNormalizer(logger, false)
	}
	return &ProfileService{
		store:      store,
		catalog:    catalog,
		normalizer: normalizer,
		logger:     logger.Named("profile"),
		metrics:    m,
	}
}

// Get returns the stored profile, or the default empty profile for a new client
func (s *ProfileService) Get(ctx context.Context, clientID string) (domain.StudentProfile, error) {
	if err := ValidateClientID(clientID); err != nil {
		return domain.StudentProfile{}, err
	}

	p, err := s.store.GetProfile(ctx, clientID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		return domain.DefaultProfile(), nil
	}
	if err != nil {
		return domain.StudentProfile{}, err
	}
	return *p, nil
}

// View is Get plus the completeness flag
func (s *ProfileService) View(ctx context.Context, clientID string) (ProfileView, error) {
	p, err := s.Get(ctx, clientID)
	if err != nil {
		return ProfileView{}, err
	}
	return ProfileView{Profile: p, Complete: p.IsComplete()}, nil
}

// Replace normalizes and stores p in place of whatever the client had
func (s *ProfileService) Replace(ctx context.Context, clientID string, p domain.StudentProfile) (ProfileView, error) {
	if err := ValidateClientID(clientID); err != nil {
		return ProfileView{}, err
	}

	normalized, err := s.normalizer.Normalize(p)
	if err != nil {
		return ProfileView{}, err
	}
	if err := s.store.SaveProfile(ctx, clientID, &normalized); err != nil {
		return ProfileView{}, err
	}

	s.metrics.IncProfileWrite("replace")
	s.logger.Debug("profile replaced", zap.String("client_id", clientID))
	return ProfileView{Profile: normalized, Complete: normalized.IsComplete()}, nil
}

// Patch merges the present fields of patch into the stored profile
func (s *ProfileService) Patch(ctx context.Context, clientID string, patch domain.ProfilePatch) (ProfileView, error) {
	current, err := s.Get(ctx, clientID)
	if err != nil {
		return ProfileView{}, err
	}

	normalized, err := s.normalizer.Normalize(patch.Apply(current))
	if err != nil {
		return ProfileView{}, err
	}
	if err := s.store.SaveProfile(ctx, clientID, &normalized); err != nil {
		return ProfileView{}, err
	}

	s.metrics.IncProfileWrite("patch")
	s.logger.Debug("profile patched", zap.String("client_id", clientID))
	return ProfileView{Profile: normalized, Complete: normalized.IsComplete()}, nil
}

// Reset drops the stored profile. Likes are kept.
func (s *ProfileService) Reset(ctx context.Context, clientID string) error {
	if err := ValidateClientID(clientID); err != nil {
		return err
	}
	if err := s.store.DeleteProfile(ctx, clientID); err != nil {
		return err
	}

	s.metrics.IncProfileWrite("reset")
	s.logger.Debug("profile reset", zap.String("client_id", clientID))
	return nil
}

// LikedIDs returns liked institution IDs in the order they were liked
func (s *ProfileService) LikedIDs(ctx context.Context, clientID string) ([]string, error) {
	if err := ValidateClientID(clientID); err != nil {
		return nil, err
	}
	return s.store.GetLikes(ctx, clientID)
}

// Likes resolves liked IDs to catalog entries. IDs no longer in the catalog are skipped.
func (s *ProfileService) Likes(ctx context.Context, clientID string) ([]domain.Institution, error) {
	ids, err := s.LikedIDs(ctx, clientID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Institution, 0, len(ids))
	for _, id := range ids {
		inst, err := s.catalog.ByID(ctx, id)
		if errors.Is(err, domain.ErrInstitutionNotFound) {
			s.logger.Debug("liked institution left the catalog", zap.String("institution_id", id))
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *inst)
	}
	return out, nil
}

// ToggleLike adds institutionID to the liked list, or removes it if present.
// Adding an ID unknown to the catalog fails with ErrInstitutionNotFound.
func (s *ProfileService) ToggleLike(ctx context.Context, clientID, institutionID string) ([]string, error) {
	return s.updateLikes(ctx, clientID, institutionID, func(ids []string) []string {
		if i := slices.Index(ids, institutionID); i >= 0 {
			return slices.Delete(ids, i, i+1)
		}
		return append(ids, institutionID)
	})
}

// Like adds institutionID to the liked list if it is not already there
func (s *ProfileService) Like(ctx context.Context, clientID, institutionID string) ([]string, error) {
	return s.updateLikes(ctx, clientID, institutionID, func(ids []string) []string {
		if slices.Contains(ids, institutionID) {
			return ids
		}
		return append(ids, institutionID)
	})
}

func (s *ProfileService) updateLikes(ctx context.Context, clientID, institutionID string, update func([]string) []string) ([]string, error) {
	if err := ValidateClientID(clientID); err != nil {
		return nil, err
	}
	if institutionID == "" {
		return nil, fmt.Errorf("%w: institution id is required", domain.ErrInvalidRequest)
	}

	s.likesMu.Lock()
	defer s.likesMu.Unlock()

	ids, err := s.store.GetLikes(ctx, clientID)
	if err != nil {
		return nil, err
	}

	updated := update(slices.Clone(ids))
	if len(updated) > len(ids) {
		if _, err := s.catalog.ByID(ctx, institutionID); err != nil {
			return nil, err
		}
	}
	if slices.Equal(updated, ids) {
		return updated, nil
	}

	if err := s.store.SaveLikes(ctx, clientID, updated); err != nil {
		return nil, err
	}
	return updated, nil
}
