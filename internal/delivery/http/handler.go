package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/unimatch/backend/internal/domain"
	"github.com/unimatch/backend/internal/usecase"
)

// Version is reported by the health check
var Version = "1.0.0"

// Handler holds dependencies for HTTP handlers
type Handler struct {
	profiles *usecase.ProfileService
	matches  *usecase.MatchService
	catalog  domain.CatalogRepository
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	profiles *usecase.ProfileService,
	matches *usecase.MatchService,
	catalog domain.CatalogRepository,
	logger *zap.Logger,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		profiles: profiles,
		matches:  matches,
		catalog:  catalog,
		logger:   logger,
	}
}

type swipeRequest struct {
	InstitutionID string                `json:"institutionId"`
	Direction     domain.SwipeDirection `json:"direction"`
}

type likesResponse struct {
	Likes []string `json:"likes"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "unimatch-backend",
		"version": Version,
	})
}

// CreateClient issues a fresh client identifier
func (h *Handler) CreateClient(c *gin.Context) {
	c.JSON(http.StatusCreated, gin.H{"clientId": uuid.NewString()})
}

// GetProfile returns the stored profile and whether it is complete enough to match
func (h *Handler) GetProfile(c *gin.Context) {
	view, err := h.profiles.View(c.Request.Context(), c.Param("clientId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ReplaceProfile overwrites the client's profile with the request body
func (h *Handler) ReplaceProfile(c *gin.Context) {
	var profile domain.StudentProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		h.respondError(c, invalidBody(err))
		return
	}

	view, err := h.profiles.Replace(c.Request.Context(), c.Param("clientId"), profile)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// PatchProfile merges the fields present in the body into the stored profile
func (h *Handler) PatchProfile(c *gin.Context) {
	var patch domain.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.respondError(c, invalidBody(err))
		return
	}

	view, err := h.profiles.Patch(c.Request.Context(), c.Param("clientId"), patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ResetProfile clears the profile. Likes are kept.
func (h *Handler) ResetProfile(c *gin.Context) {
	if err := h.profiles.Reset(c.Request.Context(), c.Param("clientId")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetMatches ranks the catalog for the client's stored profile
func (h *Handler) GetMatches(c *gin.Context) {
	matches, err := h.matches.Matches(c.Request.Context(), c.Param("clientId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches, "count": len(matches)})
}

// Swipe records a like or skip for one institution
func (h *Handler) Swipe(c *gin.Context) {
	var req swipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, invalidBody(err))
		return
	}

	likes, err := h.matches.Swipe(c.Request.Context(), c.Param("clientId"), req.InstitutionID, req.Direction)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, likesResponse{Likes: likes})
}

// GetLikes lists the institutions the client has liked
func (h *Handler) GetLikes(c *gin.Context) {
	institutions, err := h.profiles.Likes(c.Request.Context(), c.Param("clientId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"institutions": institutions, "count": len(institutions)})
}

// ToggleLike adds or removes an institution from the client's likes
func (h *Handler) ToggleLike(c *gin.Context) {
	likes, err := h.profiles.ToggleLike(c.Request.Context(), c.Param("clientId"), c.Param("institutionId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, likesResponse{Likes: likes})
}

// ListInstitutions returns the full catalog
func (h *Handler) ListInstitutions(c *gin.Context) {
	institutions, err := h.catalog.All(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"institutions": institutions, "count": len(institutions)})
}

// GetInstitution returns a single institution by ID
func (h *Handler) GetInstitution(c *gin.Context) {
	inst, err := h.catalog.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inst)
}

// ScoreProfile ranks the catalog for a profile posted in the body. Nothing is stored.
func (h *Handler) ScoreProfile(c *gin.Context) {
	var profile domain.StudentProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		h.respondError(c, invalidBody(err))
		return
	}

	matches, err := h.matches.Score(c.Request.Context(), profile)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches, "count": len(matches)})
}

func invalidBody(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
}

// respondError maps domain errors to status codes. Unknown errors are logged and hidden.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		msg = "internal server error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidClientID),
		errors.Is(err, domain.ErrInvalidSwipe),
		errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInstitutionNotFound),
		errors.Is(err, domain.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrProfileIncomplete):
		return http.StatusConflict
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
