package rest

import (
	"context"
	"net/http"
	"time"

	"telcoReco/business/reco"
	"telcoReco/domain"
	"telcoReco/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type RecommendationService interface {
	GetByUser(ctx context.Context, userID uint) ([]domain.Recommendation, error)
	TriggerRegeneration(userID uint, trigger string)
	ScorerHealthy(ctx context.Context) bool
}

type RecommendationHandler struct {
	recoService RecommendationService
	timeout     time.Duration
}

func NewRecommendationHandler(recoService RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		recoService: recoService,
		timeout:     10 * time.Second,
	}
}

// GetMyRecommendations returns the logged-in user's current
// recommendation set, highest score first. An empty list means no
// regeneration has completed yet.
func (h *RecommendationHandler) GetMyRecommendations(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recommendations, err := h.recoService.GetByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to get recommendations", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recommendations))
}

// Refresh queues a regeneration for the logged-in user and returns
// immediately. The new set becomes visible once the background run
// completes.
func (h *RecommendationHandler) Refresh(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	h.recoService.TriggerRegeneration(userID, reco.TriggerRefresh)

	return c.JSON(http.StatusAccepted, map[string]interface{}{
		"message": "Recommendation refresh queued",
	})
}

// MLHealth reports whether the scoring backend is reachable.
func (h *RecommendationHandler) MLHealth(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	healthy := h.recoService.ScorerHealthy(ctx)

	status := "healthy"
	code := http.StatusOK
	if !healthy {
		status = "unreachable"
		code = http.StatusServiceUnavailable
	}

	return c.JSON(code, map[string]interface{}{
		"status": status,
	})
}
