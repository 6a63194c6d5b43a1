package mlscorer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"telcoReco/domain"
	"telcoReco/pkg/logger"
	"telcoReco/pkg/metrics"
)

type ScorerConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	HealthTimeout  time.Duration
}

// ScorerRepository is the HTTP client for the external ML scoring service.
// It performs no retries; retry policy belongs to whoever triggers a run.
type ScorerRepository struct {
	cfg    ScorerConfig
	client *http.Client
}

func NewScorerRepository(cfg ScorerConfig) *ScorerRepository {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.HealthTimeout <= 0 {
		cfg.HealthTimeout = 5 * time.Second
	}
	return &ScorerRepository{
		cfg:    cfg,
		client: &http.Client{},
	}
}

// Wire envelope of the scorer's predict endpoint.
type predictResponse struct {
	Status string `json:"status"`
	Data   struct {
		Prediction struct {
			Recommendations []domain.ScoredOffer `json:"recommendations"`
		} `json:"prediction"`
	} `json:"data"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// Score posts the feature snapshot and returns the scorer's ranked offers in
// response order.
func (r *ScorerRepository) Score(ctx context.Context, snapshot domain.FeatureSnapshot) ([]domain.ScoredOffer, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.RequestTimeout)
	defer cancel()

	body, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.BaseURL+"/api/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build scorer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := r.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			metrics.ScorerRequestsTotal.WithLabelValues("timeout").Inc()
			return nil, fmt.Errorf("%w: %v", domain.ErrScoringTimeout, err)
		}
		metrics.ScorerRequestsTotal.WithLabelValues("unavailable").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrScoringUnavailable, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		metrics.ScorerRequestsTotal.WithLabelValues("unavailable").Inc()
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrScoringUnavailable, err)
	}

	if res.StatusCode != http.StatusOK {
		metrics.ScorerRequestsTotal.WithLabelValues("unavailable").Inc()
		return nil, fmt.Errorf("%w: scorer returned status %d", domain.ErrScoringUnavailable, res.StatusCode)
	}

	var parsed predictResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		metrics.ScorerRequestsTotal.WithLabelValues("malformed").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrScoringMalformed, err)
	}

	if parsed.Status != "success" {
		metrics.ScorerRequestsTotal.WithLabelValues("unavailable").Inc()
		return nil, fmt.Errorf("%w: scorer status %q", domain.ErrScoringUnavailable, parsed.Status)
	}

	offers := parsed.Data.Prediction.Recommendations
	if offers == nil {
		metrics.ScorerRequestsTotal.WithLabelValues("malformed").Inc()
		return nil, fmt.Errorf("%w: missing recommendations list", domain.ErrScoringMalformed)
	}

	for _, o := range offers {
		if o.Offer == "" || o.Score < 0 || o.Score > 100 {
			metrics.ScorerRequestsTotal.WithLabelValues("malformed").Inc()
			return nil, fmt.Errorf("%w: offer %q score %.2f out of contract", domain.ErrScoringMalformed, o.Offer, o.Score)
		}
	}

	metrics.ScorerRequestsTotal.WithLabelValues("ok").Inc()
	return offers, nil
}

// Health reports scorer fitness as a boolean. A dead scorer is a false, never
// an error.
func (r *ScorerRepository) Health(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.HealthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.BaseURL+"/health", nil)
	if err != nil {
		return false
	}

	res, err := r.client.Do(req)
	if err != nil {
		logger.Debug("scorer health check failed", "error", err)
		return false
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return false
	}

	var parsed healthResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return false
	}

	return parsed.Status == "healthy"
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
