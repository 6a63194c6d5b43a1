package reco

import (
	"context"
	"errors"
	"fmt"
	"time"

	"telcoReco/domain"
	"telcoReco/pkg/logger"
	"telcoReco/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Run state machine. A run moves forward only; any failure goes to FAILED and
// the previous recommendation set is left untouched.
const (
	StateIdle         = "IDLE"
	StateSnapshotting = "SNAPSHOTTING"
	StateScoring      = "SCORING"
	StateResolving    = "RESOLVING"
	StatePersisting   = "PERSISTING"
	StateFailed       = "FAILED"
)

// ---- Repository interfaces ----

type BehaviorRepository interface {
	FindByUserID(ctx context.Context, userID uint) (domain.UserBehavior, error)
}

type ProductRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
}

type RecommendationRepository interface {
	// Replace atomically swaps the user's full recommendation set.
	Replace(ctx context.Context, userID uint, items []domain.Recommendation) error
	GetByUser(ctx context.Context, userID uint) ([]domain.Recommendation, error)
}

// ScoringGateway is the I/O contract with the external scorer. The gateway
// does no retries; a fresh trigger is the only retry path.
type ScoringGateway interface {
	Score(ctx context.Context, snapshot domain.FeatureSnapshot) ([]domain.ScoredOffer, error)
	Health(ctx context.Context) bool
}

// ---- Usecase / Service ----

type Service struct {
	behaviorRepo BehaviorRepository
	productRepo  ProductRepository
	recoRepo     RecommendationRepository
	scorer       ScoringGateway
	resolver     *Resolver
	validate     *validator.Validate
	coordinator  *Coordinator
}

const defaultRunTimeout = 45 * time.Second

func NewService(
	behaviorRepo BehaviorRepository,
	productRepo ProductRepository,
	recoRepo RecommendationRepository,
	scorer ScoringGateway,
	validate *validator.Validate,
) *Service {
	s := &Service{
		behaviorRepo: behaviorRepo,
		productRepo:  productRepo,
		recoRepo:     recoRepo,
		scorer:       scorer,
		resolver:     NewResolver(),
		validate:     validate,
	}
	s.coordinator = NewCoordinator(s.runRegeneration, defaultRunTimeout)
	return s
}

// TriggerRegeneration schedules an asynchronous regeneration run for the
// user. Never blocks; failures inside the run never surface to the caller.
func (s *Service) TriggerRegeneration(userID uint, trigger string) {
	s.coordinator.Trigger(userID, trigger)
}

// Shutdown waits for in-flight regeneration runs to drain.
func (s *Service) Shutdown() {
	s.coordinator.Wait()
}

// GetByUser returns the user's current recommendation set ordered by score
// descending. A user with no recommendations yet gets an empty list.
func (s *Service) GetByUser(ctx context.Context, userID uint) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	recs, err := s.recoRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []domain.Recommendation{}
	}

	return recs, nil
}

// ScorerHealthy reports scorer fitness as a boolean instead of failing hard.
func (s *Service) ScorerHealthy(ctx context.Context) bool {
	return s.scorer.Health(ctx)
}

// Regenerate drives one synchronous end-to-end refresh cycle:
// snapshot -> score -> resolve -> persist. All-or-nothing: Replace is only
// reached when every earlier step succeeded.
func (s *Service) Regenerate(ctx context.Context, userID uint, trigger string) error {
	runID := uuid.NewString()
	started := time.Now()
	state := StateIdle

	enter := func(next string) {
		state = next
		logger.Debug("regeneration_state", "run_id", runID, "user_id", userID, "state", state)
	}

	fail := func(outcome string, err error) error {
		logger.Error("regeneration_failed",
			"run_id", runID,
			"user_id", userID,
			"trigger", trigger,
			"state", state,
			"outcome", StateFailed,
			"error", err,
		)
		metrics.RegenerationRunsTotal.WithLabelValues(outcome).Inc()
		return err
	}

	// 1) snapshot
	enter(StateSnapshotting)
	profile, err := s.behaviorRepo.FindByUserID(ctx, userID)
	if err != nil {
		return fail("validation_error", fmt.Errorf("%w: no behavior profile: %v", domain.ErrValidation, err))
	}

	snapshot, err := BuildSnapshot(s.validate, profile)
	if err != nil {
		return fail("validation_error", err)
	}

	// 2) score
	enter(StateScoring)
	offers, err := s.scorer.Score(ctx, snapshot)
	if err != nil {
		return fail("scoring_error", err)
	}

	// 3) resolve
	enter(StateResolving)
	catalog, err := s.productRepo.FindAll(ctx)
	if err != nil || len(catalog) == 0 {
		// Cannot map offers onto products; abort quietly and keep the prior
		// set so a later trigger can retry against a healthy catalog.
		logger.Warn("regeneration_skipped_empty_catalog",
			"run_id", runID,
			"user_id", userID,
			"error", err,
		)
		metrics.RegenerationRunsTotal.WithLabelValues("empty_catalog").Inc()
		return nil
	}

	items := make([]domain.Recommendation, 0, len(offers))
	for _, offer := range offers {
		productID, tier := s.resolver.Resolve(offer.Offer, catalog)
		if tier == TierFallback {
			logger.Warn("offer_resolved_low_confidence",
				"run_id", runID,
				"user_id", userID,
				"offer", offer.Offer,
				"product_id", productID,
			)
			metrics.ResolverFallbackTotal.Inc()
		}

		items = append(items, domain.Recommendation{
			UserID:    userID,
			ProductID: productID,
			Score:     offer.Score / 100,
			// reason comes from the original scorer label, not the resolved
			// catalog name
			Reason: GenerateReason(offer.Offer, snapshot),
		})
	}

	// 4) persist
	enter(StatePersisting)
	if err := s.recoRepo.Replace(ctx, userID, items); err != nil {
		return fail("persistence_error", fmt.Errorf("failed to replace recommendations: %w", err))
	}

	metrics.RegenerationRunsTotal.WithLabelValues("success").Inc()
	metrics.RegenerationDuration.Observe(time.Since(started).Seconds())

	logger.Info("regeneration_completed",
		"run_id", runID,
		"user_id", userID,
		"trigger", trigger,
		"items", len(items),
		"duration_ms", time.Since(started).Milliseconds(),
	)

	return nil
}

// runRegeneration adapts Regenerate to the coordinator. Errors are already
// logged per step; a fresh trigger is the only retry path.
func (s *Service) runRegeneration(ctx context.Context, userID uint, trigger string) {
	err := s.Regenerate(ctx, userID, trigger)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		logger.Error("regeneration_run_deadline", "user_id", userID, "trigger", trigger)
	}
}
