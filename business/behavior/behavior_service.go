package behavior

import (
	"context"
	"fmt"

	"telcoReco/domain"
	"telcoReco/pkg/logger"
)

// BehaviorRepository contract interface
type BehaviorRepository interface {
	Create(ctx context.Context, behavior *domain.UserBehavior) error
	FindByUserID(ctx context.Context, userID uint) (domain.UserBehavior, error)
	// Mutate loads the user's row under a row lock, applies fn and saves the
	// result in the same transaction.
	Mutate(ctx context.Context, userID uint, fn func(domain.UserBehavior) domain.UserBehavior) (domain.UserBehavior, error)
}

type Service struct {
	behaviorRepo BehaviorRepository
}

func NewService(behaviorRepo BehaviorRepository) *Service {
	return &Service{behaviorRepo: behaviorRepo}
}

// SeedDefault creates the starter behavior profile for a new user.
func (s *Service) SeedDefault(ctx context.Context, userID uint) (domain.UserBehavior, error) {
	seed := domain.UserBehavior{
		UserID:          userID,
		PlanType:        domain.PlanPrepaid,
		DeviceBrand:     "Unknown",
		AvgDataUsageGB:  1.0,
		PctVideoUsage:   0.3,
		AvgCallDuration: 5.0,
		SmsFreq:         10,
		MonthlySpend:    0,
		TopupFreq:       0,
		TravelScore:     0.1,
		ComplaintCount:  0,
		Balance:         0,
		DataRemainingGB: 0,
	}

	if err := s.behaviorRepo.Create(ctx, &seed); err != nil {
		return domain.UserBehavior{}, fmt.Errorf("failed to seed behavior profile: %w", err)
	}

	return seed, nil
}

func (s *Service) GetByUserID(ctx context.Context, userID uint) (domain.UserBehavior, error) {
	return s.behaviorRepo.FindByUserID(ctx, userID)
}

// ApplyPurchase commits the purchase side effects to the user's behavior row.
func (s *Service) ApplyPurchase(ctx context.Context, userID uint, product domain.Product) (domain.UserBehavior, error) {
	updated, err := s.behaviorRepo.Mutate(ctx, userID, func(b domain.UserBehavior) domain.UserBehavior {
		return ApplyPurchaseEffect(b, product)
	})
	if err != nil {
		return domain.UserBehavior{}, fmt.Errorf("failed to apply purchase effect: %w", err)
	}

	logger.Debug("purchase_effect_applied",
		"user_id", userID,
		"product_id", product.ID,
		"monthly_spend", updated.MonthlySpend,
		"balance", updated.Balance,
		"topup_freq", updated.TopupFreq,
	)

	return updated, nil
}
