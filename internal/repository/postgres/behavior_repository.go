package postgres

import (
	"context"
	"errors"
	"fmt"
	"telcoReco/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BehaviorRepository struct {
	DB *gorm.DB
}

func NewBehaviorRepository(db *gorm.DB) *BehaviorRepository {
	return &BehaviorRepository{
		DB: db,
	}
}

func (r *BehaviorRepository) Create(ctx context.Context, behavior *domain.UserBehavior) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(behavior).Error; err != nil {
		return fmt.Errorf("failed to create behavior profile: %w", err)
	}

	return nil
}

func (r *BehaviorRepository) FindByUserID(ctx context.Context, userID uint) (domain.UserBehavior, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserBehavior{}, fmt.Errorf("context error: %w", err)
	}

	var behavior domain.UserBehavior
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&behavior).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserBehavior{}, errors.New("behavior profile not found")
		}
		return domain.UserBehavior{}, fmt.Errorf("failed to find behavior profile: %w", err)
	}

	return behavior, nil
}

// Mutate applies fn to the user's behavior row inside one transaction with a
// row-level lock, so concurrent purchases for the same user never lose
// updates to spend, balance or top-up counters.
func (r *BehaviorRepository) Mutate(
	ctx context.Context,
	userID uint,
	fn func(domain.UserBehavior) domain.UserBehavior,
) (domain.UserBehavior, error) {

	if err := ctx.Err(); err != nil {
		return domain.UserBehavior{}, fmt.Errorf("context error: %w", err)
	}

	var updated domain.UserBehavior

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current domain.UserBehavior
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("behavior profile not found")
			}
			return fmt.Errorf("failed to lock behavior profile: %w", err)
		}

		updated = fn(current)
		updated.ID = current.ID
		updated.UserID = current.UserID

		if err := tx.Save(&updated).Error; err != nil {
			return fmt.Errorf("failed to save behavior profile: %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.UserBehavior{}, err
	}

	return updated, nil
}
