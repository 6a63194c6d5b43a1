package postgres

import (
	"context"
	"fmt"
	"telcoReco/domain"

	"gorm.io/gorm"
)

type RecommendationRepository struct {
	DB *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{
		DB: db,
	}
}

// Replace swaps the user's whole recommendation set in one transaction.
// Readers never observe the window between delete and insert, and a mid-write
// failure rolls back to the previous set.
func (r *RecommendationRepository) Replace(
	ctx context.Context,
	userID uint,
	items []domain.Recommendation,
) error {

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).
			Delete(&domain.Recommendation{}).Error; err != nil {
			return fmt.Errorf("failed to clear recommendations: %w", err)
		}

		if len(items) == 0 {
			return nil
		}

		for i := range items {
			items[i].UserID = userID
		}

		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to insert recommendations: %w", err)
		}

		return nil
	})
}

// GetByUser returns the user's recommendations ordered by score DESC. No
// rows is an empty slice, never an error.
func (r *RecommendationRepository) GetByUser(ctx context.Context, userID uint) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	recs := []domain.Recommendation{}
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("score DESC").
		Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}

	return recs, nil
}
