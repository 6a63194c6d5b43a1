package transaction

import (
	"context"
	"fmt"
	"time"

	"telcoReco/business/behavior"
	"telcoReco/business/product"
	"telcoReco/business/reco"
	"telcoReco/domain"
	"telcoReco/pkg/logger"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	FindByUserID(ctx context.Context, userID uint) ([]domain.Transaction, error)
}

// RegenerationTrigger schedules an asynchronous recommendation refresh.
type RegenerationTrigger interface {
	TriggerRegeneration(userID uint, trigger string)
}

type Service struct {
	txRepo      TransactionRepository
	productRepo product.ProductRepository
	behaviorSvc *behavior.Service
	regen       RegenerationTrigger
}

func NewService(
	txRepo TransactionRepository,
	productRepo product.ProductRepository,
	behaviorSvc *behavior.Service,
	regen RegenerationTrigger,
) *Service {
	return &Service{
		txRepo:      txRepo,
		productRepo: productRepo,
		behaviorSvc: behaviorSvc,
		regen:       regen,
	}
}

// Purchase records a product purchase, applies its behavior side effects and
// fires a recommendation refresh. The refresh runs fully async: it never
// blocks the purchase response and its failure never rolls the purchase back.
func (s *Service) Purchase(ctx context.Context, userID uint, productID uint64) (domain.Transaction, error) {
	prod, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return domain.Transaction{}, err
	}

	// price comes from the catalog row, never the client
	tx := domain.Transaction{
		UserID:          userID,
		ProductID:       prod.ID,
		Amount:          prod.Price,
		TransactionDate: time.Now(),
	}

	if err := s.txRepo.Create(ctx, &tx); err != nil {
		return domain.Transaction{}, fmt.Errorf("failed to create transaction: %w", err)
	}

	if _, err := s.behaviorSvc.ApplyPurchase(ctx, userID, prod); err != nil {
		// the purchase itself already committed; surface the inconsistency in
		// logs and let the next behavior write correct it
		logger.Error("purchase behavior update failed", "user_id", userID, "product_id", prod.ID, "error", err)
	}

	s.regen.TriggerRegeneration(userID, reco.TriggerPurchase)

	return tx, nil
}

// History returns the user's purchases newest first.
func (s *Service) History(ctx context.Context, userID uint) ([]domain.Transaction, error) {
	return s.txRepo.FindByUserID(ctx, userID)
}
