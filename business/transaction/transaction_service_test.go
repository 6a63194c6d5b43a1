//go:build !integration

package transaction

import (
	"context"
	"errors"
	"testing"

	"telcoReco/business/behavior"
	"telcoReco/business/reco"
	"telcoReco/domain"
)

// ---- fakes ----

type fakeTxRepo struct {
	created   []domain.Transaction
	createErr error
}

func (f *fakeTxRepo) Create(ctx context.Context, tx *domain.Transaction) error {
	if f.createErr != nil {
		return f.createErr
	}
	tx.ID = uint(len(f.created) + 1)
	f.created = append(f.created, *tx)
	return nil
}

func (f *fakeTxRepo) FindByUserID(ctx context.Context, userID uint) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, tx := range f.created {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	products map[uint64]domain.Product
}

func (f *fakeProductRepo) Create(ctx context.Context, p *domain.Product) error { return nil }

func (f *fakeProductRepo) FindByID(ctx context.Context, id uint64) (domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, errors.New("product not found")
	}
	return p, nil
}

func (f *fakeProductRepo) FindAll(ctx context.Context) ([]domain.Product, error) { return nil, nil }
func (f *fakeProductRepo) Update(ctx context.Context, p *domain.Product) error   { return nil }
func (f *fakeProductRepo) Delete(ctx context.Context, id uint64) error           { return nil }

type fakeBehaviorRepo struct {
	rows      map[uint]domain.UserBehavior
	mutateErr error
}

func (f *fakeBehaviorRepo) Create(ctx context.Context, b *domain.UserBehavior) error {
	f.rows[b.UserID] = *b
	return nil
}

func (f *fakeBehaviorRepo) FindByUserID(ctx context.Context, userID uint) (domain.UserBehavior, error) {
	return f.rows[userID], nil
}

func (f *fakeBehaviorRepo) Mutate(ctx context.Context, userID uint, fn func(domain.UserBehavior) domain.UserBehavior) (domain.UserBehavior, error) {
	if f.mutateErr != nil {
		return domain.UserBehavior{}, f.mutateErr
	}
	updated := fn(f.rows[userID])
	f.rows[userID] = updated
	return updated, nil
}

type fakeTrigger struct {
	calls    int
	lastUser uint
	lastKind string
}

func (f *fakeTrigger) TriggerRegeneration(userID uint, trigger string) {
	f.calls++
	f.lastUser = userID
	f.lastKind = trigger
}

func newTestSetup() (*Service, *fakeTxRepo, *fakeBehaviorRepo, *fakeTrigger) {
	txRepo := &fakeTxRepo{}
	productRepo := &fakeProductRepo{products: map[uint64]domain.Product{
		1: {ID: 1, Name: "Internet Hemat 10GB", Category: "Data", Price: 50000},
	}}
	behaviorRepo := &fakeBehaviorRepo{rows: map[uint]domain.UserBehavior{
		5: {UserID: 5, Balance: 100000, TopupFreq: 1, AvgDataUsageGB: 2.0, DataRemainingGB: 5.0},
	}}
	trigger := &fakeTrigger{}

	svc := NewService(txRepo, productRepo, behavior.NewService(behaviorRepo), trigger)
	return svc, txRepo, behaviorRepo, trigger
}

// ---- tests ----

func TestPurchase_UsesCatalogPrice(t *testing.T) {
	svc, txRepo, _, _ := newTestSetup()

	tx, err := svc.Purchase(context.Background(), 5, 1)
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}

	if tx.Amount != 50000 {
		t.Errorf("Amount = %v, want catalog price 50000", tx.Amount)
	}
	if len(txRepo.created) != 1 {
		t.Fatalf("created %d transactions, want 1", len(txRepo.created))
	}
}

func TestPurchase_AppliesBehaviorEffects(t *testing.T) {
	svc, _, behaviorRepo, _ := newTestSetup()

	if _, err := svc.Purchase(context.Background(), 5, 1); err != nil {
		t.Fatalf("Purchase: %v", err)
	}

	got := behaviorRepo.rows[5]
	if got.TopupFreq != 2 || got.Balance != 50000 || got.DataRemainingGB != 15.0 {
		t.Fatalf("behavior effects not applied: %+v", got)
	}
}

func TestPurchase_FiresRegenerationTrigger(t *testing.T) {
	svc, _, _, trigger := newTestSetup()

	if _, err := svc.Purchase(context.Background(), 5, 1); err != nil {
		t.Fatalf("Purchase: %v", err)
	}

	if trigger.calls != 1 {
		t.Fatalf("trigger fired %d times, want 1", trigger.calls)
	}
	if trigger.lastUser != 5 || trigger.lastKind != reco.TriggerPurchase {
		t.Fatalf("trigger = (%d, %q), want (5, %q)", trigger.lastUser, trigger.lastKind, reco.TriggerPurchase)
	}
}

func TestPurchase_SurvivesBehaviorFailure(t *testing.T) {
	svc, txRepo, behaviorRepo, trigger := newTestSetup()
	behaviorRepo.mutateErr = errors.New("row lock timeout")

	tx, err := svc.Purchase(context.Background(), 5, 1)
	if err != nil {
		t.Fatalf("Purchase must not fail on a behavior update error, got %v", err)
	}
	if tx.Amount != 50000 {
		t.Errorf("Amount = %v, want 50000", tx.Amount)
	}
	if len(txRepo.created) != 1 {
		t.Fatalf("transaction not recorded")
	}
	if trigger.calls != 1 {
		t.Fatalf("trigger fired %d times, want 1", trigger.calls)
	}
}

func TestPurchase_UnknownProduct(t *testing.T) {
	svc, txRepo, _, trigger := newTestSetup()

	if _, err := svc.Purchase(context.Background(), 5, 999); err == nil {
		t.Fatal("expected error for unknown product")
	}
	if len(txRepo.created) != 0 {
		t.Fatal("transaction recorded for unknown product")
	}
	if trigger.calls != 0 {
		t.Fatal("trigger fired for a failed purchase")
	}
}
