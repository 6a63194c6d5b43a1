//go:build !integration

package behavior

import (
	"context"
	"errors"
	"testing"

	"telcoReco/domain"
)

type fakeBehaviorRepo struct {
	rows map[uint]domain.UserBehavior
}

func newFakeBehaviorRepo() *fakeBehaviorRepo {
	return &fakeBehaviorRepo{rows: make(map[uint]domain.UserBehavior)}
}

func (f *fakeBehaviorRepo) Create(ctx context.Context, b *domain.UserBehavior) error {
	if _, ok := f.rows[b.UserID]; ok {
		return errors.New("duplicate behavior profile")
	}
	f.rows[b.UserID] = *b
	return nil
}

func (f *fakeBehaviorRepo) FindByUserID(ctx context.Context, userID uint) (domain.UserBehavior, error) {
	b, ok := f.rows[userID]
	if !ok {
		return domain.UserBehavior{}, errors.New("behavior profile not found")
	}
	return b, nil
}

func (f *fakeBehaviorRepo) Mutate(ctx context.Context, userID uint, fn func(domain.UserBehavior) domain.UserBehavior) (domain.UserBehavior, error) {
	b, ok := f.rows[userID]
	if !ok {
		return domain.UserBehavior{}, errors.New("behavior profile not found")
	}
	updated := fn(b)
	f.rows[userID] = updated
	return updated, nil
}

func TestSeedDefault(t *testing.T) {
	repo := newFakeBehaviorRepo()
	svc := NewService(repo)

	seed, err := svc.SeedDefault(context.Background(), 42)
	if err != nil {
		t.Fatalf("SeedDefault: %v", err)
	}

	if seed.UserID != 42 {
		t.Errorf("UserID = %d, want 42", seed.UserID)
	}
	if seed.PlanType != domain.PlanPrepaid {
		t.Errorf("PlanType = %q, want Prepaid", seed.PlanType)
	}
	if seed.DeviceBrand != "Unknown" {
		t.Errorf("DeviceBrand = %q, want Unknown", seed.DeviceBrand)
	}
	if seed.AvgDataUsageGB != 1.0 || seed.PctVideoUsage != 0.3 {
		t.Errorf("usage defaults = (%v, %v), want (1.0, 0.3)", seed.AvgDataUsageGB, seed.PctVideoUsage)
	}

	stored, err := svc.GetByUserID(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetByUserID after seed: %v", err)
	}
	if stored != seed {
		t.Errorf("stored profile differs from seed: %+v vs %+v", stored, seed)
	}
}

func TestSeedDefault_DuplicateFails(t *testing.T) {
	repo := newFakeBehaviorRepo()
	svc := NewService(repo)

	if _, err := svc.SeedDefault(context.Background(), 1); err != nil {
		t.Fatalf("SeedDefault: %v", err)
	}
	if _, err := svc.SeedDefault(context.Background(), 1); err == nil {
		t.Fatal("second seed for the same user should fail")
	}
}

func TestApplyPurchase_UpdatesStoredProfile(t *testing.T) {
	repo := newFakeBehaviorRepo()
	svc := NewService(repo)

	repo.rows[7] = domain.UserBehavior{
		UserID:          7,
		AvgDataUsageGB:  2.0,
		TopupFreq:       1,
		DataRemainingGB: 5.0,
		Balance:         100000,
	}

	got, err := svc.ApplyPurchase(context.Background(), 7, domain.Product{
		Name:  "Internet Hemat 10GB",
		Price: 50000,
	})
	if err != nil {
		t.Fatalf("ApplyPurchase: %v", err)
	}

	if got.AvgDataUsageGB != 6.0 || got.DataRemainingGB != 15.0 || got.Balance != 50000 || got.TopupFreq != 2 {
		t.Fatalf("unexpected mutated profile: %+v", got)
	}

	stored := repo.rows[7]
	if stored != got {
		t.Fatalf("repo row differs from returned profile: %+v vs %+v", stored, got)
	}
}

func TestApplyPurchase_MissingProfile(t *testing.T) {
	repo := newFakeBehaviorRepo()
	svc := NewService(repo)

	if _, err := svc.ApplyPurchase(context.Background(), 99, domain.Product{Name: "Combo Sakti", Price: 75000}); err == nil {
		t.Fatal("expected error for a user with no behavior profile")
	}
}
