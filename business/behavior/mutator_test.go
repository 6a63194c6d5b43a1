//go:build !integration

package behavior

import (
	"testing"

	"telcoReco/domain"
)

func TestDataAmountGB(t *testing.T) {
	cases := []struct {
		name     string
		product  string
		wantGB   float64
		wantPack bool
	}{
		{"plain", "Internet Hemat 10GB", 10, true},
		{"spaced", "Paket 2.5 GB", 2.5, true},
		{"lowercase", "paket hemat 5gb", 5, true},
		{"no pack", "Nelpon Sepuasnya", 0, false},
		{"gb without amount", "Paket GB", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := DataAmountGB(tc.product)
			if ok != tc.wantPack {
				t.Fatalf("DataAmountGB(%q) ok = %v, want %v", tc.product, ok, tc.wantPack)
			}
			if got != tc.wantGB {
				t.Fatalf("DataAmountGB(%q) = %v, want %v", tc.product, got, tc.wantGB)
			}
		})
	}
}

func TestApplyPurchaseEffect_DataPack(t *testing.T) {
	profile := domain.UserBehavior{
		AvgDataUsageGB:  2.0,
		TopupFreq:       1,
		DataRemainingGB: 5.0,
		Balance:         100000,
	}
	product := domain.Product{Name: "Internet Hemat 10GB", Price: 50000}

	got := ApplyPurchaseEffect(profile, product)

	if got.MonthlySpend != 50000 {
		t.Errorf("MonthlySpend = %v, want 50000", got.MonthlySpend)
	}
	if got.TopupFreq != 2 {
		t.Errorf("TopupFreq = %v, want 2", got.TopupFreq)
	}
	if got.AvgDataUsageGB != 6.0 {
		t.Errorf("AvgDataUsageGB = %v, want 6.0", got.AvgDataUsageGB)
	}
	if got.DataRemainingGB != 15.0 {
		t.Errorf("DataRemainingGB = %v, want 15.0", got.DataRemainingGB)
	}
	if got.Balance != 50000 {
		t.Errorf("Balance = %v, want 50000", got.Balance)
	}
}

func TestApplyPurchaseEffect_NonDataProduct(t *testing.T) {
	profile := domain.UserBehavior{
		AvgDataUsageGB:  4.0,
		TopupFreq:       3,
		DataRemainingGB: 1.5,
		MonthlySpend:    60000,
		Balance:         25000,
	}
	product := domain.Product{Name: "Nelpon Sepuasnya", Price: 20000}

	got := ApplyPurchaseEffect(profile, product)

	if got.AvgDataUsageGB != 4.0 {
		t.Errorf("AvgDataUsageGB moved on a non-data product: %v", got.AvgDataUsageGB)
	}
	if got.DataRemainingGB != 1.5 {
		t.Errorf("DataRemainingGB moved on a non-data product: %v", got.DataRemainingGB)
	}
	if got.MonthlySpend != 80000 {
		t.Errorf("MonthlySpend = %v, want 80000", got.MonthlySpend)
	}
	if got.TopupFreq != 4 {
		t.Errorf("TopupFreq = %v, want 4", got.TopupFreq)
	}
	if got.Balance != 5000 {
		t.Errorf("Balance = %v, want 5000", got.Balance)
	}
}

func TestApplyPurchaseEffect_BalanceNeverNegative(t *testing.T) {
	profile := domain.UserBehavior{Balance: 10000}
	product := domain.Product{Name: "Combo Sakti", Price: 75000}

	got := ApplyPurchaseEffect(profile, product)

	if got.Balance != 0 {
		t.Errorf("Balance = %v, want 0", got.Balance)
	}
}

func TestApplyPurchaseEffect_AverageRounding(t *testing.T) {
	// (5*3 + 10) / 4 = 6.25, stored to one decimal.
	profile := domain.UserBehavior{
		AvgDataUsageGB: 5.0,
		TopupFreq:      3,
	}
	product := domain.Product{Name: "Internet Hemat 10GB", Price: 50000}

	got := ApplyPurchaseEffect(profile, product)

	if got.AvgDataUsageGB != 6.3 {
		t.Errorf("AvgDataUsageGB = %v, want 6.3", got.AvgDataUsageGB)
	}
}

func TestApplyPurchaseEffect_FirstTopup(t *testing.T) {
	profile := domain.UserBehavior{}
	product := domain.Product{Name: "Internet Hemat 10GB", Price: 50000}

	got := ApplyPurchaseEffect(profile, product)

	if got.AvgDataUsageGB != 10.0 {
		t.Errorf("AvgDataUsageGB = %v, want 10.0", got.AvgDataUsageGB)
	}
	if got.TopupFreq != 1 {
		t.Errorf("TopupFreq = %v, want 1", got.TopupFreq)
	}
}
