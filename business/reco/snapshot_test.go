//go:build !integration

package reco

import (
	"errors"
	"testing"

	"telcoReco/domain"

	"github.com/go-playground/validator/v10"
)

func validBehavior() domain.UserBehavior {
	return domain.UserBehavior{
		UserID:          1,
		PlanType:        domain.PlanPrepaid,
		DeviceBrand:     "Samsung",
		AvgDataUsageGB:  5.5,
		PctVideoUsage:   0.4,
		AvgCallDuration: 12,
		SmsFreq:         20,
		MonthlySpend:    75000,
		TopupFreq:       3,
		TravelScore:     0.2,
		ComplaintCount:  1,
	}
}

func TestBuildSnapshot_ProjectsAllFields(t *testing.T) {
	validate := validator.New()
	b := validBehavior()

	got, err := BuildSnapshot(validate, b)
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}

	want := domain.FeatureSnapshot{
		PlanType:        domain.PlanPrepaid,
		DeviceBrand:     "Samsung",
		AvgDataUsageGB:  5.5,
		PctVideoUsage:   0.4,
		AvgCallDuration: 12,
		SmsFreq:         20,
		MonthlySpend:    75000,
		TopupFreq:       3,
		TravelScore:     0.2,
		ComplaintCount:  1,
	}
	if got != want {
		t.Fatalf("snapshot = %+v, want %+v", got, want)
	}
}

func TestBuildSnapshot_RejectsInvalidProfiles(t *testing.T) {
	validate := validator.New()

	cases := []struct {
		name   string
		mutate func(*domain.UserBehavior)
	}{
		{"missing plan type", func(b *domain.UserBehavior) { b.PlanType = "" }},
		{"unknown plan type", func(b *domain.UserBehavior) { b.PlanType = "Hybrid" }},
		{"missing device brand", func(b *domain.UserBehavior) { b.DeviceBrand = "" }},
		{"negative data usage", func(b *domain.UserBehavior) { b.AvgDataUsageGB = -1 }},
		{"video share above one", func(b *domain.UserBehavior) { b.PctVideoUsage = 1.2 }},
		{"travel score above one", func(b *domain.UserBehavior) { b.TravelScore = 1.5 }},
		{"negative spend", func(b *domain.UserBehavior) { b.MonthlySpend = -100 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := validBehavior()
			tc.mutate(&b)

			_, err := BuildSnapshot(validate, b)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("error = %v, want ErrValidation", err)
			}
		})
	}
}
