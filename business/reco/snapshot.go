package reco

import (
	"fmt"

	"telcoReco/domain"

	"github.com/go-playground/validator/v10"
)

// BuildSnapshot projects a behavior row into the fixed ten-key record the
// scorer expects. It fails with domain.ErrValidation when a required field is
// missing or a bounded field is out of range, before any external call.
func BuildSnapshot(validate *validator.Validate, b domain.UserBehavior) (domain.FeatureSnapshot, error) {
	snapshot := domain.FeatureSnapshot{
		PlanType:        b.PlanType,
		DeviceBrand:     b.DeviceBrand,
		AvgDataUsageGB:  b.AvgDataUsageGB,
		PctVideoUsage:   b.PctVideoUsage,
		AvgCallDuration: b.AvgCallDuration,
		SmsFreq:         b.SmsFreq,
		MonthlySpend:    b.MonthlySpend,
		TopupFreq:       b.TopupFreq,
		TravelScore:     b.TravelScore,
		ComplaintCount:  b.ComplaintCount,
	}

	if err := validate.Struct(&snapshot); err != nil {
		return domain.FeatureSnapshot{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	return snapshot, nil
}
