package domain

import "errors"

// FeatureSnapshot is the fixed ten-key record the external scorer expects.
// Key order matters for the wire contract, so fields stay in this order.
type FeatureSnapshot struct {
	PlanType        string  `json:"plan_type" validate:"required,oneof=Postpaid Prepaid"`
	DeviceBrand     string  `json:"device_brand" validate:"required"`
	AvgDataUsageGB  float64 `json:"avg_data_usage_gb" validate:"gte=0"`
	PctVideoUsage   float64 `json:"pct_video_usage" validate:"gte=0,lte=1"`
	AvgCallDuration float64 `json:"avg_call_duration" validate:"gte=0"`
	SmsFreq         int     `json:"sms_freq" validate:"gte=0"`
	MonthlySpend    float64 `json:"monthly_spend" validate:"gte=0"`
	TopupFreq       int     `json:"topup_freq" validate:"gte=0"`
	TravelScore     float64 `json:"travel_score" validate:"gte=0,lte=1"`
	ComplaintCount  int     `json:"complaint_count" validate:"gte=0"`
}

// ScoredOffer is the transient scorer output: a free-text offer label with a
// raw 0-100 score. Never persisted as-is.
type ScoredOffer struct {
	Offer string  `json:"offer"`
	Score float64 `json:"score"`
}

var (
	// ErrValidation means the behavior profile could not be projected into a
	// complete feature snapshot.
	ErrValidation = errors.New("invalid feature snapshot")

	// ErrScoringUnavailable means the scorer service could not be reached or
	// answered with a failure.
	ErrScoringUnavailable = errors.New("scoring service unavailable")

	// ErrScoringTimeout means the scorer did not answer within the bounded wait.
	ErrScoringTimeout = errors.New("scoring service timeout")

	// ErrScoringMalformed means the scorer answered with output that does not
	// parse into the expected shape.
	ErrScoringMalformed = errors.New("scoring response malformed")
)
