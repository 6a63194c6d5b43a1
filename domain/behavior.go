package domain

import "time"

const (
	PlanPostpaid = "Postpaid"
	PlanPrepaid  = "Prepaid"
)

// UserBehavior is the per-user usage/spend feature vector that drives scoring.
// All numeric fields stay non-negative; PctVideoUsage and TravelScore stay in [0,1].
type UserBehavior struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	PlanType        string    `gorm:"column:plan_type" json:"plan_type"`
	DeviceBrand     string    `gorm:"column:device_brand" json:"device_brand"`
	AvgDataUsageGB  float64   `gorm:"column:avg_data_usage_gb" json:"avg_data_usage_gb"`
	PctVideoUsage   float64   `gorm:"column:pct_video_usage" json:"pct_video_usage"`
	AvgCallDuration float64   `gorm:"column:avg_call_duration" json:"avg_call_duration"`
	SmsFreq         int       `gorm:"column:sms_freq" json:"sms_freq"`
	MonthlySpend    float64   `gorm:"column:monthly_spend" json:"monthly_spend"`
	TopupFreq       int       `gorm:"column:topup_freq" json:"topup_freq"`
	TravelScore     float64   `gorm:"column:travel_score" json:"travel_score"`
	ComplaintCount  int       `gorm:"column:complaint_count" json:"complaint_count"`
	Balance         float64   `gorm:"column:balance" json:"balance"`
	DataRemainingGB float64   `gorm:"column:data_remaining_gb" json:"data_remaining_gb"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (UserBehavior) TableName() string {
	return "user_behaviors"
}
