package domain

import "time"

// Recommendation rows are only ever written as a full per-user set: a
// regeneration run deletes the previous set and inserts the new one together.
type Recommendation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"column:user_id;index;not null" json:"user_id"`
	ProductID uint64    `gorm:"column:product_id;not null" json:"product_id"`
	Score     float64   `gorm:"column:score;not null" json:"score"`
	Reason    string    `gorm:"column:reason;type:text" json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}
