package domain

import "time"

type Transaction struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"column:user_id;index;not null" json:"user_id"`
	ProductID       uint64    `gorm:"column:product_id;not null" json:"product_id"`
	Amount          float64   `gorm:"column:amount;type:numeric" json:"amount"`
	TransactionDate time.Time `gorm:"column:transaction_date" json:"transaction_date"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
