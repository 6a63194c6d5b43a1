package domain

import (
	"time"
)

// CREATE TABLE public.products (
//     id            BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name          TEXT,
//     category      TEXT,
//     price         NUMERIC,
//     description   TEXT,
//     validity_days INT,
//     created_at    TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"column:name;type:text" json:"name"`
	Category     string    `gorm:"column:category;type:text" json:"category"`
	Price        float64   `gorm:"column:price;type:numeric" json:"price"`
	Description  string    `gorm:"column:description;type:text" json:"description"`
	ValidityDays int       `gorm:"column:validity_days" json:"validity_days"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}
