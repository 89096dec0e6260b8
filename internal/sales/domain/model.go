package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Sale is an immutable transaction record. Product and customer names are
// denormalized at sale time so history survives later renames.
type Sale struct {
	ID           snowflake.ID `json:"id" gorm:"primaryKey"`
	ProductID    snowflake.ID `json:"product_id" gorm:"not null"`
	CustomerID   snowflake.ID `json:"customer_id" gorm:"not null"`
	ProductName  string       `json:"product_name" gorm:"type:text;not null"`
	CustomerName string       `json:"customer_name" gorm:"type:text;not null"`
	Quantity     int64        `json:"quantity" gorm:"not null"`
	UnitPrice    float64      `json:"unit_price" gorm:"not null"`
	Total        float64      `json:"total" gorm:"not null"`
	SoldAt       time.Time    `json:"sold_at" gorm:"not null"`
}

func (Sale) TableName() string { return "sales" }
