package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Customer struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	Name      string       `json:"name" gorm:"type:text;not null"`
	Phone     string       `json:"phone,omitempty" gorm:"type:text;not null;default:''"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null"`
}

func (Customer) TableName() string { return "customers" }
