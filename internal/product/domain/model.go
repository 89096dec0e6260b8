package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Category is the fixed set of shelf categories a product can belong to.
type Category string

const (
	CategoryRefrigerants Category = "refrigerants"
	CategoryBeers        Category = "beers"
	CategoryWaters       Category = "waters"
	CategoryJuices       Category = "juices"
	CategoryEnergyDrinks Category = "energy_drinks"
	CategoryWines        Category = "wines"
	CategorySpirits      Category = "spirits"
	CategoryOther        Category = "other"
)

var Categories = []Category{
	CategoryRefrigerants,
	CategoryBeers,
	CategoryWaters,
	CategoryJuices,
	CategoryEnergyDrinks,
	CategoryWines,
	CategorySpirits,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Product struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	Name      string       `json:"name" gorm:"type:text;not null"`
	Category  Category     `json:"category" gorm:"type:text;not null"`
	Price     float64      `json:"price" gorm:"not null"`
	Stock     int64        `json:"stock" gorm:"not null;default:0"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null"`
}

func (Product) TableName() string { return "products" }
