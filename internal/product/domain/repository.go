package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListFilter struct {
	Category Category
	Name     string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Product, error)
	FindAll(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Product, error)
	FindBelowStock(ctx context.Context, db *gorm.DB, threshold int64) ([]Product, error)
}
