package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type RangeFilter struct {
	From *time.Time
	To   *time.Time
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, sale *Sale) error
	FindRange(ctx context.Context, db *gorm.DB, filter RangeFilter) ([]Sale, error)
}
