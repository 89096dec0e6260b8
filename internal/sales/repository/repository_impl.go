package repository

import (
	"context"

	"github.com/smallbiznis/bodega/internal/sales/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, sale *domain.Sale) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO sales (id, product_id, customer_id, product_name, customer_name, quantity, unit_price, total, sold_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sale.ID,
		sale.ProductID,
		sale.CustomerID,
		sale.ProductName,
		sale.CustomerName,
		sale.Quantity,
		sale.UnitPrice,
		sale.Total,
		sale.SoldAt,
	).Error
}

func (r *repo) FindRange(ctx context.Context, db *gorm.DB, filter domain.RangeFilter) ([]domain.Sale, error) {
	var sales []domain.Sale
	stmt := db.WithContext(ctx).Model(&domain.Sale{})
	if filter.From != nil {
		stmt = stmt.Where("sold_at >= ?", *filter.From)
	}
	if filter.To != nil {
		stmt = stmt.Where("sold_at <= ?", *filter.To)
	}
	err := stmt.
		Order("sold_at asc, id asc").
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}
