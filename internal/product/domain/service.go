package domain

import (
	"context"
	"errors"
)

type CreateProductRequest struct {
	Name     string
	Category Category
	Price    float64
	Stock    int64
}

type ListProductRequest struct {
	Category string
	Name     string
}

type Service interface {
	Create(context.Context, CreateProductRequest) (Product, error)
	List(context.Context, ListProductRequest) ([]Product, error)
	ListLowStock(ctx context.Context, threshold int64) ([]Product, error)
}

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidCategory = errors.New("invalid_category")
	ErrInvalidPrice    = errors.New("invalid_price")
	ErrInvalidStock    = errors.New("invalid_stock")
	ErrNotFound        = errors.New("not_found")
)
