package domain

import (
	"context"
	"errors"
	"time"
)

type RecordSaleRequest struct {
	ProductID  string
	CustomerID string
	Quantity   int64
}

type ListSaleRequest struct {
	From *time.Time
	To   *time.Time
}

type Service interface {
	// Record inserts the sale and decrements the product's stock as one
	// transaction. The identifiers come straight from the selection step;
	// no display-string matching happens here.
	Record(context.Context, RecordSaleRequest) (Sale, error)
	List(context.Context, ListSaleRequest) ([]Sale, error)
}

var (
	ErrInvalidProduct    = errors.New("invalid_product")
	ErrInvalidCustomer   = errors.New("invalid_customer")
	ErrInvalidQuantity   = errors.New("invalid_quantity")
	ErrProductNotFound   = errors.New("product_not_found")
	ErrCustomerNotFound  = errors.New("customer_not_found")
	ErrInsufficientStock = errors.New("insufficient_stock")
)
