package domain

import (
	"context"
	"errors"
)

type CreateCustomerRequest struct {
	Name  string
	Phone string
}

type ListCustomerRequest struct {
	Name string
}

type Service interface {
	Create(context.Context, CreateCustomerRequest) (Customer, error)
	List(context.Context, ListCustomerRequest) ([]Customer, error)
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrNotFound    = errors.New("not_found")
)
