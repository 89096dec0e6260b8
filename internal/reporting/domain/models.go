package domain

import (
	"context"
	"errors"
	"time"

	productdomain "github.com/smallbiznis/bodega/internal/product/domain"
)

// ReportRequest bounds the report to an inclusive calendar-date range.
type ReportRequest struct {
	From time.Time
	To   time.Time
}

type Summary struct {
	SaleCount     int64   `json:"sale_count"`
	Revenue       float64 `json:"revenue"`
	AverageTicket float64 `json:"average_ticket"`
	ItemsSold     int64   `json:"items_sold"`
}

type DailyPoint struct {
	Date     string  `json:"date"`
	Revenue  float64 `json:"revenue"`
	Quantity int64   `json:"quantity"`
}

type ProductRank struct {
	ProductName string  `json:"product_name"`
	Quantity    int64   `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}

type CustomerRank struct {
	CustomerName  string  `json:"customer_name"`
	Revenue       float64 `json:"revenue"`
	Quantity      int64   `json:"quantity"`
	AverageTicket float64 `json:"average_ticket"`
}

type ProductRevenue struct {
	ProductName string  `json:"product_name"`
	Revenue     float64 `json:"revenue"`
}

type CategoryRevenue struct {
	Category productdomain.Category `json:"category"`
	Revenue  float64                `json:"revenue"`
	Quantity int64                  `json:"quantity"`
}

// SalesReport is everything the dashboard renders for one period.
// A zero SaleCount means "no data in period"; consumers must not read
// AverageTicket in that case.
type SalesReport struct {
	From         time.Time         `json:"from"`
	To           time.Time         `json:"to"`
	Summary      Summary           `json:"summary"`
	Daily        []DailyPoint      `json:"daily"`
	TopProducts  []ProductRank     `json:"top_products"`
	TopCustomers []CustomerRank    `json:"top_customers"`
	RevenueShare []ProductRevenue  `json:"revenue_share"`
	Categories   []CategoryRevenue `json:"categories"`
}

// Overview is the home-screen business summary across all time.
type Overview struct {
	ProductCount  int64   `json:"product_count"`
	CustomerCount int64   `json:"customer_count"`
	SaleCount     int64   `json:"sale_count"`
	Revenue       float64 `json:"revenue"`
}

// SalesBounds reports the earliest and latest sale timestamps, used as
// the default report range. Both are nil when no sale exists.
type SalesBounds struct {
	First *time.Time `json:"first"`
	Last  *time.Time `json:"last"`
}

type Service interface {
	SalesReport(context.Context, ReportRequest) (SalesReport, error)
	Overview(context.Context) (Overview, error)
	SalesBounds(context.Context) (SalesBounds, error)
}

var ErrInvalidRange = errors.New("invalid_range")
