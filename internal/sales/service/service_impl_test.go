package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/bodega/internal/clock"
	customerdomain "github.com/smallbiznis/bodega/internal/customer/domain"
	customerrepo "github.com/smallbiznis/bodega/internal/customer/repository"
	productdomain "github.com/smallbiznis/bodega/internal/product/domain"
	productrepo "github.com/smallbiznis/bodega/internal/product/repository"
	"github.com/smallbiznis/bodega/internal/sales/domain"
	"github.com/smallbiznis/bodega/internal/sales/repository"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupSalesDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	assert.NoError(t, err)

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			price REAL NOT NULL,
			stock INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS customers (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sales (
			id INTEGER PRIMARY KEY,
			product_id INTEGER NOT NULL,
			customer_id INTEGER NOT NULL,
			product_name TEXT NOT NULL,
			customer_name TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			unit_price REAL NOT NULL,
			total REAL NOT NULL,
			sold_at TIMESTAMP NOT NULL
		)`,
	}
	for _, stmt := range ddl {
		assert.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

type salesFixture struct {
	db       *gorm.DB
	node     *snowflake.Node
	clock    *clock.FakeClock
	svc      domain.Service
	product  productdomain.Product
	customer customerdomain.Customer
}

func newSalesFixture(t *testing.T, name string, stock int64, price float64) *salesFixture {
	t.Helper()
	db := setupSalesDB(t, name)
	node, _ := snowflake.NewNode(1)
	clk := clock.NewFakeClock(time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC))
	ctx := context.Background()

	product := productdomain.Product{
		ID:        node.Generate(),
		Name:      "Coca-Cola 350ml",
		Category:  productdomain.CategoryRefrigerants,
		Price:     price,
		Stock:     stock,
		CreatedAt: clk.Now(),
	}
	assert.NoError(t, productrepo.Provide().Insert(ctx, db, &product))

	customer := customerdomain.Customer{
		ID:        node.Generate(),
		Name:      "Maria Silva",
		CreatedAt: clk.Now(),
	}
	assert.NoError(t, customerrepo.Provide().Insert(ctx, db, &customer))

	svc := New(Params{
		DB:           db,
		Log:          zap.NewNop(),
		GenID:        node,
		Clock:        clk,
		Repo:         repository.Provide(),
		ProductRepo:  productrepo.Provide(),
		CustomerRepo: customerrepo.Provide(),
	})

	return &salesFixture{
		db:       db,
		node:     node,
		clock:    clk,
		svc:      svc,
		product:  product,
		customer: customer,
	}
}

func (f *salesFixture) currentStock(t *testing.T) int64 {
	t.Helper()
	var stock int64
	err := f.db.Raw(`SELECT stock FROM products WHERE id = ?`, f.product.ID).Scan(&stock).Error
	assert.NoError(t, err)
	return stock
}

func TestSalesService_Record(t *testing.T) {
	f := newSalesFixture(t, "sales_record", 5, 10)
	ctx := context.Background()

	sale, err := f.svc.Record(ctx, domain.RecordSaleRequest{
		ProductID:  f.product.ID.String(),
		CustomerID: f.customer.ID.String(),
		Quantity:   3,
	})
	assert.NoError(t, err)
	assert.Equal(t, f.product.ID, sale.ProductID)
	assert.Equal(t, f.customer.ID, sale.CustomerID)
	assert.Equal(t, "Coca-Cola 350ml", sale.ProductName)
	assert.Equal(t, "Maria Silva", sale.CustomerName)
	assert.Equal(t, int64(3), sale.Quantity)
	assert.Equal(t, float64(10), sale.UnitPrice)
	assert.Equal(t, float64(30), sale.Total)
	assert.Equal(t, f.clock.Now(), sale.SoldAt)

	assert.Equal(t, int64(2), f.currentStock(t))
}

func TestSalesService_RecordInsufficientStock(t *testing.T) {
	f := newSalesFixture(t, "sales_insufficient", 2, 10)
	ctx := context.Background()

	_, err := f.svc.Record(ctx, domain.RecordSaleRequest{
		ProductID:  f.product.ID.String(),
		CustomerID: f.customer.ID.String(),
		Quantity:   3,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// The rejected sale leaves nothing behind.
	assert.Equal(t, int64(2), f.currentStock(t))
	sales, err := f.svc.List(ctx, domain.ListSaleRequest{})
	assert.NoError(t, err)
	assert.Empty(t, sales)

	// Selling the exact remaining stock drains it to zero.
	_, err = f.svc.Record(ctx, domain.RecordSaleRequest{
		ProductID:  f.product.ID.String(),
		CustomerID: f.customer.ID.String(),
		Quantity:   2,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), f.currentStock(t))
}

func TestSalesService_RecordValidation(t *testing.T) {
	f := newSalesFixture(t, "sales_validation", 5, 10)
	ctx := context.Background()

	_, err := f.svc.Record(ctx, domain.RecordSaleRequest{
		ProductID:  "not-a-number",
		CustomerID: f.customer.ID.String(),
		Quantity:   1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidProduct)

	_, err = f.svc.Record(ctx, domain.RecordSaleRequest{
		ProductID:  f.product.ID.String(),
		CustomerID: "",
		Quantity:   1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCustomer)

	_, err = f.svc.Record(ctx, domain.RecordSaleRequest{
		ProductID:  f.product.ID.String(),
		CustomerID: f.customer.ID.String(),
		Quantity:   0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.svc.Record(ctx, domain.RecordSaleRequest{
		ProductID:  f.node.Generate().String(),
		CustomerID: f.customer.ID.String(),
		Quantity:   1,
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = f.svc.Record(ctx, domain.RecordSaleRequest{
		ProductID:  f.product.ID.String(),
		CustomerID: f.node.Generate().String(),
		Quantity:   1,
	})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

	assert.Equal(t, int64(5), f.currentStock(t))
}

func TestSalesService_ListRange(t *testing.T) {
	f := newSalesFixture(t, "sales_range", 100, 4.5)
	ctx := context.Background()

	// One sale per day across three days.
	for i := 0; i < 3; i++ {
		_, err := f.svc.Record(ctx, domain.RecordSaleRequest{
			ProductID:  f.product.ID.String(),
			CustomerID: f.customer.ID.String(),
			Quantity:   1,
		})
		assert.NoError(t, err)
		f.clock.Advance(24 * time.Hour)
	}

	all, err := f.svc.List(ctx, domain.ListSaleRequest{})
	assert.NoError(t, err)
	assert.Len(t, all, 3)

	from := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 11, 23, 59, 59, 0, time.UTC)
	day, err := f.svc.List(ctx, domain.ListSaleRequest{From: &from, To: &to})
	assert.NoError(t, err)
	assert.Len(t, day, 1)
	assert.Equal(t, time.Date(2025, 3, 11, 14, 30, 0, 0, time.UTC), day[0].SoldAt.UTC())
}
