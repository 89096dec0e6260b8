package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/bodega/internal/clock"
	"github.com/smallbiznis/bodega/internal/product/domain"
	"github.com/smallbiznis/bodega/internal/product/repository"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupProductDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	assert.NoError(t, err)

	err = db.Exec(`CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		price REAL NOT NULL,
		stock INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	)`).Error
	assert.NoError(t, err)
	return db
}

func newProductService(db *gorm.DB, clk clock.Clock) domain.Service {
	node, _ := snowflake.NewNode(1)
	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clk,
		Repo:  repository.Provide(),
	})
}

func TestProductService_CreateAndList(t *testing.T) {
	db := setupProductDB(t, "product_create")
	registeredAt := time.Date(2025, 3, 10, 15, 4, 5, 0, time.UTC)
	svc := newProductService(db, clock.NewFakeClock(registeredAt))
	ctx := context.Background()

	empty, err := svc.List(ctx, domain.ListProductRequest{})
	assert.NoError(t, err)
	assert.Empty(t, empty)

	created, err := svc.Create(ctx, domain.CreateProductRequest{
		Name:     "Coca-Cola 350ml",
		Category: domain.CategoryRefrigerants,
		Price:    4.5,
		Stock:    24,
	})
	assert.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, registeredAt, created.CreatedAt)

	products, err := svc.List(ctx, domain.ListProductRequest{})
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "Coca-Cola 350ml", products[0].Name)
	assert.Equal(t, domain.CategoryRefrigerants, products[0].Category)
	assert.Equal(t, 4.5, products[0].Price)
	assert.Equal(t, int64(24), products[0].Stock)
	assert.Equal(t, registeredAt.Format("2006-01-02"), products[0].CreatedAt.Format("2006-01-02"))
}

func TestProductService_CreateValidation(t *testing.T) {
	db := setupProductDB(t, "product_validation")
	svc := newProductService(db, clock.NewFakeClock(time.Now()))
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateProductRequest{
		Name:     "   ",
		Category: domain.CategoryBeers,
		Price:    5,
		Stock:    1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, domain.CreateProductRequest{
		Name:     "Heineken",
		Category: domain.Category("snacks"),
		Price:    5,
		Stock:    1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)

	_, err = svc.Create(ctx, domain.CreateProductRequest{
		Name:     "Heineken",
		Category: domain.CategoryBeers,
		Price:    0,
		Stock:    1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	_, err = svc.Create(ctx, domain.CreateProductRequest{
		Name:     "Heineken",
		Category: domain.CategoryBeers,
		Price:    5,
		Stock:    -1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStock)

	// Nothing persisted by the rejected requests.
	products, err := svc.List(ctx, domain.ListProductRequest{})
	assert.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductService_ListFilters(t *testing.T) {
	db := setupProductDB(t, "product_filters")
	svc := newProductService(db, clock.NewFakeClock(time.Now()))
	ctx := context.Background()

	seed := []domain.CreateProductRequest{
		{Name: "Coca-Cola 350ml", Category: domain.CategoryRefrigerants, Price: 4.5, Stock: 24},
		{Name: "Guarana 2L", Category: domain.CategoryRefrigerants, Price: 8, Stock: 12},
		{Name: "Heineken 600ml", Category: domain.CategoryBeers, Price: 12, Stock: 36},
	}
	for _, req := range seed {
		_, err := svc.Create(ctx, req)
		assert.NoError(t, err)
	}

	byCategory, err := svc.List(ctx, domain.ListProductRequest{Category: "refrigerants"})
	assert.NoError(t, err)
	assert.Len(t, byCategory, 2)

	byName, err := svc.List(ctx, domain.ListProductRequest{Name: "coca"})
	assert.NoError(t, err)
	assert.Len(t, byName, 1)
	assert.Equal(t, "Coca-Cola 350ml", byName[0].Name)

	_, err = svc.List(ctx, domain.ListProductRequest{Category: "snacks"})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)

	// Insertion order is preserved.
	all, err := svc.List(ctx, domain.ListProductRequest{})
	assert.NoError(t, err)
	assert.Equal(t, "Coca-Cola 350ml", all[0].Name)
	assert.Equal(t, "Guarana 2L", all[1].Name)
	assert.Equal(t, "Heineken 600ml", all[2].Name)
}

func TestProductService_ListLowStock(t *testing.T) {
	db := setupProductDB(t, "product_low_stock")
	svc := newProductService(db, clock.NewFakeClock(time.Now()))
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateProductRequest{Name: "Agua 500ml", Category: domain.CategoryWaters, Price: 2, Stock: 3})
	assert.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateProductRequest{Name: "Suco de Uva", Category: domain.CategoryJuices, Price: 7, Stock: 40})
	assert.NoError(t, err)

	low, err := svc.ListLowStock(ctx, 5)
	assert.NoError(t, err)
	assert.Len(t, low, 1)
	assert.Equal(t, "Agua 500ml", low[0].Name)

	// Non-positive threshold falls back to the default of 5.
	low, err = svc.ListLowStock(ctx, 0)
	assert.NoError(t, err)
	assert.Len(t, low, 1)
}
