package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/bodega/internal/clock"
	"github.com/smallbiznis/bodega/internal/customer/domain"
	"github.com/smallbiznis/bodega/internal/customer/repository"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupCustomerDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	assert.NoError(t, err)

	err = db.Exec(`CREATE TABLE IF NOT EXISTS customers (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	)`).Error
	assert.NoError(t, err)
	return db
}

func newCustomerService(db *gorm.DB, clk clock.Clock) domain.Service {
	node, _ := snowflake.NewNode(1)
	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clk,
		Repo:  repository.Provide(),
	})
}

func TestCustomerService_CreateAndList(t *testing.T) {
	db := setupCustomerDB(t, "customer_create")
	registeredAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newCustomerService(db, clock.NewFakeClock(registeredAt))
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateCustomerRequest{
		Name:  "  Maria Silva  ",
		Phone: "11 99999-0000",
	})
	assert.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Maria Silva", created.Name)
	assert.Equal(t, registeredAt, created.CreatedAt)

	customers, err := svc.List(ctx, domain.ListCustomerRequest{})
	assert.NoError(t, err)
	assert.Len(t, customers, 1)
	assert.Equal(t, "Maria Silva", customers[0].Name)
	assert.Equal(t, "11 99999-0000", customers[0].Phone)
}

func TestCustomerService_CreateValidation(t *testing.T) {
	db := setupCustomerDB(t, "customer_validation")
	svc := newCustomerService(db, clock.NewFakeClock(time.Now()))
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateCustomerRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	// Phone stays optional.
	created, err := svc.Create(ctx, domain.CreateCustomerRequest{Name: "Joao"})
	assert.NoError(t, err)
	assert.Empty(t, created.Phone)
}

func TestCustomerService_ListFilter(t *testing.T) {
	db := setupCustomerDB(t, "customer_filter")
	svc := newCustomerService(db, clock.NewFakeClock(time.Now()))
	ctx := context.Background()

	for _, name := range []string{"Maria Silva", "Mariana Costa", "Pedro Lima"} {
		_, err := svc.Create(ctx, domain.CreateCustomerRequest{Name: name})
		assert.NoError(t, err)
	}

	matched, err := svc.List(ctx, domain.ListCustomerRequest{Name: "maria"})
	assert.NoError(t, err)
	assert.Len(t, matched, 2)

	none, err := svc.List(ctx, domain.ListCustomerRequest{Name: "carlos"})
	assert.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)
}
