package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/bodega/internal/clock"
	customerdomain "github.com/smallbiznis/bodega/internal/customer/domain"
	productdomain "github.com/smallbiznis/bodega/internal/product/domain"
	"github.com/smallbiznis/bodega/internal/sales/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Clock        clock.Clock
	Repo         domain.Repository
	ProductRepo  productdomain.Repository
	CustomerRepo customerdomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	clock        clock.Clock
	repo         domain.Repository
	productRepo  productdomain.Repository
	customerRepo customerdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("sales.service"),
		genID:        p.GenID,
		clock:        p.Clock,
		repo:         p.Repo,
		productRepo:  p.ProductRepo,
		customerRepo: p.CustomerRepo,
	}
}

func (s *Service) Record(ctx context.Context, req domain.RecordSaleRequest) (domain.Sale, error) {
	productID, err := parseID(req.ProductID)
	if err != nil {
		return domain.Sale{}, domain.ErrInvalidProduct
	}
	customerID, err := parseID(req.CustomerID)
	if err != nil {
		return domain.Sale{}, domain.ErrInvalidCustomer
	}
	if req.Quantity < 1 {
		return domain.Sale{}, domain.ErrInvalidQuantity
	}

	var sale domain.Sale
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.FindByID(ctx, tx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}

		customer, err := s.customerRepo.FindByID(ctx, tx, customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrCustomerNotFound
		}

		// Check and decrement are one statement, so concurrent sales
		// cannot interleave a stale stock read with the write.
		result := tx.WithContext(ctx).Exec(
			`UPDATE products SET stock = stock - ? WHERE id = ? AND stock >= ?`,
			req.Quantity,
			productID,
			req.Quantity,
		)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrInsufficientStock
		}

		sale = domain.Sale{
			ID:           s.genID.Generate(),
			ProductID:    product.ID,
			CustomerID:   customer.ID,
			ProductName:  product.Name,
			CustomerName: customer.Name,
			Quantity:     req.Quantity,
			UnitPrice:    product.Price,
			Total:        float64(req.Quantity) * product.Price,
			SoldAt:       s.clock.Now(),
		}
		return s.repo.Insert(ctx, tx, &sale)
	})
	if err != nil {
		return domain.Sale{}, err
	}

	s.log.Info("sale recorded",
		zap.String("sale_id", sale.ID.String()),
		zap.String("product_id", sale.ProductID.String()),
		zap.Int64("quantity", sale.Quantity),
		zap.Float64("total", sale.Total),
	)
	return sale, nil
}

func (s *Service) List(ctx context.Context, req domain.ListSaleRequest) ([]domain.Sale, error) {
	sales, err := s.repo.FindRange(ctx, s.db, domain.RangeFilter{
		From: req.From,
		To:   req.To,
	})
	if err != nil {
		return nil, err
	}
	if sales == nil {
		sales = []domain.Sale{}
	}
	return sales, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, errors.New("invalid_id")
	}
	return id, nil
}
