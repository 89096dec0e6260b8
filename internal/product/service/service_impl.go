package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/bodega/internal/clock"
	"github.com/smallbiznis/bodega/internal/product/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultLowStockThreshold = 5

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("product.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateProductRequest) (domain.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Product{}, domain.ErrInvalidName
	}
	if !req.Category.Valid() {
		return domain.Product{}, domain.ErrInvalidCategory
	}
	if req.Price <= 0 {
		return domain.Product{}, domain.ErrInvalidPrice
	}
	if req.Stock < 0 {
		return domain.Product{}, domain.ErrInvalidStock
	}

	product := domain.Product{
		ID:        s.genID.Generate(),
		Name:      name,
		Category:  req.Category,
		Price:     req.Price,
		Stock:     req.Stock,
		CreatedAt: s.clock.Now(),
	}

	if err := s.repo.Insert(ctx, s.db, &product); err != nil {
		return domain.Product{}, err
	}

	s.log.Info("product registered",
		zap.String("product_id", product.ID.String()),
		zap.String("category", string(product.Category)),
	)
	return product, nil
}

func (s *Service) List(ctx context.Context, req domain.ListProductRequest) ([]domain.Product, error) {
	filter := domain.ListFilter{
		Name: strings.TrimSpace(req.Name),
	}
	if category := strings.TrimSpace(req.Category); category != "" {
		parsed := domain.Category(category)
		if !parsed.Valid() {
			return nil, domain.ErrInvalidCategory
		}
		filter.Category = parsed
	}

	products, err := s.repo.FindAll(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (s *Service) ListLowStock(ctx context.Context, threshold int64) ([]domain.Product, error) {
	if threshold <= 0 {
		threshold = defaultLowStockThreshold
	}
	products, err := s.repo.FindBelowStock(ctx, s.db, threshold)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}
