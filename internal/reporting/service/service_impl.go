package service

import (
	"context"
	"sort"
	"time"

	"github.com/bwmarrin/snowflake"
	productdomain "github.com/smallbiznis/bodega/internal/product/domain"
	"github.com/smallbiznis/bodega/internal/reporting/domain"
	salesdomain "github.com/smallbiznis/bodega/internal/sales/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	topN       = 10
	dateLayout = "2006-01-02"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	SalesRepo   salesdomain.Repository
	ProductRepo productdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	salesRepo   salesdomain.Repository
	productRepo productdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("reporting.service"),
		salesRepo:   p.SalesRepo,
		productRepo: p.ProductRepo,
	}
}

// SalesReport aggregates the sales that fall inside the inclusive date
// range. Every grouping keeps first-seen order for equal keys, so the
// same input always yields the same output.
func (s *Service) SalesReport(ctx context.Context, req domain.ReportRequest) (domain.SalesReport, error) {
	if req.From.IsZero() || req.To.IsZero() {
		return domain.SalesReport{}, domain.ErrInvalidRange
	}
	from := startOfDay(req.From)
	to := endOfDay(req.To)
	if to.Before(from) {
		return domain.SalesReport{}, domain.ErrInvalidRange
	}

	sales, err := s.salesRepo.FindRange(ctx, s.db, salesdomain.RangeFilter{
		From: &from,
		To:   &to,
	})
	if err != nil {
		return domain.SalesReport{}, err
	}

	products, err := s.productRepo.FindAll(ctx, s.db, productdomain.ListFilter{})
	if err != nil {
		return domain.SalesReport{}, err
	}

	return domain.SalesReport{
		From:         from,
		To:           to,
		Summary:      summarize(sales),
		Daily:        dailySeries(sales),
		TopProducts:  topProductsByQuantity(sales),
		TopCustomers: topCustomersBySpend(sales),
		RevenueShare: revenueShareByProduct(sales),
		Categories:   revenueByCategory(sales, products),
	}, nil
}

func (s *Service) Overview(ctx context.Context) (domain.Overview, error) {
	var overview domain.Overview
	err := s.db.WithContext(ctx).Raw(
		`SELECT
			(SELECT COUNT(*) FROM products) AS product_count,
			(SELECT COUNT(*) FROM customers) AS customer_count,
			(SELECT COUNT(*) FROM sales) AS sale_count,
			(SELECT COALESCE(SUM(total), 0) FROM sales) AS revenue`,
	).Scan(&overview).Error
	if err != nil {
		return domain.Overview{}, err
	}
	return overview, nil
}

func (s *Service) SalesBounds(ctx context.Context) (domain.SalesBounds, error) {
	var bounds domain.SalesBounds

	var first salesdomain.Sale
	result := s.db.WithContext(ctx).
		Order("sold_at asc, id asc").
		Limit(1).
		Find(&first)
	if result.Error != nil {
		return domain.SalesBounds{}, result.Error
	}
	if result.RowsAffected == 0 {
		return bounds, nil
	}

	var last salesdomain.Sale
	err := s.db.WithContext(ctx).
		Order("sold_at desc, id desc").
		Limit(1).
		Find(&last).Error
	if err != nil {
		return domain.SalesBounds{}, err
	}

	firstAt := first.SoldAt
	lastAt := last.SoldAt
	bounds.First = &firstAt
	bounds.Last = &lastAt
	return bounds, nil
}

func summarize(sales []salesdomain.Sale) domain.Summary {
	summary := domain.Summary{SaleCount: int64(len(sales))}
	for _, sale := range sales {
		summary.Revenue += sale.Total
		summary.ItemsSold += sale.Quantity
	}
	if summary.SaleCount > 0 {
		summary.AverageTicket = summary.Revenue / float64(summary.SaleCount)
	}
	return summary
}

func dailySeries(sales []salesdomain.Sale) []domain.DailyPoint {
	byDate := make(map[string]*domain.DailyPoint)
	points := make([]*domain.DailyPoint, 0)
	for _, sale := range sales {
		date := sale.SoldAt.Format(dateLayout)
		point, ok := byDate[date]
		if !ok {
			point = &domain.DailyPoint{Date: date}
			byDate[date] = point
			points = append(points, point)
		}
		point.Revenue += sale.Total
		point.Quantity += sale.Quantity
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	out := make([]domain.DailyPoint, 0, len(points))
	for _, point := range points {
		out = append(out, *point)
	}
	return out
}

func topProductsByQuantity(sales []salesdomain.Sale) []domain.ProductRank {
	byName := make(map[string]*domain.ProductRank)
	ranks := make([]*domain.ProductRank, 0)
	for _, sale := range sales {
		rank, ok := byName[sale.ProductName]
		if !ok {
			rank = &domain.ProductRank{ProductName: sale.ProductName}
			byName[sale.ProductName] = rank
			ranks = append(ranks, rank)
		}
		rank.Quantity += sale.Quantity
		rank.Revenue += sale.Total
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Quantity > ranks[j].Quantity
	})
	if len(ranks) > topN {
		ranks = ranks[:topN]
	}
	out := make([]domain.ProductRank, 0, len(ranks))
	for _, rank := range ranks {
		out = append(out, *rank)
	}
	return out
}

func topCustomersBySpend(sales []salesdomain.Sale) []domain.CustomerRank {
	byName := make(map[string]*domain.CustomerRank)
	ranks := make([]*domain.CustomerRank, 0)
	for _, sale := range sales {
		rank, ok := byName[sale.CustomerName]
		if !ok {
			rank = &domain.CustomerRank{CustomerName: sale.CustomerName}
			byName[sale.CustomerName] = rank
			ranks = append(ranks, rank)
		}
		rank.Revenue += sale.Total
		rank.Quantity += sale.Quantity
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Revenue > ranks[j].Revenue
	})
	if len(ranks) > topN {
		ranks = ranks[:topN]
	}
	out := make([]domain.CustomerRank, 0, len(ranks))
	for _, rank := range ranks {
		// Every ranked customer has at least one sale, so Quantity >= 1.
		rank.AverageTicket = rank.Revenue / float64(rank.Quantity)
		out = append(out, *rank)
	}
	return out
}

func revenueShareByProduct(sales []salesdomain.Sale) []domain.ProductRevenue {
	byName := make(map[string]*domain.ProductRevenue)
	shares := make([]*domain.ProductRevenue, 0)
	for _, sale := range sales {
		share, ok := byName[sale.ProductName]
		if !ok {
			share = &domain.ProductRevenue{ProductName: sale.ProductName}
			byName[sale.ProductName] = share
			shares = append(shares, share)
		}
		share.Revenue += sale.Total
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Revenue > shares[j].Revenue
	})
	if len(shares) > topN {
		shares = shares[:topN]
	}
	out := make([]domain.ProductRevenue, 0, len(shares))
	for _, share := range shares {
		out = append(out, *share)
	}
	return out
}

// revenueByCategory joins each sale to its product's category. Sales whose
// product no longer resolves are dropped from this view only.
func revenueByCategory(sales []salesdomain.Sale, products []productdomain.Product) []domain.CategoryRevenue {
	categories := make(map[snowflake.ID]productdomain.Category, len(products))
	for _, product := range products {
		categories[product.ID] = product.Category
	}

	byCategory := make(map[productdomain.Category]*domain.CategoryRevenue)
	out := make([]*domain.CategoryRevenue, 0)
	for _, sale := range sales {
		category, ok := categories[sale.ProductID]
		if !ok {
			continue
		}
		entry, exists := byCategory[category]
		if !exists {
			entry = &domain.CategoryRevenue{Category: category}
			byCategory[category] = entry
			out = append(out, entry)
		}
		entry.Revenue += sale.Total
		entry.Quantity += sale.Quantity
	}

	result := make([]domain.CategoryRevenue, 0, len(out))
	for _, entry := range out {
		result = append(result, *entry)
	}
	return result
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func endOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
}
