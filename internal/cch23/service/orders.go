package service

import (
	"context"
	"errors"

	"codehunt/internal/cch23/repository"
	pkgerrors "codehunt/pkg/errors"
)

// OrderService answers the gift order reports.
type OrderService struct {
	repo repository.OrderRepository
}

func NewOrderService(repo repository.OrderRepository) *OrderService {
	return &OrderService{repo: repo}
}

func dbError(err error) error {
	if err == nil {
		return nil
	}
	return pkgerrors.Wrap(err, pkgerrors.DatabaseError)
}

// Warmup returns the answer of the database warmup query.
func (s *OrderService) Warmup(ctx context.Context) (int64, error) {
	v, err := s.repo.Warmup(ctx)
	return v, dbError(err)
}

// ResetOrders empties the orders table only.
func (s *OrderService) ResetOrders(ctx context.Context) error {
	return dbError(s.repo.ResetOrders(ctx))
}

// ResetAll empties both orders and regions.
func (s *OrderService) ResetAll(ctx context.Context) error {
	return dbError(s.repo.ResetAll(ctx))
}

func (s *OrderService) AddOrders(ctx context.Context, orders []repository.Order) error {
	return dbError(s.repo.InsertOrders(ctx, orders))
}

func (s *OrderService) AddRegions(ctx context.Context, regions []repository.Region) error {
	return dbError(s.repo.InsertRegions(ctx, regions))
}

func (s *OrderService) Total(ctx context.Context) (int64, error) {
	total, err := s.repo.TotalQuantity(ctx)
	return total, dbError(err)
}

// Popular returns the most ordered gift, or nil without orders.
func (s *OrderService) Popular(ctx context.Context) (*string, error) {
	name, ok, err := s.repo.MostPopularGift(ctx)
	if err != nil {
		return nil, dbError(err)
	}
	if !ok {
		return nil, nil
	}
	return &name, nil
}

func (s *OrderService) RegionTotals(ctx context.Context) ([]repository.RegionTotal, error) {
	totals, err := s.repo.TotalsByRegion(ctx)
	return totals, dbError(err)
}

func (s *OrderService) TopGifts(ctx context.Context, limit int) ([]repository.RegionTopGifts, error) {
	top, err := s.repo.TopGiftsByRegion(ctx, limit)
	if errors.Is(err, repository.ErrNegativeLimit) {
		return nil, pkgerrors.New(pkgerrors.InvalidParams).WithMessage(err.Error())
	}
	return top, dbError(err)
}
