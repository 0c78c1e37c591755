package analytics

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/internal/orders"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/db/models"
	pkgerrors "github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/errors"
)

const recentOrderLimit = 5

type orderReader interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

type storeCounter interface {
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

// Service assembles merchant dashboard aggregates.
type Service interface {
	Dashboard(ctx context.Context, userID uuid.UUID) (*DashboardDTO, error)
}

type service struct {
	orders orderReader
	stores storeCounter
}

// NewService builds an analytics service with the provided dependencies.
func NewService(orderR orderReader, storeC storeCounter) (Service, error) {
	if orderR == nil {
		return nil, fmt.Errorf("order reader required")
	}
	if storeC == nil {
		return nil, fmt.Errorf("store counter required")
	}
	return &service{orders: orderR, stores: storeC}, nil
}

// Dashboard sums the caller's order totals regardless of status, counts
// distinct customer emails and returns the five newest orders. The weekly
// series and top products are fixed placeholders until per-day rollups land.
func (s *service) Dashboard(ctx context.Context, userID uuid.UUID) (*DashboardDTO, error) {
	rows, err := s.orders.FindByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user orders")
	}
	storeCount, err := s.stores.CountByOwner(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count user stores")
	}

	var totalSales float64
	customers := make(map[string]struct{}, len(rows))
	for _, o := range rows {
		totalSales += o.Total
		customers[o.CustomerEmail] = struct{}{}
	}

	recent := rows
	if len(recent) > recentOrderLimit {
		recent = recent[:recentOrderLimit]
	}
	recentDTOs := make([]orders.OrderDTO, 0, len(recent))
	for i := range recent {
		recentDTOs = append(recentDTOs, *orders.FromModel(&recent[i]))
	}

	return &DashboardDTO{
		TotalSales:     totalSales,
		TotalOrders:    len(rows),
		TotalCustomers: len(customers),
		ActiveStores:   int(storeCount),
		RecentOrders:   recentDTOs,
		TopProducts:    []TopProductDTO{},
		SalesByDay:     emptyWeek(),
	}, nil
}

func emptyWeek() []DailySalesDTO {
	days := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	out := make([]DailySalesDTO, 0, len(days))
	for _, day := range days {
		out = append(out, DailySalesDTO{Date: day})
	}
	return out
}
