package orders

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/db/models"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/enums"
	pkgerrors "github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/errors"
)

type orderRepository interface {
	CreateWithTx(tx *gorm.DB, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindRowByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	FindByStore(ctx context.Context, storeID uuid.UUID) ([]models.Order, error)
	FindRowsByStore(ctx context.Context, storeID uuid.UUID) ([]models.Order, error)
	Update(ctx context.Context, order *models.Order) error
}

type productReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes order operations.
type Service interface {
	Create(ctx context.Context, requesterID uuid.UUID, input CreateOrderInput) (*OrderDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*OrderDTO, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error)
	ListForStore(ctx context.Context, storeID uuid.UUID) ([]OrderDTO, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*OrderDTO, error)
	LinkPayment(ctx context.Context, orderID, paymentID uuid.UUID) (*OrderDTO, error)
	Stats(ctx context.Context, storeID uuid.UUID) (*OrderStatsDTO, error)
}

type service struct {
	repo     orderRepository
	products productReader
	tx       txRunner
}

// NewService builds an order service with the provided dependencies.
func NewService(repo orderRepository, products productReader, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product reader required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, products: products, tx: tx}, nil
}

var (
	timeNow    = time.Now
	randIntN   = rand.Intn
	base36Set  = "0123456789abcdefghijklmnopqrstuvwxyz"
	suffixSize = 9
)

// newOrderNumber produces ORD-<unix millis>-<9 base36 chars>. Uniqueness is
// ultimately guarded by the order_number unique index.
func newOrderNumber() string {
	suffix := make([]byte, suffixSize)
	for i := range suffix {
		suffix[i] = base36Set[randIntN(len(base36Set))]
	}
	return fmt.Sprintf("ORD-%d-%s", timeNow().UnixMilli(), suffix)
}

// Create resolves every requested product, snapshots prices into line items
// and persists the header and items atomically. Stock is informational and is
// never checked or decremented here.
func (s *service) Create(ctx context.Context, requesterID uuid.UUID, input CreateOrderInput) (*OrderDTO, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order items required")
	}

	var subtotal float64
	items := make([]models.OrderItem, 0, len(input.Items))
	for _, line := range input.Items {
		product, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("Product %s not found", line.ProductID)).Indirect()
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}

		lineTotal := product.Price * float64(line.Quantity)
		subtotal += lineTotal
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     product.Price,
			Total:     lineTotal,
			Product:   product,
		})
	}

	order := &models.Order{
		UserID:          requesterID,
		StoreID:         input.StoreID,
		OrderNumber:     newOrderNumber(),
		Items:           items,
		Subtotal:        subtotal,
		Total:           subtotal,
		CustomerEmail:   input.CustomerEmail,
		CustomerName:    input.CustomerName,
		ShippingAddress: input.ShippingAddress,
		Status:          enums.OrderStatusPending,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.CreateWithTx(tx, order)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}
	return FromModel(order), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, orderLookupError(err)
	}
	return FromModel(order), nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error) {
	rows, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list user orders")
	}
	return toDTOs(rows), nil
}

func (s *service) ListForStore(ctx context.Context, storeID uuid.UUID) ([]OrderDTO, error) {
	rows, err := s.repo.FindByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list store orders")
	}
	return toDTOs(rows), nil
}

// UpdateStatus writes the new status without enforcing transition order. The
// vocabulary itself is validated; sequencing is left to callers.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*OrderDTO, error) {
	parsed, err := enums.ParseOrderStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	order, err := s.repo.FindRowByID(ctx, orderID)
	if err != nil {
		return nil, orderResolveError(err)
	}
	order.Status = parsed
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	return FromModel(order), nil
}

// LinkPayment attaches the payment and forces the order to confirmed,
// regardless of the order's prior status.
func (s *service) LinkPayment(ctx context.Context, orderID, paymentID uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindRowByID(ctx, orderID)
	if err != nil {
		return nil, orderResolveError(err)
	}
	order.PaymentID = &paymentID
	order.Status = enums.OrderStatusConfirmed
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "link payment")
	}
	return FromModel(order), nil
}

func (s *service) Stats(ctx context.Context, storeID uuid.UUID) (*OrderStatsDTO, error) {
	rows, err := s.repo.FindRowsByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store orders")
	}

	stats := &OrderStatsDTO{TotalOrders: len(rows)}
	for _, o := range rows {
		switch o.Status {
		case enums.OrderStatusConfirmed:
			stats.ConfirmedOrders++
			stats.TotalRevenue += o.Total
		case enums.OrderStatusPending:
			stats.PendingOrders++
		case enums.OrderStatusShipped:
			stats.ShippedOrders++
		}
	}
	return stats, nil
}

func orderLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Order not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
}

// orderResolveError is for misses inside mutations. Direct lookups keep 404;
// a row that vanishes mid-write surfaces through the legacy 500 path.
func orderResolveError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Order not found").Indirect()
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
}

func toDTOs(rows []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
