package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/db/models"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/enums"
	pkgerrors "github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/errors"
)

type paymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Payment, error)
	Update(ctx context.Context, payment *models.Payment) error
}

// Service exposes payment operations.
type Service interface {
	Create(ctx context.Context, requesterID uuid.UUID, input CreatePaymentInput) (*PaymentDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*PaymentDTO, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]PaymentDTO, error)
	Confirm(ctx context.Context, paymentID uuid.UUID, txHash string) (*PaymentDTO, error)
	Refund(ctx context.Context, paymentID uuid.UUID) (*PaymentDTO, error)
	CreateEscrow(ctx context.Context, paymentID uuid.UUID, escrowID string) (*PaymentDTO, error)
	ReleaseEscrow(ctx context.Context, paymentID uuid.UUID) (*PaymentDTO, error)
	Stats(ctx context.Context, userID uuid.UUID) (*PaymentStatsDTO, error)
}

type service struct {
	repo paymentRepository
}

// NewService builds a payment service with the provided repository.
func NewService(repo paymentRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payment repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, requesterID uuid.UUID, input CreatePaymentInput) (*PaymentDTO, error) {
	payment := &models.Payment{
		UserID:      requesterID,
		Amount:      input.Amount,
		Currency:    input.Currency,
		FromAddress: input.FromAddress,
		ToAddress:   input.ToAddress,
		ChainID:     input.ChainID,
		Status:      enums.PaymentStatusPending,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payment")
	}
	return FromModel(payment), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*PaymentDTO, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, paymentLookupError(err)
	}
	return FromModel(payment), nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]PaymentDTO, error) {
	rows, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}
	out := make([]PaymentDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

// Confirm stores the caller-supplied hash verbatim and writes confirmed over
// whatever status the payment had. There is no on-chain verification and no
// guard against re-confirming; that permissiveness is the contract.
func (s *service) Confirm(ctx context.Context, paymentID uuid.UUID, txHash string) (*PaymentDTO, error) {
	if strings.TrimSpace(txHash) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Transaction hash required")
	}

	payment, err := s.repo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, paymentResolveError(err)
	}
	payment.Status = enums.PaymentStatusConfirmed
	payment.TxHash = &txHash
	if err := s.repo.Update(ctx, payment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "confirm payment")
	}
	return FromModel(payment), nil
}

// Refund writes the refunded status unconditionally. Any linked order keeps
// its own status.
func (s *service) Refund(ctx context.Context, paymentID uuid.UUID) (*PaymentDTO, error) {
	payment, err := s.repo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, paymentResolveError(err)
	}
	payment.Status = enums.PaymentStatusRefunded
	if err := s.repo.Update(ctx, payment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refund payment")
	}
	return FromModel(payment), nil
}

func (s *service) CreateEscrow(ctx context.Context, paymentID uuid.UUID, escrowID string) (*PaymentDTO, error) {
	if strings.TrimSpace(escrowID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Escrow id required")
	}

	payment, err := s.repo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, paymentResolveError(err)
	}
	status := enums.EscrowStatusPending
	payment.EscrowID = &escrowID
	payment.EscrowStatus = &status
	if err := s.repo.Update(ctx, payment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create escrow")
	}
	return FromModel(payment), nil
}

func (s *service) ReleaseEscrow(ctx context.Context, paymentID uuid.UUID) (*PaymentDTO, error) {
	payment, err := s.repo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, paymentResolveError(err)
	}
	status := enums.EscrowStatusReleased
	payment.EscrowStatus = &status
	if err := s.repo.Update(ctx, payment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release escrow")
	}
	return FromModel(payment), nil
}

func (s *service) Stats(ctx context.Context, userID uuid.UUID) (*PaymentStatsDTO, error) {
	rows, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payments")
	}

	stats := &PaymentStatsDTO{TotalPayments: len(rows)}
	for _, p := range rows {
		switch p.Status {
		case enums.PaymentStatusConfirmed:
			stats.ConfirmedPayments++
			stats.TotalAmount += p.Amount
		case enums.PaymentStatusPending:
			stats.PendingPayments++
			stats.PendingAmount += p.Amount
		case enums.PaymentStatusFailed:
			stats.FailedPayments++
		}
	}
	return stats, nil
}

func paymentLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Payment not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment")
}

// paymentResolveError is for misses inside mutations. Only the direct GET
// keeps 404; confirm, refund and escrow on an unknown id surface through the
// legacy 500 path.
func paymentResolveError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Payment not found").Indirect()
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment")
}
