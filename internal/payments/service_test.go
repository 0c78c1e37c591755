package payments

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/db/models"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/enums"
	pkgerrors "github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/errors"
)

func TestCreateAlwaysStartsPending(t *testing.T) {
	repo := &stubPaymentRepo{}
	svc := newTestService(t, repo)

	dto, err := svc.Create(context.Background(), uuid.New(), CreatePaymentInput{
		Amount:      125.5,
		Currency:    "USDC",
		FromAddress: "0xfrom",
		ToAddress:   "0xto",
		ChainID:     1,
	})
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}
	if dto.Status != enums.PaymentStatusPending {
		t.Fatalf("expected pending, got %s", dto.Status)
	}
	if dto.TxHash != nil {
		t.Fatal("tx hash must be unset at creation")
	}
}

func TestConfirmRequiresTxHash(t *testing.T) {
	svc := newTestService(t, &stubPaymentRepo{})

	_, err := svc.Confirm(context.Background(), uuid.New(), "  ")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestConfirmStoresHashVerbatim(t *testing.T) {
	payment := basePayment()
	repo := &stubPaymentRepo{payment: payment}
	svc := newTestService(t, repo)

	dto, err := svc.Confirm(context.Background(), payment.ID, "0xdeadbeef")
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if dto.Status != enums.PaymentStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", dto.Status)
	}
	if dto.TxHash == nil || *dto.TxHash != "0xdeadbeef" {
		t.Fatalf("expected verbatim hash, got %v", dto.TxHash)
	}
}

func TestConfirmOverwritesTerminalStates(t *testing.T) {
	for _, prior := range []enums.PaymentStatus{enums.PaymentStatusFailed, enums.PaymentStatusConfirmed, enums.PaymentStatusRefunded} {
		payment := basePayment()
		payment.Status = prior
		repo := &stubPaymentRepo{payment: payment}
		svc := newTestService(t, repo)

		dto, err := svc.Confirm(context.Background(), payment.ID, "0xagain")
		if err != nil {
			t.Fatalf("confirm over %s: %v", prior, err)
		}
		if dto.Status != enums.PaymentStatusConfirmed {
			t.Fatalf("expected confirmed over %s, got %s", prior, dto.Status)
		}
	}
}

func TestRefundWritesStatusUnconditionally(t *testing.T) {
	payment := basePayment()
	repo := &stubPaymentRepo{payment: payment}
	svc := newTestService(t, repo)

	dto, err := svc.Refund(context.Background(), payment.ID)
	if err != nil {
		t.Fatalf("refund: %v", err)
	}
	if dto.Status != enums.PaymentStatusRefunded {
		t.Fatalf("expected refunded, got %s", dto.Status)
	}
}

func TestEscrowLifecycle(t *testing.T) {
	payment := basePayment()
	repo := &stubPaymentRepo{payment: payment}
	svc := newTestService(t, repo)

	dto, err := svc.CreateEscrow(context.Background(), payment.ID, "escrow-1")
	if err != nil {
		t.Fatalf("create escrow: %v", err)
	}
	if dto.EscrowID == nil || *dto.EscrowID != "escrow-1" {
		t.Fatalf("expected escrow id, got %v", dto.EscrowID)
	}
	if dto.EscrowStatus == nil || *dto.EscrowStatus != enums.EscrowStatusPending {
		t.Fatalf("expected pending escrow, got %v", dto.EscrowStatus)
	}

	dto, err = svc.ReleaseEscrow(context.Background(), payment.ID)
	if err != nil {
		t.Fatalf("release escrow: %v", err)
	}
	if dto.EscrowStatus == nil || *dto.EscrowStatus != enums.EscrowStatusReleased {
		t.Fatalf("expected released escrow, got %v", dto.EscrowStatus)
	}
	// payment status untouched by escrow transitions
	if dto.Status != enums.PaymentStatusPending {
		t.Fatalf("payment status must be unchanged, got %s", dto.Status)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc := newTestService(t, &stubPaymentRepo{err: gorm.ErrRecordNotFound})

	_, err := svc.GetByID(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if typed.IsIndirect() {
		t.Fatal("a direct lookup miss keeps its 404")
	}
}

func TestConfirmUnknownPaymentIsIndirect(t *testing.T) {
	svc := newTestService(t, &stubPaymentRepo{err: gorm.ErrRecordNotFound})

	_, err := svc.Confirm(context.Background(), uuid.New(), "0xhash")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if !typed.IsIndirect() {
		t.Fatal("an unknown payment inside confirm is not a direct lookup miss")
	}
}

func TestStatsBucketsByStatus(t *testing.T) {
	userID := uuid.New()
	repo := &stubPaymentRepo{list: []models.Payment{
		{ID: uuid.New(), UserID: userID, Amount: 100, Status: enums.PaymentStatusConfirmed},
		{ID: uuid.New(), UserID: userID, Amount: 50, Status: enums.PaymentStatusConfirmed},
		{ID: uuid.New(), UserID: userID, Amount: 30, Status: enums.PaymentStatusPending},
		{ID: uuid.New(), UserID: userID, Amount: 20, Status: enums.PaymentStatusFailed},
		{ID: uuid.New(), UserID: userID, Amount: 10, Status: enums.PaymentStatusRefunded},
	}}
	svc := newTestService(t, repo)

	stats, err := svc.Stats(context.Background(), userID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalPayments != 5 {
		t.Fatalf("expected 5 payments, got %d", stats.TotalPayments)
	}
	if stats.ConfirmedPayments != 2 || stats.PendingPayments != 1 || stats.FailedPayments != 1 {
		t.Fatalf("unexpected buckets %+v", stats)
	}
	if stats.TotalAmount != 150 {
		t.Fatalf("expected confirmed amount 150, got %f", stats.TotalAmount)
	}
	if stats.PendingAmount != 30 {
		t.Fatalf("expected pending amount 30, got %f", stats.PendingAmount)
	}
}

func newTestService(t *testing.T, repo *stubPaymentRepo) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func basePayment() *models.Payment {
	return &models.Payment{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Amount:      100,
		Currency:    "USDC",
		FromAddress: "0xfrom",
		ToAddress:   "0xto",
		ChainID:     1,
		Status:      enums.PaymentStatusPending,
	}
}

type stubPaymentRepo struct {
	payment *models.Payment
	list    []models.Payment
	err     error

	created *models.Payment
	updated *models.Payment
}

func (r *stubPaymentRepo) Create(_ context.Context, payment *models.Payment) error {
	if r.err != nil {
		return r.err
	}
	payment.ID = uuid.New()
	r.created = payment
	return nil
}

func (r *stubPaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Payment, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.payment == nil || r.payment.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return r.payment, nil
}

func (r *stubPaymentRepo) FindByUser(_ context.Context, _ uuid.UUID) ([]models.Payment, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.list, nil
}

func (r *stubPaymentRepo) Update(_ context.Context, payment *models.Payment) error {
	if r.err != nil {
		return r.err
	}
	r.updated = payment
	return nil
}
