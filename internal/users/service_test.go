package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/db/models"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/enums"
	pkgerrors "github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/errors"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/types"
)

func TestResolveOrCreateNewWallet(t *testing.T) {
	repo := &stubUserRepo{}
	svc := newTestService(t, repo)

	dto, err := svc.ResolveOrCreate(context.Background(), "0xabc", nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if repo.created == nil {
		t.Fatal("expected a row to be created")
	}
	if dto.WalletAddress != "0xabc" {
		t.Fatalf("unexpected wallet %q", dto.WalletAddress)
	}
	if dto.EmailVerified {
		t.Fatal("no email means not verified")
	}
	if dto.KYCStatus != enums.KYCStatusPending {
		t.Fatalf("expected pending kyc, got %s", dto.KYCStatus)
	}
}

func TestResolveOrCreateEmailMarksVerified(t *testing.T) {
	repo := &stubUserRepo{}
	svc := newTestService(t, repo)

	email := "owner@example.com"
	dto, err := svc.ResolveOrCreate(context.Background(), "0xabc", &email)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if dto.Email == nil || *dto.Email != email {
		t.Fatalf("expected email %q, got %v", email, dto.Email)
	}
	if !dto.EmailVerified {
		t.Fatal("supplied email must mark itself verified")
	}
}

func TestResolveOrCreateExistingWalletKeepsEmail(t *testing.T) {
	existing := baseUser()
	email := "kept@example.com"
	existing.Email = &email
	existing.EmailVerified = true
	repo := &stubUserRepo{byWallet: existing}
	svc := newTestService(t, repo)

	dto, err := svc.ResolveOrCreate(context.Background(), existing.WalletAddress, nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if repo.created != nil {
		t.Fatal("existing wallet must not create a second row")
	}
	if repo.updated == nil {
		t.Fatal("existing wallet is touched on connect")
	}
	if dto.Email == nil || *dto.Email != email || !dto.EmailVerified {
		t.Fatalf("email must survive a connect without one: %+v", dto)
	}
}

func TestResolveOrCreateExistingWalletUpdatesEmail(t *testing.T) {
	existing := baseUser()
	repo := &stubUserRepo{byWallet: existing}
	svc := newTestService(t, repo)

	email := "late@example.com"
	dto, err := svc.ResolveOrCreate(context.Background(), existing.WalletAddress, &email)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if dto.Email == nil || *dto.Email != email {
		t.Fatalf("expected updated email, got %v", dto.Email)
	}
	if !dto.EmailVerified {
		t.Fatal("newly supplied email must mark itself verified")
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc := newTestService(t, &stubUserRepo{})

	_, err := svc.GetByID(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateProfileAppliesPatch(t *testing.T) {
	user := baseUser()
	repo := &stubUserRepo{byID: user}
	svc := newTestService(t, repo)

	name := "satoshi"
	bio := "building"
	dto, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileInput{Username: &name, Bio: &bio})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if dto.Username == nil || *dto.Username != name {
		t.Fatalf("username not applied: %+v", dto)
	}
	if dto.Bio == nil || *dto.Bio != bio {
		t.Fatalf("bio not applied: %+v", dto)
	}
	if dto.DisplayName != nil {
		t.Fatal("untouched fields must stay untouched")
	}
}

func TestUpdateKYC(t *testing.T) {
	user := baseUser()
	user.KYCData = types.JSONDoc{"document": "passport"}
	repo := &stubUserRepo{byID: user}
	svc := newTestService(t, repo)

	dto, err := svc.UpdateKYC(context.Background(), user.ID, "approved", nil)
	if err != nil {
		t.Fatalf("update kyc: %v", err)
	}
	if dto.KYCStatus != enums.KYCStatusApproved {
		t.Fatalf("expected approved, got %s", dto.KYCStatus)
	}
	if dto.KYCData["document"] != "passport" {
		t.Fatal("nil kycData must keep the stored document")
	}

	_, err = svc.UpdateKYC(context.Background(), user.ID, "vibes", nil)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestStatsRevenueFromConfirmedPaymentsOnly(t *testing.T) {
	user := baseUser()
	svc, err := NewService(
		&stubUserRepo{byID: user},
		stubStoreReader{rows: []models.Store{{ID: uuid.New(), Name: "One"}, {ID: uuid.New(), Name: "Two"}}},
		stubOrderReader{rows: []models.Order{
			{ID: uuid.New(), Total: 500, Status: enums.OrderStatusPending},
			{ID: uuid.New(), Total: 300, Status: enums.OrderStatusConfirmed},
		}},
		stubPaymentReader{rows: []models.Payment{
			{ID: uuid.New(), Amount: 120, Status: enums.PaymentStatusConfirmed},
			{ID: uuid.New(), Amount: 80, Status: enums.PaymentStatusConfirmed},
		}},
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	stats, err := svc.Stats(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.StoreCount != 2 || stats.OrderCount != 2 {
		t.Fatalf("unexpected counts %+v", stats)
	}
	if stats.TotalRevenue != 200 {
		t.Fatalf("revenue must come from confirmed payments, got %f", stats.TotalRevenue)
	}
	if len(stats.Stores) != 2 || len(stats.Orders) != 2 {
		t.Fatalf("stats must carry the full store and order lists: %+v", stats)
	}
}

func newTestService(t *testing.T, repo *stubUserRepo) Service {
	t.Helper()
	svc, err := NewService(repo, stubStoreReader{}, stubOrderReader{}, stubPaymentReader{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func baseUser() *models.User {
	return &models.User{
		ID:            uuid.New(),
		WalletAddress: "0xf00",
		KYCStatus:     enums.KYCStatusPending,
	}
}

type stubUserRepo struct {
	byWallet *models.User
	byID     *models.User
	err      error

	created *models.User
	updated *models.User
}

func (r *stubUserRepo) Create(_ context.Context, user *models.User) error {
	if r.err != nil {
		return r.err
	}
	user.ID = uuid.New()
	r.created = user
	return nil
}

func (r *stubUserRepo) FindByWallet(_ context.Context, walletAddress string) (*models.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.byWallet == nil || r.byWallet.WalletAddress != walletAddress {
		return nil, gorm.ErrRecordNotFound
	}
	return r.byWallet, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	return r.find(id)
}

func (r *stubUserRepo) FindByIDWithStores(_ context.Context, id uuid.UUID) (*models.User, error) {
	return r.find(id)
}

func (r *stubUserRepo) Update(_ context.Context, user *models.User) error {
	if r.err != nil {
		return r.err
	}
	r.updated = user
	return nil
}

func (r *stubUserRepo) find(id uuid.UUID) (*models.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.byID == nil || r.byID.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return r.byID, nil
}

type stubStoreReader struct {
	rows []models.Store
}

func (s stubStoreReader) FindByOwner(_ context.Context, _ uuid.UUID) ([]models.Store, error) {
	return s.rows, nil
}

type stubOrderReader struct {
	rows []models.Order
}

func (s stubOrderReader) FindByUser(_ context.Context, _ uuid.UUID) ([]models.Order, error) {
	return s.rows, nil
}

type stubPaymentReader struct {
	rows []models.Payment
}

func (s stubPaymentReader) FindConfirmedByUser(_ context.Context, _ uuid.UUID) ([]models.Payment, error) {
	return s.rows, nil
}
