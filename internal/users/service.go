package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/internal/orders"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/internal/stores"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/db/models"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/enums"
	pkgerrors "github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/errors"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/types"
)

type userRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByWallet(ctx context.Context, walletAddress string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByIDWithStores(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

type storeReader interface {
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error)
}

type orderReader interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

type paymentReader interface {
	FindConfirmedByUser(ctx context.Context, userID uuid.UUID) ([]models.Payment, error)
}

// Service exposes user identity and profile operations.
type Service interface {
	ResolveOrCreate(ctx context.Context, walletAddress string, email *string) (*UserDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*UserDTO, error)
	GetByWallet(ctx context.Context, walletAddress string) (*UserDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*UserDTO, error)
	UpdateKYC(ctx context.Context, userID uuid.UUID, status string, kycData types.JSONDoc) (*UserDTO, error)
	Stats(ctx context.Context, userID uuid.UUID) (*UserStatsDTO, error)
}

type service struct {
	repo        userRepository
	storeReader storeReader
	orderReader orderReader
	payReader   paymentReader
}

// NewService builds a user service with the provided dependencies.
func NewService(repo userRepository, storeR storeReader, orderR orderReader, payR paymentReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if storeR == nil {
		return nil, fmt.Errorf("store reader required")
	}
	if orderR == nil {
		return nil, fmt.Errorf("order reader required")
	}
	if payR == nil {
		return nil, fmt.Errorf("payment reader required")
	}
	return &service{repo: repo, storeReader: storeR, orderReader: orderR, payReader: payR}, nil
}

// ResolveOrCreate upserts the identity for a wallet. An existing row is
// touched on every connect; email and emailVerified change only when a
// non-empty email is supplied, and a supplied email marks itself verified.
func (s *service) ResolveOrCreate(ctx context.Context, walletAddress string, email *string) (*UserDTO, error) {
	user, err := s.repo.FindByWallet(ctx, walletAddress)
	switch {
	case err == nil:
		if present(email) {
			user.Email = email
			user.EmailVerified = true
		}
		if err := s.repo.Update(ctx, user); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
		}
		return FromModel(user), nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &models.User{
			WalletAddress: walletAddress,
			Email:         email,
			EmailVerified: present(email),
			KYCStatus:     enums.KYCStatusPending,
		}
		if err := s.repo.Create(ctx, user); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
		}
		return FromModel(user), nil
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
}

// GetByID loads a user together with their stores.
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.repo.FindByIDWithStores(ctx, id)
	if err != nil {
		return nil, userLookupError(err)
	}
	return FromModel(user), nil
}

func (s *service) GetByWallet(ctx context.Context, walletAddress string) (*UserDTO, error) {
	user, err := s.repo.FindByWallet(ctx, walletAddress)
	if err != nil {
		return nil, userLookupError(err)
	}
	return FromModel(user), nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, userLookupError(err)
	}
	if input.Username != nil {
		user.Username = input.Username
	}
	if input.DisplayName != nil {
		user.DisplayName = input.DisplayName
	}
	if input.Avatar != nil {
		user.Avatar = input.Avatar
	}
	if input.Bio != nil {
		user.Bio = input.Bio
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile")
	}
	return FromModel(user), nil
}

// UpdateKYC writes the verification status. The existing kycData document is
// kept when none is supplied.
func (s *service) UpdateKYC(ctx context.Context, userID uuid.UUID, status string, kycData types.JSONDoc) (*UserDTO, error) {
	parsed, err := enums.ParseKYCStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, userLookupError(err)
	}
	user.KYCStatus = parsed
	if kycData != nil {
		user.KYCData = kycData
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update kyc status")
	}
	return FromModel(user), nil
}

// Stats sums revenue from confirmed payments while listing every store and
// order the user owns. Order totals never feed the revenue number.
func (s *service) Stats(ctx context.Context, userID uuid.UUID) (*UserStatsDTO, error) {
	storeRows, err := s.storeReader.FindByOwner(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user stores")
	}
	orderRows, err := s.orderReader.FindByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user orders")
	}
	paymentRows, err := s.payReader.FindConfirmedByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load confirmed payments")
	}

	var revenue float64
	for _, p := range paymentRows {
		revenue += p.Amount
	}

	stats := &UserStatsDTO{
		StoreCount:   len(storeRows),
		OrderCount:   len(orderRows),
		TotalRevenue: revenue,
		Stores:       make([]stores.StoreDTO, 0, len(storeRows)),
		Orders:       make([]orders.OrderDTO, 0, len(orderRows)),
	}
	for i := range storeRows {
		stats.Stores = append(stats.Stores, *stores.FromModel(&storeRows[i]))
	}
	for i := range orderRows {
		stats.Orders = append(stats.Orders, *orders.FromModel(&orderRows[i]))
	}
	return stats, nil
}

func present(s *string) bool {
	return s != nil && *s != ""
}

func userLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "User not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
}
