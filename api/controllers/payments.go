package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/api/responses"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/api/validators"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/internal/payments"
	pkgerrors "github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/errors"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/logger"
)

type createPaymentRequest struct {
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	FromAddress string  `json:"fromAddress"`
	ToAddress   string  `json:"toAddress"`
	ChainID     int64   `json:"chainId"`
}

// PaymentCreate records an intended transfer. All fields are required and a
// zero amount or chain id is treated as missing.
func PaymentCreate(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createPaymentRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if req.Amount == 0 || req.Currency == "" || req.FromAddress == "" || req.ToAddress == "" || req.ChainID == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Missing required fields"))
			return
		}

		payment, err := svc.Create(r.Context(), userID, payments.CreatePaymentInput{
			Amount:      req.Amount,
			Currency:    req.Currency,
			FromAddress: req.FromAddress,
			ToAddress:   req.ToAddress,
			ChainID:     req.ChainID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, payment)
	}
}

// PaymentList returns the caller's payments, newest first.
func PaymentList(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListForUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// PaymentGet returns a payment by id. The route is public so checkout pages
// can poll settlement state without credentials.
func PaymentGet(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "paymentID"), "payment id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, payment)
	}
}

type confirmPaymentRequest struct {
	TxHash string `json:"txHash"`
}

// PaymentConfirm marks a payment confirmed with the reported transaction
// hash. The hash is stored verbatim; nothing is verified on chain.
func PaymentConfirm(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "paymentID"), "payment id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req confirmPaymentRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.Confirm(r.Context(), id, req.TxHash)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, payment)
	}
}

// PaymentRefund marks a payment refunded.
func PaymentRefund(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := requesterID(r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := validators.PathUUID(chi.URLParam(r, "paymentID"), "payment id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.Refund(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, payment)
	}
}

type createEscrowRequest struct {
	EscrowID string `json:"escrowId" validate:"required"`
}

// PaymentEscrow attaches an escrow reference to the payment.
func PaymentEscrow(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := requesterID(r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := validators.PathUUID(chi.URLParam(r, "paymentID"), "payment id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createEscrowRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.CreateEscrow(r.Context(), id, req.EscrowID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, payment)
	}
}

// PaymentEscrowRelease marks the payment's escrow as released.
func PaymentEscrowRelease(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := requesterID(r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := validators.PathUUID(chi.URLParam(r, "paymentID"), "payment id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.ReleaseEscrow(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, payment)
	}
}

// PaymentStats returns the caller's payment buckets and amounts.
func PaymentStats(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stats, err := svc.Stats(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}
