package payments

import (
	"time"

	"github.com/google/uuid"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/db/models"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/enums"
)

// PaymentDTO is the transport shape of a payment record. Field names are part
// of the wire contract.
type PaymentDTO struct {
	ID           uuid.UUID           `json:"id"`
	UserID       uuid.UUID           `json:"userId"`
	Amount       float64             `json:"amount"`
	Currency     string              `json:"currency"`
	FromAddress  string              `json:"fromAddress"`
	ToAddress    string              `json:"toAddress"`
	ChainID      int64               `json:"chainId"`
	Status       enums.PaymentStatus `json:"status"`
	TxHash       *string             `json:"txHash"`
	EscrowID     *string             `json:"escrowId"`
	EscrowStatus *enums.EscrowStatus `json:"escrowStatus"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// CreatePaymentInput holds creation-time payment data.
type CreatePaymentInput struct {
	Amount      float64
	Currency    string
	FromAddress string
	ToAddress   string
	ChainID     int64
}

// PaymentStatsDTO buckets a user's payments by status.
type PaymentStatsDTO struct {
	TotalPayments     int     `json:"totalPayments"`
	ConfirmedPayments int     `json:"confirmedPayments"`
	PendingPayments   int     `json:"pendingPayments"`
	FailedPayments    int     `json:"failedPayments"`
	TotalAmount       float64 `json:"totalAmount"`
	PendingAmount     float64 `json:"pendingAmount"`
}

// FromModel maps the persisted payment into a DTO.
func FromModel(p *models.Payment) *PaymentDTO {
	if p == nil {
		return nil
	}
	return &PaymentDTO{
		ID:           p.ID,
		UserID:       p.UserID,
		Amount:       p.Amount,
		Currency:     p.Currency,
		FromAddress:  p.FromAddress,
		ToAddress:    p.ToAddress,
		ChainID:      p.ChainID,
		Status:       p.Status,
		TxHash:       p.TxHash,
		EscrowID:     p.EscrowID,
		EscrowStatus: p.EscrowStatus,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
