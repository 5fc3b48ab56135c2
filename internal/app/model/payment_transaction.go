package model

import (
	"time"
)

type TransactionStatus string // provider session status
type PaymentState string      // provider payment status

const (
	TransactionStatusPending  TransactionStatus = "pending"
	TransactionStatusOpen     TransactionStatus = "open"
	TransactionStatusComplete TransactionStatus = "complete"
	TransactionStatusExpired  TransactionStatus = "expired"

	PaymentStatePending PaymentState = "pending"
	PaymentStateUnpaid  PaymentState = "unpaid"
	PaymentStatePaid    PaymentState = "paid"
)

// PaymentTransaction records one checkout session with the payment provider
type PaymentTransaction struct {
	ID            uint              `gorm:"primarykey" json:"id"`
	SessionID     string            `gorm:"size:255;not null;uniqueIndex" json:"session_id"`
	CartID        string            `gorm:"size:36;not null;index" json:"cart_id"`
	Amount        float64           `gorm:"not null" json:"amount"`
	Currency      string            `gorm:"type:varchar(3);not null" json:"currency"`
	Status        TransactionStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	PaymentStatus PaymentState      `gorm:"type:varchar(20);default:'pending'" json:"payment_status"`
	PaidAt        *time.Time        `json:"paid_at,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func (PaymentTransaction) TableName() string {
	return "payment_transactions"
}

func (t *PaymentTransaction) IsPaid() bool {
	return t.PaymentStatus == PaymentStatePaid
}
