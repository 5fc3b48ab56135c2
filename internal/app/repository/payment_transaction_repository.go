package repository

import (
	"errors"

	"github.com/mallow/storefront/internal/app/model"
	"github.com/mallow/storefront/pkg/logger"
	"gorm.io/gorm"
)

type PaymentTransactionRepository interface {
	Create(tx *model.PaymentTransaction) error
	FindBySessionID(sessionID string) (*model.PaymentTransaction, error)
	Update(tx *model.PaymentTransaction) error
}

type paymentTransactionRepository struct {
	db *gorm.DB
}

func NewPaymentTransactionRepository(db *gorm.DB) PaymentTransactionRepository {
	return &paymentTransactionRepository{db: db}
}

func (r *paymentTransactionRepository) Create(tx *model.PaymentTransaction) error {
	logger.Debug("Creating payment transaction in database", map[string]interface{}{
		"session_id": tx.SessionID,
		"cart_id":    tx.CartID,
		"amount":     tx.Amount,
	})

	if err := r.db.Create(tx).Error; err != nil {
		logger.Error("Failed to create payment transaction in database", err, map[string]interface{}{
			"session_id": tx.SessionID,
		})
		return err
	}
	return nil
}

func (r *paymentTransactionRepository) FindBySessionID(sessionID string) (*model.PaymentTransaction, error) {
	var tx model.PaymentTransaction
	if err := r.db.Where("session_id = ?", sessionID).First(&tx).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find payment transaction in database", err, map[string]interface{}{
				"session_id": sessionID,
			})
		}
		return nil, err
	}
	return &tx, nil
}

func (r *paymentTransactionRepository) Update(tx *model.PaymentTransaction) error {
	logger.Debug("Updating payment transaction in database", map[string]interface{}{
		"session_id":     tx.SessionID,
		"status":         tx.Status,
		"payment_status": tx.PaymentStatus,
	})

	if err := r.db.Save(tx).Error; err != nil {
		logger.Error("Failed to update payment transaction in database", err, map[string]interface{}{
			"session_id": tx.SessionID,
		})
		return err
	}
	return nil
}
