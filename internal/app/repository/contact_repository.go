package repository

import (
	"github.com/mallow/storefront/internal/app/model"
	"github.com/mallow/storefront/pkg/logger"
	"gorm.io/gorm"
)

type ContactRepository interface {
	Create(msg *model.ContactMessage) error
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(msg *model.ContactMessage) error {
	if err := r.db.Create(msg).Error; err != nil {
		logger.Error("Failed to create contact message in database", err, map[string]interface{}{
			"email": msg.Email,
		})
		return err
	}
	return nil
}
