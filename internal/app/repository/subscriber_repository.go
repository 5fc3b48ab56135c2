package repository

import (
	"github.com/mallow/storefront/internal/app/model"
	"github.com/mallow/storefront/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriberRepository interface {
	// Create reports false when the email was already subscribed
	Create(sub *model.Subscriber) (bool, error)
	Count() (int64, error)
}

type subscriberRepository struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) SubscriberRepository {
	return &subscriberRepository{db: db}
}

func (r *subscriberRepository) Create(sub *model.Subscriber) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(sub)
	if res.Error != nil {
		logger.Error("Failed to create subscriber in database", res.Error, map[string]interface{}{
			"email": sub.Email,
		})
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *subscriberRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscriber{}).Count(&count).Error
	return count, err
}
