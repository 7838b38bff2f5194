package repository

import (
	"StreamHub/internal/model"

	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	Create(sub *model.Subscription) error
	Find(subscriber, channel string) (*model.Subscription, error)
	Delete(id string) error
	CountByChannel(channel string) (int64, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(sub *model.Subscription) error {
	return translateError(r.db.Create(sub).Error)
}

func (r *subscriptionRepository) Find(subscriber, channel string) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.Where("subscriber = ? AND channel = ?", subscriber, channel).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.Subscription{}).Error
}

func (r *subscriptionRepository) CountByChannel(channel string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).Where("channel = ?", channel).Count(&count).Error
	return count, err
}
