package repository

import (
	"github.com/lamnt/koctrack-backend/internal/app/model"
	"github.com/lamnt/koctrack-backend/pkg/logger"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(booking *model.Booking) error
	FindAll() ([]model.Booking, error)
	FindByID(id string) (*model.Booking, error)
	CountByStore(storeID string) (int64, error)
	CountByInfluencer(influencerID string) (int64, error)
	Count() (int64, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(booking *model.Booking) error {
	logger.Debug("Creating booking in database", map[string]interface{}{
		"store_id":      booking.StoreID,
		"influencer_id": booking.InfluencerID,
		"visit_date":    booking.VisitDate,
	})

	if err := r.db.Create(booking).Error; err != nil {
		logger.Error("Failed to create booking in database", err, map[string]interface{}{
			"store_id":      booking.StoreID,
			"influencer_id": booking.InfluencerID,
		})
		return err
	}
	return nil
}

// FindAll returns bookings newest-visit-first; records without a visit date
// sort last, ties broken by creation time descending.
func (r *bookingRepository) FindAll() ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.
		Order("CASE WHEN visit_date = '' THEN 1 ELSE 0 END ASC").
		Order("visit_date DESC").
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		logger.Error("Failed to list bookings", err)
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByID(id string) (*model.Booking, error) {
	var booking model.Booking
	if err := r.db.First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) CountByStore(storeID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Booking{}).Where("store_id = ?", storeID).Count(&count).Error
	return count, err
}

func (r *bookingRepository) CountByInfluencer(influencerID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Booking{}).Where("influencer_id = ?", influencerID).Count(&count).Error
	return count, err
}

func (r *bookingRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Booking{}).Count(&count).Error
	return count, err
}
