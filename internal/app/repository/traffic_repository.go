package repository

import (
	"github.com/lamnt/koctrack-backend/internal/app/model"
	"github.com/lamnt/koctrack-backend/pkg/logger"
	"gorm.io/gorm"
)

type TrafficRepository interface {
	Create(log *model.TrafficLog) error
	Save(log *model.TrafficLog) error
	FindAll() ([]model.TrafficLog, error)
	FindByID(id string) (*model.TrafficLog, error)
	FindByBooking(bookingID string) ([]model.TrafficLog, error)
	GetForRefresh(limit int) ([]model.TrafficLog, error)
	CountByInfluencer(influencerID string) (int64, error)
	SumMetrics() (*model.Metrics, error)
}

type trafficRepository struct {
	db *gorm.DB
}

func NewTrafficRepository(db *gorm.DB) TrafficRepository {
	return &trafficRepository{db: db}
}

func (r *trafficRepository) Create(log *model.TrafficLog) error {
	logger.Debug("Creating traffic log in database", map[string]interface{}{
		"booking_id":    log.BookingID,
		"influencer_id": log.InfluencerID,
	})

	if err := r.db.Create(log).Error; err != nil {
		logger.Error("Failed to create traffic log in database", err, map[string]interface{}{
			"booking_id": log.BookingID,
		})
		return err
	}
	return nil
}

func (r *trafficRepository) Save(log *model.TrafficLog) error {
	if err := r.db.Save(log).Error; err != nil {
		logger.Error("Failed to update traffic log in database", err, map[string]interface{}{
			"traffic_log_id": log.ID,
		})
		return err
	}
	return nil
}

func (r *trafficRepository) FindAll() ([]model.TrafficLog, error) {
	var logs []model.TrafficLog
	if err := r.db.Order("captured_at DESC").Find(&logs).Error; err != nil {
		logger.Error("Failed to list traffic logs", err)
		return nil, err
	}
	return logs, nil
}

func (r *trafficRepository) FindByID(id string) (*model.TrafficLog, error) {
	var log model.TrafficLog
	if err := r.db.First(&log, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *trafficRepository) FindByBooking(bookingID string) ([]model.TrafficLog, error) {
	var logs []model.TrafficLog
	err := r.db.Where("booking_id = ?", bookingID).Order("captured_at DESC").Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// GetForRefresh returns up to limit logs that carry a video link, most
// recently captured first. The scheduled refresh job walks this slice.
func (r *trafficRepository) GetForRefresh(limit int) ([]model.TrafficLog, error) {
	var logs []model.TrafficLog
	err := r.db.
		Where("video_link <> ''").
		Order("captured_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		logger.Error("Failed to fetch traffic logs for refresh", err)
		return nil, err
	}
	return logs, nil
}

func (r *trafficRepository) CountByInfluencer(influencerID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.TrafficLog{}).Where("influencer_id = ?", influencerID).Count(&count).Error
	return count, err
}

// SumMetrics aggregates all counters across every traffic log for the
// overview dashboard.
func (r *trafficRepository) SumMetrics() (*model.Metrics, error) {
	var sums model.Metrics
	err := r.db.Model(&model.TrafficLog{}).
		Select("COALESCE(SUM(views),0) as views, COALESCE(SUM(likes),0) as likes, COALESCE(SUM(comments),0) as comments, COALESCE(SUM(saves),0) as saves, COALESCE(SUM(shares),0) as shares").
		Scan(&sums).Error
	if err != nil {
		logger.Error("Failed to sum traffic metrics", err)
		return nil, err
	}
	return &sums, nil
}
