package service

import (
	"errors"

	"github.com/lamnt/koctrack-backend/internal/app/model"
	"github.com/lamnt/koctrack-backend/internal/app/repository"
	"github.com/lamnt/koctrack-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrInfluencerNotFound      = errors.New("influencer not found")
	ErrInfluencerHasDependents = errors.New("influencer has dependent bookings or traffic logs")
	ErrInfluencerFileNotFound  = errors.New("influencer file not found")
	ErrFileNameRequired        = errors.New("file name is required")
)

type InfluencerMutation struct {
	DisplayName   *string
	Handle        *string
	Avatar        *string
	ContactMethod *string
	ContactInfo   *string
	Notes         *string
	ProfileLink   *string
}

type InfluencerService interface {
	ListInfluencers() ([]model.Influencer, error)
	GetInfluencerByID(id string) (*model.Influencer, error)
	CreateInfluencer(profile *model.Influencer) (*model.Influencer, error)
	UpdateInfluencer(id string, input InfluencerMutation) (*model.Influencer, error)
	DeleteInfluencer(id string) error

	ListFiles(influencerID string, kind model.FileKind) ([]model.InfluencerFile, error)
	GetFile(influencerID, fileID string) (*model.InfluencerFile, error)
	CreateFile(influencerID string, kind model.FileKind, fileName, content string) (*model.InfluencerFile, error)
	DeleteFile(influencerID, fileID string) error
}

type influencerService struct {
	db             *gorm.DB
	influencerRepo repository.InfluencerRepository
	bookingRepo    repository.BookingRepository
	trafficRepo    repository.TrafficRepository
}

func NewInfluencerService(
	db *gorm.DB,
	influencerRepo repository.InfluencerRepository,
	bookingRepo repository.BookingRepository,
	trafficRepo repository.TrafficRepository,
) InfluencerService {
	return &influencerService{
		db:             db,
		influencerRepo: influencerRepo,
		bookingRepo:    bookingRepo,
		trafficRepo:    trafficRepo,
	}
}

func (s *influencerService) ListInfluencers() ([]model.Influencer, error) {
	return s.influencerRepo.FindAll()
}

func (s *influencerService) GetInfluencerByID(id string) (*model.Influencer, error) {
	influencer, err := s.influencerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInfluencerNotFound
		}
		return nil, err
	}
	return influencer, nil
}

func (s *influencerService) CreateInfluencer(profile *model.Influencer) (*model.Influencer, error) {
	if profile.DisplayName == "" && profile.Handle != "" {
		profile.DisplayName = profile.Handle
	}

	if err := s.influencerRepo.Create(profile); err != nil {
		return nil, err
	}

	logger.Info("Influencer created", map[string]interface{}{
		"influencer_id": profile.ID,
		"display_name":  profile.DisplayName,
	})
	return profile, nil
}

// UpdateInfluencer edits a profile and re-syncs the denormalized snapshot
// fields on dependent bookings and traffic logs, mirroring the store rename
// cascade. The whole sync runs in one transaction.
func (s *influencerService) UpdateInfluencer(id string, input InfluencerMutation) (*model.Influencer, error) {
	existing, err := s.influencerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Influencer not found for update", map[string]interface{}{
				"influencer_id": id,
			})
			return nil, ErrInfluencerNotFound
		}
		return nil, err
	}

	snapshotChanged := false
	if input.DisplayName != nil && *input.DisplayName != existing.DisplayName {
		existing.DisplayName = *input.DisplayName
		snapshotChanged = true
	}
	if input.Handle != nil && *input.Handle != existing.Handle {
		existing.Handle = *input.Handle
		snapshotChanged = true
	}
	if input.ContactMethod != nil && *input.ContactMethod != existing.ContactMethod {
		existing.ContactMethod = *input.ContactMethod
		snapshotChanged = true
	}
	if input.ContactInfo != nil && *input.ContactInfo != existing.ContactInfo {
		existing.ContactInfo = *input.ContactInfo
		snapshotChanged = true
	}
	// avatar is replaced only when a non-empty replacement arrives
	if input.Avatar != nil && *input.Avatar != "" {
		existing.Avatar = *input.Avatar
	}
	if input.Notes != nil {
		existing.Notes = *input.Notes
	}
	if input.ProfileLink != nil {
		existing.ProfileLink = *input.ProfileLink
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(existing).Error; err != nil {
			return err
		}
		if !snapshotChanged {
			return nil
		}

		if err := tx.Model(&model.Booking{}).
			Where("influencer_id = ?", existing.ID).
			Updates(map[string]interface{}{
				"creator_name":   existing.DisplayName,
				"handle":         existing.Handle,
				"contact_method": existing.ContactMethod,
				"contact_info":   existing.ContactInfo,
			}).Error; err != nil {
			return err
		}
		return tx.Model(&model.TrafficLog{}).
			Where("influencer_id = ?", existing.ID).
			Update("influencer_name", existing.DisplayName).Error
	})
	if err != nil {
		logger.Error("Failed to update influencer", err, map[string]interface{}{
			"influencer_id": id,
		})
		return nil, err
	}

	logger.Info("Influencer updated", map[string]interface{}{
		"influencer_id":    existing.ID,
		"snapshot_changed": snapshotChanged,
	})
	return existing, nil
}

// DeleteInfluencer removes a profile and cascades its files. Profiles still
// referenced by a booking or traffic log cannot be removed.
func (s *influencerService) DeleteInfluencer(id string) error {
	if _, err := s.influencerRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInfluencerNotFound
		}
		return err
	}

	bookings, err := s.bookingRepo.CountByInfluencer(id)
	if err != nil {
		return err
	}
	trafficLogs, err := s.trafficRepo.CountByInfluencer(id)
	if err != nil {
		return err
	}
	if bookings > 0 || trafficLogs > 0 {
		logger.Warn("Influencer delete blocked by dependents", map[string]interface{}{
			"influencer_id": id,
			"bookings":      bookings,
			"traffic_logs":  trafficLogs,
		})
		return ErrInfluencerHasDependents
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.InfluencerFile{}, "influencer_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Influencer{}, "id = ?", id).Error
	})
	if err != nil {
		logger.Error("Failed to delete influencer", err, map[string]interface{}{
			"influencer_id": id,
		})
		return err
	}

	logger.Info("Influencer deleted", map[string]interface{}{
		"influencer_id": id,
	})
	return nil
}

func (s *influencerService) ListFiles(influencerID string, kind model.FileKind) ([]model.InfluencerFile, error) {
	if _, err := s.GetInfluencerByID(influencerID); err != nil {
		return nil, err
	}
	return s.influencerRepo.FindFiles(influencerID, kind)
}

func (s *influencerService) GetFile(influencerID, fileID string) (*model.InfluencerFile, error) {
	if _, err := s.GetInfluencerByID(influencerID); err != nil {
		return nil, err
	}

	file, err := s.influencerRepo.FindFileByID(influencerID, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInfluencerFileNotFound
		}
		return nil, err
	}
	return file, nil
}

func (s *influencerService) CreateFile(influencerID string, kind model.FileKind, fileName, content string) (*model.InfluencerFile, error) {
	if _, err := s.GetInfluencerByID(influencerID); err != nil {
		return nil, err
	}
	if fileName == "" {
		return nil, ErrFileNameRequired
	}
	if kind != model.FileKindAudit && kind != model.FileKindComment {
		kind = model.FileKindComment
	}

	file := &model.InfluencerFile{
		InfluencerID: influencerID,
		Kind:         kind,
		FileName:     fileName,
		Content:      content,
	}
	if err := s.influencerRepo.CreateFile(file); err != nil {
		return nil, err
	}
	return file, nil
}

func (s *influencerService) DeleteFile(influencerID, fileID string) error {
	if _, err := s.GetInfluencerByID(influencerID); err != nil {
		return err
	}

	err := s.influencerRepo.DeleteFile(influencerID, fileID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInfluencerFileNotFound
	}
	return err
}
