package service

import (
	"errors"

	"github.com/lamnt/koctrack-backend/internal/app/model"
	"github.com/lamnt/koctrack-backend/internal/app/repository"
	"github.com/lamnt/koctrack-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound     = errors.New("booking not found")
	ErrBookingFieldsNeeded = errors.New("storeId, influencerId and visitDate are required")
)

type BookingInput struct {
	StoreID          string
	InfluencerID     string
	VisitDate        string
	VisitWindow      string
	SourceType       model.SourceType
	ServiceDetail    string
	VideoRights      string
	PostDate         string
	VideoLink        string
	BudgetMillionVND float64
	Notes            string
}

type BookingMutation struct {
	StoreID          *string
	InfluencerID     *string
	VisitDate        *string
	VisitWindow      *string
	SourceType       *model.SourceType
	ServiceDetail    *string
	VideoRights      *string
	PostDate         *string
	VideoLink        *string
	BudgetMillionVND *float64
	Notes            *string
}

type BookingService interface {
	ListBookings() ([]model.Booking, error)
	GetBookingByID(id string) (*model.Booking, error)
	CreateBooking(input BookingInput) (*model.Booking, error)
	UpdateBooking(id string, input BookingMutation) (*model.Booking, error)
	DeleteBooking(id string) error
}

type bookingService struct {
	db             *gorm.DB
	bookingRepo    repository.BookingRepository
	storeRepo      repository.StoreRepository
	influencerRepo repository.InfluencerRepository
}

func NewBookingService(
	db *gorm.DB,
	bookingRepo repository.BookingRepository,
	storeRepo repository.StoreRepository,
	influencerRepo repository.InfluencerRepository,
) BookingService {
	return &bookingService{
		db:             db,
		bookingRepo:    bookingRepo,
		storeRepo:      storeRepo,
		influencerRepo: influencerRepo,
	}
}

func (s *bookingService) ListBookings() ([]model.Booking, error) {
	return s.bookingRepo.FindAll()
}

func (s *bookingService) GetBookingByID(id string) (*model.Booking, error) {
	booking, err := s.bookingRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

// CreateBooking resolves both referenced entities and copies their display
// fields onto the booking as snapshots.
func (s *bookingService) CreateBooking(input BookingInput) (*model.Booking, error) {
	if input.StoreID == "" || input.InfluencerID == "" || input.VisitDate == "" {
		return nil, ErrBookingFieldsNeeded
	}

	store, err := s.storeRepo.FindByID(input.StoreID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	influencer, err := s.influencerRepo.FindByID(input.InfluencerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInfluencerNotFound
		}
		return nil, err
	}

	sourceType := input.SourceType
	if sourceType != model.SourceWalkIn {
		sourceType = model.SourceBooking
	}
	if input.BudgetMillionVND < 0 {
		input.BudgetMillionVND = 0
	}

	booking := &model.Booking{
		StoreID:          store.ID,
		InfluencerID:     influencer.ID,
		StoreName:        store.Name,
		CreatorName:      influencer.DisplayName,
		Handle:           influencer.Handle,
		ContactMethod:    influencer.ContactMethod,
		ContactInfo:      influencer.ContactInfo,
		VisitDate:        input.VisitDate,
		VisitWindow:      input.VisitWindow,
		SourceType:       sourceType,
		ServiceDetail:    input.ServiceDetail,
		VideoRights:      input.VideoRights,
		PostDate:         input.PostDate,
		VideoLink:        input.VideoLink,
		BudgetMillionVND: input.BudgetMillionVND,
		Notes:            input.Notes,
	}
	if err := s.bookingRepo.Create(booking); err != nil {
		return nil, err
	}

	logger.Info("Booking created", map[string]interface{}{
		"booking_id":    booking.ID,
		"store_id":      booking.StoreID,
		"influencer_id": booking.InfluencerID,
		"visit_date":    booking.VisitDate,
	})
	return booking, nil
}

// UpdateBooking applies a partial edit. When the store or influencer
// reference changes the snapshots are rebuilt from the new entities, and the
// dependent traffic logs are re-synced: identity fields always follow the
// booking, while postDate/videoLink only follow when the log still carried
// the booking's prior value (manual edits on a log are not overwritten).
func (s *bookingService) UpdateBooking(id string, input BookingMutation) (*model.Booking, error) {
	existing, err := s.bookingRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Booking not found for update", map[string]interface{}{
				"booking_id": id,
			})
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	prevPostDate := existing.PostDate
	prevVideoLink := existing.VideoLink

	if input.StoreID != nil && *input.StoreID != existing.StoreID {
		store, err := s.storeRepo.FindByID(*input.StoreID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrStoreNotFound
			}
			return nil, err
		}
		existing.StoreID = store.ID
		existing.StoreName = store.Name
	}
	if input.InfluencerID != nil && *input.InfluencerID != existing.InfluencerID {
		influencer, err := s.influencerRepo.FindByID(*input.InfluencerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInfluencerNotFound
			}
			return nil, err
		}
		existing.InfluencerID = influencer.ID
		existing.CreatorName = influencer.DisplayName
		existing.Handle = influencer.Handle
		existing.ContactMethod = influencer.ContactMethod
		existing.ContactInfo = influencer.ContactInfo
	}

	if input.VisitDate != nil {
		existing.VisitDate = *input.VisitDate
	}
	if input.VisitWindow != nil {
		existing.VisitWindow = *input.VisitWindow
	}
	if input.SourceType != nil {
		if *input.SourceType == model.SourceWalkIn {
			existing.SourceType = model.SourceWalkIn
		} else {
			existing.SourceType = model.SourceBooking
		}
	}
	if input.ServiceDetail != nil {
		existing.ServiceDetail = *input.ServiceDetail
	}
	if input.VideoRights != nil {
		existing.VideoRights = *input.VideoRights
	}
	if input.PostDate != nil {
		existing.PostDate = *input.PostDate
	}
	if input.VideoLink != nil {
		existing.VideoLink = *input.VideoLink
	}
	if input.BudgetMillionVND != nil {
		existing.BudgetMillionVND = *input.BudgetMillionVND
		if existing.BudgetMillionVND < 0 {
			existing.BudgetMillionVND = 0
		}
	}
	if input.Notes != nil {
		existing.Notes = *input.Notes
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(existing).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.TrafficLog{}).
			Where("booking_id = ?", existing.ID).
			Updates(map[string]interface{}{
				"influencer_id":   existing.InfluencerID,
				"influencer_name": existing.CreatorName,
				"store_name":      existing.StoreName,
				"source_type":     existing.SourceType,
			}).Error; err != nil {
			return err
		}

		if existing.PostDate != prevPostDate {
			if err := tx.Model(&model.TrafficLog{}).
				Where("booking_id = ? AND (post_date = '' OR post_date = ?)", existing.ID, prevPostDate).
				Update("post_date", existing.PostDate).Error; err != nil {
				return err
			}
		}
		if existing.VideoLink != prevVideoLink {
			if err := tx.Model(&model.TrafficLog{}).
				Where("booking_id = ? AND (video_link = '' OR video_link = ?)", existing.ID, prevVideoLink).
				Update("video_link", existing.VideoLink).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to update booking", err, map[string]interface{}{
			"booking_id": id,
		})
		return nil, err
	}

	logger.Info("Booking updated", map[string]interface{}{
		"booking_id": existing.ID,
	})
	return existing, nil
}

// DeleteBooking removes a booking and every traffic log attached to it in
// one transaction, so no orphan rows survive a crash mid-delete.
func (s *bookingService) DeleteBooking(id string) error {
	if _, err := s.bookingRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.TrafficLog{}, "booking_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Booking{}, "id = ?", id).Error
	})
	if err != nil {
		logger.Error("Failed to delete booking", err, map[string]interface{}{
			"booking_id": id,
		})
		return err
	}

	logger.Info("Booking and dependent traffic logs deleted", map[string]interface{}{
		"booking_id": id,
	})
	return nil
}
