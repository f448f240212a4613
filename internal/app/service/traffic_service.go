package service

import (
	"errors"
	"time"

	"github.com/lamnt/koctrack-backend/internal/app/model"
	"github.com/lamnt/koctrack-backend/internal/app/repository"
	"github.com/lamnt/koctrack-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrTrafficLogNotFound = errors.New("traffic log not found")
	ErrTrafficNoReference = errors.New("traffic log must reference a booking or an influencer")
)

type TrafficInput struct {
	BookingID    string
	InfluencerID string
	PostDate     string
	VideoLink    string
	SourceType   model.SourceType
	Note         string
	Metrics      model.Metrics
}

type TrafficMutation struct {
	BookingID    *string
	InfluencerID *string
	PostDate     *string
	VideoLink    *string
	Note         *string
	Metrics      MetricsPatch
}

// MetricsPatch carries partial metric updates; nil fields keep the stored
// value.
type MetricsPatch struct {
	Views    *int64 `json:"views"`
	Likes    *int64 `json:"likes"`
	Comments *int64 `json:"comments"`
	Saves    *int64 `json:"saves"`
	Shares   *int64 `json:"shares"`
}

type TrafficService interface {
	ListTrafficLogs() ([]model.TrafficLog, error)
	GetTrafficLogByID(id string) (*model.TrafficLog, error)
	CreateTrafficLog(input TrafficInput) (*model.TrafficLog, error)
	UpdateTrafficLog(id string, input TrafficMutation) (*model.TrafficLog, error)
	UpdateTrafficMetrics(id string, patch MetricsPatch, postDate string) (*model.TrafficLog, error)
	GetForRefresh(limit int) ([]model.TrafficLog, error)
}

type trafficService struct {
	db             *gorm.DB
	trafficRepo    repository.TrafficRepository
	bookingRepo    repository.BookingRepository
	influencerRepo repository.InfluencerRepository
}

func NewTrafficService(
	db *gorm.DB,
	trafficRepo repository.TrafficRepository,
	bookingRepo repository.BookingRepository,
	influencerRepo repository.InfluencerRepository,
) TrafficService {
	return &trafficService{
		db:             db,
		trafficRepo:    trafficRepo,
		bookingRepo:    bookingRepo,
		influencerRepo: influencerRepo,
	}
}

func (s *trafficService) ListTrafficLogs() ([]model.TrafficLog, error) {
	return s.trafficRepo.FindAll()
}

func (s *trafficService) GetTrafficLogByID(id string) (*model.TrafficLog, error) {
	log, err := s.trafficRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrafficLogNotFound
		}
		return nil, err
	}
	return log, nil
}

// CreateTrafficLog records a measurement. A log tied to a booking inherits
// the booking's display fields as defaults; a standalone log must name an
// influencer explicitly.
func (s *trafficService) CreateTrafficLog(input TrafficInput) (*model.TrafficLog, error) {
	if input.BookingID == "" && input.InfluencerID == "" {
		return nil, ErrTrafficNoReference
	}

	input.Metrics.Clamp()

	log := &model.TrafficLog{
		BookingID:    input.BookingID,
		InfluencerID: input.InfluencerID,
		PostDate:     input.PostDate,
		VideoLink:    input.VideoLink,
		SourceType:   input.SourceType,
		Note:         input.Note,
		Views:        input.Metrics.Views,
		Likes:        input.Metrics.Likes,
		Comments:     input.Metrics.Comments,
		Saves:        input.Metrics.Saves,
		Shares:       input.Metrics.Shares,
		CapturedAt:   time.Now(),
	}

	if input.BookingID != "" {
		booking, err := s.bookingRepo.FindByID(input.BookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBookingNotFound
			}
			return nil, err
		}
		log.InfluencerID = booking.InfluencerID
		log.InfluencerName = booking.CreatorName
		log.StoreName = booking.StoreName
		log.SourceType = booking.SourceType
		if log.PostDate == "" {
			log.PostDate = booking.PostDate
		}
		if log.VideoLink == "" {
			log.VideoLink = booking.VideoLink
		}
	} else {
		influencer, err := s.influencerRepo.FindByID(input.InfluencerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInfluencerNotFound
			}
			return nil, err
		}
		log.InfluencerName = influencer.DisplayName
		if log.SourceType == "" {
			log.SourceType = model.SourceWalkIn
		}
	}

	if err := s.trafficRepo.Create(log); err != nil {
		return nil, err
	}

	logger.Info("Traffic log created", map[string]interface{}{
		"traffic_log_id": log.ID,
		"booking_id":     log.BookingID,
		"influencer_id":  log.InfluencerID,
	})
	return log, nil
}

// UpdateTrafficLog applies a partial edit. Booking and influencer linkage
// is re-resolved so snapshot fields stay current when either parent was
// edited since the log was written.
func (s *trafficService) UpdateTrafficLog(id string, input TrafficMutation) (*model.TrafficLog, error) {
	existing, err := s.trafficRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Traffic log not found for update", map[string]interface{}{
				"traffic_log_id": id,
			})
			return nil, ErrTrafficLogNotFound
		}
		return nil, err
	}

	if input.BookingID != nil {
		existing.BookingID = *input.BookingID
	}
	if input.InfluencerID != nil {
		existing.InfluencerID = *input.InfluencerID
	}
	if existing.BookingID == "" && existing.InfluencerID == "" {
		return nil, ErrTrafficNoReference
	}

	if input.PostDate != nil {
		existing.PostDate = *input.PostDate
	}
	if input.VideoLink != nil {
		existing.VideoLink = *input.VideoLink
	}
	if input.Note != nil {
		existing.Note = *input.Note
	}
	applyMetricsPatch(existing, input.Metrics)

	// re-sync display fields from whatever the log references now
	if existing.BookingID != "" {
		booking, err := s.bookingRepo.FindByID(existing.BookingID)
		if err == nil {
			existing.InfluencerID = booking.InfluencerID
			existing.InfluencerName = booking.CreatorName
			existing.StoreName = booking.StoreName
			existing.SourceType = booking.SourceType
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	} else {
		influencer, err := s.influencerRepo.FindByID(existing.InfluencerID)
		if err == nil {
			existing.InfluencerName = influencer.DisplayName
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	existing.CapturedAt = time.Now()
	if err := s.trafficRepo.Save(existing); err != nil {
		return nil, err
	}

	logger.Info("Traffic log updated", map[string]interface{}{
		"traffic_log_id": existing.ID,
	})
	return existing, nil
}

// UpdateTrafficMetrics is the narrow path used by the scheduled refresh:
// supplied counters overlay the stored ones, clamped at zero, and capturedAt
// moves to now. The whole write is a single row update, so concurrent user
// edits degrade to last-write-wins without corrupting the payload.
func (s *trafficService) UpdateTrafficMetrics(id string, patch MetricsPatch, postDate string) (*model.TrafficLog, error) {
	existing, err := s.trafficRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrafficLogNotFound
		}
		return nil, err
	}

	applyMetricsPatch(existing, patch)
	if postDate != "" {
		existing.PostDate = postDate
	}
	existing.CapturedAt = time.Now()

	if err := s.trafficRepo.Save(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *trafficService) GetForRefresh(limit int) ([]model.TrafficLog, error) {
	return s.trafficRepo.GetForRefresh(limit)
}

func applyMetricsPatch(log *model.TrafficLog, patch MetricsPatch) {
	if patch.Views != nil {
		log.Views = max64(*patch.Views, 0)
	}
	if patch.Likes != nil {
		log.Likes = max64(*patch.Likes, 0)
	}
	if patch.Comments != nil {
		log.Comments = max64(*patch.Comments, 0)
	}
	if patch.Saves != nil {
		log.Saves = max64(*patch.Saves, 0)
	}
	if patch.Shares != nil {
		log.Shares = max64(*patch.Shares, 0)
	}
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
