package service

import (
	"github.com/lamnt/koctrack-backend/internal/app/model"
	"github.com/lamnt/koctrack-backend/internal/app/repository"
)

// Overview is the dashboard aggregate: booking totals, cross-log metric
// sums, and entity counts.
type Overview struct {
	Bookings        BookingTotals `json:"bookings"`
	Traffic         model.Metrics `json:"traffic"`
	StoreCount      int64         `json:"storeCount"`
	InfluencerCount int64         `json:"influencerCount"`
}

type OverviewService interface {
	BuildOverview() (*Overview, error)
}

type overviewService struct {
	bookingRepo    repository.BookingRepository
	trafficRepo    repository.TrafficRepository
	storeRepo      repository.StoreRepository
	influencerRepo repository.InfluencerRepository
}

func NewOverviewService(
	bookingRepo repository.BookingRepository,
	trafficRepo repository.TrafficRepository,
	storeRepo repository.StoreRepository,
	influencerRepo repository.InfluencerRepository,
) OverviewService {
	return &overviewService{
		bookingRepo:    bookingRepo,
		trafficRepo:    trafficRepo,
		storeRepo:      storeRepo,
		influencerRepo: influencerRepo,
	}
}

func (s *overviewService) BuildOverview() (*Overview, error) {
	bookings, err := s.bookingRepo.FindAll()
	if err != nil {
		return nil, err
	}
	metrics, err := s.trafficRepo.SumMetrics()
	if err != nil {
		return nil, err
	}
	storeCount, err := s.storeRepo.Count()
	if err != nil {
		return nil, err
	}
	influencerCount, err := s.influencerRepo.Count()
	if err != nil {
		return nil, err
	}

	summary := BuildSummary(bookings)
	return &Overview{
		Bookings:        summary.Totals,
		Traffic:         *metrics,
		StoreCount:      storeCount,
		InfluencerCount: influencerCount,
	}, nil
}
