package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/lamnt/koctrack-backend/config"
	"github.com/lamnt/koctrack-backend/internal/app/model"
	"github.com/lamnt/koctrack-backend/internal/app/repository"
	"github.com/lamnt/koctrack-backend/internal/app/service"
	"github.com/lamnt/koctrack-backend/internal/db"
	"github.com/lamnt/koctrack-backend/internal/scraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFetcher returns canned metrics, or fails for configured links.
type stubFetcher struct {
	metrics  model.Metrics
	postDate string
	failFor  map[string]bool
	calls    []string
}

func (s *stubFetcher) FetchVideoMetrics(_ context.Context, videoURL string) (*scraper.Result, error) {
	s.calls = append(s.calls, videoURL)
	if s.failFor[videoURL] {
		return nil, errors.New("blocked")
	}
	return &scraper.Result{
		Metrics:  s.metrics,
		PostDate: s.postDate,
		Platform: scraper.PlatformFromURL(videoURL),
	}, nil
}

func setupRefreshTest(t *testing.T) (service.TrafficService, service.InfluencerService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	influencerRepo := repository.NewInfluencerRepository(testDB)
	bookingRepo := repository.NewBookingRepository(testDB)
	trafficRepo := repository.NewTrafficRepository(testDB)

	trafficService := service.NewTrafficService(testDB, trafficRepo, bookingRepo, influencerRepo)
	influencerService := service.NewInfluencerService(testDB, influencerRepo, bookingRepo, trafficRepo)
	return trafficService, influencerService
}

func TestTrafficRefreshScheduler_RunOnce(t *testing.T) {
	trafficService, influencerService := setupRefreshTest(t)

	influencer, err := influencerService.CreateInfluencer(&model.Influencer{DisplayName: "Linh Review"})
	require.NoError(t, err)

	log, err := trafficService.CreateTrafficLog(service.TrafficInput{
		InfluencerID: influencer.ID,
		VideoLink:    "https://tiktok.com/@linh/video/1",
		Metrics:      model.Metrics{Views: 100},
	})
	require.NoError(t, err)

	// no link, must be skipped entirely
	noLink, err := trafficService.CreateTrafficLog(service.TrafficInput{
		InfluencerID: influencer.ID,
	})
	require.NoError(t, err)

	fetcher := &stubFetcher{
		metrics:  model.Metrics{Views: 250, Likes: 40},
		postDate: "2026-08-28",
	}
	s := NewTrafficRefreshScheduler(trafficService, fetcher, config.SchedulerConfig{
		Spec:       "0 8 * * *",
		BatchLimit: 100,
	})

	s.RunOnce(context.Background())

	assert.Equal(t, []string{"https://tiktok.com/@linh/video/1"}, fetcher.calls)

	refreshed, err := trafficService.GetTrafficLogByID(log.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 250, refreshed.Views)
	assert.EqualValues(t, 40, refreshed.Likes)
	assert.Equal(t, "2026-08-28", refreshed.PostDate)

	untouched, err := trafficService.GetTrafficLogByID(noLink.ID)
	require.NoError(t, err)
	assert.Zero(t, untouched.Views)
}

func TestTrafficRefreshScheduler_RunOnce_SingleFailureDoesNotAbortBatch(t *testing.T) {
	trafficService, influencerService := setupRefreshTest(t)

	influencer, err := influencerService.CreateInfluencer(&model.Influencer{DisplayName: "Linh Review"})
	require.NoError(t, err)

	bad, err := trafficService.CreateTrafficLog(service.TrafficInput{
		InfluencerID: influencer.ID,
		VideoLink:    "https://tiktok.com/@linh/video/bad",
	})
	require.NoError(t, err)
	good, err := trafficService.CreateTrafficLog(service.TrafficInput{
		InfluencerID: influencer.ID,
		VideoLink:    "https://tiktok.com/@linh/video/good",
	})
	require.NoError(t, err)

	fetcher := &stubFetcher{
		metrics: model.Metrics{Views: 999},
		failFor: map[string]bool{"https://tiktok.com/@linh/video/bad": true},
	}
	s := NewTrafficRefreshScheduler(trafficService, fetcher, config.SchedulerConfig{
		Spec:       "0 8 * * *",
		BatchLimit: 100,
	})

	s.RunOnce(context.Background())

	assert.Len(t, fetcher.calls, 2)

	refreshedGood, err := trafficService.GetTrafficLogByID(good.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 999, refreshedGood.Views)

	refreshedBad, err := trafficService.GetTrafficLogByID(bad.ID)
	require.NoError(t, err)
	assert.Zero(t, refreshedBad.Views)
}

func TestTrafficRefreshScheduler_RunOnce_RespectsBatchLimit(t *testing.T) {
	trafficService, influencerService := setupRefreshTest(t)

	influencer, err := influencerService.CreateInfluencer(&model.Influencer{DisplayName: "Linh Review"})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := trafficService.CreateTrafficLog(service.TrafficInput{
			InfluencerID: influencer.ID,
			VideoLink:    "https://tiktok.com/@linh/video/1",
		})
		require.NoError(t, err)
	}

	fetcher := &stubFetcher{metrics: model.Metrics{Views: 1}}
	s := NewTrafficRefreshScheduler(trafficService, fetcher, config.SchedulerConfig{
		Spec:       "0 8 * * *",
		BatchLimit: 3,
	})

	s.RunOnce(context.Background())
	assert.Len(t, fetcher.calls, 3)
}
