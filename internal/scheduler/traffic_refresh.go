package scheduler

import (
	"context"

	"github.com/lamnt/koctrack-backend/config"
	"github.com/lamnt/koctrack-backend/internal/app/service"
	"github.com/lamnt/koctrack-backend/internal/scraper"
	"github.com/lamnt/koctrack-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// metricsFetcher is what the refresh job needs from the scraper.
type metricsFetcher interface {
	FetchVideoMetrics(ctx context.Context, videoURL string) (*scraper.Result, error)
}

// TrafficRefreshScheduler re-scrapes metrics for recent traffic logs on a
// daily schedule.
type TrafficRefreshScheduler struct {
	cron           *cron.Cron
	trafficService service.TrafficService
	fetcher        metricsFetcher
	spec           string
	batchLimit     int
}

func NewTrafficRefreshScheduler(
	trafficService service.TrafficService,
	fetcher metricsFetcher,
	cfg config.SchedulerConfig,
) *TrafficRefreshScheduler {
	return &TrafficRefreshScheduler{
		cron:           cron.New(),
		trafficService: trafficService,
		fetcher:        fetcher,
		spec:           cfg.Spec,
		batchLimit:     cfg.BatchLimit,
	}
}

func (s *TrafficRefreshScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.RunOnce(context.Background())
	})
	if err != nil {
		logger.Error("Failed to add cron job for traffic refresh", err)
		return err
	}

	s.cron.Start()
	logger.Info("Traffic refresh scheduler started", map[string]interface{}{
		"spec":  s.spec,
		"limit": s.batchLimit,
	})
	return nil
}

func (s *TrafficRefreshScheduler) Stop() {
	logger.Info("Stopping traffic refresh scheduler...", nil)
	s.cron.Stop()
	logger.Info("Traffic refresh scheduler stopped", nil)
}

// RunOnce refreshes one batch. A failure on any single log is logged and
// skipped; the batch always runs to completion.
func (s *TrafficRefreshScheduler) RunOnce(ctx context.Context) {
	logs, err := s.trafficService.GetForRefresh(s.batchLimit)
	if err != nil {
		logger.Error("Failed to load traffic logs for refresh", err)
		return
	}
	if len(logs) == 0 {
		logger.Debug("No traffic logs eligible for refresh", nil)
		return
	}

	logger.Info("Starting scheduled traffic refresh", map[string]interface{}{
		"count": len(logs),
	})

	refreshed := 0
	for i := range logs {
		entry := &logs[i]

		result, err := s.fetcher.FetchVideoMetrics(ctx, entry.VideoLink)
		if err != nil {
			logger.Warn("Skipping traffic log, fetch failed", map[string]interface{}{
				"traffic_log_id": entry.ID,
				"video_link":     entry.VideoLink,
				"error":          err.Error(),
			})
			continue
		}

		patch := service.MetricsPatch{
			Views:    &result.Metrics.Views,
			Likes:    &result.Metrics.Likes,
			Comments: &result.Metrics.Comments,
			Saves:    &result.Metrics.Saves,
			Shares:   &result.Metrics.Shares,
		}
		if _, err := s.trafficService.UpdateTrafficMetrics(entry.ID, patch, result.PostDate); err != nil {
			logger.Warn("Skipping traffic log, update failed", map[string]interface{}{
				"traffic_log_id": entry.ID,
				"error":          err.Error(),
			})
			continue
		}
		refreshed++
	}

	logger.Info("Scheduled traffic refresh finished", map[string]interface{}{
		"total":     len(logs),
		"refreshed": refreshed,
	})
}
