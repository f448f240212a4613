package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/lamnt/koctrack-backend/config"
	"github.com/lamnt/koctrack-backend/internal/app/model"
	"github.com/lamnt/koctrack-backend/pkg/logger"
)

// ErrFetchFailed is the only hard failure this package produces: the page
// could not be retrieved at all. Parse misses degrade to zero metrics.
var ErrFetchFailed = errors.New("failed to fetch video page")

// Result is a best-effort snapshot of a posted video's public metrics.
type Result struct {
	Metrics   model.Metrics `json:"metrics"`
	Caption   string        `json:"caption,omitempty"`
	Cover     string        `json:"cover,omitempty"`
	PostDate  string        `json:"postDate,omitempty"`
	Platform  string        `json:"platform"`
	FetchedAt time.Time     `json:"fetchedAt"`
}

type Scraper struct {
	client *resty.Client
}

func New(cfg config.ScraperConfig) *Scraper {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept-Language", "en-US,en;q=0.9")

	return &Scraper{client: client}
}

// FetchVideoMetrics fetches the video page and runs the extraction
// strategies in order, falling through until one matches. Every stat a
// strategy cannot find stays zero.
func (s *Scraper) FetchVideoMetrics(ctx context.Context, videoURL string) (*Result, error) {
	resp, err := s.client.R().SetContext(ctx).Get(videoURL)
	if err != nil {
		logger.Warn("Video page fetch failed", map[string]interface{}{
			"url":   videoURL,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		logger.Warn("Video page fetch returned non-2xx", map[string]interface{}{
			"url":    videoURL,
			"status": resp.StatusCode(),
		})
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode())
	}

	result := &Result{
		Platform:  PlatformFromURL(videoURL),
		FetchedAt: time.Now(),
	}

	body := resp.String()
	for _, extract := range extractors {
		if found, ok := extract(body); ok {
			result.Metrics = model.Metrics{
				Views:    found.Views,
				Likes:    found.Likes,
				Comments: found.Comments,
				Saves:    found.Saves,
				Shares:   found.Shares,
			}
			result.Caption = found.Caption
			result.Cover = found.Cover
			result.PostDate = found.PostDate
			break
		}
	}
	result.Metrics.Clamp()

	logger.Debug("Video metrics fetched", map[string]interface{}{
		"url":      videoURL,
		"platform": result.Platform,
		"views":    result.Metrics.Views,
	})
	return result, nil
}

// PlatformFromURL derives a platform label from the link's hostname.
func PlatformFromURL(videoURL string) string {
	u, err := url.Parse(videoURL)
	if err != nil || u.Hostname() == "" {
		return "unknown"
	}
	host := strings.ToLower(u.Hostname())
	switch {
	case strings.Contains(host, "tiktok"):
		return "tiktok"
	case strings.Contains(host, "douyin"):
		return "douyin"
	case strings.Contains(host, "youtube"), strings.Contains(host, "youtu.be"):
		return "youtube"
	case strings.Contains(host, "instagram"):
		return "instagram"
	default:
		return host
	}
}
