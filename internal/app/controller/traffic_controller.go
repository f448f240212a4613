package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lamnt/koctrack-backend/internal/app/model"
	"github.com/lamnt/koctrack-backend/internal/app/service"
	apperrors "github.com/lamnt/koctrack-backend/internal/errors"
	"github.com/lamnt/koctrack-backend/internal/middleware"
	"github.com/lamnt/koctrack-backend/internal/scraper"
)

type TrafficController struct {
	trafficService service.TrafficService
	scraper        *scraper.Scraper
}

func NewTrafficController(trafficService service.TrafficService, sc *scraper.Scraper) *TrafficController {
	return &TrafficController{
		trafficService: trafficService,
		scraper:        sc,
	}
}

type TrafficRequest struct {
	BookingID    string               `json:"bookingId"`
	InfluencerID string               `json:"influencerId"`
	PostDate     string               `json:"postDate"`
	VideoLink    string               `json:"videoLink"`
	SourceType   string               `json:"sourceType"`
	Note         string               `json:"note"`
	Metrics      service.MetricsPatch `json:"metrics"`
}

type TrafficUpdateRequest struct {
	BookingID    *string              `json:"bookingId"`
	InfluencerID *string              `json:"influencerId"`
	PostDate     *string              `json:"postDate"`
	VideoLink    *string              `json:"videoLink"`
	Note         *string              `json:"note"`
	Metrics      service.MetricsPatch `json:"metrics"`
}

type TrafficFetchRequest struct {
	VideoLink string `json:"videoLink" binding:"required"`
	LogID     string `json:"logId"`
}

func (ctrl *TrafficController) ListTrafficLogs(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	logs, err := ctrl.trafficService.ListTrafficLogs()
	if err != nil {
		log.Error("Failed to list traffic logs", err, nil)
		apperrors.InternalError(c, "Failed to fetch traffic logs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":   true,
		"logs": logs,
	})
}

func (ctrl *TrafficController) CreateTrafficLog(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req TrafficRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid traffic log creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	entry, err := ctrl.trafficService.CreateTrafficLog(service.TrafficInput{
		BookingID:    req.BookingID,
		InfluencerID: req.InfluencerID,
		PostDate:     req.PostDate,
		VideoLink:    req.VideoLink,
		SourceType:   model.SourceType(req.SourceType),
		Note:         req.Note,
		Metrics:      metricsFromPatch(req.Metrics),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTrafficNoReference):
			apperrors.BadRequest(c, apperrors.TrafficNoReference, "A traffic log must reference a booking or an influencer")
		case errors.Is(err, service.ErrBookingNotFound):
			apperrors.NotFound(c, apperrors.BookingNotFound, "Booking not found")
		case errors.Is(err, service.ErrInfluencerNotFound):
			apperrors.NotFound(c, apperrors.InfluencerNotFound, "Influencer not found")
		default:
			log.Error("Failed to create traffic log", err, nil)
			apperrors.InternalError(c, "Failed to create traffic log")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":  true,
		"log": entry,
	})
}

func (ctrl *TrafficController) UpdateTrafficLog(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	var req TrafficUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid traffic log update request", map[string]interface{}{
			"traffic_log_id": id,
			"error":          err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	entry, err := ctrl.trafficService.UpdateTrafficLog(id, service.TrafficMutation{
		BookingID:    req.BookingID,
		InfluencerID: req.InfluencerID,
		PostDate:     req.PostDate,
		VideoLink:    req.VideoLink,
		Note:         req.Note,
		Metrics:      req.Metrics,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTrafficLogNotFound):
			apperrors.NotFound(c, apperrors.TrafficLogNotFound, "Traffic log not found")
		case errors.Is(err, service.ErrTrafficNoReference):
			apperrors.BadRequest(c, apperrors.TrafficNoReference, "A traffic log must reference a booking or an influencer")
		default:
			log.Error("Failed to update traffic log", err, map[string]interface{}{
				"traffic_log_id": id,
			})
			apperrors.InternalError(c, "Failed to update traffic log")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":  true,
		"log": entry,
	})
}

// FetchMetrics scrapes the given video link and, when a log id is supplied,
// writes the scraped counters onto that log. A scrape failure is a normal
// outcome here, not a server error: the client is told to enter the numbers
// by hand.
func (ctrl *TrafficController) FetchMetrics(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req TrafficFetchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "videoLink is required")
		return
	}

	result, err := ctrl.scraper.FetchVideoMetrics(c.Request.Context(), req.VideoLink)
	if err != nil {
		log.Warn("Metric fetch failed", map[string]interface{}{
			"video_link": req.VideoLink,
			"error":      err.Error(),
		})
		apperrors.RespondWithError(c, http.StatusBadGateway, apperrors.TrafficFetchFailed,
			"Could not fetch metrics automatically, please enter them manually")
		return
	}

	if req.LogID != "" {
		patch := service.MetricsPatch{
			Views:    &result.Metrics.Views,
			Likes:    &result.Metrics.Likes,
			Comments: &result.Metrics.Comments,
			Saves:    &result.Metrics.Saves,
			Shares:   &result.Metrics.Shares,
		}
		entry, err := ctrl.trafficService.UpdateTrafficMetrics(req.LogID, patch, result.PostDate)
		if err != nil {
			if errors.Is(err, service.ErrTrafficLogNotFound) {
				apperrors.NotFound(c, apperrors.TrafficLogNotFound, "Traffic log not found")
				return
			}
			log.Error("Failed to apply fetched metrics", err, map[string]interface{}{
				"traffic_log_id": req.LogID,
			})
			apperrors.InternalError(c, "Failed to apply fetched metrics")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"ok":   true,
			"data": result,
			"log":  entry,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":   true,
		"data": result,
	})
}

func metricsFromPatch(p service.MetricsPatch) model.Metrics {
	var m model.Metrics
	if p.Views != nil {
		m.Views = *p.Views
	}
	if p.Likes != nil {
		m.Likes = *p.Likes
	}
	if p.Comments != nil {
		m.Comments = *p.Comments
	}
	if p.Saves != nil {
		m.Saves = *p.Saves
	}
	if p.Shares != nil {
		m.Shares = *p.Shares
	}
	return m
}
