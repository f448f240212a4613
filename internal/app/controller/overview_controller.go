package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lamnt/koctrack-backend/internal/app/service"
	"github.com/lamnt/koctrack-backend/internal/db"
	apperrors "github.com/lamnt/koctrack-backend/internal/errors"
	"github.com/lamnt/koctrack-backend/internal/middleware"
)

type OverviewController struct {
	overviewService   service.OverviewService
	storeService      service.StoreService
	influencerService service.InfluencerService
	bookingService    service.BookingService
	trafficService    service.TrafficService
}

func NewOverviewController(
	overviewService service.OverviewService,
	storeService service.StoreService,
	influencerService service.InfluencerService,
	bookingService service.BookingService,
	trafficService service.TrafficService,
) *OverviewController {
	return &OverviewController{
		overviewService:   overviewService,
		storeService:      storeService,
		influencerService: influencerService,
		bookingService:    bookingService,
		trafficService:    trafficService,
	}
}

func (ctrl *OverviewController) GetOverview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	overview, err := ctrl.overviewService.BuildOverview()
	if err != nil {
		log.Error("Failed to build overview", err, nil)
		apperrors.InternalError(c, "Failed to build overview")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":   true,
		"data": overview,
	})
}

// Export dumps every collection as one JSON document. The same document
// format is accepted as the bootstrap file on first run.
func (ctrl *OverviewController) Export(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	stores, err := ctrl.storeService.ListStores()
	if err != nil {
		log.Error("Failed to export stores", err, nil)
		apperrors.InternalError(c, "Failed to export data")
		return
	}
	influencers, err := ctrl.influencerService.ListInfluencers()
	if err != nil {
		log.Error("Failed to export influencers", err, nil)
		apperrors.InternalError(c, "Failed to export data")
		return
	}
	bookings, err := ctrl.bookingService.ListBookings()
	if err != nil {
		log.Error("Failed to export bookings", err, nil)
		apperrors.InternalError(c, "Failed to export data")
		return
	}
	trafficLogs, err := ctrl.trafficService.ListTrafficLogs()
	if err != nil {
		log.Error("Failed to export traffic logs", err, nil)
		apperrors.InternalError(c, "Failed to export data")
		return
	}

	c.JSON(http.StatusOK, db.ExportDocument{
		Stores:      stores,
		Influencers: influencers,
		Bookings:    bookings,
		TrafficLogs: trafficLogs,
	})
}
