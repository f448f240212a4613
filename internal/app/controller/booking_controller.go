package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lamnt/koctrack-backend/internal/app/model"
	"github.com/lamnt/koctrack-backend/internal/app/service"
	apperrors "github.com/lamnt/koctrack-backend/internal/errors"
	"github.com/lamnt/koctrack-backend/internal/middleware"
	"github.com/xuri/excelize/v2"
)

type BookingController struct {
	bookingService service.BookingService
	storeService   service.StoreService
}

func NewBookingController(bookingService service.BookingService, storeService service.StoreService) *BookingController {
	return &BookingController{
		bookingService: bookingService,
		storeService:   storeService,
	}
}

type BookingRequest struct {
	StoreID          string  `json:"storeId" binding:"required"`
	InfluencerID     string  `json:"influencerId" binding:"required"`
	VisitDate        string  `json:"visitDate" binding:"required"`
	VisitWindow      string  `json:"visitWindow"`
	SourceType       string  `json:"sourceType"`
	ServiceDetail    string  `json:"serviceDetail"`
	VideoRights      string  `json:"videoRights"`
	PostDate         string  `json:"postDate"`
	VideoLink        string  `json:"videoLink"`
	BudgetMillionVND float64 `json:"budgetMillionVND"`
	Notes            string  `json:"notes"`
}

type BookingUpdateRequest struct {
	StoreID          *string  `json:"storeId"`
	InfluencerID     *string  `json:"influencerId"`
	VisitDate        *string  `json:"visitDate"`
	VisitWindow      *string  `json:"visitWindow"`
	SourceType       *string  `json:"sourceType"`
	ServiceDetail    *string  `json:"serviceDetail"`
	VideoRights      *string  `json:"videoRights"`
	PostDate         *string  `json:"postDate"`
	VideoLink        *string  `json:"videoLink"`
	BudgetMillionVND *float64 `json:"budgetMillionVND"`
	Notes            *string  `json:"notes"`
}

// ListBookings returns the filtered records together with the echo of the
// applied filters, a dashboard summary over the filtered set, and the store
// list the frontend uses to render the store picker.
func (ctrl *BookingController) ListBookings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := service.BookingFilter{
		Store:     c.DefaultQuery("store", service.StoreFilterAll),
		Q:         c.Query("q"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}

	all, err := ctrl.bookingService.ListBookings()
	if err != nil {
		log.Error("Failed to list bookings", err, nil)
		apperrors.InternalError(c, "Failed to fetch bookings")
		return
	}
	stores, err := ctrl.storeService.ListStores()
	if err != nil {
		log.Error("Failed to list stores for booking view", err, nil)
		apperrors.InternalError(c, "Failed to fetch bookings")
		return
	}

	records := service.FilterBookings(all, filter)

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"filters": filter,
		"records": records,
		"summary": service.BuildSummary(records),
		"stores":  stores,
	})
}

func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid booking creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationRequired, "storeId, influencerId and visitDate are required")
		return
	}

	booking, err := ctrl.bookingService.CreateBooking(service.BookingInput{
		StoreID:          req.StoreID,
		InfluencerID:     req.InfluencerID,
		VisitDate:        req.VisitDate,
		VisitWindow:      req.VisitWindow,
		SourceType:       model.SourceType(req.SourceType),
		ServiceDetail:    req.ServiceDetail,
		VideoRights:      req.VideoRights,
		PostDate:         req.PostDate,
		VideoLink:        req.VideoLink,
		BudgetMillionVND: req.BudgetMillionVND,
		Notes:            req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingFieldsNeeded):
			apperrors.BadRequest(c, apperrors.ValidationRequired, "storeId, influencerId and visitDate are required")
		case errors.Is(err, service.ErrStoreNotFound):
			apperrors.NotFound(c, apperrors.StoreNotFound, "Store not found")
		case errors.Is(err, service.ErrInfluencerNotFound):
			apperrors.NotFound(c, apperrors.InfluencerNotFound, "Influencer not found")
		default:
			log.Error("Failed to create booking", err, nil)
			apperrors.InternalError(c, "Failed to create booking")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":      true,
		"record":  booking,
		"summary": ctrl.currentSummary(c),
	})
}

func (ctrl *BookingController) UpdateBooking(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	var req BookingUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid booking update request", map[string]interface{}{
			"booking_id": id,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	var sourceType *model.SourceType
	if req.SourceType != nil {
		st := model.SourceType(*req.SourceType)
		sourceType = &st
	}

	booking, err := ctrl.bookingService.UpdateBooking(id, service.BookingMutation{
		StoreID:          req.StoreID,
		InfluencerID:     req.InfluencerID,
		VisitDate:        req.VisitDate,
		VisitWindow:      req.VisitWindow,
		SourceType:       sourceType,
		ServiceDetail:    req.ServiceDetail,
		VideoRights:      req.VideoRights,
		PostDate:         req.PostDate,
		VideoLink:        req.VideoLink,
		BudgetMillionVND: req.BudgetMillionVND,
		Notes:            req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			apperrors.NotFound(c, apperrors.BookingNotFound, "Booking not found")
		case errors.Is(err, service.ErrStoreNotFound):
			apperrors.NotFound(c, apperrors.StoreNotFound, "Store not found")
		case errors.Is(err, service.ErrInfluencerNotFound):
			apperrors.NotFound(c, apperrors.InfluencerNotFound, "Influencer not found")
		default:
			log.Error("Failed to update booking", err, map[string]interface{}{
				"booking_id": id,
			})
			apperrors.InternalError(c, "Failed to update booking")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"record":  booking,
		"summary": ctrl.currentSummary(c),
	})
}

func (ctrl *BookingController) DeleteBooking(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	err := ctrl.bookingService.DeleteBooking(id)
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			apperrors.NotFound(c, apperrors.BookingNotFound, "Booking not found")
			return
		}
		log.Error("Failed to delete booking", err, map[string]interface{}{
			"booking_id": id,
		})
		apperrors.InternalError(c, "Failed to delete booking")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"summary": ctrl.currentSummary(c),
	})
}

// currentSummary recomputes the dashboard summary after a write so the
// frontend can refresh its header without a second round trip.
func (ctrl *BookingController) currentSummary(c *gin.Context) service.BookingSummary {
	all, err := ctrl.bookingService.ListBookings()
	if err != nil {
		log := middleware.GetLoggerFromContext(c)
		log.Warn("Failed to rebuild booking summary", map[string]interface{}{
			"error": err.Error(),
		})
		return service.BookingSummary{Upcoming: []model.Booking{}}
	}
	return service.BuildSummary(all)
}

var bookingExportHeader = []string{
	"ID", "Store", "Creator", "Handle", "Contact Method", "Contact Info",
	"Visit Date", "Visit Window", "Source", "Service Detail", "Video Rights",
	"Post Date", "Video Link", "Budget (M VND)", "Notes",
}

// ExportBookings streams the filtered booking list as a spreadsheet.
func (ctrl *BookingController) ExportBookings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	all, err := ctrl.bookingService.ListBookings()
	if err != nil {
		log.Error("Failed to list bookings for export", err, nil)
		apperrors.InternalError(c, "Failed to export bookings")
		return
	}
	records := service.FilterBookings(all, service.BookingFilter{
		Store:     c.DefaultQuery("store", service.StoreFilterAll),
		Q:         c.Query("q"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	})

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Warn("Failed to close export workbook", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	const sheet = "Bookings"
	index, err := f.NewSheet(sheet)
	if err != nil {
		log.Error("Failed to create export sheet", err, nil)
		apperrors.InternalError(c, "Failed to export bookings")
		return
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		log.Warn("Failed to drop default sheet", map[string]interface{}{
			"error": err.Error(),
		})
	}

	for col, title := range bookingExportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			log.Error("Failed to write export header", err, nil)
			apperrors.InternalError(c, "Failed to export bookings")
			return
		}
	}

	for i, b := range records {
		row := []interface{}{
			b.ID, b.StoreName, b.CreatorName, b.Handle, b.ContactMethod, b.ContactInfo,
			b.VisitDate, b.VisitWindow, string(b.SourceType), b.ServiceDetail, b.VideoRights,
			b.PostDate, b.VideoLink, b.BudgetMillionVND, b.Notes,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			log.Error("Failed to write export row", err, map[string]interface{}{
				"booking_id": b.ID,
			})
			apperrors.InternalError(c, "Failed to export bookings")
			return
		}
	}

	filename := fmt.Sprintf("bookings-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		log.Error("Failed to stream export workbook", err, nil)
	}
}
