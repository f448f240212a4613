package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lamnt/koctrack-backend/internal/app/service"
	apperrors "github.com/lamnt/koctrack-backend/internal/errors"
	"github.com/lamnt/koctrack-backend/internal/middleware"
)

type StoreController struct {
	storeService service.StoreService
}

func NewStoreController(storeService service.StoreService) *StoreController {
	return &StoreController{storeService: storeService}
}

type StoreRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Image   string `json:"image"`
}

type StoreUpdateRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Image   *string `json:"image"`
}

func (ctrl *StoreController) ListStores(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	stores, err := ctrl.storeService.ListStores()
	if err != nil {
		log.Error("Failed to list stores", err, nil)
		apperrors.InternalError(c, "Failed to fetch stores")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":     true,
		"stores": stores,
	})
}

func (ctrl *StoreController) CreateStore(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid store creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	store, err := ctrl.storeService.CreateStore(req.Name, req.Address, req.Image)
	if err != nil {
		log.Error("Failed to create store", err, nil)
		apperrors.InternalError(c, "Failed to create store")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":    true,
		"store": store,
	})
}

func (ctrl *StoreController) UpdateStore(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	var req StoreUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid store update request", map[string]interface{}{
			"store_id": id,
			"error":    err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	store, err := ctrl.storeService.UpdateStore(id, service.StoreMutation{
		Name:    req.Name,
		Address: req.Address,
		Image:   req.Image,
	})
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			apperrors.NotFound(c, apperrors.StoreNotFound, "Store not found")
			return
		}
		log.Error("Failed to update store", err, map[string]interface{}{
			"store_id": id,
		})
		apperrors.InternalError(c, "Failed to update store")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"store": store,
	})
}

func (ctrl *StoreController) DeleteStore(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	err := ctrl.storeService.DeleteStore(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStoreNotFound):
			apperrors.NotFound(c, apperrors.StoreNotFound, "Store not found")
		case errors.Is(err, service.ErrStoreHasBookings):
			apperrors.Conflict(c, apperrors.StoreHasBookings,
				"Store has dependent bookings and cannot be deleted")
		default:
			log.Error("Failed to delete store", err, map[string]interface{}{
				"store_id": id,
			})
			apperrors.InternalError(c, "Failed to delete store")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
