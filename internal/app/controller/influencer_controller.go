package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lamnt/koctrack-backend/internal/app/model"
	"github.com/lamnt/koctrack-backend/internal/app/service"
	apperrors "github.com/lamnt/koctrack-backend/internal/errors"
	"github.com/lamnt/koctrack-backend/internal/middleware"
)

type InfluencerController struct {
	influencerService service.InfluencerService
}

func NewInfluencerController(influencerService service.InfluencerService) *InfluencerController {
	return &InfluencerController{influencerService: influencerService}
}

type InfluencerRequest struct {
	DisplayName   string `json:"displayName"`
	Handle        string `json:"handle"`
	Avatar        string `json:"avatar"`
	ContactMethod string `json:"contactMethod"`
	ContactInfo   string `json:"contactInfo"`
	Notes         string `json:"notes"`
	ProfileLink   string `json:"profileLink"`
}

type InfluencerUpdateRequest struct {
	DisplayName   *string `json:"displayName"`
	Handle        *string `json:"handle"`
	Avatar        *string `json:"avatar"`
	ContactMethod *string `json:"contactMethod"`
	ContactInfo   *string `json:"contactInfo"`
	Notes         *string `json:"notes"`
	ProfileLink   *string `json:"profileLink"`
}

type InfluencerFileRequest struct {
	Kind     string `json:"kind"`
	FileName string `json:"fileName" binding:"required"`
	Content  string `json:"content"`
}

func (ctrl *InfluencerController) ListInfluencers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	influencers, err := ctrl.influencerService.ListInfluencers()
	if err != nil {
		log.Error("Failed to list influencers", err, nil)
		apperrors.InternalError(c, "Failed to fetch influencers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":          true,
		"influencers": influencers,
	})
}

func (ctrl *InfluencerController) CreateInfluencer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req InfluencerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid influencer creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	influencer, err := ctrl.influencerService.CreateInfluencer(&model.Influencer{
		DisplayName:   req.DisplayName,
		Handle:        req.Handle,
		Avatar:        req.Avatar,
		ContactMethod: req.ContactMethod,
		ContactInfo:   req.ContactInfo,
		Notes:         req.Notes,
		ProfileLink:   req.ProfileLink,
	})
	if err != nil {
		log.Error("Failed to create influencer", err, nil)
		apperrors.InternalError(c, "Failed to create influencer")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":         true,
		"influencer": influencer,
	})
}

func (ctrl *InfluencerController) UpdateInfluencer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	var req InfluencerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid influencer update request", map[string]interface{}{
			"influencer_id": id,
			"error":         err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	influencer, err := ctrl.influencerService.UpdateInfluencer(id, service.InfluencerMutation{
		DisplayName:   req.DisplayName,
		Handle:        req.Handle,
		Avatar:        req.Avatar,
		ContactMethod: req.ContactMethod,
		ContactInfo:   req.ContactInfo,
		Notes:         req.Notes,
		ProfileLink:   req.ProfileLink,
	})
	if err != nil {
		if errors.Is(err, service.ErrInfluencerNotFound) {
			apperrors.NotFound(c, apperrors.InfluencerNotFound, "Influencer not found")
			return
		}
		log.Error("Failed to update influencer", err, map[string]interface{}{
			"influencer_id": id,
		})
		apperrors.InternalError(c, "Failed to update influencer")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"influencer": influencer,
	})
}

func (ctrl *InfluencerController) DeleteInfluencer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	err := ctrl.influencerService.DeleteInfluencer(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInfluencerNotFound):
			apperrors.NotFound(c, apperrors.InfluencerNotFound, "Influencer not found")
		case errors.Is(err, service.ErrInfluencerHasDependents):
			apperrors.Conflict(c, apperrors.InfluencerHasDependents,
				"Influencer still has bookings or traffic logs and cannot be deleted")
		default:
			log.Error("Failed to delete influencer", err, map[string]interface{}{
				"influencer_id": id,
			})
			apperrors.InternalError(c, "Failed to delete influencer")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (ctrl *InfluencerController) ListFiles(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	files, err := ctrl.influencerService.ListFiles(id, model.FileKind(c.Query("kind")))
	if err != nil {
		if errors.Is(err, service.ErrInfluencerNotFound) {
			apperrors.NotFound(c, apperrors.InfluencerNotFound, "Influencer not found")
			return
		}
		log.Error("Failed to list influencer files", err, map[string]interface{}{
			"influencer_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch files")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"files": files,
	})
}

func (ctrl *InfluencerController) GetFile(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")
	fileID := c.Param("fileId")

	file, err := ctrl.influencerService.GetFile(id, fileID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInfluencerNotFound):
			apperrors.NotFound(c, apperrors.InfluencerNotFound, "Influencer not found")
		case errors.Is(err, service.ErrInfluencerFileNotFound):
			apperrors.NotFound(c, apperrors.InfluencerFileNotFound, "File not found")
		default:
			log.Error("Failed to fetch influencer file", err, map[string]interface{}{
				"influencer_id": id,
				"file_id":       fileID,
			})
			apperrors.InternalError(c, "Failed to fetch file")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":   true,
		"file": file,
	})
}

func (ctrl *InfluencerController) CreateFile(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	var req InfluencerFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid file creation request", map[string]interface{}{
			"influencer_id": id,
			"error":         err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	file, err := ctrl.influencerService.CreateFile(id, model.FileKind(req.Kind), req.FileName, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInfluencerNotFound):
			apperrors.NotFound(c, apperrors.InfluencerNotFound, "Influencer not found")
		case errors.Is(err, service.ErrFileNameRequired):
			apperrors.BadRequest(c, apperrors.ValidationRequired, "File name is required")
		default:
			log.Error("Failed to create influencer file", err, map[string]interface{}{
				"influencer_id": id,
			})
			apperrors.InternalError(c, "Failed to create file")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":   true,
		"file": file,
	})
}

func (ctrl *InfluencerController) DeleteFile(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")
	fileID := c.Param("fileId")

	err := ctrl.influencerService.DeleteFile(id, fileID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInfluencerNotFound):
			apperrors.NotFound(c, apperrors.InfluencerNotFound, "Influencer not found")
		case errors.Is(err, service.ErrInfluencerFileNotFound):
			apperrors.NotFound(c, apperrors.InfluencerFileNotFound, "File not found")
		default:
			log.Error("Failed to delete influencer file", err, map[string]interface{}{
				"influencer_id": id,
				"file_id":       fileID,
			})
			apperrors.InternalError(c, "Failed to delete file")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
