package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/lamnt/koctrack-backend/internal/errors"
	"github.com/lamnt/koctrack-backend/internal/middleware"
	"github.com/lamnt/koctrack-backend/internal/storage"
)

type UploadController struct {
	storage storage.Storage
}

func NewUploadController(store storage.Storage) *UploadController {
	return &UploadController{storage: store}
}

// Upload accepts one multipart file under the "file" field and returns the
// URL where it was stored. Used for influencer avatars and audit screenshots.
func (ctrl *UploadController) Upload(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	header, err := c.FormFile("file")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "A file is required")
		return
	}

	if err := storage.ValidateFileSize(header.Size); err != nil {
		apperrors.BadRequest(c, apperrors.UploadFileTooLarge, "File is too large")
		return
	}
	contentType := header.Header.Get("Content-Type")
	if err := storage.ValidateContentType(contentType); err != nil {
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "File type is not allowed")
		return
	}

	f, err := header.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", err, nil)
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Upload failed")
		return
	}
	defer f.Close()

	url, err := ctrl.storage.Save(c.Request.Context(), header.Filename, contentType, f, header.Size)
	if err != nil {
		log.Error("Failed to store uploaded file", err, map[string]interface{}{
			"filename": header.Filename,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Upload failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":  true,
		"url": url,
	})
}
