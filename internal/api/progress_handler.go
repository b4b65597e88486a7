package api

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"pocketcoach/backend/internal/domain"
	"pocketcoach/backend/internal/platform/logger"
	"pocketcoach/backend/internal/service"
	"pocketcoach/backend/internal/validation"
)

// PhotoUploadForm is the multipart body of POST /progress/photo.
type PhotoUploadForm struct {
	UserID string                `form:"user_id" binding:"required"`
	Date   string                `form:"date" binding:"omitempty,datetime=2006-01-02"`
	File   *multipart.FileHeader `form:"file" binding:"required"`
}

type ProgressHandler struct {
	progressService service.ProgressService
	maxUploadBytes  int64
	log             *logger.Logger
}

func NewProgressHandler(progressService service.ProgressService, maxUploadBytes int64, log *logger.Logger) *ProgressHandler {
	return &ProgressHandler{progressService: progressService, maxUploadBytes: maxUploadBytes, log: log}
}

// LogWeight godoc
// @Summary Log a weight entry
// @Tags Progress
// @Accept json
// @Produce json
// @Param entry body domain.WeightEntry true "Weight entry"
// @Success 200 {object} domain.WeightEntry
// @Failure 422 {object} validation.Error
// @Router /progress/weight [post]
func (h *ProgressHandler) LogWeight(c *gin.Context) {
	entry, verr := validation.BindJSON[domain.WeightEntry](c)
	if verr != nil {
		verr.Abort(c)
		return
	}

	saved, err := h.progressService.LogWeight(c.Request.Context(), entry)
	if err != nil {
		h.log.Error("Logging weight failed", "user_id", entry.UserID, "error", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to log weight.")
		return
	}
	c.JSON(http.StatusOK, saved)
}

// WeightHistory godoc
// @Summary Weight history
// @Tags Progress
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {array} domain.WeightEntry
// @Router /progress/weight/{user_id} [get]
func (h *ProgressHandler) WeightHistory(c *gin.Context) {
	userID := c.Param("user_id")

	entries, err := h.progressService.WeightHistory(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("Loading weight history failed", "user_id", userID, "error", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to load weight history.")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// LogMeasurement godoc
// @Summary Log body measurements
// @Tags Progress
// @Accept json
// @Produce json
// @Param entry body domain.MeasurementEntry true "Measurement entry"
// @Success 200 {object} domain.MeasurementEntry
// @Failure 422 {object} validation.Error
// @Router /progress/measurements [post]
func (h *ProgressHandler) LogMeasurement(c *gin.Context) {
	entry, verr := validation.BindJSON[domain.MeasurementEntry](c)
	if verr != nil {
		verr.Abort(c)
		return
	}

	saved, err := h.progressService.LogMeasurement(c.Request.Context(), entry)
	if err != nil {
		h.log.Error("Logging measurements failed", "user_id", entry.UserID, "error", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to log measurements.")
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *ProgressHandler) MeasurementHistory(c *gin.Context) {
	userID := c.Param("user_id")

	entries, err := h.progressService.MeasurementHistory(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("Loading measurement history failed", "user_id", userID, "error", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to load measurement history.")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// UploadPhoto godoc
// @Summary Upload a progress photo
// @Tags Progress
// @Accept multipart/form-data
// @Produce json
// @Param user_id formData string true "User ID"
// @Param date formData string false "Photo date (YYYY-MM-DD), defaults to today"
// @Param file formData file true "Photo"
// @Success 200 {object} service.PhotoReceipt
// @Failure 413 {object} gin.H "File too large"
// @Failure 422 {object} validation.Error
// @Failure 500 {object} gin.H
// @Router /progress/photo [post]
func (h *ProgressHandler) UploadPhoto(c *gin.Context) {
	form, ok := bindUploadForm[PhotoUploadForm](c)
	if !ok {
		return
	}

	data, contentType, err := readUpload(form.File, h.maxUploadBytes)
	if err != nil {
		if errors.Is(err, errFileTooLarge) {
			abortWithError(c, http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		h.log.Error("Reading photo upload failed", "user_id", form.UserID, "error", err)
		abortWithError(c, http.StatusBadRequest, "Failed to read uploaded file.")
		return
	}

	receipt, err := h.progressService.UploadPhoto(c.Request.Context(), service.PhotoUpload{
		UserID:      form.UserID,
		Date:        form.Date,
		FileName:    form.File.Filename,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		h.log.Error("Storing progress photo failed", "user_id", form.UserID, "error", err)
		switch {
		case errors.Is(err, service.ErrPhotoStoreFailed):
			abortWithError(c, http.StatusBadGateway, service.ErrPhotoStoreFailed.Error())
		case errors.Is(err, service.ErrPhotoRecordFailed):
			abortWithError(c, http.StatusInternalServerError, service.ErrPhotoRecordFailed.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// ListPhotos godoc
// @Summary List progress photos
// @Tags Progress
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {array} domain.ProgressPhoto
// @Router /progress/photos/{user_id} [get]
func (h *ProgressHandler) ListPhotos(c *gin.Context) {
	userID := c.Param("user_id")

	photos, err := h.progressService.ListPhotos(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("Listing progress photos failed", "user_id", userID, "error", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to list photos.")
		return
	}
	c.JSON(http.StatusOK, photos)
}
