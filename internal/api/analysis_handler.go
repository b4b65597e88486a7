package api

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"pocketcoach/backend/internal/ai"
	"pocketcoach/backend/internal/platform/logger"
	"pocketcoach/backend/internal/service"
)

// PhotoAnalysisForm is the multipart body of POST /analyze/photos.
type PhotoAnalysisForm struct {
	Front *multipart.FileHeader `form:"front" binding:"required"`
	Back  *multipart.FileHeader `form:"back" binding:"required"`
}

type AnalysisHandler struct {
	analysisService service.AnalysisService
	maxUploadBytes  int64
	log             *logger.Logger
}

func NewAnalysisHandler(analysisService service.AnalysisService, maxUploadBytes int64, log *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService, maxUploadBytes: maxUploadBytes, log: log}
}

// AnalyzePhotos godoc
// @Summary Critique front and back physique photos
// @Description Both images are sent inline to the vision model. Provider failures return 500.
// @Tags AI
// @Accept multipart/form-data
// @Produce json
// @Param front formData file true "Front photo"
// @Param back formData file true "Back photo"
// @Success 200 {object} gin.H "{"critique": "..."}"
// @Failure 413 {object} gin.H "File too large"
// @Failure 422 {object} validation.Error
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /analyze/photos [post]
func (h *AnalysisHandler) AnalyzePhotos(c *gin.Context) {
	form, ok := bindUploadForm[PhotoAnalysisForm](c)
	if !ok {
		return
	}

	front, ok := h.readImage(c, form.Front)
	if !ok {
		return
	}
	back, ok := h.readImage(c, form.Back)
	if !ok {
		return
	}

	critique, err := h.analysisService.CritiquePhotos(c.Request.Context(), front, back)
	if err != nil {
		h.log.Error("Photo critique failed", "error", err)
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"critique": critique})
}

func (h *AnalysisHandler) readImage(c *gin.Context, fh *multipart.FileHeader) (ai.Image, bool) {
	data, contentType, err := readUpload(fh, h.maxUploadBytes)
	if err != nil {
		if errors.Is(err, errFileTooLarge) {
			abortWithError(c, http.StatusRequestEntityTooLarge, err.Error())
			return ai.Image{}, false
		}
		h.log.Error("Reading photo failed", "file", fh.Filename, "error", err)
		abortWithError(c, http.StatusBadRequest, "Failed to read uploaded file.")
		return ai.Image{}, false
	}
	return ai.Image{MIMEType: contentType, Data: data}, true
}
