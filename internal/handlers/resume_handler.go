package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/govconnect/internal/apperr"
	"github.com/justsurfingit/govconnect/internal/dtos"
	"github.com/justsurfingit/govconnect/internal/response"
	"github.com/justsurfingit/govconnect/internal/services"
	"github.com/justsurfingit/govconnect/internal/storage"
)

// multipartOverhead leaves room for form boundaries and headers around the file.
const multipartOverhead = 1 << 20

type ResumeHandler struct {
	ResumeService *services.ResumeService
	Uploads       *storage.LocalStore
}

func NewResumeHandler(r *services.ResumeService, uploads *storage.LocalStore) *ResumeHandler {
	return &ResumeHandler{ResumeService: r, Uploads: uploads}
}

// Upload is POST /api/upload/resume with the file in the "resume" form field.
func (h *ResumeHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.Uploads.MaxSize()+multipartOverhead)

	header, err := c.FormFile("resume")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, h.Uploads.SizeError())
			return
		}
		response.Error(c, apperr.Validation("No file uploaded"))
		return
	}
	if header.Size > h.Uploads.MaxSize() {
		response.Error(c, h.Uploads.SizeError())
		return
	}

	file, err := header.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	resume, err := h.ResumeService.Upload(c.Request.Context(), viewer(c).UserID, header.Filename, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Resume uploaded successfully", "resume": dtos.NewResumeView(resume)})
}

func (h *ResumeHandler) List(c *gin.Context) {
	resumes, err := h.ResumeService.List(c.Request.Context(), viewer(c).UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resumes": dtos.NewResumeViews(resumes)})
}

func (h *ResumeHandler) Delete(c *gin.Context) {
	if err := h.ResumeService.Delete(c.Request.Context(), viewer(c).UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Resume deleted successfully"})
}

// Verify runs the authenticity check over a stored resume's text.
func (h *ResumeHandler) Verify(c *gin.Context) {
	result, err := h.ResumeService.Verify(c.Request.Context(), viewer(c).UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
