package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/govconnect/internal/dtos"
	"github.com/justsurfingit/govconnect/internal/response"
	"github.com/justsurfingit/govconnect/internal/services"
)

type AIHandler struct {
	LLMService *services.LLMService
}

func NewAIHandler(llm *services.LLMService) *AIHandler {
	return &AIHandler{LLMService: llm}
}

func (h *AIHandler) GenerateResume(c *gin.Context) {
	var req dtos.GenerateResumeRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.LLMService.GenerateResume(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AIHandler) VerifyResume(c *gin.Context) {
	var req dtos.VerifyResumeRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.LLMService.VerifyResume(c.Request.Context(), req.ResumeText)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AIHandler) News(c *gin.Context) {
	out, err := h.LLMService.GenerateNews(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
