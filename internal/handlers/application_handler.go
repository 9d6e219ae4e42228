package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/govconnect/internal/dtos"
	"github.com/justsurfingit/govconnect/internal/response"
	"github.com/justsurfingit/govconnect/internal/services"
)

type ApplicationHandler struct {
	ApplicationService *services.ApplicationService
}

func NewApplicationHandler(a *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{ApplicationService: a}
}

func (h *ApplicationHandler) List(c *gin.Context) {
	var q dtos.ApplicationListQuery
	if !bindQuery(c, &q) {
		return
	}
	apps, err := h.ApplicationService.List(c.Request.Context(), viewer(c), q.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": dtos.NewApplicationViews(apps)})
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	app, err := h.ApplicationService.Get(c.Request.Context(), viewer(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": dtos.NewApplicationView(app, true)})
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req dtos.ApplicationStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	app, err := h.ApplicationService.UpdateStatus(c.Request.Context(), viewer(c), c.Param("id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application updated successfully", "application": dtos.NewApplicationView(app, true)})
}
