package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/govconnect/internal/dtos"
	"github.com/justsurfingit/govconnect/internal/response"
	"github.com/justsurfingit/govconnect/internal/services"
)

type CompanyUpdateHandler struct {
	CompanyUpdateService *services.CompanyUpdateService
}

func NewCompanyUpdateHandler(s *services.CompanyUpdateService) *CompanyUpdateHandler {
	return &CompanyUpdateHandler{CompanyUpdateService: s}
}

func (h *CompanyUpdateHandler) List(c *gin.Context) {
	var q dtos.CompanyUpdateListQuery
	if !bindQuery(c, &q) {
		return
	}
	page := services.NewPage(q.Page, q.Limit)
	updates, total, err := h.CompanyUpdateService.List(c.Request.Context(), q.CompanyID, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updates": dtos.NewCompanyUpdateViews(updates), "pagination": page.Result(total)})
}

func (h *CompanyUpdateHandler) Create(c *gin.Context) {
	var req dtos.CompanyUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.CompanyUpdateService.Create(c.Request.Context(), viewer(c).UserID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Company update created successfully", "update": dtos.NewCompanyUpdateView(u)})
}

func (h *CompanyUpdateHandler) Update(c *gin.Context) {
	var req dtos.CompanyUpdatePatch
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.CompanyUpdateService.Update(c.Request.Context(), viewer(c).UserID, c.Param("id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Company update updated successfully", "update": dtos.NewCompanyUpdateView(u)})
}

func (h *CompanyUpdateHandler) Delete(c *gin.Context) {
	if err := h.CompanyUpdateService.Delete(c.Request.Context(), viewer(c).UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Company update deleted successfully"})
}

func (h *CompanyUpdateHandler) ToggleLike(c *gin.Context) {
	liked, likes, err := h.CompanyUpdateService.ToggleLike(c.Request.Context(), viewer(c).UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.LikeResult{Message: likeMessage("Update", liked), Liked: liked, Likes: likes})
}

func (h *CompanyUpdateHandler) AddComment(c *gin.Context) {
	var req dtos.CommentRequest
	if !bindJSON(c, &req) {
		return
	}
	comment, err := h.CompanyUpdateService.AddComment(c.Request.Context(), viewer(c).UserID, c.Param("id"), req.Comment)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Comment added successfully",
		"comment": dtos.NewCommentView(comment.ID, &comment.User, comment.Comment, comment.CreatedAt),
	})
}

func (h *CompanyUpdateHandler) ListComments(c *gin.Context) {
	comments, err := h.CompanyUpdateService.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": dtos.NewUpdateCommentViews(comments)})
}
