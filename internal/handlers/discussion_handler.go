package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/govconnect/internal/auth"
	"github.com/justsurfingit/govconnect/internal/dtos"
	"github.com/justsurfingit/govconnect/internal/response"
	"github.com/justsurfingit/govconnect/internal/services"
)

type DiscussionHandler struct {
	DiscussionService *services.DiscussionService
}

func NewDiscussionHandler(d *services.DiscussionService) *DiscussionHandler {
	return &DiscussionHandler{DiscussionService: d}
}

func (h *DiscussionHandler) List(c *gin.Context) {
	var q dtos.DiscussionListQuery
	if !bindQuery(c, &q) {
		return
	}
	page := services.NewPage(q.Page, q.Limit)
	filter := services.DiscussionFilter{Category: q.Category, Search: q.Search, Tag: q.Tag}
	discussions, replies, total, err := h.DiscussionService.List(c.Request.Context(), filter, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	out := make([]dtos.DiscussionSummary, 0, len(discussions))
	for i := range discussions {
		out = append(out, dtos.NewDiscussionSummary(&discussions[i], replies[discussions[i].ID]))
	}
	c.JSON(http.StatusOK, gin.H{"discussions": out, "pagination": page.Result(total)})
}

// Get returns one discussion and counts the view.
func (h *DiscussionHandler) Get(c *gin.Context) {
	d, likers, err := h.DiscussionService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"discussion": dtos.NewDiscussionDetail(d, likers)})
}

func (h *DiscussionHandler) Create(c *gin.Context) {
	var req dtos.DiscussionRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := h.DiscussionService.Create(c.Request.Context(), viewer(c).UserID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Discussion created successfully", "discussion": dtos.NewDiscussionSummary(d, 0)})
}

func (h *DiscussionHandler) Update(c *gin.Context) {
	var req dtos.DiscussionUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := h.DiscussionService.Update(c.Request.Context(), viewer(c).UserID, c.Param("id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Discussion updated successfully", "discussion": dtos.NewDiscussionSummary(d, len(d.Replies))})
}

// Delete removes the caller's own discussion; moderators may remove any.
func (h *DiscussionHandler) Delete(c *gin.Context) {
	v := viewer(c)
	moderator := auth.HasPermission(v.Role, auth.DiscussionModerate)
	if err := h.DiscussionService.Delete(c.Request.Context(), v.UserID, c.Param("id"), moderator); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Discussion deleted successfully"})
}

func (h *DiscussionHandler) ToggleLike(c *gin.Context) {
	liked, likes, err := h.DiscussionService.ToggleLike(c.Request.Context(), viewer(c).UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.LikeResult{Message: likeMessage("Discussion", liked), Liked: liked, Likes: likes})
}

func (h *DiscussionHandler) Reply(c *gin.Context) {
	var req dtos.ReplyRequest
	if !bindJSON(c, &req) {
		return
	}
	reply, err := h.DiscussionService.Reply(c.Request.Context(), viewer(c).UserID, c.Param("id"), req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Reply added successfully", "reply": dtos.NewReplyView(reply)})
}

func (h *DiscussionHandler) ToggleReplyLike(c *gin.Context) {
	liked, likes, err := h.DiscussionService.ToggleReplyLike(c.Request.Context(), viewer(c).UserID, c.Param("id"), c.Param("replyId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.LikeResult{Message: likeMessage("Reply", liked), Liked: liked, Likes: likes})
}

func (h *DiscussionHandler) Moderate(c *gin.Context) {
	var req dtos.ModerationRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := h.DiscussionService.Moderate(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Discussion updated successfully", "discussion": dtos.NewDiscussionSummary(d, len(d.Replies))})
}
