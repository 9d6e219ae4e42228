package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/govconnect/internal/dtos"
	"github.com/justsurfingit/govconnect/internal/response"
	"github.com/justsurfingit/govconnect/internal/services"
)

// JobHandler serves job postings and the AI draft extraction.
type JobHandler struct {
	LLMService *services.LLMService
	JobService *services.JobService
}

func NewJobHandler(llm *services.LLMService, j *services.JobService) *JobHandler {
	return &JobHandler{LLMService: llm, JobService: j}
}

// ParseJob is the POST /api/jobs/extract endpoint
func (h *JobHandler) ParseJob(c *gin.Context) {
	var req dtos.JobExtractionRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := h.LLMService.ExtractJobDetails(c.Request.Context(), req.RawHTML)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": draft})
}

func (h *JobHandler) ListJobs(c *gin.Context) {
	var q dtos.JobListQuery
	if !bindQuery(c, &q) {
		return
	}
	page := services.NewPage(q.Page, q.Limit)
	jobs, total, err := h.JobService.ListJobs(c.Request.Context(), services.JobFilter{Type: q.Type, Location: q.Location}, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	out := make([]dtos.JobSummary, 0, len(jobs))
	for i := range jobs {
		out = append(out, dtos.NewJobSummary(&jobs[i]))
	}
	c.JSON(http.StatusOK, gin.H{"jobs": out, "pagination": page.Result(total)})
}

func (h *JobHandler) GetJob(c *gin.Context) {
	detail, err := h.JobService.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": dtos.JobDetail{
		JobView:        dtos.NewJobView(&detail.Job),
		CompanyProfile: dtos.NewPerson(&detail.Job.Company),
		ApplicantList:  dtos.NewPeople(detail.Applicants),
		LikedBy:        dtos.NewPeople(detail.Likers),
		CommentList:    dtos.NewJobCommentViews(detail.Comments),
	}})
}

// CreateJob posts a job owned by the calling company.
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.JobCreationRequest
	if !bindJSON(c, &req) {
		return
	}
	job, err := h.JobService.CreateJob(c.Request.Context(), viewer(c).UserID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Job created successfully", "job": dtos.NewJobView(job)})
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	var req dtos.JobUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	job, err := h.JobService.UpdateJob(c.Request.Context(), viewer(c).UserID, c.Param("id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job updated successfully", "job": dtos.NewJobView(job)})
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	if err := h.JobService.DeleteJob(c.Request.Context(), viewer(c).UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully"})
}

// Apply accepts an optional body with a cover letter and resume link.
func (h *JobHandler) Apply(c *gin.Context) {
	var req dtos.ApplyRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	app, err := h.JobService.Apply(c.Request.Context(), viewer(c).UserID, c.Param("id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Application submitted successfully", "application": dtos.NewApplyResult(app)})
}

func (h *JobHandler) ToggleLike(c *gin.Context) {
	liked, likes, err := h.JobService.ToggleLike(c.Request.Context(), viewer(c).UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.LikeResult{Message: likeMessage("Job", liked), Liked: liked, Likes: likes})
}

func (h *JobHandler) AddComment(c *gin.Context) {
	var req dtos.CommentRequest
	if !bindJSON(c, &req) {
		return
	}
	comment, err := h.JobService.AddComment(c.Request.Context(), viewer(c).UserID, c.Param("id"), req.Comment)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Comment added successfully",
		"comment": dtos.NewCommentView(comment.ID, &comment.User, comment.Comment, comment.CreatedAt),
	})
}

func (h *JobHandler) ListComments(c *gin.Context) {
	comments, err := h.JobService.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": dtos.NewJobCommentViews(comments)})
}
