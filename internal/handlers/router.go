package handlers

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/justsurfingit/govconnect/internal/auth"
	mw "github.com/justsurfingit/govconnect/internal/middleware"
	"github.com/justsurfingit/govconnect/internal/services"
	"github.com/justsurfingit/govconnect/internal/storage"
)

// RateLimits configures the per-client limits on abuse-prone routes.
type RateLimits struct {
	Limiter mw.Limiter
	Auth    int
	Apply   int
	Window  time.Duration
}

type RouterDependencies struct {
	DB             *gorm.DB
	Tokens         mw.TokenVerifier
	Uploads        *storage.LocalStore
	Logger         *slog.Logger
	CORSOrigins    []string
	RequestTimeout time.Duration
	RateLimits     RateLimits

	AuthService          *services.AuthService
	JobService           *services.JobService
	ApplicationService   *services.ApplicationService
	DiscussionService    *services.DiscussionService
	CompanyUpdateService *services.CompanyUpdateService
	ResumeService        *services.ResumeService
	SearchService        *services.SearchService
	StatsService         *services.StatsService
	LLMService           *services.LLMService
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	useJSONFieldNames()

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), mw.RequestID(), mw.RequestLogger(logger), cors.New(corsConfig(deps.CORSOrigins)), mw.Timeout(deps.RequestTimeout))

	health := NewHealthHandler(deps.DB)
	authHandler := NewAuthHandler(deps.AuthService)
	jobHandler := NewJobHandler(deps.LLMService, deps.JobService)
	applicationHandler := NewApplicationHandler(deps.ApplicationService)
	discussionHandler := NewDiscussionHandler(deps.DiscussionService)
	updateHandler := NewCompanyUpdateHandler(deps.CompanyUpdateService)
	resumeHandler := NewResumeHandler(deps.ResumeService, deps.Uploads)
	searchHandler := NewSearchHandler(deps.SearchService, deps.StatsService)
	aiHandler := NewAIHandler(deps.LLMService)

	rl := deps.RateLimits
	authn := mw.Authenticate(deps.Tokens)
	// route guards h with authentication and the permission p.
	route := func(p auth.Permission, h ...gin.HandlerFunc) []gin.HandlerFunc {
		return append([]gin.HandlerFunc{authn, mw.RequirePermission(p)}, h...)
	}

	r.GET("/health", health.HealthCheck)
	if deps.Uploads != nil {
		r.Static(storage.URLPrefix, deps.Uploads.Root())
	}

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		authGroup.POST("/register", mw.RateLimit(rl.Limiter, "register", rl.Auth, rl.Window), authHandler.Register)
		authGroup.POST("/login", mw.RateLimit(rl.Limiter, "login", rl.Auth, rl.Window), authHandler.Login)
		authGroup.GET("/profile", authn, authHandler.Profile)
		authGroup.PUT("/profile", authn, authHandler.UpdateProfile)

		// Job Routes
		jobs := api.Group("/jobs")
		jobs.GET("", jobHandler.ListJobs)
		jobs.GET("/:id", jobHandler.GetJob)
		jobs.GET("/:id/comments", jobHandler.ListComments)
		jobs.POST("/extract", route(auth.JobCreate, jobHandler.ParseJob)...)
		jobs.POST("", route(auth.JobCreate, jobHandler.CreateJob)...)
		jobs.PUT("/:id", route(auth.JobUpdate, jobHandler.UpdateJob)...)
		jobs.DELETE("/:id", route(auth.JobDelete, jobHandler.DeleteJob)...)
		jobs.POST("/:id/apply", route(auth.JobApply, mw.RateLimit(rl.Limiter, "apply", rl.Apply, rl.Window), jobHandler.Apply)...)
		jobs.POST("/:id/like", route(auth.JobRead, jobHandler.ToggleLike)...)
		jobs.POST("/:id/comments", route(auth.JobRead, jobHandler.AddComment)...)

		apps := api.Group("/applications")
		apps.GET("", route(auth.ApplicationRead, applicationHandler.List)...)
		apps.GET("/:id", route(auth.ApplicationRead, applicationHandler.Get)...)
		apps.PUT("/:id", route(auth.ApplicationUpdate, applicationHandler.UpdateStatus)...)

		discussions := api.Group("/discussions")
		discussions.GET("", discussionHandler.List)
		discussions.GET("/:id", discussionHandler.Get)
		discussions.POST("", route(auth.DiscussionCreate, discussionHandler.Create)...)
		discussions.PUT("/:id", route(auth.DiscussionUpdate, discussionHandler.Update)...)
		discussions.DELETE("/:id", route(auth.DiscussionDelete, discussionHandler.Delete)...)
		discussions.POST("/:id/like", route(auth.DiscussionRead, discussionHandler.ToggleLike)...)
		discussions.POST("/:id/reply", route(auth.DiscussionCreate, discussionHandler.Reply)...)
		discussions.POST("/:id/replies/:replyId/like", route(auth.DiscussionRead, discussionHandler.ToggleReplyLike)...)
		discussions.PATCH("/:id/moderation", route(auth.DiscussionModerate, discussionHandler.Moderate)...)

		updates := api.Group("/company-updates")
		updates.GET("", updateHandler.List)
		updates.GET("/:id/comments", updateHandler.ListComments)
		updates.POST("", route(auth.CompanyUpdateCreate, updateHandler.Create)...)
		updates.PUT("/:id", route(auth.CompanyUpdateUpdate, updateHandler.Update)...)
		updates.DELETE("/:id", route(auth.CompanyUpdateDelete, updateHandler.Delete)...)
		updates.POST("/:id/like", route(auth.CompanyUpdateRead, updateHandler.ToggleLike)...)
		updates.POST("/:id/comments", route(auth.CompanyUpdateRead, updateHandler.AddComment)...)

		api.POST("/upload/resume", route(auth.ResumeUpload, resumeHandler.Upload)...)
		api.GET("/upload/resume", route(auth.ResumeRead, resumeHandler.List)...)
		api.DELETE("/resumes/:id", route(auth.ResumeDelete, resumeHandler.Delete)...)
		api.POST("/resumes/:id/verify", route(auth.ResumeRead, resumeHandler.Verify)...)

		api.GET("/search", searchHandler.Search)
		api.GET("/stats", authn, searchHandler.Stats)

		ai := api.Group("/ai")
		ai.POST("/resume", route(auth.ResumeUpload, aiHandler.GenerateResume)...)
		ai.POST("/resume/verify", route(auth.ResumeRead, aiHandler.VerifyResume)...)
		ai.GET("/news", aiHandler.News)
	}
	return r
}

func corsConfig(origins []string) cors.Config {
	config := cors.DefaultConfig()
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.ExposeHeaders = []string{"X-Request-ID"}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	return config
}
