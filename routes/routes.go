package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kathamala/katha-backend/controllers"
	"github.com/kathamala/katha-backend/middleware"
	"github.com/kathamala/katha-backend/models"
	"github.com/kathamala/katha-backend/ws"
)

func SetupRouter(r *gin.Engine, db *gorm.DB) *gin.Engine {
	r.Use(middleware.DBMiddleware(db))

	// Public
	r.POST("/register", controllers.Register)
	r.POST("/login", controllers.Login)
	r.POST("/admin-login", controllers.AdminLogin)
	r.GET("/logout", middleware.AuthMiddleware(), controllers.Logout)
	r.POST("/forgot-password", controllers.ForgotPassword)
	r.GET("/health", controllers.HealthCheck)
	r.GET("/ws/moderation", ws.HandleModerationWebSocket)

	api := r.Group("/api")

	// Public reads
	public := api.Group("/public")
	{
		public.GET("/stories", controllers.ListStories)
		public.GET("/poems", controllers.ListPoems)
		public.GET("/audio", controllers.ListAudioStories)
	}
	api.GET("/stories/user/:user_id", controllers.ListStoriesByUser)
	api.GET("/poems/user/:user_id", controllers.ListPoemsByUser)
	api.GET("/writer/:user_id", controllers.GetWriter)
	api.GET("/authors", controllers.GetAuthors)
	api.GET("/author-stats", controllers.AuthorStats)

	// Authenticated (user or admin token)
	auth := api.Group("")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/auth-check", controllers.AuthCheck)

		auth.POST("/story", controllers.CreateStory)
		auth.GET("/stories", controllers.ListMyStories)
		auth.GET("/story/drafts", controllers.ListStoryDrafts)
		auth.GET("/story/:id", controllers.GetStory)
		auth.PUT("/story/:id", controllers.UpdateStory)
		auth.DELETE("/story/:id", controllers.DeleteStoryDraft)
		auth.POST("/story/:id/submit", controllers.SubmitStory)

		auth.POST("/poem", controllers.CreatePoem)
		auth.GET("/poems", controllers.ListMyPoems)
		auth.GET("/poem/drafts", controllers.ListPoemDrafts)
		auth.GET("/poem/:id", controllers.GetPoem)
		auth.PUT("/poem/:id", controllers.UpdatePoem)
		auth.DELETE("/poem/:id", controllers.DeletePoemDraft)
		auth.POST("/poem/:id/submit", controllers.SubmitPoem)

		auth.POST("/help-support", controllers.CreateHelpSupport)
	}

	// Admin only
	admin := api.Group("")
	admin.Use(middleware.AdminAuthMiddleware())
	{
		admin.POST("/story/:id/approve", controllers.ApproveStory)
		admin.POST("/story/:id/reject", controllers.RejectStory)
		admin.DELETE("/story/:id/published", controllers.DeleteStoryPublished)

		admin.POST("/poem/:id/approve", controllers.ApprovePoem)
		admin.POST("/poem/:id/reject", controllers.RejectPoem)
		admin.DELETE("/poem/:id/published", controllers.DeletePoemPublished)

		admin.POST("/audio", controllers.CreateAudioStory)
		admin.GET("/audios", controllers.ListAllAudioStories)
		admin.GET("/audio/drafts", controllers.ListAudioDrafts)
		admin.GET("/audio/:id", controllers.GetAudioStory)
		admin.PUT("/audio/:id", controllers.UpdateAudioStory)
		admin.DELETE("/audio/:id", controllers.DeleteAudioDraft)
		admin.DELETE("/audio/:id/published", controllers.DeleteAudioPublished)
		admin.POST("/audio/:id/submit", controllers.SubmitAudioStory)
		admin.POST("/audio/:id/approve", controllers.ApproveAudioStory)
		admin.POST("/audio/:id/reject", controllers.RejectAudioStory)

		admin.GET("/admin/profile", controllers.GetAdminProfile)
		admin.PUT("/admin/:admin_id", controllers.UpdateAdmin)
		admin.POST("/admin/:admin_id/change-password", controllers.ChangeAdminPassword)
		admin.POST("/admin/create-user", controllers.AdminCreateUser)

		admin.GET("/users", controllers.ListUsers)
		admin.PUT("/user/:user_id", controllers.UpdateUser)
		admin.PATCH("/user/:user_id/status", controllers.SetUserStatus)
		admin.PATCH("/user/:user_id/approval", controllers.SetUserApproval)

		admin.GET("/help-support", controllers.ListHelpSupport)
		admin.GET("/help-support/:id", controllers.GetHelpSupport)
		admin.POST("/help-support/:id/resolve", controllers.ResolveHelpSupport)
		admin.POST("/help-support/:id/reject", controllers.RejectHelpSupport)
	}

	// Sub-admin lifecycle is reserved for the super admin
	super := api.Group("")
	super.Use(middleware.RequireRoles(string(models.RoleSuperAdmin)))
	{
		super.PATCH("/admin/:admin_id/status", controllers.SetAdminStatus)
		super.POST("/admin/create-subadmin", controllers.CreateSubAdmin)
		super.GET("/admin/subadmins", controllers.ListSubAdmins)
		super.GET("/admin/subadmin/:id", controllers.GetSubAdmin)
		super.PUT("/admin/subadmin/:id", controllers.UpdateSubAdmin)
	}

	return r
}
