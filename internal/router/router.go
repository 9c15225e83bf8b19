package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stratforsr-sys/bokningsstatistik/internal/domain"
	"github.com/stratforsr-sys/bokningsstatistik/internal/handler"
	"github.com/stratforsr-sys/bokningsstatistik/internal/middleware"
	"github.com/stratforsr-sys/bokningsstatistik/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	allowedOrigins []string,
	authH *handler.AuthHandler,
	userH *handler.UserHandler,
	meetingH *handler.MeetingHandler,
	statsH *handler.StatsHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks and metrics
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// User management
	users := protected.Group("/users")
	users.GET("/me", userH.Me)
	users.POST("", middleware.RequireRole(domain.RoleAdmin), userH.Create)
	users.GET("", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager), userH.List)
	users.GET("/:id", userH.GetByID)
	users.PUT("/:id", middleware.RequireRole(domain.RoleAdmin), userH.Update)
	users.PUT("/:id/password", middleware.RequireRole(domain.RoleAdmin), userH.ChangePassword)
	users.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), userH.Delete)

	// Meetings
	meetings := protected.Group("/meetings")
	meetings.POST("", meetingH.Create)
	meetings.GET("", meetingH.List)
	meetings.GET("/:id", meetingH.GetByID)
	meetings.PUT("/:id", meetingH.Update)
	meetings.PUT("/:id/participants", meetingH.ReplaceParticipants)
	meetings.PATCH("/:id/status", meetingH.UpdateStatus)
	meetings.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager), meetingH.Delete)

	// Statistics. The service layer applies the ownership filter, so a USER
	// reaching any of these only ever sees their own numbers; by-person is
	// the shared leaderboard and stays open to every authenticated user.
	statsGroup := protected.Group("/stats")
	statsGroup.GET("/overview", statsH.Overview)
	statsGroup.GET("/summary", statsH.Summary)
	statsGroup.GET("/team", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager), statsH.TeamSummary)
	statsGroup.GET("/by-person", statsH.ByPerson)
	statsGroup.GET("/by-person/export", statsH.ExportByPerson)
	statsGroup.GET("/detailed", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager), statsH.Detailed)
	statsGroup.GET("/trends", statsH.Trends)
	statsGroup.GET("/comparison", statsH.Comparison)

	return r
}
