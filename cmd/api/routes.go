package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/funeral-admin-api/internal/handler"
	"github.com/noah-isme/funeral-admin-api/internal/middleware"
	"github.com/noah-isme/funeral-admin-api/internal/service"
	"github.com/noah-isme/funeral-admin-api/pkg/config"
	"github.com/noah-isme/funeral-admin-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/funeral-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/funeral-admin-api/pkg/middleware/requestid"
	"github.com/noah-isme/funeral-admin-api/pkg/storage"
)

func newRouter(cfg *config.Config, logr *zap.Logger, svcs services, blobs service.BlobStore) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(svcs.metrics))

	metricsHandler := handler.NewMetricsHandler(svcs.metrics)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// signed links only exist for the local driver; the BaaS serves its own public URLs
	if local, ok := blobs.(*storage.LocalStorage); ok {
		r.GET("/files/:token", handler.NewFileHandler(local).Serve)
	}

	authHandler := handler.NewAuthHandler(svcs.auth, svcs.onboarding)
	auth := r.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", middleware.JWT(svcs.auth), authHandler.Me)

	api := r.Group(cfg.APIPrefix)
	api.POST("/onboarding", middleware.JWT(svcs.auth), authHandler.Onboard)

	admin := api.Group("/admin")
	admin.Use(middleware.JWT(svcs.auth), middleware.RequireBackOffice(), middleware.WithResponseMeta())

	registerEntityRoutes(admin, svcs)
	registerTabRoutes(admin, svcs)

	documentHandler := handler.NewDocumentHandler(svcs.documents)
	documents := admin.Group("/documents")
	documents.POST("", documentHandler.Upload)
	documents.GET("", documentHandler.List)
	documents.GET("/:id", documentHandler.Get)
	documents.GET("/:id/download", documentHandler.Download)
	documents.DELETE("/:id", documentHandler.Delete)

	auditHandler := handler.NewAuditHandler(svcs.audit)
	audit := admin.Group("/audit-logs")
	audit.GET("", auditHandler.List)
	audit.GET("/recent", auditHandler.Recent)
	audit.GET("/search", auditHandler.Search)
	audit.GET("/entity/:type/:id", auditHandler.ByEntity)
	audit.GET("/user/:userId", auditHandler.ByUser)
	audit.GET("/action/:action", auditHandler.ByAction)

	admin.GET("/dashboard", handler.NewDashboardHandler(svcs.dashboard).Stats)
	admin.GET("/system/metrics", metricsHandler.Snapshot)

	return r
}

func registerEntityRoutes(admin *gin.RouterGroup, svcs services) {
	memberHandler := handler.NewMemberHandler(svcs.members)
	members := admin.Group("/members")
	members.GET("", memberHandler.List)
	members.GET("/stats", memberHandler.Stats)
	members.GET("/:id", memberHandler.Get)
	members.POST("", memberHandler.Create)
	members.PUT("/:id", memberHandler.Update)
	members.PATCH("/:id/status", memberHandler.SetStatus)
	members.DELETE("/:id", memberHandler.Delete)

	eventHandler := handler.NewEventHandler(svcs.events)
	checklistHandler := handler.NewChecklistHandler(svcs.checklists)
	events := admin.Group("/events")
	events.GET("", eventHandler.List)
	events.GET("/stats", eventHandler.Stats)
	events.GET("/:id", eventHandler.Get)
	events.POST("", eventHandler.Create)
	events.PUT("/:id", eventHandler.Update)
	events.PATCH("/:id/status", eventHandler.SetStatus)
	events.DELETE("/:id", eventHandler.Delete)
	events.GET("/:id/staff", eventHandler.ListStaff)
	events.POST("/:id/staff", eventHandler.AssignStaff)
	events.DELETE("/:id/staff/:staffId", eventHandler.UnassignStaff)
	events.GET("/:id/checklist", checklistHandler.ListByEvent)
	events.POST("/:id/checklist", checklistHandler.Generate)

	checklist := admin.Group("/checklist")
	checklist.GET("/stats", checklistHandler.Stats)
	checklist.POST("/:id/toggle", checklistHandler.Toggle)
	checklist.PUT("/:id", checklistHandler.Update)
	checklist.DELETE("/:id", checklistHandler.Delete)

	staffHandler := handler.NewStaffHandler(svcs.staff)
	staff := admin.Group("/staff")
	staff.GET("", staffHandler.List)
	staff.GET("/stats", staffHandler.Stats)
	staff.GET("/:id", staffHandler.Get)
	staff.POST("", staffHandler.Create)
	staff.PUT("/:id", staffHandler.Update)
	staff.PATCH("/:id/status", staffHandler.SetStatus)
	staff.DELETE("/:id", staffHandler.Delete)

	claimHandler := handler.NewClaimHandler(svcs.claims)
	claims := admin.Group("/claims")
	claims.GET("", claimHandler.List)
	claims.GET("/stats", claimHandler.Stats)
	claims.GET("/:id", claimHandler.Get)
	claims.POST("", claimHandler.Create)
	claims.PUT("/:id", claimHandler.Update)
	claims.POST("/:id/process", claimHandler.Process)
	claims.POST("/:id/approve", claimHandler.Approve)
	claims.POST("/:id/reject", claimHandler.Reject)
	claims.DELETE("/:id", claimHandler.Delete)

	contactHandler := handler.NewContactHandler(svcs.contacts)
	contacts := admin.Group("/contacts")
	contacts.GET("", contactHandler.List)
	contacts.GET("/stats", contactHandler.Stats)
	contacts.GET("/:id", contactHandler.Get)
	contacts.POST("", contactHandler.Create)
	contacts.PUT("/:id", contactHandler.Update)
	contacts.DELETE("/:id", contactHandler.Delete)
}

func registerTabRoutes(admin *gin.RouterGroup, svcs services) {
	tabHandler := handler.NewTabHandler(svcs.tabs, svcs.bulk, svcs.viewStates)
	tabs := admin.Group("/tabs/:tab")
	tabs.GET("", tabHandler.List)
	tabs.GET("/export", tabHandler.Export)
	tabs.POST("/bulk", tabHandler.Bulk)
	tabs.PUT("/selection", tabHandler.Selection)

	admin.GET("/view-state", tabHandler.ViewState)
	admin.DELETE("/view-state", tabHandler.ResetViewState)
}
