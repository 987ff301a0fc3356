package main

import (
	"github.com/gin-gonic/gin"
	"github.com/raymondartguy/portfolio-backend/internal/config"
	"github.com/raymondartguy/portfolio-backend/internal/handlers"
	"github.com/raymondartguy/portfolio-backend/internal/middleware"
	"github.com/raymondartguy/portfolio-backend/internal/services"
	"github.com/raymondartguy/portfolio-backend/internal/storage"
	"gorm.io/gorm"
)

// application holds the wired services and handlers.
type application struct {
	projectHandler *handlers.ProjectHandler
	assetHandler   *handlers.AssetHandler
	siteHandler    *handlers.SiteContentHandler
	publishHandler *handlers.PublishHandler
	uploadHandler  *handlers.UploadHandler
	fileHandler    *handlers.FileHandler
	auditHandler   *handlers.AuditLogHandler
	healthHandler  *handlers.HealthHandler

	sweeper *services.SweeperService
}

func buildApp(cfg *config.Config, db *gorm.DB, store storage.ObjectStore) *application {
	siteService := services.NewSiteContentService(db)
	projectService := services.NewProjectService(db, store, cfg.Storage.PublicBaseURL)
	assetService := services.NewAssetService(db, store)
	catalogService := services.NewCatalogService(db, siteService, cfg.Storage.PublicBaseURL)
	publishService := services.NewPublishService(db, store, catalogService, cfg.Deploy.HookURL)
	uploadService := services.NewUploadService(store, cfg.Upload.SigningSecret, cfg.Upload.ExpirySeconds)
	auditService := services.NewAuditLogService(db)
	sweeper := services.NewSweeperService(db, store, auditService, cfg.Maintenance)

	return &application{
		projectHandler: handlers.NewProjectHandler(projectService),
		assetHandler:   handlers.NewAssetHandler(assetService, projectService),
		siteHandler:    handlers.NewSiteContentHandler(siteService),
		publishHandler: handlers.NewPublishHandler(publishService),
		uploadHandler:  handlers.NewUploadHandler(uploadService),
		fileHandler:    handlers.NewFileHandler(store),
		auditHandler:   handlers.NewAuditLogHandler(auditService),
		healthHandler:  handlers.NewHealthHandler(),
		sweeper:        sweeper,
	}
}

func registerRoutes(r *gin.Engine, cfg *config.Config, app *application) {
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false

	r.Use(middleware.CORS())

	r.GET("/health", app.healthHandler.CheckHealth)

	api := r.Group("/api")
	{
		// Public asset serving, rate-limited per IP.
		public := api.Group("")
		public.Use(middleware.RateLimit(20, 40))
		{
			public.GET("/files/*key", app.fileHandler.Serve)
			public.GET("/assets", app.fileHandler.ServeByQuery)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AccessRequired(cfg.Admin.AllowLocal))
		admin.Use(middleware.AuditLog())
		{
			admin.GET("/projects", app.projectHandler.List)
			admin.POST("/projects", app.projectHandler.Save)
			admin.GET("/projects/:id", app.projectHandler.Get)
			admin.DELETE("/projects/:id", app.projectHandler.Delete)
			admin.POST("/projects/:id/assets", app.assetHandler.Attach)
			admin.POST("/projects/:id/assets/reorder", app.assetHandler.Reorder)
			admin.PATCH("/assets/:assetId", app.assetHandler.Patch)
			admin.DELETE("/assets/:assetId", app.assetHandler.Delete)

			admin.GET("/site-content", app.siteHandler.Get)
			admin.POST("/site-content", app.siteHandler.Patch)

			admin.POST("/publish", app.publishHandler.Publish)
			admin.POST("/publish/bulk", app.publishHandler.BulkPublish)
			admin.GET("/deploy-status", app.publishHandler.DeployStatus)

			admin.POST("/upload-url", app.uploadHandler.CreateUploadURL)
			admin.PUT("/upload", middleware.RateLimit(5, 10), app.uploadHandler.Upload)

			admin.GET("/audit-logs", app.auditHandler.List)
			admin.GET("/audit-logs/modules", app.auditHandler.GetModules)
		}
	}
}
