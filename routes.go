package main

import (
	"net/http"
	"time"

	"boqportal/handlers"
	"boqportal/models"
	"boqportal/repository"
	"boqportal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// appDeps is everything the HTTP layer talks to.
type appDeps struct {
	Sessions   handlers.SessionStore
	Activity   handlers.ActivityLogger
	Projects   repository.ProjectStore
	Performas  repository.PerformaStore
	Objects    handlers.ObjectStore
	Notifier   services.Notifier
	Comparison handlers.Comparer
}

func CORSConfig(origins []string) cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = origins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Content-Type", "Content-Length", "Accept-Encoding", "Accept", "Origin",
		"X-Requested-With", "Authorization", "User-Agent", "Cache-Control",
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"}
	corsConfig.ExposeHeaders = []string{"Content-Length", "Content-Type", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	return corsConfig
}

func newRouter(deps appDeps, corsOrigins []string) *gin.Engine {
	r := gin.Default()
	r.MaxMultipartMemory = 8 << 20

	if len(corsOrigins) > 0 {
		r.Use(cors.New(CORSConfig(corsOrigins)))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	api := r.Group("/api")

	// ==================== 1. AUTH ====================
	api.POST("/login", handlers.LoginHandler(deps.Sessions, deps.Activity))

	authed := api.Group("", handlers.RequireSession(deps.Sessions))
	admin := authed.Group("", handlers.RequireRole(models.RoleAdmin))

	authed.POST("/logout", handlers.LogoutHandler(deps.Sessions))

	// ==================== 2. PROJECTS & CATEGORIES ====================
	authed.GET("/projects", handlers.ListProjects(deps.Projects))
	authed.GET("/projects/:project_id", handlers.GetProject(deps.Projects))
	admin.POST("/projects", handlers.CreateProject(deps.Projects, deps.Activity))
	admin.DELETE("/projects/:project_id", handlers.DeleteProject(deps.Projects, deps.Activity))

	authed.GET("/projects/:project_id/categories", handlers.ListCategories(deps.Projects))
	admin.POST("/projects/:project_id/categories", handlers.CreateCategory(deps.Projects, deps.Activity))

	// ==================== 3. VENDORS ====================
	admin.GET("/vendors", handlers.GetVendors(deps.Projects))
	admin.POST("/vendors", handlers.CreateVendor(deps.Projects, deps.Activity))

	// ==================== 4. BOQ DOCUMENTS ====================
	authed.GET("/projects/:project_id/boq", handlers.ListBOQ(deps.Projects))
	authed.GET("/boq/:id/download", handlers.DownloadBOQ(deps.Projects, deps.Objects))
	admin.POST("/projects/:project_id/boq", handlers.UploadBOQ(deps.Projects, deps.Objects, deps.Activity))

	// ==================== 5. PERFORMAS ====================
	authed.POST("/projects/:project_id/performas", handlers.SubmitPerforma(deps.Projects, deps.Performas, deps.Activity))
	authed.GET("/projects/:project_id/performas", handlers.ListPerformas(deps.Performas))
	authed.GET("/performas/:id", handlers.GetPerforma(deps.Performas))
	authed.POST("/performas/:id/file", handlers.UploadPerformaFile(deps.Performas, deps.Objects, deps.Activity))
	authed.GET("/performas/:id/qr", handlers.PerformaQRCode(deps.Projects, deps.Performas))
	admin.PUT("/performas/:id/status", handlers.UpdatePerformaStatus(deps.Projects, deps.Performas, deps.Notifier, deps.Activity))
	admin.DELETE("/performas/:id", handlers.DeletePerforma(deps.Performas, deps.Objects, deps.Activity))

	// ==================== 6. COMPARISON ====================
	admin.GET("/projects/:project_id/comparison", handlers.GetComparison(deps.Projects, deps.Comparison))
	admin.GET("/projects/:project_id/comparison/excel", handlers.ExportComparisonExcel(deps.Projects, deps.Comparison))
	admin.GET("/projects/:project_id/comparison/pdf", handlers.ExportComparisonPDF(deps.Projects, deps.Comparison))

	// ==================== 7. ACTIVITY LOG ====================
	admin.GET("/logs", handlers.GetActivityLogsHandler(deps.Activity))

	return r
}
