// @title           BauDok Backend API
// @version         1.0.0
// @description     Backend API for on-site construction documentation: projects, work-phase photographs and floorplans with pinned markers.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api

package main

import (
	"log"
	"net/http"
	"net/url"

	"baudok-backend/docs"
	"baudok-backend/internal/config"
	"baudok-backend/internal/database"
	"baudok-backend/internal/handlers"
	"baudok-backend/internal/middleware"
	"baudok-backend/internal/services"
	"baudok-backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Update Swagger docs with dynamic base URL
	if cfg.BaseURL != "" {
		if baseURL, err := url.Parse(cfg.BaseURL); err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	// Database client and migrations
	dbClient, err := database.NewClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database client: %v", err)
	}
	defer dbClient.Close()

	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize migrator: %v", err)
	}
	defer migrator.Close()
	if err := migrator.Run(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully")

	// Blob store: Supabase Storage when configured, in-memory otherwise
	var blobs storage.BlobStore
	if cfg.SupabaseURL != "" {
		blobs, err = storage.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket)
		if err != nil {
			log.Fatalf("Failed to initialize storage client: %v", err)
		}
	} else {
		log.Println("Warning: SUPABASE_URL not set. Using in-memory blob store; uploads will not survive a restart.")
		blobs = storage.NewMemoryStore()
	}

	// Coordinator sequences all cross-collection effects
	coordinator := services.NewCoordinator(dbClient, dbClient, dbClient, blobs)

	projectsHandler := handlers.NewProjectsHandler(coordinator)
	floorplansHandler := handlers.NewFloorplansHandler(coordinator)
	imagesHandler := handlers.NewImagesHandler(coordinator)

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", handlers.HealthHandler)

	api := router.Group("/api")

	api.GET("/", handlers.RootHandler)
	api.GET("/tags", handlers.TagsHandler)

	// Project routes
	api.POST("/projects", projectsHandler.CreateProject)
	api.GET("/projects", projectsHandler.ListProjects)
	api.GET("/projects/:project_id", projectsHandler.GetProject)
	api.PUT("/projects/:project_id", projectsHandler.UpdateProject)
	api.DELETE("/projects/:project_id", projectsHandler.DeleteProject)

	// Floorplan routes
	api.POST("/projects/:project_id/floorplans", floorplansHandler.UploadFloorplan)
	api.GET("/projects/:project_id/floorplans", floorplansHandler.ListFloorplans)
	api.GET("/floorplans/:floorplan_id/data", floorplansHandler.GetFloorplanData)
	api.GET("/floorplans/:floorplan_id/images", floorplansHandler.ListFloorplanImages)
	api.DELETE("/floorplans/:floorplan_id", floorplansHandler.DeleteFloorplan)

	// Image routes
	api.POST("/projects/:project_id/images", imagesHandler.UploadImage)
	api.GET("/projects/:project_id/images", imagesHandler.ListImages)
	api.GET("/images/:image_id/data", imagesHandler.GetImageData)
	api.PUT("/images/:image_id", imagesHandler.UpdateImage)
	api.DELETE("/images/:image_id", imagesHandler.DeleteImage)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
