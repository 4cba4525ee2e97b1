package router

import (
	"log"

	"github.com/chirpnet/backend/internal/handlers"
	"github.com/chirpnet/backend/internal/middleware"
	"github.com/chirpnet/backend/internal/models"
	"github.com/chirpnet/backend/internal/repositories"
	"github.com/chirpnet/backend/internal/uploads"
	"github.com/chirpnet/backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config) {
	// AutoMigrate PostgreSQL models
	err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// Uploaded images are served straight off the filesystem
	e.Static("/uploads", cfg.UploadDir)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)

	imageStore := uploads.NewImageStore(cfg.UploadDir)

	jwtAuth := middleware.JWTAuthMiddleware(cfg.JWTSecret, userRepo)

	// --- Unprotected routes for authentication ---
	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	authHandler.RegisterPublicRoutes(e.Group("/auth"))

	// --- Protected auth routes (profile, verify, user listings) ---
	authGroup := e.Group("/auth", jwtAuth)
	authHandler.RegisterProtectedRoutes(authGroup)

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterUserRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected feed routes ---
	feedGroup := e.Group("/feed", jwtAuth)

	postHandler := handlers.NewPostHandler(postRepo, userRepo, imageStore)
	postHandler.RegisterPostRoutes(feedGroup)
	log.Println("Post routes configured.")

	likeHandler := handlers.NewLikeHandler(likeRepo, postRepo)
	likeHandler.RegisterLikeRoutes(feedGroup)
	log.Println("Like routes configured.")

	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, userRepo)
	commentHandler.RegisterCommentRoutes(feedGroup)
	log.Println("Comment routes configured.")

	log.Println("All routes configured.")
}
