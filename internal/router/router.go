package router

import (
	"context"
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/avenmora/lenspark/backend/internal/feed"
	"github.com/avenmora/lenspark/backend/internal/handlers"
	"github.com/avenmora/lenspark/backend/internal/middleware"
	"github.com/avenmora/lenspark/backend/internal/models"
	"github.com/avenmora/lenspark/backend/internal/repositories"
	"github.com/avenmora/lenspark/backend/internal/storage"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgdb *mongo.Database, firebaseAuthClient *auth.Client) error {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.LikesBox{},
		&models.Like{},
		&models.Follow{},
	)
	if err != nil {
		return err
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	likesBoxRepo := repositories.NewPostgresLikesBoxRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgdb)
	commentRepo := repositories.NewMongoCommentRepository(mgdb)
	replyRepo := repositories.NewMongoReplyRepository(mgdb)

	uploader, err := storage.NewS3Storage(context.Background())
	if err != nil {
		return err
	}

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// Public reads carry optional auth so the viewer's like status can
	// be annotated when a token is present. Writes require a valid JWT.
	public := e.Group("/api/v1")
	public.Use(middleware.OptionalAuthMiddleware())
	protected := e.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 groups.")

	// Feed routes
	composer := feed.NewComposer(postRepo, userRepo, followRepo, likeRepo)
	feedHandler := handlers.NewFeedHandler(composer, userRepo)
	feedHandler.RegisterFeedRoutes(public, protected)
	log.Println("Feed routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, likesBoxRepo, userRepo, likeRepo, uploader)
	postHandler.RegisterPostRoutes(public, protected)
	log.Println("Post routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, likesBoxRepo, userRepo, likeRepo)
	commentHandler.RegisterCommentRoutes(public, protected)
	log.Println("Comment routes configured.")

	// Reply routes
	replyHandler := handlers.NewReplyHandler(replyRepo, commentRepo, likesBoxRepo, userRepo, likeRepo)
	replyHandler.RegisterReplyRoutes(public, protected)
	log.Println("Reply routes configured.")

	// Like routes
	likeHandler := handlers.NewLikeHandler(likeRepo, likesBoxRepo, postRepo, commentRepo, replyRepo)
	likeHandler.RegisterLikeRoutes(protected)
	log.Println("Like routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(followRepo, userRepo)
	followHandler.RegisterFollowRoutes(protected)
	log.Println("Follow routes configured.")

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo, postRepo, followRepo)
	userHandler.RegisterUserRoutes(public)
	log.Println("User profile routes configured.")

	log.Println("All routes configured.")
	return nil
}
