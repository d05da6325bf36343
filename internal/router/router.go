package router

import (
	"log"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/anonto42/mediashare/backend/internal/handlers"
	"github.com/anonto42/mediashare/backend/internal/middleware"
	"github.com/anonto42/mediashare/backend/internal/repositories"
	"github.com/anonto42/mediashare/backend/internal/services"
	"github.com/anonto42/mediashare/backend/pkg/firebase"
	"github.com/anonto42/mediashare/backend/pkg/storage"
	"github.com/anonto42/mediashare/backend/validators"
)

// Dependencies are the collaborators the HTTP surface is built from.
// Optional interfaces stay nil when the backing service is not configured.
type Dependencies struct {
	DB           *gorm.DB
	JWT          *middleware.JWTVerifier
	Firebase     firebase.IDTokenVerifier
	Blobs        storage.BlobStore
	BlobOpener   handlers.BlobOpener
	Limiter      middleware.Limiter
	Publisher    services.EventPublisher
	FeedMaxLimit int
}

// NewServer builds a fully wired Echo instance.
func NewServer(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.ErrorHandler

	SetupMiddleware(e)
	SetupRoutes(e, deps)
	return e
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RequestIDWithConfig(eMiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			if v.Error != nil {
				log.Printf("%s %s %d %s id=%s err=%v", v.Method, v.URI, v.Status, v.Latency, v.RequestID, v.Error)
				return nil
			}
			log.Printf("%s %s %d %s id=%s", v.Method, v.URI, v.Status, v.Latency, v.RequestID)
			return nil
		},
	}))
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(deps.DB)
	contentRepo := repositories.NewPostgresContentRepository(deps.DB)
	counterStore := repositories.NewPostgresCounterStore(deps.DB)
	commentRepo := repositories.NewPostgresCommentRepository(deps.DB)
	followRepo := repositories.NewPostgresFollowRepository(deps.DB)
	notificationRepo := repositories.NewPostgresNotificationRepository(deps.DB)

	// --- Services ---
	notificationService := services.NewNotificationService(notificationRepo, deps.Publisher)
	interactionService := services.NewInteractionService(counterStore, contentRepo, commentRepo, notificationService)
	socialService := services.NewSocialService(followRepo, userRepo, notificationService)
	feedService := services.NewFeedService(contentRepo, deps.FeedMaxLimit)
	contentService := services.NewContentService(contentRepo, counterStore, deps.Blobs)
	searchService := services.NewSearchService(userRepo, contentRepo)
	authService := services.NewAuthService(userRepo, deps.JWT, deps.Firebase)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	handlers.NewAuthHandler(authService).RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	verifiers := []middleware.TokenVerifier{deps.JWT}
	if deps.Firebase != nil {
		verifiers = append(verifiers, middleware.NewFirebaseVerifier(deps.Firebase, userRepo))
	}
	api := e.Group("/api/v1", middleware.Authenticate(verifiers...))
	log.Println("Authentication middleware applied to /api/v1 group.")

	handlers.NewUserHandler(socialService).RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	handlers.NewFeedHandler(feedService).RegisterFeedRoutes(api)
	log.Println("Feed routes configured.")

	handlers.NewMediaHandler(contentService).RegisterMediaRoutes(api)
	log.Println("Media routes configured.")

	handlers.NewLikeHandler(interactionService).RegisterLikeRoutes(api, deps.Limiter)
	log.Println("Like routes configured.")

	handlers.NewCommentHandler(interactionService).RegisterCommentRoutes(api, deps.Limiter)
	log.Println("Comment routes configured.")

	handlers.NewFollowHandler(socialService).RegisterFollowRoutes(api, deps.Limiter)
	log.Println("Follow routes configured.")

	handlers.NewNotificationHandler(notificationService).RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	handlers.NewSearchHandler(searchService).RegisterSearchRoutes(api)
	log.Println("Search routes configured.")

	if deps.BlobOpener != nil {
		handlers.NewBlobHandler(deps.BlobOpener).RegisterBlobRoutes(e)
		log.Println("Blob routes configured.")
	}

	log.Println("All routes configured.")
}
