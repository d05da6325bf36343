package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/anonto42/mediashare/backend/internal/middleware"
	"github.com/anonto42/mediashare/backend/internal/repositories"
	"github.com/anonto42/mediashare/backend/internal/router"
	"github.com/anonto42/mediashare/backend/pkg/config"
	"github.com/anonto42/mediashare/backend/pkg/events"
	"github.com/anonto42/mediashare/backend/pkg/firebase"
	"github.com/anonto42/mediashare/backend/pkg/ratelimit"
	"github.com/anonto42/mediashare/backend/pkg/storage"
	"github.com/anonto42/mediashare/backend/pkg/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	if err := repositories.AutoMigrate(db.Postgres); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.OTLPEndpoint, cfg.ServiceName, cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("tracer shutdown: %v", err)
		}
	}()

	metricsSrv := telemetry.NewMetricsServer(":" + cfg.MetricsPort)
	telemetry.ServeMetrics(metricsSrv)

	deps := router.Dependencies{
		DB:           db.Postgres,
		JWT:          middleware.NewJWTVerifier(cfg.JWTSecret, cfg.JWTTTL),
		FeedMaxLimit: cfg.FeedMaxLimit,
	}

	// Firebase sign-in is optional
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		deps.Firebase = firebaseApp.AuthClient
	}

	if cfg.RedisAddr != "" {
		rdb, err := ratelimit.Connect(ctx, cfg.RedisAddr)
		if err != nil {
			log.Printf("Redis unavailable, rate limiting disabled: %v", err)
		} else {
			defer rdb.Close()
			deps.Limiter = ratelimit.New(rdb, int64(cfg.RateLimitPerMinute), time.Minute)
			log.Println("Rate limiting enabled.")
		}
	}

	if len(cfg.KafkaBrokers) > 0 {
		publisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaNotificationTopic)
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Printf("kafka writer close: %v", err)
			}
		}()
		deps.Publisher = publisher
		log.Printf("Publishing notifications to topic %s.", cfg.KafkaNotificationTopic)
	}

	switch cfg.BlobBackend {
	case "s3":
		store, err := storage.NewS3Store(storage.S3Config{
			Endpoint:      cfg.S3Endpoint,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			UseSSL:        cfg.S3UseSSL,
			Bucket:        cfg.S3Bucket,
			PublicBaseURL: cfg.PublicBaseURL,
		})
		if err != nil {
			log.Fatalf("Failed to initialize S3 storage: %v", err)
		}
		if err := store.EnsureBucket(ctx); err != nil {
			log.Fatalf("Failed to ensure bucket %s: %v", cfg.S3Bucket, err)
		}
		deps.Blobs = store
	case "gridfs":
		if db.Mongo == nil {
			log.Fatal("BLOB_BACKEND=gridfs requires MONGO_URI")
		}
		store, err := storage.NewGridFSStore(db.Mongo.Database(cfg.MongoDatabase), cfg.PublicBaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize GridFS storage: %v", err)
		}
		deps.Blobs = store
		deps.BlobOpener = store
	default:
		log.Println("No blob backend configured; uploads with files are rejected.")
	}

	e := router.NewServer(deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(e, cfg.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("metrics shutdown: %v", err)
	}
}
