package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/analyses"
	"resume-screener/internal/extract"
	"resume-screener/internal/extract/docintel"
	"resume-screener/internal/llm"
	"resume-screener/internal/llm/gemini"
	"resume-screener/internal/resumes"
	"resume-screener/internal/shared/config"
	"resume-screener/internal/shared/server/middleware"
	"resume-screener/internal/shared/server/respond"
	"resume-screener/internal/shared/storage/db"
	"resume-screener/internal/shared/storage/object"
	localstore "resume-screener/internal/shared/storage/object/local"
	s3store "resume-screener/internal/shared/storage/object/s3"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	uploader := newUploader(cfg)
	extractor := newExtractor(cfg)
	evaluator := newEvaluator(cfg)
	repo := newHistoryRepo(cfg)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	resumes.NewHandler(uploader, extractor, evaluator, repo).RegisterRoutes(api)
	analyses.NewHandler(repo).RegisterRoutes(api)

	return r
}

func newUploader(cfg config.Config) object.Uploader {
	if cfg.ObjectStoreType == "s3" {
		store, err := s3store.New(context.Background(), cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
		if err == nil {
			return store
		}
		log.Printf("failed to init s3 store, falling back to local: %v", err)
	}
	return localstore.New(cfg.LocalStoreDir)
}

func newExtractor(cfg config.Config) extract.Extractor {
	if cfg.DocIntEndpoint != "" && cfg.DocIntKey != "" {
		client, err := docintel.New(cfg.DocIntEndpoint, cfg.DocIntKey)
		if err == nil {
			return client
		}
		log.Printf("failed to init document analysis client, falling back to local: %v", err)
	}
	return extract.NewLocal()
}

func newEvaluator(cfg config.Config) llm.Client {
	if cfg.GoogleAPIKey == "" {
		return llm.DemoClient{}
	}
	client, err := gemini.NewClient(cfg.GoogleAPIKey, cfg.GeminiModel, cfg.GeminiTimeout)
	if err != nil {
		log.Printf("failed to init gemini client, falling back to demo mode: %v", err)
		return llm.DemoClient{}
	}
	return client
}

func newHistoryRepo(cfg config.Config) analyses.Repo {
	if cfg.DatabaseURL == "" {
		return analyses.NewMemoryRepo()
	}

	sqlDB, err := connectDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Printf("failed to connect database, falling back to memory: %v", err)
		return analyses.NewMemoryRepo()
	}
	return &analyses.PGRepo{DB: sqlDB}
}

func connectDatabase(databaseURL string) (*sql.DB, error) {
	ctx := context.Background()
	sqlDB, err := db.Connect(ctx, databaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
