package bootstrap

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/analyses"
	"resume-screener/internal/config"
	"resume-screener/internal/documents"
	"resume-screener/internal/llm"
	"resume-screener/internal/llm/openai"
	"resume-screener/internal/report"
	"resume-screener/internal/shared/server"
	"resume-screener/internal/shared/storage/object"
	localstore "resume-screener/internal/shared/storage/object/local"
	s3store "resume-screener/internal/shared/storage/object/s3"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	Store  object.ObjectStore
	LLM    llm.Client

	DocumentsRepo documents.BatchRepo
	RunsRepo      analyses.RunRepo

	DocumentsService *documents.Service
	AnalysesService  *analyses.Service

	DocumentsHandler *documents.Handler
	AnalysesHandler  *analyses.Handler
	ReportHandler    *report.Handler
}

// Build wires the application from config. Tests may replace App.LLM before
// calling BuildRouter to stub the completion service.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	llmClient, err := openai.NewClient(openai.Config{
		BaseURL:        cfg.LLMBaseURL,
		APIKey:         cfg.LLMAPIKey,
		Model:          cfg.LLMModel,
		MaxTokens:      cfg.LLMMaxTokens,
		Temperature:    cfg.LLMTemperature,
		RequestTimeout: cfg.LLMRequestTimeout,
		MaxAttempts:    cfg.RetryMaxAttempts,
		DefaultWait:    cfg.RetryDefaultWait,
		RetryAfterUnit: cfg.RetryAfterUnit,
	})
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		Store:  store,
		LLM:    llmClient,
	}
	app.BuildRouter()
	return app, nil
}

// BuildRouter assembles repositories, services, handlers and the router from
// the App's Store and LLM. Calling it again after swapping a dependency
// rebuilds the wiring on top of the replacement.
func (app *App) BuildRouter() {
	app.DocumentsRepo = documents.NewMemoryRepo()
	app.RunsRepo = analyses.NewMemoryRepo()

	app.DocumentsService = &documents.Service{
		Store: app.Store,
		Repo:  app.DocumentsRepo,
	}
	app.AnalysesService = &analyses.Service{
		LLM:         app.LLM,
		Repo:        app.RunsRepo,
		Concurrency: app.Config.AnalyzeConcurrency,
	}

	app.DocumentsHandler = documents.NewHandler(app.DocumentsService)
	app.AnalysesHandler = analyses.NewHandler(app.AnalysesService, app.DocumentsService)
	app.ReportHandler = report.NewHandler(app.AnalysesService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		DocumentsHandler: app.DocumentsHandler,
		AnalysesHandler:  app.AnalysesHandler,
		ReportHandler:    app.ReportHandler,
	})
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}
