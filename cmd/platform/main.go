package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/vitavoice/platform/internal/assistant"
	"github.com/vitavoice/platform/internal/diet"
	"github.com/vitavoice/platform/internal/education"
	"github.com/vitavoice/platform/internal/history"
	"github.com/vitavoice/platform/internal/i18n"
	"github.com/vitavoice/platform/internal/knowledge"
	"github.com/vitavoice/platform/internal/shared/auth"
	"github.com/vitavoice/platform/internal/shared/config"
	"github.com/vitavoice/platform/internal/shared/database"
	"github.com/vitavoice/platform/internal/shared/events"
	"github.com/vitavoice/platform/internal/shared/metrics"
	secmiddleware "github.com/vitavoice/platform/internal/shared/middleware"
	"github.com/vitavoice/platform/internal/triage"
	"github.com/vitavoice/platform/internal/vaccination"
	"go.uber.org/zap"
)

// App holds all application dependencies
type App struct {
	Config *config.Config
	DB     *database.DB
	Bus    *events.Bus
	Redis  *assistant.RedisStore
	KB     *knowledge.Base
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Server)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	app := &App{Config: cfg}

	// Knowledge base: built-in catalogue unless a file is configured
	if path := cfg.Triage.KnowledgeBasePath; path != "" {
		kb, err := knowledge.LoadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load knowledge base: %v\n", err)
			os.Exit(1)
		}
		app.KB = kb
	} else {
		app.KB = knowledge.New()
	}

	detector, err := triage.NewDetector(app.KB, triage.DetectorOptions{
		FallbackProtocol: cfg.Triage.FallbackProtocol,
		Logger:           logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create emergency detector: %v\n", err)
		os.Exit(1)
	}
	engine := triage.NewEngine(app.KB, detector)
	translator := i18n.NewTranslator()

	// Initialize database (optional - skip if not available)
	var historyRepo *history.Repository
	var vaccinationStore vaccination.Store
	var dietStore diet.Store
	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		fmt.Printf("Warning: Database not available: %v\n", err)
		fmt.Println("Running without diagnostic history, vaccination records or saved diet plans...")
	} else {
		app.DB = db
		defer db.Close()

		if err := database.Migrate(ctx, db.Pool); err != nil {
			fmt.Printf("Warning: Migration failed: %v\n", err)
		}
		historyRepo = history.NewRepository(db.Pool)
		vaccinationStore = vaccination.NewRepository(db.Pool)
		dietStore = diet.NewRepository(db.Pool)
	}

	// Initialize event bus with KurrentDB (optional - skip if not available)
	var publisher events.Publisher
	if cfg.KurrentDB.Enabled {
		bus, err := events.NewBus(ctx, cfg.KurrentDB)
		if err != nil {
			fmt.Printf("Warning: KurrentDB not available: %v\n", err)
			fmt.Println("Running without event streaming...")
		} else {
			app.Bus = bus
			publisher = bus
			defer bus.Close()
			fmt.Println("KurrentDB Event Bus initialized")
		}
	}

	// Conversation sessions: Redis when configured, memory otherwise
	var store assistant.Store = assistant.NewMemoryStore(cfg.Redis.SessionTTL)
	var readTracker education.ReadTracker = education.NewMemoryTracker()
	if cfg.Redis.Enabled() {
		redisStore, err := assistant.NewRedisStore(ctx, cfg.Redis.URL, cfg.Redis.SessionTTL)
		if err != nil {
			fmt.Printf("Warning: Redis not available: %v\n", err)
			fmt.Println("Keeping conversations in memory...")
		} else {
			app.Redis = redisStore
			store = redisStore
			readTracker = education.NewRedisTracker(redisStore.Client())
			defer redisStore.Close()
		}
	}

	var generator assistant.Generator
	if cfg.Gemini.APIKey != "" {
		gemini, err := assistant.NewGeminiClient(cfg.Gemini)
		if err != nil {
			fmt.Printf("Warning: Gemini not available: %v\n", err)
		} else {
			generator = gemini
		}
	} else {
		fmt.Println("GEMINI_API_KEY not set, assistant uses rule-based replies")
	}

	var resultRecorder triage.ResultRecorder
	serviceOpts := []assistant.ServiceOption{}
	if historyRepo != nil {
		recorder := history.NewRecorder(historyRepo, logger)
		resultRecorder = recorder
		serviceOpts = append(serviceOpts, assistant.WithRecorder(recorder))
	}
	if publisher != nil {
		serviceOpts = append(serviceOpts, assistant.WithPublisher(publisher))
	}
	conversations := assistant.NewService(engine, detector, app.KB, translator, store, generator, logger, serviceOpts...)

	limiter := secmiddleware.NewIPRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	cors := secmiddleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.Server.AllowedOrigins

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(secmiddleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(secmiddleware.SecurityHeaders)
	r.Use(secmiddleware.CORS(cors))
	r.Use(secmiddleware.BodyLimit(1 << 20))
	r.Use(metrics.Middleware)

	// Health checks (unauthenticated)
	r.Get("/health", healthHandler(app))
	r.Get("/ready", readyHandler(app))
	r.Handle("/metrics", metrics.Handler())

	// API info
	r.Get("/", infoHandler)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Server.IsProduction() {
			r.Use(auth.Middleware(cfg.Auth))
		}

		triageHandler := triage.NewHandler(engine, publisher, resultRecorder, logger)
		r.Mount("/triage", triageHandler.Routes())

		knowledgeHandler := knowledge.NewHandler(app.KB)
		r.Mount("/knowledge", knowledgeHandler.Routes())

		languageHandler := i18n.NewHandler(translator)
		r.Mount("/languages", languageHandler.Routes())

		assistantHandler := assistant.NewHandler(conversations, limiter)
		r.Mount("/assistant", assistantHandler.Routes())

		if historyRepo != nil {
			historyHandler := history.NewHandler(historyRepo)
			r.Mount("/history", historyHandler.Routes())
		}

		vaccinationHandler := vaccination.NewHandler(vaccinationStore, publisher, logger)
		r.Mount("/vaccinations", vaccinationHandler.Routes())

		educationHandler := education.NewHandler(readTracker, logger)
		r.Mount("/education", educationHandler.Routes())

		dietHandler := diet.NewHandler(dietStore, publisher, logger)
		r.Mount("/diet", dietHandler.Routes())
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("server shutdown error", zap.Error(err))
		}
		close(done)
	}()

	stats := app.KB.Stats()
	fmt.Println("============================================")
	fmt.Println("VitaVoice Health Assistant")
	fmt.Println("============================================")
	fmt.Printf("Environment:    %s\n", cfg.Server.Env)
	fmt.Printf("Server:         http://localhost:%d\n", cfg.Server.Port)
	fmt.Printf("API:            http://localhost:%d/api/v1\n", cfg.Server.Port)
	fmt.Printf("Health:         http://localhost:%d/health\n", cfg.Server.Port)
	fmt.Printf("Knowledge base: %d symptoms, %d diseases\n", stats.Symptoms, stats.Diseases)
	fmt.Printf("Fallback:       %s\n", detector.FallbackProtocol())
	fmt.Printf("Generator:      %v\n", generator != nil)
	fmt.Printf("Sessions:       %s\n", map[bool]string{true: "redis", false: "memory"}[app.Redis != nil])
	fmt.Println("============================================")

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}

	<-done
	logger.Info("server stopped")
}

func newLogger(cfg config.ServerConfig) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func infoHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"name":      "VitaVoice Health Assistant",
		"version":   "0.1.0",
		"languages": i18n.Languages(),
		"docs":      "/api/v1",
	})
}

func healthHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
		})
	}
}

func readyHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"server":         "ready",
			"knowledge_base": "ready",
		}

		if app.DB != nil {
			if err := app.DB.Health(r.Context()); err != nil {
				checks["database"] = "not ready: " + err.Error()
			} else {
				checks["database"] = "ready"
			}
		} else {
			checks["database"] = "not configured"
		}

		if app.Bus != nil {
			if err := app.Bus.Health(); err != nil {
				checks["kurrentdb"] = "not ready: " + err.Error()
			} else {
				checks["kurrentdb"] = "ready"
			}
		} else {
			checks["kurrentdb"] = "not configured"
		}

		if app.Redis != nil {
			if err := app.Redis.Health(r.Context()); err != nil {
				checks["redis"] = "not ready: " + err.Error()
			} else {
				checks["redis"] = "ready"
			}
		} else {
			checks["redis"] = "not configured"
		}

		allReady := true
		for _, status := range checks {
			if status != "ready" && status != "not configured" {
				allReady = false
				break
			}
		}

		status := http.StatusOK
		if !allReady {
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"status": map[bool]string{true: "ready", false: "not ready"}[allReady],
			"checks": checks,
		})
	}
}
