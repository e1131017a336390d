// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"signlearn/internal/config"
	"signlearn/internal/handlers"
	"signlearn/internal/middleware"
	"signlearn/internal/repository"
	"signlearn/internal/service"
	"signlearn/internal/session"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	//　設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	// Configを読み込み
	if err := config.LoadConfig("../configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// === 設定に基づいて slog ロガーを初期化 ===
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}
	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		// --- tint Handler を使用 ---
		tintOpts := &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		}
		handler = tint.NewHandler(os.Stderr, tintOpts)
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}
		handler = slog.NewJSONHandler(os.Stderr, jsonOpts)
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	logger := slog.New(handler)
	log.Println("Log Config Loaded...")

	slog.SetDefault(logger)

	slog.Info("Application starting...")

	// 2. Initialize Database Connection (GORM)
	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	// 3. Dependency Injection
	contentRepo := repository.NewGormContentRepository()
	progressRepo := repository.NewGormProgressRepository()

	sessionManager := session.NewManager(logger)

	completionService := service.NewCompletionService(db, contentRepo, progressRepo)
	sessionService := service.NewSessionService(db, contentRepo, progressRepo, sessionManager, completionService, &config.Cfg)
	progressService := service.NewProgressService(db, contentRepo, progressRepo)
	contentService := service.NewContentService(db, contentRepo, &config.Cfg)

	sessionHandler := handlers.NewSessionHandler(sessionService, logger)
	progressHandler := handlers.NewProgressHandler(progressService, logger)
	contentHandler := handlers.NewContentHandler(contentService, logger)
	completionHandler := handlers.NewCompletionHandler(completionService, logger)

	// アイドルセッションの定期掃除
	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	defer sweepCancel()
	sessionManager.StartSweeper(sweepCtx, config.Cfg.App.SessionSweepEvery, config.Cfg.App.SessionTTL)

	// 4. Setup Router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	// CORS 設定と適用 (設定ファイルから読み込んだ値を使用)
	corsOptions := cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
		Debug:            false,
	}
	corsHandler := cors.New(corsOptions)
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// API Routes
	r.Route("/api/v1", func(r chi.Router) {
		// --- Protected routes (require user identity) ---
		r.Group(func(r chi.Router) {
			if config.Cfg.Auth.Enabled {
				slog.Info("Applying JWT authentication middleware")
				r.Use(middleware.JWTAuthMiddleware(&config.Cfg))
			} else {
				// 開発用: X-User-ID ヘッダからユーザーを特定する
				slog.Warn("Authentication disabled, using development user middleware")
				r.Use(middleware.DevUserContextMiddleware)
			}

			// Subtopic content routes
			r.Route("/subtopics/{subtopic_id}", func(r chi.Router) {
				r.Get("/flashcards", contentHandler.GetFlashcards)
				r.Get("/timeline", contentHandler.GetTimeline)
				r.Get("/practice-questions", contentHandler.GetPracticeQuestions)
				r.Get("/next", contentHandler.GetNextSubtopic)
				r.Post("/sessions", sessionHandler.StartSession)
				r.Get("/progress", progressHandler.GetProgress)
				r.Put("/progress", progressHandler.SaveProgress)
			})

			// Session routes
			r.Route("/sessions/{session_id}", func(r chi.Router) {
				r.Get("/", sessionHandler.GetSession)
				r.Post("/flip", sessionHandler.Flip)
				r.Post("/next", sessionHandler.Next)
				r.Post("/prev", sessionHandler.Prev)
				r.Post("/answer", sessionHandler.Answer)
				r.Post("/complete", sessionHandler.Complete)
				r.Post("/navigate", sessionHandler.Choose)
			})

			// Topic routes
			r.Route("/topics/{topic_id}", func(r chi.Router) {
				r.Get("/completion-status", completionHandler.GetCompletionStatus)
				r.Get("/sentence-building", contentHandler.GetSentenceBuilding)
			})
		})
	})

	// Health Check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		// DB接続チェック
		ctx := r.Context()
		sqlDB, err := db.DB()
		if err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not get DB object", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		err = sqlDB.PingContext(r.Context())
		if err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// 5. Start Server
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}
