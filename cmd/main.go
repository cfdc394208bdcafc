package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/Vovarama1992/showrunner/internal/config"
	"github.com/Vovarama1992/showrunner/internal/delivery"
	ws "github.com/Vovarama1992/showrunner/internal/delivery/ws"
	"github.com/Vovarama1992/showrunner/internal/domain"
	"github.com/Vovarama1992/showrunner/internal/domain/vision"
	"github.com/Vovarama1992/showrunner/internal/infra"
	"github.com/Vovarama1992/showrunner/internal/ports"
)

func main() {

	// LOGGER
	zcore, _ := zap.NewProduction()
	zl := logger.NewZapLogger(zcore.Sugar())

	// ENV
	cfg := config.Load()

	// POSTGRES
	ctx := context.Background()

	pool, err := infra.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		panic("cannot connect pgxpool: " + err.Error())
	}
	defer pool.Close()

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(ctxPing); err != nil {
		panic("postgres ping failed: " + err.Error())
	}

	if err := infra.ApplySchema(ctx, pool); err != nil {
		panic("apply schema failed: " + err.Error())
	}

	// REDIS (optional)
	var cache ports.Cache
	if cfg.RedisAddr != "" {
		cache, err = infra.NewRedisCache(cfg.RedisAddr)
		if err != nil {
			log.Printf("WARN: redis unavailable, search cache disabled: %v", err)
			cache = nil
		}
	}

	// EXTERNAL CLIENTS
	youtube := infra.NewYouTubeAPIClient(cfg.YouTubeAPIKey)
	gemini := infra.NewGeminiClient(cfg.GeminiAPIKey)
	stt := infra.NewVoskSTTService(cfg.VoskServerURL)

	// REPOS
	userRepo := infra.NewPostgresUserRepo(pool)
	thumbRepo := infra.NewPostgresThumbnailRepo(pool)
	videoRepo := infra.NewPostgresVideoRepo(pool)
	scriptRepo := infra.NewPostgresScriptRepo(pool)
	titleRepo := infra.NewPostgresTitleRepo(pool)
	workspaceRepo := infra.NewPostgresWorkspaceRepo(pool)
	chatRepo := infra.NewPostgresChatRepo(pool)
	vectorStore := infra.NewPostgresVectorStore(pool)

	// SERVICES
	authService := domain.NewAuthService(userRepo, cfg.JWTSecret)
	thumbService := domain.NewThumbnailService(thumbRepo, youtube, vision.NewAnalyzer(), gemini, cfg.ThumbnailDir)
	scriptService := domain.NewScriptService(scriptRepo, youtube, gemini, stt, cfg.VoiceToneDir)
	titleService := domain.NewTitleService(titleRepo, youtube, gemini)
	ideaService := domain.NewIdeaService(videoRepo, youtube, cache)
	knowledgeService := domain.NewKnowledgeService(workspaceRepo, vectorStore, youtube, gemini, gemini)
	chatService := domain.NewChatService(chatRepo, workspaceRepo, vectorStore, gemini, gemini)

	// WS HUB
	hub := ws.NewHub()

	// BROADCAST LISTENER
	go func() {
		for ev := range knowledgeService.Events() {
			payload, err := json.Marshal(ev)
			if err != nil {
				log.Printf("[SEND][ERR] json marshal failed: %v", err)
				continue
			}

			log.Printf("[SEND] room=%s stage=%s group=%d chunk=%d/%d",
				ev.RoomID, ev.Stage, ev.GroupID, ev.Chunk, ev.Total)

			hub.SendToRoom(ev.RoomID, payload)
		}
	}()

	// HANDLERS
	handlers := delivery.Handlers{
		Auth:      delivery.NewAuthHandler(authService, zl),
		Thumbnail: delivery.NewThumbnailHandler(thumbService, zl),
		Script:    delivery.NewScriptHandler(scriptService, zl),
		Title:     delivery.NewTitleHandler(titleService, zl),
		Idea:      delivery.NewIdeaHandler(ideaService, zl),
		Workspace: delivery.NewWorkspaceHandler(knowledgeService, zl),
		Chat:      delivery.NewChatHandler(chatService, zl),
		Admin:     delivery.NewAdminHandler(userRepo, zl),
	}

	// ROUTER
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	delivery.RegisterRoutes(r, handlers, authService)

	r.Get("/ws", ws.Handler(hub))

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "server started",
		Fields:  map[string]any{"port": cfg.Port},
	})

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		zl.Log(logger.LogEntry{
			Level:   "error",
			Message: "server crashed",
			Error:   err,
		})
	}
}
