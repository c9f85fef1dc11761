package main

import (
	"context"
	"log"
	"os"
	"time"

	"postwriter/internal/api"
	"postwriter/internal/config"
	"postwriter/internal/dialog"
	"postwriter/internal/redis"
	"postwriter/internal/router"
	"postwriter/internal/service/ai"
	"postwriter/internal/service/assistant"
	"postwriter/internal/storage"
	"postwriter/internal/telegram"
	"postwriter/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf(".env not loaded: %v", err)
	}

	botToken := mustEnv("TELEGRAM_BOT_TOKEN")

	cfgPath := os.Getenv("POSTWRITER_CONFIG")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	dbType := os.Getenv("POSTWRITER_DB")
	if dbType == "" {
		dbType = "sqlite3"
	}
	log.Printf("dbType: %s", dbType)
	db, err := storage.Open(dbType, cfg)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	// Create necessary tables: users, events
	if err := storage.Migrate(db, dbType); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// Dialog sessions live in redis when configured, otherwise in-process.
	var dialogs dialog.Store
	if cfg.Redis.Host != "" {
		rdb, err := redis.NewClient(cfg)
		if err != nil {
			log.Fatalf("create redis client: %v", err)
		}
		defer rdb.Close()
		dialogs, err = dialog.NewRedisStore(rdb)
		if err != nil {
			log.Fatalf("init dialog store: %v", err)
		}
	} else {
		dialogs = dialog.NewMemoryStore()
	}

	provider := cfg.BasicConfig.Provider
	provCfg, ok := cfg.Providers[provider]
	if !ok {
		log.Fatalf("provider %s not configured", provider)
	}
	aiService, err := ai.NewService(context.Background(), provider, provCfg)
	if err != nil {
		log.Fatalf("init ai service: %v", err)
	}

	assistantService := assistant.NewService(db)
	tg := telegram.New(botToken)
	bot := router.New(assistantService, dialogs, aiService, tg)

	if base := cfg.BasicConfig.WebhookBaseURL; base != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		webhookURL := base + "/webhook/" + botToken
		if err := tg.SetWebhook(ctx, webhookURL); err != nil {
			log.Printf("set webhook: %v", err)
		} else {
			log.Printf("webhook set: %s", base)
		}
		cancel()
	}

	dispatcher := worker.NewDispatcher(worker.DispatcherConfig{
		MinWorkers:        cfg.BasicConfig.MinWorkers,
		MaxWorkers:        cfg.BasicConfig.MaxWorkers,
		QueueSize:         cfg.BasicConfig.QueueSize,
		WorkerIdleTimeout: time.Duration(cfg.BasicConfig.WorkerIdleTimeout) * time.Minute,
	})

	handlers := api.NewHandler(bot, assistantService, dispatcher, db, botToken)

	engine := gin.Default()
	handlers.RegisterRoutes(engine)

	addr := cfg.BasicConfig.ServerAddress
	if addr == "" {
		addr = ":8090"
	}

	if err := engine.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("missing required env: %s", key)
	}
	return v
}
