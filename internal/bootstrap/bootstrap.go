package bootstrap

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kirillkom/telegram-gemini-bot/internal/adapters/telegram"
	"github.com/kirillkom/telegram-gemini-bot/internal/config"
	"github.com/kirillkom/telegram-gemini-bot/internal/core/ports"
	"github.com/kirillkom/telegram-gemini-bot/internal/core/usecase"
	"github.com/kirillkom/telegram-gemini-bot/internal/infrastructure/chunking"
	"github.com/kirillkom/telegram-gemini-bot/internal/infrastructure/extractor/pdftext"
	"github.com/kirillkom/telegram-gemini-bot/internal/infrastructure/llm/gemini"
	"github.com/kirillkom/telegram-gemini-bot/internal/infrastructure/queue/nats"
	"github.com/kirillkom/telegram-gemini-bot/internal/infrastructure/repository/postgres"
	"github.com/kirillkom/telegram-gemini-bot/internal/infrastructure/resilience"
	"github.com/kirillkom/telegram-gemini-bot/internal/infrastructure/staging/localfs"
)

type App struct {
	Config config.Config

	BotAPI     *tgbotapi.BotAPI
	Dispatcher *usecase.Dispatcher
	Limiter    *telegram.ChatLimiter
	Queue      ports.EventSink
	Staging    ports.StagingStore

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewProfileRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	staging, err := localfs.New(cfg.StagingPath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init staging store: %w", err)
	}

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: resilience.NewExecutor(resilience.DefaultConfig()),
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	providerExecutor := resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts: cfg.ProviderRetryMaxAttempts,
	})
	provider, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, providerExecutor)
	if err != nil {
		queue.Close()
		_ = db.Close()
		return nil, fmt.Errorf("init gemini client: %w", err)
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		queue.Close()
		_ = db.Close()
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	source := telegram.NewPlatformFileSource(botAPI)
	extractor := pdftext.NewExtractor(staging)
	chunker := chunking.NewSplitter(cfg.ReplyChunkLimit)

	registerUC := usecase.NewRegisterUseCase(repo)
	contactUC := usecase.NewSaveContactUseCase(repo)
	chatUC := usecase.NewChatUseCase(provider, repo)
	analyzeUC := usecase.NewAnalyzeFileUseCase(source, staging, extractor, provider, chunker, queue, cfg.PDFTextBudget)
	searchUC := usecase.NewWebSearchUseCase(provider)

	dispatcher := usecase.NewDispatcher(registerUC, contactUC, chatUC, analyzeUC, searchUC)
	limiter := telegram.NewChatLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	return &App{
		Config:     cfg,
		BotAPI:     botAPI,
		Dispatcher: dispatcher,
		Limiter:    limiter,
		Queue:      queue,
		Staging:    staging,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
