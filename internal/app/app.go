package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	api "github.com/OvyFlash/telegram-bot-api"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"github.com/iamvkosarev/codeninja-telegram-bot/config"
	"github.com/iamvkosarev/codeninja-telegram-bot/internal/metrics"
	in_memory "github.com/iamvkosarev/codeninja-telegram-bot/internal/storage/in-memory"
	key_value "github.com/iamvkosarev/codeninja-telegram-bot/internal/storage/key-value"
	"github.com/iamvkosarev/codeninja-telegram-bot/internal/usecase"
	"github.com/iamvkosarev/codeninja-telegram-bot/pkg/codeimg"
	openai_tools "github.com/iamvkosarev/codeninja-telegram-bot/pkg/openai-tools"
)

const shutdownTimeout = 10 * time.Second

// Run wires the bot and serves updates until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	token := cfg.Telegram.TelegramAPIToken
	botAPI, err := api.NewBotAPI(token)
	if err != nil {
		return fmt.Errorf("failed to create new bot: %w", usecase.RedactToken(err, token))
	}
	logger.Info().Str("bot_username", botAPI.Self.UserName).Msg("authorized on telegram")
	bot := usecase.NewRedactingBot(botAPI, token)

	met := metrics.New(prometheus.DefaultRegisterer)

	themeStorage, closeStorage, err := newThemeStorage(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer closeStorage()

	clientConfig := openai.DefaultConfig(cfg.Completion.APIKey)
	clientConfig.BaseURL = cfg.Completion.BaseURL
	limiter, err := openai_tools.NewPromptLimiter(cfg.Completion.Model, cfg.Completion.MaxPromptTokens)
	if err != nil {
		logger.Warn().Err(err).Msg("prompt token limit disabled")
	}

	renderer, err := codeimg.New(codeimg.Options{
		Disabled: !cfg.Render.Enabled,
		FontSize: cfg.Render.FontSize,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("code images disabled")
	}
	logger.Info().Bool("code_images", renderer.Available()).Msg("renderer initialized")

	branding := usecase.NewBranding(cfg.Branding, cfg.Telegram.RequiredChannel)

	themeUsecase := usecase.NewThemeUsecase(usecase.ThemeUsecaseDeps{
		ThemeStorage: themeStorage,
		Logger:       logger,
	})

	membershipUsecase := usecase.NewMembershipUsecase(
		usecase.MembershipUsecaseDeps{
			Bot:     bot,
			Logger:  logger,
			Metrics: met,
		},
		cfg.Telegram.RequiredChannel,
		usecase.ParseLookupFailurePolicy(cfg.Membership.OnLookupError),
	)

	completionUsecase := usecase.NewCompletionUsecase(
		usecase.CompletionUsecaseDeps{
			Client:  openai.NewClientWithConfig(clientConfig),
			Limiter: limiter,
			Logger:  logger,
			Metrics: met,
		},
		cfg.Completion,
		usecase.SystemPrompt(cfg.Branding.BotName),
	)

	deliveryUsecase := usecase.NewDeliveryUsecase(
		usecase.DeliveryUsecaseDeps{
			Bot:      bot,
			Renderer: renderer,
			Themes:   themeUsecase,
			Logger:   logger,
			Metrics:  met,
		},
		branding,
	)

	telegramUsecase, err := usecase.NewTelegramUsecase(
		usecase.TelegramUsecaseDeps{
			Bot:        bot,
			Updates:    botAPI,
			Membership: membershipUsecase,
			Completion: completionUsecase,
			Delivery:   deliveryUsecase,
			Themes:     themeUsecase,
			Logger:     logger,
			Metrics:    met,
		},
		cfg.Telegram,
		branding,
	)
	if err != nil {
		return fmt.Errorf("failed to create telegram usecase: %w", err)
	}

	if cfg.HTTP.ListenAddr != "" {
		server := &http.Server{
			Addr:              cfg.HTTP.ListenAddr,
			Handler:           NewRouter(prometheus.DefaultGatherer),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info().Str("addr", server.Addr).Msg("http server started")
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Msg("http server failed")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("failed to stop http server")
			}
		}()
	}

	logger.Info().
		Str("bot_name", cfg.Branding.BotName).
		Str("model", cfg.Completion.Model).
		Str("storage", cfg.Storage.Driver).
		Int("workers", cfg.Telegram.Workers).
		Msg("system online")
	return telegramUsecase.Run(ctx)
}

func newThemeStorage(ctx context.Context, cfg config.Storage) (usecase.ThemeStorage, func(), error) {
	switch cfg.Driver {
	case config.StorageDriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Endpoint,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("failed to connect redis: %w", err)
		}
		return key_value.NewThemeStorage(rdb, cfg.Redis.KeyPrefix), func() { _ = rdb.Close() }, nil
	default:
		return in_memory.NewThemeStorage(), func() {}, nil
	}
}
