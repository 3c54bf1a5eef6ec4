package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	api "github.com/OvyFlash/telegram-bot-api"
	"github.com/rs/zerolog"

	"github.com/iamvkosarev/codeninja-telegram-bot/internal/metrics"
	"github.com/iamvkosarev/codeninja-telegram-bot/internal/model"
	"github.com/iamvkosarev/codeninja-telegram-bot/pkg/codeblock"
)

const (
	StrategyImage    = "image"
	StrategyMarkdown = "markdown"
	StrategyHTML     = "html"
	StrategyPlain    = "plain"
	StrategyFile     = "file"

	fileNamePrefix = "snippet"
)

var (
	ErrImagesUnavailable = errors.New("code images unavailable")
)

type CodeRenderer interface {
	Available() bool
	Render(text string, theme string) ([]byte, error)
}

type DeliveryUsecaseDeps struct {
	Bot      Bot
	Renderer CodeRenderer
	Themes   *ThemeUsecase
	Logger   zerolog.Logger
	Metrics  *metrics.Metrics
}

type DeliveryUsecase struct {
	DeliveryUsecaseDeps
	branding Branding
}

func NewDeliveryUsecase(deps DeliveryUsecaseDeps, branding Branding) *DeliveryUsecase {
	return &DeliveryUsecase{
		DeliveryUsecaseDeps: deps,
		branding:            branding,
	}
}

// ImagesAvailable reports whether code images can be rendered at all.
func (d *DeliveryUsecase) ImagesAvailable() bool {
	return d.Renderer != nil && d.Renderer.Available()
}

// Deliver sends text to target using the best format that Telegram accepts:
// a code image, then Markdown, then HTML, then plain text with the watermark
// as a separate message. It never fails; problems are logged.
func (d *DeliveryUsecase) Deliver(ctx context.Context, target model.Target, text string, preferImage bool) {
	logger := d.Logger.With().Int64("chat_id", target.ChatID).Logger()
	strategies := make([]deliveryStrategy, 0, 4)
	if preferImage && codeblock.IsCodeLike(text) {
		if d.ImagesAvailable() {
			caption := d.branding.BotName + " • Code (image)" + d.branding.Watermark()
			strategies = append(strategies, deliveryStrategy{
				name:        StrategyImage,
				attempt:     func() error { return d.sendImage(ctx, target, text, caption) },
				recoverable: anyFailure,
			})
		} else {
			d.count(StrategyImage, metrics.OutcomeSkipped)
		}
	}
	strategies = append(strategies,
		deliveryStrategy{
			name: StrategyMarkdown,
			attempt: func() error {
				return d.sendText(target, text+d.branding.WatermarkMarkdown(), api.ModeMarkdown)
			},
			recoverable: isFormattingRejection,
		},
		deliveryStrategy{
			name: StrategyHTML,
			attempt: func() error {
				return d.sendText(target, text+d.branding.Watermark(), api.ModeHTML)
			},
			recoverable: isFormattingRejection,
		},
		deliveryStrategy{
			name:    StrategyPlain,
			attempt: func() error { return d.sendPlain(target, text, logger) },
		},
	)

	delivered, err := attemptInOrder(strategies, func(name string, err error, recovered bool) {
		d.count(name, metrics.OutcomeFailed)
		event := logger.Error()
		if recovered {
			event = logger.Warn()
		}
		event.Err(err).Str("strategy", name).Bool("fallback", recovered).Msg("failed to deliver response")
	})
	if err != nil {
		logger.Error().Err(err).Msg("response dropped")
		return
	}
	d.count(delivered, metrics.OutcomeSent)
}

// DeliverCompletion delivers a completion, showing failures as a system error
// notice. Failure notices never go out as images.
func (d *DeliveryUsecase) DeliverCompletion(
	ctx context.Context,
	target model.Target,
	completion model.Completion,
	preferImage bool,
) {
	if completion.Failed() {
		preferImage = false
	}
	d.Deliver(ctx, target, completion.DisplayText(), preferImage)
}

// DeliverFile sends the code found in text, or the whole text, as a
// downloadable snippet named after the language hint.
func (d *DeliveryUsecase) DeliverFile(_ context.Context, target model.Target, text string) error {
	body, ext := text, codeblock.FileExtension("")
	if code, ok := codeblock.Extract(text); ok && strings.TrimSpace(code.Code) != "" {
		body, ext = strings.TrimSpace(code.Code), codeblock.FileExtension(code.Language)
	}
	artifact := model.TextArtifact(body, fileNamePrefix+ext)
	if err := d.sendArtifact(target, artifact, d.branding.Watermark()); err != nil {
		d.count(StrategyFile, metrics.OutcomeFailed)
		return fmt.Errorf("failed to send file: %w", err)
	}
	d.count(StrategyFile, metrics.OutcomeSent)
	return nil
}

// DeliverImage renders text with the chat theme and sends it as a photo.
func (d *DeliveryUsecase) DeliverImage(ctx context.Context, target model.Target, text, caption string) error {
	if err := d.sendImage(ctx, target, text, caption); err != nil {
		d.count(StrategyImage, metrics.OutcomeFailed)
		return err
	}
	d.count(StrategyImage, metrics.OutcomeSent)
	return nil
}

func (d *DeliveryUsecase) sendImage(ctx context.Context, target model.Target, text, caption string) error {
	if !d.ImagesAvailable() {
		return ErrImagesUnavailable
	}
	theme := model.ThemeDefault
	if d.Themes != nil {
		theme = d.Themes.Theme(ctx, target.ChatID)
	}
	png, err := d.Renderer.Render(text, string(theme))
	if err != nil {
		return fmt.Errorf("failed to render code image: %w", err)
	}
	if err = d.sendArtifact(target, model.ImageArtifact(png), caption); err != nil {
		return fmt.Errorf("failed to send code image: %w", err)
	}
	return nil
}

func (d *DeliveryUsecase) sendArtifact(target model.Target, artifact model.Artifact, caption string) error {
	var c api.Chattable
	if artifact.IsImage() {
		photo := api.NewPhoto(target.ChatID, api.FileBytes{Name: artifact.FileName, Bytes: artifact.Image})
		photo.Caption = caption
		c = photo
	} else {
		doc := api.NewDocument(target.ChatID, api.FileBytes{Name: artifact.FileName, Bytes: []byte(artifact.Text)})
		doc.Caption = caption
		c = doc
	}
	_, err := d.Bot.Send(c)
	return err
}

// sendPlain sends text and the watermark as two unformatted messages. Once
// the text is out, a failed watermark does not fail the delivery.
func (d *DeliveryUsecase) sendPlain(target model.Target, text string, logger zerolog.Logger) error {
	if err := d.sendText(target, text, ""); err != nil {
		return err
	}
	if err := d.sendText(target, strings.TrimLeft(d.branding.Watermark(), "\n"), ""); err != nil {
		logger.Warn().Err(err).Msg("failed to send watermark")
	}
	return nil
}

func (d *DeliveryUsecase) sendText(target model.Target, text, parseMode string) error {
	msg := api.NewMessage(target.ChatID, text)
	msg.ParseMode = parseMode
	msg.LinkPreviewOptions.IsDisabled = true
	_, err := d.Bot.Send(msg)
	return err
}

func (d *DeliveryUsecase) count(strategy, outcome string) {
	if d.Metrics != nil {
		d.Metrics.Deliveries.WithLabelValues(strategy, outcome).Inc()
	}
}
