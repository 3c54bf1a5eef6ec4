package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	api "github.com/OvyFlash/telegram-bot-api"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/panics"
	"github.com/sourcegraph/conc/pool"

	"github.com/iamvkosarev/codeninja-telegram-bot/config"
	"github.com/iamvkosarev/codeninja-telegram-bot/internal/metrics"
	"github.com/iamvkosarev/codeninja-telegram-bot/internal/model"
	"github.com/iamvkosarev/codeninja-telegram-bot/pkg/codeblock"
	"github.com/iamvkosarev/codeninja-telegram-bot/pkg/local"
)

const (
	CommandStart     = "start"
	CommandCode      = "code"
	CommandCodeFile  = "codefile"
	CommandFix       = "fix"
	CommandPlan      = "plan"
	CommandAudit     = "audit"
	CommandPrompt    = "prompt"
	CommandChat      = "chat"
	CommandCodeImage = "codeimg"
	CommandTheme     = "theme"

	FlagFile = "--file"
	FlagText = "--text"
)

type commandHandler func(ctx context.Context, req model.Request) error

type TelegramUsecaseDeps struct {
	Bot        Bot
	Updates    UpdatesSource
	Membership *MembershipUsecase
	Completion *CompletionUsecase
	Delivery   *DeliveryUsecase
	Themes     *ThemeUsecase
	Logger     zerolog.Logger
	Metrics    *metrics.Metrics
}

type TelegramUsecase struct {
	TelegramUsecaseDeps
	cfg      config.Telegram
	branding Branding
	handlers map[string]commandHandler
}

func NewTelegramUsecase(deps TelegramUsecaseDeps, cfg config.Telegram, branding Branding) (*TelegramUsecase, error) {
	_, err := deps.Bot.Request(
		api.NewSetMyCommands(
			[]api.BotCommand{
				{Command: CommandCode, Description: "Generate a script"},
				{Command: CommandFix, Description: "Analyze and fix bugs"},
				{Command: CommandPlan, Description: "Get a project roadmap"},
				{Command: CommandAudit, Description: "Check code for vulnerabilities"},
				{Command: CommandPrompt, Description: "Generate an AI prompt"},
				{Command: CommandChat, Description: "Developer mode chat"},
				{Command: CommandCodeImage, Description: "Syntax-highlighted code image"},
				{Command: CommandTheme, Description: "Set code image theme"},
			}...,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set bot commands: %w", err)
	}

	t := &TelegramUsecase{
		TelegramUsecaseDeps: deps,
		cfg:                 cfg,
		branding:            branding,
	}
	t.handlers = map[string]commandHandler{
		"":               t.handleChat,
		CommandStart:     t.handleStart,
		CommandCode:      t.handleCode,
		CommandCodeFile:  t.handleCode,
		CommandFix:       t.prompted(MessageUsageFix, StatusDebugging, promptFix),
		CommandPlan:      t.prompted(MessageUsagePlan, StatusPlanning, promptPlan),
		CommandAudit:     t.prompted(MessageUsageAudit, StatusAuditing, promptAudit),
		CommandPrompt:    t.prompted(MessageUsagePrompt, StatusPrompting, promptPrompt),
		CommandChat:      t.handleChat,
		CommandCodeImage: t.handleCodeImage,
		CommandTheme:     t.handleTheme,
	}
	return t, nil
}

// Run polls updates until ctx is cancelled. Updates are handled concurrently
// by at most cfg.Workers handlers; in-flight handlers finish before Run
// returns.
func (t *TelegramUsecase) Run(ctx context.Context) error {
	u := api.NewUpdate(0)
	u.Timeout = t.cfg.PollingTimeout
	updates := t.Updates.GetUpdatesChan(u)

	p := pool.New().WithMaxGoroutines(t.cfg.Workers)
	defer p.Wait()

	handlerCtx := context.WithoutCancel(ctx)
	for {
		select {
		case <-ctx.Done():
			t.Updates.StopReceivingUpdates()
			t.Logger.Info().Msg("stopped receiving updates")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			p.Go(func() {
				t.handleUpdate(handlerCtx, update)
			})
		}
	}
}

func (t *TelegramUsecase) handleUpdate(ctx context.Context, update api.Update) {
	if t.Metrics != nil {
		t.Metrics.UpdatesTotal.Inc()
	}

	var catcher panics.Catcher
	catcher.Try(func() {
		req, ok := requestFromUpdate(update)
		if !ok {
			return
		}
		logger := t.Logger.With().
			Str("request_id", req.RequestID).
			Int64("chat_id", req.ChatID).
			Int64("user_id", req.UserID).
			Str("command", req.Command).
			Logger()
		if err := t.HandleRequest(logger.WithContext(ctx), req); err != nil {
			logger.Error().Err(err).Msg("failed to handle request")
		}
	})
	if recovered := catcher.Recovered(); recovered != nil {
		if t.Metrics != nil {
			t.Metrics.HandlerPanics.Inc()
		}
		t.Logger.Error().Err(recovered.AsError()).Int("update_id", update.UpdateID).Msg("update handler panicked")
	}
}

func requestFromUpdate(update api.Update) (model.Request, bool) {
	msg := update.Message
	chat := update.FromChat()
	if msg == nil || chat == nil || strings.TrimSpace(msg.Text) == "" {
		return model.Request{}, false
	}
	req := model.Request{
		RequestID: uuid.NewString(),
		ChatID:    chat.ID,
		MessageID: msg.MessageID,
	}
	if from := update.SentFrom(); from != nil {
		req.UserID = from.ID
		req.Language = from.LanguageCode
	}
	if msg.IsCommand() {
		req.Command = strings.ToLower(msg.Command())
		req.Payload = strings.TrimSpace(msg.CommandArguments())
	} else {
		req.Payload = strings.TrimSpace(msg.Text)
	}
	req.Args = strings.Fields(req.Payload)
	return req, true
}

// HandleRequest routes req to its command. Every known command, plain text
// included, requires channel membership.
func (t *TelegramUsecase) HandleRequest(ctx context.Context, req model.Request) error {
	lang := local.ParseLanguage(req.Language)
	handler, ok := t.handlers[req.Command]
	if !ok {
		t.sendMessageAndHandleErr(ctx, req.ChatID, MessageCommandUnknown.Text(lang), "")
		return nil
	}
	if !t.Membership.IsAuthorized(req.UserID) {
		zerolog.Ctx(ctx).Info().Msg("user is not a channel member")
		return t.sendAccessDenied(req, lang)
	}
	return handler(ctx, req)
}

// sendAccessDenied shows the join prompt, falling back to plain text when
// Telegram rejects the Markdown (channel names with underscores).
func (t *TelegramUsecase) sendAccessDenied(req model.Request, lang local.Language) error {
	text := MessageAccessDenied.Format(lang, t.branding.BotName, t.branding.Channel)
	var markup any
	if url := t.branding.ChannelURL(); url != "" {
		markup = api.NewInlineKeyboardMarkup(
			api.NewInlineKeyboardRow(api.NewInlineKeyboardButtonURL(ButtonJoinChannel.Text(lang), url)),
		)
	}
	send := func(text, parseMode string) error {
		msg := api.NewMessage(req.ChatID, text)
		msg.ParseMode = parseMode
		if markup != nil {
			msg.ReplyMarkup = markup
		}
		_, err := t.Bot.Send(msg)
		return err
	}

	_, err := attemptInOrder([]deliveryStrategy{
		{
			name:        StrategyMarkdown,
			attempt:     func() error { return send(text, api.ModeMarkdown) },
			recoverable: isFormattingRejection,
		},
		{
			name:    StrategyPlain,
			attempt: func() error { return send(strings.ReplaceAll(text, "*", ""), "") },
		},
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to send access denied message: %w", err)
	}
	return nil
}

func (t *TelegramUsecase) handleStart(_ context.Context, req model.Request) error {
	lang := local.ParseLanguage(req.Language)
	msg := api.NewMessage(req.ChatID, MessageWelcome.Format(lang, strings.ToUpper(t.branding.BotName)))
	msg.ParseMode = api.ModeMarkdown

	var rows [][]api.InlineKeyboardButton
	for _, pair := range [][2]api.InlineKeyboardButton{
		{
			api.NewInlineKeyboardButtonURL(ButtonDeveloper.Text(lang), t.branding.OwnerURL()),
			api.NewInlineKeyboardButtonURL(ButtonChannel.Text(lang), t.branding.ChannelURL()),
		},
		{
			api.NewInlineKeyboardButtonURL(ButtonInstagram.Text(lang), t.branding.InstagramURL()),
			api.NewInlineKeyboardButtonURL(ButtonYouTube.Text(lang), t.branding.YouTubeURL()),
		},
	} {
		row := make([]api.InlineKeyboardButton, 0, len(pair))
		for _, button := range pair {
			if button.URL != nil && *button.URL != "" {
				row = append(row, button)
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	if len(rows) > 0 {
		msg.ReplyMarkup = api.NewInlineKeyboardMarkup(rows...)
	}
	if _, err := t.Bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send welcome message: %w", err)
	}
	return nil
}

func (t *TelegramUsecase) handleCode(ctx context.Context, req model.Request) error {
	lang := local.ParseLanguage(req.Language)
	wantFile := req.Command == CommandCodeFile
	wantText := false
	topic := make([]string, 0, len(req.Args))
	for _, arg := range req.Args {
		switch arg {
		case FlagFile:
			wantFile = true
		case FlagText:
			wantText = true
		default:
			topic = append(topic, arg)
		}
	}
	if len(topic) == 0 {
		t.sendMessageAndHandleErr(ctx, req.ChatID, MessageUsageCode.Text(lang), api.ModeMarkdown)
		return nil
	}

	completion := t.completeWithStatus(ctx, req, StatusCompiling.Text(lang), fmt.Sprintf(promptCode, strings.Join(topic, " ")))
	target := req.Target()
	if completion.Failed() {
		t.Delivery.DeliverCompletion(ctx, target, completion, false)
		return nil
	}

	if wantFile {
		err := t.Delivery.DeliverFile(ctx, target, completion.Text)
		if err == nil {
			return nil
		}
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to send code file, falling back to text")
	}
	if wantText || !t.Delivery.ImagesAvailable() {
		t.Delivery.Deliver(ctx, target, completion.Text, false)
		return nil
	}

	caption := t.branding.BotName + " • Code" + t.branding.Watermark()
	if err := t.Delivery.DeliverImage(ctx, target, completion.Text, caption); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to send code image, falling back to text")
		t.Delivery.Deliver(ctx, target, completion.Text, false)
	}
	return nil
}

// prompted builds a handler that wraps the payload into template and delivers
// the completion.
func (t *TelegramUsecase) prompted(usage, status local.TextSet, template string) commandHandler {
	return func(ctx context.Context, req model.Request) error {
		lang := local.ParseLanguage(req.Language)
		if req.Payload == "" {
			t.sendMessageAndHandleErr(ctx, req.ChatID, usage.Text(lang), api.ModeMarkdown)
			return nil
		}
		completion := t.completeWithStatus(ctx, req, status.Text(lang), fmt.Sprintf(template, req.Payload))
		t.Delivery.DeliverCompletion(ctx, req.Target(), completion, true)
		return nil
	}
}

func (t *TelegramUsecase) handleChat(ctx context.Context, req model.Request) error {
	if req.Payload == "" {
		lang := local.ParseLanguage(req.Language)
		t.sendMessageAndHandleErr(ctx, req.ChatID, MessageChatActive.Text(lang), api.ModeMarkdown)
		return nil
	}
	t.sendTyping(ctx, req.ChatID)
	completion := t.Completion.Complete(ctx, req.Payload)
	t.Delivery.DeliverCompletion(ctx, req.Target(), completion, true)
	return nil
}

func (t *TelegramUsecase) handleCodeImage(ctx context.Context, req model.Request) error {
	lang := local.ParseLanguage(req.Language)
	if req.Payload == "" {
		t.sendMessageAndHandleErr(ctx, req.ChatID, MessageUsageCodeImage.Text(lang), "")
		return nil
	}

	target := req.Target()
	code := req.Payload
	if !strings.Contains(code, codeblock.Fence) {
		completion := t.completeWithStatus(ctx, req, StatusRenderingImage.Text(lang), fmt.Sprintf(promptCodeImage, req.Payload))
		if completion.Failed() {
			t.Delivery.DeliverCompletion(ctx, target, completion, false)
			return nil
		}
		code = completion.Text
	}

	if err := t.Delivery.DeliverImage(ctx, target, code, t.branding.BotName+" • Code (image)"); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to send code image")
		t.Delivery.Deliver(ctx, target, code, false)
	}
	return nil
}

func (t *TelegramUsecase) handleTheme(ctx context.Context, req model.Request) error {
	lang := local.ParseLanguage(req.Language)
	available := themeList()
	if len(req.Args) == 0 {
		current := t.Themes.Theme(ctx, req.ChatID)
		t.sendMessageAndHandleErr(ctx, req.ChatID, MessageThemeCurrent.Format(lang, current, available), "")
		return nil
	}

	theme, err := t.Themes.SetTheme(ctx, req.ChatID, req.Args[0])
	switch {
	case errors.Is(err, ErrInvalidTheme):
		t.sendMessageAndHandleErr(ctx, req.ChatID, MessageThemeInvalid.Format(lang, available), "")
		return nil
	case err != nil:
		t.sendMessageAndHandleErr(ctx, req.ChatID, MessageThemeFailed.Text(lang), "")
		return err
	}
	t.sendMessageAndHandleErr(ctx, req.ChatID, MessageThemeSet.Format(lang, theme), "")
	return nil
}

func themeList() string {
	themes := model.Themes()
	names := make([]string, 0, len(themes))
	for _, theme := range themes {
		names = append(names, string(theme))
	}
	return strings.Join(names, ", ")
}

// completeWithStatus shows a status message and the typing indicator while
// the completion is running.
func (t *TelegramUsecase) completeWithStatus(
	ctx context.Context,
	req model.Request,
	status string,
	prompt string,
) model.Completion {
	statusMsg := t.sendMessageAndHandleErr(ctx, req.ChatID, status, api.ModeMarkdown)
	t.sendTyping(ctx, req.ChatID)
	completion := t.Completion.Complete(ctx, prompt)
	if statusMsg.MessageID != 0 {
		if _, err := t.Bot.Request(api.NewDeleteMessage(req.ChatID, statusMsg.MessageID)); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to delete status message")
		}
	}
	return completion
}

func (t *TelegramUsecase) sendTyping(ctx context.Context, chatID int64) {
	if _, err := t.Bot.Request(api.NewChatAction(chatID, api.ChatTyping)); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to send chat action")
	}
}

func (t *TelegramUsecase) sendMessageAndHandleErr(
	ctx context.Context,
	chatID int64,
	text string,
	parseMode string,
) api.Message {
	msg := api.NewMessage(chatID, text)
	msg.ParseMode = parseMode
	sent, err := t.Bot.Send(msg)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to send message")
	}
	return sent
}
