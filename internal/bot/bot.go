package bot

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rattan-bot/internal/catalog"
	"rattan-bot/internal/config"
	"rattan-bot/internal/order"
)

const (
	pollTimeout = 60
	// apiTimeout must outlast a long poll.
	apiTimeout = (pollTimeout + 15) * time.Second
)

type Option func(*Bot)

// WithStats enables the admin /stats command.
func WithStats(stats StatsProvider) Option {
	return func(b *Bot) {
		b.stats = stats
	}
}

type Bot struct {
	api      *tgbotapi.BotAPI
	notifier Notifier
	engine   *order.Engine
	catalog  *catalog.Catalog
	logger   *zap.Logger
	cfg      *config.Config
	stats    StatsProvider
	queues   *chatQueues
	commands map[string]func(context.Context, int64)
	menu     map[string]func(context.Context, int64)
}

// New authorizes against the Bot API, retrying until cfg.StartupTimeout.
func New(
	ctx context.Context,
	cfg *config.Config,
	engine *order.Engine,
	cat *catalog.Catalog,
	logger *zap.Logger,
	opts ...Option,
) (*Bot, error) {
	var botAPI *tgbotapi.BotAPI
	authorize := func() error {
		api, err := tgbotapi.NewBotAPIWithClient(
			cfg.TelegramToken,
			tgbotapi.APIEndpoint,
			&http.Client{Timeout: apiTimeout},
		)
		if err != nil {
			return err
		}
		botAPI = api
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = cfg.StartupTimeout
	notify := func(err error, wait time.Duration) {
		logger.Warn("Bot API not reachable, retrying",
			zap.Duration("wait", wait),
			zap.Error(err))
	}
	if err := backoff.RetryNotify(authorize, backoff.WithContext(policy, ctx), notify); err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	botAPI.Debug = cfg.TelegramDebug

	logger.Info("Bot authorized",
		zap.String("username", botAPI.Self.UserName),
		zap.Int64("id", botAPI.Self.ID))

	b := newBot(newTelegramNotifier(botAPI, logger), engine, cat, logger, cfg, opts...)
	b.api = botAPI
	return b, nil
}

func newBot(
	notifier Notifier,
	engine *order.Engine,
	cat *catalog.Catalog,
	logger *zap.Logger,
	cfg *config.Config,
	opts ...Option,
) *Bot {
	b := &Bot{
		notifier: notifier,
		engine:   engine,
		catalog:  cat,
		logger:   logger,
		cfg:      cfg,
		queues:   newChatQueues(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.registerHandlers()
	return b
}

func (b *Bot) registerHandlers() {
	b.commands = map[string]func(context.Context, int64){
		"start":  b.handleStart,
		"help":   b.handleHelp,
		"cancel": b.handleCancel,
		"stats":  b.handleOrderStats,
	}
	b.menu = map[string]func(context.Context, int64){
		MenuCatalog:  b.handleCatalogAlbum,
		MenuOrder:    b.showCatalog,
		MenuContacts: b.handleContacts,
	}
}

// Start polls for updates until ctx is done.
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Starting bot", zap.Int("max_active_chats", b.cfg.MaxActiveChats))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeout
	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	return b.dispatch(ctx, updates)
}

// dispatch gives every chat its own queue drained by one goroutine, so a
// chat's updates run in arrival order and a chat stuck on a slow send or
// sink never holds up another chat. The goroutine exits once its queue is
// empty. MaxActiveChats caps how many chats are drained at once.
func (b *Bot) dispatch(ctx context.Context, updates tgbotapi.UpdatesChannel) error {
	var g errgroup.Group
	if b.cfg.MaxActiveChats > 0 {
		g.SetLimit(b.cfg.MaxActiveChats)
	}

	q := b.queues
	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Shutting down bot")
			return g.Wait()

		case update, ok := <-updates:
			if !ok {
				return g.Wait()
			}
			chatID, ok := updateChatID(update)
			if !ok {
				continue
			}
			if !q.push(chatID, update) {
				continue
			}
			g.Go(func() error {
				for {
					next, ok := q.pop(chatID)
					if !ok {
						return nil
					}
					b.handleUpdate(ctx, next)
				}
			})
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		b.processMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.processCallback(ctx, update.CallbackQuery)
	}
}

func updateChatID(update tgbotapi.Update) (int64, bool) {
	switch {
	case update.Message != nil && update.Message.Chat != nil:
		return update.Message.Chat.ID, true
	case update.CallbackQuery != nil:
		return callbackChatID(update.CallbackQuery), true
	}
	return 0, false
}

func callbackChatID(callback *tgbotapi.CallbackQuery) int64 {
	if callback.Message != nil && callback.Message.Chat != nil {
		return callback.Message.Chat.ID
	}
	if callback.From != nil {
		return callback.From.ID
	}
	return 0
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.Contact != nil {
		b.handleContact(ctx, chatID, msg.Contact)
		return
	}

	b.logger.Debug("Processing message",
		zap.Int64("chat_id", chatID),
		zap.String("text", msg.Text))

	if msg.IsCommand() {
		b.handleCommand(ctx, chatID, msg.Command())
		return
	}

	if handler, exists := b.menu[msg.Text]; exists {
		handler(ctx, chatID)
		return
	}

	b.handleText(ctx, chatID, msg.Text)
}

func (b *Bot) sendError(chatID int64, text string) {
	b.notifier.SendPrompt(chatID, "❌ "+text)
}
