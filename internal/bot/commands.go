package bot

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"rattan-bot/internal/catalog"
	"rattan-bot/internal/order"
)

func (b *Bot) handleCommand(ctx context.Context, chatID int64, command string) {
	if handler, exists := b.commands[command]; exists {
		handler(ctx, chatID)
		return
	}
	b.sendError(chatID, errUnknownCommand)
}

func (b *Bot) handleStart(ctx context.Context, chatID int64) {
	if err := b.engine.StartSession(ctx, chatID); err != nil {
		b.logger.Error("Failed to start session",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, errInternal)
		return
	}
	b.notifier.SendMenu(chatID, msgWelcome, mainMenuRows())
}

func (b *Bot) handleHelp(_ context.Context, chatID int64) {
	b.notifier.SendPrompt(chatID, msgHelp)
}

func (b *Bot) handleCancel(ctx context.Context, chatID int64) {
	existed, err := b.engine.Reset(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to reset session",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, errInternal)
		return
	}

	if !existed {
		b.notifier.SendPrompt(chatID, msgNothingToReset)
		return
	}
	b.notifier.SendPrompt(chatID, msgResetDone)
}

func (b *Bot) handleCatalogAlbum(_ context.Context, chatID int64) {
	for _, chunk := range b.catalog.PhotoChunks(catalog.MediaGroupLimit) {
		b.notifier.SendMediaGroup(chatID, chunk)
	}
	b.notifier.SendPrompt(chatID, b.cfg.CatalogDescription)
}

func (b *Bot) handleContacts(_ context.Context, chatID int64) {
	b.notifier.SendPrompt(chatID, b.cfg.ContactsText)
}

// showCatalog sends the selection keyboard. Colors already chosen in the
// current session get an edit button.
func (b *Bot) showCatalog(ctx context.Context, chatID int64) {
	var selected []order.SelectedColor
	snap, err := b.engine.Snapshot(ctx, chatID)
	switch {
	case err == nil:
		selected = snap.Colors
	case !errors.Is(err, order.ErrNotStarted):
		b.logger.Error("Failed to load session",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}

	b.notifier.SendOptions(chatID, msgChooseColors, catalogRows(b.catalog, selected))
}
