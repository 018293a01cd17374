package bot

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"rattan-bot/internal/order"
)

// StatsProvider reports totals over archived orders.
type StatsProvider interface {
	Stats(ctx context.Context) (order.Stats, error)
}

func (b *Bot) isAdmin(chatID int64) bool {
	for _, id := range b.cfg.AdminChatIDs {
		if id == chatID {
			return true
		}
	}
	return false
}

func (b *Bot) handleOrderStats(ctx context.Context, chatID int64) {
	if !b.isAdmin(chatID) {
		b.sendError(chatID, errUnknownCommand)
		return
	}
	if b.stats == nil {
		b.sendError(chatID, errNoArchive)
		return
	}

	stats, err := b.stats.Stats(ctx)
	if err != nil {
		b.logger.Error("Failed to get order statistics",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, errInternal)
		return
	}

	b.notifier.SendPrompt(chatID, FormatStats(stats))
}

func FormatStats(stats order.Stats) string {
	return fmt.Sprintf(
		"📊 Статистика замовлень\n\n"+
			"📌 Всього замовлень: %d\n"+
			"📅 За сьогодні: %d\n"+
			"📅 За тиждень: %d\n"+
			"📅 За місяць: %d\n"+
			"🧺 Всього: %d %s",
		stats.Total,
		stats.Today,
		stats.Week,
		stats.Month,
		stats.Coils, order.CoilLabel(stats.Coils),
	)
}
