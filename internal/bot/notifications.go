package bot

import (
	"fmt"
	"strings"

	"rattan-bot/internal/order"
)

// notifyAdmins sends a short copy of a confirmed order to every configured
// admin chat.
func (b *Bot) notifyAdmins(receipt order.Receipt, username string) {
	if len(b.cfg.AdminChatIDs) == 0 {
		return
	}

	text := FormatOrderNotification(receipt, username)
	for _, adminID := range b.cfg.AdminChatIDs {
		if adminID == 0 {
			continue
		}
		b.notifier.SendPrompt(adminID, text)
	}
}

func FormatOrderNotification(receipt order.Receipt, username string) string {
	p := receipt.Payload

	var sb strings.Builder
	sb.WriteString("📦 Нове замовлення\n\n")
	for _, c := range p.Colors {
		fmt.Fprintf(&sb, "%s: %d %s\n", c.Color, c.Quantity, order.CoilLabel(c.Quantity))
	}
	sb.WriteString("──────────────────\n")
	fmt.Fprintf(&sb, "ПІБ: %s\n", p.Name)
	fmt.Fprintf(&sb, "Телефон: %s\n", displayPhone(p.Phone))
	fmt.Fprintf(&sb, "Доставка: %s\n", p.Delivery)
	fmt.Fprintf(&sb, "Населений пункт: %s\n", p.City)
	fmt.Fprintf(&sb, "Відділення/Поштомат/Індекс: %s\n", p.Postcode)
	fmt.Fprintf(&sb, "Коментар: %s\n", p.Comment)
	if username != "" {
		fmt.Fprintf(&sb, "TG: @%s\n", username)
	}
	if !receipt.Delivered() {
		sb.WriteString("\n⚠️ Замовлення не записано в таблицю, внесіть його вручну.")
	}
	return sb.String()
}

func displayPhone(raw string) string {
	if normalized := NormalizePhoneNumber(raw); strings.HasPrefix(normalized, "+380") {
		return FormatPhoneNumber(normalized)
	}
	return raw
}
