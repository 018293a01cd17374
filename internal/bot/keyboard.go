package bot

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"rattan-bot/internal/catalog"
	"rattan-bot/internal/order"
)

// BOT KEYBOARDS

const (
	catalogColumns  = 2
	deliveryColumns = 2
)

// Callback data prefixes. Indices keep the data well under the 64 byte limit.
const (
	callbackColor    = "color"
	callbackQuantity = "qty"
	callbackFinish   = "finish"
	callbackDelivery = "delivery"
	callbackConfirm  = "confirm"
	callbackCancel   = "cancel"
)

func callbackData(prefix string, index int) string {
	return prefix + ":" + strconv.Itoa(index)
}

func mainMenuRows() [][]string {
	return [][]string{
		{MenuCatalog},
		{MenuOrder},
		{MenuContacts},
	}
}

// catalogRows lists every catalog item, an edit button per selected color
// and the finish button.
func catalogRows(cat *catalog.Catalog, selected []order.SelectedColor) [][]Button {
	items := make([]Button, 0, cat.Len())
	for i, item := range cat.Items() {
		items = append(items, Button{Label: item.Name, Data: callbackData(callbackColor, i)})
	}
	rows := chunkButtons(items, catalogColumns)

	for i, c := range selected {
		label := "✏️ " + c.Name
		if c.Quantity != nil {
			label = fmt.Sprintf("✏️ %s: %d %s", c.Name, *c.Quantity, order.CoilLabel(*c.Quantity))
		}
		rows = append(rows, []Button{{Label: label, Data: callbackData(callbackQuantity, i)}})
	}

	return append(rows, []Button{{Label: ButtonFinish, Data: callbackFinish}})
}

func deliveryRows() [][]Button {
	opts := make([]Button, 0, len(order.DeliveryOptions))
	for i, name := range order.DeliveryOptions {
		opts = append(opts, Button{Label: name, Data: callbackData(callbackDelivery, i)})
	}
	return chunkButtons(opts, deliveryColumns)
}

func confirmationRows() [][]Button {
	return [][]Button{{
		{Label: ButtonConfirm, Data: callbackConfirm},
		{Label: ButtonCancel, Data: callbackCancel},
	}}
}

func chunkButtons(opts []Button, size int) [][]Button {
	var rows [][]Button
	for start := 0; start < len(opts); start += size {
		end := min(start+size, len(opts))
		rows = append(rows, opts[start:end])
	}
	return rows
}

func replyKeyboard(rows [][]string) tgbotapi.ReplyKeyboardMarkup {
	buttons := make([][]tgbotapi.KeyboardButton, 0, len(rows))
	for _, row := range rows {
		r := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, label := range row {
			r = append(r, tgbotapi.NewKeyboardButton(label))
		}
		buttons = append(buttons, tgbotapi.NewKeyboardButtonRow(r...))
	}

	kb := tgbotapi.NewReplyKeyboard(buttons...)
	kb.ResizeKeyboard = true
	return kb
}

func inlineKeyboard(rows [][]Button) tgbotapi.InlineKeyboardMarkup {
	buttons := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		r := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, opt := range row {
			r = append(r, tgbotapi.NewInlineKeyboardButtonData(opt.Label, opt.Data))
		}
		buttons = append(buttons, tgbotapi.NewInlineKeyboardRow(r...))
	}
	return tgbotapi.NewInlineKeyboardMarkup(buttons...)
}

func contactRequestKeyboard(label string) tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonContact(label),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}
