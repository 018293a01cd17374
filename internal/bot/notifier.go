package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Notifier delivers prompts back to a chat. Sends are fire-and-forget:
// failures are logged by the implementation and never reach the caller.
type Notifier interface {
	SendPrompt(chatID int64, text string)
	SendMenu(chatID int64, text string, rows [][]string)
	SendOptions(chatID int64, text string, rows [][]Button)
	SendContactRequest(chatID int64, text, label string)
	SendMediaGroup(chatID int64, photoURLs []string)
	AnswerCallback(callbackID, text string)
}

// Button is an inline keyboard button.
type Button struct {
	Label string
	Data  string
}

type telegramNotifier struct {
	api    *tgbotapi.BotAPI
	logger *zap.Logger
}

var _ Notifier = (*telegramNotifier)(nil)

func newTelegramNotifier(api *tgbotapi.BotAPI, logger *zap.Logger) *telegramNotifier {
	return &telegramNotifier{api: api, logger: logger}
}

func (n *telegramNotifier) SendPrompt(chatID int64, text string) {
	n.sendMessage(tgbotapi.NewMessage(chatID, text))
}

func (n *telegramNotifier) SendMenu(chatID int64, text string, rows [][]string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = replyKeyboard(rows)
	n.sendMessage(msg)
}

func (n *telegramNotifier) SendOptions(chatID int64, text string, rows [][]Button) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = inlineKeyboard(rows)
	n.sendMessage(msg)
}

func (n *telegramNotifier) SendContactRequest(chatID int64, text, label string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = contactRequestKeyboard(label)
	n.sendMessage(msg)
}

func (n *telegramNotifier) SendMediaGroup(chatID int64, photoURLs []string) {
	media := make([]interface{}, 0, len(photoURLs))
	for _, url := range photoURLs {
		media = append(media, tgbotapi.NewInputMediaPhoto(tgbotapi.FileURL(url)))
	}

	if _, err := n.api.SendMediaGroup(tgbotapi.NewMediaGroup(chatID, media)); err != nil {
		n.logger.Error("Failed to send media group",
			zap.Int64("chat_id", chatID),
			zap.Int("photos", len(photoURLs)),
			zap.Error(err))
	}
}

func (n *telegramNotifier) AnswerCallback(callbackID, text string) {
	if _, err := n.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		n.logger.Error("Failed to answer callback",
			zap.String("callback_id", callbackID),
			zap.Error(err))
	}
}

func (n *telegramNotifier) sendMessage(msg tgbotapi.MessageConfig) {
	if _, err := n.api.Send(msg); err != nil {
		n.logger.Error("Failed to send message",
			zap.Int64("chat_id", msg.ChatID),
			zap.String("text", msg.Text),
			zap.Error(err))
	}
}
