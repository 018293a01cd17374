package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"rattan-bot/internal/order"
)

func (b *Bot) handleText(ctx context.Context, chatID int64, text string) {
	out, err := b.engine.HandleText(ctx, chatID, text)
	if err != nil {
		b.reject(chatID, err)
		return
	}
	b.promptNext(ctx, chatID, out)
}

// handleContact accepts a shared contact only while the phone is being asked for.
func (b *Bot) handleContact(ctx context.Context, chatID int64, contact *tgbotapi.Contact) {
	phone := NormalizePhoneNumber(contact.PhoneNumber)
	out, err := b.engine.SubmitTextField(ctx, chatID, order.FieldPhone, phone)
	if err != nil {
		b.reject(chatID, err)
		return
	}
	b.promptNext(ctx, chatID, out)
}

// promptNext asks for whatever the session needs after an accepted transition.
func (b *Bot) promptNext(ctx context.Context, chatID int64, out order.Outcome) {
	switch out.To {
	case order.StepCatalog:
		b.notifier.SendPrompt(chatID, fmt.Sprintf(msgQuantitySet, out.Color.Name, out.Quantity, out.Unit))
		b.showCatalog(ctx, chatID)
	case order.StepQuantity:
		b.notifier.SendPrompt(chatID, fmt.Sprintf(msgEditQuantity, out.Color.Name))
	case order.StepName:
		b.notifier.SendPrompt(chatID, msgEnterName)
	case order.StepPhone:
		b.notifier.SendContactRequest(chatID, msgEnterPhone, ButtonContact)
	case order.StepDelivery:
		b.notifier.SendOptions(chatID, msgChooseDelivery, deliveryRows())
	case order.StepCity:
		b.notifier.SendPrompt(chatID, msgEnterCity)
	case order.StepOffice:
		b.notifier.SendPrompt(chatID, msgEnterOffice)
	case order.StepComment:
		b.notifier.SendPrompt(chatID, msgEnterComment)
	case order.StepConfirmation:
		b.sendSummary(ctx, chatID)
	}
}

func (b *Bot) sendSummary(ctx context.Context, chatID int64) {
	summary, err := b.engine.Summary(ctx, chatID)
	if err != nil {
		b.reject(chatID, err)
		return
	}
	b.notifier.SendOptions(chatID, summary, confirmationRows())
}

func (b *Bot) processCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	chatID := callbackChatID(callback)
	data := callback.Data

	b.logger.Debug("Processing callback",
		zap.Int64("chat_id", chatID),
		zap.String("data", data))

	action, arg, _ := strings.Cut(data, ":")
	switch action {
	case callbackColor:
		b.handleColorSelection(ctx, callback, chatID, arg)
	case callbackQuantity:
		b.handleQuantityEdit(ctx, callback, chatID, arg)
	case callbackFinish:
		b.handleFinishSelection(ctx, callback, chatID)
	case callbackDelivery:
		b.handleDeliveryChoice(ctx, callback, chatID, arg)
	case callbackConfirm:
		b.handleConfirm(ctx, callback, chatID)
	case callbackCancel:
		b.handleOrderCancel(ctx, callback, chatID)
	default:
		b.logger.Warn("Unknown callback",
			zap.Int64("chat_id", chatID),
			zap.String("data", data))
		b.notifier.AnswerCallback(callback.ID, errUnknownOption)
	}
}

func (b *Bot) handleColorSelection(ctx context.Context, callback *tgbotapi.CallbackQuery, chatID int64, arg string) {
	index, err := strconv.Atoi(arg)
	if err != nil {
		b.notifier.AnswerCallback(callback.ID, errUnknownOption)
		return
	}

	out, err := b.engine.SelectColor(ctx, chatID, index)
	if err != nil {
		b.rejectCallback(callback, chatID, err)
		return
	}

	b.notifier.AnswerCallback(callback.ID, fmt.Sprintf(msgColorChosen, out.Color.Name))
	b.notifier.SendPrompt(chatID, fmt.Sprintf(msgEnterQuantity, out.Color.Name))
}

func (b *Bot) handleQuantityEdit(ctx context.Context, callback *tgbotapi.CallbackQuery, chatID int64, arg string) {
	entry, err := strconv.Atoi(arg)
	if err != nil {
		b.notifier.AnswerCallback(callback.ID, errUnknownOption)
		return
	}

	out, err := b.engine.EditQuantity(ctx, chatID, entry)
	if err != nil {
		b.rejectCallback(callback, chatID, err)
		return
	}

	b.notifier.AnswerCallback(callback.ID, "")
	b.promptNext(ctx, chatID, out)
}

func (b *Bot) handleFinishSelection(ctx context.Context, callback *tgbotapi.CallbackQuery, chatID int64) {
	out, err := b.engine.FinishSelection(ctx, chatID)
	if err != nil {
		b.rejectCallback(callback, chatID, err)
		return
	}

	b.notifier.AnswerCallback(callback.ID, "")
	b.promptNext(ctx, chatID, out)
}

func (b *Bot) handleDeliveryChoice(ctx context.Context, callback *tgbotapi.CallbackQuery, chatID int64, arg string) {
	index, err := strconv.Atoi(arg)
	if err != nil || index < 0 || index >= len(order.DeliveryOptions) {
		b.notifier.AnswerCallback(callback.ID, errUnknownOption)
		return
	}

	out, err := b.engine.ChooseDelivery(ctx, chatID, order.DeliveryOptions[index])
	if err != nil {
		b.rejectCallback(callback, chatID, err)
		return
	}

	b.notifier.AnswerCallback(callback.ID, "")
	b.promptNext(ctx, chatID, out)
}

// handleConfirm tells the party the order went through even when the sink
// failed; the failure is only visible to admins and in the logs.
func (b *Bot) handleConfirm(ctx context.Context, callback *tgbotapi.CallbackQuery, chatID int64) {
	receipt, err := b.engine.Confirm(ctx, chatID)
	if err != nil {
		b.rejectCallback(callback, chatID, err)
		return
	}

	b.notifier.AnswerCallback(callback.ID, msgOrderSent)
	b.notifier.SendPrompt(chatID, msgNewOrder)
	b.notifyAdmins(receipt, callbackUsername(callback))
}

func (b *Bot) handleOrderCancel(ctx context.Context, callback *tgbotapi.CallbackQuery, chatID int64) {
	if err := b.engine.Cancel(ctx, chatID); err != nil {
		b.rejectCallback(callback, chatID, err)
		return
	}

	b.notifier.AnswerCallback(callback.ID, msgOrderCancelled)
	b.notifier.SendPrompt(chatID, msgNewOrder)
}

func callbackUsername(callback *tgbotapi.CallbackQuery) string {
	if callback.From == nil {
		return ""
	}
	return callback.From.UserName
}

func (b *Bot) reject(chatID int64, err error) {
	if !order.IsRejection(err) {
		b.logger.Error("Failed to handle message",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
	b.sendError(chatID, rejectionText(err))
}

func (b *Bot) rejectCallback(callback *tgbotapi.CallbackQuery, chatID int64, err error) {
	if !order.IsRejection(err) {
		b.logger.Error("Failed to handle callback",
			zap.Int64("chat_id", chatID),
			zap.String("data", callback.Data),
			zap.Error(err))
	}
	b.notifier.AnswerCallback(callback.ID, rejectionText(err))
}

// rejectionText maps an engine error to the corrective message shown to the party.
func rejectionText(err error) string {
	var rej *order.RejectionError
	if !errors.As(err, &rej) {
		return errInternal
	}

	switch rej.Kind {
	case order.ErrNotStarted:
		return errNotStarted
	case order.ErrDuplicateSelection:
		return fmt.Sprintf(errDuplicate, rej.Color)
	case order.ErrIncompleteSelection:
		if rej.Color == "" {
			return errNoColors
		}
		return fmt.Sprintf(errMissingQuantity, rej.Color)
	case order.ErrInvalidInput:
		switch rej.Step {
		case order.StepQuantity:
			return errNotANumber
		case order.StepCatalog, order.StepDelivery:
			return errUnknownOption
		}
		return errEmptyText
	case order.ErrUnexpectedStep:
		switch rej.Step {
		case order.StepCatalog:
			return errUseCatalog
		case order.StepDelivery:
			return errUseDeliveryMenu
		case order.StepConfirmation:
			return errUseConfirmButton
		}
	}
	return errWrongStep
}
