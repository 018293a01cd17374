package bot

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"rattan-bot/internal/order"
)

func TestRejectionText(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not started", &order.RejectionError{Kind: order.ErrNotStarted}, errNotStarted},
		{"duplicate", &order.RejectionError{Kind: order.ErrDuplicateSelection, Step: order.StepCatalog, Color: "Горіх"}, "Горіх вже обрано"},
		{"no colors", &order.RejectionError{Kind: order.ErrIncompleteSelection, Step: order.StepCatalog}, errNoColors},
		{"missing quantity", &order.RejectionError{Kind: order.ErrIncompleteSelection, Step: order.StepCatalog, Color: "Сірий"}, "Введи кількість для Сірий!"},
		{"bad quantity", &order.RejectionError{Kind: order.ErrInvalidInput, Step: order.StepQuantity}, errNotANumber},
		{"bad catalog index", &order.RejectionError{Kind: order.ErrInvalidInput, Step: order.StepCatalog}, errUnknownOption},
		{"bad delivery", &order.RejectionError{Kind: order.ErrInvalidInput, Step: order.StepDelivery}, errUnknownOption},
		{"empty text", &order.RejectionError{Kind: order.ErrInvalidInput, Step: order.StepCity}, errEmptyText},
		{"text while choosing", &order.RejectionError{Kind: order.ErrUnexpectedStep, Step: order.StepCatalog}, errUseCatalog},
		{"text at delivery", &order.RejectionError{Kind: order.ErrUnexpectedStep, Step: order.StepDelivery}, errUseDeliveryMenu},
		{"text at confirmation", &order.RejectionError{Kind: order.ErrUnexpectedStep, Step: order.StepConfirmation}, errUseConfirmButton},
		{"other step", &order.RejectionError{Kind: order.ErrUnexpectedStep, Step: order.StepName}, errWrongStep},
		{"wrapped", fmt.Errorf("finish: %w", &order.RejectionError{Kind: order.ErrNotStarted}), errNotStarted},
		{"infrastructure", errors.New("redis down"), errInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rejectionText(tt.err))
		})
	}
}

func TestFormatOrderNotification(t *testing.T) {
	receipt := order.Receipt{Payload: order.Payload{
		Colors:   []order.ColorLine{{Color: "Білий", Quantity: 1}, {Color: "Горіх", Quantity: 12}},
		Delivery: "Нова Пошта",
		Phone:    "0991234567",
		Name:     "Ivan",
		City:     "Kharkiv",
		Postcode: "5",
		Comment:  "немає",
	}}

	text := FormatOrderNotification(receipt, "ivan")
	assert.Contains(t, text, "Білий: 1 бухта")
	assert.Contains(t, text, "Горіх: 12 бухт")
	assert.Contains(t, text, "+380 (99) 123-45-67")
	assert.Contains(t, text, "TG: @ivan")
	assert.NotContains(t, text, "⚠️")

	receipt.Err = order.ErrSubmissionFailed
	assert.Contains(t, FormatOrderNotification(receipt, ""), "⚠️")
}

func TestCatalogRowsLayout(t *testing.T) {
	h := newHarness(t, 5)
	qty := 2

	rows := catalogRows(h.bot.catalog, []order.SelectedColor{
		{Name: "Горіх", Quantity: &qty},
		{Name: "Сірий"},
	})

	// 5 items in pairs, two edit rows, finish.
	assert.Len(t, rows, 3+2+1)
	assert.Len(t, rows[2], 1)
	assert.Equal(t, Button{Label: "✏️ Горіх: 2 бухти", Data: "qty:0"}, rows[3][0])
	assert.Equal(t, Button{Label: "✏️ Сірий", Data: "qty:1"}, rows[4][0])
	assert.Equal(t, callbackFinish, rows[5][0].Data)
}
