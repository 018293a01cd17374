package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rattan-bot/internal/order"
)

func TestNewOrderRow(t *testing.T) {
	id := uuid.MustParse("6f1c2b1e-8d3a-4b8e-9a43-0d9c1f2e3a4b")
	at := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	row, err := newOrderRow(order.Payload{
		Colors: []order.ColorLine{
			{Color: "Білий", Quantity: 3},
			{Color: "Чорний", Quantity: 2},
		},
		Delivery: "Укрпошта",
		Phone:    "0991234567",
		Name:     "Ivan",
		City:     "Kharkiv",
		Postcode: "61000",
		Comment:  "немає",
	}, id, at)
	require.NoError(t, err)

	assert.Equal(t, id, row.ID)
	assert.Equal(t, at, row.CreatedAt)
	assert.Equal(t, 5, row.TotalCoils)
	assert.Equal(t, "61000", row.Postcode)
	assert.JSONEq(t, `[{"color":"Білий","quantity":3},{"color":"Чорний","quantity":2}]`, string(row.Colors))
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir(migrationsDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "00001_create_orders.sql", entries[0].Name())
}

func TestStatsWindows(t *testing.T) {
	now := time.Date(2026, 10, 16, 15, 30, 0, 0, time.UTC)

	day, week, month := statsWindows(now)
	assert.Equal(t, time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC), day)
	assert.Equal(t, time.Date(2026, 10, 9, 15, 30, 0, 0, time.UTC), week)
	assert.Equal(t, time.Date(2026, 9, 16, 15, 30, 0, 0, time.UTC), month)
}
