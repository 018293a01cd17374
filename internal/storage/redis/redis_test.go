package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rattan-bot/internal/catalog"
	"rattan-bot/internal/order"
	"rattan-bot/pkg/redis"
)

type fakeKV struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
	sets int
	err  error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeKV) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.data[key]
	if !ok {
		return nil, redis.ErrNil
	}
	return v, nil
}

func (f *fakeKV) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = data
	f.ttls[key] = ttl
	f.sets++
	return nil
}

func (f *fakeKV) Del(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func TestStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	s := New(kv, time.Hour)

	qty := 4
	require.NoError(t, s.Update(ctx, 7, func(cur *order.Session) (*order.Session, error) {
		assert.Nil(t, cur)
		next := order.NewSession()
		next.Step = order.StepName
		next.Colors = append(next.Colors, order.SelectedColor{Name: "Білий", PhotoURL: "p", Quantity: &qty})
		return next, nil
	}))
	assert.Contains(t, kv.data, "state:7")
	assert.Equal(t, time.Hour, kv.ttls["state:7"])

	require.NoError(t, s.Update(ctx, 7, func(cur *order.Session) (*order.Session, error) {
		require.NotNil(t, cur)
		assert.Equal(t, order.StepName, cur.Step)
		require.Len(t, cur.Colors, 1)
		assert.Equal(t, 4, *cur.Colors[0].Quantity)
		return nil, nil
	}))
	assert.NotContains(t, kv.data, "state:7")
}

func TestStorageKeepsStateOnRejection(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	s := New(kv, 0)

	require.NoError(t, s.Update(ctx, 1, func(*order.Session) (*order.Session, error) {
		return order.NewSession(), nil
	}))
	before := string(kv.data["state:1"])

	rejected := errors.New("rejected")
	err := s.Update(ctx, 1, func(cur *order.Session) (*order.Session, error) {
		cur.Step = order.StepComment
		return cur, rejected
	})
	require.ErrorIs(t, err, rejected)
	assert.Equal(t, before, string(kv.data["state:1"]))
	assert.Equal(t, defaultStateTTL, kv.ttls["state:1"])
}

func TestStorageSkipsWriteForReads(t *testing.T) {
	ctx := context.Background()
	cat, err := catalog.New([]catalog.Item{{Name: "Венге", PhotoURL: "p"}})
	require.NoError(t, err)

	kv := newFakeKV()
	e := order.NewEngine(cat, New(kv, time.Hour), nil, zap.NewNop())

	require.NoError(t, e.StartSession(ctx, 3))
	_, err = e.SelectColor(ctx, 3, 0)
	require.NoError(t, err)
	writes := kv.sets
	kv.ttls["state:3"] = time.Minute

	snap, err := e.Snapshot(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, order.StepQuantity, snap.Step)
	assert.Equal(t, writes, kv.sets)
	assert.Equal(t, time.Minute, kv.ttls["state:3"])

	_, err = e.HandleText(ctx, 3, "5")
	require.NoError(t, err)
	assert.Equal(t, writes+1, kv.sets)
	assert.Equal(t, time.Hour, kv.ttls["state:3"])
}

func TestStorageSurfacesBackendErrors(t *testing.T) {
	kv := newFakeKV()
	kv.err = errors.New("connection refused")
	s := New(kv, 0)

	called := false
	err := s.Update(context.Background(), 1, func(*order.Session) (*order.Session, error) {
		called = true
		return nil, nil
	})
	require.Error(t, err)
	assert.False(t, called)
	assert.False(t, order.IsRejection(err))
}

func TestStorageDrivesEngine(t *testing.T) {
	ctx := context.Background()
	cat, err := catalog.New([]catalog.Item{{Name: "Венге", PhotoURL: "p"}})
	require.NoError(t, err)

	var got []order.Payload
	sub := order.SubmitterFunc(func(_ context.Context, p order.Payload) error {
		got = append(got, p)
		return nil
	})
	kv := newFakeKV()
	e := order.NewEngine(cat, New(kv, 0), sub, zap.NewNop())

	require.NoError(t, e.StartSession(ctx, 9))
	_, err = e.SelectColor(ctx, 9, 0)
	require.NoError(t, err)
	_, err = e.HandleText(ctx, 9, "12")
	require.NoError(t, err)
	_, err = e.FinishSelection(ctx, 9)
	require.NoError(t, err)
	for _, text := range []string{"Олена", "0501112233"} {
		_, err = e.HandleText(ctx, 9, text)
		require.NoError(t, err)
	}
	_, err = e.ChooseDelivery(ctx, 9, "Нова Пошта")
	require.NoError(t, err)
	for _, text := range []string{"Львів", "12", "немає"} {
		_, err = e.HandleText(ctx, 9, text)
		require.NoError(t, err)
	}

	_, err = e.Confirm(ctx, 9)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []order.ColorLine{{Color: "Венге", Quantity: 12}}, got[0].Colors)
	assert.Equal(t, "Нова Пошта", got[0].Delivery)
	assert.Empty(t, kv.data)
}
