package redis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"rattan-bot/internal/order"
	"rattan-bot/pkg/keylock"
	"rattan-bot/pkg/redis"
)

const defaultStateTTL = 24 * time.Hour

// KV is the subset of the Redis client the session store needs.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

var _ KV = (*redis.Client)(nil)

// Storage keeps order sessions as JSON under state:<chat id>. Exclusive
// access per chat is held in process, so one bot instance must own a Redis
// database.
type Storage struct {
	kv    KV
	ttl   time.Duration
	locks *keylock.Locker
}

var _ order.Store = (*Storage)(nil)

func New(kv KV, ttl time.Duration) *Storage {
	if ttl <= 0 {
		ttl = defaultStateTTL
	}
	return &Storage{
		kv:    kv,
		ttl:   ttl,
		locks: keylock.New(),
	}
}

func (s *Storage) Update(ctx context.Context, chatID int64, fn order.UpdateFunc) error {
	const operation = "redis.Storage.Update"

	unlock, err := s.locks.Lock(ctx, chatID)
	if err != nil {
		return fmt.Errorf("%s: lock: %w", operation, err)
	}
	defer unlock()

	current, stored, err := s.get(ctx, chatID)
	if err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}

	next, err := fn(current)
	if err != nil {
		return err
	}

	if next == nil {
		if current == nil {
			return nil
		}
		if err := s.kv.Del(ctx, buildStateKey(chatID)); err != nil {
			return fmt.Errorf("%s: drop state: %w", operation, err)
		}
		return nil
	}

	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("%s: marshal state: %w", operation, err)
	}
	// Reads hand the session back untouched; skip the write so they neither
	// cost a round trip nor extend the TTL.
	if bytes.Equal(data, stored) {
		return nil
	}
	if err := s.kv.Set(ctx, buildStateKey(chatID), data, s.ttl); err != nil {
		return fmt.Errorf("%s: save state: %w", operation, err)
	}
	return nil
}

// get returns the stored session together with its raw JSON.
func (s *Storage) get(ctx context.Context, chatID int64) (*order.Session, []byte, error) {
	data, err := s.kv.Get(ctx, buildStateKey(chatID))
	if errors.Is(err, redis.ErrNil) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get state: %w", err)
	}

	var session order.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, nil, fmt.Errorf("unmarshal state: %w", err)
	}
	return &session, data, nil
}

func buildStateKey(chatID int64) string {
	return fmt.Sprintf("state:%d", chatID)
}
