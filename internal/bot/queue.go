package bot

import (
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// chatQueues holds pending updates per chat. A chat has an entry exactly
// while a goroutine is draining it.
type chatQueues struct {
	mu     sync.Mutex
	queues map[int64][]tgbotapi.Update
}

func newChatQueues() *chatQueues {
	return &chatQueues{queues: make(map[int64][]tgbotapi.Update)}
}

// push queues the update and reports whether the caller must start a
// goroutine to drain the chat.
func (c *chatQueues) push(chatID int64, update tgbotapi.Update) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	pending, active := c.queues[chatID]
	c.queues[chatID] = append(pending, update)
	return !active
}

// pop takes the next update of the chat. When none is left the entry is
// dropped and the draining goroutine must return.
func (c *chatQueues) pop(chatID int64) (tgbotapi.Update, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pending := c.queues[chatID]
	if len(pending) == 0 {
		delete(c.queues, chatID)
		return tgbotapi.Update{}, false
	}
	c.queues[chatID] = pending[1:]
	return pending[0], true
}

func (c *chatQueues) active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queues)
}
