package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// MediaGroupLimit is the largest album Telegram accepts in one request.
const MediaGroupLimit = 10

type Item struct {
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url"`
}

// Catalog is the ordered, read-only list of items offered for selection.
// Items are addressed by position.
type Catalog struct {
	items []Item
}

func New(items []Item) (*Catalog, error) {
	if len(items) == 0 {
		return nil, errors.New("catalog is empty")
	}

	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, fmt.Errorf("item %d: empty name", i)
		}
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("item %d: duplicate name %q", i, name)
		}
		seen[name] = struct{}{}
	}

	cp := make([]Item, len(items))
	copy(cp, items)
	return &Catalog{items: cp}, nil
}

// Load reads a JSON array of items from path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	return New(items)
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Item returns the item at index, or false when index is out of range.
func (c *Catalog) Item(index int) (Item, bool) {
	if index < 0 || index >= len(c.items) {
		return Item{}, false
	}
	return c.items[index], true
}

// Items returns a copy of all items in catalog order.
func (c *Catalog) Items() []Item {
	cp := make([]Item, len(c.items))
	copy(cp, c.items)
	return cp
}

// PhotoChunks splits the photo references into groups that fit one media group.
func (c *Catalog) PhotoChunks(size int) [][]string {
	if size <= 0 {
		size = MediaGroupLimit
	}

	var chunks [][]string
	for start := 0; start < len(c.items); start += size {
		end := min(start+size, len(c.items))
		chunk := make([]string, 0, end-start)
		for _, item := range c.items[start:end] {
			chunk = append(chunk, item.PhotoURL)
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}
