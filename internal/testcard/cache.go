package testcard

import (
	"image"
	"strings"
	"sync"
)

// Cache hands out one texture per card name. Names with an indexed file
// behind them load from disk once; every other name synthesizes a card the
// first time it is asked for. Either way the same name always returns the
// same pointer, so scene quads built from the same card share pixels.
type Cache struct {
	mu    sync.RWMutex
	cards map[string]*image.NRGBA
	index *Index
}

// NewCache creates an empty cache over the given index.
func NewCache(index *Index) *Cache {
	return &Cache{
		cards: make(map[string]*image.NRGBA),
		index: index,
	}
}

// Card returns the texture for a card name, loading or synthesizing it on
// first use. idx keys the synthesized palette and size its resolution; both
// are ignored once the name is cached. Lookup is case-insensitive to match
// the index.
func (c *Cache) Card(name string, idx, size int) *image.NRGBA {
	key := strings.ToLower(name)

	c.mu.RLock()
	img, ok := c.cards[key]
	c.mu.RUnlock()
	if ok {
		return img
	}

	img = c.build(name, idx, size)

	// First build wins; a racing build of the same name is dropped.
	c.mu.Lock()
	defer c.mu.Unlock()
	if prior, ok := c.cards[key]; ok {
		return prior
	}
	c.cards[key] = img
	return img
}

// build loads the indexed file for a name, synthesizing a card when there
// is no file or the file does not decode.
func (c *Cache) build(name string, idx, size int) *image.NRGBA {
	if path, ok := c.index.ResolvePath(name); ok {
		if img, err := LoadCard(path); err == nil {
			return img
		}
	}
	return Generate(idx, name, size)
}
