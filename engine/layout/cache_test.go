package layout

import (
	"fmt"
	"testing"

	"github.com/npillmayer/runlayout/core/font"
	"github.com/stretchr/testify/assert"
)

func TestWordCacheEvictsOldest(t *testing.T) {
	c := NewWordCache(3)
	for i := 0; i < 5; i++ {
		c.Put(fmt.Sprintf("w%d", i), New())
	}
	assert.Equal(t, 3, c.Len())
	_, ok := c.Get("w0")
	assert.False(t, ok)
	_, ok = c.Get("w1")
	assert.False(t, ok)
	_, ok = c.Get("w4")
	assert.True(t, ok)
	hits, misses := c.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 2, misses)
	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestWordCacheDefaultCapacity(t *testing.T) {
	c := NewWordCache(0)
	assert.Equal(t, DefaultCacheCapacity, c.capacity)
}

func TestWordKey(t *testing.T) {
	fonts := latinHebrew()
	opts := font.DefaultOptions()
	k := wordKey("abc", font.DefaultStyle(), false, fonts, opts)
	assert.Equal(t, k, wordKey("abc", font.DefaultStyle(), false, fonts, font.DefaultOptions()))
	assert.NotEqual(t, k, wordKey("abc", font.DefaultStyle(), true, fonts, opts))
	assert.NotEqual(t, k, wordKey("abc", font.Style{Weight: 7}, false, fonts, opts))
	assert.NotEqual(t, k, wordKey("abc", font.DefaultStyle(), false, latinHebrew(), opts))
	for i := 0; i < 100; i++ { // collections which may share a recycled address
		assert.NotEqual(t, k, wordKey("abc", font.DefaultStyle(), false, latinHebrew(), opts))
	}
	bigger := font.DefaultOptions()
	bigger.Size = 20
	assert.NotEqual(t, k, wordKey("abc", font.DefaultStyle(), false, fonts, bigger))
}
