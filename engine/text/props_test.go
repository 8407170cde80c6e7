package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnicodeProperties(t *testing.T) {
	assert.True(t, IsCombiningMark(0x0301))
	assert.False(t, IsCombiningMark('e'))
	assert.True(t, IsEmojiModifier(0x1F3FD))
	assert.False(t, IsEmojiModifier(0x1F44D))
	assert.True(t, IsEmojiModifierBase(0x1F44D)) // thumbs up
	assert.True(t, IsEmojiModifierBase(0x261D))
	assert.False(t, IsEmojiModifierBase('a'))
}

func TestDoesNotNeedFontSupport(t *testing.T) {
	for _, r := range []rune{0x00AD, 0x200D, 0x200F, 0x202E, 0x2066, 0xFEFF, 0xFE0F, 0xE0100} {
		assert.True(t, DoesNotNeedFontSupport(r), "%#U", r)
	}
	for _, r := range []rune{'a', ' ', 0x2010, 0x0301} {
		assert.False(t, DoesNotNeedFontSupport(r), "%#U", r)
	}
}

func TestStickyWhitelist(t *testing.T) {
	for _, r := range []rune{'!', ',', '-', '.', ':', ';', '?', 0x00A0, 0x2011, 0x2642} {
		assert.True(t, IsStickyWhitelisted(r), "%#U", r)
	}
	for _, r := range []rune{'a', '(', '"', 0x2013} {
		assert.False(t, IsStickyWhitelisted(r), "%#U", r)
	}
}
