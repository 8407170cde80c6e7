package text

import "unicode"

// IsCombiningMark is true for code-points of general category M
// (non-spacing, spacing and enclosing marks).
func IsCombiningMark(r rune) bool {
	return unicode.Is(unicode.M, r)
}

// IsEmojiModifier is true for the Fitzpatrick skin tone modifiers.
func IsEmojiModifier(r rune) bool {
	return r >= 0x1F3FB && r <= 0x1F3FF
}

// IsEmojiModifierBase is true for emoji which may be followed by an emoji
// modifier (property Emoji_Modifier_Base of UTS #51).
func IsEmojiModifierBase(r rune) bool {
	return unicode.Is(emojiModifierBase, r)
}

// IsVariationSelector is true for the variation selectors VS1–VS256.
func IsVariationSelector(r rune) bool {
	return (r >= 0xFE00 && r <= 0xFE0F) || (r >= 0xE0100 && r <= 0xE01EF)
}

// DoesNotNeedFontSupport is true for format and control characters which
// are never rendered by a glyph of their own: soft hyphen, combining grapheme
// joiner, Arabic letter mark, zero-width (non-)joiners and directional marks,
// bidi embeddings, overrides and isolates, the byte order mark and variation
// selectors.
func DoesNotNeedFontSupport(r rune) bool {
	switch {
	case r == 0x00AD, r == 0x034F, r == 0x061C:
		return true
	case r >= 0x200C && r <= 0x200F:
		return true
	case r >= 0x202A && r <= 0x202E:
		return true
	case r >= 0x2066 && r <= 0x2069:
		return true
	case r == 0xFEFF:
		return true
	}
	return IsVariationSelector(r)
}

// IsStickyWhitelisted is true for punctuation and symbols which should
// stay in the font of the preceding text whenever that font covers them.
func IsStickyWhitelisted(r rune) bool {
	switch r {
	case '!', ',', '-', '.', ':', ';', '?',
		0x00A0, // no-break space
		0x2010, // hyphen
		0x2011, // non-breaking hyphen
		0x202F, // narrow no-break space
		0x2640, // female sign
		0x2642, // male sign
		0x2695: // staff of Aesculapius
		return true
	}
	return false
}

var emojiModifierBase = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x261D, Hi: 0x261D, Stride: 1},
		{Lo: 0x26F9, Hi: 0x26F9, Stride: 1},
		{Lo: 0x270A, Hi: 0x270D, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x1F385, Hi: 0x1F385, Stride: 1},
		{Lo: 0x1F3C2, Hi: 0x1F3C4, Stride: 1},
		{Lo: 0x1F3C7, Hi: 0x1F3C7, Stride: 1},
		{Lo: 0x1F3CA, Hi: 0x1F3CC, Stride: 1},
		{Lo: 0x1F442, Hi: 0x1F443, Stride: 1},
		{Lo: 0x1F446, Hi: 0x1F450, Stride: 1},
		{Lo: 0x1F466, Hi: 0x1F478, Stride: 1},
		{Lo: 0x1F47C, Hi: 0x1F47C, Stride: 1},
		{Lo: 0x1F481, Hi: 0x1F483, Stride: 1},
		{Lo: 0x1F485, Hi: 0x1F487, Stride: 1},
		{Lo: 0x1F48F, Hi: 0x1F48F, Stride: 1},
		{Lo: 0x1F491, Hi: 0x1F491, Stride: 1},
		{Lo: 0x1F4AA, Hi: 0x1F4AA, Stride: 1},
		{Lo: 0x1F574, Hi: 0x1F575, Stride: 1},
		{Lo: 0x1F57A, Hi: 0x1F57A, Stride: 1},
		{Lo: 0x1F590, Hi: 0x1F590, Stride: 1},
		{Lo: 0x1F595, Hi: 0x1F596, Stride: 1},
		{Lo: 0x1F645, Hi: 0x1F647, Stride: 1},
		{Lo: 0x1F64B, Hi: 0x1F64F, Stride: 1},
		{Lo: 0x1F6A3, Hi: 0x1F6A3, Stride: 1},
		{Lo: 0x1F6B4, Hi: 0x1F6B6, Stride: 1},
		{Lo: 0x1F6C0, Hi: 0x1F6C0, Stride: 1},
		{Lo: 0x1F6CC, Hi: 0x1F6CC, Stride: 1},
		{Lo: 0x1F90C, Hi: 0x1F90C, Stride: 1},
		{Lo: 0x1F90F, Hi: 0x1F90F, Stride: 1},
		{Lo: 0x1F918, Hi: 0x1F91F, Stride: 1},
		{Lo: 0x1F926, Hi: 0x1F926, Stride: 1},
		{Lo: 0x1F930, Hi: 0x1F939, Stride: 1},
		{Lo: 0x1F93C, Hi: 0x1F93E, Stride: 1},
		{Lo: 0x1F977, Hi: 0x1F977, Stride: 1},
		{Lo: 0x1F9B5, Hi: 0x1F9B6, Stride: 1},
		{Lo: 0x1F9B8, Hi: 0x1F9B9, Stride: 1},
		{Lo: 0x1F9BB, Hi: 0x1F9BB, Stride: 1},
		{Lo: 0x1F9CD, Hi: 0x1F9CF, Stride: 1},
		{Lo: 0x1F9D1, Hi: 0x1F9DD, Stride: 1},
		{Lo: 0x1FAC3, Hi: 0x1FAC5, Stride: 1},
		{Lo: 0x1FAF0, Hi: 0x1FAF8, Stride: 1},
	},
}
