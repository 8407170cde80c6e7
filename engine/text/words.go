package text

import "unicode/utf8"

// WordBreaker is an iterator over the cache-granularity words of a string.
// Spaces and CJK ideographs are isolated into words of their own; everything
// else is broken at them. Concatenating all the words of a string results in
// the string.
//
// Usage:
//
//	words := text.Words("hello world")
//	for words.Next() {
//	    fmt.Println(words.Text())   // "hello", " ", "world"
//	}
type WordBreaker struct {
	text       string
	start, end int
}

// Words creates a word iterator for s.
func Words(s string) *WordBreaker {
	return &WordBreaker{text: s}
}

// Reset restarts the iterator at the start of its input.
func (wb *WordBreaker) Reset() {
	wb.start, wb.end = 0, 0
}

// Next moves to the next word. It returns false if the input is exhausted.
func (wb *WordBreaker) Next() bool {
	wb.start = wb.end
	if wb.start >= len(wb.text) {
		return false
	}
	r, w := utf8.DecodeRuneInString(wb.text[wb.start:])
	wb.end = wb.start + w
	if breakAfter(r) {
		return true
	}
	for wb.end < len(wb.text) {
		r, w = utf8.DecodeRuneInString(wb.text[wb.end:])
		if breakBefore(r) {
			return true
		}
		wb.end += w
	}
	return true
}

// Text returns the current word.
func (wb *WordBreaker) Text() string {
	return wb.text[wb.start:wb.end]
}

// Range returns the byte range of the current word within the input.
func (wb *WordBreaker) Range() (int, int) {
	return wb.start, wb.end
}

// SplitWords is a convenience function returning all the words of s.
func SplitWords(s string) []string {
	var words []string
	wb := Words(s)
	for wb.Next() {
		words = append(words, wb.Text())
	}
	return words
}

func isWordSpace(r rune) bool {
	return r == ' ' || r == '\u00a0'
}

func breakAfter(r rune) bool {
	return isWordSpace(r) || (r >= '\u2000' && r <= '\u200a') || r == '\u3000'
}

func breakBefore(r rune) bool {
	// CJK ideographs (and Yijing hexagram symbols)
	return breakAfter(r) || (r >= '\u3400' && r <= '\u9fff')
}
