package itemize

import (
	"fmt"
	"unicode/utf8"

	"github.com/npillmayer/runlayout/core/font"
	"github.com/npillmayer/runlayout/engine/text"
)

// Run is a span of text to be rendered with a single font.
// Start and End are byte positions within the itemized text, End is exclusive.
type Run struct {
	Font       font.FakedFont
	Start, End int
}

func (r Run) String() string {
	return fmt.Sprintf("[%d…%d]%s", r.Start, r.End, r.Font)
}

// Len is the length of the run in bytes.
func (r Run) Len() int {
	return r.End - r.Start
}

// Itemize splits a text into font runs. Fonts are selected from the
// families of fonts, using the closest match to style within each family.
//
// The resulting runs are ordered, contiguous, non-empty and cover the text
// exactly. Empty text results in no runs. Invalid UTF-8 is treated as a sequence
// of U+FFFD replacement characters, one per invalid byte.
func Itemize(s string, style font.Style, fonts *font.Collection) []Run {
	if len(s) == 0 {
		return nil
	}
	var (
		runs    []Run
		family  *font.Family // family of the current run
		prev    rune         // previous character
		prevLen int          // byte length of the previous character
	)
	current := func() *Run { return &runs[len(runs)-1] }
	for i := 0; i < len(s); {
		r, w := utf8.DecodeRuneInString(s[i:])
		if !continuesRun(r, family) {
			fam := fonts.FamilyForChar(r)
			if fam != family {
				start := i
				if family != nil && fam.HasGlyph(r) && gluesToPrevious(r, prev) {
					start = i - prevLen
					last := current()
					last.End -= prevLen
					if last.Len() == 0 {
						tracer().Debugf("lookback at %d empties run %v", i, last)
						runs = runs[:len(runs)-1]
					}
				}
				family = fam
				runs = append(runs, Run{
					Font:  fam.ClosestMatch(style),
					Start: start,
					End:   start,
				})
			}
		}
		i += w
		current().End = i
		prev, prevLen = r, w
	}
	tracer().Debugf("itemized %q into %d runs", s, len(runs))
	return runs
}

// continuesRun decides if r may be appended to the current run without
// considering font fallback. If no run is open, it never does.
func continuesRun(r rune, current *font.Family) bool {
	if current == nil {
		return false
	}
	if text.DoesNotNeedFontSupport(r) {
		return true
	}
	if text.IsStickyWhitelisted(r) || text.IsCombiningMark(r) {
		return current.HasGlyph(r)
	}
	return false
}

// gluesToPrevious is true if r should be rendered together with the
// character before it.
func gluesToPrevious(r, prev rune) bool {
	return text.IsCombiningMark(r) || text.IsEmojiModifier(r) || text.IsEmojiModifierBase(prev)
}
