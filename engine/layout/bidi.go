package layout

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/npillmayer/runlayout/core"
	"golang.org/x/text/unicode/bidi"
)

// Paragraph is a bidi paragraph, given as a byte range of a text. A paragraph
// includes its terminating paragraph separator, if any.
type Paragraph struct {
	Start, End int
}

// BidiRun is a directional run of text, given as a byte range, together with
// its resolved embedding level. Odd levels are right-to-left.
type BidiRun struct {
	Start, End int
	Level      int
}

// IsRTL is true for runs to be set right-to-left.
func (r BidiRun) IsRTL() bool {
	return r.Level%2 == 1
}

func (r BidiRun) String() string {
	return fmt.Sprintf("[%d…%d]L%d", r.Start, r.End, r.Level)
}

// BidiResolver resolves the bidirectional structure of text, following the
// Unicode Bidirectional Algorithm (UAX #9).
type BidiResolver interface {
	// Paragraphs splits a text into bidi paragraphs.
	Paragraphs(text string) []Paragraph
	// VisualRuns returns the directional runs of a paragraph, in visual
	// (left-to-right screen) order.
	VisualRuns(text string, para Paragraph) ([]BidiRun, error)
}

// XBidi is a BidiResolver on top of golang.org/x/text/unicode/bidi.
//
// The base direction of a paragraph is determined by its first strong
// character. x/text reports runs in logical order and
// distinguishes directions only, so XBidi assigns levels 0 to 2 and reorders
// runs for display itself. Numbers within right-to-left text get level 2,
// keeping them in place when the surrounding right-to-left text is reversed.
type XBidi struct{}

var _ BidiResolver = XBidi{}

// Paragraphs is part of interface BidiResolver. Paragraphs end after
// characters of bidi class B; CR+LF counts as a single separator.
func (XBidi) Paragraphs(text string) []Paragraph {
	var paras []Paragraph
	start := 0
	for i := 0; i < len(text); {
		r, w := utf8.DecodeRuneInString(text[i:])
		i += w
		if !isParagraphSeparator(r) {
			continue
		}
		if r == '\r' && i < len(text) && text[i] == '\n' {
			i++
		}
		paras = append(paras, Paragraph{Start: start, End: i})
		start = i
	}
	if start < len(text) {
		paras = append(paras, Paragraph{Start: start, End: len(text)})
	}
	return paras
}

// VisualRuns is part of interface BidiResolver.
func (XBidi) VisualRuns(text string, para Paragraph) ([]BidiRun, error) {
	ptext := text[para.Start:para.End]
	if ptext == "" {
		return nil, nil
	}
	base := BaseDirection(ptext)
	var p bidi.Paragraph
	if _, err := p.SetString(ptext, bidi.DefaultDirection(base)); err != nil {
		return nil, core.WrapError(err, core.EINTERNAL, "bidi resolution failed")
	}
	order, err := p.Order()
	if err != nil {
		return nil, core.WrapError(err, core.EINTERNAL, "bidi resolution failed")
	}
	// x/text positions are rune indices, end inclusive
	runeStarts := make([]int, 0, len(ptext)+1)
	for i := range ptext {
		runeStarts = append(runeStarts, i)
	}
	runeStarts = append(runeStarts, len(ptext))
	runs := make([]BidiRun, 0, order.NumRuns())
	for i := 0; i < order.NumRuns(); i++ {
		run := order.Run(i)
		from, to := run.Pos()
		if from < 0 || to+1 >= len(runeStarts) || to < from {
			return nil, core.Error(core.EINTERNAL, "bidi run out of range: %d…%d", from, to)
		}
		runs = append(runs, BidiRun{
			Start: para.Start + runeStarts[from],
			End:   para.Start + runeStarts[to+1],
			Level: level(run.Direction(), base),
		})
	}
	if len(runs) == 0 { // no characters with a bidi class other than B
		runs = append(runs, BidiRun{Start: para.Start, End: para.End, Level: level(base, base)})
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Start < runs[j].Start })
	if base == bidi.LeftToRight {
		runs = raiseNumbers(text, runs)
	}
	tracer().Debugf("bidi runs, logical order: %v", runs)
	return VisualOrder(runs), nil
}

func level(dir, base bidi.Direction) int {
	if dir == bidi.RightToLeft {
		return 1
	}
	if base == bidi.RightToLeft {
		return 2
	}
	return 0
}

// raiseNumbers assigns level 2 to numbers in right-to-left context within the
// left-to-right runs of a left-to-right paragraph (rules W2, W7 and I1 of UAX #9).
// x/text reports these numbers as part of a left-to-right run.
// Runs are expected in logical order.
func raiseNumbers(text string, runs []BidiRun) []BidiRun {
	raised := make([]BidiRun, 0, len(runs))
	lastStrong := bidi.L
	for _, run := range runs {
		if run.IsRTL() {
			raised = append(raised, run)
			lastStrong = bidi.R
			continue
		}
		raised, lastStrong = splitNumbers(text, run, lastStrong, raised)
	}
	return raised
}

// splitNumbers appends the pieces of a left-to-right run to pieces. A number
// is a sequence of European or Arabic digits, including terminators, marks and
// separators between digits. Arabic numbers are always raised, European
// numbers only if the last strong character before them is right-to-left.
func splitNumbers(text string, run BidiRun, lastStrong bidi.Class, pieces []BidiRun) ([]BidiRun, bidi.Class) {
	start, numStart, numEnd := run.Start, -1, -1
	flush := func() {
		if numStart > start {
			pieces = append(pieces, BidiRun{Start: start, End: numStart, Level: run.Level})
		}
		pieces = append(pieces, BidiRun{Start: numStart, End: numEnd, Level: 2})
		start, numStart = numEnd, -1
	}
	for i := run.Start; i < run.End; {
		r, w := utf8.DecodeRuneInString(text[i:run.End])
		props, _ := bidi.LookupRune(r)
		switch cls := props.Class(); {
		case cls == bidi.AN || (cls == bidi.EN && lastStrong != bidi.L):
			if numStart < 0 {
				numStart = i
			}
			numEnd = i + w
		case numStart >= 0 && (cls == bidi.ET || cls == bidi.NSM):
			numEnd = i + w
		case numStart >= 0 && (cls == bidi.CS || cls == bidi.ES):
			// part of the number only if a digit follows
		default:
			if numStart >= 0 {
				flush()
			}
			if cls == bidi.L || cls == bidi.R || cls == bidi.AL {
				lastStrong = cls
			}
		}
		i += w
	}
	if numStart >= 0 {
		flush()
	}
	if start < run.End {
		pieces = append(pieces, BidiRun{Start: start, End: run.End, Level: run.Level})
	}
	return pieces, lastStrong
}

// BaseDirection determines the direction of a paragraph from its first
// strong character (rules P2 and P3 of UAX #9). Paragraphs without strong
// characters are left-to-right.
func BaseDirection(text string) bidi.Direction {
	for i := 0; i < len(text); {
		props, w := bidi.LookupString(text[i:])
		if w == 0 {
			break
		}
		switch props.Class() {
		case bidi.L:
			return bidi.LeftToRight
		case bidi.R, bidi.AL:
			return bidi.RightToLeft
		}
		i += w
	}
	return bidi.LeftToRight
}

// VisualOrder reorders runs given in logical order for display, following
// rule L2 of UAX #9: from the highest level down to the lowest odd level,
// every maximal sequence of runs at that level or higher is reversed.
func VisualOrder(runs []BidiRun) []BidiRun {
	if len(runs) < 2 {
		return runs
	}
	visual := make([]BidiRun, len(runs))
	copy(visual, runs)
	maxLevel, minOdd := 0, -1
	for _, r := range visual {
		if r.Level > maxLevel {
			maxLevel = r.Level
		}
		if r.Level%2 == 1 && (minOdd < 0 || r.Level < minOdd) {
			minOdd = r.Level
		}
	}
	if minOdd < 0 {
		return visual
	}
	for lvl := maxLevel; lvl >= minOdd; lvl-- {
		for i := 0; i < len(visual); {
			if visual[i].Level < lvl {
				i++
				continue
			}
			j := i
			for j < len(visual) && visual[j].Level >= lvl {
				j++
			}
			for a, b := i, j-1; a < b; a, b = a+1, b-1 {
				visual[a], visual[b] = visual[b], visual[a]
			}
			i = j
		}
	}
	return visual
}

func isParagraphSeparator(r rune) bool {
	props, _ := bidi.LookupRune(r)
	return props.Class() == bidi.B
}
