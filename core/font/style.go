package font

import "fmt"

// Style describes the design variant of a font or the variant requested for
// a piece of text. Weights are on a scale of 1 to 9, where 4 is 'regular'
// and 7 is 'bold' (CSS weights divided by 100).
//
// Styles are comparable and may be used as map keys.
type Style struct {
	Weight  uint32
	Variant uint32
	Italic  bool
}

// DefaultStyle is regular, upright text.
func DefaultStyle() Style {
	return Style{Weight: 4, Variant: 0, Italic: false}
}

// Difference computes a matching metric between two styles. 0 is an exact match.
//
// The metric is asymmetric: it is the weight difference s − other in unsigned
// (wrapping) arithmetic, plus a penalty of 2 if the slants differ. Used as
// candidate.Difference(requested), candidates heavier than requested yield
// small values, while lighter candidates wrap around to very large ones.
func (s Style) Difference(other Style) uint32 {
	d := s.Weight - other.Weight
	if s.Italic != other.Italic {
		d += 2
	}
	return d
}

// Less defines a total order on styles, by weight, then variant, then
// upright before italic.
func (s Style) Less(other Style) bool {
	if s.Weight != other.Weight {
		return s.Weight < other.Weight
	}
	if s.Variant != other.Variant {
		return s.Variant < other.Variant
	}
	return !s.Italic && other.Italic
}

func (s Style) String() string {
	it := ""
	if s.Italic {
		it = ",italic"
	}
	return fmt.Sprintf("[w%d,v%d%s]", s.Weight, s.Variant, it)
}

// Fakery denotes synthetic styling, applied whenever no font matches a
// requested style exactly.
type Fakery struct {
	FakeBold   bool
	FakeItalic bool
}

// NewFakery derives synthetic styling from a requested style and the style of
// the font actually selected.
//
// Bold is faked for requests of weight 6 and above, if the selected font is at
// least 2 steps lighter. Italic is faked if italic is requested but the selected
// font is upright.
func NewFakery(wanted Style, actual Style) Fakery {
	return Fakery{
		FakeBold:   wanted.Weight >= 6 && int64(wanted.Weight)-int64(actual.Weight) >= 2,
		FakeItalic: wanted.Italic && !actual.Italic,
	}
}

// IsZero is true if no synthetic styling is necessary.
func (f Fakery) IsZero() bool {
	return !f.FakeBold && !f.FakeItalic
}

func (f Fakery) String() string {
	switch {
	case f.FakeBold && f.FakeItalic:
		return "(fake bold italic)"
	case f.FakeBold:
		return "(fake bold)"
	case f.FakeItalic:
		return "(fake italic)"
	}
	return ""
}
