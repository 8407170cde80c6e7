package font

import "sync/atomic"

// Family is an ordered, non-empty list of fonts sharing a design.
type Family struct {
	name  string
	fonts []*Font
}

// NewFamily creates a family from a list of fonts. The order of fonts is
// relevant for style matching: of two equally good matches, the first wins.
//
// NewFamily panics if no fonts are given: an empty family is a violation of
// the contract of the style matcher and cannot be recovered from.
func NewFamily(name string, fonts ...*Font) *Family {
	if len(fonts) == 0 {
		panic("font family must contain at least one font")
	}
	for _, f := range fonts {
		if f == nil || f.Typeface == nil {
			panic("font family must not contain void fonts")
		}
	}
	fam := &Family{
		name:  name,
		fonts: make([]*Font, len(fonts)),
	}
	copy(fam.fonts, fonts)
	return fam
}

// Name returns the family name given at construction time.
func (fam *Family) Name() string {
	return fam.name
}

// Fonts returns the fonts of the family. Clients must not modify the slice.
func (fam *Family) Fonts() []*Font {
	return fam.fonts
}

// ClosestMatch selects the font of the family which fits a requested style
// best, i.e. the font minimizing font.Style.Difference(style), and derives the
// synthetic styling necessary to approximate the request with it.
// Of several fonts with minimal distance the first one wins.
func (fam *Family) ClosestMatch(style Style) FakedFont {
	best := fam.fonts[0]
	bestd := best.Style.Difference(style)
	for _, f := range fam.fonts[1:] {
		if d := f.Style.Difference(style); d < bestd {
			best, bestd = f, d
		}
	}
	return FakedFont{
		Font:   best,
		Fakery: NewFakery(style, best.Style),
	}
}

// HasGlyph checks if the family is able to render a code-point.
//
// This consults the font matching the default style only, not every member of the
// family. A family with a regular font lacking r and a bold font covering r will
// report false.
func (fam *Family) HasGlyph(r rune) bool {
	return fam.ClosestMatch(DefaultStyle()).Font.Typeface.HasGlyph(r)
}

func (fam *Family) String() string {
	return "family<" + fam.name + ">"
}

// --- Collection ------------------------------------------------------------

// Collection is an ordered list of font families. The order of families is
// the fallback order.
type Collection struct {
	id       uint64
	families []*Family
}

var collectionCount atomic.Uint64

// NewCollection creates a font collection from a prioritized list of families.
// It panics if no family is given.
func NewCollection(families ...*Family) *Collection {
	if len(families) == 0 {
		panic("font collection must contain at least one family")
	}
	c := &Collection{
		id:       collectionCount.Add(1),
		families: make([]*Family, len(families)),
	}
	copy(c.families, families)
	return c
}

// ID returns a number identifying the collection for the lifetime of the
// program. IDs are never re-used.
func (c *Collection) ID() uint64 {
	return c.id
}

// Families returns the families of the collection, in fallback order.
// Clients must not modify the slice.
func (c *Collection) Families() []*Family {
	return c.families
}

// FamilyForChar returns the first family in fallback order which covers r.
// If no family covers r, the first family is returned. FamilyForChar never
// returns nil.
func (c *Collection) FamilyForChar(r rune) *Family {
	for _, fam := range c.families {
		if fam.HasGlyph(r) {
			return fam
		}
	}
	tracer().Debugf("no font family covers %#U, falling back to %s", r, c.families[0])
	return c.families[0]
}
