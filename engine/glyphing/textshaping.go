/*
Package glyphing defines the interface to text shapers.

A shaper turns a run of text, given in a single font, script and writing
direction, into a sequence of positioned glyphs. Sub-packages implement
shapers on top of different shaping engines.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package glyphing

import (
	"fmt"

	gtlang "github.com/go-text/typesetting/language"
	"github.com/npillmayer/runlayout/core/font"
	"golang.org/x/text/language"
)

// Direction is the direction to typeset text in.
type Direction int

// Direction to typeset text in.
const (
	LeftToRight Direction = iota
	RightToLeft
	TopToBottom
	BottomToTop
)

func (d Direction) String() string {
	switch d {
	case LeftToRight:
		return "LTR"
	case RightToLeft:
		return "RTL"
	case TopToBottom:
		return "TTB"
	case BottomToTop:
		return "BTT"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// IsHorizontal is true for left-to-right and right-to-left text.
func (d Direction) IsHorizontal() bool {
	return d == LeftToRight || d == RightToLeft
}

// A ShapedGlyph is a glyph positioned by a shaper. Offsets and advances are in
// the units of the font size the shaper has been called with, and relative to
// the origin of the shaped run.
type ShapedGlyph struct {
	ClusterID int             // byte position of code-point(s) for this glyph in the shaped text
	XAdvance  float64         // advance after glyph has been set
	YAdvance  float64         //
	XOffset   float64         // position of anchor dot for glyph
	YOffset   float64         //
	GID       font.GlyphIndex // glyph index within font
	CodePoint rune            // code-point of first rune to produce this glyph
}

func (g ShapedGlyph) String() string {
	return fmt.Sprintf("(GID=%d, advance=%.2f)", g.GID, g.XAdvance)
}

// A Shaper creates a sequence of glyphs from a sequence of
// Unicode code-points. Glyphs are taken from a font, given in a specific size.
//
// Shapers must not swallow errors: if a font handle cannot be used or the
// shaping engine fails, an error is returned. Characters not covered by the
// font result in glyph 0 ('.notdef'), not in an error.
type Shaper interface {
	Shape(text string, params Params) (GlyphSequence, error)
}

// Params collects shaping parameters.
type Params struct {
	Font      font.ShapingFont // use a font at a given size
	Direction Direction        // writing direction
	Script    gtlang.Script    // ISO 15924 script identifier
	Language  language.Tag     // BCP 47 language tag
	Features  []font.Feature   // OpenType features to apply
}

// GlyphSequence contains a sequence of shaped glyphs.
type GlyphSequence struct {
	Glyphs []ShapedGlyph // resulting sequence of glyphs
	W      float64       // total advance of the glyphs
}

// Advance sums up the advances of a slice of glyphs.
func Advance(glyphs []ShapedGlyph) float64 {
	var w float64
	for _, g := range glyphs {
		w += g.XAdvance
	}
	return w
}
