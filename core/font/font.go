/*
Package font is for typeface and font handling during text layout.

We will stick to the following definitions:

* A "typeface" is a single font program, e.g. "Helvetica regular". It is
the backend-specific part: it knows about glyph coverage and metrics, and
is able to prepare itself for a shaper.

* A "font" is a typeface together with the style it has been designed for
(weight, slant, variant).

* A "family" is an ordered list of fonts sharing a design, e.g. the regular,
bold and italic fonts of "Go". Families are the unit of font fallback.

* A "collection" is an ordered list of families. The order is the fallback order:
the first family covering a character will be used to render it.

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

Collections, families and fonts are constructed once and must not be mutated
after they have been published. They may then be shared between concurrent
layout passes, which only read style and coverage data.

----------------------------------------------------------------------

BSD License

Copyright (c) 2017-21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package font

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/language"
)

// tracer traces with key 'runlayout.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("runlayout.fonts")
}

// GlyphIndex is the index of a glyph within a font program.
type GlyphIndex uint32

// Rect is a glyph bounding box, in the units of Options.Size.
// Y grows downwards, as with golang.org/x/image/font.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Empty is a predicate: has this box a zero area?
func (r Rect) Empty() bool {
	return r.MaxX <= r.MinX || r.MaxY <= r.MinY
}

// Dx is the horizontal extent of this box.
func (r Rect) Dx() float64 {
	return r.MaxX - r.MinX
}

// Dy is the vertical extent of this box.
func (r Rect) Dy() float64 {
	return r.MaxY - r.MinY
}

// Typeface is the capability interface over a font backend.
// Layout never looks into font binaries itself, it asks a Typeface.
type Typeface interface {
	HAdvance(gid GlyphIndex, opts *Options) float64 // horizontal advance of a glyph
	Bounds(gid GlyphIndex, opts *Options) Rect      // bounding box of a glyph
	HasGlyph(r rune) bool                           // does the typeface cover r?
	// ShapingFont prepares the typeface for a shaper at opts.Size.
	// Errors from the backend are reported, not recovered from.
	ShapingFont(opts *Options) (ShapingFont, error)
}

// ShapingFont is a typeface prepared for a shaper at a given size. Shapers
// type-check the concrete handle and will refuse handles of foreign backends.
type ShapingFont interface {
	Size() float64
}

// HorizontalScale returns the horizontal scale a shaping font has been
// prepared with. Handles without a method ScaleX() are unscaled.
func HorizontalScale(sf ShapingFont) float64 {
	if scaled, ok := sf.(interface{ ScaleX() float64 }); ok {
		if sx := scaled.ScaleX(); sx != 0 {
			return sx
		}
	}
	return 1
}

// Font is a typeface together with the style it has been designed for.
type Font struct {
	Typeface Typeface
	Style    Style
}

func (f *Font) String() string {
	if f == nil {
		return "<nil font>"
	}
	if s, ok := f.Typeface.(fmt.Stringer); ok {
		return fmt.Sprintf("%s%s", s.String(), f.Style)
	}
	return fmt.Sprintf("font%s", f.Style)
}

// FakedFont is the result of matching a font against a requested style.
// It references a font owned by a family and carries synthetic styling, if
// necessary. FakedFonts are cheap to copy.
type FakedFont struct {
	Font   *Font
	Fakery Fakery
}

func (ff FakedFont) String() string {
	if ff.Fakery.IsZero() {
		return ff.Font.String()
	}
	return fmt.Sprintf("%s%s", ff.Font, ff.Fakery)
}

// --- Options ---------------------------------------------------------------

// Tag is an OpenType 4-letter tag, e.g. a feature tag like 'liga'.
type Tag uint32

// T returns a Tag from a (4-letter) string.
// If t is shorter than 4 letters, it will be padded with spaces.
func T(t string) Tag {
	t = (t + "    ")[:4]
	return Tag(uint32(t[0])<<24 | uint32(t[1])<<16 | uint32(t[2])<<8 | uint32(t[3]))
}

func (t Tag) String() string {
	bytes := []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
	return string(bytes)
}

// Feature tells a shaper to turn a certain OpenType feature on or off for a
// range of code-points. Start and End are rune positions within a shaped run;
// a zero End means 'up to the end of the run'.
type Feature struct {
	Tag        Tag    // 4-letter feature tag
	Value      uint32 // 0 switches a feature off, 1 (or an alternate index) on
	Start, End int    // position of code-points to apply feature for
}

// Options collects the rendering parameters of a layout pass.
// They are opaque to itemization and are passed through to the typefaces and
// to the shaper.
type Options struct {
	Size          float64      // font size, units of all shaped output
	ScaleX        float64      // horizontal scale
	SkewX         float64      // horizontal skew
	LetterSpacing float64      // currently not applied by layout
	WordSpacing   float64      // currently not applied by layout
	Fakery        Fakery       // synthetic styling requested by caller
	Features      []Feature    // OpenType features to apply
	Language      language.Tag // BCP 47 language tag, passed to the shaper
}

// DefaultOptions returns options for 12-unit text without scaling, skew or
// spacing, and without any explicit features.
func DefaultOptions() *Options {
	return &Options{
		Size:   12,
		ScaleX: 1,
	}
}

// Key returns a string suitable as (part of) a cache key for layouts done
// with these options.
func (opts *Options) Key() string {
	if opts == nil {
		return "-"
	}
	return fmt.Sprintf("%g/%g/%g/%g/%g/%v/%v/%s", opts.Size, opts.ScaleX, opts.SkewX,
		opts.LetterSpacing, opts.WordSpacing, opts.Fakery, opts.Features, opts.Language)
}
