/*
Package opentype implements typefaces for OpenType and TrueType fonts,
using the SFNT parser of golang.org/x/image.

A ScalableFont is a font program, loaded from a file or from memory. It answers
coverage and metrics queries for the layout engine. Prepared for a certain
size, it turns into a TypeCase, which is the font handle expected by the
HarfBuzz shaper.

sfnt.Font is safe for concurrent use as long as every query brings its own
buffer. ScalableFont does not share buffers between calls, therefore
ScalableFonts may be used by concurrent layout passes.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package opentype

import (
	"os"
	"sync"

	"github.com/npillmayer/runlayout/core"
	"github.com/npillmayer/runlayout/core/font"
	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// tracer traces with key 'runlayout.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("runlayout.fonts")
}

// ScalableFont is an OpenType font program. It implements font.Typeface.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
}

var _ font.Typeface = &ScalableFont{}

// LoadOpenTypeFont loads and parses a font file.
// Errors are reported with code core.EMISSING if the file cannot be read, and
// with code core.EINVALID for malformed font data.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %s", fontfile)
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	tracer().Infof("loaded font %s from %s", f.Fontname, fontfile)
	return f, nil
}

// ParseOpenTypeFont parses a font from its binary representation.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse font data")
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	return
}

func (sf *ScalableFont) String() string {
	return sf.Fontname
}

// UnitsPerEm returns the number of font units per em.
func (sf *ScalableFont) UnitsPerEm() sfnt.Units {
	return sf.SFNT.UnitsPerEm()
}

// HasGlyph is part of interface font.Typeface.
func (sf *ScalableFont) HasGlyph(r rune) bool {
	gid, err := sf.SFNT.GlyphIndex(nil, r)
	return err == nil && gid != 0
}

// HAdvance is part of interface font.Typeface.
// Advances are in units of opts.Size, scaled horizontally by opts.ScaleX.
func (sf *ScalableFont) HAdvance(gid font.GlyphIndex, opts *font.Options) float64 {
	adv, err := sf.SFNT.GlyphAdvance(nil, sfnt.GlyphIndex(gid), ppem(opts), xfont.HintingNone)
	if err != nil {
		tracer().Debugf("no advance for glyph %d in %s: %v", gid, sf.Fontname, err)
		return 0
	}
	return fixedToFloat(adv) * scaleX(opts)
}

// Bounds is part of interface font.Typeface.
func (sf *ScalableFont) Bounds(gid font.GlyphIndex, opts *font.Options) font.Rect {
	b, _, err := sf.SFNT.GlyphBounds(nil, sfnt.GlyphIndex(gid), ppem(opts), xfont.HintingNone)
	if err != nil {
		tracer().Debugf("no bounds for glyph %d in %s: %v", gid, sf.Fontname, err)
		return font.Rect{}
	}
	sx := scaleX(opts)
	return font.Rect{
		MinX: fixedToFloat(b.Min.X) * sx,
		MinY: fixedToFloat(b.Min.Y),
		MaxX: fixedToFloat(b.Max.X) * sx,
		MaxY: fixedToFloat(b.Max.Y),
	}
}

// ShapingFont is part of interface font.Typeface. It returns a *TypeCase.
func (sf *ScalableFont) ShapingFont(opts *font.Options) (font.ShapingFont, error) {
	size := font.DefaultOptions().Size
	if opts != nil {
		size = opts.Size
	}
	tc, err := sf.PrepareCase(size)
	if err != nil {
		return nil, err
	}
	tc.scaleX = scaleX(opts)
	return tc, nil
}

// PrepareCase prepares a font for a given size. Sizes are measured in
// arbitrary units, usually points.
func (sf *ScalableFont) PrepareCase(fontsize float64) (*TypeCase, error) {
	if fontsize <= 0 || fontsize > 5000 {
		return nil, core.Error(core.EINVALID, "font size out of range: %g", fontsize)
	}
	face, err := opentype.NewFace(sf.SFNT, &opentype.FaceOptions{
		Size:    fontsize,
		DPI:     72,
		Hinting: xfont.HintingNone,
	})
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot prepare font %s at %g", sf.Fontname, fontsize)
	}
	return &TypeCase{
		scalableFontParent: sf,
		face:               face,
		size:               fontsize,
		scaleX:             1,
	}, nil
}

// --- Type case -------------------------------------------------------------

// TypeCase is a scalable font prepared for a given size. It implements
// font.ShapingFont.
type TypeCase struct {
	scalableFontParent *ScalableFont
	face               xfont.Face // Go uses 'face' and 'font' in an inverse manner
	size               float64
	scaleX             float64
}

// ScalableFontParent returns the font program of a type case.
func (tc *TypeCase) ScalableFontParent() *ScalableFont {
	return tc.scalableFontParent
}

// Size is part of interface font.ShapingFont.
func (tc *TypeCase) Size() float64 {
	return tc.size
}

// ScaleX returns the horizontal scale of the type case. Shapers apply it to
// horizontal advances and offsets, as HAdvance does.
func (tc *TypeCase) ScaleX() float64 {
	return tc.scaleX
}

// GlyphIndex looks up the glyph for a code-point.
func (tc *TypeCase) GlyphIndex(r rune) (font.GlyphIndex, bool) {
	gid, err := tc.scalableFontParent.SFNT.GlyphIndex(nil, r)
	if err != nil || gid == 0 {
		return 0, false
	}
	return font.GlyphIndex(gid), true
}

// Metrics returns the vertical metrics of the type case, in units of its size.
func (tc *TypeCase) Metrics() (ascent, descent, lineHeight float64) {
	m := tc.face.Metrics()
	return fixedToFloat(m.Ascent), fixedToFloat(m.Descent), fixedToFloat(m.Height)
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns a font to be used if everything else failes. It is
// always present. Currently we use Go Sans.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

// fallbackFont is a font that is used if everything else failes.
var fallbackFont *ScalableFont

func loadFallbackFont() *ScalableFont {
	gofont, err := ParseOpenTypeFont(goregular.TTF)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	gofont.Fontname = "Go Sans"
	gofont.Filepath = "internal"
	return gofont
}

// --- Helpers ---------------------------------------------------------------

func ppem(opts *font.Options) fixed.Int26_6 {
	if opts == nil {
		return fixed.Int26_6(font.DefaultOptions().Size * 64)
	}
	return fixed.Int26_6(opts.Size * 64)
}

func scaleX(opts *font.Options) float64 {
	if opts == nil || opts.ScaleX == 0 {
		return 1
	}
	return opts.ScaleX
}

func fixedToFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64
}
