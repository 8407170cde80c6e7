/*
Package gotext implements typefaces on top of the font package of
github.com/go-text/typesetting.

Typefaces of this package are the font handles expected by the go-text
shaper (package engine/glyphing/gotext).

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package gotext

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	gtfont "github.com/go-text/typesetting/font"
	"github.com/npillmayer/runlayout/core"
	"github.com/npillmayer/runlayout/core/font"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'runlayout.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("runlayout.fonts")
}

// Typeface is a font program parsed by go-text. It implements font.Typeface.
//
// gtfont.Font is read-only and safe for concurrent use, gtfont.Face is not.
// Typeface therefore keeps the font only and creates short-lived faces for
// metric queries.
type Typeface struct {
	name string
	font *gtfont.Font
	upem float64
}

var _ font.Typeface = &Typeface{}

// Parse creates a typeface from the binary representation of an OpenType font.
// Malformed font data is reported as an error with code core.EINVALID.
func Parse(name string, data []byte) (*Typeface, error) {
	face, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse font %s", name)
	}
	upem := float64(face.Upem())
	if upem == 0 {
		upem = 1000
	}
	tracer().Debugf("parsed font %s, %g units/em", name, upem)
	return &Typeface{name: name, font: face.Font, upem: upem}, nil
}

// Load loads a typeface from a font file. The typeface will be named after the
// file.
func Load(path string) (*Typeface, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %s", path)
	}
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return Parse(name, data)
}

func (tf *Typeface) String() string {
	return tf.name
}

// Font returns the underlying go-text font.
func (tf *Typeface) Font() *gtfont.Font {
	return tf.font
}

// UnitsPerEm returns the number of font units per em.
func (tf *Typeface) UnitsPerEm() float64 {
	return tf.upem
}

// HasGlyph is part of interface font.Typeface.
func (tf *Typeface) HasGlyph(r rune) bool {
	gid, ok := tf.font.NominalGlyph(r)
	return ok && gid != 0
}

// HAdvance is part of interface font.Typeface.
func (tf *Typeface) HAdvance(gid font.GlyphIndex, opts *font.Options) float64 {
	face := gtfont.NewFace(tf.font)
	adv := float64(face.HorizontalAdvance(gtfont.GID(gid)))
	return adv * tf.scale(opts) * scaleX(opts)
}

// Bounds is part of interface font.Typeface.
func (tf *Typeface) Bounds(gid font.GlyphIndex, opts *font.Options) font.Rect {
	face := gtfont.NewFace(tf.font)
	ext, ok := face.GlyphExtents(gtfont.GID(gid))
	if !ok {
		return font.Rect{}
	}
	s := tf.scale(opts)
	sx := s * scaleX(opts)
	// go-text measures y upwards, with a negative height
	return font.Rect{
		MinX: float64(ext.XBearing) * sx,
		MinY: -float64(ext.YBearing) * s,
		MaxX: float64(ext.XBearing+ext.Width) * sx,
		MaxY: -float64(ext.YBearing+ext.Height) * s,
	}
}

// ShapingFont is part of interface font.Typeface. It returns a *Face.
func (tf *Typeface) ShapingFont(opts *font.Options) (font.ShapingFont, error) {
	size := font.DefaultOptions().Size
	if opts != nil {
		size = opts.Size
	}
	if size <= 0 {
		return nil, core.Error(core.EINVALID, "font size out of range: %g", size)
	}
	return &Face{typeface: tf, size: size, scaleX: scaleX(opts)}, nil
}

func (tf *Typeface) scale(opts *font.Options) float64 {
	size := font.DefaultOptions().Size
	if opts != nil {
		size = opts.Size
	}
	return size / tf.upem
}

func scaleX(opts *font.Options) float64 {
	if opts == nil || opts.ScaleX == 0 {
		return 1
	}
	return opts.ScaleX
}

// Face is a go-text typeface prepared for a given size. It implements
// font.ShapingFont.
type Face struct {
	typeface *Typeface
	size     float64
	scaleX   float64
}

// Size is part of interface font.ShapingFont.
func (f *Face) Size() float64 {
	return f.size
}

// ScaleX returns the horizontal scale of the face.
func (f *Face) ScaleX() float64 {
	return f.scaleX
}

// Typeface returns the typeface this face has been prepared from.
func (f *Face) Typeface() *Typeface {
	return f.typeface
}
