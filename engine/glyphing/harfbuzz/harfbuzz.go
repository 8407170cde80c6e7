/*
Package harfbuzz uses HarfBuzz to convert text to sequences of glyphs.

The shaper works on fonts of package core/font/opentype. It is a port of
HarfBuzz to Go, which means it does not need any C libraries.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package harfbuzz

import (
	"bytes"
	"sync"

	hbtt "github.com/benoitkugler/textlayout/fonts/truetype"
	hb "github.com/benoitkugler/textlayout/harfbuzz"
	hblang "github.com/benoitkugler/textlayout/language"
	gtlang "github.com/go-text/typesetting/language"
	"github.com/npillmayer/runlayout/core"
	"github.com/npillmayer/runlayout/core/font"
	"github.com/npillmayer/runlayout/core/font/opentype"
	"github.com/npillmayer/runlayout/engine/glyphing"
	"github.com/npillmayer/runlayout/engine/text"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/language"
)

// tracer traces with key 'runlayout.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("runlayout.glyphs")
}

// --- Type conversion -------------------------------------------------------

// Lang4HB returns a language tag as a HarfBuzz language.
func Lang4HB(l language.Tag) hblang.Language {
	return hblang.NewLanguage(l.String())
}

// Script4HB returns a script as a HarfBuzz script. Both encode ISO 15924 tags,
// but HarfBuzz uses an all-lowercase tag ('latn' instead of 'Latn').
func Script4HB(s gtlang.Script) hblang.Script {
	return hblang.Script(uint32(s) | 0x20000000)
}

// Direction4HB translates a direction to a HarfBuzz direction.
func Direction4HB(d glyphing.Direction) hb.Direction {
	switch d {
	case glyphing.LeftToRight:
		return hb.LeftToRight
	case glyphing.RightToLeft:
		return hb.RightToLeft
	case glyphing.TopToBottom:
		return hb.TopToBottom
	case glyphing.BottomToTop:
		return hb.BottomToTop
	}
	return hb.LeftToRight
}

// Feature4HB makes a typecast from an OpenType feature tag to a HarfBuzz truetype tag.
func Feature4HB(t font.Tag) hbtt.Tag {
	return hbtt.Tag(t)
}

// FeatureRange4HB converts a feature to a HarfBuzz feature switch.
// runeCount is the length of the text to shape; a feature with a zero end
// position applies up to the end of the text.
func FeatureRange4HB(feat font.Feature, runeCount int) hb.Feature {
	f := hb.Feature{
		Tag:   Feature4HB(feat.Tag),
		Value: feat.Value,
		Start: feat.Start,
		End:   feat.End,
	}
	if f.End == 0 || f.End > runeCount {
		f.End = runeCount
	}
	return f
}

// --- Shaper ----------------------------------------------------------------

// Shaper is a glyphing.Shaper calling the HarfBuzz shaper.
//
// Parsing a font for HarfBuzz is expensive, so Shaper caches HarfBuzz fonts,
// one per font program. HarfBuzz fonts are used by one shaping call at a
// time, making Shaper safe for concurrent use.
type Shaper struct {
	mu    sync.RWMutex
	fonts map[*opentype.ScalableFont]*hbFont
}

type hbFont struct {
	sync.Mutex
	font *hb.Font
	upem float64
}

var _ glyphing.Shaper = &Shaper{}

// NewShaper creates a HarfBuzz shaper with an empty font cache.
func NewShaper() *Shaper {
	return &Shaper{
		fonts: make(map[*opentype.ScalableFont]*hbFont),
	}
}

// Shape shapes a sequence of code-points (runes), turning its Unicode characters to
// positioned glyphs. It will select a shape plan based on params, including the
// selected font, and the properties of the input text.
//
// If `params.Features` is not empty, it will be used to control the
// features applied during shaping. If two features have the same tag but
// overlapping ranges the value of the feature with the higher index takes
// precedence.
//
// params.Font must be a *opentype.TypeCase, otherwise an error with code
// core.EINVALID is returned. Glyph positions are in units of the type case's size,
// horizontal ones scaled by the type case's ScaleX.
func (sh *Shaper) Shape(text string, params glyphing.Params) (glyphing.GlyphSequence, error) {
	tc, ok := params.Font.(*opentype.TypeCase)
	if !ok || tc == nil {
		return glyphing.GlyphSequence{}, core.Error(core.EINVALID,
			"HarfBuzz shaper cannot use font handle %T", params.Font)
	}
	if text == "" {
		return glyphing.GlyphSequence{}, nil
	}
	hbf, err := sh.font(tc.ScalableFontParent())
	if err != nil {
		return glyphing.GlyphSequence{}, err
	}
	runes, offsets := bufferText(text)
	features := make([]hb.Feature, 0, len(params.Features))
	for _, feat := range params.Features {
		features = append(features, FeatureRange4HB(feat, len(runes)))
	}
	hbBuf := hb.NewBuffer()
	convertParams(&hbBuf.Props, params)
	if params.Script == 0 {
		hbBuf.Props.Script = Script4HB(guessScript(runes))
	}
	hbBuf.AddRunes(runes, 0, len(runes))
	hbf.Lock()
	hbBuf.Shape(hbf.font, features)
	hbf.Unlock()
	//
	// move HarfBuzz output to glyph sequence output, converting font units
	scale := tc.Size() / hbf.upem
	sx := scale * font.HorizontalScale(tc)
	seq := glyphing.GlyphSequence{
		Glyphs: make([]glyphing.ShapedGlyph, len(hbBuf.Info)),
	}
	for i, ginfo := range hbBuf.Info {
		gpos := hbBuf.Pos[i]
		g := &seq.Glyphs[i]
		g.GID = font.GlyphIndex(ginfo.Glyph)
		g.XAdvance = float64(gpos.XAdvance) * sx
		g.YAdvance = float64(gpos.YAdvance) * scale
		g.XOffset = float64(gpos.XOffset) * sx
		g.YOffset = float64(gpos.YOffset) * scale
		if ginfo.Cluster >= 0 && ginfo.Cluster < len(runes) {
			g.ClusterID = offsets[ginfo.Cluster]
			g.CodePoint = runes[ginfo.Cluster]
		}
		seq.W += g.XAdvance
	}
	tracer().Debugf("HarfBuzz shaped %q into %d glyphs, width %.2f", text, len(seq.Glyphs), seq.W)
	return seq, nil
}

// font returns the cached HarfBuzz font for a font program, parsing the font
// if necessary.
func (sh *Shaper) font(sf *opentype.ScalableFont) (*hbFont, error) {
	sh.mu.RLock()
	f, ok := sh.fonts[sf]
	sh.mu.RUnlock()
	if ok {
		return f, nil
	}
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if f, ok = sh.fonts[sf]; ok {
		return f, nil
	}
	face, err := hbtt.Parse(bytes.NewReader(sf.Binary), true)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "HarfBuzz cannot load font %s", sf.Fontname)
	}
	f = &hbFont{
		font: hb.NewFont(face),
		upem: float64(sf.UnitsPerEm()),
	}
	tracer().Infof("HarfBuzz font cache stores %s", sf.Fontname)
	sh.fonts[sf] = f
	return f, nil
}

// convertParams is a helper function to convert glyphing parameters to
// HarfBuzz's format.
func convertParams(hbSegProps *hb.SegmentProperties, params glyphing.Params) {
	if params.Language != language.Und {
		hbSegProps.Language = Lang4HB(params.Language)
	}
	if params.Script != 0 {
		hbSegProps.Script = Script4HB(params.Script)
	}
	hbSegProps.Direction = Direction4HB(params.Direction)
}

// guessScript returns the script of the first character with a
// script of its own, or Latin.
func guessScript(runes []rune) gtlang.Script {
	for _, r := range runes {
		if s := text.ScriptOf(r); !text.IsNeutralScript(s) {
			return s
		}
	}
	return gtlang.Latin
}

// bufferText splits the input text of a call to Shape(…) into runes,
// together with the byte offset of every rune.
func bufferText(text string) (runes []rune, offsets []int) {
	runes = make([]rune, 0, len(text))
	offsets = make([]int, 0, len(text))
	for i, r := range text {
		runes = append(runes, r)
		offsets = append(offsets, i)
	}
	return
}
