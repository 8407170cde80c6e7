/*
Package gotext implements a shaper on top of the HarfBuzz port of
github.com/go-text/typesetting.

The shaper works on fonts of package core/font/gotext.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package gotext

import (
	"sync"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	gtlang "github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/npillmayer/runlayout/core"
	"github.com/npillmayer/runlayout/core/font"
	gtface "github.com/npillmayer/runlayout/core/font/gotext"
	"github.com/npillmayer/runlayout/engine/glyphing"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"
)

// tracer traces with key 'runlayout.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("runlayout.glyphs")
}

// Shaper is a glyphing.Shaper using go-text's HarfBuzz shaper.
//
// HarfbuzzShaper keeps internal buffers and is not safe for concurrent use.
// Shaper pools them, making Shaper itself safe for concurrent use.
type Shaper struct {
	pool sync.Pool
}

var _ glyphing.Shaper = &Shaper{}

// NewShaper creates a go-text shaper.
func NewShaper() *Shaper {
	return &Shaper{
		pool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
	}
}

// Shape is part of interface glyphing.Shaper.
//
// params.Font must be a Face of package core/font/gotext, otherwise an error with code
// core.EINVALID is returned.
//
// go-text applies font features to a run as a whole. Features restricted to a
// part of the text are therefore ignored.
func (sh *Shaper) Shape(text string, params glyphing.Params) (glyphing.GlyphSequence, error) {
	face, ok := params.Font.(*gtface.Face)
	if !ok || face == nil {
		return glyphing.GlyphSequence{}, core.Error(core.EINVALID,
			"go-text shaper cannot use font handle %T", params.Font)
	}
	if text == "" {
		return glyphing.GlyphSequence{}, nil
	}
	runes, offsets := bufferText(text)
	script := params.Script
	if script == 0 {
		script = gtlang.LookupScript(runes[0])
	}
	input := shaping.Input{
		Text:         runes,
		RunStart:     0,
		RunEnd:       len(runes),
		Direction:    Direction4GT(params.Direction),
		Face:         gtfont.NewFace(face.Typeface().Font()),
		FontFeatures: features4GT(params.Features, len(runes)),
		Size:         fixed.Int26_6(face.Size() * 64),
		Script:       script,
		Language:     Lang4GT(params.Language),
	}
	hbShaper := sh.pool.Get().(*shaping.HarfbuzzShaper)
	output := hbShaper.Shape(input)
	sh.pool.Put(hbShaper)
	//
	seq := glyphing.GlyphSequence{
		Glyphs: make([]glyphing.ShapedGlyph, len(output.Glyphs)),
	}
	vertical := !params.Direction.IsHorizontal()
	sx := font.HorizontalScale(face)
	for i, g := range output.Glyphs {
		sg := &seq.Glyphs[i]
		sg.GID = font.GlyphIndex(g.GlyphID)
		sg.XOffset = fixedToFloat(g.XOffset) * sx
		sg.YOffset = fixedToFloat(g.YOffset)
		if vertical {
			sg.YAdvance = fixedToFloat(g.Advance)
		} else {
			sg.XAdvance = fixedToFloat(g.Advance) * sx
		}
		if ti := g.TextIndex(); ti >= 0 && ti < len(runes) {
			sg.ClusterID = offsets[ti]
			sg.CodePoint = runes[ti]
		}
		seq.W += sg.XAdvance
	}
	tracer().Debugf("go-text shaped %q into %d glyphs, width %.2f", text, len(seq.Glyphs), seq.W)
	return seq, nil
}

// Direction4GT translates a direction to a go-text direction.
func Direction4GT(d glyphing.Direction) di.Direction {
	switch d {
	case glyphing.RightToLeft:
		return di.DirectionRTL
	case glyphing.TopToBottom:
		return di.DirectionTTB
	case glyphing.BottomToTop:
		return di.DirectionBTT
	}
	return di.DirectionLTR
}

// Lang4GT returns a language tag as a go-text language.
func Lang4GT(l language.Tag) gtlang.Language {
	if l == language.Und {
		return gtlang.NewLanguage("en")
	}
	return gtlang.NewLanguage(l.String())
}

// features4GT converts features spanning the whole text.
func features4GT(features []font.Feature, runeCount int) []shaping.FontFeature {
	var ff []shaping.FontFeature
	for _, f := range features {
		if f.Start > 0 || (f.End > 0 && f.End < runeCount) {
			tracer().Debugf("go-text shaper ignores ranged feature %s", f.Tag)
			continue
		}
		ff = append(ff, shaping.FontFeature{Tag: ot.Tag(f.Tag), Value: f.Value})
	}
	return ff
}

func bufferText(text string) (runes []rune, offsets []int) {
	runes = make([]rune, 0, len(text))
	offsets = make([]int, 0, len(text))
	for i, r := range text {
		runes = append(runes, r)
		offsets = append(offsets, i)
	}
	return
}

func fixedToFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64
}
