package monospace

import (
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/runlayout/core/font"
	"github.com/npillmayer/runlayout/engine/glyphing"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax11"
)

// Shaper is a shaper for monospace typesetting. Every grapheme cluster
// occupies one or two cells, depending on its East Asian width. A cell is
// half an em wide.
//
// Shaper is safe for concurrent use.
type Shaper struct {
	context *uax11.Context
}

var _ glyphing.Shaper = &Shaper{}

// GlyphMapper is implemented by font handles able to look up glyphs for
// code-points. If the font handle of a call to Shape implements it, glyphs
// will carry real glyph indices.
type GlyphMapper interface {
	GlyphIndex(r rune) (font.GlyphIndex, bool)
}

// NewShaper creates a shaper for monospace typesetting. context determines
// the width of ambiguous characters; if it is nil, a Latin context is assumed.
func NewShaper(context *uax11.Context) *Shaper {
	if context == nil {
		context = uax11.LatinContext
	}
	grapheme.SetupGraphemeClasses()
	return &Shaper{context: context}
}

// Shape creates a glyph sequence from a text, one glyph per grapheme cluster.
// The em-size is taken from params.Font, or defaults to 10 if no font is given.
func (ms *Shaper) Shape(text string, params glyphing.Params) (glyphing.GlyphSequence, error) {
	em, sx := 10.0, 1.0
	if params.Font != nil {
		em = params.Font.Size()
		sx = font.HorizontalScale(params.Font)
	}
	mapper, _ := params.Font.(GlyphMapper)
	seq := glyphing.GlyphSequence{}
	if text == "" {
		return seq, nil
	}
	seq.Glyphs = make([]glyphing.ShapedGlyph, 0, len(text))
	graphemes := segment.NewSegmenter(grapheme.NewBreaker(1))
	graphemes.Init(strings.NewReader(text))
	pos := 0
	for graphemes.Next() {
		grphm := graphemes.Bytes()
		w := uax11.Width(grphm, ms.context)
		codepoint, _ := utf8.DecodeRune(grphm)
		g := glyphing.ShapedGlyph{
			XAdvance:  float64(w) * em / 2 * sx,
			ClusterID: pos,
			CodePoint: codepoint,
		}
		if mapper != nil {
			g.GID, _ = mapper.GlyphIndex(codepoint)
		}
		seq.Glyphs = append(seq.Glyphs, g)
		seq.W += g.XAdvance
		pos += len(grphm)
	}
	if params.Direction == glyphing.RightToLeft {
		for i, j := 0, len(seq.Glyphs)-1; i < j; i, j = i+1, j-1 {
			seq.Glyphs[i], seq.Glyphs[j] = seq.Glyphs[j], seq.Glyphs[i]
		}
	}
	tracer().Debugf("monospace shaped %q into %d cells", text, len(seq.Glyphs))
	return seq, nil
}
