package gotext

import (
	"testing"

	"github.com/go-text/typesetting/di"
	gtlang "github.com/go-text/typesetting/language"
	"github.com/npillmayer/runlayout/core"
	"github.com/npillmayer/runlayout/core/font"
	gtface "github.com/npillmayer/runlayout/core/font/gotext"
	"github.com/npillmayer/runlayout/core/font/opentype"
	"github.com/npillmayer/runlayout/engine/glyphing"
	"github.com/npillmayer/runlayout/engine/glyphing/harfbuzz"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/language"
)

func goFace(t *testing.T, size float64) font.ShapingFont {
	tf, err := gtface.Parse("Go", goregular.TTF)
	require.NoError(t, err)
	sf, err := tf.ShapingFont(&font.Options{Size: size, ScaleX: 1})
	require.NoError(t, err)
	return sf
}

func TestShapeHello(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "runlayout.glyphs")
	defer teardown()
	//
	input := "Hello"
	seq, err := NewShaper().Shape(input, glyphing.Params{
		Font:   goFace(t, 12),
		Script: gtlang.Latin,
	})
	require.NoError(t, err)
	require.Len(t, seq.Glyphs, 5)
	for i, g := range seq.Glyphs {
		assert.NotZero(t, g.GID)
		assert.Greater(t, g.XAdvance, 0.0)
		assert.Equal(t, i, g.ClusterID)
	}
}

// Both HarfBuzz ports must produce the same glyphs and advances.
func TestShapeAgreesWithTextlayout(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "runlayout.glyphs")
	defer teardown()
	//
	input := "Hamburgefonts"
	gt, err := NewShaper().Shape(input, glyphing.Params{Font: goFace(t, 12), Script: gtlang.Latin})
	require.NoError(t, err)
	tc, err := opentype.FallbackFont().PrepareCase(12)
	require.NoError(t, err)
	tl, err := harfbuzz.NewShaper().Shape(input, glyphing.Params{Font: tc, Script: gtlang.Latin})
	require.NoError(t, err)
	require.Equal(t, len(tl.Glyphs), len(gt.Glyphs))
	for i := range gt.Glyphs {
		assert.Equal(t, tl.Glyphs[i].GID, gt.Glyphs[i].GID)
	}
	assert.InDelta(t, tl.W, gt.W, 0.25)
}

func TestShapeAppliesHorizontalScale(t *testing.T) {
	tf, err := gtface.Parse("Go", goregular.TTF)
	require.NoError(t, err)
	wide, err := tf.ShapingFont(&font.Options{Size: 12, ScaleX: 0.5})
	require.NoError(t, err)
	sh := NewShaper()
	plain, err := sh.Shape("Hello", glyphing.Params{Font: goFace(t, 12)})
	require.NoError(t, err)
	narrow, err := sh.Shape("Hello", glyphing.Params{Font: wide})
	require.NoError(t, err)
	assert.InDelta(t, plain.W/2, narrow.W, 0.01)
	metrics := 0.0
	for _, g := range narrow.Glyphs {
		metrics += tf.HAdvance(g.GID, &font.Options{Size: 12, ScaleX: 0.5})
	}
	assert.InDelta(t, metrics, narrow.W, 0.25)
}

func TestShapeRejectsForeignFont(t *testing.T) {
	tc, err := opentype.FallbackFont().PrepareCase(12)
	require.NoError(t, err)
	_, err = NewShaper().Shape("x", glyphing.Params{Font: tc})
	require.Error(t, err)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestConversions(t *testing.T) {
	assert.Equal(t, di.DirectionRTL, Direction4GT(glyphing.RightToLeft))
	assert.Equal(t, di.DirectionLTR, Direction4GT(glyphing.LeftToRight))
	assert.Equal(t, gtlang.NewLanguage("de-DE"), Lang4GT(language.MustParse("de-DE")))
	ff := features4GT([]font.Feature{
		{Tag: font.T("liga"), Value: 0},
		{Tag: font.T("smcp"), Value: 1, Start: 1, End: 2},
	}, 5)
	require.Len(t, ff, 1)
	assert.Equal(t, uint32(font.T("liga")), uint32(ff[0].Tag))
}
