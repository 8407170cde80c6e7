package monospace

import (
	"testing"

	"github.com/npillmayer/runlayout/core/font"
	"github.com/npillmayer/runlayout/core/font/opentype"
	"github.com/npillmayer/runlayout/engine/glyphing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonospaceCells(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "runlayout.glyphs")
	defer teardown()
	//
	sh := NewShaper(nil)
	seq, err := sh.Shape("Hello", glyphing.Params{})
	require.NoError(t, err)
	require.Len(t, seq.Glyphs, 5)
	for i, g := range seq.Glyphs {
		assert.Equal(t, 5.0, g.XAdvance, "cell #%d", i)
		assert.Equal(t, i, g.ClusterID)
	}
	assert.Equal(t, 25.0, seq.W)
}

func TestMonospaceGraphemes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "runlayout.glyphs")
	defer teardown()
	//
	sh := NewShaper(nil)
	acute := string(rune(0x0301))
	input := "e" + acute + "中x"
	seq, err := sh.Shape(input, glyphing.Params{})
	require.NoError(t, err)
	require.Len(t, seq.Glyphs, 3, "base and combining mark form one cluster")
	assert.Equal(t, 0, seq.Glyphs[0].ClusterID)
	assert.Equal(t, 'e', seq.Glyphs[0].CodePoint)
	assert.Equal(t, 3, seq.Glyphs[1].ClusterID)
	assert.Equal(t, 10.0, seq.Glyphs[1].XAdvance, "wide characters take two cells")
	assert.Equal(t, 6, seq.Glyphs[2].ClusterID)
}

func TestMonospaceUsesFontSize(t *testing.T) {
	tc, err := opentype.FallbackFont().PrepareCase(12)
	require.NoError(t, err)
	seq, err := NewShaper(nil).Shape("ab", glyphing.Params{Font: tc})
	require.NoError(t, err)
	require.Len(t, seq.Glyphs, 2)
	assert.Equal(t, 6.0, seq.Glyphs[0].XAdvance)
	assert.NotZero(t, seq.Glyphs[0].GID, "type cases map code-points to glyphs")
}

func TestMonospaceScalesCells(t *testing.T) {
	opts := font.DefaultOptions()
	opts.ScaleX = 1.5
	sf, err := opentype.FallbackFont().ShapingFont(opts)
	require.NoError(t, err)
	seq, err := NewShaper(nil).Shape("ab", glyphing.Params{Font: sf})
	require.NoError(t, err)
	require.Len(t, seq.Glyphs, 2)
	assert.Equal(t, 9.0, seq.Glyphs[0].XAdvance)
	assert.Equal(t, 18.0, seq.W)
}

func TestMonospaceRTL(t *testing.T) {
	seq, err := NewShaper(nil).Shape("abc", glyphing.Params{Direction: glyphing.RightToLeft})
	require.NoError(t, err)
	require.Len(t, seq.Glyphs, 3)
	assert.Equal(t, 'c', seq.Glyphs[0].CodePoint)
	assert.Equal(t, 'a', seq.Glyphs[2].CodePoint)
}
