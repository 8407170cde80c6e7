package main

import (
	"testing"

	"github.com/npillmayer/runlayout/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig(shaper string) config {
	return config{size: 12, weight: 4, shaper: shaper}
}

func TestSessionShapers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "runlayout.cli")
	defer teardown()
	//
	for _, shaper := range []string{"hb", "gotext", "mono"} {
		s, err := newSession(defaultConfig(shaper))
		require.NoError(t, err, shaper)
		l, err := s.layout("hello world")
		require.NoError(t, err, shaper)
		assert.Equal(t, 11, l.Len(), shaper)
		assert.Greater(t, l.Advance(), 0.0, shaper)
	}
}

func TestSessionRejectsBadConfig(t *testing.T) {
	_, err := newSession(defaultConfig("troff"))
	assert.Equal(t, core.EINVALID, core.Code(err))
	conf := defaultConfig("hb")
	conf.weight = 12
	_, err = newSession(conf)
	assert.Equal(t, core.EINVALID, core.Code(err))
	conf = defaultConfig("hb")
	conf.size = 0
	_, err = newSession(conf)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestSessionSkipsMissingFonts(t *testing.T) {
	conf := defaultConfig("hb")
	conf.fonts = []string{"no-such-font-anywhere-xyz.ttf", " "}
	s, err := newSession(conf)
	require.NoError(t, err)
	assert.Len(t, s.env.Fonts.Families(), 1)
}

func TestSessionUsesCacheAndStyle(t *testing.T) {
	conf := defaultConfig("hb")
	conf.cache = 10
	conf.weight = 7
	conf.italic = true
	s, err := newSession(conf)
	require.NoError(t, err)
	require.NotNil(t, s.env.Cache)
	l, err := s.layout("ab ab")
	require.NoError(t, err)
	assert.Equal(t, 5, l.Len())
	hits, _ := s.env.Cache.Stats()
	assert.Equal(t, 1, hits)
	f := l.Glyphs()[0].Font
	assert.Equal(t, uint32(7), f.Font.Style.Weight)
	assert.True(t, f.Font.Style.Italic)
	assert.True(t, f.Fakery.IsZero())
}

func TestGlyphTable(t *testing.T) {
	s, err := newSession(defaultConfig("mono"))
	require.NoError(t, err)
	l, err := s.layout("ab")
	require.NoError(t, err)
	rows := glyphTable(l)
	require.Len(t, rows, 3)
	assert.Equal(t, "GID", rows[0][1])
	assert.Equal(t, "0.00", rows[1][2])
	assert.Equal(t, "-", rows[1][6])
}
