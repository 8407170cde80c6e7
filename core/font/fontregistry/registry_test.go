package fontregistry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/runlayout/core"
	"github.com/npillmayer/runlayout/core/font"
	"github.com/npillmayer/runlayout/core/font/gotext"
	"github.com/npillmayer/runlayout/core/font/opentype"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func TestGuessStyle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "runlayout.fonts")
	defer teardown()
	//
	for _, x := range []struct {
		name  string
		style font.Style
	}{
		{"/usr/share/fonts/NotoSans-Regular.ttf", font.Style{Weight: 4}},
		{"NotoSans-Bold.ttf", font.Style{Weight: 7}},
		{"NotoSans-BoldItalic.otf", font.Style{Weight: 7, Italic: true}},
		{"NotoSans-Italic.ttf", font.Style{Weight: 4, Italic: true}},
		{"Roboto-Light.ttf", font.Style{Weight: 3}},
		{"Roboto-Black.ttf", font.Style{Weight: 9}},
		{"Go Bold Italic", font.Style{Weight: 7, Italic: true}},
		{"Calibri.ttf", font.Style{Weight: 4}},
	} {
		assert.Equal(t, x.style, GuessStyle(x.name), x.name)
	}
}

func TestNormalizeFontname(t *testing.T) {
	assert.Equal(t, "notosans", NormalizeFontname("NotoSans-Regular.ttf", font.DefaultStyle()))
	assert.Equal(t, "notosans-bold", NormalizeFontname("fonts/NotoSans-Bold.ttf", font.Style{Weight: 7}))
	assert.Equal(t, "go-italic-bold", NormalizeFontname("Go Bold Italic", font.Style{Weight: 7, Italic: true}))
	assert.Equal(t, "go-light", NormalizeFontname("Go", font.Style{Weight: 3}))
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches("/fonts/NotoSans-Bold.ttf", "notosans", font.Style{Weight: 7}))
	assert.False(t, Matches("/fonts/NotoSans-Bold.ttf", "notosans", font.DefaultStyle()))
	assert.False(t, Matches("/fonts/NotoSans-Bold.ttf", "roboto", font.Style{Weight: 7}))
}

func TestGoFamily(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "runlayout.fonts")
	defer teardown()
	//
	for _, backend := range []Backend{OpenTypeBackend, GoTextBackend} {
		reg := NewRegistry(backend)
		fam := reg.GoFamily()
		require.Len(t, fam.Fonts(), 4, backend.String())
		assert.Same(t, fam, reg.GoFamily())
		bold := fam.ClosestMatch(font.Style{Weight: 7})
		assert.Equal(t, uint32(7), bold.Font.Style.Weight)
		assert.True(t, bold.Fakery.IsZero())
		assert.True(t, fam.HasGlyph('x'))
		switch backend {
		case GoTextBackend:
			assert.IsType(t, &gotext.Typeface{}, bold.Font.Typeface)
		default:
			assert.IsType(t, &opentype.ScalableFont{}, bold.Font.Typeface)
		}
		tf, err := reg.Typeface("Go Bold")
		require.NoError(t, err)
		assert.Same(t, bold.Font.Typeface, tf)
	}
}

func TestMissingFontFallsBack(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "runlayout.fonts")
	defer teardown()
	//
	reg := NewRegistry(OpenTypeBackend)
	reg.find = func(string) (string, error) { return "", errors.New("not found") }
	tf, err := reg.Typeface("NoSuchFont-Regular.ttf")
	require.Error(t, err)
	assert.Equal(t, core.EMISSING, core.Code(err))
	require.NotNil(t, tf)
	assert.True(t, tf.HasGlyph('a'))
}

func TestSystemFontIsLoadedOnce(t *testing.T) {
	dir := t.TempDir()
	fpath := filepath.Join(dir, "Sample-Bold.ttf")
	require.NoError(t, os.WriteFile(fpath, gobold.TTF, 0o644))
	calls := 0
	reg := NewRegistry(GoTextBackend)
	reg.find = func(name string) (string, error) {
		calls++
		return fpath, nil
	}
	f, err := reg.Font("Sample-Bold.ttf")
	require.NoError(t, err)
	assert.Equal(t, uint32(7), f.Style.Weight)
	assert.IsType(t, &gotext.Typeface{}, f.Typeface)
	tf, err := reg.Typeface("Sample-Bold.ttf")
	require.NoError(t, err)
	assert.Same(t, f.Typeface, tf)
	assert.Equal(t, 1, calls)
}

func TestFamilyFromNames(t *testing.T) {
	dir := t.TempDir()
	paths := map[string][]byte{
		"Sample-Bold.ttf":    gobold.TTF,
		"Sample-Regular.ttf": goregular.TTF,
	}
	for name, data := range paths {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}
	reg := NewRegistry(OpenTypeBackend)
	reg.find = func(name string) (string, error) {
		if _, ok := paths[name]; !ok {
			return "", errors.New("not found")
		}
		return filepath.Join(dir, name), nil
	}
	fam, err := reg.Family("Sample", "Sample-Bold.ttf", "Missing.ttf", "Sample-Regular.ttf")
	require.NoError(t, err)
	require.Len(t, fam.Fonts(), 2)
	assert.Equal(t, uint32(4), fam.Fonts()[0].Style.Weight, "fonts must be ordered by style")
	assert.Equal(t, "Sample", fam.Name())
	//
	fam, err = reg.Family("Nothing", "Missing.ttf")
	require.Error(t, err)
	require.Len(t, fam.Fonts(), 1)
	fam, err = reg.Family("Empty")
	assert.Equal(t, core.EMISSING, core.Code(err))
	assert.NotNil(t, fam)
}

func TestGlobalRegistry(t *testing.T) {
	reg := GlobalRegistry()
	assert.Same(t, reg, GlobalRegistry())
	assert.Equal(t, OpenTypeBackend, reg.Backend())
	reg.LogFontList()
}
