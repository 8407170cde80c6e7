package harfbuzz

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	hb "github.com/benoitkugler/textlayout/harfbuzz"
	hblang "github.com/benoitkugler/textlayout/language"
	gtlang "github.com/go-text/typesetting/language"
	"github.com/npillmayer/runlayout/core"
	"github.com/npillmayer/runlayout/core/font"
	"github.com/npillmayer/runlayout/core/font/opentype"
	"github.com/npillmayer/runlayout/engine/glyphing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestHBScript(t *testing.T) {
	hbScript := Script4HB(gtlang.Latin)
	hstr := fmt.Sprintf("%x", uint32(hbScript))
	if hstr != "6c61746e" {
		t.Errorf("expected HB script of 6c61746e, is %s", hstr)
	}
	assert.Equal(t, hblang.Latin, Script4HB(gtlang.Latin))
	assert.Equal(t, hblang.Arabic, Script4HB(gtlang.Arabic))
	assert.Equal(t, hblang.Hebrew, Script4HB(gtlang.Hebrew))
	assert.Equal(t, hblang.Devanagari, Script4HB(gtlang.Devanagari))
}

func TestHBLang(t *testing.T) {
	l := "de_DE"
	langT, err := language.Parse(l)
	if err != nil {
		t.Error(err)
	}
	h := Lang4HB(langT)
	if h != "de-de" {
		t.Logf("Go lang = %v", langT)
		t.Logf("HB lang = %v, expected de-de", h)
		t.Fail()
	}
}

func TestHBDir(t *testing.T) {
	var d glyphing.Direction = glyphing.TopToBottom
	dir := Direction4HB(d)
	if dir != hb.TopToBottom {
		t.Errorf("expected dir to be %d, is %d", hb.TopToBottom, dir)
	}
}

func TestHBFeatureRange(t *testing.T) {
	f := FeatureRange4HB(font.Feature{Tag: font.T("liga")}, 7)
	assert.Equal(t, uint32(0), f.Value)
	assert.Equal(t, 0, f.Start)
	assert.Equal(t, 7, f.End)
	f = FeatureRange4HB(font.Feature{Tag: font.T("kern"), Value: 1, Start: 2, End: 4}, 7)
	assert.Equal(t, 4, f.End)
}

func TestHBShape(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "runlayout.glyphs")
	defer teardown()
	//
	input := "Hello"
	params := glyphing.Params{
		Font:   loadGoFont(t, 12),
		Script: gtlang.Latin,
	}
	seq, err := NewShaper().Shape(input, params)
	require.NoError(t, err)
	require.Len(t, seq.Glyphs, len(input))
	x := 0.0
	for i, g := range seq.Glyphs {
		assert.NotZero(t, g.GID, "glyph #%d", i)
		assert.Greater(t, g.XAdvance, 0.0)
		assert.Equal(t, i, g.ClusterID)
		assert.Equal(t, rune(input[i]), g.CodePoint)
		x += g.XAdvance
	}
	assert.InDelta(t, x, seq.W, 0.001)
	assert.Less(t, seq.W, 12.0*float64(len(input)), "advances must be in units of the font size")
}

func TestHBShapeClusterIsByteOffset(t *testing.T) {
	input := "äbc"
	seq, err := NewShaper().Shape(input, glyphing.Params{Font: loadGoFont(t, 10)})
	require.NoError(t, err)
	require.Len(t, seq.Glyphs, 3)
	assert.Equal(t, 0, seq.Glyphs[0].ClusterID)
	assert.Equal(t, 2, seq.Glyphs[1].ClusterID)
}

func TestHBShapeScalesWithSize(t *testing.T) {
	sh := NewShaper()
	small, err := sh.Shape("Hello", glyphing.Params{Font: loadGoFont(t, 10)})
	require.NoError(t, err)
	large, err := sh.Shape("Hello", glyphing.Params{Font: loadGoFont(t, 20)})
	require.NoError(t, err)
	assert.InDelta(t, 2*small.W, large.W, 0.01)
}

func TestHBShapeAppliesHorizontalScale(t *testing.T) {
	sf := opentype.FallbackFont()
	opts := font.DefaultOptions()
	plain, err := sf.ShapingFont(opts)
	require.NoError(t, err)
	opts.ScaleX = 2
	wide, err := sf.ShapingFont(opts)
	require.NoError(t, err)
	sh := NewShaper()
	seq1, err := sh.Shape("Hello", glyphing.Params{Font: plain})
	require.NoError(t, err)
	seq2, err := sh.Shape("Hello", glyphing.Params{Font: wide})
	require.NoError(t, err)
	assert.InDelta(t, 2*seq1.W, seq2.W, 0.01)
	metrics := 0.0
	for _, g := range seq2.Glyphs {
		metrics += sf.HAdvance(g.GID, opts)
	}
	assert.InDelta(t, metrics, seq2.W, 0.25, "shaped width must agree with font metrics")
}

func TestHBShapeRejectsForeignFont(t *testing.T) {
	_, err := NewShaper().Shape("x", glyphing.Params{})
	require.Error(t, err)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestHBShapeConcurrently(t *testing.T) {
	sh := NewShaper()
	tc := loadGoFont(t, 12)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq, err := sh.Shape("concurrent", glyphing.Params{Font: tc})
			assert.NoError(t, err)
			assert.Len(t, seq.Glyphs, 10)
		}()
	}
	wg.Wait()
}

// ---------------------------------------------------------------------------

func loadGoFont(t testing.TB, size float64) *opentype.TypeCase {
	typecase, err := opentype.FallbackFont().PrepareCase(size)
	if err != nil {
		t.Fatal(err)
	}
	return typecase
}

// ---------------------------------------------------------------------------

func BenchmarkHBShape(b *testing.B) {
	sh := NewShaper()
	params := glyphing.Params{
		Font:   loadGoFont(b, 12),
		Script: gtlang.Latin,
	}
	for i := 0; i < b.N; i++ {
		for _, line := range corpus {
			seq, err := sh.Shape(line, params)
			if err != nil || seq.Glyphs == nil {
				b.Fatal("expected shaping output to be non-nil")
			}
		}
	}
}

var corpus = strings.Split(`The quick brown fox jumps over the lazy dog.
Pack my box with five dozen liquor jugs.
Zwölf Boxkämpfer jagen Viktor quer über den großen Sylter Deich.
Voix ambiguë d'un cœur qui, au zéphyr, préfère les jattes de kiwis.`, "\n")
