package layout

import (
	"fmt"
	"strings"

	"github.com/npillmayer/runlayout/core"
	"github.com/npillmayer/runlayout/core/font"
	"github.com/npillmayer/runlayout/engine/glyphing"
	"github.com/npillmayer/runlayout/engine/itemize"
	"github.com/npillmayer/runlayout/engine/text"
)

// Glyph is a positioned glyph of a layout.
type Glyph struct {
	X, Y float64         // position of the glyph's origin
	ID   font.GlyphIndex // glyph index within font
	Font font.FakedFont  // font to render the glyph with
}

func (g Glyph) String() string {
	return fmt.Sprintf("<%d@%.2f,%.2f>", g.ID, g.X, g.Y)
}

// Layout is a sequence of glyphs, set in visual order along a baseline.
// A Layout is owned by a single layout pass and must not be modified
// concurrently.
type Layout struct {
	advance  float64
	advances []float64
	glyphs   []Glyph
}

// New creates an empty layout.
func New() *Layout {
	return &Layout{}
}

// Glyphs returns the glyphs of the layout. Clients must not modify the slice.
func (l *Layout) Glyphs() []Glyph {
	return l.glyphs
}

// Advances returns the advance of every glyph, in the order of Glyphs().
func (l *Layout) Advances() []float64 {
	return l.advances
}

// Advance returns the total advance of the layout.
func (l *Layout) Advance() float64 {
	return l.advance
}

// Len returns the number of glyphs.
func (l *Layout) Len() int {
	return len(l.glyphs)
}

func (l *Layout) String() string {
	var sb strings.Builder
	sb.WriteString("layout{")
	for i, g := range l.glyphs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(g.String())
	}
	fmt.Fprintf(&sb, "} advance=%.2f", l.advance)
	return sb.String()
}

// Append concatenates a second layout to l. The glyphs of other are moved
// by the total advance of l. other is not modified.
func (l *Layout) Append(other *Layout) {
	if other == nil {
		return
	}
	for _, g := range other.glyphs {
		g.X += l.advance
		l.glyphs = append(l.glyphs, g)
	}
	l.advances = append(l.advances, other.advances...)
	l.advance += other.advance
}

func (l *Layout) add(g glyphing.ShapedGlyph, ff font.FakedFont) {
	l.glyphs = append(l.glyphs, Glyph{
		X:    g.XOffset + l.advance,
		Y:    g.YOffset,
		ID:   g.GID,
		Font: ff,
	})
	l.advances = append(l.advances, g.XAdvance)
	l.advance += g.XAdvance
}

// --- Environment -----------------------------------------------------------

// Environment collects the collaborators of a layout pass.
type Environment struct {
	Fonts   *font.Collection // fonts to select from, mandatory
	Shaper  glyphing.Shaper  // shaper to use, mandatory
	Options *font.Options    // rendering options; defaults to font.DefaultOptions()
	Bidi    BidiResolver     // bidi algorithm; defaults to XBidi
	Cache   *WordCache       // optional cache for word layouts
}

func (env *Environment) check() error {
	if env == nil || env.Fonts == nil {
		return core.Error(core.EINVALID, "layout environment has no fonts")
	}
	if env.Shaper == nil {
		return core.Error(core.EINVALID, "layout environment has no shaper")
	}
	return nil
}

func (env *Environment) options() *font.Options {
	if env.Options == nil {
		return font.DefaultOptions()
	}
	return env.Options
}

func (env *Environment) bidi() BidiResolver {
	if env.Bidi == nil {
		return XBidi{}
	}
	return env.Bidi
}

// --- Layout pass -----------------------------------------------------------

// Push lays out a single line of text and appends it to l.
//
// Text must consist of a single bidi paragraph. Push panics if it finds more
// than one, as this is a violation of its contract. Use PushParagraphs for
// text possibly containing paragraph separators.
//
// Errors reported by the font backend are wrapped as core.EINVALID errors.
// Errors reported by the shaper are returned unchanged. In case of an error,
// l may contain the glyphs of the words preceding the failing one.
func (l *Layout) Push(s string, style font.Style, env *Environment) error {
	if err := env.check(); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	resolver := env.bidi()
	paras := resolver.Paragraphs(s)
	if len(paras) != 1 {
		panic(fmt.Sprintf("layout of a single line expects exactly one paragraph, found %d", len(paras)))
	}
	runs, err := resolver.VisualRuns(s, paras[0])
	if err != nil {
		return err
	}
	for _, run := range runs {
		tracer().Debugf("bidi run %v %q", run, s[run.Start:run.End])
		words := text.Words(s[run.Start:run.End])
		for words.Next() {
			if err = l.pushWord(words.Text(), style, env, run.IsRTL()); err != nil {
				return err
			}
		}
	}
	return nil
}

// PushParagraphs lays out text consisting of one or more paragraphs, as a single
// line. Paragraph separators are not part of the layout.
func (l *Layout) PushParagraphs(s string, style font.Style, env *Environment) error {
	if err := env.check(); err != nil {
		return err
	}
	for _, para := range env.bidi().Paragraphs(s) {
		ptext := strings.TrimRightFunc(s[para.Start:para.End], isParagraphSeparator)
		if ptext == "" {
			continue
		}
		if err := l.Push(ptext, style, env); err != nil {
			return err
		}
	}
	return nil
}

func (l *Layout) pushWord(word string, style font.Style, env *Environment, rtl bool) error {
	opts := env.options()
	var key string
	if env.Cache != nil {
		key = wordKey(word, style, rtl, env.Fonts, opts)
		if wl, ok := env.Cache.Get(key); ok {
			l.Append(wl)
			return nil
		}
	}
	wl := New()
	if err := wl.shapeWord(word, style, env, opts, rtl); err != nil {
		return err
	}
	if env.Cache != nil {
		env.Cache.Put(key, wl)
	}
	l.Append(wl)
	return nil
}

func (l *Layout) shapeWord(word string, style font.Style, env *Environment, opts *font.Options, rtl bool) error {
	fontRuns := itemize.Itemize(word, style, env.Fonts)
	dir := glyphing.LeftToRight
	if rtl {
		dir = glyphing.RightToLeft
		for i, j := 0, len(fontRuns)-1; i < j; i, j = i+1, j-1 {
			fontRuns[i], fontRuns[j] = fontRuns[j], fontRuns[i]
		}
	}
	for _, run := range fontRuns {
		runOpts := *opts
		runOpts.Fakery = run.Font.Fakery
		sf, err := run.Font.Font.Typeface.ShapingFont(&runOpts)
		if err != nil {
			return core.WrapError(err, core.EINVALID, "cannot prepare font %s", run.Font)
		}
		scripts := text.ScriptRuns(word[run.Start:run.End])
		for scripts.Next() {
			seq, err := env.Shaper.Shape(scripts.Text(), glyphing.Params{
				Font:      sf,
				Direction: dir,
				Script:    scripts.Script(),
				Language:  runOpts.Language,
				Features:  runOpts.Features,
			})
			if err != nil {
				return err
			}
			for _, g := range seq.Glyphs {
				l.add(g, run.Font)
			}
		}
	}
	return nil
}
