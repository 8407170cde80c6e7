package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/runlayout/core"
	"github.com/npillmayer/runlayout/core/font"
	"github.com/npillmayer/runlayout/core/font/fontregistry"
	"github.com/npillmayer/runlayout/engine/glyphing"
	"github.com/npillmayer/runlayout/engine/glyphing/gotext"
	"github.com/npillmayer/runlayout/engine/glyphing/harfbuzz"
	"github.com/npillmayer/runlayout/engine/glyphing/monospace"
	"github.com/npillmayer/runlayout/engine/layout"
	"golang.org/x/text/unicode/norm"
)

// config collects the command line settings of a layout session.
type config struct {
	fonts  []string // names of fonts, one family per name, in fallback order
	size   float64
	weight uint
	italic bool
	shaper string // hb | gotext | mono
	cache  int    // capacity of the word cache, 0 for none
}

// session lays out lines of text with a fixed environment.
type session struct {
	env   *layout.Environment
	style font.Style
}

func newSession(conf config) (*session, error) {
	var shaper glyphing.Shaper
	backend := fontregistry.OpenTypeBackend
	switch strings.ToLower(conf.shaper) {
	case "", "hb", "harfbuzz":
		shaper = harfbuzz.NewShaper()
	case "gotext", "go-text":
		shaper = gotext.NewShaper()
		backend = fontregistry.GoTextBackend
	case "mono", "monospace":
		shaper = monospace.NewShaper(nil)
	default:
		return nil, core.Error(core.EINVALID, "unknown shaper: %s", conf.shaper)
	}
	if conf.weight < 1 || conf.weight > 9 {
		return nil, core.Error(core.EINVALID, "font weight must be in 1…9, is %d", conf.weight)
	}
	if conf.size <= 0 {
		return nil, core.Error(core.EINVALID, "font size must be positive, is %g", conf.size)
	}
	reg := fontregistry.NewRegistry(backend)
	families := make([]*font.Family, 0, len(conf.fonts)+1)
	for _, name := range conf.fonts {
		if name = strings.TrimSpace(name); name == "" {
			continue
		}
		fam, err := reg.Family(name, name)
		if err != nil {
			tracer().Errorf("cannot load font %s: %s", name, core.UserMessage(err))
			continue
		}
		families = append(families, fam)
	}
	families = append(families, reg.GoFamily()) // always present as last resort
	reg.LogFontList()
	opts := font.DefaultOptions()
	opts.Size = conf.size
	s := &session{
		env: &layout.Environment{
			Fonts:   font.NewCollection(families...),
			Shaper:  shaper,
			Options: opts,
		},
		style: font.Style{Weight: uint32(conf.weight), Italic: conf.italic},
	}
	if conf.cache > 0 {
		s.env.Cache = layout.NewWordCache(conf.cache)
	}
	return s, nil
}

// layout lays out text as a single line. Text is normalized to NFC first.
func (s *session) layout(text string) (*layout.Layout, error) {
	text = norm.NFC.String(text)
	l := layout.New()
	if err := l.PushParagraphs(text, s.style, s.env); err != nil {
		return nil, err
	}
	tracer().Debugf("%v", l)
	return l, nil
}

// glyphTable formats the glyphs of a layout as table rows, including a header row.
func glyphTable(l *layout.Layout) [][]string {
	rows := make([][]string, 0, l.Len()+1)
	rows = append(rows, []string{"#", "GID", "X", "Y", "Advance", "Font", "Fakery"})
	advances := l.Advances()
	for i, g := range l.Glyphs() {
		fakery := g.Font.Fakery.String()
		if fakery == "" {
			fakery = "-"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%d", g.ID),
			fmt.Sprintf("%.2f", g.X),
			fmt.Sprintf("%.2f", g.Y),
			fmt.Sprintf("%.2f", advances[i]),
			g.Font.Font.String(),
			fakery,
		})
	}
	return rows
}
