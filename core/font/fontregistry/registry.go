package fontregistry

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/runlayout/core"
	"github.com/npillmayer/runlayout/core/font"
	"github.com/npillmayer/runlayout/core/font/gotext"
	"github.com/npillmayer/runlayout/core/font/opentype"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Backend selects the font backend a registry loads fonts with.
type Backend int

// Font backends. Shapers accept font handles of their own backend only:
// the HarfBuzz shaper needs OpenTypeBackend, the go-text shaper needs GoTextBackend.
const (
	OpenTypeBackend Backend = iota // core/font/opentype
	GoTextBackend                  // core/font/gotext
)

func (b Backend) String() string {
	switch b {
	case OpenTypeBackend:
		return "opentype"
	case GoTextBackend:
		return "gotext"
	}
	return fmt.Sprintf("Backend(%d)", int(b))
}

// Registry is a type for holding information about loaded fonts.
type Registry struct {
	sync.Mutex
	backend   Backend
	typefaces map[string]font.Typeface
	gofamily  *font.Family
	find      func(string) (string, error)
}

var globalFontRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is an application-wide singleton to hold information about
// loaded fonts. It uses the OpenType backend.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalFontRegistry = NewRegistry(OpenTypeBackend)
	})
	return globalFontRegistry
}

// NewRegistry creates an empty registry loading fonts with a given backend.
func NewRegistry(backend Backend) *Registry {
	return &Registry{
		backend:   backend,
		typefaces: make(map[string]font.Typeface),
		find:      findfont.Find,
	}
}

// Backend returns the font backend of the registry.
func (fr *Registry) Backend() Backend {
	return fr.backend
}

// StoreTypeface pushes a typeface into the registry if it isn't contained yet.
//
// The typeface will be stored using the normalized font name as a key. If this
// key is already associated with a typeface, that typeface will not be overridden.
func (fr *Registry) StoreTypeface(normalizedName string, tf font.Typeface) {
	if tf == nil {
		tracer().Errorf("registry cannot store null typeface")
		return
	}
	fr.Lock()
	defer fr.Unlock()
	if _, ok := fr.typefaces[normalizedName]; !ok {
		tracer().Debugf("registry stores typeface %v as %s", tf, normalizedName)
		fr.typefaces[normalizedName] = tf
	}
}

// Typeface returns the typeface for a font name. The name may be the name of a
// font previously stored, a system font's name or the path of a font file.
//
// If no typeface can be found, Typeface will return the fallback font together
// with an error of code core.EMISSING. Malformed font files are reported with
// core.EINVALID, again together with the fallback font.
func (fr *Registry) Typeface(name string) (font.Typeface, error) {
	normalized := NormalizeFontname(name, GuessStyle(name))
	tracer().Debugf("registry searches for font %s", normalized)
	fr.Lock()
	if tf, ok := fr.typefaces[normalized]; ok {
		fr.Unlock()
		tracer().Debugf("registry found font %s", normalized)
		return tf, nil
	}
	fr.Unlock()
	tf, err := fr.load(name)
	if err != nil {
		tracer().Infof("registry does not contain font %s, using fallback", normalized)
		return fr.fallback(), err
	}
	fr.StoreTypeface(normalized, tf)
	return tf, nil
}

func (fr *Registry) load(name string) (font.Typeface, error) {
	fpath, err := fr.find(name) // try to find as system font
	if err != nil || fpath == "" {
		return nil, core.WrapError(err, core.EMISSING, "font not found: %s", name)
	}
	tracer().Debugf("%s is a system font at %s", name, fpath)
	switch fr.backend {
	case GoTextBackend:
		return gotext.Load(fpath)
	default:
		return opentype.LoadOpenTypeFont(fpath)
	}
}

// fallback returns the regular Go font for the registry's backend.
func (fr *Registry) fallback() font.Typeface {
	return fr.GoFamily().Fonts()[0].Typeface
}

// Font returns a font for a font name, with a style guessed from the name.
// See Typeface for errors.
func (fr *Registry) Font(name string) (*font.Font, error) {
	tf, err := fr.Typeface(name)
	f := &font.Font{Typeface: tf, Style: GuessStyle(name)}
	if err != nil {
		f.Style = font.DefaultStyle()
	}
	return f, err
}

// Family creates a font family from a list of font names. Fonts which cannot be
// found are left out. If none of them is found, Family reports an error and
// returns a family consisting of the fallback font.
//
// Fonts of the family are ordered by style, which makes style matching
// deterministic for any order of names.
func (fr *Registry) Family(familyName string, fontnames ...string) (*font.Family, error) {
	var fonts []*font.Font
	var lastErr error
	for _, name := range fontnames {
		f, err := fr.Font(name)
		if err != nil {
			tracer().Errorf("font %s of family %s: %v", name, familyName, core.UserMessage(err))
			lastErr = err
			continue
		}
		fonts = append(fonts, f)
	}
	if len(fonts) == 0 {
		if lastErr == nil {
			lastErr = core.Error(core.EMISSING, "no fonts given for family %s", familyName)
		}
		return font.NewFamily(familyName, &font.Font{
			Typeface: fr.fallback(),
			Style:    font.DefaultStyle(),
		}), lastErr
	}
	sort.SliceStable(fonts, func(i, j int) bool {
		return fonts[i].Style.Less(fonts[j].Style)
	})
	return font.NewFamily(familyName, fonts...), nil
}

// GoFamily returns the family of Go fonts (regular, bold, italic and bold
// italic), loaded with the registry's backend. The Go fonts are embedded and
// always present.
func (fr *Registry) GoFamily() *font.Family {
	fr.Lock()
	defer fr.Unlock()
	if fr.gofamily != nil {
		return fr.gofamily
	}
	gofonts := []struct {
		name  string
		data  []byte
		style font.Style
	}{
		{"Go Regular", goregular.TTF, font.DefaultStyle()},
		{"Go Italic", goitalic.TTF, font.Style{Weight: 4, Italic: true}},
		{"Go Bold", gobold.TTF, font.Style{Weight: 7}},
		{"Go Bold Italic", gobolditalic.TTF, font.Style{Weight: 7, Italic: true}},
	}
	fonts := make([]*font.Font, 0, len(gofonts))
	for _, gf := range gofonts {
		var tf font.Typeface
		var err error
		if fr.backend == GoTextBackend {
			tf, err = gotext.Parse(gf.name, gf.data)
		} else {
			var sf *opentype.ScalableFont
			if sf, err = opentype.ParseOpenTypeFont(gf.data); err == nil {
				sf.Fontname, sf.Filepath = gf.name, "internal"
				tf = sf
			}
		}
		if err != nil {
			panic(fmt.Sprintf("cannot load embedded font %s", gf.name)) // this cannot happen
		}
		fonts = append(fonts, &font.Font{Typeface: tf, Style: gf.style})
		fr.typefaces[NormalizeFontname(gf.name, gf.style)] = tf
	}
	fr.gofamily = font.NewFamily("Go", fonts...)
	return fr.gofamily
}

// LogFontList is a helper function to dump the list of known fonts
// in a registry to the trace-file (log-level Info).
func (fr *Registry) LogFontList() {
	fr.Lock()
	defer fr.Unlock()
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- registered fonts (%s) ---", fr.backend)
	for k, v := range fr.typefaces {
		tracer().Infof("font [%s] = %v", k, v)
	}
	tracer().Infof("------------------------")
	tracer().SetTraceLevel(level)
}

// --- Names -----------------------------------------------------------------

var styleSuffixes = []string{"-regular", "_regular", "-bold", "_bold", "-italic", "_italic"}

// NormalizeFontname creates a registry key from a font's name and style.
// The directory and extension of a font file path are removed.
func NormalizeFontname(fname string, style font.Style) string {
	fname = path.Base(strings.TrimSpace(fname))
	if ext := path.Ext(fname); ext != "" && len(ext) <= 5 {
		fname = fname[:len(fname)-len(ext)]
	}
	fname = strings.ReplaceAll(fname, " ", "_")
	fname = strings.ToLower(fname)
	for trimmed := true; trimmed; {
		trimmed = false
		for _, suffix := range styleSuffixes {
			if strings.HasSuffix(fname, suffix) {
				fname, trimmed = strings.TrimSuffix(fname, suffix), true
			}
		}
	}
	if style.Italic {
		fname += "-italic"
	}
	switch {
	case style.Weight < 4:
		fname += "-light"
	case style.Weight >= 6:
		fname += "-bold"
	}
	return fname
}

// GuessStyle trys to guess a font's style from the font's (file) name.
// Weights are on the scale of font.Style, i.e. 1…9.
func GuessStyle(fontfilename string) font.Style {
	fontfilename = path.Base(fontfilename)
	ext := path.Ext(fontfilename)
	fontfilename = strings.ToLower(fontfilename[:len(fontfilename)-len(ext)])
	fontfilename = strings.ReplaceAll(fontfilename, " ", "-")
	style := font.DefaultStyle()
	if strings.Contains(fontfilename, "italic") || strings.Contains(fontfilename, "oblique") {
		style.Italic = true
	}
	s := strings.Split(fontfilename, "-")
	if len(s) > 1 {
		last := strings.TrimSuffix(s[len(s)-1], "italic")
		switch last {
		case "thin":
			style.Weight = 1
			return style
		case "light", "xlight":
			style.Weight = 3
			return style
		case "normal", "regular", "r":
			return style
		case "medium":
			style.Weight = 5
			return style
		case "semibold":
			style.Weight = 6
			return style
		case "bold", "b":
			style.Weight = 7
			return style
		case "xbold", "extrabold":
			style.Weight = 8
			return style
		case "black":
			style.Weight = 9
			return style
		}
	}
	switch {
	case strings.Contains(fontfilename, "light"):
		style.Weight = 3
	case strings.Contains(fontfilename, "bold"):
		style.Weight = 7
	}
	return style
}

// Matches returns true if a font's filename contains pattern and indicators
// for a given style.
func Matches(fontfilename, pattern string, style font.Style) bool {
	basename := path.Base(fontfilename)
	basename = basename[:len(basename)-len(path.Ext(basename))]
	basename = strings.ToLower(basename)
	tracer().Debugf("basename of font = %s", basename)
	if !strings.Contains(basename, strings.ToLower(pattern)) {
		return false
	}
	return GuessStyle(basename) == style
}
