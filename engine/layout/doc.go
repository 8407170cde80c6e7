/*
Package layout assembles the layout of a line of text.

A layout pass resolves the bidi structure of a paragraph, splits directional
runs into words, selects fonts for every word (package itemize), splits font
runs into script runs and calls a shaper for each of them. The resulting
glyphs are collected in visual order, positioned along a single baseline.

Layouts of separate passes may be concatenated with Append. Layouts of
frequently used words may be re-used by providing a WordCache.

Usage:

	env := &layout.Environment{
	    Fonts:  fonts,                   // a *font.Collection
	    Shaper: harfbuzz.NewShaper(),
	}
	l := layout.New()
	err := l.Push("Hello World", font.DefaultStyle(), env)

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package layout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'runlayout.layout'.
func tracer() tracing.Trace {
	return tracing.Select("runlayout.layout")
}
