/*
Package monospace implements a simple shaper for monospace output.

The shaper does not consult any font tables. It splits text into grapheme
clusters and gives each cluster a width of one or two cells. This is useful for
terminal output and for tests.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package monospace

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'runlayout.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("runlayout.glyphs")
}
