/*
Package itemize splits text into runs of a single font.

Itemization decides for every character of a text which font of a font
collection should render it, and groups consecutive characters using the same
font into runs. The number of runs is kept minimal: characters which do not
need a glyph of their own, punctuation which the current font is able to render,
and combining marks stick to the current run. Base characters are moved to a
following run if this keeps them together with a combining mark or an emoji
modifier which only the following run's font is able to render.

Itemization does not care about scripts or about the writing direction. Clients
will usually itemize a single word at a time.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package itemize

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'runlayout.itemize'.
func tracer() tracing.Trace {
	return tracing.Select("runlayout.itemize")
}
