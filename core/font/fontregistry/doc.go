/*
Package fontregistry manages a registry for loaded fonts.

Fonts are registered under a normalized name, which is derived from a font's
name or file name and its style. Fonts not yet known to the registry are
searched for as system fonts. If a font cannot be found, the registry hands
out a fallback font together with an error.

A registry builds families and collections from font names, ready to be used
for text layout:

	reg := fontregistry.NewRegistry(fontregistry.OpenTypeBackend)
	fam, err := reg.Family("Noto", "NotoSans-Regular.ttf", "NotoSans-Bold.ttf")
	...
	fonts := font.NewCollection(fam, reg.GoFamily())

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'runlayout.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("runlayout.fonts")
}
