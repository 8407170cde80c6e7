/*
Package text segments text for layout.

There are two segmenters in this package, both of them lazy and restartable:

* Words splits text into "words" for caching purposes. These are not
linguistic words, but spans of text which are likely to occur repeatedly, thus
making it worthwhile to cache their layout.

* ScriptRuns splits text into runs of a single Unicode script. Characters
shared
between scripts (punctuation, digits, combining marks) are folded into
neighbouring runs.

Additionally, the package collects a small set of Unicode property
predicates needed by font itemization.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package text

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'runlayout.text'.
func tracer() tracing.Trace {
	return tracing.Select("runlayout.text")
}
