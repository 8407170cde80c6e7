package text

import (
	"unicode/utf8"

	gtlang "github.com/go-text/typesetting/language"
)

// Script is a Unicode script, identified by its ISO 15924 tag
// in HarfBuzz's encoding.
type Script = gtlang.Script

// Script-neutral categories: characters of these scripts never start a run
// of their own.
const (
	Common    = gtlang.Common
	Inherited = gtlang.Inherited
	Unknown   = gtlang.Unknown
	Latin     = gtlang.Latin
)

// ScriptOf looks up the Unicode script property of a code-point.
func ScriptOf(r rune) Script {
	return gtlang.LookupScript(r)
}

// IsNeutralScript is true for Common, Inherited and Unknown.
func IsNeutralScript(s Script) bool {
	return s == Common || s == Inherited || s == Unknown
}

// ScriptRunIterator is an iterator over runs of a single script.
//
// Starting with an undefined script, every character's script is compared to
// the script of the current run. If the current run has not yet committed
// to a script (it is Unknown, Inherited or Common), it silently adopts the
// incoming script. Incoming Inherited or Common characters are absorbed into
// the current run. Any other change of script closes the current run.
//
// A run consisting of script-neutral characters only is reported with a
// fallback script, Latin by default.
type ScriptRunIterator struct {
	text       string
	pos        int
	script     Script
	fallback   Script
	start, end int
	runScript  Script
}

// ScriptOption configures a ScriptRunIterator.
type ScriptOption func(*ScriptRunIterator)

// WithFallbackScript sets the script to report for runs without any
// committed script.
func WithFallbackScript(s Script) ScriptOption {
	return func(it *ScriptRunIterator) {
		it.fallback = s
	}
}

// ScriptRuns creates an iterator over the script runs of s.
func ScriptRuns(s string, opts ...ScriptOption) *ScriptRunIterator {
	it := &ScriptRunIterator{
		text:     s,
		fallback: Latin,
	}
	for _, opt := range opts {
		opt(it)
	}
	it.Reset()
	return it
}

// Reset restarts the iterator at the start of its input.
func (it *ScriptRunIterator) Reset() {
	it.pos, it.start, it.end = 0, 0, 0
	it.script = Unknown
	it.runScript = Unknown
}

// Next moves to the next script run. It returns false if the input is exhausted.
func (it *ScriptRunIterator) Next() bool {
	start := it.pos
	for i := it.pos; i < len(it.text); {
		r, w := utf8.DecodeRuneInString(it.text[i:])
		script := ScriptOf(r)
		if script != it.script {
			if IsNeutralScript(it.script) {
				it.script = script
				i += w
				continue
			}
			if script == Inherited || script == Common {
				i += w
				continue
			}
			it.pos = i
			it.emit(start, i, it.script)
			it.script = script
			return true
		}
		i += w
	}
	if it.pos < len(it.text) {
		it.pos = len(it.text)
		it.emit(start, len(it.text), it.script)
		return true
	}
	return false
}

func (it *ScriptRunIterator) emit(start, end int, script Script) {
	if IsNeutralScript(script) {
		script = it.fallback
	}
	it.start, it.end, it.runScript = start, end, script
	tracer().Debugf("script run [%d…%d] %v", start, end, script)
}

// Script returns the script of the current run.
func (it *ScriptRunIterator) Script() Script {
	return it.runScript
}

// Text returns the text of the current run.
func (it *ScriptRunIterator) Text() string {
	return it.text[it.start:it.end]
}

// Range returns the byte range of the current run within the input.
func (it *ScriptRunIterator) Range() (int, int) {
	return it.start, it.end
}
