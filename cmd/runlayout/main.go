/*
Command runlayout lays out a line of text and prints the positioned glyphs.

Usage:

	runlayout [flags] [text …]

Fonts are given as a comma separated list of font names or font files. Every
font makes up a family of its own, in fallback order; the Go fonts are
always appended as a last resort. Without text arguments, or with flag -i,
runlayout starts an interactive session, laying out every line entered.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'runlayout.cli'.
func tracer() tracing.Trace {
	return tracing.Select("runlayout.cli")
}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	fontnames := flag.String("font", "", "Comma separated list of fonts to use")
	size := flag.Float64("size", 12, "Font size")
	weight := flag.Uint("weight", 4, "Font weight [1…9], 4 is regular, 7 is bold")
	italic := flag.Bool("italic", false, "Use italic fonts")
	shaper := flag.String("shaper", "hb", "Shaper to use [hb|gotext|mono]")
	cache := flag.Int("cache", 0, "Capacity of word cache, 0 for no caching")
	interactive := flag.Bool("i", false, "Interactive mode")
	flag.Parse()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":         "go",
		"trace.runlayout.cli":     *tlevel,
		"trace.runlayout.fonts":   *tlevel,
		"trace.runlayout.layout":  *tlevel,
		"trace.runlayout.itemize": *tlevel,
		"trace.runlayout.glyphs":  *tlevel,
		"trace.runlayout.text":    *tlevel,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().Infof("Trace level is %s", *tlevel)

	var fonts []string
	if *fontnames != "" {
		fonts = strings.Split(*fontnames, ",")
	}
	s, err := newSession(config{
		fonts:  fonts,
		size:   *size,
		weight: *weight,
		italic: *italic,
		shaper: *shaper,
		cache:  *cache,
	})
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	if text := strings.Join(flag.Args(), " "); text != "" {
		if !s.print(text) {
			os.Exit(3)
		}
		if !*interactive {
			return
		}
	}
	//
	// set up REPL
	repl, err := readline.New("layout > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	defer repl.Close()
	pterm.Info.Println("Welcome to runlayout")
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	s.REPL(repl)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// REPL starts interactive mode.
func (s *session) REPL(repl *readline.Instance) {
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		s.print(line)
	}
	pterm.Info.Println("Good bye!")
}

// print lays out a line of text and prints its glyphs as a table.
func (s *session) print(text string) bool {
	l, err := s.layout(text)
	if err != nil {
		pterm.Error.Println(err.Error())
		return false
	}
	if err = pterm.DefaultTable.WithHasHeader().WithData(glyphTable(l)).Render(); err != nil {
		tracer().Errorf(err.Error())
		return false
	}
	pterm.Info.Printf("%d glyphs, total advance %.2f\n", l.Len(), l.Advance())
	if s.env.Cache != nil {
		hits, misses := s.env.Cache.Stats()
		tracer().Infof("word cache: %d hits, %d misses", hits, misses)
	}
	return true
}
