// Command vellumc drives the compiler front-end over a set of source
// files: lex, parse, build the module tree, resolve names, and lower to
// HIR, stopping early on request or at the first error. It exists to
// exercise the core from the command line, not as a production driver:
// no config file, no incremental build, no session telemetry beyond the
// one-line summary.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/vellum-lang/vellum/internal/debugprint"
	"github.com/vellum-lang/vellum/internal/diagnostic"
	"github.com/vellum-lang/vellum/internal/lexer"
	"github.com/vellum-lang/vellum/internal/pipeline"
	"github.com/vellum-lang/vellum/internal/session"
	"github.com/vellum-lang/vellum/internal/source"
	"github.com/vellum-lang/vellum/internal/symbol"
	"github.com/vellum-lang/vellum/internal/token"
)

// logLevel orders the --log-level values so messages below the
// configured threshold are dropped.
type logLevel int

const (
	levelDebug logLevel = iota
	levelInfo
	levelWarn
	levelError
)

var levelNames = map[string]logLevel{
	"debug": levelDebug,
	"info":  levelInfo,
	"warn":  levelWarn,
	"error": levelError,
}

// printSet is the parsed --print flag: a set of artifact names, expanded
// from "all" if present.
type printSet map[string]bool

var allPrintKinds = []string{
	"dir-tree", "source", "tokens", "ast", "ast-names", "mod-tree",
	"ribs", "definitions", "resolutions", "hir", "messages", "summary",
}

func parsePrintSet(raw string) (printSet, error) {
	set := printSet{}
	if raw == "" {
		return set, nil
	}
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if name == "all" {
			for _, k := range allPrintKinds {
				set[k] = true
			}
			continue
		}
		valid := false
		for _, k := range allPrintKinds {
			if k == name {
				valid = true
				break
			}
		}
		if !valid {
			return nil, fmt.Errorf("unknown --print value %q", name)
		}
		set[name] = true
	}
	return set, nil
}

func parseDepth(raw string) (pipeline.Depth, error) {
	switch raw {
	case "parser":
		return pipeline.DepthParser, nil
	case "name-resolution":
		return pipeline.DepthNameResolution, nil
	case "lowering", "":
		return pipeline.DepthLowering, nil
	default:
		return 0, fmt.Errorf("unknown --compile-depth value %q", raw)
	}
}

type driver struct {
	level    logLevel
	dev      bool
	terminal bool
}

func (d *driver) logf(level logLevel, format string, args ...any) {
	if level < d.level {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

func main() {
	dev := flag.Bool("dev", false, "enable developer diagnostics (lowers the default log level to debug)")
	depthFlag := flag.String("compile-depth", "lowering", "how far to run the pipeline: parser, name-resolution, lowering")
	printFlag := flag.String("print", "", "comma-separated artifacts to dump: "+strings.Join(append(append([]string{}, allPrintKinds...), "all"), ", "))
	logLevelFlag := flag.String("log-level", "warn", "minimum log level: debug, info, warn, error")
	flag.Parse()

	level, ok := levelNames[*logLevelFlag]
	if !ok {
		fmt.Fprintf(os.Stderr, "vellumc: unknown --log-level value %q\n", *logLevelFlag)
		os.Exit(2)
	}
	if *dev && level > levelDebug {
		level = levelDebug
	}

	depth, err := parseDepth(*depthFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vellumc: %s\n", err)
		os.Exit(2)
	}

	prints, err := parsePrintSet(*printFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vellumc: %s\n", err)
		os.Exit(2)
	}

	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: vellumc [flags] <file.jc> [file.jc...]")
		os.Exit(2)
	}

	d := &driver{
		level:    level,
		dev:      *dev,
		terminal: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}

	os.Exit(d.run(paths, depth, prints))
}

// run reads every path, registers it with a fresh source map, and drives
// the pipeline over the result. It returns the process exit code.
func (d *driver) run(paths []string, depth pipeline.Depth, prints printSet) int {
	sm := source.NewMap()
	var sources []pipeline.Source
	for _, p := range paths {
		d.logf(levelDebug, "vellumc: reading %s", p)
		contents, err := os.ReadFile(p)
		if err != nil {
			d.logf(levelError, "vellumc: %s", err)
			return 1
		}
		id := sm.Register(p)
		sm.SetContents(id, string(contents))
		sources = append(sources, pipeline.Source{FileId: id, Text: string(contents)})
	}
	entry := sources[0].FileId

	if prints["dir-tree"] {
		d.printDirTree(sm, sources)
	}
	if prints["source"] {
		d.printSources(sm, sources)
	}

	d.logf(levelInfo, "vellumc: compiling %s (depth=%s)", sm.Path(entry), *flagCompileDepthName(depth))

	result := pipeline.Run(sm, entry, sources, depth)
	sess := result.Sess

	if prints["tokens"] {
		d.printTokens(sess, sources)
	}
	if prints["ast"] || prints["ast-names"] {
		fmt.Print(debugprint.PrintAST(sess.Party))
	}
	if prints["mod-tree"] {
		fmt.Print(debugprint.PrintModuleTree(sess.Tree, sess.Defs))
	}
	if prints["ribs"] {
		d.logf(levelInfo, "vellumc: rib stacks are transient during name resolution and are not retained afterward; nothing to print")
	}
	if prints["definitions"] {
		fmt.Print(debugprint.PrintDefinitions(sess.Defs))
	}
	if prints["resolutions"] && sess.Res != nil {
		fmt.Print(debugprint.PrintResolutions(sess.Res, sess.Defs, sess.Res.Keys()))
	}
	if prints["hir"] && sess.HIR != nil {
		fmt.Print(debugprint.PrintHIR(sess.HIR))
	}

	hasErrors := sess.HasErrors()
	if prints["messages"] || hasErrors {
		d.printMessages(sm, sess)
	}
	if prints["summary"] {
		d.printSummary(sess, hasErrors)
	}

	if hasErrors {
		return 1
	}
	return 0
}

func flagCompileDepthName(depth pipeline.Depth) *string {
	var s string
	switch depth {
	case pipeline.DepthParser:
		s = "parser"
	case pipeline.DepthNameResolution:
		s = "name-resolution"
	default:
		s = "lowering"
	}
	return &s
}

func (d *driver) printDirTree(sm *source.Map, sources []pipeline.Source) {
	paths := make([]string, 0, len(sources))
	for _, s := range sources {
		paths = append(paths, sm.Path(s.FileId))
	}
	sort.Strings(paths)
	for _, p := range paths {
		fmt.Println(p)
	}
}

func (d *driver) printSources(sm *source.Map, sources []pipeline.Source) {
	for _, s := range sources {
		fmt.Printf("--- %s ---\n%s\n", sm.Path(s.FileId), sm.Contents(s.FileId))
	}
}

// printTokens re-lexes every file purely for display; the pipeline
// itself folds lexing into parsing and never hands tokens back, and a
// throwaway holder here keeps lex errors from leaking into the real
// compile's message count.
func (d *driver) printTokens(sess *session.Session, sources []pipeline.Source) {
	interner := sess.Interner()
	for _, s := range sources {
		holder := diagnostic.NewHolder()
		toks := lexer.Lex(s.FileId, sess.Sources.Contents(s.FileId), interner, holder)
		fmt.Printf("--- %s ---\n", sess.Sources.Path(s.FileId))
		for _, tok := range toks {
			fmt.Printf("%-4d %s%s\n", tok.Span.Offset, token.KindName(tok.Kind), tokenPayload(tok))
		}
	}
}

// tokenPayload renders the interned text carried by an Ident or Lit
// token, or the empty string for every other kind.
func tokenPayload(tok token.Token) string {
	switch tok.Kind {
	case token.Ident:
		return fmt.Sprintf(" %q", symbol.Get(tok.Ident))
	case token.Lit:
		return fmt.Sprintf(" %q", symbol.Get(tok.Lit.Sym))
	default:
		return ""
	}
}

func (d *driver) printMessages(sm *source.Map, sess *session.Session) {
	for _, m := range sess.Msgs.Messages() {
		level := "warning"
		if m.Level == diagnostic.Error {
			level = "error"
		}
		code := m.Code
		if code == "" {
			code = "----"
		}
		fmt.Fprintf(os.Stderr, "%s[%s]: %s\n", level, code, m.Text)
		for _, l := range m.Labels {
			if l.Span.IsDummy() {
				fmt.Fprintf(os.Stderr, "  --> <no location>: %s\n", l.Text)
				continue
			}
			pos := sm.PositionFor(l.Span.FileId, l.Span.Offset)
			fmt.Fprintf(os.Stderr, "  --> %s:%d:%d: %s\n", sm.Path(l.Span.FileId), pos.Line+1, pos.Column+1, l.Text)
		}
	}
}

func (d *driver) printSummary(sess *session.Session, hasErrors bool) {
	status := "ok"
	if hasErrors {
		status = "failed"
	}
	if d.terminal {
		fmt.Printf("\n== vellumc: %s ==\n", status)
	} else {
		fmt.Printf("vellumc: %s\n", status)
	}
}
