// Package cmd wires the command-line shell: executable-name backend
// dispatch, config loading, and the terminal main loop that drives a
// browser.Controller from keybinder-resolved commands.
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"tb/backends/fsbackend"
	"tb/backends/hnbackend"
	"tb/backends/jsonbackend"
	"tb/backends/textbackend"
	"tb/backends/textprotobackend"
	"tb/internal/browser"
	"tb/internal/config"
	"tb/internal/keybinder"
	"tb/internal/log"
	"tb/internal/palette"
	"tb/internal/term"
	"tb/internal/value"
)

// execNamePattern matches an executable installed as "<name>b" (e.g.
// "jsonb", "fsb"), letting a backend be invoked without typing "tb"
// first.
var execNamePattern = regexp.MustCompile(`^([a-z]+)b$`)

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
)

// rootCmd disables cobra's own flag parsing: a backend's arguments
// (e.g. textbackend's "-sep") must reach Factory.From untouched, so
// --config/--debug are recognized by a small manual scan in runTB
// instead of registered pflags that would otherwise claim them.
var rootCmd = &cobra.Command{
	Use:                "tb",
	Short:              "An interactive terminal tree browser",
	Long:               `tb browses tree-structured data — JSON documents, filesystem directories, plain text, Hacker News threads, Protocol Buffers text format — through one shared viewport, search, and transform pipeline.`,
	Version:            version,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	RunE:               runTB,
}

// extractGlobalFlags pulls --config/-c and --debug/-d out of args
// wherever they appear, returning the remaining args untouched for the
// backend's own factory to parse.
func extractGlobalFlags(args []string) (remaining []string) {
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config", "-c":
			if i+1 < len(args) {
				cfgFile = args[i+1]
				i++
			}
		case "--debug", "-d":
			debugFlag = true
		case "--version":
			fmt.Println(rootCmd.Use, version)
			os.Exit(0)
		default:
			remaining = append(remaining, args[i])
		}
	}
	return remaining
}

// Execute runs the root command.
func Execute() error { return rootCmd.Execute() }

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// registry returns every built-in backend factory, keyed by its
// info() name.
func registry() map[string]value.Factory {
	readStdin := func() ([]byte, error) { return io.ReadAll(os.Stdin) }
	return map[string]value.Factory{
		jsonbackend.Name: jsonbackend.NewFactory(),
		fsbackend.Name:   fsbackend.Factory{},
		textbackend.Name: textbackend.NewFactory(),
		hnbackend.Name:   hnbackend.Factory{},
		textprotobackend.Name: textprotobackend.Factory{
			ReadFile:  os.ReadFile,
			ReadStdin: readStdin,
		},
	}
}

// watchable is implemented by a backend Source (e.g. fsbackend's) that
// can notify the main loop of changes made out-of-band, so runLoop can
// refresh the tree without waiting for a manual keypress.
type watchable interface {
	Watch() (<-chan struct{}, error)
	Close() error
}

// backendFromExecName reports the backend name encoded in the running
// executable's basename, if any.
func backendFromExecName() (string, bool) {
	exe := filepath.Base(os.Args[0])
	m := execNamePattern.FindStringSubmatch(exe)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func runTB(cmd *cobra.Command, args []string) error {
	args = extractGlobalFlags(args)

	debug := os.Getenv("TB_DEBUG") != "" || debugFlag
	if debug {
		logPath := os.Getenv("TB_LOG")
		if logPath == "" {
			logPath = "tb.log"
		}
		cleanup, err := log.Init(logPath)
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		defer cleanup()
		log.Info(log.CatConfig, "tb starting", "version", version)
	}

	backends := registry()

	name, ok := backendFromExecName()
	if !ok {
		if len(args) == 0 {
			printHelp(backends)
			return nil
		}
		if args[0] == "help" {
			printHelp(backends)
			return nil
		}
		name = args[0]
		args = args[1:]
	}

	factory, ok := backends[name]
	if !ok {
		return fmt.Errorf("unknown backend %q (run %q for the list)", name, rootCmd.Use+" help")
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	src, ok, err := factory.From(args)
	if err != nil {
		return fmt.Errorf("starting %s backend: %w", name, err)
	}
	if !ok {
		return nil
	}

	kb, err := keybinder.DefaultKeybinder()
	if err != nil {
		return fmt.Errorf("building keybinder: %w", err)
	}
	if err := keybinder.ApplyOverrides(kb, cfg.Keymap); err != nil {
		return fmt.Errorf("applying keymap overrides: %w", err)
	}

	rgbColors := make([]palette.RGB, len(factory.Colors()))
	for i, c := range factory.Colors() {
		rgbColors[i] = palette.RGB{ANSI8: c.ANSI8, ANSI256: c.ANSI256}
	}
	pal := palette.New(rgbColors)
	pal.SetBuiltin(
		palette.RGB{ANSI8: cfg.Palette.RegularANSI8, ANSI256: cfg.Palette.RegularANSI256},
		palette.RGB{ANSI8: cfg.Palette.MutedANSI8, ANSI256: cfg.Palette.MutedANSI256},
	)

	t := term.NewTCellTerminal()
	if err := t.Setup(); err != nil {
		return fmt.Errorf("setting up terminal: %w", err)
	}
	defer t.Teardown()

	ctrl := browser.New(src, factory.Settings().HideRoot, t, pal, browser.SystemClipboard{})
	cols, rows := t.Size()
	ctrl.Resize(cols, rows)

	var watchCh <-chan struct{}
	if w, ok := src.(watchable); ok {
		ch, err := w.Watch()
		if err != nil {
			if debug {
				log.Info(log.CatConfig, "watch unavailable", "err", err.Error())
			}
		} else {
			watchCh = ch
			defer w.Close()
		}
	}

	runLoop(ctrl, t, kb, watchCh)

	if debug {
		log.Info(log.CatConfig, "tb shutting down")
	}
	return nil
}

// printHelp lists every registered backend's info(), sorted by name.
func printHelp(backends map[string]value.Factory) {
	names := make([]string, 0, len(backends))
	for n := range backends {
		names = append(names, n)
	}
	sort.Strings(names)

	fmt.Println("usage: tb <backend> [args]")
	fmt.Println("\navailable backends:")
	for _, n := range names {
		_, desc := backends[n].Info()
		fmt.Printf("  %-10s %s\n", n, desc)
	}
}

// runLoop drives the controller from terminal events until quit is
// requested: digits accumulate as a numeric prefix, everything else
// feeds the keybinder, and a fired action either dispatches immediately
// or hands subsequent keys to the matching prompt until it's accepted
// or cancelled.
func runLoop(ctrl *browser.Controller, t term.Terminal, kb *keybinder.Keybinder, watchCh <-chan struct{}) {
	var activePrompt browser.PromptKind

	for !ctrl.QuitRequested() {
		select {
		case _, ok := <-watchCh:
			if ok {
				ctrl.Command([]string{"node", "refresh-root"})
				ctrl.Redraw()
			}
		default:
		}

		timeout := 0 * time.Second
		if kb.Armed() {
			timeout = keybinder.ChordTimeout
		}
		ev := t.ReadEvent(timeout)

		switch ev.Kind {
		case term.EventTimeout:
			if fired := kb.Timeout(); fired != nil {
				dispatch(ctrl, fired, &activePrompt)
			}
			continue
		case term.EventResize:
			ctrl.Resize(ev.Width, ev.Height)
			continue
		case term.EventMouse:
			if activePrompt == browser.PromptNone && ev.MouseButton == 1 && !ev.MouseRelease {
				ctrl.Click(ev.MouseY)
			}
			continue
		}

		if activePrompt != browser.PromptNone {
			handlePromptEvent(ctrl, ev, &activePrompt)
			continue
		}

		if ev.Kind == term.EventChar && ev.Rune >= '0' && ev.Rune <= '9' {
			ctrl.PushDigit(int(ev.Rune - '0'))
			continue
		}

		feedToken(kb, eventToken(ev), ctrl, &activePrompt)
	}
}

// feedToken advances the keybinder by one token, firing a matched or
// abandoned-prefix action and, on a miss, re-feeding tok from the root
// so it can start a fresh sequence of its own.
func feedToken(kb *keybinder.Keybinder, tok int, ctrl *browser.Controller, activePrompt *browser.PromptKind) {
	fired, matched := kb.Feed(tok)
	if fired != nil {
		dispatch(ctrl, fired, activePrompt)
		return
	}
	if matched {
		return
	}
	if pending := kb.Pending(); pending != nil {
		dispatch(ctrl, pending, activePrompt)
	}
	kb.Start()
	fired, _ = kb.Feed(tok)
	if fired != nil {
		dispatch(ctrl, fired, activePrompt)
	}
}

func eventToken(ev term.Event) int {
	if ev.Kind == term.EventSpecial {
		return int(ev.Key)
	}
	return int(ev.Rune)
}

// dispatch runs one fired command. Command only reports which prompt
// (if any) the action opens; dispatch actually opens it, since the
// prompt object itself comes from the matching Start* method.
func dispatch(ctrl *browser.Controller, tokens []string, activePrompt *browser.PromptKind) {
	kind := ctrl.Command(tokens)
	openPrompt(ctrl, kind)
	*activePrompt = kind
	ctrl.Redraw()
}

// openPrompt calls the Start* method matching kind, if any.
func openPrompt(ctrl *browser.Controller, kind browser.PromptKind) {
	switch kind {
	case browser.PromptSearchForward:
		ctrl.StartSearch(true)
	case browser.PromptSearchBackward:
		ctrl.StartSearch(false)
	case browser.PromptTransform:
		ctrl.StartTransform("")
	case browser.PromptCommandLine:
		ctrl.StartCommandLine()
	}
}

// handlePromptEvent feeds one terminal event to whichever prompt is
// active, finishing it on Enter/Escape.
func handlePromptEvent(ctrl *browser.Controller, ev term.Event, activePrompt *browser.PromptKind) {
	p := promptFor(ctrl, *activePrompt)
	if p == nil {
		*activePrompt = browser.PromptNone
		return
	}

	if ev.Kind == term.EventSpecial {
		switch ev.Key {
		case term.KeyEnter:
			next := finishPrompt(ctrl, *activePrompt, true)
			openPrompt(ctrl, next)
			*activePrompt = next
			ctrl.Redraw()
			return
		case term.KeyEscape:
			finishPrompt(ctrl, *activePrompt, false)
			*activePrompt = browser.PromptNone
			ctrl.Redraw()
			return
		case term.KeyBackspace:
			p.Backspace()
		case term.KeyDelete:
			p.Delete()
		case term.KeyLeft:
			p.Left()
		case term.KeyRight:
			p.Right()
		case term.KeyHome:
			p.Home()
		case term.KeyEnd:
			p.End()
		case term.KeyUp:
			p.HistoryUp()
		case term.KeyDown:
			p.HistoryDown()
		}
		ctrl.Redraw()
		return
	}

	if ev.Kind == term.EventChar {
		p.Insert(string(ev.Rune))
		ctrl.Redraw()
	}
}

func promptFor(ctrl *browser.Controller, kind browser.PromptKind) interface {
	Insert(string)
	Backspace()
	Delete()
	Left()
	Right()
	Home()
	End()
	HistoryUp()
	HistoryDown()
} {
	switch kind {
	case browser.PromptSearchForward, browser.PromptSearchBackward:
		return ctrl.SearchPrompt()
	case browser.PromptTransform:
		return ctrl.TransformPrompt()
	case browser.PromptCommandLine:
		return ctrl.CommandPrompt()
	default:
		return nil
	}
}

// finishPrompt applies the prompt's Enter/Escape result. Only the
// command-line prompt can chain into another prompt (e.g. typing
// "search forward" at the ":" prompt); every other kind returns
// PromptNone.
func finishPrompt(ctrl *browser.Controller, kind browser.PromptKind, accepted bool) browser.PromptKind {
	switch kind {
	case browser.PromptSearchForward:
		ctrl.FinishSearch(true, accepted)
	case browser.PromptSearchBackward:
		ctrl.FinishSearch(false, accepted)
	case browser.PromptTransform:
		ctrl.FinishTransform(accepted)
	case browser.PromptCommandLine:
		return ctrl.FinishCommandLine(accepted)
	}
	return browser.PromptNone
}
