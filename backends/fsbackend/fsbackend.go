// Package fsbackend wraps a filesystem directory as a value.Value
// tree: directories are expandable, regular files are leaves, and a
// fsnotify watcher is kept alive so the browser can detect out-of-band
// changes and prompt a refresh. transform() lists every path under the
// root, pipes the listing through a shell filter, and hands the result
// to the text backend as a flat tree of matched paths.
package fsbackend

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tb/backends/textbackend"
	"tb/internal/fmtcmd"
	"tb/internal/pipefilter"
	"tb/internal/value"
	"tb/internal/watcher"
)

// Name is this backend's factory name; the CLI shell also resolves it
// from an executable named "fsb" (Name + "b").
const Name = "fs"

type node struct {
	value.BaseValue
	path string // absolute
	root bool
}

func (n *node) label() string {
	if n.root {
		return n.path
	}
	return filepath.Base(n.path)
}

func (n *node) Content() fmtcmd.Cmd {
	info, err := os.Lstat(n.path)
	if err != nil {
		return fmtcmd.RawColor(value.ErrorColor, fmtcmd.Literal(n.label()+" (inaccessible)"))
	}
	name := n.label()
	if info.IsDir() {
		return fmtcmd.Literal(name + "/")
	}
	return fmtcmd.Container(fmtcmd.Literal(name), fmtcmd.Literal(fmt.Sprintf(" (%d bytes)", info.Size())))
}

func (n *node) Placeholder() fmtcmd.Cmd { return n.Content() }

func (n *node) Expandable() bool {
	info, err := os.Lstat(n.path)
	return err == nil && info.IsDir()
}

// Children lists the directory fresh on every call, so a pressed
// refresh always sees the current filesystem state regardless of
// whether the watcher has caught up yet.
func (n *node) Children() []value.Value {
	entries, err := os.ReadDir(n.path)
	if err != nil {
		return []value.Value{value.NewError(err.Error())}
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	children := make([]value.Value, 0, len(names))
	for _, name := range names {
		children = append(children, &node{path: filepath.Join(n.path, name)})
	}
	return children
}

// Source wraps a directory tree rooted at Root, with an optional live
// watcher for out-of-band changes.
type Source struct {
	root *node
	w    *watcher.Watcher
}

// New builds a Source rooted at dir. The returned Source's watcher is
// not started; call Watch to begin receiving change notifications.
func New(dir string) (Source, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Source{}, fmt.Errorf("resolving path %s: %w", dir, err)
	}
	return Source{root: &node{path: abs, root: true}}, nil
}

func (s Source) Root() value.Value { return s.root }

// Watch starts a debounced directory watcher over the root and returns
// its change channel, mirroring spec.md's "refresh current"/"refresh
// root" operations with a live-reload trigger instead of a manual
// keypress. Callers that don't care about live reload can ignore it.
func (s *Source) Watch() (<-chan struct{}, error) {
	w, err := watcher.New(watcher.DefaultConfig(s.root.path))
	if err != nil {
		return nil, err
	}
	ch, err := w.Start()
	if err != nil {
		return nil, err
	}
	s.w = w
	return ch, nil
}

// Close stops the watcher, if one was started.
func (s *Source) Close() error {
	if s.w == nil {
		return nil
	}
	return s.w.Stop()
}

// Transform lists every path under the root (relative to it), pipes the
// listing through query as a shell command, and returns the matching
// lines as a flat text backend tree.
func (s Source) Transform(query string) (value.Source, error) {
	var lines []string
	walkErr := filepath.WalkDir(s.root.path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == s.root.path {
			return nil
		}
		rel, relErr := filepath.Rel(s.root.path, path)
		if relErr != nil {
			return relErr
		}
		lines = append(lines, rel)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("listing %s: %w", s.root.path, walkErr)
	}

	listing := strings.Join(lines, "\n")
	if len(lines) > 0 {
		listing += "\n"
	}

	out, err := pipefilter.Run(context.Background(), query, []byte(listing))
	if err != nil {
		return nil, err
	}
	return textbackend.New(out, "\n"), nil
}

// Factory instantiates a fs Source rooted at the first argument, or the
// current directory with none.
type Factory struct{}

func (Factory) Info() (name, description string) {
	return Name, "browse a filesystem directory"
}

func (Factory) From(args []string) (value.Source, bool, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	src, err := New(dir)
	if err != nil {
		return nil, false, err
	}
	// Returned as a pointer (rather than by value) so a caller can type-
	// assert for Watch/Close, which are defined on *Source.
	return &src, true, nil
}

func (Factory) Colors() []value.ColorPair { return nil }

func (Factory) Settings() value.Settings { return value.Settings{HideRoot: false} }
