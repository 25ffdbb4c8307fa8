// Package jsonbackend wraps a decoded JSON document as a value.Value
// tree: objects and arrays are expandable, scalars are leaves, and
// transform() pipes the document's own JSON text through a shell
// filter and reparses its stdout.
package jsonbackend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"tb/internal/fmtcmd"
	"tb/internal/pipefilter"
	"tb/internal/value"
)

// Name is this backend's factory name; the CLI shell also resolves it
// from an executable named "jsonb" (Name + "b").
const Name = "json"

// node wraps one position in the decoded document tree.
type node struct {
	value.BaseValue
	key    string // field name or array index; unused at root
	data   any
	isRoot bool
}

func (n *node) Content() fmtcmd.Cmd {
	preview := previewOf(n.data)
	if n.isRoot {
		return preview
	}
	return fmtcmd.Container(fmtcmd.Literal(n.key+": "), preview)
}

func (n *node) Placeholder() fmtcmd.Cmd {
	if n.isRoot {
		return fmtcmd.Literal("root")
	}
	return n.Content()
}

func (n *node) Expandable() bool {
	switch n.data.(type) {
	case map[string]any, []any:
		return true
	default:
		return false
	}
}

func (n *node) Children() []value.Value {
	switch d := n.data.(type) {
	case map[string]any:
		keys := make([]string, 0, len(d))
		for k := range d {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		children := make([]value.Value, 0, len(keys))
		for _, k := range keys {
			children = append(children, &node{key: k, data: d[k]})
		}
		return children
	case []any:
		children := make([]value.Value, 0, len(d))
		for i, v := range d {
			children = append(children, &node{key: strconv.Itoa(i), data: v})
		}
		return children
	default:
		return nil
	}
}

// previewOf renders a one-line, non-recursive preview of a decoded JSON
// value: containers collapse to "{...} (N keys)"/"[...] (N items)",
// scalars render as their literal JSON text.
func previewOf(v any) fmtcmd.Cmd {
	switch val := v.(type) {
	case map[string]any:
		return fmtcmd.Literal(fmt.Sprintf("{...} (%d keys)", len(val)))
	case []any:
		return fmtcmd.Literal(fmt.Sprintf("[...] (%d items)", len(val)))
	case string:
		return fmtcmd.Literal(strconv.Quote(val))
	case nil:
		return fmtcmd.Literal("null")
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmtcmd.Literal(fmt.Sprintf("%v", val))
		}
		return fmtcmd.Literal(string(b))
	}
}

// Source is a json document wrapped as a value.Source.
type Source struct {
	root *node
}

// New decodes data as JSON and returns a Source over its root value.
func New(data []byte) (Source, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return Source{}, fmt.Errorf("parsing json: %w", err)
	}
	return Source{root: &node{data: v, isRoot: true}}, nil
}

func (s Source) Root() value.Value { return s.root }

// Transform pipes the document's own JSON text through query as a shell
// command and reparses its stdout as a fresh JSON document.
func (s Source) Transform(query string) (value.Source, error) {
	encoded, err := json.Marshal(s.root.data)
	if err != nil {
		return nil, fmt.Errorf("re-encoding json: %w", err)
	}
	out, err := pipefilter.Run(context.Background(), query, encoded)
	if err != nil {
		return nil, err
	}
	return New(out)
}

// Factory instantiates a json Source from a file path argument, or from
// stdin when no argument is given. ReadFile/ReadStdin are seams for
// tests; NewFactory wires them to the real filesystem and os.Stdin.
type Factory struct {
	ReadFile  func(path string) ([]byte, error)
	ReadStdin func() ([]byte, error)
}

// NewFactory returns a Factory reading from the real filesystem/stdin.
func NewFactory() Factory {
	return Factory{
		ReadFile:  os.ReadFile,
		ReadStdin: func() ([]byte, error) { return io.ReadAll(os.Stdin) },
	}
}

func (Factory) Info() (name, description string) {
	return Name, "browse a JSON document"
}

func (f Factory) From(args []string) (value.Source, bool, error) {
	var data []byte
	var err error
	if len(args) > 0 {
		data, err = f.ReadFile(args[0])
	} else {
		data, err = f.ReadStdin()
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading json input: %w", err)
	}
	src, err := New(data)
	if err != nil {
		return nil, false, err
	}
	return src, true, nil
}

func (Factory) Colors() []value.ColorPair { return nil }

func (Factory) Settings() value.Settings { return value.Settings{HideRoot: false} }
