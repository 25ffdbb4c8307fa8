// Package textprotobackend parses Protocol Buffers text format into a
// value.Value tree without any compiled .proto Go bindings: a
// FileDescriptorSet (the output of `protoc --descriptor_set_out`)
// supplies the schema at runtime, protoreflect walks it generically,
// and dynamicpb holds the decoded message.
package textprotobackend

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"

	"tb/internal/fmtcmd"
	"tb/internal/pipefilter"
	"tb/internal/value"
)

// Name is this backend's factory name; the CLI shell also resolves it
// from an executable named "textprotob" (Name + "b").
const Name = "textproto"

// node wraps either a message (msg set) or a single resolved field value
// (scalar set) at one position in the decoded tree.
type node struct {
	value.BaseValue
	label  string
	msg    protoreflect.Message
	scalar string
}

func (n *node) Content() fmtcmd.Cmd {
	if n.msg == nil {
		return fmtcmd.Literal(fmt.Sprintf("%s: %s", n.label, n.scalar))
	}
	if n.label == "" {
		return fmtcmd.Literal(fmt.Sprintf("<%s>", n.msg.Descriptor().FullName()))
	}
	return fmtcmd.Literal(fmt.Sprintf("%s: <%s>", n.label, n.msg.Descriptor().FullName()))
}

func (n *node) Placeholder() fmtcmd.Cmd { return n.Content() }

func (n *node) Expandable() bool { return n.msg != nil }

func (n *node) Children() []value.Value {
	if n.msg == nil {
		return nil
	}

	type fieldEntry struct {
		order int // the field's declaration index in its message
		label string
		child *node
	}
	var entries []fieldEntry
	n.msg.Range(func(fd protoreflect.FieldDescriptor, v protoreflect.Value) bool {
		order := fd.Index()
		switch {
		case fd.IsMap():
			m := v.Map()
			keys := make([]protoreflect.MapKey, 0)
			m.Range(func(k protoreflect.MapKey, _ protoreflect.Value) bool {
				keys = append(keys, k)
				return true
			})
			sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
			for _, k := range keys {
				label := fmt.Sprintf("%s[%s]", fd.Name(), k.String())
				entries = append(entries, fieldEntry{order, label, valueNode(label, fd.MapValue(), m.Get(k))})
			}
		case fd.IsList():
			list := v.List()
			for i := 0; i < list.Len(); i++ {
				label := fmt.Sprintf("%s[%d]", fd.Name(), i)
				entries = append(entries, fieldEntry{order, label, valueNode(label, fd, list.Get(i))})
			}
		default:
			label := string(fd.Name())
			entries = append(entries, fieldEntry{order, label, valueNode(label, fd, v)})
		}
		return true
	})
	// Range visits populated fields in no defined order; a stable sort by
	// declaration index restores it and keeps list/map entries in place.
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].order < entries[j].order })

	children := make([]value.Value, len(entries))
	for i, e := range entries {
		children[i] = e.child
	}
	return children
}

// valueNode builds the child node for one resolved field value: a
// message-valued field expands further, anything else renders as a
// formatted scalar leaf.
func valueNode(label string, fd protoreflect.FieldDescriptor, v protoreflect.Value) *node {
	switch fd.Kind() {
	case protoreflect.MessageKind, protoreflect.GroupKind:
		return &node{label: label, msg: v.Message()}
	case protoreflect.EnumKind:
		ev := fd.Enum().Values().ByNumber(v.Enum())
		if ev != nil {
			return &node{label: label, scalar: string(ev.Name())}
		}
		return &node{label: label, scalar: fmt.Sprintf("%d", v.Enum())}
	case protoreflect.BytesKind:
		return &node{label: label, scalar: fmt.Sprintf("%x", v.Bytes())}
	case protoreflect.StringKind:
		return &node{label: label, scalar: strconv.Quote(v.String())}
	default:
		return &node{label: label, scalar: fmt.Sprint(v.Interface())}
	}
}

// Source is a decoded textproto document wrapped as a value.Source. Its
// message descriptor is retained so Transform can re-marshal, filter,
// and reparse without the caller resupplying the schema.
type Source struct {
	desc protoreflect.MessageDescriptor
	root *node
}

// New parses descriptorSet (a serialized FileDescriptorSet) to resolve
// messageName, then parses data as that message's text format.
func New(descriptorSet []byte, messageName string, data []byte) (Source, error) {
	fds := &descriptorpb.FileDescriptorSet{}
	if err := proto.Unmarshal(descriptorSet, fds); err != nil {
		return Source{}, fmt.Errorf("parsing descriptor set: %w", err)
	}
	files, err := protodesc.NewFiles(fds)
	if err != nil {
		return Source{}, fmt.Errorf("building file registry: %w", err)
	}
	gd, err := files.FindDescriptorByName(protoreflect.FullName(messageName))
	if err != nil {
		return Source{}, fmt.Errorf("finding message %s: %w", messageName, err)
	}
	md, ok := gd.(protoreflect.MessageDescriptor)
	if !ok {
		return Source{}, fmt.Errorf("%s is not a message type", messageName)
	}

	msg := dynamicpb.NewMessage(md)
	if err := prototext.Unmarshal(data, msg); err != nil {
		return Source{}, fmt.Errorf("parsing text format: %w", err)
	}
	return Source{desc: md, root: &node{msg: msg}}, nil
}

func (s Source) Root() value.Value { return s.root }

// Transform re-encodes the current message as text format, pipes it
// through query as a shell command, and reparses its stdout against the
// same message descriptor.
func (s Source) Transform(query string) (value.Source, error) {
	encoded, err := prototext.Marshal(s.root.msg.Interface())
	if err != nil {
		return nil, fmt.Errorf("re-encoding text format: %w", err)
	}
	out, err := pipefilter.Run(context.Background(), query, encoded)
	if err != nil {
		return nil, err
	}
	msg := dynamicpb.NewMessage(s.desc)
	if err := prototext.Unmarshal(out, msg); err != nil {
		return nil, fmt.Errorf("reparsing filtered output: %w", err)
	}
	return Source{desc: s.desc, root: &node{msg: msg}}, nil
}

// Factory instantiates a textproto Source from a descriptor set file, a
// fully-qualified message name, and a text-format document (stdin when
// no document path is given).
type Factory struct {
	ReadFile  func(path string) ([]byte, error)
	ReadStdin func() ([]byte, error)
}

func (f Factory) Info() (name, description string) {
	return Name, "browse a Protocol Buffers text-format document"
}

func (f Factory) From(args []string) (value.Source, bool, error) {
	if len(args) < 2 {
		return nil, false, fmt.Errorf("usage: textproto <descriptor-set> <message-name> [file]")
	}
	descSet, err := f.ReadFile(args[0])
	if err != nil {
		return nil, false, fmt.Errorf("reading descriptor set: %w", err)
	}

	var data []byte
	if len(args) >= 3 {
		data, err = f.ReadFile(args[2])
	} else {
		data, err = f.ReadStdin()
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading text format input: %w", err)
	}

	src, err := New(descSet, args[1], data)
	if err != nil {
		return nil, false, err
	}
	return src, true, nil
}

func (Factory) Colors() []value.ColorPair { return nil }

func (Factory) Settings() value.Settings { return value.Settings{HideRoot: false} }
