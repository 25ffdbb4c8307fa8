package textprotobackend_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	"tb/backends/textprotobackend"
	"tb/internal/fmtcmd"
)

func strPtr(s string) *string { return &s }
func i32Ptr(i int32) *int32   { return &i }

func optional(t descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto_Type { return &t }
func label(l descriptorpb.FieldDescriptorProto_Label) *descriptorpb.FieldDescriptorProto_Label   { return &l }

// personDescriptorSet builds a minimal FileDescriptorSet for:
//
//	message Person {
//	  string name = 1;
//	  int32 age = 2;
//	  repeated string tags = 3;
//	}
func personDescriptorSet(t *testing.T) []byte {
	t.Helper()
	fd := &descriptorpb.FileDescriptorProto{
		Name:    strPtr("person.proto"),
		Package: strPtr("test"),
		Syntax:  strPtr("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: strPtr("Person"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{
						Name:     strPtr("name"),
						Number:   i32Ptr(1),
						Label:    label(descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL),
						Type:     optional(descriptorpb.FieldDescriptorProto_TYPE_STRING),
						JsonName: strPtr("name"),
					},
					{
						Name:     strPtr("age"),
						Number:   i32Ptr(2),
						Label:    label(descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL),
						Type:     optional(descriptorpb.FieldDescriptorProto_TYPE_INT32),
						JsonName: strPtr("age"),
					},
					{
						Name:     strPtr("tags"),
						Number:   i32Ptr(3),
						Label:    label(descriptorpb.FieldDescriptorProto_LABEL_REPEATED),
						Type:     optional(descriptorpb.FieldDescriptorProto_TYPE_STRING),
						JsonName: strPtr("tags"),
					},
				},
			},
		},
	}
	fds := &descriptorpb.FileDescriptorSet{File: []*descriptorpb.FileDescriptorProto{fd}}
	b, err := proto.Marshal(fds)
	require.NoError(t, err)
	return b
}

func TestNew_ParsesScalarAndRepeatedFields(t *testing.T) {
	descSet := personDescriptorSet(t)
	src, err := textprotobackend.New(descSet, "test.Person", []byte(`name: "Ada" age: 36 tags: "eng" tags: "admin"`))
	require.NoError(t, err)

	children := src.Root().Children()
	require.Len(t, children, 4)
	require.Equal(t, `name: "Ada"`, fmtcmd.Render(children[0].Content(), 0, ""))
	require.Equal(t, "age: 36", fmtcmd.Render(children[1].Content(), 0, ""))
	require.Equal(t, `tags[0]: "eng"`, fmtcmd.Render(children[2].Content(), 0, ""))
	require.Equal(t, `tags[1]: "admin"`, fmtcmd.Render(children[3].Content(), 0, ""))
}

func TestNew_UnknownMessageNameErrors(t *testing.T) {
	descSet := personDescriptorSet(t)
	_, err := textprotobackend.New(descSet, "test.Nonexistent", []byte(``))
	require.Error(t, err)
}

func TestTransform_FiltersTextFormatThroughCommand(t *testing.T) {
	descSet := personDescriptorSet(t)
	src, err := textprotobackend.New(descSet, "test.Person", []byte(`name: "Ada" age: 36`))
	require.NoError(t, err)

	next, err := src.Transform("cat")
	require.NoError(t, err)
	children := next.Root().Children()
	require.Len(t, children, 2)
}

func TestFactory_FromRequiresDescriptorSetAndMessageName(t *testing.T) {
	f := textprotobackend.Factory{}
	_, ok, err := f.From([]string{"only-one-arg"})
	require.Error(t, err)
	require.False(t, ok)
}
