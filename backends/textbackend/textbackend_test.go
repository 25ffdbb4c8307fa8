package textbackend_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tb/backends/textbackend"
	"tb/internal/fmtcmd"
)

func TestNew_DropsTrailingSeparatorEntry(t *testing.T) {
	src := textbackend.New([]byte("a\nb\nc\n"), "\n")
	children := src.Root().Children()
	require.Len(t, children, 3)
	require.Equal(t, "a", fmtcmd.Render(children[0].Content(), 0, ""))
	require.Equal(t, "b", fmtcmd.Render(children[1].Content(), 0, ""))
	require.Equal(t, "c", fmtcmd.Render(children[2].Content(), 0, ""))
}

func TestNew_KeepsEmptyEntryWithoutTrailingSeparator(t *testing.T) {
	src := textbackend.New([]byte("a,,b"), ",")
	children := src.Root().Children()
	require.Len(t, children, 3)
	require.Equal(t, "", fmtcmd.Render(children[1].Content(), 0, ""))
}

func TestLeaves_AreNotExpandable(t *testing.T) {
	src := textbackend.New([]byte("a\n"), "\n")
	require.False(t, src.Root().Children()[0].Expandable())
}

func TestTransform_FiltersLinesThroughCommand(t *testing.T) {
	src := textbackend.New([]byte("b\na\nc\n"), "\n")
	next, err := src.Transform("sort")
	require.NoError(t, err)
	children := next.Root().Children()
	require.Len(t, children, 3)
	require.Equal(t, "a", fmtcmd.Render(children[0].Content(), 0, ""))
	require.Equal(t, "b", fmtcmd.Render(children[1].Content(), 0, ""))
	require.Equal(t, "c", fmtcmd.Render(children[2].Content(), 0, ""))
}

func TestFactory_SettingsHideRoot(t *testing.T) {
	f := textbackend.NewFactory()
	require.True(t, f.Settings().HideRoot)
}

func TestFactory_FromParsesSeparatorFlag(t *testing.T) {
	f := textbackend.Factory{
		ReadFile: func(path string) ([]byte, error) {
			require.Equal(t, "list.txt", path)
			return []byte("a;b;c"), nil
		},
	}
	src, ok, err := f.From([]string{"-sep", ";", "list.txt"})
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, src.Root().Children(), 3)
}
