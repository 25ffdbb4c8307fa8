package fsbackend_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"tb/backends/fsbackend"
	"tb/internal/fmtcmd"
)

func writeTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "a"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a", "c.txt"), []byte("hi"), 0o644))
	return dir
}

func TestNew_RootIsExpandableDirectory(t *testing.T) {
	dir := writeTree(t)
	src, err := fsbackend.New(dir)
	require.NoError(t, err)
	require.True(t, src.Root().Expandable())
}

func TestChildren_DirectoriesSortedAndSuffixed(t *testing.T) {
	dir := writeTree(t)
	src, err := fsbackend.New(dir)
	require.NoError(t, err)

	children := src.Root().Children()
	require.Len(t, children, 2)
	require.Equal(t, "a/", fmtcmd.Render(children[0].Content(), 0, ""))
	require.True(t, children[0].Expandable())
	require.False(t, children[1].Expandable())
}

func TestChildren_MissingDirectoryReturnsErrorNode(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "gone")
	src, err := fsbackend.New(missing)
	require.NoError(t, err)

	children := src.Root().Children()
	require.Len(t, children, 1)
	require.False(t, children[0].Expandable())
}

func TestTransform_ListsPathsThroughCommand(t *testing.T) {
	dir := writeTree(t)
	src, err := fsbackend.New(dir)
	require.NoError(t, err)

	next, err := src.Transform("sort")
	require.NoError(t, err)
	children := next.Root().Children()
	require.Len(t, children, 3)
	require.Equal(t, "a", fmtcmd.Render(children[0].Content(), 0, ""))
	require.Equal(t, filepath.Join("a", "c.txt"), fmtcmd.Render(children[1].Content(), 0, ""))
	require.Equal(t, "b.txt", fmtcmd.Render(children[2].Content(), 0, ""))
}

func TestFactory_FromDefaultsToCurrentDirectory(t *testing.T) {
	f := fsbackend.Factory{}
	src, ok, err := f.From(nil)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, src.Root())
}

func TestFactory_FromUsesGivenDirectory(t *testing.T) {
	dir := writeTree(t)
	f := fsbackend.Factory{}
	src, ok, err := f.From([]string{dir})
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, src.Root().Children(), 2)
}
