package prompt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tb/internal/prompt"
)

func TestInsert_AppendsAtCursorAndFiresCallback(t *testing.T) {
	var seen []string
	p := prompt.New("/", 20, func(text string) { seen = append(seen, text) })

	p.Insert("abc")
	require.Equal(t, "abc", p.Text())
	require.Equal(t, []string{"", "abc"}, seen)
}

func TestBackspaceAndDelete(t *testing.T) {
	p := prompt.New("/", 20, nil)
	p.Insert("abc")
	p.Backspace()
	require.Equal(t, "ab", p.Text())

	p.Home()
	p.Delete()
	require.Equal(t, "b", p.Text())
}

func TestHistory_UpThenDownRestoresDraft(t *testing.T) {
	p := prompt.New("/", 20, nil)
	p.Insert("first")
	p.Accept()
	p.Reset("")
	p.Insert("second")
	p.Accept()
	p.Reset("")

	p.Insert("draft")
	p.HistoryUp()
	require.Equal(t, "second", p.Text())
	p.HistoryUp()
	require.Equal(t, "first", p.Text())
	p.HistoryDown()
	require.Equal(t, "second", p.Text())
	p.HistoryDown()
	require.Equal(t, "draft", p.Text())
}

func TestCancel_ReturnsEmptyString(t *testing.T) {
	p := prompt.New("/", 20, nil)
	p.Insert("abc")
	require.Equal(t, "", p.Cancel())
}

func TestAccept_SkipsDuplicateConsecutiveHistory(t *testing.T) {
	p := prompt.New("/", 20, nil)
	p.Insert("same")
	p.Accept()
	p.Reset("")
	p.Insert("same")
	p.Accept()
	p.Reset("")

	p.HistoryUp()
	require.Equal(t, "same", p.Text(), "a second identical entry must not duplicate in history")
	p.HistoryUp()
	require.Equal(t, "same", p.Text(), "there must be only one history entry to browse to")
}
