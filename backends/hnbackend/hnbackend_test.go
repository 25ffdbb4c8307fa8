package hnbackend

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tb/internal/fmtcmd"
)

type stubFetcher struct {
	items map[int]item
	calls map[int]int
}

func (s *stubFetcher) fetch(id int) (item, error) {
	if s.calls == nil {
		s.calls = map[int]int{}
	}
	s.calls[id]++
	it, ok := s.items[id]
	if !ok {
		return item{}, fmt.Errorf("no such item %d", id)
	}
	return it, nil
}

func TestNode_StorySummary(t *testing.T) {
	f := &stubFetcher{items: map[int]item{
		1: {ID: 1, Type: "story", Title: "Show HN", Score: 42, Descendants: 3, Kids: []int{2}},
	}}
	n := &node{id: 1, f: f}
	require.Equal(t, "Show HN (42 points, 3 comments)", fmtcmd.Render(n.Content(), 0, ""))
	require.True(t, n.Expandable())
}

func TestNode_CommentSummaryTruncatesLongText(t *testing.T) {
	long := ""
	for i := 0; i < 200; i++ {
		long += "x"
	}
	f := &stubFetcher{items: map[int]item{
		1: {ID: 1, Type: "comment", By: "alice", Text: long},
	}}
	n := &node{id: 1, f: f}
	rendered := fmtcmd.Render(n.Content(), 0, "")
	require.Contains(t, rendered, "alice: ")
	require.Contains(t, rendered, "...")
}

func TestNode_ChildrenMapToKids(t *testing.T) {
	f := &stubFetcher{items: map[int]item{
		1: {ID: 1, Type: "story", Kids: []int{2, 3}},
		2: {ID: 2, Type: "comment", By: "bob", Text: "hi"},
		3: {ID: 3, Type: "comment", By: "carl", Text: "hey"},
	}}
	n := &node{id: 1, f: f}
	children := n.Children()
	require.Len(t, children, 2)
}

func TestNode_FetchErrorSurfacesAsErrorContent(t *testing.T) {
	f := &stubFetcher{items: map[int]item{}}
	n := &node{id: 99, f: f}
	require.False(t, n.Expandable())
	rendered := fmtcmd.Render(n.Content(), 0, "")
	require.Contains(t, rendered, "no such item")
}

func TestCachingFetcher_OnlyFetchesOncePerID(t *testing.T) {
	inner := &stubFetcher{items: map[int]item{1: {ID: 1, Type: "story", Title: "t"}}}
	cf := newCachingFetcher(inner, time.Minute)

	_, err := cf.fetch(1)
	require.NoError(t, err)
	_, err = cf.fetch(1)
	require.NoError(t, err)
	require.Equal(t, 1, inner.calls[1])
}

func TestFactory_FromRequiresItemID(t *testing.T) {
	f := Factory{}
	_, ok, err := f.From(nil)
	require.Error(t, err)
	require.False(t, ok)
}

func TestFactory_FromRejectsNonNumericID(t *testing.T) {
	f := Factory{}
	_, ok, err := f.From([]string{"abc"})
	require.Error(t, err)
	require.False(t, ok)
}
