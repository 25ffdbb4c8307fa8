// Package hnbackend wraps a Hacker News item tree (a story and its
// comments) as a value.Value tree, fetching items over HTTP and
// caching them for five minutes so re-expanding a thread visited
// shortly before doesn't re-fetch it.
package hnbackend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"tb/internal/fmtcmd"
	"tb/internal/value"
)

// Name is this backend's factory name; the CLI shell also resolves it
// from an executable named "hnb" (Name + "b").
const Name = "hn"

const apiBase = "https://hacker-news.firebaseio.com/v0/item/"

// item mirrors the fields of a Hacker News API item this backend
// renders; fields it never displays (e.g. "dead", "deleted") are
// dropped rather than modeled.
type item struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	By          string `json:"by"`
	Text        string `json:"text"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Score       int    `json:"score"`
	Descendants int    `json:"descendants"`
	Kids        []int  `json:"kids"`
}

// fetcher retrieves one item by id. Production code uses httpFetcher;
// tests substitute a stub.
type fetcher interface {
	fetch(id int) (item, error)
}

type httpFetcher struct{ client *http.Client }

func (f httpFetcher) fetch(id int) (item, error) {
	url := fmt.Sprintf("%s%d.json", apiBase, id)
	resp, err := f.client.Get(url)
	if err != nil {
		return item{}, fmt.Errorf("fetching item %d: %w", id, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return item{}, fmt.Errorf("fetching item %d: status %d", id, resp.StatusCode)
	}
	var it item
	if err := json.NewDecoder(resp.Body).Decode(&it); err != nil {
		return item{}, fmt.Errorf("decoding item %d: %w", id, err)
	}
	return it, nil
}

// cachingFetcher memoizes fetch by id in a TTL cache so repeated
// expansion of the same thread within one session doesn't re-fetch it.
type cachingFetcher struct {
	inner fetcher
	c     *cache.Cache
}

func newCachingFetcher(inner fetcher, ttl time.Duration) *cachingFetcher {
	return &cachingFetcher{inner: inner, c: cache.New(ttl, ttl*2)}
}

func (f *cachingFetcher) fetch(id int) (item, error) {
	key := strconv.Itoa(id)
	if cached, ok := f.c.Get(key); ok {
		return cached.(item), nil
	}
	it, err := f.inner.fetch(id)
	if err != nil {
		return item{}, err
	}
	f.c.Set(key, it, cache.DefaultExpiration)
	return it, nil
}

type node struct {
	value.BaseValue
	id int
	f  fetcher
}

func (n *node) Content() fmtcmd.Cmd {
	it, err := n.f.fetch(n.id)
	if err != nil {
		return fmtcmd.RawColor(value.ErrorColor, fmtcmd.Literal(err.Error()))
	}
	return fmtcmd.Literal(summarize(it))
}

func (n *node) Placeholder() fmtcmd.Cmd { return n.Content() }

func (n *node) Expandable() bool {
	it, err := n.f.fetch(n.id)
	return err == nil && len(it.Kids) > 0
}

func (n *node) Children() []value.Value {
	it, err := n.f.fetch(n.id)
	if err != nil {
		return []value.Value{value.NewError(err.Error())}
	}
	children := make([]value.Value, len(it.Kids))
	for i, kid := range it.Kids {
		children[i] = &node{id: kid, f: n.f}
	}
	return children
}

func summarize(it item) string {
	switch it.Type {
	case "story", "job":
		return fmt.Sprintf("%s (%d points, %d comments)", it.Title, it.Score, it.Descendants)
	case "comment":
		return fmt.Sprintf("%s: %s", it.By, truncate(it.Text, 120))
	default:
		return fmt.Sprintf("#%d", it.ID)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// Source is a Hacker News item tree wrapped as a value.Source. Transform
// is unsupported; the API has no query surface to pipe through.
type Source struct {
	root *node
}

// New returns a Source rooted at the item with the given id, fetching
// and caching items through a TTL cache shared across the tree.
func New(id int) Source {
	f := newCachingFetcher(httpFetcher{client: &http.Client{Timeout: 10 * time.Second}}, 5*time.Minute)
	return Source{root: &node{id: id, f: f}}
}

func (s Source) Root() value.Value { return s.root }

func (s Source) Transform(query string) (value.Source, error) {
	return nil, fmt.Errorf("hn backend has no transform support")
}

// Factory instantiates an hn Source rooted at the item id given as the
// first argument (Hacker News front page top story id otherwise is not
// resolved automatically; an id is required).
type Factory struct{}

func (Factory) Info() (name, description string) {
	return Name, "browse a Hacker News item tree"
}

func (Factory) From(args []string) (value.Source, bool, error) {
	if len(args) == 0 {
		return nil, false, fmt.Errorf("usage: hn <item-id>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, false, fmt.Errorf("invalid item id %q: %w", args[0], err)
	}
	return New(id), true, nil
}

func (Factory) Colors() []value.ColorPair { return nil }

func (Factory) Settings() value.Settings { return value.Settings{HideRoot: false} }
