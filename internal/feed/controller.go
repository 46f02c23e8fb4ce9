// Package feed implements the paging state machine shared by the browse and
// search listings. A Controller is a pure, synchronous state machine: the TUI
// layer runs the actual fetches as background commands and feeds results back
// through ApplyPage / ApplyError. All calls happen on the single update
// goroutine, so no locking is needed; the in-flight gate and the generation
// counter are what guard against overlapping and superseded fetches.
package feed

import (
	"context"

	"github.com/gmorais/marquee/internal/tmdb"
)

// Kind identifies which listing a controller drives.
type Kind int

const (
	KindBrowse Kind = iota
	KindSearch
)

func (k Kind) String() string {
	if k == KindSearch {
		return "search"
	}
	return "browse"
}

// Source fetches one page for a feed. The browse source ignores query.
type Source interface {
	FetchPage(ctx context.Context, query string, page int) (tmdb.Page, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, query string, page int) (tmdb.Page, error)

func (f SourceFunc) FetchPage(ctx context.Context, query string, page int) (tmdb.Page, error) {
	return f(ctx, query, page)
}

// Request identifies one sanctioned fetch. ApplyPage and ApplyError discard
// requests whose generation no longer matches the controller's, so a result
// that resolves after a query reset cannot touch the successor's state.
type Request struct {
	Kind       Kind
	Generation int
	Page       int
	Query      string
}

// QueryOutcome reports what a SetQuery call decided.
type QueryOutcome int

const (
	// QueryUnchanged: same query as the active one; no refetch.
	QueryUnchanged QueryOutcome = iota
	// QueryCleared: empty query; the coordinator should switch back to browse.
	QueryCleared
	// QueryCommitted: state was fully reset; the caller should fetch page 1.
	QueryCommitted
)

type Controller struct {
	kind   Kind
	source Source

	items      []tmdb.Movie
	nextPage   int
	totalPages int
	totalKnown bool
	inFlight   bool
	query      string
	generation int
	empty      bool
}

func New(kind Kind, source Source) *Controller {
	return &Controller{
		kind:     kind,
		source:   source,
		nextPage: 1,
	}
}

func (c *Controller) Kind() Kind           { return c.kind }
func (c *Controller) Source() Source       { return c.source }
func (c *Controller) Items() []tmdb.Movie  { return c.items }
func (c *Controller) Len() int             { return len(c.items) }
func (c *Controller) Query() string        { return c.query }
func (c *Controller) InFlight() bool       { return c.inFlight }
func (c *Controller) NextPage() int        { return c.nextPage }

// Empty reports the terminal no-results state: a committed search query whose
// first page came back with zero items.
func (c *Controller) Empty() bool { return c.empty }

// TotalPages returns the page count learned from the first successful fetch.
func (c *Controller) TotalPages() (int, bool) { return c.totalPages, c.totalKnown }

// HasMore reports whether a continuation trigger could still fetch anything.
func (c *Controller) HasMore() bool {
	if c.empty {
		return false
	}
	if c.totalKnown && c.nextPage > c.totalPages {
		return false
	}
	return true
}

// SetQuery commits a search query. Only meaningful on the search controller:
// an empty query signals the coordinator to switch back to browse, a repeat
// of the active query is a no-op, and anything else resets all feed state so
// the caller can fetch page 1. A reset bumps the generation, which orphans
// any fetch still in flight for the previous query.
func (c *Controller) SetQuery(query string) QueryOutcome {
	if c.kind != KindSearch {
		return QueryUnchanged
	}
	if query == "" {
		return QueryCleared
	}
	if query == c.query {
		return QueryUnchanged
	}
	c.reset()
	c.query = query
	return QueryCommitted
}

func (c *Controller) reset() {
	c.items = nil
	c.nextPage = 1
	c.totalPages = 0
	c.totalKnown = false
	c.inFlight = false
	c.empty = false
	c.generation++
}

// BeginFetch gates a continuation. It refuses while a fetch is in flight,
// once the learned page count is exhausted, and on the search controller
// before any query is committed. On success the controller is marked in
// flight and the returned Request must be settled with exactly one
// ApplyPage or ApplyError call.
func (c *Controller) BeginFetch() (Request, bool) {
	if c.inFlight {
		return Request{}, false
	}
	if !c.HasMore() {
		return Request{}, false
	}
	if c.kind == KindSearch && c.query == "" {
		return Request{}, false
	}
	c.inFlight = true
	return Request{
		Kind:       c.kind,
		Generation: c.generation,
		Page:       c.nextPage,
		Query:      c.query,
	}, true
}

// ApplyPage settles a successful fetch. Stale requests (superseded by a
// reset) are discarded wholesale and nil is returned. Otherwise the new
// items are appended in arrival order, never de-duplicated or reordered,
// and returned so the caller can render just the appended slice. The page
// cursor advances only when the fetch returned at least one item.
func (c *Controller) ApplyPage(req Request, page tmdb.Page) []tmdb.Movie {
	if req.Generation != c.generation {
		return nil
	}
	c.inFlight = false
	c.totalPages = page.TotalPages
	c.totalKnown = true

	if len(page.Results) == 0 {
		if req.Page == 1 && c.kind == KindSearch {
			c.empty = true
		}
		return nil
	}

	c.items = append(c.items, page.Results...)
	c.nextPage++
	return page.Results
}

// ApplyError settles a failed fetch. Items and cursor stay untouched; the
// in-flight gate is released so the next trigger can retry. Returns false
// when the request was stale and the error should not be surfaced.
func (c *Controller) ApplyError(req Request, err error) bool {
	if req.Generation != c.generation {
		return false
	}
	c.inFlight = false
	return true
}
