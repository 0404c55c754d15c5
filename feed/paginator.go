// Package feed implements the public feed's deterministic
// shuffle-and-page ordering. The full order is a pure function of
// (item id, seed): items are sorted by md5(id + seed), so the same seed
// reproduces the same sequence on every call without any stored
// shuffle state.
package feed

import (
	"bytes"
	"context"
	"crypto/md5"
	"errors"
	"sort"

	"github.com/mediarepo/admin-api/domain"
)

const (
	MinTake     = 1
	MaxTake     = 30
	DefaultTake = 10
)

// ErrSeedRequired is returned when a page is requested without a seed;
// the ordering is undefined without one.
var ErrSeedRequired = errors.New("feed: seed is required")

// ItemSource lists the feed-eligible items for a filter.
type ItemSource interface {
	ListEligible(ctx context.Context, filter domain.MediaFilter) ([]*domain.Media, error)
}

// Query describes one page request.
type Query struct {
	Seed   string
	Filter domain.MediaFilter
	Cursor int
	// Take == 0 means unspecified and selects DefaultTake; any other
	// value is clamped to [MinTake, MaxTake].
	Take int
}

// Page is one slice of the deterministic ordering. NextCursor is nil
// when this page ended the results; a full page always carries a
// cursor, even when it happens to be the last one.
type Page struct {
	Items      []*domain.Media
	NextCursor *int
}

// Paginator pages a deterministic shuffle of an item source.
type Paginator struct {
	source ItemSource
}

func NewPaginator(source ItemSource) *Paginator {
	return &Paginator{source: source}
}

// Page evaluates the ordering for q.Seed over all eligible items and
// returns the slice at q.Cursor.
func (p *Paginator) Page(ctx context.Context, q Query) (*Page, error) {
	if q.Seed == "" {
		return nil, ErrSeedRequired
	}

	cursor := q.Cursor
	if cursor < 0 {
		cursor = 0
	}

	take := q.Take
	if take == 0 {
		take = DefaultTake
	}
	if take < MinTake {
		take = MinTake
	}
	if take > MaxTake {
		take = MaxTake
	}

	items, err := p.source.ListEligible(ctx, q.Filter)
	if err != nil {
		return nil, err
	}

	sortBySeed(items, q.Seed)

	if cursor > len(items) {
		cursor = len(items)
	}
	end := cursor + take
	if end > len(items) {
		end = len(items)
	}
	page := &Page{Items: items[cursor:end]}

	if len(page.Items) == take {
		next := cursor + len(page.Items)
		page.NextCursor = &next
	}
	return page, nil
}

// sortBySeed orders items by md5(id + seed), ties broken by id so the
// order is total.
func sortBySeed(items []*domain.Media, seed string) {
	keys := make(map[string][md5.Size]byte, len(items))
	for _, item := range items {
		keys[item.ID] = md5.Sum([]byte(item.ID + seed))
	}
	sort.Slice(items, func(i, j int) bool {
		ki, kj := keys[items[i].ID], keys[items[j].ID]
		if c := bytes.Compare(ki[:], kj[:]); c != 0 {
			return c < 0
		}
		return items[i].ID < items[j].ID
	})
}
