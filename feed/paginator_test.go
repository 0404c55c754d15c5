package feed

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediarepo/admin-api/domain"
)

type staticSource struct {
	items []*domain.Media
	err   error
}

func (s *staticSource) ListEligible(context.Context, domain.MediaFilter) ([]*domain.Media, error) {
	if s.err != nil {
		return nil, s.err
	}
	// Return a fresh slice so the paginator's sort cannot leak between
	// calls and hide nondeterminism.
	out := make([]*domain.Media, len(s.items))
	copy(out, s.items)
	return out, nil
}

func mediaSet(ids ...string) []*domain.Media {
	items := make([]*domain.Media, 0, len(ids))
	for _, id := range ids {
		items = append(items, &domain.Media{ID: id, Label: "item " + id})
	}
	return items
}

func ids(items []*domain.Media) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestPageRequiresSeed(t *testing.T) {
	p := NewPaginator(&staticSource{items: mediaSet("a")})
	_, err := p.Page(context.Background(), Query{})
	assert.ErrorIs(t, err, ErrSeedRequired)
}

func TestPageOrderIsDeterministicPerSeed(t *testing.T) {
	p := NewPaginator(&staticSource{items: mediaSet("a", "b", "c", "d", "e")})

	first, err := p.Page(context.Background(), Query{Seed: "abc", Take: 30})
	require.NoError(t, err)
	second, err := p.Page(context.Background(), Query{Seed: "abc", Take: 30})
	require.NoError(t, err)
	assert.Equal(t, ids(first.Items), ids(second.Items))

	other, err := p.Page(context.Background(), Query{Seed: "xyz", Take: 30})
	require.NoError(t, err)
	assert.ElementsMatch(t, ids(first.Items), ids(other.Items))
}

func TestPaginationConcatenationMatchesFullOrder(t *testing.T) {
	p := NewPaginator(&staticSource{items: mediaSet("a", "b", "c", "d", "e")})
	ctx := context.Background()

	full, err := p.Page(ctx, Query{Seed: "abc", Take: 30})
	require.NoError(t, err)
	require.Len(t, full.Items, 5)
	assert.Nil(t, full.NextCursor, "a short page ends the results")

	// take=2 across three pages: 2 + 2 + 1.
	var walked []string
	cursor := 0
	for pageNum := 1; ; pageNum++ {
		page, err := p.Page(ctx, Query{Seed: "abc", Cursor: cursor, Take: 2})
		require.NoError(t, err)
		walked = append(walked, ids(page.Items)...)

		switch pageNum {
		case 1, 2:
			require.Len(t, page.Items, 2)
			require.NotNil(t, page.NextCursor)
			assert.Equal(t, cursor+2, *page.NextCursor)
		case 3:
			require.Len(t, page.Items, 1)
			require.Nil(t, page.NextCursor)
		}
		if page.NextCursor == nil {
			break
		}
		cursor = *page.NextCursor
	}

	assert.Equal(t, ids(full.Items), walked, "pages must concatenate with no duplicates or gaps")
}

func TestExactMultipleNeedsOneExtraEmptyPage(t *testing.T) {
	p := NewPaginator(&staticSource{items: mediaSet("a", "b", "c", "d")})
	ctx := context.Background()

	page, err := p.Page(ctx, Query{Seed: "s", Cursor: 2, Take: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.NotNil(t, page.NextCursor, "a full last page still advertises a cursor")

	// The follow-up request legitimately returns zero items.
	page, err = p.Page(ctx, Query{Seed: "s", Cursor: *page.NextCursor, Take: 2})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Nil(t, page.NextCursor)
}

func TestTakeClamping(t *testing.T) {
	items := mediaSet()
	for i := 0; i < 50; i++ {
		items = append(items, &domain.Media{ID: fmt.Sprintf("m%02d", i)})
	}
	p := NewPaginator(&staticSource{items: items})
	ctx := context.Background()

	page, err := p.Page(ctx, Query{Seed: "s", Take: 100})
	require.NoError(t, err)
	assert.Len(t, page.Items, MaxTake)

	page, err = p.Page(ctx, Query{Seed: "s"})
	require.NoError(t, err)
	assert.Len(t, page.Items, DefaultTake)

	page, err = p.Page(ctx, Query{Seed: "s", Take: -3})
	require.NoError(t, err)
	assert.Len(t, page.Items, MinTake)
}

func TestCursorBeyondEnd(t *testing.T) {
	p := NewPaginator(&staticSource{items: mediaSet("a", "b")})

	page, err := p.Page(context.Background(), Query{Seed: "s", Cursor: 10, Take: 2})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Nil(t, page.NextCursor)
}

func TestNegativeCursorTreatedAsZero(t *testing.T) {
	p := NewPaginator(&staticSource{items: mediaSet("a", "b", "c")})

	fromZero, err := p.Page(context.Background(), Query{Seed: "s", Cursor: 0, Take: 30})
	require.NoError(t, err)
	fromNegative, err := p.Page(context.Background(), Query{Seed: "s", Cursor: -7, Take: 30})
	require.NoError(t, err)
	assert.Equal(t, ids(fromZero.Items), ids(fromNegative.Items))
}
