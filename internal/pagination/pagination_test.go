package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	p, err := Parse("", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.Page)
	assert.Equal(t, int64(DefaultLimit), p.Limit)
	assert.Equal(t, "created_at", p.SortBy)
	assert.True(t, p.Desc)
}

func TestParseBadPageFallsBackToOne(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-3"} {
		p, err := Parse(raw, "10", "", "")
		require.NoError(t, err, "page=%q", raw)
		assert.Equal(t, int64(1), p.Page, "page=%q", raw)
	}
}

func TestParseRejectsBadLimit(t *testing.T) {
	for _, raw := range []string{"0", "-1", "ten"} {
		_, err := Parse("1", raw, "", "")
		assert.Error(t, err, "limit=%q", raw)
	}
}

func TestParseClampsLimit(t *testing.T) {
	p, err := Parse("1", "5000", "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(MaxLimit), p.Limit)
}

func TestParseSortDirection(t *testing.T) {
	p, err := Parse("1", "10", "views", "asc")
	require.NoError(t, err)
	assert.Equal(t, "views", p.SortBy)
	assert.False(t, p.Desc)
}

func TestSkip(t *testing.T) {
	p := Params{Page: 3, Limit: 10}
	assert.Equal(t, int64(20), p.Skip())
}

func TestWindowLastPartialPage(t *testing.T) {
	// 25 items, pageSize 10: page 3 holds the trailing 5 items.
	p := Params{Page: 3, Limit: 10}
	items := make([]int, 5)
	w, err := NewWindow(items, p, 25)
	require.NoError(t, err)
	assert.Len(t, w.Items, 5)
	assert.Equal(t, int64(3), w.TotalPages)
	assert.Equal(t, int64(25), w.TotalCount)
}

func TestWindowPastTheEnd(t *testing.T) {
	p := Params{Page: 4, Limit: 10}
	w, err := NewWindow[int](nil, p, 25)
	require.NoError(t, err)
	assert.NotNil(t, w.Items)
	assert.Len(t, w.Items, 0)
	assert.Equal(t, int64(3), w.TotalPages)
}

func TestWindowZeroLimitRejected(t *testing.T) {
	_, err := NewWindow[int](nil, Params{Page: 1, Limit: 0}, 10)
	assert.Error(t, err)
}
