package events

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseQueryDefaults(t *testing.T) {
	query := ParseQuery(url.Values{})

	require.Equal(t, 50, query.Limit)
	require.Equal(t, 0, query.Offset)
	require.Empty(t, query.Where)
	require.Equal(t, SortInsertion, query.Sort)
}

func TestParseQuerySanitizes(t *testing.T) {
	query := ParseQuery(url.Values{
		"LIMIT":  {"25abc"},
		"OFFSET": {"10"},
		"WHERE":  {"2013-02-04T22:44:30.652Z"},
		"SORT":   {"-date"},
	})

	require.Equal(t, 25, query.Limit)
	require.Equal(t, 10, query.Offset)
	require.Equal(t, "2013-02-04T22:44:30.652Z", query.Where)
	require.Equal(t, SortDateDesc, query.Sort)
}

func TestParseQueryGarbageFallsBack(t *testing.T) {
	query := ParseQuery(url.Values{
		"LIMIT":  {"abc"},
		"OFFSET": {"0"}, // zero means no value supplied
		"WHERE":  {"garbage"},
		"SORT":   {"name"}, // only date is sortable
	})

	require.Equal(t, 50, query.Limit)
	require.Equal(t, 0, query.Offset)
	require.Empty(t, query.Where)
	require.Equal(t, SortInsertion, query.Sort)
}

func TestParseQuerySortAscending(t *testing.T) {
	query := ParseQuery(url.Values{"SORT": {"date"}})
	require.Equal(t, SortDateAsc, query.Sort)
}
