package batch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSelectionPlainList(t *testing.T) {
	ids, err := ParseSelection(strings.NewReader("item-1\nitem-2\nitem-3\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"item-1", "item-2", "item-3"}, ids)
}

func TestParseSelectionCSVWithHeader(t *testing.T) {
	input := "item_id,title\nitem-1,Customer batch\nitem-2,Orders batch\n"
	ids, err := ParseSelection(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, []string{"item-1", "item-2"}, ids)
}

func TestParseSelectionDeduplicates(t *testing.T) {
	ids, err := ParseSelection(strings.NewReader("id\nitem-1\nitem-1\nitem-2\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"item-1", "item-2"}, ids)
}

func TestParseSelectionSkipsBlankLines(t *testing.T) {
	ids, err := ParseSelection(strings.NewReader("item-1\n\n  \nitem-2\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"item-1", "item-2"}, ids)
}

func TestParseSelectionEmptyInput(t *testing.T) {
	ids, err := ParseSelection(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, ids)
}
