package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skoll/internal/book"
)

func TestBook(t *testing.T) {
	b, err := book.New("MSFT", 1000, book.Tree)
	require.NoError(t, err)

	require.NoError(t, b.Add(book.Order{TraderID: 1, Side: book.Sell, Price: 101, Quantity: 10}))
	require.NoError(t, b.Add(book.Order{TraderID: 2, Side: book.Buy, Price: 99, Quantity: 7}))
	require.NoError(t, b.Add(book.Order{TraderID: 3, Side: book.Buy, Price: 101, Quantity: 4}))

	var buf bytes.Buffer
	Book(&buf, b, 10)
	out := buf.String()

	assert.Contains(t, out, "MSFT")
	assert.Contains(t, out, "Bids")
	assert.Contains(t, out, "Asks")
	assert.Contains(t, out, "Matches")
	// The aggregated ask level after the partial fill.
	assert.Contains(t, out, "101")
	assert.Contains(t, out, "6")
	// Header row from the level schema.
	assert.Contains(t, out, "NUMORDERS")
}

func TestLevels_Empty(t *testing.T) {
	var buf bytes.Buffer
	Levels(&buf, "Bids", nil)
	assert.Contains(t, buf.String(), "Bids")
}
