// Package render writes terminal tables for a book: top-of-book levels on
// both sides and the latest executions.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"skoll/internal/book"
)

// Book writes a header line followed by the book's bids, asks and latest
// matches.
func Book(w io.Writer, b *book.Book, levels int) {
	fmt.Fprintf(w, "%s  best bid %d  best ask %d  spread %d\n",
		b.Name(), b.BestBid(), b.BestAsk(), b.Spread())
	Levels(w, "Bids", b.TopBids(levels))
	Levels(w, "Asks", b.TopAsks(levels))
	Matches(w, b.RecentMatches(levels))
}

// Levels writes one side's aggregated levels, best first.
func Levels(w io.Writer, title string, levels []book.Level) {
	fmt.Fprintln(w, title)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Price", "Quantity", "NumOrders"})
	for _, lvl := range levels {
		table.Append([]string{
			strconv.Itoa(lvl.Price),
			strconv.Itoa(lvl.Quantity),
			strconv.Itoa(lvl.NumOrders),
		})
	}
	table.Render()
}

// Matches writes executions oldest first.
func Matches(w io.Writer, matches []book.Match) {
	fmt.Fprintln(w, "Matches")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Id", "BuyTraderId", "SellTraderId", "Price", "Quantity"})
	for _, m := range matches {
		table.Append([]string{
			m.ID,
			strconv.Itoa(m.BuyTraderID),
			strconv.Itoa(m.SellTraderID),
			strconv.Itoa(m.Price),
			strconv.Itoa(m.Quantity),
		})
	}
	table.Render()
}
