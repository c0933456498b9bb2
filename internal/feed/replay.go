package feed

import (
	"errors"
	"strconv"

	"github.com/rs/zerolog/log"

	"skoll/internal/book"
)

// Stats counts what a replay did with the feed.
type Stats struct {
	Submitted int
	Cancelled int
	Skipped   int // execution and halt rows, plus cancels of unseen orders
	Rejected  int // submissions the book refused
}

// Replay applies the event stream to the book in feed order. Submissions
// carry the feed's order reference number as both order id and trader id,
// so later cancel rows can address them. Both cancel flavours map to a
// full cancel: the core does not amend resting quantity. Execution rows
// are skipped, since the book emits its own matches as crossing orders
// arrive. Cancels of ids the book has never seen (orders resting from
// before the sample window) are skipped, not treated as errors.
func Replay(b *book.Book, events []Event) Stats {
	var stats Stats
	for _, ev := range events {
		switch ev.Type {
		case Submit:
			order := book.Order{
				ID:       strconv.FormatInt(ev.OrderID, 10),
				TraderID: int(ev.OrderID),
				Side:     ev.Direction,
				Price:    ev.Price,
				Quantity: ev.Size,
			}
			if err := b.Add(order); err != nil {
				stats.Rejected++
				log.Debug().Err(err).Int64("orderId", ev.OrderID).Msg("submission rejected")
				continue
			}
			stats.Submitted++
		case CancelPartial, Delete:
			if err := b.Cancel(strconv.FormatInt(ev.OrderID, 10)); err != nil {
				if errors.Is(err, book.ErrUnknownOrder) {
					stats.Skipped++
					continue
				}
				stats.Rejected++
				continue
			}
			stats.Cancelled++
		default:
			stats.Skipped++
		}
	}
	return stats
}
