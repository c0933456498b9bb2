package book

import "fmt"

// Book is a single-instrument limit order book under price-time priority.
// All methods run sequentially to completion; a book shares no state with
// other books, and a caller layering concurrent producers on top must
// serialize submissions into it.
type Book struct {
	name     string
	maxPrice int

	bids sideIndex
	asks sideIndex

	// Every resting order on either side, by id. The queues own the
	// orders; this map is the O(1) locator for cancels.
	orders map[string]*Order

	// Append-only execution log, in execution order.
	matches []Match

	// Side liquidity bookkeeping.
	bidQuantity int
	askQuantity int
	bidOrders   int
	askOrders   int
}

// New constructs an empty book for the named instrument, quoting integer
// tick prices in [0, maxPrice], with the chosen index back-end.
func New(name string, maxPrice int, backend Backend) (*Book, error) {
	if maxPrice < 1 {
		return nil, fmt.Errorf("max price %d: %w", maxPrice, ErrInvalidPrice)
	}
	bids, err := newSideIndex(backend, Buy, maxPrice)
	if err != nil {
		return nil, err
	}
	asks, err := newSideIndex(backend, Sell, maxPrice)
	if err != nil {
		return nil, err
	}
	return &Book{
		name:     name,
		maxPrice: maxPrice,
		bids:     bids,
		asks:     asks,
		orders:   make(map[string]*Order),
	}, nil
}

func (b *Book) Name() string {
	return b.name
}

func (b *Book) MaxPrice() int {
	return b.maxPrice
}

// Add submits a limit order. The order is crossed against the opposite
// side while its price reaches the opposite best; any residual quantity
// rests on its own side. Validation runs before any state change, so a
// rejected submission leaves the book exactly as it was.
func (b *Book) Add(order Order) error {
	if order.Price < 0 || order.Price > b.maxPrice {
		return fmt.Errorf("price %d outside [0, %d]: %w", order.Price, b.maxPrice, ErrInvalidPrice)
	}
	if order.Quantity <= 0 {
		return fmt.Errorf("quantity %d: %w", order.Quantity, ErrInvalidQuantity)
	}
	if order.ID == "" {
		order.ID = newID()
	} else if _, ok := b.orders[order.ID]; ok {
		return fmt.Errorf("order %s: %w", order.ID, ErrDuplicateOrder)
	}
	b.match(&order)
	return nil
}

// match consumes resting liquidity from the opposite side under price-time
// priority, then rests the residual. Matches execute at the resting
// order's price, so any price improvement accrues to the aggressor.
func (b *Book) match(order *Order) {
	across, along := b.asks, b.bids
	if order.Side == Sell {
		across, along = b.bids, b.asks
	}

	for order.Quantity > 0 {
		bestPrice := across.best()
		if !crosses(order, bestPrice) {
			break
		}

		q := across.get(bestPrice)
		for q.len() > 0 && order.Quantity > 0 {
			head := q.head()
			qty := min(head.Quantity, order.Quantity)

			b.execute(order, head, qty)
			head.Quantity -= qty
			order.Quantity -= qty

			if head.Quantity == 0 {
				q.popHead()
				delete(b.orders, head.ID)
				b.addDepth(head.Side, -qty, -1)
			} else {
				b.addDepth(head.Side, -qty, 0)
			}
		}

		// Level exhausted: free it (tree, hash) or leave the empty slot
		// behind (array) and move the best pointer past it.
		if q.len() == 0 {
			across.drop(bestPrice)
			across.rebest()
		}
	}

	if order.Quantity > 0 {
		along.ensure(order.Price).push(order)
		b.orders[order.ID] = order
		along.promote(order.Price)
		b.addDepth(order.Side, order.Quantity, 1)
	}
}

// crosses reports whether the incoming order trades at the opposite best.
// Empty-side sentinels (-1, maxPrice+1) sit outside any valid order price,
// so an empty opposite side never crosses.
func crosses(order *Order, best int) bool {
	if order.Side == Buy {
		return order.Price >= best
	}
	return order.Price <= best
}

func (b *Book) execute(taker, maker *Order, qty int) {
	m := Match{ID: newID(), Price: maker.Price, Quantity: qty}
	if taker.Side == Buy {
		m.BuyTraderID, m.SellTraderID = taker.TraderID, maker.TraderID
	} else {
		m.BuyTraderID, m.SellTraderID = maker.TraderID, taker.TraderID
	}
	b.matches = append(b.matches, m)
}

// Cancel removes the resting order with the given id from its price queue.
// Cancelling the only order at the best is permitted; the cached best is
// recomputed eagerly, so observers never report a price with no liquidity
// behind it.
func (b *Book) Cancel(id string) error {
	order, ok := b.orders[id]
	if !ok {
		return fmt.Errorf("order %s: %w", id, ErrUnknownOrder)
	}

	idx := b.bids
	if order.Side == Sell {
		idx = b.asks
	}
	q := idx.get(order.Price)
	q.remove(id)
	delete(b.orders, id)
	b.addDepth(order.Side, -order.Quantity, -1)

	if q.len() == 0 {
		idx.drop(order.Price)
		idx.rebest()
	}
	return nil
}

// BestBid is the highest price with resting buy liquidity, or -1 when the
// bid side is empty.
func (b *Book) BestBid() int {
	return b.bids.best()
}

// BestAsk is the lowest price with resting sell liquidity, or maxPrice+1
// when the ask side is empty.
func (b *Book) BestAsk() int {
	return b.asks.best()
}

// Spread is BestAsk minus BestBid.
func (b *Book) Spread() int {
	return b.asks.best() - b.bids.best()
}

// TopBids returns up to n aggregated bid levels, best price first.
func (b *Book) TopBids(n int) []Level {
	return topLevels(b.bids, n)
}

// TopAsks returns up to n aggregated ask levels, best price first.
func (b *Book) TopAsks(n int) []Level {
	return topLevels(b.asks, n)
}

func topLevels(idx sideIndex, n int) []Level {
	var out []Level
	for p := idx.best(); len(out) < n && p != idx.sentinel(); p = idx.worse(p) {
		out = append(out, idx.get(p).aggregate())
	}
	return out
}

// RecentMatches returns the last n executions, oldest first.
func (b *Book) RecentMatches(n int) []Match {
	if n > len(b.matches) {
		n = len(b.matches)
	}
	out := make([]Match, n)
	copy(out, b.matches[len(b.matches)-n:])
	return out
}

// Matches returns the full execution log in execution order.
func (b *Book) Matches() []Match {
	out := make([]Match, len(b.matches))
	copy(out, b.matches)
	return out
}

// Depth is the aggregate resting liquidity on one side of the book.
type Depth struct {
	Quantity  int
	NumOrders int
}

func (b *Book) BidDepth() Depth {
	return Depth{Quantity: b.bidQuantity, NumOrders: b.bidOrders}
}

func (b *Book) AskDepth() Depth {
	return Depth{Quantity: b.askQuantity, NumOrders: b.askOrders}
}

func (b *Book) addDepth(side Side, qty, orders int) {
	if side == Buy {
		b.bidQuantity += qty
		b.bidOrders += orders
	} else {
		b.askQuantity += qty
		b.askOrders += orders
	}
}
