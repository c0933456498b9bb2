package book

import (
	"encoding/hex"

	"github.com/google/uuid"
)

type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "buy"
	}
	return "sell"
}

// Order is a resting limit order. The id is assigned by the engine unless
// the caller supplies one; two orders are the same order iff their ids are
// equal. Quantity is the remaining quantity and is decremented in place by
// the matching loop, so an order keeps its time priority across partial
// fills.
type Order struct {
	ID       string
	TraderID int
	Side     Side
	Price    int // integer ticks, 0 <= Price <= the book's max price
	Quantity int
}

// Match is one execution between a resting order and an incoming one.
// Immutable once emitted; the match log preserves execution order.
type Match struct {
	ID           string
	BuyTraderID  int
	SellTraderID int
	Price        int // the resting (maker) order's price
	Quantity     int
}

// newID returns a fresh 128-bit identifier rendered as 32 hex characters.
func newID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}
