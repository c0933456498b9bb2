package book

import "fmt"

// Backend selects the price-index implementation behind each side of a
// book. All three honour the same contract; they trade memory footprint
// against worst-case per-operation cost.
type Backend int

const (
	// Array keeps one queue slot per integer price, allocated up front.
	// O(1) lookups, linear scans past empty levels, memory proportional to
	// the price range.
	Array Backend = iota
	// Hash keeps a map of live levels and walks prices one tick at a time
	// to find neighbours. Lazy allocation; only efficient when the book is
	// dense within its active range.
	Hash
	// Tree keeps live levels in a balanced ordered tree. Logarithmic
	// lookups, ordered neighbour walks, memory proportional to live
	// levels.
	Tree
)

func (b Backend) String() string {
	switch b {
	case Array:
		return "array"
	case Hash:
		return "hash"
	case Tree:
		return "tree"
	}
	return fmt.Sprintf("backend(%d)", int(b))
}

// ParseBackend maps a backend name to its Backend value.
func ParseBackend(name string) (Backend, error) {
	switch name {
	case "array":
		return Array, nil
	case "hash":
		return Hash, nil
	case "tree":
		return Tree, nil
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownBackend)
}

// sideIndex maps integer prices to the queue of resting orders at that
// price, for one side of the book.
//
// best and worse only ever return prices whose queues hold at least one
// order, or the side's empty sentinel: -1 for bids, maxPrice+1 for asks.
// Validated order prices live in [0, maxPrice], so a cross test against a
// sentinel is always false and the matching loop needs no separate
// empty-side check.
type sideIndex interface {
	// get returns the queue at price, or nil when none is tracked.
	get(price int) *priceQueue
	// ensure returns the queue at price, creating it on demand.
	ensure(price int) *priceQueue
	// drop discards the emptied queue at price, on back-ends that free
	// empty levels. The array back-end keeps its slots.
	drop(price int)
	// best returns the best live price on this side, or the sentinel.
	best() int
	// promote records new resting liquidity at price.
	promote(price int)
	// rebest re-derives the best after the level at the cached best has
	// drained.
	rebest()
	// worse returns the nearest live price beyond the given one, stepping
	// away from the top of the book, or the sentinel.
	worse(price int) int
	// sentinel is the side's empty marker.
	sentinel() int
}

func newSideIndex(backend Backend, side Side, maxPrice int) (sideIndex, error) {
	switch backend {
	case Array:
		return newArrayIndex(side, maxPrice), nil
	case Hash:
		return newHashIndex(side, maxPrice), nil
	case Tree:
		return newTreeIndex(side, maxPrice), nil
	}
	return nil, fmt.Errorf("%s: %w", backend, ErrUnknownBackend)
}

// scalarBest holds the cached best price for the scanning back-ends
// (array, hash), which have no ordered iteration of their own.
type scalarBest struct {
	side      Side
	maxPrice  int
	bestPrice int
}

func (s *scalarBest) sentinel() int {
	if s.side == Buy {
		return -1
	}
	return s.maxPrice + 1
}

// step is the price direction from better to worse on this side.
func (s *scalarBest) step() int {
	if s.side == Buy {
		return -1
	}
	return 1
}

// better reports whether a beats b on this side.
func (s *scalarBest) better(a, b int) bool {
	if s.side == Buy {
		return a > b
	}
	return a < b
}

func (s *scalarBest) best() int {
	return s.bestPrice
}

func (s *scalarBest) promote(price int) {
	if s.bestPrice == s.sentinel() || s.better(price, s.bestPrice) {
		s.bestPrice = price
	}
}
