package book

import "github.com/tidwall/btree"

// treeIndex is the ordered back-end: live levels sit in a balanced tree
// sorted best-first, so the tree minimum is the side's best price and the
// in-order walk enumerates levels toward the worse end. Drained levels are
// deleted immediately, which keeps the minimum current without a scalar
// cache.
type treeIndex struct {
	side     Side
	maxPrice int
	levels   *btree.BTreeG[*priceQueue]
}

func newTreeIndex(side Side, maxPrice int) *treeIndex {
	// Sorted best price first: greatest first for bids, least first for
	// asks.
	less := func(a, b *priceQueue) bool { return a.price < b.price }
	if side == Buy {
		less = func(a, b *priceQueue) bool { return a.price > b.price }
	}
	return &treeIndex{
		side:     side,
		maxPrice: maxPrice,
		levels:   btree.NewBTreeG(less),
	}
}

func (x *treeIndex) sentinel() int {
	if x.side == Buy {
		return -1
	}
	return x.maxPrice + 1
}

func (x *treeIndex) get(price int) *priceQueue {
	q, ok := x.levels.Get(&priceQueue{price: price})
	if !ok {
		return nil
	}
	return q
}

func (x *treeIndex) ensure(price int) *priceQueue {
	if q, ok := x.levels.GetMut(&priceQueue{price: price}); ok {
		return q
	}
	q := newPriceQueue(price)
	x.levels.Set(q)
	return q
}

func (x *treeIndex) drop(price int) {
	x.levels.Delete(&priceQueue{price: price})
}

func (x *treeIndex) best() int {
	q, ok := x.levels.Min()
	if !ok {
		return x.sentinel()
	}
	return q.price
}

// promote needs no work: insertion alone keeps the tree ordered.
func (x *treeIndex) promote(int) {}

// rebest needs no work: drained levels are deleted as they empty.
func (x *treeIndex) rebest() {}

func (x *treeIndex) worse(price int) int {
	next := x.sentinel()
	x.levels.Ascend(&priceQueue{price: price}, func(q *priceQueue) bool {
		if q.price == price {
			return true
		}
		next = q.price
		return false
	})
	return next
}
