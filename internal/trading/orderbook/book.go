// Package orderbook implements the price-indexed order book: two arrays of
// Levels (bid/ask), O(1) best-price cursors, an id->node index, and the
// fixed-capacity arena backing every resting order. It is a direct port of
// the arena/Level/OrderBook triple from the C++ source this was adapted
// from, with pointers into a fixed-size slice standing in for the original's
// raw pointers into a pinned backing store.
package orderbook

import (
	cerrors "github.com/Aidin1998/matchcore/pkg/errors"
	"github.com/Aidin1998/matchcore/internal/trading/model"
)

// OrderBook owns the arena, the id index, and both side arrays for a single
// symbol. maxBid is 0 when there are no resting bids; minAsk is maxPrice+1
// when there are no resting asks — both are the sentinel values spec'd for
// "no liquidity on this side".
type OrderBook struct {
	arena    *arena
	bids     []level
	asks     []level
	maxBid   uint64
	minAsk   uint64
	maxPrice uint64
	index    map[uint64]*RestingOrder
}

// New constructs an OrderBook sized for capacity simultaneously resting
// orders and prices in [1, maxPrice].
func New(capacity int, maxPrice uint64) (*OrderBook, error) {
	if capacity <= 0 {
		return nil, cerrors.InvalidOrder("capacity must be positive")
	}
	if maxPrice == 0 {
		return nil, cerrors.InvalidOrder("max_price must be positive")
	}

	bids := make([]level, maxPrice+1)
	asks := make([]level, maxPrice+1)
	for i := range bids {
		bids[i].init()
		asks[i].init()
	}

	return &OrderBook{
		arena:    newArena(capacity),
		bids:     bids,
		asks:     asks,
		maxBid:   0,
		minAsk:   maxPrice + 1,
		maxPrice: maxPrice,
		index:    make(map[uint64]*RestingOrder, capacity),
	}, nil
}

func (ob *OrderBook) MaxPrice() uint64 { return ob.maxPrice }

func (ob *OrderBook) HasBids() bool  { return ob.maxBid > 0 }
func (ob *OrderBook) BestBid() uint64 { return ob.maxBid }

func (ob *OrderBook) HasAsks() bool   { return ob.minAsk <= ob.maxPrice }
func (ob *OrderBook) BestAsk() uint64 { return ob.minAsk }

func (ob *OrderBook) bidLevel(price uint64) *level { return &ob.bids[price] }
func (ob *OrderBook) askLevel(price uint64) *level  { return &ob.asks[price] }

// BestBidFront returns the oldest resting order at the best bid price.
// Callers must check HasBids first.
func (ob *OrderBook) BestBidFront() *RestingOrder { return ob.bids[ob.maxBid].front() }

// BestAskFront is the mirror image of BestBidFront.
func (ob *OrderBook) BestAskFront() *RestingOrder { return ob.asks[ob.minAsk].front() }

// retreatBidCursor re-tightens maxBid after a fill or cancel may have
// emptied the best bid level.
func (ob *OrderBook) retreatBidCursor() {
	for ob.maxBid > 0 && ob.bids[ob.maxBid].empty() {
		ob.maxBid--
	}
}

// advanceAskCursor is the mirror image for the ask side.
func (ob *OrderBook) advanceAskCursor() {
	for ob.minAsk <= ob.maxPrice && ob.asks[ob.minAsk].empty() {
		ob.minAsk++
	}
}

// Find looks up a live order's resting node by id.
func (ob *OrderBook) Find(id uint64) (*RestingOrder, bool) {
	n, ok := ob.index[id]
	return n, ok
}

func (ob *OrderBook) clean(n *RestingOrder) {
	delete(ob.index, n.Order.ID)
	ob.arena.release(n)
}

// InsertBid acquires a node, appends it to the bid level at order.Price,
// records it in the id index, and advances maxBid if this is a new best
// bid. The caller is responsible for having already checked the id is not
// live.
func (ob *OrderBook) InsertBid(order model.Order) (*RestingOrder, error) {
	n, err := ob.arena.acquire()
	if err != nil {
		return nil, err
	}
	n.Order = order
	ob.bidLevel(order.Price).append(n)
	ob.index[order.ID] = n
	if order.Price > ob.maxBid {
		ob.maxBid = order.Price
	}
	return n, nil
}

// InsertAsk is the mirror image of InsertBid.
func (ob *OrderBook) InsertAsk(order model.Order) (*RestingOrder, error) {
	n, err := ob.arena.acquire()
	if err != nil {
		return nil, err
	}
	n.Order = order
	ob.askLevel(order.Price).append(n)
	ob.index[order.ID] = n
	if order.Price < ob.minAsk {
		ob.minAsk = order.Price
	}
	return n, nil
}

// FillBid decrements a resting bid by qty, which must not exceed its
// current quantity. A fill that empties the node must only be applied to
// the front of its level (the matching loop never fills anything else); a
// partial fill, such as Modify's in-place decrement, may target any node.
// If the node is fully filled it is popped, cleaned out of the index and
// arena, and the bid cursor is re-tightened.
func (ob *OrderBook) FillBid(n *RestingOrder, qty uint32) {
	lvl := ob.bidLevel(n.Order.Price)
	n.Order.Quantity -= qty
	lvl.reduceQuantity(qty)
	if n.Order.Quantity == 0 {
		lvl.popFront()
		ob.clean(n)
		ob.retreatBidCursor()
	}
}

// FillAsk is the mirror image of FillBid.
func (ob *OrderBook) FillAsk(n *RestingOrder, qty uint32) {
	lvl := ob.askLevel(n.Order.Price)
	n.Order.Quantity -= qty
	lvl.reduceQuantity(qty)
	if n.Order.Quantity == 0 {
		lvl.popFront()
		ob.clean(n)
		ob.advanceAskCursor()
	}
}

// RemoveBid cancels an arbitrary resting bid, not necessarily at the front
// of its level.
func (ob *OrderBook) RemoveBid(n *RestingOrder) {
	lvl := ob.bidLevel(n.Order.Price)
	lvl.reduceQuantity(n.Order.Quantity)
	lvl.erase(n)
	ob.clean(n)
	ob.retreatBidCursor()
}

// RemoveAsk is the mirror image of RemoveBid.
func (ob *OrderBook) RemoveAsk(n *RestingOrder) {
	lvl := ob.askLevel(n.Order.Price)
	lvl.reduceQuantity(n.Order.Quantity)
	lvl.erase(n)
	ob.clean(n)
	ob.advanceAskCursor()
}

// BidQuantityAt returns the resting quantity at a bid price level, for
// tests and snapshot consumers.
func (ob *OrderBook) BidQuantityAt(price uint64) uint64 { return ob.bids[price].quantity() }

// AskQuantityAt is the mirror image of BidQuantityAt.
func (ob *OrderBook) AskQuantityAt(price uint64) uint64 { return ob.asks[price].quantity() }

// LiveOrders returns the number of orders currently resting in the book.
func (ob *OrderBook) LiveOrders() int { return len(ob.index) }

// ArenaCapacity and ArenaInUse expose the arena's utilization for metrics.
func (ob *OrderBook) ArenaCapacity() int { return ob.arena.capacity() }
func (ob *OrderBook) ArenaInUse() int    { return ob.arena.inUse() }
