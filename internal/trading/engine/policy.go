package engine

import (
	"github.com/Aidin1998/matchcore/internal/trading/model"
	"github.com/Aidin1998/matchcore/internal/trading/orderbook"
)

// sidePolicy captures everything that differs between matching a Buy order
// and matching a Sell order: which side is "opposite", which direction a
// crossing check runs, and which OrderBook method inserts/fills/cancels on
// "this" side. The matching/cancel/modify algorithms in engine.go are
// written once against this interface and are side-agnostic.
type sidePolicy interface {
	hasOpposite() bool
	crosses(price uint64) bool
	oppositeFront() *orderbook.RestingOrder
	fillOpposite(n *orderbook.RestingOrder, qty uint32)
	insertSelf(order model.Order) (*orderbook.RestingOrder, error)
	fillSelf(n *orderbook.RestingOrder, qty uint32)
	cancelSelf(n *orderbook.RestingOrder)
}

type buyPolicy struct{ book *orderbook.OrderBook }

func (p buyPolicy) hasOpposite() bool    { return p.book.HasAsks() }
func (p buyPolicy) crosses(price uint64) bool {
	return p.book.HasAsks() && price >= p.book.BestAsk()
}
func (p buyPolicy) oppositeFront() *orderbook.RestingOrder { return p.book.BestAskFront() }
func (p buyPolicy) fillOpposite(n *orderbook.RestingOrder, qty uint32) { p.book.FillAsk(n, qty) }
func (p buyPolicy) insertSelf(order model.Order) (*orderbook.RestingOrder, error) {
	return p.book.InsertBid(order)
}
func (p buyPolicy) fillSelf(n *orderbook.RestingOrder, qty uint32) { p.book.FillBid(n, qty) }
func (p buyPolicy) cancelSelf(n *orderbook.RestingOrder)           { p.book.RemoveBid(n) }

type sellPolicy struct{ book *orderbook.OrderBook }

func (p sellPolicy) hasOpposite() bool { return p.book.HasBids() }
func (p sellPolicy) crosses(price uint64) bool {
	return p.book.HasBids() && price <= p.book.BestBid()
}
func (p sellPolicy) oppositeFront() *orderbook.RestingOrder { return p.book.BestBidFront() }
func (p sellPolicy) fillOpposite(n *orderbook.RestingOrder, qty uint32) { p.book.FillBid(n, qty) }
func (p sellPolicy) insertSelf(order model.Order) (*orderbook.RestingOrder, error) {
	return p.book.InsertAsk(order)
}
func (p sellPolicy) fillSelf(n *orderbook.RestingOrder, qty uint32) { p.book.FillAsk(n, qty) }
func (p sellPolicy) cancelSelf(n *orderbook.RestingOrder)           { p.book.RemoveAsk(n) }

func policyFor(book *orderbook.OrderBook, side model.Side) sidePolicy {
	if side == model.Buy {
		return buyPolicy{book: book}
	}
	return sellPolicy{book: book}
}
