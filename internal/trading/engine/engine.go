// Package engine implements the matching algorithm: submit, cancel, and
// modify, dispatched once per call against a side-symmetric policy so the
// core logic is written exactly once. It never touches storage, the
// network, or a clock beyond latency measurement — no call ever blocks.
package engine

import (
	"time"

	"go.uber.org/zap"

	cerrors "github.com/Aidin1998/matchcore/pkg/errors"
	"github.com/Aidin1998/matchcore/internal/trading/model"
	"github.com/Aidin1998/matchcore/internal/trading/orderbook"
)

// MatchingEngine runs the submit/cancel/modify algorithms against an
// OrderBook supplied by the caller. It holds no book state of its own, so a
// single MatchingEngine can drive any number of books sequentially — it is
// the algorithm, not the data.
type MatchingEngine struct {
	log     *zap.Logger
	metrics *orderbook.Metrics
}

// New constructs a MatchingEngine. metrics may be nil, in which case every
// recording call is skipped.
func New(log *zap.Logger, metrics *orderbook.Metrics) *MatchingEngine {
	if log == nil {
		log = zap.NewNop()
	}
	return &MatchingEngine{log: log, metrics: metrics}
}

// Submit accepts a new order into book, matching it against the opposite
// side first and resting any remainder. correlationID is an optional
// caller-supplied id (typically a uuid.UUID.String()) threaded only into
// log fields; the empty string is fine.
func (e *MatchingEngine) Submit(book *orderbook.OrderBook, order model.Order, l Listener, correlationID string) error {
	start := time.Now()
	defer func() { e.metrics.RecordLatency(time.Since(start).Seconds()) }()

	if order.Quantity == 0 {
		return e.reject(cerrors.InvalidOrder("quantity must be greater than zero"), correlationID)
	}
	if order.Price < 1 || order.Price > book.MaxPrice() {
		return e.reject(cerrors.InvalidOrder("price out of range"), correlationID)
	}
	if _, live := book.Find(order.ID); live {
		return e.reject(cerrors.InvalidOrder("order id already live"), correlationID)
	}

	policy := policyFor(book, order.Side)
	if err := e.match(book, policy, &order, l); err != nil {
		return e.reject(err, correlationID)
	}

	e.metrics.RecordOrderProcessed(order.Side.String())
	e.metrics.RecordArenaUsage(book.ArenaInUse(), book.ArenaCapacity())
	e.log.Debug("order submitted", zap.Uint64("id", order.ID), zap.String("correlation_id", correlationID))
	return nil
}

// match runs the crossing loop for order against the book's opposite side,
// decrementing order.Quantity in place, then rests whatever remains.
func (e *MatchingEngine) match(book *orderbook.OrderBook, policy sidePolicy, order *model.Order, l Listener) error {
	for order.Quantity > 0 && policy.crosses(order.Price) {
		resting := policy.oppositeFront()
		traded := order.Quantity
		if resting.Order.Quantity < traded {
			traded = resting.Order.Quantity
		}
		restingID := resting.Order.ID
		restingPrice := resting.Order.Price

		order.Quantity -= traded
		policy.fillOpposite(resting, traded)

		l.OnTrade(order.ID, restingID, restingPrice, traded)
		e.metrics.RecordTrade(traded)
		e.log.Debug("trade executed",
			zap.Uint64("incoming_id", order.ID), zap.Uint64("resting_id", restingID),
			zap.Uint64("price", restingPrice), zap.Uint32("quantity", traded))
	}

	if order.Quantity > 0 {
		if _, err := policy.insertSelf(*order); err != nil {
			return err
		}
		l.OnAdded(*order)
	}
	return nil
}

// Cancel removes a live order from book and notifies l. Canceling an id
// that is not live is an UnknownOrder error.
func (e *MatchingEngine) Cancel(book *orderbook.OrderBook, id uint64, l Listener, correlationID string) error {
	start := time.Now()
	defer func() { e.metrics.RecordLatency(time.Since(start).Seconds()) }()

	n, live := book.Find(id)
	if !live {
		return e.reject(cerrors.UnknownOrder(id), correlationID)
	}

	policy := policyFor(book, n.Order.Side)
	policy.cancelSelf(n)
	l.OnCanceled(id)

	e.metrics.RecordArenaUsage(book.ArenaInUse(), book.ArenaCapacity())
	e.log.Debug("order canceled", zap.Uint64("id", id), zap.String("correlation_id", correlationID))
	return nil
}

// Modify changes a live order's price and/or quantity. Two branches apply,
// mirroring the matching-core algorithm exactly:
//
//   - same price, strictly smaller quantity: decrement the resting order in
//     place, preserving its queue position, and emit exactly one
//     OnModified.
//   - any other change (price change, or quantity increase): cancel the
//     order and resubmit it fresh through the ordinary matching path, which
//     emits OnTrade/OnAdded as usual and intentionally never emits
//     OnModified for this branch — the order has lost its original
//     time-priority and is, causally, a brand new order.
func (e *MatchingEngine) Modify(book *orderbook.OrderBook, id uint64, newPrice uint64, newQuantity uint32, l Listener, correlationID string) error {
	start := time.Now()
	defer func() { e.metrics.RecordLatency(time.Since(start).Seconds()) }()

	n, live := book.Find(id)
	if !live {
		return e.reject(cerrors.UnknownOrder(id), correlationID)
	}
	if newQuantity == 0 {
		return e.reject(cerrors.InvalidOrder("quantity must be greater than zero"), correlationID)
	}
	if newPrice < 1 || newPrice > book.MaxPrice() {
		return e.reject(cerrors.InvalidOrder("price out of range"), correlationID)
	}

	side := n.Order.Side
	policy := policyFor(book, side)

	if newPrice == n.Order.Price && newQuantity < n.Order.Quantity {
		policy.fillSelf(n, n.Order.Quantity-newQuantity)
		updated := model.Order{ID: id, Quantity: newQuantity, Price: newPrice, Side: side}
		l.OnModified(updated)
		e.log.Debug("order modified in place", zap.Uint64("id", id), zap.String("correlation_id", correlationID))
		return nil
	}

	policy.cancelSelf(n)
	amended := model.Order{ID: id, Quantity: newQuantity, Price: newPrice, Side: side}
	if err := e.match(book, policy, &amended, l); err != nil {
		return e.reject(err, correlationID)
	}

	e.metrics.RecordArenaUsage(book.ArenaInUse(), book.ArenaCapacity())
	e.log.Debug("order modified by reinsertion", zap.Uint64("id", id), zap.String("correlation_id", correlationID))
	return nil
}

func (e *MatchingEngine) reject(err error, correlationID string) error {
	var kind cerrors.Kind
	if ce, ok := err.(*cerrors.Error); ok {
		kind = ce.Kind
	}
	e.metrics.RecordError(string(kind))
	e.log.Warn("engine call rejected", zap.Error(err), zap.String("correlation_id", correlationID))
	return err
}
