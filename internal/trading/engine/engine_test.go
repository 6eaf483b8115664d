package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	cerrors "github.com/Aidin1998/matchcore/pkg/errors"
	"github.com/Aidin1998/matchcore/internal/trading/model"
	"github.com/Aidin1998/matchcore/internal/trading/orderbook"
)

// recordingListener captures events as flat strings, in call order, so
// scenario tests can assert the exact observable history of a call.
type recordingListener struct {
	events []string
}

func (l *recordingListener) OnTrade(incomingID, restingID, price uint64, quantity uint32) {
	l.events = append(l.events, fmt.Sprintf("TRADE(in=%d,rest=%d,price=%d,qty=%d)", incomingID, restingID, price, quantity))
}

func (l *recordingListener) OnAdded(order model.Order) {
	l.events = append(l.events, fmt.Sprintf("ADDED(id=%d,qty=%d,price=%d)", order.ID, order.Quantity, order.Price))
}

func (l *recordingListener) OnCanceled(id uint64) {
	l.events = append(l.events, fmt.Sprintf("CANCELED(id=%d)", id))
}

func (l *recordingListener) OnModified(order model.Order) {
	l.events = append(l.events, fmt.Sprintf("MODIFIED(id=%d,qty=%d,price=%d)", order.ID, order.Quantity, order.Price))
}

func newTestEngine() *MatchingEngine {
	return New(zap.NewNop(), nil)
}

func newTestBook(t *testing.T) *orderbook.OrderBook {
	ob, err := orderbook.New(64, 1000)
	assert.NoError(t, err)
	return ob
}

func TestScenario1_FullMatchNoResidual(t *testing.T) {
	e := newTestEngine()
	ob := newTestBook(t)
	l := &recordingListener{}

	assert.NoError(t, e.Submit(ob, model.Order{ID: 1, Quantity: 50, Price: 100, Side: model.Sell}, l, ""))
	assert.Equal(t, []string{"ADDED(id=1,qty=50,price=100)"}, l.events)

	l.events = nil
	assert.NoError(t, e.Submit(ob, model.Order{ID: 2, Quantity: 50, Price: 100, Side: model.Buy}, l, ""))
	assert.Equal(t, []string{"TRADE(in=2,rest=1,price=100,qty=50)"}, l.events)

	assert.False(t, ob.HasBids())
	assert.False(t, ob.HasAsks())
	assert.Equal(t, uint64(0), ob.BestBid())
	assert.Equal(t, ob.MaxPrice()+1, ob.BestAsk())
}

func TestScenario2_PartialMatchRemainderRests(t *testing.T) {
	e := newTestEngine()
	ob := newTestBook(t)
	l := &recordingListener{}

	assert.NoError(t, e.Submit(ob, model.Order{ID: 1, Quantity: 50, Price: 100, Side: model.Sell}, l, ""))
	l.events = nil
	assert.NoError(t, e.Submit(ob, model.Order{ID: 2, Quantity: 60, Price: 100, Side: model.Buy}, l, ""))

	assert.Equal(t, []string{
		"TRADE(in=2,rest=1,price=100,qty=50)",
		"ADDED(id=2,qty=10,price=100)",
	}, l.events)
	assert.Equal(t, uint64(10), ob.BidQuantityAt(100))
}

func TestScenario3_ExplicitCancel(t *testing.T) {
	e := newTestEngine()
	ob := newTestBook(t)
	l := &recordingListener{}

	assert.NoError(t, e.Submit(ob, model.Order{ID: 1, Quantity: 100, Price: 100, Side: model.Sell}, l, ""))
	assert.NoError(t, e.Cancel(ob, 1, l, ""))

	assert.Equal(t, "CANCELED(id=1)", l.events[len(l.events)-1])
	assert.False(t, ob.HasAsks())
	assert.Equal(t, 0, ob.LiveOrders())
}

func TestScenario4_InPlaceDecrementPreservesPriorityAndIdentity(t *testing.T) {
	e := newTestEngine()
	ob := newTestBook(t)
	l := &recordingListener{}

	assert.NoError(t, e.Submit(ob, model.Order{ID: 1, Quantity: 100, Price: 100, Side: model.Sell}, l, ""))
	assert.NoError(t, e.Submit(ob, model.Order{ID: 2, Quantity: 10, Price: 100, Side: model.Sell}, l, ""))
	before, _ := ob.Find(1)

	assert.NoError(t, e.Modify(ob, 1, 100, 80, l, ""))
	after, ok := ob.Find(1)

	assert.Equal(t, "MODIFIED(id=1,qty=80,price=100)", l.events[len(l.events)-1])
	assert.True(t, ok)
	assert.Same(t, before, after, "in-place decrement must not re-queue the node")
	assert.Same(t, after, ob.BestAskFront(), "order 1 must still be ahead of order 2 at its level")
	assert.Equal(t, uint32(80), after.Order.Quantity)
}

func TestScenario5_AggressiveModifyCrossesTheSpread(t *testing.T) {
	e := newTestEngine()
	ob := newTestBook(t)
	l := &recordingListener{}

	assert.NoError(t, e.Submit(ob, model.Order{ID: 1, Quantity: 50, Price: 100, Side: model.Sell}, l, ""))
	assert.NoError(t, e.Submit(ob, model.Order{ID: 2, Quantity: 50, Price: 90, Side: model.Buy}, l, ""))

	l.events = nil
	assert.NoError(t, e.Modify(ob, 2, 102, 50, l, ""))

	assert.Equal(t, []string{"TRADE(in=2,rest=1,price=100,qty=50)"}, l.events)
	assert.False(t, ob.HasAsks())
	assert.False(t, ob.HasBids(), "the modified order fully traded, nothing should rest")
}

func TestScenario6_MultiLevelSweep(t *testing.T) {
	e := newTestEngine()
	ob := newTestBook(t)
	l := &recordingListener{}

	assert.NoError(t, e.Submit(ob, model.Order{ID: 1, Quantity: 10, Price: 100, Side: model.Sell}, l, ""))
	assert.NoError(t, e.Submit(ob, model.Order{ID: 2, Quantity: 10, Price: 101, Side: model.Sell}, l, ""))
	assert.NoError(t, e.Submit(ob, model.Order{ID: 3, Quantity: 10, Price: 102, Side: model.Sell}, l, ""))

	l.events = nil
	assert.NoError(t, e.Submit(ob, model.Order{ID: 4, Quantity: 25, Price: 101, Side: model.Buy}, l, ""))

	assert.Equal(t, []string{
		"TRADE(in=4,rest=1,price=100,qty=10)",
		"TRADE(in=4,rest=2,price=101,qty=10)",
		"ADDED(id=4,qty=5,price=101)",
	}, l.events)

	assert.Equal(t, uint64(5), ob.BidQuantityAt(101))
	assert.Equal(t, uint64(10), ob.AskQuantityAt(102))
	assert.Equal(t, uint64(101), ob.BestBid())
	assert.Equal(t, uint64(102), ob.BestAsk())
}

func TestCancelUnknownOrder_FailsWithoutEmittingEvents(t *testing.T) {
	e := newTestEngine()
	ob := newTestBook(t)
	l := &recordingListener{}

	err := e.Cancel(ob, 999, l, "")
	assert.True(t, cerrors.Is(err, cerrors.ErrUnknownOrder))
	assert.Empty(t, l.events)
}

func TestCancelAfterCancel_IsNotIdempotent(t *testing.T) {
	e := newTestEngine()
	ob := newTestBook(t)
	l := &recordingListener{}

	assert.NoError(t, e.Submit(ob, model.Order{ID: 1, Quantity: 10, Price: 100, Side: model.Sell}, l, ""))
	assert.NoError(t, e.Cancel(ob, 1, l, ""))

	err := e.Cancel(ob, 1, l, "")
	assert.True(t, cerrors.Is(err, cerrors.ErrUnknownOrder))
}

func TestSubmit_DuplicateLiveIDIsInvalidOrder(t *testing.T) {
	e := newTestEngine()
	ob := newTestBook(t)
	l := &recordingListener{}

	assert.NoError(t, e.Submit(ob, model.Order{ID: 1, Quantity: 10, Price: 100, Side: model.Sell}, l, ""))
	err := e.Submit(ob, model.Order{ID: 1, Quantity: 5, Price: 50, Side: model.Buy}, l, "")
	assert.True(t, cerrors.Is(err, cerrors.ErrInvalidOrder))
}

func TestSubmit_ZeroQuantityIsInvalidOrder(t *testing.T) {
	e := newTestEngine()
	ob := newTestBook(t)
	l := &recordingListener{}

	err := e.Submit(ob, model.Order{ID: 1, Quantity: 0, Price: 100, Side: model.Buy}, l, "")
	assert.True(t, cerrors.Is(err, cerrors.ErrInvalidOrder))
	assert.Empty(t, l.events)
}

func TestSubmit_PriceOutOfRangeIsInvalidOrder(t *testing.T) {
	e := newTestEngine()
	ob := newTestBook(t)
	l := &recordingListener{}

	err := e.Submit(ob, model.Order{ID: 1, Quantity: 10, Price: ob.MaxPrice() + 1, Side: model.Buy}, l, "")
	assert.True(t, cerrors.Is(err, cerrors.ErrInvalidOrder))
}

func TestModify_UnknownIDFailsBeforeAnyMutation(t *testing.T) {
	e := newTestEngine()
	ob := newTestBook(t)
	l := &recordingListener{}

	err := e.Modify(ob, 42, 100, 10, l, "")
	assert.True(t, cerrors.Is(err, cerrors.ErrUnknownOrder))
	assert.Empty(t, l.events)
}

func TestSubmit_ArenaExhaustionSurfacesPoolExhaustedAndEmitsNoEvents(t *testing.T) {
	e := newTestEngine()
	ob, err := orderbook.New(1, 1000)
	assert.NoError(t, err)
	l := &recordingListener{}

	assert.NoError(t, e.Submit(ob, model.Order{ID: 1, Quantity: 10, Price: 100, Side: model.Buy}, l, ""))

	l.events = nil
	err = e.Submit(ob, model.Order{ID: 2, Quantity: 10, Price: 200, Side: model.Sell}, l, "")
	assert.True(t, cerrors.Is(err, cerrors.ErrPoolExhausted))
	assert.Empty(t, l.events, "a failed submit must not emit any event")
}

func TestRemoveByCancelRetightensCursor(t *testing.T) {
	e := newTestEngine()
	ob := newTestBook(t)
	l := &recordingListener{}

	assert.NoError(t, e.Submit(ob, model.Order{ID: 1, Quantity: 10, Price: 50, Side: model.Buy}, l, ""))
	assert.NoError(t, e.Submit(ob, model.Order{ID: 2, Quantity: 5, Price: 60, Side: model.Buy}, l, ""))

	assert.NoError(t, e.Cancel(ob, 2, l, ""))
	assert.Equal(t, uint64(50), ob.BestBid(), "canceling the best bid must retreat the cursor to the next level")
}

func TestModify_ReinsertionLosesPriorityAndNeverEmitsModified(t *testing.T) {
	e := newTestEngine()
	ob := newTestBook(t)
	l := &recordingListener{}

	assert.NoError(t, e.Submit(ob, model.Order{ID: 1, Quantity: 10, Price: 100, Side: model.Buy}, l, ""))
	assert.NoError(t, e.Submit(ob, model.Order{ID: 2, Quantity: 10, Price: 105, Side: model.Buy}, l, ""))

	l.events = nil
	assert.NoError(t, e.Modify(ob, 1, 105, 10, l, ""))
	for _, evt := range l.events {
		assert.NotContains(t, evt, "MODIFIED", "a price change must go through cancel+resubmit, never on_modified")
	}
	assert.Equal(t, uint64(105), ob.BestBid())

	l.events = nil
	assert.NoError(t, e.Submit(ob, model.Order{ID: 3, Quantity: 10, Price: 105, Side: model.Sell}, l, ""))
	assert.Equal(t, []string{"TRADE(in=3,rest=2,price=105,qty=10)"}, l.events, "the re-inserted order queues behind order 2")
}
