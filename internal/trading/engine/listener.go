package engine

import "github.com/Aidin1998/matchcore/internal/trading/model"

// Listener is the passive sink for the four events a matching-engine call
// can produce. All events for one public call are delivered synchronously,
// in causal order, before the call returns. Implementations must not call
// back into the engine from inside a callback.
type Listener interface {
	OnTrade(incomingID, restingID uint64, price uint64, quantity uint32)
	OnAdded(order model.Order)
	OnCanceled(id uint64)
	OnModified(order model.Order)
}

// NoOpListener discards every event. Embed it to implement only the
// callbacks a particular consumer cares about.
type NoOpListener struct{}

func (NoOpListener) OnTrade(uint64, uint64, uint64, uint32) {}
func (NoOpListener) OnAdded(model.Order)                    {}
func (NoOpListener) OnCanceled(uint64)                      {}
func (NoOpListener) OnModified(model.Order)                 {}
