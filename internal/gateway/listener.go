package gateway

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/Aidin1998/matchcore/internal/trading/model"
)

// eventListener implements engine.Listener by serializing each callback to
// JSON and handing it to the hub for broadcast. It is the concrete
// "external collaborator" a deployment plugs into the engine's listener
// slot; the core never depends on this package.
type eventListener struct {
	hub    *hub
	logger *zap.Logger
}

func newEventListener(h *hub, logger *zap.Logger) *eventListener {
	return &eventListener{hub: h, logger: logger}
}

type wireEvent struct {
	Type       string `json:"type"`
	IncomingID uint64 `json:"incoming_id,omitempty"`
	RestingID  uint64 `json:"resting_id,omitempty"`
	ID         uint64 `json:"id,omitempty"`
	Price      uint64 `json:"price,omitempty"`
	Quantity   uint32 `json:"quantity,omitempty"`
	Side       string `json:"side,omitempty"`
}

func (l *eventListener) publish(evt wireEvent) {
	payload, err := json.Marshal(evt)
	if err != nil {
		l.logger.Error("failed to marshal event", zap.Error(err))
		return
	}
	l.hub.publish(payload)
}

func (l *eventListener) OnTrade(incomingID, restingID, price uint64, quantity uint32) {
	l.publish(wireEvent{Type: "trade", IncomingID: incomingID, RestingID: restingID, Price: price, Quantity: quantity})
}

func (l *eventListener) OnAdded(order model.Order) {
	l.publish(wireEvent{Type: "added", ID: order.ID, Price: order.Price, Quantity: order.Quantity, Side: order.Side.String()})
}

func (l *eventListener) OnCanceled(id uint64) {
	l.publish(wireEvent{Type: "canceled", ID: id})
}

func (l *eventListener) OnModified(order model.Order) {
	l.publish(wireEvent{Type: "modified", ID: order.ID, Price: order.Price, Quantity: order.Quantity, Side: order.Side.String()})
}
