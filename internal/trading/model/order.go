// Package model holds the plain value types shared between the order book
// and the matching engine: an Order carries no behavior, no pooling, no
// pointers back into the book it may end up resting in.
package model

import "fmt"

// Side identifies which book an order rests on or crosses.
type Side uint8

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

// Order is a plain limit order. Price is an integer tick index bounded by
// the book's configured max price; Quantity is validated non-zero by the
// engine before it ever reaches the book.
type Order struct {
	ID       uint64
	Quantity uint32
	Price    uint64
	Side     Side
}

func (o Order) String() string {
	return fmt.Sprintf("{id:%d qty:%d price:%d side:%s}", o.ID, o.Quantity, o.Price, o.Side)
}
