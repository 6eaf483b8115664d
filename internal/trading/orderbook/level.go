package orderbook

// level is a FIFO queue of resting orders at one price, implemented as a
// sentinel-node doubly linked list: head and tail are always-present dummy
// nodes so append/erase never need a nil check. It is embedded by value in
// the OrderBook's fixed-size price arrays, so its address must never change
// after the array is allocated — the sentinels link to each other's
// addresses, and copying a level invalidates those links.
type level struct {
	head, tail    RestingOrder
	totalQuantity uint64
}

// init wires the sentinels together into an empty list. Must be called
// once, in place, before a level is used — never on a copy.
func (lv *level) init() {
	lv.head.next = &lv.tail
	lv.tail.prev = &lv.head
}

func (lv *level) empty() bool {
	return lv.head.next == &lv.tail
}

// append links node just before the tail sentinel — the newest arrival,
// and therefore the time-priority loser among any orders already resting
// at this price.
func (lv *level) append(node *RestingOrder) {
	last := lv.tail.prev
	last.next = node
	node.prev = last
	node.next = &lv.tail
	lv.tail.prev = node
	lv.totalQuantity += uint64(node.Order.Quantity)
}

// front returns the oldest linked node. Undefined when empty; callers must
// check empty() first.
func (lv *level) front() *RestingOrder {
	return lv.head.next
}

// popFront unlinks the front node. It does not adjust totalQuantity: by the
// time this is called the node's remaining quantity is already zero.
func (lv *level) popFront() {
	front := lv.head.next
	lv.head.next = front.next
	front.next.prev = &lv.head
}

// erase unlinks node from wherever it sits. It does not adjust
// totalQuantity — callers that remove a node with quantity remaining
// (cancel) must call reduceQuantity themselves first.
func (lv *level) erase(node *RestingOrder) {
	node.prev.next = node.next
	node.next.prev = node.prev
}

func (lv *level) reduceQuantity(delta uint32) {
	lv.totalQuantity -= uint64(delta)
}

func (lv *level) quantity() uint64 {
	return lv.totalQuantity
}
