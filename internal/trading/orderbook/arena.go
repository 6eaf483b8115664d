package orderbook

import (
	"fmt"

	cerrors "github.com/Aidin1998/matchcore/pkg/errors"
	"github.com/Aidin1998/matchcore/internal/trading/model"
)

// RestingOrder is a node in the arena: an Order plus the intrusive
// forward/back links used by whichever Level it is currently linked into.
// It is only ever reachable through a *RestingOrder handed out by arena,
// never copied by value once linked.
type RestingOrder struct {
	Order model.Order
	prev  *RestingOrder
	next  *RestingOrder
}

// arena is a fixed-capacity pool of RestingOrder slots. It never grows:
// capacity is chosen by the caller to bound the maximum number of
// simultaneously resting orders, and acquire/release are O(1) with no
// allocation once constructed.
type arena struct {
	nodes []RestingOrder
	free  []*RestingOrder
}

func newArena(capacity int) *arena {
	nodes := make([]RestingOrder, capacity)
	free := make([]*RestingOrder, capacity)
	for i := range nodes {
		free[i] = &nodes[i]
	}
	return &arena{nodes: nodes, free: free}
}

// acquire returns a stable handle to a free slot, or PoolExhausted when
// none remain.
func (a *arena) acquire() (*RestingOrder, error) {
	n := len(a.free)
	if n == 0 {
		return nil, cerrors.PoolExhausted(fmt.Sprintf("arena capacity %d exhausted", len(a.nodes)))
	}
	node := a.free[n-1]
	a.free = a.free[:n-1]
	return node, nil
}

// release returns a handle to the free list. Releasing a handle not
// currently held, or double-releasing, is a programming error and is left
// undefined, per the contract.
func (a *arena) release(node *RestingOrder) {
	node.prev = nil
	node.next = nil
	a.free = append(a.free, node)
}

func (a *arena) capacity() int { return len(a.nodes) }
func (a *arena) inUse() int    { return len(a.nodes) - len(a.free) }
