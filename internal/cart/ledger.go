package cart

import (
	"sync"

	"vailure/internal/domain"
)

// Line is one product in the ledger. Quantity is always >= 1 while the
// line exists; a quantity edit that would reach 0 deletes the line.
type Line struct {
	Product  domain.Product
	Quantity int
}

// Subtotal is the line total in integer cents.
func (l Line) Subtotal() int64 { return l.Product.PriceCents * int64(l.Quantity) }

// Ledger maps product identity to quantity, at most one line per product.
// Display order is insertion order. All money is integer cents. The ledger
// carries its own mutex; it is never locked together with another store.
type Ledger struct {
	mu    sync.Mutex
	lines []Line
	index map[int]int // product id -> position in lines
}

func NewLedger() *Ledger {
	return &Ledger{index: make(map[int]int)}
}

// Add increments the existing line for p or inserts a new one at quantity 1.
func (g *Ledger) Add(p domain.Product) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if i, ok := g.index[p.ID]; ok {
		g.lines[i].Quantity++
		return
	}
	g.index[p.ID] = len(g.lines)
	g.lines = append(g.lines, Line{Product: p, Quantity: 1})
}

// SetQuantity overwrites an existing line's quantity. n <= 0 removes the
// line. An absent id is a no-op for any n: quantity edits never create or
// resurrect a line, only Add does.
func (g *Ledger) SetQuantity(productID, n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	i, ok := g.index[productID]
	if !ok {
		return
	}
	if n <= 0 {
		g.removeAt(i)
		return
	}
	g.lines[i].Quantity = n
}

// Remove deletes the line if present; no-op otherwise.
func (g *Ledger) Remove(productID int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if i, ok := g.index[productID]; ok {
		g.removeAt(i)
	}
}

func (g *Ledger) removeAt(i int) {
	delete(g.index, g.lines[i].Product.ID)
	g.lines = append(g.lines[:i:i], g.lines[i+1:]...)
	for j := i; j < len(g.lines); j++ {
		g.index[g.lines[j].Product.ID] = j
	}
}

// Subtotal sums price*quantity across all lines in cents. 0 when empty.
func (g *Ledger) Subtotal() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	var total int64
	for _, l := range g.lines {
		total += l.Subtotal()
	}
	return total
}

// ItemCount sums quantities across lines (the badge count, not line count).
func (g *Ledger) ItemCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, l := range g.lines {
		n += l.Quantity
	}
	return n
}

// Lines returns a copy of the current lines in insertion order.
func (g *Ledger) Lines() []Line {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Line, len(g.lines))
	copy(out, g.lines)
	return out
}
