package services

import (
	"sort"
	"sync"

	"github.com/Asip90/User-View-OpenFood/entity"
)

// CartService is the single source of truth for line quantities and
// captured unit prices. One instance per diner session; all mutation goes
// through its methods.
type CartService struct {
	mu    sync.Mutex
	lines map[int]*entity.CartLine
}

func NewCartService() *CartService {
	return &CartService{lines: make(map[int]*entity.CartLine)}
}

// AddItem creates a line with quantity 1 on first add, capturing the unit
// price at that moment (discount price wins over list price). Later adds
// only increment quantity; the captured price is kept even if the supplied
// item carries a different price.
func (s *CartService) AddItem(item *entity.MenuItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if line, ok := s.lines[item.ID]; ok {
		line.Quantity++
		return
	}
	s.lines[item.ID] = &entity.CartLine{
		ItemID:    item.ID,
		Name:      item.Name,
		UnitPrice: item.UnitPrice(),
		Quantity:  1,
		Image:     item.Image,
	}
}

// RemoveItem decrements the line, deleting it at quantity 1. Unknown ids
// are a no-op, not an error.
func (s *CartService) RemoveItem(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, ok := s.lines[id]
	if !ok {
		return
	}
	if line.Quantity <= 1 {
		delete(s.lines, id)
		return
	}
	line.Quantity--
}

// Clear empties the cart unconditionally.
func (s *CartService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = make(map[int]*entity.CartLine)
}

// Total recomputes the cart total on every call so it always reflects
// current state.
func (s *CartService) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum float64
	for _, line := range s.lines {
		sum += line.Subtotal()
	}
	return sum
}

// Quantity answers "how many of this item is in the cart" in O(1); zero
// when the item has no line.
func (s *CartService) Quantity(id int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if line, ok := s.lines[id]; ok {
		return line.Quantity
	}
	return 0
}

// Count is the total number of articles across all lines.
func (s *CartService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for _, line := range s.lines {
		n += line.Quantity
	}
	return n
}

func (s *CartService) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}

// Lines returns a copy of the cart sorted by item id for stable display.
func (s *CartService) Lines() []entity.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.CartLine, 0, len(s.lines))
	for _, line := range s.lines {
		out = append(out, *line)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}

// OrderItems rebuilds the {item id, quantity} pairs for an order payload,
// in ascending item-id order.
func (s *CartService) OrderItems() []entity.OrderItem {
	lines := s.Lines()
	out := make([]entity.OrderItem, 0, len(lines))
	for _, line := range lines {
		out = append(out, entity.OrderItem{MenuItemID: line.ItemID, Quantity: line.Quantity})
	}
	return out
}
