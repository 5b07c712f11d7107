package cart

import (
	"sync"

	"github.com/gh0stlung/Agri-Store/internal/models"
)

// Line is one cart entry: a product snapshot plus a quantity.
// Invariant: Quantity >= 1; a line reaching zero is removed, not kept.
type Line struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Subtotal is price times quantity for this line.
func (l Line) Subtotal() int64 {
	return l.Product.Price * int64(l.Quantity)
}

// Cart is the set of lines held by one browsing session. Line identity is
// the product id, so a product never appears twice.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Total is the sum of price×quantity over all lines, recomputed on every
// call so it can never go stale.
func (c Cart) Total() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.Subtotal()
	}
	return total
}

// Count is the number of cart lines, used for the badge display.
func (c Cart) Count() int {
	return len(c.Lines)
}

// Store holds every live cart, keyed by session cart id. Carts are
// process-memory only: nothing survives a restart, matching the
// tab-local cart of the storefront.
type Store struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

// Get returns a copy of the cart for id. A missing cart reads as empty.
func (s *Store) Get(id string) Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.carts[id]
	if !ok {
		return Cart{}
	}
	out := Cart{Lines: make([]Line, len(c.Lines))}
	copy(out.Lines, c.Lines)
	return out
}

// Add puts one unit of p into the cart: an existing line is incremented,
// otherwise a new line with quantity 1 is appended. Stock is not checked
// here; the shopkeeper reconciles availability on WhatsApp.
func (s *Store) Add(id string, p models.Product) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(id)
	for i := range c.Lines {
		if c.Lines[i].Product.ID == p.ID {
			c.Lines[i].Quantity++
			return s.snapshot(c)
		}
	}
	c.Lines = append(c.Lines, Line{Product: p, Quantity: 1})
	return s.snapshot(c)
}

// SetQuantity sets the line for productID to qty. A quantity of zero or
// less removes the line.
func (s *Store) SetQuantity(id, productID string, qty int) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(id)
	if qty <= 0 {
		c.remove(productID)
		return s.snapshot(c)
	}
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID {
			c.Lines[i].Quantity = qty
			break
		}
	}
	return s.snapshot(c)
}

// Remove drops the line for productID. Removing an absent line is a no-op.
func (s *Store) Remove(id, productID string) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(id)
	c.remove(productID)
	return s.snapshot(c)
}

// Clear empties the cart unconditionally.
func (s *Store) Clear(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, id)
}

func (s *Store) cart(id string) *Cart {
	c, ok := s.carts[id]
	if !ok {
		c = &Cart{}
		s.carts[id] = c
	}
	return c
}

func (s *Store) snapshot(c *Cart) Cart {
	out := Cart{Lines: make([]Line, len(c.Lines))}
	copy(out.Lines, c.Lines)
	return out
}

func (c *Cart) remove(productID string) {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}
