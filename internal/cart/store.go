package cart

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Store is the cart of one session. All mutation goes through its methods so
// merge-on-add and remove-on-zero always hold. Safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	items []LineItem
}

func NewStore() *Store {
	return &Store{}
}

// Add merges quantity into the entry for item.ID or appends a new entry.
func (s *Store) Add(item Item, quantity int) error {
	if item.ID == "" {
		return ErrInvalidItem
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(item.ID); i >= 0 {
		s.items[i].Quantity += quantity
		return nil
	}

	s.items = append(s.items, LineItem{Item: item, Quantity: quantity})
	return nil
}

// IncrementQuantity adds one to the entry for itemID. Absent ids are ignored.
func (s *Store) IncrementQuantity(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(itemID); i >= 0 {
		s.items[i].Quantity++
	}
}

// DecrementOrRemove subtracts one from the entry for itemID and drops the
// entry once it reaches zero. Absent ids are ignored.
func (s *Store) DecrementOrRemove(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(itemID)
	if i < 0 {
		return
	}

	s.items[i].Quantity--
	if s.items[i].Quantity <= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
}

// RemoveOrdered subtracts the quantities in ordered from the matching entries
// and drops entries that reach zero. Entries added after ordered was taken
// keep whatever quantity exceeds the ordered one.
func (s *Store) RemoveOrdered(ordered []LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, li := range ordered {
		i := s.indexOf(li.ID)
		if i < 0 {
			continue
		}

		s.items[i].Quantity -= li.Quantity
		if s.items[i].Quantity <= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		}
	}
	if len(s.items) == 0 {
		s.items = nil
	}
}

// Total is recomputed from the current entries on every call.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	return sum(s.items)
}

// Items returns a copy of the entries in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items)
}

func (s *Store) indexOf(itemID string) int {
	for i := range s.items {
		if s.items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// Total sums UnitPrice * Quantity over items.
func Total(items []LineItem) decimal.Decimal {
	return sum(items)
}

func sum(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, li := range items {
		total = total.Add(li.Subtotal())
	}
	return total
}

// VendorIDs returns the distinct vendor ids of items in first-seen order.
func VendorIDs(items []LineItem) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, 1)

	for _, li := range items {
		if _, ok := seen[li.VendorID]; ok {
			continue
		}
		seen[li.VendorID] = struct{}{}
		ids = append(ids, li.VendorID)
	}
	return ids
}
