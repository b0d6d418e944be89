package services

import (
	"errors"
	"fmt"
	"sync"

	"modahaus/internal/domain"
	"modahaus/internal/repos"
)

// ErrSignInRequired is returned for cart mutations with no signed-in user.
// Anonymous visitors have no cart at all; the UI prompts them to sign in.
var ErrSignInRequired = errors.New("sign in to use the cart")

// ErrCartUnsynced wraps a store write that failed after the local cart was
// already mutated. The local state stands; the next Load reconciles.
var ErrCartUnsynced = errors.New("cart change not saved to store")

// CartService is the single source of truth for each signed-in user's
// cart. It keeps an in-memory line list per user, normalizes every
// quantity to the product's minimum order quantity, and writes through to
// the cart store. Store writes are optimistic: a failed write keeps the
// local mutation and surfaces ErrCartUnsynced as a warning.
type CartService struct {
	Store *repos.CartRepo
	Prods *repos.ProductRepo

	mu    sync.Mutex
	lines map[string][]domain.CartItem // userID -> cart lines
}

func NewCartService(store *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Store: store, Prods: prods, lines: map[string][]domain.CartItem{}}
}

// normalizeQty rounds q up to the nearest multiple of moq, never below
// one full moq. Quantities of zero or less are the caller's business
// (they mean "remove") and must be handled before calling this.
func normalizeQty(q, moq int) int {
	if moq < 1 {
		moq = 1
	}
	if q <= moq {
		return moq
	}
	if rem := q % moq; rem != 0 {
		q += moq - rem
	}
	return q
}

// SwitchUser is the identity-change hook the auth service calls on login
// and logout. A non-empty id loads that user's cart from the store; an
// empty id drops whatever was held for the previous session.
func (s *CartService) SwitchUser(prevID, userID string) {
	if prevID != "" && prevID != userID {
		s.mu.Lock()
		delete(s.lines, prevID)
		s.mu.Unlock()
	}
	if userID != "" {
		_ = s.Load(userID)
	}
}

// EnsureLoaded loads the cart for sessions that were signed in before
// the process started. A no-op once state exists for the user.
func (s *CartService) EnsureLoaded(userID string) {
	if userID == "" {
		return
	}
	s.mu.Lock()
	_, ok := s.lines[userID]
	s.mu.Unlock()
	if !ok {
		_ = s.Load(userID)
	}
}

// Load replaces local state wholesale from the store. On fetch failure
// the local cart becomes empty and the error is returned for the UI to
// surface; the app keeps running.
func (s *CartService) Load(userID string) error {
	if userID == "" {
		return ErrSignInRequired
	}
	items, err := s.Store.ListByUser(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lines[userID] = nil
		return fmt.Errorf("load cart: %w", err)
	}
	s.lines[userID] = items
	return nil
}

// Add puts qty units of the product in the cart, clamped up to at least
// one MOQ bundle and to a multiple of the MOQ. A repeated add increments
// the existing line; the unit price stays the one captured on first add.
func (s *CartService) Add(userID string, p domain.Product, qty int) (domain.CartItem, error) {
	if userID == "" {
		return domain.CartItem{}, ErrSignInRequired
	}
	add := normalizeQty(qty, p.MinOrderQty)

	s.mu.Lock()
	var line domain.CartItem
	found := false
	for i, it := range s.lines[userID] {
		if it.ProductID == p.ID {
			s.lines[userID][i].Quantity += add
			line = s.lines[userID][i]
			found = true
			break
		}
	}
	if !found {
		line = domain.CartItem{
			ProductID:   p.ID,
			Name:        p.Name,
			CategoryID:  p.CategoryID,
			ImagesJSON:  p.ImagesJSON,
			Price:       p.Price,
			MinOrderQty: p.MinOrderQty,
			Quantity:    add,
			UnitPrice:   p.UnitPrice(),
		}
		s.lines[userID] = append(s.lines[userID], line)
	}
	s.mu.Unlock()

	if err := s.Store.Upsert(userID, line); err != nil {
		return line, fmt.Errorf("%w: %v", ErrCartUnsynced, err)
	}
	return line, nil
}

// Remove drops the line locally and in the store. Removing an absent
// item is a successful no-op.
func (s *CartService) Remove(userID, productID string) error {
	if userID == "" {
		return ErrSignInRequired
	}
	s.mu.Lock()
	items := s.lines[userID]
	for i, it := range items {
		if it.ProductID == productID {
			s.lines[userID] = append(items[:i], items[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	if err := s.Store.DeleteOne(userID, productID); err != nil {
		return fmt.Errorf("%w: %v", ErrCartUnsynced, err)
	}
	return nil
}

// UpdateQuantity sets a line's quantity, normalized up to the nearest
// MOQ multiple. Zero or negative behaves exactly like Remove.
func (s *CartService) UpdateQuantity(userID, productID string, qty int) error {
	if userID == "" {
		return ErrSignInRequired
	}
	if qty <= 0 {
		return s.Remove(userID, productID)
	}

	s.mu.Lock()
	var line domain.CartItem
	found := false
	for i, it := range s.lines[userID] {
		if it.ProductID == productID {
			s.lines[userID][i].Quantity = normalizeQty(qty, it.MinOrderQty)
			line = s.lines[userID][i]
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return nil
	}

	if err := s.Store.Upsert(userID, line); err != nil {
		return fmt.Errorf("%w: %v", ErrCartUnsynced, err)
	}
	return nil
}

// Clear empties the cart locally and in the store. Idempotent.
func (s *CartService) Clear(userID string) error {
	if userID == "" {
		return ErrSignInRequired
	}
	s.mu.Lock()
	s.lines[userID] = nil
	s.mu.Unlock()

	if err := s.Store.DeleteAll(userID); err != nil {
		return fmt.Errorf("%w: %v", ErrCartUnsynced, err)
	}
	return nil
}

// Items returns a copy of the user's cart lines.
func (s *CartService) Items(userID string) []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartItem, len(s.lines[userID]))
	copy(out, s.lines[userID])
	return out
}

// TotalItems and TotalPrice are recomputed from the lines on every call
// rather than cached, so they cannot drift from the cart itself.
func (s *CartService) TotalItems(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, it := range s.lines[userID] {
		n += it.Quantity
	}
	return n
}

func (s *CartService) TotalPrice(userID string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, it := range s.lines[userID] {
		total += it.LineTotal()
	}
	return total
}
