package models

import (
	"sync"
	"time"

	"github.com/orostudio/spareparts/internal/cart"
)

// OrderSession is one user's order in progress
type OrderSession struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Cart holds the lines added so far
	Cart *cart.Cart `json:"-"`
	// Selections holds the quantities typed into the part list that have
	// not been added to the cart yet
	Selections map[cart.Key]int `json:"-"`

	mu         sync.Mutex
	lastActive time.Time
}

// NewOrderSession creates an empty session
func NewOrderSession(id string) *OrderSession {
	now := time.Now()
	return &OrderSession{
		ID:         id,
		CreatedAt:  now,
		UpdatedAt:  now,
		lastActive: now,
		Cart:       cart.New(),
		Selections: make(map[cart.Key]int),
	}
}

// Lock serialises operations on the session
func (s *OrderSession) Lock() { s.mu.Lock() }

// Unlock releases the session lock
func (s *OrderSession) Unlock() { s.mu.Unlock() }

// Touch records a modification. The caller holds the lock.
func (s *OrderSession) Touch() {
	s.UpdatedAt = time.Now()
	s.lastActive = s.UpdatedAt
}

// MarkActive records that the session was used without changing it
func (s *OrderSession) MarkActive() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
}

// LastActive returns when the session was last used
func (s *OrderSession) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Summary is a read-only view of a session's cart
type Summary struct {
	SessionID     string      `json:"session_id"`
	Lines         []cart.Line `json:"lines"`
	LineCount     int         `json:"line_count"`
	TotalQuantity int         `json:"total_quantity"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// MachineSelection is a machine's parts with the pending quantity for each
type MachineSelection struct {
	Machine string          `json:"machine"`
	Parts   []PartSelection `json:"parts"`
}

// PartSelection is a catalog part with its pending quantity
type PartSelection struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}
