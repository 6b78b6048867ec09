package services

import (
	"log"
	"sync"
	"time"

	"github.com/Asip90/User-View-OpenFood/entity"
)

// Session is one diner's in-memory state: the menu snapshot, the cart, the
// filter state and the checkout pipeline. Nothing survives a restart; the
// cart is memory-only on purpose.
type Session struct {
	ID         string
	TableToken string

	Cart     *CartService
	Checkout *CheckoutService

	mu       sync.Mutex
	menu     *entity.MenuData
	filter   entity.FilterState
	lastSeen time.Time
}

// Menu returns the snapshot, or nil before the first successful fetch.
func (s *Session) Menu() *entity.MenuData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.menu
}

// SetMenu stores the snapshot fetched for this page load.
func (s *Session) SetMenu(menu *entity.MenuData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menu = menu
}

func (s *Session) Filter() entity.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

func (s *Session) SetFilter(f entity.FilterState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
}

// ClearFilters resets every filter field and closes the category picker in
// one atomic update.
func (s *Session) ClearFilters() entity.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.ClearAll()
	return s.filter
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// SessionService owns every live session, keyed by diner cookie plus table
// token. Idle sessions are swept; sweeping tears down checkout timers so
// they never fire against a dead session.
type SessionService struct {
	orders OrderCreator
	ttl    time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionService(orders OrderCreator, ttl time.Duration) *SessionService {
	return &SessionService{
		orders:   orders,
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

func sessionKey(id, tableToken string) string {
	return id + "|" + tableToken
}

// GetOrCreate resolves the session for a diner cookie and table token,
// creating it on first contact.
func (s *SessionService) GetOrCreate(id, tableToken string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := sessionKey(id, tableToken)
	if sess, ok := s.sessions[key]; ok {
		sess.touch(time.Now())
		return sess
	}

	cart := NewCartService()
	sess := &Session{
		ID:         id,
		TableToken: tableToken,
		Cart:       cart,
		Checkout:   NewCheckoutService(cart, s.orders, tableToken),
		filter:     entity.NewFilterState(),
		lastSeen:   time.Now(),
	}
	s.sessions[key] = sess
	return sess
}

// Sweep drops sessions idle past the TTL and returns how many were
// removed.
func (s *SessionService) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int
	for key, sess := range s.sessions {
		if sess.idleSince(now) > s.ttl {
			sess.Checkout.Teardown()
			delete(s.sessions, key)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep on a ticker until stop is closed.
func (s *SessionService) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := s.Sweep(time.Now()); n > 0 {
					log.Printf("swept %d idle sessions", n)
				}
			case <-stop:
				return
			}
		}
	}()
}

// Len is the number of live sessions.
func (s *SessionService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
