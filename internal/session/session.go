package session

import (
	"sync"

	"vailure/internal/cart"
	"vailure/internal/chat"
	"vailure/internal/domain"
)

// Session bundles one visitor's four mutable stores. Each store carries
// its own mutex; no operation locks two stores at once — cross-store
// sequences (confirm-add, search toggle) run as ordered single-store steps.
type Session struct {
	ID     string
	Cart   *cart.Ledger
	Chat   *chat.Session
	Filter *Filter
	View   *View
}

// ConfirmAdd is the quick-view add-to-cart path: the ledger add happens
// once per confirmation window; a second invocation inside the window is
// ignored and leaves the ledger untouched.
func (s *Session) ConfirmAdd() (domain.Product, bool) {
	p, ok := s.View.BeginConfirm()
	if !ok {
		return domain.Product{}, false
	}
	s.Cart.Add(p)
	return p, true
}

// ToggleSearch flips the search bar; closing it resets the search text
// rather than preserving it for the next open.
func (s *Session) ToggleSearch() bool {
	open := s.View.ToggleSearchBar()
	if !open {
		s.Filter.SetSearch("")
	}
	return open
}

// Registry holds live sessions keyed by the sid cookie. In-memory only:
// nothing survives a restart.
type Registry struct {
	mu        sync.Mutex
	assistant chat.Assistant
	sessions  map[string]*Session
}

func NewRegistry(assistant chat.Assistant) *Registry {
	return &Registry{assistant: assistant, sessions: make(map[string]*Session)}
}

// Ensure returns the session for sid, creating it on first sight.
func (r *Registry) Ensure(sid string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[sid]; ok {
		return s
	}
	s := &Session{
		ID:     sid,
		Cart:   cart.NewLedger(),
		Chat:   chat.NewSession(r.assistant),
		Filter: NewFilter(),
		View:   NewView(),
	}
	r.sessions[sid] = s
	return s
}
