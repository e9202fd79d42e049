package session

import (
	"sync"
	"time"

	"vailure/internal/domain"
)

// confirmWindow is how long an add-to-cart confirmation is held before
// quick-view auto-closes; repeat invocations inside it are ignored.
const confirmWindow = 1000 * time.Millisecond

// View tracks which product is under quick-view and whether the cart
// panel / search bar are open. Quick-view and the cart panel may be open
// simultaneously; the presentation layer treats quick-view as modal-on-top.
type View struct {
	mu             sync.Mutex
	quickView      *domain.Product
	cartPanelOpen  bool
	searchBarOpen  bool
	confirmedUntil time.Time
	confirmGen     int
	now            func() time.Time
	after          func(time.Duration, func()) // time.AfterFunc, injectable in tests
}

func NewView() *View {
	return &View{
		now: time.Now,
		after: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}
}

// OpenQuickView selects p. Bumps the confirm generation so a timer from a
// previous confirmation cannot close the fresh modal.
func (v *View) OpenQuickView(p domain.Product) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.quickView = &p
	v.confirmGen++
	v.confirmedUntil = time.Time{}
}

// CloseQuickView clears the selection (explicit close or Escape).
func (v *View) CloseQuickView() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.quickView = nil
	v.confirmGen++
	v.confirmedUntil = time.Time{}
}

// QuickView returns the product under quick-view, if any.
func (v *View) QuickView() (domain.Product, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.quickView == nil {
		return domain.Product{}, false
	}
	return *v.quickView, true
}

// BeginConfirm starts the confirmed-add window for the quick-view product.
// Returns the product and false when nothing is under quick-view or a
// confirmation is already pending (double-submission inside the window is
// ignored). After the window elapses quick-view auto-closes.
func (v *View) BeginConfirm() (domain.Product, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.quickView == nil {
		return domain.Product{}, false
	}
	if v.now().Before(v.confirmedUntil) {
		return domain.Product{}, false
	}
	v.confirmedUntil = v.now().Add(confirmWindow)
	v.confirmGen++
	gen := v.confirmGen
	p := *v.quickView
	v.after(confirmWindow, func() { v.expireConfirm(gen) })
	return p, true
}

// Confirming reports whether the confirmed-add window is still open.
func (v *View) Confirming() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now().Before(v.confirmedUntil)
}

func (v *View) expireConfirm(gen int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.confirmGen {
		return
	}
	v.quickView = nil
	v.confirmedUntil = time.Time{}
}

// ToggleCartPanel flips the cart panel and returns the new state.
func (v *View) ToggleCartPanel() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cartPanelOpen = !v.cartPanelOpen
	return v.cartPanelOpen
}

func (v *View) CartPanelOpen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cartPanelOpen
}

// ToggleSearchBar flips the search bar and returns the new state. The
// caller clears the filter's search text on close (see Session).
func (v *View) ToggleSearchBar() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.searchBarOpen = !v.searchBarOpen
	return v.searchBarOpen
}

func (v *View) SearchBarOpen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.searchBarOpen
}
