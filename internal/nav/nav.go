// Package nav is the finite-state page controller. It maps a requested page
// to a committed transition, enforcing entry guards, and is the single owner
// of which page is current.
package nav

// Page is one of the fixed set of client pages.
type Page string

const (
	// PageHome is the initial state. Re-entering it resets all transient
	// application state; it is the only page with this side effect.
	PageHome Page = "home"

	// PageSearch shows the search form and the last offer list.
	PageSearch Page = "search"

	// PageBooking collects seat and payment for the selected flight.
	PageBooking Page = "booking"

	// PageDashboard reviews the traveler's bookings. Requires identity.
	PageDashboard Page = "dashboard"

	// PageAuth is the login page.
	PageAuth Page = "auth"
)

// ParsePage parses a page name.
func ParsePage(s string) (Page, bool) {
	switch Page(s) {
	case PageHome, PageSearch, PageBooking, PageDashboard, PageAuth:
		return Page(s), true
	default:
		return "", false
	}
}

// Transition is the committed result of a navigation request.
type Transition struct {
	// Requested is the page that was asked for.
	Requested Page

	// Target is the page actually entered. Differs from Requested when a
	// guard redirected.
	Target Page

	// Redirected is true when a guard rejected the requested page.
	Redirected bool

	// Notice is a user-visible explanation of a redirect. Guard redirects
	// are not errors; they carry a notice instead.
	Notice string

	// Reset is true when the transition must wipe transient state. Only
	// entering home sets it.
	Reset bool
}

// Router evaluates guards and tracks the current page. Transitions are
// synchronous: guards run immediately and the target is committed before any
// page content is loaded.
type Router struct {
	current Page

	authenticated func() bool
	hasSelection  func() bool
}

// NewRouter creates a router at home. The two predicates report whether an
// identity is established and whether a flight is currently selected.
func NewRouter(authenticated, hasSelection func() bool) *Router {
	return &Router{
		current:       PageHome,
		authenticated: authenticated,
		hasSelection:  hasSelection,
	}
}

// Current returns the current page.
func (r *Router) Current() Page {
	return r.current
}

// GoTo requests a transition to page and commits the result.
//
// Guards, evaluated in a fixed order, identity before selection: dashboard
// and booking require an identity, and missing identity always redirects to
// auth no matter what else is missing; booking additionally requires a
// selected flight, and a missing selection redirects to search. The router
// never enters a guarded page with its precondition unmet.
func (r *Router) GoTo(page Page) Transition {
	t := Transition{Requested: page, Target: page}

	switch page {
	case PageDashboard:
		if !r.authenticated() {
			t.Target = PageAuth
			t.Redirected = true
			t.Notice = "Please log in to view your bookings."
		}
	case PageBooking:
		if !r.authenticated() {
			t.Target = PageAuth
			t.Redirected = true
			t.Notice = "Please log in to book a flight."
		} else if !r.hasSelection() {
			t.Target = PageSearch
			t.Redirected = true
			t.Notice = "Select a flight before booking."
		}
	case PageHome:
		t.Reset = true
	}

	r.current = t.Target
	return t
}
