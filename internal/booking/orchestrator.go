// Package booking sequences the search → select → confirm → review flow
// against the conversational agent. The flow is an explicit linear sequence,
// not a persisted state machine: criteria, offers, and the selection live
// only in memory for the duration of the run.
package booking

import (
	"context"
	"fmt"

	"github.com/charantej156/Air-Lines-Chat-Agent/internal/agent"
	"github.com/charantej156/Air-Lines-Chat-Agent/internal/errors"
	"github.com/charantej156/Air-Lines-Chat-Agent/internal/extract"
	"github.com/charantej156/Air-Lines-Chat-Agent/internal/log"
	"github.com/charantej156/Air-Lines-Chat-Agent/internal/session"
)

// Agent is the slice of the agent client the orchestrator needs.
type Agent interface {
	Chat(ctx context.Context, message, sessionID, token string) (*agent.ChatResponse, error)
}

// Criteria is one search request's input. All three fields must be non-empty
// before a request is issued.
type Criteria struct {
	Origin      string
	Destination string
	Date        string
}

// SearchResult carries the extracted offers plus the raw reply, which the UI
// renders when the agent answered in prose (no matches, clarifying question).
type SearchResult struct {
	Offers []extract.FlightOffer
	Reply  string
}

// Outcome classifies one booking attempt. The client cannot distinguish
// "rejected" from "needs more input", so an unconfirmed reply is surfaced as
// informational text, never as an error.
type Outcome struct {
	Confirmed bool
	Reply     string
}

// Dashboard is the result of a bookings review request.
type Dashboard struct {
	// Empty is true when the reply carries the no-bookings marker.
	Empty bool
	Reply string
}

// Orchestrator drives the booking flow on the primary conversational surface.
type Orchestrator struct {
	client   Agent
	registry *session.Registry
	logger   *log.Logger

	criteria Criteria
	offers   []extract.FlightOffer
	selected *extract.FlightOffer
}

// New creates an orchestrator with empty transient state.
func New(client Agent, registry *session.Registry, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.Silent()
	}
	return &Orchestrator{
		client:   client,
		registry: registry,
		logger:   logger,
	}
}

// DashboardMessage is the fixed request that opens the bookings review.
const DashboardMessage = "Show my bookings"

// The orchestrator's operations come in two shapes. The combined methods
// (Search, Confirm, LoadDashboard) run the whole round trip and suit
// sequential callers. Event-loop callers split each operation instead:
// build the message (SearchMessage, ConfirmMessage), run Send off the loop,
// and feed the reply back through the matching Apply method on the loop.
// Only the Apply methods and Send's session adoption touch shared state, so
// a caller that keeps them on one thread never races, and a reply it decides
// to drop leaves no trace.

// SearchMessage validates the criteria and returns the outbound request
// text. State is untouched; nothing is sent.
func (o *Orchestrator) SearchMessage(c Criteria) (string, error) {
	if err := validateCriteria(c); err != nil {
		return "", err
	}
	return fmt.Sprintf("Find flights from %s to %s on %s", c.Origin, c.Destination, c.Date), nil
}

// ApplySearch adopts the reply's session id if none is bound, extracts
// offers, and replaces the offer collection wholesale. Any prior selection
// is cleared.
func (o *Orchestrator) ApplySearch(c Criteria, resp *agent.ChatResponse) *SearchResult {
	o.adoptSession(resp)

	offers := extract.Offers(resp.Response)

	o.criteria = c
	o.offers = offers
	o.selected = nil

	o.logger.Debug("search completed", "offers", len(offers))
	return &SearchResult{Offers: offers, Reply: resp.Response}
}

// Search validates the criteria, asks the agent for matching flights, and
// replaces the offer collection wholesale with whatever the reply yields.
// Any prior selection is cleared. On failure nothing changes: criteria,
// offers, and selection keep their previous values.
func (o *Orchestrator) Search(ctx context.Context, c Criteria) (*SearchResult, error) {
	message, err := o.SearchMessage(c)
	if err != nil {
		return nil, err
	}

	resp, err := o.Send(ctx, message)
	if err != nil {
		return nil, err
	}

	return o.ApplySearch(c, resp), nil
}

// Select resolves a position in the current offer collection to a flight and
// marks it selected. The position always indexes the collection produced by
// the most recent search, never a stale copy.
func (o *Orchestrator) Select(index int) (extract.FlightOffer, error) {
	if len(o.offers) == 0 {
		return extract.FlightOffer{}, errors.New(errors.ErrCodeNoSearchFirst, "no flight offers to select from").
			WithSuggestion("Search for flights first")
	}
	if index < 0 || index >= len(o.offers) {
		return extract.FlightOffer{}, errors.New(errors.ErrCodeBadSelection,
			fmt.Sprintf("offer %d does not exist (have %d offers)", index+1, len(o.offers)))
	}

	offer := o.offers[index]
	o.selected = &offer
	return offer, nil
}

// ConfirmMessage validates the selection, seat, and payment method and
// returns the outbound booking request text. State is untouched; nothing is
// sent.
func (o *Orchestrator) ConfirmMessage(seat, payment string) (string, error) {
	if o.selected == nil {
		return "", errors.New(errors.ErrCodeNoSearchFirst, "no flight selected").
			WithSuggestion("Search and select a flight first")
	}
	if seat == "" {
		return "", errors.NewMissingFieldError("seat")
	}
	if payment == "" {
		return "", errors.NewMissingFieldError("payment method")
	}

	return fmt.Sprintf("Book the %s flight %s from %s to %s on %s, seat %s, paying by %s",
		o.selected.Airline, o.selected.FlightNumber,
		o.criteria.Origin, o.criteria.Destination, o.criteria.Date,
		seat, payment), nil
}

// ApplyConfirm classifies a booking reply. On a confirmed booking the
// selection is cleared; an unconfirmed reply keeps it so the user can answer
// the agent and retry.
func (o *Orchestrator) ApplyConfirm(resp *agent.ChatResponse) *Outcome {
	o.adoptSession(resp)

	outcome := &Outcome{
		Confirmed: extract.BookingConfirmed(resp.Response),
		Reply:     resp.Response,
	}

	if outcome.Confirmed {
		o.selected = nil
	}

	return outcome
}

// Confirm validates seat and payment method, sends one booking request
// embedding the selected route, stored date, seat, and payment method, and
// classifies the reply. Validation failures abort before any request is
// sent.
func (o *Orchestrator) Confirm(ctx context.Context, seat, payment string) (*Outcome, error) {
	message, err := o.ConfirmMessage(seat, payment)
	if err != nil {
		return nil, err
	}

	resp, err := o.Send(ctx, message)
	if err != nil {
		return nil, err
	}

	return o.ApplyConfirm(resp), nil
}

// ApplyDashboard classifies a bookings-review reply as empty or populated.
func (o *Orchestrator) ApplyDashboard(resp *agent.ChatResponse) *Dashboard {
	o.adoptSession(resp)

	return &Dashboard{
		Empty: extract.NoBookings(resp.Response),
		Reply: resp.Response,
	}
}

// LoadDashboard sends the fixed bookings-review request and classifies the
// reply. A transport failure is returned as-is so the caller renders a
// distinct failure message; there is no automatic retry.
func (o *Orchestrator) LoadDashboard(ctx context.Context) (*Dashboard, error) {
	resp, err := o.Send(ctx, DashboardMessage)
	if err != nil {
		return nil, err
	}

	return o.ApplyDashboard(resp), nil
}

// Reset drops all transient flow state. Entering home triggers this.
func (o *Orchestrator) Reset() {
	o.criteria = Criteria{}
	o.offers = nil
	o.selected = nil
}

// Offers returns the current offer collection.
func (o *Orchestrator) Offers() []extract.FlightOffer {
	return o.offers
}

// Selected returns the currently selected flight, if any.
func (o *Orchestrator) Selected() (extract.FlightOffer, bool) {
	if o.selected == nil {
		return extract.FlightOffer{}, false
	}
	return *o.selected, true
}

// HasSelection reports whether a flight is selected. The router's booking
// guard reads this.
func (o *Orchestrator) HasSelection() bool {
	return o.selected != nil
}

// Criteria returns the criteria of the most recent successful search.
func (o *Orchestrator) Criteria() Criteria {
	return o.criteria
}

// Send performs one round trip on the primary surface with the currently
// held session id and token. It touches no orchestrator or registry state;
// adoption of a returned session id happens in the Apply methods.
func (o *Orchestrator) Send(ctx context.Context, message string) (*agent.ChatResponse, error) {
	return o.client.Chat(ctx, message, o.registry.SessionID(session.SurfacePrimary), o.registry.Token())
}

// adoptSession binds the reply's session id to the primary surface when none
// is bound yet.
func (o *Orchestrator) adoptSession(resp *agent.ChatResponse) {
	if _, bound := o.registry.Session(session.SurfacePrimary); !bound {
		if err := o.registry.Bind(session.SurfacePrimary, resp.SessionID); err != nil {
			o.logger.WithError(err).Warn("failed to bind primary session")
		}
	}
}

func validateCriteria(c Criteria) error {
	if c.Origin == "" {
		return errors.NewMissingFieldError("origin")
	}
	if c.Destination == "" {
		return errors.NewMissingFieldError("destination")
	}
	if c.Date == "" {
		return errors.NewMissingFieldError("date")
	}
	return nil
}
