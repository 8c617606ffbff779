package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charantej156/Air-Lines-Chat-Agent/internal/agent"
	"github.com/charantej156/Air-Lines-Chat-Agent/internal/errors"
	"github.com/charantej156/Air-Lines-Chat-Agent/internal/session"
)

const offerReply = "✈️ Matching flights (top results):\n\n" +
	"• Air India AI101 — Delhi (DEL) → Mumbai (BOM) — Dep: 2025-12-15 10:00 — Fare: ₹5,500\n" +
	"• Vistara UK997 — Delhi (DEL) → Mumbai (BOM) — Dep: 2025-12-15 14:20 — Fare: ₹6,100\n\n" +
	"To book, just say: 'book this' or 'book first one'."

// scriptedAgent replays canned replies and records what was sent.
type scriptedAgent struct {
	replies   []agent.ChatResponse
	err       error
	messages  []string
	sessions  []string
	tokens    []string
	callCount int
}

func (s *scriptedAgent) Chat(ctx context.Context, message, sessionID, token string) (*agent.ChatResponse, error) {
	s.messages = append(s.messages, message)
	s.sessions = append(s.sessions, sessionID)
	s.tokens = append(s.tokens, token)
	s.callCount++

	if s.err != nil {
		return nil, s.err
	}

	reply := s.replies[0]
	if len(s.replies) > 1 {
		s.replies = s.replies[1:]
	}
	return &reply, nil
}

func newOrchestrator(a Agent) (*Orchestrator, *session.Registry) {
	registry := session.NewRegistry(session.NewMemoryStore(), nil)
	return New(a, registry, nil), registry
}

func TestSearch_ValidatesCriteriaBeforeSending(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
	}{
		{"empty origin", Criteria{Destination: "BOM", Date: "2025-12-15"}},
		{"empty destination", Criteria{Origin: "DEL", Date: "2025-12-15"}},
		{"empty date", Criteria{Origin: "DEL", Destination: "BOM"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := &scriptedAgent{}
			o, _ := newOrchestrator(script)

			_, err := o.Search(context.Background(), tt.criteria)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeMissingField))
			assert.Zero(t, script.callCount, "no request may be sent on validation failure")
		})
	}
}

func TestSearch_ExtractsOffersAndBindsSession(t *testing.T) {
	script := &scriptedAgent{replies: []agent.ChatResponse{{Response: offerReply, SessionID: "sess-1"}}}
	o, registry := newOrchestrator(script)

	result, err := o.Search(context.Background(), Criteria{Origin: "DEL", Destination: "BOM", Date: "2025-12-15"})
	require.NoError(t, err)

	require.Len(t, result.Offers, 2)
	assert.Equal(t, "AI101", result.Offers[0].FlightNumber)
	assert.Equal(t, 5500, result.Offers[0].Price)

	// First reply's session id was adopted for the primary surface.
	assert.Equal(t, "sess-1", registry.SessionID(session.SurfacePrimary))

	// The request carried no session id (none was held yet).
	assert.Equal(t, "", script.sessions[0])
	assert.Contains(t, script.messages[0], "from DEL to BOM on 2025-12-15")
}

func TestSearch_DoesNotRebindHeldSession(t *testing.T) {
	script := &scriptedAgent{replies: []agent.ChatResponse{{Response: offerReply, SessionID: "other"}}}
	o, registry := newOrchestrator(script)
	require.NoError(t, registry.Bind(session.SurfacePrimary, "held"))

	_, err := o.Search(context.Background(), Criteria{Origin: "DEL", Destination: "BOM", Date: "2025-12-15"})
	require.NoError(t, err)

	assert.Equal(t, "held", registry.SessionID(session.SurfacePrimary))
	assert.Equal(t, "held", script.sessions[0], "request carries the held id")
}

func TestSearch_ReplacesOffersWholesale(t *testing.T) {
	script := &scriptedAgent{replies: []agent.ChatResponse{
		{Response: offerReply, SessionID: "sess-1"},
		{Response: "• IndiGo 6E205 — Mumbai (BOM) → Bengaluru (BLR) — Dep: 2025-12-16 06:30 — Fare: ₹3,200", SessionID: "sess-1"},
	}}
	o, _ := newOrchestrator(script)

	_, err := o.Search(context.Background(), Criteria{Origin: "DEL", Destination: "BOM", Date: "2025-12-15"})
	require.NoError(t, err)
	require.Len(t, o.Offers(), 2)

	_, err = o.Search(context.Background(), Criteria{Origin: "BOM", Destination: "BLR", Date: "2025-12-16"})
	require.NoError(t, err)

	// No merge with prior results.
	require.Len(t, o.Offers(), 1)
	assert.Equal(t, "6E205", o.Offers()[0].FlightNumber)
}

func TestSearch_FailureLeavesStateUnchanged(t *testing.T) {
	script := &scriptedAgent{replies: []agent.ChatResponse{{Response: offerReply, SessionID: "sess-1"}}}
	o, _ := newOrchestrator(script)

	_, err := o.Search(context.Background(), Criteria{Origin: "DEL", Destination: "BOM", Date: "2025-12-15"})
	require.NoError(t, err)
	_, err = o.Select(0)
	require.NoError(t, err)

	script.err = errors.NewAgentUnreachableError(context.DeadlineExceeded)
	_, err = o.Search(context.Background(), Criteria{Origin: "BOM", Destination: "BLR", Date: "2025-12-16"})
	require.Error(t, err)

	// Offers, criteria, and selection all keep their previous values.
	assert.Len(t, o.Offers(), 2)
	assert.Equal(t, Criteria{Origin: "DEL", Destination: "BOM", Date: "2025-12-15"}, o.Criteria())
	assert.True(t, o.HasSelection())
}

func TestSearchMessage_DoesNotTouchState(t *testing.T) {
	script := &scriptedAgent{replies: []agent.ChatResponse{{Response: offerReply, SessionID: "sess-1"}}}
	o, registry := newOrchestrator(script)

	message, err := o.SearchMessage(Criteria{Origin: "DEL", Destination: "BOM", Date: "2025-12-15"})
	require.NoError(t, err)
	assert.Contains(t, message, "from DEL to BOM on 2025-12-15")

	// Building the message neither sends nor mutates; everything waits
	// for the reply to be applied.
	assert.Zero(t, script.callCount)
	assert.Empty(t, o.Offers())
	assert.Equal(t, Criteria{}, o.Criteria())
	assert.Equal(t, "", registry.SessionID(session.SurfacePrimary))
}

func TestApplySearch_MutatesAndAdoptsSession(t *testing.T) {
	o, registry := newOrchestrator(&scriptedAgent{})

	result := o.ApplySearch(
		Criteria{Origin: "DEL", Destination: "BOM", Date: "2025-12-15"},
		&agent.ChatResponse{Response: offerReply, SessionID: "sess-1"})

	require.Len(t, result.Offers, 2)
	assert.Len(t, o.Offers(), 2)
	assert.Equal(t, "sess-1", registry.SessionID(session.SurfacePrimary))
}

func TestConfirmMessage_ValidatesWithoutSending(t *testing.T) {
	script := &scriptedAgent{replies: []agent.ChatResponse{{Response: offerReply, SessionID: "sess-1"}}}
	o, _ := newOrchestrator(script)

	// No selection yet.
	_, err := o.ConfirmMessage("12A", "UPI")
	assert.True(t, errors.IsCode(err, errors.ErrCodeNoSearchFirst))

	_, err = o.Search(context.Background(), Criteria{Origin: "DEL", Destination: "BOM", Date: "2025-12-15"})
	require.NoError(t, err)
	_, err = o.Select(0)
	require.NoError(t, err)
	sent := script.callCount

	_, err = o.ConfirmMessage("", "UPI")
	assert.True(t, errors.IsCode(err, errors.ErrCodeMissingField))

	message, err := o.ConfirmMessage("12A", "UPI")
	require.NoError(t, err)
	assert.Contains(t, message, "seat 12A")
	assert.Equal(t, sent, script.callCount, "building the message must not send")
	assert.True(t, o.HasSelection(), "building the message must not clear the selection")
}

func TestSelect(t *testing.T) {
	script := &scriptedAgent{replies: []agent.ChatResponse{{Response: offerReply, SessionID: "sess-1"}}}
	o, _ := newOrchestrator(script)

	// Selecting before any search is a validation error.
	_, err := o.Select(0)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNoSearchFirst))

	_, err = o.Search(context.Background(), Criteria{Origin: "DEL", Destination: "BOM", Date: "2025-12-15"})
	require.NoError(t, err)

	offer, err := o.Select(0)
	require.NoError(t, err)
	assert.Equal(t, "AI101", offer.FlightNumber)
	assert.True(t, o.HasSelection())

	selected, ok := o.Selected()
	require.True(t, ok)
	assert.Equal(t, offer, selected)

	// Out-of-range positions are rejected.
	_, err = o.Select(2)
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadSelection))
	_, err = o.Select(-1)
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadSelection))
}

func TestConfirm_ValidatesBeforeSending(t *testing.T) {
	script := &scriptedAgent{replies: []agent.ChatResponse{{Response: offerReply, SessionID: "sess-1"}}}
	o, _ := newOrchestrator(script)

	_, err := o.Search(context.Background(), Criteria{Origin: "DEL", Destination: "BOM", Date: "2025-12-15"})
	require.NoError(t, err)
	_, err = o.Select(0)
	require.NoError(t, err)

	sent := script.callCount

	_, err = o.Confirm(context.Background(), "", "UPI")
	assert.True(t, errors.IsCode(err, errors.ErrCodeMissingField))

	_, err = o.Confirm(context.Background(), "12A", "")
	assert.True(t, errors.IsCode(err, errors.ErrCodeMissingField))

	assert.Equal(t, sent, script.callCount, "no booking request may be sent on validation failure")
}

func TestConfirm_ClassifiesOutcome(t *testing.T) {
	confirmedReply := "✅ Booking Confirmed\nBooking ID: 42 | PNR: PNR123456\nSeat: 12A | Payment: UPI | Fare: ₹5,500"

	script := &scriptedAgent{replies: []agent.ChatResponse{
		{Response: offerReply, SessionID: "sess-1"},
		{Response: confirmedReply, SessionID: "sess-1"},
	}}
	o, _ := newOrchestrator(script)

	_, err := o.Search(context.Background(), Criteria{Origin: "DEL", Destination: "BOM", Date: "2025-12-15"})
	require.NoError(t, err)
	_, err = o.Select(0)
	require.NoError(t, err)

	outcome, err := o.Confirm(context.Background(), "12A", "UPI")
	require.NoError(t, err)
	assert.True(t, outcome.Confirmed)
	assert.Contains(t, outcome.Reply, "PNR123456")

	// Booking completed: selection cleared.
	assert.False(t, o.HasSelection())

	// The booking message embeds route, date, seat, and payment method.
	last := script.messages[len(script.messages)-1]
	for _, want := range []string{"DEL", "BOM", "2025-12-15", "12A", "UPI"} {
		assert.Contains(t, last, want)
	}
}

func TestConfirm_UnconfirmedReplyKeepsSelection(t *testing.T) {
	clarifying := "💺 What seat would you like (e.g., 12A)?"

	script := &scriptedAgent{replies: []agent.ChatResponse{
		{Response: offerReply, SessionID: "sess-1"},
		{Response: clarifying, SessionID: "sess-1"},
	}}
	o, _ := newOrchestrator(script)

	_, err := o.Search(context.Background(), Criteria{Origin: "DEL", Destination: "BOM", Date: "2025-12-15"})
	require.NoError(t, err)
	_, err = o.Select(0)
	require.NoError(t, err)

	outcome, err := o.Confirm(context.Background(), "99Z", "UPI")
	require.NoError(t, err)

	// Not an error: the raw reply is surfaced as information.
	assert.False(t, outcome.Confirmed)
	assert.Equal(t, clarifying, outcome.Reply)
	assert.True(t, o.HasSelection(), "selection survives an unconfirmed reply")
}

func TestLoadDashboard(t *testing.T) {
	t.Run("no bookings", func(t *testing.T) {
		script := &scriptedAgent{replies: []agent.ChatResponse{{Response: "📋 You have no bookings yet.", SessionID: "sess-1"}}}
		o, _ := newOrchestrator(script)

		dash, err := o.LoadDashboard(context.Background())
		require.NoError(t, err)
		assert.True(t, dash.Empty)
	})

	t.Run("populated", func(t *testing.T) {
		script := &scriptedAgent{replies: []agent.ChatResponse{{Response: "📋 **Your Bookings (2 total)**\n...", SessionID: "sess-1"}}}
		o, _ := newOrchestrator(script)

		dash, err := o.LoadDashboard(context.Background())
		require.NoError(t, err)
		assert.False(t, dash.Empty)
		assert.Contains(t, dash.Reply, "Your Bookings")
	})

	t.Run("transport failure is returned, not retried", func(t *testing.T) {
		script := &scriptedAgent{err: errors.NewAgentUnreachableError(context.DeadlineExceeded)}
		o, _ := newOrchestrator(script)

		_, err := o.LoadDashboard(context.Background())
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeAgentUnreachable))
		assert.Equal(t, 1, script.callCount)
	})
}

func TestReset(t *testing.T) {
	script := &scriptedAgent{replies: []agent.ChatResponse{{Response: offerReply, SessionID: "sess-1"}}}
	o, _ := newOrchestrator(script)

	_, err := o.Search(context.Background(), Criteria{Origin: "DEL", Destination: "BOM", Date: "2025-12-15"})
	require.NoError(t, err)
	_, err = o.Select(1)
	require.NoError(t, err)

	o.Reset()

	assert.Empty(t, o.Offers())
	assert.False(t, o.HasSelection())
	assert.Equal(t, Criteria{}, o.Criteria())
}

// End-to-end over a real HTTP client against a fake agent service.
func TestEndToEnd_SearchSelectConfirm(t *testing.T) {
	var bookingRequests int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req agent.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		resp := agent.ChatResponse{UserInput: req.Message, SessionID: "e2e-session"}
		if req.SessionID != nil {
			resp.SessionID = *req.SessionID
		}

		switch {
		case strings.Contains(req.Message, "Find flights"):
			resp.Response = "• Air India AI101 — Delhi (DEL) → Mumbai (BOM) — Dep: 2025-12-15 10:00 — Fare: ₹5,500"
		case strings.Contains(req.Message, "Book the"):
			bookingRequests++
			require.NotNil(t, req.Token, "booking request must carry the auth token")
			resp.Response = "✅ Booking Confirmed\nBooking ID: 7 | PNR: PNR000007"
		default:
			resp.Response = "✈️ How can I help?"
		}

		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := agent.NewClient(server.URL, 5*time.Second, nil)
	registry := session.NewRegistry(session.NewMemoryStore(), nil)
	require.NoError(t, registry.SetIdentity(session.Identity{UserID: "7", DisplayName: "Priya", Email: "p@example.com"}, "tok-1"))

	o := New(client, registry, nil)

	result, err := o.Search(context.Background(), Criteria{Origin: "DEL", Destination: "BOM", Date: "2025-12-15"})
	require.NoError(t, err)
	require.Len(t, result.Offers, 1)

	offer, err := o.Select(0)
	require.NoError(t, err)
	assert.Equal(t, "Air India", offer.Airline)

	outcome, err := o.Confirm(context.Background(), "12A", "UPI")
	require.NoError(t, err)
	assert.True(t, outcome.Confirmed)
	assert.Equal(t, 1, bookingRequests)
	assert.Equal(t, "e2e-session", registry.SessionID(session.SurfacePrimary))
}
