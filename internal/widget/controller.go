// Package widget drives the floating chat surface that stays available on
// every page. It keeps its own conversation session, independent of the
// booking flow, and an append-only transcript of the exchange.
package widget

import (
	"context"
	"strings"

	"github.com/charantej156/Air-Lines-Chat-Agent/internal/agent"
	"github.com/charantej156/Air-Lines-Chat-Agent/internal/log"
	"github.com/charantej156/Air-Lines-Chat-Agent/internal/session"
)

// WelcomeMessage opens the transcript the first time the widget is shown.
const WelcomeMessage = "👋 Hi! I'm the SkyLine assistant. Ask me about flights, bookings, or anything else."

// Role identifies who produced a transcript entry.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
	// RoleNotice carries transient placeholders and error lines.
	RoleNotice Role = "notice"
)

// Message is one visible turn in the widget transcript.
type Message struct {
	Role Role
	Text string
	// Typing marks the transient "agent is typing" placeholder. It is the
	// only kind of entry ever removed from the transcript.
	Typing bool
}

// Agent is the conversational backend the widget talks to.
type Agent interface {
	Chat(ctx context.Context, message, sessionID, token string) (*agent.ChatResponse, error)
}

// Controller owns the widget's open/closed state, its transcript, and its
// conversation session. All mutation happens on the UI goroutine; network
// round trips go through Send, which the caller runs asynchronously and
// reconciles via ApplyReply or ApplyError.
type Controller struct {
	client   Agent
	registry *session.Registry
	logger   *log.Logger

	open     bool
	welcomed bool
	messages []Message
}

func New(client Agent, registry *session.Registry, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Silent()
	}
	return &Controller{
		client:   client,
		registry: registry,
		logger:   logger,
	}
}

// Toggle flips the widget between open and closed. The first open appends
// the fixed welcome message; later opens never repeat it.
func (c *Controller) Toggle() {
	c.open = !c.open
	if c.open && !c.welcomed {
		c.welcomed = true
		c.messages = append(c.messages, Message{Role: RoleAgent, Text: WelcomeMessage})
	}
}

// Open reports whether the widget is currently shown.
func (c *Controller) Open() bool {
	return c.open
}

// Submit records the user's turn and a typing placeholder, and returns the
// trimmed text to send. The input field is expected to be cleared by the
// caller immediately, before any reply arrives, so further messages can be
// queued while this one is outstanding. Blank input is ignored.
func (c *Controller) Submit(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	c.messages = append(c.messages,
		Message{Role: RoleUser, Text: text},
		Message{Role: RoleNotice, Text: "…", Typing: true},
	)
	return text, true
}

// Send performs the network round trip for a submitted message. It carries
// the widget session id, never the primary one, and whatever token is held
// (anonymous use is fine). Callers run it off the UI loop and feed the
// outcome back through ApplyReply or ApplyError.
func (c *Controller) Send(ctx context.Context, text string) (*agent.ChatResponse, error) {
	return c.client.Chat(ctx, text, c.registry.SessionID(session.SurfaceWidget), c.registry.Token())
}

// ApplyReply removes one typing placeholder, appends the agent's turn, and
// adopts the reply's session id if the widget held none. Replies are applied
// in arrival order, which may differ from send order when messages overlap.
func (c *Controller) ApplyReply(resp *agent.ChatResponse) {
	c.removeTyping()
	c.messages = append(c.messages, Message{Role: RoleAgent, Text: resp.Response})

	if _, bound := c.registry.Session(session.SurfaceWidget); !bound {
		if err := c.registry.Bind(session.SurfaceWidget, resp.SessionID); err != nil {
			c.logger.WithError(err).Warn("widget session not bound")
		}
	}
}

// ApplyError removes one typing placeholder and appends a failure notice.
// The transcript survives; the user can simply try again.
func (c *Controller) ApplyError(err error) {
	c.removeTyping()
	c.messages = append(c.messages, Message{Role: RoleNotice, Text: "⚠️ Couldn't reach the assistant. Please try again."})
	c.logger.WithError(err).Warn("widget send failed")
}

// Messages returns the transcript in order. The slice is shared; callers
// must not mutate it.
func (c *Controller) Messages() []Message {
	return c.messages
}

// Waiting reports whether any reply is still outstanding.
func (c *Controller) Waiting() bool {
	for _, m := range c.messages {
		if m.Typing {
			return true
		}
	}
	return false
}

func (c *Controller) removeTyping() {
	for i, m := range c.messages {
		if m.Typing {
			c.messages = append(c.messages[:i], c.messages[i+1:]...)
			return
		}
	}
}
