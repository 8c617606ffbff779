// Package tui implements the interactive terminal client: five pages driven
// by the navigation router, plus a chat widget overlay that stays available
// everywhere.
package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/charantej156/Air-Lines-Chat-Agent/internal/agent"
	"github.com/charantej156/Air-Lines-Chat-Agent/internal/booking"
	"github.com/charantej156/Air-Lines-Chat-Agent/internal/log"
	"github.com/charantej156/Air-Lines-Chat-Agent/internal/nav"
	"github.com/charantej156/Air-Lines-Chat-Agent/internal/session"
	"github.com/charantej156/Air-Lines-Chat-Agent/internal/widget"
)

// keyMap defines the keyboard shortcuts
type keyMap struct {
	Quit      key.Binding
	Widget    key.Binding
	Home      key.Binding
	Search    key.Binding
	Dashboard key.Binding
	Auth      key.Binding
	Next      key.Binding
	Prev      key.Binding
	Submit    key.Binding
}

var keys = keyMap{
	Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Widget:    key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "chat widget")),
	Home:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "home")),
	Search:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "search")),
	Dashboard: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "my bookings")),
	Auth:      key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "login")),
	Next:      key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:      key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
	Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
}

// Model represents the TUI application state
type Model struct {
	client       *agent.Client
	registry     *session.Registry
	orchestrator *booking.Orchestrator
	widget       *widget.Controller
	router       *nav.Router
	logger       *log.Logger

	// Form state, one input set per page.
	authInputs    []textinput.Model
	searchInputs  []textinput.Model
	bookingInputs []textinput.Model
	widgetInput   textinput.Model
	focus         int
	cursor        int // offer cursor on the search page

	// Request state. navToken changes on every page transition; replies
	// carrying a stale token are dropped instead of mutating a page the
	// user has already left.
	spinner  spinner.Model
	busy     bool
	navToken string

	// Content rendered by the current page.
	notice      string
	errText     string
	greeting    string
	dashboard   *booking.Dashboard
	lastOutcome *booking.Outcome

	// UI state
	width    int
	height   int
	ready    bool
	quitting bool
	styles   Styles
}

// NewModel wires the application state behind a fresh TUI model.
func NewModel(client *agent.Client, registry *session.Registry, orchestrator *booking.Orchestrator, wc *widget.Controller, logger *log.Logger) Model {
	if logger == nil {
		logger = log.Silent()
	}

	router := nav.NewRouter(registry.Authenticated, orchestrator.HasSelection)

	auth := make([]textinput.Model, 2)
	auth[0] = newInput("email", 64)
	auth[1] = newInput("password", 64)
	auth[1].EchoMode = textinput.EchoPassword
	auth[0].Focus()

	search := make([]textinput.Model, 3)
	search[0] = newInput("origin (e.g. Delhi)", 40)
	search[1] = newInput("destination (e.g. Mumbai)", 40)
	search[2] = newInput("date (YYYY-MM-DD)", 16)

	book := make([]textinput.Model, 2)
	book[0] = newInput("seat (e.g. 12A)", 8)
	book[1] = newInput("payment method (e.g. UPI)", 24)

	wi := newInput("ask me anything…", 200)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		client:        client,
		registry:      registry,
		orchestrator:  orchestrator,
		widget:        wc,
		router:        router,
		logger:        logger,
		authInputs:    auth,
		searchInputs:  search,
		bookingInputs: book,
		widgetInput:   wi,
		spinner:       sp,
		navToken:      uuid.NewString(),
		styles:        DefaultStyles(),
	}
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	return in
}

// Init initializes the TUI model (required by Bubble Tea)
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Messages produced by asynchronous commands.

type loginDoneMsg struct {
	resp *agent.LoginResponse
	err  error
}

// The flow messages carry the raw agent reply, not applied state: the
// command goroutine only performs the HTTP round trip, and Update applies
// the reply on the event loop once the navigation token checks out. A reply
// that is dropped as stale therefore never touched anything.

type searchDoneMsg struct {
	token    string
	criteria booking.Criteria
	resp     *agent.ChatResponse
	err      error
}

type confirmDoneMsg struct {
	token string
	resp  *agent.ChatResponse
	err   error
}

type dashboardDoneMsg struct {
	token string
	resp  *agent.ChatResponse
	err   error
}

type widgetReplyMsg struct {
	resp *agent.ChatResponse
	err  error
}

// Update handles messages and updates the model state (required by Bubble Tea)
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loginDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = userMessage(msg.err)
			return m, nil
		}
		if err := m.registry.SetIdentity(session.Identity{
			UserID:      strconv.Itoa(msg.resp.CustomerID),
			DisplayName: msg.resp.Name,
			Email:       msg.resp.Email,
		}, msg.resp.Token); err != nil {
			m.logger.WithError(err).Warn("identity not persisted")
		}
		m.greeting = msg.resp.Message
		m.errText = ""
		m.goTo(nav.PageSearch)
		return m, nil

	case searchDoneMsg:
		if msg.token != m.navToken {
			return m, nil // stale reply, page already changed
		}
		m.busy = false
		if msg.err != nil {
			m.errText = userMessage(msg.err)
			return m, nil
		}
		m.orchestrator.ApplySearch(msg.criteria, msg.resp)
		m.errText = ""
		m.cursor = 0
		return m, nil

	case confirmDoneMsg:
		if msg.token != m.navToken {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			m.errText = userMessage(msg.err)
			return m, nil
		}
		m.errText = ""
		m.lastOutcome = m.orchestrator.ApplyConfirm(msg.resp)
		return m, nil

	case dashboardDoneMsg:
		if msg.token != m.navToken {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			m.errText = userMessage(msg.err)
			return m, nil
		}
		m.errText = ""
		m.dashboard = m.orchestrator.ApplyDashboard(msg.resp)
		return m, nil

	case widgetReplyMsg:
		if msg.err != nil {
			m.widget.ApplyError(msg.err)
		} else {
			m.widget.ApplyReply(msg.resp)
		}
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Widget):
		m.widget.Toggle()
		if m.widget.Open() {
			m.widgetInput.Focus()
		} else {
			m.widgetInput.Blur()
		}
		return m, nil
	}

	// While the widget is open it owns the keyboard.
	if m.widget.Open() {
		return m.handleWidgetKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Home):
		m.goTo(nav.PageHome)
		return m, nil
	case key.Matches(msg, keys.Search):
		m.goTo(nav.PageSearch)
		return m, nil
	case key.Matches(msg, keys.Auth):
		m.goTo(nav.PageAuth)
		return m, nil
	case key.Matches(msg, keys.Dashboard):
		if m.goTo(nav.PageDashboard) {
			return m.startDashboardLoad()
		}
		return m, nil
	}

	switch m.router.Current() {
	case nav.PageAuth:
		return m.handleAuthKey(msg)
	case nav.PageSearch:
		return m.handleSearchKey(msg)
	case nav.PageBooking:
		return m.handleBookingKey(msg)
	}
	return m, nil
}

// goTo runs a router transition and applies its side effects. It reports
// whether the requested page was actually entered.
func (m *Model) goTo(page nav.Page) bool {
	t := m.router.GoTo(page)
	m.navToken = uuid.NewString()
	m.busy = false
	m.notice = t.Notice
	m.errText = ""
	m.focus = 0
	m.blurAll()

	if t.Reset {
		m.orchestrator.Reset()
		m.dashboard = nil
		m.lastOutcome = nil
		m.cursor = 0
		for i := range m.searchInputs {
			m.searchInputs[i].SetValue("")
		}
		for i := range m.bookingInputs {
			m.bookingInputs[i].SetValue("")
		}
	}

	switch t.Target {
	case nav.PageAuth:
		m.authInputs[0].Focus()
	case nav.PageSearch:
		m.searchInputs[0].Focus()
	case nav.PageBooking:
		m.bookingInputs[0].Focus()
	}
	return !t.Redirected
}

func (m *Model) blurAll() {
	for i := range m.authInputs {
		m.authInputs[i].Blur()
	}
	for i := range m.searchInputs {
		m.searchInputs[i].Blur()
	}
	for i := range m.bookingInputs {
		m.bookingInputs[i].Blur()
	}
}

func (m Model) handleWidgetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Submit) {
		text, ok := m.widget.Submit(m.widgetInput.Value())
		// Input clears right away; the reply arrives whenever it arrives.
		m.widgetInput.SetValue("")
		if !ok {
			return m, nil
		}
		return m, m.widgetSendCmd(text)
	}

	var cmd tea.Cmd
	m.widgetInput, cmd = m.widgetInput.Update(msg)
	return m, cmd
}

func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Next), key.Matches(msg, keys.Prev):
		m.focus = cycleFocus(m.focus, len(m.authInputs), key.Matches(msg, keys.Prev))
		return m.refocus(m.authInputs), nil

	case key.Matches(msg, keys.Submit):
		if m.busy {
			return m, nil
		}
		email := m.authInputs[0].Value()
		password := m.authInputs[1].Value()
		if email == "" || password == "" {
			m.errText = "Email and password are both required."
			return m, nil
		}
		m.busy = true
		return m, m.loginCmd(email, password)
	}

	var cmd tea.Cmd
	m.authInputs[m.focus], cmd = m.authInputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	offers := m.orchestrator.Offers()

	// With results on screen, up/down moves the offer cursor and enter
	// selects; tab returns focus to the criteria form.
	if len(offers) > 0 && m.focus >= len(m.searchInputs) {
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "j":
			if m.cursor < len(offers)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			if _, err := m.orchestrator.Select(m.cursor); err != nil {
				m.errText = userMessage(err)
				return m, nil
			}
			m.goTo(nav.PageBooking)
			return m, nil
		case "tab":
			m.focus = 0
			return m.refocus(m.searchInputs), nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Next), key.Matches(msg, keys.Prev):
		m.focus = cycleFocus(m.focus, len(m.searchInputs), key.Matches(msg, keys.Prev))
		if m.focus == 0 && len(offers) > 0 && msg.String() == "tab" {
			// Wrapped past the last field: move into the result list.
			m.focus = len(m.searchInputs)
			m.blurAll()
			return m, nil
		}
		return m.refocus(m.searchInputs), nil

	case key.Matches(msg, keys.Submit):
		if m.busy {
			return m, nil
		}
		c := booking.Criteria{
			Origin:      m.searchInputs[0].Value(),
			Destination: m.searchInputs[1].Value(),
			Date:        m.searchInputs[2].Value(),
		}
		message, err := m.orchestrator.SearchMessage(c)
		if err != nil {
			m.errText = userMessage(err)
			return m, nil
		}
		m.busy = true
		return m, m.searchCmd(m.navToken, c, message)
	}

	var cmd tea.Cmd
	m.searchInputs[m.focus], cmd = m.searchInputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) handleBookingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Next), key.Matches(msg, keys.Prev):
		m.focus = cycleFocus(m.focus, len(m.bookingInputs), key.Matches(msg, keys.Prev))
		return m.refocus(m.bookingInputs), nil

	case key.Matches(msg, keys.Submit):
		if m.busy {
			return m, nil
		}
		if m.lastOutcome != nil && m.lastOutcome.Confirmed {
			// Confirmation screen: enter moves on to the dashboard.
			if m.goTo(nav.PageDashboard) {
				return m.startDashboardLoad()
			}
			return m, nil
		}
		message, err := m.orchestrator.ConfirmMessage(m.bookingInputs[0].Value(), m.bookingInputs[1].Value())
		if err != nil {
			m.errText = userMessage(err)
			return m, nil
		}
		m.busy = true
		return m, m.confirmCmd(m.navToken, message)
	}

	var cmd tea.Cmd
	m.bookingInputs[m.focus], cmd = m.bookingInputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) startDashboardLoad() (tea.Model, tea.Cmd) {
	m.busy = true
	m.dashboard = nil
	return m, m.dashboardCmd(m.navToken)
}

func (m Model) refocus(inputs []textinput.Model) Model {
	m.blurAll()
	if m.focus < len(inputs) {
		inputs[m.focus].Focus()
	}
	return m
}

func cycleFocus(focus, n int, backwards bool) int {
	if backwards {
		return (focus - 1 + n) % n
	}
	return (focus + 1) % n
}

// Command constructors. Each captures everything it needs, session id and
// token included, while still on the event loop; the goroutine then performs
// only the HTTP round trip and reports the raw reply back through a typed
// message. No command touches orchestrator, registry, or widget state.
// Context comes from Background because the HTTP client already enforces the
// configured timeout.

func (m Model) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.client.Login(context.Background(), email, password)
		return loginDoneMsg{resp: resp, err: err}
	}
}

func (m Model) searchCmd(token string, c booking.Criteria, message string) tea.Cmd {
	sessionID := m.registry.SessionID(session.SurfacePrimary)
	authToken := m.registry.Token()
	return func() tea.Msg {
		resp, err := m.client.Chat(context.Background(), message, sessionID, authToken)
		return searchDoneMsg{token: token, criteria: c, resp: resp, err: err}
	}
}

func (m Model) confirmCmd(token, message string) tea.Cmd {
	sessionID := m.registry.SessionID(session.SurfacePrimary)
	authToken := m.registry.Token()
	return func() tea.Msg {
		resp, err := m.client.Chat(context.Background(), message, sessionID, authToken)
		return confirmDoneMsg{token: token, resp: resp, err: err}
	}
}

func (m Model) dashboardCmd(token string) tea.Cmd {
	sessionID := m.registry.SessionID(session.SurfacePrimary)
	authToken := m.registry.Token()
	return func() tea.Msg {
		resp, err := m.client.Chat(context.Background(), booking.DashboardMessage, sessionID, authToken)
		return dashboardDoneMsg{token: token, resp: resp, err: err}
	}
}

func (m Model) widgetSendCmd(text string) tea.Cmd {
	sessionID := m.registry.SessionID(session.SurfaceWidget)
	authToken := m.registry.Token()
	return func() tea.Msg {
		resp, err := m.client.Chat(context.Background(), text, sessionID, authToken)
		return widgetReplyMsg{resp: resp, err: err}
	}
}
