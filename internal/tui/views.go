package tui

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/charantej156/Air-Lines-Chat-Agent/internal/errors"
	"github.com/charantej156/Air-Lines-Chat-Agent/internal/nav"
	"github.com/charantej156/Air-Lines-Chat-Agent/internal/widget"
)

// Styles contains lipgloss styles for the TUI
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Muted    lipgloss.Style
	Border   lipgloss.Style
	Active   lipgloss.Style
	Help     lipgloss.Style
	Key      lipgloss.Style
	KeyDesc  lipgloss.Style
}

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33")). // Blue
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // Gray
			MarginBottom(1),
		Status: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")), // Cyan
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")), // Green
		Warning: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226")), // Yellow
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("33")). // Blue
			Padding(1, 2),
		Active: lipgloss.NewStyle().
			Background(lipgloss.Color("33")).  // Blue
			Foreground(lipgloss.Color("230")). // Light yellow
			Bold(true).
			Padding(0, 1),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // Gray
			MarginTop(1),
		Key: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33")), // Blue
		KeyDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
	}
}

// View renders the TUI (required by Bubble Tea)
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.quitting {
		return m.styles.Muted.Render("Thanks for flying SkyLine. ✈️") + "\n"
	}

	var b strings.Builder

	b.WriteString(m.renderNavBar())
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(m.styles.Warning.Render("⚠ " + m.notice))
		b.WriteString("\n\n")
	}
	if m.errText != "" {
		b.WriteString(m.styles.Error.Render("✗ " + m.errText))
		b.WriteString("\n\n")
	}

	switch m.router.Current() {
	case nav.PageHome:
		b.WriteString(m.renderHome())
	case nav.PageAuth:
		b.WriteString(m.renderAuth())
	case nav.PageSearch:
		b.WriteString(m.renderSearch())
	case nav.PageBooking:
		b.WriteString(m.renderBooking())
	case nav.PageDashboard:
		b.WriteString(m.renderDashboard())
	}

	if m.widget.Open() {
		b.WriteString("\n\n")
		b.WriteString(m.renderWidget())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelpLine())
	return b.String()
}

// renderNavBar renders the page tabs with the active page highlighted.
func (m Model) renderNavBar() string {
	pages := []struct {
		page  nav.Page
		label string
	}{
		{nav.PageHome, "Home"},
		{nav.PageSearch, "Search"},
		{nav.PageBooking, "Booking"},
		{nav.PageDashboard, "My Bookings"},
		{nav.PageAuth, "Login"},
	}

	items := make([]string, 0, len(pages))
	for _, p := range pages {
		if p.page == m.router.Current() {
			items = append(items, m.styles.Active.Render(p.label))
		} else {
			items = append(items, m.styles.Muted.Render(p.label))
		}
	}
	return m.styles.Title.Render("✈️ SkyLine Airways") + "  " + strings.Join(items, " │ ")
}

func (m Model) renderHome() string {
	var b strings.Builder
	b.WriteString(m.styles.Subtitle.Render("Your conversational travel desk."))
	b.WriteString("\n\n")

	if identity, ok := m.registry.Identity(); ok {
		b.WriteString(fmt.Sprintf("Welcome back, %s.\n", m.styles.Status.Render(identity.DisplayName)))
	} else {
		b.WriteString(m.styles.Muted.Render("You're browsing anonymously. Log in to book flights and see your trips.\n"))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Border.Render(strings.Join([]string{
		m.styles.Key.Render("ctrl+s") + "  search flights",
		m.styles.Key.Render("ctrl+d") + "  my bookings",
		m.styles.Key.Render("ctrl+a") + "  log in",
		m.styles.Key.Render("ctrl+w") + "  chat with the assistant",
	}, "\n")))
	return b.String()
}

func (m Model) renderAuth() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("🔐 Log in"))
	b.WriteString("\n\n")
	for _, in := range m.authInputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if m.busy {
		b.WriteString("\n" + m.spinner.View() + m.styles.Muted.Render(" signing in…"))
	}
	return b.String()
}

func (m Model) renderSearch() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("🔎 Find flights"))
	b.WriteString("\n")

	if m.greeting != "" {
		b.WriteString(m.styles.Success.Render(m.greeting))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, in := range m.searchInputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	if m.busy {
		b.WriteString("\n" + m.spinner.View() + m.styles.Muted.Render(" searching…"))
		return b.String()
	}

	offers := m.orchestrator.Offers()
	if len(offers) == 0 {
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Status.Render(fmt.Sprintf("%d flights found", len(offers))))
	b.WriteString("\n")

	browsing := m.focus >= len(m.searchInputs)
	for i, offer := range offers {
		line := fmt.Sprintf("%s %s  %s → %s  %s  ₹%s",
			offer.Airline, offer.FlightNumber,
			offer.Origin, offer.Destination,
			offer.DepartureTime, formatPrice(offer.Price))
		if browsing && i == m.cursor {
			b.WriteString(m.styles.Active.Render("▸ " + line))
		} else {
			b.WriteString(m.styles.Muted.Render("  " + line))
		}
		b.WriteString("\n")
	}
	if browsing {
		b.WriteString(m.styles.Muted.Render("enter selects the highlighted flight"))
	} else {
		b.WriteString(m.styles.Muted.Render("tab past the date field to browse results"))
	}
	return b.String()
}

func (m Model) renderBooking() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("🎫 Book your flight"))
	b.WriteString("\n\n")

	if m.lastOutcome != nil {
		if m.lastOutcome.Confirmed {
			b.WriteString(m.styles.Border.Render(m.styles.Success.Render(m.lastOutcome.Reply)))
			b.WriteString("\n\n")
			b.WriteString(m.styles.Muted.Render("enter opens My Bookings"))
			return b.String()
		}
		// The agent replied without confirming; show its words and keep
		// the form up for another attempt.
		b.WriteString(m.styles.Border.Render(m.lastOutcome.Reply))
		b.WriteString("\n\n")
	}

	if offer, ok := m.orchestrator.Selected(); ok {
		c := m.orchestrator.Criteria()
		summary := fmt.Sprintf("%s %s  %s → %s on %s  ₹%s",
			offer.Airline, offer.FlightNumber, c.Origin, c.Destination, c.Date, formatPrice(offer.Price))
		b.WriteString(m.styles.Status.Render(summary))
		b.WriteString("\n\n")
	}

	for _, in := range m.bookingInputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if m.busy {
		b.WriteString("\n" + m.spinner.View() + m.styles.Muted.Render(" confirming…"))
	}
	return b.String()
}

func (m Model) renderDashboard() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("📋 My bookings"))
	b.WriteString("\n\n")

	switch {
	case m.busy:
		b.WriteString(m.spinner.View() + m.styles.Muted.Render(" loading your trips…"))
	case m.dashboard == nil:
		b.WriteString(m.styles.Muted.Render("Nothing loaded yet."))
	case m.dashboard.Empty:
		b.WriteString(m.styles.Muted.Render("You have no bookings yet. Search for a flight to get started."))
	default:
		b.WriteString(m.styles.Border.Render(m.dashboard.Reply))
	}
	return b.String()
}

func (m Model) renderWidget() string {
	var b strings.Builder
	b.WriteString(m.styles.Status.Render("💬 SkyLine Assistant"))
	b.WriteString("\n")

	msgs := m.widget.Messages()
	start := 0
	if len(msgs) > 8 {
		start = len(msgs) - 8
	}
	for _, msg := range msgs[start:] {
		switch {
		case msg.Typing:
			b.WriteString(m.spinner.View() + m.styles.Muted.Render(" typing…"))
		case msg.Role == widget.RoleUser:
			b.WriteString(m.styles.Key.Render("you ") + msg.Text)
		case msg.Role == widget.RoleNotice:
			b.WriteString(m.styles.Warning.Render(msg.Text))
		default:
			b.WriteString(msg.Text)
		}
		b.WriteString("\n")
	}

	b.WriteString(m.widgetInput.View())
	return m.styles.Border.Render(b.String())
}

// renderHelpLine renders the help line at the bottom
func (m Model) renderHelpLine() string {
	helpItems := []string{
		m.styles.Key.Render("esc") + " home",
		m.styles.Key.Render("ctrl+s") + " search",
		m.styles.Key.Render("ctrl+d") + " bookings",
		m.styles.Key.Render("ctrl+a") + " login",
		m.styles.Key.Render("ctrl+w") + " chat",
		m.styles.Key.Render("ctrl+c") + " quit",
	}
	return m.styles.Help.Render(strings.Join(helpItems, " • "))
}

// userMessage flattens any error into one line suitable for the banner.
func userMessage(err error) string {
	var se *errors.SkylineError
	if stderrors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}

func formatPrice(p int) string {
	s := strconv.Itoa(p)
	if len(s) <= 3 {
		return s
	}
	// Indian grouping: last three digits, then pairs.
	out := s[len(s)-3:]
	s = s[:len(s)-3]
	for len(s) > 2 {
		out = s[len(s)-2:] + "," + out
		s = s[:len(s)-2]
	}
	if s != "" {
		out = s + "," + out
	}
	return out
}
