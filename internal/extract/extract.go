// Package extract converts the booking agent's natural-language replies into
// structured records. Every function here is pure and total: arbitrary input
// degrades to an empty result or a negative classification, never an error.
// The agent's prose is not a contract the client can enforce.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Markers the agent embeds in replies. These are fixed strings produced by the
// agent's tools, probed as substrings on the raw reply text.
const (
	// ConfirmationMarker is present in a successful booking reply.
	ConfirmationMarker = "✅ Booking Confirmed"

	// NoBookingsMarker is present when the customer has no bookings.
	NoBookingsMarker = "You have no bookings yet"
)

// FlightOffer is one structured flight offer parsed from a reply line.
type FlightOffer struct {
	Airline       string
	FlightNumber  string
	Origin        string
	Destination   string
	DepartureTime string

	// Price is the fare in whole rupees, thousands separators removed.
	Price int
}

// offerLine matches the agent's offer grammar:
//
//	• <airline> <flightNumber> — <origin> → <destination> — Dep: <datetime> — Fare: ₹<amount>
//
// The airline may span several words; the flight number is the last token
// before the first em-dash. Origin and destination may carry airport codes in
// parentheses. The amount may contain comma thousands separators.
var offerLine = regexp.MustCompile(`^\s*•\s+(.+)\s+(\S+)\s+—\s+(.+?)\s+→\s+(.+?)\s+—\s+Dep:\s+(.+?)\s+—\s+Fare:\s+₹([0-9][0-9,]*)\s*$`)

// Offers scans a reply line by line and returns every line matching the offer
// grammar, in input order. Non-matching lines are skipped silently; a
// malformed line never aborts extraction of subsequent lines.
func Offers(reply string) []FlightOffer {
	var offers []FlightOffer

	for _, line := range strings.Split(reply, "\n") {
		m := offerLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		price, err := strconv.Atoi(strings.ReplaceAll(m[6], ",", ""))
		if err != nil || price < 0 {
			// Unparseable amount: the line does not match the grammar.
			continue
		}

		offers = append(offers, FlightOffer{
			Airline:       m[1],
			FlightNumber:  m[2],
			Origin:        m[3],
			Destination:   m[4],
			DepartureTime: m[5],
			Price:         price,
		})
	}

	return offers
}

// BookingConfirmed reports whether the reply carries the fixed booking
// confirmation marker.
func BookingConfirmed(reply string) bool {
	return strings.Contains(reply, ConfirmationMarker)
}

// NoBookings reports whether the reply carries the fixed empty-state marker.
// Independent of BookingConfirmed: the two probes are evaluated separately on
// the raw text and are not mutually exclusive by construction.
func NoBookings(reply string) bool {
	return strings.Contains(reply, NoBookingsMarker)
}
