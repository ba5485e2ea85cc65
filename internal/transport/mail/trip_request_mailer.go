package mail

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/blink-new/ecotravel-booking-platform/internal/domain"
	"github.com/blink-new/ecotravel-booking-platform/internal/repository/ports"
)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// TripRequestMailer tells the agency inbox about newly submitted trip requests.
type TripRequestMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	inbox    string
	send     sendFunc
}

var _ ports.TripRequestNotifier = (*TripRequestMailer)(nil)

func NewTripRequestMailer(host, port, username, password, from, inbox string) *TripRequestMailer {
	return &TripRequestMailer{
		host:     strings.TrimSpace(host),
		port:     strings.TrimSpace(port),
		username: username,
		password: password,
		from:     strings.TrimSpace(from),
		inbox:    strings.TrimSpace(inbox),
		send:     smtp.SendMail,
	}
}

func (m *TripRequestMailer) TripRequestSubmitted(ctx context.Context, user *domain.User, trip *domain.TripRequest) error {
	if m == nil {
		return errors.New("mailer not configured")
	}
	if m.host == "" || m.port == "" || m.from == "" || m.inbox == "" {
		return errors.New("mailer missing configuration")
	}
	if trip == nil {
		return errors.New("mailer: trip request is nil")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	message := strings.Builder{}
	message.WriteString(fmt.Sprintf("From: %s\r\n", m.from))
	message.WriteString(fmt.Sprintf("To: %s\r\n", m.inbox))
	if user != nil && user.Email != "" {
		message.WriteString(fmt.Sprintf("Reply-To: %s\r\n", user.Email))
	}
	message.WriteString(fmt.Sprintf("Subject: New trip request: %s\r\n", singleLine(trip.Title)))
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	message.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	message.WriteString(tripRequestBody(user, trip))
	message.WriteString("\r\n")

	addr := net.JoinHostPort(m.host, m.port)
	var auth smtp.Auth
	if m.username != "" || m.password != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := m.send(addr, auth, m.from, []string{m.inbox}, []byte(message.String())); err != nil {
		return fmt.Errorf("send trip request mail: %w", err)
	}
	return nil
}

func tripRequestBody(user *domain.User, trip *domain.TripRequest) string {
	var b strings.Builder
	customer := "unknown customer"
	if user != nil {
		customer = fmt.Sprintf("%s <%s>", user.DisplayName, user.Email)
	}
	fmt.Fprintf(&b, "A new trip request was submitted by %s.\r\n\r\n", customer)
	fmt.Fprintf(&b, "Reference: %s\r\n", trip.ID)
	fmt.Fprintf(&b, "Destinations: %s\r\n", orDash(trip.DestinationCountries.String()))
	fmt.Fprintf(&b, "Dates: %s\r\n", tripDates(trip))
	fmt.Fprintf(&b, "Travelers: %d adults, %d children\r\n", trip.TravelerCountAdults, trip.TravelerCountChildren)
	fmt.Fprintf(&b, "Trip type: %s\r\n", orDash(trip.TripType))
	fmt.Fprintf(&b, "Accommodation: %s\r\n", orDash(trip.AccommodationLevel))
	fmt.Fprintf(&b, "Budget: $%d - $%d\r\n", trip.BudgetMin, trip.BudgetMax)
	fmt.Fprintf(&b, "Activities: %s\r\n", orDash(trip.ActivityPreferences.String()))
	fmt.Fprintf(&b, "Transportation: %s\r\n", orDash(trip.TransportationPreferences))
	if strings.TrimSpace(trip.SpecialRequests) != "" {
		fmt.Fprintf(&b, "\r\nSpecial requests:\r\n%s\r\n", trip.SpecialRequests)
	}
	return b.String()
}

func tripDates(trip *domain.TripRequest) string {
	if trip.StartDate != nil && trip.EndDate != nil {
		return trip.StartDate.String() + " to " + trip.EndDate.String()
	}
	if trip.FlexibleDates {
		return "Flexible dates"
	}
	return "Not selected"
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func singleLine(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
