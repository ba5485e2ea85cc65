package http

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/blink-new/ecotravel-booking-platform/internal/domain"
)

var displayLanguage = language.AmericanEnglish

// formatCurrency renders amount in the given ISO currency, e.g. $1,234.50.
// Unknown or blank codes fall back to USD.
func formatCurrency(amount float64, code string) string {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		unit = currency.USD
	}
	p := message.NewPrinter(displayLanguage)
	scale, _ := currency.Standard.Rounding(unit)
	number := p.Sprintf(fmt.Sprintf("%%.%df", scale), amount)
	symbol := p.Sprint(currency.Symbol(unit))
	if strings.HasPrefix(number, "-") {
		return "-" + symbol + strings.TrimPrefix(number, "-")
	}
	return symbol + number
}

func formatThousands(n int) string {
	return message.NewPrinter(displayLanguage).Sprintf("%d", n)
}

// formatDate accepts time.Time, domain.Date or their pointers.
func formatDate(value any) string {
	const layout = "Jan 2, 2006"
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(layout)
	case *time.Time:
		if v == nil {
			return ""
		}
		return formatDate(*v)
	case domain.Date:
		return formatDate(v.Time)
	case *domain.Date:
		if v == nil {
			return ""
		}
		return formatDate(v.Time)
	}
	return ""
}

// dateValue is the value of an <input type="date">.
func dateValue(d *domain.Date) string {
	if d == nil || d.IsZero() {
		return ""
	}
	return d.String()
}

// statusLabel turns in_review into "In Review".
func statusLabel(status domain.TripStatus) string {
	words := strings.Fields(strings.ReplaceAll(string(status), "_", " "))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func statusBadge(status domain.TripStatus) string {
	switch status {
	case domain.TripStatusSubmitted:
		return "badge-blue"
	case domain.TripStatusInReview:
		return "badge-yellow"
	case domain.TripStatusQuoted:
		return "badge-purple"
	case domain.TripStatusAccepted:
		return "badge-green"
	case domain.TripStatusBooked:
		return "badge-emerald"
	case domain.TripStatusCancelled:
		return "badge-red"
	}
	return "badge-gray"
}

func paymentBadge(status domain.PaymentStatus) string {
	if status == domain.PaymentStatusPaid {
		return "badge-green"
	}
	return "badge-yellow"
}

// initials takes the first letter of up to two words of name.
func initials(name string) string {
	var out []rune
	for _, word := range strings.Fields(name) {
		out = append(out, []rune(strings.ToUpper(word))[0])
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "U"
	}
	return string(out)
}
