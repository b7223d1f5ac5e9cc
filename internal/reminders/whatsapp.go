// Package reminders builds WhatsApp reminder links and runs the daily
// reminder job.
package reminders

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const DefaultCountryCode = "57"

var ErrNoPhone = errors.New("patient has no phone number")

// DefaultMessage is the reminder text offered for a patient.
func DefaultMessage(nombre string) string {
	return fmt.Sprintf("Hola %s, te recordamos tu cita odontológica.", nombre)
}

// Link returns a wa.me deep link that opens a chat with phone prefilled
// with message. Local numbers get countryCode prepended.
func Link(phone, message, countryCode string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return "", ErrNoPhone
	}
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	// Colombian mobiles are 10 digits; anything longer already carries a
	// country code.
	international := strings.HasPrefix(strings.TrimSpace(phone), "+") ||
		(len(digits) > 10 && strings.HasPrefix(digits, countryCode))
	if !international {
		digits = countryCode + digits
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, strings.ReplaceAll(url.QueryEscape(message), "+", "%20")), nil
}
