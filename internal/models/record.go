package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Record is one row of a flat table keyed by column name.
type Record map[string]string

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

var ErrInvalidField = errors.New("invalid field")

func fieldError(column, value string, err error) error {
	return fmt.Errorf("%w: %s=%q: %v", ErrInvalidField, column, value, err)
}

// ParseDate accepts YYYY-MM-DD, optionally followed by a time part as
// pandas writes datetime columns ("2024-06-01 00:00:00").
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	return time.Parse(DateLayout, s)
}

// NormalizeDate returns s in canonical YYYY-MM-DD form.
func NormalizeDate(s string) (string, error) {
	d, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return d.Format(DateLayout), nil
}

// NormalizeClock returns s as a zero-padded HH:MM. "9:00" and "09:00:00"
// are both accepted.
func NormalizeClock(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(ClockLayout), nil
		}
	}
	return "", fmt.Errorf("time %q is not HH:MM", s)
}

// ParseAmount parses a money column. Empty means unset.
func ParseAmount(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("amount %q is not finite", s)
	}
	return &v, nil
}

// FormatAmount writes whole amounts without a decimal part.
func FormatAmount(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

func required(column, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", fieldError(column, v, errors.New("required"))
	}
	return v, nil
}

// trimIntegral strips the ".0" suffix pandas adds to numeric columns such
// as cedula and telefono.
func trimIntegral(s string) string {
	s = strings.TrimSpace(s)
	return strings.TrimSuffix(s, ".0")
}

// NormalizeCedula is the canonical form of a patient id. Every id is stored
// and compared in this form, so "123.0" and " 123" both identify "123".
func NormalizeCedula(s string) string { return trimIntegral(s) }

// NormalizePhone is the stored form of a phone number.
func NormalizePhone(s string) string { return trimIntegral(s) }
