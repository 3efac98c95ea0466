package utils

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

const (
	layoutDate     = "2006-01-02"
	layoutDateTime = "2006-01-02 15:04:05"
)

var hhmmRe = regexp.MustCompile(`\b(\d{2}):(\d{2})\b`)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// ParseDateTime parses "YYYY-MM-DD HH:MM:SS" in local timezone.
func ParseDateTime(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDateTime, strings.TrimSpace(s), time.Local)
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM:SS" in local timezone.
func FormatDateTime(t time.Time) string {
	return t.In(time.Local).Format(layoutDateTime)
}

// NormalizeTimeStr extracts HH:MM from free-form input ("08:00 WIB" -> "08:00").
func NormalizeTimeStr(t string) (string, error) {
	m := hhmmRe.FindStringSubmatch(t)
	if len(m) < 3 {
		return "", errors.New("format time tidak valid (contoh: 08:00 atau 08:00 WIB)")
	}
	hhmm := m[0]
	if _, err := time.Parse("15:04", hhmm); err != nil {
		return "", errors.New("format time tidak valid")
	}
	return hhmm, nil
}
