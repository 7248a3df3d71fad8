package ksi

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Iceland observes no daylight saving, so every KSÍ timestamp is plain UTC.

var (
	timeRegex     = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	dateDotRegex  = regexp.MustCompile(`\b(\d{1,2})\.\s*(\d{1,2})\.\s*(\d{4})\b`)
	dateSepRegex  = regexp.MustCompile(`\b(\d{1,2})[./-](\d{1,2})[./-](\d{2,4})\b`)
	weekdayRegex  = regexp.MustCompile(`(?i)^(mán|þri|mið|fim|fös|lau|sun|mon|tue|wed|thu|fri|sat)[a-záðéíóúýþæö]*\.?\s+`)
	fullTimeRegex = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
)

// KSÍ pages sometimes carry sponsor tokens next to the kickoff time. They are
// noise, not timezone names.
var sponsorTokens = []string{"BIRTU", "ELKEM", "AVIS"}

// ParseKickoff attempts to parse a KSÍ-ish date fragment into a UTC instant.
// The parser is fuzzy: it tolerates a leading weekday abbreviation, sponsor
// tokens and surrounding non-date text, and always reads the date day-first.
// The second return value is false when the text holds no parseable date;
// callers must treat that as "unknown kickoff", not as an error.
func ParseKickoff(text string) (time.Time, bool) {
	t := strings.TrimSpace(text)
	if t == "" {
		return time.Time{}, false
	}

	t = weekdayRegex.ReplaceAllString(t, "")
	for _, tok := range sponsorTokens {
		t = strings.ReplaceAll(t, tok, " ")
	}

	day, month, year, ok := findDate(t)
	if !ok {
		return time.Time{}, false
	}

	hour, min := 0, 0
	if m := timeRegex.FindStringSubmatch(t); m != nil {
		hour, _ = strconv.Atoi(m[1])
		min, _ = strconv.Atoi(m[2])
		if hour > 23 || min > 59 {
			return time.Time{}, false
		}
	}

	dt := time.Date(year, time.Month(month), day, hour, min, 0, 0, time.UTC)
	// time.Date normalizes overflow, so "31.2.2025" would silently roll into
	// March. Reject anything that did not round-trip.
	if dt.Day() != day || dt.Month() != time.Month(month) || dt.Year() != year {
		return time.Time{}, false
	}
	return dt, true
}

func findDate(t string) (day, month, year int, ok bool) {
	m := dateDotRegex.FindStringSubmatch(t)
	if m == nil {
		m = dateSepRegex.FindStringSubmatch(t)
	}
	if m == nil {
		return 0, 0, 0, false
	}

	day, _ = strconv.Atoi(m[1])
	month, _ = strconv.Atoi(m[2])
	year, _ = strconv.Atoi(m[3])
	if year < 100 {
		year += 2000
	}
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return 0, 0, 0, false
	}
	return day, month, year, true
}

// SplitFrontKickoff handles cells where a date/time sits in front of unrelated
// content, e.g. "Lau. 10.5.2025 14:00 Valsvöllur". It finds the first
// well-formed HH:MM token and, if everything up to and including it parses as
// an instant, splits the text into the kickoff and the remainder. When no such
// split exists the whole text is returned untouched.
func SplitFrontKickoff(text string) (kickoff time.Time, remainder string, ok bool) {
	t := strings.TrimSpace(text)
	if t == "" {
		return time.Time{}, t, false
	}

	parts := strings.Fields(t)
	for i, p := range parts {
		if !fullTimeRegex.MatchString(p) {
			continue
		}
		prefix := strings.Join(parts[:i+1], " ")
		if dt, parsed := ParseKickoff(prefix); parsed {
			return dt, strings.Join(parts[i+1:], " "), true
		}
		break
	}
	return time.Time{}, t, false
}

// LooksLikeDatetime reports whether a cell's text is date- or time-shaped.
func LooksLikeDatetime(text string) bool {
	return timeRegex.MatchString(text) ||
		dateDotRegex.MatchString(text) ||
		dateSepRegex.MatchString(text)
}
