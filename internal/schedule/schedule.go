package schedule

import (
	"fmt"
	"time"
)

// DateKeyLayout is the canonical form of a date key (ex: "2025-03-15").
const DateKeyLayout = "2006-01-02"

const (
	// DefaultCutoffHour is the local hour on the preceding Friday after which
	// signups for a Saturday close to non-administrators.
	DefaultCutoffHour = 11

	// DefaultHorizon is the last date the board accepts signups for.
	DefaultHorizon = "2030-12-31"
)

// TargetWeekday is the only weekday the board accepts signups on.
const TargetWeekday = time.Saturday

// Schedule answers which dates are valid signup targets and when each
// date's signup window closes. It holds no mutable state and does no I/O;
// "now" is always an explicit argument so callers and tests control the clock.
type Schedule struct {
	horizon    time.Time
	cutoffHour int
	loc        *time.Location
}

// New builds a Schedule from settings. Weekday and cutoff math run in the
// configured location; the horizon is interpreted as local midnight.
func New(s Settings) (*Schedule, error) {
	loc := time.Local
	if s.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(s.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w", s.Timezone, err)
		}
	}

	horizon, err := time.ParseInLocation(DateKeyLayout, s.Horizon, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid horizon %q: %w", s.Horizon, err)
	}

	cutoffHour := s.CutoffHour
	if cutoffHour < 0 || cutoffHour > 23 {
		return nil, fmt.Errorf("cutoff hour must be 0-23, got %d", cutoffHour)
	}

	return &Schedule{horizon: horizon, cutoffHour: cutoffHour, loc: loc}, nil
}

// Saturdays returns every valid date key from the first Saturday on/after
// now's calendar day through the horizon, in ascending order.
func (s *Schedule) Saturdays(now time.Time) []string {
	d := s.dayStart(now)
	d = d.AddDate(0, 0, int((TargetWeekday-d.Weekday()+7)%7))

	var keys []string
	for !d.After(s.horizon) {
		keys = append(keys, d.Format(DateKeyLayout))
		d = d.AddDate(0, 0, 7)
	}
	return keys
}

// ValidTarget reports whether key names a date signups may reference:
// canonical YYYY-MM-DD syntax, a real calendar date, a Saturday, on/after
// now's calendar day and on/before the horizon. Malformed input is false,
// never an error.
func (s *Schedule) ValidTarget(key string, now time.Time) bool {
	return s.ValidateTarget(key, now) == nil
}

// ValidateTarget is ValidTarget with a reason: nil when key is a valid
// signup target, otherwise an error describing the first failed check.
func (s *Schedule) ValidateTarget(key string, now time.Time) error {
	d, err := s.parseKey(key)
	if err != nil {
		return fmt.Errorf("invalid date format")
	}
	if d.Weekday() != TargetWeekday {
		return fmt.Errorf("date must be a Saturday")
	}
	if d.Before(s.dayStart(now)) || d.After(s.horizon) {
		return fmt.Errorf("date outside allowed range (today through %s)", s.horizon.Format(DateKeyLayout))
	}
	return nil
}

// ValidKey reports whether key is a well-formed calendar date in canonical
// form, regardless of weekday or range. Plans only need this weaker check.
func (s *Schedule) ValidKey(key string) bool {
	_, err := s.parseKey(key)
	return err == nil
}

// Cutoff returns the instant the signup window for key closes: the
// preceding Friday at the configured local hour.
func (s *Schedule) Cutoff(key string) (time.Time, error) {
	d, err := s.parseKey(key)
	if err != nil {
		return time.Time{}, err
	}
	fri := d.AddDate(0, 0, -1)
	return time.Date(fri.Year(), fri.Month(), fri.Day(), s.cutoffHour, 0, 0, 0, s.loc), nil
}

// Open reports whether the signup window for key is still open at now.
// Unparseable keys are closed.
func (s *Schedule) Open(key string, now time.Time) bool {
	cutoff, err := s.Cutoff(key)
	if err != nil {
		return false
	}
	return now.Before(cutoff)
}

// parseKey parses a date key strictly: it must round-trip through the
// canonical layout so zero-padded variants like "2025-3-15" are rejected.
func (s *Schedule) parseKey(key string) (time.Time, error) {
	d, err := time.ParseInLocation(DateKeyLayout, key, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	if d.Format(DateKeyLayout) != key {
		return time.Time{}, fmt.Errorf("non-canonical date key %q", key)
	}
	return d, nil
}

// dayStart truncates t to local midnight of its calendar day.
func (s *Schedule) dayStart(t time.Time) time.Time {
	t = t.In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc)
}
