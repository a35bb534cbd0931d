// Package schedule contains the pure time arithmetic behind room
// bookings: conversion between wall-clock "HH:MM" strings and day-offset
// minutes, room availability window normalization, half-open interval
// overlap tests and 15-minute slot grid derivation.  Nothing in this
// package touches the database or the network, which keeps the booking
// rules deterministic and directly testable.
package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// StepMinutes is the booking grid granularity.  All booking start and
	// end times are multiples of 15 minutes from midnight.
	StepMinutes = 15

	// MinutesInDay is the number of minutes in a calendar day.  It also
	// serves as the end-of-day sentinel value produced by ToMinutes for
	// the literal "24:00".
	MinutesInDay = 24 * 60

	// EndOfDay is the only time string outside the HH:MM pattern that the
	// package accepts.  It is valid as an end time or window upper bound,
	// never as a start time.
	EndOfDay = "24:00"

	// DefaultAvailableFrom and DefaultAvailableTo describe the full-day
	// window a room falls back to when its configured window is missing
	// or inverted.
	DefaultAvailableFrom = "00:00"
	DefaultAvailableTo   = "24:00"
)

// hhmmPattern accepts zero-padded 24h times from 00:00 through 23:59.
var hhmmPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ToMinutes converts an "HH:MM" string to minutes since midnight.
// The end-of-day sentinel "24:00" maps to 1440.  Malformed components
// contribute zero rather than an error; callers that need validation
// run NormalizeTime first.
func ToMinutes(t string) int {
	if t == EndOfDay {
		return MinutesInDay
	}
	hh, mm, _ := strings.Cut(t, ":")
	hour, _ := strconv.Atoi(hh)
	minute, _ := strconv.Atoi(mm)
	return hour*60 + minute
}

// ToTime is the inverse of ToMinutes.  Input is clamped to [0, 1440]
// and 1440 renders as "24:00".
func ToTime(minutes int) string {
	if minutes >= MinutesInDay {
		return EndOfDay
	}
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NormalizeTime validates value as a zero-padded 24h "HH:MM" string or
// the literal "24:00" and returns it; anything invalid or too short
// yields fallback.  Trailing seconds ("09:30:00") are truncated.
func NormalizeTime(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) < 5 {
		return fallback
	}
	candidate := trimmed[:5]
	if candidate == EndOfDay {
		return candidate
	}
	if !hhmmPattern.MatchString(candidate) {
		return fallback
	}
	return candidate
}

// NormalizeAvailability normalizes both ends of a room's daily booking
// window.  If the window is inverted or empty after normalization
// (from >= to), both ends reset to the full-day defaults so that a
// misconfigured room never becomes unbookable.
func NormalizeAvailability(from, to string) (string, string) {
	normalizedFrom := NormalizeTime(from, DefaultAvailableFrom)
	normalizedTo := NormalizeTime(to, DefaultAvailableTo)
	if ToMinutes(normalizedFrom) >= ToMinutes(normalizedTo) {
		return DefaultAvailableFrom, DefaultAvailableTo
	}
	return normalizedFrom, normalizedTo
}

// CombineDateTime builds the UTC instant at which the given wall-clock
// time occurs on an ISO "YYYY-MM-DD" date.  The "24:00" sentinel maps to
// midnight at the start of the following day.
func CombineDateTime(date, clock string) (time.Time, error) {
	if clock == EndOfDay {
		day, err := time.ParseInLocation("2006-01-02", date, time.UTC)
		if err != nil {
			return time.Time{}, err
		}
		return day.Add(24 * time.Hour), nil
	}
	return time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.UTC)
}
