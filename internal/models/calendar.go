package models

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// DaysPerWeek is the width of a weekly pattern grid.
const DaysPerWeek = 7

// DateOf strips the clock and zone from t, keeping its calendar date as seen in
// t's own location. All dates handled by the engine go through DateOf so they
// compare equal and can be used as map keys.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a normalized date.
func ParseDate(raw string) (time.Time, error) {
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}

// DayOfWeek returns the weekday index used by weekly patterns (0=Monday, 6=Sunday).
func DayOfWeek(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// MondayOf returns the Monday of the week containing t.
func MondayOf(t time.Time) time.Time {
	d := DateOf(t)
	return d.AddDate(0, 0, -DayOfWeek(d))
}

// WeekDates lists the seven dates, Monday through Sunday, of the week containing t.
func WeekDates(t time.Time) []time.Time {
	monday := MondayOf(t)
	dates := make([]time.Time, DaysPerWeek)
	for i := range dates {
		dates[i] = monday.AddDate(0, 0, i)
	}
	return dates
}
