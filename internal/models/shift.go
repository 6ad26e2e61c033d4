package models

import "strings"

// ShiftType enumerates the shift slots of a roster day.
type ShiftType string

const (
	ShiftFull  ShiftType = "FULL"
	ShiftEarly ShiftType = "EARLY"
	ShiftMid   ShiftType = "MID"
	ShiftLate  ShiftType = "LATE"
)

// StandardShiftTypes is the canonical shift set in display order.
var StandardShiftTypes = []ShiftType{ShiftFull, ShiftEarly, ShiftMid, ShiftLate}

// Valid reports whether s belongs to the closed shift set.
func (s ShiftType) Valid() bool {
	switch s {
	case ShiftFull, ShiftEarly, ShiftMid, ShiftLate:
		return true
	}
	return false
}

// Order returns the canonical position of s, or len(StandardShiftTypes) when unknown.
func (s ShiftType) Order() int {
	for i, st := range StandardShiftTypes {
		if st == s {
			return i
		}
	}
	return len(StandardShiftTypes)
}

// ParseShiftType normalizes raw into a ShiftType. ok is false for values outside the set.
func ParseShiftType(raw string) (ShiftType, bool) {
	s := ShiftType(strings.ToUpper(strings.TrimSpace(raw)))
	return s, s.Valid()
}
