package models

import "time"

// AvailabilityStatus is the resolved verdict of one slot.
type AvailabilityStatus string

const (
	AvailabilityMandatory   AvailabilityStatus = "MANDATORY"
	AvailabilityUnavailable AvailabilityStatus = "UNAVAILABLE"
	AvailabilityAvailable   AvailabilityStatus = "AVAILABLE"
)

// AvailabilitySlot is the verdict for one (date, shift). Weight is non-zero
// only for AVAILABLE slots.
type AvailabilitySlot struct {
	Status AvailabilityStatus `json:"status"`
	Weight int                `json:"weight"`
}

// SlotKey addresses a slot. Date must be normalized with DateOf.
type SlotKey struct {
	Date      time.Time
	ShiftType ShiftType
}

// WeekAvailability is the resolved grid of one trader for one week.
type WeekAvailability struct {
	TraderID   int64
	WeekStart  time.Time
	Dates      []time.Time
	ShiftTypes []ShiftType
	Slots      map[SlotKey]AvailabilitySlot
}

// Slot returns the verdict at (date, shift).
func (w WeekAvailability) Slot(date time.Time, shift ShiftType) (AvailabilitySlot, bool) {
	slot, ok := w.Slots[SlotKey{Date: DateOf(date), ShiftType: shift}]
	return slot, ok
}
