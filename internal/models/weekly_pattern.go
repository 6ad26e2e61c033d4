package models

import "time"

// Pattern weights for soft preferences.
const (
	WeightPreferredOff = -1
	WeightNeutral      = 0
	WeightPreferredIn  = 1
)

// WeeklyPatternCell is one recurring (weekday, shift) preference of a trader.
// When HardBlock is set the weight carries no meaning.
type WeeklyPatternCell struct {
	ID        int64     `db:"id" json:"id,omitempty"`
	TraderID  int64     `db:"trader_id" json:"trader_id"`
	DayOfWeek int       `db:"day_of_week" json:"day_of_week"`
	ShiftType ShiftType `db:"shift_type" json:"shift_type"`
	HardBlock bool      `db:"hard_block" json:"hard_block"`
	Weight    int       `db:"weight" json:"weight"`
}

// Key returns the grid coordinate of the cell.
func (c WeeklyPatternCell) Key() PatternKey {
	return PatternKey{DayOfWeek: c.DayOfWeek, ShiftType: c.ShiftType}
}

// PatternKey addresses a cell within a trader's weekly grid.
type PatternKey struct {
	DayOfWeek int
	ShiftType ShiftType
}

// PatternKeys enumerates every grid coordinate in (weekday, canonical shift) order.
func PatternKeys() []PatternKey {
	keys := make([]PatternKey, 0, DaysPerWeek*len(StandardShiftTypes))
	for day := 0; day < DaysPerWeek; day++ {
		for _, shift := range StandardShiftTypes {
			keys = append(keys, PatternKey{DayOfWeek: day, ShiftType: shift})
		}
	}
	return keys
}

// WeeklyPattern is the complete grid of a trader.
type WeeklyPattern struct {
	TraderID int64               `json:"trader_id"`
	Cells    []WeeklyPatternCell `json:"cells"`
}

// Cell looks up the cell at key.
func (p WeeklyPattern) Cell(key PatternKey) (WeeklyPatternCell, bool) {
	for _, c := range p.Cells {
		if c.Key() == key {
			return c, true
		}
	}
	return WeeklyPatternCell{}, false
}

// Lookup indexes the grid by coordinate.
func (p WeeklyPattern) Lookup() map[PatternKey]WeeklyPatternCell {
	out := make(map[PatternKey]WeeklyPatternCell, len(p.Cells))
	for _, c := range p.Cells {
		out[c.Key()] = c
	}
	return out
}

// PatternCellForDate returns the grid coordinate a calendar slot maps onto.
func PatternCellForDate(d time.Time, shift ShiftType) PatternKey {
	return PatternKey{DayOfWeek: DayOfWeek(d), ShiftType: shift}
}
