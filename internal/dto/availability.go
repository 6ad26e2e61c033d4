package dto

// AvailabilityCell is one resolved slot on the wire.
type AvailabilityCell struct {
	ShiftType string `json:"shift_type"`
	Status    string `json:"status"`
	Weight    int    `json:"weight"`
}

// AvailabilityDay groups the slots of one date in shift order.
type AvailabilityDay struct {
	Date      string             `json:"date"`
	DayOfWeek int                `json:"day_of_week"`
	Slots     []AvailabilityCell `json:"slots"`
}

// WeekAvailabilityResponse is the resolved week of one trader.
type WeekAvailabilityResponse struct {
	TraderID   int64             `json:"trader_id"`
	WeekStart  string            `json:"week_start"`
	ShiftTypes []string          `json:"shift_types"`
	Days       []AvailabilityDay `json:"days"`
}
