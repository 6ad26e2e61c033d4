package dto

// WeeklyPatternCellInput addresses one cell of a weekly pattern save.
type WeeklyPatternCellInput struct {
	DayOfWeek *int   `json:"day_of_week" validate:"required,min=0,max=6"`
	ShiftType string `json:"shift_type" validate:"required"`
	HardBlock bool   `json:"hard_block"`
	Weight    int    `json:"weight" validate:"min=-1,max=1"`
}

// SaveWeeklyPatternRequest replaces the addressed cells of a trader's grid.
type SaveWeeklyPatternRequest struct {
	Cells []WeeklyPatternCellInput `json:"cells" validate:"dive"`
}
