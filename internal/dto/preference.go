package dto

// SetDaysOffPreferenceRequest stores a days-off grouping weight.
type SetDaysOffPreferenceRequest struct {
	Weight *int `json:"weight" validate:"required"`
}

// DaysOffPreferenceResponse echoes the stored weight with its label.
type DaysOffPreferenceResponse struct {
	TraderID int64  `json:"trader_id"`
	Weight   int    `json:"weight"`
	Label    string `json:"label"`
}
