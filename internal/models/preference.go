package models

// Preference categories and keys stored in trader_preferences.
const (
	PreferenceCategoryDaysOffGrouping = "DAYS_OFF_GROUPING"
	PreferenceKeyDefault              = "PREFERENCE"
)

// Conventional days-off grouping weights.
const (
	DaysOffSplit        = -2
	DaysOffNoPreference = 0
	DaysOffBackToBack   = 2
)

// TraderPreference is a generic weighted preference row.
type TraderPreference struct {
	ID       int64  `db:"id" json:"id,omitempty"`
	TraderID int64  `db:"trader_id" json:"trader_id"`
	Category string `db:"category" json:"category"`
	Key      string `db:"key" json:"key"`
	Weight   int    `db:"weight" json:"weight"`
}

// DaysOffLabel describes a days-off grouping weight.
func DaysOffLabel(weight int) string {
	switch {
	case weight > 0:
		return "Back-to-back"
	case weight < 0:
		return "Split"
	default:
		return "No preference"
	}
}

// DaysOffSummaryRow is one line of the days-off preference overview.
type DaysOffSummaryRow struct {
	TraderID int64  `json:"trader_id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Weight   int    `json:"days_off_weight"`
	Label    string `json:"days_off_label"`
}
