package models

// DailyStatus labels a trader's standing on the daily resources report.
type DailyStatus string

const (
	DailyStatusMandatory    DailyStatus = "Mandatory"
	DailyStatusAbsoluteNo   DailyStatus = "Absolute No"
	DailyStatusPreferredIn  DailyStatus = "Preferred In"
	DailyStatusPreferredOff DailyStatus = "Preferred Off"
	DailyStatusNeutral      DailyStatus = "Neutral"
)

// Priority orders labels on the report, lowest first.
func (s DailyStatus) Priority() int {
	switch s {
	case DailyStatusMandatory:
		return 0
	case DailyStatusAbsoluteNo:
		return 1
	case DailyStatusPreferredIn:
		return 2
	case DailyStatusPreferredOff:
		return 3
	case DailyStatusNeutral:
		return 4
	}
	return 99
}

// DailyResourceRow is one trader line of the daily resources report.
type DailyResourceRow struct {
	TraderID int64       `json:"id"`
	Name     string      `json:"name"`
	Alias    *string     `json:"alias,omitempty"`
	Location string      `json:"location"`
	Status   DailyStatus `json:"status"`
	Reason   string      `json:"reason"`
}
