package dto

// CreateTraderRequest is the payload for filing a new request. Dates use
// YYYY-MM-DD. DateTo may be omitted for single-day kinds.
type CreateTraderRequest struct {
	Kind        string  `json:"request_kind" validate:"required"`
	DateFrom    string  `json:"date_from" validate:"required"`
	DateTo      string  `json:"date_to"`
	ShiftType   *string `json:"shift_type"`
	SportCode   *string `json:"sport_code" validate:"omitempty,max=20"`
	Destination *string `json:"destination" validate:"omitempty,max=10"`
	LeaveType   *string `json:"leave_type" validate:"omitempty,oneof=ANNUAL SICK OTHER"`
	Reason      *string `json:"reason"`
	// EffectType is accepted for compatibility and ignored; the effect is
	// always derived from the kind.
	EffectType string `json:"effect_type,omitempty"`
}

// UpdateTraderRequest patches a request. Nil fields are left unchanged.
type UpdateTraderRequest struct {
	Kind        *string `json:"request_kind"`
	DateFrom    *string `json:"date_from"`
	DateTo      *string `json:"date_to"`
	ShiftType   *string `json:"shift_type"`
	SportCode   *string `json:"sport_code" validate:"omitempty,max=20"`
	Destination *string `json:"destination" validate:"omitempty,max=10"`
	LeaveType   *string `json:"leave_type" validate:"omitempty,oneof=ANNUAL SICK OTHER"`
	Reason      *string `json:"reason"`
}

// ReviewTraderRequest carries the reviewer of an approve/reject action.
type ReviewTraderRequest struct {
	Actor string `json:"actor" validate:"required,max=50"`
}
