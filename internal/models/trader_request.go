package models

import (
	"strings"
	"time"
)

// RequestKind enumerates what a trader asks for.
type RequestKind string

const (
	RequestKindIn       RequestKind = "REQUEST_IN"
	RequestKindOffDay   RequestKind = "REQUEST_OFF_DAY"
	RequestKindOffRange RequestKind = "REQUEST_OFF_RANGE"

	// Legacy kinds still present in stored data.
	RequestKindOffPaid    RequestKind = "REQUEST_OFF_PAID"
	RequestKindOffFree    RequestKind = "REQUEST_OFF_FREE"
	RequestKindLeaveRange RequestKind = "LEAVE_RANGE"
)

// RequestEffect is how an approved request constrains the roster.
type RequestEffect string

const (
	RequestEffectMandatory   RequestEffect = "MANDATORY"
	RequestEffectUnavailable RequestEffect = "UNAVAILABLE"
)

// RequestStatus captures the approval workflow.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

// LeaveType classifies leave-style requests.
type LeaveType string

const (
	LeaveTypeAnnual LeaveType = "ANNUAL"
	LeaveTypeSick   LeaveType = "SICK"
	LeaveTypeOther  LeaveType = "OTHER"
)

// ParseRequestKind normalizes raw and reports whether it is a known kind.
func ParseRequestKind(raw string) (RequestKind, bool) {
	k := RequestKind(strings.ToUpper(strings.TrimSpace(raw)))
	_, ok := k.Effect()
	return k, ok
}

// Effect derives the scheduling effect of a kind. Every kind must appear in
// this switch; ok is false for anything else.
func (k RequestKind) Effect() (effect RequestEffect, ok bool) {
	switch k {
	case RequestKindIn:
		return RequestEffectMandatory, true
	case RequestKindOffDay, RequestKindOffRange:
		return RequestEffectUnavailable, true
	case RequestKindOffPaid, RequestKindOffFree, RequestKindLeaveRange:
		return RequestEffectUnavailable, true
	}
	return "", false
}

// IsRange reports whether the kind spans several days. Single-day kinds always
// store DateTo equal to DateFrom.
func (k RequestKind) IsRange() bool {
	switch k {
	case RequestKindOffRange, RequestKindLeaveRange:
		return true
	}
	return false
}

// TraderRequest is a dated directive from a trader, effective once approved.
type TraderRequest struct {
	ID          int64         `db:"id" json:"id"`
	TraderID    int64         `db:"trader_id" json:"trader_id"`
	Kind        RequestKind   `db:"request_kind" json:"request_kind"`
	Effect      RequestEffect `db:"effect_type" json:"effect_type"`
	DateFrom    time.Time     `db:"date_from" json:"date_from"`
	DateTo      time.Time     `db:"date_to" json:"date_to"`
	ShiftType   *ShiftType    `db:"shift_type" json:"shift_type,omitempty"`
	SportCode   *string       `db:"sport_code" json:"sport_code,omitempty"`
	Destination *string       `db:"destination" json:"destination,omitempty"`
	LeaveType   *LeaveType    `db:"leave_type" json:"leave_type,omitempty"`
	Reason      *string       `db:"reason" json:"reason,omitempty"`
	Status      RequestStatus `db:"status" json:"status"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	CreatedBy   *string       `db:"created_by" json:"created_by,omitempty"`
	ApprovedAt  *time.Time    `db:"approved_at" json:"approved_at,omitempty"`
	ApprovedBy  *string       `db:"approved_by" json:"approved_by,omitempty"`
}

// Covers reports whether the request's inclusive range contains d.
func (r TraderRequest) Covers(d time.Time) bool {
	d = DateOf(d)
	return !d.Before(DateOf(r.DateFrom)) && !d.After(DateOf(r.DateTo))
}

// AppliesToShift reports whether the request scope includes shift. An unscoped
// request applies to the whole day.
func (r TraderRequest) AppliesToShift(shift ShiftType) bool {
	return r.ShiftType == nil || *r.ShiftType == shift
}

// TraderRequestWithTrader joins a request with the trader's display fields for
// the management listing.
type TraderRequestWithTrader struct {
	TraderRequest
	TraderName     string  `db:"trader_name" json:"trader_name"`
	TraderAlias    *string `db:"trader_alias" json:"trader_alias,omitempty"`
	TraderLocation string  `db:"trader_location" json:"trader_location"`
}
