package models

import "time"

// TideType represents whether a predicted tide is high or low.
type TideType string

const (
	TideHigh TideType = "H"
	TideLow  TideType = "L"
)

// ParseTideType maps a CO-OPS type tag to a TideType.
func ParseTideType(s string) (TideType, bool) {
	switch TideType(s) {
	case TideHigh:
		return TideHigh, true
	case TideLow:
		return TideLow, true
	default:
		return "", false
	}
}

// Prediction is a single high or low tide occurrence in station local time.
type Prediction struct {
	Time time.Time
	Type TideType
}

// IsHigh reports whether the prediction marks a high tide.
func (p Prediction) IsHigh() bool {
	return p.Type == TideHigh
}
