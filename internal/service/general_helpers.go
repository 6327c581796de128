package service

import "math"

// RoundingPrecision controls the decimal precision of monetary values in API
// responses. 100 yields two decimal places.
const RoundingPrecision = 100

// round rounds a float64 value to two decimal places using the package RoundingPrecision constant.
// This function is used throughout the service layer to ensure consistent rounding of monetary
// values in API responses.
//
// The rounding uses the standard "round half up" approach via math.Round.
func round(value float64) float64 {
	return math.Round(value*RoundingPrecision) / RoundingPrecision
}

// roundPtr rounds through a pointer, preserving nil. Nil percentages mean
// "no cost basis to compare against" and must stay nil in responses.
func roundPtr(value *float64) *float64 {
	if value == nil {
		return nil
	}
	r := round(*value)
	return &r
}
