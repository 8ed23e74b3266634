package search

import (
	"errors"
	"fmt"
)

// Reason codes returned to clients alongside a ValidationError.
const (
	ReasonInvalidNumber       = "invalid_number"
	ReasonNegativeValue       = "negative_value"
	ReasonInvertedRange       = "inverted_price_range"
	ReasonUnknownValue        = "unknown_value"
	ReasonUnknownAmenity      = "unknown_amenity"
	ReasonRadiusWithoutCenter = "radius_without_center"
	ReasonIncompleteCenter    = "incomplete_center"
	ReasonOutOfRange          = "out_of_range"
	ReasonInvalidRadius       = "invalid_radius"
)

type ValidationError struct {
	Field string
	Code  string
	Msg   string
}

func (e ValidationError) Error() string {
	switch {
	case e.Field != "" && e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Field != "":
		return fmt.Sprintf("invalid %s", e.Field)
	default:
		return "validation error"
	}
}

// CatalogUnavailableError means no catalog snapshot could be obtained.
type CatalogUnavailableError struct {
	Err error
}

func (e CatalogUnavailableError) Error() string {
	if e.Err == nil {
		return "catalog unavailable"
	}
	return fmt.Sprintf("catalog unavailable: %v", e.Err)
}

func (e CatalogUnavailableError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsCatalogUnavailable(err error) bool {
	var target CatalogUnavailableError
	return errors.As(err, &target)
}
