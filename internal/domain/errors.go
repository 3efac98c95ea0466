package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

// MalformedKeyError reports a trip key that does not match "<recordId>_<segmentIndex>".
type MalformedKeyError struct {
	Key string
}

func (e MalformedKeyError) Error() string {
	return fmt.Sprintf("trip key %q tidak valid (format: <recordId>_<segmentIndex>)", e.Key)
}

// SegmentRangeError reports a segment index outside a trip's segment list.
type SegmentRangeError struct {
	RecordID int64
	Index    int
	Count    int
}

func (e SegmentRangeError) Error() string {
	return fmt.Sprintf("segment index %d di luar jangkauan (trip %d punya %d segment)", e.Index, e.RecordID, e.Count)
}

// InsufficientSeatsError reports a request larger than the remaining seats.
type InsufficientSeatsError struct {
	Requested int
	Available int
}

func (e InsufficientSeatsError) Error() string {
	return fmt.Sprintf("kursi tidak cukup: diminta %d, tersedia %d", e.Requested, e.Available)
}

// RouteResolutionError reports a segment endpoint that is not part of the
// route's stop sequence. During propagation this is logged and skipped,
// never surfaced for unrelated segments.
type RouteResolutionError struct {
	Location string
}

func (e RouteResolutionError) Error() string {
	return fmt.Sprintf("lokasi %q tidak ada di urutan stop rute", e.Location)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

func IsMalformedKey(err error) bool {
	var target MalformedKeyError
	return errors.As(err, &target)
}

func IsSegmentRange(err error) bool {
	var target SegmentRangeError
	return errors.As(err, &target)
}

func IsInsufficientSeats(err error) bool {
	var target InsufficientSeatsError
	return errors.As(err, &target)
}

func IsRouteResolution(err error) bool {
	var target RouteResolutionError
	return errors.As(err, &target)
}
