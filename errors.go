package qrdx

import (
	"github.com/pkg/errors"

	"github.com/Mictilt/qrdx/encoder"
	"github.com/Mictilt/qrdx/writer/standard"
)

// The error taxonomy of an export. Every failure wraps one of these, test
// with errors.Is or compare errors.Cause.
var (
	ErrInvalidPayload          = encoder.ErrInvalidPayload
	ErrCapacityExceeded        = encoder.ErrCapacityExceeded
	ErrLogoReservationConflict = encoder.ErrLogoReservationConflict
	ErrSizeOutOfBounds         = standard.ErrSizeOutOfBounds
	ErrUnsupportedFormat       = standard.ErrUnsupportedFormat

	// ErrLogoUnavailable is returned when a logo reference cannot be read
	// or decoded.
	ErrLogoUnavailable = errors.New("logo unavailable")
)
