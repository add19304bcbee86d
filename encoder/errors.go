package encoder

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidPayload is returned for empty or non UTF-8 payloads.
	ErrInvalidPayload = errors.New("invalid payload")
	// ErrCapacityExceeded is returned when no version can hold the payload.
	ErrCapacityExceeded = errors.New("capacity exceeded")
	// ErrLogoReservationConflict is returned when the logo footprint cannot
	// be absorbed by error correction.
	ErrLogoReservationConflict = errors.New("logo reservation conflict")
)

// CapacityError reports how far a payload is from fitting.
type CapacityError struct {
	Level       Level
	PayloadSize int
	// MaxCapacity is the byte capacity of the largest version at Level.
	MaxCapacity int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: %d bytes at level %s, max %d",
		ErrCapacityExceeded, e.PayloadSize, e.Level, e.MaxCapacity)
}

func (e *CapacityError) Cause() error  { return ErrCapacityExceeded }
func (e *CapacityError) Unwrap() error { return ErrCapacityExceeded }

// LogoConflictError reports the worst block damage the logo footprint causes.
type LogoConflictError struct {
	Level Level
	// Damaged is the count of codewords the footprint covers in the worst block.
	Damaged int
	// Budget is how many codewords that block can correct.
	Budget int
	Reason string
}

func (e *LogoConflictError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", ErrLogoReservationConflict, e.Reason)
	}
	return fmt.Sprintf("%s: level %s corrects %d codewords per block, logo covers %d",
		ErrLogoReservationConflict, e.Level, e.Budget, e.Damaged)
}

func (e *LogoConflictError) Cause() error  { return ErrLogoReservationConflict }
func (e *LogoConflictError) Unwrap() error { return ErrLogoReservationConflict }
