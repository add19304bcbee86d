package encoder

import (
	"strings"

	"github.com/pkg/errors"
)

// Level is the error correction level of a symbol.
type Level int

const (
	// ErrorCorrectionLow recovers about 7% of codewords.
	ErrorCorrectionLow Level = iota
	// ErrorCorrectionMedium recovers about 15% of codewords.
	ErrorCorrectionMedium
	// ErrorCorrectionQuart recovers about 25% of codewords.
	ErrorCorrectionQuart
	// ErrorCorrectionHighest recovers about 30% of codewords.
	ErrorCorrectionHighest
)

// DefaultLevel favours logo overlays over raw capacity.
const DefaultLevel = ErrorCorrectionQuart

func (l Level) valid() bool {
	return l >= ErrorCorrectionLow && l <= ErrorCorrectionHighest
}

func (l Level) String() string {
	switch l {
	case ErrorCorrectionLow:
		return "L"
	case ErrorCorrectionMedium:
		return "M"
	case ErrorCorrectionQuart:
		return "Q"
	case ErrorCorrectionHighest:
		return "H"
	}
	return "?"
}

// RecoveryPercent is the nominal share of codewords the level can restore.
func (l Level) RecoveryPercent() int {
	switch l {
	case ErrorCorrectionLow:
		return 7
	case ErrorCorrectionMedium:
		return 15
	case ErrorCorrectionQuart:
		return 25
	case ErrorCorrectionHighest:
		return 30
	}
	return 0
}

// formatBits is the two bit level indicator written into format information.
func (l Level) formatBits() uint32 {
	switch l {
	case ErrorCorrectionLow:
		return 0b01
	case ErrorCorrectionMedium:
		return 0b00
	case ErrorCorrectionQuart:
		return 0b11
	default:
		return 0b10
	}
}

// Next returns the next stronger level, ok is false at H.
func (l Level) Next() (Level, bool) {
	if l >= ErrorCorrectionHighest {
		return l, false
	}
	return l + 1, true
}

// ParseLevel parses "L", "M", "Q" or "H", case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L":
		return ErrorCorrectionLow, nil
	case "M":
		return ErrorCorrectionMedium, nil
	case "Q":
		return ErrorCorrectionQuart, nil
	case "H":
		return ErrorCorrectionHighest, nil
	}
	return 0, errors.Errorf("unknown error correction level %q", s)
}
