package encoder

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// LogoPolicy decides what happens when the requested level cannot carry a
// center logo.
type LogoPolicy int

const (
	// LogoAutoUpgrade raises the error correction level until the logo
	// footprint is correctable.
	LogoAutoUpgrade LogoPolicy = iota
	// LogoStrict fails with ErrLogoReservationConflict instead of upgrading.
	LogoStrict
)

func (p LogoPolicy) String() string {
	if p == LogoStrict {
		return "strict"
	}
	return "auto-upgrade"
}

const (
	// MinLogoLevel is the weakest level a symbol with a logo is encoded at.
	MinLogoLevel = ErrorCorrectionQuart

	MinLogoFraction     = 0.1
	MaxLogoFraction     = 0.3
	DefaultLogoFraction = 0.2
)

// LogoRequest describes the logo footprint as a share of the matrix side.
type LogoRequest struct {
	Fraction float64
	Policy   LogoPolicy
}

// LogoPlan is the symbol chosen to carry a logo and the light square the
// logo occupies.
type LogoPlan struct {
	Matrix   *Matrix
	Reserved Rect
	// Requested is the level asked for, Matrix.Level() the one used.
	Requested Level
	Upgraded  bool
	// Damaged is the worst per block count of codewords under the logo.
	Damaged int
}

// misdecodeProtection lists codewords small symbols set aside against
// misdecoding, keyed by version then level. They reduce the error budget.
var misdecodeProtection = map[int][4]int{
	1: {3, 2, 1, 1},
	2: {2, 0, 0, 0},
	3: {1, 0, 0, 0},
}

func correctable(version int, level Level, spec blockSpec) int {
	p := misdecodeProtection[version][level]
	return (spec.ecPerBlock - p) / 2
}

// logoModules returns the footprint side in modules for a matrix side.
func logoModules(side int, fraction float64) int {
	return int(math.Ceil(float64(side) * clampFraction(fraction)))
}

func clampFraction(f float64) float64 {
	switch {
	case f <= 0:
		return DefaultLogoFraction
	case f < MinLogoFraction:
		return MinLogoFraction
	case f > MaxLogoFraction:
		return MaxLogoFraction
	}
	return f
}

// touchesProtected reports whether r covers a module decoders rely on to
// locate and identify the symbol. Alignment patterns are tolerated.
func (m *Matrix) touchesProtected(r Rect) bool {
	for row := r.Min.Row; row < r.Max.Row; row++ {
		for col := r.Min.Col; col < r.Max.Col; col++ {
			switch m.at(row, col).Type() {
			case QRType_FINDER, QRType_FINDER_CENTER, QRType_SPLITTER,
				QRType_TIMING, QRType_FORMAT, QRType_VERSION, QRType_DARK:
				return true
			}
		}
	}
	return false
}

// worstDamage returns the highest per block codeword damage in r.
func (m *Matrix) worstDamage(r Rect) int {
	worst := 0
	for _, n := range m.BlockDamage(r) {
		if n > worst {
			worst = n
		}
	}
	return worst
}

// PlanLogo encodes payload so that a light square in the middle of the
// symbol, sized by req.Fraction, stays within what error correction can
// repair. Data bits are never altered: the footprint is absorbed as
// correctable errors, so the symbol remains standard compliant.
//
// Symbols with a logo use at least MinLogoLevel. With LogoAutoUpgrade the
// level is raised from there until every block can correct the damage. The
// version may grow when the footprint would touch finder, timing or format
// modules on a small symbol.
func PlanLogo(payload string, level Level, req LogoRequest, opts ...EncodeOption) (*LogoPlan, error) {
	if !level.valid() {
		return nil, errors.Wrapf(ErrInvalidPayload, "unknown error correction level %d", int(level))
	}

	current := level
	if current < MinLogoLevel {
		if req.Policy == LogoStrict {
			return nil, &LogoConflictError{
				Level:  level,
				Reason: fmt.Sprintf("a logo needs level %s or higher, got %s", MinLogoLevel, level),
			}
		}
		current = MinLogoLevel
	}

	minVersion := MinVersion
	for {
		m, err := Encode(payload, current, append(opts, WithMinVersion(minVersion))...)
		if err != nil {
			if current != level && errors.Is(err, ErrCapacityExceeded) {
				return nil, &LogoConflictError{
					Level:  current,
					Reason: fmt.Sprintf("payload does not fit at level %s needed for the logo", current),
				}
			}
			return nil, err
		}

		rect := m.CenterRect(logoModules(m.side, req.Fraction))
		if m.touchesProtected(rect) {
			if m.version >= MaxVersion {
				return nil, &LogoConflictError{Level: current, Reason: "logo covers function patterns"}
			}
			minVersion = m.version + 1
			continue
		}

		damaged := m.worstDamage(rect)
		budget := correctable(m.version, current, m.spec)
		if damaged <= budget {
			return &LogoPlan{
				Matrix:    m,
				Reserved:  rect,
				Requested: level,
				Upgraded:  current != level,
				Damaged:   damaged,
			}, nil
		}

		next, ok := current.Next()
		if req.Policy == LogoStrict || !ok {
			return nil, &LogoConflictError{Level: current, Damaged: damaged, Budget: budget}
		}
		current = next
	}
}
