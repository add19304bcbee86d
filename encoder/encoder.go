// Package encoder turns a payload into an ISO/IEC 18004 QR symbol using
// byte mode, Reed-Solomon error correction and penalty based masking.
package encoder

import (
	"unicode/utf8"

	"github.com/pkg/errors"
)

type encodeOptions struct {
	minVersion int
	mask       int
}

// EncodeOption tweaks a single Encode call.
type EncodeOption interface {
	apply(o *encodeOptions)
}

type funcOption struct {
	f func(o *encodeOptions)
}

func (fo *funcOption) apply(o *encodeOptions) {
	fo.f(o)
}

func newFuncOption(f func(o *encodeOptions)) *funcOption {
	return &funcOption{f: f}
}

// WithMinVersion forces the symbol to be at least version v.
func WithMinVersion(v int) EncodeOption {
	return newFuncOption(func(o *encodeOptions) {
		if v >= MinVersion && v <= MaxVersion {
			o.minVersion = v
		}
	})
}

// WithMask skips mask evaluation and applies mask id (0..7).
func WithMask(id int) EncodeOption {
	return newFuncOption(func(o *encodeOptions) {
		if id >= 0 && id < len(masks) {
			o.mask = id
		}
	})
}

// Encode builds the symbol for payload at level. The payload is encoded in
// byte mode as UTF-8.
func Encode(payload string, level Level, opts ...EncodeOption) (*Matrix, error) {
	o := &encodeOptions{minVersion: MinVersion, mask: -1}
	for _, opt := range opts {
		opt.apply(o)
	}

	if payload == "" {
		return nil, errors.Wrap(ErrInvalidPayload, "payload is empty")
	}
	if !utf8.ValidString(payload) {
		return nil, errors.Wrap(ErrInvalidPayload, "payload is not valid UTF-8")
	}
	if !level.valid() {
		return nil, errors.Wrapf(ErrInvalidPayload, "unknown error correction level %d", int(level))
	}

	data := []byte(payload)
	version, ok := VersionFor(len(data), level, o.minVersion)
	if !ok {
		return nil, &CapacityError{
			Level:       level,
			PayloadSize: len(data),
			MaxCapacity: Capacity(MaxVersion, level),
		}
	}

	m := newMatrix(version, level)
	bin := dataCodewords(data, version, m.spec)
	dataBlocks, ecBlocks := splitBlocks(bin.Bytes(), m.spec)

	m.placeFunctionPatterns()
	m.placeData(interleave(dataBlocks, ecBlocks, m.spec))

	if o.mask >= 0 {
		return m.applyMask(o.mask), nil
	}
	return m.selectMask(), nil
}
