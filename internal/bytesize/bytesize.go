// Package bytesize parses human-readable byte quantities ("4Ki", "64MiB",
// "16777216") into a plain integer type, for use in config files that size
// blocks and chunks. Trimmed to the binary/decimal units
// this domain actually sees (no terabyte unit: a block or chunk that large
// stops being a sane I/O granularity long before it stops being a valid
// uint64).
package bytesize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Size is a byte count that can be unmarshaled from either a bare integer
// or a suffixed string.
type Size uint64

const (
	Byte Size = 1

	KB Size = 1000
	MB Size = 1000 * KB
	GB Size = 1000 * MB

	KiB Size = 1024
	MiB Size = 1024 * KiB
	GiB Size = 1024 * MiB
)

var pattern = regexp.MustCompile(`(?i)^\s*(\d+(?:\.\d+)?)\s*([a-z]*)\s*$`)

var units = map[string]Size{
	"": Byte, "b": Byte,
	"k": KB, "kb": KB,
	"m": MB, "mb": MB,
	"g": GB, "gb": GB,
	"ki": KiB, "kib": KiB,
	"mi": MiB, "mib": MiB,
	"gi": GiB, "gib": GiB,
}

// Parse converts a human-readable size string into a Size.
func Parse(s string) (Size, error) {
	if strings.TrimSpace(s) == "" {
		return 0, fmt.Errorf("bytesize: empty size string")
	}

	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("bytesize: invalid size %q", s)
	}
	unit, ok := units[strings.ToLower(m[2])]
	if !ok {
		return 0, fmt.Errorf("bytesize: unknown unit %q", m[2])
	}

	if strings.Contains(m[1], ".") {
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, fmt.Errorf("bytesize: invalid number %q", m[1])
		}
		return Size(n * float64(unit)), nil
	}

	n, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bytesize: invalid number %q", m[1])
	}
	return Size(n) * unit, nil
}

// UnmarshalText implements encoding.TextUnmarshaler, letting mapstructure's
// string decode hook and yaml both parse a Size field directly.
func (s *Size) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// String renders the size in the largest binary unit (GiB, MiB, KiB) not
// greater than it, with two decimal places; sizes below 1KiB are rendered
// as a whole number of bytes.
func (s Size) String() string {
	switch {
	case s >= GiB:
		return fmt.Sprintf("%.2fGiB", float64(s)/float64(GiB))
	case s >= MiB:
		return fmt.Sprintf("%.2fMiB", float64(s)/float64(MiB))
	case s >= KiB:
		return fmt.Sprintf("%.2fKiB", float64(s)/float64(KiB))
	default:
		return fmt.Sprintf("%dB", uint64(s))
	}
}

// Uint64 returns s as a uint64, the type the rest of this module's
// geometry and I/O code works in.
func (s Size) Uint64() uint64 {
	return uint64(s)
}

// MarshalText implements encoding.TextMarshaler, so yaml.Marshal (and
// anything else that prefers TextMarshaler over a bare integer) renders a
// Size the same human-readable way String does.
func (s Size) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
