package naming

import (
	"fmt"
	"strconv"
	"time"
)

// DateLayout names one of the acquisition date encodings found in product
// names.
type DateLayout int

const (
	// LayoutCompact is YYYYMMDD; the time of day defaults to noon UTC.
	LayoutCompact DateLayout = iota
	// LayoutSafe is YYYYMMDDThhmmss.
	LayoutSafe
	// LayoutMuscate is YYYYMMDD-hhmmss-mmm.
	LayoutMuscate
	// LayoutJulian is YYYYDDD (year and day of year); noon UTC.
	LayoutJulian
)

// Midday is the time of day assigned to products whose names carry only a
// calendar date.
const Midday = 12 * time.Hour

func (l DateLayout) String() string {
	switch l {
	case LayoutCompact:
		return "YYYYMMDD"
	case LayoutSafe:
		return "YYYYMMDDThhmmss"
	case LayoutMuscate:
		return "YYYYMMDD-hhmmss-mmm"
	case LayoutJulian:
		return "YYYYDDD"
	default:
		return "unknown"
	}
}

// ParseDate decodes a date field according to its layout. All results are UTC.
func ParseDate(layout DateLayout, raw string) (time.Time, error) {
	switch layout {
	case LayoutCompact:
		t, err := time.Parse("20060102", raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("parsing %s date %q: %w", layout, raw, err)
		}
		return t.Add(Midday), nil
	case LayoutSafe:
		t, err := time.Parse("20060102T150405", raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("parsing %s date %q: %w", layout, raw, err)
		}
		return t, nil
	case LayoutJulian:
		t, err := time.Parse("2006002", raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("parsing %s date %q: %w", layout, raw, err)
		}
		return t.Add(Midday), nil
	case LayoutMuscate:
		return parseMuscate(raw)
	default:
		return time.Time{}, fmt.Errorf("unknown date layout %d", int(layout))
	}
}

// parseMuscate handles YYYYMMDD-hhmmss-mmm. The millisecond field follows a
// hyphen, which time.Parse cannot express as a fractional second.
func parseMuscate(raw string) (time.Time, error) {
	if len(raw) != 19 || raw[8] != '-' || raw[15] != '-' {
		return time.Time{}, fmt.Errorf("parsing %s date %q: malformed", LayoutMuscate, raw)
	}
	t, err := time.Parse("20060102-150405", raw[:15])
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s date %q: %w", LayoutMuscate, raw, err)
	}
	ms, err := strconv.Atoi(raw[16:])
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s date %q: %w", LayoutMuscate, raw, err)
	}
	return t.Add(time.Duration(ms) * time.Millisecond), nil
}
