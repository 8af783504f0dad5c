package occultation

import "fmt"

// Status classifies how the occultor's disk meets the terminator and the
// limb of the occulted body. It is produced by the Classifier.
type Status int

const (
	// ZeroFlux: the occultor removes no illuminated area.
	ZeroFlux Status = iota
	// SimpleOccultation: the occultor does not touch the terminator and
	// covers only day side; the emitted-light solver handles it.
	SimpleOccultation
	// SimpleReflection: no occultation; only the phase curve remains.
	SimpleReflection
	// SimpleOccultationAndReflection: occultor entirely on the night side or
	// otherwise separable into the two simple cases.
	SimpleOccultationAndReflection
	// DayOccultation: the occultor crosses the terminator, the integration
	// region is bounded on the day side.
	DayOccultation
	// DayVisible: the visible day-side region is bounded by the occultor.
	DayVisible
	// NightOccultation: the occultor crosses the terminator on the night side.
	NightOccultation
	// NightVisible: the visible night-side region is bounded by the occultor.
	NightVisible
	// TripleDayOccultation: three boundary intersections, day-side region.
	TripleDayOccultation
	// TripleNightOccultation: three boundary intersections, night-side region.
	TripleNightOccultation
	// QuadDayVisible: four boundary intersections, visible day-side region.
	QuadDayVisible
	// QuadNightVisible: four boundary intersections, visible night-side region.
	QuadNightVisible
)

var statusNames = [...]string{
	ZeroFlux:                       "zero_flux",
	SimpleOccultation:              "simple_occultation",
	SimpleReflection:               "simple_reflection",
	SimpleOccultationAndReflection: "simple_occultation_and_reflection",
	DayOccultation:                 "day_occultation",
	DayVisible:                     "day_visible",
	NightOccultation:               "night_occultation",
	NightVisible:                   "night_visible",
	TripleDayOccultation:           "triple_day_occultation",
	TripleNightOccultation:         "triple_night_occultation",
	QuadDayVisible:                 "quad_day_visible",
	QuadNightVisible:               "quad_night_visible",
}

// String implements fmt.Stringer.
func (s Status) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}

	return fmt.Sprintf("status(%d)", int(s))
}

// Trivial reports whether the configuration is handled outside this package
// and therefore yields a zero solution vector. Any status that is not one of
// the four simple cases, including unknown codes, takes the general path.
func (s Status) Trivial() bool {
	switch s {
	case ZeroFlux, SimpleOccultation, SimpleReflection, SimpleOccultationAndReflection:
		return true
	}

	return false
}

// ParseStatus is the inverse of Status.String for the named codes.
func ParseStatus(name string) (Status, error) {
	for i, n := range statusNames {
		if n == name {
			return Status(i), nil
		}
	}

	return 0, fmt.Errorf("occultation: unknown status %q: %w", name, ErrUnknownStatus)
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	v, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = v

	return nil
}
