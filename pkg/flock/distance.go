package flock

import "fmt"

// DistanceType selects how a raw distance is turned into a weighting scalar.
type DistanceType uint8

const (
	Linear DistanceType = iota
	InverseLinear
	Quadratic
	InverseQuadratic
)

var distanceTypeNames = [...]string{
	Linear:           "linear",
	InverseLinear:    "inverse_linear",
	Quadratic:        "quadratic",
	InverseQuadratic: "inverse_quadratic",
}

// Transform maps distance d through the curve selected by t.
// The inverse curves return 0 instead of dividing by zero.
func (t DistanceType) Transform(d float32) float32 {
	switch t {
	case Linear:
		return d
	case InverseLinear:
		if d == 0 {
			return 0
		}
		return 1 / d
	case Quadratic:
		return d * d
	case InverseQuadratic:
		d2 := d * d
		if d2 == 0 {
			return 0
		}
		return 1 / d2
	default:
		panic(fmt.Sprintf("flock: unknown distance type %d", t))
	}
}

func (t DistanceType) String() string {
	if int(t) < len(distanceTypeNames) {
		return distanceTypeNames[t]
	}
	return fmt.Sprintf("DistanceType(%d)", t)
}

// MarshalText implements encoding.TextMarshaler so config files can use names.
func (t DistanceType) MarshalText() ([]byte, error) {
	if int(t) >= len(distanceTypeNames) {
		return nil, fmt.Errorf("unknown distance type %d", t)
	}
	return []byte(distanceTypeNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *DistanceType) UnmarshalText(text []byte) error {
	dt, err := ParseDistanceType(string(text))
	if err != nil {
		return err
	}
	*t = dt
	return nil
}

// ParseDistanceType returns the DistanceType with the given name.
func ParseDistanceType(name string) (DistanceType, error) {
	for i, n := range distanceTypeNames {
		if n == name {
			return DistanceType(i), nil
		}
	}
	return Linear, fmt.Errorf("unknown distance type %q", name)
}
