package geometry

import (
	"errors"
	"fmt"
	"math"
)

// Epsilon is the tolerance used by Eq and by the zero-length checks.
// Components are float32, so it is much looser than a float64 epsilon would be.
const (
	Epsilon = 1e-6
)

// ErrDivideByZero is returned by Div when the divisor is zero.
var ErrDivideByZero = errors.New("vector cannot be divided by zero")

// Vector3 represents a 3D vector or point in cartesian space.
// We use public fields (X, Y, Z) because they are fundamental data, not internal state,
// which keeps literal initialization cheap: v := Vector3{1, 2, 0}
type Vector3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Zero is the zero vector.
var Zero = Vector3{}

// NewVector creates a new Vector3.
func NewVector(x, y, z float32) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// NewVectorPolar creates a vector lying in the XY plane from polar coordinates.
// theta is in radians.
func NewVectorPolar(radius, theta float32) Vector3 {
	x := radius * float32(math.Cos(float64(theta)))
	y := radius * float32(math.Sin(float64(theta)))

	// Handle standard floating point precision issues near zero
	if abs32(x) < Epsilon {
		x = 0
	}
	if abs32(y) < Epsilon {
		y = 0
	}

	return Vector3{X: x, Y: y}
}

// ---------------------------------------------------------------------
// Stringer Interface
// ---------------------------------------------------------------------

// String implements the fmt.Stringer interface.
func (v Vector3) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

// ---------------------------------------------------------------------
// Arithmetic Operations
// Value receivers returning new values: the struct is 12 bytes.
// ---------------------------------------------------------------------

// Add adds two vectors and returns the result.
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub subtracts the other vector from the current vector.
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Mul scales the vector by a scalar value.
func (v Vector3) Mul(scalar float32) Vector3 {
	return Vector3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Div scales the vector by 1/scalar.
// If scalar is zero it returns an Inf vector along with ErrDivideByZero.
func (v Vector3) Div(scalar float32) (Vector3, error) {
	if scalar == 0 {
		inf := float32(math.Inf(1))
		return Vector3{inf, inf, inf}, ErrDivideByZero
	}
	return Vector3{v.X / scalar, v.Y / scalar, v.Z / scalar}, nil
}

// Neg returns the vector pointing the opposite way.
func (v Vector3) Neg() Vector3 {
	return Vector3{-v.X, -v.Y, -v.Z}
}

// ---------------------------------------------------------------------
// Vector Products
// ---------------------------------------------------------------------

// Dot calculates the dot product of two vectors.
func (v Vector3) Dot(other Vector3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross calculates the cross product of two vectors.
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// ---------------------------------------------------------------------
// Magnitude and Normalization
// ---------------------------------------------------------------------

// LenSqr calculates the squared magnitude of the vector.
// This is faster than Len() as it avoids the square root. Use for comparisons.
func (v Vector3) LenSqr() float32 {
	return v.Dot(v)
}

// Len calculates the magnitude (length) of the vector.
func (v Vector3) Len() float32 {
	return float32(math.Sqrt(float64(v.LenSqr())))
}

// IsZero reports whether every component is exactly zero.
func (v Vector3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Normalize returns a unit vector in the same direction.
// Returns a zero vector if the length is zero.
func (v Vector3) Normalize() Vector3 {
	l := v.Len()
	if l == 0 {
		return Zero
	}
	return v.Mul(1 / l)
}

// ClampLen scales the vector down uniformly so its length does not exceed max.
// Shorter vectors are returned unchanged, so clamping twice is the same as once.
// An infinite vector is clamped along the signs of its infinite components,
// a vector holding NaN clamps to zero.
func (v Vector3) ClampLen(max float32) Vector3 {
	if max <= 0 {
		return Zero
	}
	l := v.Len()
	if l <= max {
		return v
	}
	if !v.IsFinite() || math.IsInf(float64(l), 1) {
		return v.direction().Mul(max)
	}
	return v.Mul(max / l)
}

// direction is Normalize for vectors whose length does not fit in a float32.
func (v Vector3) direction() Vector3 {
	if math.IsNaN(float64(v.X)) || math.IsNaN(float64(v.Y)) || math.IsNaN(float64(v.Z)) {
		return Zero
	}
	if !v.IsFinite() {
		return Vector3{infSign(v.X), infSign(v.Y), infSign(v.Z)}.Normalize()
	}
	// finite components whose squares overflow: rescale by the largest first
	m := max(abs32(v.X), abs32(v.Y), abs32(v.Z))
	return v.Mul(1 / m).Normalize()
}

// ---------------------------------------------------------------------
// Geometric Utilities
// ---------------------------------------------------------------------

// DistanceTo calculates the Euclidean distance to another vector.
func (v Vector3) DistanceTo(other Vector3) float32 {
	return v.Sub(other).Len()
}

// DistanceSquaredTo calculates the squared Euclidean distance to another vector.
func (v Vector3) DistanceSquaredTo(other Vector3) float32 {
	return v.Sub(other).LenSqr()
}

// AngleTo returns the angle in degrees between v and other, in [0, 180].
// It returns 0 when either vector has zero length.
func (v Vector3) AngleTo(other Vector3) float32 {
	denom := float64(v.Len()) * float64(other.Len())
	if denom == 0 {
		return 0
	}
	cos := float64(v.Dot(other)) / denom
	// rounding can push the cosine just outside [-1, 1]
	cos = math.Max(-1, math.Min(1, cos))
	return float32(math.Acos(cos) * 180 / math.Pi)
}

// Floor returns the component-wise floor.
func (v Vector3) Floor() Vector3 {
	return Vector3{
		X: float32(math.Floor(float64(v.X))),
		Y: float32(math.Floor(float64(v.Y))),
		Z: float32(math.Floor(float64(v.Z))),
	}
}

// Lerp (Linear Interpolate) calculates a point between v and target based on t [0, 1].
func (v Vector3) Lerp(target Vector3, t float32) Vector3 {
	return v.Add(target.Sub(v).Mul(t))
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vector3) IsFinite() bool {
	return isFinite32(v.X) && isFinite32(v.Y) && isFinite32(v.Z)
}

// ---------------------------------------------------------------------
// Comparison
// ---------------------------------------------------------------------

// Eq checks if two vectors are approximately equal using the Epsilon constant.
func (v Vector3) Eq(other Vector3) bool {
	return abs32(v.X-other.X) <= Epsilon &&
		abs32(v.Y-other.Y) <= Epsilon &&
		abs32(v.Z-other.Z) <= Epsilon
}

// Less orders vectors lexicographically on X, then Y, then Z.
func (v Vector3) Less(other Vector3) bool {
	if v.X != other.X {
		return v.X < other.X
	}
	if v.Y != other.Y {
		return v.Y < other.Y
	}
	return v.Z < other.Z
}

func abs32(f float32) float32 {
	return float32(math.Abs(float64(f)))
}

func infSign(f float32) float32 {
	switch {
	case math.IsInf(float64(f), 1):
		return 1
	case math.IsInf(float64(f), -1):
		return -1
	}
	return 0
}

func isFinite32(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
