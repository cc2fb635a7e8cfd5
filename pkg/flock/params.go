package flock

import "fmt"

// Force identifies one of the four weighted terms composed into acceleration.
type Force uint8

const (
	Separation Force = iota
	Alignment
	Cohesion
	Steering
)

func (f Force) String() string {
	switch f {
	case Separation:
		return "separation"
	case Alignment:
		return "alignment"
	case Cohesion:
		return "cohesion"
	case Steering:
		return "steering"
	default:
		return fmt.Sprintf("Force(%d)", f)
	}
}

// Term is the weight of a force and the curve applied to the distances feeding it.
type Term struct {
	Weight   float32      `json:"weight"`
	Distance DistanceType `json:"distance"`
}

// Params controls the physics constants of the engine.
type Params struct {
	PerceptionRadius float32 `json:"perceptionRadius"` // 0 means 1
	BlindSpotAngle   float32 `json:"blindSpotAngle"`   // degrees
	MaxAcceleration  float32 `json:"maxAcceleration"`
	MaxVelocity      float32 `json:"maxVelocity"`

	Separation Term `json:"separation"`
	Alignment  Term `json:"alignment"`
	Cohesion   Term `json:"cohesion"`
	Steering   Term `json:"steering"`
}

// DefaultParams returns the stock flocking profile.
func DefaultParams() Params {
	return Params{
		PerceptionRadius: 30,
		BlindSpotAngle:   20,
		MaxAcceleration:  10,
		MaxVelocity:      20,
		Separation:       Term{Weight: 1, Distance: Linear},
		Alignment:        Term{Weight: 1, Distance: Linear},
		Cohesion:         Term{Weight: 1, Distance: Linear},
		Steering:         Term{Weight: 0.5, Distance: Linear},
	}
}

// Term returns the settings of force f.
func (p *Params) Term(f Force) Term {
	return *p.term(f)
}

// SetTerm replaces the settings of force f.
func (p *Params) SetTerm(f Force, t Term) {
	*p.term(f) = t
}

func (p *Params) term(f Force) *Term {
	switch f {
	case Separation:
		return &p.Separation
	case Alignment:
		return &p.Alignment
	case Cohesion:
		return &p.Cohesion
	case Steering:
		return &p.Steering
	default:
		panic(fmt.Sprintf("flock: unknown force %d", f))
	}
}

// effectiveRadius applies the zero-radius fallback.
func (p *Params) effectiveRadius() float32 {
	if p.PerceptionRadius == 0 {
		return 1
	}
	return p.PerceptionRadius
}
