package simulation

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lao-tseu-is-alive/go-flock/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/structpb"
)

// The flock actor speaks protobuf well-known types only:
//
//	*durationpb.Duration  one step of that length
//	*structpb.Struct      partial flock.Params update, json field names
//	*structpb.ListValue   [x, y] or [x, y, z] steering target
//	*emptypb.Empty        ask for the current snapshot, answered with *wrapperspb.BytesValue

var ErrBadTarget = errors.New("target must be a list of 2 or 3 numbers")

// NewTick builds a step message for dt seconds.
func NewTick(dt float32) *durationpb.Duration {
	return durationpb.New(time.Duration(float64(dt) * float64(time.Second)))
}

// TickSeconds returns the step length carried by a tick.
func TickSeconds(d *durationpb.Duration) float32 {
	return float32(d.AsDuration().Seconds())
}

// NewParamsUpdate encodes p as a struct message.
func NewParamsUpdate(p flock.Params) (*structpb.Struct, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal params: %w", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("params to map: %w", err)
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("params to struct: %w", err)
	}
	return s, nil
}

// ApplyParamsUpdate overlays the fields present in s onto base.
// Fields missing from s keep their base value.
func ApplyParamsUpdate(base flock.Params, s *structpb.Struct) (flock.Params, error) {
	b, err := json.Marshal(s.AsMap())
	if err != nil {
		return base, fmt.Errorf("struct to json: %w", err)
	}
	p := base
	if err := json.Unmarshal(b, &p); err != nil {
		return base, fmt.Errorf("decode params update: %w", err)
	}
	return p, nil
}

// NewTargetMessage encodes a steering target.
func NewTargetMessage(v geometry.Vector3) *structpb.ListValue {
	return &structpb.ListValue{Values: []*structpb.Value{
		structpb.NewNumberValue(float64(v.X)),
		structpb.NewNumberValue(float64(v.Y)),
		structpb.NewNumberValue(float64(v.Z)),
	}}
}

// ParseTarget decodes a steering target, a missing Z is 0.
// Non-numeric or non-finite coordinates yield ErrBadTarget.
func ParseTarget(l *structpb.ListValue) (geometry.Vector3, error) {
	vals := l.GetValues()
	if len(vals) < 2 || len(vals) > 3 {
		return geometry.Zero, ErrBadTarget
	}
	var xyz [3]float32
	for i, v := range vals {
		n, ok := v.GetKind().(*structpb.Value_NumberValue)
		if !ok {
			return geometry.Zero, ErrBadTarget
		}
		xyz[i] = float32(n.NumberValue)
	}
	t := geometry.NewVector(xyz[0], xyz[1], xyz[2])
	// also rejects values that only overflow once narrowed to float32
	if !t.IsFinite() {
		return geometry.Zero, ErrBadTarget
	}
	return t, nil
}
