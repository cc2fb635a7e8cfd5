package simulation

import (
	"errors"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
	"google.golang.org/protobuf/encoding/protowire"
)

// Wire layout of an encoded Snapshot, protobuf compatible:
//
//	message Vec       { fixed32 x = 1; fixed32 y = 2; fixed32 z = 3; }   // float bits
//	message BoidState { Vec position = 1; Vec velocity = 2; }
//	message Snapshot  { uint64 step = 1; bool bounce = 2; repeated BoidState boids = 3;
//	                    repeated Vec targets = 4; fixed64 checksum = 15; }
//
// checksum is the xxhash64 of every byte before it and is always the last field.
const (
	fieldStep     protowire.Number = 1
	fieldBounce   protowire.Number = 2
	fieldBoid     protowire.Number = 3
	fieldTarget   protowire.Number = 4
	fieldChecksum protowire.Number = 15

	fieldPosition protowire.Number = 1
	fieldVelocity protowire.Number = 2

	vecSize      = 3 * (1 + 4)
	boidSize     = 2 * (1 + 1 + vecSize)
	checksumSize = 1 + 8
)

var (
	ErrChecksum  = errors.New("snapshot checksum mismatch")
	ErrTruncated = errors.New("snapshot frame truncated")
)

// EncodeSnapshot serialises s, checksum included.
func EncodeSnapshot(s *Snapshot) []byte {
	size := 11 + 2 + len(s.Boids)*(2+boidSize) + len(s.Targets)*(2+vecSize) + checksumSize
	b := make([]byte, 0, size)

	b = protowire.AppendTag(b, fieldStep, protowire.VarintType)
	b = protowire.AppendVarint(b, s.Step)
	if s.Bounce {
		b = protowire.AppendTag(b, fieldBounce, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(true))
	}
	for _, boid := range s.Boids {
		b = protowire.AppendTag(b, fieldBoid, protowire.BytesType)
		b = protowire.AppendVarint(b, boidSize)
		b = appendVecField(b, fieldPosition, boid.Position)
		b = appendVecField(b, fieldVelocity, boid.Velocity)
	}
	for _, t := range s.Targets {
		b = protowire.AppendTag(b, fieldTarget, protowire.BytesType)
		b = protowire.AppendVarint(b, vecSize)
		b = appendVec(b, t)
	}

	sum := xxhash.Sum64(b)
	b = protowire.AppendTag(b, fieldChecksum, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, sum)
}

// DecodeSnapshot parses a frame produced by EncodeSnapshot.
func DecodeSnapshot(b []byte) (*Snapshot, error) {
	if len(b) < checksumSize {
		return nil, ErrTruncated
	}
	body, trailer := b[:len(b)-checksumSize], b[len(b)-checksumSize:]

	num, typ, n := protowire.ConsumeTag(trailer)
	if n < 0 || num != fieldChecksum || typ != protowire.Fixed64Type {
		return nil, ErrTruncated
	}
	sum, _ := protowire.ConsumeFixed64(trailer[n:])
	if sum != xxhash.Sum64(body) {
		return nil, ErrChecksum
	}

	s := &Snapshot{}
	for len(body) > 0 {
		num, typ, n := protowire.ConsumeTag(body)
		if n < 0 {
			return nil, fmt.Errorf("snapshot tag: %w", protowire.ParseError(n))
		}
		body = body[n:]

		switch {
		case num == fieldStep && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(body)
			if n < 0 {
				return nil, fmt.Errorf("snapshot step: %w", protowire.ParseError(n))
			}
			s.Step = v
			body = body[n:]

		case num == fieldBounce && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(body)
			if n < 0 {
				return nil, fmt.Errorf("snapshot bounce: %w", protowire.ParseError(n))
			}
			s.Bounce = protowire.DecodeBool(v)
			body = body[n:]

		case num == fieldBoid && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(body)
			if n < 0 {
				return nil, fmt.Errorf("snapshot boid: %w", protowire.ParseError(n))
			}
			boid, err := decodeBoid(v)
			if err != nil {
				return nil, err
			}
			s.Boids = append(s.Boids, boid)
			body = body[n:]

		case num == fieldTarget && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(body)
			if n < 0 {
				return nil, fmt.Errorf("snapshot target: %w", protowire.ParseError(n))
			}
			t, err := decodeVec(v)
			if err != nil {
				return nil, err
			}
			s.Targets = append(s.Targets, t)
			body = body[n:]

		default:
			// unknown field, skip it like any protobuf reader would
			n := protowire.ConsumeFieldValue(num, typ, body)
			if n < 0 {
				return nil, fmt.Errorf("snapshot field %d: %w", num, protowire.ParseError(n))
			}
			body = body[n:]
		}
	}
	return s, nil
}

func appendVecField(b []byte, num protowire.Number, v geometry.Vector3) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	b = protowire.AppendVarint(b, vecSize)
	return appendVec(b, v)
}

func appendVec(b []byte, v geometry.Vector3) []byte {
	b = protowire.AppendTag(b, 1, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, math.Float32bits(v.X))
	b = protowire.AppendTag(b, 2, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, math.Float32bits(v.Y))
	b = protowire.AppendTag(b, 3, protowire.Fixed32Type)
	return protowire.AppendFixed32(b, math.Float32bits(v.Z))
}

func decodeVec(b []byte) (geometry.Vector3, error) {
	var v geometry.Vector3
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return v, fmt.Errorf("vec tag: %w", protowire.ParseError(n))
		}
		b = b[n:]
		if typ != protowire.Fixed32Type {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return v, fmt.Errorf("vec field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
			continue
		}
		bits, n := protowire.ConsumeFixed32(b)
		if n < 0 {
			return v, fmt.Errorf("vec component: %w", protowire.ParseError(n))
		}
		b = b[n:]
		switch num {
		case 1:
			v.X = math.Float32frombits(bits)
		case 2:
			v.Y = math.Float32frombits(bits)
		case 3:
			v.Z = math.Float32frombits(bits)
		}
	}
	return v, nil
}

func decodeBoid(b []byte) (BoidState, error) {
	var s BoidState
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return s, fmt.Errorf("boid tag: %w", protowire.ParseError(n))
		}
		b = b[n:]
		if typ != protowire.BytesType || (num != fieldPosition && num != fieldVelocity) {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return s, fmt.Errorf("boid field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
			continue
		}
		raw, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return s, fmt.Errorf("boid vec: %w", protowire.ParseError(n))
		}
		b = b[n:]
		v, err := decodeVec(raw)
		if err != nil {
			return s, err
		}
		if num == fieldPosition {
			s.Position = v
		} else {
			s.Velocity = v
		}
	}
	return s, nil
}
