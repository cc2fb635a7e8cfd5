package simulation

import (
	"bufio"
	"bytes"
	"errors"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/lao-tseu-is-alive/go-flock/pkg/bounce"
	"github.com/lao-tseu-is-alive/go-flock/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func sampleSnapshot() *Snapshot {
	return &Snapshot{
		Step:   42,
		Bounce: true,
		Boids: []BoidState{
			{Position: geometry.NewVector(1, 2, 3), Velocity: geometry.NewVector(-0.5, 0, 7)},
			{Position: geometry.NewVector(100.25, -3, 0), Velocity: geometry.Zero},
		},
		Targets: []geometry.Vector3{geometry.NewVector(10, 20, 30)},
	}
}

func TestEncodeSnapshot_RoundTrip(t *testing.T) {
	in := sampleSnapshot()
	got, err := DecodeSnapshot(EncodeSnapshot(in))
	require.NoError(t, err)
	assert.Equal(t, in, got)

	empty, err := DecodeSnapshot(EncodeSnapshot(&Snapshot{}))
	require.NoError(t, err)
	assert.Equal(t, &Snapshot{}, empty)
}

func TestDecodeSnapshot_Corruption(t *testing.T) {
	frame := EncodeSnapshot(sampleSnapshot())

	t.Run("flipped body byte", func(t *testing.T) {
		bad := bytes.Clone(frame)
		bad[3] ^= 0xff
		_, err := DecodeSnapshot(bad)
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("flipped checksum byte", func(t *testing.T) {
		bad := bytes.Clone(frame)
		bad[len(bad)-1] ^= 0x01
		_, err := DecodeSnapshot(bad)
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("cut short", func(t *testing.T) {
		_, err := DecodeSnapshot(frame[:len(frame)-4])
		assert.ErrorIs(t, err, ErrTruncated)
		_, err = DecodeSnapshot(frame[:3])
		assert.ErrorIs(t, err, ErrTruncated)
	})
}

func TestDecodeSnapshot_SkipsUnknownFields(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, fieldStep, protowire.VarintType)
	b = protowire.AppendVarint(b, 7)
	b = protowire.AppendTag(b, 9, protowire.BytesType)
	b = protowire.AppendBytes(b, []byte("from a newer writer"))
	b = protowire.AppendTag(b, fieldChecksum, protowire.Fixed64Type)
	// recompute the trailer over the body
	body := b[:len(b)-1]
	b = protowire.AppendFixed64(b, xxhash.Sum64(body))

	s, err := DecodeSnapshot(b)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), s.Step)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRecorder_FlushReportsWriteError(t *testing.T) {
	rec := NewRecorder(bufio.NewWriter(failingWriter{}))
	// the frame fits in the buffer, so only Flush reaches the writer
	require.NoError(t, rec.Record(sampleSnapshot()))
	assert.ErrorContains(t, rec.Flush(), "disk full")

	var buf bytes.Buffer
	assert.NoError(t, NewRecorder(&buf).Flush(), "unbuffered writers have nothing to flush")
}

func TestRecorder_ReadFrames(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(&buf)
	for step := uint64(1); step <= 3; step++ {
		s := sampleSnapshot()
		s.Step = step
		require.NoError(t, rec.Record(s))
	}
	assert.Equal(t, 3, rec.Frames())

	var steps []uint64
	err := ReadFrames(bytes.NewReader(buf.Bytes()), func(s *Snapshot) error {
		steps = append(steps, s.Step)
		assert.Len(t, s.Boids, 2)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, steps)

	t.Run("truncated stream", func(t *testing.T) {
		cut := buf.Bytes()[:buf.Len()-5]
		n := 0
		err := ReadFrames(bytes.NewReader(cut), func(*Snapshot) error { n++; return nil })
		assert.ErrorIs(t, err, ErrTruncated)
		assert.Equal(t, 2, n)
	})

	t.Run("callback error stops reading", func(t *testing.T) {
		stop := errors.New("stop")
		n := 0
		err := ReadFrames(bytes.NewReader(buf.Bytes()), func(*Snapshot) error { n++; return stop })
		assert.ErrorIs(t, err, stop)
		assert.Equal(t, 1, n)
	})

	t.Run("empty stream", func(t *testing.T) {
		assert.NoError(t, ReadFrames(bytes.NewReader(nil), func(*Snapshot) error { return nil }))
	})
}

func TestSnapshot_Aggregates(t *testing.T) {
	s := &Snapshot{Boids: []BoidState{
		{Position: geometry.NewVector(0, 0, 0), Velocity: geometry.NewVector(3, 4, 0)},
		{Position: geometry.NewVector(2, 4, 6), Velocity: geometry.NewVector(0, 0, 1)},
	}}
	assert.InDelta(t, 3, s.AverageSpeed(), 1e-6)
	assert.Equal(t, geometry.NewVector(1, 2, 3), s.Centroid())

	empty := &Snapshot{}
	assert.Zero(t, empty.AverageSpeed())
	assert.Equal(t, geometry.Zero, empty.Centroid())
}

func BenchmarkEncodeSnapshot(b *testing.B) {
	s := &Snapshot{Boids: make([]BoidState, 2000)}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = EncodeSnapshot(s)
	}
}

func TestNewSnapshot_Copies(t *testing.T) {
	boids := []flock.Boid{flock.NewBoid(geometry.NewVector(1, 2, 3), geometry.NewVector(4, 5, 6))}
	s := NewSnapshot(9, boids, nil)
	boids[0].Position = geometry.Zero

	assert.Equal(t, uint64(9), s.Step)
	assert.False(t, s.Bounce)
	assert.Equal(t, geometry.NewVector(1, 2, 3), s.Boids[0].Position)
	assert.Equal(t, geometry.NewVector(4, 5, 6), s.Boids[0].Velocity)

	bb := []bounce.Boid{bounce.NewBoid(geometry.NewVector(5, 5, 0), geometry.NewVector(2, 2, 0), 0)}
	bs := NewBounceSnapshot(1, bb, nil)
	assert.True(t, bs.Bounce)
	assert.True(t, bs.Boids[0].Velocity.Eq(geometry.NewVector(2, 0, 0)))
}
