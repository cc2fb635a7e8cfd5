package simulation

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"google.golang.org/protobuf/encoding/protowire"
)

// maxFrameSize bounds a single frame read back from a recording.
const maxFrameSize = 64 << 20

// Recorder appends varint length-prefixed snapshot frames to a writer.
type Recorder struct {
	w      io.Writer
	buf    []byte
	frames int
}

func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: w}
}

// Record encodes s and writes it as one frame.
func (r *Recorder) Record(s *Snapshot) error {
	frame := EncodeSnapshot(s)
	r.buf = protowire.AppendVarint(r.buf[:0], uint64(len(frame)))
	r.buf = append(r.buf, frame...)
	if _, err := r.w.Write(r.buf); err != nil {
		return fmt.Errorf("write frame %d: %w", r.frames, err)
	}
	r.frames++
	return nil
}

// Frames returns how many frames were written.
func (r *Recorder) Frames() int {
	return r.frames
}

// Flush pushes buffered frames down to the underlying writer when it buffers,
// as a *bufio.Writer does. A recording is complete only once Flush succeeds.
func (r *Recorder) Flush() error {
	f, ok := r.w.(interface{ Flush() error })
	if !ok {
		return nil
	}
	if err := f.Flush(); err != nil {
		return fmt.Errorf("flush after %d frames: %w", r.frames, err)
	}
	return nil
}

// ReadFrames decodes every frame in r and calls fn for each, in order.
// It stops at the first error returned by fn.
func ReadFrames(r io.Reader, fn func(*Snapshot) error) error {
	br := bufio.NewReader(r)
	for i := 0; ; i++ {
		size, err := binary.ReadUvarint(br)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("frame %d length: %w", i, err)
		}
		if size > maxFrameSize {
			return fmt.Errorf("frame %d: size %d exceeds limit", i, size)
		}
		frame := make([]byte, size)
		if _, err := io.ReadFull(br, frame); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
				return fmt.Errorf("frame %d: %w", i, ErrTruncated)
			}
			return fmt.Errorf("frame %d: %w", i, err)
		}
		s, err := DecodeSnapshot(frame)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if err := fn(s); err != nil {
			return err
		}
	}
}
