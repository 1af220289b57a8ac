package swarm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/protobuf/encoding/protowire"
)

// ErrCorruptRecording is returned when a landmark recording cannot be decoded.
var ErrCorruptRecording = errors.New("corrupt landmark recording")

// A recording is a sequence of length-delimited frame messages:
//
//	field 1 (varint) offset from the first frame, microseconds
//	field 2 (bytes)  packed fixed32 floats x0, y0, x1, y1, ...; absent when no hand
//
// Unknown fields are skipped so the layout can grow.
const (
	fieldOffset protowire.Number = 1
	fieldPoints protowire.Number = 2
)

// LandmarkFrame is one recorded landmark callback.
type LandmarkFrame struct {
	Offset time.Duration
	// Points is empty when no hand was visible.
	Points []Vec2
}

// AppendFrame appends the wire encoding of f to b.
func AppendFrame(b []byte, f LandmarkFrame) []byte {
	var msg []byte
	msg = protowire.AppendTag(msg, fieldOffset, protowire.VarintType)
	msg = protowire.AppendVarint(msg, uint64(f.Offset/time.Microsecond))
	if len(f.Points) > 0 {
		packed := make([]byte, 0, len(f.Points)*8)
		for _, p := range f.Points {
			packed = protowire.AppendFixed32(packed, math.Float32bits(float32(p.X)))
			packed = protowire.AppendFixed32(packed, math.Float32bits(float32(p.Y)))
		}
		msg = protowire.AppendTag(msg, fieldPoints, protowire.BytesType)
		msg = protowire.AppendBytes(msg, packed)
	}
	return protowire.AppendBytes(b, msg)
}

// DecodeFrames decodes a whole recording.
func DecodeFrames(data []byte) ([]LandmarkFrame, error) {
	var frames []LandmarkFrame
	for len(data) > 0 {
		msg, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return nil, fmt.Errorf("frame %d: %w: %v", len(frames), ErrCorruptRecording, protowire.ParseError(n))
		}
		data = data[n:]
		f, err := decodeFrame(msg)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", len(frames), err)
		}
		frames = append(frames, f)
	}
	return frames, nil
}

func decodeFrame(msg []byte) (LandmarkFrame, error) {
	var f LandmarkFrame
	for len(msg) > 0 {
		num, typ, n := protowire.ConsumeTag(msg)
		if n < 0 {
			return f, fmt.Errorf("%w: %v", ErrCorruptRecording, protowire.ParseError(n))
		}
		msg = msg[n:]
		switch {
		case num == fieldOffset && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(msg)
			if n < 0 {
				return f, fmt.Errorf("%w: offset: %v", ErrCorruptRecording, protowire.ParseError(n))
			}
			f.Offset = time.Duration(v) * time.Microsecond
			msg = msg[n:]
		case num == fieldPoints && typ == protowire.BytesType:
			packed, n := protowire.ConsumeBytes(msg)
			if n < 0 {
				return f, fmt.Errorf("%w: points: %v", ErrCorruptRecording, protowire.ParseError(n))
			}
			if len(packed)%8 != 0 {
				return f, fmt.Errorf("%w: %d point bytes", ErrCorruptRecording, len(packed))
			}
			f.Points = make([]Vec2, 0, len(packed)/8)
			for len(packed) > 0 {
				x, _ := protowire.ConsumeFixed32(packed)
				y, _ := protowire.ConsumeFixed32(packed[4:])
				f.Points = append(f.Points, Vec2{
					X: float64(math.Float32frombits(x)),
					Y: float64(math.Float32frombits(y)),
				})
				packed = packed[8:]
			}
			msg = msg[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, msg)
			if n < 0 {
				return f, fmt.Errorf("%w: field %d: %v", ErrCorruptRecording, num, protowire.ParseError(n))
			}
			msg = msg[n:]
		}
	}
	return f, nil
}

// Recorder writes landmark frames to w as they arrive. Offsets are measured
// from the first recorded frame. Safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	w     io.Writer
	start time.Time
	now   func() time.Time
	buf   []byte
	count int
}

// NewRecorder creates a Recorder writing to w.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: w, now: time.Now}
}

// Record writes one landmark callback stamped with the current time.
func (r *Recorder) Record(points []Vec2) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.now()
	if r.count == 0 {
		r.start = t
	}
	return r.writeLocked(LandmarkFrame{Offset: t.Sub(r.start), Points: points})
}

// WriteFrame writes f with its own offset.
func (r *Recorder) WriteFrame(f LandmarkFrame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writeLocked(f)
}

func (r *Recorder) writeLocked(f LandmarkFrame) error {
	r.buf = AppendFrame(r.buf[:0], f)
	if _, err := r.w.Write(r.buf); err != nil {
		return fmt.Errorf("record frame %d: %w", r.count, err)
	}
	r.count++
	return nil
}

// Frames returns the number of frames written.
func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// ReplaySource plays recorded frames back with their original spacing.
type ReplaySource struct {
	Frames []LandmarkFrame
	// Speed scales playback; values <= 0 mean 1.
	Speed float64
	// Loop restarts playback after the last frame.
	Loop bool
}

// NewReplaySource reads a whole recording from r.
func NewReplaySource(r io.Reader) (*ReplaySource, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read recording: %w", err)
	}
	frames, err := DecodeFrames(data)
	if err != nil {
		return nil, fmt.Errorf("read recording: %w", err)
	}
	return &ReplaySource{Frames: frames}, nil
}

// Run emits every frame at its recorded offset. It returns nil at the end
// of a non-looping recording and ctx.Err() on cancellation.
func (s *ReplaySource) Run(ctx context.Context, emit func(points []Vec2)) error {
	if len(s.Frames) == 0 {
		return fmt.Errorf("replay: %w: empty recording", ErrSourceUnavailable)
	}
	speed := s.Speed
	if speed <= 0 {
		speed = 1
	}
	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	for {
		start := time.Now()
		for _, f := range s.Frames {
			wait := time.Duration(float64(f.Offset)/speed) - time.Since(start)
			if wait > 0 {
				timer.Reset(wait)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-timer.C:
				}
			} else if err := ctx.Err(); err != nil {
				return err
			}
			emit(f.Points)
		}
		if !s.Loop {
			return nil
		}
	}
}

// RecordingSource forwards every frame of Source to the session and to
// Recorder. A write failure is logged once and stops the recording but not
// the feed.
type RecordingSource struct {
	Source   LandmarkSource
	Recorder *Recorder
	// Logger receives the write failure. Nil discards it.
	Logger *zap.Logger
}

// Run runs the wrapped source.
func (s RecordingSource) Run(ctx context.Context, emit func(points []Vec2)) error {
	log := s.Logger
	if log == nil {
		log = zap.NewNop()
	}
	recording := true
	return s.Source.Run(ctx, func(points []Vec2) {
		if recording {
			if err := s.Recorder.Record(points); err != nil {
				recording = false
				log.Error("landmark recording stopped",
					zap.Int("frames", s.Recorder.Frames()),
					zap.Error(err))
			}
		}
		emit(points)
	})
}
