package telemetry

import (
	"log"
	"sync"
	"time"
)

// Recorder keeps the most recent frames in a bounded ring and logs
// aggregate stats at most once per interval. It exists so a stalled or
// absent websocket client never grows server memory.
type Recorder struct {
	mu       sync.Mutex
	frames   []FrameSnapshot
	next     int
	filled   bool
	count    uint64
	interval time.Duration
	lastLog  time.Time
}

// NewRecorder returns a recorder holding up to size frames. Stats are
// logged at most once per interval; a zero interval disables logging.
func NewRecorder(size int, interval time.Duration) *Recorder {
	if size < 1 {
		size = 1
	}
	return &Recorder{
		frames:   make([]FrameSnapshot, size),
		interval: interval,
	}
}

// Record stores a frame, evicting the oldest when the ring is full.
func (r *Recorder) Record(frame FrameSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.frames[r.next] = frame
	r.next = (r.next + 1) % len(r.frames)
	if r.next == 0 {
		r.filled = true
	}
	r.count++

	if r.interval > 0 && time.Since(r.lastLog) >= r.interval {
		r.lastLog = time.Now()
		log.Printf("telemetry: %d frames recorded, last step %.2fms, %d bodies",
			r.count, frame.StepTime, frame.BodyCount)
	}
}

// Len reports how many frames the ring currently holds.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.filled {
		return len(r.frames)
	}
	return r.next
}

// Frames returns the retained frames, oldest first.
func (r *Recorder) Frames() []FrameSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.filled {
		out := make([]FrameSnapshot, r.next)
		copy(out, r.frames[:r.next])
		return out
	}
	out := make([]FrameSnapshot, 0, len(r.frames))
	out = append(out, r.frames[r.next:]...)
	out = append(out, r.frames[:r.next]...)
	return out
}

// Count reports the total number of frames ever recorded.
func (r *Recorder) Count() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}
