package netcode

// TimedPosition is one reported target position stamped with the client-relative
// time it arrived. Immutable once appended to a PositionHistory.
type TimedPosition struct {
	X, Y      float64
	Timestamp int64 // ms since session start
}

// DefaultHistorySize is the number of position samples kept by default.
const DefaultHistorySize = 100

// PositionHistory is a fixed-capacity, time-ordered buffer of the target's
// recently reported positions. Oldest samples are evicted first when the
// buffer overflows. A capacity of 1 degenerates to "latest known position".
//
// Timestamps are assumed non-decreasing in arrival order (the transport
// delivers in order); the buffer does not re-sort.
type PositionHistory struct {
	samples  []TimedPosition
	capacity int
}

func NewPositionHistory(capacity int) *PositionHistory {
	if capacity < 1 {
		capacity = 1
	}
	return &PositionHistory{
		samples:  make([]TimedPosition, 0, capacity),
		capacity: capacity,
	}
}

// Append pushes a sample to the back, dropping the oldest when the buffer is
// full. O(1) amortized.
func (h *PositionHistory) Append(p TimedPosition) {
	if len(h.samples) == h.capacity {
		copy(h.samples, h.samples[1:])
		h.samples[len(h.samples)-1] = p
		return
	}
	h.samples = append(h.samples, p)
}

// Snapshot returns a copy of the buffered samples, oldest first. Readers may
// hold the slice without affecting the buffer.
func (h *PositionHistory) Snapshot() []TimedPosition {
	out := make([]TimedPosition, len(h.samples))
	copy(out, h.samples)
	return out
}

func (h *PositionHistory) Len() int {
	return len(h.samples)
}

// Latest returns the most recently appended sample, or false when empty.
func (h *PositionHistory) Latest() (TimedPosition, bool) {
	if len(h.samples) == 0 {
		return TimedPosition{}, false
	}
	return h.samples[len(h.samples)-1], true
}
