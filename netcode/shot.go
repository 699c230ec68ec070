package netcode

// ShotEvent is one outgoing fire action with the timing metadata the server
// needs to validate it against the target's historical position. Sent once,
// never mutated.
type ShotEvent struct {
	Timestamp           int64 // ms since session start, shifted back by simulated latency
	X, Y                int
	OffsetMs            int64
	CompensationEnabled bool
}

// ComposeShot builds the outgoing shot event.
//
// The timestamp is now - simulatedMs: the event is stamped as if it left the
// client that long ago. The clock offset is only attached when compensation
// is enabled, so the server can tell an uncompensated shot from one whose
// offset happens to be zero. No client-side bounds check on x,y; the server
// owns hit detection.
func ComposeShot(now int64, x, y int, estimate ClockEstimate, simulatedMs int64, compensationEnabled bool) ShotEvent {
	offset := int64(0)
	if compensationEnabled {
		offset = estimate.OffsetMs
	}
	return ShotEvent{
		Timestamp:           now - simulatedMs,
		X:                   x,
		Y:                   y,
		OffsetMs:            offset,
		CompensationEnabled: compensationEnabled,
	}
}
