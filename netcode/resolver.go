package netcode

// ResolveDelayed returns the buffered sample closest in time to
// now - simulatedMs, or false when the buffer is empty.
//
// The scan is linear over the snapshot and snaps to a recorded sample rather
// than interpolating between two. On an exact distance tie the oldest sample
// wins. O(n) with n <= capacity; this runs once per render tick, not per
// network message.
func (h *PositionHistory) ResolveDelayed(now, simulatedMs int64) (TimedPosition, bool) {
	if len(h.samples) == 0 {
		return TimedPosition{}, false
	}

	targetTime := now - simulatedMs

	best := h.samples[0]
	bestDist := absInt64(best.Timestamp - targetTime)
	for _, s := range h.samples[1:] {
		d := absInt64(s.Timestamp - targetTime)
		if d < bestDist {
			best = s
			bestDist = d
		}
	}
	return best, true
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
