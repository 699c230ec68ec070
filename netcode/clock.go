package netcode

// ClockEstimate is the synchronizer's current belief about the server clock,
// derived from the most recently completed probe.
type ClockEstimate struct {
	OffsetMs  int64 // serverTime - clientTime at the probe instant
	LatencyMs int64 // estimated one-way latency, never negative
}

// maxPendingProbes bounds the set of unanswered probes. Probes beyond the
// limit are abandoned oldest-first; a late reply to an evicted probe is
// simply ignored.
const maxPendingProbes = 8

// ClockSync estimates one-way latency and the client/server clock offset
// from round-trip probes.
//
// The canonical protocol is the three-timestamp round trip: the client sends
// its timestamp t0, the server replies with its receive time t1 and send
// time t2, and the client notes its own receive time t3. Then
//
//	latency = (t3 - t0) / 2   (symmetric-latency assumption)
//	offset  = t1 - (t0 + latency)
//
// The echoed client timestamp doubles as the probe ID, so replies can be
// matched to the probe that produced them without extra bookkeeping on the
// wire.
//
// A ping/pong compatibility mode is also supported: CompletePing measures
// latency from the RTT alone, and ApplyServerTime sets the offset from a raw
// server clock reading. The two modes are never mixed into one estimate.
type ClockSync struct {
	estimate ClockEstimate
	lastRTT  int64

	pending []int64 // send times of unanswered probes, oldest first
}

func NewClockSync() *ClockSync {
	return &ClockSync{}
}

// BeginProbe registers an outgoing probe sent at sendTime. The caller is
// expected to put sendTime on the wire; the server echoes it back as the
// probe ID.
func (c *ClockSync) BeginProbe(sendTime int64) {
	c.pending = append(c.pending, sendTime)
	if len(c.pending) > maxPendingProbes {
		c.pending = c.pending[len(c.pending)-maxPendingProbes:]
	}
}

// CompleteProbe finishes the three-timestamp round trip for the probe sent
// at sendTime. Returns the updated estimate and true when the probe was
// known; an unknown or already-evicted probe leaves the estimate unchanged.
//
// Clock skew or out-of-order completion can make the raw formula produce a
// negative latency; it is clamped to zero rather than propagated.
func (c *ClockSync) CompleteProbe(sendTime, serverRecvTime, serverSendTime, receiveTime int64) (ClockEstimate, bool) {
	if !c.takePending(sendTime) {
		return c.estimate, false
	}

	rtt := receiveTime - sendTime
	if rtt < 0 {
		rtt = 0
	}
	latency := rtt / 2

	c.lastRTT = rtt
	c.estimate = ClockEstimate{
		OffsetMs:  serverRecvTime - (sendTime + latency),
		LatencyMs: latency,
	}
	return c.estimate, true
}

// CompletePing finishes a ping/pong round trip (compatibility mode). Only
// the latency half of the estimate is updated; the offset is left for
// ApplyServerTime.
func (c *ClockSync) CompletePing(sendTime, receiveTime int64) (ClockEstimate, bool) {
	if !c.takePending(sendTime) {
		return c.estimate, false
	}

	rtt := receiveTime - sendTime
	if rtt < 0 {
		rtt = 0
	}
	c.lastRTT = rtt
	c.estimate.LatencyMs = rtt / 2
	return c.estimate, true
}

// ApplyServerTime sets the offset from a raw server clock reading
// (compatibility mode). The offset is the plain difference, not reconciled
// with any measured latency.
func (c *ClockSync) ApplyServerTime(serverTime, clientTime int64) ClockEstimate {
	c.estimate.OffsetMs = serverTime - clientTime
	return c.estimate
}

// Estimate returns the current belief. The zero value (offset 0, latency 0)
// is returned before any probe completes.
func (c *ClockSync) Estimate() ClockEstimate {
	return c.estimate
}

// LastRTT returns the round-trip time of the most recently completed probe.
func (c *ClockSync) LastRTT() int64 {
	return c.lastRTT
}

// takePending removes sendTime from the pending set, reporting whether it
// was present.
func (c *ClockSync) takePending(sendTime int64) bool {
	for i, t := range c.pending {
		if t == sendTime {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return true
		}
	}
	return false
}
