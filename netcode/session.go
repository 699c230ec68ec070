package netcode

import (
	"sync"
	"time"
)

// Session owns the client-side lag-compensation state: the clock estimate,
// the target position history, the simulated-latency model and the last hit
// result. The network-receive path and the render tick both go through it;
// the mutex is held only for the duration of a single read or mutation, so
// neither path can block the other for long.
//
// All timestamps are milliseconds since the session started.
type Session struct {
	mu sync.Mutex

	start    time.Time
	clock    *ClockSync
	history  *PositionHistory
	latency  *LatencyModel
	feedback *HitFeedback

	syncIntervalMs int64
	lastProbeAt    int64
	probeSent      bool
	lastPingSent   int64
}

// NewSession creates a session with the given history capacity, simulated
// latency bound and probe interval.
func NewSession(historySize int, maxSimulatedMs, syncIntervalMs int64) *Session {
	return &Session{
		start:          time.Now(),
		clock:          NewClockSync(),
		history:        NewPositionHistory(historySize),
		latency:        NewLatencyModel(maxSimulatedMs),
		feedback:       &HitFeedback{},
		syncIntervalMs: syncIntervalMs,
	}
}

// Now returns milliseconds elapsed since the session started.
func (s *Session) Now() int64 {
	return time.Since(s.start).Milliseconds()
}

// HandlePosition records a target position reported by the server, stamped
// with the local arrival time. Called from the network-receive path.
func (s *Session) HandlePosition(x, y float64) {
	now := s.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Append(TimedPosition{X: x, Y: y, Timestamp: now})
}

// HandleHitResult retains the server's verdict on a shot and restarts the
// marker clock. Called from the network-receive path.
func (s *Session) HandleHitResult(r HitResult) {
	now := s.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedback.Record(r, now)
}

// SyncDue reports whether a new clock probe should be sent at now.
func (s *Session) SyncDue(now int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.probeSent || now-s.lastProbeAt >= s.syncIntervalMs
}

// StartProbe registers a new three-timestamp probe and returns the send time
// the caller should put on the wire.
func (s *Session) StartProbe() int64 {
	now := s.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock.BeginProbe(now)
	s.lastProbeAt = now
	s.probeSent = true
	return now
}

// CompleteProbe finishes the probe matching the echoed clientTime. Returns
// the updated estimate, the measured RTT and whether the probe was known.
// A stale or unknown reply leaves the estimate untouched.
func (s *Session) CompleteProbe(clientTime, serverRecvTime, serverSendTime int64) (ClockEstimate, int64, bool) {
	now := s.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	est, ok := s.clock.CompleteProbe(clientTime, serverRecvTime, serverSendTime, now)
	return est, s.clock.LastRTT(), ok
}

// StartPing registers an RTT-only ping (compatibility mode) and returns its
// send time.
func (s *Session) StartPing() int64 {
	now := s.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock.BeginProbe(now)
	s.lastPingSent = now
	return now
}

// CompletePing finishes a ping/pong round trip. A pong that carries no echo
// (echoTime zero) is matched against the most recently sent ping.
func (s *Session) CompletePing(echoTime int64) (ClockEstimate, bool) {
	now := s.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	if echoTime == 0 {
		echoTime = s.lastPingSent
	}
	return s.clock.CompletePing(echoTime, now)
}

// ApplyServerTime sets the clock offset from a raw server clock reading
// (compatibility mode, never mixed with CompleteProbe offsets).
func (s *Session) ApplyServerTime(serverTime int64) ClockEstimate {
	now := s.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock.ApplyServerTime(serverTime, now)
}

// ResolveTarget returns the historical target sample the shooter should see
// at now, given the current simulated latency. False when no position has
// arrived yet.
func (s *Session) ResolveTarget(now int64) (TimedPosition, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.ResolveDelayed(now, s.latency.Get())
}

// ComposeShot builds an outgoing shot event from the current clock estimate
// and simulated latency.
func (s *Session) ComposeShot(x, y int, compensationEnabled bool) ShotEvent {
	now := s.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	return ComposeShot(now, x, y, s.clock.Estimate(), s.latency.Get(), compensationEnabled)
}

// SetSimulatedLatency clamps and stores the operator-configured extra
// latency.
func (s *Session) SetSimulatedLatency(ms int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latency.Set(ms)
}

func (s *Session) SimulatedLatency() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latency.Get()
}

// Estimate returns the current clock belief.
func (s *Session) Estimate() ClockEstimate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock.Estimate()
}

// LastRTT returns the RTT of the most recently completed probe.
func (s *Session) LastRTT() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock.LastRTT()
}

func (s *Session) MarkerVisible(now int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feedback.MarkerVisible(now)
}

func (s *Session) KillcamVisible(now int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feedback.KillcamVisible(now)
}

// LastResult returns the retained hit result, or false if none has arrived.
func (s *Session) LastResult() (HitResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feedback.Last()
}

// ResultSeq counts hit results received so far.
func (s *Session) ResultSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feedback.Seq()
}

// MarkerElapsed returns ms since the marker clock started, or -1 when idle.
func (s *Session) MarkerElapsed(now int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feedback.MarkerElapsed(now)
}

// HistoryLen reports how many position samples are buffered.
func (s *Session) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Len()
}
