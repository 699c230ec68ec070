package netcode

// Display windows for server-reported hit results.
const (
	HitMarkerTimeMs = 500  // hit/miss marker duration
	HitPointTimeMs  = 3000 // kill-cam overlay duration
)

// HitResult is the server's verdict on one shot. Coordinates are only
// meaningful when Hit and HasCoords are both true; a hit_result that arrives
// without them degrades to marker-only feedback.
type HitResult struct {
	Hit              bool
	HitX, HitY       float64
	TargetX, TargetY float64
	HasCoords        bool
}

// HitFeedback retains the most recent hit result and the timing needed to
// drive the hit marker and kill-cam overlays. It renders nothing itself.
//
// A new result restarts the clock regardless of prior state; there is no
// queue, only the latest result is kept.
type HitFeedback struct {
	result      HitResult
	markerStart int64
	active      bool
	seq         uint64
}

// Record stores result and starts (or restarts) the marker clock at now.
func (f *HitFeedback) Record(result HitResult, now int64) {
	f.result = result
	f.markerStart = now
	f.active = true
	f.seq++
}

// Seq counts recorded results, letting a renderer detect a fresh verdict.
func (f *HitFeedback) Seq() uint64 {
	return f.seq
}

// MarkerVisible reports whether the hit/miss marker should currently show.
func (f *HitFeedback) MarkerVisible(now int64) bool {
	return f.active && now-f.markerStart <= HitMarkerTimeMs
}

// KillcamVisible reports whether the kill-cam overlay should currently show.
// Only successful hits with coordinates get a kill-cam.
func (f *HitFeedback) KillcamVisible(now int64) bool {
	return f.active && f.result.Hit && f.result.HasCoords &&
		now-f.markerStart <= HitPointTimeMs
}

// Last returns the retained result, or false if none has arrived yet.
func (f *HitFeedback) Last() (HitResult, bool) {
	return f.result, f.active
}

// MarkerElapsed returns ms since the marker clock started, or -1 when idle.
func (f *HitFeedback) MarkerElapsed(now int64) int64 {
	if !f.active {
		return -1
	}
	return now - f.markerStart
}

// KillcamPoint maps the server-reported hit point into kill-cam display
// space: the hit's position local to the target at hit time, magnified by
// scale around the overlay center. Pure transform, no side effects.
func KillcamPoint(r HitResult, centerX, centerY, scale float64) (float64, float64) {
	localX := r.HitX - r.TargetX
	localY := r.HitY - r.TargetY
	return centerX + localX*scale, centerY + localY*scale
}
