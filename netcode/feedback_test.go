package netcode

import "testing"

func TestMarkerExpiry(t *testing.T) {
	var f HitFeedback
	f.Record(HitResult{Hit: false}, 1000)

	if !f.MarkerVisible(1499) {
		t.Fatalf("marker should be visible at 1499")
	}
	if f.MarkerVisible(1501) {
		t.Fatalf("marker should be gone at 1501")
	}
}

func TestMarkerIdleBeforeAnyResult(t *testing.T) {
	var f HitFeedback
	if f.MarkerVisible(0) {
		t.Fatalf("marker visible with no result recorded")
	}
	if f.KillcamVisible(0) {
		t.Fatalf("kill-cam visible with no result recorded")
	}
	if _, ok := f.Last(); ok {
		t.Fatalf("Last should report no result")
	}
	if f.MarkerElapsed(100) != -1 {
		t.Fatalf("expected -1 elapsed while idle")
	}
}

func TestNewResultRestartsClock(t *testing.T) {
	var f HitFeedback
	f.Record(HitResult{Hit: false}, 1000)
	f.Record(HitResult{Hit: true, HasCoords: true, HitX: 5, HitY: 5}, 1400)

	if !f.MarkerVisible(1850) {
		t.Fatalf("marker clock should have restarted at 1400")
	}
	last, ok := f.Last()
	if !ok || !last.Hit {
		t.Fatalf("expected the newer hit result to be retained, got %+v", last)
	}
}

func TestKillcamWindowLongerThanMarker(t *testing.T) {
	var f HitFeedback
	f.Record(HitResult{Hit: true, HasCoords: true, HitX: 3, HitY: 4, TargetX: 1, TargetY: 1}, 1000)

	if f.MarkerVisible(2000) {
		t.Fatalf("marker should be gone at 2000")
	}
	if !f.KillcamVisible(2000) {
		t.Fatalf("kill-cam should still show at 2000")
	}
	if f.KillcamVisible(1000 + HitPointTimeMs + 1) {
		t.Fatalf("kill-cam should be gone after %dms", HitPointTimeMs)
	}
}

func TestKillcamRequiresHitWithCoords(t *testing.T) {
	var f HitFeedback

	f.Record(HitResult{Hit: false}, 1000)
	if f.KillcamVisible(1100) {
		t.Fatalf("miss must not get a kill-cam")
	}

	// Degenerate hit_result: hit reported without coordinates. Marker-only.
	f.Record(HitResult{Hit: true, HasCoords: false}, 2000)
	if !f.MarkerVisible(2100) {
		t.Fatalf("marker should still show for a coordless hit")
	}
	if f.KillcamVisible(2100) {
		t.Fatalf("kill-cam needs coordinates")
	}
}

func TestKillcamPointMagnifiesLocalHit(t *testing.T) {
	r := HitResult{Hit: true, HasCoords: true, HitX: 103, HitY: 96, TargetX: 100, TargetY: 100}

	// Hit 3 right and 4 above the target center, magnified 10x around (400, 300).
	x, y := KillcamPoint(r, 400, 300, 10)
	if x != 430 {
		t.Fatalf("expected x=430, got %v", x)
	}
	if y != 260 {
		t.Fatalf("expected y=260, got %v", y)
	}
}
