package netcode

import "testing"

func TestComposeShotShiftsTimestampBySimulatedLatency(t *testing.T) {
	est := ClockEstimate{OffsetMs: 12, LatencyMs: 30}

	evt := ComposeShot(5000, 320, 240, est, 150, true)
	if evt.Timestamp != 4850 {
		t.Fatalf("expected timestamp 4850, got %d", evt.Timestamp)
	}
	if evt.X != 320 || evt.Y != 240 {
		t.Fatalf("coordinates passed through wrong: %+v", evt)
	}
	if evt.OffsetMs != 12 {
		t.Fatalf("expected offset 12, got %d", evt.OffsetMs)
	}
	if !evt.CompensationEnabled {
		t.Fatalf("expected compensation flag set")
	}
}

func TestComposeShotDisabledZeroesOffset(t *testing.T) {
	est := ClockEstimate{OffsetMs: 77, LatencyMs: 40}

	evt := ComposeShot(5000, 10, 20, est, 0, false)
	if evt.OffsetMs != 0 {
		t.Fatalf("expected zero offset with compensation disabled, got %d", evt.OffsetMs)
	}
	if evt.CompensationEnabled {
		t.Fatalf("expected compensation flag clear")
	}
	if evt.Timestamp != 5000 {
		t.Fatalf("expected unshifted timestamp 5000, got %d", evt.Timestamp)
	}
}
