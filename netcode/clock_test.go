package netcode

import "testing"

func TestCompleteProbeRoundTripEstimate(t *testing.T) {
	c := NewClockSync()
	c.BeginProbe(1000)

	est, ok := c.CompleteProbe(1000, 1050, 1050, 1100)
	if !ok {
		t.Fatalf("expected probe to be known")
	}
	if est.LatencyMs != 50 {
		t.Fatalf("expected latency 50, got %d", est.LatencyMs)
	}
	if est.OffsetMs != 0 {
		t.Fatalf("expected offset 0, got %d", est.OffsetMs)
	}
	if c.LastRTT() != 100 {
		t.Fatalf("expected RTT 100, got %d", c.LastRTT())
	}
}

func TestCompleteProbeOddRTTFloors(t *testing.T) {
	c := NewClockSync()
	c.BeginProbe(0)

	est, ok := c.CompleteProbe(0, 500, 500, 101)
	if !ok {
		t.Fatalf("expected probe to be known")
	}
	if est.LatencyMs != 50 {
		t.Fatalf("expected floor(101/2)=50, got %d", est.LatencyMs)
	}
	if est.OffsetMs != 450 {
		t.Fatalf("expected offset 500-(0+50)=450, got %d", est.OffsetMs)
	}
}

func TestCompleteProbeClampsNegativeLatency(t *testing.T) {
	c := NewClockSync()
	c.BeginProbe(2000)

	// Receive time before send time implies a negative RTT; the estimate
	// must clamp rather than go negative.
	est, ok := c.CompleteProbe(2000, 2100, 2100, 1990)
	if !ok {
		t.Fatalf("expected probe to be known")
	}
	if est.LatencyMs != 0 {
		t.Fatalf("expected latency clamped to 0, got %d", est.LatencyMs)
	}
	if est.OffsetMs != 100 {
		t.Fatalf("expected offset 100, got %d", est.OffsetMs)
	}
}

func TestCompleteProbeUnknownLeavesEstimate(t *testing.T) {
	c := NewClockSync()
	c.BeginProbe(1000)
	if _, ok := c.CompleteProbe(1000, 1050, 1050, 1100); !ok {
		t.Fatalf("first completion should succeed")
	}
	before := c.Estimate()

	if _, ok := c.CompleteProbe(999, 5000, 5000, 6000); ok {
		t.Fatalf("unknown probe should not complete")
	}
	if c.Estimate() != before {
		t.Fatalf("estimate changed by unknown probe: %+v -> %+v", before, c.Estimate())
	}
}

func TestCompleteProbeConsumedOnce(t *testing.T) {
	c := NewClockSync()
	c.BeginProbe(1000)

	if _, ok := c.CompleteProbe(1000, 1050, 1050, 1100); !ok {
		t.Fatalf("first completion should succeed")
	}
	if _, ok := c.CompleteProbe(1000, 9000, 9000, 9100); ok {
		t.Fatalf("probe completed twice")
	}
}

func TestPendingProbesBounded(t *testing.T) {
	c := NewClockSync()
	for i := int64(0); i < maxPendingProbes+3; i++ {
		c.BeginProbe(i * 10)
	}

	// The oldest probes were evicted; their late replies are ignored.
	if _, ok := c.CompleteProbe(0, 100, 100, 200); ok {
		t.Fatalf("evicted probe should not complete")
	}
	last := int64(maxPendingProbes+2) * 10
	if _, ok := c.CompleteProbe(last, last+50, last+50, last+100); !ok {
		t.Fatalf("most recent probe should still complete")
	}
}

func TestPingPongCompatibilityMode(t *testing.T) {
	c := NewClockSync()
	c.BeginProbe(1000)

	est, ok := c.CompletePing(1000, 1080)
	if !ok {
		t.Fatalf("expected ping to be known")
	}
	if est.LatencyMs != 40 {
		t.Fatalf("expected latency 40, got %d", est.LatencyMs)
	}
	if est.OffsetMs != 0 {
		t.Fatalf("ping must not touch the offset, got %d", est.OffsetMs)
	}

	est = c.ApplyServerTime(50_000, 1100)
	if est.OffsetMs != 48_900 {
		t.Fatalf("expected raw offset 48900, got %d", est.OffsetMs)
	}
	if est.LatencyMs != 40 {
		t.Fatalf("server time must not touch latency, got %d", est.LatencyMs)
	}
}
