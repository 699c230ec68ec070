package core

import (
	"testing"

	"github.com/automoto/hitscan/shared/messages"
)

func newTestServer() *Server {
	cfg := DefaultConfig()
	cfg.TargetRadius = 10
	return NewServer(cfg, nil)
}

func TestResolveShotCompensatedRewindsToNearestSample(t *testing.T) {
	s := newTestServer()
	s.recordPosition(100, 100, 100)
	s.recordPosition(300, 300, 200)
	s.recordPosition(500, 500, 300)

	// Shot taken at client time 140 with offset 0 is closest to the
	// sample at 100, so the target is judged at (100, 100).
	result := s.resolveShot(&messages.ShootMessage{
		Type:                messages.TypeShoot,
		Timestamp:           140,
		X:                   100,
		Y:                   100,
		CompensationEnabled: true,
	})

	if !result.Hit {
		t.Fatal("expected hit against rewound position")
	}
	if *result.TargetX != 100 || *result.TargetY != 100 {
		t.Errorf("judged against (%v, %v), want (100, 100)", *result.TargetX, *result.TargetY)
	}
}

func TestResolveShotCompensatedAppliesClockOffset(t *testing.T) {
	s := newTestServer()
	s.recordPosition(100, 100, 1000)
	s.recordPosition(300, 300, 2000)

	// Client clock runs 900ms behind server time: timestamp 1100 plus
	// offset 900 lands on the server sample at 2000.
	result := s.resolveShot(&messages.ShootMessage{
		Type:                messages.TypeShoot,
		Timestamp:           1100,
		Offset:              900,
		X:                   300,
		Y:                   300,
		CompensationEnabled: true,
	})

	if !result.Hit {
		t.Fatal("expected hit after offset translation")
	}
	if *result.TargetX != 300 {
		t.Errorf("judged against x=%v, want 300", *result.TargetX)
	}
}

func TestResolveShotTieBreaksToOlderSample(t *testing.T) {
	s := newTestServer()
	s.recordPosition(100, 100, 100)
	s.recordPosition(300, 300, 300)

	// 200 is equidistant from both samples; the older one wins.
	result := s.resolveShot(&messages.ShootMessage{
		Type:                messages.TypeShoot,
		Timestamp:           200,
		X:                   100,
		Y:                   100,
		CompensationEnabled: true,
	})

	if !result.Hit {
		t.Fatal("expected hit against older sample on tie")
	}
}

func TestResolveShotUncompensatedUsesLatest(t *testing.T) {
	s := newTestServer()
	s.recordPosition(100, 100, 100)
	s.recordPosition(500, 500, 200)

	// Aiming at the old position misses because the shot is judged
	// against the newest sample.
	miss := s.resolveShot(&messages.ShootMessage{
		Type:      messages.TypeShoot,
		Timestamp: 100,
		X:         100,
		Y:         100,
	})
	if miss.Hit {
		t.Error("uncompensated shot at stale position should miss")
	}

	hit := s.resolveShot(&messages.ShootMessage{
		Type:      messages.TypeShoot,
		Timestamp: 100,
		X:         500,
		Y:         500,
	})
	if !hit.Hit {
		t.Error("uncompensated shot at current position should hit")
	}
}

func TestResolveShotEmptyHistoryMisses(t *testing.T) {
	s := newTestServer()

	for _, compensated := range []bool{true, false} {
		result := s.resolveShot(&messages.ShootMessage{
			Type:                messages.TypeShoot,
			X:                   100,
			Y:                   100,
			CompensationEnabled: compensated,
		})
		if result.Hit {
			t.Errorf("compensated=%v: hit with no history", compensated)
		}
		if result.HasCoords() {
			t.Errorf("compensated=%v: miss should carry no coordinates", compensated)
		}
	}
}

func TestJudgeRadiusBoundary(t *testing.T) {
	s := newTestServer() // radius 10

	inside := s.judge(&messages.ShootMessage{X: 106, Y: 108}, 100, 100)
	if !inside.Hit {
		t.Error("shot at distance 10 should hit")
	}
	if !inside.HasCoords() {
		t.Error("hit should carry full kill-cam coordinates")
	}

	outside := s.judge(&messages.ShootMessage{X: 100, Y: 111}, 100, 100)
	if outside.Hit {
		t.Error("shot at distance 11 should miss")
	}
}
