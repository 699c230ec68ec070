package core

import (
	"math"

	"github.com/automoto/hitscan/shared/messages"
)

// resolveShot validates one shot against the target's position history.
//
// With compensation enabled the shot is judged against where the target was
// at the shooter's perceived instant: the client-relative shot timestamp is
// translated to server time with the supplied clock offset, and the nearest
// recorded sample is used. With compensation disabled the shot is judged
// against the target's current position, so under latency it lands behind
// the target.
func (s *Server) resolveShot(m *messages.ShootMessage) messages.HitResultMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if m.CompensationEnabled {
		shotServerTime := m.Timestamp + m.Offset
		sample, ok := s.history.ResolveDelayed(shotServerTime, 0)
		if !ok {
			return messages.HitResultMessage{Type: messages.TypeHitResult}
		}
		return s.judge(m, sample.X, sample.Y)
	}

	sample, ok := s.history.Latest()
	if !ok {
		return messages.HitResultMessage{Type: messages.TypeHitResult}
	}
	return s.judge(m, sample.X, sample.Y)
}

// judge compares the shot point against a target position and fills in the
// kill-cam coordinates on a hit.
func (s *Server) judge(m *messages.ShootMessage, targetX, targetY float64) messages.HitResultMessage {
	result := messages.HitResultMessage{Type: messages.TypeHitResult}

	shotX, shotY := float64(m.X), float64(m.Y)
	if math.Hypot(shotX-targetX, shotY-targetY) > s.cfg.TargetRadius {
		return result
	}

	result.Hit = true
	result.HitX = &shotX
	result.HitY = &shotY
	result.TargetX = &targetX
	result.TargetY = &targetY
	return result
}
