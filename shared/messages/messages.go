// Package messages defines the JSON wire protocol between the range client
// and the range server. Field names are part of the wire contract and must
// not change. It has zero dependencies on ebiten or any graphics library so
// the dedicated server binary stays headless.
package messages

import (
	"encoding/json"
	"fmt"
)

// Message type discriminators.
const (
	// server -> client
	TypePosition     = "position"
	TypeHitResult    = "hit_result"
	TypeSyncResponse = "sync_response"
	TypePong         = "pong"

	// client -> server
	TypeSync          = "sync"
	TypePing          = "ping"
	TypeLatencyUpdate = "latency_update"
	TypeShoot         = "shoot"
)

// Position is the target's coordinates inside a position message.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PositionMessage carries one target position update.
type PositionMessage struct {
	Type     string   `json:"type"`
	Position Position `json:"position"`
}

// HitResultMessage is the server's verdict on a shot. The coordinate fields
// are only present on a hit; pointers distinguish absent from zero.
type HitResultMessage struct {
	Type    string   `json:"type"`
	Hit     bool     `json:"hit"`
	HitX    *float64 `json:"hit_x,omitempty"`
	HitY    *float64 `json:"hit_y,omitempty"`
	TargetX *float64 `json:"target_x,omitempty"`
	TargetY *float64 `json:"target_y,omitempty"`
}

// HasCoords reports whether the full kill-cam coordinate set is present.
func (m *HitResultMessage) HasCoords() bool {
	return m.HitX != nil && m.HitY != nil && m.TargetX != nil && m.TargetY != nil
}

// SyncResponseMessage completes a clock probe: the echoed client send time
// plus the server's receive and send times.
type SyncResponseMessage struct {
	Type           string `json:"type"`
	ClientTime     int64  `json:"clientTime"`
	ServerRecvTime int64  `json:"serverRecvTime"`
	ServerSendTime int64  `json:"serverSendTime"`
}

// PongMessage answers a ping. The timestamp echo is optional.
type PongMessage struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

// SyncMessage starts a clock probe; timestamp is the client send time and
// doubles as the probe ID.
type SyncMessage struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
}

// PingMessage starts an RTT-only probe.
type PingMessage struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
}

// LatencyUpdateMessage reports the client's measured round-trip time.
type LatencyUpdateMessage struct {
	Type string `json:"type"`
	RTT  int64  `json:"rtt"`
}

// ShootMessage is one fire action with its compensation metadata.
type ShootMessage struct {
	Type                string `json:"type"`
	Timestamp           int64  `json:"timestamp"`
	X                   int    `json:"x"`
	Y                   int    `json:"y"`
	Offset              int64  `json:"offset"`
	CompensationEnabled bool   `json:"compensation_enabled"`
}

type envelope struct {
	Type string `json:"type"`
}

// Decode parses one wire frame into its typed message. Unknown types decode
// to (nil, nil) and are meant to be ignored; malformed frames return an
// error and must be dropped without mutating state.
func Decode(data []byte) (any, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	switch env.Type {
	case TypePosition:
		return decodeAs[PositionMessage](data)
	case TypeHitResult:
		return decodeAs[HitResultMessage](data)
	case TypeSyncResponse:
		return decodeAs[SyncResponseMessage](data)
	case TypePong:
		return decodeAs[PongMessage](data)
	case TypeSync:
		return decodeAs[SyncMessage](data)
	case TypePing:
		return decodeAs[PingMessage](data)
	case TypeLatencyUpdate:
		return decodeAs[LatencyUpdateMessage](data)
	case TypeShoot:
		return decodeAs[ShootMessage](data)
	default:
		return nil, nil
	}
}

func decodeAs[T any](data []byte) (*T, error) {
	var msg T
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("decode %T: %w", msg, err)
	}
	return &msg, nil
}
