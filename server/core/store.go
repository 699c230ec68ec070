package core

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/automoto/hitscan/netcode"
	"github.com/go-redis/redis/v8"
)

const mirrorKey = "target_positions"

// HistoryMirror keeps a copy of the target's recent positions in Redis so
// external tooling can replay or inspect the range without attaching to the
// websocket. Entirely optional; a nil mirror is a no-op.
type HistoryMirror struct {
	rdb  *redis.Client
	size int64
}

// NewHistoryMirror connects to Redis at addr. An empty addr disables the
// mirror and returns nil.
func NewHistoryMirror(addr string, size int) *HistoryMirror {
	if addr == "" {
		return nil
	}
	return &HistoryMirror{
		rdb:  redis.NewClient(&redis.Options{Addr: addr}),
		size: int64(size),
	}
}

// Push records one position, trimming the list to the configured size.
// Failures are logged and swallowed; the mirror is never load-bearing.
func (m *HistoryMirror) Push(pos netcode.TimedPosition) {
	if m == nil {
		return
	}

	data, err := json.Marshal(pos)
	if err != nil {
		log.Printf("[range] mirror marshal failed: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	pipe := m.rdb.Pipeline()
	pipe.LPush(ctx, mirrorKey, data)
	pipe.LTrim(ctx, mirrorKey, 0, m.size-1)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("[range] mirror push failed: %v", err)
	}
}

func (m *HistoryMirror) Close() error {
	if m == nil {
		return nil
	}
	return m.rdb.Close()
}
