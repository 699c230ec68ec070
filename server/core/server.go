// Package core implements the authoritative range server: it owns the moving
// target and its position history, answers clock probes, and validates shots
// with server-side lag compensation.
package core

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/automoto/hitscan/netcode"
	"github.com/automoto/hitscan/shared/messages"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

// Config holds the tunables of one range instance.
type Config struct {
	TickInterval time.Duration // target movement cadence
	HistorySize  int           // position samples kept for rewind
	TargetRadius float64       // hit distance threshold in pixels
	Width        float64       // range area bounds
	Height       float64

	// Shots per second accepted per client before throttling, with a small
	// burst allowance.
	ShotRate  float64
	ShotBurst int
}

func DefaultConfig() Config {
	return Config{
		TickInterval: 50 * time.Millisecond,
		HistorySize:  netcode.DefaultHistorySize,
		TargetRadius: 8,
		Width:        1080,
		Height:       720,
		ShotRate:     10,
		ShotBurst:    5,
	}
}

// Server manages the target, the position history, and connected shooters.
// All timestamps it hands out are milliseconds since the server started.
type Server struct {
	cfg   Config
	start time.Time

	mu      sync.RWMutex
	clients map[*client]struct{}
	history *netcode.PositionHistory
	target  *TargetMover

	mirror *HistoryMirror // optional, nil when disabled
}

// client is one connected shooter. The write mutex serializes frames; the
// websocket package allows only one concurrent writer.
type client struct {
	id      uuid.UUID
	conn    *websocket.Conn
	writeMu sync.Mutex
	limiter *rate.Limiter

	statsMu sync.Mutex
	rttMs   int64
	shots   int
	hits    int
}

func (c *client) sendJSON(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(v)
}

func NewServer(cfg Config, mirror *HistoryMirror) *Server {
	return &Server{
		cfg:     cfg,
		start:   time.Now(),
		clients: make(map[*client]struct{}),
		history: netcode.NewPositionHistory(cfg.HistorySize),
		target:  NewTargetMover(cfg.Width, cfg.Height),
		mirror:  mirror,
	}
}

// nowMs returns milliseconds since the server started.
func (s *Server) nowMs() int64 {
	return time.Since(s.start).Milliseconds()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler returns the HTTP mux for this range: the websocket endpoint plus
// health and stats.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /stats", s.handleStats)
	return mux
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[range] websocket upgrade failed: %v", err)
		return
	}

	c := &client{
		id:      uuid.New(),
		conn:    conn,
		limiter: rate.NewLimiter(rate.Limit(s.cfg.ShotRate), s.cfg.ShotBurst),
	}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	log.Printf("[range] shooter connected: %s", c.id)

	defer func() {
		s.mu.Lock()
		delete(s.clients, c)
		s.mu.Unlock()
		_ = conn.Close()
		log.Printf("[range] shooter disconnected: %s", c.id)
	}()

	s.readPump(c)
}

// readPump handles one shooter's inbound messages until the connection
// drops. Malformed frames are dropped, unknown types ignored; neither is
// fatal to the session.
func (s *Server) readPump(c *client) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		msg, err := messages.Decode(data)
		if err != nil {
			log.Printf("[range] dropping malformed message from %s: %v", c.id, err)
			continue
		}

		switch m := msg.(type) {
		case *messages.SyncMessage:
			s.handleSync(c, m)
		case *messages.PingMessage:
			s.reply(c, messages.PongMessage{Type: messages.TypePong, Timestamp: m.Timestamp})
		case *messages.LatencyUpdateMessage:
			c.statsMu.Lock()
			c.rttMs = m.RTT
			c.statsMu.Unlock()
		case *messages.ShootMessage:
			s.handleShoot(c, m)
		}
	}
}

// handleSync answers a clock probe with the three timestamps the client
// needs: its own echoed send time plus our receive and send times.
func (s *Server) handleSync(c *client, m *messages.SyncMessage) {
	recvTime := s.nowMs()
	s.reply(c, messages.SyncResponseMessage{
		Type:           messages.TypeSyncResponse,
		ClientTime:     m.Timestamp,
		ServerRecvTime: recvTime,
		ServerSendTime: s.nowMs(),
	})
}

func (s *Server) handleShoot(c *client, m *messages.ShootMessage) {
	if !c.limiter.Allow() {
		log.Printf("[range] shot throttled for %s", c.id)
		return
	}

	result := s.resolveShot(m)

	c.statsMu.Lock()
	c.shots++
	if result.Hit {
		c.hits++
	}
	c.statsMu.Unlock()

	s.reply(c, result)
}

// reply sends one frame to a shooter, fire-and-forget. A dead connection is
// cleaned up by its own read pump.
func (s *Server) reply(c *client, v any) {
	if err := c.sendJSON(v); err != nil {
		log.Printf("[range] send to %s failed: %v", c.id, err)
	}
}

// Run moves the target on the configured cadence, records each position in
// the history (and the optional mirror) and broadcasts it to every shooter.
// Returns when the ticker context is done.
func (s *Server) Run(done <-chan struct{}) {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.stepTarget()
		}
	}
}

func (s *Server) stepTarget() {
	x, y := s.target.Step()
	pos := netcode.TimedPosition{X: x, Y: y, Timestamp: s.nowMs()}

	s.mu.Lock()
	s.history.Append(pos)
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	s.mirror.Push(pos)

	msg := messages.PositionMessage{
		Type:     messages.TypePosition,
		Position: messages.Position{X: x, Y: y},
	}
	for _, c := range clients {
		s.reply(c, msg)
	}
}

// recordPosition appends a target position directly, bypassing the mover.
// Used by tests to build deterministic histories.
func (s *Server) recordPosition(x, y float64, timestamp int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Append(netcode.TimedPosition{X: x, Y: y, Timestamp: timestamp})
}
