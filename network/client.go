package network

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/automoto/hitscan/netcode"
	"github.com/automoto/hitscan/shared/messages"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateError
)

const (
	dialTimeout  = 10 * time.Second
	writeTimeout = 5 * time.Second
)

// Client manages the WebSocket connection to the range server. Inbound
// messages are parsed on the read goroutine and applied to the session
// immediately; outbound sends are fire-and-forget. All shared fields are
// protected by mu.
type Client struct {
	mu sync.RWMutex

	state     ClientState
	lastError error
	conn      *websocket.Conn

	session *netcode.Session
}

func NewClient(session *netcode.Session) *Client {
	return &Client{
		state:   StateDisconnected,
		session: session,
	}
}

// Connect dials ws://<addr>/ws in a background goroutine and starts the read
// loop. Progress is observable through State.
func (c *Client) Connect(addr string) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.mu.Unlock()

	url := "ws://" + addr + "/ws"
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
		defer cancel()

		conn, _, err := websocket.Dial(ctx, url, nil)
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
			return
		}

		c.mu.Lock()
		c.conn = conn
		c.state = StateConnected
		c.mu.Unlock()

		log.Printf("[client] connected to %s", url)
		c.readLoop(conn)
	}()
}

// Disconnect closes the connection. The read loop notices and winds down.
func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

// readLoop delivers inbound messages to the session until the connection
// drops. No reconnection is attempted here; when the transport dies the
// receive path simply stops producing events.
func (c *Client) readLoop(conn *websocket.Conn) {
	ctx := context.Background()
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			log.Printf("[client] disconnected: %v", err)
			c.mu.Lock()
			if c.state != StateError {
				c.state = StateDisconnected
			}
			c.conn = nil
			c.mu.Unlock()
			return
		}
		c.dispatch(data)
	}
}

// dispatch applies one inbound frame to the session. Malformed frames are
// logged and dropped without mutating state; unknown types are ignored.
func (c *Client) dispatch(data []byte) {
	msg, err := messages.Decode(data)
	if err != nil {
		log.Printf("[client] dropping malformed message: %v", err)
		return
	}

	switch m := msg.(type) {
	case *messages.PositionMessage:
		c.session.HandlePosition(m.Position.X, m.Position.Y)

	case *messages.HitResultMessage:
		result := netcode.HitResult{Hit: m.Hit, HasCoords: m.HasCoords()}
		if result.HasCoords {
			result.HitX, result.HitY = *m.HitX, *m.HitY
			result.TargetX, result.TargetY = *m.TargetX, *m.TargetY
		}
		c.session.HandleHitResult(result)
		log.Printf("[client] hit result: hit=%v", m.Hit)

	case *messages.SyncResponseMessage:
		est, rtt, ok := c.session.CompleteProbe(m.ClientTime, m.ServerRecvTime, m.ServerSendTime)
		if !ok {
			return // stale or unknown probe, harmless
		}
		log.Printf("[client] clock synchronized: offset=%dms latency=%dms", est.OffsetMs, est.LatencyMs)
		c.SendLatencyUpdate(rtt)

	case *messages.PongMessage:
		if est, ok := c.session.CompletePing(m.Timestamp); ok {
			log.Printf("[client] ping: latency=%dms", est.LatencyMs)
		}
	}
}

// SendSync registers a new clock probe with the session and puts it on the
// wire.
func (c *Client) SendSync() {
	sendTime := c.session.StartProbe()
	c.send(messages.SyncMessage{Type: messages.TypeSync, Timestamp: sendTime})
}

// SendPing starts an RTT-only probe (compatibility mode).
func (c *Client) SendPing() {
	sendTime := c.session.StartPing()
	c.send(messages.PingMessage{Type: messages.TypePing, Timestamp: sendTime})
}

// SendShot puts a composed shot event on the wire.
func (c *Client) SendShot(evt netcode.ShotEvent) {
	c.send(messages.ShootMessage{
		Type:                messages.TypeShoot,
		Timestamp:           evt.Timestamp,
		X:                   evt.X,
		Y:                   evt.Y,
		Offset:              evt.OffsetMs,
		CompensationEnabled: evt.CompensationEnabled,
	})
}

// SendLatencyUpdate reports a measured RTT to the server.
func (c *Client) SendLatencyUpdate(rtt int64) {
	c.send(messages.LatencyUpdateMessage{Type: messages.TypeLatencyUpdate, RTT: rtt})
}

// send writes one message, fire-and-forget: failures are logged and
// swallowed, never retried. The session continues degraded until the
// transport recovers on its own.
func (c *Client) send(msg any) {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		log.Printf("[client] send dropped, not connected")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := wsjson.Write(ctx, conn, msg); err != nil {
		log.Printf("[client] send error: %v", err)
	}
}

func (c *Client) setError(err error) {
	log.Printf("[client] error: %v", err)
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}
