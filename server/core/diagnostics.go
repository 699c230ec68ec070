package core

import (
	"encoding/json"
	"log"
	"net/http"
)

type shooterStats struct {
	ID    string `json:"id"`
	RTTMs int64  `json:"rttMs"`
	Shots int    `json:"shots"`
	Hits  int    `json:"hits"`
}

type statsResponse struct {
	UptimeMs   int64          `json:"uptimeMs"`
	HistoryLen int            `json:"historyLen"`
	TargetX    float64        `json:"targetX"`
	TargetY    float64        `json:"targetY"`
	Shooters   []shooterStats `json:"shooters"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// handleStats reports uptime, the current target position, and per-shooter
// accuracy and latency figures.
func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	resp := statsResponse{UptimeMs: s.nowMs()}

	s.mu.RLock()
	resp.HistoryLen = s.history.Len()
	if latest, ok := s.history.Latest(); ok {
		resp.TargetX = latest.X
		resp.TargetY = latest.Y
	}
	shooters := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		shooters = append(shooters, c)
	}
	s.mu.RUnlock()

	for _, c := range shooters {
		c.statsMu.Lock()
		resp.Shooters = append(resp.Shooters, shooterStats{
			ID:    c.id.String(),
			RTTMs: c.rttMs,
			Shots: c.shots,
			Hits:  c.hits,
		})
		c.statsMu.Unlock()
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("[range] stats encode error: %v", err)
	}
}
