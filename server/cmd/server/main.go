package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/automoto/hitscan/server/core"
)

func main() {
	var (
		port      = flag.Int("port", 8080, "HTTP port to listen on")
		tick      = flag.Duration("tick", 50*time.Millisecond, "target movement interval")
		radius    = flag.Float64("radius", 8, "target hit radius in pixels")
		width     = flag.Float64("width", 1080, "range width in pixels")
		height    = flag.Float64("height", 720, "range height in pixels")
		redisAddr = flag.String("redis", "", "Redis address for the position mirror (empty disables)")
	)
	flag.Parse()

	cfg := core.DefaultConfig()
	cfg.TickInterval = *tick
	cfg.TargetRadius = *radius
	cfg.Width = *width
	cfg.Height = *height

	mirror := core.NewHistoryMirror(*redisAddr, cfg.HistorySize)
	defer mirror.Close()
	if mirror != nil {
		log.Printf("[range] mirroring positions to redis at %s", *redisAddr)
	}

	srv := core.NewServer(cfg, mirror)

	done := make(chan struct{})
	go srv.Run(done)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: srv.Handler(),
	}

	go func() {
		log.Printf("[range] listening on :%d", *port)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("[range] listen failed: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Println("[range] shutting down")
	close(done)
	_ = httpServer.Close()
}
