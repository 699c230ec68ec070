package scenes

import (
	"fmt"
	"sync"

	cfg "github.com/automoto/hitscan/config"
	"github.com/automoto/hitscan/fonts"
	"github.com/automoto/hitscan/netcode"
	"github.com/automoto/hitscan/network"
	"github.com/automoto/hitscan/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// SceneChanger allows scenes to trigger transitions
type SceneChanger interface {
	ChangeScene(scene interface{})
}

const killcamZoom = 3.0

// RangeScene is the shooting range: a delayed view of the server's moving
// target, click-to-shoot, and the sidebar controls for simulated latency and
// compensation.
type RangeScene struct {
	sceneChanger SceneChanger
	session      *netcode.Session
	client       *network.Client
	sidebar      *ui.SidebarUI
	once         sync.Once

	compensation bool

	// local shot feedback
	shotX, shotY int
	muzzleStart  int64 // -1 when idle
	shots        int
	hits         int

	// kill-cam zoom animation
	seenResults uint64
	zoomTween   *gween.Tween
	zoom        float64
}

func NewRangeScene(sc SceneChanger, session *netcode.Session, client *network.Client) *RangeScene {
	return &RangeScene{
		sceneChanger: sc,
		session:      session,
		client:       client,
		compensation: true,
		muzzleStart:  -1,
		zoom:         1,
	}
}

func (s *RangeScene) configure() {
	s.sidebar = ui.NewSidebarUI(
		netcode.MaxSimulatedLatencyMs,
		func(ms int64) { s.session.SetSimulatedLatency(ms) },
		func(enabled bool) { s.compensation = enabled },
	)
}

// rangeWidth is the playable area; the sidebar owns the rest.
func rangeWidth() int {
	return cfg.C.Width - cfg.C.SidebarWidth
}

func (s *RangeScene) Update() {
	s.once.Do(s.configure)

	s.sidebar.Update()

	now := s.session.Now()

	if s.client.State() == network.StateConnected && s.session.SyncDue(now) {
		s.client.SendSync()
	}

	s.handleShooting(now)
	s.consumeResults()
	s.updateKillcam()
	s.refreshSidebar()
}

func (s *RangeScene) handleShooting(now int64) {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	x, y := ebiten.CursorPosition()
	if x < 0 || x >= rangeWidth() || y < 0 || y >= cfg.C.Height {
		return
	}

	evt := s.session.ComposeShot(x, y, s.compensation)
	s.client.SendShot(evt)

	s.shotX, s.shotY = x, y
	s.muzzleStart = now
	s.shots++
}

// consumeResults watches for freshly arrived verdicts and starts the
// kill-cam zoom on a hit.
func (s *RangeScene) consumeResults() {
	seq := s.session.ResultSeq()
	if seq == s.seenResults {
		return
	}
	s.seenResults = seq

	result, ok := s.session.LastResult()
	if !ok {
		return
	}
	if result.Hit {
		s.hits++
	}
	if result.Hit && result.HasCoords {
		s.zoomTween = gween.New(1, killcamZoom, 0.4, ease.OutQuad)
		s.zoom = 1
	}
}

func (s *RangeScene) updateKillcam() {
	if s.zoomTween == nil {
		return
	}
	value, done := s.zoomTween.Update(1.0 / 60.0)
	s.zoom = float64(value)
	if done {
		s.zoomTween = nil
	}
}

func (s *RangeScene) refreshSidebar() {
	est := s.session.Estimate()
	s.sidebar.SetStats(ui.Stats{
		Status:      s.statusText(),
		RTTMs:       s.session.LastRTT(),
		LatencyMs:   est.LatencyMs,
		OffsetMs:    est.OffsetMs,
		SimulatedMs: s.session.SimulatedLatency(),
		Samples:     s.session.HistoryLen(),
		Shots:       s.shots,
		Hits:        s.hits,
	})
}

func (s *RangeScene) statusText() string {
	switch s.client.State() {
	case network.StateConnected:
		return "connected"
	case network.StateConnecting:
		return "connecting..."
	case network.StateError:
		if err := s.client.LastError(); err != nil {
			return fmt.Sprintf("error: %v", err)
		}
		return "error"
	default:
		return "disconnected"
	}
}

func (s *RangeScene) Draw(screen *ebiten.Image) {
	if s.sidebar == nil {
		return
	}

	now := s.session.Now()

	screen.Fill(cfg.UI.BackgroundColor)

	s.drawTarget(screen, now)
	s.drawMuzzleFlash(screen, now)
	s.drawHitMarker(screen, now)
	s.drawKillcam(screen, now)
	s.drawCrosshair(screen)

	s.sidebar.UI.Draw(screen)
}

// drawTarget renders the target where the shooter perceives it: the newest
// sample delayed by the simulated latency.
func (s *RangeScene) drawTarget(screen *ebiten.Image, now int64) {
	pos, ok := s.session.ResolveTarget(now)
	if !ok {
		msg := "waiting for target..."
		text.Draw(screen, msg, fonts.HUD.Get(), rangeWidth()/2-60, cfg.C.Height/2, cfg.UI.TextColor)
		return
	}
	vector.DrawFilledCircle(screen,
		float32(pos.X), float32(pos.Y),
		float32(cfg.Range.TargetRadius), cfg.UI.TargetColor, true)
}

func (s *RangeScene) drawMuzzleFlash(screen *ebiten.Image, now int64) {
	if s.muzzleStart < 0 || now-s.muzzleStart > cfg.Range.MuzzleFlashTimeMs {
		return
	}
	vector.DrawFilledCircle(screen,
		float32(s.shotX), float32(s.shotY), 6, cfg.UI.MuzzleColor, true)
}

func (s *RangeScene) drawHitMarker(screen *ebiten.Image, now int64) {
	if !s.session.MarkerVisible(now) {
		return
	}
	result, ok := s.session.LastResult()
	if !ok {
		return
	}

	x, y := float32(s.shotX), float32(s.shotY)
	if result.HasCoords {
		x, y = float32(result.HitX), float32(result.HitY)
	}

	markerColor := cfg.UI.MissColor
	label := "MISS"
	if result.Hit {
		markerColor = cfg.UI.HitColor
		label = "HIT"
	}

	const arm = 8
	vector.StrokeLine(screen, x-arm, y-arm, x+arm, y+arm, 2, markerColor, true)
	vector.StrokeLine(screen, x-arm, y+arm, x+arm, y-arm, 2, markerColor, true)
	text.Draw(screen, label, fonts.HUD.Get(), int(x)+12, int(y)-12, markerColor)
}

// drawKillcam magnifies the hit around the overlay center so the shooter can
// see exactly where the shot landed on the target.
func (s *RangeScene) drawKillcam(screen *ebiten.Image, now int64) {
	if !s.session.KillcamVisible(now) {
		return
	}
	result, ok := s.session.LastResult()
	if !ok {
		return
	}

	const size = 160
	centerX := float64(rangeWidth() - size/2 - 20)
	centerY := float64(size/2 + 20)

	vector.DrawFilledRect(screen,
		float32(centerX-size/2), float32(centerY-size/2),
		size, size, cfg.UI.KillcamOverlay, false)

	// Target magnified at the overlay center, hit point relative to it.
	vector.DrawFilledCircle(screen,
		float32(centerX), float32(centerY),
		float32(cfg.Range.TargetRadius*s.zoom), cfg.UI.TargetColor, true)

	hitX, hitY := netcode.KillcamPoint(result, centerX, centerY, s.zoom)
	vector.DrawFilledCircle(screen,
		float32(hitX), float32(hitY), 3, cfg.UI.HitColor, true)

	text.Draw(screen, "KILL CAM", fonts.HUDSmall.Get(),
		int(centerX)-size/2+6, int(centerY)-size/2+14, cfg.UI.TextColor)
}

func (s *RangeScene) drawCrosshair(screen *ebiten.Image) {
	x, y := ebiten.CursorPosition()
	if x < 0 || x >= rangeWidth() || y < 0 || y >= cfg.C.Height {
		return
	}

	size := float32(cfg.Range.CrosshairSize)
	fx, fy := float32(x), float32(y)
	vector.StrokeLine(screen, fx-size, fy, fx+size, fy, 1, cfg.UI.CrosshairColor, true)
	vector.StrokeLine(screen, fx, fy-size, fx, fy+size, 1, cfg.UI.CrosshairColor, true)
}
