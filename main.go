package main

import (
	"flag"
	"image"
	"log"

	"github.com/automoto/hitscan/config"
	"github.com/automoto/hitscan/fonts"
	"github.com/automoto/hitscan/netcode"
	"github.com/automoto/hitscan/network"
	"github.com/automoto/hitscan/scenes"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

func NewGame(addr string) *Game {
	fonts.Load()

	session := netcode.NewSession(
		netcode.DefaultHistorySize,
		netcode.MaxSimulatedLatencyMs,
		config.Range.SyncIntervalMs,
	)
	client := network.NewClient(session)
	client.Connect(addr)

	g := &Game{
		bounds: image.Rectangle{},
	}
	g.scene = scenes.NewRangeScene(g, session, client)
	return g
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

func main() {
	addr := flag.String("addr", config.Network.DefaultAddr, "range server host:port")
	flag.Parse()

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle("Hitscan Range")

	if err := ebiten.RunGame(NewGame(*addr)); err != nil {
		log.Fatal(err)
	}
}
