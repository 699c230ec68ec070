package ui

import (
	"bytes"
	"fmt"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	cfg "github.com/automoto/hitscan/config"
)

// Stats is the snapshot the sidebar renders each frame.
type Stats struct {
	Status      string
	RTTMs       int64
	LatencyMs   int64
	OffsetMs    int64
	SimulatedMs int64
	Samples     int
	Shots       int
	Hits        int
}

// SidebarUI is the control panel on the right edge: a simulated-latency
// slider, a compensation toggle and the live connection figures.
type SidebarUI struct {
	UI *ebitenui.UI

	OnLatencyChange func(ms int64)
	OnToggle        func(enabled bool)

	compensationOn bool

	latencyLabel *widget.Label
	toggleBtn    *widget.Button
	statusLabel  *widget.Label
	rttLabel     *widget.Label
	offsetLabel  *widget.Label
	pingLabel    *widget.Label
	samplesLabel *widget.Label
	scoreLabel   *widget.Label

	titleFace  text.Face
	normalFace text.Face
	smallFace  text.Face
}

func NewSidebarUI(maxLatencyMs int64, onLatency func(ms int64), onToggle func(enabled bool)) *SidebarUI {
	ui := &SidebarUI{
		OnLatencyChange: onLatency,
		OnToggle:        onToggle,
		compensationOn:  true,
	}
	ui.loadFonts()
	ui.buildUI(maxLatencyMs)
	return ui
}

func (ui *SidebarUI) loadFonts() {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Fatalf("failed to load UI font: %v", err)
	}

	ui.titleFace = &text.GoTextFace{Source: fontSource, Size: 16}
	ui.normalFace = &text.GoTextFace{Source: fontSource, Size: 12}
	ui.smallFace = &text.GoTextFace{Source: fontSource, Size: 10}
}

func (ui *SidebarUI) buildUI(maxLatencyMs int64) {
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(cfg.UI.SidebarColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(12)),
			widget.RowLayoutOpts.Spacing(8),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(cfg.C.SidebarWidth, cfg.C.Height),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)

	panel.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("SHOOTING RANGE", &ui.titleFace, &widget.LabelColor{
			Idle: color.RGBA{255, 255, 255, 255},
		}),
	))

	ui.statusLabel = ui.addStatLabel(panel, "Status: disconnected")

	panel.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("Simulated latency", &ui.normalFace, &widget.LabelColor{
			Idle: color.RGBA{200, 200, 200, 255},
		}),
	))

	ui.latencyLabel = ui.addStatLabel(panel, "0 ms")
	panel.AddChild(ui.buildLatencySlider(maxLatencyMs))

	ui.toggleBtn = widget.NewButton(
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(160, 26)),
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:    image.NewNineSliceColor(color.RGBA{40, 100, 40, 255}),
			Hover:   image.NewNineSliceColor(color.RGBA{60, 140, 60, 255}),
			Pressed: image.NewNineSliceColor(color.RGBA{30, 80, 30, 255}),
		}),
		widget.ButtonOpts.Text("Compensation: ON", &ui.normalFace, &widget.ButtonTextColor{
			Idle:    color.RGBA{255, 255, 255, 255},
			Hover:   color.RGBA{200, 255, 200, 255},
			Pressed: color.RGBA{150, 200, 150, 255},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			ui.compensationOn = !ui.compensationOn
			if ui.compensationOn {
				ui.toggleBtn.Text().Label = "Compensation: ON"
			} else {
				ui.toggleBtn.Text().Label = "Compensation: OFF"
			}
			if ui.OnToggle != nil {
				ui.OnToggle(ui.compensationOn)
			}
		}),
	)
	panel.AddChild(ui.toggleBtn)

	ui.rttLabel = ui.addStatLabel(panel, "RTT: --")
	ui.pingLabel = ui.addStatLabel(panel, "Latency: --")
	ui.offsetLabel = ui.addStatLabel(panel, "Clock offset: --")
	ui.samplesLabel = ui.addStatLabel(panel, "Samples: 0")
	ui.scoreLabel = ui.addStatLabel(panel, "Shots: 0  Hits: 0")

	panel.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("Click the range to shoot", &ui.smallFace, &widget.LabelColor{
			Idle: color.RGBA{150, 150, 150, 255},
		}),
	))

	rootContainer.AddChild(panel)

	ui.UI = &ebitenui.UI{Container: rootContainer}
}

func (ui *SidebarUI) addStatLabel(panel *widget.Container, initial string) *widget.Label {
	label := widget.NewLabel(
		widget.LabelOpts.Text(initial, &ui.normalFace, &widget.LabelColor{
			Idle: color.RGBA{220, 220, 220, 255},
		}),
	)
	panel.AddChild(label)
	return label
}

func (ui *SidebarUI) buildLatencySlider(maxLatencyMs int64) *widget.Slider {
	return widget.NewSlider(
		widget.SliderOpts.Direction(widget.DirectionHorizontal),
		widget.SliderOpts.MinMax(0, int(maxLatencyMs)),
		widget.SliderOpts.WidgetOpts(widget.WidgetOpts.MinSize(160, 16)),
		widget.SliderOpts.Images(
			&widget.SliderTrackImage{
				Idle:  image.NewNineSliceColor(color.RGBA{50, 50, 70, 255}),
				Hover: image.NewNineSliceColor(color.RGBA{60, 60, 85, 255}),
			},
			&widget.ButtonImage{
				Idle:    image.NewNineSliceColor(color.RGBA{120, 120, 160, 255}),
				Hover:   image.NewNineSliceColor(color.RGBA{150, 150, 190, 255}),
				Pressed: image.NewNineSliceColor(color.RGBA{100, 100, 140, 255}),
			},
		),
		widget.SliderOpts.FixedHandleSize(10),
		widget.SliderOpts.TrackOffset(0),
		widget.SliderOpts.PageSizeFunc(func() int { return 25 }),
		widget.SliderOpts.ChangedHandler(func(args *widget.SliderChangedEventArgs) {
			ui.latencyLabel.Label = fmt.Sprintf("%d ms", args.Current)
			if ui.OnLatencyChange != nil {
				ui.OnLatencyChange(int64(args.Current))
			}
		}),
	)
}

// SetStats refreshes the live figures. Call once per frame from the scene.
func (ui *SidebarUI) SetStats(s Stats) {
	ui.statusLabel.Label = "Status: " + s.Status
	if s.RTTMs > 0 {
		ui.rttLabel.Label = fmt.Sprintf("RTT: %d ms", s.RTTMs)
		ui.pingLabel.Label = fmt.Sprintf("Latency: %d ms", s.LatencyMs)
		ui.offsetLabel.Label = fmt.Sprintf("Clock offset: %d ms", s.OffsetMs)
	}
	ui.samplesLabel.Label = fmt.Sprintf("Samples: %d", s.Samples)
	ui.scoreLabel.Label = fmt.Sprintf("Shots: %d  Hits: %d", s.Shots, s.Hits)
}

func (ui *SidebarUI) CompensationEnabled() bool {
	return ui.compensationOn
}

func (ui *SidebarUI) Update() {
	ui.UI.Update()
}
