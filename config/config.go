package config

import "image/color"

// Config holds general window configuration.
type Config struct {
	Width        int
	Height       int
	SidebarWidth int
}

// RangeConfig contains the shooting range tunables.
type RangeConfig struct {
	TargetRadius  float64 // drawn and judged hit radius in pixels
	CrosshairSize float64

	// Muzzle flash duration (milliseconds); the hit marker and kill-cam
	// windows live with the feedback logic in netcode.
	MuzzleFlashTimeMs int64

	// Clock sync cadence (milliseconds)
	SyncIntervalMs int64
}

// NetworkConfig contains connection defaults.
type NetworkConfig struct {
	DefaultAddr string
}

// UIConfig contains sidebar and overlay styling.
type UIConfig struct {
	BackgroundColor color.RGBA
	SidebarColor    color.RGBA
	TargetColor     color.RGBA
	CrosshairColor  color.RGBA
	MuzzleColor     color.RGBA
	HitColor        color.RGBA
	MissColor       color.RGBA
	TextColor       color.RGBA
	KillcamOverlay  color.RGBA
}

// Global configuration instances
var C *Config
var Range RangeConfig
var Network NetworkConfig
var UI UIConfig

// Shared RGBA color constants
var (
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red   = color.RGBA{R: 255, G: 60, B: 60, A: 255}
	Green = color.RGBA{R: 0, G: 255, B: 60, A: 255}
)

func init() {
	C = &Config{
		Width:        1280,
		Height:       720,
		SidebarWidth: 200,
	}

	Range = RangeConfig{
		TargetRadius:      8,
		CrosshairSize:     15,
		MuzzleFlashTimeMs: 100,
		SyncIntervalMs:    1000,
	}

	Network = NetworkConfig{
		DefaultAddr: "localhost:8080",
	}

	UI = UIConfig{
		BackgroundColor: color.RGBA{R: 18, G: 22, B: 30, A: 255},
		SidebarColor:    color.RGBA{R: 30, G: 36, B: 48, A: 255},
		TargetColor:     Red,
		CrosshairColor:  White,
		MuzzleColor:     color.RGBA{R: 255, G: 220, B: 120, A: 255},
		HitColor:        Green,
		MissColor:       Red,
		TextColor:       White,
		KillcamOverlay:  color.RGBA{R: 0, G: 0, B: 0, A: 200},
	}
}
