package core

import "math/rand"

// TargetMover drives the single range target: straight-line motion that
// bounces off the range bounds, with an occasional random kick so shooters
// cannot simply learn the pattern.
type TargetMover struct {
	x, y   float64
	vx, vy float64
	width  float64
	height float64

	steps int
}

// Steps between random velocity kicks.
const kickEvery = 40

func NewTargetMover(width, height float64) *TargetMover {
	return &TargetMover{
		x:      width / 2,
		y:      height / 2,
		vx:     4 + rand.Float64()*3,
		vy:     3 + rand.Float64()*2,
		width:  width,
		height: height,
	}
}

// Step advances the target one tick and returns its new position.
func (t *TargetMover) Step() (float64, float64) {
	t.steps++
	if t.steps%kickEvery == 0 {
		t.vx += rand.Float64()*4 - 2
		t.vy += rand.Float64()*4 - 2
		t.clampSpeed()
	}

	t.x += t.vx
	t.y += t.vy

	if t.x < 0 {
		t.x = -t.x
		t.vx = -t.vx
	}
	if t.x > t.width {
		t.x = 2*t.width - t.x
		t.vx = -t.vx
	}
	if t.y < 0 {
		t.y = -t.y
		t.vy = -t.vy
	}
	if t.y > t.height {
		t.y = 2*t.height - t.y
		t.vy = -t.vy
	}

	return t.x, t.y
}

const (
	minSpeed = 1.0
	maxSpeed = 9.0
)

func (t *TargetMover) clampSpeed() {
	t.vx = clampMagnitude(t.vx, minSpeed, maxSpeed)
	t.vy = clampMagnitude(t.vy, minSpeed, maxSpeed)
}

func clampMagnitude(v, min, max float64) float64 {
	sign := 1.0
	if v < 0 {
		sign = -1.0
	}
	mag := v * sign
	if mag < min {
		mag = min
	}
	if mag > max {
		mag = max
	}
	return mag * sign
}
