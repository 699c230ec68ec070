package core

import "testing"

func TestTargetMoverStaysInBounds(t *testing.T) {
	const width, height = 400.0, 300.0
	mover := NewTargetMover(width, height)

	for i := 0; i < 10000; i++ {
		x, y := mover.Step()
		if x < 0 || x > width {
			t.Fatalf("step %d: x=%v out of [0, %v]", i, x, width)
		}
		if y < 0 || y > height {
			t.Fatalf("step %d: y=%v out of [0, %v]", i, y, height)
		}
	}
}

func TestTargetMoverActuallyMoves(t *testing.T) {
	mover := NewTargetMover(1080, 720)

	x0, y0 := mover.Step()
	x1, y1 := mover.Step()
	if x0 == x1 && y0 == y1 {
		t.Error("target did not move between steps")
	}
}
