package imaging

import "testing"

// TestDistanceAngle_S3 exercises spec.md §8 S3.
func TestDistanceAngle_S3(t *testing.T) {
	left := Point{100, 100}
	right := Point{200, 100}

	if d := Distance(left, right); d != 100 {
		t.Errorf("distance = %v, want 100", d)
	}
	if a := Angle(left, right, true); a != 0 {
		t.Errorf("angle = %v, want 0", a)
	}
	c := Center(left, right)
	if c.X != 150 || c.Y != 100 {
		t.Errorf("center = %v, want (150,100)", c)
	}
}

// TestAngle_S4 exercises spec.md §8 S4.
func TestAngle_S4(t *testing.T) {
	a := Angle(Point{0, 0}, Point{10, 10}, true)
	if d := a - 45; d < -1e-6 || d > 1e-6 {
		t.Errorf("angle = %v, want 45", a)
	}
}

// TestDistance_Invariant3 checks invariant 3: symmetry, non-negativity,
// zero self-distance, and the triangle inequality.
func TestDistance_Invariant3(t *testing.T) {
	p := Point{3, 4}
	q := Point{9, -2}
	r := Point{1, 1}

	if d := Distance(p, p); d != 0 {
		t.Errorf("distance(p,p) = %v, want 0", d)
	}
	if Distance(p, q) != Distance(q, p) {
		t.Errorf("distance not symmetric")
	}
	if Distance(p, q) < 0 {
		t.Errorf("distance negative")
	}
	if Distance(p, q) > Distance(p, r)+Distance(r, q)+1e-9 {
		t.Errorf("triangle inequality violated")
	}
}
