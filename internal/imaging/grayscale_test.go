package imaging

import "testing"

// TestGrayscale_S2 exercises spec.md §8 S2.
func TestGrayscale_S2(t *testing.T) {
	rgba := []byte{
		255, 255, 255, 255,
		0, 0, 0, 255,
		255, 0, 0, 255,
	}
	got := Grayscale(rgba, 3, 1)

	if got[0] != 255 {
		t.Errorf("white: got %d, want 255", got[0])
	}
	if got[1] != 0 {
		t.Errorf("black: got %d, want 0", got[1])
	}
	if d := int(got[2]) - 54; d < -1 || d > 1 {
		t.Errorf("red: got %d, want 54±1", got[2])
	}
}

// TestGrayscale_Idempotent checks invariant 2: converting a
// grayscale-filled RGBA plane again is the identity on the luma channel.
func TestGrayscale_Idempotent(t *testing.T) {
	rgba := []byte{
		255, 255, 255, 255,
		0, 0, 0, 128,
		255, 0, 0, 200,
		17, 200, 63, 10,
	}
	once := GrayscaleRGBA(rgba, 4, 1)
	twice := Grayscale(once, 4, 1)

	for i := 0; i < 4; i++ {
		if once[i*4] != twice[i] {
			t.Errorf("pixel %d: first pass luma %d, second pass %d", i, once[i*4], twice[i])
		}
	}
}

func TestGrayscaleRGBA_PreservesAlpha(t *testing.T) {
	rgba := []byte{10, 20, 30, 77}
	out := GrayscaleRGBA(rgba, 1, 1)
	if out[3] != 77 {
		t.Errorf("alpha = %d, want 77", out[3])
	}
	if out[0] != out[1] || out[1] != out[2] {
		t.Errorf("R,G,B not equal: %d,%d,%d", out[0], out[1], out[2])
	}
}
