package pupil

import (
	"image"
	"testing"
)

func TestLargestRect(t *testing.T) {
	if got := largestRect(nil); !got.Empty() {
		t.Fatalf("no detections must yield an empty rect, got %v", got)
	}
	rects := []image.Rectangle{
		image.Rect(0, 0, 10, 10),
		image.Rect(5, 5, 105, 85),
		image.Rect(20, 20, 40, 40),
	}
	want := image.Rect(5, 5, 105, 85)
	if got := largestRect(rects); got != want {
		t.Fatalf("largestRect=%v want %v", got, want)
	}
}

func TestSplitEyes_AssignsSidesByCenter(t *testing.T) {
	// Face box 200x200; eyes around y=60.
	eyes := []image.Rectangle{
		image.Rect(30, 40, 80, 80),   // left half
		image.Rect(120, 40, 170, 80), // right half
	}
	left, right, okL, okR := splitEyes(200, 200, eyes)
	if !okL || !okR {
		t.Fatalf("expected both sides assigned, got okL=%v okR=%v", okL, okR)
	}
	if left != eyes[0] || right != eyes[1] {
		t.Fatalf("sides swapped: left=%v right=%v", left, right)
	}
}

func TestSplitEyes_DiscardsLowerFaceDetections(t *testing.T) {
	eyes := []image.Rectangle{
		image.Rect(30, 140, 80, 180),   // nostril-height, left half
		image.Rect(120, 150, 170, 190), // lower right
	}
	_, _, okL, okR := splitEyes(200, 200, eyes)
	if okL || okR {
		t.Fatalf("lower-face detections must be discarded, got okL=%v okR=%v", okL, okR)
	}
}

func TestSplitEyes_LargestCandidateWinsPerSide(t *testing.T) {
	eyes := []image.Rectangle{
		image.Rect(30, 40, 60, 70),  // small left
		image.Rect(20, 30, 90, 90),  // big left
		image.Rect(130, 40, 160, 70),
	}
	left, right, okL, okR := splitEyes(200, 200, eyes)
	if !okL || !okR {
		t.Fatalf("expected both sides, got okL=%v okR=%v", okL, okR)
	}
	if left != eyes[1] {
		t.Fatalf("expected the larger candidate on the left, got %v", left)
	}
	if right != eyes[2] {
		t.Fatalf("right=%v want %v", right, eyes[2])
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.FaceCascadePath == "" || cfg.EyeCascadePath == "" {
		t.Fatalf("default cascade paths must be set: %+v", cfg)
	}
	if cfg.PupilThreshold <= 0 || cfg.PupilThreshold > 255 {
		t.Fatalf("default pupil threshold out of range: %d", cfg.PupilThreshold)
	}
}
