// Package pupil locates the user's pupils in webcam frames. The session
// engine treats it as an opaque capability: readings with undetected
// coordinates are data, not errors.
package pupil

import (
	"image"

	"gocv.io/x/gocv"

	"github.com/soocke/focus-tracker-go/domain/gaze"
)

// Locator is the interface for pupil-locating backends.
type Locator interface {
	// Locate finds both pupils in the frame. A face or eye that cannot be
	// found yields an undetected coordinate, not an error; errors are
	// reserved for unusable frames.
	Locate(frame *gocv.Mat) (gaze.Reading, error)

	// Close releases resources.
	Close() error
}

// Config holds locator configuration.
type Config struct {
	FaceCascadePath string // Haar cascade for the face
	EyeCascadePath  string // Haar cascade for eyes within the face
	PupilThreshold  int    // grayscale cut-off for the dark pupil blob (0-255)
	MinFacePx       int    // minimum face box edge in pixels
	MinEyePx        int    // minimum eye box edge in pixels
}

// DefaultConfig returns production defaults for the bundled Haar cascades.
func DefaultConfig() Config {
	return Config{
		FaceCascadePath: "models/haarcascade_frontalface_default.xml",
		EyeCascadePath:  "models/haarcascade_eye.xml",
		PupilThreshold:  40,
		MinFacePx:       120,
		MinEyePx:        20,
	}
}

// largestRect picks the biggest detection by area; zero rect when empty.
func largestRect(rects []image.Rectangle) image.Rectangle {
	best := image.Rectangle{}
	bestArea := 0
	for _, r := range rects {
		if a := r.Dx() * r.Dy(); a > bestArea {
			bestArea = a
			best = r
		}
	}
	return best
}

// splitEyes assigns eye detections (face-local coordinates) to the image-left
// and image-right halves of a faceW x faceH box. Detections centered in the
// lower half of the face are discarded as false positives; the largest
// candidate wins each side.
func splitEyes(faceW, faceH int, eyes []image.Rectangle) (left, right image.Rectangle, okLeft, okRight bool) {
	leftArea, rightArea := 0, 0
	for _, e := range eyes {
		cx := e.Min.X + e.Dx()/2
		cy := e.Min.Y + e.Dy()/2
		if cy > faceH/2 {
			continue
		}
		area := e.Dx() * e.Dy()
		if cx < faceW/2 {
			if area > leftArea {
				leftArea = area
				left = e
				okLeft = true
			}
		} else {
			if area > rightArea {
				rightArea = area
				right = e
				okRight = true
			}
		}
	}
	return left, right, okLeft, okRight
}
