package pupil

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"github.com/soocke/focus-tracker-go/domain/gaze"
)

// CascadeLocator finds pupils with Haar cascades: largest face in the frame,
// eyes within its upper half, then the centroid of the darkest blob in each
// eye region.
type CascadeLocator struct {
	face   gocv.CascadeClassifier
	eye    gocv.CascadeClassifier
	config Config
	logger *slog.Logger
	mu     sync.Mutex // protects inference
	closed bool
}

var _ Locator = (*CascadeLocator)(nil)

// NewCascadeLocator loads both cascade models from disk.
func NewCascadeLocator(cfg Config, logger *slog.Logger) (*CascadeLocator, error) {
	if _, err := os.Stat(cfg.FaceCascadePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", cfg.FaceCascadePath)
	}
	if _, err := os.Stat(cfg.EyeCascadePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", cfg.EyeCascadePath)
	}
	if cfg.PupilThreshold <= 0 || cfg.PupilThreshold > 255 {
		cfg.PupilThreshold = DefaultConfig().PupilThreshold
	}
	if cfg.MinFacePx <= 0 {
		cfg.MinFacePx = DefaultConfig().MinFacePx
	}
	if cfg.MinEyePx <= 0 {
		cfg.MinEyePx = DefaultConfig().MinEyePx
	}

	face := gocv.NewCascadeClassifier()
	if !face.Load(cfg.FaceCascadePath) {
		face.Close()
		return nil, fmt.Errorf("load face cascade %s failed", cfg.FaceCascadePath)
	}
	eye := gocv.NewCascadeClassifier()
	if !eye.Load(cfg.EyeCascadePath) {
		face.Close()
		eye.Close()
		return nil, fmt.Errorf("load eye cascade %s failed", cfg.EyeCascadePath)
	}
	return &CascadeLocator{face: face, eye: eye, config: cfg, logger: logger}, nil
}

// Locate finds both pupils in the frame.
func (l *CascadeLocator) Locate(frame *gocv.Mat) (gaze.Reading, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return gaze.Reading{}, errors.New("locator closed")
	}
	if frame == nil || frame.Empty() {
		return gaze.Reading{}, errors.New("empty frame")
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	eq := gocv.NewMat()
	defer eq.Close()
	gocv.EqualizeHist(gray, &eq)

	minFace := image.Pt(l.config.MinFacePx, l.config.MinFacePx)
	faces := l.face.DetectMultiScaleWithParams(eq, 1.1, 4, 0, minFace, image.Point{})
	if len(faces) == 0 {
		return gaze.Reading{}, nil
	}
	faceRect := largestRect(faces)

	faceROI := eq.Region(faceRect)
	defer faceROI.Close()

	minEye := image.Pt(l.config.MinEyePx, l.config.MinEyePx)
	eyes := l.eye.DetectMultiScaleWithParams(faceROI, 1.1, 4, 0, minEye, image.Point{})
	leftRect, rightRect, okLeft, okRight := splitEyes(faceRect.Dx(), faceRect.Dy(), eyes)

	var reading gaze.Reading
	if okLeft {
		reading.Left = l.pupilCenter(faceROI, leftRect, faceRect)
	}
	if okRight {
		reading.Right = l.pupilCenter(faceROI, rightRect, faceRect)
	}
	return reading, nil
}

// pupilCenter returns the frame-space centroid of the darkest blob inside the
// eye box. Too little dark mass means no pupil: undetected.
func (l *CascadeLocator) pupilCenter(faceROI gocv.Mat, eyeRect image.Rectangle, faceRect image.Rectangle) gaze.Coord {
	eyeROI := faceROI.Region(eyeRect)
	defer eyeROI.Close()

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(eyeROI, &blurred, image.Pt(7, 7), 0, 0, gocv.BorderDefault)

	bin := gocv.NewMat()
	defer bin.Close()
	gocv.Threshold(blurred, &bin, float32(l.config.PupilThreshold), 255, gocv.ThresholdBinaryInv)

	m := gocv.Moments(bin, true)
	m00 := m["m00"]
	if m00 <= 0 {
		return gaze.Coord{}
	}
	cx := int(m["m10"] / m00)
	cy := int(m["m01"] / m00)
	return gaze.Coord{
		X:        faceRect.Min.X + eyeRect.Min.X + cx,
		Y:        faceRect.Min.Y + eyeRect.Min.Y + cy,
		Detected: true,
	}
}

// Close releases the cascade resources. Locate calls after Close fail.
func (l *CascadeLocator) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	l.face.Close()
	l.eye.Close()
	return nil
}
