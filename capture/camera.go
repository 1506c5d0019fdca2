package capture

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// Source provides frames from a camera device. Read hands out a borrowed
// frame; callers must not retain it past the next Read.
type Source interface {
	Open() error
	Read() (*gocv.Mat, bool)
	Close() error
}

// Camera is a webcam source backed by gocv. It owns a single reusable frame
// buffer. The mutex serializes device access: across a worker restart the
// retiring loop's last Read can overlap the next run's first.
type Camera struct {
	mu     sync.Mutex
	device int
	cam    *gocv.VideoCapture
	buf    gocv.Mat
	opened bool
}

var _ Source = (*Camera)(nil)

// NewCamera returns an unopened camera for the given device index.
func NewCamera(device int) *Camera {
	return &Camera{device: device}
}

// Open acquires the device. Opening an already-open camera is a no-op.
func (c *Camera) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.opened {
		return nil
	}
	cam, err := gocv.OpenVideoCapture(c.device)
	if err != nil {
		return fmt.Errorf("open video device %d: %w", c.device, err)
	}
	if !cam.IsOpened() {
		_ = cam.Close()
		return fmt.Errorf("video device %d did not open", c.device)
	}
	c.cam = cam
	c.buf = gocv.NewMat()
	c.opened = true
	return nil
}

// Read grabs the next frame into the internal buffer. False means no frame
// was available; empty frames count as misses.
func (c *Camera) Read() (*gocv.Mat, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.opened {
		return nil, false
	}
	if !c.cam.Read(&c.buf) || c.buf.Empty() {
		return nil, false
	}
	return &c.buf, true
}

// Close releases the device and the frame buffer.
func (c *Camera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.opened {
		return nil
	}
	c.opened = false
	err := c.cam.Close()
	c.cam = nil
	if cerr := c.buf.Close(); err == nil {
		err = cerr
	}
	return err
}
