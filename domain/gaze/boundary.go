package gaze

// Coord is a pupil position in frame pixels. Detected reports whether the
// locator actually produced this coordinate; undetected coords carry no
// positional meaning.
type Coord struct {
	X, Y     int
	Detected bool
}

// Reading is one locator result for a single frame: both pupil coordinates,
// each individually optional.
type Reading struct {
	Left  Coord
	Right Coord
}

// Located reports whether both pupils were found in the frame.
func (r Reading) Located() bool { return r.Left.Detected && r.Right.Detected }

// Sentinel extremes used before the first observation. minPx is larger than
// any plausible frame dimension so the first real coordinate always shrinks it.
const (
	minSentinel = 1_000_000
	maxSentinel = 0
)

// Boundary accumulates the observed range of one pupil during calibration and
// afterwards classifies coordinates as inside or outside that range.
// Not safe for concurrent use; callers serialize access.
type Boundary struct {
	minX, maxX int
	minY, maxY int
	tolerance  int
}

// NewBoundary returns an uncalibrated boundary. tolerance widens the box by
// that many pixels per side during containment checks; negative values are
// treated as zero.
func NewBoundary(tolerance int) *Boundary {
	if tolerance < 0 {
		tolerance = 0
	}
	b := &Boundary{tolerance: tolerance}
	b.Reset()
	return b
}

// Reset restores the sentinel extremes, discarding any calibration.
func (b *Boundary) Reset() {
	b.minX, b.minY = minSentinel, minSentinel
	b.maxX, b.maxY = maxSentinel, maxSentinel
}

// Adjust widens the boundary to include c. Undetected coordinates and the
// origin are ignored: locators emit (0,0) for degenerate detections and it
// must never enter the box.
func (b *Boundary) Adjust(c Coord) {
	if !c.Detected {
		return
	}
	if c.X == 0 && c.Y == 0 {
		return
	}
	if c.X < b.minX {
		b.minX = c.X
	}
	if c.X > b.maxX {
		b.maxX = c.X
	}
	if c.Y < b.minY {
		b.minY = c.Y
	}
	if c.Y > b.maxY {
		b.maxY = c.Y
	}
}

// Calibrated reports whether the boundary has positive area on both axes.
// A single observation (or collinear ones) is not enough.
func (b *Boundary) Calibrated() bool {
	return b.maxX > b.minX && b.maxY > b.minY
}

// Outside reports whether c falls outside the calibrated box expanded by the
// tolerance margin. Uncalibrated boundaries and undetected coordinates are
// always outside.
func (b *Boundary) Outside(c Coord) bool {
	if !b.Calibrated() || !c.Detected {
		return true
	}
	inside := c.X >= b.minX-b.tolerance && c.X <= b.maxX+b.tolerance &&
		c.Y >= b.minY-b.tolerance && c.Y <= b.maxY+b.tolerance
	return !inside
}
