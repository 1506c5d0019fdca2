package images

import (
	"image"
	"image/color"
)

// Colors for rendered stats images, matching the ui/theme palette. Kept as
// RGBA here because this package stays free of the Tk dependency.
var (
	focusedColor   = color.RGBA{0x10, 0xb9, 0x81, 0xff}
	unfocusedColor = color.RGBA{0xdc, 0x26, 0x26, 0xff}
	emptyColor     = color.RGBA{0xd0, 0xd7, 0xde, 0xff}
	barColor       = color.RGBA{0x25, 0x63, 0xeb, 0xff}
	chartBgColor   = color.RGBA{0xff, 0xff, 0xff, 0xff}
	axisColor      = color.RGBA{0x64, 0x74, 0x8b, 0xff}
)

// TimelineStrip renders a session's per-sample focus timeline as a horizontal
// strip: green for focused samples, red for unfocused. Each sample covers an
// equal share of the width. An empty timeline yields a neutral strip.
func TimelineStrip(timeline []bool, w, h int) *image.RGBA {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		c := emptyColor
		if n := len(timeline); n > 0 {
			idx := x * n / w
			if idx >= n {
				idx = n - 1
			}
			if timeline[idx] {
				c = focusedColor
			} else {
				c = unfocusedColor
			}
		}
		for y := 0; y < h; y++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// WeeklyBars renders seven per-day totals (Monday..Sunday, seconds) as a bar
// chart with a baseline on the bottom row. Bars scale relative to the largest
// day; a week with no study time renders baseline only.
func WeeklyBars(totals [7]int64, w, h int) *image.RGBA {
	if w < 14 {
		w = 14
	}
	if h < 2 {
		h = 2
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, chartBgColor)
		}
	}
	for x := 0; x < w; x++ {
		img.SetRGBA(x, h-1, axisColor)
	}

	var max int64
	for _, v := range totals {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		return img
	}

	colW := w / 7
	gap := colW / 5
	if gap < 1 {
		gap = 1
	}
	barW := colW - gap
	if barW < 1 {
		barW = 1
	}
	usable := h - 1
	for day, v := range totals {
		if v <= 0 {
			continue
		}
		barH := int(int64(usable) * v / max)
		if barH < 1 {
			barH = 1
		}
		x0 := day*colW + (colW-barW)/2
		for y := h - 1 - barH; y < h-1; y++ {
			for x := x0; x < x0+barW && x < w; x++ {
				img.SetRGBA(x, y, barColor)
			}
		}
	}
	return img
}
