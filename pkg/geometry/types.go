// Package geometry provides basic geometric types used throughout the application.
package geometry

import "image"

// PointInt represents a 2D point with integer pixel coordinates.
type PointInt struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// RectInt represents an axis-aligned rectangle in pixel coordinates.
type RectInt struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewRectInt creates a RectInt from a top-left corner and size.
func NewRectInt(x, y, width, height int) RectInt {
	return RectInt{X: x, Y: y, Width: width, Height: height}
}

// Empty returns true if the rectangle has no area.
func (r RectInt) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// ToImageRect converts to a stdlib image.Rectangle.
func (r RectInt) ToImageRect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Clamp returns the rectangle intersected with the bounds of a width×height image.
func (r RectInt) Clamp(width, height int) RectInt {
	x0 := max(r.X, 0)
	y0 := max(r.Y, 0)
	x1 := min(r.X+r.Width, width)
	y1 := min(r.Y+r.Height, height)
	return RectInt{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// PercentRect describes a rectangle as percentages of an image's dimensions.
// Coordinates run 0..100; StartX < EndX and TopY < BottomY.
type PercentRect struct {
	StartX  float64 `json:"start_x"`
	EndX    float64 `json:"end_x"`
	TopY    float64 `json:"top_y"`
	BottomY float64 `json:"bottom_y"`
}

// Valid reports whether the rectangle is well-formed percentage geometry.
func (p PercentRect) Valid() bool {
	return p.StartX >= 0 && p.StartX < p.EndX && p.EndX <= 100 &&
		p.TopY >= 0 && p.TopY < p.BottomY && p.BottomY <= 100
}

// PixelBounds converts percentage coordinates to absolute pixel bounds for a
// width×height image. Coordinates truncate toward zero, not round; historical
// crops were derived this way and re-derivations must match.
func (p PercentRect) PixelBounds(width, height int) RectInt {
	x0 := int(p.StartX / 100 * float64(width))
	y0 := int(p.TopY / 100 * float64(height))
	x1 := int(p.EndX / 100 * float64(width))
	y1 := int(p.BottomY / 100 * float64(height))
	return RectInt{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
