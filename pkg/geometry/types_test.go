package geometry

import "testing"

func TestPixelBoundsTruncates(t *testing.T) {
	// Truncation, not rounding: 33.3% of 1000 is 332.999... in float64 and
	// must land on 332, matching how historical crops were derived.
	p := PercentRect{StartX: 33.3, EndX: 66.6, TopY: 10, BottomY: 66.6}
	r := p.PixelBounds(1000, 777)
	if r.X != 332 || r.Y != 77 {
		t.Fatalf("unexpected origin: %+v", r)
	}
	if r.X+r.Width != 665 || r.Y+r.Height != 517 {
		t.Fatalf("unexpected far corner: %+v", r)
	}
}

func TestPixelBoundsStaysInsideImage(t *testing.T) {
	dims := []struct{ w, h int }{{1920, 1080}, {2560, 1440}, {641, 479}, {1, 1}}
	specs := []PercentRect{
		{StartX: 0, EndX: 100, TopY: 0, BottomY: 100},
		{StartX: 0.1, EndX: 99.9, TopY: 0.1, BottomY: 99.9},
		{StartX: 12.5, EndX: 13.5, TopY: 88, BottomY: 92},
	}
	for _, d := range dims {
		for _, p := range specs {
			r := p.PixelBounds(d.w, d.h)
			if r.X < 0 || r.Y < 0 || r.X+r.Width > d.w || r.Y+r.Height > d.h {
				t.Errorf("rect %+v escapes %dx%d image for spec %+v", r, d.w, d.h, p)
			}
		}
	}
}

func TestPercentRectValid(t *testing.T) {
	cases := []struct {
		spec PercentRect
		want bool
	}{
		{PercentRect{0, 100, 0, 100}, true},
		{PercentRect{10, 20, 30, 40}, true},
		{PercentRect{20, 10, 30, 40}, false},
		{PercentRect{10, 10, 30, 40}, false},
		{PercentRect{-1, 10, 30, 40}, false},
		{PercentRect{10, 101, 30, 40}, false},
		{PercentRect{10, 20, 40, 30}, false},
	}
	for _, c := range cases {
		if got := c.spec.Valid(); got != c.want {
			t.Errorf("Valid(%+v) = %v, want %v", c.spec, got, c.want)
		}
	}
}

func TestRectIntClamp(t *testing.T) {
	r := RectInt{X: -10, Y: 50, Width: 200, Height: 200}
	c := r.Clamp(100, 100)
	if c.X != 0 || c.Y != 50 || c.Width != 100 || c.Height != 50 {
		t.Fatalf("unexpected clamp result: %+v", c)
	}
	if !(RectInt{X: 5, Y: 5, Width: 0, Height: 10}).Empty() {
		t.Fatal("zero-width rect should be empty")
	}
}
