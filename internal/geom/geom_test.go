package geom

import (
	"math"
	"testing"
)

func TestScaleForZoomLevel(t *testing.T) {
	if got := ScaleForZoomLevel(0); got != 1 {
		t.Fatalf("ScaleForZoomLevel(0) = %v, want 1", got)
	}
	for n := -40; n <= 40; n++ {
		a, b := ScaleForZoomLevel(n), ScaleForZoomLevel(n+2)
		if b != 2*a {
			t.Errorf("ScaleForZoomLevel(%d) = %v, want exactly 2*%v", n+2, b, a)
		}
		want := math.Pow(2, float64(n)/2)
		if math.Abs(a-want) > want*1e-12 {
			t.Errorf("ScaleForZoomLevel(%d) = %v, want %v", n, a, want)
		}
	}
}

func TestClampZoomLevel(t *testing.T) {
	tests := []struct {
		level, want int
	}{
		{0, 0},
		{-3, -3},
		{MinZoomLevel - 1, MinZoomLevel},
		{-5000, MinZoomLevel},
		{MaxZoomLevel + 7, MaxZoomLevel},
	}
	for _, tt := range tests {
		if got := ClampZoomLevel(tt.level); got != tt.want {
			t.Errorf("ClampZoomLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
	for _, level := range []int{MinZoomLevel, MaxZoomLevel} {
		s := ScaleForZoomLevel(level)
		if s == 0 || math.IsInf(s, 0) {
			t.Errorf("ScaleForZoomLevel(%d) = %v, want finite and non-zero", level, s)
		}
	}
}

func TestZoomLevelForRatio(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  int
	}{
		{"Exact one", 1, 0},
		{"Exact two", 2, 2},
		{"Exact half", 0.5, -2},
		{"Between", 1.5, 1},
		{"Just below sqrt2", 1.414, 0},
		{"Zero ratio", 0, 0},
		{"Negative ratio", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ZoomLevelForRatio(tt.ratio); got != tt.want {
				t.Errorf("ZoomLevelForRatio(%v) = %d, want %d", tt.ratio, got, tt.want)
			}
		})
	}
}

func TestFitToWindowZoomLevel(t *testing.T) {
	tests := []struct {
		name     string
		window   Size
		image    Size
		rotation int
		want     int
	}{
		{"Wide image in 800x600", Size{800, 600}, Size{1600, 400}, 0, -2},
		{"Same size", Size{800, 600}, Size{800, 600}, 0, 0},
		{"Small image grows", Size{800, 600}, Size{200, 150}, 0, 4},
		{"Tall image", Size{800, 600}, Size{300, 1200}, 0, -2},
		{"Rotated wide image", Size{800, 600}, Size{1600, 400}, 1, -3},
		{"Degenerate window", Size{0, 0}, Size{100, 100}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FitToWindowZoomLevel(tt.window, tt.image, tt.rotation)
			if got != tt.want {
				t.Errorf("FitToWindowZoomLevel() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFitToWindowZoomLevelIsMaximal(t *testing.T) {
	window := Size{800, 600}
	images := []Size{{1600, 400}, {640, 480}, {123, 457}, {5000, 20}, {20, 5000}, {801, 601}}
	for _, img := range images {
		for rotation := 0; rotation < 4; rotation++ {
			level := FitToWindowZoomLevel(window, img, rotation)
			eff := img.Swapped(rotation)
			s := ScaleForZoomLevel(level)
			if eff.W*s > window.W || eff.H*s > window.H {
				t.Errorf("%v rot %d: level %d overflows (%vx%v)", img, rotation, level, eff.W*s, eff.H*s)
			}
			next := ScaleForZoomLevel(level + 1)
			if eff.W*next <= window.W && eff.H*next <= window.H {
				t.Errorf("%v rot %d: level %d is not maximal", img, rotation, level)
			}
		}
	}
}

func TestFullscreenFitRect(t *testing.T) {
	tests := []struct {
		name     string
		window   Size
		image    Size
		rotation int
		want     Rect
	}{
		{"Height constrained", Size{800, 600}, Size{400, 400}, 0, Rect{100, 0, 600, 600}},
		{"Width constrained", Size{800, 600}, Size{1600, 400}, 0, Rect{0, 200, 800, 200}},
		{"Rotated wide image", Size{800, 600}, Size{1600, 400}, 1, Rect{100, 225, 600, 150}},
		{"Half turn keeps axes", Size{800, 600}, Size{1600, 400}, 2, Rect{0, 200, 800, 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FullscreenFitRect(tt.window, tt.image, tt.rotation)
			if got != tt.want {
				t.Errorf("FullscreenFitRect() = %+v, want %+v", got, tt.want)
			}
			shown := got
			if tt.rotation%2 != 0 {
				shown = got.Rotated()
			}
			if shown.X < 0 || shown.Y < 0 || shown.X+shown.W > tt.window.W || shown.Y+shown.H > tt.window.H {
				t.Errorf("displayed rect %+v escapes window %+v", shown, tt.window)
			}
		})
	}
}

func TestAnchoredPositionKeepsPoint(t *testing.T) {
	image := Size{640, 480}
	pos := Point{-37.5, 12.25}
	for oldLevel := -4; oldLevel <= 4; oldLevel++ {
		for newLevel := -4; newLevel <= 4; newLevel++ {
			oldScale := ScaleForZoomLevel(oldLevel)
			newScale := ScaleForZoomLevel(newLevel)
			rect := RectForPose(pos, image, oldLevel)
			anchor := Point{rect.X + rect.W*0.3, rect.Y + rect.H*0.7}

			imgX := (anchor.X - pos.X) / oldScale
			imgY := (anchor.Y - pos.Y) / oldScale

			np := AnchoredPosition(anchor, pos, oldScale, newScale)
			gotX := np.X + imgX*newScale
			gotY := np.Y + imgY*newScale
			if math.Abs(gotX-anchor.X) > 1e-3 || math.Abs(gotY-anchor.Y) > 1e-3 {
				t.Errorf("%d->%d: anchor %+v moved to (%v, %v)", oldLevel, newLevel, anchor, gotX, gotY)
			}
		}
	}
}

func TestRectRotated(t *testing.T) {
	r := Rect{10, 20, 100, 40}
	got := r.Rotated()
	want := Rect{40, -10, 40, 100}
	if got != want {
		t.Errorf("Rotated() = %+v, want %+v", got, want)
	}
	if got.Center() != r.Center() {
		t.Errorf("center moved from %+v to %+v", r.Center(), got.Center())
	}
	if back := got.Rotated(); back != r {
		t.Errorf("double rotation = %+v, want %+v", back, r)
	}
}

func TestRectFloor(t *testing.T) {
	got := Rect{10.7, -0.5, 3.3, 4.4}.Floor()
	want := Rect{10, -1, 3.3, 4.4}
	if got != want {
		t.Errorf("Floor() = %+v, want %+v", got, want)
	}
}

func TestOrientation(t *testing.T) {
	tests := []struct {
		code     int
		rotation int
		mirrored bool
	}{
		{0, 0, false},
		{1, 0, false},
		{2, 0, true},
		{3, 2, false},
		{4, 2, true},
		{5, 1, true},
		{6, 1, false},
		{7, 3, true},
		{8, 3, false},
		{9, 0, false},
	}

	for _, tt := range tests {
		rotation, mirrored := Orientation(tt.code)
		if rotation != tt.rotation || mirrored != tt.mirrored {
			t.Errorf("Orientation(%d) = (%d, %v), want (%d, %v)", tt.code, rotation, mirrored, tt.rotation, tt.mirrored)
		}
	}
}

func TestFlip(t *testing.T) {
	tests := []struct {
		rotation int
		mirrored bool
		h, v     bool
	}{
		{0, false, false, false},
		{1, false, false, false},
		{0, true, true, false},
		{2, true, true, false},
		{1, true, false, true},
		{3, true, false, true},
	}

	for _, tt := range tests {
		h, v := Flip(tt.rotation, tt.mirrored)
		if h != tt.h || v != tt.v {
			t.Errorf("Flip(%d, %v) = (%v, %v), want (%v, %v)", tt.rotation, tt.mirrored, h, v, tt.h, tt.v)
		}
	}
}
