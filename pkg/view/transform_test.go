package view

import (
	"math"
	"testing"
)

func TestApplyDeltaKeepsFocalFixed(t *testing.T) {
	m := NewManager(0, 0)
	m.Pan(13, -7)

	focal := Point{X: 120, Y: 90}
	before := m.ToLogical(focal)
	m.ApplyDelta(1.5, focal)
	after := m.ToLogical(focal)

	if math.Abs(before.X-after.X) > 1e-9 || math.Abs(before.Y-after.Y) > 1e-9 {
		t.Errorf("focal logical point moved: %+v -> %+v", before, after)
	}
	if got := m.Scale(); got != 1.5 {
		t.Errorf("scale = %v, want 1.5", got)
	}
}

func TestApplyDeltaClampsScale(t *testing.T) {
	m := NewManager(0.5, 4)

	m.ApplyDelta(100, Point{})
	if got := m.Scale(); got != 4 {
		t.Errorf("scale = %v, want clamped to 4", got)
	}
	m.ApplyDelta(0.0001, Point{})
	if got := m.Scale(); got != 0.5 {
		t.Errorf("scale = %v, want clamped to 0.5", got)
	}
}

func TestApplyDeltaRejectsBadFactors(t *testing.T) {
	m := NewManager(0, 0)
	before := m.Current()
	for _, factor := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if got := m.ApplyDelta(factor, Point{}); got != before {
			t.Errorf("ApplyDelta(%v) mutated transform to %+v", factor, got)
		}
	}
}

func TestZoomRoundTrip(t *testing.T) {
	m := NewManager(0, 0)
	m.ApplyDelta(2.5, Point{X: 40, Y: 60})
	m.Pan(-12, 33)

	p := Point{X: 77, Y: -31}
	back := m.ToLogical(m.ToScreen(p))
	if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
		t.Errorf("round trip %+v -> %+v", p, back)
	}
}

func TestFitToBounds(t *testing.T) {
	m := NewManager(0, 0)
	b := Bounds{MinX: 0, MinY: 0, MaxX: 100, MaxY: 50}
	viewport := Size{Width: 400, Height: 300}

	tr := m.FitToBounds(b, viewport, 0)

	// Width is the constraining axis (400/100 = 4) but the fit scale is
	// capped at DefaultMaxFitZoom.
	if tr.K != DefaultMaxFitZoom {
		t.Errorf("scale = %v, want %v", tr.K, DefaultMaxFitZoom)
	}
	center := m.ToScreen(Point{X: 50, Y: 25})
	if math.Abs(center.X-200) > 1e-9 || math.Abs(center.Y-150) > 1e-9 {
		t.Errorf("bounds center at (%v, %v), want viewport center (200, 150)", center.X, center.Y)
	}
}

func TestFitToBoundsUsesConstrainingAxis(t *testing.T) {
	m := NewManager(0, 0)
	m.SetMaxFitZoom(100)
	b := Bounds{MinX: 0, MinY: 0, MaxX: 100, MaxY: 50}

	tr := m.FitToBounds(b, Size{Width: 400, Height: 300}, 40)

	// Available space is 320x220; 320/100 = 3.2 beats 220/50 = 4.4.
	if math.Abs(tr.K-3.2) > 1e-9 {
		t.Errorf("scale = %v, want 3.2", tr.K)
	}
}

func TestFitToBoundsDegenerateIsNoOp(t *testing.T) {
	m := NewManager(0, 0)
	m.ApplyDelta(3, Point{X: 10, Y: 10})
	before := m.Current()

	cases := []struct {
		name     string
		b        Bounds
		viewport Size
		padding  float64
	}{
		{"ZeroWidth", Bounds{MinX: 5, MaxX: 5, MinY: 0, MaxY: 10}, Size{Width: 400, Height: 300}, 0},
		{"ZeroHeight", Bounds{MinX: 0, MaxX: 10, MinY: 5, MaxY: 5}, Size{Width: 400, Height: 300}, 0},
		{"PaddingSwallowsViewport", Bounds{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}, Size{Width: 50, Height: 50}, 30},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.FitToBounds(tt.b, tt.viewport, tt.padding); got != before {
				t.Errorf("transform mutated to %+v", got)
			}
		})
	}
}

func TestCenterOnPreservesScale(t *testing.T) {
	m := NewManager(0, 0)
	m.ApplyDelta(2, Point{})

	m.CenterOn(Point{X: 30, Y: 40}, Size{Width: 200, Height: 100})

	if got := m.Scale(); got != 2 {
		t.Errorf("scale = %v, want 2", got)
	}
	screen := m.ToScreen(Point{X: 30, Y: 40})
	if screen.X != 100 || screen.Y != 50 {
		t.Errorf("centered point at (%v, %v), want (100, 50)", screen.X, screen.Y)
	}
}

func TestSetClampsScale(t *testing.T) {
	m := NewManager(0.5, 4)
	tr := m.Set(Transform{K: 9, TX: 10, TY: 20})
	if tr.K != 4 || tr.TX != 10 || tr.TY != 20 {
		t.Errorf("Set = %+v, want K clamped to 4 with translation kept", tr)
	}
}

func TestResetRestoresIdentity(t *testing.T) {
	m := NewManager(0, 0)
	m.ApplyDelta(5, Point{X: 3, Y: 4})
	m.Pan(10, 10)

	if got := m.Reset(); got != Identity {
		t.Errorf("Reset = %+v, want identity", got)
	}
}

func TestOnChangeFiresOnEveryMutation(t *testing.T) {
	m := NewManager(0, 0)
	var calls int
	var last Transform
	m.OnChange(func(tr Transform) { calls++; last = tr })

	m.ApplyDelta(2, Point{})
	m.Pan(1, 1)
	m.Reset()

	if calls != 3 {
		t.Errorf("onChange fired %d times, want 3", calls)
	}
	if last != Identity {
		t.Errorf("last transform = %+v, want identity", last)
	}
}

func TestNewManagerSwapsInvertedLimits(t *testing.T) {
	m := NewManager(8, 2)
	if m.MinZoom() != 2 || m.MaxZoom() != 8 {
		t.Errorf("limits = [%v, %v], want [2, 8]", m.MinZoom(), m.MaxZoom())
	}
}
