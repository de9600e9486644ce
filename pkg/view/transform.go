// Package view manages the zoom/pan transform between logical (layout)
// space and screen space. The Manager owns the transform exclusively: it is
// mutated only through zoom and pan gestures or programmatic fit/reset
// calls, and every mutation clamps the scale into the configured bounds.
package view

import "math"

// Default zoom limits.
const (
	DefaultMinZoom = 0.1
	DefaultMaxZoom = 10.0

	// DefaultMaxFitZoom caps the scale FitToBounds may pick, so a tiny
	// graph is not blown up beyond recognition.
	DefaultMaxFitZoom = 2.0
)

// Point is a position in either logical or screen space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a viewport extent in screen units.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bounds is an axis-aligned box in logical space.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Transform maps logical coordinates to screen coordinates:
// screen = logical*K + T.
type Transform struct {
	K  float64 `json:"scale"`
	TX float64 `json:"translateX"`
	TY float64 `json:"translateY"`
}

// Identity is the neutral transform.
var Identity = Transform{K: 1}

// Apply maps a logical point to screen space.
func (t Transform) Apply(p Point) Point {
	return Point{X: p.X*t.K + t.TX, Y: p.Y*t.K + t.TY}
}

// Invert maps a screen point back to logical space.
func (t Transform) Invert(p Point) Point {
	if t.K == 0 {
		return p
	}
	return Point{X: (p.X - t.TX) / t.K, Y: (p.Y - t.TY) / t.K}
}

// ChangeFunc receives the transform after every mutation.
type ChangeFunc func(Transform)

// Manager owns the view transform and the zoom limits.
// The zero value is not usable - use NewManager.
type Manager struct {
	t          Transform
	minZoom    float64
	maxZoom    float64
	maxFitZoom float64
	onChange   ChangeFunc
}

// NewManager creates a manager with the given zoom limits. Non-positive
// limits fall back to the package defaults; inverted limits are swapped.
func NewManager(minZoom, maxZoom float64) *Manager {
	if minZoom <= 0 {
		minZoom = DefaultMinZoom
	}
	if maxZoom <= 0 {
		maxZoom = DefaultMaxZoom
	}
	if minZoom > maxZoom {
		minZoom, maxZoom = maxZoom, minZoom
	}
	return &Manager{
		t:          Identity,
		minZoom:    minZoom,
		maxZoom:    maxZoom,
		maxFitZoom: DefaultMaxFitZoom,
	}
}

// SetMaxFitZoom overrides the cap applied by FitToBounds.
func (m *Manager) SetMaxFitZoom(k float64) {
	if k > 0 {
		m.maxFitZoom = k
	}
}

// OnChange registers a callback fired after every transform mutation.
func (m *Manager) OnChange(fn ChangeFunc) { m.onChange = fn }

// Current returns the active transform.
func (m *Manager) Current() Transform { return m.t }

// Scale returns the active zoom factor.
func (m *Manager) Scale() float64 { return m.t.K }

// MinZoom returns the lower zoom limit.
func (m *Manager) MinZoom() float64 { return m.minZoom }

// MaxZoom returns the upper zoom limit.
func (m *Manager) MaxZoom() float64 { return m.maxZoom }

// ToLogical converts a screen point into logical space.
func (m *Manager) ToLogical(p Point) Point { return m.t.Invert(p) }

// ToScreen converts a logical point into screen space.
func (m *Manager) ToScreen(p Point) Point { return m.t.Apply(p) }

// ApplyDelta multiplies the scale by factor, keeping the focal screen point
// fixed. The resulting scale is clamped into [minZoom, maxZoom]; violating
// inputs are clamped, never rejected.
func (m *Manager) ApplyDelta(factor float64, focal Point) Transform {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return m.t
	}
	newK := m.clamp(m.t.K * factor)
	logical := m.t.Invert(focal)
	m.t = Transform{
		K:  newK,
		TX: focal.X - logical.X*newK,
		TY: focal.Y - logical.Y*newK,
	}
	m.notify()
	return m.t
}

// Pan shifts the translation by a screen-space delta.
func (m *Manager) Pan(dx, dy float64) Transform {
	m.t.TX += dx
	m.t.TY += dy
	m.notify()
	return m.t
}

// FitToBounds computes the scale that makes bounds fit within the viewport
// minus padding on every side, capped at the max fit zoom and clamped to
// the zoom limits, then centers the bounds. It is a no-op returning the
// current transform when the bounding box is degenerate (zero width or
// height) or the viewport is unusable.
func (m *Manager) FitToBounds(b Bounds, viewport Size, padding float64) Transform {
	bw, bh := b.Width(), b.Height()
	if bw <= 0 || bh <= 0 {
		return m.t
	}
	availW := viewport.Width - 2*padding
	availH := viewport.Height - 2*padding
	if availW <= 0 || availH <= 0 {
		return m.t
	}

	k := math.Min(availW/bw, availH/bh)
	k = math.Min(k, m.maxFitZoom)
	k = m.clamp(k)

	cx := (b.MinX + b.MaxX) / 2
	cy := (b.MinY + b.MaxY) / 2
	m.t = Transform{
		K:  k,
		TX: viewport.Width/2 - cx*k,
		TY: viewport.Height/2 - cy*k,
	}
	m.notify()
	return m.t
}

// Set replaces the transform wholesale, clamping the scale. Intended for
// restoring a saved view; interactive mutation goes through ApplyDelta
// and Pan.
func (m *Manager) Set(t Transform) Transform {
	t.K = m.clamp(t.K)
	m.t = t
	m.notify()
	return m.t
}

// Reset restores the identity transform.
func (m *Manager) Reset() Transform {
	m.t = Transform{K: m.clamp(1)}
	m.notify()
	return m.t
}

// CenterOn translates so the given logical point lands at the viewport
// center, preserving the current scale.
func (m *Manager) CenterOn(logical Point, viewport Size) Transform {
	m.t.TX = viewport.Width/2 - logical.X*m.t.K
	m.t.TY = viewport.Height/2 - logical.Y*m.t.K
	m.notify()
	return m.t
}

func (m *Manager) clamp(k float64) float64 {
	return math.Min(math.Max(k, m.minZoom), m.maxZoom)
}

func (m *Manager) notify() {
	if m.onChange != nil {
		m.onChange(m.t)
	}
}
