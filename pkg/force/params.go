package force

// Default force parameters. Tuned for graphs in the tens-to-hundreds of
// nodes range; larger graphs usually want a higher charge and link distance.
const (
	DefaultChargeStrength = 2000.0
	DefaultLinkDistance   = 80.0
	DefaultLinkStrength   = 0.05
	DefaultCenterStrength = 0.01
	DefaultCollideRadius  = 8.0
	DefaultVelocityDecay  = 0.85
	DefaultAlphaDecay     = 0.0228
	DefaultAlphaMin       = 0.001
	DefaultTheta          = 0.9
)

// Params configures the force simulation. Zero values fall back to the
// package defaults; use Normalized to resolve them.
type Params struct {
	// ChargeStrength sets the magnitude of the pairwise repulsive force.
	// The force between two nodes is ChargeStrength / d² along the line
	// connecting them.
	ChargeStrength float64 `toml:"charge_strength" json:"chargeStrength"`

	// LinkDistance is the rest length of every link spring.
	LinkDistance float64 `toml:"link_distance" json:"linkDistance"`

	// LinkStrength scales the spring force, multiplied by link weight
	// when the weight is non-zero.
	LinkStrength float64 `toml:"link_strength" json:"linkStrength"`

	// CenterStrength pulls the whole layout toward the bounds center.
	CenterStrength float64 `toml:"center_strength" json:"centerStrength"`

	// CollideRadius is the fallback radius for collision resolution when
	// a node carries no explicit size.
	CollideRadius float64 `toml:"collide_radius" json:"collideRadius"`

	// VelocityDecay is the damping multiplier applied to velocities each
	// tick; values near 1 preserve momentum, near 0 kill it.
	VelocityDecay float64 `toml:"velocity_decay" json:"velocityDecay"`

	// AlphaDecay is the per-tick decay rate of the kinetic budget.
	AlphaDecay float64 `toml:"alpha_decay" json:"alphaDecay"`

	// AlphaMin is the convergence threshold: the solver stops ticking
	// once alpha falls below it.
	AlphaMin float64 `toml:"alpha_min" json:"alphaMin"`

	// Theta is the Barnes-Hut accuracy parameter for the charge
	// approximation. 0 degrades to exact pairwise computation.
	Theta float64 `toml:"theta" json:"theta"`
}

// Normalized returns a copy with zero values replaced by defaults and
// out-of-range values clamped.
func (p Params) Normalized() Params {
	if p.ChargeStrength == 0 {
		p.ChargeStrength = DefaultChargeStrength
	}
	if p.LinkDistance <= 0 {
		p.LinkDistance = DefaultLinkDistance
	}
	if p.LinkStrength <= 0 {
		p.LinkStrength = DefaultLinkStrength
	}
	if p.CenterStrength < 0 {
		p.CenterStrength = 0
	} else if p.CenterStrength == 0 {
		p.CenterStrength = DefaultCenterStrength
	}
	if p.CollideRadius <= 0 {
		p.CollideRadius = DefaultCollideRadius
	}
	if p.VelocityDecay <= 0 || p.VelocityDecay >= 1 {
		p.VelocityDecay = DefaultVelocityDecay
	}
	if p.AlphaDecay <= 0 || p.AlphaDecay >= 1 {
		p.AlphaDecay = DefaultAlphaDecay
	}
	if p.AlphaMin <= 0 {
		p.AlphaMin = DefaultAlphaMin
	}
	if p.Theta <= 0 {
		p.Theta = DefaultTheta
	}
	return p
}
