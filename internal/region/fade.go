package region

// Fade is a distance attenuation: 1 up to Near, 0 from Far on, linear between.
type Fade struct {
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

// DefaultDisplacementFade flattens the surface 5000 units from the viewer.
func DefaultDisplacementFade() Fade { return Fade{Near: 0, Far: 5000} }

// DefaultNormalFade turns normals up 30000 units from the viewer.
func DefaultNormalFade() Fade { return Fade{Near: 0, Far: 30000} }

// Factor returns the attenuation at distance d. It never increases with d.
func (f Fade) Factor(d float32) float32 {
	if !(d > f.Near) {
		return 1
	}
	if d >= f.Far || f.Far <= f.Near {
		return 0
	}
	return 1 - (d-f.Near)/(f.Far-f.Near)
}
