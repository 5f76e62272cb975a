// Package solver: in-place state correction.

package solver

import "gonum.org/v1/gonum/mat"

// applyCorrections subtracts the solved correction vector δ = [Δθ; ΔV]
// from the voltage state:
//
//	θ[k] -= Δθ[k]  for every bus in the angle ordering
//	V[k] -= ΔV[k]  for every bus in the magnitude ordering
//
// PV magnitudes are untouched because they are absent from the magnitude
// set — the generator voltage setpoint holds by construction. The swing
// entries are mathematically present, but the Big Number diagonal forces
// their solved corrections to zero.
func (c *context) applyCorrections(delta *mat.VecDense) {
	n := len(c.angle)
	for i, k := range c.angle {
		c.theta[k] -= delta.AtVec(i)
	}
	for i, k := range c.magnitude {
		c.v[k] -= delta.AtVec(n + i)
	}
}
