// Package solver: power-balance evaluation and mismatch (residual) vectors.
//
// Injected power at bus k, over all buses m, with θ_km = θ[k] − θ[m]:
//
//	P[k] = Σ_m V[k]·V[m]·(G[k,m]·cos θ_km + B[k,m]·sin θ_km)
//	Q[k] = Σ_m V[k]·V[m]·(G[k,m]·sin θ_km − B[k,m]·cos θ_km)
//
// Dense double loop, O(n²) per evaluation. V, θ and the G/B rows/columns
// share one bus ordering, established once at Solve setup.

package solver

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// injectedPower computes P and Q at every bus from the current state.
func injectedPower(g, b *mat.Dense, v, theta []float64) (p, q []float64) {
	n := len(v)
	p = make([]float64, n)
	q = make([]float64, n)
	for k := 0; k < n; k++ {
		var pk, qk float64
		for m := 0; m < n; m++ {
			sin, cos := math.Sincos(theta[k] - theta[m])
			vv := v[k] * v[m]
			pk += vv * (g.At(k, m)*cos + b.At(k, m)*sin)
			qk += vv * (g.At(k, m)*sin - b.At(k, m)*cos)
		}
		p[k] = pk
		q[k] = qk
	}
	return p, q
}

// residuals forms the combined mismatch vector [ΔP; ΔQ].
//
// ΔP holds one entry per bus in angle order; ΔQ one entry per magnitude
// unknown (swing ∪ PQ, swing-first). Swing entries are forced to exactly
// zero: the reference bus power is not a free variable.
//
// A bus absent from the specified-power tables is a fatal configuration
// error (ErrMissingSpecified).
func (c *context) residuals(p, q []float64) (*mat.VecDense, error) {
	n := len(c.angle)
	nm := len(c.magnitude)
	mis := mat.NewVecDense(n+nm, nil)

	for i, k := range c.angle {
		if c.isSwing[k] {
			mis.SetVec(i, 0)
			continue
		}
		spec, ok := c.pspec[c.names[k]]
		if !ok {
			return nil, fmt.Errorf("bus %q (active): %w", c.names[k], ErrMissingSpecified)
		}
		mis.SetVec(i, spec-p[k])
	}
	for i, k := range c.magnitude {
		if c.isSwing[k] {
			mis.SetVec(n+i, 0)
			continue
		}
		spec, ok := c.qspec[c.names[k]]
		if !ok {
			return nil, fmt.Errorf("bus %q (reactive): %w", c.names[k], ErrMissingSpecified)
		}
		mis.SetVec(n+i, spec-q[k])
	}
	return mis, nil
}

// infNorm returns the maximum absolute entry of a vector.
func infNorm(v *mat.VecDense) float64 {
	var max float64
	for i := 0; i < v.Len(); i++ {
		if a := math.Abs(v.AtVec(i)); a > max {
			max = a
		}
	}
	return max
}
