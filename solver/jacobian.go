// Package solver: Jacobian assembly.
//
// The Jacobian is the block matrix
//
//	J = [ H  N ]   H: ∂ΔP/∂θ   (|angle| × |angle|)
//	    [ M  L ]   N: ∂ΔP/∂V   (|angle| × |magnitude|)
//	                M: ∂ΔQ/∂θ   (|magnitude| × |angle|)
//	                L: ∂ΔQ/∂V   (|magnitude| × |magnitude|)
//
// Off-diagonal entries (k ≠ m, θ_km = θ[k] − θ[m]):
//
//	H[k,m] =  V[k]·V[m]·(G[k,m]·sin θ_km − B[k,m]·cos θ_km)
//	N[k,m] =  V[k]      ·(G[k,m]·cos θ_km + B[k,m]·sin θ_km)
//	M[k,m] = −V[k]·V[m]·(G[k,m]·cos θ_km + B[k,m]·sin θ_km)
//	L[k,m] =  V[k]      ·(G[k,m]·sin θ_km − B[k,m]·cos θ_km)
//
// Diagonals (k == m):
//
//	H[k,k] = −Q[k] − V[k]²·B[k,k]
//	N[k,k] = (P[k] + V[k]²·G[k,k]) / V[k]
//	M[k,k] =  P[k] − V[k]²·G[k,k]
//	L[k,k] = (Q[k] − V[k]²·B[k,k]) / V[k]
//
// Swing treatment (Big Number): any entry whose row or column bus is the
// swing bus is zero, except the H and L diagonals, which take the large
// constant. The reference bus therefore stays in the system with a fixed
// shape while its corrections collapse to zero in the linear solve.
//
// The N/L diagonal division by V[k] is intentionally unguarded here; Solve
// rejects zero magnitudes up front (ErrZeroVoltage).

package solver

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// jacobian assembles the full block matrix for the current state and the
// injected powers p, q of this iteration.
func (c *context) jacobian(p, q []float64) *mat.Dense {
	n := len(c.angle)
	nm := len(c.magnitude)
	j := mat.NewDense(n+nm, n+nm, nil)

	// H block: ∂ΔP/∂θ over (angle × angle).
	for i, k := range c.angle {
		for jj, m := range c.angle {
			j.Set(i, jj, c.entryHL(k, m, q))
		}
	}
	// N block: ∂ΔP/∂V over (angle × magnitude).
	for i, k := range c.angle {
		for jj, m := range c.magnitude {
			j.Set(i, n+jj, c.entryN(k, m, p))
		}
	}
	// M block: ∂ΔQ/∂θ over (magnitude × angle).
	for i, k := range c.magnitude {
		for jj, m := range c.angle {
			j.Set(n+i, jj, c.entryM(k, m, p))
		}
	}
	// L block: ∂ΔQ/∂V over (magnitude × magnitude).
	for i, k := range c.magnitude {
		for jj, m := range c.magnitude {
			j.Set(n+i, n+jj, c.entryL(k, m, q))
		}
	}
	return j
}

// entryHL computes H[k,m]; the identical angular-sensitivity shape serves
// the off-diagonal of L as well.
func (c *context) entryHL(k, m int, q []float64) float64 {
	if c.isSwing[k] || c.isSwing[m] {
		if k == m {
			return c.opts.bigNumber
		}
		return 0
	}
	if k == m {
		return -q[k] - c.v[k]*c.v[k]*c.b.At(k, k)
	}
	sin, cos := math.Sincos(c.theta[k] - c.theta[m])
	return c.v[k] * c.v[m] * (c.g.At(k, m)*sin - c.b.At(k, m)*cos)
}

// entryN computes N[k,m].
func (c *context) entryN(k, m int, p []float64) float64 {
	if c.isSwing[k] || c.isSwing[m] {
		return 0
	}
	if k == m {
		return (p[k] + c.v[k]*c.v[k]*c.g.At(k, k)) / c.v[k]
	}
	sin, cos := math.Sincos(c.theta[k] - c.theta[m])
	return c.v[k] * (c.g.At(k, m)*cos + c.b.At(k, m)*sin)
}

// entryM computes M[k,m].
func (c *context) entryM(k, m int, p []float64) float64 {
	if c.isSwing[k] || c.isSwing[m] {
		return 0
	}
	if k == m {
		return p[k] - c.v[k]*c.v[k]*c.g.At(k, k)
	}
	sin, cos := math.Sincos(c.theta[k] - c.theta[m])
	return -c.v[k] * c.v[m] * (c.g.At(k, m)*cos + c.b.At(k, m)*sin)
}

// entryL computes L[k,m].
func (c *context) entryL(k, m int, q []float64) float64 {
	if c.isSwing[k] || c.isSwing[m] {
		if k == m {
			return c.opts.bigNumber
		}
		return 0
	}
	if k == m {
		return (q[k] - c.v[k]*c.v[k]*c.b.At(k, k)) / c.v[k]
	}
	sin, cos := math.Sincos(c.theta[k] - c.theta[m])
	return c.v[k] * (c.g.At(k, m)*sin - c.b.At(k, m)*cos)
}
