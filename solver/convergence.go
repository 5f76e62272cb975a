// Package solver: convergence criterion.

package solver

import "gonum.org/v1/gonum/mat"

// converged evaluates the infinity norm of the combined mismatch vector
// against the tolerance and reports the pair. When a logger is attached it
// emits one line per iteration (1-based, matching operator convention);
// no state is mutated here.
func (c *context) converged(mis *mat.VecDense, iteration int) (float64, bool) {
	norm := infNorm(mis)
	if c.opts.logger != nil {
		c.opts.logger.Info("mismatch", "iteration", iteration+1, "norm", norm)
	}
	return norm, norm < c.opts.tolerance
}
