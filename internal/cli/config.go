package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/voltlab/powerflow/solver"
)

// runConfig mirrors the optional TOML run-configuration file. Zero fields
// fall back to the solver defaults.
//
//	tolerance      = 1e-6
//	max_iterations = 20
//	big_number     = 1e10
type runConfig struct {
	Tolerance     float64 `toml:"tolerance"`
	MaxIterations int     `toml:"max_iterations"`
	BigNumber     float64 `toml:"big_number"`
}

// loadRunConfig decodes the TOML file at path.
func loadRunConfig(path string) (runConfig, error) {
	var cfg runConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return runConfig{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// options translates the configuration into solver options, skipping
// unset fields.
func (c runConfig) options() []solver.Option {
	var opts []solver.Option
	if c.Tolerance > 0 {
		opts = append(opts, solver.WithTolerance(c.Tolerance))
	}
	if c.MaxIterations > 0 {
		opts = append(opts, solver.WithMaxIterations(c.MaxIterations))
	}
	if c.BigNumber > 0 {
		opts = append(opts, solver.WithBigNumber(c.BigNumber))
	}
	return opts
}
