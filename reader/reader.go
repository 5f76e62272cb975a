package reader

import (
	"errors"

	"github.com/voltlab/powerflow/grid"
	"github.com/voltlab/powerflow/system"
)

// Sentinel errors shared by the readers.
var (
	// ErrNoBaseSection indicates that a PWF file has no BASE section.
	ErrNoBaseSection = errors.New("reader: BASE section not found")

	// ErrBadDocument indicates that a JSON document does not match the schema.
	ErrBadDocument = errors.New("reader: malformed case document")

	// ErrUnknownBusRef indicates a branch endpoint referencing a bus
	// position outside the bus list.
	ErrUnknownBusRef = errors.New("reader: unknown bus reference")
)

// Case is the raw topology produced by a reader: everything package system
// needs to assemble a solvable aggregate, already in per-unit.
type Case struct {
	Name         string
	BaseMVA      float64
	Buses        []*grid.Bus
	Lines        []grid.Line
	Transformers []grid.Transformer
}

// Reader is the capability interface of an input format: it produces a
// topology. Concrete implementations: PWF, JSON.
type Reader interface {
	// Read parses the underlying document into a Case.
	Read() (*Case, error)
}

// Assemble builds the solvable system aggregate from a read case.
func Assemble(c *Case) (*system.System, error) {
	return system.New(c.Name, c.BaseMVA, c.Buses, c.Lines, c.Transformers)
}
