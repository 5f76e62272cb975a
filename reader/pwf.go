// Package reader: ANAREDE PWF fixed-column format.
//
// The format is section-oriented: a BASE line carries the system MVA base,
// DBAR rows describe buses (one per line, fixed byte columns), DLIN rows
// describe branches. Sections end at a "99999" line; lines starting with
// "(" are comments. Files are latin-1 encoded; all column offsets below are
// byte offsets, so no transcoding is needed.

package reader

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/voltlab/powerflow/grid"
)

// PWF reads a power-flow case in the ANAREDE fixed-column format.
type PWF struct {
	name string
	src  io.Reader
}

// NewPWF wraps a PWF document. name becomes the case name.
func NewPWF(name string, src io.Reader) *PWF {
	return &PWF{name: name, src: src}
}

// Read parses the document: BASE first (the DBAR/DLIN quantities are
// normalized against it), then the DBAR and DLIN sections in file order.
// Rows that fail their mandatory integer fields are skipped.
func (p *PWF) Read() (*Case, error) {
	var lines []string
	sc := bufio.NewScanner(p.src)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reader: pwf scan: %w", err)
	}

	base, err := pwfBase(lines)
	if err != nil {
		return nil, err
	}

	c := &Case{Name: p.name, BaseMVA: base}
	busName := make(map[int]string)

	for _, row := range pwfSection(lines, "DBAR") {
		p.parseBusRow(row, base, c, busName)
	}
	for _, row := range pwfSection(lines, "DLIN") {
		p.parseBranchRow(row, base, c, busName)
	}
	return c, nil
}

// pwfBase extracts the MVA base from the first BASE line (columns 5:11).
func pwfBase(lines []string) (float64, error) {
	for _, line := range lines {
		if !strings.Contains(line, "BASE") {
			continue
		}
		base, err := strconv.ParseFloat(column(line, 5, 11), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: bad BASE value %q", ErrNoBaseSection, column(line, 5, 11))
		}
		return base, nil
	}
	return 0, ErrNoBaseSection
}

// pwfSection returns the data rows between a section header and its
// "99999" terminator, skipping comment and blank lines.
func pwfSection(lines []string, header string) []string {
	var rows []string
	capture := false
	for _, line := range lines {
		if !capture {
			if strings.Contains(line, header) {
				capture = true
			}
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "99999" {
			break
		}
		if strings.HasPrefix(trimmed, "(") || len(trimmed) < 5 {
			continue
		}
		rows = append(rows, line)
	}
	return rows
}

// parseBusRow decodes one DBAR row into a Bus with its attached generator,
// load and shunt records. PV and Swing buses always get a generator record,
// even at zero output.
func (p *PWF) parseBusRow(row string, base float64, c *Case, busName map[int]string) {
	num, err := strconv.Atoi(column(row, 0, 5))
	if err != nil {
		return
	}
	kindCode, err := strconv.Atoi(column(row, 5, 8))
	if err != nil {
		return
	}
	kind := grid.PQ
	switch kindCode {
	case 1:
		kind = grid.PV
	case 2:
		kind = grid.Swing
	}
	name := column(row, 10, 22)
	if name == "" {
		name = strconv.Itoa(num)
	}
	vRaw, err := strconv.Atoi(column(row, 24, 28))
	if err != nil {
		return
	}

	bus := &grid.Bus{
		Number: num,
		Name:   name,
		Kind:   kind,
		V:      float64(vRaw) / 1000,
		Theta:  floatColumn(row, 28, 32, 0),
		Shunts: []grid.Shunt{},
	}

	pg := floatColumn(row, 32, 37, 0) / base
	qg := floatColumn(row, 37, 42, 0) / base
	qmin := floatColumn(row, 42, 47, math.NaN())
	qmax := floatColumn(row, 47, 52, math.NaN())
	pl := floatColumn(row, 58, 63, 0) / base
	ql := floatColumn(row, 63, 68, 0) / base
	sh := floatColumn(row, 69, 74, 0) / base

	if kind == grid.PV || kind == grid.Swing || pg != 0 || qg != 0 {
		bus.Generators = append(bus.Generators, grid.Generator{
			ID: num, Bus: name, P: pg, Q: qg, QMin: qmin, QMax: qmax,
		})
	}
	if pl != 0 || ql != 0 {
		bus.Loads = append(bus.Loads, grid.Load{Bus: name, P: pl, Q: ql})
	}
	if sh != 0 {
		bus.Shunts = append(bus.Shunts, grid.Shunt{Bus: name, B: sh, InService: true})
	}

	c.Buses = append(c.Buses, bus)
	busName[num] = name
}

// parseBranchRow decodes one DLIN row into a Line or a Transformer.
// Classification: a branch with an off-nominal tap or a phase shift is a
// transformer; a zero tap is coerced to nominal.
func (p *PWF) parseBranchRow(row string, base float64, c *Case, busName map[int]string) {
	from, err := strconv.Atoi(column(row, 0, 5))
	if err != nil {
		return
	}
	to, err := strconv.Atoi(column(row, 10, 15))
	if err != nil {
		return
	}
	r := floatColumn(row, 15, 26, 0) / 100
	x := floatColumn(row, 26, 32, 0) / 100
	b := floatColumn(row, 32, 38, 0) / base
	tap := floatColumn(row, 38, 44, 1)
	if tap == 0 {
		tap = 1
	}
	phase := floatColumn(row, 54, 59, 0)

	fromName := pwfEndpoint(busName, from)
	toName := pwfEndpoint(busName, to)

	if tap != 1 || phase != 0 {
		c.Transformers = append(c.Transformers, grid.Transformer{
			From: fromName, To: toName,
			Name: fmt.Sprintf("TRAFO-%d-%d", from, to),
			R:    r, X: x, B: b, Tap: tap, Phase: phase,
			InService: true,
		})
		return
	}
	c.Lines = append(c.Lines, grid.Line{
		From: fromName, To: toName,
		R: r, X: x, B: b,
		InService: true,
	})
}

// pwfEndpoint resolves a bus number to its DBAR name, falling back to the
// number itself for forward references outside the section.
func pwfEndpoint(busName map[int]string, num int) string {
	if name, ok := busName[num]; ok {
		return name
	}
	return strconv.Itoa(num)
}

// column returns the trimmed byte slice [from:to) of a row, tolerating
// short rows.
func column(row string, from, to int) string {
	if from >= len(row) {
		return ""
	}
	if to > len(row) {
		to = len(row)
	}
	return strings.TrimSpace(row[from:to])
}

// floatColumn parses a float column, returning def when the column is
// empty or unparseable.
func floatColumn(row string, from, to int, def float64) float64 {
	s := column(row, from, to)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}
