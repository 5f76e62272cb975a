// Package reader: JSON case format.
//
// Schema (all electrical quantities already per-unit):
//
//	{
//	  "base_mva": 100,
//	  "buses": [
//	    {"name": "B1", "type": "SWING", "v": 1.02, "theta": 0,
//	     "generators": [{"id": 1, "p": 0.9, "q": 0.1, "qmin": -0.5, "qmax": 0.5}],
//	     "loads":      [{"p": 0.2, "q": 0.05}],
//	     "shunts":     [{"b": 0.04, "status": true}]}
//	  ],
//	  "lines":        [{"from": "B1", "to": 2, "r": 0.01, "x": 0.1, "b": 0.02}],
//	  "transformers": [{"from": 1, "to": 2, "r": 0, "x": 0.05, "tap": 1.05, "phase": 2.5}]
//	}
//
// Branch endpoints accept either a bus name (string) or a 1-based position
// into the bus list (number). Omitted optional fields take their model
// defaults: status true, tap 1.0, qmin/qmax absent.

package reader

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/voltlab/powerflow/grid"
)

// JSON reads a power-flow case from the structured JSON schema above.
type JSON struct {
	name string
	src  io.Reader
}

// NewJSON wraps a JSON document. name becomes the case name.
func NewJSON(name string, src io.Reader) *JSON {
	return &JSON{name: name, src: src}
}

// jsonCase mirrors the document root.
type jsonCase struct {
	BaseMVA      float64         `json:"base_mva"`
	Buses        []jsonBus       `json:"buses"`
	Lines        []jsonLine      `json:"lines"`
	Transformers []jsonTransform `json:"transformers"`
}

type jsonBus struct {
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	V          float64         `json:"v"`
	Theta      float64         `json:"theta"`
	Generators []jsonGenerator `json:"generators"`
	Loads      []jsonLoad      `json:"loads"`
	Shunts     []jsonShunt     `json:"shunts"`
}

type jsonGenerator struct {
	ID   int      `json:"id"`
	P    float64  `json:"p"`
	Q    float64  `json:"q"`
	QMin *float64 `json:"qmin"`
	QMax *float64 `json:"qmax"`
}

type jsonLoad struct {
	P float64 `json:"p"`
	Q float64 `json:"q"`
}

type jsonShunt struct {
	B      float64 `json:"b"`
	Status *bool   `json:"status"`
}

type jsonLine struct {
	From   busRef  `json:"from"`
	To     busRef  `json:"to"`
	R      float64 `json:"r"`
	X      float64 `json:"x"`
	B      float64 `json:"b"`
	Status *bool   `json:"status"`
}

type jsonTransform struct {
	From   busRef   `json:"from"`
	To     busRef   `json:"to"`
	R      float64  `json:"r"`
	X      float64  `json:"x"`
	B      float64  `json:"b"`
	Tap    *float64 `json:"tap"`
	Phase  float64  `json:"phase"`
	Status *bool    `json:"status"`
}

// busRef is a branch endpoint: a bus name or a 1-based bus position.
type busRef struct {
	name     string
	position int // 1-based; 0 means "name is set"
}

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (r *busRef) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		r.name = name
		return nil
	}
	var pos int
	if err := json.Unmarshal(data, &pos); err == nil {
		r.position = pos
		return nil
	}
	return fmt.Errorf("%w: branch endpoint %s", ErrBadDocument, data)
}

// resolve maps the reference onto a bus name given the ordered name list.
func (r *busRef) resolve(names []string) (string, error) {
	if r.position == 0 {
		return r.name, nil
	}
	if r.position < 1 || r.position > len(names) {
		return "", fmt.Errorf("%w: bus position %d", ErrUnknownBusRef, r.position)
	}
	return names[r.position-1], nil
}

// Read parses and maps the document onto model objects.
func (j *JSON) Read() (*Case, error) {
	var doc jsonCase
	dec := json.NewDecoder(j.src)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDocument, err)
	}
	if doc.BaseMVA <= 0 || len(doc.Buses) == 0 {
		return nil, fmt.Errorf("%w: base_mva and buses are required", ErrBadDocument)
	}

	c := &Case{Name: j.name, BaseMVA: doc.BaseMVA}
	names := make([]string, len(doc.Buses))

	for i, jb := range doc.Buses {
		name := jb.Name
		if name == "" {
			name = fmt.Sprintf("BUS-%d", i+1)
		}
		names[i] = name

		kind, err := grid.ParseBusKind(jb.Type)
		if err != nil {
			return nil, fmt.Errorf("bus %q type %q: %w", name, jb.Type, err)
		}
		bus := &grid.Bus{
			Number: i + 1,
			Name:   name,
			Kind:   kind,
			V:      jb.V,
			Theta:  jb.Theta,
			Shunts: []grid.Shunt{},
		}
		for _, g := range jb.Generators {
			bus.Generators = append(bus.Generators, grid.Generator{
				ID: g.ID, Bus: name, P: g.P, Q: g.Q,
				QMin: floatOrNaN(g.QMin), QMax: floatOrNaN(g.QMax),
			})
		}
		for _, l := range jb.Loads {
			bus.Loads = append(bus.Loads, grid.Load{Bus: name, P: l.P, Q: l.Q})
		}
		for _, s := range jb.Shunts {
			bus.Shunts = append(bus.Shunts, grid.Shunt{
				Bus: name, B: s.B, InService: boolOrTrue(s.Status),
			})
		}
		c.Buses = append(c.Buses, bus)
	}

	for _, jl := range doc.Lines {
		from, err := jl.From.resolve(names)
		if err != nil {
			return nil, err
		}
		to, err := jl.To.resolve(names)
		if err != nil {
			return nil, err
		}
		c.Lines = append(c.Lines, grid.Line{
			From: from, To: to,
			R: jl.R, X: jl.X, B: jl.B,
			InService: boolOrTrue(jl.Status),
		})
	}

	for _, jt := range doc.Transformers {
		from, err := jt.From.resolve(names)
		if err != nil {
			return nil, err
		}
		to, err := jt.To.resolve(names)
		if err != nil {
			return nil, err
		}
		tap := 1.0
		if jt.Tap != nil {
			tap = *jt.Tap
		}
		c.Transformers = append(c.Transformers, grid.Transformer{
			From: from, To: to,
			Name: fmt.Sprintf("TRAFO-%s-%s", from, to),
			R:    jt.R, X: jt.X, B: jt.B,
			Tap: tap, Phase: jt.Phase,
			InService: boolOrTrue(jt.Status),
		})
	}

	return c, nil
}

// floatOrNaN dereferences an optional float, NaN when absent.
func floatOrNaN(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

// boolOrTrue dereferences an optional flag, true when absent.
func boolOrTrue(p *bool) bool {
	if p == nil {
		return true
	}
	return *p
}
