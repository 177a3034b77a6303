// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON or YAML file
package inp

import (
	"encoding/json"
	goio "io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gopkg.in/yaml.v3"
)

// Data holds global data for simulations
type Data struct {
	Desc     string `json:"desc" yaml:"desc"`         // description of simulation
	DirOut   string `json:"dirout" yaml:"dirout"`     // directory for output; e.g. /tmp/gofem2
	Encoder  string `json:"encoder" yaml:"encoder"`   // encoder name; "json" or "gob"
	Database bool   `json:"database" yaml:"database"` // also save results to an SQLite database
	Policy   string `json:"policy" yaml:"policy"`     // interpolation policy: "ramp" (default) or "snap"
}

// Where selects nodes or elements. Only one of the fields should be given
type Where struct {
	Nodes []int  `json:"nodes" yaml:"nodes"` // node labels
	Elems []int  `json:"elems" yaml:"elems"` // element labels
	Set   string `json:"set" yaml:"set"`     // named set, element block or symbolic region; e.g. ALL, ILO, JHI
}

// String returns a representation of this selection
func (o Where) String() string {
	switch {
	case len(o.Nodes) > 0:
		return io.Sf("nodes%v", o.Nodes)
	case len(o.Elems) > 0:
		return io.Sf("elements%v", o.Elems)
	}
	return io.Sf("%q", o.Set)
}

// Amp holds the amplitude of a condition. Func has precedence over Values, which has precedence
// over Value
type Amp struct {
	Value  float64   `json:"value" yaml:"value"`   // constant value
	Values []float64 `json:"values" yaml:"values"` // one value per selected node
	Func   string    `json:"func" yaml:"func"`     // name of function f(0, x) in the functions database
}

// NodeCond holds a condition applied to components of nodes
type NodeCond struct {
	Where `yaml:",inline"`
	Amp   `yaml:",inline"`
	Comps string `json:"comps" yaml:"comps"` // components; e.g. "x", "x|y", "tz", "t", "all"
}

// ElemCond holds a condition applied to elements
type ElemCond struct {
	Where `yaml:",inline"`
	Amp   `yaml:",inline"`
	Vals  []float64 `json:"vals" yaml:"vals"` // vector values; e.g. body force or gravity
}

// SurfCond holds a condition applied to the faces of a surface
type SurfCond struct {
	Surface string    `json:"surface" yaml:"surface"` // name of surface
	Vals    []float64 `json:"vals" yaml:"vals"`       // traction vector
	Value   float64   `json:"value" yaml:"value"`     // normal traction, pressure or flux
	Normal  bool      `json:"normal" yaml:"normal"`   // loads: apply Value along the outward normal
}

// FilmCond holds a film condition
type FilmCond struct {
	Surface string  `json:"surface" yaml:"surface"` // name of surface
	Tsink   float64 `json:"tsink" yaml:"tsink"`     // sink temperature
	H       float64 `json:"h" yaml:"h"`             // film coefficient
}

// Conditions holds boundary conditions and loads of a step
type Conditions struct {
	Fix          []Where    `json:"fix" yaml:"fix"`                   // fix all active components
	Pin          []Where    `json:"pin" yaml:"pin"`                   // fix displacements
	Bcs          []NodeCond `json:"bcs" yaml:"bcs"`                   // prescribed values
	Cloads       []NodeCond `json:"cloads" yaml:"cloads"`             // concentrated loads
	RemoveBcs    []NodeCond `json:"removebcs" yaml:"removebcs"`       // removal of prescribed values
	RemoveCloads []NodeCond `json:"removecloads" yaml:"removecloads"` // removal of concentrated loads
	Temps        []NodeCond `json:"temps" yaml:"temps"`               // predefined temperatures
	Gravity      []ElemCond `json:"gravity" yaml:"gravity"`           // gravity loads (rho*g)
	Dloads       []ElemCond `json:"dloads" yaml:"dloads"`             // distributed (body) loads
	Sources      []ElemCond `json:"sources" yaml:"sources"`           // heat sources
	Sloads       []SurfCond `json:"sloads" yaml:"sloads"`             // surface loads
	Pressures    []SurfCond `json:"pressures" yaml:"pressures"`       // pressures
	Fluxes       []SurfCond `json:"fluxes" yaml:"fluxes"`             // surface heat fluxes
	Films        []FilmCond `json:"films" yaml:"films"`               // surface films
}

// StepData holds the data of one analysis step
type StepData struct {
	Name       string  `json:"name" yaml:"name"`             // name of step
	Period     float64 `json:"period" yaml:"period"`         // duration; default = 1
	Increments int     `json:"increments" yaml:"increments"` // number of increments; default = 1

	Conditions `yaml:",inline"`
}

// SetDefault sets default values
func (o *StepData) SetDefault() {
	o.Period = 1
	o.Increments = 1
}

// FaceData identifies an element edge
type FaceData struct {
	Elem int `json:"elem" yaml:"elem"` // element label
	Edge int `json:"edge" yaml:"edge"` // local edge index
}

// BlockData holds the definition of an element block
type BlockData struct {
	Where `yaml:",inline"`
	Name  string             `json:"name" yaml:"name"` // name of block
	Type  string             `json:"type" yaml:"type"` // element type; e.g. "link", "beam", "quad4", "heat-tri3"
	Mat   string             `json:"mat" yaml:"mat"`   // material name
	Fab   map[string]float64 `json:"fab" yaml:"fab"`   // fabrication properties; e.g. A, Izz, t
}

// MeshData holds nodes, elements and sets
type MeshData struct {
	Nodes    [][]float64           `json:"nodes" yaml:"nodes"`       // [nnode] {label, x, y[, z]}
	Elems    [][]int               `json:"elems" yaml:"elems"`       // [nelem] {label, node labels...}
	NodeSets map[string][]int      `json:"nodesets" yaml:"nodesets"` // name => node labels
	ElemSets map[string][]int      `json:"elemsets" yaml:"elemsets"` // name => element labels
	Surfaces map[string][]FaceData `json:"surfaces" yaml:"surfaces"` // name => faces
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data      Data        `json:"data" yaml:"data"`           // global simulation data
	Functions FuncsData   `json:"functions" yaml:"functions"` // functions database
	Materials MatsData    `json:"materials" yaml:"materials"` // materials
	Mesh      MeshData    `json:"mesh" yaml:"mesh"`           // nodes, elements and sets
	Blocks    []BlockData `json:"blocks" yaml:"blocks"`       // element blocks
	Initial   Conditions  `json:"initial" yaml:"initial"`     // conditions of the initial step
	Steps     []*StepData `json:"steps" yaml:"steps"`         // analysis steps

	// derived
	DirOut  string // directory to save results
	Key     string // simulation key; e.g. mysim01.sim => mysim01
	EncType string // encoder type
}

// ReadSim reads all simulation data from a .sim (JSON) or .yaml file
func ReadSim(simfilepath string) (o *Simulation, err error) {

	// read file
	b, err := os.ReadFile(os.ExpandEnv(simfilepath))
	if err != nil {
		return nil, chk.Err("ReadSim: cannot read simulation file %q:\n%v", simfilepath, err)
	}

	// decode
	ext := strings.ToLower(filepath.Ext(simfilepath))
	o, err = DecodeSim(b, ext == ".yaml" || ext == ".yml")
	if err != nil {
		return nil, chk.Err("ReadSim: cannot decode simulation file %q:\n%v", simfilepath, err)
	}

	// filename key and output directory
	o.Key = io.FnKey(filepath.Base(simfilepath))
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = "/tmp/gofem2/" + o.Key
	}
	return
}

// DecodeSim decodes simulation data and sets default values
func DecodeSim(b []byte, isYaml bool) (o *Simulation, err error) {
	o = new(Simulation)
	if isYaml {
		err = yaml.Unmarshal(b, o)
	} else {
		err = json.Unmarshal(b, o)
	}
	if err != nil {
		return nil, err
	}
	if err = o.PostProcess(); err != nil {
		return nil, err
	}
	return
}

// PostProcess sets default values and checks the data just read
func (o *Simulation) PostProcess() (err error) {

	// encoder type
	o.EncType = o.Data.Encoder
	if o.EncType == "" {
		o.EncType = "json"
	}
	if o.EncType != "gob" && o.EncType != "json" {
		return chk.Err("encoder %q is invalid; options are \"json\" and \"gob\"", o.EncType)
	}

	// mesh
	if len(o.Mesh.Nodes) == 0 || len(o.Mesh.Elems) == 0 {
		return chk.Err("mesh must have at least one node and one element")
	}

	// steps
	for i, stp := range o.Steps {
		if stp == nil {
			return chk.Err("step %d is empty", i)
		}
		if stp.Period == 0 {
			stp.Period = 1
		}
		if stp.Increments == 0 {
			stp.Increments = 1
		}
		if stp.Period < 0 || stp.Increments < 0 {
			return chk.Err("step %d: period (%g) and increments (%d) must be positive", i, stp.Period, stp.Increments)
		}
		if stp.Name == "" {
			stp.Name = io.Sf("Step-%d", i+1)
		}
	}

	// functions
	for _, f := range o.Functions {
		if _, err = o.Functions.Get(f.Name); err != nil {
			return
		}
	}

	// materials
	names := make(map[string]bool)
	for _, m := range o.Materials {
		if names[m.Name] {
			return chk.Err("material %q is repeated", m.Name)
		}
		names[m.Name] = true
	}
	for _, b := range o.Blocks {
		if !names[b.Mat] {
			return chk.Err("block %q: cannot find material named %q", b.Name, b.Mat)
		}
	}
	return
}

// GetInfo writes formatted information
func (o *Simulation) GetInfo(w goio.Writer) (err error) {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return
}
