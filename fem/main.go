// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the incremental finite element analysis driver
package fem

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/prklVIP/gofem2/ele"
	"github.com/prklVIP/gofem2/inp"
	"github.com/prklVIP/gofem2/out"
)

// Main holds all data for a simulation using the finite element method
type Main struct {
	Sim     *inp.Simulation // simulation data
	Model   *Model          // model with steps
	ShowMsg bool            // show messages
}

// NewMain returns a new Main structure
//  Input:
//   simfilepath -- simulation (.sim or .yaml) filename including full path
//   verbose     -- show messages
func NewMain(simfilepath string, verbose bool) (o *Main, err error) {
	sim, err := inp.ReadSim(simfilepath)
	if err != nil {
		return
	}
	if verbose {
		io.Pf("> Simulation file read\n")
	}
	return NewMainFromSim(sim, verbose)
}

// NewMainFromSim returns a new Main structure with the model built from simulation data
func NewMainFromSim(sim *inp.Simulation, verbose bool) (o *Main, err error) {
	o = &Main{Sim: sim, ShowMsg: verbose}
	o.Model, err = BuildModel(sim, verbose)
	if err != nil {
		return nil, err
	}
	return
}

// Run runs all steps and saves the results
func (o *Main) Run() (err error) {

	// exit commands
	cputime := time.Now()
	defer func() { err = o.onexit(cputime, err) }()

	// message
	if o.ShowMsg {
		io.Pf("> Solving steps\n")
	}

	// solve
	if err = o.Model.Solve(); err != nil {
		return
	}

	// save results
	recs := o.Model.Results()
	fnpath := filepath.Join(o.Sim.DirOut, o.Sim.Key+"."+o.Sim.EncType)
	if err = out.Save(fnpath, recs, o.Sim.EncType); err != nil {
		return
	}
	if o.ShowMsg {
		io.Pf("> Results saved to %s\n", fnpath)
	}
	if o.Sim.Data.Database {
		dbpath := filepath.Join(o.Sim.DirOut, o.Sim.Key+".db")
		if e := os.Remove(dbpath); e != nil && !os.IsNotExist(e) {
			return chk.Err("cannot remove previous database %q:\n%v", dbpath, e)
		}
		var db *out.DB
		db, err = out.OpenDB(dbpath)
		if err != nil {
			return
		}
		defer db.Close()
		if err = db.SaveFrames(context.Background(), recs); err != nil {
			return
		}
		if o.ShowMsg {
			io.Pf("> Results saved to %s\n", dbpath)
		}
	}
	return
}

// onexit prints final message with cpu time
func (o *Main) onexit(cputime time.Time, prevErr error) error {
	if o.ShowMsg {
		if prevErr == nil {
			io.PfGreen("> Success\n")
			io.Pf("> CPU time = %v\n", time.Since(cputime))
		} else {
			io.PfRed("> Failed\n")
		}
	}
	return prevErr
}

// BuildModel builds a model from simulation data: mesh, sets, materials, element blocks and the
// conditions of the initial step and all analysis steps
func BuildModel(sim *inp.Simulation, verbose bool) (m *Model, err error) {
	m = NewModel()
	m.ShowMsg = verbose
	if m.Policy, err = ParsePolicy(sim.Data.Policy); err != nil {
		return nil, err
	}

	// mesh
	if err = m.Mesh(sim.Mesh.Nodes, sim.Mesh.Elems); err != nil {
		return nil, err
	}
	for _, name := range sortedNames(sim.Mesh.NodeSets) {
		if err = m.NodeSet(name, Nodes(sim.Mesh.NodeSets[name]...)); err != nil {
			return nil, err
		}
	}
	for _, name := range sortedNames(sim.Mesh.ElemSets) {
		if err = m.ElementSet(name, Elems(sim.Mesh.ElemSets[name]...)); err != nil {
			return nil, err
		}
	}
	for _, name := range sortedNames(sim.Mesh.Surfaces) {
		var faces []Face
		for _, f := range sim.Mesh.Surfaces[name] {
			faces = append(faces, Face{f.Elem, f.Edge})
		}
		if err = m.Surface(name, faces...); err != nil {
			return nil, err
		}
	}

	// materials
	mats, err := sim.Materials.Models()
	if err != nil {
		return nil, err
	}
	for _, mat := range mats {
		if err = m.AddMaterial(mat); err != nil {
			return nil, err
		}
	}

	// element blocks
	for _, b := range sim.Blocks {
		r, err := toRegion(b.Where)
		if err != nil {
			return nil, err
		}
		if err = m.ElementBlock(b.Name, r); err != nil {
			return nil, err
		}
		if err = m.AssignProperties(b.Name, b.Type, b.Mat, ele.Fab(b.Fab)); err != nil {
			return nil, err
		}
	}
	if err = m.Setup(); err != nil {
		return nil, err
	}

	// conditions
	if err = applyConditions(m.Steps[0], sim, &sim.Initial); err != nil {
		return nil, chk.Err("initial step:\n%v", err)
	}
	for _, s := range sim.Steps {
		stp, err := m.StaticStep(s.Name, s.Period, s.Increments)
		if err != nil {
			return nil, err
		}
		if err = applyConditions(stp, sim, &s.Conditions); err != nil {
			return nil, chk.Err("step %q:\n%v", s.Name, err)
		}
	}
	if verbose {
		io.Pf("> Model built with %d steps\n", len(m.Steps)-1)
	}
	return
}

// applyConditions declares the conditions of a step. Removals are carried out first
func applyConditions(stp *Step, sim *inp.Simulation, c *inp.Conditions) (err error) {
	type nodeFcn func(r Region, comps ele.Comp, amp Amplitude) error
	apply := func(conds []inp.NodeCond, compsRequired bool, fcn nodeFcn) error {
		for _, cond := range conds {
			r, err := toRegion(cond.Where)
			if err != nil {
				return err
			}
			comps := ele.None
			if compsRequired {
				if comps, err = ele.ParseComp(cond.Comps); err != nil {
					return inputErr("%v", err)
				}
			}
			amp, err := toAmplitude(sim, cond.Amp)
			if err != nil {
				return err
			}
			if err = fcn(r, comps, amp); err != nil {
				return err
			}
		}
		return nil
	}
	remove := func(fcn func(r Region, comps ele.Comp) error) nodeFcn {
		return func(r Region, comps ele.Comp, _ Amplitude) error { return fcn(r, comps) }
	}

	// removals
	if err = apply(c.RemoveBcs, true, remove(stp.RemoveBC)); err != nil {
		return
	}
	if err = apply(c.RemoveCloads, true, remove(stp.RemoveConcentratedLoad)); err != nil {
		return
	}

	// prescribed values and concentrated loads
	for _, w := range c.Fix {
		r, err := toRegion(w)
		if err != nil {
			return err
		}
		if err = stp.FixNodes(r); err != nil {
			return err
		}
	}
	for _, w := range c.Pin {
		r, err := toRegion(w)
		if err != nil {
			return err
		}
		if err = stp.PinNodes(r); err != nil {
			return err
		}
	}
	if err = apply(c.Bcs, true, stp.PrescribedBC); err != nil {
		return
	}
	if err = apply(c.Cloads, true, stp.ConcentratedLoad); err != nil {
		return
	}
	temperature := func(r Region, _ ele.Comp, amp Amplitude) error { return stp.Temperature(r, amp) }
	if err = apply(c.Temps, false, temperature); err != nil {
		return
	}

	// element loads
	for _, cond := range c.Gravity {
		r, err := toRegion(cond.Where)
		if err != nil {
			return err
		}
		if err = stp.GravityLoad(r, cond.Vals); err != nil {
			return err
		}
	}
	for _, cond := range c.Dloads {
		r, err := toRegion(cond.Where)
		if err != nil {
			return err
		}
		if err = stp.DistributedLoad(r, cond.Vals); err != nil {
			return err
		}
	}
	for _, cond := range c.Sources {
		r, err := toRegion(cond.Where)
		if err != nil {
			return err
		}
		amp, err := toAmplitude(sim, cond.Amp)
		if err != nil {
			return err
		}
		if err = stp.HeatSource(r, amp); err != nil {
			return err
		}
	}

	// surface loads
	for _, cond := range c.Sloads {
		if cond.Normal {
			err = stp.SurfaceLoadN(cond.Surface, cond.Value)
		} else {
			err = stp.SurfaceLoad(cond.Surface, cond.Vals)
		}
		if err != nil {
			return
		}
	}
	for _, cond := range c.Pressures {
		if err = stp.Pressure(cond.Surface, cond.Value); err != nil {
			return
		}
	}
	for _, cond := range c.Fluxes {
		if err = stp.SurfaceFlux(cond.Surface, cond.Value); err != nil {
			return
		}
	}
	for _, cond := range c.Films {
		if err = stp.SurfaceFilm(cond.Surface, cond.Tsink, cond.H); err != nil {
			return
		}
	}
	return
}

// toRegion converts input selection into a region
func toRegion(w inp.Where) (Region, error) {
	switch {
	case len(w.Nodes) > 0:
		return Nodes(w.Nodes...), nil
	case len(w.Elems) > 0:
		return Elems(w.Elems...), nil
	case w.Set != "":
		return ParseRegion(w.Set), nil
	}
	return Region{}, inputErr("selection of nodes or elements is empty")
}

// toAmplitude converts input amplitude data
func toAmplitude(sim *inp.Simulation, a inp.Amp) (Amplitude, error) {
	switch {
	case a.Func != "":
		f, err := sim.Functions.Get(a.Func)
		if err != nil {
			return Amplitude{}, inputErr("%v", err)
		}
		return FromDbf(f), nil
	case len(a.Values) > 0:
		return Values(a.Values...), nil
	}
	return Const(a.Value), nil
}

// sortedNames returns the sorted keys of a map
func sortedNames[V any](m map[string]V) (names []string) {
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}
