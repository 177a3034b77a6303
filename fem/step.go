// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/prklVIP/gofem2/ele"
	"gonum.org/v1/gonum/floats"
)

// Policy defines how prescribed values and loads are interpolated within a step
type Policy int

const (
	// Ramp interpolates prescribed values and loads with fac = clamp(t/period, 0, 1)
	Ramp Policy = iota

	// Snap applies prescribed values at their target from the first increment; loads are ramped
	Snap
)

// String returns the name of the policy
func (o Policy) String() string {
	if o == Snap {
		return "snap"
	}
	return "ramp"
}

// ParsePolicy converts "ramp" or "snap" (empty means ramp)
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "ramp":
		return Ramp, nil
	case "snap":
		return Snap, nil
	}
	return Ramp, inputErr("interpolation policy %q is invalid. options are \"ramp\" and \"snap\"", s)
}

// Step holds the conditions of one analysis step and its frames
//  All tables are keyed by internal indices (equations, elements, faces with internal element index)
type Step struct {
	Name       string  // name of step
	Number     int     // index in Model.Steps
	Period     float64 // duration
	Increments int     // number of equal increments
	Previous   *Step   // previous step; nil for the initial step

	// conditions
	Dofx   map[int]float64    // equation => prescribed value (Dirichlet)
	Cloadx map[int]float64    // equation => concentrated load (Neumann)
	Dloadx map[int][]float64  // element => distributed (body) load
	Sloadx map[Face][]float64 // face => surface traction
	Sfluxx map[Face]float64   // face => normal heat flux
	Sfilmx map[Face]ele.Film  // face => film condition
	Hsrcx  map[int]float64    // element => heat source
	Temp   []float64          // [nnode] predefined temperature field; nil if not given

	// results
	Svars    *StateVars // state variables of elements
	Frames   []*Frame   // frames; Frames[0] holds the state at the beginning of the step
	Dofs     []float64  // [neq] degrees-of-freedom at the end of the last frame
	Warnings []string   // warnings issued while declaring conditions
	Ran      bool       // step has been run

	// internal
	model *Model
}

// newStep allocates a step and its initial (converged) frame
func newStep(m *Model, name string, number int, period float64, increments int, prev *Step) (o *Step, err error) {
	o = &Step{
		Name:       name,
		Number:     number,
		Period:     period,
		Increments: increments,
		Previous:   prev,
		Dofx:       make(map[int]float64),
		Cloadx:     make(map[int]float64),
		Dloadx:     make(map[int][]float64),
		Sloadx:     make(map[Face][]float64),
		Sfluxx:     make(map[Face]float64),
		Sfilmx:     make(map[Face]ele.Film),
		Hsrcx:      make(map[int]float64),
		Svars:      NewStateVars(m.Elements),
		Dofs:       make([]float64, m.Dofs.Size()),
		model:      m,
	}
	var f0 *Frame
	if prev == nil {
		reg, err := m.newRegistry()
		if err != nil {
			return nil, err
		}
		f0 = newFrame(0, 0, 0, reg)
	} else {
		last := prev.LastFrame()
		f0 = newFrame(0, last.Value, 0, last.Fields)
	}
	f0.Converged = true
	o.Frames = []*Frame{f0}
	return
}

// LastFrame returns the last frame
func (o *Step) LastFrame() *Frame { return o.Frames[len(o.Frames)-1] }

// Time returns the time at the end of the last frame
func (o *Step) Time() float64 { return o.LastFrame().Value }

// Frame appends a new (unconverged) frame holding a deep copy of the last frame's field outputs
func (o *Step) Frame(dtime float64) *Frame {
	last := o.LastFrame()
	f := newFrame(len(o.Frames), last.Value, dtime, last.Fields)
	o.Frames = append(o.Frames, f)
	return f
}

// CopyFrom copies the conditions, degrees-of-freedom, state variables and terminal field outputs
// of another step into this one
func (o *Step) CopyFrom(prev *Step) (err error) {
	if prev == nil {
		return inputErr("step %q: cannot copy from nil step", o.Name)
	}
	if o.Ran || len(o.Frames) > 1 {
		return inputErr("step %q has frames already and cannot be overwritten", o.Name)
	}
	if err = o.seed(prev); err != nil {
		return
	}
	o.Dofx = copyScalars(prev.Dofx)
	o.Cloadx = copyScalars(prev.Cloadx)
	o.Hsrcx = copyScalars(prev.Hsrcx)
	o.Dloadx = make(map[int][]float64, len(prev.Dloadx))
	for k, v := range prev.Dloadx {
		o.Dloadx[k] = append([]float64{}, v...)
	}
	o.Sloadx = make(map[Face][]float64, len(prev.Sloadx))
	for k, v := range prev.Sloadx {
		o.Sloadx[k] = append([]float64{}, v...)
	}
	o.Sfluxx = make(map[Face]float64, len(prev.Sfluxx))
	for k, v := range prev.Sfluxx {
		o.Sfluxx[k] = v
	}
	o.Sfilmx = make(map[Face]ele.Film, len(prev.Sfilmx))
	for k, v := range prev.Sfilmx {
		o.Sfilmx[k] = v
	}
	o.Temp = nil
	if prev.Temp != nil {
		o.Temp = append([]float64{}, prev.Temp...)
	}
	return
}

// seed sets the initial frame, degrees-of-freedom and state variables from the end of prev
func (o *Step) seed(prev *Step) (err error) {
	if len(prev.Dofs) != len(o.Dofs) {
		return chk.Err("step %q: number of equations %d and %d differ", o.Name, len(prev.Dofs), len(o.Dofs))
	}
	if err = o.Svars.CopyFrom(prev.Svars); err != nil {
		return
	}
	last := prev.LastFrame()
	o.Frames[0] = newFrame(0, last.Value, 0, last.Fields)
	o.Frames[0].Converged = true
	copy(o.Dofs, prev.Dofs)
	return
}

// boundary conditions //////////////////////////////////////////////////////////////////////////

// dofKind distinguishes Dirichlet from Neumann conditions
type dofKind int

const (
	dirichlet dofKind = iota
	neumann
)

func (o dofKind) String() string {
	if o == dirichlet {
		return "prescribed value"
	}
	return "concentrated load"
}

// compSel selects the components of a node
type compSel int

const (
	selGiven  compSel = iota // components given explicitly
	selActive                // all active components
	selPin                   // active displacement components
)

// PrescribedBC prescribes the values of components at nodes
func (o *Step) PrescribedBC(r Region, comps ele.Comp, amp Amplitude) error {
	return o.assignDof(dirichlet, r, comps, selGiven, amp)
}

// FixNodes sets all active components of nodes to zero. Nodes without active components are
// an input error
func (o *Step) FixNodes(r Region) error {
	return o.assignDof(dirichlet, r, ele.None, selActive, Const(0))
}

// PinNodes sets the active displacement components of nodes to zero. Nodes without active
// displacements are an input error
func (o *Step) PinNodes(r Region) error {
	return o.assignDof(dirichlet, r, ele.None, selPin, Const(0))
}

// ConcentratedLoad assigns loads to components at nodes
func (o *Step) ConcentratedLoad(r Region, comps ele.Comp, amp Amplitude) error {
	return o.assignDof(neumann, r, comps, selGiven, amp)
}

// RemoveBC removes prescribed values. Missing entries are skipped with a warning
func (o *Step) RemoveBC(r Region, comps ele.Comp) error {
	return o.removeDof(dirichlet, r, comps)
}

// RemoveConcentratedLoad removes concentrated loads. Missing entries are skipped with a warning
func (o *Step) RemoveConcentratedLoad(r Region, comps ele.Comp) error {
	return o.removeDof(neumann, r, comps)
}

// nodeComps returns the components of node n selected by sel
func (o *Step) nodeComps(n int, comps ele.Comp, sel compSel) []ele.Comp {
	active := o.model.Dofs.Active[n]
	switch sel {
	case selActive:
		return active.Comps()
	case selPin:
		return (active & ele.Displacements).Comps()
	}
	return comps.Comps()
}

// assignDof validates all entries first and then applies them
func (o *Step) assignDof(kind dofKind, r Region, comps ele.Comp, sel compSel, amp Amplitude) (err error) {
	if o.Ran {
		return inputErr("step %q has been run already", o.Name)
	}
	if sel == selGiven && comps == ele.None {
		return inputErr("at least one component must be given")
	}
	m := o.model
	nodes, err := m.ResolveNodes(r)
	if err != nil {
		return
	}
	a, err := amp.resolve(m.Coord, nodes)
	if err != nil {
		return
	}
	mine, other := o.Dofx, o.Cloadx
	if kind == neumann {
		mine, other = o.Cloadx, o.Dofx
	}
	type entry struct {
		eq  int
		val float64
	}
	var entries []entry
	for i, n := range nodes {
		cs := o.nodeComps(n, comps, sel)
		if len(cs) == 0 {
			return inputErr("node %d has no active components to be fixed", m.NodeLabels[n])
		}
		for _, c := range cs {
			I := m.Dofs.Eq(n, c)
			if I < 0 {
				return inputErr("component %v is not active at node %d", c, m.NodeLabels[n])
			}
			if _, ok := other[I]; ok {
				return inputErr("attempting to apply load and displacement on same dof: node %d, component %v", m.NodeLabels[n], c)
			}
			entries = append(entries, entry{I, a[i]})
		}
	}
	for _, e := range entries {
		mine[e.eq] = e.val
	}
	return
}

// removeDof removes entries of one kind
func (o *Step) removeDof(kind dofKind, r Region, comps ele.Comp) (err error) {
	if o.Ran {
		return inputErr("step %q has been run already", o.Name)
	}
	if comps == ele.None {
		return inputErr("at least one component must be given")
	}
	m := o.model
	nodes, err := m.ResolveNodes(r)
	if err != nil {
		return
	}
	table := o.Dofx
	if kind == neumann {
		table = o.Cloadx
	}
	for _, n := range nodes {
		for _, c := range comps.Comps() {
			I := m.Dofs.Eq(n, c)
			if I < 0 {
				o.warn("component %v is not active at node %d", c, m.NodeLabels[n])
				continue
			}
			if _, ok := table[I]; !ok {
				o.warn("node %d, component %v has no %v to remove", m.NodeLabels[n], c, kind)
				continue
			}
			delete(table, I)
		}
	}
	return
}

// warn records and shows a warning
func (o *Step) warn(msg string, prm ...interface{}) {
	w := io.Sf(msg, prm...)
	o.Warnings = append(o.Warnings, w)
	if o.model.ShowMsg {
		io.Pfyel("warning: step %q: %s\n", o.Name, w)
	}
}

// distributed and surface loads ////////////////////////////////////////////////////////////////

// DistributedLoad assigns a body load (force per unit volume) to elements
func (o *Step) DistributedLoad(r Region, vals []float64) (err error) {
	elems, err := o.resolveElems(r)
	if err != nil {
		return
	}
	if len(vals) != o.model.Ndim {
		return inputErr("distributed load requires %d components. %d given", o.model.Ndim, len(vals))
	}
	if err = checkFinite(vals...); err != nil {
		return
	}
	for _, e := range elems {
		o.Dloadx[e] = append([]float64{}, vals...)
	}
	return
}

// GravityLoad assigns a body load equal to rho*g to elements. The density is taken from the
// "rho" parameter of each element's material
func (o *Step) GravityLoad(r Region, g []float64) (err error) {
	elems, err := o.resolveElems(r)
	if err != nil {
		return
	}
	if len(g) != o.model.Ndim {
		return inputErr("gravity requires %d components. %d given", o.model.Ndim, len(g))
	}
	if err = checkFinite(g...); err != nil {
		return
	}
	loads := make(map[int][]float64)
	for _, e := range elems {
		mat := o.model.Elements[e].Material()
		if mat == nil {
			return inputErr("element %d has no material", o.model.ElemLabels[e])
		}
		rho, ok := mat.Property("rho")
		if !ok {
			return inputErr("gravity load: material %q of element %d has no density (rho)", mat.Name, o.model.ElemLabels[e])
		}
		loads[e] = floats.ScaleTo(make([]float64, len(g)), rho, g)
	}
	for e, b := range loads {
		o.Dloadx[e] = b
	}
	return
}

// SurfaceLoad assigns a traction vector to the faces of a surface
func (o *Step) SurfaceLoad(surface string, vals []float64) (err error) {
	faces, err := o.resolveSurface(surface)
	if err != nil {
		return
	}
	if len(vals) != o.model.Ndim {
		return inputErr("surface load requires %d components. %d given", o.model.Ndim, len(vals))
	}
	if err = checkFinite(vals...); err != nil {
		return
	}
	for _, f := range faces {
		o.Sloadx[f] = append([]float64{}, vals...)
	}
	return
}

// SurfaceLoadN assigns a traction q*n to the faces of a surface, where n is the outward unit
// normal of each face
func (o *Step) SurfaceLoadN(surface string, q float64) (err error) {
	faces, err := o.resolveSurface(surface)
	if err != nil {
		return
	}
	if err = checkFinite(q); err != nil {
		return
	}
	m := o.model
	loads := make(map[Face][]float64)
	for _, f := range faces {
		edge, err := faceEdge(m.Elements, f)
		if err != nil {
			return inputErr("surface %q: %v", surface, m.faceErr(f, err))
		}
		x := ele.BuildCoordsMatrix(m.Coord, m.Conn[f.Elem])
		n, _, err := ele.EdgeNormal(x, edge[0], edge[len(edge)-1])
		if err != nil {
			return inputErr("surface %q, element %d:\n%v", surface, m.ElemLabels[f.Elem], err)
		}
		floats.Scale(q, n)
		loads[f] = n
	}
	for f, t := range loads {
		o.Sloadx[f] = t
	}
	return
}

// Pressure assigns a pressure (positive when pushing into the element) to a surface
func (o *Step) Pressure(surface string, p float64) error {
	return o.SurfaceLoadN(surface, -p)
}

// heat transfer ////////////////////////////////////////////////////////////////////////////////

// SurfaceFlux assigns a normal heat flux (positive when entering the element) to a surface
func (o *Step) SurfaceFlux(surface string, qn float64) (err error) {
	faces, err := o.resolveSurface(surface)
	if err != nil {
		return
	}
	if err = checkFinite(qn); err != nil {
		return
	}
	for _, f := range faces {
		o.Sfluxx[f] = qn
	}
	return
}

// SurfaceFilm assigns a film condition (sink temperature and film coefficient) to a surface
func (o *Step) SurfaceFilm(surface string, tsink, h float64) (err error) {
	faces, err := o.resolveSurface(surface)
	if err != nil {
		return
	}
	if err = checkFinite(tsink, h); err != nil {
		return
	}
	if h < 0 {
		return inputErr("film coefficient must not be negative. %g is invalid", h)
	}
	for _, f := range faces {
		o.Sfilmx[f] = ele.Film{Tsink: tsink, H: h}
	}
	return
}

// HeatSource assigns a heat source (per unit volume) to elements. The amplitude is evaluated at
// the centroid of each element
func (o *Step) HeatSource(r Region, amp Amplitude) (err error) {
	elems, err := o.resolveElems(r)
	if err != nil {
		return
	}
	m := o.model
	centroids := make([][]float64, len(elems))
	idx := make([]int, len(elems))
	for i, e := range elems {
		centroids[i] = make([]float64, m.Ndim)
		for _, n := range m.Conn[e] {
			floats.Add(centroids[i], m.Coord[n])
		}
		floats.Scale(1.0/float64(len(m.Conn[e])), centroids[i])
		idx[i] = i
	}
	s, err := amp.resolve(centroids, idx)
	if err != nil {
		return
	}
	for i, e := range elems {
		o.Hsrcx[e] = s[i]
	}
	return
}

// Temperature sets the predefined temperature at nodes. Nodes outside the region keep their values;
// if neither this step nor its predecessor has a temperature field, they start at zero
func (o *Step) Temperature(r Region, amp Amplitude) (err error) {
	if o.Ran {
		return inputErr("step %q has been run already", o.Name)
	}
	m := o.model
	nodes, err := m.ResolveNodes(r)
	if err != nil {
		return
	}
	a, err := amp.resolve(m.Coord, nodes)
	if err != nil {
		return
	}
	if o.Temp == nil {
		o.Temp = make([]float64, len(m.Coord))
		if o.Previous != nil && o.Previous.Temp != nil {
			copy(o.Temp, o.Previous.Temp)
		}
	}
	for i, n := range nodes {
		o.Temp[n] = a[i]
	}
	return
}

// resolveElems resolves the elements of a region for a not-yet-run step
func (o *Step) resolveElems(r Region) (elems []int, err error) {
	if o.Ran {
		return nil, inputErr("step %q has been run already", o.Name)
	}
	return o.model.ResolveElems(r)
}

// resolveSurface returns the faces of a named surface for a not-yet-run step
func (o *Step) resolveSurface(name string) ([]Face, error) {
	if o.Ran {
		return nil, inputErr("step %q has been run already", o.Name)
	}
	faces, ok := o.model.Surfaces[name]
	if !ok {
		return nil, inputErr("surface %q does not exist", name)
	}
	if err := o.model.checkFaces(name, faces, o.model.Elements); err != nil {
		return nil, err
	}
	return faces, nil
}

// interpolation //////////////////////////////////////////////////////////////////////////////////

// fraction returns the interpolation factor at step time t
func (o *Step) fraction(t float64, prescribed bool) float64 {
	if o.Period <= 0 {
		return 1
	}
	if prescribed && o.model.Policy == Snap {
		return 1
	}
	return math.Max(0, math.Min(1, t/o.Period))
}

// DofVals returns the sorted prescribed equations and their values at step time t. The baseline
// is the previous step's value of the same equation (zero if absent)
func (o *Step) DofVals(t float64) (tags []int, vals []float64) {
	tags = sortedKeys(o.Dofx)
	x0 := make([]float64, len(tags))
	xf := make([]float64, len(tags))
	for i, I := range tags {
		if o.Previous != nil {
			x0[i] = o.Previous.Dofx[I]
		}
		xf[i] = o.Dofx[I]
	}
	vals = lerp(x0, xf, o.fraction(t, true))
	return
}

// Cload returns the vector of concentrated loads at step time t. Loads removed in this step
// decrease to zero
func (o *Step) Cload(t float64) []float64 {
	n := len(o.Dofs)
	q0 := make([]float64, n)
	qf := make([]float64, n)
	if o.Previous != nil {
		for I, v := range o.Previous.Cloadx {
			q0[I] = v
		}
	}
	for I, v := range o.Cloadx {
		qf[I] = v
	}
	return lerp(q0, qf, o.fraction(t, false))
}

// ElementLoads returns the interpolated loads of each element at step time t
func (o *Step) ElementLoads(t float64) (loads []*ele.Loads) {
	fac := o.fraction(t, false)
	prev := o.Previous
	if prev == nil {
		prev = &Step{}
	}
	loads = make([]*ele.Loads, len(o.model.Elements))
	for e := range loads {
		loads[e] = ele.NewLoads()
	}

	// body loads
	for _, e := range unionInt(o.Dloadx, prev.Dloadx) {
		b0, bf := prev.Dloadx[e], o.Dloadx[e]
		loads[e].Body = lerp(b0, bf, fac)
	}

	// tractions
	for f := range unionFace(o.Sloadx, prev.Sloadx) {
		t0, tf := prev.Sloadx[f], o.Sloadx[f]
		loads[f.Elem].Trac[f.Edge] = lerp(t0, tf, fac)
	}

	// fluxes
	for f := range unionFace(o.Sfluxx, prev.Sfluxx) {
		loads[f.Elem].Flux[f.Edge] = (1-fac)*prev.Sfluxx[f] + fac*o.Sfluxx[f]
	}

	// films
	for f := range unionFace(o.Sfilmx, prev.Sfilmx) {
		f0, ff := prev.Sfilmx[f], o.Sfilmx[f]
		loads[f.Elem].Film[f.Edge] = ele.Film{
			Tsink: (1-fac)*f0.Tsink + fac*ff.Tsink,
			H:     (1-fac)*f0.H + fac*ff.H,
		}
	}

	// sources
	for _, e := range unionInt(o.Hsrcx, prev.Hsrcx) {
		loads[e].Source = (1-fac)*prev.Hsrcx[e] + fac*o.Hsrcx[e]
	}
	return
}

// Temps returns the interpolated nodal temperatures at step time t or nil if no temperature
// field has been given
func (o *Step) Temps(t float64) []float64 {
	var t0 []float64
	if o.Previous != nil {
		t0 = o.Previous.Temp
	}
	if o.Temp == nil && t0 == nil {
		return nil
	}
	tf := o.Temp
	if tf == nil {
		tf = make([]float64, len(t0))
	}
	return lerp(t0, tf, o.fraction(t, false))
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////

// lerp returns (1-fac)*x0 + fac*xf. A nil x0 (or xf) is taken as zero
func lerp(x0, xf []float64, fac float64) (res []float64) {
	n := len(xf)
	if len(x0) > n {
		n = len(x0)
	}
	res = make([]float64, n)
	if len(x0) > 0 {
		floats.AddScaled(res, 1-fac, x0)
	}
	if len(xf) > 0 {
		floats.AddScaled(res, fac, xf)
	}
	return
}

func checkFinite(vals ...float64) error {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return inputErr("value %g is not finite", v)
		}
	}
	return nil
}

func copyScalars(m map[int]float64) (res map[int]float64) {
	res = make(map[int]float64, len(m))
	for k, v := range m {
		res[k] = v
	}
	return
}

func sortedKeys(m map[int]float64) (keys []int) {
	keys = make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return
}

// unionInt returns the sorted union of the keys of two element tables
func unionInt[V any](a, b map[int]V) (keys []int) {
	seen := make(map[int]bool)
	for _, m := range []map[int]V{a, b} {
		for k := range m {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Ints(keys)
	return
}

// unionFace returns the union of the keys of two face tables
func unionFace[V any](a, b map[Face]V) (keys map[Face]bool) {
	keys = make(map[Face]bool)
	for k := range a {
		keys[k] = true
	}
	for k := range b {
		keys[k] = true
	}
	return
}
