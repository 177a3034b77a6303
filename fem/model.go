// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/prklVIP/gofem2/ele"
	"github.com/prklVIP/gofem2/mdl"
	"github.com/prklVIP/gofem2/out"
)

// Block holds a group of elements sharing the same type, material and fabrication
type Block struct {
	Name  string        // name of block
	Elems []int         // internal indices of elements
	Type  string        // element type; e.g. "quad4". empty until properties are assigned
	Mat   *mdl.Material // material
	Fab   ele.Fab       // fabrication properties
}

// Face identifies an edge (surface) of an element
//  In Model.Surface, Elem is the element label; in the tables of steps, Elem is the internal index
type Face struct {
	Elem int // element
	Edge int // local index of edge
}

// Model holds the mesh, the elements and the steps of an analysis
type Model struct {

	// mesh
	Ndim       int         // space dimension
	Coord      [][]float64 // [nnode][ndim] coordinates of nodes
	NodeLabels []int       // [nnode] external labels of nodes
	ElemLabels []int       // [nelem] external labels of elements
	Conn       [][]int     // [nelem] internal indices of the nodes of each element

	// properties
	Elements  []ele.Element            // [nelem] elements in model order; available after Setup
	Blocks    []*Block                 // element blocks in definition order
	Materials map[string]*mdl.Material // materials

	// sets
	NodeSets map[string][]int  // named sets of nodes (internal indices)
	ElemSets map[string][]int  // named sets of elements (internal indices)
	Surfaces map[string][]Face // named surfaces (internal element indices)

	// analysis
	Dofs    *DofMap // degrees-of-freedom; available after Setup
	Steps   []*Step // steps; Steps[0] is the initial step
	Policy  Policy  // interpolation policy of conditions within steps
	ShowMsg bool    // show messages

	// internal
	node2idx map[int]int // maps node label to internal index
	elem2idx map[int]int // maps element label to internal index
}

// NewModel returns a new empty model
func NewModel() (o *Model) {
	o = new(Model)
	o.Materials = make(map[string]*mdl.Material)
	o.NodeSets = make(map[string][]int)
	o.ElemSets = make(map[string][]int)
	o.Surfaces = make(map[string][]Face)
	o.node2idx = make(map[int]int)
	o.elem2idx = make(map[int]int)
	return
}

// Mesh defines nodes and elements
//  nodtab -- [nnode] rows with {label, x, y[, z]}
//  eletab -- [nelem] rows with {label, node0, node1, ...} using node labels
func (o *Model) Mesh(nodtab [][]float64, eletab [][]int) (err error) {
	if o.Coord != nil {
		return inputErr("mesh is already defined")
	}
	if len(nodtab) == 0 || len(eletab) == 0 {
		return inputErr("mesh requires at least one node and one element")
	}
	o.Ndim = len(nodtab[0]) - 1
	if o.Ndim < 1 || o.Ndim > 3 {
		return inputErr("node table must have 2, 3 or 4 columns. %d is invalid", len(nodtab[0]))
	}
	for i, row := range nodtab {
		if len(row) != o.Ndim+1 {
			return inputErr("row %d of node table has %d columns; %d are required", i, len(row), o.Ndim+1)
		}
		label := int(row[0])
		if float64(label) != row[0] {
			return inputErr("node label %g is not an integer", row[0])
		}
		if _, ok := o.node2idx[label]; ok {
			return inputErr("node label %d is repeated", label)
		}
		o.node2idx[label] = i
		o.NodeLabels = append(o.NodeLabels, label)
		o.Coord = append(o.Coord, append([]float64{}, row[1:]...))
	}
	for i, row := range eletab {
		if len(row) < 3 {
			return inputErr("row %d of element table must have a label and at least two nodes", i)
		}
		label := row[0]
		if _, ok := o.elem2idx[label]; ok {
			return inputErr("element label %d is repeated", label)
		}
		conn := make([]int, len(row)-1)
		for j, l := range row[1:] {
			n, ok := o.node2idx[l]
			if !ok {
				return inputErr("element %d: node %d does not exist", label, l)
			}
			conn[j] = n
		}
		o.elem2idx[label] = i
		o.ElemLabels = append(o.ElemLabels, label)
		o.Conn = append(o.Conn, conn)
	}
	if o.ShowMsg {
		io.Pf("> Mesh with %d nodes and %d elements defined\n", len(o.Coord), len(o.Conn))
	}
	return
}

// NodeIndex returns the internal index of a node or -1
func (o *Model) NodeIndex(label int) int {
	if n, ok := o.node2idx[label]; ok {
		return n
	}
	return -1
}

// ElemIndex returns the internal index of an element or -1
func (o *Model) ElemIndex(label int) int {
	if e, ok := o.elem2idx[label]; ok {
		return e
	}
	return -1
}

// AddMaterial adds a material
func (o *Model) AddMaterial(mat *mdl.Material) error {
	if mat == nil {
		return inputErr("material must not be nil")
	}
	if _, ok := o.Materials[mat.Name]; ok {
		return inputErr("material %q exists already", mat.Name)
	}
	o.Materials[mat.Name] = mat
	return nil
}

// Block returns the element block with given name or nil
func (o *Model) Block(name string) *Block {
	for _, b := range o.Blocks {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// ElementBlock defines a group of elements. An element belongs to at most one block
func (o *Model) ElementBlock(name string, r Region) (err error) {
	if o.Elements != nil {
		return inputErr("element blocks must be defined before setup")
	}
	if name == "" {
		return inputErr("element block name must not be empty")
	}
	if o.Block(name) != nil {
		return inputErr("element block %q exists already", name)
	}
	elems, err := o.ResolveElems(r)
	if err != nil {
		return
	}
	if len(elems) == 0 {
		return inputErr("element block %q is empty", name)
	}
	for _, e := range elems {
		for _, b := range o.Blocks {
			for _, other := range b.Elems {
				if other == e {
					return inputErr("element %d is already in block %q", o.ElemLabels[e], b.Name)
				}
			}
		}
	}
	sort.Ints(elems)
	o.Blocks = append(o.Blocks, &Block{Name: name, Elems: elems})
	return
}

// AssignProperties sets the element type, material and fabrication properties of a block
func (o *Model) AssignProperties(block, etype, matname string, fab ele.Fab) (err error) {
	if o.Elements != nil {
		return inputErr("properties must be assigned before setup")
	}
	b := o.Block(block)
	if b == nil {
		return inputErr("element block %q does not exist", block)
	}
	mat, ok := o.Materials[matname]
	if !ok {
		return inputErr("material %q does not exist", matname)
	}
	b.Type, b.Mat, b.Fab = etype, mat, fab
	return
}

// NodeSet defines a named set of nodes
func (o *Model) NodeSet(name string, r Region) (err error) {
	if _, ok := o.NodeSets[name]; ok {
		return inputErr("node set %q exists already", name)
	}
	nodes, err := o.ResolveNodes(r)
	if err != nil {
		return
	}
	o.NodeSets[name] = nodes
	return
}

// ElementSet defines a named set of elements
func (o *Model) ElementSet(name string, r Region) (err error) {
	if _, ok := o.ElemSets[name]; ok {
		return inputErr("element set %q exists already", name)
	}
	elems, err := o.ResolveElems(r)
	if err != nil {
		return
	}
	o.ElemSets[name] = elems
	return
}

// Surface defines a named surface with element labels and local edge indices
func (o *Model) Surface(name string, faces ...Face) (err error) {
	if _, ok := o.Surfaces[name]; ok {
		return inputErr("surface %q exists already", name)
	}
	if len(faces) == 0 {
		return inputErr("surface %q is empty", name)
	}
	res := make([]Face, len(faces))
	for i, f := range faces {
		e, ok := o.elem2idx[f.Elem]
		if !ok {
			return inputErr("surface %q: element %d does not exist", name, f.Elem)
		}
		if f.Edge < 0 {
			return inputErr("surface %q: edge %d of element %d is invalid", name, f.Edge, f.Elem)
		}
		res[i] = Face{e, f.Edge}
	}
	if o.Elements != nil {
		if err = o.checkFaces(name, res, o.Elements); err != nil {
			return
		}
	}
	o.Surfaces[name] = res
	return
}

// checkFaces checks that the faces of a surface refer to existing edges of elements
func (o *Model) checkFaces(name string, faces []Face, elems []ele.Element) error {
	for _, f := range faces {
		if _, err := faceEdge(elems, f); err != nil {
			return inputErr("surface %q: %v", name, o.faceErr(f, err))
		}
	}
	return nil
}

// faceErr formats a face error with the element label
func (o *Model) faceErr(f Face, err error) string {
	return io.Sf("element %d: %v", o.ElemLabels[f.Elem], err)
}

// faceEdge returns the local nodes of the edge of a face
func faceEdge(elems []ele.Element, f Face) ([]int, error) {
	if f.Elem < 0 || f.Elem >= len(elems) {
		return nil, chk.Err("element index %d is out of range", f.Elem)
	}
	w, ok := elems[f.Elem].(ele.WithEdges)
	if !ok {
		return nil, chk.Err("element has no edges")
	}
	edges := w.Edges()
	if f.Edge < 0 || f.Edge >= len(edges) {
		return nil, chk.Err("edge %d is invalid; the element has %d edges", f.Edge, len(edges))
	}
	return edges[f.Edge], nil
}

// Setup allocates elements, numbers degrees-of-freedom and creates the initial step
func (o *Model) Setup() (err error) {
	if o.Elements != nil {
		return
	}
	if o.Coord == nil {
		return inputErr("mesh must be defined before setup")
	}

	// elements
	elems := make([]ele.Element, len(o.Conn))
	for _, b := range o.Blocks {
		if b.Type == "" {
			return inputErr("properties of element block %q have not been assigned", b.Name)
		}
		for _, e := range b.Elems {
			x := ele.BuildCoordsMatrix(o.Coord, o.Conn[e])
			elems[e], err = ele.New(b.Type, o.ElemLabels[e], o.Conn[e], x, b.Mat, b.Fab)
			if err != nil {
				return inputErr("block %q:\n%v", b.Name, err)
			}
		}
	}
	for e, elem := range elems {
		if elem == nil {
			return inputErr("element %d does not belong to any element block", o.ElemLabels[e])
		}
	}

	// check surfaces
	for _, name := range sortedNames(o.Surfaces) {
		if err = o.checkFaces(name, o.Surfaces[name], elems); err != nil {
			return
		}
	}
	o.Elements = elems

	// degrees-of-freedom
	o.Dofs = NewDofMap(len(o.Coord), o.Elements)

	// initial step
	if o.Dofs.Size() == 0 {
		o.Elements = nil
		return inputErr("model has no degrees-of-freedom")
	}
	stp, err := newStep(o, "Initial", 0, 0, 1, nil)
	if err != nil {
		o.Elements = nil
		return
	}
	o.Steps = []*Step{stp}
	if o.ShowMsg {
		io.Pf("> Model set up with %d equations\n", o.Dofs.Size())
	}
	return
}

// newRegistry returns the field outputs of the model with zeroed values
func (o *Model) newRegistry() (reg *out.Registry, err error) {
	reg = out.NewRegistry()
	var disp, rot []string
	for _, c := range ele.AllComps {
		if !o.hasComp(c) {
			continue
		}
		switch {
		case c.IsDisplacement():
			disp = append(disp, axes[c.Dim()])
		case c.IsRotation():
			rot = append(rot, axes[c.Dim()])
		}
	}
	labels := o.NodeLabels
	add := func(f *out.FieldOutput) {
		if err == nil {
			err = reg.Add(f)
		}
	}
	if len(disp) > 0 {
		add(out.NewField("U", "", out.Vector, out.Node, labels, disp, 1))
		add(out.NewField("RF", "", out.Vector, out.Node, labels, disp, 1))
	}
	if len(rot) > 0 {
		add(out.NewField("R", "", out.Vector, out.Node, labels, rot, 1))
		add(out.NewField("M", "", out.Vector, out.Node, labels, rot, 1))
	}
	if o.hasComp(ele.T) {
		add(out.NewField("T", "", out.Scalar, out.Node, labels, nil, 1))
		add(out.NewField("Q", "", out.Scalar, out.Node, labels, nil, 1))
	}
	for _, b := range o.Blocks {
		e0 := o.Elements[b.Elems[0]]
		vars := e0.Variables()
		if len(vars) == 0 {
			continue
		}
		lay := ele.GetLayout(e0)
		pos := out.Element
		if e0.Nip() > 0 {
			pos = out.IntegrationPoint
		}
		labels := make([]int, len(b.Elems))
		for i, e := range b.Elems {
			labels[i] = o.ElemLabels[e]
		}
		for _, v := range vars {
			add(out.NewField(v.Name, b.Name, v.Kind, pos, labels, fieldComps(v, lay.Width), lay.Nip))
		}
	}
	if err != nil {
		return nil, chk.Err("cannot create field outputs:\n%v", err)
	}
	return
}

// hasComp tells whether some node has component c active
func (o *Model) hasComp(c ele.Comp) bool {
	for _, a := range o.Dofs.Active {
		if a&c != 0 {
			return true
		}
	}
	return false
}

// axes holds the names of vector components
var axes = []string{"x", "y", "z"}

// fieldComps returns the names of the components of a variable
func fieldComps(v ele.Variable, width int) []string {
	switch v.Kind {
	case out.Vector:
		return axes[:width]
	case out.SymTensor:
		if width == 6 {
			return []string{"xx", "yy", "zz", "xy", "yz", "zx"}
		}
		if width == 4 {
			return []string{"xx", "yy", "zz", "xy"}
		}
	}
	if width == 1 {
		return []string{v.Name}
	}
	comps := make([]string, width)
	for i := range comps {
		comps[i] = io.Sf("%d", i)
	}
	return comps
}

// InitialStep returns the initial step, calling Setup if needed
func (o *Model) InitialStep() (*Step, error) {
	if err := o.Setup(); err != nil {
		return nil, err
	}
	return o.Steps[0], nil
}

// LastStep returns the last step or nil if the model has not been set up
func (o *Model) LastStep() *Step {
	if len(o.Steps) == 0 {
		return nil
	}
	return o.Steps[len(o.Steps)-1]
}

// StaticStep appends a new step whose conditions are copied from the last step
//  period     -- duration of step
//  increments -- number of equal increments
func (o *Model) StaticStep(name string, period float64, increments int) (stp *Step, err error) {
	if err = o.Setup(); err != nil {
		return
	}
	if increments < 1 {
		return nil, inputErr("step %q: number of increments must be positive. %d is invalid", name, increments)
	}
	if period < 0 {
		return nil, inputErr("step %q: period must not be negative. %g is invalid", name, period)
	}
	if name == "" {
		name = io.Sf("Step-%d", len(o.Steps))
	}
	for _, s := range o.Steps {
		if s.Name == name {
			return nil, inputErr("step %q exists already", name)
		}
	}
	prev := o.LastStep()
	stp, err = newStep(o, name, len(o.Steps), period, increments, prev)
	if err != nil {
		return nil, err
	}
	if err = stp.CopyFrom(prev); err != nil {
		return nil, err
	}
	o.Steps = append(o.Steps, stp)
	return
}

// Solve runs all steps not yet run. A default step with one increment is created if only the
// initial step exists
func (o *Model) Solve() (err error) {
	if err = o.Setup(); err != nil {
		return
	}
	if len(o.Steps) == 1 {
		if _, err = o.StaticStep("Step-1", 1, 1); err != nil {
			return
		}
	}
	for _, stp := range o.Steps[1:] {
		if stp.Ran {
			continue
		}
		if err = stp.Run(); err != nil {
			return
		}
	}
	return
}

// Results returns the records of all converged frames of all steps that have been run,
// including the initial frame
func (o *Model) Results() (recs []*out.FrameRecord) {
	for _, stp := range o.Steps {
		if stp.Number > 0 && !stp.Ran {
			continue
		}
		for _, f := range stp.Frames {
			if f.Number == 0 && stp.Number > 0 {
				continue // same as the last frame of the previous step
			}
			if f.Converged {
				recs = append(recs, out.NewRecord(stp.Name, stp.Number, f.Number, f.Start, f.Increment, f.Fields))
			}
		}
	}
	return
}

// model-level conditions are assigned to the initial step ////////////////////////////////////////

// FixNodes fixes all active components of nodes in the initial step
func (o *Model) FixNodes(r Region) error {
	stp, err := o.InitialStep()
	if err != nil {
		return err
	}
	return stp.FixNodes(r)
}

// PinNodes fixes the active displacement components of nodes in the initial step
func (o *Model) PinNodes(r Region) error {
	stp, err := o.InitialStep()
	if err != nil {
		return err
	}
	return stp.PinNodes(r)
}

// PrescribedBC prescribes values of components in the initial step
func (o *Model) PrescribedBC(r Region, comps ele.Comp, amp Amplitude) error {
	stp, err := o.InitialStep()
	if err != nil {
		return err
	}
	return stp.PrescribedBC(r, comps, amp)
}

// ConcentratedLoad assigns nodal loads in the initial step
func (o *Model) ConcentratedLoad(r Region, comps ele.Comp, amp Amplitude) error {
	stp, err := o.InitialStep()
	if err != nil {
		return err
	}
	return stp.ConcentratedLoad(r, comps, amp)
}

// InitialTemperature sets the reference temperature field in the initial step
func (o *Model) InitialTemperature(r Region, amp Amplitude) error {
	stp, err := o.InitialStep()
	if err != nil {
		return err
	}
	return stp.Temperature(r, amp)
}
