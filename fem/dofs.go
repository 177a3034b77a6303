// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/io"
	"github.com/prklVIP/gofem2/ele"
)

// Dof holds information about a degree-of-freedom
type Dof struct {
	Node int      // internal index of node
	Comp ele.Comp // single component
	Eq   int      // equation number
}

// String returns a representation of this dof
func (o Dof) String() string { return io.Sf("{node=%d, comp=%v, eq=%d}", o.Node, o.Comp, o.Eq) }

// DofMap maps (node, component) pairs to global equation numbers
//  Numbering is node-major; within each node, active components follow ele.AllComps order
type DofMap struct {
	Active []ele.Comp // [nnode] active components at each node
	Dofs   []Dof      // [neq] all degrees-of-freedom ordered by equation number
	eqs    [][]int    // [nnode][len(ele.AllComps)] equation numbers or -1
}

// NewDofMap numbers the degrees-of-freedom of nodes connected to elements. The active
// components of a node are the union of the signatures of its elements
func NewDofMap(nnode int, elems []ele.Element) (o *DofMap) {
	o = new(DofMap)
	o.Active = make([]ele.Comp, nnode)
	for _, e := range elems {
		sig := e.Signature()
		for _, n := range e.Nodes() {
			o.Active[n] |= sig
		}
	}
	o.eqs = make([][]int, nnode)
	for n := 0; n < nnode; n++ {
		o.eqs[n] = make([]int, len(ele.AllComps))
		for i, c := range ele.AllComps {
			o.eqs[n][i] = -1
			if o.Active[n]&c != 0 {
				o.eqs[n][i] = len(o.Dofs)
				o.Dofs = append(o.Dofs, Dof{n, c, len(o.Dofs)})
			}
		}
	}
	return
}

// Size returns the number of equations
func (o *DofMap) Size() int { return len(o.Dofs) }

// Eq returns the equation number of a single component at a node or -1 if the component is
// not active (or the node does not exist)
func (o *DofMap) Eq(node int, comp ele.Comp) int {
	if node < 0 || node >= len(o.eqs) {
		return -1
	}
	i := comp.Index()
	if i < 0 {
		return -1
	}
	return o.eqs[node][i]
}

// Equations returns the element's equations in local order (node-major, signature components in
// numbering order)
func (o *DofMap) Equations(e ele.Element) (eqs []int) {
	comps := e.Signature().Comps()
	eqs = make([]int, 0, len(e.Nodes())*len(comps))
	for _, n := range e.Nodes() {
		for _, c := range comps {
			eqs = append(eqs, o.Eq(n, c))
		}
	}
	return
}

// Gather collects the values of global vector Y corresponding to equations
func Gather(Y []float64, eqs []int) (y []float64) {
	y = make([]float64, len(eqs))
	for i, I := range eqs {
		y[i] = Y[I]
	}
	return
}
