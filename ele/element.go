// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ele implements finite elements
package ele

import (
	"github.com/prklVIP/gofem2/mdl"
	"github.com/prklVIP/gofem2/out"
)

// Variable defines an element output (state) variable
type Variable struct {
	Name string   // e.g. "S", "E", "P"
	Kind out.Kind // scalar or symmetric tensor
}

// Element defines what all elements must implement
//  Local degrees-of-freedom are ordered node-major; within each node, the components of Signature
//  appear in numbering order (see AllComps)
type Element interface {

	// information
	Label() int                // returns the element label
	Nodes() []int              // returns the (internal) indices of nodes
	Signature() Comp           // components active at each node
	Variables() []Variable     // returns the output (state) variables
	TensorWidth() int          // number of components of tensor variables (ndir+nshr); 0 or 1 for scalars
	Nip() int                  // number of integration points; 0 if variables are element-wise
	Material() *mdl.Material   // returns the material

	// kernels
	Stiffness(Ke [][]float64, st *State) (err error) // computes the element stiffness
	Force(Fe []float64, st *State) (err error)       // computes the element external force (loads, thermal, fluxes)
}

// WithIntVars defines elements with state (internal) variables
type WithIntVars interface {
	Update(st *State) (err error) // computes new state variables (st.New) given solved st.U
}

// WithEdges defines elements with edges (surfaces) that can receive surface loads, fluxes and films
type WithEdges interface {
	Edges() [][]int // [nedges][nedgeverts] local nodes of edges
}

// NumDofs returns the number of local degrees-of-freedom of an element
func NumDofs(e Element) int {
	return len(e.Nodes()) * e.Signature().Count()
}
