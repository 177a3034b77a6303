// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package thermal implements elements for heat transfer problems
package thermal

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/prklVIP/gofem2/ele"
	"github.com/prklVIP/gofem2/mdl"
	"github.com/prklVIP/gofem2/out"
)

// HeatTri3 implements a 3-node triangle for steady diffusive heat transfer expressed as
//
//   div q = s      with      q = -k grad T
//
//   Boundary conditions on edges: normal flux entering the element and films h (T - Tsink)
//
//   State variables: HFL -- heat flux vector {qx, qy}
type HeatTri3 struct {

	// basic data
	Lbl   int         // label
	Verts []int       // nodes
	X     [][]float64 // matrix of nodal coordinates [ndim][nnode]

	// parameters and properties
	Mat  *mdl.Material     // material
	Mdl  *mdl.Conductivity // conductivity
	Area float64           // area of triangle

	// derived
	B     [][]float64 // [2][3] gradient of shape functions
	Kcond [][]float64 // [3][3] conductivity matrix
}

// local nodes of edges
var edges = [][]int{{0, 1}, {1, 2}, {2, 0}}

// register element
func init() {
	ele.SetAllocator("heat-tri3", func(label int, nodes []int, x [][]float64, mat *mdl.Material, fab ele.Fab) (ele.Element, error) {

		// check
		if err := ele.CheckNodes("heat-tri3", nodes, x, 3, 2); err != nil {
			return nil, err
		}
		if len(fab) > 0 {
			return nil, chk.Err("heat-tri3 does not accept fabrication properties")
		}

		// basic data
		var o HeatTri3
		o.Lbl = label
		o.Verts = nodes
		o.X = x

		// parameters
		var err error
		o.Mat = mat
		o.Mdl, err = mdl.NewConductivity(mat)
		if err != nil {
			return nil, err
		}

		// geometry
		x0, x1, x2 := x[0][0], x[0][1], x[0][2]
		y0, y1, y2 := x[1][0], x[1][1], x[1][2]
		o.Area = 0.5 * ((x1-x0)*(y2-y0) - (x2-x0)*(y1-y0))
		if o.Area < 1e-14 {
			return nil, chk.Err("heat-tri3 %d: area must be positive (counter-clockwise nodes). A = %g is invalid", label, o.Area)
		}
		c := 1.0 / (2.0 * o.Area)
		o.B = [][]float64{
			{c * (y1 - y2), c * (y2 - y0), c * (y0 - y1)},
			{c * (x2 - x1), c * (x0 - x2), c * (x1 - x0)},
		}

		// K = k A trans(B) B
		o.Kcond = make([][]float64, 3)
		for i := 0; i < 3; i++ {
			o.Kcond[i] = make([]float64, 3)
			for j := 0; j < 3; j++ {
				o.Kcond[i][j] = o.Mdl.K * o.Area * (o.B[0][i]*o.B[0][j] + o.B[1][i]*o.B[1][j])
			}
		}
		return &o, nil
	})
}

// implementation ///////////////////////////////////////////////////////////////////////////////////

// Label returns the element label
func (o *HeatTri3) Label() int { return o.Lbl }

// Nodes returns the nodes
func (o *HeatTri3) Nodes() []int { return o.Verts }

// Signature returns the active components
func (o *HeatTri3) Signature() ele.Comp { return ele.T }

// Variables returns the state variables
func (o *HeatTri3) Variables() []ele.Variable {
	return []ele.Variable{{Name: "HFL", Kind: out.Vector}}
}

// TensorWidth returns the number of components of the heat flux vector
func (o *HeatTri3) TensorWidth() int { return 2 }

// Nip returns 0 since the flux is constant
func (o *HeatTri3) Nip() int { return 0 }

// Material returns the material
func (o *HeatTri3) Material() *mdl.Material { return o.Mat }

// Edges returns the local nodes of edges
func (o *HeatTri3) Edges() [][]int { return edges }

// Stiffness computes the conductivity matrix plus film contributions
func (o *HeatTri3) Stiffness(Ke [][]float64, st *ele.State) (err error) {
	for i := 0; i < 3; i++ {
		copy(Ke[i], o.Kcond[i])
	}
	if st.Loads == nil {
		return
	}
	for iedge, film := range st.Loads.Film {
		a, b, he, e := o.edge(iedge)
		if e != nil {
			return e
		}
		c := film.H * he / 6.0
		Ke[a][a] += 2.0 * c
		Ke[a][b] += c
		Ke[b][a] += c
		Ke[b][b] += 2.0 * c
	}
	return
}

// Force computes the heat supplied by sources, fluxes and films
func (o *HeatTri3) Force(Fe []float64, st *ele.State) (err error) {
	for i := range Fe {
		Fe[i] = 0
	}
	if st.Loads == nil {
		return
	}
	if st.Loads.Source != 0 {
		for i := 0; i < 3; i++ {
			Fe[i] += st.Loads.Source * o.Area / 3.0
		}
	}
	for iedge, qn := range st.Loads.Flux {
		a, b, he, e := o.edge(iedge)
		if e != nil {
			return e
		}
		Fe[a] += qn * he / 2.0
		Fe[b] += qn * he / 2.0
	}
	for iedge, film := range st.Loads.Film {
		a, b, he, e := o.edge(iedge)
		if e != nil {
			return e
		}
		Fe[a] += film.H * film.Tsink * he / 2.0
		Fe[b] += film.H * film.Tsink * he / 2.0
	}
	return
}

// Update computes the heat flux q = -k grad T
func (o *HeatTri3) Update(st *ele.State) (err error) {
	if len(st.New) < 2 {
		return chk.Err("heat-tri3 %d: state slice is too small", o.Lbl)
	}
	for i := 0; i < 2; i++ {
		st.New[i] = 0
		for m := 0; m < 3; m++ {
			st.New[i] -= o.Mdl.K * o.B[i][m] * st.U[m]
		}
	}
	return
}

// edge returns the local nodes and the length of an edge
func (o *HeatTri3) edge(iedge int) (a, b int, he float64, err error) {
	if iedge < 0 || iedge >= len(edges) {
		return 0, 0, 0, chk.Err("heat-tri3 %d: edge index %d is invalid", o.Lbl, iedge)
	}
	a, b = edges[iedge][0], edges[iedge][1]
	dx := o.X[0][b] - o.X[0][a]
	dy := o.X[1][b] - o.X[1][a]
	he = math.Sqrt(dx*dx + dy*dy)
	return
}
