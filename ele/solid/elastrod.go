// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"github.com/prklVIP/gofem2/ele"
	"github.com/prklVIP/gofem2/mdl"
	"github.com/prklVIP/gofem2/out"
)

// ElastRod represents a structural rod (link) element for axial loads only with 2 nodes and a
// constant stiffness matrix in 1D, 2D or 3D; i.e. no numerical integration is needed
//
//   Thermal expansion is computed with the mean change of nodal temperatures
//
//   State variables: P (axial force) and S (axial stress)
type ElastRod struct {

	// basic data
	Lbl   int         // label
	Verts []int       // nodes
	X     [][]float64 // matrix of nodal coordinates [ndim][nnode]
	Ndim  int         // space dimension
	Nu    int         // total number of unknowns == 2 * ndim

	// parameters and properties
	Mat *mdl.Material // material
	Mdl *mdl.Elastic  // elastic model with E and alpha
	A   float64       // cross-sectional area
	L   float64       // length of rod

	// derived
	N []float64   // [ndim] unit vector aligned with rod
	K [][]float64 // [nu][nu] element K matrix
}

// register element
func init() {
	ele.SetAllocator("link", func(label int, nodes []int, x [][]float64, mat *mdl.Material, fab ele.Fab) (ele.Element, error) {

		// check
		if err := ele.CheckNodes("link", nodes, x, 2, 1, 2, 3); err != nil {
			return nil, err
		}

		// basic data
		var o ElastRod
		o.Lbl = label
		o.Verts = nodes
		o.X = x
		o.Ndim = len(x)
		o.Nu = 2 * o.Ndim

		// parameters
		var err error
		o.Mat = mat
		o.Mdl, err = mdl.NewElastic(mat)
		if err != nil {
			return nil, err
		}
		var ok bool
		if o.A, ok = fab["A"]; !ok || o.A <= 0 {
			return nil, chk.Err("link requires a positive cross-sectional area 'A' in fabrication")
		}

		// geometry and K matrix
		if err = o.Recompute(); err != nil {
			return nil, err
		}
		return &o, nil
	})
}

// implementation ///////////////////////////////////////////////////////////////////////////////////

// Label returns the element label
func (o *ElastRod) Label() int { return o.Lbl }

// Nodes returns the nodes
func (o *ElastRod) Nodes() []int { return o.Verts }

// Signature returns the active components
func (o *ElastRod) Signature() ele.Comp { return ele.DispComps(o.Ndim) }

// Variables returns the state variables
func (o *ElastRod) Variables() []ele.Variable {
	return []ele.Variable{{Name: "P", Kind: out.Scalar}, {Name: "S", Kind: out.Scalar}}
}

// TensorWidth returns 0 since all variables are scalars
func (o *ElastRod) TensorWidth() int { return 0 }

// Nip returns 0 since variables are element-wise
func (o *ElastRod) Nip() int { return 0 }

// Material returns the material
func (o *ElastRod) Material() *mdl.Material { return o.Mat }

// Stiffness computes the element stiffness
func (o *ElastRod) Stiffness(Ke [][]float64, st *ele.State) (err error) {
	for i := 0; i < o.Nu; i++ {
		copy(Ke[i], o.K[i])
	}
	return
}

// Force computes the external forces due to body loads and thermal expansion
func (o *ElastRod) Force(Fe []float64, st *ele.State) (err error) {
	for i := range Fe {
		Fe[i] = 0
	}
	if st.Loads != nil && len(st.Loads.Body) > 0 {
		for m := 0; m < 2; m++ {
			for i := 0; i < o.Ndim && i < len(st.Loads.Body); i++ {
				Fe[m*o.Ndim+i] += st.Loads.Body[i] * o.A * o.L / 2.0
			}
		}
	}
	fth := o.Mdl.E * o.A * o.Mdl.Alpha * st.DeltaTemp()
	if fth != 0 {
		for i := 0; i < o.Ndim; i++ {
			Fe[i] -= fth * o.N[i]
			Fe[o.Ndim+i] += fth * o.N[i]
		}
	}
	return
}

// Update computes the axial force and stress for the solved displacements
func (o *ElastRod) Update(st *ele.State) (err error) {
	if len(st.New) < 2 {
		return chk.Err("link %d: state slice is too small", o.Lbl)
	}
	σ := o.CalcSig(st)
	st.New[0] = σ * o.A
	st.New[1] = σ
	return
}

// specific methods /////////////////////////////////////////////////////////////////////////////////

// CalcSig computes the axial stress for given nodal displacements and temperatures
func (o *ElastRod) CalcSig(st *ele.State) float64 {
	ua := 0.0
	for i := 0; i < o.Ndim; i++ {
		ua += o.N[i] * (st.U[o.Ndim+i] - st.U[i])
	}
	εa := ua / o.L                     // axial strain
	εt := o.Mdl.Alpha * st.DeltaTemp() // thermal strain
	return o.Mdl.E * (εa - εt)         // axial stress
}

// Recompute re-computes geometry and stiffness after coordinates or properties are changed
func (o *ElastRod) Recompute() error {
	o.L = 0
	o.N = make([]float64, o.Ndim)
	for i := 0; i < o.Ndim; i++ {
		o.N[i] = o.X[i][1] - o.X[i][0]
		o.L += o.N[i] * o.N[i]
	}
	o.L = math.Sqrt(o.L)
	if o.L < 1e-14 {
		return chk.Err("link %d has zero length", o.Lbl)
	}
	for i := 0; i < o.Ndim; i++ {
		o.N[i] /= o.L
	}
	α := o.Mdl.E * o.A / o.L
	o.K = utl.Alloc(o.Nu, o.Nu)
	for i := 0; i < o.Ndim; i++ {
		for j := 0; j < o.Ndim; j++ {
			k := α * o.N[i] * o.N[j]
			o.K[i][j] = k
			o.K[i][o.Ndim+j] = -k
			o.K[o.Ndim+i][j] = -k
			o.K[o.Ndim+i][o.Ndim+j] = k
		}
	}
	return nil
}
