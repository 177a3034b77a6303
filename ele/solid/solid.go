// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solid implements elements for solid mechanics
package solid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"github.com/prklVIP/gofem2/ele"
	"github.com/prklVIP/gofem2/mdl"
	"github.com/prklVIP/gofem2/out"
	"github.com/prklVIP/gofem2/shp"
)

// Solid implements a 4-node quadrilateral element for plane-strain or plane-stress linear
// elasticity with 2x2 Gauss integration
//
//   State variables at each integration point:
//     S -- stresses {σxx, σyy, σzz, σxy}
//     E -- strains  {εxx, εyy, εzz, γxy}
type Solid struct {

	// basic data
	Lbl     int         // label
	Verts   []int       // nodes
	X       [][]float64 // matrix of nodal coordinates [ndim][nnode]
	Nu      int         // total number of unknowns
	Pstress bool        // plane-stress
	Thick   float64     // thickness

	// parameters and properties
	Mat *mdl.Material // material
	Mdl *mdl.Elastic  // elastic model
	D   [][]float64   // [4][4] elastic stiffness

	// integration points
	Cell    *shp.Shape   // shape of element
	Edge    *shp.Shape   // shape of edges
	IpsElem []shp.Ipoint // integration points of element
	IpsFace []shp.Ipoint // integration points corresponding to faces

	// scratchpad
	B   [][]float64 // [4][nu] B matrix
	eps []float64   // [4] strains
}

// register element
func init() {
	allocator := func(pstress bool) ele.AllocatorType {
		return func(label int, nodes []int, x [][]float64, mat *mdl.Material, fab ele.Fab) (ele.Element, error) {

			// check
			if err := ele.CheckNodes("quad4", nodes, x, 4, 2); err != nil {
				return nil, err
			}

			// basic data
			var o Solid
			o.Lbl = label
			o.Verts = nodes
			o.X = x
			o.Nu = 8
			o.Pstress = pstress
			o.Thick = fab.Get("t", 1)
			if o.Thick <= 0 {
				return nil, chk.Err("quad4: thickness must be positive. t = %g is invalid", o.Thick)
			}

			// parameters
			var err error
			o.Mat = mat
			o.Mdl, err = mdl.NewElastic(mat)
			if err != nil {
				return nil, err
			}
			o.D = o.Mdl.PlaneD(pstress)

			// shapes and integration points
			if o.Cell, err = shp.Get("qua4"); err != nil {
				return nil, err
			}
			if o.Edge, err = shp.Get(o.Cell.FaceType); err != nil {
				return nil, err
			}
			o.IpsElem = o.Cell.Ips
			o.IpsFace = o.Edge.Ips

			// scratchpad
			o.B = utl.Alloc(4, o.Nu)
			o.eps = make([]float64, 4)

			// check Jacobian
			for _, ip := range o.IpsElem {
				if err = o.Cell.CalcAtIp(o.X, []float64{ip.R, ip.S, ip.T}, true); err != nil {
					return nil, chk.Err("quad4 %d: nodes must be numbered counter-clockwise:\n%v", label, err)
				}
			}
			return &o, nil
		}
	}
	ele.SetAllocator("quad4", allocator(false))
	ele.SetAllocator("quad4-pstress", allocator(true))
}

// implementation ///////////////////////////////////////////////////////////////////////////////////

// Label returns the element label
func (o *Solid) Label() int { return o.Lbl }

// Nodes returns the nodes
func (o *Solid) Nodes() []int { return o.Verts }

// Signature returns the active components
func (o *Solid) Signature() ele.Comp { return ele.X | ele.Y }

// Variables returns the state variables
func (o *Solid) Variables() []ele.Variable {
	return []ele.Variable{{Name: "S", Kind: out.SymTensor}, {Name: "E", Kind: out.SymTensor}}
}

// TensorWidth returns the number of components of symmetric tensors
func (o *Solid) TensorWidth() int { return 4 }

// Nip returns the number of integration points
func (o *Solid) Nip() int { return len(o.IpsElem) }

// Material returns the material
func (o *Solid) Material() *mdl.Material { return o.Mat }

// Edges returns the local nodes of edges
func (o *Solid) Edges() [][]int { return o.Cell.FaceLocalVerts }

// Stiffness computes K = ∫ trans(B) D B dV
func (o *Solid) Stiffness(Ke [][]float64, st *ele.State) (err error) {
	for i := 0; i < o.Nu; i++ {
		for j := 0; j < o.Nu; j++ {
			Ke[i][j] = 0
		}
	}
	for _, ip := range o.IpsElem {
		if err = o.Cell.CalcAtIp(o.X, []float64{ip.R, ip.S, ip.T}, true); err != nil {
			return
		}
		coef := o.Cell.J * ip.W * o.Thick
		CalcB(o.B, o.Cell.G)
		for i := 0; i < o.Nu; i++ {
			for j := 0; j < o.Nu; j++ {
				for k := 0; k < 4; k++ {
					for l := 0; l < 4; l++ {
						Ke[i][j] += coef * o.B[k][i] * o.D[k][l] * o.B[l][j]
					}
				}
			}
		}
	}
	return
}

// Force computes the external forces due to body loads and edge tractions
func (o *Solid) Force(Fe []float64, st *ele.State) (err error) {
	for i := range Fe {
		Fe[i] = 0
	}
	if st.Loads == nil {
		return
	}

	// body loads
	if len(st.Loads.Body) >= 2 {
		for _, ip := range o.IpsElem {
			if err = o.Cell.CalcAtIp(o.X, []float64{ip.R, ip.S, ip.T}, true); err != nil {
				return
			}
			coef := o.Cell.J * ip.W * o.Thick
			for m := 0; m < 4; m++ {
				Fe[2*m] += coef * o.Cell.S[m] * st.Loads.Body[0]
				Fe[2*m+1] += coef * o.Cell.S[m] * st.Loads.Body[1]
			}
		}
	}

	// tractions
	for iedge, trac := range st.Loads.Trac {
		if iedge < 0 || iedge >= len(o.Cell.FaceLocalVerts) {
			return chk.Err("quad4 %d: edge index %d is invalid", o.Lbl, iedge)
		}
		verts := o.Cell.FaceLocalVerts[iedge]
		xf := utl.Alloc(2, len(verts))
		for j, v := range verts {
			xf[0][j], xf[1][j] = o.X[0][v], o.X[1][v]
		}
		for _, ip := range o.IpsFace {
			if err = o.Edge.CalcAtIp(xf, []float64{ip.R, ip.S, ip.T}, true); err != nil {
				return
			}
			coef := o.Edge.J * ip.W * o.Thick
			for j, v := range verts {
				Fe[2*v] += coef * o.Edge.S[j] * trac[0]
				Fe[2*v+1] += coef * o.Edge.S[j] * trac[1]
			}
		}
	}
	return
}

// Update computes strains and stresses at integration points for the solved displacements
func (o *Solid) Update(st *ele.State) (err error) {
	lay := ele.GetLayout(o)
	if len(st.New) < lay.Size() {
		return chk.Err("quad4 %d: state slice is too small", o.Lbl)
	}
	for idx, ip := range o.IpsElem {
		if err = o.Cell.CalcAtIp(o.X, []float64{ip.R, ip.S, ip.T}, true); err != nil {
			return
		}
		CalcStrain(o.eps, o.Cell.G, st.U)
		σ := lay.Get(st.New, idx, 0)
		ε := lay.Get(st.New, idx, 1)
		for i := 0; i < 4; i++ {
			σ[i] = 0
			for j := 0; j < 4; j++ {
				σ[i] += o.D[i][j] * o.eps[j]
			}
		}
		copy(ε, o.eps)
		if o.Pstress {
			ν := o.Mdl.Nu
			ε[2] = -ν / (1.0 - ν) * (o.eps[0] + o.eps[1])
		}
	}
	return
}
