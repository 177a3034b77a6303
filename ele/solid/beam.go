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
)

// Beam represents a structural beam-column element (Euler-Bernoulli, linear elastic) in 2D
//
//         y1
//         ^
//         |       w (distributed load)      Props:    Nodes:
//         o-------------------------------o  E, A      0 and 1
//         |                               |  Izz
//         |                               |
//        (0)-----------------------------(1)------> y0
//
//  Local degrees-of-freedom per node: {ux, uy, rz}
type Beam struct {

	// basic data
	Lbl   int         // label
	Verts []int       // nodes
	X     [][]float64 // matrix of nodal coordinates [ndim][nnode]

	// parameters and properties
	Mat *mdl.Material // material
	E   float64       // Young's modulus
	A   float64       // cross-sectional area
	Izz float64       // second moment of area about the out-of-plane axis
	L   float64       // (derived) length of beam

	// vectors and matrices
	T  [][]float64 // [6][6] global-to-local transformation matrix
	Kl [][]float64 // [6][6] local K matrix
	K  [][]float64 // [6][6] global K matrix

	// scratchpad
	fxl []float64 // [6] local external forces
}

// register element
func init() {
	ele.SetAllocator("beam", func(label int, nodes []int, x [][]float64, mat *mdl.Material, fab ele.Fab) (ele.Element, error) {

		// check
		if err := ele.CheckNodes("beam", nodes, x, 2, 2); err != nil {
			return nil, err
		}

		// basic data
		var o Beam
		o.Lbl = label
		o.Verts = nodes
		o.X = x

		// parameters
		o.Mat = mat
		m, err := mdl.NewElastic(mat)
		if err != nil {
			return nil, err
		}
		o.E = m.E
		o.A = fab.Get("A", 0)
		o.Izz = fab.Get("Izz", 0)
		if o.A <= 0 || o.Izz <= 0 {
			return nil, chk.Err("beam requires positive 'A' and 'Izz' in fabrication. A=%g, Izz=%g are invalid", o.A, o.Izz)
		}

		// vectors and matrices
		o.T = utl.Alloc(6, 6)
		o.Kl = utl.Alloc(6, 6)
		o.K = utl.Alloc(6, 6)
		o.fxl = make([]float64, 6)
		if err = o.Recompute(); err != nil {
			return nil, err
		}
		return &o, nil
	})
}

// implementation ///////////////////////////////////////////////////////////////////////////////////

// Label returns the element label
func (o *Beam) Label() int { return o.Lbl }

// Nodes returns the nodes
func (o *Beam) Nodes() []int { return o.Verts }

// Signature returns the active components
func (o *Beam) Signature() ele.Comp { return ele.X | ele.Y | ele.TZ }

// Variables returns nil; beams have no state variables
func (o *Beam) Variables() []ele.Variable { return nil }

// TensorWidth returns 0
func (o *Beam) TensorWidth() int { return 0 }

// Nip returns 0
func (o *Beam) Nip() int { return 0 }

// Material returns the material
func (o *Beam) Material() *mdl.Material { return o.Mat }

// Stiffness computes the element stiffness
func (o *Beam) Stiffness(Ke [][]float64, st *ele.State) (err error) {
	for i := 0; i < 6; i++ {
		copy(Ke[i], o.K[i])
	}
	return
}

// Force computes the equivalent nodal forces due to a uniform distributed load
//  The body load b (per unit volume) gives w = b * A per unit length
func (o *Beam) Force(Fe []float64, st *ele.State) (err error) {
	for i := range Fe {
		Fe[i] = 0
	}
	if st.Loads == nil || len(st.Loads.Body) < 2 {
		return
	}
	c, s := o.T[0][0], o.T[0][1]
	wx, wy := st.Loads.Body[0]*o.A, st.Loads.Body[1]*o.A
	wa := c*wx + s*wy  // axial
	wt := -s*wx + c*wy // transverse
	l, ll := o.L, o.L*o.L
	o.fxl[0] = wa * l / 2.0
	o.fxl[1] = wt * l / 2.0
	o.fxl[2] = wt * ll / 12.0
	o.fxl[3] = wa * l / 2.0
	o.fxl[4] = wt * l / 2.0
	o.fxl[5] = -wt * ll / 12.0

	// Fe := trans(T) * fxl
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			Fe[i] += o.T[j][i] * o.fxl[j]
		}
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// Recompute re-computes matrices after dimensions or parameters are externally changed
func (o *Beam) Recompute() error {

	// geometry
	dx := o.X[0][1] - o.X[0][0]
	dy := o.X[1][1] - o.X[1][0]
	o.L = math.Sqrt(dx*dx + dy*dy)
	if o.L < 1e-14 {
		return chk.Err("beam %d has zero length", o.Lbl)
	}

	// global-to-local transformation matrix
	c := dx / o.L
	s := dy / o.L
	for k := 0; k < 2; k++ {
		i := 3 * k
		o.T[i][i], o.T[i][i+1] = c, s
		o.T[i+1][i], o.T[i+1][i+1] = -s, c
		o.T[i+2][i+2] = 1
	}

	// local K matrix
	l, ll, lll := o.L, o.L*o.L, o.L*o.L*o.L
	m := o.E * o.A / l
	n := o.E * o.Izz / lll
	o.Kl[0][0], o.Kl[0][3] = m, -m
	o.Kl[3][0], o.Kl[3][3] = -m, m
	o.Kl[1][1], o.Kl[1][2], o.Kl[1][4], o.Kl[1][5] = 12*n, 6*l*n, -12*n, 6*l*n
	o.Kl[2][1], o.Kl[2][2], o.Kl[2][4], o.Kl[2][5] = 6*l*n, 4*ll*n, -6*l*n, 2*ll*n
	o.Kl[4][1], o.Kl[4][2], o.Kl[4][4], o.Kl[4][5] = -12*n, -6*l*n, 12*n, -6*l*n
	o.Kl[5][1], o.Kl[5][2], o.Kl[5][4], o.Kl[5][5] = 6*l*n, 2*ll*n, -6*l*n, 4*ll*n

	// K = trans(T) * Kl * T
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			o.K[i][j] = 0
			for k := 0; k < 6; k++ {
				for r := 0; r < 6; r++ {
					o.K[i][j] += o.T[k][i] * o.Kl[k][r] * o.T[r][j]
				}
			}
		}
	}
	return nil
}
