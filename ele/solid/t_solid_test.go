// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"github.com/prklVIP/gofem2/ele"
	"github.com/prklVIP/gofem2/mdl"
)

func newElem(tst *testing.T, etype string, x [][]float64, fab ele.Fab, prms ...interface{}) ele.Element {
	mat, err := mdl.NewSimple("mat", prms...)
	if err != nil {
		tst.Fatalf("NewSimple failed:\n%v", err)
	}
	nodes := utl.IntRange(len(x[0]))
	e, err := ele.New(etype, 1, nodes, x, mat, fab)
	if err != nil {
		tst.Fatalf("New failed:\n%v", err)
	}
	return e
}

func Test_rod01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rod01. link stiffness and stress")

	// 3-4-5 inclined link
	e := newElem(tst, "link", [][]float64{{0, 3}, {0, 4}}, ele.Fab{"A": 2}, "E", 100.0, "alpha", 1e-3)
	chk.Int(tst, "ndofs", ele.NumDofs(e), 4)
	K := utl.Alloc(4, 4)
	st := &ele.State{Loads: ele.NewLoads()}
	if err := e.Stiffness(K, st); err != nil {
		tst.Errorf("Stiffness failed:\n%v", err)
		return
	}
	α := 100.0 * 2.0 / 5.0
	chk.Array(tst, "K0", 1e-13, K[0], []float64{α * 0.36, α * 0.48, -α * 0.36, -α * 0.48})
	chk.Array(tst, "K3", 1e-13, K[3], []float64{-α * 0.48, -α * 0.64, α * 0.48, α * 0.64})

	// stretch by 0.05 along axis => ε = 0.01
	st.U = []float64{0, 0, 0.03, 0.04}
	st.New = make([]float64, 2)
	if err := e.(ele.WithIntVars).Update(st); err != nil {
		tst.Errorf("Update failed:\n%v", err)
		return
	}
	chk.Array(tst, "P and S", 1e-13, st.New, []float64{2, 1})

	// thermal: ΔT = 10 => εt = 0.01; free expansion gives zero stress
	st.Temp = []float64{10, 10}
	e.(ele.WithIntVars).Update(st)
	chk.Array(tst, "P and S (free thermal)", 1e-13, st.New, []float64{0, 0})

	F := make([]float64, 4)
	e.Force(F, st)
	fth := 100.0 * 2.0 * 1e-3 * 10
	chk.Array(tst, "thermal F", 1e-13, F, []float64{-fth * 0.6, -fth * 0.8, fth * 0.6, fth * 0.8})

	// missing area
	mat, _ := mdl.NewSimple("m", "E", 1.0)
	if _, err := ele.New("link", 1, []int{0, 1}, [][]float64{{0, 1}}, mat, nil); err == nil {
		tst.Errorf("link without area should have failed")
	}
}

func Test_beam01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("beam01. beam stiffness")

	L, E, A, I := 2.0, 1000.0, 0.1, 0.01
	e := newElem(tst, "beam", [][]float64{{0, 0}, {0, L}}, ele.Fab{"A": A, "Izz": I}, "E", E)
	K := utl.Alloc(6, 6)
	e.Stiffness(K, &ele.State{})

	// vertical beam: axial along y
	chk.Float64(tst, "K11", 1e-12, K[1][1], E*A/L)
	chk.Float64(tst, "K00", 1e-12, K[0][0], 12*E*I/(L*L*L))
	chk.Float64(tst, "K22", 1e-12, K[2][2], 4*E*I/L)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			chk.Float64(tst, "symmetry", 1e-12, K[i][j], K[j][i])
		}
	}

	// rigid translation gives no forces
	u := []float64{1, 2, 0, 1, 2, 0}
	for i := 0; i < 6; i++ {
		f := 0.0
		for j := 0; j < 6; j++ {
			f += K[i][j] * u[j]
		}
		chk.Float64(tst, "K*u_rigid", 1e-12, f, 0)
	}

	// distributed load on horizontal beam
	e = newElem(tst, "beam", [][]float64{{0, L}, {0, 0}}, ele.Fab{"A": A, "Izz": I}, "E", E)
	loads := ele.NewLoads()
	loads.Body = []float64{0, -10}
	F := make([]float64, 6)
	e.Force(F, &ele.State{Loads: loads})
	w := -10 * A
	chk.Array(tst, "F", 1e-13, F, []float64{0, w * L / 2, w * L * L / 12, 0, w * L / 2, -w * L * L / 12})
}

func Test_solid01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solid01. quad4 stiffness and patch")

	x := [][]float64{
		{0, 2, 2, 0},
		{0, 0, 1, 1},
	}
	e := newElem(tst, "quad4", x, nil, "E", 1e6, "nu", 0.25)
	chk.Int(tst, "nip", e.Nip(), 4)
	chk.Int(tst, "ndofs", ele.NumDofs(e), 8)
	K := utl.Alloc(8, 8)
	if err := e.Stiffness(K, &ele.State{}); err != nil {
		tst.Errorf("Stiffness failed:\n%v", err)
		return
	}

	// rigid body modes: translations and rotation
	modes := [][]float64{
		{1, 0, 1, 0, 1, 0, 1, 0},
		{0, 1, 0, 1, 0, 1, 0, 1},
		{0, 0, 0, 2, -1, 2, -1, 0}, // u = -y, v = x
	}
	for _, u := range modes {
		for i := 0; i < 8; i++ {
			f := 0.0
			for j := 0; j < 8; j++ {
				f += K[i][j] * u[j]
			}
			chk.Float64(tst, "K*u_rigid", 1e-7, f, 0)
		}
	}

	// linear displacement field
	st := &ele.State{U: make([]float64, 8), New: make([]float64, 32)}
	for m := 0; m < 4; m++ {
		X, Y := x[0][m], x[1][m]
		st.U[2*m] = 1e-3*X + 0.5e-3*Y
		st.U[2*m+1] = 0.5e-3*X + 1e-3*Y
	}
	if err := e.(ele.WithIntVars).Update(st); err != nil {
		tst.Errorf("Update failed:\n%v", err)
		return
	}
	lay := ele.GetLayout(e)
	for ip := 0; ip < 4; ip++ {
		chk.Array(tst, "σ", 1e-9, lay.Get(st.New, ip, 0), []float64{1600, 1600, 800, 400})
		chk.Array(tst, "ε", 1e-15, lay.Get(st.New, ip, 1), []float64{1e-3, 1e-3, 0, 1e-3})
	}

	// traction on top edge (edge 2)
	loads := ele.NewLoads()
	loads.Trac[2] = []float64{0, -3}
	F := make([]float64, 8)
	e.Force(F, &ele.State{Loads: loads})
	chk.Array(tst, "F", 1e-13, F, []float64{0, 0, 0, 0, 0, -3, 0, -3})

	// clockwise nodes
	mat, _ := mdl.NewSimple("m", "E", 1.0)
	_, err := ele.New("quad4", 1, []int{0, 1, 2, 3}, [][]float64{{0, 0, 1, 1}, {0, 1, 1, 0}}, mat, nil)
	if err == nil {
		tst.Errorf("clockwise quad4 should have failed")
	}
}

func Test_solid02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solid02. quad4 plane-stress")

	x := [][]float64{
		{0, 1, 1, 0},
		{0, 0, 1, 1},
	}
	e := newElem(tst, "quad4-pstress", x, ele.Fab{"t": 0.5}, "E", 1000.0, "nu", 0.2)

	// uniaxial stress σyy = -10 => εyy = -0.01, εxx = 0.002
	st := &ele.State{U: []float64{0, 0, 0.002, 0, 0.002, -0.01, 0, -0.01}, New: make([]float64, 32)}
	e.(ele.WithIntVars).Update(st)
	lay := ele.GetLayout(e)
	chk.Array(tst, "σ", 1e-12, lay.Get(st.New, 0, 0), []float64{0, -10, 0, 0})
	chk.Float64(tst, "εzz", 1e-15, lay.Get(st.New, 2, 1)[2], 0.002)

	// thickness scales tractions
	loads := ele.NewLoads()
	loads.Trac[2] = []float64{0, -10}
	F := make([]float64, 8)
	e.Force(F, &ele.State{Loads: loads})
	chk.Array(tst, "F", 1e-13, F, []float64{0, 0, 0, 0, 0, -2.5, 0, -2.5})
}
