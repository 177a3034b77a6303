// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/prklVIP/gofem2/ana"
	"github.com/prklVIP/gofem2/ele"
	"github.com/prklVIP/gofem2/mdl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_solve01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solve01. link with concentrated load")

	m := linkModel(tst, Ramp)
	stp, err := m.StaticStep("load", 1, 1)
	require.NoError(tst, err)
	require.NoError(tst, stp.ConcentratedLoad(Nodes(2), ele.X, Const(100)))
	require.NoError(tst, m.Solve())
	assert.True(tst, stp.Ran)

	u, err := stp.FieldAt("U", 2, "x")
	require.NoError(tst, err)
	chk.Float64(tst, "u = P/k", 1e-15, u, 0.05)
	rf, err := stp.FieldAt("RF", 1, "x")
	require.NoError(tst, err)
	chk.Float64(tst, "reaction", 1e-12, rf, -100)
	rf, err = stp.FieldAt("RF", 2, "x")
	require.NoError(tst, err)
	chk.Float64(tst, "no reaction at loaded node", 1e-12, rf, 0)

	S := stp.LastFrame().BlockField("rods", "S")
	P := stp.LastFrame().BlockField("rods", "P")
	chk.Float64(tst, "S = P/A", 1e-12, S.Data[0], 50)
	chk.Float64(tst, "P", 1e-12, P.Data[0], 100)

	// running twice and running the initial step
	require.Error(tst, stp.Run())
	require.Error(tst, m.Steps[0].Run())
}

func Test_solve02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solve02. under-constrained model")

	m := NewModel()
	require.NoError(tst, m.Mesh([][]float64{{1, 0, 0}, {2, 1, 0}}, [][]int{{1, 1, 2}}))
	steel, _ := mdl.NewSimple("steel", "E", 1000.0)
	require.NoError(tst, m.AddMaterial(steel))
	require.NoError(tst, m.ElementBlock("rods", ALL))
	require.NoError(tst, m.AssignProperties("rods", "link", "steel", ele.Fab{"A": 1}))
	require.NoError(tst, m.PrescribedBC(Nodes(1), ele.X, Const(0)))
	stp, err := m.StaticStep("", 1, 1)
	require.NoError(tst, err)
	chk.String(tst, stp.Name, "Step-1")

	err = m.Solve()
	require.Error(tst, err)
	assert.True(tst, errors.Is(err, ErrUnderConstrained))
	assert.False(tst, stp.Ran)
	chk.Int(tst, "frames", len(stp.Frames), 1)
}

func Test_solve03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solve03. gravity load on link")

	m := linkModel(tst, Ramp)
	stp, err := m.StaticStep("gravity", 1, 2)
	require.NoError(tst, err)
	require.NoError(tst, stp.GravityLoad(ALL, []float64{-10, 0}))
	require.NoError(tst, m.Solve())

	u, err := stp.FieldAt("U", 2, "x")
	require.NoError(tst, err)
	chk.Float64(tst, "u", 1e-15, u, -0.01)
	rf, err := stp.FieldAt("RF", 1, "x")
	require.NoError(tst, err)
	chk.Float64(tst, "reaction", 1e-12, rf, 40)

	// half load at the first increment
	chk.Float64(tst, "u at t=0.5", 1e-15, stp.Frames[1].Field("U").At(1, 0, 0), -0.005)
}

func Test_solve04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solve04. quad4 patch test")

	m := NewModel()
	require.NoError(tst, m.Mesh([][]float64{
		{1, 0.0, 0.0},
		{2, 1.0, 0.0},
		{3, 1.0, 1.0},
		{4, 0.0, 1.0},
		{5, 0.5, 0.0},
		{6, 1.0, 0.5},
		{7, 0.5, 1.0},
		{8, 0.0, 0.5},
		{9, 0.4, 0.6},
	}, [][]int{
		{1, 1, 5, 9, 8},
		{2, 5, 2, 6, 9},
		{3, 9, 6, 3, 7},
		{4, 8, 9, 7, 4},
	}))
	mat, _ := mdl.NewSimple("mat", "E", 1e6, "nu", 0.25)
	require.NoError(tst, m.AddMaterial(mat))
	require.NoError(tst, m.ElementBlock("patch", ALL))
	require.NoError(tst, m.AssignProperties("patch", "quad4", "mat", nil))
	require.NoError(tst, m.NodeSet("boundary", Nodes(1, 2, 3, 4, 5, 6, 7, 8)))
	ux := Func(func(x []float64) float64 { return 1e-3*x[0] + 0.5e-3*x[1] })
	uy := Func(func(x []float64) float64 { return 0.5e-3*x[0] + 1e-3*x[1] })
	require.NoError(tst, m.PrescribedBC(Set("boundary"), ele.X, ux))
	require.NoError(tst, m.PrescribedBC(Set("boundary"), ele.Y, uy))
	require.NoError(tst, m.Solve())
	stp := m.LastStep()

	// interior node
	u, err := stp.FieldAt("U", 9, "x")
	require.NoError(tst, err)
	chk.Float64(tst, "u9", 1e-15, u, 0.0007)
	v, err := stp.FieldAt("U", 9, "y")
	require.NoError(tst, err)
	chk.Float64(tst, "v9", 1e-15, v, 0.0008)

	// constant stresses at all integration points
	S := stp.LastFrame().BlockField("patch", "S")
	E := stp.LastFrame().BlockField("patch", "E")
	chk.Ints(tst, "labels", S.Labels, []int{1, 2, 3, 4})
	for i := range S.Labels {
		for ip := 0; ip < S.Ngauss; ip++ {
			for j, σ := range []float64{1600, 1600, 800, 400} {
				chk.Float64(tst, "σ", 1e-8, S.At(i, ip, j), σ)
			}
			for j, ε := range []float64{1e-3, 1e-3, 0, 1e-3} {
				chk.Float64(tst, "ε", 1e-14, E.At(i, ip, j), ε)
			}
		}
	}

	// self-equilibrated reactions
	RF := stp.LastFrame().Field("RF")
	sx, sy := 0.0, 0.0
	for i := range RF.Labels {
		sx += RF.At(i, 0, 0)
		sy += RF.At(i, 0, 1)
	}
	chk.Float64(tst, "ΣRFx", 1e-9, sx, 0)
	chk.Float64(tst, "ΣRFy", 1e-9, sy, 0)
}

func Test_solve05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solve05. plane-stress square under pressure")

	m := NewModel()
	require.NoError(tst, m.Mesh([][]float64{{1, 0, 0}, {2, 1, 0}, {3, 1, 1}, {4, 0, 1}}, [][]int{{1, 1, 2, 3, 4}}))
	mat, _ := mdl.NewSimple("mat", "E", 1000.0, "nu", 0.2)
	require.NoError(tst, m.AddMaterial(mat))
	require.NoError(tst, m.ElementBlock("square", ALL))
	require.NoError(tst, m.AssignProperties("square", "quad4-pstress", "mat", nil))
	require.NoError(tst, m.Surface("top", Face{1, 2}))
	require.NoError(tst, m.PrescribedBC(JLO, ele.Y, Const(0)))
	require.NoError(tst, m.PrescribedBC(ILO, ele.X, Const(0)))
	stp, err := m.StaticStep("press", 1, 1)
	require.NoError(tst, err)
	require.NoError(tst, stp.Pressure("top", 10))
	chk.Array(tst, "traction", 1e-15, stp.Sloadx[Face{0, 2}], []float64{0, -10})
	require.NoError(tst, m.Solve())

	S := stp.LastFrame().BlockField("square", "S")
	for ip := 0; ip < S.Ngauss; ip++ {
		chk.Float64(tst, "σxx", 1e-10, S.At(0, ip, 0), 0)
		chk.Float64(tst, "σyy", 1e-10, S.At(0, ip, 1), -10)
		chk.Float64(tst, "σzz", 1e-10, S.At(0, ip, 2), 0)
		chk.Float64(tst, "σxy", 1e-10, S.At(0, ip, 3), 0)
	}
	u, _ := stp.FieldAt("U", 3, "x")
	v, _ := stp.FieldAt("U", 3, "y")
	chk.Float64(tst, "u3", 1e-13, u, 0.002)
	chk.Float64(tst, "v3", 1e-13, v, -0.01)

	// surfaces of elements without edges
	l := NewModel()
	require.NoError(tst, l.Mesh([][]float64{{1, 0, 0}, {2, 1, 0}}, [][]int{{1, 1, 2}}))
	require.NoError(tst, l.AddMaterial(mat))
	require.NoError(tst, l.ElementBlock("rods", ALL))
	require.NoError(tst, l.AssignProperties("rods", "link", "mat", ele.Fab{"A": 1}))
	require.NoError(tst, l.Surface("end", Face{1, 0}))
	require.Error(tst, l.Setup())
}

// stripModel returns a 2x1 strip of four heat-tri3 elements with k = 2
func stripModel(tst *testing.T) *Model {
	m := NewModel()
	require.NoError(tst, m.Mesh([][]float64{
		{1, 0, 0}, {2, 1, 0}, {3, 2, 0},
		{4, 0, 1}, {5, 1, 1}, {6, 2, 1},
	}, [][]int{
		{1, 1, 2, 5},
		{2, 1, 5, 4},
		{3, 2, 3, 6},
		{4, 2, 6, 5},
	}))
	cu, _ := mdl.NewSimple("cu", "k", 2.0)
	require.NoError(tst, m.AddMaterial(cu))
	require.NoError(tst, m.ElementBlock("strip", ALL))
	require.NoError(tst, m.AssignProperties("strip", "heat-tri3", "cu", nil))
	require.NoError(tst, m.Surface("right", Face{3, 1}))
	return m
}

func Test_solve06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solve06. steady heat conduction")

	// prescribed temperatures
	m := stripModel(tst)
	require.NoError(tst, m.PrescribedBC(ILO, ele.T, Const(10)))
	stp, err := m.StaticStep("conduction", 1, 1)
	require.NoError(tst, err)
	require.NoError(tst, stp.PrescribedBC(IHI, ele.T, Const(30)))
	require.NoError(tst, m.Solve())
	for _, lbl := range []int{1, 2, 3, 4, 5, 6} {
		T, err := stp.FieldAt("T", lbl, "")
		require.NoError(tst, err)
		x := m.Coord[m.node2idx[lbl]][0]
		chk.Float64(tst, "T = 10 + 10 x", 1e-12, T, 10+10*x)
	}
	HFL := stp.LastFrame().BlockField("strip", "HFL")
	for i := range HFL.Labels {
		chk.Float64(tst, "qx", 1e-12, HFL.At(i, 0, 0), -20)
		chk.Float64(tst, "qy", 1e-12, HFL.At(i, 0, 1), 0)
	}
	q1, _ := stp.FieldAt("Q", 1, "")
	q4, _ := stp.FieldAt("Q", 4, "")
	chk.Float64(tst, "heat through left side", 1e-12, q1+q4, -20)

	// flux on right side
	m = stripModel(tst)
	require.NoError(tst, m.PrescribedBC(ILO, ele.T, Const(0)))
	stp, err = m.StaticStep("flux", 1, 1)
	require.NoError(tst, err)
	require.NoError(tst, stp.SurfaceFlux("right", 20))
	require.NoError(tst, m.Solve())
	for _, lbl := range []int{3, 6} {
		T, _ := stp.FieldAt("T", lbl, "")
		chk.Float64(tst, "T right", 1e-12, T, 20)
	}
	T, _ := stp.FieldAt("T", 2, "")
	chk.Float64(tst, "T middle", 1e-12, T, 10)
}

func Test_solve07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solve07. cantilever beam")

	m := NewModel()
	require.NoError(tst, m.Mesh([][]float64{{1, 0, 0}, {2, 1, 0}, {3, 2, 0}}, [][]int{{1, 1, 2}, {2, 2, 3}}))
	mat, _ := mdl.NewSimple("mat", "E", 1000.0)
	require.NoError(tst, m.AddMaterial(mat))
	require.NoError(tst, m.ElementBlock("beams", ALL))
	require.NoError(tst, m.AssignProperties("beams", "beam", "mat", ele.Fab{"A": 0.1, "Izz": 0.01}))
	require.NoError(tst, m.FixNodes(Nodes(1)))
	stp, err := m.StaticStep("tip", 1, 1)
	require.NoError(tst, err)
	require.NoError(tst, stp.ConcentratedLoad(Nodes(3), ele.Y, Const(-1)))
	require.NoError(tst, m.Solve())

	sol := ana.Cantilever{P: -1, L: 2, EI: 1000 * 0.01}
	v, _ := stp.FieldAt("U", 3, "y")
	θ, _ := stp.FieldAt("R", 3, "z")
	chk.Float64(tst, "δ = PL³/3EI", 1e-12, v, sol.Deflection())
	chk.Float64(tst, "θ = PL²/2EI", 1e-12, θ, sol.Rotation())
	rf, _ := stp.FieldAt("RF", 1, "y")
	mz, _ := stp.FieldAt("M", 1, "z")
	chk.Float64(tst, "RFy", 1e-12, rf, 1)
	chk.Float64(tst, "Mz", 1e-12, mz, sol.Moment())
}

func Test_solve08(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solve08. order of steps")

	m := linkModel(tst, Ramp)
	_, err := m.StaticStep("s1", 1, 1)
	require.NoError(tst, err)
	s2, err := m.StaticStep("s2", 1, 1)
	require.NoError(tst, err)
	require.Error(tst, s2.Run())
	require.NoError(tst, m.Solve())
	assert.True(tst, s2.Ran)

	// steps added after solving run on the next call
	s3, err := m.StaticStep("s3", 1, 1)
	require.NoError(tst, err)
	require.NoError(tst, m.Solve())
	assert.True(tst, s3.Ran)
	chk.Float64(tst, "end time", 1e-15, s3.Time(), 3)
}

func Test_solve09(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solve09. confined column under gravity")

	// 1 x 4 column of quad4 elements
	var nodes [][]float64
	var elems [][]int
	for j := 0; j <= 4; j++ {
		y := 0.25 * float64(j)
		nodes = append(nodes, []float64{float64(2*j + 1), 0, y}, []float64{float64(2*j + 2), 1, y})
		if j < 4 {
			elems = append(elems, []int{j + 1, 2*j + 1, 2*j + 2, 2*j + 4, 2*j + 3})
		}
	}
	m := NewModel()
	require.NoError(tst, m.Mesh(nodes, elems))
	soil, _ := mdl.NewSimple("soil", "E", 1000.0, "nu", 0.25, "rho", 2.0)
	require.NoError(tst, m.AddMaterial(soil))
	require.NoError(tst, m.ElementBlock("column", ALL))
	require.NoError(tst, m.AssignProperties("column", "quad4", "soil", nil))
	require.NoError(tst, m.PrescribedBC(ILO, ele.X, Const(0)))
	require.NoError(tst, m.PrescribedBC(IHI, ele.X, Const(0)))
	require.NoError(tst, m.PrescribedBC(JLO, ele.Y, Const(0)))
	stp, err := m.StaticStep("gravity", 1, 2)
	require.NoError(tst, err)
	require.NoError(tst, stp.GravityLoad(ALL, []float64{0, -10}))
	require.NoError(tst, m.Solve())

	var sol ana.ConfinedSelfWeight
	require.NoError(tst, sol.Init(dbf.Params{
		&dbf.P{N: "E", V: 1000},
		&dbf.P{N: "nu", V: 0.25},
		&dbf.P{N: "rho", V: 2},
	}))

	// nodal displacements at both frames
	for k, fac := range []float64{0.5, 1} {
		U := stp.Frames[k+1].Field("U")
		for i, lbl := range U.Labels {
			x := m.Coord[m.node2idx[lbl]]
			chk.Array(tst, "u", 1e-13, U.Row(i), sol.Displ(fac, x))
		}
	}

	// mean stresses of each element equal the solution at the centre
	S := stp.LastFrame().BlockField("column", "S")
	for i := range S.Labels {
		mean := make([]float64, 4)
		for ip := 0; ip < S.Ngauss; ip++ {
			for j := range mean {
				mean[j] += S.At(i, ip, j) / float64(S.Ngauss)
			}
		}
		xc := []float64{0.5, 0.25*float64(i) + 0.125}
		chk.Array(tst, "σ", 1e-11, mean, sol.Stress(1, xc))
	}
}
