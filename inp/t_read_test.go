// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"bytes"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01. yaml file")

	sim, err := ReadSim("data/frame.yaml")
	require.NoError(tst, err)

	// derived
	chk.String(tst, sim.Key, "frame")
	chk.String(tst, sim.DirOut, "/tmp/gofem2/frame")
	chk.String(tst, sim.EncType, "json")
	chk.String(tst, sim.Data.Policy, "snap")

	// mesh
	chk.Int(tst, "nnodes", len(sim.Mesh.Nodes), 5)
	chk.Ints(tst, "beam", sim.Mesh.Elems[1], []int{20, 3, 5})
	chk.Ints(tst, "elemset", sim.Mesh.ElemSets["plates"], []int{10})
	require.Len(tst, sim.Mesh.Surfaces["top"], 1)
	assert.Equal(tst, FaceData{Elem: 10, Edge: 2}, sim.Mesh.Surfaces["top"][0])

	// blocks
	require.Len(tst, sim.Blocks, 2)
	chk.String(tst, sim.Blocks[0].Set, "plates")
	chk.Ints(tst, "girder", sim.Blocks[1].Elems, []int{20})
	chk.Float64(tst, "Izz", 1e-17, sim.Blocks[1].Fab["Izz"], 0.1)

	// conditions
	require.Len(tst, sim.Initial.Fix, 1)
	chk.String(tst, sim.Initial.Fix[0].Set, "JLO")
	require.Len(tst, sim.Steps, 2)
	s := sim.Steps[0]
	chk.String(tst, s.Name, "lift")
	chk.Float64(tst, "period", 1e-17, s.Period, 2)
	chk.Int(tst, "increments", s.Increments, 4)
	require.Len(tst, s.Bcs, 1)
	chk.Ints(tst, "bc nodes", s.Bcs[0].Nodes, []int{5})
	chk.String(tst, s.Bcs[0].Comps, "y")
	chk.String(tst, s.Bcs[0].Func, "lift")

	// defaults of second step
	s = sim.Steps[1]
	chk.String(tst, s.Name, "Step-2")
	chk.Float64(tst, "period", 1e-17, s.Period, 1)
	chk.Int(tst, "increments", s.Increments, 1)
	require.Len(tst, s.Pressures, 1)
	chk.Float64(tst, "pressure", 1e-17, s.Pressures[0].Value, 10)

	// functions
	f, err := sim.Functions.Get("lift")
	require.NoError(tst, err)
	chk.Float64(tst, "lift(0.5)", 1e-15, f.F(0.5, nil), 0.5)
	f, err = sim.Functions.Get("zero")
	require.NoError(tst, err)
	chk.Float64(tst, "zero", 1e-17, f.F(10, nil), 0)
	_, err = sim.Functions.Get("nope")
	require.Error(tst, err)

	// materials
	mats, err := sim.Materials.Models()
	require.NoError(tst, err)
	require.Len(tst, mats, 1)
	E, ok := mats[0].Property("E")
	assert.True(tst, ok)
	chk.Float64(tst, "E", 1e-17, E, 1000)

	// info
	var buf bytes.Buffer
	require.NoError(tst, sim.GetInfo(&buf))
	assert.Contains(tst, buf.String(), "\"desc\": \"plate and girder\"")
	if chk.Verbose {
		io.Pf("%v\n", sim.Functions)
	}
}

func Test_sim02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim02. json file")

	sim, err := ReadSim("data/frame.sim")
	require.NoError(tst, err)
	chk.String(tst, sim.Key, "frame")
	chk.String(tst, sim.EncType, "gob")
	chk.String(tst, sim.Data.Policy, "")
	require.Len(tst, sim.Steps, 1)
	s := sim.Steps[0]
	chk.String(tst, s.Name, "Step-1")
	require.Len(tst, s.Cloads, 1)
	chk.Float64(tst, "load", 1e-17, s.Cloads[0].Value, -1)
	chk.Ints(tst, "nodes", s.Cloads[0].Nodes, []int{5})
	chk.String(tst, s.Cloads[0].Where.String(), "nodes[5]")
	chk.String(tst, sim.Initial.Fix[0].String(), "\"JLO\"")
}

func Test_sim03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim03. invalid data")

	mesh := `
mesh:
  nodes: [[1, 0, 0], [2, 1, 0]]
  elems: [[1, 1, 2]]
materials:
  - {name: m, prms: [{n: E, v: 1}]}
`
	_, err := DecodeSim([]byte(mesh), true)
	require.NoError(tst, err)

	for _, bad := range []string{
		"data: {encoder: xml}\n" + mesh,
		"mesh: {nodes: [[1, 0, 0]]}\n",
		mesh + "blocks:\n  - {name: b, set: ALL, type: link, mat: nope}\n",
		mesh + "  - {name: m, prms: [{n: E, v: 2}]}\n",
		mesh + "steps:\n  - {period: -1}\n",
		mesh + "functions:\n  - {name: f, type: unknown}\n",
		"{ not yaml",
	} {
		_, err = DecodeSim([]byte(bad), true)
		require.Error(tst, err, "input:\n%s", bad)
	}

	// json
	_, err = DecodeSim([]byte(`{"mesh":{"nodes":[[1,0,0]],"elems":[[1,1]]}}`), false)
	require.NoError(tst, err)
	_, err = DecodeSim([]byte(`{"mesh":`), false)
	require.Error(tst, err)

	// file
	_, err = ReadSim("data/nonexistent.sim")
	require.Error(tst, err)
}

func Test_func01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("func01. function database")

	fcns := FuncsData{
		{Name: "grow", Type: "lin", Prms: dbf.Params{&dbf.P{N: "m", V: 2}, &dbf.P{N: "ts", V: 1}}},
		{Name: "badtype", Type: "unknown"},
		{Name: "noprms", Type: "rmp", Prms: dbf.Params{&dbf.P{N: "ca", V: 0}}},
	}

	f, err := fcns.Get("grow")
	require.NoError(tst, err)
	chk.Float64(tst, "grow(3)", 1e-15, f.F(3, nil), 4)
	f, err = fcns.Get("none")
	require.NoError(tst, err)
	chk.Float64(tst, "none", 1e-17, f.F(3, nil), 0)

	// dbf failures are returned as errors
	_, err = fcns.Get("badtype")
	require.Error(tst, err)
	assert.Contains(tst, err.Error(), "unknown")
	_, err = fcns.Get("noprms")
	require.Error(tst, err)
	assert.Contains(tst, err.Error(), "cb")
	_, err = fcns.Get("undefined")
	require.Error(tst, err)

	// the same failures surface from the input reader
	mesh := `
mesh:
  nodes: [[1, 0, 0], [2, 1, 0]]
  elems: [[1, 1, 2]]
`
	_, err = DecodeSim([]byte(mesh+"functions:\n  - {name: r, type: rmp, prms: [{n: ca, v: 1}]}\n"), true)
	require.Error(tst, err)
	_, err = ReadSim("data/nonexistent.yaml")
	require.Error(tst, err)
	assert.Contains(tst, err.Error(), "nonexistent.yaml")
}
