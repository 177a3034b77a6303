// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/prklVIP/gofem2/inp"
	"github.com/prklVIP/gofem2/out"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_main01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main01. link from yaml file with database")

	analysis, err := NewMain("data/link.yaml", chk.Verbose)
	require.NoError(tst, err)
	chk.Int(tst, "steps", len(analysis.Model.Steps), 3)
	chk.String(tst, analysis.Model.Steps[2].Name, "unload")
	require.NoError(tst, analysis.Run())

	// results file
	fnpath := filepath.Join(analysis.Sim.DirOut, "link.json")
	recs, err := out.Load(fnpath, "json")
	require.NoError(tst, err)
	chk.Int(tst, "nrecs", len(recs), 4)
	key := out.Key{Name: "U"}
	t, u, err := out.History(recs, key, 2, 0, "x")
	require.NoError(tst, err)
	chk.Array(tst, "t", 1e-15, t, []float64{0, 0.5, 1, 2})
	chk.Array(tst, "u", 1e-15, u, []float64{0, 0.025, 0.05, 0})

	// database
	db, err := out.OpenDB(filepath.Join(analysis.Sim.DirOut, "link.db"))
	require.NoError(tst, err)
	defer db.Close()
	n, err := db.NumFrames(context.Background())
	require.NoError(tst, err)
	chk.Int(tst, "nframes", n, 4)
	t, u, err = db.History(context.Background(), key, 2, 0, "x")
	require.NoError(tst, err)
	chk.Array(tst, "t from db", 1e-15, t, []float64{0, 0.5, 1, 2})
	chk.Array(tst, "u from db", 1e-15, u, []float64{0, 0.025, 0.05, 0})
	_, S, err := db.History(context.Background(), out.Key{Block: "rods", Name: "S"}, 1, 0, "")
	require.NoError(tst, err)
	chk.Array(tst, "S from db", 1e-12, S, []float64{0, 25, 50, 0})
}

func Test_main02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main02. strip with film from json file")

	analysis, err := NewMain("data/strip.sim", chk.Verbose)
	require.NoError(tst, err)
	assert.Equal(tst, Snap, analysis.Model.Policy)
	require.NoError(tst, analysis.Run())

	recs, err := out.Load(filepath.Join(analysis.Sim.DirOut, "strip.gob"), "gob")
	require.NoError(tst, err)
	chk.Int(tst, "nrecs", len(recs), 2)
	T := recs[1].Field(out.Key{Name: "T"})
	require.NotNil(tst, T)
	for lbl, Tref := range map[int]float64{1: 0, 2: 25, 3: 50, 4: 0, 5: 25, 6: 50} {
		chk.Float64(tst, "T", 1e-12, T.At(T.Index(lbl), 0, 0), Tref)
	}
}

func Test_main03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main03. invalid input")

	// file not found
	_, err := NewMain("data/nonexistent.yaml", false)
	require.Error(tst, err)

	// unknown set in conditions
	sim, err := inp.ReadSim("data/link.yaml")
	require.NoError(tst, err)
	sim.Steps[0].Cloads[0].Set = "nope"
	_, err = NewMainFromSim(sim, false)
	require.Error(tst, err)

	// conflicting conditions
	sim, err = inp.ReadSim("data/link.yaml")
	require.NoError(tst, err)
	sim.Steps[0].Cloads[0].Comps = "y"
	_, err = NewMainFromSim(sim, false)
	require.Error(tst, err)

	// invalid policy
	sim, err = inp.ReadSim("data/link.yaml")
	require.NoError(tst, err)
	sim.Data.Policy = "jump"
	_, err = NewMainFromSim(sim, false)
	require.Error(tst, err)
}
