// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/prklVIP/gofem2/mdl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_comps01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("comps01. component sets")

	sig := X | Y | TZ
	chk.Int(tst, "count", sig.Count(), 3)
	assert.Equal(tst, []Comp{X, Y, TZ}, sig.Comps())
	assert.True(tst, sig.Has(X|TZ))
	assert.False(tst, sig.Has(Z))
	assert.False(tst, sig.Has(None))
	chk.String(tst, sig.String(), "X|Y|TZ")
	chk.Int(tst, "index of T", T.Index(), 6)
	chk.Int(tst, "dim of TZ", TZ.Dim(), 2)
	assert.True(tst, Y.IsDisplacement())
	assert.True(tst, TY.IsRotation())
	assert.True(tst, T.IsTemperature())
	assert.False(tst, (X | Y).IsDisplacement())
	assert.Equal(tst, X|Y, DispComps(2))

	c, err := ParseComp("x|y")
	require.NoError(tst, err)
	assert.Equal(tst, X|Y, c)
	c, err = ParseComp("TZ, T")
	require.NoError(tst, err)
	assert.Equal(tst, TZ|T, c)
	c, err = ParseComp("all")
	require.NoError(tst, err)
	assert.Equal(tst, All, c)
	_, err = ParseComp("W")
	assert.Error(tst, err)
	_, err = ParseComp("")
	assert.Error(tst, err)
}

func Test_layout01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("layout01. state variables layout")

	lay := Layout{Nvars: 2, Width: 4, Nip: 4}
	chk.Int(tst, "size", lay.Size(), 32)
	chk.Int(tst, "index", lay.Index(1, 1, 2), 14)

	s := make([]float64, lay.Size())
	for i := range s {
		s[i] = float64(i)
	}
	chk.Array(tst, "ip=1, v=0", 1e-15, lay.Get(s, 1, 0), []float64{8, 9, 10, 11})
	e := lay.Extract(s, 1)
	chk.Int(tst, "len(extract)", len(e), 16)
	chk.Array(tst, "extract[:4]", 1e-15, e[:4], []float64{4, 5, 6, 7})
	chk.Array(tst, "extract[4:8]", 1e-15, e[4:8], []float64{12, 13, 14, 15})

	// capacity-limited
	g := lay.Get(s, 0, 0)
	chk.Int(tst, "cap", cap(g), 4)
}

func Test_aux01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("aux01. coordinates and normals")

	coords := [][]float64{{0, 0}, {3, 0}, {3, 4}}
	x := BuildCoordsMatrix(coords, []int{2, 0})
	chk.Array(tst, "x", 1e-15, x[0], []float64{3, 0})
	chk.Array(tst, "y", 1e-15, x[1], []float64{4, 0})

	x = BuildCoordsMatrix(coords, []int{0, 1, 2})
	n, l, err := EdgeNormal(x, 1, 2)
	require.NoError(tst, err)
	chk.Float64(tst, "length", 1e-15, l, 4)
	chk.Array(tst, "normal", 1e-15, n, []float64{1, 0})

	loads := NewLoads()
	assert.True(tst, loads.Empty())
	loads.Flux[0] = 1
	assert.False(tst, loads.Empty())

	st := &State{Temp: []float64{10, 20}, Temp0: []float64{0, 10}}
	chk.Float64(tst, "ΔT", 1e-15, st.DeltaTemp(), 10)
}

func Test_factory01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("factory01. element allocators")

	SetAllocator("broken", func(label int, nodes []int, x [][]float64, mat *mdl.Material, fab Fab) (Element, error) {
		return nil, chk.Err("always fails")
	})
	assert.Contains(tst, Available(), "broken")
	assert.NotNil(tst, GetAllocator("broken"))
	assert.Panics(tst, func() { GetAllocator("unknown") })
	assert.Panics(tst, func() { SetAllocator("broken", nil) })

	_, err := New("broken", 1, []int{0, 1}, nil, nil, nil)
	require.Error(tst, err)
	assert.Contains(tst, err.Error(), "always fails")
	_, err = New("unknown", 1, []int{0, 1}, nil, nil, nil)
	require.Error(tst, err)
	assert.Contains(tst, err.Error(), "broken")
}
