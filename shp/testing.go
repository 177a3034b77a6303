// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/io"
)

// CheckShape checks that shape functions evaluate to 1.0 @ nodes
func CheckShape(tst *testing.T, shape *Shape, tol float64, verbose bool) {

	// loop over all vertices
	errS := 0.0
	r := []float64{0, 0, 0}
	for n := 0; n < shape.Nverts; n++ {

		// natural coordinates @ vertex
		for i := 0; i < shape.Gndim; i++ {
			r[i] = shape.NatCoords[i][n]
		}

		// compute function
		shape.Func(shape.S, shape.DSdR, r, false, -1)

		// check
		if verbose {
			io.Pf("S = %v\n", shape.S)
		}
		for m := 0; m < shape.Nverts; m++ {
			if n == m {
				errS += math.Abs(shape.S[m] - 1.0)
			} else {
				errS += math.Abs(shape.S[m])
			}
		}
	}

	// error
	if errS > tol {
		tst.Errorf("%s failed with err = %g\n", shape.Type, errS)
		return
	}
}

// CheckShapeFace checks that shape functions of vertices off a face vanish along the face
func CheckShapeFace(tst *testing.T, shape *Shape, tol float64, verbose bool) {

	// skip 1D shapes
	nfaces := len(shape.FaceLocalVerts)
	if nfaces == 0 {
		return
	}

	// loop over face vertices and mid-points
	errS := 0.0
	r := []float64{0, 0, 0}
	for k := 0; k < nfaces; k++ {
		face := shape.FaceLocalVerts[k]
		onface := make(map[int]bool)
		for _, v := range face {
			onface[v] = true
		}
		a, b := face[0], face[len(face)-1]
		for _, ξ := range []float64{0, 0.25, 0.5, 1} {

			// natural coordinates @ point on face
			for i := 0; i < shape.Gndim; i++ {
				r[i] = (1-ξ)*shape.NatCoords[i][a] + ξ*shape.NatCoords[i][b]
			}

			// compute function
			shape.Func(shape.S, shape.DSdR, r, false, -1)

			// check
			if verbose {
				io.Pf("face %d: ξ = %g: S = %v\n", k, ξ, shape.S)
			}
			sum := 0.0
			for m := 0; m < shape.Nverts; m++ {
				if onface[m] {
					sum += shape.S[m]
				} else {
					errS += math.Abs(shape.S[m])
				}
			}
			errS += math.Abs(sum - 1.0)
		}
	}

	// error
	if verbose {
		io.Pf("%g\n", errS)
	}
	if errS > tol {
		tst.Errorf("%s failed with err = %g\n", shape.Type, errS)
		return
	}
}

// CheckDSdR checks dSdR derivatives of shape structures using central differences
func CheckDSdR(tst *testing.T, shape *Shape, r []float64, tol float64, verbose bool) {

	// analytical
	shape.Func(shape.S, shape.DSdR, r, true, -1)

	// numerical
	h := 1e-5
	Sp := make([]float64, shape.Nverts)
	Sm := make([]float64, shape.Nverts)
	rr := make([]float64, 3)
	for j := 0; j < shape.Gndim; j++ {
		copy(rr, r)
		rr[j] = r[j] + h
		shape.Func(Sp, nil, rr, false, -1)
		rr[j] = r[j] - h
		shape.Func(Sm, nil, rr, false, -1)
		for m := 0; m < shape.Nverts; m++ {
			num := (Sp[m] - Sm[m]) / (2.0 * h)
			if verbose {
				io.Pf("dS%d/dR%d: ana = %v  num = %v\n", m, j, shape.DSdR[m][j], num)
			}
			if math.Abs(num-shape.DSdR[m][j]) > tol {
				tst.Errorf("%s: dS%d/dR%d failed: %g != %g\n", shape.Type, m, j, shape.DSdR[m][j], num)
			}
		}
	}
	shape.Func(shape.S, shape.DSdR, r, true, -1)
}
