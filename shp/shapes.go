// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import "math"

func init() {

	// lin2
	a := 1.0 / math.Sqrt(3.0)
	factory["lin2"] = &Shape{
		Type:      "lin2",
		Gndim:     1,
		Nverts:    2,
		NatCoords: [][]float64{{-1, 1}},
		Ips:       []Ipoint{{-a, 0, 0, 1}, {a, 0, 0, 1}},
		Func:      FuncLin2,
	}

	// tri3
	factory["tri3"] = &Shape{
		Type:           "tri3",
		FaceType:       "lin2",
		Gndim:          2,
		Nverts:         3,
		NatCoords:      [][]float64{{0, 1, 0}, {0, 0, 1}},
		FaceLocalVerts: [][]int{{0, 1}, {1, 2}, {2, 0}},
		Ips:            []Ipoint{{1.0 / 3.0, 1.0 / 3.0, 0, 0.5}},
		Func:           FuncTri3,
	}

	// qua4
	factory["qua4"] = &Shape{
		Type:           "qua4",
		FaceType:       "lin2",
		Gndim:          2,
		Nverts:         4,
		NatCoords:      [][]float64{{-1, 1, 1, -1}, {-1, -1, 1, 1}},
		FaceLocalVerts: [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}},
		Ips:            []Ipoint{{-a, -a, 0, 1}, {a, -a, 0, 1}, {a, a, 0, 1}, {-a, a, 0, 1}},
		Func:           FuncQua4,
	}
}

// FuncLin2 calculates the shape functions (S) and derivatives of shape functions (dSdR) of lin2
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
//
//   -1     0    +1
//    0-----------1-->r
func FuncLin2(S []float64, dSdR [][]float64, R []float64, derivs bool, idxFace int) {
	r := R[0]
	S[0] = 0.5 * (1.0 - r)
	S[1] = 0.5 * (1.0 + r)
	if !derivs {
		return
	}
	dSdR[0][0] = -0.5
	dSdR[1][0] = 0.5
}

// FuncTri3 calculates the shape functions (S) and derivatives of shape functions (dSdR) of tri3
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
//
//    s
//    |
//    2, (0,1)
//    | ',
//    |   ',
//    |     ',
//    |       ',
//    |         ',
//    0-----------1 ---- r
//  (0,0)       (1,0)
func FuncTri3(S []float64, dSdR [][]float64, R []float64, derivs bool, idxFace int) {
	r, s := R[0], R[1]
	S[0] = 1.0 - r - s
	S[1] = r
	S[2] = s
	if !derivs {
		return
	}
	dSdR[0][0], dSdR[0][1] = -1.0, -1.0
	dSdR[1][0], dSdR[1][1] = 1.0, 0.0
	dSdR[2][0], dSdR[2][1] = 0.0, 1.0
}

// FuncQua4 calculates the shape functions (S) and derivatives of shape functions (dSdR) of qua4
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
//
//    3-----------2
//    |     s     |
//    |     |     |
//    |     +--r  |
//    |           |
//    |           |
//    0-----------1
func FuncQua4(S []float64, dSdR [][]float64, R []float64, derivs bool, idxFace int) {
	r, s := R[0], R[1]
	S[0] = (1.0 - r - s + r*s) / 4.0
	S[1] = (1.0 + r - s - r*s) / 4.0
	S[2] = (1.0 + r + s + r*s) / 4.0
	S[3] = (1.0 - r + s - r*s) / 4.0
	if !derivs {
		return
	}
	dSdR[0][0], dSdR[0][1] = (-1.0+s)/4.0, (-1.0+r)/4.0
	dSdR[1][0], dSdR[1][1] = (+1.0-s)/4.0, (-1.0-r)/4.0
	dSdR[2][0], dSdR[2][1] = (+1.0+s)/4.0, (+1.0+r)/4.0
	dSdR[3][0], dSdR[3][1] = (-1.0-s)/4.0, (+1.0-r)/4.0
}
