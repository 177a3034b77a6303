// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

// CalcStrain computes the small strains ε = {εxx, εyy, εzz, γxy} of a plane element
//  G -- [nverts][2] derivatives of shape functions w.r.t real coordinates
//  u -- [nverts*2] displacements
//  Note: γxy = 2 εxy is the engineering shear strain; εzz is left as zero
func CalcStrain(ε []float64, G [][]float64, u []float64) {
	for i := range ε {
		ε[i] = 0
	}
	for m := range G {
		ux, uy := u[2*m], u[2*m+1]
		ε[0] += G[m][0] * ux
		ε[1] += G[m][1] * uy
		ε[3] += G[m][1]*ux + G[m][0]*uy
	}
}

// CalcB computes the B matrix of a plane element such that ε = B * u
//  B -- [4][nverts*2]
func CalcB(B [][]float64, G [][]float64) {
	for m := range G {
		B[0][2*m], B[0][2*m+1] = G[m][0], 0
		B[1][2*m], B[1][2*m+1] = 0, G[m][1]
		B[2][2*m], B[2][2*m+1] = 0, 0
		B[3][2*m], B[3][2*m+1] = G[m][1], G[m][0]
	}
}
