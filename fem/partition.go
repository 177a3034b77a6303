// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"fmt"
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// SolvePartitioned solves K u = F + Q with prescribed values u[tags] = vals
//  The reduced system K_ff u_f = F_f + Q_f - K_fp u_p is solved with an LU factorisation
func SolvePartitioned(K *mat.Dense, F, Q []float64, tags []int, vals []float64) (u []float64, err error) {
	n, _ := K.Dims()
	if len(F) != n || len(Q) != n {
		return nil, chk.Err("force vectors must have %d values. len(F)=%d, len(Q)=%d", n, len(F), len(Q))
	}
	if len(tags) != len(vals) {
		return nil, chk.Err("%d prescribed equations given with %d values", len(tags), len(vals))
	}
	u = make([]float64, n)
	prescribed := make([]bool, n)
	for i, I := range tags {
		prescribed[I] = true
		u[I] = vals[i]
	}
	var free []int
	for I := 0; I < n; I++ {
		if !prescribed[I] {
			free = append(free, I)
		}
	}
	if len(free) == 0 {
		return
	}

	// reduced system
	nf := len(free)
	Kff := mat.NewDense(nf, nf, nil)
	rhs := mat.NewVecDense(nf, nil)
	for i, I := range free {
		r := F[I] + Q[I]
		for j, J := range free {
			Kff.Set(i, j, K.At(I, J))
		}
		for _, P := range tags {
			r -= K.At(I, P) * u[P]
		}
		rhs.SetVec(i, r)
	}

	// solve
	var lu mat.LU
	lu.Factorize(Kff)
	var x mat.VecDense
	if e := lu.SolveVecTo(&x, false, rhs); e != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnderConstrained, e)
	}
	for i, I := range free {
		u[I] = x.AtVec(i)
	}
	if floats.HasNaN(u) || math.IsInf(floats.Norm(u, math.Inf(1)), 0) {
		return nil, ErrUnderConstrained
	}
	return
}

// Reactions returns R = K u - F - Q
func Reactions(K *mat.Dense, u, F, Q []float64) (R []float64) {
	var r mat.VecDense
	r.MulVec(K, mat.NewVecDense(len(u), u))
	R = make([]float64, len(u))
	copy(R, r.RawVector().Data)
	floats.Sub(R, F)
	floats.Sub(R, Q)
	return
}
