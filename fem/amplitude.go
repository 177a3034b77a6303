// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/fun/dbf"
)

// Amplitude defines the values of a condition at nodes. It is resolved to one value per node when
// the condition is assigned
type Amplitude struct {
	vals []float64                 // per-node values; len == 1 with cte == true for constants
	cte  bool                      // constant
	fcn  func(x []float64) float64 // function of coordinates
}

// Const returns a constant amplitude
func Const(c float64) Amplitude { return Amplitude{vals: []float64{c}, cte: true} }

// Values returns an amplitude with one value per resolved node
func Values(v ...float64) Amplitude { return Amplitude{vals: append([]float64{}, v...)} }

// Func returns an amplitude computed with the coordinates of each node
func Func(f func(x []float64) float64) Amplitude { return Amplitude{fcn: f} }

// FromDbf returns an amplitude computed with a function from the gosl database evaluated as F(0, x)
func FromDbf(f dbf.T) Amplitude {
	return Amplitude{fcn: func(x []float64) float64 { return f.F(0, x) }}
}

// resolve returns one value per node
func (o Amplitude) resolve(coords [][]float64, nodes []int) (a []float64, err error) {
	a = make([]float64, len(nodes))
	switch {
	case o.fcn != nil:
		for i, n := range nodes {
			a[i] = o.fcn(coords[n])
		}
	case o.cte:
		for i := range a {
			a[i] = o.vals[0]
		}
	default:
		if len(o.vals) != len(nodes) {
			return nil, inputErr("incorrect amplitude length: %d values given for %d nodes", len(o.vals), len(nodes))
		}
		copy(a, o.vals)
	}
	for i, v := range a {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, inputErr("amplitude at node index %d is not finite", nodes[i])
		}
	}
	return
}
