// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// BuildCoordsMatrix returns the coordinate matrix of a particular element
//  coords -- [nnodes in mesh][ndim] coordinates of all nodes
//  nodes  -- internal indices of the element's nodes
//  x      -- [ndim][len(nodes)] coordinates
func BuildCoordsMatrix(coords [][]float64, nodes []int) (x [][]float64) {
	if len(coords) == 0 {
		return
	}
	ndim := len(coords[0])
	x = utl.Alloc(ndim, len(nodes))
	for i := 0; i < ndim; i++ {
		for j, n := range nodes {
			x[i][j] = coords[n][i]
		}
	}
	return
}

// EdgeNormal returns the outward unit normal and the length of a straight edge of a 2D element
// whose nodes are numbered counter-clockwise
//  a, b -- local indices of the edge nodes
func EdgeNormal(x [][]float64, a, b int) (n []float64, length float64, err error) {
	if len(x) != 2 {
		return nil, 0, chk.Err("edge normals are only available in 2D. ndim = %d is invalid", len(x))
	}
	dx := x[0][b] - x[0][a]
	dy := x[1][b] - x[1][a]
	length = math.Sqrt(dx*dx + dy*dy)
	if length < 1e-14 {
		return nil, 0, chk.Err("edge between local nodes %d and %d has zero length", a, b)
	}
	n = []float64{dy / length, -dx / length}
	return
}

// CheckNodes checks the number of nodes and coordinates given to an allocator
func CheckNodes(name string, nodes []int, x [][]float64, nnode int, ndims ...int) error {
	if len(nodes) != nnode {
		return chk.Err("%s requires %d nodes. %d given", name, nnode, len(nodes))
	}
	if len(x) < 1 || len(x[0]) != nnode {
		return chk.Err("%s: coordinates matrix must be [ndim][%d]", name, nnode)
	}
	if len(ndims) == 0 {
		return nil
	}
	for _, ndim := range ndims {
		if len(x) == ndim {
			return nil
		}
	}
	return chk.Err("%s: space dimension %d is invalid; options are %v", name, len(x), ndims)
}
