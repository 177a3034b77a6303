// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"sort"
	"strings"

	"github.com/cpmech/gosl/io"
)

// regionKind defines how a region is resolved
type regionKind int

const (
	regionNodes regionKind = iota // node labels
	regionElems                   // element labels
	regionSet                     // named node set, element set or element block
	regionAll                     // everything
	regionSide                    // side of bounding box
)

// Region selects nodes or elements of a model
type Region struct {
	kind   regionKind
	labels []int
	name   string
	dim    int  // side: coordinate index
	high   bool // side: upper bound
}

// symbolic regions
var (
	ALL = Region{kind: regionAll}                      // all nodes or elements
	ILO = Region{kind: regionSide, dim: 0}             // nodes with minimum x
	IHI = Region{kind: regionSide, dim: 0, high: true} // nodes with maximum x
	JLO = Region{kind: regionSide, dim: 1}             // nodes with minimum y
	JHI = Region{kind: regionSide, dim: 1, high: true} // nodes with maximum y
	KLO = Region{kind: regionSide, dim: 2}             // nodes with minimum z
	KHI = Region{kind: regionSide, dim: 2, high: true} // nodes with maximum z
)

// Nodes returns a region with node labels
func Nodes(labels ...int) Region { return Region{kind: regionNodes, labels: labels} }

// Elems returns a region with element labels. Resolved as nodes, it returns the nodes of the elements
func Elems(labels ...int) Region { return Region{kind: regionElems, labels: labels} }

// Set returns a region defined by a named node set, element set or element block
func Set(name string) Region { return Region{kind: regionSet, name: name} }

// ParseRegion converts a string into a region: "ALL", "ILO", ..., "KHI" or a set name
func ParseRegion(s string) Region {
	switch strings.ToUpper(s) {
	case "ALL":
		return ALL
	case "ILO":
		return ILO
	case "IHI":
		return IHI
	case "JLO":
		return JLO
	case "JHI":
		return JHI
	case "KLO":
		return KLO
	case "KHI":
		return KHI
	}
	return Set(s)
}

// String returns a representation of this region
func (o Region) String() string {
	switch o.kind {
	case regionNodes:
		return io.Sf("nodes%v", o.labels)
	case regionElems:
		return io.Sf("elements%v", o.labels)
	case regionSet:
		return io.Sf("set %q", o.name)
	case regionAll:
		return "ALL"
	}
	side := []string{"I", "J", "K"}[o.dim]
	if o.high {
		return side + "HI"
	}
	return side + "LO"
}

// ResolveNodes returns the internal indices of the nodes in a region
//  The order of node labels and node sets is kept; all other regions are returned in ascending order
func (o *Model) ResolveNodes(r Region) (nodes []int, err error) {
	switch r.kind {
	case regionNodes:
		if len(r.labels) == 0 {
			return nil, inputErr("region %v is empty", r)
		}
		for _, l := range r.labels {
			n, ok := o.node2idx[l]
			if !ok {
				return nil, inputErr("node %d does not exist", l)
			}
			nodes = append(nodes, n)
		}
		return
	case regionAll:
		nodes = make([]int, len(o.Coord))
		for i := range nodes {
			nodes[i] = i
		}
		return
	case regionSide:
		if r.dim >= o.Ndim {
			return nil, inputErr("region %v is invalid in %dD", r, o.Ndim)
		}
		xmin, xmax := o.bbox(r.dim)
		tol := 1e-10 * math.Max(1.0, xmax-xmin)
		target := xmin
		if r.high {
			target = xmax
		}
		for i, x := range o.Coord {
			if math.Abs(x[r.dim]-target) <= tol {
				nodes = append(nodes, i)
			}
		}
		return
	case regionSet:
		if set, ok := o.NodeSets[r.name]; ok {
			return append([]int{}, set...), nil
		}
	}
	elems, err := o.ResolveElems(r)
	if err != nil {
		return
	}
	return o.elemNodes(elems), nil
}

// ResolveElems returns the internal indices of the elements in a region
func (o *Model) ResolveElems(r Region) (elems []int, err error) {
	switch r.kind {
	case regionElems:
		if len(r.labels) == 0 {
			return nil, inputErr("region %v is empty", r)
		}
		for _, l := range r.labels {
			e, ok := o.elem2idx[l]
			if !ok {
				return nil, inputErr("element %d does not exist", l)
			}
			elems = append(elems, e)
		}
		return
	case regionAll:
		elems = make([]int, len(o.Conn))
		for i := range elems {
			elems[i] = i
		}
		return
	case regionSet:
		if set, ok := o.ElemSets[r.name]; ok {
			return append([]int{}, set...), nil
		}
		if blk := o.Block(r.name); blk != nil {
			return append([]int{}, blk.Elems...), nil
		}
		return nil, inputErr("set %q does not exist", r.name)
	}
	return nil, inputErr("region %v cannot be resolved as elements", r)
}

// elemNodes returns the sorted unique nodes of elements
func (o *Model) elemNodes(elems []int) (nodes []int) {
	seen := make(map[int]bool)
	for _, e := range elems {
		for _, n := range o.Conn[e] {
			if !seen[n] {
				seen[n] = true
				nodes = append(nodes, n)
			}
		}
	}
	sort.Ints(nodes)
	return
}

// bbox returns the limits of the coordinates along dim
func (o *Model) bbox(dim int) (xmin, xmax float64) {
	xmin, xmax = math.Inf(1), math.Inf(-1)
	for _, x := range o.Coord {
		xmin = math.Min(xmin, x[dim])
		xmax = math.Max(xmax, x[dim])
	}
	return
}
