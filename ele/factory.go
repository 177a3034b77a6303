// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/prklVIP/gofem2/mdl"
)

// Fab holds fabrication properties such as the cross-sectional area "A", the second moment of
// area "Izz" or the thickness "t"
type Fab map[string]float64

// Get returns a fabrication property or a default value
func (o Fab) Get(key string, dflt float64) float64 {
	if v, ok := o[key]; ok {
		return v
	}
	return dflt
}

// AllocatorType defines a function that allocates an element
//  label -- element label
//  nodes -- internal indices of nodes
//  x     -- [ndim][nnode] coordinates of nodes
type AllocatorType func(label int, nodes []int, x [][]float64, mat *mdl.Material, fab Fab) (Element, error)

// New returns a new element from factory
func New(elementName string, label int, nodes []int, x [][]float64, mat *mdl.Material, fab Fab) (e Element, err error) {
	fcn, ok := allocators[elementName]
	if !ok {
		return nil, chk.Err("cannot get allocator for element {type=%q, label=%d}. available types are %v", elementName, label, Available())
	}
	e, err = fcn(label, nodes, x, mat, fab)
	if err != nil {
		return nil, chk.Err("cannot allocate element {type=%q, label=%d}:\n%v", elementName, label, err)
	}
	return
}

// SetAllocator sets a new callback function to allocate an element
func SetAllocator(elementName string, fcn AllocatorType) {
	if _, ok := allocators[elementName]; ok {
		chk.Panic("cannot set allocator function for %q because element name exists already", elementName)
	}
	allocators[elementName] = fcn
}

// GetAllocator gets callback function to allocate an element
func GetAllocator(elementName string) AllocatorType {
	if fcn, ok := allocators[elementName]; ok {
		return fcn
	}
	chk.Panic("cannot get allocator function for element %q", elementName)
	return nil
}

// Available returns the sorted names of all registered elements
func Available() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// allocators holds all element allocators
var allocators = make(map[string]AllocatorType)
