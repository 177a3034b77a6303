// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// Film holds the data of a surface film (convection) condition
type Film struct {
	Tsink float64 // sink temperature
	H     float64 // film coefficient
}

// Loads holds distributed loads and fluxes acting on one element
type Loads struct {
	Body   []float64         // [ndim] distributed (body) load per unit volume; nil if none
	Trac   map[int][]float64 // edge index => [ndim] traction (force per unit area)
	Flux   map[int]float64   // edge index => normal heat flux entering the element
	Film   map[int]Film      // edge index => film condition
	Source float64           // heat source per unit volume
}

// NewLoads returns empty loads
func NewLoads() *Loads {
	return &Loads{
		Trac: make(map[int][]float64),
		Flux: make(map[int]float64),
		Film: make(map[int]Film),
	}
}

// Empty tells whether no load acts on the element
func (o *Loads) Empty() bool {
	if o == nil {
		return true
	}
	for _, b := range o.Body {
		if b != 0 {
			return false
		}
	}
	return len(o.Trac) == 0 && len(o.Flux) == 0 && len(o.Film) == 0 && o.Source == 0
}
