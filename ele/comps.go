// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"strings"

	"github.com/cpmech/gosl/chk"
)

// Comp is a set of nodal degrees-of-freedom components
type Comp uint8

// components. The order of the bits defines the local (and global) numbering order
const (
	X  Comp = 1 << iota // displacement along x
	Y                   // displacement along y
	Z                   // displacement along z
	TX                  // rotation about x
	TY                  // rotation about y
	TZ                  // rotation about z
	T                   // temperature
)

// sets of components
const (
	None          Comp = 0
	Displacements      = X | Y | Z
	Rotations          = TX | TY | TZ
	All                = X | Y | Z | TX | TY | TZ | T
)

// AllComps lists each single component in numbering order
var AllComps = []Comp{X, Y, Z, TX, TY, TZ, T}

var compNames = map[Comp]string{X: "X", Y: "Y", Z: "Z", TX: "TX", TY: "TY", TZ: "TZ", T: "T"}

// Comps returns the single components of this set in numbering order
func (o Comp) Comps() (res []Comp) {
	for _, c := range AllComps {
		if o&c != 0 {
			res = append(res, c)
		}
	}
	return
}

// Count returns the number of components in this set
func (o Comp) Count() (n int) {
	for _, c := range AllComps {
		if o&c != 0 {
			n++
		}
	}
	return
}

// Has tells whether all components in c are in this set
func (o Comp) Has(c Comp) bool { return c != 0 && o&c == c }

// Index returns the position of a single component in AllComps or -1
func (o Comp) Index() int {
	for i, c := range AllComps {
		if o == c {
			return i
		}
	}
	return -1
}

// IsDisplacement tells whether o is a single displacement component
func (o Comp) IsDisplacement() bool { return o.Count() == 1 && Displacements.Has(o) }

// IsRotation tells whether o is a single rotation component
func (o Comp) IsRotation() bool { return o.Count() == 1 && Rotations.Has(o) }

// IsTemperature tells whether o is the temperature component
func (o Comp) IsTemperature() bool { return o == T }

// String returns the names of the components joined by "|"
func (o Comp) String() string {
	if o == None {
		return "NONE"
	}
	var names []string
	for _, c := range o.Comps() {
		names = append(names, compNames[c])
	}
	return strings.Join(names, "|")
}

// ParseComp parses a single name ("x", "TZ", "all") or names joined by "|" or ","
func ParseComp(s string) (res Comp, err error) {
	for _, name := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' || r == ' ' }) {
		key := strings.ToUpper(name)
		if key == "ALL" {
			res |= All
			continue
		}
		found := false
		for c, n := range compNames {
			if n == key {
				res |= c
				found = true
				break
			}
		}
		if !found {
			return None, chk.Err("component %q is invalid. options are X, Y, Z, TX, TY, TZ, T and ALL", name)
		}
	}
	if res == None {
		return None, chk.Err("at least one component must be given")
	}
	return
}

// Dim returns the space dimension index (0, 1 or 2) of a single displacement or rotation component
func (o Comp) Dim() int {
	switch o {
	case X, TX:
		return 0
	case Y, TY:
		return 1
	case Z, TZ:
		return 2
	}
	return -1
}

// DispComps returns the displacement components of an ndim space
func DispComps(ndim int) Comp {
	switch ndim {
	case 1:
		return X
	case 2:
		return X | Y
	}
	return X | Y | Z
}
