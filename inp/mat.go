// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/prklVIP/gofem2/mdl"
)

// MatData holds material data
type MatData struct {
	Name string     `json:"name" yaml:"name"` // name of material
	Desc string     `json:"desc" yaml:"desc"` // description
	Prms dbf.Params `json:"prms" yaml:"prms"` // parameters; e.g. E, nu, rho, k, alpha
}

// MatsData holds materials
type MatsData []*MatData

// Get returns the material data with given name or nil
func (o MatsData) Get(name string) *MatData {
	for _, m := range o {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Models allocates all materials
func (o MatsData) Models() (mats []*mdl.Material, err error) {
	for _, m := range o {
		mat, err := mdl.New(m.Name, m.Prms)
		if err != nil {
			return nil, chk.Err("cannot allocate material %q:\n%v", m.Name, err)
		}
		mats = append(mats, mat)
	}
	return
}

// String prints one material
func (o *MatData) String() string {
	l := io.Sf("    {\"name\":%q, \"prms\":[", o.Name)
	for i, p := range o.Prms {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("{\"n\":%q, \"v\":%g}", p.N, p.V)
	}
	return l + "]}"
}
