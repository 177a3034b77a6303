// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mdl implements materials: named sets of parameters and the constitutive models built on them
package mdl

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Material holds a named set of parameters
//  Known parameters are:
//   E     -- Young's modulus
//   nu    -- Poisson's coefficient
//   rho   -- density
//   k     -- isotropic thermal conductivity
//   alpha -- coefficient of thermal expansion
type Material struct {
	Name string     `json:"name"` // name of material
	Prms dbf.Params `json:"prms"` // parameters
}

// New returns a new material. Parameters with empty names or repeated names are not accepted
func New(name string, prms dbf.Params) (o *Material, err error) {
	if name == "" {
		return nil, chk.Err("material name must not be empty")
	}
	seen := make(map[string]bool)
	for _, p := range prms {
		if p == nil || p.N == "" {
			return nil, chk.Err("material %q: parameter without name", name)
		}
		if seen[p.N] {
			return nil, chk.Err("material %q: parameter %q is repeated", name, p.N)
		}
		seen[p.N] = true
	}
	return &Material{Name: name, Prms: prms}, nil
}

// NewSimple returns a material given pairs of names and values; e.g. NewSimple("steel", "E", 200e9, "nu", 0.3)
func NewSimple(name string, pairs ...interface{}) (*Material, error) {
	if len(pairs)%2 != 0 {
		return nil, chk.Err("material %q: parameters must be given as name-value pairs", name)
	}
	var prms dbf.Params
	for i := 0; i < len(pairs); i += 2 {
		n, ok := pairs[i].(string)
		if !ok {
			return nil, chk.Err("material %q: parameter name must be a string. %v is invalid", name, pairs[i])
		}
		var v float64
		switch x := pairs[i+1].(type) {
		case float64:
			v = x
		case int:
			v = float64(x)
		default:
			return nil, chk.Err("material %q: value of parameter %q must be a number", name, n)
		}
		prms = append(prms, &dbf.P{N: n, V: v})
	}
	return New(name, prms)
}

// Property returns the value of a parameter and whether it exists
func (o *Material) Property(name string) (float64, bool) {
	for _, p := range o.Prms {
		if p.N == name {
			return p.V, true
		}
	}
	return 0, false
}

// Require returns the value of a parameter or an error if it does not exist
func (o *Material) Require(name, caller string) (float64, error) {
	v, ok := o.Property(name)
	if !ok {
		return 0, chk.Err("%s: material %q does not have parameter %q", caller, o.Name, name)
	}
	return v, nil
}

// Optional returns the value of a parameter or a default value
func (o *Material) Optional(name string, dflt float64) float64 {
	if v, ok := o.Property(name); ok {
		return v
	}
	return dflt
}

// String returns a summary of this material
func (o *Material) String() (l string) {
	l = io.Sf("%s:", o.Name)
	for _, p := range o.Prms {
		l += io.Sf(" %s=%g", p.N, p.V)
	}
	return
}
