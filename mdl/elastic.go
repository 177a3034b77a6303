// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdl

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Elastic implements linear isotropic elasticity for plane and 1D analyses
type Elastic struct {
	E     float64 // Young's modulus
	Nu    float64 // Poisson's coefficient
	Alpha float64 // coefficient of thermal expansion
	Rho   float64 // density
}

// NewElastic initialises an elastic model from the parameters of a material
//  E is required; nu, alpha and rho default to zero
func NewElastic(mat *Material) (o *Elastic, err error) {
	if mat == nil {
		return nil, chk.Err("elastic model requires a material")
	}
	o = new(Elastic)
	o.E, err = mat.Require("E", "elastic model")
	if err != nil {
		return nil, err
	}
	if o.E <= 0 {
		return nil, chk.Err("elastic model: E must be positive. E = %g is invalid", o.E)
	}
	o.Nu = mat.Optional("nu", 0)
	if o.Nu <= -1 || o.Nu >= 0.5 {
		return nil, chk.Err("elastic model: nu must be in (-1, 0.5). nu = %g is invalid", o.Nu)
	}
	o.Alpha = mat.Optional("alpha", 0)
	o.Rho = mat.Optional("rho", 0)
	return
}

// G returns the shear modulus
func (o *Elastic) G() float64 { return o.E / (2.0 * (1.0 + o.Nu)) }

// PlaneD returns the 4x4 stiffness matrix relating {εxx, εyy, εzz, γxy} to {σxx, σyy, σzz, σxy}
//  pstress -- plane stress (σzz = 0); otherwise plane strain (εzz = 0)
//  Note: εzz is never given to D in plane-strain and σzz is computed from εxx and εyy
func (o *Elastic) PlaneD(pstress bool) (D [][]float64) {
	D = utl.Alloc(4, 4)
	E, ν := o.E, o.Nu
	if pstress {
		c := E / (1.0 - ν*ν)
		D[0][0], D[0][1] = c, c*ν
		D[1][0], D[1][1] = c*ν, c
		D[3][3] = c * (1.0 - ν) / 2.0
		return
	}
	c := E / ((1.0 + ν) * (1.0 - 2.0*ν))
	D[0][0], D[0][1] = c*(1.0-ν), c*ν
	D[1][0], D[1][1] = c*ν, c*(1.0-ν)
	D[2][0], D[2][1] = c*ν, c*ν
	D[3][3] = c * (1.0 - 2.0*ν) / 2.0
	return
}

// Conductivity holds isotropic thermal conductivity
type Conductivity struct {
	K float64 // conductivity
}

// NewConductivity initialises the conductivity model from the parameters of a material
func NewConductivity(mat *Material) (o *Conductivity, err error) {
	if mat == nil {
		return nil, chk.Err("conductivity model requires a material")
	}
	o = new(Conductivity)
	o.K, err = mat.Require("k", "conductivity model")
	if err != nil {
		return nil, err
	}
	if o.K <= 0 {
		return nil, chk.Err("conductivity model: k must be positive. k = %g is invalid", o.K)
	}
	return
}
