// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions used to verify finite element results
package ana

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// ConfinedSelfWeight computes the solution to a simple confined linear elastic domain under gravity
// in plane-strain
//
//     ▷ o-----------o ◁
//     ▷ |           | ◁
//     ▷ |    E, ρ   | ◁       negative stress means compression
//  h  ▷ |    ν, g   | ◁       g = 10  =>  b = -10 * ρ (body force)
//     ▷ |           | ◁
//     ▷ o-----------o ◁
//       △  △  △  △  △
//             w
type ConfinedSelfWeight struct {
	// input
	E float64 // Young's modulus
	ν float64 // Poisson's coefficient
	ρ float64 // density
	g float64 // gravity constant (positive value)
	h float64 // height

	// derived
	d float64 // auxiliary coefficient = ν/(1-ν)
	M float64 // P-wave modulus
}

// Init initialises this structure
//  Parameters (defaults): E (1000), nu (0.25), rho (2), g (10), h (1)
func (o *ConfinedSelfWeight) Init(prms dbf.Params) (err error) {

	// default values
	o.E = 1000.0
	o.ν = 0.25
	o.ρ = 2.0
	o.g = 10.0
	o.h = 1.0

	// parameters
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E = p.V
		case "nu":
			o.ν = p.V
		case "rho":
			o.ρ = p.V
		case "g":
			o.g = p.V
		case "h":
			o.h = p.V
		default:
			return chk.Err("confined self-weight: parameter %q is invalid", p.N)
		}
	}
	if o.E <= 0 || o.h <= 0 || o.ν <= -1 || o.ν >= 0.5 {
		return chk.Err("confined self-weight: E=%g, nu=%g, h=%g are invalid", o.E, o.ν, o.h)
	}

	// derived
	o.d = o.ν / (1.0 - o.ν)
	o.M = o.E * (1.0 - o.ν) / ((1.0 + o.ν) * (1.0 - 2.0*o.ν))
	return
}

// Stress computes the stress components {σxx, σyy, σzz, σxy} at elevation x[1]
//  fac -- load factor (1 means full gravity)
func (o ConfinedSelfWeight) Stress(fac float64, x []float64) (σ []float64) {
	z := x[1]                  // elevation
	b := o.g * fac             // body force
	σv := -o.ρ * b * (o.h - z) // vertical stress
	σh := o.d * σv             // horizontal stress
	return []float64{σh, σv, σh, 0}
}

// Displ computes the displacement components {ux, uy} at elevation x[1]
//  fac -- load factor (1 means full gravity)
func (o ConfinedSelfWeight) Displ(fac float64, x []float64) (u []float64) {
	z := x[1]                   // elevation
	b := o.g * fac              // body force
	α := -o.ρ * b / o.M         // auxiliary coefficient
	uv := α * (o.h - z/2.0) * z // vertical displacement
	return []float64{0, uv}
}
