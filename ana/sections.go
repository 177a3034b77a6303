// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/prklVIP/gofem2/mdl"
)

// CrossSection computes cross-sectional properties of beams and links
//
//  2D    y1     y2 is out-of-plane
//         ^
//         |
//         o-------------------------------o
//         |                               |
//         |                               |
//       (y2)------------------------------o-------> y0
//
//   typ : rectangle
//         circle                             tw
//         I-beam                         -->| |<--
//                                    ___    | |     ___
//   ^ 1       +-------+            tf |   ########   |
//   |         |       |              ---  ########   |
//   |         |       |                      ##      |
//   +----> 2  |       | h = hei              ##      | h = hei
//             |       |                      ##      |
//             |       |              ---  ########   |
//             +-------+            tf_|_  ########  ---
//              b = wid                    b = wid
//
type CrossSection struct {

	// input
	Type string  // "rectangle", "I-beam" or "circle"
	Wid  float64 // width (b) if not circular
	Hei  float64 // height (h) if not circular
	Tf   float64 // flange thickness if I-beam
	Tw   float64 // web thickness if I-beam
	R    float64 // radius if circular

	// derived
	A   float64 // cross-sectional area
	I22 float64 // major moment of inertia; i.e. about the out-of-plane axis in 2D (Izz)
	I11 float64 // minor moment of inertia
}

// Init initialises structure and computes the moments of inertia
func (o *CrossSection) Init(typ string, wid, hei, tf, tw, rad float64) (err error) {

	// input data
	o.Type, o.Wid, o.Hei, o.Tf, o.Tw, o.R = typ, wid, hei, tf, tw, rad

	// derived
	switch typ {
	case "rectangle":
		if wid <= 0 || hei <= 0 {
			return chk.Err("rectangle requires positive width and height. %g x %g is invalid", wid, hei)
		}
		b, h := wid, hei
		o.A = b * h
		o.I22 = b * h * h * h / 12.0
		o.I11 = b * b * b * h / 12.0

	case "I-beam":
		if wid <= 0 || hei <= 2.0*tf || tf <= 0 || tw <= 0 || tw > wid {
			return chk.Err("I-beam dimensions are invalid: b=%g, h=%g, tf=%g, tw=%g", wid, hei, tf, tw)
		}
		b, h := wid, hei
		b3 := b * b * b
		h3 := h * h * h
		tw3 := tw * tw * tw
		l := h - 2.0*tf
		l3 := l * l * l
		o.A = b*h - l*(b-tw)
		o.I22 = b*h3/12.0 - (b-tw)*l3/12.0
		o.I11 = l*tw3/12.0 + tf*b3/6.0

	case "circle":
		if rad <= 0 {
			return chk.Err("circle requires a positive radius. r = %g is invalid", rad)
		}
		r2 := rad * rad
		o.A = math.Pi * r2
		o.I22 = math.Pi * r2 * r2 / 4.0
		o.I11 = o.I22

	default:
		return chk.Err("cross-section type %q is unavailable", typ)
	}
	return
}

// Fab returns the fabrication properties of beams (A, Izz) and links (A)
func (o *CrossSection) Fab() map[string]float64 {
	return map[string]float64{"A": o.A, "Izz": o.I22}
}

// RefMaterial returns a material with the parameters (E, nu, rho) of some reference materials
//  Input:
//   unitPres:  "kPa" => E:[kPa], rho:[Mg/m³]
//              "MPa" => E:[MPa], rho:[Gg/m³]
//              "GPa" => E:[GPa], rho:[Tg/m³]
func RefMaterial(typ, unitPres string) (*mdl.Material, error) {

	// material data in MPa and Gg/m³
	var E, ν, ρ float64
	switch typ {
	case "steel":
		E, ν, ρ = 200000.0, 0.32, 7.85e-3
	case "aluminum":
		E, ν, ρ = 73100.0, 0.35, 2.79e-3
	case "concrete":
		E, ν, ρ = 22100.0, 0.15, 2.38e-3
	case "soft-soil":
		E, ν, ρ = 10.0, 0.30, 1.80e-3
	case "wood":
		E, ν, ρ = 13100.0, 0.29, 4.70e-4
	default:
		return nil, chk.Err("material type %q is unavailable", typ)
	}

	// convert units
	switch unitPres {
	case "kPa":
		E, ρ = E*1e3, ρ*1e3
	case "MPa":
	case "GPa":
		E, ρ = E*1e-3, ρ*1e-3
	default:
		return nil, chk.Err("unit of pressure %q is invalid", unitPres)
	}
	return mdl.NewSimple(typ, "E", E, "nu", ν, "rho", ρ)
}

// Cantilever holds the solution of a cantilever beam with a transverse load P at its tip
type Cantilever struct {
	P  float64 // tip load
	L  float64 // length
	EI float64 // bending stiffness
}

// Deflection returns the tip deflection P L³ / (3 E I)
func (o Cantilever) Deflection() float64 { return o.P * o.L * o.L * o.L / (3.0 * o.EI) }

// Rotation returns the tip rotation P L² / (2 E I)
func (o Cantilever) Rotation() float64 { return o.P * o.L * o.L / (2.0 * o.EI) }

// Moment returns the reaction moment at the clamped end
func (o Cantilever) Moment() float64 { return -o.P * o.L }
