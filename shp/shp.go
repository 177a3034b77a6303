// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape structures and integration points for finite elements
package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// constants
const MINDET = 1.0e-14 // minimum determinant allowed for dxdR

// ShpFunc is a shape function callback
//  S    -- [nverts] shape functions
//  dSdR -- [nverts][gndim] derivatives; may be nil if derivs == false
//  r    -- natural coordinates
//  idxFace -- not used; -1
type ShpFunc func(S []float64, dSdR [][]float64, r []float64, derivs bool, idxFace int)

// Ipoint holds integration point natural coordinates and weight
type Ipoint struct {
	R, S, T, W float64
}

// Shape holds geometry data and the scratchpad of one element
type Shape struct {

	// geometry
	Type           string      // name; e.g. "lin2"
	FaceType       string      // geometry of faces; e.g. "lin2"
	Gndim          int         // geometry of shape; space dimension
	Nverts         int         // number of vertices
	NatCoords      [][]float64 // [gndim][nverts] natural coordinates of vertices
	FaceLocalVerts [][]int     // [nfaces][nfaceverts] local vertices of faces
	Ips            []Ipoint    // default integration points
	Func           ShpFunc     // shape functions and derivatives

	// scratchpad: volume
	S    []float64   // [nverts] shape functions
	G    [][]float64 // [nverts][ndim] G == dSdx. derivative of shape function
	J    float64     // Jacobian: determinant of dxdr or norm of tangent for 1D shapes in nD space
	DSdR [][]float64 // [nverts][gndim] derivatives of S w.r.t natural coordinates
	DxdR [][]float64 // [ndim][gndim] derivatives of real coordinates w.r.t natural coordinates
	DRdx [][]float64 // [gndim][ndim] derivatives of natural coordinates w.r.t real coordinates
}

// factory of shapes
var factory = map[string]*Shape{}

// Get returns a new shape structure of given geometry type
func Get(geoType string) (*Shape, error) {
	s, ok := factory[geoType]
	if !ok {
		return nil, chk.Err("shape %q is not available", geoType)
	}
	o := &Shape{
		Type:           s.Type,
		FaceType:       s.FaceType,
		Gndim:          s.Gndim,
		Nverts:         s.Nverts,
		NatCoords:      s.NatCoords,
		FaceLocalVerts: s.FaceLocalVerts,
		Ips:            s.Ips,
		Func:           s.Func,
	}
	o.S = make([]float64, o.Nverts)
	o.DSdR = utl.Alloc(o.Nverts, o.Gndim)
	return o, nil
}

// CalcAtIp calculates volume data such as S and G at natural coordinate r
//  x -- [ndim][nverts] real coordinates of vertices
//  Note: G is only computed if ndim == gndim
func (o *Shape) CalcAtIp(x [][]float64, r []float64, derivs bool) (err error) {

	// S and dSdR
	o.Func(o.S, o.DSdR, r, derivs, -1)
	if !derivs {
		return
	}

	// dxdR := sum_n x * dSdR   =>  dx_i/dR_j := sum_n x^n_i * dS^n/dR_j
	ndim := len(x)
	if len(o.DxdR) != ndim {
		o.DxdR = utl.Alloc(ndim, o.Gndim)
		o.DRdx = utl.Alloc(o.Gndim, ndim)
		o.G = utl.Alloc(o.Nverts, ndim)
	}
	for i := 0; i < ndim; i++ {
		for j := 0; j < o.Gndim; j++ {
			o.DxdR[i][j] = 0.0
			for n := 0; n < o.Nverts; n++ {
				o.DxdR[i][j] += x[i][n] * o.DSdR[n][j]
			}
		}
	}

	// 1D shapes in nD space: norm of tangent
	if o.Gndim == 1 {
		o.J = 0
		for i := 0; i < ndim; i++ {
			o.J += o.DxdR[i][0] * o.DxdR[i][0]
		}
		o.J = math.Sqrt(o.J)
		if o.J < MINDET {
			return chk.Err("%s: length of tangent is too small: J = %g", o.Type, o.J)
		}
		return
	}

	// planar shapes
	if o.Gndim != 2 || ndim != 2 {
		return chk.Err("%s: cannot compute derivatives with ndim=%d and gndim=%d", o.Type, ndim, o.Gndim)
	}
	a, b, c, d := o.DxdR[0][0], o.DxdR[0][1], o.DxdR[1][0], o.DxdR[1][1]
	o.J = a*d - b*c
	if o.J < MINDET {
		return chk.Err("%s: inverse of dxdR failed; det(dxdR) = %g is too small or negative", o.Type, o.J)
	}
	o.DRdx[0][0], o.DRdx[0][1] = d/o.J, -b/o.J
	o.DRdx[1][0], o.DRdx[1][1] = -c/o.J, a/o.J

	// G == dSdx := dSdR * dRdx  =>  dS^m/dR_i := sum_i dS^m/dR_i * dR_i/dx_j
	for m := 0; m < o.Nverts; m++ {
		for j := 0; j < ndim; j++ {
			o.G[m][j] = 0
			for i := 0; i < o.Gndim; i++ {
				o.G[m][j] += o.DSdR[m][i] * o.DRdx[i][j]
			}
		}
	}
	return
}

// IpRealCoords returns the real coordinates of an integration point
func (o *Shape) IpRealCoords(x [][]float64, ip Ipoint) (y []float64) {
	ndim := len(x)
	y = make([]float64, ndim)
	o.Func(o.S, o.DSdR, []float64{ip.R, ip.S, ip.T}, false, -1)
	for i := 0; i < ndim; i++ {
		for n := 0; n < o.Nverts; n++ {
			y[i] += o.S[n] * x[i][n]
		}
	}
	return
}
