// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_shp01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shp01. shape functions")

	for _, typ := range []string{"lin2", "tri3", "qua4"} {
		shape, err := Get(typ)
		if err != nil {
			tst.Errorf("Get failed:\n%v", err)
			return
		}
		CheckShape(tst, shape, 1e-15, chk.Verbose)
		CheckShapeFace(tst, shape, 1e-15, chk.Verbose)
		CheckDSdR(tst, shape, []float64{0.1, 0.2, 0}, 1e-9, chk.Verbose)
		sumw := 0.0
		for _, ip := range shape.Ips {
			sumw += ip.W
		}
		area := map[string]float64{"lin2": 2, "tri3": 0.5, "qua4": 4}
		chk.Float64(tst, typ+": sum of weights", 1e-15, sumw, area[typ])
	}
	if _, err := Get("hex20"); err == nil {
		tst.Errorf("hex20 should not be available")
	}
}

func Test_shp02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shp02. derivatives in real space")

	// 2 x 1 rectangle
	shape, _ := Get("qua4")
	x := [][]float64{
		{0, 2, 2, 0},
		{0, 0, 1, 1},
	}
	err := shape.CalcAtIp(x, []float64{0, 0, 0}, true)
	if err != nil {
		tst.Errorf("CalcAtIp failed:\n%v", err)
		return
	}
	chk.Float64(tst, "J", 1e-15, shape.J, 0.5)
	chk.Array(tst, "G0", 1e-15, shape.G[0], []float64{-0.25, -0.5})
	chk.Array(tst, "G2", 1e-15, shape.G[2], []float64{0.25, 0.5})
	chk.Array(tst, "xip", 1e-15, shape.IpRealCoords(x, Ipoint{0, 0, 0, 1}), []float64{1, 0.5})

	// inclined edge
	edge, _ := Get("lin2")
	err = edge.CalcAtIp([][]float64{{0, 3}, {0, 4}}, []float64{0.3}, true)
	if err != nil {
		tst.Errorf("CalcAtIp failed:\n%v", err)
		return
	}
	chk.Float64(tst, "J", 1e-15, edge.J, 2.5)

	// clockwise numbering gives negative Jacobian
	err = shape.CalcAtIp([][]float64{{0, 0, 2, 2}, {0, 1, 1, 0}}, []float64{0, 0, 0}, true)
	if err == nil {
		tst.Errorf("clockwise element should have failed")
	}
}
