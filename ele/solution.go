// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// State holds the data given to the kernels of one element during an increment
type State struct {

	// time
	Time  float64 // time within step at the end of the increment
	Dtime float64 // time increment

	// degrees-of-freedom
	U []float64 // [nnode*ncomp] local values; current (committed) during assembly, solved during Update

	// state variables
	Old []float64 // committed state variables of this element (read-only)
	New []float64 // working state variables of this element (written by Update)

	// loads and predefined fields
	Loads *Loads    // interpolated element loads; never nil
	Temp  []float64 // [nnode] interpolated nodal temperatures; nil if no temperature field is prescribed
	Temp0 []float64 // [nnode] reference nodal temperatures (initial step); nil if none
}

// DeltaTemp returns the mean nodal temperature change with respect to the reference temperature
func (o *State) DeltaTemp() (dT float64) {
	if len(o.Temp) == 0 {
		return
	}
	for i, t := range o.Temp {
		t0 := 0.0
		if len(o.Temp0) > i {
			t0 = o.Temp0[i]
		}
		dT += t - t0
	}
	return dT / float64(len(o.Temp))
}
