// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"github.com/prklVIP/gofem2/ele"
	"gonum.org/v1/gonum/mat"
)

// Increment holds the time and degrees-of-freedom of one increment
type Increment struct {
	Time  float64   // time within step at the end of the increment
	Dtime float64   // time increment
	U     []float64 // [neq] degrees-of-freedom
}

// Assembler builds the global system of a step
type Assembler struct {
	Step *Step         // step providing conditions and state variables
	Eqs  [][]int       // [nelem] equations of each element
	Ke   [][][]float64 // [nelem] workspace for element stiffness matrices
	Fe   [][]float64   // [nelem] workspace for element force vectors
}

// NewAssembler returns a new assembler for a step
func NewAssembler(stp *Step) (o *Assembler) {
	o = &Assembler{Step: stp}
	m := stp.model
	o.Eqs = make([][]int, len(m.Elements))
	o.Ke = make([][][]float64, len(m.Elements))
	o.Fe = make([][]float64, len(m.Elements))
	for e, elem := range m.Elements {
		o.Eqs[e] = m.Dofs.Equations(elem)
		n := len(o.Eqs[e])
		o.Ke[e] = utl.Alloc(n, n)
		o.Fe[e] = make([]float64, n)
	}
	return
}

// States returns the element states of an increment
func (o *Assembler) States(inc Increment) (states []*ele.State) {
	m := o.Step.model
	loads := o.Step.ElementLoads(inc.Time)
	temp := o.Step.Temps(inc.Time)
	temp0 := m.Steps[0].Temp
	states = make([]*ele.State, len(m.Elements))
	for e, elem := range m.Elements {
		st := &ele.State{
			Time:  inc.Time,
			Dtime: inc.Dtime,
			U:     Gather(inc.U, o.Eqs[e]),
			Old:   o.Step.Svars.Committed(e),
			New:   o.Step.Svars.Working(e),
			Loads: loads[e],
		}
		if temp != nil {
			st.Temp = Gather(temp, elem.Nodes())
		}
		if temp0 != nil {
			st.Temp0 = Gather(temp0, elem.Nodes())
		}
		states[e] = st
	}
	return
}

// Assemble computes the global stiffness K, the global force F and the concentrated loads Q
func (o *Assembler) Assemble(inc Increment) (K *mat.Dense, F, Q []float64, err error) {
	m := o.Step.model
	neq := m.Dofs.Size()
	if len(inc.U) != neq {
		return nil, nil, nil, chk.Err("vector of degrees-of-freedom has %d values; %d are required", len(inc.U), neq)
	}
	K = mat.NewDense(neq, neq, nil)
	F = make([]float64, neq)
	states := o.States(inc)
	for e, elem := range m.Elements {
		Ke, Fe := o.Ke[e], o.Fe[e]
		for i := range Fe {
			Fe[i] = 0
			for j := range Ke[i] {
				Ke[i][j] = 0
			}
		}
		if err = elem.Stiffness(Ke, states[e]); err != nil {
			return nil, nil, nil, chk.Err("stiffness of element %d failed:\n%v", elem.Label(), err)
		}
		if err = elem.Force(Fe, states[e]); err != nil {
			return nil, nil, nil, chk.Err("force of element %d failed:\n%v", elem.Label(), err)
		}
		for i, I := range o.Eqs[e] {
			F[I] += Fe[i]
			for j, J := range o.Eqs[e] {
				K.Set(I, J, K.At(I, J)+Ke[i][j])
			}
		}
	}
	Q = o.Step.Cload(inc.Time)
	return
}

// Update computes the working state variables of elements with internal variables given the
// solved degrees-of-freedom
func (o *Assembler) Update(inc Increment) (err error) {
	states := o.States(inc)
	for e, elem := range o.Step.model.Elements {
		if w, ok := elem.(ele.WithIntVars); ok {
			if err = w.Update(states[e]); err != nil {
				return chk.Err("update of element %d failed:\n%v", elem.Label(), err)
			}
		}
	}
	return
}
