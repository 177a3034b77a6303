// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"fmt"

	"github.com/cpmech/gosl/io"
)

// Run solves all increments of this step. One linear solve is carried out per increment
func (o *Step) Run() (err error) {
	if o.Number == 0 {
		return inputErr("the initial step cannot be run")
	}
	if o.Ran {
		return inputErr("step %q has been run already", o.Name)
	}
	if o.Previous.Number > 0 && !o.Previous.Ran {
		return inputErr("step %q cannot run before step %q", o.Name, o.Previous.Name)
	}
	if len(o.Frames) > 1 {
		return inputErr("step %q has frames already", o.Name)
	}

	// the previous step may have run after this step was created
	if err = o.seed(o.Previous); err != nil {
		return
	}
	m := o.model
	if m.ShowMsg {
		io.Pf("> Running step %q: period = %g, increments = %d\n", o.Name, o.Period, o.Increments)
	}
	asm := NewAssembler(o)
	dt := o.Period / float64(o.Increments)
	for n := 1; n <= o.Increments; n++ {

		// time within step
		t := float64(n) * dt
		o.Svars.Begin()

		// prescribed values and assembly
		tags, vals := o.DofVals(t)
		K, F, Q, err := asm.Assemble(Increment{Time: t, Dtime: dt, U: o.Dofs})
		if err != nil {
			return err
		}

		// solve
		u, err := SolvePartitioned(K, F, Q, tags, vals)
		if err != nil {
			return fmt.Errorf("step %q, increment %d: %w", o.Name, n, err)
		}
		R := Reactions(K, u, F, Q)

		// state variables
		if err = asm.Update(Increment{Time: t, Dtime: dt, U: u}); err != nil {
			return err
		}

		// new frame
		if err = o.Advance(dt, u, R); err != nil {
			return err
		}
		if m.ShowMsg {
			io.Pf("  increment %3d: time = %g\n", n, o.Time())
		}
	}
	o.Ran = true
	return
}
