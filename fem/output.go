// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"fmt"

	"github.com/cpmech/gosl/chk"
	"github.com/prklVIP/gofem2/out"
)

// Advance commits the state variables and writes a new converged frame with the
// degrees-of-freedom and reactions
//  dofs  -- [neq] degrees-of-freedom at the end of the increment
//  react -- [neq] reactions; may be nil
func (o *Step) Advance(dtime float64, dofs, react []float64) (err error) {
	if !o.LastFrame().Converged {
		return fmt.Errorf("%w: step %q, frame %d", ErrNotConverged, o.Name, o.LastFrame().Number)
	}
	m := o.model
	neq := m.Dofs.Size()
	if len(dofs) != neq || (react != nil && len(react) != neq) {
		return chk.Err("step %q: vectors must have %d values. len(dofs)=%d, len(react)=%d", o.Name, neq, len(dofs), len(react))
	}

	// state variables
	o.Svars.Commit()

	// new frame
	frame := o.Frame(dtime)

	// degrees-of-freedom and reactions
	if err = m.writeDofs(frame.Fields, dofs, "U", "R", "T"); err != nil {
		return
	}
	if react != nil {
		if err = m.writeDofs(frame.Fields, react, "RF", "M", "Q"); err != nil {
			return
		}
	}

	// state variables of elements
	for _, b := range m.Blocks {
		vars := m.Elements[b.Elems[0]].Variables()
		for v, vr := range vars {
			f := frame.Fields.GetBlock(b.Name, vr.Name)
			if f == nil {
				return chk.Err("field output of variable %q in block %q is missing", vr.Name, b.Name)
			}
			for i, e := range b.Elems {
				row := o.Svars.Lay[e].Extract(o.Svars.Committed(e), v)
				if err = f.AddData(row, i); err != nil {
					return
				}
			}
		}
	}
	copy(o.Dofs, dofs)
	frame.Converged = true
	return
}

// writeDofs decomposes a vector of equations into the displacement, rotation and temperature
// fields of a registry
func (o *Model) writeDofs(reg *out.Registry, Y []float64, disp, rot, temp string) (err error) {
	fields := map[string][]float64{}
	for _, name := range []string{disp, rot, temp} {
		if f := reg.Get(name); f != nil {
			fields[name] = make([]float64, len(f.Data))
		}
	}
	for _, d := range o.Dofs.Dofs {
		name, comp := temp, temp
		switch {
		case d.Comp.IsDisplacement():
			name, comp = disp, axes[d.Comp.Dim()]
		case d.Comp.IsRotation():
			name, comp = rot, axes[d.Comp.Dim()]
		}
		f := reg.Get(name)
		if f == nil {
			return chk.Err("field output %q is missing", name)
		}
		j := f.Comp(comp)
		if j < 0 {
			return chk.Err("field output %q has no component %q", name, comp)
		}
		fields[name][d.Node*f.Ncomp()+j] = Y[d.Eq]
	}
	for name, vals := range fields {
		if err = reg.Get(name).AddData(vals); err != nil {
			return
		}
	}
	return
}

// FieldAt returns the value of a nodal field output at a node label in the last frame of a step
func (o *Step) FieldAt(name string, node int, comp string) (float64, error) {
	f := o.LastFrame().Field(name)
	if f == nil {
		return 0, chk.Err("field output %q does not exist", name)
	}
	i := f.Index(node)
	j := f.Comp(comp)
	if comp == "" {
		j = 0
	}
	if i < 0 || j < 0 {
		return 0, chk.Err("field output %q has no node %d or component %q", name, node, comp)
	}
	return f.At(i, 0, j), nil
}
