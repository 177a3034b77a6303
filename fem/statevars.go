// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/prklVIP/gofem2/ele"
)

// Slice is a half-open range [Start, End) into a flat buffer
type Slice struct {
	Start int
	End   int
}

// Len returns the length of this slice
func (o Slice) Len() int { return o.End - o.Start }

// StateVars holds the state (history) variables of all elements in two flat buffers
//  data[0] is the committed slot (read); data[1] is the working slot (write)
type StateVars struct {
	Tab  []Slice      // [nelem] slices of each element, in model order
	Lay  []ele.Layout // [nelem] layout of each element's slice
	data [2][]float64 // committed and working slots
}

// NewStateVars builds the slice table and zero-fills both slots
func NewStateVars(elems []ele.Element) (o *StateVars) {
	o = new(StateVars)
	o.Tab = make([]Slice, len(elems))
	o.Lay = make([]ele.Layout, len(elems))
	pos := 0
	for e, elem := range elems {
		o.Lay[e] = ele.GetLayout(elem)
		n := 0
		if o.Lay[e].Nvars > 0 {
			n = o.Lay[e].Size()
		}
		o.Tab[e] = Slice{pos, pos + n}
		pos += n
	}
	o.data[0] = make([]float64, pos)
	o.data[1] = make([]float64, pos)
	return
}

// Size returns the length of each slot
func (o *StateVars) Size() int { return len(o.data[0]) }

// Committed returns the committed variables of element e
func (o *StateVars) Committed(e int) []float64 {
	s := o.Tab[e]
	return o.data[0][s.Start:s.End:s.End]
}

// Working returns the working variables of element e
func (o *StateVars) Working(e int) []float64 {
	s := o.Tab[e]
	return o.data[1][s.Start:s.End:s.End]
}

// Begin resets the working slot with the committed values
func (o *StateVars) Begin() { copy(o.data[1], o.data[0]) }

// Commit copies the working slot into the committed slot
func (o *StateVars) Commit() { copy(o.data[0], o.data[1]) }

// CopyFrom copies the committed values of another store with the same slice table into both slots
func (o *StateVars) CopyFrom(other *StateVars) (err error) {
	if other.Size() != o.Size() || len(other.Tab) != len(o.Tab) {
		return chk.Err("state variables cannot be copied: sizes %d and %d differ", other.Size(), o.Size())
	}
	copy(o.data[0], other.data[0])
	copy(o.data[1], other.data[0])
	return
}

// Clone returns a deep copy
func (o *StateVars) Clone() (c *StateVars) {
	c = &StateVars{
		Tab: append([]Slice{}, o.Tab...),
		Lay: append([]ele.Layout{}, o.Lay...),
	}
	c.data[0] = append([]float64{}, o.data[0]...)
	c.data[1] = append([]float64{}, o.data[1]...)
	return
}
