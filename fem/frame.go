// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/prklVIP/gofem2/out"
)

// Frame holds the field outputs at the end of one increment of a step
type Frame struct {
	Number    int           // index within step
	Start     float64       // time at the beginning of the increment
	Increment float64       // time increment
	Value     float64       // time at the end of the increment (Start + Increment)
	Fields    *out.Registry // field outputs
	Converged bool          // frame is final
}

// newFrame returns a new frame with a deep copy of fields
func newFrame(number int, start, increment float64, fields *out.Registry) *Frame {
	return &Frame{
		Number:    number,
		Start:     start,
		Increment: increment,
		Value:     start + increment,
		Fields:    fields.Clone(),
	}
}

// AdjustDt changes the time increment of a frame that has not converged yet
func (o *Frame) AdjustDt(dtime float64) error {
	if o.Converged {
		return inputErr("increment of converged frame %d cannot be adjusted", o.Number)
	}
	if dtime < 0 {
		return inputErr("time increment must not be negative. %g is invalid", dtime)
	}
	o.Increment = dtime
	o.Value = o.Start + dtime
	return nil
}

// Field returns the field output with given name (global) or nil
func (o *Frame) Field(name string) *out.FieldOutput { return o.Fields.Get(name) }

// BlockField returns the field output of a variable in an element block or nil
func (o *Frame) BlockField(block, name string) *out.FieldOutput { return o.Fields.GetBlock(block, name) }
