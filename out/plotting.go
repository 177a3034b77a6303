// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"math"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/guptarohit/asciigraph"
)

// History collects the values of one component of a field output at a label along all records
//  ip   -- integration point index (0 for nodal or element outputs)
//  comp -- component name; e.g. "x", "xx". Empty means the first component
func History(recs []*FrameRecord, key Key, label, ip int, comp string) (t, v []float64, err error) {
	for _, rec := range recs {
		f := rec.Field(key)
		if f == nil {
			continue
		}
		i := f.Index(label)
		if i < 0 {
			return nil, nil, chk.Err("label %d is not available in field output %q", label, key)
		}
		if ip < 0 || ip >= f.Ngauss {
			return nil, nil, chk.Err("integration point %d is out of range in field output %q", ip, key)
		}
		c := 0
		if comp != "" {
			c = f.Comp(comp)
			if c < 0 {
				return nil, nil, chk.Err("component %q is not available in field output %q. options are %v", comp, key, f.Comps)
			}
		}
		t = append(t, rec.Time)
		v = append(v, f.At(i, ip, c))
	}
	if len(t) == 0 {
		return nil, nil, chk.Err("field output %q is not available", key)
	}
	return
}

// PlotASCII returns a terminal plot of values
func PlotASCII(vals []float64, caption string) string {
	if len(vals) == 0 {
		return ""
	}
	data := vals
	if len(vals) == 1 {
		data = []float64{vals[0], vals[0]}
	}
	for _, x := range data {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return caption + ": cannot plot non-finite values"
		}
	}
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption(caption),
	)
}

// Table returns a table with times and values
func Table(t, v []float64, tlabel, vlabel string) string {
	var b strings.Builder
	b.WriteString(io.Sf("%14s%23s\n", tlabel, vlabel))
	for i := range t {
		b.WriteString(io.Sf("%14g%23.15e\n", t[i], v[i]))
	}
	return b.String()
}
