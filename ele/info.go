// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// Layout describes how the state variables of an element are stored in its slice
//  The slice holds [max(1,nip)][nvars][max(1,width)] values
type Layout struct {
	Nvars int // number of variables
	Width int // max(1, tensor width)
	Nip   int // max(1, number of integration points)
}

// GetLayout returns the state variables layout of an element
func GetLayout(e Element) (o Layout) {
	o.Nvars = len(e.Variables())
	o.Width = e.TensorWidth()
	if o.Width < 1 {
		o.Width = 1
	}
	o.Nip = e.Nip()
	if o.Nip < 1 {
		o.Nip = 1
	}
	return
}

// Size returns the number of values of the slice; zero if there are no variables
func (o Layout) Size() int {
	return o.Nvars * o.Width * o.Nip
}

// Index returns the position of component k of variable v at integration point ip
func (o Layout) Index(ip, v, k int) int {
	return (ip*o.Nvars+v)*o.Width + k
}

// Get returns the sub-slice of variable v at integration point ip
func (o Layout) Get(s []float64, ip, v int) []float64 {
	i := o.Index(ip, v, 0)
	return s[i : i+o.Width : i+o.Width]
}

// Extract returns all values of variable v ordered as [ip][k]
func (o Layout) Extract(s []float64, v int) (res []float64) {
	res = make([]float64, 0, o.Nip*o.Width)
	for ip := 0; ip < o.Nip; ip++ {
		res = append(res, o.Get(s, ip, v)...)
	}
	return
}
