// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements field outputs recorded at each frame and the export of results
package out

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Kind defines the tensorial kind of a field output
type Kind int

// kinds
const (
	Scalar    Kind = iota // one value per point
	Vector                // ncomp values per point
	SymTensor             // ndir+nshr values per point
)

// String returns the name of kind
func (o Kind) String() string {
	switch o {
	case Scalar:
		return "scalar"
	case Vector:
		return "vector"
	case SymTensor:
		return "symtensor"
	}
	return io.Sf("kind(%d)", int(o))
}

// Position defines where the values of a field output are located
type Position int

// positions
const (
	Node             Position = iota // nodal values
	Element                          // one set of values per element
	IntegrationPoint                 // one set of values per integration point of each element
)

// String returns the name of position
func (o Position) String() string {
	switch o {
	case Node:
		return "node"
	case Element:
		return "element"
	case IntegrationPoint:
		return "ip"
	}
	return io.Sf("position(%d)", int(o))
}

// Key identifies a field output. Block is empty for global outputs such as "U" or "RF"
type Key struct {
	Block string `json:"block"` // element block for block-specific internal variables
	Name  string `json:"name"`  // name of output; e.g. "U", "S"
}

// String returns "name" or "block.name"
func (o Key) String() string {
	if o.Block == "" {
		return o.Name
	}
	return o.Block + "." + o.Name
}

// FieldOutput holds the values of one named output
//  Data is stored as [len(Labels)][Ngauss][Ncomp]
type FieldOutput struct {
	Name     string    `json:"name"`     // name of output
	Block    string    `json:"block"`    // element block, if any
	Kind     Kind      `json:"kind"`     // scalar, vector or symmetric tensor
	Position Position  `json:"position"` // node, element or integration point
	Labels   []int     `json:"labels"`   // node or element labels
	Comps    []string  `json:"comps"`    // names of components; e.g. "x", "y" or "xx", "yy", "zz", "xy"
	Ngauss   int       `json:"ngauss"`   // number of integration points per label (1 if not at ips)
	Data     []float64 `json:"data"`     // values
}

// NewField allocates a zeroed field output
//  comps  -- names of components; a scalar has one component
//  ngauss -- integration points per label; values < 1 are taken as 1
func NewField(name, block string, kind Kind, pos Position, labels []int, comps []string, ngauss int) *FieldOutput {
	if ngauss < 1 {
		ngauss = 1
	}
	if len(comps) < 1 {
		comps = []string{name}
	}
	o := &FieldOutput{Name: name, Block: block, Kind: kind, Position: pos, Ngauss: ngauss}
	o.Labels = append([]int{}, labels...)
	o.Comps = append([]string{}, comps...)
	o.Data = make([]float64, len(labels)*ngauss*len(comps))
	return o
}

// Key returns the registry key of this output
func (o *FieldOutput) Key() Key { return Key{o.Block, o.Name} }

// Ncomp returns the number of components
func (o *FieldOutput) Ncomp() int { return len(o.Comps) }

// RowSize returns the number of values per label
func (o *FieldOutput) RowSize() int { return o.Ngauss * len(o.Comps) }

// AddData sets values. Without index, vals replaces all data; otherwise vals replaces the row
// corresponding to Labels[index[0]]
func (o *FieldOutput) AddData(vals []float64, index ...int) error {
	if len(index) == 0 {
		if len(vals) != len(o.Data) {
			return chk.Err("field output %q: cannot set %d values; %d are required", o.Key(), len(vals), len(o.Data))
		}
		copy(o.Data, vals)
		return nil
	}
	i := index[0]
	if i < 0 || i >= len(o.Labels) {
		return chk.Err("field output %q: row index %d is out of range [0, %d)", o.Key(), i, len(o.Labels))
	}
	m := o.RowSize()
	if len(vals) != m {
		return chk.Err("field output %q: row %d requires %d values; %d given", o.Key(), i, m, len(vals))
	}
	copy(o.Data[i*m:(i+1)*m], vals)
	return nil
}

// Row returns a copy of the values corresponding to Labels[i]
func (o *FieldOutput) Row(i int) []float64 {
	m := o.RowSize()
	return append([]float64{}, o.Data[i*m:(i+1)*m]...)
}

// At returns the value of component comp at integration point ip of Labels[i]
func (o *FieldOutput) At(i, ip, comp int) float64 {
	return o.Data[(i*o.Ngauss+ip)*len(o.Comps)+comp]
}

// Index returns the position of label in Labels or -1
func (o *FieldOutput) Index(label int) int {
	for i, l := range o.Labels {
		if l == label {
			return i
		}
	}
	return -1
}

// Comp returns the position of the component named c or -1
func (o *FieldOutput) Comp(c string) int {
	for i, name := range o.Comps {
		if name == c {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy
func (o *FieldOutput) Clone() *FieldOutput {
	c := *o
	c.Labels = append([]int{}, o.Labels...)
	c.Comps = append([]string{}, o.Comps...)
	c.Data = append([]float64{}, o.Data...)
	return &c
}

// Registry holds all field outputs of one frame in insertion order
type Registry struct {
	keys   []Key
	fields map[Key]*FieldOutput
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{fields: make(map[Key]*FieldOutput)}
}

// Add adds a new field output
func (o *Registry) Add(f *FieldOutput) error {
	key := f.Key()
	if _, ok := o.fields[key]; ok {
		return chk.Err("field output %q exists already", key)
	}
	o.keys = append(o.keys, key)
	o.fields[key] = f
	return nil
}

// Get returns the global field output named name or nil
func (o *Registry) Get(name string) *FieldOutput {
	return o.fields[Key{Name: name}]
}

// GetBlock returns the field output of an element block or nil
func (o *Registry) GetBlock(block, name string) *FieldOutput {
	return o.fields[Key{block, name}]
}

// Find returns the field output with given key or nil
func (o *Registry) Find(key Key) *FieldOutput {
	return o.fields[key]
}

// Keys returns the keys in insertion order
func (o *Registry) Keys() []Key {
	return append([]Key{}, o.keys...)
}

// Len returns the number of field outputs
func (o *Registry) Len() int { return len(o.keys) }

// Clone returns a deep copy: same keys and shapes; values are copied too
func (o *Registry) Clone() *Registry {
	c := NewRegistry()
	for _, key := range o.keys {
		c.keys = append(c.keys, key)
		c.fields[key] = o.fields[key].Clone()
	}
	return c
}
