// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"encoding/gob"
	"encoding/json"
	goio "io"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
)

// constants
var (
	TolT = 1e-10 // tolerance to compare times
)

// FrameRecord holds the results of one converged frame
type FrameRecord struct {
	Step      string         `json:"step"`      // name of step
	StepNum   int            `json:"stepnum"`   // index of step in model
	Frame     int            `json:"frame"`     // number of frame within step
	Start     float64        `json:"start"`     // start time of frame
	Increment float64        `json:"increment"` // time increment
	Time      float64        `json:"time"`      // start + increment
	Fields    []*FieldOutput `json:"fields"`    // field outputs in registry order
}

// NewRecord creates a record from a registry. Field outputs are cloned
func NewRecord(step string, stepnum, frame int, start, increment float64, reg *Registry) *FrameRecord {
	o := &FrameRecord{Step: step, StepNum: stepnum, Frame: frame, Start: start, Increment: increment, Time: start + increment}
	for _, key := range reg.Keys() {
		o.Fields = append(o.Fields, reg.Find(key).Clone())
	}
	return o
}

// Field returns the field output with given key or nil
func (o *FrameRecord) Field(key Key) *FieldOutput {
	for _, f := range o.Fields {
		if f.Key() == key {
			return f
		}
	}
	return nil
}

// Encoder defines encoders; e.g. gob or json
type Encoder interface {
	Encode(e interface{}) error
}

// Decoder defines decoders; e.g. gob or json
type Decoder interface {
	Decode(e interface{}) error
}

// GetEncoder returns a new encoder
func GetEncoder(w goio.Writer, enctype string) Encoder {
	if enctype == "json" {
		return json.NewEncoder(w)
	}
	return gob.NewEncoder(w)
}

// GetDecoder returns a new decoder
func GetDecoder(r goio.Reader, enctype string) Decoder {
	if enctype == "json" {
		return json.NewDecoder(r)
	}
	return gob.NewDecoder(r)
}

// Encode writes all records to w
func Encode(w goio.Writer, recs []*FrameRecord, enctype string) error {
	if enctype != "json" && enctype != "gob" {
		return chk.Err("encoder type %q is invalid; options are \"json\" and \"gob\"", enctype)
	}
	if err := GetEncoder(w, enctype).Encode(recs); err != nil {
		return chk.Err("cannot encode results:\n%v", err)
	}
	return nil
}

// Decode reads records previously written with Encode
func Decode(r goio.Reader, enctype string) (recs []*FrameRecord, err error) {
	if enctype != "json" && enctype != "gob" {
		return nil, chk.Err("encoder type %q is invalid; options are \"json\" and \"gob\"", enctype)
	}
	if err = GetDecoder(r, enctype).Decode(&recs); err != nil {
		return nil, chk.Err("cannot decode results:\n%v", err)
	}
	return
}

// Save writes all records to file. The directory is created if needed
func Save(fnpath string, recs []*FrameRecord, enctype string) (err error) {
	if err = os.MkdirAll(filepath.Dir(fnpath), 0777); err != nil {
		return chk.Err("cannot create directory for %q:\n%v", fnpath, err)
	}
	fil, err := os.Create(fnpath)
	if err != nil {
		return chk.Err("cannot create file %q:\n%v", fnpath, err)
	}
	defer func() {
		if e := fil.Close(); e != nil && err == nil {
			err = e
		}
	}()
	return Encode(fil, recs, enctype)
}

// Load reads records from file
func Load(fnpath string, enctype string) ([]*FrameRecord, error) {
	fil, err := os.Open(fnpath)
	if err != nil {
		return nil, chk.Err("cannot open file %q:\n%v", fnpath, err)
	}
	defer fil.Close()
	return Decode(fil, enctype)
}
