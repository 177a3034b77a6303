// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/prklVIP/gofem2/ele/solid"
	"github.com/prklVIP/gofem2/ele/thermal"
)

// enforce loading of all elements
func init() {
	_ = solid.ElastRod{}
	_ = solid.Beam{}
	_ = solid.Solid{}
	_ = thermal.HeatTri3{}
}
