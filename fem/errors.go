// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"fmt"
)

// errors returned by the analysis driver. Use errors.Is to check them
var (
	ErrInput            = errors.New("input error")
	ErrNotConverged     = errors.New("attempting to update an unconverged frame")
	ErrUnderConstrained = errors.New("attempting to solve an under-constrained system")
)

// inputErr returns an error wrapping ErrInput
func inputErr(msg string, prm ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInput, fmt.Sprintf(msg, prm...))
}
