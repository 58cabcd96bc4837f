// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package duration

import "fmt"

// An UnsupportedUnitError reports a unit key that names no unit.
type UnsupportedUnitError struct {
	Key string
}

func (e *UnsupportedUnitError) Error() string {
	return fmt.Sprintf("unsupported duration unit %q", e.Key)
}

// A SpecError reports a duration spec of the wrong shape.
type SpecError struct {
	Value interface{}
	Msg   string
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("invalid duration spec %v: %s", e.Value, e.Msg)
}
