// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package temporal

import "fmt"

// A PreconditionViolation is the panic value raised for programming
// errors: an enumerated argument outside its set, or arithmetic that
// leaves the int64 millisecond range. It is not meant to be handled
// by ordinary callers.
type PreconditionViolation struct {
	Op  string
	Msg string
}

func (p PreconditionViolation) Error() string {
	return fmt.Sprintf("%s: precondition violated: %s", p.Op, p.Msg)
}

// AsViolation reports whether the recovered panic value r is a
// PreconditionViolation, and returns it.
func AsViolation(r interface{}) (PreconditionViolation, bool) {
	p, ok := r.(PreconditionViolation)
	return p, ok
}
