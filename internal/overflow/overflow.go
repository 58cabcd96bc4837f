// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package overflow provides checked 64-bit integer arithmetic.
package overflow // import "go.chrono.dev/internal/overflow"

import "math"

// Add returns x+y and whether the sum fits in an int64.
func Add(x, y int64) (int64, bool) {
	z := x + y
	if (y > 0 && z < x) || (y < 0 && z > x) {
		return 0, false
	}
	return z, true
}

// Mul returns x*y and whether the product fits in an int64.
func Mul(x, y int64) (int64, bool) {
	if x == 0 || y == 0 {
		return 0, true
	}
	if (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
		return 0, false
	}
	z := x * y
	if z/y != x {
		return 0, false
	}
	return z, true
}
