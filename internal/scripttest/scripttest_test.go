// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scripttest_test

import (
	"fmt"
	"strings"
	"testing"

	"go.starlark.net/starlark"

	"go.chrono.dev/internal/scripttest"
)

type reporter struct{ errors []string }

func (r *reporter) Error(args ...interface{}) { r.errors = append(r.errors, fmt.Sprint(args...)) }

func exec(t *testing.T, src string) []string {
	t.Helper()
	r := new(reporter)
	thread := &starlark.Thread{Name: t.Name()}
	scripttest.SetReporter(thread, r)
	globals, err := scripttest.LoadAssertModule()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := starlark.ExecFile(thread, "assert.star", src, globals); err != nil {
		t.Fatalf("ExecFile: %v", err)
	}
	return r.errors
}

func TestPassingAssertions(t *testing.T) {
	errs := exec(t, `
assert.eq(1, 1)
assert.ne(1, 2)
assert.lt(1, 2)
assert.true([0])
assert.fails(lambda: 1 // 0, "division by zero")
assert.eq(assert.catch(lambda: 1 // 0), "floored division by zero")
assert.eq(assert.catch(lambda: 1), None)
`)
	if len(errs) > 0 {
		t.Errorf("unexpected failures: %q", errs)
	}
}

func TestFailingAssertions(t *testing.T) {
	errs := exec(t, `
assert.eq(1, 2)
assert.ne("a", "a")
assert.lt(2, 1)
assert.true(0, "zero")
assert.fails(lambda: 1, "x")
assert.fails(lambda: 1 // 0, "overflow")
`)
	want := []string{
		"1 != 2",
		`"a" == "a"`,
		"2 is not less than 1",
		"zero",
		"evaluation succeeded unexpectedly",
		"did not match error",
	}
	if len(errs) != len(want) {
		t.Fatalf("got %d failures, want %d: %q", len(errs), len(want), errs)
	}
	for i, w := range want {
		if !strings.Contains(errs[i], w) {
			t.Errorf("failure %d = %q, want it to contain %q", i, errs[i], w)
		}
		if !strings.Contains(errs[i], "assert.star:") {
			t.Errorf("failure %d = %q lacks a position", i, errs[i])
		}
	}
}

func TestGetReporterPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("GetReporter did not panic")
		}
	}()
	scripttest.GetReporter(new(starlark.Thread))
}
