// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scripttest defines utilities for testing Starlark scripts
// that use the chrono module.
//
// LoadAssertModule returns a module named "assert" whose functions
// report failures to the Go test associated with the thread by
// SetReporter:
//
//	assert.eq(x, y)           x == y
//	assert.ne(x, y)           x != y
//	assert.lt(x, y)           x < y
//	assert.true(cond, msg?)   cond is truthy
//	assert.fails(f, pattern)  f() fails with an error matching pattern
//	assert.catch(f)           the error message of f(), or None
package scripttest // import "go.chrono.dev/internal/scripttest"

import (
	"fmt"
	"regexp"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"
)

const localKey = "Reporter"

// A Reporter is a value to which errors may be reported.
// It is satisfied by *testing.T.
type Reporter interface {
	Error(args ...interface{})
}

// SetReporter associates an error reporter (such as a testing.T in
// a Go test) with the Starlark thread so that Starlark programs may
// report errors to it.
func SetReporter(thread *starlark.Thread, r Reporter) {
	thread.SetLocal(localKey, r)
}

// GetReporter returns the Starlark thread's error reporter.
// It must be preceded by a call to SetReporter.
func GetReporter(thread *starlark.Thread) Reporter {
	r, ok := thread.Local(localKey).(Reporter)
	if !ok {
		panic("internal error: scripttest.SetReporter was not called")
	}
	return r
}

// Assert is the assert module.
var Assert = &starlarkstruct.Module{
	Name: "assert",
	Members: starlark.StringDict{
		"eq":    starlark.NewBuiltin("eq", eq),
		"ne":    starlark.NewBuiltin("ne", ne),
		"lt":    starlark.NewBuiltin("lt", lt),
		"true":  starlark.NewBuiltin("true", true_),
		"fails": starlark.NewBuiltin("fails", fails),
		"catch": starlark.NewBuiltin("catch", catch),
	},
}

// LoadAssertModule loads the assert module.
// It is concurrency-safe and idempotent.
func LoadAssertModule() (starlark.StringDict, error) {
	return starlark.StringDict{"assert": Assert}, nil
}

// report sends msg to the thread's reporter, prefixed by the Starlark
// call stack of the failing assertion.
func report(thread *starlark.Thread, format string, args ...interface{}) {
	buf := new(strings.Builder)
	stk := thread.CallStack()
	stk.Pop()
	fmt.Fprintf(buf, "%sError: ", stk)
	fmt.Fprintf(buf, format, args...)
	GetReporter(thread).Error(buf.String())
}

func eq(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x, y starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &x, &y); err != nil {
		return nil, err
	}
	ok, err := starlark.Equal(x, y)
	if err != nil {
		return nil, err
	}
	if !ok {
		report(thread, "%s != %s", x, y)
	}
	return starlark.None, nil
}

func ne(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x, y starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &x, &y); err != nil {
		return nil, err
	}
	ok, err := starlark.Equal(x, y)
	if err != nil {
		return nil, err
	}
	if ok {
		report(thread, "%s == %s", x, y)
	}
	return starlark.None, nil
}

func lt(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x, y starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &x, &y); err != nil {
		return nil, err
	}
	ok, err := starlark.Compare(syntax.LT, x, y)
	if err != nil {
		return nil, err
	}
	if !ok {
		report(thread, "%s is not less than %s", x, y)
	}
	return starlark.None, nil
}

func true_(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		cond starlark.Value
		msg  = "assertion failed"
	)
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &cond, &msg); err != nil {
		return nil, err
	}
	if !cond.Truth() {
		report(thread, "%s", msg)
	}
	return starlark.None, nil
}

// fails(f, pattern) calls f and reports an error unless it fails with
// a message matching the regular expression pattern.
func fails(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		fn      starlark.Callable
		pattern string
	)
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &fn, &pattern); err != nil {
		return nil, err
	}
	rx, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", b.Name(), err)
	}
	_, err = starlark.Call(thread, fn, nil, nil)
	switch {
	case err == nil:
		report(thread, "evaluation succeeded unexpectedly (want error matching %q)", pattern)
	case !rx.MatchString(err.Error()):
		report(thread, "regular expression (%s) did not match error (%s)", pattern, err)
	}
	return starlark.None, nil
}

// catch(f) evaluates f() and returns its evaluation error message
// if it failed or None if it succeeded.
func catch(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var fn starlark.Callable
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "fn", &fn); err != nil {
		return nil, err
	}
	if _, err := starlark.Call(thread, fn, nil, nil); err != nil {
		return starlark.String(err.Error()), nil
	}
	return starlark.None, nil
}
