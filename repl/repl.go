// Package repl provides a read/eval/print loop for Starlark programs
// that use the chrono module.
//
// It supports readline-style command editing,
// and interrupts through Control-C.
//
// If an input line can be parsed as an expression,
// the REPL parses and evaluates it and prints its result.
// Timestamps are printed together with their ISO form in UTC.
// Otherwise the REPL reads lines until a blank line,
// then executes the input as a list of statements
// whose global bindings are kept for later inputs.
package repl // import "go.chrono.dev/repl"

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/chzyer/readline"
	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"go.chrono.dev/lib/chrono"
	"go.chrono.dev/timefmt"
)

// Prompt is the primary prompt of the REPL.
const Prompt = "chrono> "

var interrupted = make(chan os.Signal, 1)

// REPL executes a read, eval, print loop on the terminal.
//
// Before evaluating each item, it sets the Starlark thread local
// variable named "context" to a context.Context that is cancelled by a
// SIGINT (Control-C).
func REPL(thread *starlark.Thread, globals starlark.StringDict) {
	signal.Notify(interrupted, os.Interrupt)
	defer signal.Stop(interrupted)

	rl, err := readline.New(Prompt)
	if err != nil {
		PrintError(os.Stderr, err)
		return
	}
	defer rl.Close()
	for {
		if err := rep(rl, thread, globals); err != nil {
			if err == readline.ErrInterrupt {
				fmt.Println(err)
				continue
			}
			break
		}
	}
	fmt.Println()
}

// rep reads, evaluates, and prints one item.
//
// It returns an error (possibly readline.ErrInterrupt)
// only if readline failed. Starlark errors are printed.
func rep(rl *readline.Instance, thread *starlark.Thread, globals starlark.StringDict) error {
	// Note: during Readline calls, Control-C causes Readline to return
	// ErrInterrupt but does not generate a SIGINT.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-interrupted:
			cancel()
		case <-ctx.Done():
		}
	}()
	thread.SetLocal("context", ctx)

	eof := false

	// readline returns EOF, ErrInterrupted, or a line including "\n".
	rl.SetPrompt(Prompt)
	readline := func() ([]byte, error) {
		line, err := rl.Readline()
		rl.SetPrompt("... ")
		if err != nil {
			if err == io.EOF {
				eof = true
			}
			return nil, err
		}
		return []byte(line + "\n"), nil
	}

	f, err := syntax.ParseCompoundStmt("<stdin>", readline)
	if err != nil {
		if eof {
			return io.EOF
		}
		PrintError(os.Stderr, err)
		return nil
	}
	if err := run(thread, os.Stdout, f, globals); err != nil {
		PrintError(os.Stderr, err)
	}
	return nil
}

// Exec parses src and evaluates it as one REPL item, printing the value
// of a sole expression to w. New global bindings are added to globals.
func Exec(thread *starlark.Thread, w io.Writer, filename, src string, globals starlark.StringDict) error {
	f, err := syntax.Parse(filename, src, 0)
	if err != nil {
		return err
	}
	return run(thread, w, f, globals)
}

func run(thread *starlark.Thread, w io.Writer, f *syntax.File, globals starlark.StringDict) error {
	// Treat load bindings as global in the REPL. The flag is process-wide,
	// so items must not be evaluated concurrently.
	defer func(prev bool) { resolve.LoadBindsGlobally = prev }(resolve.LoadBindsGlobally)
	resolve.LoadBindsGlobally = true

	if expr := soleExpr(f); expr != nil {
		v, err := starlark.EvalExpr(thread, expr, globals)
		if err != nil {
			return err
		}
		if v != starlark.None {
			fmt.Fprintln(w, Show(v))
		}
		return nil
	}

	prog, err := starlark.FileProgram(f, globals.Has)
	if err != nil {
		return err
	}
	g, err := prog.Init(thread, globals)
	for name, v := range g {
		globals[name] = v
	}
	return err
}

func soleExpr(f *syntax.File) syntax.Expr {
	if len(f.Stmts) == 1 {
		if stmt, ok := f.Stmts[0].(*syntax.ExprStmt); ok {
			return stmt.X
		}
	}
	return nil
}

// Show formats a REPL result. A timestamp whose own form is not already
// the ISO form in UTC is followed by it.
func Show(v starlark.Value) string {
	ts, ok := v.(chrono.Timestamp)
	if !ok {
		return v.String()
	}
	s, iso := ts.String(), timefmt.ISO(ts.Value())
	if s == iso {
		return s
	}
	return fmt.Sprintf("%s (%s)", s, iso)
}

// PrintError prints the error to w,
// or its backtrace if it is a Starlark evaluation error.
func PrintError(w io.Writer, err error) {
	if evalErr, ok := err.(*starlark.EvalError); ok {
		fmt.Fprintln(w, evalErr.Backtrace())
	} else {
		fmt.Fprintln(w, err)
	}
}

// MakeLoad returns a simple sequential implementation of module loading
// suitable for use in the REPL. Loaded files see the predeclared names.
// Each function returned by MakeLoad accesses a distinct private cache.
func MakeLoad(predeclared starlark.StringDict) func(thread *starlark.Thread, module string) (starlark.StringDict, error) {
	type entry struct {
		globals starlark.StringDict
		err     error
	}

	var cache = make(map[string]*entry)

	return func(thread *starlark.Thread, module string) (starlark.StringDict, error) {
		e, ok := cache[module]
		if e == nil {
			if ok {
				// request for package whose loading is in progress
				return nil, fmt.Errorf("cycle in load graph")
			}

			// Add a placeholder to indicate "load in progress".
			cache[module] = nil

			thread := &starlark.Thread{Name: "exec " + module, Load: thread.Load}
			globals, err := starlark.ExecFile(thread, module, nil, predeclared)
			e = &entry{globals, err}

			cache[module] = e
		}
		return e.globals, e.err
	}
}
