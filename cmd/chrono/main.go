// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The chrono command interprets Starlark programs that use the chrono
// and time modules. With no arguments and a terminal on standard
// input, it starts a read-eval-print loop (REPL); otherwise it runs
// the -c program, the named file, or standard input.
//
// The default zone, locale and log level come from the CHRONO_ZONE,
// CHRONO_LOCALE and CHRONO_LOG_LEVEL environment variables, or from the
// -zone, -locale and -log-level flags, which take precedence.
package main // import "go.chrono.dev/cmd/chrono"

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	libtime "go.starlark.net/lib/time"
	"go.starlark.net/starlark"
	"golang.org/x/term"

	toolkit "go.chrono.dev/chrono"
	"go.chrono.dev/lib/chrono"
	"go.chrono.dev/repl"
)

func main() {
	os.Exit(doMain(os.Args[1:]))
}

func doMain(args []string) int {
	log.SetPrefix("chrono: ")
	log.SetFlags(0)

	cfg, args, err := parseConfig(args, os.Stderr)
	if err == flag.ErrHelp {
		return 0
	} else if err != nil {
		log.Print(err)
		return 2
	}
	logger, err := cfg.Logger(os.Stderr)
	if err != nil {
		log.Print(err)
		return 2
	}
	slog.SetDefault(logger)
	tk, err := cfg.Toolkit()
	if err != nil {
		log.Print(err)
		return 2
	}
	slog.Debug("configured",
		"zone", tk.Zones().Default().String(),
		"locale", tk.Language().String())

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	return run(tk, cfg, args, interactive, os.Stdin, os.Stdout, os.Stderr)
}

// predeclared returns the names visible to programs: the chrono module
// bound to tk, and the standard time module reading tk's clock.
func predeclared(tk *toolkit.Toolkit) starlark.StringDict {
	libtime.NowFunc = tk.Clock().Now
	return starlark.StringDict{
		chrono.ModuleName: chrono.NewModule(tk),
		"time":            libtime.Module,
	}
}

func run(tk *toolkit.Toolkit, cfg *Config, args []string, interactive bool, stdin io.Reader, stdout, stderr io.Writer) int {
	env := predeclared(tk)
	thread := &starlark.Thread{
		Load:  repl.MakeLoad(env),
		Print: func(_ *starlark.Thread, msg string) { fmt.Fprintln(stdout, msg) },
	}

	var (
		globals starlark.StringDict
		err     error
	)
	switch {
	case cfg.Exec != "":
		thread.Name = "exec cmdline"
		globals = copyDict(env)
		err = repl.Exec(thread, stdout, "cmdline", cfg.Exec, globals)
	case len(args) == 1:
		filename := args[0]
		thread.Name = "exec " + filename
		slog.Info("exec", "file", filename)
		globals, err = starlark.ExecFile(thread, filename, nil, env)
	case len(args) == 0 && !interactive:
		thread.Name = "exec <stdin>"
		var src []byte
		if src, err = io.ReadAll(stdin); err == nil {
			globals, err = starlark.ExecFile(thread, "<stdin>", src, env)
		}
	case len(args) == 0:
		fmt.Fprintf(stdout, "Welcome to chrono (default zone %s, locale %s)\n",
			tk.Zones().Default(), tk.Language())
		thread.Name = "REPL"
		globals = copyDict(env)
		repl.REPL(thread, globals)
	default:
		log.Print("want at most one Starlark file name")
		return 1
	}
	if err != nil {
		repl.PrintError(stderr, err)
		return 1
	}

	if cfg.ShowEnv {
		for _, name := range globals.Keys() {
			if _, ok := env[name]; ok || strings.HasPrefix(name, "_") {
				continue
			}
			fmt.Fprintf(stderr, "%s = %s\n", name, repl.Show(globals[name]))
		}
	}
	return 0
}

func copyDict(d starlark.StringDict) starlark.StringDict {
	c := make(starlark.StringDict, len(d))
	for k, v := range d {
		c[k] = v
	}
	return c
}
