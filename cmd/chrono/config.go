// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"io"
	"log/slog"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pkg/errors"
	"golang.org/x/text/language"

	toolkit "go.chrono.dev/chrono"
	"go.chrono.dev/zone"
)

// Config is the command's configuration. Fields are read from the
// environment first; command-line flags override them.
type Config struct {
	Zone     string `env:"CHRONO_ZONE" env-description:"default time zone, an IANA name (host zone if empty)"`
	Locale   string `env:"CHRONO_LOCALE" env-default:"en" env-description:"language of locale strings"`
	LogLevel string `env:"CHRONO_LOG_LEVEL" env-default:"warn" env-description:"log level: debug, info, warn or error"`

	Exec    string // -c
	ShowEnv bool   // -showenv
}

// parseConfig reads the environment and then args, returning the
// configuration and the remaining arguments.
func parseConfig(args []string, output io.Writer) (*Config, []string, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, nil, errors.Wrap(err, "reading environment")
	}

	fs := flag.NewFlagSet("chrono", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.Exec, "c", "", "execute program `prog`")
	fs.BoolVar(&cfg.ShowEnv, "showenv", false, "on success, print final global environment")
	fs.StringVar(&cfg.Zone, "zone", cfg.Zone, "default time zone")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "language of locale strings")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	header := "Usage: chrono [flags] [file.star]\n\nEnvironment:"
	fs.Usage = cleanenv.FUsage(output, &cfg, &header, fs.PrintDefaults)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return &cfg, fs.Args(), nil
}

// Toolkit returns the toolkit described by cfg.
func (cfg *Config) Toolkit() (*toolkit.Toolkit, error) {
	zones := zone.Host
	if cfg.Zone != "" {
		p, err := zone.Named(cfg.Zone)
		if err != nil {
			return nil, errors.Wrap(err, "default zone")
		}
		zones = p
	}
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return nil, errors.Wrapf(err, "locale %q", cfg.Locale)
	}
	return toolkit.New(toolkit.WithZones(zones), toolkit.WithLanguage(tag)), nil
}

// Logger returns a text logger writing to w at the configured level.
func (cfg *Config) Logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, errors.Wrap(err, "log level")
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}
