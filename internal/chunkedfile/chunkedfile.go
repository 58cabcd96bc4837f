// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chunkedfile reads test scripts that are split into
// independent chunks and annotated with expected errors.
//
// Chunks are separated by "---" lines. A line containing "###" expects
// the chunk to fail on that line: the text after the marker is a Go
// string literal holding a regular expression that the error message
// must match.
//
//	t = chrono.parse("2001-02-03") ### "unsupported"
//	---
//	chrono.add(t, [("fortnight", 1)]) ### "unsupported duration unit"
//
// A test executes each chunk, calls GotError for every error that
// occurred, and finally Done; discrepancies are reported to the
// chunk's Reporter.
package chunkedfile // import "go.chrono.dev/internal/chunkedfile"

import (
	"os"
	"regexp"
	"strconv"
	"strings"
)

// A Chunk is a portion of a source file together with the errors it
// is expected to produce, keyed by line.
type Chunk struct {
	Source   string
	filename string
	report   Reporter
	wantErrs map[int]*regexp.Regexp
}

// Reporter is implemented by *testing.T.
type Reporter interface {
	Errorf(format string, args ...interface{})
}

// Read parses a chunked file and returns its chunks. Each chunk's
// Source is padded with newlines so that line numbers in errors match
// the file.
func Read(filename string, report Reporter) []Chunk {
	data, err := os.ReadFile(filename)
	if err != nil {
		report.Errorf("%s", err)
		return nil
	}
	return Parse(filename, strings.ReplaceAll(string(data), "\r\n", "\n"), report)
}

// Parse splits the contents of a chunked file.
func Parse(filename, data string, report Reporter) []Chunk {
	var chunks []Chunk
	linenum := 1
	for _, text := range strings.Split(data, "\n---\n") {
		src := strings.Repeat("\n", linenum-1) + text
		wantErrs := make(map[int]*regexp.Regexp)
		for _, line := range strings.Split(text, "\n") {
			if hashes := strings.Index(line, "###"); hashes >= 0 {
				rest := strings.TrimSpace(line[hashes+len("###"):])
				if pattern, err := strconv.Unquote(rest); err != nil {
					report.Errorf("\n%s:%d: not a quoted regexp: %s", filename, linenum, rest)
				} else if rx, err := regexp.Compile(pattern); err != nil {
					report.Errorf("\n%s:%d: %v", filename, linenum, err)
				} else {
					wantErrs[linenum] = rx
				}
			}
			linenum++
		}
		linenum++ // the separator
		chunks = append(chunks, Chunk{src, filename, report, wantErrs})
	}
	return chunks
}

// GotError reports an error that occurred at the given line. Errors
// that were not expected, or do not match, are reported.
func (chunk *Chunk) GotError(linenum int, msg string) {
	rx, ok := chunk.wantErrs[linenum]
	if !ok {
		chunk.report.Errorf("\n%s:%d: unexpected error: %v", chunk.filename, linenum, msg)
		return
	}
	delete(chunk.wantErrs, linenum)
	if !rx.MatchString(msg) {
		chunk.report.Errorf("\n%s:%d: error %q does not match pattern %q", chunk.filename, linenum, msg, rx)
	}
}

// Done reports the expected errors that did not occur.
func (chunk *Chunk) Done() {
	for linenum, rx := range chunk.wantErrs {
		chunk.report.Errorf("\n%s:%d: expected error matching %q", chunk.filename, linenum, rx)
	}
}
