// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelterm-headless/main.go
// Summary: Replays recorded terminal output through a session and prints the final screen.
// Usage: texelterm-headless [-geometry 80x24] [-chunk n] [file...]; reads stdin when no file is given.

package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/framegrace/texelterm/config"
	"github.com/framegrace/texelterm/frame"
	"github.com/framegrace/texelterm/parser"
	"github.com/framegrace/texelterm/session"
)

func main() {
	geometry := flag.String("geometry", "", "Screen size COLSxROWS (default: stdout size, or 80x24)")
	chunk := flag.Int("chunk", 4096, "Bytes fed per step")
	stats := flag.Bool("stats", false, "Print frame statistics to stderr")
	verbose := flag.Bool("verbose", false, "Output debug messages")
	flag.Parse()

	parser.SetVerboseLogging(*verbose)
	session.SetVerboseLogging(*verbose)

	cols, rows, err := screenSize(*geometry)
	if err != nil {
		log.Fatalf("texelterm-headless: %v", err)
	}
	if flag.NArg() == 0 && term.IsTerminal(int(os.Stdin.Fd())) {
		log.Fatalf("texelterm-headless: no input; pass a file or pipe output in")
	}

	s := session.New(session.WithSize(cols, rows))
	defer s.Close()

	if err := replay(s, flag.Args(), *chunk); err != nil {
		log.Fatalf("texelterm-headless: %v", err)
	}

	f := frame.Snapshot(s.VTerm(), s.Selection(), 0)
	out := bufio.NewWriter(os.Stdout)
	fmt.Fprintln(out, strings.TrimRight(f.String(), "\n"))
	out.Flush()
	if *stats {
		fmt.Fprintf(os.Stderr, "frames coalesced: %d, title: %q, cursor: %d,%d\n",
			s.Frames().Replaced(), f.Title, f.Cursor.Row, f.Cursor.Col)
	}
}

func screenSize(geometry string) (int, int, error) {
	if geometry != "" {
		return config.ParseGeometry(geometry)
	}
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if w, h, err := term.GetSize(fd); err == nil && w > 0 && h > 0 {
			return w, h, nil
		}
	}
	return 80, 24, nil
}

func replay(s *session.Session, files []string, chunk int) error {
	if chunk < 1 {
		chunk = 1
	}
	if len(files) == 0 {
		return feed(s, os.Stdin, chunk)
	}
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		err = feed(s, f, chunk)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func feed(s *session.Session, r io.Reader, chunk int) error {
	buf := make([]byte, chunk)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			s.Feed(buf[:n])
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
