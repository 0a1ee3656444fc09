// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelterm/main.go
// Summary: Runs a shell in a terminal session drawn on the current tty.
// Usage: texelterm [flags] [command [args...]]; flags override ~/.config/texelterm settings.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/term"

	"github.com/framegrace/texelterm/clipboard"
	"github.com/framegrace/texelterm/config"
	"github.com/framegrace/texelterm/internal/devshell"
	"github.com/framegrace/texelterm/parser"
	"github.com/framegrace/texelterm/session"
)

func main() {
	opts, err := config.LoadOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "texelterm: config: %v\n", err)
	}
	opts.RegisterFlags(flag.CommandLine)
	saveConfig := flag.Bool("saveConfig", false, "Write the effective options to the config files and exit")
	flag.Parse()

	if *saveConfig {
		if err := config.SaveOptions(opts); err != nil {
			fmt.Fprintf(os.Stderr, "texelterm: save config: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "texelterm: stdin and stdout must be a terminal")
		os.Exit(2)
	}

	logFile := setupLogging(opts.Logging)
	err = run(opts, flag.Args())
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "texelterm: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging sends logs to a file, since the screen belongs to the child.
func setupLogging(opts config.LoggingOptions) *os.File {
	parser.SetVerboseLogging(opts.Verbose)
	session.SetVerboseLogging(opts.Verbose)
	if opts.Quiet {
		log.SetOutput(io.Discard)
		return nil
	}
	dir, err := config.LogDir()
	if err == nil {
		err = os.MkdirAll(dir, 0o755)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "texelterm: log dir: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	f, err := os.OpenFile(filepath.Join(dir, "texelterm.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		fmt.Fprintf(os.Stderr, "texelterm: open log file: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	if opts.Verbose {
		parser.SetDebugOutput(f)
		session.SetDebugOutput(f)
	}
	return f
}

func run(opts config.Options, argv []string) error {
	if len(argv) == 0 {
		argv = opts.Shell.Argv()
	}
	shell, err := session.StartShell(argv, opts.Window.Cols, opts.Window.Rows)
	if err != nil {
		log.Printf("texelterm: %v", err)
		return err
	}
	defer shell.Close()

	var cb clipboard.Transport = clipboard.NewMemory()
	if sys := clipboard.NewSystem(clipboard.ParseSelection(opts.Input.Selection)); sys.Supported() {
		cb = sys
	} else {
		log.Printf("texelterm: no system clipboard, selections stay local")
	}

	fg, bg := opts.Colors.Defaults()
	palette := devshell.NewPalette(fg, bg, opts.Colors.BoldAsBright)
	sessionOpts := append(devshell.SessionOptions(),
		session.WithPTY(shell.PTY()),
		session.WithPTYResizer(shell.Resize),
		session.WithSize(opts.Window.Cols, opts.Window.Rows),
		session.WithScrollback(opts.Engine.Scrollback),
		session.WithMaxStringLength(opts.Engine.MaxStringLength),
		session.WithSyncTimeout(opts.Engine.SyncTimeout),
		session.WithAltScroll(opts.Input.AltScroll),
		session.WithMultiClickTimeout(opts.Input.MultiClick),
		session.WithClipboard(cb),
		session.WithClipboardTimeout(opts.Input.ClipboardTimeout),
	)
	s := session.New(sessionOpts...)
	if opts.Window.Title != "" {
		s.Feed([]byte("\x1b]2;" + opts.Window.Title + "\x07"))
	}

	if w, err := config.Watch(func(o config.Options) {
		fg, bg := o.Colors.Defaults()
		palette.Update(fg, bg, o.Colors.BoldAsBright)
		parser.SetVerboseLogging(o.Logging.Verbose)
		session.SetVerboseLogging(o.Logging.Verbose)
		log.Printf("texelterm: config reloaded")
	}); err != nil {
		log.Printf("texelterm: config watch disabled: %v", err)
	} else {
		defer w.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()
	// Run closes s before it releases the screen.
	return devshell.Run(ctx, s, palette)
}
