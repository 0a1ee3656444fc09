// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: session/pty.go
// Summary: Child process spawning on a pseudo-terminal via creack/pty.

package session

import (
	"fmt"
	"log"
	"math"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/creack/pty"
)

// Shell is a child process attached to a PTY.
type Shell struct {
	cmd *exec.Cmd
	pty *os.File
}

// StartShell starts argv[0] (resolved with ResolveShell when argv is empty)
// on a new cols x rows PTY with TERM=xterm-256color.
func StartShell(argv []string, cols, rows int) (*Shell, error) {
	var command string
	var args []string
	if len(argv) > 0 {
		command, args = argv[0], argv[1:]
	}
	path, permitted, err := ResolveShell(command)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(path, args...)
	cmd.Env = childEnv(os.Environ(), permitted)
	if !permitted {
		log.Printf("Session: %s is not listed in /etc/shells; SHELL unset for the child", path)
	}

	ptmx, err := pty.StartWithSize(cmd, winsize(cols, rows))
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", path, err)
	}
	log.Printf("Session: started %s (pid %d) on %dx%d", path, cmd.Process.Pid, cols, rows)
	return &Shell{cmd: cmd, pty: ptmx}, nil
}

func childEnv(env []string, keepShell bool) []string {
	out := make([]string, 0, len(env)+2)
	for _, kv := range env {
		switch {
		case strings.HasPrefix(kv, "TERM="), strings.HasPrefix(kv, "COLORTERM="):
			continue
		case !keepShell && strings.HasPrefix(kv, "SHELL="):
			continue
		}
		out = append(out, kv)
	}
	return append(out, "TERM=xterm-256color", "COLORTERM=truecolor")
}

// winsize clamps to the range a TIOCSWINSZ field can hold.
func winsize(cols, rows int) *pty.Winsize {
	return &pty.Winsize{Cols: winsizeDim(cols), Rows: winsizeDim(rows)}
}

func winsizeDim(n int) uint16 {
	return uint16(min(max(n, 1), math.MaxUint16))
}

// PTY returns the master side of the PTY.
func (sh *Shell) PTY() *os.File { return sh.pty }

// Pid returns the child's process id.
func (sh *Shell) Pid() int { return sh.cmd.Process.Pid }

// Resize propagates a grid size change to the PTY.
func (sh *Shell) Resize(cols, rows int) error {
	return pty.Setsize(sh.pty, winsize(cols, rows))
}

// Wait waits for the child to exit.
func (sh *Shell) Wait() error { return sh.cmd.Wait() }

// Close closes the PTY and asks the child to terminate.
func (sh *Shell) Close() error {
	err := sh.pty.Close()
	if sh.cmd.Process != nil {
		_ = sh.cmd.Process.Signal(syscall.SIGHUP)
	}
	return err
}
