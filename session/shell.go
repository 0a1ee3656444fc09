// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: session/shell.go
// Summary: Login shell resolution: explicit command, $SHELL, passwd entry, /bin/sh.

package session

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"strings"
)

// ErrNoShell is returned when no executable shell could be found.
var ErrNoShell = errors.New("session: no usable shell")

// ShellResolver finds the program to run in the terminal. The zero value
// is not usable; use DefaultShellResolver.
type ShellResolver struct {
	Getenv     func(string) string
	LookPath   func(string) (string, error)
	PasswdFile string
	ShellsFile string
	Username   func() (string, error)
	Fallback   string
}

// DefaultShellResolver resolves against the running process and host files.
func DefaultShellResolver() ShellResolver {
	return ShellResolver{
		Getenv:     os.Getenv,
		LookPath:   exec.LookPath,
		PasswdFile: "/etc/passwd",
		ShellsFile: "/etc/shells",
		Username: func() (string, error) {
			u, err := user.Current()
			if err != nil {
				return "", err
			}
			return u.Username, nil
		},
		Fallback: "/bin/sh",
	}
}

// ResolveShell resolves command with the default resolver.
func ResolveShell(command string) (path string, permitted bool, err error) {
	return DefaultShellResolver().Resolve(command)
}

// Resolve returns the absolute path of the shell to start. An explicit
// command is searched in PATH and must exist. Otherwise $SHELL, the user's
// passwd shell and the fallback are tried in order. permitted reports
// whether the path is listed in the shells file; callers drop $SHELL from
// the child environment when it is not.
func (r ShellResolver) Resolve(command string) (path string, permitted bool, err error) {
	if command != "" {
		path, err = r.LookPath(command)
		if err != nil {
			return "", false, fmt.Errorf("%w: %s: %w", ErrNoShell, command, err)
		}
		return path, r.permitted(path), nil
	}

	candidates := []string{r.Getenv("SHELL")}
	if r.Username != nil {
		if name, err := r.Username(); err == nil {
			candidates = append(candidates, r.passwdShell(name))
		}
	}
	candidates = append(candidates, r.Fallback)

	for _, c := range candidates {
		if c == "" || !filepath.IsAbs(c) {
			continue
		}
		if isExecutable(c) {
			return c, r.permitted(c), nil
		}
	}
	return "", false, ErrNoShell
}

func (r ShellResolver) passwdShell(name string) string {
	f, err := os.Open(r.PasswdFile)
	if err != nil {
		return ""
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Split(sc.Text(), ":")
		if len(fields) >= 7 && fields[0] == name {
			return fields[6]
		}
	}
	return ""
}

// permitted reports whether path is listed in the shells file. A missing
// file permits everything.
func (r ShellResolver) permitted(path string) bool {
	f, err := os.Open(r.ShellsFile)
	if err != nil {
		return true
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == path {
			return true
		}
	}
	return false
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Mode().Perm()&0o111 != 0
}
