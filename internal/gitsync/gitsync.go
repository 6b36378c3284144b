// Copyright (c) 2025 ToeiRei
// Keyvault - SSH public key inventory
// This source code is licensed under the MIT license found in the LICENSE file.

// Package gitsync pushes inventory changes through a version-control remote.
// The git client is invoked as an external command; there is no rollback. A
// failure partway (e.g., a rejected push after a local commit) leaves local
// state committed but unsynced and is surfaced as a single error.
package gitsync

import (
	"fmt"
	"os/exec"
	"strings"
)

// Backend is the capability interface for syncing the inventory after a
// mutation. Implementations run to completion synchronously.
type Backend interface {
	Sync(message string) error
}

// Runner executes one external command and returns its combined output on
// failure. It exists so tests can substitute a fake for the git client.
type Runner func(name string, args ...string) error

// Git syncs the key file through the git repository in Dir.
type Git struct {
	KeysFile string
	Dir      string
	Run      Runner
}

// NewGit returns a Backend that shells out to the git client for the
// repository containing keysFile.
func NewGit(keysFile, dir string) *Git {
	return &Git{KeysFile: keysFile, Dir: dir, Run: execRunner(dir)}
}

// Sync stages the key file, commits, rebases onto the remote, and pushes.
// The first non-zero exit aborts the sequence.
func (g *Git) Sync(message string) error {
	steps := [][]string{
		{"add", g.KeysFile},
		{"commit", "-m", message},
		{"pull", "--rebase"},
		{"push"},
	}
	for _, args := range steps {
		if err := g.Run("git", args...); err != nil {
			return fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
		}
	}
	return nil
}

// execRunner runs commands in dir, folding stderr into the returned error so
// the caller sees what the git client actually said.
func execRunner(dir string) Runner {
	return func(name string, args ...string) error {
		cmd := exec.Command(name, args...)
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		if err != nil {
			if msg := strings.TrimSpace(string(out)); msg != "" {
				return fmt.Errorf("%w: %s", err, msg)
			}
			return err
		}
		return nil
	}
}
