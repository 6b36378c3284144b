// Copyright (c) 2025 ToeiRei
// Keyvault - SSH public key inventory
// This source code is licensed under the MIT license found in the LICENSE file.

// Package deploy appends selected inventory keys to the local machine's
// authorized_keys file. It never truncates the target; existing lines are
// preserved and duplicates are skipped by exact line comparison. After
// writing, the target is re-read to verify each intended line landed.
package deploy

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/toeirei/keyvault/internal/logging"
	"github.com/toeirei/keyvault/internal/model"
	"github.com/toeirei/keyvault/internal/sshkey"
)

const (
	dirMode  = 0700
	fileMode = 0600
)

// Result reports the outcome of a deploy run. Succeeded and Failed hold
// display names of the lines that were written, partitioned by the
// verification re-read. AlreadyDeployed is set when every selected line was
// already present and nothing was written.
type Result struct {
	Target          string
	Succeeded       []string
	Failed          []string
	AlreadyDeployed bool
}

// Run deploys the selected key records into <sshDir>/authorized_keys.
// The SSH directory is created with owner-only permissions when missing;
// failure to create it aborts the whole operation. A failure to tighten the
// target file's permissions afterwards is only a warning.
func Run(sshDir string, selected []model.KeyRecord) (*Result, error) {
	if err := os.MkdirAll(sshDir, dirMode); err != nil {
		return nil, fmt.Errorf("could not create SSH directory %s: %w", sshDir, err)
	}

	target := filepath.Join(sshDir, "authorized_keys")
	existing, err := readLines(target)
	if err != nil {
		return nil, fmt.Errorf("could not read existing %s: %w", target, err)
	}

	var missing []string
	queued := map[string]bool{}
	for _, k := range selected {
		if existing[k.Line] || queued[k.Line] {
			continue
		}
		queued[k.Line] = true
		missing = append(missing, k.Line)
	}
	if len(missing) == 0 {
		return &Result{Target: target, AlreadyDeployed: true}, nil
	}

	f, err := os.OpenFile(target, os.O_APPEND|os.O_CREATE|os.O_WRONLY, fileMode)
	if err != nil {
		return nil, fmt.Errorf("could not open %s for writing: %w", target, err)
	}
	for _, line := range missing {
		if _, err := f.WriteString(line + "\n"); err != nil {
			f.Close()
			return nil, fmt.Errorf("could not write to %s: %w", target, err)
		}
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("could not write to %s: %w", target, err)
	}

	if err := os.Chmod(target, fileMode); err != nil {
		logging.Warnf("could not set permissions on %s: %v", target, err)
	}

	// Verification read. Failures are reported, never retried.
	deployed, err := readLines(target)
	if err != nil {
		return nil, fmt.Errorf("could not verify deployment: %w", err)
	}
	result := &Result{Target: target}
	for _, line := range missing {
		name := sshkey.DisplayName(line)
		if deployed[line] {
			result.Succeeded = append(result.Succeeded, name)
		} else {
			result.Failed = append(result.Failed, name)
		}
	}
	return result, nil
}

// readLines reads the non-blank lines of a file into a set. A missing file
// yields an empty set.
func readLines(path string) (map[string]bool, error) {
	lines := map[string]bool{}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return lines, nil
		}
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines[line] = true
		}
	}
	return lines, scanner.Err()
}
