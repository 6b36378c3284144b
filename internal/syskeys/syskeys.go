// Copyright (c) 2025 ToeiRei
// Keyvault - SSH public key inventory
// This source code is licensed under the MIT license found in the LICENSE file.

// Package syskeys manages the machine's own SSH key-file pairs in the local
// SSH directory. This is independent of the managed inventory: it operates
// on *.pub files and their matching private keys directly.
package syskeys

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/toeirei/keyvault/internal/model"
)

// List enumerates the *.pub files in sshDir, sorted by filename. Each entry
// records whether the matching private key (same path without the .pub
// suffix) exists. A missing SSH directory yields an empty list. Unreadable
// or empty files are skipped.
func List(sshDir string) ([]model.SystemKeyFile, error) {
	entries, err := os.ReadDir(sshDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not read SSH directory %s: %w", sshDir, err)
	}

	var keys []model.SystemKeyFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".pub") {
			continue
		}
		path := filepath.Join(sshDir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		line := strings.TrimSpace(string(data))
		if line == "" {
			continue
		}
		keys = append(keys, model.SystemKeyFile{
			Name:       e.Name(),
			Path:       path,
			Line:       line,
			HasPrivate: fileExists(privatePath(path)),
		})
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Name < keys[j].Name })
	return keys, nil
}

// Rename renames a key pair to newBase (without the .pub suffix). It refuses
// to overwrite an existing destination public key file. When the public
// rename succeeds but the private one fails, the public rename is not rolled
// back; the private-key error is returned alongside renamedPrivate=false so
// the caller can report it.
func Rename(kf model.SystemKeyFile, newBase string) (renamedPrivate bool, err error) {
	if newBase == "" {
		return false, fmt.Errorf("invalid name")
	}
	newPath := filepath.Join(filepath.Dir(kf.Path), newBase+".pub")
	if fileExists(newPath) {
		return false, fmt.Errorf("%s already exists", filepath.Base(newPath))
	}

	if err := os.Rename(kf.Path, newPath); err != nil {
		return false, fmt.Errorf("could not rename %s: %w", kf.Name, err)
	}

	oldPrivate := privatePath(kf.Path)
	if fileExists(oldPrivate) {
		if err := os.Rename(oldPrivate, privatePath(newPath)); err != nil {
			return false, fmt.Errorf("could not rename private key %s: %w", filepath.Base(oldPrivate), err)
		}
		return true, nil
	}
	return false, nil
}

// Delete removes the public key file and, when present, the matching
// private key. It returns whether a private key was removed too.
func Delete(kf model.SystemKeyFile) (removedPrivate bool, err error) {
	if err := os.Remove(kf.Path); err != nil {
		return false, fmt.Errorf("could not delete %s: %w", kf.Name, err)
	}
	private := privatePath(kf.Path)
	if fileExists(private) {
		if err := os.Remove(private); err != nil {
			return false, fmt.Errorf("could not delete private key %s: %w", filepath.Base(private), err)
		}
		return true, nil
	}
	return false, nil
}

// privatePath strips the .pub suffix.
func privatePath(pubPath string) string {
	return strings.TrimSuffix(pubPath, ".pub")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
