// Copyright (c) 2025 ToeiRei
// Keyvault - SSH public key inventory
// This source code is licensed under the MIT license found in the LICENSE file.

// Package store owns the managed key inventory: the flat authorized_keys
// style key list, the JSON metadata sidecar, and the backup-before-write
// discipline. All mutations happen in memory; Save is the only path that
// touches disk and always persists the list and the sidecar together.
package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/toeirei/keyvault/internal/logging"
	"github.com/toeirei/keyvault/internal/model"
	"github.com/toeirei/keyvault/internal/sshkey"
)

// backupTimestampLayout names backup files at second resolution.
const backupTimestampLayout = "20060102_150405"

// Store holds the in-memory inventory and knows how to persist it.
// Metadata is keyed by key identity ("<type> <material>"), so two keys
// sharing a comment never collide in the sidecar.
type Store struct {
	keysFile    string
	aliasesFile string
	backupDir   string

	keys []model.KeyRecord
	meta map[string]model.KeyMetadata

	// now is the clock used for added-timestamps and backup names.
	now func() time.Time
}

// New creates a Store over the given file locations. Nothing is read until
// Load is called.
func New(keysFile, aliasesFile, backupDir string) *Store {
	return &Store{
		keysFile:    keysFile,
		aliasesFile: aliasesFile,
		backupDir:   backupDir,
		meta:        map[string]model.KeyMetadata{},
		now:         time.Now,
	}
}

// Load reads the key list and the metadata sidecar. A missing key list means
// an empty inventory, not an error. A malformed sidecar is logged as a
// warning and treated as empty; it never aborts the caller.
func (s *Store) Load() error {
	s.keys = nil
	s.meta = map[string]model.KeyMetadata{}

	f, err := os.Open(s.keysFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("could not read key file %s: %w", s.keysFile, err)
		}
	} else {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			s.keys = append(s.keys, model.KeyRecord{Line: line})
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("could not read key file %s: %w", s.keysFile, err)
		}
	}

	data, err := os.ReadFile(s.aliasesFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		logging.Warnf("could not load metadata file %s: %v", s.aliasesFile, err)
		return nil
	}
	if err := json.Unmarshal(data, &s.meta); err != nil {
		logging.Warnf("could not parse metadata file %s: %v", s.aliasesFile, err)
		s.meta = map[string]model.KeyMetadata{}
	}
	return nil
}

// Save persists the full inventory: a backup of the current on-disk key list
// (only when one exists), then the key list itself, then the sidecar. The
// in-memory state is the single source of truth; the file is rewritten
// wholesale with a trailing newline.
func (s *Store) Save() error {
	if err := s.createBackup(); err != nil {
		return err
	}

	var b strings.Builder
	for _, k := range s.keys {
		b.WriteString(k.Line)
		b.WriteString("\n")
	}
	if err := os.WriteFile(s.keysFile, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("could not write key file %s: %w", s.keysFile, err)
	}

	return s.saveMetadata()
}

// createBackup copies the current on-disk key list into the backup directory
// under a second-resolution timestamp name. A first-ever save has nothing to
// back up and is skipped silently. Backups are never pruned.
func (s *Store) createBackup() error {
	src, err := os.Open(s.keysFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("could not open key file for backup: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(s.backupDir, 0700); err != nil {
		return fmt.Errorf("could not create backup directory %s: %w", s.backupDir, err)
	}

	name := fmt.Sprintf("%s_%s", filepath.Base(s.keysFile), s.now().Format(backupTimestampLayout))
	dst, err := os.Create(filepath.Join(s.backupDir, name))
	if err != nil {
		return fmt.Errorf("could not create backup file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("could not write backup file: %w", err)
	}
	logging.Infof("backup created: %s", filepath.Join(s.backupDir, name))
	return nil
}

// saveMetadata writes the sidecar as pretty-printed JSON with 2-space
// indentation.
func (s *Store) saveMetadata() error {
	data, err := json.MarshalIndent(s.meta, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode metadata: %w", err)
	}
	if err := os.WriteFile(s.aliasesFile, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("could not write metadata file %s: %w", s.aliasesFile, err)
	}
	return nil
}

// Keys returns the inventory in append order. The returned slice is a copy;
// mutations go through the Store methods.
func (s *Store) Keys() []model.KeyRecord {
	out := make([]model.KeyRecord, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len returns the number of inventory entries.
func (s *Store) Len() int { return len(s.keys) }

// Metadata returns the metadata for the inventory entry at index i. The
// zero value is returned when no metadata exists.
func (s *Store) Metadata(i int) model.KeyMetadata {
	if i < 0 || i >= len(s.keys) {
		return model.KeyMetadata{}
	}
	id, ok := sshkey.ParseIdentity(s.keys[i].Line)
	if !ok {
		return model.KeyMetadata{}
	}
	return s.meta[id.String()]
}

// FindExisting returns the index of the first inventory entry whose identity
// (type and key material) equals the candidate's, ignoring comments. It
// returns -1 when the candidate has no identity or nothing matches.
func (s *Store) FindExisting(line string) int {
	candidate, ok := sshkey.ParseIdentity(line)
	if !ok {
		return -1
	}
	for i, k := range s.keys {
		id, ok := sshkey.ParseIdentity(k.Line)
		if ok && id == candidate {
			return i
		}
	}
	return -1
}

// Append adds a new key line to the end of the inventory together with its
// metadata. The added-timestamp is stamped with the current local time.
func (s *Store) Append(line, alias, expiry string) {
	meta := model.KeyMetadata{
		Added:  s.now().Format("2006-01-02 15:04:05"),
		Alias:  alias,
		Expiry: expiry,
	}
	s.keys = append(s.keys, model.KeyRecord{Line: line})
	if id, ok := sshkey.ParseIdentity(line); ok {
		s.meta[id.String()] = meta
	}
}

// RemoveAt deletes the given zero-based indices from the inventory, along
// with their metadata. Indices are processed highest-first so earlier
// removals do not shift later ones; out-of-range indices are skipped.
// It returns the display names of the removed entries.
func (s *Store) RemoveAt(indices []int) []string {
	sorted := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	var removed []string
	seen := map[int]bool{}
	for _, i := range sorted {
		if i < 0 || i >= len(s.keys) || seen[i] {
			continue
		}
		seen[i] = true
		line := s.keys[i].Line
		removed = append(removed, sshkey.DisplayName(line))
		if id, ok := sshkey.ParseIdentity(line); ok {
			delete(s.meta, id.String())
		}
		s.keys = append(s.keys[:i], s.keys[i+1:]...)
	}
	return removed
}

// SetAlias updates the alias field of the entry at index i, merging into the
// existing metadata record.
func (s *Store) SetAlias(i int, alias string) error {
	return s.mergeMeta(i, func(m *model.KeyMetadata) { m.Alias = alias })
}

// SetExpiry updates the expiry field of the entry at index i. The date
// string is stored verbatim; no calendar validation is performed.
func (s *Store) SetExpiry(i int, expiry string) error {
	return s.mergeMeta(i, func(m *model.KeyMetadata) { m.Expiry = expiry })
}

func (s *Store) mergeMeta(i int, update func(*model.KeyMetadata)) error {
	if i < 0 || i >= len(s.keys) {
		return fmt.Errorf("invalid key index %d", i+1)
	}
	id, ok := sshkey.ParseIdentity(s.keys[i].Line)
	if !ok {
		return fmt.Errorf("key at index %d has no identity", i+1)
	}
	m := s.meta[id.String()]
	update(&m)
	s.meta[id.String()] = m
	return nil
}

// Filter returns the zero-based indices of entries whose display name or
// alias contains the search term, case-insensitively. An empty term matches
// everything.
func (s *Store) Filter(term string) []int {
	term = strings.ToLower(term)
	var out []int
	for i, k := range s.keys {
		if term == "" {
			out = append(out, i)
			continue
		}
		name := strings.ToLower(sshkey.DisplayName(k.Line))
		alias := strings.ToLower(s.Metadata(i).Alias)
		if strings.Contains(name, term) || strings.Contains(alias, term) {
			out = append(out, i)
		}
	}
	return out
}
