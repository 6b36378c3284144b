// Copyright (c) 2025 ToeiRei
// Keyvault - SSH public key inventory
// This source code is licensed under the MIT license found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"
)

// chdir is t.Chdir for Go toolchains older than 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load with no config file should use defaults: %v", err)
	}
	if c.KeysFile != "authorized_keys" {
		t.Errorf("keys_file default = %q", c.KeysFile)
	}
	if c.AliasesFile != "key_aliases.json" {
		t.Errorf("aliases_file default = %q", c.AliasesFile)
	}
	if c.BackupDir != ".key_backups" {
		t.Errorf("backup_dir default = %q", c.BackupDir)
	}
	if c.Language != "en" {
		t.Errorf("language default = %q", c.Language)
	}
	if c.SSHDir == "" {
		t.Error("ssh_dir default should not be empty")
	}
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "keyvault.yaml")
	content := "keys_file: inventory_keys\nlanguage: de\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	c, err := Load(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if c.KeysFile != "inventory_keys" || c.Language != "de" {
		t.Errorf("config file values not applied: %+v", c)
	}
	// Unset keys keep their defaults.
	if c.BackupDir != ".key_backups" {
		t.Errorf("unset keys should fall back to defaults: %+v", c)
	}
}

func TestLoadMissingExplicitFileErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("an explicit --config path that cannot be read should error")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("KEYVAULT_KEYS_FILE", "env_keys")

	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if c.KeysFile != "env_keys" {
		t.Errorf("environment override not applied: %q", c.KeysFile)
	}
}
