// Copyright (c) 2025 ToeiRei
// Keyvault - SSH public key inventory
// This source code is licensed under the MIT license found in the LICENSE file.

package syskeys

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/toeirei/keyvault/internal/model"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func setupSSHDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "id_ed25519.pub"), "ssh-ed25519 AAAAC3Key1 alice@laptop\n")
	writeFile(t, filepath.Join(dir, "id_ed25519"), "PRIVATE KEY\n")
	writeFile(t, filepath.Join(dir, "backup_key.pub"), "ssh-rsa AAAAB3Key2 alice@backup\n")
	writeFile(t, filepath.Join(dir, "empty.pub"), "  \n")
	writeFile(t, filepath.Join(dir, "known_hosts"), "github.com ssh-rsa AAAA\n")
	return dir
}

func TestListSortedWithPrivateDetection(t *testing.T) {
	dir := setupSSHDir(t)
	keys, err := List(dir)
	if err != nil {
		t.Fatal(err)
	}
	// empty.pub is skipped, known_hosts is not a .pub file.
	if len(keys) != 2 {
		t.Fatalf("expected 2 key files, got %+v", keys)
	}
	if keys[0].Name != "backup_key.pub" || keys[1].Name != "id_ed25519.pub" {
		t.Errorf("listing should be sorted by filename: %q, %q", keys[0].Name, keys[1].Name)
	}
	if keys[0].HasPrivate {
		t.Error("backup_key has no private key")
	}
	if !keys[1].HasPrivate {
		t.Error("id_ed25519 has a private key")
	}
	if keys[1].Line != "ssh-ed25519 AAAAC3Key1 alice@laptop" {
		t.Errorf("key line should be trimmed file content: %q", keys[1].Line)
	}
}

func TestListMissingDirIsEmpty(t *testing.T) {
	keys, err := List(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("missing SSH directory is not an error: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("expected empty list, got %+v", keys)
	}
}

func TestRenameMovesBothFiles(t *testing.T) {
	dir := setupSSHDir(t)
	keys, _ := List(dir)
	kf := keys[1] // id_ed25519.pub, with private key

	renamedPrivate, err := Rename(kf, "work_laptop")
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if !renamedPrivate {
		t.Error("private key should be renamed too")
	}
	for _, want := range []string{"work_laptop.pub", "work_laptop"} {
		if _, err := os.Stat(filepath.Join(dir, want)); err != nil {
			t.Errorf("expected %s to exist: %v", want, err)
		}
	}
	if _, err := os.Stat(kf.Path); !os.IsNotExist(err) {
		t.Error("old public key file should be gone")
	}
}

func TestRenameWithoutPrivateKey(t *testing.T) {
	dir := setupSSHDir(t)
	keys, _ := List(dir)

	renamedPrivate, err := Rename(keys[0], "spare")
	if err != nil {
		t.Fatal(err)
	}
	if renamedPrivate {
		t.Error("no private key existed to rename")
	}
}

func TestRenameRefusesExistingDestination(t *testing.T) {
	dir := setupSSHDir(t)
	keys, _ := List(dir)

	if _, err := Rename(keys[0], "id_ed25519"); err == nil {
		t.Error("rename onto an existing .pub file must be refused")
	}
	// Source is untouched after the refusal.
	if _, err := os.Stat(keys[0].Path); err != nil {
		t.Errorf("source should still exist: %v", err)
	}
}

func TestDeleteRemovesPair(t *testing.T) {
	dir := setupSSHDir(t)
	keys, _ := List(dir)
	kf := keys[1]

	removedPrivate, err := Delete(kf)
	if err != nil {
		t.Fatal(err)
	}
	if !removedPrivate {
		t.Error("private key should be removed too")
	}
	if _, err := os.Stat(kf.Path); !os.IsNotExist(err) {
		t.Error("public key file should be gone")
	}
	if _, err := os.Stat(filepath.Join(dir, "id_ed25519")); !os.IsNotExist(err) {
		t.Error("private key file should be gone")
	}
}

func TestDeletePublicOnly(t *testing.T) {
	dir := setupSSHDir(t)
	keys, _ := List(dir)

	removedPrivate, err := Delete(keys[0])
	if err != nil {
		t.Fatal(err)
	}
	if removedPrivate {
		t.Error("backup_key has no private key to remove")
	}
}

func TestDeleteMissingFileErrors(t *testing.T) {
	kf := model.SystemKeyFile{Name: "ghost.pub", Path: filepath.Join(t.TempDir(), "ghost.pub")}
	if _, err := Delete(kf); err == nil {
		t.Error("deleting a missing file should error")
	}
}
