// Copyright (c) 2025 ToeiRei
// Keyvault - SSH public key inventory
// This source code is licensed under the MIT license found in the LICENSE file.

package gitsync

import (
	"errors"
	"strings"
	"testing"
)

// recordingRunner captures every command and can fail a chosen step.
type recordingRunner struct {
	calls  []string
	failOn string
	err    error
}

func (r *recordingRunner) run(name string, args ...string) error {
	call := name + " " + strings.Join(args, " ")
	r.calls = append(r.calls, call)
	if r.failOn != "" && strings.HasPrefix(call, r.failOn) {
		return r.err
	}
	return nil
}

func TestGitSyncRunsFullSequence(t *testing.T) {
	rec := &recordingRunner{}
	g := &Git{KeysFile: "authorized_keys", Run: rec.run}

	if err := g.Sync("Added keys: alice@laptop"); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	want := []string{
		"git add authorized_keys",
		"git commit -m Added keys: alice@laptop",
		"git pull --rebase",
		"git push",
	}
	if len(rec.calls) != len(want) {
		t.Fatalf("expected %d git commands, got %v", len(want), rec.calls)
	}
	for i, call := range want {
		if rec.calls[i] != call {
			t.Errorf("step %d = %q, want %q", i, rec.calls[i], call)
		}
	}
}

func TestGitSyncAbortsOnFirstFailure(t *testing.T) {
	pushErr := errors.New("remote rejected")
	rec := &recordingRunner{failOn: "git commit", err: pushErr}
	g := &Git{KeysFile: "authorized_keys", Run: rec.run}

	err := g.Sync("msg")
	if err == nil {
		t.Fatal("expected error from failing commit")
	}
	if !errors.Is(err, pushErr) {
		t.Errorf("error should wrap the command failure: %v", err)
	}
	// No pull or push after the failed commit.
	if len(rec.calls) != 2 {
		t.Errorf("sequence should stop at the failing step, ran %v", rec.calls)
	}
}
