// Copyright (c) 2025 ToeiRei
// Keyvault - SSH public key inventory
// This source code is licensed under the MIT license found in the LICENSE file.

package gitsync

import (
	"net/http"
	"os/exec"
	"strings"
	"time"
)

// VisibilityChecker is the capability interface for the repository
// visibility probe run at startup.
type VisibilityChecker interface {
	// IsPublic reports whether the configured remote appears to be a
	// publicly readable repository. Non-GitHub remotes and any inability to
	// determine the answer count as private.
	IsPublic() bool
}

// GitHubChecker probes the GitHub API anonymously for the repository behind
// the remote "origin" URL of the git repository in Dir.
type GitHubChecker struct {
	Dir string

	// RemoteURL and Client are injectable for tests; the zero values fall
	// back to the git client and a default HTTP client.
	RemoteURL func() (string, error)
	Client    *http.Client
}

// NewGitHubChecker returns a checker for the repository in dir.
func NewGitHubChecker(dir string) *GitHubChecker {
	return &GitHubChecker{Dir: dir}
}

// IsPublic converts the remote URL to a GitHub API URL and issues an
// anonymous unauthenticated request. Only an HTTP 200 means public;
// everything else fails open toward "assume private".
func (c *GitHubChecker) IsPublic() bool {
	lookup := c.RemoteURL
	if lookup == nil {
		lookup = func() (string, error) {
			cmd := exec.Command("git", "config", "--get", "remote.origin.url")
			cmd.Dir = c.Dir
			out, err := cmd.Output()
			return strings.TrimSpace(string(out)), err
		}
	}
	remote, err := lookup()
	if err != nil {
		return false
	}

	apiURL, ok := GitHubAPIURL(remote)
	if !ok {
		return false
	}

	client := c.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Get(apiURL)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// GitHubAPIURL converts a GitHub SSH or HTTPS remote URL to the
// corresponding API URL. It returns false for non-GitHub remotes.
func GitHubAPIURL(remote string) (string, bool) {
	var repoPath string
	switch {
	case strings.HasPrefix(remote, "git@github.com:"):
		repoPath = strings.TrimPrefix(remote, "git@github.com:")
	case strings.HasPrefix(remote, "https://github.com/"):
		repoPath = strings.TrimPrefix(remote, "https://github.com/")
	default:
		return "", false
	}
	repoPath = strings.ReplaceAll(repoPath, ".git", "")
	return "https://api.github.com/repos/" + repoPath, true
}
