package sshkey

import (
	"strings"

	"github.com/toeirei/keyvault/internal/model"
)

// ParseIdentity splits a raw public key line on whitespace and returns its
// identity: the first two fields (algorithm and base64 key data). Lines with
// fewer than two fields have no identity and are treated as matching nothing.
func ParseIdentity(line string) (model.Identity, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return model.Identity{}, false
	}
	return model.Identity{Algorithm: fields[0], KeyData: fields[1]}, true
}

// DisplayName returns the human-facing label for a key line: the trailing
// comment field when the line has more than two whitespace-separated fields,
// otherwise "Unknown".
func DisplayName(line string) string {
	fields := strings.Fields(line)
	if len(fields) > 2 {
		return fields[len(fields)-1]
	}
	return "Unknown"
}

// Algorithm returns the first field of a key line, or "" for a blank line.
// Used for display only.
func Algorithm(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
