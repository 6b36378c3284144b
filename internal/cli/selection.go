// Copyright (c) 2025 ToeiRei
// Keyvault - SSH public key inventory
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// parseSelection turns a menu selection into zero-based indices. The input
// is either "all" or a comma-separated list of 1-based positions. Any
// non-numeric entry makes the whole selection invalid; out-of-range
// positions are silently skipped. An empty input yields no indices.
func parseSelection(input string, n int) ([]int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}
	if strings.EqualFold(input, "all") {
		indices := make([]int, n)
		for i := range indices {
			indices[i] = i
		}
		return indices, nil
	}

	var indices []int
	for _, part := range strings.Split(input, ",") {
		pos, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid selection %q", part)
		}
		idx := pos - 1
		if idx < 0 || idx >= n {
			continue
		}
		indices = append(indices, idx)
	}
	return indices, nil
}

// parseIndex turns a single 1-based position into a zero-based index.
func parseIndex(input string, n int) (int, error) {
	pos, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("invalid selection %q", input)
	}
	idx := pos - 1
	if idx < 0 || idx >= n {
		return 0, fmt.Errorf("selection %d out of range", pos)
	}
	return idx, nil
}

// isYes reports a lowercase "y" answer; isConfirmed requires the fully typed
// "yes" used before destructive actions. Anything else cancels.
func isYes(answer string) bool {
	return strings.ToLower(strings.TrimSpace(answer)) == "y"
}

func isConfirmed(answer string) bool {
	return strings.ToLower(strings.TrimSpace(answer)) == "yes"
}
