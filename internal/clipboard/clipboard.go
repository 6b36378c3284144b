// Copyright (c) 2025 ToeiRei
// Keyvault - SSH public key inventory
// This source code is licensed under the MIT license found in the LICENSE file.

// Package clipboard wraps system clipboard access behind a small capability
// interface. When no clipboard is available (headless machines, missing
// xclip/xsel), copying degrades to printing the value instead of failing.
package clipboard

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"

	"github.com/toeirei/keyvault/internal/i18n"
)

// Copier copies a text value for the user.
type Copier interface {
	// Copy places text where the user can paste it and reports whether it
	// actually reached the system clipboard.
	Copy(text string) (copied bool, err error)
}

// New returns the system clipboard when one is usable, and a print-fallback
// copier otherwise.
func New() Copier {
	if clipboard.Unsupported {
		return &PrintCopier{Out: os.Stdout}
	}
	return systemCopier{}
}

type systemCopier struct{}

func (systemCopier) Copy(text string) (bool, error) {
	if err := clipboard.WriteAll(text); err != nil {
		return false, err
	}
	return true, nil
}

// PrintCopier writes the value to Out instead of a clipboard.
type PrintCopier struct {
	Out io.Writer
}

// Copy prints the value. It never reports the text as copied.
func (p *PrintCopier) Copy(text string) (bool, error) {
	fmt.Fprintln(p.Out, i18n.T("copy.unavailable"))
	_, err := fmt.Fprintln(p.Out, i18n.T("copy.value", text))
	return false, err
}
