// Copyright (c) 2025 ToeiRei
// Keyvault - SSH public key inventory
// This source code is licensed under the MIT license found in the LICENSE file.

// console.go implements the interactive numbered-menu loop. Input comes
// through a small lineReader abstraction: readline when stdin is a terminal,
// a plain scanner otherwise, so tests can drive the console with piped
// input.

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"github.com/toeirei/keyvault/internal/clipboard"
	"github.com/toeirei/keyvault/internal/config"
	"github.com/toeirei/keyvault/internal/gitsync"
	"github.com/toeirei/keyvault/internal/i18n"
	"github.com/toeirei/keyvault/internal/store"
)

// errInterrupted signals a Ctrl-C (or EOF) during any prompt; the console
// exits cleanly with status 0.
var errInterrupted = errors.New("interrupted")

// lineReader reads one line of user input after showing a prompt.
type lineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// readlineReader is the interactive implementation with line editing.
type readlineReader struct {
	rl *readline.Instance
}

func (r *readlineReader) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	line, err := r.rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt || err == io.EOF {
			return "", errInterrupted
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (r *readlineReader) Close() error { return r.rl.Close() }

// scannerReader reads from a plain stream, printing prompts to out. Used
// when stdin is not a terminal and in tests.
type scannerReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func (r *scannerReader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", errInterrupted
	}
	return strings.TrimSpace(r.scanner.Text()), nil
}

func (r *scannerReader) Close() error { return nil }

// console wires the store and its collaborators to the interactive menu.
type console struct {
	cfg   config.Config
	st    *store.Store
	in    lineReader
	out   io.Writer
	sync  gitsync.Backend
	check gitsync.VisibilityChecker
	clip  clipboard.Copier
}

// newConsole builds the production console: real store, git sync backend,
// GitHub visibility probe, and system clipboard.
func newConsole(cfg config.Config) (*console, error) {
	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	var in lineReader
	if term.IsTerminal(int(os.Stdin.Fd())) {
		rl, err := readline.New("")
		if err != nil {
			return nil, err
		}
		in = &readlineReader{rl: rl}
	} else {
		in = &scannerReader{scanner: bufio.NewScanner(os.Stdin), out: os.Stdout}
	}

	return &console{
		cfg:   cfg,
		st:    st,
		in:    in,
		out:   os.Stdout,
		sync:  gitsync.NewGit(cfg.KeysFile, "."),
		check: gitsync.NewGitHubChecker("."),
		clip:  clipboard.New(),
	}, nil
}

func (c *console) Close() error { return c.in.Close() }

// Run shows the startup security warning, then loops over the main menu
// until the user exits. A Ctrl-C during any prompt exits cleanly.
func (c *console) Run() error {
	if err := c.warnIfPublic(); err != nil {
		if err == errInterrupted {
			fmt.Fprintln(c.out, i18n.T("menu.exiting"))
			return nil
		}
		return err
	}

	for {
		c.printMenu()
		choice, err := c.in.ReadLine(i18n.T("menu.prompt"))
		if err != nil {
			if err == errInterrupted {
				fmt.Fprintln(c.out, i18n.T("menu.exiting"))
				return nil
			}
			return err
		}

		var actionErr error
		switch choice {
		case "1":
			actionErr = c.captureKeys()
		case "2":
			actionErr = c.deployKeys()
		case "3":
			actionErr = c.setAlias()
		case "4":
			c.runSync(i18n.T("sync.manual_message"))
		case "5":
			actionErr = c.deleteKeys()
		case "6":
			c.listKeys("")
		case "7":
			actionErr = c.searchKeys()
		case "8":
			actionErr = c.copyKey()
		case "9":
			actionErr = c.setExpiry()
		case "10":
			actionErr = c.manageSystemKeys()
		case "11":
			return nil
		default:
			fmt.Fprintln(c.out, errorStyle.Render(i18n.T("menu.invalid")))
		}

		if actionErr != nil {
			if actionErr == errInterrupted {
				fmt.Fprintln(c.out, i18n.T("menu.exiting"))
				return nil
			}
			// Operation-level errors abort back to the menu, never the loop.
			fmt.Fprintln(c.out, errorStyle.Render(i18n.T("common.error", actionErr)))
		}
	}
}

// warnIfPublic warns when the inventory lives in a publicly readable
// repository and requires a typed "yes" to continue.
func (c *console) warnIfPublic() error {
	if !c.check.IsPublic() {
		return nil
	}
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, warnStyle.Render(i18n.T("visibility.warning")))
	fmt.Fprintln(c.out, i18n.T("visibility.recommend_private"))
	fmt.Fprintln(c.out, i18n.T("visibility.reconsider"))
	answer, err := c.in.ReadLine(i18n.T("visibility.continue_prompt"))
	if err != nil {
		return err
	}
	if !isConfirmed(answer) {
		fmt.Fprintln(c.out, i18n.T("visibility.exiting"))
		return exitError{code: 1}
	}
	return nil
}

func (c *console) printMenu() {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, titleStyle.Render(i18n.T("menu.title")))
	for _, id := range []string{
		"menu.capture", "menu.deploy", "menu.set_alias", "menu.sync",
		"menu.delete", "menu.list", "menu.search", "menu.copy",
		"menu.set_expiry", "menu.system_keys", "menu.exit",
	} {
		fmt.Fprintln(c.out, i18n.T(id))
	}
}

// runSync triggers the git backend and reports the outcome. Sync failures
// are printed, never retried or rolled back.
func (c *console) runSync(message string) {
	if err := c.sync.Sync(message); err != nil {
		fmt.Fprintln(c.out, errorStyle.Render(i18n.T("sync.error", err)))
		return
	}
	fmt.Fprintln(c.out, successStyle.Render(i18n.T("sync.success")))
}

// offerSync asks whether to sync after a mutation; any answer except "y"
// declines.
func (c *console) offerSync(message string) error {
	answer, err := c.in.ReadLine(i18n.T("sync.prompt"))
	if err != nil {
		return err
	}
	if isYes(answer) {
		c.runSync(message)
	}
	return nil
}
