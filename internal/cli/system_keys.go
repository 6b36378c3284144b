// Copyright (c) 2025 ToeiRei
// Keyvault - SSH public key inventory
// This source code is licensed under the MIT license found in the LICENSE file.

// system_keys.go implements the nested sub-menu for managing the machine's
// own key-file pairs: rename, delete, copy to clipboard.

package cli

import (
	"fmt"

	"github.com/toeirei/keyvault/internal/i18n"
	"github.com/toeirei/keyvault/internal/model"
	"github.com/toeirei/keyvault/internal/sshkey"
	"github.com/toeirei/keyvault/internal/syskeys"
)

// manageSystemKeys loops over the system-key sub-menu until the user goes
// back. The file list is re-read on every pass so renames and deletes show
// up immediately.
func (c *console) manageSystemKeys() error {
	for {
		keyFiles, err := syskeys.List(c.cfg.SSHDir)
		if err != nil {
			return err
		}
		if len(keyFiles) == 0 {
			fmt.Fprintln(c.out, i18n.T("capture.none"))
			return nil
		}

		c.printSystemKeys(keyFiles)

		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, titleStyle.Render(i18n.T("syskeys.menu_title")))
		for _, id := range []string{
			"syskeys.menu_rename", "syskeys.menu_delete",
			"syskeys.menu_copy", "syskeys.menu_back",
		} {
			fmt.Fprintln(c.out, i18n.T(id))
		}

		choice, err := c.in.ReadLine(i18n.T("syskeys.menu_prompt"))
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = c.renameSystemKey(keyFiles)
		case "2":
			err = c.deleteSystemKey(keyFiles)
		case "3":
			err = c.copySystemKey(keyFiles)
		case "4":
			return nil
		default:
			fmt.Fprintln(c.out, errorStyle.Render(i18n.T("menu.invalid")))
		}
		if err != nil {
			return err
		}
	}
}

func (c *console) printSystemKeys(keyFiles []model.SystemKeyFile) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, titleStyle.Render(i18n.T("syskeys.header")))
	fmt.Fprintln(c.out, separator)
	for i, kf := range keyFiles {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, kf.Name)
		fmt.Fprintln(c.out, detailStyle.Render("   "+i18n.T("syskeys.name", sshkey.DisplayName(kf.Line))))
		fmt.Fprintln(c.out, detailStyle.Render("   "+i18n.T("syskeys.path", kf.Path)))
		if kf.HasPrivate {
			fmt.Fprintln(c.out, detailStyle.Render("   "+i18n.T("syskeys.has_private")))
		}
		fmt.Fprintln(c.out, separator)
	}
}

// renameSystemKey renames a key pair. A destination that already exists is
// refused; a private-key rename failure after the public rename succeeded is
// reported but not rolled back.
func (c *console) renameSystemKey(keyFiles []model.SystemKeyFile) error {
	selection, err := c.in.ReadLine(i18n.T("syskeys.rename_select"))
	if err != nil {
		return err
	}
	idx, err := parseIndex(selection, len(keyFiles))
	if err != nil {
		fmt.Fprintln(c.out, errorStyle.Render(i18n.T("selection.invalid")))
		return nil
	}
	kf := keyFiles[idx]

	newBase, err := c.in.ReadLine(i18n.T("syskeys.rename_new", kf.Name))
	if err != nil {
		return err
	}
	if newBase == "" {
		fmt.Fprintln(c.out, errorStyle.Render(i18n.T("syskeys.invalid_name")))
		return nil
	}

	renamedPrivate, renameErr := syskeys.Rename(kf, newBase)
	if renameErr != nil {
		fmt.Fprintln(c.out, errorStyle.Render(i18n.T("syskeys.rename_error", renameErr)))
		return nil
	}
	fmt.Fprintln(c.out, successStyle.Render(i18n.T("syskeys.renamed", kf.Name, newBase+".pub")))
	if renamedPrivate {
		fmt.Fprintln(c.out, successStyle.Render(i18n.T("syskeys.renamed_private", newBase)))
	}
	return nil
}

// deleteSystemKey removes a key pair after a typed-"yes" confirmation, with
// an extra warning when a private key will go too.
func (c *console) deleteSystemKey(keyFiles []model.SystemKeyFile) error {
	selection, err := c.in.ReadLine(i18n.T("syskeys.delete_select"))
	if err != nil {
		return err
	}
	idx, err := parseIndex(selection, len(keyFiles))
	if err != nil {
		fmt.Fprintln(c.out, errorStyle.Render(i18n.T("selection.invalid")))
		return nil
	}
	kf := keyFiles[idx]

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, warnStyle.Render(i18n.T("syskeys.delete_about", kf.Name)))
	if kf.HasPrivate {
		fmt.Fprintln(c.out, warnStyle.Render(i18n.T("syskeys.delete_private_warning")))
	}

	answer, err := c.in.ReadLine(i18n.T("syskeys.delete_confirm"))
	if err != nil {
		return err
	}
	if !isConfirmed(answer) {
		fmt.Fprintln(c.out, i18n.T("common.cancelled"))
		return nil
	}

	removedPrivate, deleteErr := syskeys.Delete(kf)
	if deleteErr != nil {
		fmt.Fprintln(c.out, errorStyle.Render(i18n.T("syskeys.delete_error", deleteErr)))
		return nil
	}
	fmt.Fprintln(c.out, successStyle.Render(i18n.T("syskeys.deleted", kf.Name)))
	if removedPrivate {
		fmt.Fprintln(c.out, successStyle.Render(i18n.T("syskeys.deleted_private")))
	}
	return nil
}

func (c *console) copySystemKey(keyFiles []model.SystemKeyFile) error {
	selection, err := c.in.ReadLine(i18n.T("syskeys.copy_select"))
	if err != nil {
		return err
	}
	idx, err := parseIndex(selection, len(keyFiles))
	if err != nil {
		fmt.Fprintln(c.out, errorStyle.Render(i18n.T("selection.invalid")))
		return nil
	}
	return c.copyLine(keyFiles[idx].Line)
}
