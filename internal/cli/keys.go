// Copyright (c) 2025 ToeiRei
// Keyvault - SSH public key inventory
// This source code is licensed under the MIT license found in the LICENSE file.

// keys.go holds the console handlers for the managed inventory: capture,
// deploy, list/search, delete, alias, expiry, and clipboard copy.

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/toeirei/keyvault/internal/deploy"
	"github.com/toeirei/keyvault/internal/i18n"
	"github.com/toeirei/keyvault/internal/model"
	"github.com/toeirei/keyvault/internal/sshkey"
	"github.com/toeirei/keyvault/internal/syskeys"
)

const separator = "------------------------------------------------------------"

// listKeys prints the inventory with metadata, optionally filtered by a
// case-insensitive search term against display name and alias.
func (c *console) listKeys(search string) {
	if c.st.Len() == 0 {
		fmt.Fprintln(c.out, i18n.T("list.no_keys"))
		return
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, titleStyle.Render(i18n.T("list.header")))
	fmt.Fprintln(c.out, separator)

	keys := c.st.Keys()
	for _, i := range c.st.Filter(search) {
		meta := c.st.Metadata(i)
		fmt.Fprintf(c.out, "%d. %s\n", i+1, sshkey.DisplayName(keys[i].Line))
		if meta.Alias != "" {
			fmt.Fprintln(c.out, detailStyle.Render("   "+i18n.T("list.alias", meta.Alias)))
		}
		fmt.Fprintln(c.out, detailStyle.Render("   "+i18n.T("list.type", sshkey.Algorithm(keys[i].Line))))
		if meta.Expiry != "" {
			fmt.Fprintln(c.out, detailStyle.Render("   "+i18n.T("list.expires", meta.Expiry)))
		}
		added := meta.Added
		if added == "" {
			added = i18n.T("list.unknown")
		}
		fmt.Fprintln(c.out, detailStyle.Render("   "+i18n.T("list.added", added)))
		fmt.Fprintln(c.out, separator)
	}
}

func (c *console) searchKeys() error {
	term, err := c.in.ReadLine(i18n.T("search.prompt"))
	if err != nil {
		return err
	}
	c.listKeys(term)
	return nil
}

// printSelectable shows a compact numbered list (name plus alias) used by
// the deploy, delete and alias prompts.
func (c *console) printSelectable() {
	keys := c.st.Keys()
	for i, k := range keys {
		name := sshkey.DisplayName(k.Line)
		if alias := c.st.Metadata(i).Alias; alias != "" {
			fmt.Fprintf(c.out, "%d. %s (%s)\n", i+1, name, alias)
		} else {
			fmt.Fprintf(c.out, "%d. %s\n", i+1, name)
		}
	}
}

// captureKeys imports selected *.pub files from the local SSH directory
// into the inventory, prompting per key for overwrite, alias and expiry.
// One save at the end covers all additions.
func (c *console) captureKeys() error {
	systemKeys, err := syskeys.List(c.cfg.SSHDir)
	if err != nil {
		return err
	}
	if len(systemKeys) == 0 {
		fmt.Fprintln(c.out, i18n.T("capture.none"))
		return nil
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, titleStyle.Render(i18n.T("capture.found")))
	for i, k := range systemKeys {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, sshkey.DisplayName(k.Line))
	}

	selection, err := c.in.ReadLine(i18n.T("capture.select"))
	if err != nil {
		return err
	}
	indices, err := parseSelection(selection, len(systemKeys))
	if err != nil {
		fmt.Fprintln(c.out, errorStyle.Render(i18n.T("selection.invalid")))
		return nil
	}

	var added []string
	for _, idx := range indices {
		line := systemKeys[idx].Line
		name := sshkey.DisplayName(line)

		if existing := c.st.FindExisting(line); existing >= 0 {
			existingName := sshkey.DisplayName(c.st.Keys()[existing].Line)
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, i18n.T("capture.exists", name, existingName))
			answer, err := c.in.ReadLine(i18n.T("capture.overwrite"))
			if err != nil {
				return err
			}
			if !isYes(answer) {
				fmt.Fprintln(c.out, i18n.T("capture.skipping"))
				continue
			}
			c.st.RemoveAt([]int{existing})
		}

		alias, err := c.in.ReadLine(i18n.T("capture.alias", name))
		if err != nil {
			return err
		}
		expiry, err := c.in.ReadLine(i18n.T("capture.expiry"))
		if err != nil {
			return err
		}

		c.st.Append(line, alias, expiry)
		added = append(added, name)
	}

	if len(added) == 0 {
		return nil
	}
	if err := c.st.Save(); err != nil {
		return err
	}
	return c.offerSync(i18n.T("capture.sync_message", strings.Join(added, ", ")))
}

// deployKeys appends selected inventory keys to the machine's own
// authorized_keys file and reports the verification outcome.
func (c *console) deployKeys() error {
	if c.st.Len() == 0 {
		fmt.Fprintln(c.out, i18n.T("deploy.none"))
		return nil
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, titleStyle.Render(i18n.T("deploy.available")))
	c.printSelectable()

	selection, err := c.in.ReadLine(i18n.T("deploy.select"))
	if err != nil {
		return err
	}
	indices, err := parseSelection(selection, c.st.Len())
	if err != nil {
		fmt.Fprintln(c.out, errorStyle.Render(i18n.T("selection.invalid")))
		return nil
	}
	if len(indices) == 0 {
		return nil
	}

	keys := c.st.Keys()
	selected := make([]model.KeyRecord, 0, len(indices))
	for _, i := range indices {
		selected = append(selected, keys[i])
	}

	result, err := deploy.Run(c.cfg.SSHDir, selected)
	if err != nil {
		return err
	}
	if result.AlreadyDeployed {
		fmt.Fprintln(c.out, i18n.T("deploy.already"))
		return nil
	}

	if len(result.Succeeded) > 0 {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, successStyle.Render(i18n.T("deploy.success")))
		for _, name := range result.Succeeded {
			fmt.Fprintln(c.out, successStyle.Render("✓ "+name))
		}
	}
	if len(result.Failed) > 0 {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, errorStyle.Render(i18n.T("deploy.failed")))
		for _, name := range result.Failed {
			fmt.Fprintln(c.out, errorStyle.Render("✗ "+name))
		}
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, i18n.T("deploy.location", result.Target))
	if info, err := os.Stat(result.Target); err == nil {
		fmt.Fprintln(c.out, i18n.T("deploy.permissions", fmt.Sprintf("%o", info.Mode().Perm())))
	}
	return nil
}

// deleteKeys removes selected keys after an explicit typed-"yes"
// confirmation listing exactly what will go. Declining is a full no-op.
func (c *console) deleteKeys() error {
	if c.st.Len() == 0 {
		fmt.Fprintln(c.out, i18n.T("delete.none"))
		return nil
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, titleStyle.Render(i18n.T("deploy.available")))
	c.printSelectable()

	selection, err := c.in.ReadLine(i18n.T("delete.select"))
	if err != nil {
		return err
	}
	indices, err := parseSelection(selection, c.st.Len())
	if err != nil {
		fmt.Fprintln(c.out, errorStyle.Render(i18n.T("selection.invalid")))
		return nil
	}
	if len(indices) == 0 {
		return nil
	}

	all := len(indices) == c.st.Len()
	fmt.Fprintln(c.out)
	if all {
		fmt.Fprintln(c.out, warnStyle.Render(i18n.T("delete.about_all")))
	} else {
		fmt.Fprintln(c.out, warnStyle.Render(i18n.T("delete.about")))
	}
	keys := c.st.Keys()
	for _, i := range indices {
		name := sshkey.DisplayName(keys[i].Line)
		if alias := c.st.Metadata(i).Alias; alias != "" {
			fmt.Fprintf(c.out, "- %s (%s)\n", name, alias)
		} else {
			fmt.Fprintf(c.out, "- %s\n", name)
		}
	}

	prompt := i18n.T("delete.confirm")
	if all {
		prompt = i18n.T("delete.confirm_all")
	}
	answer, err := c.in.ReadLine(prompt)
	if err != nil {
		return err
	}
	if !isConfirmed(answer) {
		fmt.Fprintln(c.out, i18n.T("common.cancelled"))
		return nil
	}

	removed := c.st.RemoveAt(indices)
	if len(removed) == 0 {
		return nil
	}
	if err := c.st.Save(); err != nil {
		return err
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, successStyle.Render(i18n.T("delete.done", len(removed))))
	for _, name := range removed {
		fmt.Fprintf(c.out, "- %s\n", name)
	}
	return c.offerSync(i18n.T("delete.sync_message", strings.Join(removed, ", ")))
}

// setAlias updates the alias of one key, selected by position.
func (c *console) setAlias() error {
	if c.st.Len() == 0 {
		fmt.Fprintln(c.out, i18n.T("list.no_keys"))
		return nil
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, titleStyle.Render(i18n.T("deploy.available")))
	c.printSelectable()

	selection, err := c.in.ReadLine(i18n.T("alias.select"))
	if err != nil {
		return err
	}
	idx, err := parseIndex(selection, c.st.Len())
	if err != nil {
		fmt.Fprintln(c.out, errorStyle.Render(i18n.T("selection.invalid")))
		return nil
	}

	name := sshkey.DisplayName(c.st.Keys()[idx].Line)
	alias, err := c.in.ReadLine(i18n.T("alias.new", name))
	if err != nil {
		return err
	}
	if alias == "" {
		return nil
	}
	if err := c.st.SetAlias(idx, alias); err != nil {
		return err
	}
	if err := c.st.Save(); err != nil {
		return err
	}
	return c.offerSync(i18n.T("alias.sync_message", name, alias))
}

// setExpiry stores a verbatim date string for one key.
func (c *console) setExpiry() error {
	c.listKeys("")
	if c.st.Len() == 0 {
		return nil
	}

	selection, err := c.in.ReadLine(i18n.T("expiry.select"))
	if err != nil {
		return err
	}
	idx, err := parseIndex(selection, c.st.Len())
	if err != nil {
		fmt.Fprintln(c.out, errorStyle.Render(i18n.T("selection.invalid")))
		return nil
	}

	date, err := c.in.ReadLine(i18n.T("expiry.date"))
	if err != nil {
		return err
	}
	if err := c.st.SetExpiry(idx, date); err != nil {
		return err
	}
	if err := c.st.Save(); err != nil {
		return err
	}
	name := sshkey.DisplayName(c.st.Keys()[idx].Line)
	fmt.Fprintln(c.out, successStyle.Render(i18n.T("expiry.done", date, name)))
	return nil
}

// copyKey copies one inventory key line for the user.
func (c *console) copyKey() error {
	c.listKeys("")
	if c.st.Len() == 0 {
		return nil
	}

	selection, err := c.in.ReadLine(i18n.T("copy.select"))
	if err != nil {
		return err
	}
	idx, err := parseIndex(selection, c.st.Len())
	if err != nil {
		fmt.Fprintln(c.out, errorStyle.Render(i18n.T("selection.invalid")))
		return nil
	}
	return c.copyLine(c.st.Keys()[idx].Line)
}

// copyLine routes a key line through the clipboard capability. When no
// clipboard is available the copier prints the value instead.
func (c *console) copyLine(line string) error {
	copied, err := c.clip.Copy(line)
	if err != nil {
		return err
	}
	if copied {
		fmt.Fprintln(c.out, successStyle.Render(i18n.T("copy.done")))
	}
	return nil
}
