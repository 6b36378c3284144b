package clipboard

import (
	"strings"
	"testing"
)

func TestPrintCopierPrintsValue(t *testing.T) {
	var buf strings.Builder
	c := &PrintCopier{Out: &buf}

	copied, err := c.Copy("ssh-ed25519 AAAAC3Nza alice@laptop")
	if err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if copied {
		t.Error("print fallback must not report the text as copied")
	}
	if !strings.Contains(buf.String(), "ssh-ed25519 AAAAC3Nza alice@laptop") {
		t.Errorf("fallback should print the key value, got %q", buf.String())
	}
}
