package sshkey

import "testing"

func TestParseIdentity(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantAlgo  string
		wantData  string
		wantFound bool
	}{
		{"full line", "ssh-ed25519 AAAAC3Nza alice@laptop", "ssh-ed25519", "AAAAC3Nza", true},
		{"no comment", "ssh-rsa AAAAB3Nza", "ssh-rsa", "AAAAB3Nza", true},
		{"multi word comment", "ecdsa-sha2-nistp256 AAAAE2Vj work laptop key", "ecdsa-sha2-nistp256", "AAAAE2Vj", true},
		{"extra whitespace", "  ssh-ed25519   AAAAC3Nza   bob@host  ", "ssh-ed25519", "AAAAC3Nza", true},
		{"single field", "ssh-ed25519", "", "", false},
		{"empty", "", "", "", false},
		{"blank", "   ", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ParseIdentity(tt.line)
			if ok != tt.wantFound {
				t.Fatalf("ParseIdentity(%q) found = %v, want %v", tt.line, ok, tt.wantFound)
			}
			if id.Algorithm != tt.wantAlgo || id.KeyData != tt.wantData {
				t.Errorf("ParseIdentity(%q) = (%q, %q), want (%q, %q)",
					tt.line, id.Algorithm, id.KeyData, tt.wantAlgo, tt.wantData)
			}
		})
	}
}

func TestIdentityIgnoresComment(t *testing.T) {
	a, _ := ParseIdentity("ssh-ed25519 AAAAC3Nza alice@laptop")
	b, _ := ParseIdentity("ssh-ed25519 AAAAC3Nza bob@desktop")
	if a != b {
		t.Errorf("identities with different comments should be equal: %v vs %v", a, b)
	}
	if a.String() != "ssh-ed25519 AAAAC3Nza" {
		t.Errorf("unexpected identity string: %q", a.String())
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"ssh-ed25519 AAAAC3Nza alice@laptop", "alice@laptop"},
		{"ssh-ed25519 AAAAC3Nza work laptop", "laptop"},
		{"ssh-ed25519 AAAAC3Nza", "Unknown"},
		{"", "Unknown"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.line); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestFingerprint(t *testing.T) {
	// A structurally valid ed25519 public key line.
	const line = "ssh-ed25519 AAAAC3NzaC1lZDI1NTE5AAAAIAABAgMEBQYHCAkKCwwNDg8QERITFBUWFxgZGhscHR4f alice@laptop"
	if got := Fingerprint(line); got != "SHA256:ZkAslGjFiUHdGf/WUL8rQvkib4PTvQatUV0OUQSncCA" {
		t.Errorf("unexpected fingerprint: %q", got)
	}

	if got := Fingerprint("not a key line"); got != "-" {
		t.Errorf("expected \"-\" for unparsable line, got %q", got)
	}
}
