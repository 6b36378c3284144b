package sshkey

import (
	"golang.org/x/crypto/ssh"
)

// Fingerprint returns the SHA256 fingerprint of a public key line, for
// display only. Key lines stay opaque everywhere else; a line that the ssh
// library cannot parse renders as "-" rather than an error.
func Fingerprint(line string) string {
	pub, _, _, _, err := ssh.ParseAuthorizedKey([]byte(line))
	if err != nil {
		return "-"
	}
	return ssh.FingerprintSHA256(pub)
}
