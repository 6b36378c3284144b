package model

// KeyRecord is one entry in the managed inventory: a raw authorized_keys
// line of the form "<type> <base64-material> [<comment>]". The line is kept
// opaque; parsing happens at the use sites via the sshkey package.
type KeyRecord struct {
	Line string
}

// Identity is the (algorithm, key data) pair that identifies a public key
// for deduplication purposes. Comments never participate in identity.
type Identity struct {
	Algorithm string
	KeyData   string
}

// String returns the canonical "<algorithm> <keydata>" form. This is also
// the key used for the metadata sidecar map.
func (id Identity) String() string {
	return id.Algorithm + " " + id.KeyData
}

// KeyMetadata holds the human-facing metadata for one inventory entry.
// All fields are plain strings; Expiry is stored verbatim as entered.
type KeyMetadata struct {
	Alias  string `json:"alias,omitempty"`
	Expiry string `json:"expiry,omitempty"`
	Added  string `json:"added,omitempty"`
}

// SystemKeyFile describes a public key file found in the local SSH
// directory, independent of the managed inventory.
type SystemKeyFile struct {
	Name       string // file name, e.g. "id_ed25519.pub"
	Path       string // absolute path to the public key file
	Line       string // the key line read from the file
	HasPrivate bool   // whether the matching private key file exists
}
