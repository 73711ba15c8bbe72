package crypto

import (
	"crypto/sha256"
	"crypto/sha512"
)

// Sum computes the transcript/fingerprint hash for group g, dispatching to
// SHA-256, SHA-384, or SHA-512 for groups 19, 20, 21. This implements the
// sae_hash() collaborator (the hash(n, data) contract) that the SAE-PK
// confirm stage uses for both the KeyAuth transcript and the fingerprint.
func Sum(g Group, data []byte) ([]byte, error) {
	switch g {
	case Group19:
		h := sha256.Sum256(data)
		return h[:], nil
	case Group20:
		h := sha512.Sum384(data)
		return h[:], nil
	case Group21:
		h := sha512.Sum512(data)
		return h[:], nil
	default:
		return nil, ErrUnsupportedGroup
	}
}
