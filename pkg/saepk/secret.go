package saepk

// secretBytes wraps a secret-bearing byte slice (decoded password bytes,
// transcript hash input, fingerprint comparison buffers, decrypted
// Modifier, DER private-key material) so every function that allocates one
// can defer Zero() on all return paths instead of relying on the garbage
// collector to eventually overwrite it.
type secretBytes struct {
	b []byte
}

func newSecretBytes(b []byte) *secretBytes {
	return &secretBytes{b: b}
}

// Bytes returns the underlying slice. It remains valid only until Zero is
// called.
func (s *secretBytes) Bytes() []byte {
	if s == nil {
		return nil
	}
	return s.b
}

// Zero overwrites the backing array with zeroes. Safe to call multiple
// times and on a nil receiver.
func (s *secretBytes) Zero() {
	if s == nil {
		return
	}
	for i := range s.b {
		s.b[i] = 0
	}
}
