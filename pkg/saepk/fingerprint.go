package saepk

import (
	"crypto/subtle"
	"fmt"

	"github.com/hostapd-go/sae-pk/pkg/crypto"
)

// checkFingerprint recomputes Hash(SSID‖M‖K_AP), truncates it to
// 8*Sec + 5*Lambda - 2 bits, and compares that prefix in constant time
// against a bit-shifted encoding of the session's password. Sec is carried
// in the top two bits of pw[0]; lambda is the base-32 character count the
// password was decoded from (excluding dash separators). kapSPKI is the
// received FILS Public Key sub-element payload — the raw
// SubjectPublicKeyInfo DER bytes, not a re-encoded affine point — since
// that is the exact byte string the fingerprint was provisioned against.
// It returns nil on a match and ErrFingerprintMismatch (or a wrapped
// ErrInternal / ErrUnsupportedGroup on a collaborator failure) otherwise.
func checkFingerprint(sess SAESessionView, m [SAEPKMLen]byte, kapSPKI []byte, lambda int) error {
	pw := sess.PW()
	if len(pw) < 1 {
		return fmt.Errorf("saepk: %w: no password available for fingerprint check", ErrFingerprintMismatch)
	}

	hashData := newSecretBytes(append(append(append([]byte{}, sess.SSID()...), m[:]...), kapSPKI...))
	defer hashData.Zero()

	hashLen, err := sess.Group().HashLen()
	if err != nil {
		return fmt.Errorf("saepk: %w: %v", ErrUnsupportedGroup, err)
	}
	hash, err := crypto.Sum(sess.Group(), hashData.Bytes())
	if err != nil {
		return fmt.Errorf("saepk: %w: %v", ErrInternal, err)
	}

	sec := int(pw[0]>>6) + 2
	fingerprintBits := 8*sec + 5*lambda - 2
	if fingerprintBits > hashLen*8 {
		return fmt.Errorf("saepk: %w: not enough hash output bits for the fingerprint", ErrFingerprintMismatch)
	}
	fingerprintBytes := (fingerprintBits + 7) / 8
	if fingerprintBits%8 != 0 {
		extra := 8 - fingerprintBits%8
		idx := fingerprintBits / 8
		hash[idx] = (hash[idx] >> extra) << extra
	}

	expected := newSecretBytes(expectedFingerprint(pw, sec))
	defer expected.Zero()

	if fingerprintBytes > len(hash) || fingerprintBytes > len(expected.Bytes()) {
		return fmt.Errorf("saepk: %w: fingerprint length out of range", ErrInternal)
	}

	if subtle.ConstantTimeCompare(hash[:fingerprintBytes], expected.Bytes()[:fingerprintBytes]) != 1 {
		return ErrFingerprintMismatch
	}
	return nil
}

// expectedFingerprint builds the sec leading zero octets followed by pw
// left-shifted by 2 bits as a bit-stream: expected[sec+i] = (pw[i] << 2) |
// (pw[i+1] >> 6), with pw treated as zero past its end.
func expectedFingerprint(pw []byte, sec int) []byte {
	out := make([]byte, sec+len(pw))
	pos := sec
	for i := 0; i < len(pw); i++ {
		var next byte
		if i+1 < len(pw) {
			next = pw[i+1]
		}
		out[pos] = pw[i]<<2 | next>>6
		pos++
	}
	return out
}
