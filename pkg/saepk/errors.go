// Package saepk implements the SAE-PK confirm-stage subsystem: the
// transcript hash, fingerprint verification, the AP-side confirm-element
// builder, the STA-side parser, and the AP key container.
package saepk

import "errors"

// Sentinel errors returned (optionally wrapped with additional context via
// %w) by every exported operation in this package. Callers distinguish
// failure kinds with errors.Is, never by inspecting error text.
var (
	// ErrPasswordInvalid means the password failed base32pw.ValidPassword.
	ErrPasswordInvalid = errors.New("saepk: invalid password")

	// ErrBadProvisioning means the AP key container provisioning string was
	// malformed: bad hex, bad base64, bad DER, or wrong Modifier length.
	ErrBadProvisioning = errors.New("saepk: malformed provisioning string")

	// ErrUnsupportedGroup means the SAE group was not one of 19, 20, 21.
	ErrUnsupportedGroup = errors.New("saepk: unsupported group")

	// ErrKekUnavailable means the session's kek was not 32, 48, or 64 bytes.
	ErrKekUnavailable = errors.New("saepk: kek has invalid length")

	// ErrWireMalformed means an information element was absent, truncated,
	// or tagged with an unexpected extension identifier.
	ErrWireMalformed = errors.New("saepk: malformed wire element")

	// ErrAuthFail means AES-SIV integrity verification failed while
	// decrypting EncryptedModifier.
	ErrAuthFail = errors.New("saepk: AEAD authentication failed")

	// ErrFingerprintMismatch means the password-derived fingerprint did not
	// match the hash of SSID‖M‖K_AP.
	ErrFingerprintMismatch = errors.New("saepk: fingerprint mismatch")

	// ErrGroupMismatch means K_AP's curve differs from the session's group.
	ErrGroupMismatch = errors.New("saepk: K_AP group does not match session group")

	// ErrSignatureInvalid means ECDSA verification of KeyAuth failed.
	ErrSignatureInvalid = errors.New("saepk: signature verification failed")

	// ErrNoRoom means the destination buffer had insufficient tailroom.
	ErrNoRoom = errors.New("saepk: insufficient room in destination buffer")

	// ErrInternal wraps unexpected failures from a hashing, signing, or
	// serialization collaborator.
	ErrInternal = errors.New("saepk: internal error")
)
