package saepk

import (
	"fmt"

	"github.com/hostapd-go/sae-pk/pkg/crypto"
	"github.com/pion/logging"
)

// BuilderConfig configures a Builder.
type BuilderConfig struct {
	// LoggerFactory is the factory for creating loggers. If nil, logging is
	// disabled.
	LoggerFactory logging.LoggerFactory
}

// Builder assembles the AP-side SAE-PK confirm element. It holds no
// session-specific state, so a single Builder is safe to share across
// concurrent sessions.
type Builder struct {
	log logging.LeveledLogger
}

// NewBuilder creates a Builder from config.
func NewBuilder(config BuilderConfig) *Builder {
	b := &Builder{}
	if config.LoggerFactory != nil {
		b.log = config.LoggerFactory.NewLogger("saepk")
	}
	return b
}

// Build signs the session transcript with container's key, encrypts the
// Modifier under the session's kek, and appends the resulting
// vendor-specific element to dst. It never partially writes dst: on any
// failure dst is returned unchanged.
//
// Preconditions checked here: the session's kek has a valid AES-SIV length
// and the session uses one of the supported ECC groups.
func (b *Builder) Build(sess SAESessionView, container *APKeyContainer, dst []byte) ([]byte, error) {
	kek := sess.KEK()
	if !validKEK(kek) {
		return dst, fmt.Errorf("saepk: %w", ErrKekUnavailable)
	}
	if !sess.Group().Valid() {
		return dst, fmt.Errorf("saepk: %w: session does not use an ECC group", ErrUnsupportedGroup)
	}

	hash, err := transcriptHash(sess, true, container.M, container.PubKey)
	if err != nil {
		return dst, err
	}

	sig, err := crypto.Sign(container.SigningKey, hash)
	if err != nil {
		return dst, fmt.Errorf("saepk: %w: %v", ErrInternal, err)
	}
	if b.log != nil {
		b.log.Infof("saepk: built KeyAuth signature (%d bytes)", len(sig))
	}

	encM, err := crypto.Encrypt(kek, container.M[:], nil)
	if err != nil {
		return dst, fmt.Errorf("saepk: %w: %v", ErrInternal, err)
	}
	if len(encM) != encryptedModifierLen {
		return dst, fmt.Errorf("saepk: %w: unexpected EncryptedModifier length %d", ErrInternal, len(encM))
	}

	inner := make([]byte, 0, 1+len(encM)+2+2+len(container.PubKey)+2+len(sig))
	inner = append(inner, byte(len(encM)))
	inner = append(inner, encM...)

	inner = append(inner, EIDExtension, byte(2+len(container.PubKey)), EIDExtFILSPublicKey, ecdsaKeyType)
	inner = append(inner, container.PubKey...)

	inner = append(inner, EIDExtension, byte(1+len(sig)), EIDExtFILSKeyConfirm)
	inner = append(inner, sig...)

	vendorType := SAEPKVendorType
	outerLen := 4 + len(inner)
	if outerLen > 255 {
		return dst, fmt.Errorf("saepk: %w", ErrNoRoom)
	}

	elem := make([]byte, 0, 2+outerLen)
	elem = append(elem, EIDVendorSpecific, byte(outerLen))
	elem = append(elem, byte(vendorType>>24), byte(vendorType>>16), byte(vendorType>>8), byte(vendorType))
	elem = append(elem, inner...)

	if cap(dst)-len(dst) < len(elem) {
		return dst, fmt.Errorf("saepk: %w", ErrNoRoom)
	}

	return append(dst, elem...), nil
}
