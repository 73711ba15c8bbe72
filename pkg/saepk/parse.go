package saepk

import (
	"fmt"

	"github.com/hostapd-go/sae-pk/pkg/crypto"
	"github.com/hostapd-go/sae-pk/pkg/ie"
	"github.com/pion/logging"
)

// ParserConfig configures a Parser.
type ParserConfig struct {
	// LoggerFactory is the factory for creating loggers. If nil, logging is
	// disabled.
	LoggerFactory logging.LoggerFactory
}

// Parser validates and decodes the STA-side view of an SAE-PK confirm
// element. A single Parser is safe to share across concurrent sessions.
type Parser struct {
	log logging.LeveledLogger
}

// NewParser creates a Parser from config.
func NewParser(config ParserConfig) *Parser {
	p := &Parser{}
	if config.LoggerFactory != nil {
		p.log = config.LoggerFactory.NewLogger("saepk")
	}
	return p
}

// Parse locates the SAE-PK vendor element in ies, decrypts its Modifier,
// verifies the fingerprint against the session's password and the AP's
// KeyAuth signature against the session transcript. It returns the
// recovered Modifier and AP public key only once every check has passed;
// on any failure it returns a zero Modifier, a nil key and a sentinel
// error identifying which check failed.
func (p *Parser) Parse(sess SAESessionView, ies []byte) (m [SAEPKMLen]byte, kap *crypto.PublicKey, err error) {
	kek := sess.KEK()
	if !validKEK(kek) {
		return m, nil, fmt.Errorf("saepk: %w", ErrKekUnavailable)
	}
	if !sess.Group().Valid() {
		return m, nil, fmt.Errorf("saepk: %w: session does not use an ECC group", ErrUnsupportedGroup)
	}

	payload, ok := ie.FindVendorIE(ies, SAEPKVendorType)
	if !ok {
		return m, nil, fmt.Errorf("saepk: %w: no SAE-PK vendor element present", ErrWireMalformed)
	}

	cur := ie.NewCursor(payload)

	encLen, err := cur.ReadU8()
	if err != nil {
		return m, nil, fmt.Errorf("saepk: %w: %v", ErrWireMalformed, err)
	}
	if int(encLen) != encryptedModifierLen {
		return m, nil, fmt.Errorf("saepk: %w: unexpected EncryptedModifier length %d", ErrWireMalformed, encLen)
	}
	encM, err := cur.ReadN(int(encLen))
	if err != nil {
		return m, nil, fmt.Errorf("saepk: %w: %v", ErrWireMalformed, err)
	}

	pubDER, err := readExtSubelement(cur, EIDExtFILSPublicKey)
	if err != nil {
		return m, nil, err
	}
	if len(pubDER) < 1 || pubDER[0] != ecdsaKeyType {
		return m, nil, fmt.Errorf("saepk: %w: unsupported FILS public key type", ErrWireMalformed)
	}
	pubSPKI := pubDER[1:]

	sig, err := readExtSubelement(cur, EIDExtFILSKeyConfirm)
	if err != nil {
		return m, nil, err
	}

	mRaw, err := crypto.Decrypt(kek, encM, nil)
	if err != nil {
		return m, nil, fmt.Errorf("saepk: %w: %v", ErrAuthFail, err)
	}
	defer newSecretBytes(mRaw).Zero()
	if len(mRaw) != SAEPKMLen {
		return m, nil, fmt.Errorf("saepk: %w: decrypted Modifier has wrong length", ErrAuthFail)
	}
	copy(m[:], mRaw)

	kap, err = crypto.ParsePublicKeySPKI(pubSPKI)
	if err != nil {
		return [SAEPKMLen]byte{}, nil, fmt.Errorf("saepk: %w: %v", ErrWireMalformed, err)
	}
	if kap.Group != sess.Group() {
		return [SAEPKMLen]byte{}, nil, fmt.Errorf("saepk: %w: K_AP group does not match session group", ErrGroupMismatch)
	}
	if err := crypto.ValidatePublicKey(kap); err != nil {
		return [SAEPKMLen]byte{}, nil, fmt.Errorf("saepk: %w: %v", ErrWireMalformed, err)
	}

	lambda := sess.Lambda()
	if err := checkFingerprint(sess, m, pubSPKI, lambda); err != nil {
		return [SAEPKMLen]byte{}, nil, err
	}
	if p.log != nil {
		p.log.Infof("saepk: fingerprint matched for lambda=%d", lambda)
	}

	hash, err := transcriptHash(sess, false, m, pubSPKI)
	if err != nil {
		return [SAEPKMLen]byte{}, nil, err
	}
	if !crypto.Verify(kap, hash, sig) {
		return [SAEPKMLen]byte{}, nil, fmt.Errorf("saepk: %w", ErrSignatureInvalid)
	}

	return m, kap, nil
}

// readExtSubelement reads one EID_EXTENSION-wrapped sub-element expecting
// the given extension ID as its first octet, and returns the remaining
// payload bytes (excluding the EID, length and extension-ID octets).
func readExtSubelement(cur *ie.Cursor, wantExtID byte) ([]byte, error) {
	eid, err := cur.ReadU8()
	if err != nil {
		return nil, fmt.Errorf("saepk: %w: %v", ErrWireMalformed, err)
	}
	if eid != EIDExtension {
		return nil, fmt.Errorf("saepk: %w: expected extension element, got EID %d", ErrWireMalformed, eid)
	}
	length, err := cur.ReadU8()
	if err != nil {
		return nil, fmt.Errorf("saepk: %w: %v", ErrWireMalformed, err)
	}
	if length < 1 {
		return nil, fmt.Errorf("saepk: %w: empty extension element", ErrWireMalformed)
	}
	body, err := cur.ReadN(int(length))
	if err != nil {
		return nil, fmt.Errorf("saepk: %w: %v", ErrWireMalformed, err)
	}
	if body[0] != wantExtID {
		return nil, fmt.Errorf("saepk: %w: expected extension ID %d, got %d", ErrWireMalformed, wantExtID, body[0])
	}
	return body[1:], nil
}
