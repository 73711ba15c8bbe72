package saepk

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/hostapd-go/sae-pk/pkg/crypto"
)

// APKeyContainer owns the operator-provisioned SAE-PK identity for an AP:
// the Modifier M, the ECDSA signing key, the group it was generated for,
// and the SubjectPublicKeyInfo encoding of its public half ready for the
// wire. It is effectively immutable once constructed.
type APKeyContainer struct {
	M          [SAEPKMLen]byte
	SigningKey *crypto.KeyPair
	Group      crypto.Group
	PubKey     []byte // SubjectPublicKeyInfo DER
}

// ParseAPKeyContainer parses a provisioning string of the form
// "<32 hex chars>:<base64 DER EC private key>" into an APKeyContainer.
func ParseAPKeyContainer(provisioning string) (*APKeyContainer, error) {
	idx := strings.IndexByte(provisioning, ':')
	if idx < 0 {
		return nil, fmt.Errorf("saepk: %w: missing ':' separator", ErrBadProvisioning)
	}
	hexPart, b64Part := provisioning[:idx], provisioning[idx+1:]

	if len(hexPart)%2 != 0 {
		return nil, fmt.Errorf("saepk: %w: odd-length Modifier hex", ErrBadProvisioning)
	}
	mRaw, err := hex.DecodeString(hexPart)
	if err != nil {
		return nil, fmt.Errorf("saepk: %w: %v", ErrBadProvisioning, err)
	}
	if len(mRaw) != SAEPKMLen {
		return nil, fmt.Errorf("saepk: %w: Modifier must decode to %d octets, got %d", ErrBadProvisioning, SAEPKMLen, len(mRaw))
	}

	der, err := base64.StdEncoding.DecodeString(b64Part)
	if err != nil {
		return nil, fmt.Errorf("saepk: %w: %v", ErrBadProvisioning, err)
	}
	defer newSecretBytes(der).Zero()

	kp, err := crypto.ParsePrivateKeyDER(der)
	if err != nil {
		return nil, fmt.Errorf("saepk: %w: %v", ErrBadProvisioning, err)
	}

	pub, err := kp.SubjectPublicKeyInfo()
	if err != nil {
		return nil, fmt.Errorf("saepk: %w: %v", ErrBadProvisioning, err)
	}

	c := &APKeyContainer{SigningKey: kp, Group: kp.Group, PubKey: pub}
	copy(c.M[:], mRaw)
	return c, nil
}
