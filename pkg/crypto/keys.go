package crypto

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/x509"
	"errors"
	"fmt"
	"math/big"
)

// KeyPair wraps an ECDSA private key together with the SAE-PK group it was
// generated for, so callers never need to re-derive the group from the curve.
type KeyPair struct {
	Group   Group
	Private *ecdsa.PrivateKey
}

// PublicKey wraps an ECDSA public key together with its SAE-PK group.
type PublicKey struct {
	Group Group
	Point *ecdsa.PublicKey
}

// ParsePrivateKeyDER parses a DER-encoded EC private key, trying PKCS#8
// first and falling back to SEC1 (the two forms openssl and hostap both
// emit), and reports which SAE-PK group the key belongs to.
func ParsePrivateKeyDER(der []byte) (*KeyPair, error) {
	if key, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		ecKey, ok := key.(*ecdsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("crypto: PKCS8 key is not an EC key")
		}
		return keyPairFromECDSA(ecKey)
	}

	ecKey, err := x509.ParseECPrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("crypto: parse EC private key: %w", err)
	}
	return keyPairFromECDSA(ecKey)
}

func keyPairFromECDSA(key *ecdsa.PrivateKey) (*KeyPair, error) {
	g, err := groupFromCurve(key.Curve)
	if err != nil {
		return nil, err
	}
	return &KeyPair{Group: g, Private: key}, nil
}

// ParsePublicKeySPKI parses a DER-encoded SubjectPublicKeyInfo, rejecting
// anything that isn't an EC public key on a supported SAE-PK curve.
func ParsePublicKeySPKI(der []byte) (*PublicKey, error) {
	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("crypto: parse SubjectPublicKeyInfo: %w", err)
	}
	ecKey, ok := key.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("crypto: SubjectPublicKeyInfo is not an EC key")
	}
	g, err := groupFromCurve(ecKey.Curve)
	if err != nil {
		return nil, err
	}
	return &PublicKey{Group: g, Point: ecKey}, nil
}

// SubjectPublicKeyInfo marshals kp's public half to DER, the form the AP
// key container and the protocol wire format both carry.
func (kp *KeyPair) SubjectPublicKeyInfo() ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(&kp.Private.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("crypto: marshal SubjectPublicKeyInfo: %w", err)
	}
	return der, nil
}

// PublicKey returns the public half of kp.
func (kp *KeyPair) PublicKey() *PublicKey {
	return &PublicKey{Group: kp.Group, Point: &kp.Private.PublicKey}
}

// GenerateKeyPair generates a fresh key pair on g's curve, for tests and
// for the AP key container provisioning tool.
func GenerateKeyPair(g Group) (*KeyPair, error) {
	curve, err := g.Curve()
	if err != nil {
		return nil, err
	}
	priv, err := ecdsa.GenerateKey(curve, rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("crypto: generate key pair: %w", err)
	}
	return &KeyPair{Group: g, Private: priv}, nil
}

// PointToBin encodes pub's affine coordinates as fixed-width big-endian
// octet strings, each zero-padded to the group's prime length. This is the
// wire representation used for commit elements within the signed transcript.
func PointToBin(pub *PublicKey) (x, y []byte, err error) {
	primeLen, err := pub.Group.PrimeLen()
	if err != nil {
		return nil, nil, err
	}
	x, err = ScalarToBin(pub.Point.X, primeLen)
	if err != nil {
		return nil, nil, err
	}
	y, err = ScalarToBin(pub.Point.Y, primeLen)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

// ScalarToBin encodes s as a big-endian octet string of exactly primeLen
// bytes, failing if s does not fit (a scalar wider than the group's prime
// can never be a valid coordinate or signature component for that group).
func ScalarToBin(s *big.Int, primeLen int) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("crypto: nil scalar")
	}
	raw := s.Bytes()
	if len(raw) > primeLen {
		return nil, fmt.Errorf("crypto: scalar does not fit in %d bytes", primeLen)
	}
	out := make([]byte, primeLen)
	copy(out[primeLen-len(raw):], raw)
	return out, nil
}

// Sign produces an ASN.1 DER ECDSA signature over hash with priv.
func Sign(priv *KeyPair, hash []byte) ([]byte, error) {
	sig, err := ecdsa.SignASN1(rand.Reader, priv.Private, hash)
	if err != nil {
		return nil, fmt.Errorf("crypto: sign: %w", err)
	}
	return sig, nil
}

// Verify checks an ASN.1 DER ECDSA signature over hash against pub. It
// returns false (never an error) for a structurally invalid signature, so
// callers can treat "malformed" and "wrong" identically.
func Verify(pub *PublicKey, hash, sig []byte) bool {
	return ecdsa.VerifyASN1(pub.Point, hash, sig)
}

// ValidatePublicKey reports whether pub's point lies on its claimed curve.
// x509.ParsePKIXPublicKey already rejects off-curve points for the NIST
// curves, so this exists mainly for points assembled by hand, e.g. in tests.
func ValidatePublicKey(pub *PublicKey) error {
	curve, err := pub.Group.Curve()
	if err != nil {
		return err
	}
	if pub.Point.X == nil || pub.Point.Y == nil {
		return errors.New("crypto: public key point is nil")
	}
	if !curve.IsOnCurve(pub.Point.X, pub.Point.Y) {
		return errors.New("crypto: public key point is not on curve")
	}
	return nil
}
