// Package saesim provides a test-only fixture implementing
// saepk.SAESessionView, standing in for the SAE commit/confirm state
// machine that owns this state in a real implementation.
package saesim

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/hostapd-go/sae-pk/pkg/base32pw"
	"github.com/hostapd-go/sae-pk/pkg/crypto"
)

// Fixture is a randomly generated SAE session snapshot for one group.
type Fixture struct {
	group                crypto.Group
	ownElem, peerElem    *crypto.PublicKey
	ownScalar, peerScalar *big.Int
	ownAddr, peerAddr    [6]byte
	kek                  []byte
	ssid                 []byte
	pw                   []byte
	lambda               int
}

// NewSession generates a Fixture for group: two ephemeral EC key pairs
// standing in for the commit elements, two scalars reduced mod the curve
// order standing in for the commit scalars, two random MAC addresses, a
// random SSID and a kek of the correct AES-SIV width for group.
func NewSession(group crypto.Group) (*Fixture, error) {
	curve, err := group.Curve()
	if err != nil {
		return nil, err
	}
	hashLen, err := group.HashLen()
	if err != nil {
		return nil, err
	}

	ownKP, err := crypto.GenerateKeyPair(group)
	if err != nil {
		return nil, fmt.Errorf("saesim: %w", err)
	}
	peerKP, err := crypto.GenerateKeyPair(group)
	if err != nil {
		return nil, fmt.Errorf("saesim: %w", err)
	}

	ownScalar, err := rand.Int(rand.Reader, curve.Params().N)
	if err != nil {
		return nil, fmt.Errorf("saesim: %w", err)
	}
	peerScalar, err := rand.Int(rand.Reader, curve.Params().N)
	if err != nil {
		return nil, fmt.Errorf("saesim: %w", err)
	}

	f := &Fixture{
		group:      group,
		ownElem:    ownKP.PublicKey(),
		peerElem:   peerKP.PublicKey(),
		ownScalar:  ownScalar,
		peerScalar: peerScalar,
		kek:        make([]byte, hashLen),
		ssid:       make([]byte, 8),
	}
	if _, err := rand.Read(f.ownAddr[:]); err != nil {
		return nil, fmt.Errorf("saesim: %w", err)
	}
	if _, err := rand.Read(f.peerAddr[:]); err != nil {
		return nil, fmt.Errorf("saesim: %w", err)
	}
	if _, err := rand.Read(f.kek); err != nil {
		return nil, fmt.Errorf("saesim: %w", err)
	}
	if _, err := rand.Read(f.ssid); err != nil {
		return nil, fmt.Errorf("saesim: %w", err)
	}
	return f, nil
}

// SetPassword decodes encoded (a dash-separated base-32 SAE-PK password)
// and records both its decoded bytes and its dash-excluded character
// count, so the fixture can serve both PW and Lambda consistently.
func (f *Fixture) SetPassword(encoded string) error {
	decoded, err := base32pw.Decode(encoded)
	if err != nil {
		return err
	}
	f.pw = decoded
	f.lambda = base32pw.Lambda(encoded)
	return nil
}

func (f *Fixture) OwnCommitElement() *crypto.PublicKey  { return f.ownElem }
func (f *Fixture) PeerCommitElement() *crypto.PublicKey { return f.peerElem }
func (f *Fixture) OwnCommitScalar() *big.Int            { return f.ownScalar }
func (f *Fixture) PeerCommitScalar() *big.Int           { return f.peerScalar }
func (f *Fixture) OwnAddr() [6]byte                     { return f.ownAddr }
func (f *Fixture) PeerAddr() [6]byte                    { return f.peerAddr }
func (f *Fixture) KEK() []byte                          { return f.kek }
func (f *Fixture) Group() crypto.Group                  { return f.group }
func (f *Fixture) SSID() []byte                         { return f.ssid }
func (f *Fixture) PW() []byte                           { return f.pw }
func (f *Fixture) Lambda() int                          { return f.lambda }

// Mirror returns a Fixture with own/peer roles swapped, sharing the same
// keys, scalars, addresses, kek, SSID and password — the STA-side view of
// the same session an AP-side Fixture represents.
func (f *Fixture) Mirror() *Fixture {
	return &Fixture{
		group:      f.group,
		ownElem:    f.peerElem,
		peerElem:   f.ownElem,
		ownScalar:  f.peerScalar,
		peerScalar: f.ownScalar,
		ownAddr:    f.peerAddr,
		peerAddr:   f.ownAddr,
		kek:        f.kek,
		ssid:       f.ssid,
		pw:         f.pw,
		lambda:     f.lambda,
	}
}
