package saepk

import (
	"math/big"

	"github.com/hostapd-go/sae-pk/pkg/crypto"
)

// SAESessionView is the read-only view of SAE session state that the
// confirm-stage core consumes. The SAE commit/confirm state machine itself
// is out of scope here; it owns the concrete type and implements this
// interface so C2–C5 never need to know its shape.
type SAESessionView interface {
	OwnCommitElement() *crypto.PublicKey
	PeerCommitElement() *crypto.PublicKey
	OwnCommitScalar() *big.Int
	PeerCommitScalar() *big.Int
	OwnAddr() [6]byte
	PeerAddr() [6]byte
	KEK() []byte
	Group() crypto.Group
	SSID() []byte
	PW() []byte // decoded password bytes
	// Lambda is the base-32 character count (dashes excluded) the password
	// was decoded from. It cannot be recovered from PW alone: the final
	// base-32 block's padding makes the decoded byte count ambiguous.
	Lambda() int
}

// validKEK reports whether kek has one of the three lengths the AES-SIV
// collaborator accepts for groups 19, 20, 21.
func validKEK(kek []byte) bool {
	switch len(kek) {
	case 32, 48, 64:
		return true
	default:
		return false
	}
}
