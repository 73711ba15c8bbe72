package saepk_test

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"

	"github.com/hostapd-go/sae-pk/internal/saesim"
	"github.com/hostapd-go/sae-pk/pkg/crypto"
	"github.com/hostapd-go/sae-pk/pkg/saepk"
)

func newContainer(t *testing.T, group crypto.Group) *saepk.APKeyContainer {
	t.Helper()
	kp, err := crypto.GenerateKeyPair(group)
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	var m [saepk.SAEPKMLen]byte
	if _, err := rand.Read(m[:]); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	pub, err := kp.SubjectPublicKeyInfo()
	if err != nil {
		t.Fatalf("SubjectPublicKeyInfo: %v", err)
	}
	return &saepk.APKeyContainer{M: m, SigningKey: kp, Group: group, PubKey: pub}
}

func TestBuildProducesVendorElement(t *testing.T) {
	sess, err := saesim.NewSession(crypto.Group19)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := sess.SetPassword("abcd-efgh-ijkl"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	container := newContainer(t, crypto.Group19)

	b := saepk.NewBuilder(saepk.BuilderConfig{})
	dst := make([]byte, 0, 256)
	elem, err := b.Build(sess, container, dst)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(elem) < 2 || elem[0] != saepk.EIDVendorSpecific {
		t.Fatalf("Build did not produce a vendor-specific element: %x", elem)
	}
	if int(elem[1]) != len(elem)-2 {
		t.Fatalf("declared length %d does not match payload length %d", elem[1], len(elem)-2)
	}
}

func TestBuildRejectsBadKEKLength(t *testing.T) {
	sess, err := saesim.NewSession(crypto.Group19)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	// Fixture always generates a valid kek, so wrap it to exercise the
	// 24-byte kek_len concrete scenario from spec.md directly.
	stub := &badKEKSession{Fixture: sess}
	container := newContainer(t, crypto.Group19)

	b := saepk.NewBuilder(saepk.BuilderConfig{})
	dst := make([]byte, 0, 256)
	if _, err := b.Build(stub, container, dst); !errors.Is(err, saepk.ErrKekUnavailable) {
		t.Fatalf("Build error = %v, want ErrKekUnavailable", err)
	}
}

// badKEKSession overrides KEK() to return an invalid-length value to
// exercise the kek length precondition.
type badKEKSession struct {
	*saesim.Fixture
}

func (b *badKEKSession) KEK() []byte { return make([]byte, 24) }

func TestBuildRejectsInsufficientRoom(t *testing.T) {
	sess, err := saesim.NewSession(crypto.Group19)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := sess.SetPassword("abcd-efgh-ijkl"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	container := newContainer(t, crypto.Group19)

	b := saepk.NewBuilder(saepk.BuilderConfig{})
	full, err := b.Build(sess, container, make([]byte, 0, 256))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// The DER-encoded ECDSA signature varies by a few octets between
	// builds, so leave a margin below the first element's length.
	dst := make([]byte, 0, len(full)-8)
	out, err := b.Build(sess, container, dst)
	if !errors.Is(err, saepk.ErrNoRoom) {
		t.Fatalf("Build error = %v, want ErrNoRoom", err)
	}
	if !bytes.Equal(out, dst) {
		t.Fatal("Build must not partially write dst on failure")
	}
}
