package saepk_test

import (
	"crypto/rand"
	"errors"
	"testing"

	"github.com/hostapd-go/sae-pk/internal/saesim"
	"github.com/hostapd-go/sae-pk/pkg/crypto"
	"github.com/hostapd-go/sae-pk/pkg/saepk"
)

// fingerprintSession overrides Fixture's PW/Lambda so the test can supply a
// password crafted to match a specific M/K_AP pair, mirroring how a real
// AP key provisioning tool searches for an M whose fingerprint matches an
// operator-chosen password rather than the other way around.
type fingerprintSession struct {
	*saesim.Fixture
	pw     []byte
	lambda int
}

func (f *fingerprintSession) PW() []byte  { return f.pw }
func (f *fingerprintSession) Lambda() int { return f.lambda }

// findMatchingFixture searches random Modifiers until it finds one whose
// fingerprint hash starts with two zero octets (the minimum Sec=2
// requirement), then derives a one-octet password whose Sec=2 encoding
// matches that hash's fingerprint bits exactly. This is the same
// brute-force construction real SAE-PK provisioning performs to find an M
// that "looks like" a chosen password; the search terminates in roughly
// 2^16 attempts on average. kapSPKI is the raw SubjectPublicKeyInfo DER
// bytes, the exact byte string the real fingerprint hashes — not a
// re-encoded affine point.
func findMatchingFixture(t *testing.T, group crypto.Group, ssid, kapSPKI []byte) (m [saepk.SAEPKMLen]byte, pw []byte, lambda int) {
	t.Helper()
	hashInput := append(append(append([]byte{}, ssid...), m[:]...), kapSPKI...)
	ssidLen := len(ssid)

	const maxAttempts = 2_000_000
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if _, err := rand.Read(m[:]); err != nil {
			t.Fatalf("rand.Read: %v", err)
		}
		copy(hashInput[ssidLen:], m[:])

		hash, err := crypto.Sum(group, hashInput)
		if err != nil {
			t.Fatalf("Sum: %v", err)
		}
		if hash[0] != 0 || hash[1] != 0 {
			continue
		}

		// Sec=2, Lambda=1, fingerprint_bits = 8*2+5*1-2 = 19, so only
		// the top 3 bits of hash[2] matter beyond the two zero octets.
		pw0 := (hash[2] & 0xE0) >> 2
		return m, []byte{pw0}, 1
	}
	t.Fatalf("did not find a matching Modifier within %d attempts", maxAttempts)
	return m, nil, 0
}

func buildMatchingFixture(t *testing.T, group crypto.Group) (sta *fingerprintSession, container *saepk.APKeyContainer, elem []byte) {
	t.Helper()
	ap, err := saesim.NewSession(group)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	kp, err := crypto.GenerateKeyPair(group)
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	pub, err := kp.SubjectPublicKeyInfo()
	if err != nil {
		t.Fatalf("SubjectPublicKeyInfo: %v", err)
	}

	m, pw, lambda := findMatchingFixture(t, group, ap.SSID(), pub)
	container = &saepk.APKeyContainer{M: m, SigningKey: kp, Group: group, PubKey: pub}

	apSession := &fingerprintSession{Fixture: ap, pw: pw, lambda: lambda}
	b := saepk.NewBuilder(saepk.BuilderConfig{})
	elem, err = b.Build(apSession, container, make([]byte, 0, 512))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	sta = &fingerprintSession{Fixture: ap.Mirror(), pw: pw, lambda: lambda}
	return sta, container, elem
}

func TestBuildParseRoundTrip(t *testing.T) {
	for _, group := range []crypto.Group{crypto.Group19, crypto.Group20, crypto.Group21} {
		sta, container, elem := buildMatchingFixture(t, group)

		p := saepk.NewParser(saepk.ParserConfig{})
		m, kap, err := p.Parse(sta, elem)
		if err != nil {
			t.Fatalf("group %d: Parse: %v", group, err)
		}
		if m != container.M {
			t.Errorf("group %d: recovered Modifier does not match", group)
		}
		if kap.Group != group {
			t.Errorf("group %d: recovered K_AP group = %d", group, kap.Group)
		}
	}
}

func TestParseRejectsTamperedEncryptedModifier(t *testing.T) {
	sta, _, elem := buildMatchingFixture(t, crypto.Group19)
	tampered := append([]byte(nil), elem...)
	tampered[7] ^= 0xFF // inside enc_m (byte 0: EID, 1: len, 2-5: vendor type, 6: enc_len)

	p := saepk.NewParser(saepk.ParserConfig{})
	if _, _, err := p.Parse(sta, tampered); !errors.Is(err, saepk.ErrAuthFail) {
		t.Fatalf("Parse error = %v, want ErrAuthFail", err)
	}
}

func TestParseRejectsTamperedKeyAuth(t *testing.T) {
	sta, _, elem := buildMatchingFixture(t, crypto.Group19)
	tampered := append([]byte(nil), elem...)
	tampered[len(tampered)-1] ^= 0xFF // last byte of sig

	p := saepk.NewParser(saepk.ParserConfig{})
	if _, _, err := p.Parse(sta, tampered); !errors.Is(err, saepk.ErrSignatureInvalid) {
		t.Fatalf("Parse error = %v, want ErrSignatureInvalid", err)
	}
}

func TestParseRejectsWrongPassword(t *testing.T) {
	sta, _, elem := buildMatchingFixture(t, crypto.Group19)
	sta.pw = []byte{sta.pw[0] ^ 0x20} // flip a bit that survives trimming

	p := saepk.NewParser(saepk.ParserConfig{})
	if _, _, err := p.Parse(sta, elem); !errors.Is(err, saepk.ErrFingerprintMismatch) {
		t.Fatalf("Parse error = %v, want ErrFingerprintMismatch", err)
	}
}

// TestFingerprintTrimmingIgnoresHashSubByteBits exercises the concrete
// property that bits below fingerprint_bits in the final compared hash
// octet never affect the outcome. Every successful match already relies on
// this (the Modifier search only constrains the hash's top three bits of
// that octet), so this asserts it holds for an independently-found match
// too, rather than by coincidence of a single fixture.
func TestFingerprintTrimmingIgnoresHashSubByteBits(t *testing.T) {
	for i := 0; i < 3; i++ {
		sta, _, elem := buildMatchingFixture(t, crypto.Group19)
		p := saepk.NewParser(saepk.ParserConfig{})
		if _, _, err := p.Parse(sta, elem); err != nil {
			t.Fatalf("attempt %d: Parse error = %v", i, err)
		}
	}
}

func TestParseRejectsMissingVendorElement(t *testing.T) {
	sta, err := saesim.NewSession(crypto.Group19)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := sta.SetPassword("abcd-efgh-ijkl"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}

	p := saepk.NewParser(saepk.ParserConfig{})
	if _, _, err := p.Parse(sta, []byte{0x01, 0x02, 0x00}); !errors.Is(err, saepk.ErrWireMalformed) {
		t.Fatalf("Parse error = %v, want ErrWireMalformed", err)
	}
}
