package saepk

import (
	"fmt"
	"math/big"

	"github.com/hostapd-go/sae-pk/pkg/crypto"
)

// transcriptHash computes H_group(ele_AP ‖ ele_STA ‖ sca_AP ‖ sca_STA ‖ m ‖
// k_ap ‖ BSSID(AP) ‖ MAC(STA)), the KeyAuth signing/verification transcript.
// kapSPKI is the transmitted FILS Public Key sub-element payload — the raw
// SubjectPublicKeyInfo DER bytes — since that is the exact byte string both
// sides sign and verify, not a re-encoded affine point.
//
// ap selects which role the local session values occupy: when true, the
// session's own values take the AP positions and peer values take the STA
// positions; when false the roles swap. This lets the identical function
// serve both the AP (building the signature) and the STA (verifying it),
// since both sides must land on the same byte string.
func transcriptHash(sess SAESessionView, ap bool, m [SAEPKMLen]byte, kapSPKI []byte) ([]byte, error) {
	group := sess.Group()
	primeLen, err := group.PrimeLen()
	if err != nil {
		return nil, fmt.Errorf("saepk: %w: %v", ErrUnsupportedGroup, err)
	}

	var eleAP, eleSTA *crypto.PublicKey
	var scalarAP, scalarSTA = sess.OwnCommitScalar(), sess.PeerCommitScalar()
	var bssid, staMAC [6]byte

	if ap {
		eleAP, eleSTA = sess.OwnCommitElement(), sess.PeerCommitElement()
		scalarAP, scalarSTA = sess.OwnCommitScalar(), sess.PeerCommitScalar()
		bssid, staMAC = sess.OwnAddr(), sess.PeerAddr()
	} else {
		eleAP, eleSTA = sess.PeerCommitElement(), sess.OwnCommitElement()
		scalarAP, scalarSTA = sess.PeerCommitScalar(), sess.OwnCommitScalar()
		bssid, staMAC = sess.PeerAddr(), sess.OwnAddr()
	}

	buf := make([]byte, 0, 6*primeLen+SAEPKMLen+len(kapSPKI)+12)

	buf, err = appendPoint(buf, eleAP)
	if err != nil {
		return nil, err
	}
	buf, err = appendPoint(buf, eleSTA)
	if err != nil {
		return nil, err
	}
	buf, err = appendScalar(buf, scalarAP, primeLen)
	if err != nil {
		return nil, err
	}
	buf, err = appendScalar(buf, scalarSTA, primeLen)
	if err != nil {
		return nil, err
	}
	buf = append(buf, m[:]...)
	buf = append(buf, kapSPKI...)
	buf = append(buf, bssid[:]...)
	buf = append(buf, staMAC[:]...)

	hash, err := crypto.Sum(group, buf)
	if err != nil {
		return nil, fmt.Errorf("saepk: %w: %v", ErrInternal, err)
	}
	return hash, nil
}

func appendPoint(buf []byte, pub *crypto.PublicKey) ([]byte, error) {
	x, y, err := crypto.PointToBin(pub)
	if err != nil {
		return nil, fmt.Errorf("saepk: %w: %v", ErrInternal, err)
	}
	buf = append(buf, x...)
	buf = append(buf, y...)
	return buf, nil
}

func appendScalar(buf []byte, s *big.Int, primeLen int) ([]byte, error) {
	enc, err := crypto.ScalarToBin(s, primeLen)
	if err != nil {
		return nil, fmt.Errorf("saepk: %w: %v", ErrInternal, err)
	}
	return append(buf, enc...), nil
}
