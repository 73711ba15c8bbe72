package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
	"fmt"

	"github.com/aead/cmac"
)

// sivBlockSize is the AES block size in bytes, also the S2V/CTR block size.
const sivBlockSize = 16

// Encrypt implements AES-SIV (RFC 5297) deterministic authenticated
// encryption. key must be 32, 48, or 64 bytes (split evenly between the
// S2V/CMAC half and the AES-CTR half); aad is authenticated but not
// encrypted, and nil means no associated data at all rather than an empty
// AD string (the two are cryptographically distinct under S2V). The
// returned ciphertext is always sivBlockSize bytes longer than plaintext:
// the synthetic IV prefix followed by the CTR-encrypted plaintext.
func Encrypt(key, plaintext, aad []byte) ([]byte, error) {
	k1, k2, err := splitSIVKey(key)
	if err != nil {
		return nil, err
	}

	v, err := s2v(k1, aad, plaintext)
	if err != nil {
		return nil, err
	}

	ciphertext, err := sivCTR(k2, v, plaintext)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(v)+len(ciphertext))
	out = append(out, v...)
	out = append(out, ciphertext...)
	return out, nil
}

// Decrypt reverses Encrypt and additionally recomputes S2V over the
// recovered plaintext and aad, rejecting the result if the synthesized IV
// does not match the one carried in ciphertext. This is what makes AES-SIV
// an AEAD: any bit flip in either the IV or the ciphertext body is caught
// here rather than silently producing garbage plaintext.
func Decrypt(key, ciphertext, aad []byte) ([]byte, error) {
	k1, k2, err := splitSIVKey(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < sivBlockSize {
		return nil, fmt.Errorf("crypto: SIV ciphertext shorter than block size")
	}

	v := ciphertext[:sivBlockSize]
	body := ciphertext[sivBlockSize:]

	plaintext, err := sivCTR(k2, v, body)
	if err != nil {
		return nil, err
	}

	want, err := s2v(k1, aad, plaintext)
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare(v, want) != 1 {
		return nil, fmt.Errorf("crypto: SIV authentication failed")
	}
	return plaintext, nil
}

func splitSIVKey(key []byte) (k1, k2 []byte, err error) {
	switch len(key) {
	case 32, 48, 64:
	default:
		return nil, nil, fmt.Errorf("crypto: SIV key must be 32, 48, or 64 bytes, got %d", len(key))
	}
	half := len(key) / 2
	return key[:half], key[half:], nil
}

// s2v implements the S2V construction of RFC 5297 Section 2.4, specialized
// to at most one associated-data string followed by the plaintext string,
// the shape SAE-PK's EncryptedModifier needs. A nil ad means zero AD
// elements (RFC 5297's S2V with n=1, what hostap calls with "0, NULL,
// NULL"); a non-nil ad, even an empty one, is one AD element and folds in
// an extra CMAC/dbl round — these are cryptographically distinct inputs.
func s2v(k1, ad, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(k1)
	if err != nil {
		return nil, fmt.Errorf("crypto: SIV cipher: %w", err)
	}

	d, err := cmacSum(block, make([]byte, sivBlockSize))
	if err != nil {
		return nil, err
	}

	if ad != nil {
		adMAC, err := cmacSum(block, ad)
		if err != nil {
			return nil, err
		}
		d = xorBlocks(dbl(d), adMAC)
	}

	var t []byte
	if len(plaintext) >= sivBlockSize {
		t = xorend(plaintext, d)
	} else {
		d = dbl(d)
		t = xorBlocks(d, pad(plaintext))
	}

	return cmacSum(block, t)
}

func cmacSum(block cipher.Block, data []byte) ([]byte, error) {
	sum, err := cmac.Sum(data, block, sivBlockSize)
	if err != nil {
		return nil, fmt.Errorf("crypto: CMAC: %w", err)
	}
	return sum, nil
}

// dbl multiplies a 128-bit block by x in GF(2^128), per RFC 5297 Section
// 2.3, used to combine successive S2V inputs.
func dbl(b []byte) []byte {
	out := make([]byte, sivBlockSize)
	var carry byte
	for i := sivBlockSize - 1; i >= 0; i-- {
		v := b[i]
		out[i] = (v << 1) | carry
		carry = v >> 7
	}
	if carry != 0 {
		out[sivBlockSize-1] ^= 0x87
	}
	return out
}

func xorBlocks(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// xorend xors b into the final len(b) bytes of a, leaving the prefix
// untouched.
func xorend(a, b []byte) []byte {
	out := make([]byte, len(a))
	copy(out, a)
	offset := len(a) - len(b)
	for i, v := range b {
		out[offset+i] ^= v
	}
	return out
}

// pad applies RFC 5297's 10* padding to bring a short final string up to a
// full block.
func pad(b []byte) []byte {
	out := make([]byte, sivBlockSize)
	copy(out, b)
	out[len(b)] = 0x80
	return out
}

// sivCTR runs AES-CTR keyed by k2, with the counter initialized from v with
// the top bit of each of its last two 32-bit words cleared (bytes 8 and 12)
// as RFC 5297 Section 2.5 requires.
func sivCTR(k2, v, in []byte) ([]byte, error) {
	block, err := aes.NewCipher(k2)
	if err != nil {
		return nil, fmt.Errorf("crypto: SIV cipher: %w", err)
	}

	iv := make([]byte, sivBlockSize)
	copy(iv, v)
	iv[8] &= 0x7f
	iv[12] &= 0x7f

	out := make([]byte, len(in))
	stream := cipher.NewCTR(block, iv)
	stream.XORKeyStream(out, in)
	return out, nil
}
