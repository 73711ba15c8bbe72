package saepk

import "github.com/hostapd-go/sae-pk/pkg/ie"

// Wire-format constants for the SAE-PK confirm element, bit-exact with the
// 802.11 element assignments this protocol builds on.
const (
	// SAEPKMLen is the fixed octet length of the Modifier M.
	SAEPKMLen = 16

	// AESBlockSize is the AES block size, also the AES-SIV authentication
	// tag length; EncryptedModifier is always SAEPKMLen+AESBlockSize bytes.
	AESBlockSize = 16

	// SAEPKVendorType is the Wi-Fi Alliance vendor-specific element type
	// identifying an SAE-PK confirm element (OUI 50:6F:9A, type 0x1A).
	SAEPKVendorType uint32 = 0x506f9a1a

	// EIDVendorSpecific and EIDExtension are the 802.11 element IDs used to
	// wrap, respectively, the outer vendor element and the two inner
	// extended sub-elements.
	EIDVendorSpecific = ie.EIDVendorSpecific
	EIDExtension      = ie.EIDExtension

	// EIDExtFILSPublicKey and EIDExtFILSKeyConfirm are the extended-element
	// identifiers for the two sub-elements nested inside the confirm
	// element's inner container.
	EIDExtFILSPublicKey  = 12
	EIDExtFILSKeyConfirm = 3

	// ecdsaKeyType is the FILS Public Key sub-element's key-type octet
	// identifying an ECDSA public key (the only type SAE-PK uses).
	ecdsaKeyType = 0x03
)

// encryptedModifierLen is the fixed length of EncryptedModifier on the
// wire: the 16-octet Modifier plus the 16-octet AES-SIV synthetic IV.
const encryptedModifierLen = SAEPKMLen + AESBlockSize
