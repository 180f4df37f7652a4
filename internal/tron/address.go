package tron

import (
	"encoding/hex"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"golang.org/x/crypto/sha3"
)

// AddressPrefix is the version byte all TRON addresses carry.
const AddressPrefix = 0x41

const hexAddressLen = 42 // "41" + 20 payload bytes

// IsHexAddress reports whether s looks like a prefixed hex address.
func IsHexAddress(s string) bool {
	if len(s) != hexAddressLen || !strings.HasPrefix(strings.ToLower(s), "41") {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// ToBase58 converts a prefixed hex address to its base58check display form.
// Values already in base58 (or empty) pass through unchanged, so callers can
// feed it whichever form the upstream happened to return.
func ToBase58(address string) string {
	if !IsHexAddress(address) {
		return address
	}

	raw, err := hex.DecodeString(address)
	if err != nil {
		return address
	}

	return base58.CheckEncode(raw[1:], raw[0])
}

// ToHex converts a base58check address to its prefixed hex form. Values
// already in hex (or empty) pass through unchanged. Undecodable input
// yields "".
func ToHex(address string) string {
	if address == "" || IsHexAddress(address) {
		return strings.ToLower(address)
	}

	payload, version, err := base58.CheckDecode(address)
	if err != nil {
		return ""
	}

	return hex.EncodeToString(append([]byte{version}, payload...))
}

// AddressFromPublicKey derives the base58 and hex address forms from an
// uncompressed secp256k1 public key: the last 20 bytes of
// Keccak-256(pubkey without the 0x04 marker), behind the network prefix.
func AddressFromPublicKey(pub []byte) (base58Addr, hexAddr string) {
	h := sha3.NewLegacyKeccak256()
	h.Write(pub[1:])
	body := h.Sum(nil)[12:]

	hexAddr = hex.EncodeToString(append([]byte{AddressPrefix}, body...))
	base58Addr = base58.CheckEncode(body, AddressPrefix)

	return base58Addr, hexAddr
}
