package token

import (
	"encoding/hex"
	"math/big"
	"strings"
)

const wordSize = 32

// decodeString decodes a single ABI-encoded string return value:
// a 32-byte offset word, a 32-byte length word at that offset, then the
// payload bytes. Short-form fixed returns (payload directly in one word)
// are handled as a fallback since some contracts encode name/symbol as
// bytes32.
func decodeString(result string) string {
	data, err := hex.DecodeString(result)
	if err != nil || len(data) < wordSize {
		return ""
	}

	if len(data) >= 2*wordSize {
		offset := new(big.Int).SetBytes(data[:wordSize])
		if offset.IsInt64() {
			// Bounds are checked without adding to untrusted words so a
			// huge offset or length cannot wrap around int64.
			start := offset.Int64()
			if start >= 0 && start <= int64(len(data))-wordSize {
				length := new(big.Int).SetBytes(data[start : start+wordSize])
				if length.IsInt64() {
					n := length.Int64()
					if n >= 0 && n <= int64(len(data))-start-wordSize {
						return string(data[start+wordSize : start+wordSize+n])
					}
				}
			}
		}
	}

	// bytes32 fallback: strip zero padding.
	return strings.TrimRight(string(data[:wordSize]), "\x00")
}

// decodeUint decodes a single ABI-encoded unsigned integer return value.
// Returns -1 when the payload is not decodable.
func decodeUint(result string) int {
	data, err := hex.DecodeString(result)
	if err != nil || len(data) == 0 || len(data) > wordSize {
		return -1
	}

	value := new(big.Int).SetBytes(data)
	if !value.IsInt64() {
		return -1
	}

	return int(value.Int64())
}
