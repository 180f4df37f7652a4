package tron

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// Sign signs an unsigned transaction with a hex private key and returns a
// copy carrying the signature. The message is SHA-256 of the raw_data
// bytes, which is also the transaction id; the signature goes on the wire
// as r||s||v hex.
func Sign(tx *Transaction, privateKeyHex string) (*Transaction, error) {
	if tx == nil || tx.RawDataHex == "" {
		return nil, fmt.Errorf("tron: nothing to sign")
	}

	keyBytes, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("tron: failed to decode private key: %w", err)
	}
	if len(keyBytes) != 32 {
		return nil, fmt.Errorf("tron: private key must be 32 bytes, got %d", len(keyBytes))
	}

	rawData, err := hex.DecodeString(tx.RawDataHex)
	if err != nil {
		return nil, fmt.Errorf("tron: failed to decode raw_data_hex: %w", err)
	}

	hash := sha256.Sum256(rawData)

	priv, _ := btcec.PrivKeyFromBytes(keyBytes)
	compact := ecdsa.SignCompact(priv, hash[:], false)

	// SignCompact yields [v+27, r, s]; the wire format is r||s||v.
	signature := make([]byte, 0, len(compact))
	signature = append(signature, compact[1:]...)
	signature = append(signature, compact[0]-27)

	signed := *tx
	signed.Signature = append(append([]string{}, tx.Signature...), hex.EncodeToString(signature))
	if signed.TxID == "" {
		signed.TxID = hex.EncodeToString(hash[:])
	}

	return &signed, nil
}
