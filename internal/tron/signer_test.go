package tron

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const signerTestKey = "b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"

func unsignedTransaction() *Transaction {
	return &Transaction{
		Visible:    true,
		RawDataHex: "0a02a1b2220845e4f6d1c3b5a797408092b8c398feffffff01",
	}
}

func TestSign(t *testing.T) {
	unsigned := unsignedTransaction()

	signed, err := Sign(unsigned, signerTestKey)
	require.NoError(t, err)
	require.NotNil(t, signed)

	require.Len(t, signed.Signature, 1)
	sig, err := hex.DecodeString(signed.Signature[0])
	require.NoError(t, err)
	require.Len(t, sig, 65)
	assert.True(t, sig[64] == 0 || sig[64] == 1, "recovery id must be normalized")

	rawData, err := hex.DecodeString(unsigned.RawDataHex)
	require.NoError(t, err)
	hash := sha256.Sum256(rawData)
	assert.Equal(t, hex.EncodeToString(hash[:]), signed.TxID, "id is the raw_data digest")

	assert.Empty(t, unsigned.Signature, "input transaction stays untouched")
}

func TestSignDeterministic(t *testing.T) {
	first, err := Sign(unsignedTransaction(), signerTestKey)
	require.NoError(t, err)
	second, err := Sign(unsignedTransaction(), signerTestKey)
	require.NoError(t, err)

	assert.Equal(t, first.Signature, second.Signature)
}

func TestSignPreservesExistingTxID(t *testing.T) {
	unsigned := unsignedTransaction()
	unsigned.TxID = "precomputed"

	signed, err := Sign(unsigned, signerTestKey)
	require.NoError(t, err)
	assert.Equal(t, "precomputed", signed.TxID)
}

func TestSignRejectsBadInput(t *testing.T) {
	_, err := Sign(nil, signerTestKey)
	assert.Error(t, err)

	_, err = Sign(&Transaction{}, signerTestKey)
	assert.Error(t, err)

	_, err = Sign(unsignedTransaction(), "zz")
	assert.Error(t, err)

	_, err = Sign(unsignedTransaction(), "abcd")
	assert.Error(t, err, "short key")
}
