package token

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larahfelipe/tronbridge/internal/tron"
)

const (
	tokenBase58 = "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t"
	tokenHex    = "41a614f803b6fd780986a42c78ec9c7f77e6ded13c"
)

// encodeStringResult builds the ABI return payload for a dynamic string:
// offset word, length word, zero-padded payload.
func encodeStringResult(s string) string {
	payload := hex.EncodeToString([]byte(s))
	padding := (2*wordSize - len(payload)%(2*wordSize)) % (2 * wordSize)
	for i := 0; i < padding; i++ {
		payload += "0"
	}
	return fmt.Sprintf("%064x", wordSize) + fmt.Sprintf("%064x", len(s)) + payload
}

func encodeUintResult(v int) string {
	return fmt.Sprintf("%064x", v)
}

type fakeNode struct {
	meta    *tron.ContractMeta
	results map[string][]string
}

func (f *fakeNode) GetContract(_ context.Context, address string) (*tron.ContractMeta, error) {
	return f.meta, nil
}

func (f *fakeNode) TriggerConstantContract(_ context.Context, owner, contract, selector string) ([]string, error) {
	return f.results[selector], nil
}

func newTestInspector(node *fakeNode) *Inspector {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewInspector(node, logger)
}

func tokenNode() *fakeNode {
	return &fakeNode{
		meta: &tron.ContractMeta{
			ContractAddress: tokenHex,
			OriginAddress:   tokenHex,
			Name:            "TetherToken",
			Bytecode:        "6080604052",
			ABI:             json.RawMessage(`{"entrys":[]}`),
		},
		results: map[string][]string{
			"name()":     {encodeStringResult("Tether USD")},
			"symbol()":   {encodeStringResult("USDT")},
			"decimals()": {encodeUintResult(6)},
		},
	}
}

func TestInspectValidToken(t *testing.T) {
	inspector := newTestInspector(tokenNode())

	tok, err := inspector.Inspect(context.Background(), tokenBase58, Options{})
	require.NoError(t, err)

	assert.True(t, tok.Valid)
	assert.Equal(t, "Tether USD", tok.Name)
	assert.Equal(t, "USDT", tok.Symbol)
	assert.Equal(t, 6, tok.Decimals)
	assert.Equal(t, tokenBase58, tok.Address.Contract)
	assert.Equal(t, tokenBase58, tok.Address.Creator)
	assert.Empty(t, tok.ByteCode, "bytecode is opt-in")
	assert.Nil(t, tok.ABI, "abi is opt-in")
}

func TestInspectOptionalPayloads(t *testing.T) {
	inspector := newTestInspector(tokenNode())

	tok, err := inspector.Inspect(context.Background(), tokenBase58, Options{
		IncludeByteCode: true,
		IncludeABI:      true,
	})
	require.NoError(t, err)

	assert.Equal(t, "6080604052", tok.ByteCode)
	assert.JSONEq(t, `{"entrys":[]}`, string(tok.ABI))
}

func TestInspectMissingContract(t *testing.T) {
	inspector := newTestInspector(&fakeNode{})

	tok, err := inspector.Inspect(context.Background(), tokenBase58, Options{})
	require.NoError(t, err)

	assert.False(t, tok.Valid)
	assert.Equal(t, tokenBase58, tok.Address.Contract)
	assert.Empty(t, tok.Name)
}

func TestInspectNonTokenContract(t *testing.T) {
	node := tokenNode()
	node.results = nil

	inspector := newTestInspector(node)

	tok, err := inspector.Inspect(context.Background(), tokenBase58, Options{})
	require.NoError(t, err)

	assert.False(t, tok.Valid, "a deployed contract without read methods is not a token")
}

func TestGetBatchPreservesOrder(t *testing.T) {
	inspector := newTestInspector(tokenNode())

	tokens, err := inspector.Get(context.Background(), []string{tokenBase58, tokenBase58}, Options{})
	require.NoError(t, err)
	require.Len(t, tokens, 2)

	assert.True(t, tokens[0].Valid)
	assert.True(t, tokens[1].Valid)
}

func TestDecodeString(t *testing.T) {
	assert.Equal(t, "Tether USD", decodeString(encodeStringResult("Tether USD")))

	// bytes32 short form.
	bytes32 := hex.EncodeToString([]byte("MKR")) + "0000000000000000000000000000000000000000000000000000000000"
	assert.Equal(t, "MKR", decodeString(bytes32))

	assert.Equal(t, "", decodeString(""))
	assert.Equal(t, "", decodeString("zz"))
}

func TestDecodeStringHostileWords(t *testing.T) {
	zeroWord := strings.Repeat("0", 64)
	// Offset and length words near MaxInt64 must not wrap the bounds
	// checks and slice out of range. Each payload falls through to the
	// bytes32 handling instead of panicking.
	maxInt64Word := strings.Repeat("0", 48) + "7fffffffffffffff"
	nearMaxWord := strings.Repeat("0", 48) + "7ffffffffffffff0"
	offsetToSecondWord := strings.Repeat("0", 62) + "20"

	assert.NotPanics(t, func() { decodeString(maxInt64Word + zeroWord) })
	assert.NotPanics(t, func() { decodeString(offsetToSecondWord + nearMaxWord) })
	assert.NotPanics(t, func() { decodeString(strings.Repeat("f", 64) + zeroWord) })

	// Length exceeding the remaining payload is rejected, not sliced.
	tooLong := offsetToSecondWord + strings.Repeat("0", 62) + "ff"
	assert.NotPanics(t, func() { decodeString(tooLong) })
}

func TestDecodeUint(t *testing.T) {
	assert.Equal(t, 6, decodeUint(encodeUintResult(6)))
	assert.Equal(t, 18, decodeUint(encodeUintResult(18)))
	assert.Equal(t, 0, decodeUint(encodeUintResult(0)))

	assert.Equal(t, -1, decodeUint(""))
	assert.Equal(t, -1, decodeUint("zz"))
}
