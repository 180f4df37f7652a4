// Package token probes contract addresses for fungible-token metadata.
package token

import "encoding/json"

type Address struct {
	Contract string `json:"contract"`
	Creator  string `json:"creator,omitempty"`
}

// Token is the canonical token view. When Valid is false only
// Address.Contract is populated: a probe miss is a terminal state, not an
// error.
type Token struct {
	Valid    bool            `json:"valid"`
	Name     string          `json:"name,omitempty"`
	Symbol   string          `json:"symbol,omitempty"`
	Address  Address         `json:"address"`
	Decimals int             `json:"decimals,omitempty"`
	ByteCode string          `json:"byteCode,omitempty"`
	ABI      json.RawMessage `json:"abi,omitempty"`
}
