// Package account produces canonical account views by merging indexer
// snapshots with node-reported resource usage, and handles keypair
// creation and mnemonic recovery.
package account

import "github.com/larahfelipe/tronbridge/internal/tron"

// Address carries both display forms of an account address. Hex is empty
// for inactive accounts.
type Address struct {
	Base58 string `json:"base58"`
	Hex    string `json:"hex,omitempty"`
}

// Pair is an amount in raw base units alongside its human-decimal form.
type Pair struct {
	Raw string `json:"raw"`
	Fmt string `json:"fmt"`
}

type Balance struct {
	Available Pair `json:"available"`
	Frozen    Pair `json:"frozen"`
}

// Asset is one fungible holding: a native-token id or a token contract
// address, with its raw balance.
type Asset struct {
	ID      string `json:"id"`
	Balance string `json:"balance"`
}

type Usage struct {
	Used  string `json:"used"`
	Limit string `json:"limit"`
}

type Resource struct {
	Bandwidth Usage `json:"bandwidth"`
	Energy    Usage `json:"energy"`
}

// Account is the canonical per-request account view. When Active is false
// only Address.Base58 is populated: absence of an upstream record is a
// terminal state, not an error.
type Account struct {
	Active     bool      `json:"active"`
	Address    Address   `json:"address"`
	Balance    *Balance  `json:"balance,omitempty"`
	Assets     []Asset   `json:"assets,omitempty"`
	Resource   *Resource `json:"resource,omitempty"`
	CreatedAt  int64     `json:"createdAt,omitempty"`
	LastSeenAt int64     `json:"lastSeenAt,omitempty"`
}

// Generated is a freshly created or recovered account. Key material is
// returned exactly once and never stored.
type Generated struct {
	Mnemonic   *tron.Mnemonic `json:"mnemonic,omitempty"`
	PublicKey  string         `json:"publicKey"`
	PrivateKey string         `json:"privateKey"`
	Address    Address        `json:"address"`
}
