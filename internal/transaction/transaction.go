// Package transaction builds, signs, broadcasts and normalizes
// transactions: transfers across native coin, native tokens and
// smart-contract tokens, plus resource stake and unstake.
package transaction

// ContractType is the closed set of operations the builder dispatches on.
type ContractType string

const (
	ContractTransfer ContractType = "transfer"
	ContractFreeze   ContractType = "freeze"
	ContractUnfreeze ContractType = "unfreeze"
)

// ResourceType is the closed set of stakeable resources.
type ResourceType string

const (
	ResourceBandwidth ResourceType = "BANDWIDTH"
	ResourceEnergy    ResourceType = "ENERGY"
)

// AddressPair carries both display forms of an address.
type AddressPair struct {
	Base58 string `json:"base58"`
	Hex    string `json:"hex"`
}

// Addresses holds the transaction parties. Recipient is present only when
// an upstream recipient address was resolvable.
type Addresses struct {
	Origin    AddressPair  `json:"origin"`
	Recipient *AddressPair `json:"recipient,omitempty"`
}

// Pair is an amount in raw base units alongside its human-decimal form.
type Pair struct {
	Raw string `json:"raw"`
	Fmt string `json:"fmt"`
}

// Block references the chain position a transaction was anchored to.
// Number is known only when the transaction-info lookup succeeded.
type Block struct {
	Number int64  `json:"number,omitempty"`
	Bytes  string `json:"bytes"`
	Hash   string `json:"hash"`
}

// Resource reports the consumable-capacity side of a transaction.
type Resource struct {
	Type           string `json:"type,omitempty"`
	BandwidthUsage int64  `json:"bandwidthUsage,omitempty"`
	EnergyUsage    int64  `json:"energyUsage,omitempty"`
	EnergyPenalty  int64  `json:"energyPenalty,omitempty"`
	GasLimit       *Pair  `json:"gasLimit,omitempty"`
}

// Transaction is the canonical transaction view, constructed once per
// upstream record and immutable afterwards.
type Transaction struct {
	TxID          string    `json:"txID"`
	Type          string    `json:"type"`
	AssetID       string    `json:"assetID"`
	IsBroadcasted bool      `json:"isBroadcasted"`
	Address       Addresses `json:"address"`
	Amount        Pair      `json:"amount"`
	Block         Block     `json:"block"`
	Resource      *Resource `json:"resource,omitempty"`
	Signature     []string  `json:"signature"`
	CreatedAt     int64     `json:"createdAt"`
	ExpiresAt     int64     `json:"expiresAt"`
}

// TokenParams identifies the asset of a token transfer: a native-token id
// or a token contract address, with its decimal count and an optional fee
// ceiling in native units.
type TokenParams struct {
	ID       string
	Decimals int
	GasLimit string
}

// Intent is a transfer or stake request before building.
type Intent struct {
	ContractType     ContractType
	ResourceType     string
	OriginAddress    string
	RecipientAddress string
	Amount           string
	Token            *TokenParams
}
