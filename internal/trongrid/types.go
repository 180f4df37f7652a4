package trongrid

// Account is the raw indexer account snapshot.
type Account struct {
	Address             string              `json:"address"`
	Balance             int64               `json:"balance"`
	NetUsage            int64               `json:"net_usage"`
	FrozenV2            []FrozenEntry       `json:"frozenV2"`
	AssetV2             []AssetEntry        `json:"assetV2"`
	TRC20               []map[string]string `json:"trc20"`
	CreateTime          int64               `json:"create_time"`
	LatestOperationTime int64               `json:"latest_opration_time"` // field name typo is upstream's
}

// FrozenEntry is one resource-lock record; entries may omit the amount.
type FrozenEntry struct {
	Type   string `json:"type,omitempty"`
	Amount int64  `json:"amount,omitempty"`
}

// AssetEntry is one native-token balance record.
type AssetEntry struct {
	Key   string `json:"key"`
	Value int64  `json:"value"`
}

// ContractTransfer is one smart-contract token transfer event.
type ContractTransfer struct {
	TransactionID  string    `json:"transaction_id"`
	Type           string    `json:"type"`
	From           string    `json:"from"`
	To             string    `json:"to"`
	Value          string    `json:"value"`
	BlockTimestamp int64     `json:"block_timestamp"`
	TokenInfo      TokenInfo `json:"token_info"`
}

type TokenInfo struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Decimals int    `json:"decimals"`
}

// listEnvelope wraps every indexer v1 listing response.
type listEnvelope[T any] struct {
	Data    []T  `json:"data"`
	Success bool `json:"success"`
}
