package tron

import "encoding/json"

// Transaction is a raw transaction record as exchanged with the fullnode,
// both unsigned (builder output) and signed.
type Transaction struct {
	Visible    bool     `json:"visible,omitempty"`
	TxID       string   `json:"txID"`
	RawData    RawData  `json:"raw_data"`
	RawDataHex string   `json:"raw_data_hex"`
	Signature  []string `json:"signature,omitempty"`
	Ret        []Ret    `json:"ret,omitempty"`
}

// RawData is the pre-signature payload of a transaction.
type RawData struct {
	Contract      []Contract `json:"contract"`
	RefBlockBytes string     `json:"ref_block_bytes"`
	RefBlockHash  string     `json:"ref_block_hash"`
	Expiration    int64      `json:"expiration"`
	Timestamp     int64      `json:"timestamp"`
	FeeLimit      int64      `json:"fee_limit,omitempty"`
	Data          string     `json:"data,omitempty"`
}

// Contract tags the operation a transaction carries.
type Contract struct {
	Parameter Parameter `json:"parameter"`
	Type      string    `json:"type"`
}

type Parameter struct {
	Value   ContractValue `json:"value"`
	TypeURL string        `json:"type_url"`
}

// ContractValue holds the union of per-contract-type fields. Which fields
// are present depends on Contract.Type; the normalizer resolves the
// ambiguity with a fixed precedence order.
type ContractValue struct {
	Amount          int64  `json:"amount,omitempty"`
	OwnerAddress    string `json:"owner_address,omitempty"`
	ToAddress       string `json:"to_address,omitempty"`
	AssetName       string `json:"asset_name,omitempty"`
	ContractAddress string `json:"contract_address,omitempty"`
	Data            string `json:"data,omitempty"`
	CallValue       int64  `json:"call_value,omitempty"`
	FrozenBalance   int64  `json:"frozen_balance,omitempty"`
	UnfreezeBalance int64  `json:"unfreeze_balance,omitempty"`
	Resource        string `json:"resource,omitempty"`
}

type Ret struct {
	ContractRet string `json:"contractRet,omitempty"`
}

// TransactionInfo is the post-execution record for a mined transaction.
type TransactionInfo struct {
	ID          string  `json:"id"`
	BlockNumber int64   `json:"blockNumber,omitempty"`
	Fee         int64   `json:"fee,omitempty"`
	Receipt     Receipt `json:"receipt"`
}

type Receipt struct {
	Result             string `json:"result,omitempty"`
	NetUsage           int64  `json:"net_usage,omitempty"`
	EnergyUsage        int64  `json:"energy_usage,omitempty"`
	EnergyPenaltyTotal int64  `json:"energy_penalty_total,omitempty"`
}

// ContractMeta is the deployed-contract record returned by wallet/getcontract.
type ContractMeta struct {
	ContractAddress string          `json:"contract_address,omitempty"`
	OriginAddress   string          `json:"origin_address,omitempty"`
	Name            string          `json:"name,omitempty"`
	Bytecode        string          `json:"bytecode,omitempty"`
	ABI             json.RawMessage `json:"abi,omitempty"`
}

// AccountResource is the node-reported bandwidth/energy usage for an account.
// The mixed field casing mirrors the upstream payload.
type AccountResource struct {
	FreeNetUsed  int64 `json:"freeNetUsed,omitempty"`
	FreeNetLimit int64 `json:"freeNetLimit,omitempty"`
	NetUsed      int64 `json:"NetUsed,omitempty"`
	NetLimit     int64 `json:"NetLimit,omitempty"`
	EnergyUsed   int64 `json:"EnergyUsed,omitempty"`
	EnergyLimit  int64 `json:"EnergyLimit,omitempty"`
}

// BroadcastResult is the fullnode's answer to wallet/broadcasttransaction.
type BroadcastResult struct {
	Result  bool   `json:"result,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	TxID    string `json:"txid,omitempty"`
}

// triggerResult wraps responses of wallet/triggersmartcontract and
// wallet/triggerconstantcontract.
type triggerResult struct {
	Result struct {
		Result  bool   `json:"result,omitempty"`
		Code    string `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"result"`
	Transaction    *Transaction `json:"transaction,omitempty"`
	ConstantResult []string     `json:"constant_result,omitempty"`
	EnergyUsed     int64        `json:"energy_used,omitempty"`
}
