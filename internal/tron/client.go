// Package tron talks to a TRON fullnode: it builds unsigned transactions,
// signs and broadcasts them, and resolves accounts, contracts and keys.
package tron

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/larahfelipe/tronbridge/internal/metrics"
)

// Client is a long-lived handle over the fullnode HTTP API. It holds no
// per-request state and is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new fullnode client with the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// call performs a POST against a wallet endpoint and decodes the JSON
// response into out. The TRON HTTP API is POST-only.
func (c *Client) call(ctx context.Context, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("tron: failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("tron: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstreamRequest("fullnode", path, "error", time.Since(start))
		return fmt.Errorf("tron: request failed: %w", err)
	}
	defer resp.Body.Close()

	metrics.ObserveUpstreamRequest("fullnode", path, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tron: %s returned status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("tron: failed to decode response: %w", err)
	}

	return nil
}

// GetAccountResource fetches bandwidth/energy usage for an address.
func (c *Client) GetAccountResource(ctx context.Context, address string) (*AccountResource, error) {
	var res AccountResource
	err := c.call(ctx, "/wallet/getaccountresource", map[string]any{
		"address": address,
		"visible": true,
	}, &res)
	if err != nil {
		return nil, fmt.Errorf("tron: failed to get account resource: %w", err)
	}
	return &res, nil
}

// GetContract fetches deployed-contract metadata. Returns nil when no
// contract is deployed at the address.
func (c *Client) GetContract(ctx context.Context, address string) (*ContractMeta, error) {
	var meta ContractMeta
	err := c.call(ctx, "/wallet/getcontract", map[string]any{
		"value":   address,
		"visible": true,
	}, &meta)
	if err != nil {
		return nil, fmt.Errorf("tron: failed to get contract: %w", err)
	}
	if meta.ContractAddress == "" {
		return nil, nil
	}
	return &meta, nil
}

// TriggerConstantContract performs a read-only contract call and returns
// the raw ABI-encoded constant results.
func (c *Client) TriggerConstantContract(ctx context.Context, owner, contract, selector string) ([]string, error) {
	var res triggerResult
	err := c.call(ctx, "/wallet/triggerconstantcontract", map[string]any{
		"owner_address":     owner,
		"contract_address":  contract,
		"function_selector": selector,
		"visible":           true,
	}, &res)
	if err != nil {
		return nil, fmt.Errorf("tron: failed to call %s: %w", selector, err)
	}
	if !res.Result.Result || len(res.ConstantResult) == 0 {
		return nil, nil
	}
	return res.ConstantResult, nil
}

// CreateTransfer builds an unsigned native-coin transfer.
func (c *Client) CreateTransfer(ctx context.Context, owner, to string, amount int64) (*Transaction, error) {
	var tx Transaction
	err := c.call(ctx, "/wallet/createtransaction", map[string]any{
		"owner_address": owner,
		"to_address":    to,
		"amount":        amount,
		"visible":       true,
	}, &tx)
	if err != nil {
		return nil, fmt.Errorf("tron: failed to create transfer: %w", err)
	}
	if tx.TxID == "" {
		return nil, nil
	}
	return &tx, nil
}

// CreateAssetTransfer builds an unsigned native-token (TRC-10) transfer.
// The asset id goes on the wire hex-encoded.
func (c *Client) CreateAssetTransfer(ctx context.Context, owner, to, assetID string, amount int64) (*Transaction, error) {
	var tx Transaction
	err := c.call(ctx, "/wallet/transferasset", map[string]any{
		"owner_address": owner,
		"to_address":    to,
		"asset_name":    hex.EncodeToString([]byte(assetID)),
		"amount":        amount,
		"visible":       true,
	}, &tx)
	if err != nil {
		return nil, fmt.Errorf("tron: failed to create asset transfer: %w", err)
	}
	if tx.TxID == "" {
		return nil, nil
	}
	return &tx, nil
}

// SmartContractCall describes a wallet/triggersmartcontract invocation.
type SmartContractCall struct {
	OwnerAddress    string
	ContractAddress string
	Selector        string
	Parameter       string
	FeeLimit        int64
	CallValue       int64
}

// TriggerSmartContract builds an unsigned contract-call transaction.
func (c *Client) TriggerSmartContract(ctx context.Context, call SmartContractCall) (*Transaction, error) {
	var res triggerResult
	err := c.call(ctx, "/wallet/triggersmartcontract", map[string]any{
		"owner_address":     call.OwnerAddress,
		"contract_address":  call.ContractAddress,
		"function_selector": call.Selector,
		"parameter":         call.Parameter,
		"fee_limit":         call.FeeLimit,
		"call_value":        call.CallValue,
		"visible":           true,
	}, &res)
	if err != nil {
		return nil, fmt.Errorf("tron: failed to trigger smart contract: %w", err)
	}
	if !res.Result.Result || res.Transaction == nil {
		return nil, nil
	}
	return res.Transaction, nil
}

// FreezeBalance builds an unsigned resource-lock (stake) transaction.
func (c *Client) FreezeBalance(ctx context.Context, owner string, amount int64, resource string) (*Transaction, error) {
	var tx Transaction
	err := c.call(ctx, "/wallet/freezebalancev2", map[string]any{
		"owner_address":  owner,
		"frozen_balance": amount,
		"resource":       resource,
		"visible":        true,
	}, &tx)
	if err != nil {
		return nil, fmt.Errorf("tron: failed to freeze balance: %w", err)
	}
	if tx.TxID == "" {
		return nil, nil
	}
	return &tx, nil
}

// UnfreezeBalance builds an unsigned resource-unlock (unstake) transaction.
func (c *Client) UnfreezeBalance(ctx context.Context, owner string, amount int64, resource string) (*Transaction, error) {
	var tx Transaction
	err := c.call(ctx, "/wallet/unfreezebalancev2", map[string]any{
		"owner_address":    owner,
		"unfreeze_balance": amount,
		"resource":         resource,
		"visible":          true,
	}, &tx)
	if err != nil {
		return nil, fmt.Errorf("tron: failed to unfreeze balance: %w", err)
	}
	if tx.TxID == "" {
		return nil, nil
	}
	return &tx, nil
}

// GetTransactionByID fetches a transaction record. Returns nil on a miss.
func (c *Client) GetTransactionByID(ctx context.Context, id string) (*Transaction, error) {
	var tx Transaction
	err := c.call(ctx, "/wallet/gettransactionbyid", map[string]any{
		"value": id,
	}, &tx)
	if err != nil {
		return nil, fmt.Errorf("tron: failed to get transaction: %w", err)
	}
	if tx.TxID == "" {
		return nil, nil
	}
	return &tx, nil
}

// GetTransactionInfoByID fetches the post-execution info for a mined
// transaction. Returns nil on a miss.
func (c *Client) GetTransactionInfoByID(ctx context.Context, id string) (*TransactionInfo, error) {
	var info TransactionInfo
	err := c.call(ctx, "/wallet/gettransactioninfobyid", map[string]any{
		"value": id,
	}, &info)
	if err != nil {
		return nil, fmt.Errorf("tron: failed to get transaction info: %w", err)
	}
	if info.ID == "" {
		return nil, nil
	}
	return &info, nil
}

// Broadcast submits a signed transaction to the network. Returns nil when
// the node produced no usable result.
func (c *Client) Broadcast(ctx context.Context, signed *Transaction) (*BroadcastResult, error) {
	var res BroadcastResult
	err := c.call(ctx, "/wallet/broadcasttransaction", signed, &res)
	if err != nil {
		return nil, fmt.Errorf("tron: failed to broadcast transaction: %w", err)
	}
	if !res.Result && res.Code == "" {
		return nil, nil
	}
	metrics.CountBroadcast(res.Result)
	return &res, nil
}
