// Package trongrid talks to the secondary indexing API: account snapshots
// and confirmed transaction listings that the fullnode does not serve.
package trongrid

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/larahfelipe/tronbridge/internal/metrics"
	"github.com/larahfelipe/tronbridge/internal/tron"
)

// Client is a long-lived handle over the indexer v1 HTTP API. It holds no
// per-request state and is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new indexer client with the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// get performs a GET against a v1 endpoint and unwraps the list envelope.
// The endpoint name labels metrics; the path may carry addresses.
func get[T any](ctx context.Context, c *Client, endpoint, path string, query url.Values) ([]T, error) {
	uri := c.baseURL + path
	if len(query) > 0 {
		uri += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("trongrid: failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstreamRequest("indexer", endpoint, "error", time.Since(start))
		return nil, fmt.Errorf("trongrid: request failed: %w", err)
	}
	defer resp.Body.Close()

	metrics.ObserveUpstreamRequest("indexer", endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trongrid: %s returned status %d", endpoint, resp.StatusCode)
	}

	var envelope listEnvelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("trongrid: failed to decode response: %w", err)
	}

	return envelope.Data, nil
}

// GetAccount fetches the indexer snapshot for an address. Returns nil when
// the indexer has no record, which is a valid terminal state for accounts
// that never appeared on chain.
func (c *Client) GetAccount(ctx context.Context, address string) (*Account, error) {
	accounts, err := get[Account](ctx, c, "accounts", "/v1/accounts/"+url.PathEscape(address), nil)
	if err != nil {
		return nil, fmt.Errorf("trongrid: failed to get account: %w", err)
	}
	if len(accounts) == 0 {
		return nil, nil
	}
	return &accounts[0], nil
}

// ListTransactions fetches up to limit confirmed native transactions for an
// address, newest first.
func (c *Client) ListTransactions(ctx context.Context, address string, limit int) ([]tron.Transaction, error) {
	query := url.Values{}
	query.Set("only_confirmed", "true")
	query.Set("limit", strconv.Itoa(limit))

	txs, err := get[tron.Transaction](ctx, c, "transactions", "/v1/accounts/"+url.PathEscape(address)+"/transactions", query)
	if err != nil {
		return nil, fmt.Errorf("trongrid: failed to list transactions: %w", err)
	}
	return txs, nil
}

// ListContractTransfers fetches up to limit confirmed smart-contract token
// transfer events for an address, optionally filtered by contract.
func (c *Client) ListContractTransfers(ctx context.Context, address, contractAddress string, limit int) ([]ContractTransfer, error) {
	query := url.Values{}
	query.Set("only_confirmed", "true")
	query.Set("limit", strconv.Itoa(limit))
	if contractAddress != "" {
		query.Set("contract_address", contractAddress)
	}

	transfers, err := get[ContractTransfer](ctx, c, "contract_transfers", "/v1/accounts/"+url.PathEscape(address)+"/transactions/trc20", query)
	if err != nil {
		return nil, fmt.Errorf("trongrid: failed to list contract transfers: %w", err)
	}
	return transfers, nil
}
