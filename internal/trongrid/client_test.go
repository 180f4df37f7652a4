package trongrid

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL)
}

func TestGetAccount(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/accounts/TAddr", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{{
				"address":              "41a614f803b6fd780986a42c78ec9c7f77e6ded13c",
				"balance":              10_500_000,
				"create_time":          1600000000000,
				"latest_opration_time": 1700000000000,
				"frozenV2":             []map[string]any{{"type": "ENERGY", "amount": 1_000_000}},
				"trc20":                []map[string]string{{"TContract": "7000000"}},
			}},
		})
	})

	account, err := client.GetAccount(context.Background(), "TAddr")
	require.NoError(t, err)
	require.NotNil(t, account)

	assert.Equal(t, int64(10_500_000), account.Balance)
	assert.Equal(t, int64(1700000000000), account.LatestOperationTime)
	require.Len(t, account.FrozenV2, 1)
	assert.Equal(t, int64(1_000_000), account.FrozenV2[0].Amount)
	require.Len(t, account.TRC20, 1)
	assert.Equal(t, "7000000", account.TRC20[0]["TContract"])
}

func TestGetAccountMiss(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []any{}})
	})

	account, err := client.GetAccount(context.Background(), "TUnknown")
	require.NoError(t, err)
	assert.Nil(t, account)
}

func TestListTransactionsQueryShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/accounts/TAddr/transactions", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("only_confirmed"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    []map[string]any{{"txID": "abc123"}},
		})
	})

	txs, err := client.ListTransactions(context.Background(), "TAddr", 5)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "abc123", txs[0].TxID)
}

func TestListContractTransfersFilter(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/accounts/TAddr/transactions/trc20", r.URL.Path)
		assert.Equal(t, "TContract", r.URL.Query().Get("contract_address"))
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{{
				"transaction_id":  "abc123",
				"from":            "TAddr",
				"to":              "TOther",
				"value":           "7000000",
				"block_timestamp": 1700000000000,
				"token_info": map[string]any{
					"symbol":   "USDT",
					"address":  "TContract",
					"decimals": 6,
				},
			}},
		})
	})

	transfers, err := client.ListContractTransfers(context.Background(), "TAddr", "TContract", 5)
	require.NoError(t, err)
	require.Len(t, transfers, 1)

	assert.Equal(t, "abc123", transfers[0].TransactionID)
	assert.Equal(t, "7000000", transfers[0].Value)
	assert.Equal(t, 6, transfers[0].TokenInfo.Decimals)
}

func TestListContractTransfersNoFilter(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, filtered := r.URL.Query()["contract_address"]
		assert.False(t, filtered, "no filter param when no contract given")
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []any{}})
	})

	_, err := client.ListContractTransfers(context.Background(), "TAddr", "", 5)
	require.NoError(t, err)
}
