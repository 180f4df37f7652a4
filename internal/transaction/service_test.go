package transaction

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larahfelipe/tronbridge/internal/apperr"
	"github.com/larahfelipe/tronbridge/internal/tron"
	"github.com/larahfelipe/tronbridge/internal/trongrid"
)

// testSigningKey is a throwaway secp256k1 key, never funded anywhere.
const testSigningKey = "b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"

type fakeServiceNode struct {
	fakeNode

	transactions map[string]*tron.Transaction
	infos        map[string]*tron.TransactionInfo
	broadcast    *tron.BroadcastResult
	broadcasted  []*tron.Transaction
}

func (f *fakeServiceNode) Broadcast(_ context.Context, signed *tron.Transaction) (*tron.BroadcastResult, error) {
	f.broadcasted = append(f.broadcasted, signed)
	return f.broadcast, nil
}

func (f *fakeServiceNode) GetTransactionByID(_ context.Context, id string) (*tron.Transaction, error) {
	return f.transactions[id], nil
}

func (f *fakeServiceNode) GetTransactionInfoByID(_ context.Context, id string) (*tron.TransactionInfo, error) {
	return f.infos[id], nil
}

type fakeIndex struct {
	transactions []tron.Transaction
	transfers    []trongrid.ContractTransfer

	lastContractFilter string
}

func (f *fakeIndex) ListTransactions(_ context.Context, address string, limit int) ([]tron.Transaction, error) {
	if limit < len(f.transactions) {
		return f.transactions[:limit], nil
	}
	return f.transactions, nil
}

func (f *fakeIndex) ListContractTransfers(_ context.Context, address, contractAddress string, limit int) ([]trongrid.ContractTransfer, error) {
	f.lastContractFilter = contractAddress
	return f.transfers, nil
}

func newTestService(node *fakeServiceNode, index *fakeIndex) *Service {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewService(node, index, logger)
}

func TestServiceGetNativeTransaction(t *testing.T) {
	node := &fakeServiceNode{
		transactions: map[string]*tron.Transaction{"deadbeef": nativeTransferRecord()},
		infos: map[string]*tron.TransactionInfo{
			"deadbeef": {ID: "deadbeef", BlockNumber: 42, Receipt: tron.Receipt{Result: "SUCCESS"}},
		},
	}
	service := newTestService(node, &fakeIndex{})

	tx, err := service.Get(context.Background(), "deadbeef")
	require.NoError(t, err)

	assert.Equal(t, "deadbeef", tx.TxID)
	assert.Equal(t, int64(42), tx.Block.Number)
	assert.True(t, tx.IsBroadcasted)
}

func TestServiceGetUnknownTransaction(t *testing.T) {
	service := newTestService(&fakeServiceNode{}, &fakeIndex{})

	_, err := service.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, apperr.ErrTransactionNotFound)
}

func TestServiceGetContractTransactionMatchesEvent(t *testing.T) {
	raw := nativeTransferRecord()
	value := &raw.RawData.Contract[0].Parameter.Value
	value.Amount = 0
	value.ToAddress = ""
	value.ContractAddress = testOwnerHex

	node := &fakeServiceNode{transactions: map[string]*tron.Transaction{"deadbeef": raw}}
	index := &fakeIndex{transfers: []trongrid.ContractTransfer{
		{TransactionID: "other", Value: "1"},
		{
			TransactionID: "deadbeef",
			To:            testOwnerBase58,
			Value:         "7000000",
			TokenInfo:     trongrid.TokenInfo{Decimals: 6, Address: testOwnerBase58},
		},
	}}
	service := newTestService(node, index)

	tx, err := service.Get(context.Background(), "deadbeef")
	require.NoError(t, err)

	assert.Equal(t, testOwnerBase58, index.lastContractFilter, "event listing must be scoped to the token contract")
	assert.Equal(t, "7000000", tx.Amount.Raw)
	assert.Equal(t, "7", tx.Amount.Fmt)
}

func TestServiceGetContractTransactionEventMiss(t *testing.T) {
	raw := nativeTransferRecord()
	value := &raw.RawData.Contract[0].Parameter.Value
	value.Amount = 0
	value.ContractAddress = testOwnerHex

	node := &fakeServiceNode{transactions: map[string]*tron.Transaction{"deadbeef": raw}}
	index := &fakeIndex{transfers: []trongrid.ContractTransfer{{TransactionID: "other"}}}
	service := newTestService(node, index)

	_, err := service.Get(context.Background(), "deadbeef")
	assert.ErrorIs(t, err, apperr.ErrTransactionNotFound)
}

func TestServiceListPreservesOrder(t *testing.T) {
	first := nativeTransferRecord()
	second := nativeTransferRecord()
	second.TxID = "cafebabe"
	second.RawData.Contract[0].Parameter.Value.Amount = 1_000_000

	node := &fakeServiceNode{infos: map[string]*tron.TransactionInfo{
		"deadbeef": {BlockNumber: 10},
		"cafebabe": {BlockNumber: 11},
	}}
	index := &fakeIndex{transactions: []tron.Transaction{*first, *second}}
	service := newTestService(node, index)

	transactions, err := service.List(context.Background(), testOwnerBase58, 5)
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	assert.Equal(t, "deadbeef", transactions[0].TxID)
	assert.Equal(t, int64(10), transactions[0].Block.Number)
	assert.Equal(t, "cafebabe", transactions[1].TxID)
	assert.Equal(t, int64(11), transactions[1].Block.Number)
}

func TestServiceListDuplicateEventFirstWins(t *testing.T) {
	contractTx := nativeTransferRecord()
	value := &contractTx.RawData.Contract[0].Parameter.Value
	value.Amount = 0
	value.ToAddress = ""
	value.ContractAddress = testOwnerHex

	index := &fakeIndex{
		transactions: []tron.Transaction{*contractTx},
		transfers: []trongrid.ContractTransfer{
			{
				TransactionID: "deadbeef",
				To:            testOwnerBase58,
				Value:         "7000000",
				TokenInfo:     trongrid.TokenInfo{Decimals: 6, Address: testOwnerBase58},
			},
			{
				TransactionID: "deadbeef",
				To:            testOwnerBase58,
				Value:         "9000000",
				TokenInfo:     trongrid.TokenInfo{Decimals: 6, Address: testOwnerBase58},
			},
		},
	}
	service := newTestService(&fakeServiceNode{}, index)

	transactions, err := service.List(context.Background(), testOwnerBase58, 5)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "7000000", transactions[0].Amount.Raw)
	assert.Equal(t, "7", transactions[0].Amount.Fmt)
}

func TestServiceListContractEventMissFailsBatch(t *testing.T) {
	contractTx := nativeTransferRecord()
	value := &contractTx.RawData.Contract[0].Parameter.Value
	value.Amount = 0
	value.ContractAddress = testOwnerHex

	index := &fakeIndex{transactions: []tron.Transaction{*contractTx}}
	service := newTestService(&fakeServiceNode{}, index)

	_, err := service.List(context.Background(), testOwnerBase58, 5)
	assert.ErrorIs(t, err, apperr.ErrTransactionNotFound)
}

func TestServiceListEmpty(t *testing.T) {
	service := newTestService(&fakeServiceNode{}, &fakeIndex{})

	transactions, err := service.List(context.Background(), testOwnerBase58, 5)
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestServiceCreateTransfer(t *testing.T) {
	node := &fakeServiceNode{broadcast: &tron.BroadcastResult{Result: true}}
	service := newTestService(node, &fakeIndex{})

	tx, err := service.CreateTransfer(context.Background(), TransferParams{
		Amount:     "10.5",
		Origin:     testOwnerBase58,
		Recipient:  testRecipientBase58,
		SigningKey: testSigningKey,
	})
	require.NoError(t, err)

	require.Len(t, node.broadcasted, 1)
	assert.NotEmpty(t, node.broadcasted[0].Signature, "broadcasted payload must carry the signature")
	assert.True(t, tx.IsBroadcasted)
	assert.Equal(t, "TRX", tx.AssetID)
}

func TestServiceCreateTransferBroadcastRejected(t *testing.T) {
	node := &fakeServiceNode{broadcast: &tron.BroadcastResult{Result: false, Code: "BANDWITH_ERROR"}}
	service := newTestService(node, &fakeIndex{})

	tx, err := service.CreateTransfer(context.Background(), TransferParams{
		Amount:     "1",
		Origin:     testOwnerBase58,
		Recipient:  testRecipientBase58,
		SigningKey: testSigningKey,
	})
	require.NoError(t, err)

	assert.False(t, tx.IsBroadcasted)
}

func TestServiceCreateTransferBadKey(t *testing.T) {
	node := &fakeServiceNode{broadcast: &tron.BroadcastResult{Result: true}}
	service := newTestService(node, &fakeIndex{})

	_, err := service.CreateTransfer(context.Background(), TransferParams{
		Amount:     "1",
		Origin:     testOwnerBase58,
		Recipient:  testRecipientBase58,
		SigningKey: "not-a-key",
	})
	assert.ErrorIs(t, err, apperr.ErrTransactionSignFailed)

	assert.Empty(t, node.broadcasted, "a signing failure must never reach broadcast")
}

func TestServiceCreateStake(t *testing.T) {
	node := &fakeServiceNode{broadcast: &tron.BroadcastResult{Result: true}}
	service := newTestService(node, &fakeIndex{})

	tx, err := service.CreateStake(context.Background(), StakeParams{
		Amount:       "25",
		Address:      testOwnerBase58,
		ContractType: ContractFreeze,
		ResourceType: "energy",
		SigningKey:   testSigningKey,
	})
	require.NoError(t, err)

	assert.True(t, tx.IsBroadcasted)
	require.NotNil(t, tx.Resource)
	assert.Equal(t, "ENERGY", tx.Resource.Type)
	assert.Equal(t, "25", tx.Amount.Fmt)
}

func TestServiceCreateStakeInvalidResource(t *testing.T) {
	service := newTestService(&fakeServiceNode{}, &fakeIndex{})

	_, err := service.CreateStake(context.Background(), StakeParams{
		Amount:       "25",
		Address:      testOwnerBase58,
		ContractType: ContractFreeze,
		ResourceType: "cpu",
		SigningKey:   testSigningKey,
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidResourceType)
}
