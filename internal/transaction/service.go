package transaction

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/larahfelipe/tronbridge/internal/amount"
	"github.com/larahfelipe/tronbridge/internal/apperr"
	"github.com/larahfelipe/tronbridge/internal/tron"
	"github.com/larahfelipe/tronbridge/internal/trongrid"
)

// eventMatchLimit bounds the event listing consulted when matching a
// single smart-contract transaction to its transfer event.
const eventMatchLimit = 20

// NodeGateway is the slice of the fullnode client this service consumes,
// on top of what the builder already needs.
type NodeGateway interface {
	BuilderGateway
	Broadcast(ctx context.Context, signed *tron.Transaction) (*tron.BroadcastResult, error)
	GetTransactionByID(ctx context.Context, id string) (*tron.Transaction, error)
	GetTransactionInfoByID(ctx context.Context, id string) (*tron.TransactionInfo, error)
}

// IndexGateway is the slice of the indexer client this service consumes.
type IndexGateway interface {
	ListTransactions(ctx context.Context, address string, limit int) ([]tron.Transaction, error)
	ListContractTransfers(ctx context.Context, address, contractAddress string, limit int) ([]trongrid.ContractTransfer, error)
}

// Service implements the transaction use cases.
type Service struct {
	node    NodeGateway
	index   IndexGateway
	builder *Builder
	logger  *logrus.Logger
}

func NewService(node NodeGateway, index IndexGateway, logger *logrus.Logger) *Service {
	return &Service{
		node:    node,
		index:   index,
		builder: NewBuilder(node),
		logger:  logger,
	}
}

// Get fetches one transaction by id and normalizes it. Smart-contract
// transactions additionally need their matched transfer event from the
// indexer; a match miss is a lookup miss.
func (s *Service) Get(ctx context.Context, id string) (Transaction, error) {
	var (
		raw  *tron.Transaction
		info *tron.TransactionInfo
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		raw, err = s.node.GetTransactionByID(groupCtx, id)
		return err
	})
	group.Go(func() error {
		var err error
		info, err = s.node.GetTransactionInfoByID(groupCtx, id)
		return err
	})
	if err := group.Wait(); err != nil {
		return Transaction{}, fmt.Errorf("transaction: failed to fetch %s: %w", id, err)
	}

	if raw == nil || len(raw.RawData.Contract) == 0 {
		return Transaction{}, apperr.ErrTransactionNotFound
	}

	value := raw.RawData.Contract[0].Parameter.Value

	var event *trongrid.ContractTransfer
	if value.ContractAddress != "" {
		matched, err := s.matchContractEvent(ctx, id, value)
		if err != nil {
			return Transaction{}, err
		}
		event = matched
	}

	return Normalize(raw, info, event, NormalizeOptions{})
}

func (s *Service) matchContractEvent(ctx context.Context, id string, value tron.ContractValue) (*trongrid.ContractTransfer, error) {
	origin := tron.ToBase58(value.OwnerAddress)
	contract := tron.ToBase58(value.ContractAddress)

	events, err := s.index.ListContractTransfers(ctx, origin, contract, eventMatchLimit)
	if err != nil {
		return nil, fmt.Errorf("transaction: failed to list contract transfers: %w", err)
	}

	for i := range events {
		if events[i].TransactionID == id {
			return &events[i], nil
		}
	}

	return nil, apperr.ErrTransactionNotFound
}

// List fetches up to limit native transactions for an address together
// with the address's smart-contract transfer events, and normalizes each
// native transaction. Every smart-contract transaction must find its
// event in the parallel listing, matched by transaction id; one miss
// fails the whole batch.
func (s *Service) List(ctx context.Context, address string, limit int) ([]Transaction, error) {
	var (
		raws   []tron.Transaction
		events []trongrid.ContractTransfer
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		raws, err = s.index.ListTransactions(groupCtx, address, limit)
		return err
	})
	group.Go(func() error {
		var err error
		events, err = s.index.ListContractTransfers(groupCtx, address, "", limit)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("transaction: failed to list for %s: %w", address, err)
	}

	// First event per transaction wins when the listing repeats an id.
	eventsByTx := make(map[string]*trongrid.ContractTransfer, len(events))
	for i := range events {
		if _, ok := eventsByTx[events[i].TransactionID]; !ok {
			eventsByTx[events[i].TransactionID] = &events[i]
		}
	}

	transactions := make([]Transaction, len(raws))

	// Per-transaction info lookups are independent; reassemble by index,
	// never by completion order.
	infoGroup, infoCtx := errgroup.WithContext(ctx)
	for i := range raws {
		i := i
		infoGroup.Go(func() error {
			raw := &raws[i]

			info, err := s.node.GetTransactionInfoByID(infoCtx, raw.TxID)
			if err != nil {
				return err
			}

			var event *trongrid.ContractTransfer
			if len(raw.RawData.Contract) > 0 && raw.RawData.Contract[0].Parameter.Value.ContractAddress != "" {
				matched, ok := eventsByTx[raw.TxID]
				if !ok {
					return apperr.ErrTransactionNotFound
				}
				event = matched
			}

			normalized, err := Normalize(raw, info, event, NormalizeOptions{})
			if err != nil {
				return err
			}

			transactions[i] = normalized
			return nil
		})
	}

	if err := infoGroup.Wait(); err != nil {
		return nil, err
	}

	return transactions, nil
}

// TransferParams is a create-transfer request.
type TransferParams struct {
	Amount     string
	Origin     string
	Recipient  string
	Token      *TokenParams
	SigningKey string
}

// CreateTransfer builds, signs and broadcasts a transfer, then normalizes
// the broadcast result. Each stage failure is terminal and stage-specific;
// retries are the caller's responsibility.
func (s *Service) CreateTransfer(ctx context.Context, params TransferParams) (Transaction, error) {
	unsigned, err := s.builder.Build(ctx, Intent{
		ContractType:     ContractTransfer,
		OriginAddress:    params.Origin,
		RecipientAddress: params.Recipient,
		Amount:           params.Amount,
		Token:            params.Token,
	})
	if err != nil {
		return Transaction{}, err
	}

	signed, broadcasted, err := s.signAndBroadcast(ctx, unsigned, params.SigningKey)
	if err != nil {
		return Transaction{}, err
	}

	assetID := amount.NativeSymbol
	decimals := amount.NativeDecimals
	fallbackRaw := ""
	if params.Token != nil && params.Token.ID != "" {
		assetID = params.Token.ID
		decimals = params.Token.Decimals
	}
	if converted, err := amount.ToPrecision(params.Amount, decimals); err == nil {
		fallbackRaw = converted
	}

	return Normalize(signed, nil, nil, NormalizeOptions{
		Broadcasted:       broadcasted,
		FromBroadcast:     true,
		Decimals:          decimals,
		AssetID:           assetID,
		FallbackRaw:       fallbackRaw,
		FallbackFmt:       params.Amount,
		FallbackRecipient: params.Recipient,
	})
}

// StakeParams is a create-stake (freeze/unfreeze) request.
type StakeParams struct {
	Amount       string
	Address      string
	ContractType ContractType
	ResourceType string
	SigningKey   string
}

// CreateStake builds, signs and broadcasts a resource lock or unlock, then
// normalizes the broadcast result.
func (s *Service) CreateStake(ctx context.Context, params StakeParams) (Transaction, error) {
	unsigned, err := s.builder.Build(ctx, Intent{
		ContractType:  params.ContractType,
		ResourceType:  params.ResourceType,
		OriginAddress: params.Address,
		Amount:        params.Amount,
	})
	if err != nil {
		return Transaction{}, err
	}

	signed, broadcasted, err := s.signAndBroadcast(ctx, unsigned, params.SigningKey)
	if err != nil {
		return Transaction{}, err
	}

	fallbackRaw := ""
	if converted, err := amount.ToPrecision(params.Amount, amount.NativeDecimals); err == nil {
		fallbackRaw = converted
	}

	return Normalize(signed, nil, nil, NormalizeOptions{
		Broadcasted:   broadcasted,
		FromBroadcast: true,
		AssetID:       amount.NativeSymbol,
		ResourceType:  params.ResourceType,
		FallbackRaw:   fallbackRaw,
		FallbackFmt:   params.Amount,
	})
}

func (s *Service) signAndBroadcast(ctx context.Context, unsigned *tron.Transaction, signingKey string) (*tron.Transaction, bool, error) {
	signed, err := tron.Sign(unsigned, signingKey)
	if err != nil || signed == nil {
		s.logger.WithError(err).Error("transaction signing failed")
		return nil, false, apperr.ErrTransactionSignFailed
	}

	result, err := s.node.Broadcast(ctx, signed)
	if err != nil || result == nil {
		s.logger.WithError(err).Error("transaction broadcast failed")
		return nil, false, apperr.ErrTransactionBroadcastFailed
	}

	return signed, result.Result, nil
}
