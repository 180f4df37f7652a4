package token

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/larahfelipe/tronbridge/internal/tron"
)

// NodeGateway is the slice of the fullnode client this inspector consumes.
type NodeGateway interface {
	GetContract(ctx context.Context, address string) (*tron.ContractMeta, error)
	TriggerConstantContract(ctx context.Context, owner, contract, selector string) ([]string, error)
}

// Inspector resolves contract addresses into canonical token views.
type Inspector struct {
	node   NodeGateway
	logger *logrus.Logger
}

func NewInspector(node NodeGateway, logger *logrus.Logger) *Inspector {
	return &Inspector{
		node:   node,
		logger: logger,
	}
}

// Options controls which optional payloads Inspect attaches.
type Options struct {
	IncludeByteCode bool
	IncludeABI      bool
}

// Get inspects each contract id independently; an invalid id never fails
// the batch.
func (i *Inspector) Get(ctx context.Context, ids []string, opts Options) ([]Token, error) {
	tokens := make([]Token, len(ids))

	group, ctx := errgroup.WithContext(ctx)
	for idx, id := range ids {
		idx, id := idx, id
		group.Go(func() error {
			tok, err := i.Inspect(ctx, id, opts)
			if err != nil {
				return err
			}
			tokens[idx] = tok
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return tokens, nil
}

// Inspect probes one contract address. Contracts that do not exist, or that
// do not answer the token read methods, come back as the invalid shape.
func (i *Inspector) Inspect(ctx context.Context, contractAddress string, opts Options) (Token, error) {
	invalid := Token{
		Valid:   false,
		Address: Address{Contract: contractAddress},
	}

	meta, err := i.node.GetContract(ctx, contractAddress)
	if err != nil {
		return Token{}, fmt.Errorf("token: failed to fetch contract %s: %w", contractAddress, err)
	}
	if meta == nil {
		return invalid, nil
	}

	var name, symbol string
	decimals := -1

	// The three read methods are independent; probe them concurrently.
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		results, err := i.node.TriggerConstantContract(ctx, contractAddress, contractAddress, "name()")
		if err != nil {
			return err
		}
		if len(results) > 0 {
			name = decodeString(results[0])
		}
		return nil
	})
	group.Go(func() error {
		results, err := i.node.TriggerConstantContract(ctx, contractAddress, contractAddress, "symbol()")
		if err != nil {
			return err
		}
		if len(results) > 0 {
			symbol = decodeString(results[0])
		}
		return nil
	})
	group.Go(func() error {
		results, err := i.node.TriggerConstantContract(ctx, contractAddress, contractAddress, "decimals()")
		if err != nil {
			return err
		}
		if len(results) > 0 {
			decimals = decodeUint(results[0])
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		return Token{}, fmt.Errorf("token: failed to probe %s: %w", contractAddress, err)
	}

	// Deployed but not a token: missing read methods make it invalid.
	if name == "" || symbol == "" || decimals < 0 {
		i.logger.WithField("contract", contractAddress).Debug("contract does not expose token read methods")
		return invalid, nil
	}

	tok := Token{
		Valid:  true,
		Name:   name,
		Symbol: symbol,
		Address: Address{
			Contract: tron.ToBase58(meta.ContractAddress),
			Creator:  tron.ToBase58(meta.OriginAddress),
		},
		Decimals: decimals,
	}
	if opts.IncludeByteCode {
		tok.ByteCode = meta.Bytecode
	}
	if opts.IncludeABI {
		tok.ABI = meta.ABI
	}

	return tok, nil
}
