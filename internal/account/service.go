package account

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/larahfelipe/tronbridge/internal/apperr"
	"github.com/larahfelipe/tronbridge/internal/tron"
	"github.com/larahfelipe/tronbridge/internal/trongrid"
)

// NodeGateway is the slice of the fullnode client this service consumes.
type NodeGateway interface {
	GetAccountResource(ctx context.Context, address string) (*tron.AccountResource, error)
}

// IndexGateway is the slice of the indexer client this service consumes.
type IndexGateway interface {
	GetAccount(ctx context.Context, address string) (*trongrid.Account, error)
}

// Service implements the account use cases.
type Service struct {
	node   NodeGateway
	index  IndexGateway
	logger *logrus.Logger
}

func NewService(node NodeGateway, index IndexGateway, logger *logrus.Logger) *Service {
	return &Service{
		node:   node,
		index:  index,
		logger: logger,
	}
}

// Get resolves each address to its canonical account view. Addresses the
// indexer does not know come back as the inactive shape; a missing record
// never fails the batch.
func (s *Service) Get(ctx context.Context, addresses []string) ([]Account, error) {
	accounts := make([]Account, len(addresses))

	group, ctx := errgroup.WithContext(ctx)
	for i, address := range addresses {
		i, address := i, address
		group.Go(func() error {
			acc, err := s.getOne(ctx, address)
			if err != nil {
				return err
			}
			accounts[i] = acc
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return accounts, nil
}

func (s *Service) getOne(ctx context.Context, address string) (Account, error) {
	var (
		snapshot  *trongrid.Account
		resources *tron.AccountResource
	)

	// Snapshot and resource usage are independent; fetch them concurrently.
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		snapshot, err = s.index.GetAccount(ctx, address)
		return err
	})
	group.Go(func() error {
		var err error
		resources, err = s.node.GetAccountResource(ctx, address)
		return err
	})

	if err := group.Wait(); err != nil {
		return Account{}, fmt.Errorf("account: failed to fetch %s: %w", address, err)
	}

	if snapshot == nil {
		s.logger.WithField("address", address).Debug("account not found in the blockchain")
	}

	return Aggregate(address, snapshot, resources), nil
}

// Create generates a new account keypair, optionally derived from a fresh
// mnemonic phrase.
func (s *Service) Create(ctx context.Context, withMnemonic bool) (*Generated, error) {
	var (
		keypair *tron.Keypair
		err     error
	)
	if withMnemonic {
		keypair, err = tron.GenerateMnemonicKeypair()
	} else {
		keypair, err = tron.GenerateKeypair()
	}
	if err != nil {
		s.logger.WithError(err).Error("account generation failed")
		return nil, apperr.ErrAccountGenerationFailed
	}
	if keypair == nil || keypair.PrivateKey == "" {
		return nil, apperr.ErrAccountGenerationFailed
	}

	return generatedFromKeypair(keypair), nil
}

// Recover re-derives an account from a mnemonic phrase. An invalid phrase
// is a lookup miss, not a server fault.
func (s *Service) Recover(ctx context.Context, phrase string) (*Generated, error) {
	keypair, err := tron.RecoverFromMnemonic(phrase)
	if err != nil {
		return nil, fmt.Errorf("account: failed to recover from mnemonic: %w", err)
	}
	if keypair == nil {
		return nil, apperr.ErrEntityNotFound
	}

	return generatedFromKeypair(keypair), nil
}

func generatedFromKeypair(keypair *tron.Keypair) *Generated {
	return &Generated{
		Mnemonic:   keypair.Mnemonic,
		PublicKey:  keypair.PublicKey,
		PrivateKey: keypair.PrivateKey,
		Address: Address{
			Base58: keypair.AddressBase58,
			Hex:    keypair.AddressHex,
		},
	}
}
