package transaction

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/larahfelipe/tronbridge/internal/amount"
	"github.com/larahfelipe/tronbridge/internal/apperr"
	"github.com/larahfelipe/tronbridge/internal/tron"
)

// DefaultFeeLimit is the fee ceiling applied to smart-contract transfers
// when the caller supplies none: 50 TRX in sun. A fixed safety ceiling,
// not derived from network conditions.
const DefaultFeeLimit = 50_000_000

const transferSelector = "transfer(address,uint256)"

// wordSize is the ABI parameter word width in bytes.
const wordSize = 32

// BuilderGateway is the slice of the fullnode client the builder consumes.
type BuilderGateway interface {
	GetContract(ctx context.Context, address string) (*tron.ContractMeta, error)
	CreateTransfer(ctx context.Context, owner, to string, amount int64) (*tron.Transaction, error)
	CreateAssetTransfer(ctx context.Context, owner, to, assetID string, amount int64) (*tron.Transaction, error)
	TriggerSmartContract(ctx context.Context, call tron.SmartContractCall) (*tron.Transaction, error)
	FreezeBalance(ctx context.Context, owner string, amount int64, resource string) (*tron.Transaction, error)
	UnfreezeBalance(ctx context.Context, owner string, amount int64, resource string) (*tron.Transaction, error)
}

// Builder turns transfer and stake intents into unsigned transactions,
// selecting the builder path from the intent's contract type.
type Builder struct {
	node BuilderGateway
}

func NewBuilder(node BuilderGateway) *Builder {
	return &Builder{node: node}
}

// Build produces the unsigned payload for an intent. The underlying
// builder does not distinguish failure causes at this interface, so any
// empty builder result maps to the generic build failure.
func (b *Builder) Build(ctx context.Context, intent Intent) (*tron.Transaction, error) {
	switch intent.ContractType {
	case ContractTransfer:
		return b.buildTransfer(ctx, intent)
	case ContractFreeze, ContractUnfreeze:
		return b.buildStake(ctx, intent)
	default:
		return nil, apperr.ErrTransactionBuildFailed
	}
}

func (b *Builder) buildTransfer(ctx context.Context, intent Intent) (*tron.Transaction, error) {
	decimals := amount.NativeDecimals
	if intent.Token != nil {
		decimals = intent.Token.Decimals
	}

	converted, err := amount.ToPrecision(intent.Amount, decimals)
	if err != nil {
		return nil, err
	}
	if converted == "" || converted == "0" {
		return nil, apperr.ErrInvalidAmount
	}

	if intent.Token == nil || intent.Token.ID == "" {
		return b.buildNativeTransfer(ctx, intent, converted)
	}

	// A token id may be a deployed contract (smart-contract token) or a
	// native-token identifier; probe the node to pick the path.
	meta, err := b.node.GetContract(ctx, intent.Token.ID)
	if err != nil {
		return nil, fmt.Errorf("transaction: failed to probe token %s: %w", intent.Token.ID, err)
	}
	if meta != nil {
		return b.buildContractTransfer(ctx, intent, converted)
	}

	return b.buildAssetTransfer(ctx, intent, converted)
}

func (b *Builder) buildNativeTransfer(ctx context.Context, intent Intent, converted string) (*tron.Transaction, error) {
	sun, err := strconv.ParseInt(converted, 10, 64)
	if err != nil {
		return nil, apperr.ErrInvalidAmount
	}

	tx, err := b.node.CreateTransfer(ctx, intent.OriginAddress, intent.RecipientAddress, sun)
	if err != nil || tx == nil {
		return nil, apperr.ErrTransactionBuildFailed
	}
	return tx, nil
}

func (b *Builder) buildAssetTransfer(ctx context.Context, intent Intent, converted string) (*tron.Transaction, error) {
	units, err := strconv.ParseInt(converted, 10, 64)
	if err != nil {
		return nil, apperr.ErrInvalidAmount
	}

	tx, err := b.node.CreateAssetTransfer(ctx, intent.OriginAddress, intent.RecipientAddress, intent.Token.ID, units)
	if err != nil || tx == nil {
		return nil, apperr.ErrTransactionBuildFailed
	}
	return tx, nil
}

func (b *Builder) buildContractTransfer(ctx context.Context, intent Intent, converted string) (*tron.Transaction, error) {
	feeLimit := int64(DefaultFeeLimit)
	if intent.Token.GasLimit != "" {
		if limit, err := amount.ToPrecision(intent.Token.GasLimit, amount.NativeDecimals); err == nil && limit != "0" {
			parsed, err := strconv.ParseInt(limit, 10, 64)
			if err != nil {
				return nil, apperr.ErrInvalidAmount
			}
			feeLimit = parsed
		}
	}

	value, ok := new(big.Int).SetString(converted, 10)
	if !ok {
		return nil, apperr.ErrInvalidAmount
	}

	parameter, err := encodeTransferParameter(intent.RecipientAddress, value)
	if err != nil {
		return nil, apperr.ErrTransactionBuildFailed
	}

	tx, err := b.node.TriggerSmartContract(ctx, tron.SmartContractCall{
		OwnerAddress:    intent.OriginAddress,
		ContractAddress: intent.Token.ID,
		Selector:        transferSelector,
		Parameter:       parameter,
		FeeLimit:        feeLimit,
		CallValue:       0,
	})
	if err != nil || tx == nil {
		return nil, apperr.ErrTransactionBuildFailed
	}
	return tx, nil
}

func (b *Builder) buildStake(ctx context.Context, intent Intent) (*tron.Transaction, error) {
	converted, err := amount.ToPrecision(intent.Amount, amount.NativeDecimals)
	if err != nil {
		return nil, err
	}
	if converted == "" || converted == "0" {
		return nil, apperr.ErrInvalidAmount
	}

	sun, err := strconv.ParseInt(converted, 10, 64)
	if err != nil {
		return nil, apperr.ErrInvalidAmount
	}

	resource := ResourceType(strings.ToUpper(strings.TrimSpace(intent.ResourceType)))
	if resource != ResourceBandwidth && resource != ResourceEnergy {
		return nil, apperr.ErrInvalidResourceType
	}

	var tx *tron.Transaction
	if intent.ContractType == ContractFreeze {
		tx, err = b.node.FreezeBalance(ctx, intent.OriginAddress, sun, string(resource))
	} else {
		tx, err = b.node.UnfreezeBalance(ctx, intent.OriginAddress, sun, string(resource))
	}
	if err != nil || tx == nil {
		return nil, apperr.ErrTransactionBuildFailed
	}
	return tx, nil
}

// encodeTransferParameter packs the transfer(address,uint256) arguments:
// a 32-byte left-padded address (network prefix stripped) and a 32-byte
// amount.
func encodeTransferParameter(recipient string, value *big.Int) (string, error) {
	hexAddr := tron.ToHex(recipient)
	if hexAddr == "" {
		return "", fmt.Errorf("transaction: unresolvable recipient address %q", recipient)
	}

	body := hexAddr[2:]
	if len(body) > 2*wordSize {
		return "", fmt.Errorf("transaction: recipient address %q exceeds a parameter word", recipient)
	}

	padded := strings.Repeat("0", 2*wordSize-len(body)) + body
	amountHex := fmt.Sprintf("%064x", value)

	return padded + amountHex, nil
}
