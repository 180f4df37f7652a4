package transaction

import (
	"strings"

	"github.com/larahfelipe/tronbridge/internal/amount"
	"github.com/larahfelipe/tronbridge/internal/apperr"
	"github.com/larahfelipe/tronbridge/internal/tron"
	"github.com/larahfelipe/tronbridge/internal/trongrid"
)

// NormalizeOptions carries the context a raw record alone cannot provide.
// The fallback fields apply only on the broadcast path, where the caller's
// requested values back up fields the node response may omit.
type NormalizeOptions struct {
	// Broadcasted is the upstream broadcast return flag.
	Broadcasted bool
	// FromBroadcast marks a record taken from a broadcast result rather
	// than a lookup/listing; event matching is not required there.
	FromBroadcast bool
	// Decimals formats the amount when no matched event supplies them.
	// Non-positive means native decimals.
	Decimals int
	// AssetID overrides asset resolution when set.
	AssetID string
	// ResourceType tags stake transactions built by this service.
	ResourceType string
	// FallbackRaw/FallbackFmt are the requested amount in base/human
	// units. The on-chain-confirmed value always wins when present.
	FallbackRaw string
	FallbackFmt string
	// FallbackRecipient is the requested recipient address.
	FallbackRecipient string
}

// Normalize maps a raw transaction record, its optional post-execution
// info and its optional matched transfer event into the canonical view.
// Every field follows a fixed first-non-empty precedence order, so the
// same rules apply to single lookups, listed batches and broadcast
// results.
func Normalize(raw *tron.Transaction, info *tron.TransactionInfo, event *trongrid.ContractTransfer, opts NormalizeOptions) (Transaction, error) {
	if raw == nil || len(raw.RawData.Contract) == 0 {
		return Transaction{}, apperr.ErrTransactionNotFound
	}

	contract := raw.RawData.Contract[0]
	value := contract.Parameter.Value

	// A smart-contract transaction without its matched transfer event is
	// ambiguous partial data; reject it rather than return it incomplete.
	if value.ContractAddress != "" && event == nil && !opts.FromBroadcast {
		return Transaction{}, apperr.ErrTransactionNotFound
	}

	rawAmount := resolveRawAmount(value, event)

	decimals := opts.Decimals
	if decimals <= 0 {
		decimals = amount.NativeDecimals
	}
	if event != nil {
		decimals = event.TokenInfo.Decimals
	}

	var fmtAmount string
	if rawAmount != "" {
		fmtAmount, _ = amount.FromPrecision(rawAmount, decimals)
	}

	tx := Transaction{
		TxID:          raw.TxID,
		Type:          contract.Type,
		AssetID:       resolveAssetID(value, event, opts.AssetID),
		IsBroadcasted: resolveBroadcasted(raw, info, opts.Broadcasted),
		Address:       resolveAddresses(value, event, opts.FallbackRecipient),
		Amount: Pair{
			Raw: amount.Display(rawAmount, orZero(opts.FallbackRaw)),
			Fmt: amount.Display(fmtAmount, orZero(opts.FallbackFmt)),
		},
		Block: Block{
			Bytes: raw.RawData.RefBlockBytes,
			Hash:  raw.RawData.RefBlockHash,
		},
		Resource:  resolveResource(raw, info, value, opts.ResourceType),
		Signature: raw.Signature,
		CreatedAt: raw.RawData.Timestamp,
		ExpiresAt: raw.RawData.Expiration,
	}

	if info != nil {
		tx.Block.Number = info.BlockNumber
	}

	return tx, nil
}

// resolveRawAmount picks the transaction amount from its four possible
// upstream homes, first non-empty wins: contract amount, frozen balance,
// unfreeze balance, matched event value.
func resolveRawAmount(value tron.ContractValue, event *trongrid.ContractTransfer) string {
	switch {
	case value.Amount > 0:
		return amount.DisplayInt(value.Amount, "")
	case value.FrozenBalance > 0:
		return amount.DisplayInt(value.FrozenBalance, "")
	case value.UnfreezeBalance > 0:
		return amount.DisplayInt(value.UnfreezeBalance, "")
	case event != nil:
		return event.Value
	default:
		return ""
	}
}

// resolveAssetID: contract address in display form, then the matched
// event's token id, then the native coin symbol.
func resolveAssetID(value tron.ContractValue, event *trongrid.ContractTransfer, override string) string {
	switch {
	case override != "":
		return override
	case value.ContractAddress != "":
		return tron.ToBase58(value.ContractAddress)
	case event != nil && event.TokenInfo.Address != "":
		return event.TokenInfo.Address
	default:
		return amount.NativeSymbol
	}
}

// resolveBroadcasted: the broadcast return flag, the execution ret tag and
// the receipt result are equivalent success signals; any true wins.
func resolveBroadcasted(raw *tron.Transaction, info *tron.TransactionInfo, broadcasted bool) bool {
	if broadcasted {
		return true
	}
	if len(raw.Ret) > 0 && raw.Ret[0].ContractRet == "SUCCESS" {
		return true
	}
	return info != nil && info.Receipt.Result == "SUCCESS"
}

func resolveAddresses(value tron.ContractValue, event *trongrid.ContractTransfer, fallbackRecipient string) Addresses {
	addresses := Addresses{
		Origin: AddressPair{
			Base58: tron.ToBase58(value.OwnerAddress),
			Hex:    tron.ToHex(value.OwnerAddress),
		},
	}

	recipient := value.ToAddress
	if recipient == "" && event != nil {
		recipient = event.To
	}
	if recipient == "" {
		recipient = fallbackRecipient
	}
	if recipient != "" {
		addresses.Recipient = &AddressPair{
			Base58: tron.ToBase58(recipient),
			Hex:    tron.ToHex(recipient),
		}
	}

	return addresses
}

func resolveResource(raw *tron.Transaction, info *tron.TransactionInfo, value tron.ContractValue, resourceType string) *Resource {
	resource := Resource{
		Type: value.Resource,
	}
	if resourceType != "" {
		resource.Type = strings.ToUpper(resourceType)
	}

	if info != nil {
		resource.BandwidthUsage = info.Receipt.NetUsage
		resource.EnergyUsage = info.Receipt.EnergyUsage
		resource.EnergyPenalty = info.Receipt.EnergyPenaltyTotal
	}

	if raw.RawData.FeeLimit != 0 {
		fmtLimit, _ := amount.FromPrecision(amount.DisplayInt(raw.RawData.FeeLimit, "0"), amount.NativeDecimals)
		resource.GasLimit = &Pair{
			Raw: amount.DisplayInt(raw.RawData.FeeLimit, "0"),
			Fmt: amount.Display(fmtLimit, "0"),
		}
	}

	if resource == (Resource{}) {
		return nil
	}
	return &resource
}

func orZero(fallback string) string {
	if fallback == "" {
		return "0"
	}
	return fallback
}
