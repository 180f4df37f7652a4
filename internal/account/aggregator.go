package account

import (
	"github.com/larahfelipe/tronbridge/internal/amount"
	"github.com/larahfelipe/tronbridge/internal/tron"
	"github.com/larahfelipe/tronbridge/internal/trongrid"
)

// Aggregate merges an indexer snapshot with node-reported resource usage
// into the canonical account view. A nil snapshot yields the terminal
// inactive shape with no further conversion.
func Aggregate(address string, snapshot *trongrid.Account, resources *tron.AccountResource) Account {
	if snapshot == nil {
		return Account{
			Active:  false,
			Address: Address{Base58: address},
		}
	}

	var frozenBalance int64
	for _, entry := range snapshot.FrozenV2 {
		frozenBalance += entry.Amount
	}

	// Smart-contract holdings first, then native-token holdings; the order
	// mirrors upstream emphasis.
	assets := make([]Asset, 0, len(snapshot.TRC20)+len(snapshot.AssetV2))
	for _, holding := range snapshot.TRC20 {
		for id, balance := range holding {
			assets = append(assets, Asset{
				ID:      id,
				Balance: amount.Display(balance, "0"),
			})
		}
	}
	for _, asset := range snapshot.AssetV2 {
		assets = append(assets, Asset{
			ID:      asset.Key,
			Balance: amount.DisplayInt(asset.Value, "0"),
		})
	}

	availableFmt, _ := amount.FromPrecision(amount.DisplayInt(snapshot.Balance, "0"), amount.NativeDecimals)
	frozenFmt, _ := amount.FromPrecision(amount.DisplayInt(frozenBalance, "0"), amount.NativeDecimals)

	var resource *Resource
	if resources != nil {
		resource = &Resource{
			Bandwidth: Usage{
				Used:  amount.DisplayInt(resources.NetUsed, "0"),
				Limit: amount.DisplayInt(resources.NetLimit, "0"),
			},
			Energy: Usage{
				Used:  amount.DisplayInt(resources.EnergyUsed, "0"),
				Limit: amount.DisplayInt(resources.EnergyLimit, "0"),
			},
		}
	}

	return Account{
		Active: true,
		Address: Address{
			Base58: address,
			Hex:    snapshot.Address,
		},
		Balance: &Balance{
			Available: Pair{
				Raw: amount.DisplayInt(snapshot.Balance, "0"),
				Fmt: amount.Display(availableFmt, "0"),
			},
			Frozen: Pair{
				Raw: amount.DisplayInt(frozenBalance, "0"),
				Fmt: amount.Display(frozenFmt, "0"),
			},
		},
		Assets:     assets,
		Resource:   resource,
		CreatedAt:  snapshot.CreateTime,
		LastSeenAt: snapshot.LatestOperationTime,
	}
}
