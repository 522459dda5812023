package account

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/tendermint/iavl"

	"github.com/ledger-dex/node/wire"
)

// Keeper manages balances of accounts
type Keeper struct {
	am Mapper
}

// NewKeeper returns a new Keeper
func NewKeeper(cdc *wire.Codec, key sdk.StoreKey) Keeper {
	return Keeper{am: NewMapper(cdc, key)}
}

func (keeper Keeper) GetBalance(ctx sdk.Context, addr sdk.AccAddress, denom string) int64 {
	return keeper.am.GetBalance(ctx, addr, denom)
}

func (keeper Keeper) GetBalanceAt(tree *iavl.ImmutableTree, addr sdk.AccAddress, denom string) int64 {
	return keeper.am.GetBalanceAt(tree, addr, denom)
}

// GetCoins returns the coins at the addr.
func (keeper Keeper) GetCoins(ctx sdk.Context, addr sdk.AccAddress) sdk.Coins {
	return keeper.am.GetCoins(ctx, addr)
}

// HasCoins returns whether or not an account has at least amt.
func (keeper Keeper) HasCoins(ctx sdk.Context, addr sdk.AccAddress, amt sdk.Coin) bool {
	return keeper.am.GetBalance(ctx, addr, amt.Denom) >= amt.Amount
}

// Credit adds amt to the balance of addr. A negative amount is a programming error.
func (keeper Keeper) Credit(ctx sdk.Context, addr sdk.AccAddress, amt sdk.Coin) {
	if amt.Amount < 0 {
		panic(fmt.Errorf("credit of negative amount %v", amt))
	}
	if amt.Amount == 0 {
		return
	}
	old := keeper.am.GetBalance(ctx, addr, amt.Denom)
	if old+amt.Amount < old {
		panic(fmt.Errorf("balance overflow crediting %v to %s", amt, addr))
	}
	keeper.am.SetBalance(ctx, addr, amt.Denom, old+amt.Amount)
}

// Debit subtracts amt from the balance of addr.
func (keeper Keeper) Debit(ctx sdk.Context, addr sdk.AccAddress, amt sdk.Coin) sdk.Error {
	if amt.Amount < 0 {
		panic(fmt.Errorf("debit of negative amount %v", amt))
	}
	old := keeper.am.GetBalance(ctx, addr, amt.Denom)
	if old < amt.Amount {
		return sdk.ErrInsufficientCoins(fmt.Sprintf("%d%s < %v", old, amt.Denom, amt))
	}
	keeper.am.SetBalance(ctx, addr, amt.Denom, old-amt.Amount)
	return nil
}

// SendCoins moves amt from one account to another.
func (keeper Keeper) SendCoins(ctx sdk.Context, from, to sdk.AccAddress, amt sdk.Coin) sdk.Error {
	if err := keeper.Debit(ctx, from, amt); err != nil {
		return err
	}
	keeper.Credit(ctx, to, amt)
	return nil
}
