package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	DefaultCodespace sdk.CodespaceType = 6

	// CodeInsufficientFunds module reserves error 400-499
	CodeInsufficientFunds  sdk.CodeType = 400
	CodeInvalidOrderParam  sdk.CodeType = 401
	CodeOrderNotFound      sdk.CodeType = 402
	CodeInvalidTradingPair sdk.CodeType = 403
	CodeNotOrderOwner      sdk.CodeType = 404
)

func ErrInsufficientFunds(err string) sdk.Error {
	return sdk.NewError(DefaultCodespace, CodeInsufficientFunds, fmt.Sprintf("Insufficient funds: %s", err))
}

func ErrInvalidOrderParam(paraName string, err string) sdk.Error {
	return sdk.NewError(DefaultCodespace, CodeInvalidOrderParam, fmt.Sprintf("Invalid order parameter value - %s:%s", paraName, err))
}

func ErrOrderNotFound(id uint64) sdk.Error {
	return sdk.NewError(DefaultCodespace, CodeOrderNotFound, fmt.Sprintf("Order %d is not open", id))
}

func ErrInvalidTradingPair(err string) sdk.Error {
	return sdk.NewError(DefaultCodespace, CodeInvalidTradingPair, fmt.Sprintf("Invalid trading pair: %s", err))
}

func ErrNotOrderOwner(id uint64) sdk.Error {
	return sdk.NewError(DefaultCodespace, CodeNotOrderOwner, fmt.Sprintf("Only the owner can cancel order %d", id))
}
