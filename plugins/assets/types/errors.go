package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	DefaultCodespace sdk.CodespaceType = 7

	// CodeFeePercentOutOfRange module reserves error 500-599
	CodeFeePercentOutOfRange sdk.CodeType = 500
	CodeTakerFeeNotYetActive sdk.CodeType = 501
	CodeUnauthorized         sdk.CodeType = 502
	CodeUnknownAsset         sdk.CodeType = 503
	CodeDuplicateAsset       sdk.CodeType = 504
	CodeInvalidAssetParam    sdk.CodeType = 505
)

func ErrFeePercentOutOfRange(role string, percent int64) sdk.Error {
	return sdk.NewError(DefaultCodespace, CodeFeePercentOutOfRange,
		fmt.Sprintf("%s fee percent %d is out of range, the max is 10000", role, percent))
}

func ErrTakerFeeNotYetActive(percent int64) sdk.Error {
	return sdk.NewError(DefaultCodespace, CodeTakerFeeNotYetActive,
		fmt.Sprintf("taker fee percent %d cannot be set before the maker/taker fee upgrade", percent))
}

func ErrUnauthorized(symbol string) sdk.Error {
	return sdk.NewError(DefaultCodespace, CodeUnauthorized, fmt.Sprintf("only the issuer can update asset %s", symbol))
}

func ErrUnknownAsset(symbol string) sdk.Error {
	return sdk.NewError(DefaultCodespace, CodeUnknownAsset, fmt.Sprintf("asset %s does not exist", symbol))
}

func ErrDuplicateAsset(symbol string) sdk.Error {
	return sdk.NewError(DefaultCodespace, CodeDuplicateAsset, fmt.Sprintf("asset %s already exists", symbol))
}

func ErrInvalidAssetParam(param string, err string) sdk.Error {
	return sdk.NewError(DefaultCodespace, CodeInvalidAssetParam, fmt.Sprintf("Invalid asset parameter value - %s:%s", param, err))
}
