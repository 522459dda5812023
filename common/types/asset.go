package types

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// Percent100 is the scaled representation of 100.00%.
	Percent100 int64 = 10000
	OnePercent int64 = 100

	AssetSymbolMinLen = 3
	AssetSymbolMaxLen = 16
	MaxAssetPrecision = 12

	MaxTotalSupply int64 = 9000000000000000000
)

var isAssetSymbol = regexp.MustCompile(`^[A-Z][A-Z0-9.]*$`).MatchString

// AssetFeeOptions is the market fee configuration of an asset.
//
// TakerFeePercent is inert until the maker/taker upgrade is active. TakerFeeSet tells whether it has ever been
// set explicitly (or normalized at activation); an unset taker fee behaves as the maker fee after activation.
// MaxMarketFee caps a single fee in absolute units, 0 means no cap.
type AssetFeeOptions struct {
	MakerFeePercent int64 `json:"maker_fee_percent"`
	TakerFeePercent int64 `json:"taker_fee_percent"`
	TakerFeeSet     bool  `json:"taker_fee_set"`
	MaxMarketFee    int64 `json:"max_market_fee"`
	ChargeMarketFee bool  `json:"charge_market_fee"`
}

func IsValidFeePercent(percent int64) bool {
	return percent >= 0 && percent <= Percent100
}

func (o AssetFeeOptions) Validate() error {
	if !IsValidFeePercent(o.MakerFeePercent) {
		return fmt.Errorf("maker fee percent %d is out of range [0, %d]", o.MakerFeePercent, Percent100)
	}
	if !IsValidFeePercent(o.TakerFeePercent) {
		return fmt.Errorf("taker fee percent %d is out of range [0, %d]", o.TakerFeePercent, Percent100)
	}
	if o.MaxMarketFee < 0 {
		return errors.New("max market fee should not be negative")
	}
	return nil
}

// EffectiveTakerFeePercent is the taker rate the matching engine charges.
func (o AssetFeeOptions) EffectiveTakerFeePercent(postActivation bool) int64 {
	if !postActivation {
		return 0
	}
	if !o.TakerFeeSet {
		return o.MakerFeePercent
	}
	return o.TakerFeePercent
}

// NormalizeTakerFee pins an unset taker fee to the current maker fee. The second return value
// reports whether anything changed, so callers only persist real updates.
func (o AssetFeeOptions) NormalizeTakerFee() (AssetFeeOptions, bool) {
	if o.TakerFeeSet {
		return o, false
	}
	o.TakerFeePercent = o.MakerFeePercent
	o.TakerFeeSet = true
	return o, true
}

func (o AssetFeeOptions) String() string {
	return fmt.Sprintf("{maker: %d, taker: %d, takerSet: %v, maxFee: %d, charge: %v}",
		o.MakerFeePercent, o.TakerFeePercent, o.TakerFeeSet, o.MaxMarketFee, o.ChargeMarketFee)
}

// Asset is the per-asset configuration record.
type Asset struct {
	Symbol     string          `json:"symbol"`
	Issuer     sdk.AccAddress  `json:"issuer"`
	Precision  int64           `json:"precision"`
	MaxSupply  int64           `json:"max_supply"`
	Smart      bool            `json:"smart"`
	FeeOptions AssetFeeOptions `json:"fee_options"`
}

func (a Asset) IsOwner(addr sdk.AccAddress) bool {
	return a.Issuer.Equals(addr)
}

func (a Asset) String() string {
	return fmt.Sprintf("{Symbol: %v, Issuer: %v, Precision: %v, MaxSupply: %v, Smart: %v, FeeOptions: %v}",
		a.Symbol, a.Issuer, a.Precision, a.MaxSupply, a.Smart, a.FeeOptions)
}

// AssetDynamicData holds the fast-changing figures of an asset.
type AssetDynamicData struct {
	Symbol          string `json:"symbol"`
	CurrentSupply   int64  `json:"current_supply"`
	AccumulatedFees int64  `json:"accumulated_fees"`
}

func ValidateAssetSymbol(symbol string) error {
	if len(symbol) == 0 {
		return errors.New("asset symbol cannot be empty")
	}
	if len(symbol) < AssetSymbolMinLen || len(symbol) > AssetSymbolMaxLen {
		return fmt.Errorf("asset symbol length should be between %d and %d", AssetSymbolMinLen, AssetSymbolMaxLen)
	}
	if strings.ToUpper(symbol) != symbol || !isAssetSymbol(symbol) {
		return errors.New("asset symbol should be upper case alphanumeric and start with a letter")
	}
	return nil
}

func ValidateAsset(asset Asset) error {
	if err := ValidateAssetSymbol(asset.Symbol); err != nil {
		return err
	}
	if len(asset.Issuer) == 0 {
		return errors.New("asset issuer cannot be empty")
	}
	if asset.Precision < 0 || asset.Precision > MaxAssetPrecision {
		return fmt.Errorf("asset precision should be between 0 and %d", MaxAssetPrecision)
	}
	if asset.MaxSupply <= 0 || asset.MaxSupply > MaxTotalSupply {
		return fmt.Errorf("max supply should be between 1 and %d", MaxTotalSupply)
	}
	return asset.FeeOptions.Validate()
}
