package store

import (
	"errors"
	"fmt"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
	lru "github.com/hashicorp/golang-lru"

	"github.com/ledger-dex/node/common"
	"github.com/ledger-dex/node/common/types"
	"github.com/ledger-dex/node/wire"
)

const decodedCacheSize = 1024

var takerFeeNormalizedKey = common.PrefixedKey(common.AssetMarkerPrefix, []byte("takerFeeNormalized"))

type Mapper interface {
	NewAsset(ctx sdk.Context, asset types.Asset) error
	Exists(ctx sdk.Context, symbol string) bool
	GetAsset(ctx sdk.Context, symbol string) (types.Asset, error)
	GetAssetList(ctx sdk.Context) []types.Asset
	GetFeeOptions(ctx sdk.Context, symbol string) (types.AssetFeeOptions, error)
	SetFeeOptions(ctx sdk.Context, symbol string, opts types.AssetFeeOptions) error
	GetDynamicData(ctx sdk.Context, symbol string) (types.AssetDynamicData, error)
	UpdateCurrentSupply(ctx sdk.Context, symbol string, supply int64) error
	GetAccumulatedFees(ctx sdk.Context, symbol string) int64
	AddAccumulatedFees(ctx sdk.Context, symbol string, amount int64) error
	IsTakerFeeNormalized(ctx sdk.Context) bool
	SetTakerFeeNormalized(ctx sdk.Context)
}

var _ Mapper = mapper{}

// mapper keeps a cache of decoded asset records keyed by their encoded bytes, so a hit can never be stale.
type mapper struct {
	key     sdk.StoreKey
	cdc     *wire.Codec
	decoded *lru.Cache
}

func NewMapper(cdc *wire.Codec, key sdk.StoreKey) mapper {
	cache, err := lru.New(decodedCacheSize)
	if err != nil {
		panic(err)
	}
	return mapper{
		key:     key,
		cdc:     cdc,
		decoded: cache,
	}
}

func assetKey(symbol string) []byte {
	return common.PrefixedKey(common.AssetPrefix, []byte(strings.ToUpper(symbol)))
}

func dynamicKey(symbol string) []byte {
	return common.PrefixedKey(common.AssetDynamicPrefix, []byte(strings.ToUpper(symbol)))
}

func (m mapper) NewAsset(ctx sdk.Context, asset types.Asset) error {
	if err := types.ValidateAsset(asset); err != nil {
		return err
	}
	if m.Exists(ctx, asset.Symbol) {
		return fmt.Errorf("asset(%v) already exists", asset.Symbol)
	}
	store := ctx.KVStore(m.key)
	store.Set(assetKey(asset.Symbol), m.encodeAsset(asset))
	store.Set(dynamicKey(asset.Symbol), m.encodeDynamicData(types.AssetDynamicData{Symbol: asset.Symbol}))
	return nil
}

func (m mapper) Exists(ctx sdk.Context, symbol string) bool {
	return ctx.KVStore(m.key).Has(assetKey(symbol))
}

func (m mapper) GetAsset(ctx sdk.Context, symbol string) (types.Asset, error) {
	bz := ctx.KVStore(m.key).Get(assetKey(symbol))
	if bz == nil {
		return types.Asset{}, fmt.Errorf("asset(%v) not found", symbol)
	}
	return m.decodeAsset(bz), nil
}

func (m mapper) GetAssetList(ctx sdk.Context) []types.Asset {
	var res []types.Asset
	iter := sdk.KVStorePrefixIterator(ctx.KVStore(m.key), common.AssetPrefix)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		res = append(res, m.decodeAsset(iter.Value()))
	}
	return res
}

func (m mapper) GetFeeOptions(ctx sdk.Context, symbol string) (types.AssetFeeOptions, error) {
	asset, err := m.GetAsset(ctx, symbol)
	if err != nil {
		return types.AssetFeeOptions{}, err
	}
	return asset.FeeOptions, nil
}

func (m mapper) SetFeeOptions(ctx sdk.Context, symbol string, opts types.AssetFeeOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	asset, err := m.GetAsset(ctx, symbol)
	if err != nil {
		return err
	}
	if asset.FeeOptions == opts {
		return nil
	}
	asset.FeeOptions = opts
	ctx.KVStore(m.key).Set(assetKey(symbol), m.encodeAsset(asset))
	return nil
}

func (m mapper) GetDynamicData(ctx sdk.Context, symbol string) (types.AssetDynamicData, error) {
	bz := ctx.KVStore(m.key).Get(dynamicKey(symbol))
	if bz == nil {
		return types.AssetDynamicData{}, fmt.Errorf("asset(%v) not found", symbol)
	}
	return m.decodeDynamicData(bz), nil
}

func (m mapper) UpdateCurrentSupply(ctx sdk.Context, symbol string, supply int64) error {
	if supply < 0 {
		return errors.New("supply should not be negative")
	}
	data, err := m.GetDynamicData(ctx, symbol)
	if err != nil {
		return err
	}
	if data.CurrentSupply != supply {
		data.CurrentSupply = supply
		ctx.KVStore(m.key).Set(dynamicKey(symbol), m.encodeDynamicData(data))
	}
	return nil
}

func (m mapper) GetAccumulatedFees(ctx sdk.Context, symbol string) int64 {
	data, err := m.GetDynamicData(ctx, symbol)
	if err != nil {
		return 0
	}
	return data.AccumulatedFees
}

// AddAccumulatedFees only ever grows the accumulated fees.
func (m mapper) AddAccumulatedFees(ctx sdk.Context, symbol string, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("negative fee accrual %d for %s", amount, symbol)
	}
	if amount == 0 {
		return nil
	}
	data, err := m.GetDynamicData(ctx, symbol)
	if err != nil {
		return err
	}
	if data.AccumulatedFees+amount < data.AccumulatedFees {
		return fmt.Errorf("accumulated fees overflow for %s", symbol)
	}
	data.AccumulatedFees += amount
	ctx.KVStore(m.key).Set(dynamicKey(symbol), m.encodeDynamicData(data))
	return nil
}

func (m mapper) IsTakerFeeNormalized(ctx sdk.Context) bool {
	return ctx.KVStore(m.key).Has(takerFeeNormalizedKey)
}

func (m mapper) SetTakerFeeNormalized(ctx sdk.Context) {
	ctx.KVStore(m.key).Set(takerFeeNormalizedKey, []byte{1})
}

func (m mapper) encodeAsset(asset types.Asset) []byte {
	return m.cdc.MustMarshalBinaryBare(asset)
}

func (m mapper) decodeAsset(bz []byte) types.Asset {
	if cached, ok := m.decoded.Get(string(bz)); ok {
		return cached.(types.Asset)
	}
	var asset types.Asset
	m.cdc.MustUnmarshalBinaryBare(bz, &asset)
	m.decoded.Add(string(bz), asset)
	return asset
}

func (m mapper) encodeDynamicData(data types.AssetDynamicData) []byte {
	return m.cdc.MustMarshalBinaryBare(data)
}

func (m mapper) decodeDynamicData(bz []byte) types.AssetDynamicData {
	var data types.AssetDynamicData
	m.cdc.MustUnmarshalBinaryBare(bz, &data)
	return data
}
