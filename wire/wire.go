package wire

import (
	amino "github.com/tendermint/go-amino"
)

// amino codec for the records kept in the state tree
type Codec = amino.Codec

func NewCodec() *Codec {
	return amino.NewCodec()
}
