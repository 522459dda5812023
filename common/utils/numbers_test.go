package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMulDiv(t *testing.T) {
	assert := assert.New(t)
	r, ok := MulDivFloor(300000, 500, 10000)
	assert.True(ok)
	assert.Equal(int64(15000), r)

	r, ok = MulDivFloor(7, 1, 2)
	assert.True(ok)
	assert.Equal(int64(3), r)
	r, ok = MulDivCeil(7, 1, 2)
	assert.True(ok)
	assert.Equal(int64(4), r)
	r, ok = MulDivCeil(8, 1, 2)
	assert.True(ok)
	assert.Equal(int64(4), r)

	// the product overflows int64 but the quotient does not
	r, ok = MulDivFloor(math.MaxInt64, 10000, 10000)
	assert.True(ok)
	assert.Equal(int64(math.MaxInt64), r)

	_, ok = MulDivFloor(math.MaxInt64, 2, 1)
	assert.False(ok)
}

func TestCmpProducts(t *testing.T) {
	assert.Equal(t, 0, CmpProducts(2, 3, 3, 2))
	assert.Equal(t, 1, CmpProducts(math.MaxInt64, 2, math.MaxInt64, 1))
	assert.Equal(t, -1, CmpProducts(1, 1, 1, 2))
}
