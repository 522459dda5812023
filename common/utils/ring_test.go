package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRing_PushAndElements(t *testing.T) {
	q := NewRing[int](4)
	require.True(t, q.IsEmpty())
	require.Equal(t, []int{}, q.Elements())

	q.Push(1)
	require.Equal(t, 1, q.Count())
	require.Equal(t, []int{1}, q.Elements())
	require.Equal(t, []int{1, 0, 0, 0}, q.buf)

	q.Push(2, 3, 4)
	require.Equal(t, 0, q.tail)
	require.Equal(t, 4, q.Count())
	require.Equal(t, []int{1, 2, 3, 4}, q.Elements())

	q.Push(5)
	require.Equal(t, 1, q.tail)
	require.Equal(t, 4, q.Count())
	require.Equal(t, []int{2, 3, 4, 5}, q.Elements())
	require.Equal(t, []int{5, 2, 3, 4}, q.buf)

	q.Push(6, 7, 8, 9, 10)
	require.Equal(t, []int{7, 8, 9, 10}, q.Elements())
}

func TestRing_Capacity(t *testing.T) {
	require.Panics(t, func() { NewRing[string](0) })

	q := NewRing[string](1).Push("a", "b")
	require.Equal(t, []string{"b"}, q.Elements())
}
