package orderedset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddIdempotent(t *testing.T) {
	s := New()
	require.True(t, s.Add("a"))
	require.False(t, s.Add("a"))
	require.Equal(t, 1, s.Len())
}

func TestInsertionOrderPreservedAfterRemove(t *testing.T) {
	s := FromSlice([]string{"a", "b", "c", "d"})
	require.True(t, s.Remove("b"))
	require.Equal(t, []string{"a", "c", "d"}, s.Members())
	require.False(t, s.Remove("b"))
}

func TestDiffOrderIsFirstOperand(t *testing.T) {
	k1 := FromSlice([]string{"v1", "v2", "v3"})
	k2 := FromSlice([]string{"v2", "v4"})
	d := Diff(k1, k2)
	require.Equal(t, []string{"v1", "v3"}, d.Members())
}

func TestInterOrderIsFirstOperand(t *testing.T) {
	k1 := FromSlice([]string{"v3", "v1", "v2"})
	k2 := FromSlice([]string{"v2", "v1"})
	i := Inter(k1, k2)
	require.Equal(t, []string{"v1", "v2"}, i.Members())
}

func TestUnionDropsLaterDuplicates(t *testing.T) {
	k1 := FromSlice([]string{"a", "b"})
	k2 := FromSlice([]string{"b", "c"})
	u := Union(k1, k2)
	require.Equal(t, []string{"a", "b", "c"}, u.Members())
}

func TestContains(t *testing.T) {
	s := FromSlice([]string{"a"})
	require.True(t, s.Contains("a"))
	require.False(t, s.Contains("z"))
}
