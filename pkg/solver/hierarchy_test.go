package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHierarchyBosonicCount(t *testing.T) {
	// Number of multi-indices with sum <= depth over nExp slots is
	// C(nExp+depth, depth).
	cases := []struct {
		nExp, depth, want int
	}{
		{1, 1, 2},
		{1, 4, 5},
		{3, 2, 10},
		{2, 3, 10},
		{4, 3, 35},
	}
	for _, tc := range cases {
		h := newHierarchy(tc.nExp, tc.depth, false)
		assert.Equalf(t, tc.want, h.size(), "nExp=%d depth=%d", tc.nExp, tc.depth)
	}
}

func TestHierarchyFermionicCount(t *testing.T) {
	// Fermionic indices are 0/1; at full depth the count is 2^nExp.
	h := newHierarchy(3, 3, true)
	assert.Equal(t, 8, h.size())

	// Shallower truncation keeps only the low-excitation subsets.
	h = newHierarchy(3, 1, true)
	assert.Equal(t, 4, h.size())
}

func TestHierarchyOrderingAndNeighbors(t *testing.T) {
	h := newHierarchy(2, 2, false)
	require.Equal(t, []int{0, 0}, h.labels[0])

	scratch := make([]int, 2)

	// Excite exponent 1 from the root.
	j := h.neighbor(0, 1, +1, scratch)
	require.GreaterOrEqual(t, j, 0)
	assert.Equal(t, []int{0, 1}, h.labels[j])

	// And back down again.
	back := h.neighbor(j, 1, -1, scratch)
	assert.Equal(t, 0, back)

	// De-exciting the root falls outside the hierarchy.
	assert.Equal(t, -1, h.neighbor(0, 0, -1, scratch))

	// Climbing past the truncation depth falls outside too.
	top := h.index[labelKey([]int{2, 0})]
	assert.Equal(t, -1, h.neighbor(top, 0, +1, scratch))
}
