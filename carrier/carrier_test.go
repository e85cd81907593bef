package carrier

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanCapacities(t *testing.T) {
	tests := []struct {
		plan Plan
		want int
	}{
		{Auto, 0},
		{Pentad7, 49},
		{Pentad7Plus1, 50},
		{Merkaba125, 125},
		{Merkaba125Plus3, 128},
	}

	for _, tt := range tests {
		got, err := Capacity(tt.plan)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "plan %s", tt.plan)
	}

	_, err := Capacity(Plan("bogus"))
	var upe *UnknownPlanError
	require.ErrorAs(t, err, &upe)
	assert.Equal(t, "bogus", upe.Name)
}

func TestSelectLengthSeedIndependent(t *testing.T) {
	for _, plan := range []Plan{Pentad7, Pentad7Plus1, Merkaba125, Merkaba125Plus3} {
		want, err := Capacity(plan)
		require.NoError(t, err)

		for _, seed := range []uint32{0, 1, 42, 0xFFFFFFFF} {
			bins, err := Select(1024, seed, plan, 0)
			require.NoError(t, err, "plan %s seed %d", plan, seed)
			assert.Len(t, bins, want, "plan %s seed %d", plan, seed)
		}
	}
}

func TestSelectBinsDistinctAndInRange(t *testing.T) {
	for _, n := range []int{512, 1024, 1023} {
		upper := n / 2
		if n%2 == 0 {
			upper = n/2 - 1
		}

		for _, plan := range []Plan{Auto, Pentad7, Pentad7Plus1, Merkaba125, Merkaba125Plus3} {
			bins, err := Select(n, 777, plan, 100)
			require.NoError(t, err, "n=%d plan=%s", n, plan)

			seen := make(map[int]bool, len(bins))
			for _, b := range bins {
				assert.GreaterOrEqual(t, b, 1, "n=%d plan=%s", n, plan)
				assert.LessOrEqual(t, b, upper, "n=%d plan=%s", n, plan)
				assert.False(t, seen[b], "duplicate bin %d in n=%d plan=%s", b, n, plan)
				seen[b] = true
			}
		}
	}
}

func TestSelectDeterminism(t *testing.T) {
	for _, plan := range []Plan{Auto, Pentad7, Pentad7Plus1, Merkaba125, Merkaba125Plus3} {
		a, err := Select(1024, 0xBEEF, plan, 64)
		require.NoError(t, err)
		b, err := Select(1024, 0xBEEF, plan, 64)
		require.NoError(t, err)
		assert.Equal(t, a, b, "plan %s", plan)
	}
}

func TestSelectAutoSorted(t *testing.T) {
	bins, err := Select(1024, 42, Auto, 100)
	require.NoError(t, err)
	require.Len(t, bins, 100)
	assert.True(t, sort.IntsAreSorted(bins))
}

func TestSelectAutoInvalidCount(t *testing.T) {
	_, err := Select(1024, 42, Auto, 0)
	assert.ErrorIs(t, err, ErrInvalidCount)
}

func TestSelectCapacityErrors(t *testing.T) {
	// 64 samples give 31 usable bins: too few for any fixed plan.
	for _, plan := range []Plan{Pentad7, Pentad7Plus1, Merkaba125, Merkaba125Plus3} {
		_, err := Select(64, 1, plan, 0)
		var ce *CapacityError
		require.ErrorAs(t, err, &ce, "plan %s", plan)
		assert.Equal(t, 31, ce.Available)
	}

	_, err := Select(64, 1, Auto, 32)
	var ce *CapacityError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 32, ce.Needed)
	assert.Equal(t, 31, ce.Available)
}

func TestSelectUnknownPlan(t *testing.T) {
	_, err := Select(1024, 1, Plan("spiral9"), 0)
	var upe *UnknownPlanError
	require.ErrorAs(t, err, &upe)
	assert.Equal(t, "spiral9", upe.Name)
}

func TestPentad7GroupStructure(t *testing.T) {
	bins, err := Select(1024, 5, Pentad7, 0)
	require.NoError(t, err)
	require.Len(t, bins, 49)

	// Each consecutive group of 7 is internally sorted.
	for g := 0; g < 7; g++ {
		group := bins[g*7 : (g+1)*7]
		assert.True(t, sort.IntsAreSorted(group), "group %d", g)
	}
}

func TestPentad7Plus1Prepends(t *testing.T) {
	base, err := Select(1024, 5, Pentad7, 0)
	require.NoError(t, err)
	plus, err := Select(1024, 5, Pentad7Plus1, 0)
	require.NoError(t, err)

	require.Len(t, plus, 50)
	assert.Equal(t, base, plus[1:])
	assert.NotContains(t, base, plus[0])
}

func TestMerkaba125Sorted(t *testing.T) {
	bins, err := Select(1024, 5, Merkaba125, 0)
	require.NoError(t, err)
	require.Len(t, bins, 125)
	assert.True(t, sort.IntsAreSorted(bins))
}

func TestMerkaba125Plus3Prepends(t *testing.T) {
	base, err := Select(1024, 5, Merkaba125, 0)
	require.NoError(t, err)
	plus, err := Select(1024, 5, Merkaba125Plus3, 0)
	require.NoError(t, err)

	require.Len(t, plus, 128)
	assert.Equal(t, base, plus[3:])
	for i := 0; i < 3; i++ {
		assert.NotContains(t, base, plus[i], "anchor %d", i)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(Auto))
	assert.True(t, Valid(Merkaba125Plus3))
	assert.False(t, Valid(Plan("")))
	assert.False(t, Valid(Plan("qpsk")))
}
