package utils

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	doubled := Map([]int{1, 2, 3}, func(x int) int { return x * 2 })
	assert.Equal(t, []int{2, 4, 6}, doubled)
	assert.Empty(t, Map([]int{}, func(x int) int { return x }))
}

func TestFilter(t *testing.T) {
	even := Filter([]int{1, 2, 3, 4}, func(x int) bool { return x%2 == 0 })
	assert.Equal(t, []int{2, 4}, even)
	assert.Empty(t, Filter([]int{1, 3}, func(x int) bool { return x%2 == 0 }))
}

func TestContains(t *testing.T) {
	actions := []string{"start_animation", "reveal", "reset"}
	assert.True(t, Contains(actions, "reveal"))
	assert.False(t, Contains(actions, "rewind"))
}

func TestKeysAndValues(t *testing.T) {
	scores := map[string]int{"a": 1, "b": 2}

	keys := Keys(scores)
	sort.Strings(keys)
	assert.Equal(t, []string{"a", "b"}, keys)

	values := Values(scores)
	sort.Ints(values)
	assert.Equal(t, []int{1, 2}, values)
}

func TestMax(t *testing.T) {
	assert.Equal(t, 4, Max([]int{1, 4, 2}))
	assert.Equal(t, 3.5, Max([]float64{3.5}))
}
