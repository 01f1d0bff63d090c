package orient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArena_Reaches(t *testing.T) {
	a := newArena(4)
	a.addArc(0, 1)
	a.addArc(1, 2)
	a.addArc(0, 2)

	assert.True(t, a.reaches(0, 2, -1, -1))
	assert.False(t, a.reaches(2, 0, -1, -1))
	assert.False(t, a.reaches(0, 3, -1, -1))
	// 0→2 is still reachable through 1 when the direct arc is ignored.
	assert.True(t, a.reaches(0, 2, 0, 2))
	assert.False(t, a.reaches(1, 2, 1, 2))

	a.deleteArc(0, 1)
	assert.False(t, a.hasArc(0, 1))
	assert.Equal(t, [][2]int{{0, 2}, {1, 2}}, a.arcs())
}

func TestSortedSets(t *testing.T) {
	s := insert(nil, 3)
	s = insert(s, 1)
	s = insert(s, 2)
	s = insert(s, 2)
	assert.Equal(t, []int{1, 2, 3}, s)
	assert.Equal(t, []int{1, 3}, remove(s, 2))

	base := []int{1, 4}
	assert.Equal(t, []int{1, 2, 4}, with(base, 2))
	assert.Equal(t, []int{4}, without(base, 1))
	assert.Equal(t, []int{1, 4}, base)
	assert.Equal(t, "2|1,4", cacheKey(2, base))
	assert.Equal(t, "0|", cacheKey(0, nil))
}
