package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type row struct {
	key   string
	id    string
	value int
}

func TestDiffByKey(t *testing.T) {
	existing := map[string]row{
		"a": {key: "a", id: "stored-a", value: 1},
		"b": {key: "b", id: "stored-b", value: 2},
	}
	incoming := []row{
		{key: "a", id: "new-1", value: 1},
		{key: "b", id: "new-2", value: 20},
		{key: "c", id: "new-3", value: 3},
		{key: "c", id: "new-4", value: 30},
	}

	cs := diffByKey(incoming, existing,
		func(r row) string { return r.key },
		func(stored row, r *row) { r.id = stored.id },
		func(stored, r row) bool { return stored.value != r.value },
	)

	assert.Equal(t, []row{{key: "c", id: "new-3", value: 3}}, cs.creates)
	assert.Equal(t, []row{{key: "b", id: "stored-b", value: 20}}, cs.updates)
	assert.Equal(t, 1, cs.unchanged)
	assert.Equal(t, 1, cs.duplicates)
	assert.Len(t, cs.keys, 3)
}

func TestChunk(t *testing.T) {
	rows := []int{1, 2, 3, 4, 5}

	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, chunk(rows, 2))
	assert.Equal(t, [][]int{{1, 2, 3, 4, 5}}, chunk(rows, 10))
	assert.Equal(t, [][]int{{1, 2, 3, 4, 5}}, chunk(rows, 0))
	assert.Nil(t, chunk([]int{}, 3))
}

func TestApartmentIndex(t *testing.T) {
	idx := ApartmentIndex{"W1#A1": "id-2", "W2#A2": "id-1"}

	id, ok := idx.Resolve("W1#A1")
	assert.True(t, ok)
	assert.Equal(t, "id-2", id)
	_, ok = idx.Resolve("W9#A9")
	assert.False(t, ok)
	assert.Equal(t, []string{"id-1", "id-2"}, idx.IDs())
}

func TestHOAErrorsListIsNeverNil(t *testing.T) {
	var errs hoaErrors
	assert.NotNil(t, errs.list())
	errs.add("charges: %d failed", 3)
	assert.Equal(t, []string{"charges: 3 failed"}, errs.list())
}

func TestEqualStringPtr(t *testing.T) {
	a, b := "x", "x"
	c := "y"
	assert.True(t, equalStringPtr(nil, nil))
	assert.True(t, equalStringPtr(&a, &b))
	assert.False(t, equalStringPtr(&a, &c))
	assert.False(t, equalStringPtr(&a, nil))
}
