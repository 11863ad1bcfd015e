package statustable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type kv struct {
	key   string
	value int
}

func keyOf(r kv) (string, bool) {
	return r.key, r.key != ""
}

func TestLeftJoin(t *testing.T) {
	left := []kv{{"a", 1}, {"", 2}, {"b", 3}, {"c", 4}}
	right := []kv{{"a", 10}, {"", 20}, {"b", 30}, {"b", 31}}

	pairs, err := leftJoin("test", left, keyOf, right, keyOf, Unvalidated)
	require.NoError(t, err)
	assert.Equal(t, []joinPair{{0, 0}, {1, -1}, {2, 2}, {2, 3}, {3, -1}}, pairs)

	_, err = leftJoin("test", left, keyOf, right, keyOf, ManyToOne)
	assert.ErrorIs(t, err, ErrJoinCardinality)
}

func TestLeftJoinOneToOne(t *testing.T) {
	right := []kv{{"a", 10}, {"b", 20}}

	_, err := leftJoin("test", []kv{{"a", 1}, {"a", 2}}, keyOf, right, keyOf, ManyToOne)
	assert.NoError(t, err)

	_, err = leftJoin("test", []kv{{"a", 1}, {"a", 2}}, keyOf, right, keyOf, OneToOne)
	assert.ErrorIs(t, err, ErrJoinCardinality)

	// missing keys are never duplicates
	pairs, err := leftJoin("test", []kv{{"", 1}, {"", 2}}, keyOf, []kv{{"", 3}, {"", 4}}, keyOf, OneToOne)
	require.NoError(t, err)
	assert.Equal(t, []joinPair{{0, -1}, {1, -1}}, pairs)
}

func TestCardinalityString(t *testing.T) {
	assert.Equal(t, "many-to-one", ManyToOne.String())
	assert.Equal(t, "one-to-one", OneToOne.String())
	assert.Equal(t, "unvalidated", Unvalidated.String())
}
