package collection_test

import (
	"testing"

	"github.com/bokeefe123/modaltron/internal/collection"
	"github.com/stretchr/testify/assert"
)

type item struct {
	id string
}

func (i item) ID() string { return i.id }

func TestAddRejectsDuplicateID(t *testing.T) {
	c := collection.New[item]()
	assert.True(t, c.Add(item{id: "a"}))
	assert.False(t, c.Add(item{id: "a"}))
	assert.Equal(t, 1, c.Len())
}

func TestRemovePreservesOrder(t *testing.T) {
	c := collection.New[item]()
	c.Add(item{id: "a"})
	c.Add(item{id: "b"})
	c.Add(item{id: "c"})

	_, ok := c.Remove("b")
	assert.True(t, ok)

	ids := make([]string, 0)
	for _, it := range c.Items() {
		ids = append(ids, it.ID())
	}
	assert.Equal(t, []string{"a", "c"}, ids)
}

func TestCallbacksFireOnAddAndRemove(t *testing.T) {
	c := collection.New[item]()
	var added, removed []string
	c.OnAdd(func(it item) { added = append(added, it.ID()) })
	c.OnRemove(func(it item) { removed = append(removed, it.ID()) })

	c.Add(item{id: "a"})
	c.Remove("a")

	assert.Equal(t, []string{"a"}, added)
	assert.Equal(t, []string{"a"}, removed)
}
