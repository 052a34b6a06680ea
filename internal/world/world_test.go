package world_test

import (
	"testing"

	"github.com/bokeefe123/modaltron/internal/world"
	"github.com/rudransh61/Physix-go/pkg/vector"
	"github.com/stretchr/testify/assert"
)

func body(id string, x, y, r float64) world.Body {
	return world.Body{ID: id, Kind: world.KindAvatar, Position: vector.Vector{X: x, Y: y}, Radius: r}
}

func TestOverlapsUsesCircleDistance(t *testing.T) {
	a := body("a", 0, 0, 1)
	b := body("b", 1.9, 0, 1)
	assert.True(t, a.Overlaps(b))

	c := body("c", 5, 0, 1)
	assert.False(t, a.Overlaps(c))
}

func TestWorldFindsOverlapWithinSameIsland(t *testing.T) {
	w := world.New(4)
	w.Insert(body("a", 0, 0, 1))
	w.Insert(body("b", 1.5, 0, 1))
	w.Insert(body("c", 50, 50, 1)) // far away, different island
	w.Repartition()

	got, ok := w.GetBody(body("a", 0, 0, 1), map[string]struct{}{"a": {}})
	assert.True(t, ok)
	assert.Equal(t, "b", got.ID)
}

func TestWorldDoesNotReportDistantBodyAsOverlapping(t *testing.T) {
	w := world.New(4)
	w.Insert(body("a", 0, 0, 1))
	w.Insert(body("c", 50, 50, 1))
	w.Repartition()

	_, ok := w.GetBody(body("a", 0, 0, 1), map[string]struct{}{"a": {}})
	assert.False(t, ok)
}

func TestRemoveDropsBodyFromFutureQueries(t *testing.T) {
	w := world.New(4)
	w.Insert(body("a", 0, 0, 1))
	w.Insert(body("b", 1.5, 0, 1))
	w.Remove("b")
	w.Repartition()

	_, ok := w.GetBody(body("a", 0, 0, 1), map[string]struct{}{"a": {}})
	assert.False(t, ok)
	assert.Equal(t, 1, w.Len())
}
