package avatar_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/rudransh61/Physix-go/pkg/vector"
	"github.com/stretchr/testify/assert"

	"github.com/bokeefe123/modaltron/internal/avatar"
	"github.com/bokeefe123/modaltron/internal/bonuskind"
	"github.com/bokeefe123/modaltron/internal/world"
)

func newTestAvatar(id string, x, y, angle float64) *avatar.Avatar {
	return avatar.New(avatar.Params{
		ID:           id,
		PlayerID:     id,
		Position:     vector.Vector{X: x, Y: y},
		Angle:        angle,
		BaseVelocity: 15,
		BaseRadius:   0.6,
		Rng:          rand.New(rand.NewSource(1)),
	})
}

func TestStepMovesAlongHeading(t *testing.T) {
	a := newTestAvatar("a", 50, 50, 0)
	w := world.New(4)
	a.SetInput(avatar.TurnNone)

	a.Step(1.0/60, 3.2, 100, 0.4, w, map[string]struct{}{"a": {}}, 0)

	assert.Greater(t, a.Position.X, 50.0)
	assert.InDelta(t, 50, a.Position.Y, 1e-9)
}

func TestStepKillsAvatarOnWallExit(t *testing.T) {
	a := newTestAvatar("a", 0.5, 50, math.Pi) // heading left, near left wall
	w := world.New(4)

	a.Step(1.0/60, 3.2, 100, 0.4, w, map[string]struct{}{"a": {}}, 0)

	assert.False(t, a.Alive)
	assert.Equal(t, 0, a.DeathTick)
}

func TestBorderlessBonusPreventsWallDeath(t *testing.T) {
	a := newTestAvatar("a", 0.5, 50, math.Pi)
	w := world.New(4)
	a.ApplyBonus(bonuskind.AllBorderless, 100)

	a.Step(1.0/60, 3.2, 100, 0.4, w, map[string]struct{}{"a": {}}, 0)

	assert.True(t, a.Alive)
}

func TestPickingUpBonusDoesNotKillAvatar(t *testing.T) {
	a := newTestAvatar("a", 50, 50, 0)
	w := world.New(4)
	w.Insert(world.Body{ID: "bonus-1", Kind: world.KindBonus, Position: vector.Vector{X: 50.2, Y: 50}, Radius: 1})
	w.Repartition()

	result := a.Step(1.0/60, 3.2, 100, 0.4, w, map[string]struct{}{"a": {}}, 0)

	assert.True(t, a.Alive)
	if assert.NotNil(t, result.PickedUpBonus) {
		assert.Equal(t, "bonus-1", result.PickedUpBonus.ID)
	}
}
