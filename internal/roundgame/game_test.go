package roundgame

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bokeefe123/modaltron/internal/avatar"
	"github.com/bokeefe123/modaltron/internal/bonuskind"
	"github.com/bokeefe123/modaltron/internal/config"
	"github.com/bokeefe123/modaltron/internal/world"
)

func newTestGame(t *testing.T, cfg config.Config, ids ...string) *Game {
	t.Helper()
	g := &Game{
		cfg:        cfg,
		log:        zerolog.Nop(),
		avatars:    make(map[string]*avatar.Avatar, len(ids)),
		world:      world.New(cellSizeFor(cfg)),
		bonuses:    newBonusManager(),
		rng:        rand.New(rand.NewSource(1)),
		trailGrace: make(map[string][]string, len(ids)),
	}
	for _, id := range ids {
		g.order = append(g.order, id)
		g.avatars[id] = avatar.New(avatar.Params{
			ID: id, PlayerID: id, BaseVelocity: cfg.BaseVelocity, BaseRadius: cfg.AvatarRadius, Rng: g.rng,
		})
	}
	return g
}

func TestComputeRoundScoresRewardsSurvivorForEachEarlierDeath(t *testing.T) {
	cfg := config.FastConfig()
	g := newTestGame(t, cfg, "a", "b", "c")

	g.avatars["a"].Alive = false
	g.avatars["a"].DeathTick = 5
	g.avatars["b"].Alive = false
	g.avatars["b"].DeathTick = 10
	// c survives.

	scores := g.computeRoundScores()
	assert.Equal(t, 0, scores["a"]) // a died first, no earlier deaths to credit
	assert.Equal(t, 1, scores["b"]) // b outlived a's death
	assert.Equal(t, 2, scores["c"]) // c outlived both
}

func TestHandlePickupInstantBonusClearsAllTrails(t *testing.T) {
	cfg := config.FastConfig()
	g := newTestGame(t, cfg, "a")

	trail := world.Body{ID: "a-trail-1", Kind: world.KindTrail, Radius: cfg.AvatarRadius}
	g.world.Insert(trail)
	g.allTrailIDs = []string{"a-trail-1"}

	bonusBody := world.Body{ID: "bonus-1", Kind: world.KindBonus, Data: bonuskind.GameClear}
	g.handlePickup("a", bonusBody)

	_, stillThere := g.world.Get("a-trail-1")
	assert.False(t, stillThere)
	assert.Empty(t, g.allTrailIDs)
}

func TestHandlePickupOpponentScopeSkipsThePicker(t *testing.T) {
	cfg := config.FastConfig()
	g := newTestGame(t, cfg, "a", "b")

	bonusBody := world.Body{ID: "bonus-1", Kind: world.KindBonus, Data: bonuskind.EnemySlow}
	g.handlePickup("a", bonusBody)

	// Picker "a" is unaffected; opponent "b" gets the slow modifier.
	require.Equal(t, 1.0, g.avatars["a"].Modifiers().VelocityMult)
	assert.Equal(t, 0.5, g.avatars["b"].Modifiers().VelocityMult)
}

func TestEnterWarmupResetsStateButKeepsCumulativeScore(t *testing.T) {
	cfg := config.FastConfig()
	g := newTestGame(t, cfg, "a", "b")
	g.avatars["a"].Score = 3
	g.avatars["a"].Alive = false

	g.enterWarmup(nil, false)

	assert.Equal(t, 3, g.avatars["a"].Score)
	assert.True(t, g.avatars["a"].Alive)
	assert.Equal(t, phaseWarmup, g.phase)
	assert.Equal(t, 2, g.world.Len()) // only the two freshly inserted avatar bodies
}
